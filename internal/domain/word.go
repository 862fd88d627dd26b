package domain

import "time"

// Word is a vocabulary entry
type Word struct {
	ID              int64     `db:"word_id" json:"word_id"`
	Text            string    `db:"word_text" json:"word_text" validate:"required"`
	Transliteration string    `db:"transliteration" json:"transliteration" validate:"required"`
	Meaning         string    `db:"meaning" json:"meaning" validate:"required"`
	PartOfSpeech    string    `db:"part_of_speech" json:"part_of_speech" validate:"required"`
	Origin          *string   `db:"origin" json:"origin,omitempty"`
	ExampleSentence *string   `db:"example_sentence" json:"example_sentence,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// WordWithStats is a word together with its review outcome counts
type WordWithStats struct {
	Word
	CorrectCount int `db:"correct_count" json:"correct_count"`
	WrongCount   int `db:"wrong_count" json:"wrong_count"`
}

// WordPage is one page of the word list
type WordPage struct {
	Items      []WordWithStats `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
	TotalPages int             `json:"total_pages"`
}

// WordQuery describes a page of the word list
type WordQuery struct {
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// Offset returns the number of rows to skip for the page
func (q WordQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}

// Group is a named set of words
type Group struct {
	ID   int64  `db:"group_id" json:"group_id"`
	Name string `db:"group_name" json:"group_name"`
}

// StudyActivity belongs to exactly one group
type StudyActivity struct {
	ID      int64  `db:"study_activity_id" json:"id"`
	GroupID int64  `db:"group_id" json:"group_id"`
	Name    string `db:"name" json:"name"`
}

// StudySession is one run of a study activity
type StudySession struct {
	ID         int64      `db:"study_session_id" json:"id"`
	ActivityID int64      `db:"study_activity_id" json:"activity_id"`
	StartTime  time.Time  `db:"start_time" json:"start_time"`
	EndTime    *time.Time `db:"end_time" json:"end_time,omitempty"`
}

// ReviewItem is a single correct/incorrect outcome for a word within a session
type ReviewItem struct {
	ID        int64     `db:"word_review_item_id" json:"id"`
	SessionID int64     `db:"study_session_id" json:"study_session_id"`
	WordID    int64     `db:"word_id" json:"word_id"`
	IsCorrect bool      `db:"is_correct" json:"is_correct"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SessionSummary describes the most recent session for the dashboard
type SessionSummary struct {
	ID           int64     `db:"id" json:"id"`
	GroupID      int64     `db:"group_id" json:"group_id"`
	ActivityName string    `db:"activity_name" json:"activity_name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	CorrectCount int       `db:"correct_count" json:"correct_count"`
	WrongCount   int       `db:"wrong_count" json:"wrong_count"`
}
