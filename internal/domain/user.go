package domain

import "time"

// User represents a bot user
type User struct {
	UserID     int64
	Authorized bool
	CreatedAt  time.Time
}

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle            UserState = "idle"
	StateWaitingWord     UserState = "waiting_word"
	StateWaitingAnswer   UserState = "waiting_answer"
	StateWaitingQuestion UserState = "waiting_question"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State     UserState
	SessionID int64
	Word      *Word
	MessageID int // For editing messages
}
