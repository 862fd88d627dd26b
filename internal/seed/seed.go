package seed

import (
	"context"
	"fmt"
	"time"

	"langportal/internal/domain"
	"langportal/internal/repository"

	"go.uber.org/zap"
)

const sessionLength = 30 * time.Minute

// sample is one word studied once in its group's activity
type sample struct {
	word     domain.Word
	group    string
	activity string
	start    time.Time
	correct  bool
}

func samples() []sample {
	day := func(hour int) time.Time {
		return time.Date(2024, 1, 1, hour, 0, 0, 0, time.UTC)
	}
	return []sample{
		{
			word:     domain.Word{Text: "नमस्ते", Transliteration: "namaste", Meaning: "hello", PartOfSpeech: "greeting"},
			group:    "Basic Greetings",
			activity: "Greetings Quiz",
			start:    day(10),
			correct:  true,
		},
		{
			word:     domain.Word{Text: "धन्यवाद", Transliteration: "dhanyavaad", Meaning: "thank you", PartOfSpeech: "expression"},
			group:    "Expressions",
			activity: "Expressions Review",
			start:    day(11),
			correct:  false,
		},
		{
			word:     domain.Word{Text: "पानी", Transliteration: "paani", Meaning: "water", PartOfSpeech: "noun"},
			group:    "Common Words",
			activity: "Common Words Practice",
			start:    day(12),
			correct:  true,
		},
	}
}

// Seeder fills an empty store with sample vocabulary and study history
type Seeder struct {
	words  repository.WordRepository
	groups repository.GroupRepository
	study  repository.StudyRepository
	stats  repository.StatsRepository
	logger *zap.Logger
}

// New creates a seeder
func New(
	words repository.WordRepository,
	groups repository.GroupRepository,
	study repository.StudyRepository,
	stats repository.StatsRepository,
	logger *zap.Logger,
) *Seeder {
	return &Seeder{words: words, groups: groups, study: study, stats: stats, logger: logger}
}

// Seed inserts the sample data unless the store already has words.
// It reports whether anything was written.
func (s *Seeder) Seed(ctx context.Context) (bool, error) {
	counts, err := s.stats.Counts(ctx)
	if err != nil {
		return false, err
	}
	if counts.TotalWords > 0 {
		s.logger.Info("Store already has words, skipping seed", zap.Int("words", counts.TotalWords))
		return false, nil
	}

	for _, smp := range samples() {
		if err := s.insert(ctx, smp); err != nil {
			return false, fmt.Errorf("seed %q: %w", smp.word.Text, err)
		}
	}

	s.logger.Info("Sample data seeded", zap.Int("words", len(samples())))
	return true, nil
}

func (s *Seeder) insert(ctx context.Context, smp sample) error {
	word := smp.word
	word.CreatedAt = smp.start
	if err := s.words.CreateWord(ctx, &word); err != nil {
		return err
	}

	group, err := s.groups.CreateGroup(ctx, smp.group)
	if err != nil {
		return err
	}
	if err := s.groups.AddWord(ctx, group.ID, word.ID); err != nil {
		return err
	}

	activity := &domain.StudyActivity{GroupID: group.ID, Name: smp.activity}
	if err := s.study.CreateActivity(ctx, activity); err != nil {
		return err
	}

	sessionID, err := s.study.CreateSession(ctx, activity.ID, smp.start)
	if err != nil {
		return err
	}
	if err := s.study.AddReviewItem(ctx, &domain.ReviewItem{
		SessionID: sessionID,
		WordID:    word.ID,
		IsCorrect: smp.correct,
		CreatedAt: smp.start,
	}); err != nil {
		return err
	}
	return s.study.EndSession(ctx, sessionID, smp.start.Add(sessionLength))
}
