package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"langportal/internal/domain"
	"langportal/internal/repository"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// WordInputFormat describes the line format accepted by ParseWordInput
const WordInputFormat = "word | transliteration | meaning | part of speech [| origin]"

// WordService handles word-related business logic
type WordService struct {
	wordRepo  repository.WordRepository
	groupRepo repository.GroupRepository
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewWordService creates a new word service
func NewWordService(wordRepo repository.WordRepository, groupRepo repository.GroupRepository, logger *zap.Logger) *WordService {
	return &WordService{
		wordRepo:  wordRepo,
		groupRepo: groupRepo,
		validate:  validator.New(),
		logger:    logger,
	}
}

// ParseWordInput parses a pipe separated line into a word
func ParseWordInput(input string) (*domain.Word, error) {
	parts := strings.Split(input, "|")
	if len(parts) < 4 || len(parts) > 5 {
		return nil, fmt.Errorf("%w: expected %s", domain.ErrInvalidInput, WordInputFormat)
	}

	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	word := &domain.Word{
		Text:            parts[0],
		Transliteration: parts[1],
		Meaning:         parts[2],
		PartOfSpeech:    parts[3],
	}
	if len(parts) == 5 && parts[4] != "" {
		word.Origin = &parts[4]
	}
	return word, nil
}

// CreateWord validates and stores a new word
func (s *WordService) CreateWord(ctx context.Context, word *domain.Word) error {
	word.Text = strings.TrimSpace(word.Text)
	word.Transliteration = strings.TrimSpace(word.Transliteration)
	word.Meaning = strings.TrimSpace(word.Meaning)
	word.PartOfSpeech = strings.TrimSpace(word.PartOfSpeech)

	if err := s.validate.Struct(word); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if err := s.wordRepo.CreateWord(ctx, word); err != nil {
		return err
	}

	s.logger.Info("Word created", zap.Int64("word_id", word.ID), zap.String("word", word.Text))
	return nil
}

// GetWord returns a word by ID
func (s *WordService) GetWord(ctx context.Context, wordID int64) (*domain.Word, error) {
	return s.wordRepo.GetWord(ctx, wordID)
}

// UpdateWord validates and saves changes to an existing word
func (s *WordService) UpdateWord(ctx context.Context, word *domain.Word) error {
	if err := s.validate.Struct(word); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.wordRepo.UpdateWord(ctx, word)
}

// DeleteWord removes a word together with its reviews
func (s *WordService) DeleteWord(ctx context.Context, wordID int64) error {
	if err := s.wordRepo.DeleteWord(ctx, wordID); err != nil {
		return err
	}
	s.logger.Info("Word deleted", zap.Int64("word_id", wordID))
	return nil
}

// ListWords returns a page of words with the match count and total page count
func (s *WordService) ListWords(ctx context.Context, q domain.WordQuery) (*domain.WordPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}

	words, total, err := s.wordRepo.ListWords(ctx, q)
	if err != nil {
		return nil, err
	}

	// Calculate total pages
	totalPages := (total + q.PageSize - 1) / q.PageSize
	if totalPages == 0 {
		totalPages = 1
	}

	return &domain.WordPage{
		Items:      words,
		Total:      total,
		Page:       q.Page,
		PerPage:    q.PageSize,
		TotalPages: totalPages,
	}, nil
}

// GetRandomWord returns a random word, or nil when the vocabulary is empty
func (s *WordService) GetRandomWord(ctx context.Context) (*domain.Word, error) {
	return s.wordRepo.GetRandomWord(ctx)
}

// AddToGroup links a word to the named group, creating the group if needed
func (s *WordService) AddToGroup(ctx context.Context, wordID int64, groupName string) (*domain.Group, error) {
	group, err := ensureGroup(ctx, s.groupRepo, groupName)
	if err != nil {
		return nil, err
	}
	if err := s.groupRepo.AddWord(ctx, group.ID, wordID); err != nil {
		return nil, err
	}
	return group, nil
}

// RemoveFromGroup unlinks a word from the named group
func (s *WordService) RemoveFromGroup(ctx context.Context, wordID int64, groupName string) error {
	group, err := s.groupRepo.GetGroupByName(ctx, strings.TrimSpace(groupName))
	if err != nil {
		return err
	}
	if err := s.groupRepo.RemoveWord(ctx, group.ID, wordID); err != nil {
		return err
	}

	s.logger.Info("Word removed from group", zap.Int64("word_id", wordID), zap.String("group", group.Name))
	return nil
}

// FindGroup returns a group by name
func (s *WordService) FindGroup(ctx context.Context, name string) (*domain.Group, error) {
	return s.groupRepo.GetGroupByName(ctx, strings.TrimSpace(name))
}

// ListGroups returns all groups ordered by name
func (s *WordService) ListGroups(ctx context.Context) ([]domain.Group, error) {
	return s.groupRepo.ListGroups(ctx)
}

// GroupWords returns the words of a group
func (s *WordService) GroupWords(ctx context.Context, groupID int64) ([]domain.Word, error) {
	return s.groupRepo.GroupWords(ctx, groupID)
}

// ensureGroup returns the named group, creating it when absent
func ensureGroup(ctx context.Context, groups repository.GroupRepository, name string) (*domain.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is empty", domain.ErrInvalidInput)
	}

	group, err := groups.GetGroupByName(ctx, name)
	if err == nil {
		return group, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	group, err = groups.CreateGroup(ctx, name)
	if errors.Is(err, domain.ErrConstraintViolation) {
		// created concurrently
		return groups.GetGroupByName(ctx, name)
	}
	return group, err
}
