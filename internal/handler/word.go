package handler

import (
	"errors"
	"fmt"
	"strings"

	"langportal/internal/domain"
	"langportal/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	ctx, cancel := requestContext()
	defer cancel()

	// Ensure user exists
	if err := h.authService.EnsureUserExists(ctx, userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return nil
	}

	// Check authorization first
	authorized, err := h.authService.IsAuthorized(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgFailure)
	}

	// If not authorized, check password
	if !authorized {
		if !h.authService.CheckPassword(text) {
			return c.Send("Wrong password")
		}

		if err := h.authService.AuthorizeUser(ctx, userID); err != nil {
			h.logger.Error("Failed to authorize user", zap.Error(err))
			return c.Send(msgFailure)
		}

		h.logger.Info("User authorized", zap.Int64("user_id", userID))
		h.ResetState(userID)
		return c.Send("✅ Access granted!\n\n"+msgMainMenu, mainMenuMarkup())
	}

	// User is authorized, handle based on state
	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingWord:
		return h.saveWord(c, text)
	case domain.StateWaitingAnswer:
		return h.checkAnswer(c, state, text)
	case domain.StateWaitingQuestion:
		h.ResetState(userID)
		return h.ask(c, text)
	default:
		return c.Send(msgMainMenu, mainMenuMarkup())
	}
}

// handleAddWord asks for a new word
func (h *Handler) handleAddWord(c tele.Context) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingWord})

	text := "Send the word as\n\n" + service.WordInputFormat +
		"\n\nfor example: पानी | paani | water | noun"
	return h.show(c, text, cancelMarkup())
}

// saveWord parses and stores a word typed by the user
func (h *Handler) saveWord(c tele.Context, text string) error {
	userID := c.Sender().ID

	word, err := service.ParseWordInput(text)
	if err != nil {
		return c.Send("Expected format:\n"+service.WordInputFormat, cancelMarkup())
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := h.wordService.CreateWord(ctx, word); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Send("All four fields are required:\n"+service.WordInputFormat, cancelMarkup())
		}
		h.logger.Error("Failed to save word",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return c.Send(storageMessage(err))
	}

	h.logger.Info("Word saved",
		zap.Int64("user_id", userID),
		zap.Int64("word_id", word.ID),
	)

	// Stay in word mode for the next one
	return c.Send(
		fmt.Sprintf("✅ Saved: %s (%s) — %s\n\nSend the next word or go back to /start",
			word.Text, word.Transliteration, word.Meaning),
		cancelMarkup(),
	)
}

// storageMessage picks a user facing message for a store failure
func storageMessage(err error) string {
	if errors.Is(err, domain.ErrStorageUnavailable) {
		return "The database is unavailable right now. Please try again later."
	}
	return msgFailure
}
