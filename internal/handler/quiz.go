package handler

import (
	"errors"
	"fmt"

	"langportal/internal/domain"
	"langportal/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleQuiz shows a random word, starting a session on the first one
func (h *Handler) handleQuiz(c tele.Context) error {
	userID := c.Sender().ID

	lock := h.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	ctx, cancel := requestContext()
	defer cancel()

	word, err := h.wordService.GetRandomWord(ctx)
	if err != nil {
		h.logger.Error("Failed to get random word", zap.Error(err))
		return alert(c, storageMessage(err))
	}
	if word == nil {
		return alert(c, "You have no saved words yet")
	}

	sessionID := h.GetState(userID).SessionID
	if sessionID == 0 {
		sessionID, err = h.study.StartSession(ctx, quizGroup, quizActivity)
		if err != nil {
			h.logger.Error("Failed to start quiz session", zap.Error(err), zap.Int64("user_id", userID))
			return alert(c, storageMessage(err))
		}
	}

	h.SetState(userID, &domain.StateData{
		State:     domain.StateWaitingAnswer,
		SessionID: sessionID,
		Word:      word,
	})

	text := fmt.Sprintf("🎯 Translate:\n\n📝 %s (%s)\n\nType the meaning.", word.Text, word.Transliteration)
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnRemoveWord, btnFinishQuiz))

	return h.show(c, text, markup)
}

// handleRemoveWord deletes the word currently asked, keeping the session open
func (h *Handler) handleRemoveWord(c tele.Context) error {
	userID := c.Sender().ID

	lock := h.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	state := h.GetState(userID)
	if state.State != domain.StateWaitingAnswer || state.Word == nil {
		return alert(c, "There is no word to remove")
	}
	word := state.Word

	ctx, cancel := requestContext()
	defer cancel()

	err := h.wordService.DeleteWord(ctx, word.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		h.logger.Error("Failed to delete word",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("word_id", word.ID),
		)
		return alert(c, storageMessage(err))
	}

	h.SetState(userID, &domain.StateData{
		State:     domain.StateWaitingAnswer,
		SessionID: state.SessionID,
	})

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnNextWord, btnFinishQuiz))
	return h.show(c, fmt.Sprintf("🗑 %s (%s) removed from your vocabulary.", word.Text, word.Transliteration), markup)
}

// checkAnswer grades the answer and records the review
func (h *Handler) checkAnswer(c tele.Context, state *domain.StateData, answer string) error {
	userID := c.Sender().ID

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnNextWord, btnFinishQuiz))

	if state.Word == nil {
		return c.Send("Press \"Next word\" to continue.", markup)
	}

	word := state.Word
	correct := service.CheckAnswer(word, answer)

	ctx, cancel := requestContext()
	defer cancel()

	if err := h.study.RecordReview(ctx, state.SessionID, word.ID, correct); err != nil {
		if !errors.Is(err, domain.ErrConstraintViolation) {
			h.logger.Error("Failed to record review",
				zap.Error(err),
				zap.Int64("user_id", userID),
				zap.Int64("session_id", state.SessionID),
			)
			return c.Send(storageMessage(err), markup)
		}
		// The word was deleted while the question was open
		h.logger.Warn("Review of a removed word skipped", zap.Int64("word_id", word.ID))
	}

	h.SetState(userID, &domain.StateData{
		State:     domain.StateWaitingAnswer,
		SessionID: state.SessionID,
	})

	if correct {
		return c.Send("✅ Correct!", markup)
	}
	return c.Send(fmt.Sprintf("❌ Not quite. %s means: %s", word.Text, word.Meaning), markup)
}

// handleFinishQuiz closes the session and shows the score
func (h *Handler) handleFinishQuiz(c tele.Context) error {
	userID := c.Sender().ID

	lock := h.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	state := h.GetState(userID)
	h.ResetState(userID)

	if state.SessionID == 0 {
		return h.show(c, msgMainMenu, mainMenuMarkup())
	}

	ctx, cancel := requestContext()
	defer cancel()

	items, err := h.study.FinishSession(ctx, state.SessionID)
	if err != nil {
		h.logger.Error("Failed to finish session",
			zap.Error(err),
			zap.Int64("session_id", state.SessionID),
		)
		return alert(c, storageMessage(err))
	}

	return h.show(c, quizSummary(items), mainMenuMarkup())
}

// closeSession ends a session the user walked away from
func (h *Handler) closeSession(sessionID int64) {
	ctx, cancel := requestContext()
	defer cancel()

	if _, err := h.study.FinishSession(ctx, sessionID); err != nil {
		h.logger.Warn("Failed to close abandoned session",
			zap.Error(err),
			zap.Int64("session_id", sessionID),
		)
	}
}

func quizSummary(items []domain.ReviewItem) string {
	if len(items) == 0 {
		return "🏁 Session finished\n\nNo answers recorded."
	}

	correct := 0
	for _, item := range items {
		if item.IsCorrect {
			correct++
		}
	}
	return fmt.Sprintf("🏁 Session finished\n\nCorrect: %d of %d (%d%%)",
		correct, len(items), correct*100/len(items))
}
