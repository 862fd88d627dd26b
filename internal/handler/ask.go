package handler

import (
	"context"
	"strings"

	"langportal/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleAsk handles /ask <question>
func (h *Handler) handleAsk(c tele.Context) error {
	question := strings.TrimSpace(c.Message().Payload)
	if question == "" {
		h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingQuestion})
		return c.Send("💬 What would you like to ask?", cancelMarkup())
	}
	return h.ask(c, question)
}

// handleAskButton waits for the next message as a question
func (h *Handler) handleAskButton(c tele.Context) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingQuestion})
	return h.show(c, "💬 What would you like to ask?", cancelMarkup())
}

// handleClearChat forgets the conversation history
func (h *Handler) handleClearChat(c tele.Context) error {
	h.chats.For(c.Sender().ID).Clear()
	return c.Send("🧹 Conversation cleared")
}

// ask forwards a question to the user's conversation with the model
func (h *Handler) ask(c tele.Context, question string) error {
	userID := c.Sender().ID

	if err := c.Notify(tele.Typing); err != nil {
		h.logger.Debug("Failed to send typing action", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	answer, err := h.chats.For(userID).Send(ctx, question)
	if err != nil {
		h.logger.Error("Chat request failed",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return c.Send("The tutor is not available right now. Please try again later.")
	}

	return c.Send(answer, backMarkup())
}
