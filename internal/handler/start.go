package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgFailure  = "Something went wrong. Please try again later."
	msgPassword = "Hi! Enter the password to continue:"
	msgMainMenu = "🏠 Main menu\n\nChoose an action:"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	ctx, cancel := requestContext()
	defer cancel()

	// Ensure user exists in database
	if err := h.authService.EnsureUserExists(ctx, userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return c.Send(msgFailure)
	}

	// Check if authorized
	authorized, err := h.authService.IsAuthorized(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgFailure)
	}

	h.ResetState(userID)
	if !authorized {
		return c.Send(msgPassword)
	}

	// Show main menu
	return h.show(c, msgMainMenu, mainMenuMarkup())
}
