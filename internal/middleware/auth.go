package middleware

import (
	"context"
	"time"

	"langportal/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	authTimeout = 5 * time.Second

	msgFailure  = "Something went wrong. Please try again later."
	msgPassword = "Hi! Enter the password to continue:"
)

// Authorizer is the part of the auth service the middleware needs
type Authorizer interface {
	EnsureUserExists(ctx context.Context, userID int64) error
	IsAuthorized(ctx context.Context, userID int64) (bool, error)
}

var _ Authorizer = (*service.AuthService)(nil)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(auth Authorizer, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
			defer cancel()

			// Ensure user exists
			if err := auth.EnsureUserExists(ctx, userID); err != nil {
				logger.Error("Failed to ensure user exists in middleware", zap.Error(err))
				return c.Send(msgFailure)
			}

			// Check authorization
			authorized, err := auth.IsAuthorized(ctx, userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return c.Send(msgFailure)
			}

			// If not authorized and not /start command, prompt for password
			if !authorized && c.Text() != "/start" {
				if c.Callback() != nil {
					_ = c.Respond()
				}
				return c.Send(msgPassword)
			}

			// User is authorized or using /start, continue
			return next(c)
		}
	}
}
