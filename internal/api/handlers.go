package api

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"langportal/internal/chat"
	"langportal/internal/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type chatRequest struct {
	UserMessage string `json:"user_message"`
	ModelName   string `json:"model_name"`
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(healthResponse{Status: "healthy", Timestamp: time.Now().UTC()})
}

func (s *Server) dashboardStats(c *fiber.Ctx) error {
	stats, err := s.deps.Dashboard.Stats(c.UserContext())
	if err != nil {
		return s.storageError(c, err)
	}
	return c.JSON(stats)
}

func (s *Server) recentSession(c *fiber.Ctx) error {
	summary, err := s.deps.Sessions.RecentSession(c.UserContext())
	if err != nil {
		return s.storageError(c, err)
	}
	return c.JSON(summary)
}

func (s *Server) dbStats(c *fiber.Ctx) error {
	counts, err := s.deps.Counts.Counts(c.UserContext())
	if err != nil {
		return s.storageError(c, err)
	}
	return c.JSON(counts)
}

func (s *Server) listWords(c *fiber.Ctx) error {
	page, err := s.deps.Words.ListWords(c.UserContext(), domain.WordQuery{
		Search:    strings.TrimSpace(c.Query("search")),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order", "asc"),
		Page:      c.QueryInt("page", 1),
		PageSize:  c.QueryInt("page_size", 10),
	})
	if err != nil {
		return s.storageError(c, err)
	}
	return c.JSON(page)
}

func (s *Server) getWord(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Detail: "Invalid word id"})
	}

	word, err := s.deps.Words.GetWord(c.UserContext(), int64(id))
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{Detail: "Word not found"})
	}
	if err != nil {
		return s.storageError(c, err)
	}
	return c.JSON(word)
}

func (s *Server) listGroups(c *fiber.Ctx) error {
	groups, err := s.deps.Words.ListGroups(c.UserContext())
	if err != nil {
		return s.storageError(c, err)
	}
	return c.JSON(groups)
}

func (s *Server) groupWords(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Detail: "Invalid group id"})
	}

	words, err := s.deps.Words.GroupWords(c.UserContext(), int64(id))
	if err != nil {
		return s.storageError(c, err)
	}
	return c.JSON(words)
}

func (s *Server) listActivities(c *fiber.Ctx) error {
	activities, err := s.deps.Activities.ListActivities(c.UserContext())
	if err != nil {
		return s.storageError(c, err)
	}
	return c.JSON(activities)
}

func (s *Server) chat(c *fiber.Ctx) error {
	var req chatRequest
	if body := c.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Detail: "Invalid JSON format in request body."})
		}
	}

	message := strings.TrimSpace(req.UserMessage)
	if message == "" {
		message = chat.DefaultPrompt
	}
	model := req.ModelName
	if model == "" {
		model = s.deps.ChatSettings.Model
	}

	reply, err := s.deps.Chat.Chat(c.UserContext(), model,
		[]chat.Message{{Role: chat.RoleUser, Content: message}},
		chat.Options{
			Temperature: s.deps.ChatSettings.Temperature,
			NumPredict:  s.deps.ChatSettings.MaxTokens,
		},
	)
	if err != nil {
		s.logger.Error("Chat request failed", zap.String("model", model), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(errorResponse{Detail: err.Error()})
	}

	return c.JSON(reply)
}

// storageError maps store failures to HTTP statuses
func (s *Server) storageError(c *fiber.Ctx, err error) error {
	s.logger.Error("Storage request failed", zap.String("path", c.Path()), zap.Error(err))

	switch {
	case errors.Is(err, domain.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(errorResponse{Detail: "Database connection failed"})
	case errors.Is(err, domain.ErrStorageCorrupt):
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Detail: "Database query failed"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Detail: "Database error occurred"})
	}
}
