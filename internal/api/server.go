package api

import (
	"context"
	"strings"

	"langportal/internal/chat"
	"langportal/internal/domain"
	"langportal/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// RecentSessionSource returns the latest study session
type RecentSessionSource interface {
	RecentSession(ctx context.Context) (*domain.SessionSummary, error)
}

// CountsSource returns store row counts
type CountsSource interface {
	Counts(ctx context.Context) (domain.StoreCounts, error)
}

// WordSource serves the read-only vocabulary listings
type WordSource interface {
	ListWords(ctx context.Context, q domain.WordQuery) (*domain.WordPage, error)
	GetWord(ctx context.Context, wordID int64) (*domain.Word, error)
	ListGroups(ctx context.Context) ([]domain.Group, error)
	GroupWords(ctx context.Context, groupID int64) ([]domain.Word, error)
}

// ActivitySource lists study activities
type ActivitySource interface {
	ListActivities(ctx context.Context) ([]domain.StudyActivity, error)
}

// Deps are the collaborators served over HTTP
type Deps struct {
	Dashboard    service.DashboardProvider
	Sessions     RecentSessionSource
	Counts       CountsSource
	Words        WordSource
	Activities   ActivitySource
	Chat         chat.Completer
	ChatSettings chat.Settings
	CORSOrigins  []string
}

// Server exposes the dashboard and chat over HTTP
type Server struct {
	app    *fiber.App
	deps   Deps
	logger *zap.Logger
}

// NewServer creates the fiber app with all routes registered
func NewServer(deps Deps, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "langportal",
		DisableStartupMessage: true,
	})

	s := &Server{app: app, deps: deps, logger: logger}

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(deps.CORSOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,OPTIONS",
	}))
	app.Use(RequestLogger(logger))

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health", s.health)

	// the dashboard is served under both prefixes for older clients
	s.app.Get("/dashboard/stats", s.dashboardStats)
	s.app.Get("/dashboard/recent-session", s.recentSession)

	api := s.app.Group("/api")
	api.Get("/dashboard/stats", s.dashboardStats)
	api.Get("/dashboard/recent-session", s.recentSession)
	api.Get("/system/db-stats", s.dbStats)

	api.Get("/words", s.listWords)
	api.Get("/words/:id", s.getWord)
	api.Get("/groups", s.listGroups)
	api.Get("/groups/:id/words", s.groupWords)
	api.Get("/study-activities", s.listActivities)

	api.Post("/chat", s.chat)
}

// App returns the underlying fiber app
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves HTTP on addr until Shutdown
func (s *Server) Listen(addr string) error {
	s.logger.Info("HTTP server listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
