package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"langportal/internal/api"
	"langportal/internal/chat"
	"langportal/internal/config"
	"langportal/internal/database"
	"langportal/internal/handler"
	"langportal/internal/repository/sqlstore"
	"langportal/internal/scheduler"
	"langportal/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Language Portal")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("driver", cfg.Database.Driver),
		zap.String("timezone", cfg.Timezone),
	)

	// Connect to database with retries
	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := database.Migrate(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	userRepo := sqlstore.NewUserRepo(db)
	wordRepo := sqlstore.NewWordRepo(db)
	groupRepo := sqlstore.NewGroupRepo(db)
	studyRepo := sqlstore.NewStudyRepo(db)
	statsRepo := sqlstore.NewStatsRepo(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.BotPassword)
	wordService := service.NewWordService(wordRepo, groupRepo, logger)
	studyService := service.NewStudyService(studyRepo, groupRepo, logger)
	maintenance := service.NewMaintenanceService(studyRepo, logger)
	dashboard := service.NewLoggedDashboard(service.NewDashboardService(statsRepo, cfg.Location()), logger)

	chatClient := chat.NewClient(cfg.Chat)
	chatSettings := chat.Settings{
		Model:       cfg.Chat.Model,
		Temperature: cfg.Chat.Temperature,
		MaxTokens:   cfg.Chat.MaxTokens,
	}

	// HTTP API
	server := api.NewServer(api.Deps{
		Dashboard:    dashboard,
		Sessions:     studyService,
		Counts:       statsRepo,
		Words:        wordService,
		Activities:   studyService,
		Chat:         chatClient,
		ChatSettings: chatSettings,
		CORSOrigins:  cfg.CORSOrigins,
	}, logger)

	go func() {
		if err := server.Listen(cfg.HTTPAddr); err != nil {
			logger.Fatal("HTTP API stopped", zap.Error(err))
		}
	}()

	// Telegram bot is optional
	var bot *tele.Bot
	if cfg.BotToken != "" {
		bot, err = newBot(cfg, handler.Services{
			Auth:      authService,
			Words:     wordService,
			Study:     studyService,
			Dashboard: dashboard,
			Chats:     chat.NewRegistry(chatClient, chatSettings),
		}, logger)
		if err != nil {
			logger.Fatal("Failed to create bot", zap.Error(err))
		}

		go func() {
			logger.Info("Bot started successfully")
			bot.Start()
		}()
	} else {
		logger.Info("BOT_TOKEN not set, Telegram bot disabled")
	}

	// Close sessions nobody finished
	sched := scheduler.New(maintenance, cfg.Maintenance.StaleSessionAfter, cfg.Location(), logger)
	if err := sched.Start(cfg.Maintenance.Interval); err != nil {
		logger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping...")

	// Graceful shutdown
	sched.Stop()
	if bot != nil {
		bot.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Error("Failed to shut down HTTP API", zap.Error(err))
	}

	logger.Info("Stopped gracefully")
}

func newBot(cfg *config.Config, services handler.Services, logger *zap.Logger) (*tele.Bot, error) {
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logger.Error("Bot handler failed", zap.Error(err))
		},
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Telegram bot initialized")

	h := handler.NewHandler(bot, services, cfg.Location(), logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")
	return bot, nil
}
