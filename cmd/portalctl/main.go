package main

import (
	"fmt"
	"os"

	"langportal/internal/config"
	"langportal/internal/database"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var debugMode bool

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "portalctl",
		Short:         "Language portal maintenance tool",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newSeedCommand())
	cmd.AddCommand(newImportCommand())
	cmd.AddCommand(newStatsCommand())
	cmd.AddCommand(newWordsCommand())
	cmd.AddCommand(newGroupsCommand())
	cmd.AddCommand(newActivitiesCommand())
	return cmd
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// env is what every subcommand works with
type env struct {
	cfg    *config.Config
	db     *sqlx.DB
	logger *zap.Logger
}

func (e *env) Close() {
	e.db.Close()
	_ = e.logger.Sync()
}

// openEnv loads the configuration and opens a migrated store
func openEnv() (*env, error) {
	logger, err := newLogger(debugMode)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(db, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &env{cfg: cfg, db: db, logger: logger}, nil
}
