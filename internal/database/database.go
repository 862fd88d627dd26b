package database

import (
	"embed"
	"errors"
	"fmt"
	"time"

	"langportal/internal/config"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratelite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

//go:embed migrations
var migrations embed.FS

// MemoryDSN opens a private in-memory SQLite database
const MemoryDSN = ":memory:?_pragma=foreign_keys(1)&_time_format=sqlite"

const (
	maxRetries = 30
	retryDelay = 2 * time.Second
)

// Open connects to the configured database with retries
func Open(cfg config.DatabaseConfig, logger *zap.Logger) (*sqlx.DB, error) {
	attempts := maxRetries
	if cfg.Driver == config.DriverSQLite {
		// a local file either opens or it does not
		attempts = 1
	}
	return connect(cfg.Driver, cfg.DSN(), attempts, logger)
}

// OpenMemory opens and migrates a fresh in-memory SQLite database
func OpenMemory(logger *zap.Logger) (*sqlx.DB, error) {
	db, err := connect(config.DriverSQLite, MemoryDSN, 1, logger)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db, logger); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func connect(driver, dsn string, attempts int, logger *zap.Logger) (*sqlx.DB, error) {
	var db *sqlx.DB
	var err error

	for i := 0; i < attempts; i++ {
		db, err = sqlx.Open(driver, dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.String("driver", driver),
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.String("driver", driver),
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			if i+1 < attempts {
				time.Sleep(retryDelay)
			}
			continue
		}

		configurePool(db, driver)
		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
}

func configurePool(db *sqlx.DB, driver string) {
	if driver == config.DriverSQLite {
		// one writer, and an in-memory database lives only as long as its connection
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		return
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
}

// Migrate applies the embedded migrations for the connection's driver.
// The migrate instance is not closed since that would close db as well.
func Migrate(db *sqlx.DB, logger *zap.Logger) error {
	src, err := iofs.New(migrations, "migrations/"+db.DriverName())
	if err != nil {
		return fmt.Errorf("failed to open migrations for %s: %w", db.DriverName(), err)
	}

	var driver migratedb.Driver
	switch db.DriverName() {
	case config.DriverPostgres:
		driver, err = migratepg.WithInstance(db.DB, &migratepg.Config{})
	case config.DriverSQLite:
		driver, err = migratelite.WithInstance(db.DB, &migratelite.Config{})
	default:
		return fmt.Errorf("unsupported database driver %q", db.DriverName())
	}
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, db.DriverName(), driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}
