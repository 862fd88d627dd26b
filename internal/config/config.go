package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	BotToken    string
	BotPassword string
	HTTPAddr    string `validate:"required"`
	Timezone    string `validate:"required"`
	CORSOrigins []string
	Database    DatabaseConfig
	Chat        ChatConfig
	Maintenance MaintenanceConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver   string `validate:"oneof=sqlite postgres"`
	Path     string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// ChatConfig holds settings of the local model server
type ChatConfig struct {
	BaseURL     string  `validate:"required,url"`
	Model       string  `validate:"required"`
	Retries     uint    `validate:"lte=10"`
	Temperature float64 `validate:"gte=0,lte=1"`
	MaxTokens   int     `validate:"gt=0"`
	Timeout     time.Duration
}

// MaintenanceConfig holds background job settings
type MaintenanceConfig struct {
	StaleSessionAfter time.Duration `validate:"gt=0"`
	Interval          time.Duration `validate:"gt=0"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		BotPassword: os.Getenv("BOT_PASSWORD"),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8000"),
		Timezone:    getEnv("TIMEZONE", "UTC"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", DriverSQLite),
			Path:     getEnv("DB_PATH", "lang_portal.db"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "langportal"),
			User:     getEnv("DB_USER", "langportal"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Chat: ChatConfig{
			BaseURL: getEnv("OLLAMA_URL", "http://localhost:11434"),
			Model:   getEnv("OLLAMA_MODEL", "llama3.2:1b"),
		},
	}

	var err error
	if cfg.Chat.Retries, err = getEnvUint("OLLAMA_RETRIES", 2); err != nil {
		return nil, err
	}
	if cfg.Chat.Temperature, err = getEnvFloat("OLLAMA_TEMPERATURE", 0.7); err != nil {
		return nil, err
	}
	if cfg.Chat.MaxTokens, err = getEnvInt("OLLAMA_MAX_TOKENS", 1000); err != nil {
		return nil, err
	}
	if cfg.Chat.Timeout, err = getEnvDuration("OLLAMA_TIMEOUT", 2*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Maintenance.StaleSessionAfter, err = getEnvDuration("STALE_SESSION_AFTER", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Maintenance.Interval, err = getEnvDuration("MAINTENANCE_INTERVAL", time.Hour); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.BotToken != "" && cfg.BotPassword == "" {
		return nil, fmt.Errorf("BOT_PASSWORD is required when BOT_TOKEN is set")
	}
	if cfg.Database.Driver == DriverPostgres && cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required for the postgres driver")
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	return cfg, nil
}

// Location returns the time zone calendar days are counted in
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DSN returns the driver specific connection string
func (c *DatabaseConfig) DSN() string {
	if c.Driver == DriverSQLite {
		return c.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvUint(key string, defaultValue uint) (uint, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be a non-negative integer: %w", key, err)
	}
	return uint(n), nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
