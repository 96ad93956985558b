package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/dxtrack/dxtrack/internal/awards"
	"github.com/dxtrack/dxtrack/internal/models"
)

// Config represents runtime configuration derived from environment variables.
type Config struct {
	Database DatabaseConfig
	Awards   AwardsConfig
	Resolver ResolverConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	URL           string
	MigrationsDir string
}

// AwardsConfig controls the award status engine.
type AwardsConfig struct {
	Confirmations models.ConfirmationFilters
	DupeScope     awards.DupeScope
}

// ResolverConfig controls the callsign resolver.
type ResolverConfig struct {
	CacheSize int
}

// LoggingConfig represents structured logging configuration.
type LoggingConfig struct {
	Level  slog.Level
	Format string
}

const (
	defaultMigrationsDir = "migrations"
	defaultCacheSize     = 1000
	defaultLogFormat     = "text"
)

// Load reads configuration from environment variables, applying defaults when
// values are not provided.
func Load() (Config, error) {
	cfg := Config{
		Database: DatabaseConfig{
			URL:           os.Getenv("DATABASE_URL"),
			MigrationsDir: getEnv("MIGRATIONS_DIR", defaultMigrationsDir),
		},
		Awards: AwardsConfig{
			Confirmations: models.ConfirmationFilters{
				Paper: getBool("AWARDS_CONFIRM_PAPER", true),
				Lotw:  getBool("AWARDS_CONFIRM_LOTW", true),
				Eqsl:  getBool("AWARDS_CONFIRM_EQSL", false),
			},
			DupeScope: awards.ParseDupeScope(os.Getenv("DUPE_SCOPE")),
		},
		Resolver: ResolverConfig{
			CacheSize: defaultCacheSize,
		},
		Logging: LoggingConfig{
			Level:  slog.LevelInfo,
			Format: defaultLogFormat,
		},
	}

	if v := os.Getenv("RESOLVER_CACHE_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			return Config{}, fmt.Errorf("invalid RESOLVER_CACHE_SIZE: must be a positive integer")
		}
		cfg.Resolver.CacheSize = size
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.Logging.Level = level
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		switch v {
		case "json", "text":
			cfg.Logging.Format = v
		default:
			return Config{}, fmt.Errorf("invalid LOG_FORMAT: must be 'json' or 'text'")
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch raw {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("must be one of debug, info, warn, error")
	}
}
