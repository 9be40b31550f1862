package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

const (
	MinTickInterval = 20 * time.Millisecond
	MaxTickInterval = 2 * time.Second
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Snapshot store
	StoreDriver string
	DatabaseURL string
	SQLitePath  string

	// Response cache; empty disables it
	RedisURL      string
	RedisPoolSize int
	CacheTTL      time.Duration

	// Admin token for catalog sync; empty disables the endpoint
	AdminJWTSecret string

	// Data Dragon
	DataDragonBaseURL string
	DataDragonVersion string
	DataDragonLocale  string
	FetchTimeout      time.Duration

	// Roulette
	TickInterval time.Duration
	RulesFile    string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		StoreDriver:       getEnv("STORE_DRIVER", StoreSQLite),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		SQLitePath:        getEnv("SQLITE_PATH", "league-roulette.db"),
		RedisURL:          getEnv("REDIS_URL", ""),
		RedisPoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
		AdminJWTSecret:    getEnv("ADMIN_JWT_SECRET", ""),
		DataDragonBaseURL: getEnv("DDRAGON_BASE_URL", "https://ddragon.leagueoflegends.com"),
		DataDragonVersion: getEnv("DDRAGON_VERSION", ""),
		DataDragonLocale:  getEnv("DDRAGON_LOCALE", "en_US"),
		RulesFile:         getEnv("RULES_FILE", ""),
	}

	var err error
	if cfg.CacheTTL, err = getEnvDuration("DDRAGON_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = getEnvDuration("FETCH_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.TickInterval, err = getEnvDuration("TICK_INTERVAL", 100*time.Millisecond); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.TickInterval < MinTickInterval || c.TickInterval > MaxTickInterval {
		return fmt.Errorf("TICK_INTERVAL must be between %s and %s, got %s", MinTickInterval, MaxTickInterval, c.TickInterval)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("150ms") or a bare number of
// milliseconds.
func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
