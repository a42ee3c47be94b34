package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	HTTPPort int
	GRPCPort int
	APIToken string

	Storage   string
	DBConnStr string

	RedisAddr     string
	RedisPassword string

	GeminiAPIKey       string
	GeminiModel        string
	GeminiInsightModel string

	CoinGeckoURL    string
	ExchangeRateURL string
	RatesTTL        time.Duration
	RatesSchedule   string

	// Location is the zone whose calendar day drives due-date reminders
	Location *time.Location

	LogLevel  string
	LogPretty bool
	DevMode   bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:           getEnvAsInt("HTTP_PORT", 8080),
		GRPCPort:           getEnvAsInt("GRPC_PORT", 9090),
		APIToken:           getEnv("API_TOKEN", "dev-token"),
		Storage:            getEnv("STORAGE", StoragePostgres),
		DBConnStr:          dbConnString(),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiInsightModel: getEnv("GEMINI_INSIGHT_MODEL", "gemini-2.5-flash"),
		CoinGeckoURL:       getEnv("COINGECKO_URL", ""),
		ExchangeRateURL:    getEnv("EXCHANGERATE_URL", ""),
		RatesTTL:           getEnvAsDuration("RATES_TTL", time.Hour),
		RatesSchedule:      getEnv("RATES_REFRESH_SCHEDULE", "@hourly"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogPretty:          getEnvAsBool("LOG_PRETTY", false),
		DevMode:            getEnvAsBool("DEV_MODE", false),
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.HTTPPort)
	}
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("GRPC_PORT must be between 1 and 65535, got %d", c.GRPCPort)
	}
	if c.HTTPPort == c.GRPCPort {
		return fmt.Errorf("HTTP_PORT and GRPC_PORT must differ")
	}
	if c.APIToken == "" {
		return fmt.Errorf("API_TOKEN is required")
	}
	if c.Storage != StoragePostgres && c.Storage != StorageMemory {
		return fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage)
	}
	if c.RatesTTL <= 0 {
		return fmt.Errorf("RATES_TTL must be positive")
	}
	return nil
}

// dbConnString returns DB_CONN_STR, or builds one from the individual DB_* variables
func dbConnString() string {
	if connStr := os.Getenv("DB_CONN_STR"); connStr != "" {
		return connStr
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "umbral"),
	)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
