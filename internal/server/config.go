package server

import (
	"os"
	"strconv"
	"time"
)

// Config holds server configuration from environment variables.
type Config struct {
	Port     string
	RedisURL string

	// Reaper settings, passed into the orchestrator at construction.
	Strategy  string
	BatchSize int
	Schedule  string
	KeyPrefix string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// LoadConfig reads configuration from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		Port:     getEnv("LOCKREAP_PORT", "8080"),
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		Strategy:  getEnv("LOCKREAP_STRATEGY", "atomic"),
		BatchSize: getEnvInt("LOCKREAP_BATCH_SIZE", 1000),
		Schedule:  getEnv("LOCKREAP_SCHEDULE", "@every 30s"),
		KeyPrefix: getEnv("LOCKREAP_KEY_PREFIX", "uniquejobs"),

		ReadTimeout:     getEnvDuration("LOCKREAP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    getEnvDuration("LOCKREAP_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:     getEnvDuration("LOCKREAP_IDLE_TIMEOUT", 120*time.Second),
		ShutdownTimeout: getEnvDuration("LOCKREAP_SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
