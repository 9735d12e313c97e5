package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	Environment    string
	LogLevel       slog.Level
	DataDir        string
	CampaignDBPath string
	WorldStatePath string
	RedisURL       string
	EventLimit     int
}

func Load() *Config {
	dataDir := getEnv("DATA_DIR", defaultDataDir())
	return &Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DataDir:        dataDir,
		CampaignDBPath: getEnv("CAMPAIGN_DB_PATH", filepath.Join(dataDir, "campaigns.db")),
		WorldStatePath: getEnv("WORLD_STATE_PATH", filepath.Join(dataDir, "world_state.db")),
		RedisURL:       getEnv("REDIS_URL", ""),
		EventLimit:     getEnvInt("EVENT_LIMIT", 100),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(home, ".config", "reverie")
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
