package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds every runtime setting the server needs.
type Config struct {
	ServerPort int
	DBPath     string
	ExportDir  string
}

// Load reads configuration from an optional .env file and the process
// environment, falling back to defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		ServerPort: getEnvAsInt("SERVER_PORT", 8080),
		DBPath:     getEnv("SQLITE_DB_PATH", "./scheduler.db"),
		ExportDir:  getEnv("EXPORT_DIR", "./exports"),
	}
}

func getEnv(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}
