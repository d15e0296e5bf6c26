package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ServerConfig holds the demo backend configuration, read from the environment.
type ServerConfig struct {
	Addr         string
	CatalogPath  string
	GeminiAPIKey string
	GeminiModel  string
	MaxTurns     int
}

// LoadServer reads the demo backend configuration. A .env file in the
// working directory is loaded first if present.
func LoadServer() *ServerConfig {
	// Missing .env is fine
	_ = godotenv.Load()

	return &ServerConfig{
		Addr:         getEnvOrDefault("NFTDESK_ADDR", ":5000"),
		CatalogPath:  getEnvOrDefault("NFTDESK_CATALOG", ""),
		GeminiAPIKey: getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:  getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		MaxTurns:     getEnvAsIntOrDefault("NFTDESK_MAX_TURNS", 50),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
