// Package config loads runtime settings from the environment, with a .env
// file honoured in development.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting the backend reads.
type Config struct {
	// Port the HTTP server listens on.
	Port int

	// OpenAIAPIKey enables model-backed insights when set.
	OpenAIAPIKey string
	// OpenAIModel is the chat model used for all insight generation.
	OpenAIModel string

	// AllowedOrigins is the browser origin allowlist for CORS and the live
	// WebSocket.
	AllowedOrigins []string

	// DataDir is where flat-file snapshots are written.
	DataDir string

	// FirestoreProject selects the document store. Empty keeps invoice
	// persistence in memory.
	FirestoreProject string

	// LogLevel and LogPretty configure logging output.
	LogLevel  string
	LogPretty bool
}

var defaultOrigins = []string{
	"http://localhost:5176",
	"http://127.0.0.1:5176",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:             getEnvInt("PORT", 3001),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      getEnv("OPENAI_MODEL_ESG", "gpt-4o-mini"),
		AllowedOrigins:   getEnvList("FRONTEND_ORIGINS", defaultOrigins),
		DataDir:          getEnv("ESG_DATA_DIR", "."),
		FirestoreProject: os.Getenv("FIRESTORE_PROJECT_ID"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogPretty:        getEnvBool("LOG_PRETTY", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvList parses a comma-separated env var, dropping empty entries.
func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
