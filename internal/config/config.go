package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Question count bounds exposed to the quiz settings UI.
const (
	MinQuestions     = 3
	MaxQuestions     = 15
	DefaultQuestions = 5
)

type Config struct {
	// Server
	Port string
	Env  string

	// Gemini AI. Empty means quiz generation is unavailable; document
	// extraction and learning-point preview still work.
	GeminiAPIKey string

	// Session cookie signing key
	SessionSecret string

	// Uploads
	MaxUploadMB int64

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		Env:           getEnvOrDefault("ENV", "development"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		SessionSecret: getEnvOrDefault("SESSION_SECRET", "flashquiz-dev-secret"),
		MaxUploadMB:   int64(getEnvAsIntOrDefault("MAX_UPLOAD_MB", 20)),
		FrontendURL:   getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

// ClampQuestionCount forces a requested question count into the allowed
// range, substituting the default for zero/unset.
func ClampQuestionCount(n int) int {
	if n == 0 {
		return DefaultQuestions
	}
	if n < MinQuestions {
		return MinQuestions
	}
	if n > MaxQuestions {
		return MaxQuestions
	}
	return n
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
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
