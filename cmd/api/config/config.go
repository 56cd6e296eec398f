package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port           string
	AllowedOrigins []string

	CompletionAPIKey  string
	CompletionBaseURL string
	CompletionModel   string
	CompletionRetries int

	HistoryWindow int // turns handed to the prompt builder
	HistoryLimit  int // turns retained in storage

	SummaryMinChars int
	MaxUploadBytes  int64

	RequestTimeout time.Duration
}

func NewConfig() *Config {
	return &Config{
		Port:              getEnv("PORT", "5000"),
		AllowedOrigins:    strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		CompletionAPIKey:  os.Getenv("COMPLETION_API_KEY"),
		CompletionBaseURL: os.Getenv("COMPLETION_BASE_URL"),
		CompletionModel:   getEnv("COMPLETION_MODEL", "gpt-3.5-turbo"),
		CompletionRetries: getEnvInt("COMPLETION_RETRIES", 2),
		HistoryWindow:     10,
		HistoryLimit:      20,
		SummaryMinChars:   100,
		MaxUploadBytes:    10 << 20,
		RequestTimeout:    90 * time.Second,
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
