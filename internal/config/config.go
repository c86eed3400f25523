// Package config provides configuration for the site backend.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Assistant settings
	AppMode       string // MOCK forces the offline provider
	LLMProvider   string // gemini, openai or mock
	LLMModel      string
	LLMBaseURL    string
	APIKey        string
	LLMTimeout    time.Duration // zero disables the per-call timeout
	GreetingDelay time.Duration

	// Storage and sessions
	DatabaseURL     string
	SessionCapacity int

	// WebSocket settings
	PingInterval   time.Duration
	WriteTimeout   time.Duration
	ReadTimeout    time.Duration
	MaxMessageSize int64

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file, then configuration from environment variables.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv loads configuration from environment variables only.
func FromEnv() *Config {
	return &Config{
		HTTPPort:        getEnvInt("HTTP_PORT", 8080),
		AppMode:         getEnv("APP_MODE", ""),
		LLMProvider:     getEnv("LLM_PROVIDER", "gemini"),
		LLMModel:        getEnv("LLM_MODEL", "gemini-2.5-flash"),
		LLMBaseURL:      getEnv("LLM_BASE_URL", ""),
		APIKey:          getEnv("API_KEY", getEnv("VITE_API_KEY", getEnv("GEMINI_API_KEY", ""))),
		LLMTimeout:      time.Duration(getEnvInt("LLM_TIMEOUT_MS", 0)) * time.Millisecond,
		GreetingDelay:   time.Duration(getEnvInt("GREETING_DELAY_MS", 500)) * time.Millisecond,
		DatabaseURL:     getEnv("DATABASE_URL", "file:alitaram?mode=memory&cache=shared"),
		SessionCapacity: getEnvInt("SESSION_CAPACITY", 1024),
		PingInterval:    time.Duration(getEnvInt("WS_PING_INTERVAL_MS", 30000)) * time.Millisecond,
		WriteTimeout:    time.Duration(getEnvInt("WS_WRITE_TIMEOUT_MS", 10000)) * time.Millisecond,
		ReadTimeout:     time.Duration(getEnvInt("WS_READ_TIMEOUT_MS", 60000)) * time.Millisecond,
		MaxMessageSize:  int64(getEnvInt("WS_MAX_MESSAGE_SIZE", 65536)),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
