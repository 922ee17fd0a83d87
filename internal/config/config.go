// internal/config/config.go

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	LLM         LLMConfig
	Search      SearchConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// LLMConfig holds completion-provider configuration
type LLMConfig struct {
	APIKey         string
	TextModel      string
	ReasoningModel string
	VisionModel    string
	Timeout        time.Duration
	RetryCooldown  time.Duration
}

// SearchConfig holds web-search-provider configuration
type SearchConfig struct {
	APIKey  string
	Timeout time.Duration
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout: getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			// Write and request ceilings leave room for the
			// dashboard's 90s rate-limit cooldown retry.
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 5*time.Minute),
			RequestTimeout:  getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 5*time.Minute),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		LLM: LLMConfig{
			APIKey:         getEnv("GROQ_API_KEY", ""),
			TextModel:      getEnv("LLM_TEXT_MODEL", "llama-3.1-8b-instant"),
			ReasoningModel: getEnv("LLM_REASONING_MODEL", "llama-3.3-70b-versatile"),
			VisionModel:    getEnv("LLM_VISION_MODEL", "meta-llama/llama-4-scout-17b-16e-instruct"),
			Timeout:        getEnvAsDuration("LLM_TIMEOUT", 30*time.Second),
			RetryCooldown:  getEnvAsDuration("LLM_RETRY_COOLDOWN", 90*time.Second),
		},
		Search: SearchConfig{
			APIKey:  getEnv("SERPAPI_KEY", ""),
			Timeout: getEnvAsDuration("SEARCH_TIMEOUT", 30*time.Second),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.LLM.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY not set")
	}
	if config.Search.APIKey == "" {
		return fmt.Errorf("SERPAPI_KEY not set")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
