package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds CLI configuration.
type Config struct {
	APIBaseURL      string        `env:"SAFETYDESK_API_BASE_URL" env-default:"http://127.0.0.1:8000"`
	RequestTimeout  time.Duration `env:"SAFETYDESK_REQUEST_TIMEOUT" env-default:"10s"`
	LogPath         string        `env:"SAFETYDESK_LOG_PATH"`
	LogLevel        string        `env:"SAFETYDESK_LOG_LEVEL" env-default:"info"`
	IncludeArchived bool          `env:"SAFETYDESK_INCLUDE_ARCHIVED" env-default:"false"`
}

// ParseFlags parses command-line flags and environment configuration.
// Flags take precedence over the environment; .env files fill in
// anything the environment leaves unset.
func ParseFlags() (*Config, error) {
	// Load .env files first so env-based defaults work with flag parsing.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	config := &Config{}
	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	apiBaseURL := flag.String("api", "", "Backend API base URL (or set SAFETYDESK_API_BASE_URL)")
	logPath := flag.String("log", "", "Path to log file (default: ~/.safetydesk/safetydesk.log)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	includeArchived := flag.Bool("archived", false, "Include archived incidents in the listing")
	flag.Parse()

	if *apiBaseURL != "" {
		config.APIBaseURL = *apiBaseURL
	}
	if *logPath != "" {
		config.LogPath = *logPath
	}
	if *logLevel != "" {
		config.LogLevel = *logLevel
	}
	if *includeArchived {
		config.IncludeArchived = true
	}

	if config.LogPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		config.LogPath = filepath.Join(home, ".safetydesk", "safetydesk.log")
	}

	return config, nil
}
