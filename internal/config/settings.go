package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvBotToken        = "TELEGRAM_BOT_TOKEN"
	EnvDownloadPath    = "DOWNLOAD_PATH"
	EnvLogFilePath     = "LOG_FILE_PATH"
	EnvEnvironment     = "GO_ENV"
	EnvDownloadTimeout = "DOWNLOAD_TIMEOUT_SEC"
	EnvUploadTimeout   = "UPLOAD_TIMEOUT_SEC"
	EnvPollTimeout     = "POLL_TIMEOUT_SEC"
)

// Default values
const (
	DefaultDownloadPath       = "./downloads"
	DefaultLogFilePath        = "logs/tgfetch.log"
	DefaultEnvironment        = "development"
	DefaultDownloadTimeoutSec = 900
	DefaultUploadTimeoutSec   = 180
	DefaultPollTimeoutSec     = 60
)

// EnvironmentProduction switches console logging to JSON
const EnvironmentProduction = "production"

// Settings holds the runtime configuration, loaded once from the process
// environment (an optional .env file is merged in first).
type Settings struct {
	BotToken        string
	DownloadDir     string
	LogFilePath     string
	Environment     string
	DownloadTimeout time.Duration
	UploadTimeout   time.Duration
	PollTimeoutSec  int
}

// Load reads the environment into Settings. A missing bot token is the only
// load error; every other value falls back to its default.
func Load() (*Settings, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	token := os.Getenv(EnvBotToken)
	if token == "" {
		return nil, fmt.Errorf("%s is not set", EnvBotToken)
	}

	return &Settings{
		BotToken:        token,
		DownloadDir:     getEnv(EnvDownloadPath, DefaultDownloadPath),
		LogFilePath:     getEnv(EnvLogFilePath, DefaultLogFilePath),
		Environment:     getEnv(EnvEnvironment, DefaultEnvironment),
		DownloadTimeout: time.Duration(getEnvAsInt(EnvDownloadTimeout, DefaultDownloadTimeoutSec)) * time.Second,
		UploadTimeout:   time.Duration(getEnvAsInt(EnvUploadTimeout, DefaultUploadTimeoutSec)) * time.Second,
		PollTimeoutSec:  getEnvAsInt(EnvPollTimeout, DefaultPollTimeoutSec),
	}, nil
}

// IsProduction returns true when running with the production environment
func (s *Settings) IsProduction() bool {
	return s.Environment == EnvironmentProduction
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
