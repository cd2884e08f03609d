package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultLogMode         = "prod"
	defaultExternalTool    = "ffmpeg"
	defaultExternalTimeout = 120 * time.Second
)

type Config struct {
	LogMode              string
	LogFile              string
	WorkerCount          int
	ExternalTool         string
	ExternalToolTimeout  time.Duration
	ExternalToolDisabled bool
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}

	return n
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}

	return b
}

// LoadConfig reads envPath (when it exists) into the process environment and
// assembles the configuration from environment variables with defaults. A
// missing env file is fine, a malformed one is an error.
func LoadConfig(envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load configuration file: %w", err)
		}
	}

	workerCount := getEnvInt("WORKER_COUNT", 0)
	if workerCount < 0 {
		workerCount = 0
	}

	timeout := defaultExternalTimeout
	if seconds := getEnvInt("EXTERNAL_TOOL_TIMEOUT_SECONDS", 0); seconds > 0 {
		timeout = time.Duration(seconds) * time.Second
	}

	return &Config{
		LogMode:              getEnv("LOG_MODE", defaultLogMode),
		LogFile:              getEnv("LOG_FILE", ""),
		WorkerCount:          workerCount,
		ExternalTool:         getEnv("EXTERNAL_TOOL", defaultExternalTool),
		ExternalToolTimeout:  timeout,
		ExternalToolDisabled: getEnvBool("EXTERNAL_TOOL_DISABLED", false),
	}, nil
}
