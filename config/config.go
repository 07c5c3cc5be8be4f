package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	EnableFileLogging  bool
	MinSelectionPx     int
	CaptureDeadlineSec int
	Autotest           bool
}

func Load() (*Config, error) {
	// Try to load .env from the working directory or the executable's
	// directory; SNAPCLIP_ENV overrides both.
	envPaths := []string{".env"}
	if alt := os.Getenv("SNAPCLIP_ENV"); alt != "" {
		envPaths = []string{alt}
	} else if execPath, err := os.Executable(); err == nil {
		envPaths = append(envPaths, filepath.Join(filepath.Dir(execPath), ".env"))
	}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			godotenv.Load(envPath)
			break
		}
	}

	cfg := &Config{
		EnableFileLogging:  getEnvBool("ENABLE_FILE_LOGGING", true),
		MinSelectionPx:     getEnvInt("MIN_SELECTION_PX", 3),
		CaptureDeadlineSec: getEnvInt("CAPTURE_DEADLINE_SEC", 10),
		Autotest:           os.Getenv("SNAPCLIP_AUTOTEST") == "1",
	}

	return cfg, nil
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1"
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("Invalid %s=%q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
