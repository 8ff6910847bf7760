package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/piodoi/pdf2pps/internal/domain/entities"
)

// GetDefaultConfig returns the default configuration with environment overrides
func GetDefaultConfig() *entities.Config {
	return &entities.Config{
		API: entities.APIConfig{
			BaseURL:   getEnvOrDefault("PDF2PPS_API_BASE", entities.DefaultAPIBaseURL),
			Timeout:   getEnvIntOrDefault("PDF2PPS_API_TIMEOUT", 0),
			UserAgent: getEnvOrDefault("PDF2PPS_USER_AGENT", ""),
		},
		Server: entities.ServerConfig{
			Host:            getEnvOrDefault("PDF2PPS_HOST", "localhost"),
			Port:            getEnvIntOrDefault("PDF2PPS_PORT", 3000),
			ReadTimeout:     getEnvIntOrDefault("PDF2PPS_READ_TIMEOUT", 30),
			WriteTimeout:    getEnvIntOrDefault("PDF2PPS_WRITE_TIMEOUT", 0),
			ShutdownTimeout: getEnvIntOrDefault("PDF2PPS_SHUTDOWN_TIMEOUT", 5),
			CORSOrigins: getEnvSliceOrDefault("PDF2PPS_CORS_ORIGINS", []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
			}),
		},
		Stub: entities.StubConfig{
			Host:       getEnvOrDefault("PDF2PPS_STUB_HOST", "localhost"),
			Port:       getEnvIntOrDefault("PDF2PPS_STUB_PORT", 8000),
			StorageDir: getEnvOrDefault("PDF2PPS_STUB_DIR", ""),
		},
		Browser: entities.BrowserConfig{
			NoOpen:  getEnvBoolOrDefault("PDF2PPS_NO_BROWSER", false),
			Browser: getEnvOrDefault("PDF2PPS_BROWSER", "default"),
		},
		Logging: entities.LoggingConfig{
			Level:   getEnvOrDefault("PDF2PPS_LOG_LEVEL", "info"),
			Verbose: getEnvBoolOrDefault("PDF2PPS_LOG_VERBOSE", false),
		},
	}
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvSliceOrDefault returns environment variable as comma-separated slice or default
func getEnvSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
