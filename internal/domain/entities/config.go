package entities

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	API     APIConfig     `toml:"api"`
	Server  ServerConfig  `toml:"server"`
	Stub    StubConfig    `toml:"stub"`
	Browser BrowserConfig `toml:"browser"`
	Logging LoggingConfig `toml:"logging"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("api config: %w", err)
	}

	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Stub.Validate(); err != nil {
		return fmt.Errorf("stub config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// DefaultAPIBaseURL is where the conversion backend is expected when no
// other configuration is given.
const DefaultAPIBaseURL = "http://localhost:8000"

// APIConfig describes how to reach the conversion backend
type APIConfig struct {
	// BaseURL is the backend base URL; empty means DefaultAPIBaseURL
	BaseURL string `toml:"base_url"`

	// Timeout is the whole-request timeout in seconds; 0 disables it so
	// long-running processing requests are never cut off client-side
	Timeout int `toml:"timeout"`

	// UserAgent is sent with every backend request
	UserAgent string `toml:"user_agent"`
}

// Validate validates backend API configuration
func (a APIConfig) Validate() error {
	if a.BaseURL != "" {
		parsed, err := url.Parse(a.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid base URL: %w", err)
		}

		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("base URL must use http or https, got %q", parsed.Scheme)
		}

		if parsed.Host == "" {
			return errors.New("base URL must include a host")
		}
	}

	if a.Timeout < 0 {
		return errors.New("timeout must be non-negative")
	}

	return nil
}

// GetBaseURL returns the configured base URL or the default
func (a APIConfig) GetBaseURL() string {
	if a.BaseURL == "" {
		return DefaultAPIBaseURL
	}
	return a.BaseURL
}

// GetTimeout returns the request timeout as a duration (0 = no timeout)
func (a APIConfig) GetTimeout() time.Duration {
	if a.Timeout <= 0 {
		return 0
	}
	return time.Duration(a.Timeout) * time.Second
}

// GetUserAgent returns the configured user agent or the default
func (a APIConfig) GetUserAgent() string {
	if a.UserAgent == "" {
		return "pdf2pps/1.0"
	}
	return a.UserAgent
}

// ServerConfig contains configuration for the local web client server
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	CORSOrigins     []string `toml:"cors_origins"`
}

// Validate validates server configuration
func (s ServerConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}

	if s.Host != "" {
		if ip := net.ParseIP(s.Host); ip == nil {
			if _, err := net.LookupHost(s.Host); err != nil {
				return fmt.Errorf("invalid host: %w", err)
			}
		}
	}

	if s.ReadTimeout < 0 {
		return errors.New("read timeout must be non-negative")
	}

	if s.WriteTimeout < 0 {
		return errors.New("write timeout must be non-negative")
	}

	if s.ShutdownTimeout < 0 {
		return errors.New("shutdown timeout must be non-negative")
	}

	for _, origin := range s.CORSOrigins {
		if origin == "" {
			return errors.New("CORS origin cannot be empty")
		}
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid CORS origin format: %s (must start with http:// or https://)", origin)
		}
	}

	return nil
}

// GetReadTimeout returns the read timeout as a duration
func (s ServerConfig) GetReadTimeout() time.Duration {
	if s.ReadTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.ReadTimeout) * time.Second
}

// GetWriteTimeout returns the write timeout as a duration. The default is
// no timeout: the convert endpoint holds its response open for the whole
// backend processing run.
func (s ServerConfig) GetWriteTimeout() time.Duration {
	if s.WriteTimeout <= 0 {
		return 0
	}
	return time.Duration(s.WriteTimeout) * time.Second
}

// GetShutdownTimeout returns the shutdown timeout as a duration
func (s ServerConfig) GetShutdownTimeout() time.Duration {
	if s.ShutdownTimeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// GetCORSOrigins returns the configured CORS origins or a safe default
func (s ServerConfig) GetCORSOrigins() []string {
	if len(s.CORSOrigins) == 0 {
		return []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	return s.CORSOrigins
}

// StubConfig contains configuration for the local stand-in backend
type StubConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`

	// StorageDir is where uploads and generated outlines are kept;
	// empty means a per-run directory under the OS temp dir
	StorageDir string `toml:"storage_dir"`
}

// Validate validates stub server configuration
func (s StubConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}
	return nil
}

// BrowserConfig contains browser launch configuration
type BrowserConfig struct {
	// NoOpen disables opening the web client automatically on serve
	NoOpen bool `toml:"no_open"`

	// Browser names a preferred browser, or "default"
	Browser string `toml:"browser"`
}

// AutoOpen reports whether serve should open the web client in a browser
func (b BrowserConfig) AutoOpen() bool {
	return !b.NoOpen
}

// LogLevel represents the logging verbosity level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level   string `toml:"level"` // debug, info, warn, error
	Verbose bool   `toml:"verbose"`
}

// Validate validates logging configuration
func (l LoggingConfig) Validate() error {
	switch LogLevel(l.Level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	case "":
		// Empty is okay, will use default
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l.Level)
	}
	return nil
}

// GetLevel returns the log level with default
func (l LoggingConfig) GetLevel() LogLevel {
	if l.Level == "" {
		return LogLevelInfo
	}
	return LogLevel(l.Level)
}
