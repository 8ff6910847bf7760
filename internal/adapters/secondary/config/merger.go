package config

import (
	"os"
	"strconv"

	"github.com/piodoi/pdf2pps/internal/domain/entities"
	"github.com/piodoi/pdf2pps/internal/domain/ports"
)

// ConfigMerger implements the ConfigMerger interface
type ConfigMerger struct{}

// NewConfigMerger creates a new configuration merger
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge merges multiple configurations with later configs taking precedence.
// Called with no arguments it returns the defaults.
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 {
		return GetDefaultConfig()
	}

	result := deepCopy(configs[0])

	for i := 1; i < len(configs); i++ {
		if configs[i] != nil {
			m.mergeInto(result, configs[i])
		}
	}

	return result
}

// ApplyFlags applies CLI flag overrides to a configuration
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if apiBase, ok := flags["api-base"].(string); ok && apiBase != "" {
		result.API.BaseURL = apiBase
	}

	if timeout, ok := flags["timeout"].(int); ok && timeout > 0 {
		result.API.Timeout = timeout
	}

	if port, ok := flags["port"].(int); ok && port > 0 {
		result.Server.Port = port
	}

	if host, ok := flags["host"].(string); ok && host != "" {
		result.Server.Host = host
	}

	if stubPort, ok := flags["stub-port"].(int); ok && stubPort > 0 {
		result.Stub.Port = stubPort
	}

	if stubDir, ok := flags["stub-dir"].(string); ok && stubDir != "" {
		result.Stub.StorageDir = stubDir
	}

	if noBrowser, ok := flags["no-browser"].(bool); ok && noBrowser {
		result.Browser.NoOpen = true
	}

	if verbose, ok := flags["verbose"].(bool); ok && verbose {
		result.Logging.Verbose = true
	}

	return result
}

// ApplyEnvVars applies environment variable overrides to a configuration
func (m *ConfigMerger) ApplyEnvVars(config *entities.Config) *entities.Config {
	result := deepCopy(config)

	if base := os.Getenv("PDF2PPS_API_BASE"); base != "" {
		result.API.BaseURL = base
	}

	if timeoutStr := os.Getenv("PDF2PPS_API_TIMEOUT"); timeoutStr != "" {
		if timeout, err := strconv.Atoi(timeoutStr); err == nil && timeout >= 0 {
			result.API.Timeout = timeout
		}
	}

	if host := os.Getenv("PDF2PPS_HOST"); host != "" {
		result.Server.Host = host
	}

	if portStr := os.Getenv("PDF2PPS_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			result.Server.Port = port
		}
	}

	if dir := os.Getenv("PDF2PPS_STUB_DIR"); dir != "" {
		result.Stub.StorageDir = dir
	}

	if noOpenStr := os.Getenv("PDF2PPS_NO_BROWSER"); noOpenStr != "" {
		if noOpen, err := strconv.ParseBool(noOpenStr); err == nil {
			result.Browser.NoOpen = noOpen
		}
	}

	if level := os.Getenv("PDF2PPS_LOG_LEVEL"); level != "" {
		result.Logging.Level = level
	}

	return result
}

// mergeInto merges src into dst, with src values taking precedence
func (m *ConfigMerger) mergeInto(dst, src *entities.Config) {
	if src.API.BaseURL != "" {
		dst.API.BaseURL = src.API.BaseURL
	}
	if src.API.Timeout > 0 {
		dst.API.Timeout = src.API.Timeout
	}
	if src.API.UserAgent != "" {
		dst.API.UserAgent = src.API.UserAgent
	}

	if src.Server.Host != "" {
		dst.Server.Host = src.Server.Host
	}
	if src.Server.Port > 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.ReadTimeout > 0 {
		dst.Server.ReadTimeout = src.Server.ReadTimeout
	}
	if src.Server.WriteTimeout > 0 {
		dst.Server.WriteTimeout = src.Server.WriteTimeout
	}
	if src.Server.ShutdownTimeout > 0 {
		dst.Server.ShutdownTimeout = src.Server.ShutdownTimeout
	}
	if len(src.Server.CORSOrigins) > 0 {
		dst.Server.CORSOrigins = append([]string(nil), src.Server.CORSOrigins...)
	}

	if src.Stub.Host != "" {
		dst.Stub.Host = src.Stub.Host
	}
	if src.Stub.Port > 0 {
		dst.Stub.Port = src.Stub.Port
	}
	if src.Stub.StorageDir != "" {
		dst.Stub.StorageDir = src.Stub.StorageDir
	}

	if src.Browser.Browser != "" {
		dst.Browser.Browser = src.Browser.Browser
	}
	if src.Browser.NoOpen {
		dst.Browser.NoOpen = true
	}

	if src.Logging.Level != "" {
		dst.Logging.Level = src.Logging.Level
	}
	if src.Logging.Verbose {
		dst.Logging.Verbose = true
	}
}

// deepCopy creates an independent copy of a configuration
func deepCopy(config *entities.Config) *entities.Config {
	if config == nil {
		return GetDefaultConfig()
	}

	result := *config
	result.Server.CORSOrigins = append([]string(nil), config.Server.CORSOrigins...)
	return &result
}

// Ensure ConfigMerger implements ports.ConfigMerger
var _ ports.ConfigMerger = (*ConfigMerger)(nil)
