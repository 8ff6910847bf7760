package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piodoi/pdf2pps/internal/adapters/secondary/backend"
	"github.com/piodoi/pdf2pps/internal/adapters/secondary/config"
	"github.com/piodoi/pdf2pps/internal/domain/entities"
	"github.com/piodoi/pdf2pps/internal/domain/ports"
	"github.com/piodoi/pdf2pps/internal/domain/services"
)

// loadAndMergeConfig loads configuration with proper precedence:
// CLI flags > env vars > local config > global config > defaults.
func loadAndMergeConfig(cmd *cobra.Command) (*entities.Config, error) {
	workingDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}

	service := services.NewConfigService(config.NewTOMLLoader(), config.NewConfigMerger())

	finalConfig, err := service.LoadConfig(cmd.Context(), workingDir, collectFlags(cmd))
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	return finalConfig, nil
}

// collectFlags gathers changed CLI flags into the merger's override map.
func collectFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})

	stringFlags := []string{"api-base", "host", "stub-dir"}
	for _, name := range stringFlags {
		if cmd.Flags().Changed(name) {
			if v, err := cmd.Flags().GetString(name); err == nil {
				flags[name] = v
			}
		}
	}

	intFlags := []string{"timeout", "port", "stub-port"}
	for _, name := range intFlags {
		if cmd.Flags().Changed(name) {
			if v, err := cmd.Flags().GetInt(name); err == nil {
				flags[name] = v
			}
		}
	}

	boolFlags := []string{"no-browser", "verbose"}
	for _, name := range boolFlags {
		if cmd.Flags().Changed(name) {
			if v, err := cmd.Flags().GetBool(name); err == nil {
				flags[name] = v
			}
		}
	}

	return flags
}

// newBackendClient builds the backend client from the API configuration.
func newBackendClient(cfg *entities.Config) *backend.Client {
	httpClient := ports.NewRealHTTPClient(ports.HTTPClientConfig{
		Timeout:   cfg.API.GetTimeout(),
		UserAgent: cfg.API.GetUserAgent(),
	})
	return backend.NewClient(cfg.API.GetBaseURL(), httpClient)
}

// effectiveVerbose resolves the verbose setting from flag and config.
func effectiveVerbose(cmd *cobra.Command, cfg *entities.Config) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !cmd.Flags().Changed("verbose") {
		verbose = cfg.Logging.Verbose
	}
	return verbose
}
