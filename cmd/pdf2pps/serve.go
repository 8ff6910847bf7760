package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	webserver "github.com/piodoi/pdf2pps/internal/adapters/primary/http"
	"github.com/piodoi/pdf2pps/internal/adapters/secondary/browser"
	"github.com/piodoi/pdf2pps/internal/domain/entities"
	"github.com/piodoi/pdf2pps/internal/domain/services"
)

var (
	// Serve command flags
	servePort int
	serveHost string
	noBrowser bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local web client",
	Long: `Start a local HTTP server hosting the conversion web client. The
page lets you pick a PDF, follow the upload and processing phases live
over a WebSocket connection, preview the generated slides, and download
the result.

Example:
  pdf2pps serve
  pdf2pps serve --port 8080 --no-browser
  pdf2pps serve --api-base http://backend:8000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to serve on (overrides config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (overrides config)")
	serveCmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Don't open browser automatically (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadAndMergeConfig(cmd)
	if err != nil {
		return err
	}
	if err := validateServeConfig(cfg); err != nil {
		return err
	}

	logger := newLoggerWithLevel(effectiveVerbose(cmd, cfg), cfg.Logging.GetLevel())
	client := newBackendClient(cfg)

	session := services.NewSessionService(client)
	preview := webserver.NewSlidePreviewRenderer()
	server := webserver.NewServer(session, preview, client, &cfg.Server, &cfg.Logging)
	session.SetNotifier(server.NotifySession)

	ctx := cmd.Context()
	if err := server.Start(ctx, cfg.Server.Port, cfg.Server.Host); err != nil {
		return fmt.Errorf("starting web client server: %w", err)
	}

	url := fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Success("Web client running at: %s", url)
	logger.Info("Conversion backend: %s", client.BaseURL())

	if cfg.Browser.AutoOpen() {
		openBrowserIfConfigured(url, logger)
	}

	// Block until the signal handler cancels the root context.
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GetShutdownTimeout())
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("Error during shutdown: %v", err)
	}
	return nil
}

// openBrowserIfConfigured opens the browser, logging failures only.
func openBrowserIfConfigured(url string, logger *Logger) {
	launcher := browser.NewLauncher()
	if err := launcher.Launch(url, false); err != nil {
		logger.Warn("Failed to open browser: %v", err)
	}
}

// validateServeConfig validates configuration after it's loaded
func validateServeConfig(config *entities.Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", config.Server.Port)
	}
	return nil
}
