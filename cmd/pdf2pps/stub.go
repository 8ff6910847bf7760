package main

import (
	"context"

	"github.com/spf13/cobra"

	webserver "github.com/piodoi/pdf2pps/internal/adapters/primary/http"
	"github.com/piodoi/pdf2pps/internal/adapters/primary/stub"
)

var (
	// Stub command flags
	stubPort int
	stubHost string
	stubDir  string
)

// stubCmd represents the stub command
var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run a local stand-in conversion backend",
	Long: `Start a local server that speaks the conversion backend's API.
Uploads are stored on disk and processed with a rule-based outline
builder, so the converter and web client can be exercised end to end
without the real service.

Example:
  pdf2pps stub
  pdf2pps stub --stub-port 9000 --stub-dir ./stub-data`,
	Args: cobra.NoArgs,
	RunE: runStub,
}

func init() {
	rootCmd.AddCommand(stubCmd)

	stubCmd.Flags().IntVar(&stubPort, "stub-port", 0, "Port for the stand-in backend (overrides config)")
	stubCmd.Flags().StringVar(&stubHost, "host", "", "Host to bind to (overrides config)")
	stubCmd.Flags().StringVar(&stubDir, "stub-dir", "", "Storage directory (overrides config, default: temp dir)")
}

func runStub(cmd *cobra.Command, args []string) error {
	cfg, err := loadAndMergeConfig(cmd)
	if err != nil {
		return err
	}

	verbose := effectiveVerbose(cmd, cfg)
	logger := webserver.NewHTTPLoggerWithLevel("stub-backend", verbose, cfg.Logging.GetLevel())

	server, err := stub.NewServer(cfg.Stub, logger)
	if err != nil {
		return err
	}

	if err := server.Start(); err != nil {
		return err
	}

	cmd.Printf("Stand-in backend running at: http://%s\n", server.Addr())
	cmd.Printf("Storage directory: %s\n", server.StorageDir())

	// Block until the signal handler cancels the root context.
	ctx := cmd.Context()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GetShutdownTimeout())
	defer cancel()

	return server.Stop(shutdownCtx)
}
