package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/piodoi/pdf2pps/internal/adapters/secondary/browser"
	"github.com/piodoi/pdf2pps/internal/adapters/secondary/export"
	"github.com/piodoi/pdf2pps/internal/domain/entities"
	"github.com/piodoi/pdf2pps/internal/domain/ports"
	"github.com/piodoi/pdf2pps/internal/domain/services"
)

var (
	// Convert command flags
	outputPath  string
	outlinePath string
	noDownload  bool
	openResult  bool
	checkFirst  bool
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert a PDF into a presentation",
	Long: `Upload a PDF document to the conversion backend, wait for the
generated slide deck, and download it next to the input file.

Example:
  pdf2pps convert report.pdf
  pdf2pps convert report.pdf --output deck.pptx --outline deck.md
  pdf2pps convert report.pdf --api-base http://backend:8000 --no-download`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Where to save the presentation (default: next to the input)")
	convertCmd.Flags().StringVar(&outlinePath, "outline", "", "Also write the slide outline as markdown to this path")
	convertCmd.Flags().BoolVar(&noDownload, "no-download", false, "Skip downloading the presentation file")
	convertCmd.Flags().BoolVar(&openResult, "open", false, "Open the download URL in the browser instead of downloading")
	convertCmd.Flags().BoolVar(&checkFirst, "check", false, "Verify backend reachability before uploading")
}

func runConvert(cmd *cobra.Command, args []string) error {
	pdfPath := args[0]

	cfg, err := loadAndMergeConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLoggerWithLevel(effectiveVerbose(cmd, cfg), cfg.Logging.GetLevel())
	client := newBackendClient(cfg)
	ctx := cmd.Context()

	if checkFirst {
		healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := client.Health(healthCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("backend at %s is not reachable: %w", client.BaseURL(), err)
		}
		logger.Info("Backend at %s is reachable", client.BaseURL())
	}

	data, err := readInputFile(pdfPath)
	if err != nil {
		return err
	}

	session := services.NewSessionService(client)
	session.SetNotifier(func(snap entities.SessionSnapshot) {
		switch snap.State {
		case entities.StateUploading:
			logger.Info("Uploading %s (%d bytes)...", filepath.Base(pdfPath), len(data))
		case entities.StateProcessing:
			logger.Info("Upload complete, generating slides...")
		}
	})

	if err := session.SelectFile(filepath.Base(pdfPath), contentTypeFor(pdfPath), data); err != nil {
		return err
	}
	if err := session.Submit(ctx); err != nil {
		return err
	}

	snapshot := session.Snapshot()
	printSlideSummary(cmd, snapshot.Presentation)

	if outlinePath != "" {
		exporter := export.NewMarkdownExporter()
		if err := exporter.WriteFile(outlinePath, snapshot.Presentation, filepath.Base(pdfPath)); err != nil {
			return fmt.Errorf("writing outline: %w", err)
		}
		cmd.Printf("Outline written to %s\n", outlinePath)
	}

	if openResult {
		launcher := browser.NewLauncher()
		if err := launcher.Launch(session.DownloadURL(), false); err != nil {
			logger.Warn("Failed to open browser: %v", err)
		}
		return nil
	}

	if noDownload {
		cmd.Printf("Presentation available at %s\n", session.DownloadURL())
		return nil
	}

	destination := outputPath
	if destination == "" {
		destination = derivedOutputPath(pdfPath, snapshot.Presentation.Filename)
	}

	if err := downloadPresentation(ctx, client, snapshot.Presentation.Filename, destination); err != nil {
		return err
	}

	cmd.Printf("Presentation saved to %s\n", destination)
	return nil
}

// readInputFile validates and reads the input document.
func readInputFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("accessing input file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("input path is not a regular file: %s", path)
	}

	data, err := os.ReadFile(path) // #nosec G304 - path validated above
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}
	return data, nil
}

// contentTypeFor derives the declared content type from the file extension.
func contentTypeFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".pdf" {
		return entities.PDFContentType
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

// derivedOutputPath places the result next to the input, keeping the
// backend's file name.
func derivedOutputPath(pdfPath, resultName string) string {
	return filepath.Join(filepath.Dir(pdfPath), filepath.Base(resultName))
}

// printSlideSummary writes the generated outline to the terminal.
func printSlideSummary(cmd *cobra.Command, presentation *entities.Presentation) {
	if presentation == nil {
		return
	}

	cmd.Printf("Generated %d slides:\n", presentation.SlideCount())
	for i, slide := range presentation.Slides {
		cmd.Printf("  %d. %s\n", i+1, slide.Title)
		for _, bullet := range slide.Content {
			cmd.Printf("     - %s\n", bullet)
		}
	}
}

// downloadPresentation streams the generated file to disk.
func downloadPresentation(ctx context.Context, client ports.BackendClient, filename, destination string) error {
	out, err := os.Create(destination) // #nosec G304 - user-chosen output path
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	if err := client.Download(ctx, filename, out); err != nil {
		_ = out.Close()
		_ = os.Remove(destination)
		return fmt.Errorf("downloading presentation: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}
