package ports

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/piodoi/pdf2pps/internal/domain/entities"
)

// ErrSubmissionInFlight is returned when a session mutator is called while
// a previous submission is still running.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// StatusError reports a non-2xx response from the conversion backend. The
// session distinguishes it from transport errors to phrase its messages.
type StatusError struct {
	// Code is the HTTP status code
	Code int

	// Status is the full status line, e.g. "404 Not Found"
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected backend status: %s", e.Status)
}

// BackendClient defines the interface to the conversion backend API
type BackendClient interface {
	// Health checks backend reachability via the healthz endpoint
	Health(ctx context.Context) error

	// Upload stores a PDF on the backend and returns its identifier
	Upload(ctx context.Context, name string, data io.Reader) (*entities.UploadResult, error)

	// Process converts a previously uploaded PDF into a presentation
	Process(ctx context.Context, filename string) (*entities.Presentation, error)

	// Download streams the generated presentation file to dst
	Download(ctx context.Context, filename string, dst io.Writer) error

	// DownloadURL returns the browser-facing URL for a presentation file
	DownloadURL(filename string) string
}

// ConversionSession defines the interface for the upload/process session
// controller driven by the CLI and the web client server
type ConversionSession interface {
	// SelectFile stages a file for upload; only application/pdf is accepted
	SelectFile(name, contentType string, data []byte) error

	// Submit runs the upload and process calls in sequence
	Submit(ctx context.Context) error

	// Snapshot returns an immutable view of the session
	Snapshot() entities.SessionSnapshot

	// DownloadURL returns the download link for the held result, or ""
	DownloadURL() string
}
