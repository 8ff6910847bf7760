package ports

import (
	"time"

	"github.com/piodoi/pdf2pps/internal/domain/entities"
)

// UpdateEvent is pushed to web clients when the session changes
type UpdateEvent struct {
	// Type is the event kind, currently "connected" or "session"
	Type string `json:"type"`

	// Timestamp is when the event was emitted
	Timestamp time.Time `json:"timestamp"`

	// Session carries the session snapshot for "session" events
	Session *entities.SessionSnapshot `json:"session,omitempty"`

	// Data carries event-specific payloads for other event types
	Data interface{} `json:"data,omitempty"`
}

// PreviewRenderer renders a slide outline as sanitized HTML for the web page
type PreviewRenderer interface {
	// RenderPreview renders the presentation slides to an HTML fragment
	RenderPreview(presentation *entities.Presentation) (string, error)
}

// OutlineExporter writes a slide outline as a markdown document
type OutlineExporter interface {
	// Render produces the markdown document for a presentation
	Render(presentation *entities.Presentation, source string) ([]byte, error)

	// WriteFile renders the presentation and writes it to path
	WriteFile(path string, presentation *entities.Presentation, source string) error
}
