package http

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/piodoi/pdf2pps/internal/domain/entities"
	"github.com/piodoi/pdf2pps/internal/domain/ports"
)

// SlidePreviewRenderer renders a slide outline as a sanitized HTML fragment.
// Slide titles and bullets come from the backend and are treated as
// untrusted markdown.
type SlidePreviewRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewSlidePreviewRenderer creates a preview renderer
func NewSlidePreviewRenderer() *SlidePreviewRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
	)

	return &SlidePreviewRenderer{
		md:     md,
		policy: bluemonday.UGCPolicy(),
	}
}

// RenderPreview renders the presentation slides to an HTML fragment
func (r *SlidePreviewRenderer) RenderPreview(presentation *entities.Presentation) (string, error) {
	if presentation == nil {
		return "", errors.New("presentation cannot be nil")
	}

	var doc strings.Builder
	for _, slide := range presentation.Slides {
		doc.WriteString("## " + slide.Title + "\n\n")
		for _, point := range slide.Content {
			doc.WriteString("- " + point + "\n")
		}
		doc.WriteString("\n")
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(doc.String()), &buf); err != nil {
		return "", fmt.Errorf("rendering preview markdown: %w", err)
	}

	return r.policy.Sanitize(buf.String()), nil
}

// Ensure SlidePreviewRenderer implements ports.PreviewRenderer
var _ ports.PreviewRenderer = (*SlidePreviewRenderer)(nil)
