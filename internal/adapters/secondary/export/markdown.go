// Package export writes slide outlines to disk. The only supported format
// is a markdown document with YAML frontmatter, which round-trips cleanly
// into editors and other presentation tools.
package export

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/piodoi/pdf2pps/internal/domain/entities"
	"github.com/piodoi/pdf2pps/internal/domain/ports"
)

// MarkdownExporter renders a presentation outline as markdown
type MarkdownExporter struct {
	// now is swapped in tests for a fixed clock
	now func() time.Time
}

// NewMarkdownExporter creates a markdown exporter
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{now: time.Now}
}

// frontmatter is the YAML document header for exported outlines
type frontmatter struct {
	Title     string `yaml:"title"`
	Source    string `yaml:"source,omitempty"`
	Generated string `yaml:"generated"`
	Slides    int    `yaml:"slides"`
	Generator string `yaml:"generator"`
}

// Render produces the markdown document for a presentation. source names
// the original PDF and may be empty.
func (e *MarkdownExporter) Render(presentation *entities.Presentation, source string) ([]byte, error) {
	if presentation == nil {
		return nil, errors.New("presentation cannot be nil")
	}

	title := presentation.Title
	if title == "" {
		title = "Document Summary"
	}

	header, err := yaml.Marshal(frontmatter{
		Title:     title,
		Source:    source,
		Generated: e.now().Format("2006-01-02 15:04:05"),
		Slides:    len(presentation.Slides),
		Generator: "pdf2pps",
	})
	if err != nil {
		return nil, fmt.Errorf("encoding frontmatter: %w", err)
	}

	var doc strings.Builder
	doc.WriteString("---\n")
	doc.Write(header)
	doc.WriteString("---\n\n")
	doc.WriteString("# " + title + "\n")

	for _, slide := range presentation.Slides {
		doc.WriteString("\n## " + slide.Title + "\n\n")
		for _, point := range slide.Content {
			doc.WriteString("- " + point + "\n")
		}
	}

	return []byte(doc.String()), nil
}

// WriteFile renders the presentation and writes it to path
func (e *MarkdownExporter) WriteFile(path string, presentation *entities.Presentation, source string) error {
	doc, err := e.Render(presentation, source)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, doc, 0600); err != nil {
		return fmt.Errorf("writing outline to %s: %w", path, err)
	}
	return nil
}

// Ensure MarkdownExporter implements ports.OutlineExporter
var _ ports.OutlineExporter = (*MarkdownExporter)(nil)
