package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/piodoi/pdf2pps/internal/test/builders"
)

func fixedClockExporter() *MarkdownExporter {
	e := NewMarkdownExporter()
	e.now = func() time.Time {
		return time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	}
	return e
}

func TestMarkdownExporter_Render(t *testing.T) {
	t.Run("nil presentation", func(t *testing.T) {
		_, err := NewMarkdownExporter().Render(nil, "")
		assert.Error(t, err)
	})

	t.Run("full document", func(t *testing.T) {
		presentation := builders.NewPresentationBuilder().
			WithTitle("Annual Report").
			WithSlide(builders.NewSlideBuilder().WithTitle("Intro").WithContent("point A", "point B").Build()).
			WithSlide(builders.NewSlideBuilder().WithTitle("Conclusion").WithContent("done").Build()).
			Build()

		doc, err := fixedClockExporter().Render(presentation, "report.pdf")
		require.NoError(t, err)

		text := string(doc)
		assert.Contains(t, text, "title: Annual Report\n")
		assert.Contains(t, text, "source: report.pdf\n")
		assert.Contains(t, text, "generated: 2026-03-15 10:30:00\n")
		assert.Contains(t, text, "slides: 2\n")
		assert.Contains(t, text, "generator: pdf2pps\n")
		assert.Contains(t, text, "# Annual Report\n")
		assert.Contains(t, text, "## Intro\n\n- point A\n- point B\n")
		assert.Contains(t, text, "## Conclusion\n\n- done\n")
	})

	t.Run("frontmatter parses back", func(t *testing.T) {
		presentation := builders.NewPresentationBuilder().WithSlideCount(3).Build()

		doc, err := fixedClockExporter().Render(presentation, "")
		require.NoError(t, err)

		parts := splitFrontmatter(t, string(doc))
		var header struct {
			Title  string `yaml:"title"`
			Source string `yaml:"source"`
			Slides int    `yaml:"slides"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(parts), &header))
		assert.Equal(t, "Test Presentation", header.Title)
		assert.Empty(t, header.Source)
		assert.Equal(t, 3, header.Slides)
	})

	t.Run("empty title falls back", func(t *testing.T) {
		presentation := builders.NewPresentationBuilder().WithTitle("").Build()

		doc, err := fixedClockExporter().Render(presentation, "")
		require.NoError(t, err)

		assert.Contains(t, string(doc), "# Document Summary\n")
	})
}

func TestMarkdownExporter_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outline.md")
	presentation := builders.NewPresentationBuilder().WithSlideCount(1).Build()

	require.NoError(t, fixedClockExporter().WriteFile(path, presentation, "report.pdf"))

	data, err := os.ReadFile(path) // #nosec G304 - temp path
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Slide 1")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

// splitFrontmatter extracts the YAML between the document's fences.
func splitFrontmatter(t *testing.T, doc string) string {
	t.Helper()
	require.True(t, len(doc) > 4 && doc[:4] == "---\n")
	end := 4
	for ; end < len(doc)-4; end++ {
		if doc[end:end+4] == "---\n" {
			break
		}
	}
	return doc[4:end]
}
