// Package outline builds slide outlines from plain text using a
// deterministic, rule-based pass: it groups sentences and detected bullet
// lines into a small fixed set of summary slides. It never inspects PDF
// structure; callers hand it whatever readable text they already have.
package outline

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/piodoi/pdf2pps/internal/domain/entities"
)

const (
	// MaxInputChars caps the text considered for the outline
	MaxInputChars = 20000

	// MaxSlides caps the generated outline length
	MaxSlides = 6

	introSentences    = 3
	keyPointLimit     = 5
	sentencesPerSlide = 4
)

// bulletLine matches numbered and bulleted list items at line start
var bulletLine = regexp.MustCompile(`^\s*(\d+\.|•|\*|-)\s+`)

// Builder turns plain text into a slide outline
type Builder struct {
	titler cases.Caser
}

// NewBuilder creates an outline builder
func NewBuilder() *Builder {
	return &Builder{titler: cases.Title(language.English)}
}

// Build produces the outline slides for the given text. Input with no
// recoverable sentences yields a single error slide, mirroring how the
// conversion service reports unreadable documents.
func (b *Builder) Build(text string) []entities.Slide {
	if len(text) > MaxInputChars {
		text = text[:MaxInputChars]
	}

	sentences := splitSentences(text)
	bullets := extractBullets(text)

	if len(sentences) == 0 && len(bullets) == 0 {
		return []entities.Slide{{
			Title: "Error Processing Document",
			Content: []string{
				"No readable text was found in the document",
				"Please try again or check if the PDF contains extractable text",
			},
		}}
	}

	slides := []entities.Slide{{
		Title:   "Document Summary",
		Content: []string{"Generated from PDF document", "Key points extracted"},
	}}

	if len(sentences) > 0 {
		intro := sentences
		if len(intro) > introSentences {
			intro = intro[:introSentences]
		}
		slides = append(slides, entities.Slide{
			Title:   "Introduction",
			Content: append([]string(nil), intro...),
		})
	}

	if len(bullets) > 0 {
		points := bullets
		if len(points) > keyPointLimit {
			points = points[:keyPointLimit]
		}
		slides = append(slides, entities.Slide{
			Title:   "Key Points",
			Content: append([]string(nil), points...),
		})
	}

	// Remaining sentences become numbered content slides, a few per slide.
	remaining := sentences
	if len(remaining) > introSentences {
		remaining = remaining[introSentences:]
	} else {
		remaining = nil
	}

	for i := 0; i < len(remaining) && len(slides) < MaxSlides; i += sentencesPerSlide {
		end := i + sentencesPerSlide
		if end > len(remaining) {
			end = len(remaining)
		}
		slides = append(slides, entities.Slide{
			Title:   "Content " + strconv.Itoa(i/sentencesPerSlide+1),
			Content: append([]string(nil), remaining[i:end]...),
		})
	}

	if len(slides) < MaxSlides && len(sentences) > 0 {
		slides = append(slides, entities.Slide{
			Title: "Conclusion",
			Content: []string{
				"End of document summary",
				"For more detailed information, please refer to the original document",
			},
		})
	}

	return slides
}

// TitleFromFilename derives a human-readable presentation title from a file
// name: extension stripped, separators spaced, title-cased.
func (b *Builder) TitleFromFilename(name string) string {
	base := name
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndexByte(base, '.'); idx > 0 {
		base = base[:idx]
	}

	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "Document Summary"
	}
	return b.titler.String(base)
}

// splitSentences breaks text into trimmed sentences on .!? boundaries
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 >= len(runes) || runes[i+1] == ' ' || runes[i+1] == '\n' || runes[i+1] == '\t' {
				flush()
			}
		}
	}
	flush()

	return sentences
}

// extractBullets collects bulleted and numbered list lines, markers stripped
func extractBullets(text string) []string {
	var bullets []string
	for _, line := range strings.Split(text, "\n") {
		if bulletLine.MatchString(line) {
			content := strings.TrimSpace(bulletLine.ReplaceAllString(line, ""))
			if content != "" {
				bullets = append(bullets, content)
			}
		}
	}
	return bullets
}
