// Package builders provides fluent test data builders for domain entities.
package builders

import (
	"strconv"

	"github.com/piodoi/pdf2pps/internal/domain/entities"
)

// PresentationBuilder helps build Presentation entities for testing
type PresentationBuilder struct {
	presentation *entities.Presentation
}

// NewPresentationBuilder creates a new presentation builder with sensible defaults
func NewPresentationBuilder() *PresentationBuilder {
	return &PresentationBuilder{
		presentation: &entities.Presentation{
			Filename: "test.pptx",
			Title:    "Test Presentation",
			Slides:   []entities.Slide{},
		},
	}
}

// WithFilename sets the backend file identifier
func (b *PresentationBuilder) WithFilename(filename string) *PresentationBuilder {
	b.presentation.Filename = filename
	return b
}

// WithTitle sets the presentation title
func (b *PresentationBuilder) WithTitle(title string) *PresentationBuilder {
	b.presentation.Title = title
	return b
}

// WithSlides sets the presentation slides
func (b *PresentationBuilder) WithSlides(slides []entities.Slide) *PresentationBuilder {
	b.presentation.Slides = slides
	return b
}

// WithSlide adds a single slide to the presentation
func (b *PresentationBuilder) WithSlide(slide entities.Slide) *PresentationBuilder {
	b.presentation.Slides = append(b.presentation.Slides, slide)
	return b
}

// WithSlideCount adds the given number of generated slides
func (b *PresentationBuilder) WithSlideCount(count int) *PresentationBuilder {
	for i := 0; i < count; i++ {
		b.presentation.Slides = append(b.presentation.Slides, entities.Slide{
			Title:   "Slide " + strconv.Itoa(i+1),
			Content: []string{"Bullet " + strconv.Itoa(i+1)},
		})
	}
	return b
}

// Build returns the built presentation
func (b *PresentationBuilder) Build() *entities.Presentation {
	return b.presentation
}

// SlideBuilder helps build Slide entities for testing
type SlideBuilder struct {
	slide entities.Slide
}

// NewSlideBuilder creates a new slide builder with sensible defaults
func NewSlideBuilder() *SlideBuilder {
	return &SlideBuilder{
		slide: entities.Slide{
			Title:   "Test Slide",
			Content: []string{},
		},
	}
}

// WithTitle sets the slide title
func (b *SlideBuilder) WithTitle(title string) *SlideBuilder {
	b.slide.Title = title
	return b
}

// WithContent sets the slide bullets
func (b *SlideBuilder) WithContent(content ...string) *SlideBuilder {
	b.slide.Content = content
	return b
}

// Build returns the built slide
func (b *SlideBuilder) Build() entities.Slide {
	return b.slide
}

// SelectedFileBuilder helps build SelectedFile entities for testing
type SelectedFileBuilder struct {
	file *entities.SelectedFile
}

// NewSelectedFileBuilder creates a new selected file builder with a PDF default
func NewSelectedFileBuilder() *SelectedFileBuilder {
	return &SelectedFileBuilder{
		file: &entities.SelectedFile{
			Name:        "test.pdf",
			ContentType: entities.PDFContentType,
			Data:        []byte("%PDF-1.4 test"),
		},
	}
}

// WithName sets the file name
func (b *SelectedFileBuilder) WithName(name string) *SelectedFileBuilder {
	b.file.Name = name
	return b
}

// WithContentType sets the declared content type
func (b *SelectedFileBuilder) WithContentType(contentType string) *SelectedFileBuilder {
	b.file.ContentType = contentType
	return b
}

// WithData sets the file payload
func (b *SelectedFileBuilder) WithData(data []byte) *SelectedFileBuilder {
	b.file.Data = data
	return b
}

// Build returns the built file
func (b *SelectedFileBuilder) Build() *entities.SelectedFile {
	return b.file
}
