package entities

import (
	"errors"
	"fmt"
)

// UploadResult is the backend response to a PDF upload: the server-assigned
// identifier under which the file was stored.
type UploadResult struct {
	Filename string `json:"filename"`
}

// Validate ensures the upload result carries an identifier
func (u *UploadResult) Validate() error {
	if u.Filename == "" {
		return errors.New("upload result is missing a filename")
	}
	return nil
}

// Presentation is the result of processing an uploaded PDF: the opaque
// identifier of the generated presentation file plus the slide outline.
type Presentation struct {
	// Filename is the server-assigned presentation identifier, used to
	// fetch the downloadable file via /download/{filename}
	Filename string `json:"filename"`

	// Slides contains the generated slides in order
	Slides []Slide `json:"slides"`

	// Title is a display title derived client-side from the source file.
	// It never travels on the wire.
	Title string `json:"-"`
}

// Validate ensures the presentation has an identifier and valid slides
func (p *Presentation) Validate() error {
	if p.Filename == "" {
		return errors.New("presentation filename is required")
	}

	for i, slide := range p.Slides {
		if err := slide.Validate(); err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}
	}

	return nil
}

// SlideCount returns the total number of slides
func (p *Presentation) SlideCount() int {
	return len(p.Slides)
}

// GetSlideByIndex returns a slide by its index (0-based)
func (p *Presentation) GetSlideByIndex(index int) (*Slide, error) {
	if index < 0 || index >= len(p.Slides) {
		return nil, fmt.Errorf("slide index %d out of range (0-%d)", index, len(p.Slides)-1)
	}
	return &p.Slides[index], nil
}
