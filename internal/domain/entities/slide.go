package entities

import (
	"errors"
	"strings"
)

// Slide represents a single slide of a generated presentation: a title
// plus an ordered list of bullet points.
type Slide struct {
	// Title is the slide heading
	Title string `json:"title"`

	// Content holds the bullet points in display order
	Content []string `json:"content"`
}

// Validate ensures the slide has a usable title
func (s *Slide) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("slide title cannot be empty")
	}
	return nil
}

// HasContent returns true if the slide carries at least one non-empty bullet
func (s *Slide) HasContent() bool {
	for _, point := range s.Content {
		if strings.TrimSpace(point) != "" {
			return true
		}
	}
	return false
}

// BulletCount returns the number of bullet points on the slide
func (s *Slide) BulletCount() int {
	return len(s.Content)
}
