package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piodoi/pdf2pps/internal/domain/entities"
)

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"report.pdf", entities.PDFContentType},
		{"REPORT.PDF", entities.PDFContentType},
		{"/tmp/uploads/report.pdf", entities.PDFContentType},
		{"notes.txt", "text/plain; charset=utf-8"},
		{"unknown.xyzext", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, contentTypeFor(tt.path))
		})
	}
}

func TestDerivedOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("docs", "abc123.pptx"),
		derivedOutputPath(filepath.Join("docs", "report.pdf"), "abc123.pptx"))

	// The backend name is treated as a bare file name.
	assert.Equal(t, filepath.Join(".", "abc123.pptx"),
		derivedOutputPath("report.pdf", "evil/abc123.pptx"))
}
