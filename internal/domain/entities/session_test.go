package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionState_InFlight(t *testing.T) {
	tests := []struct {
		state    SessionState
		inFlight bool
	}{
		{StateIdle, false},
		{StateUploading, true},
		{StateProcessing, true},
		{StateReady, false},
		{StateErrored, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.inFlight, tt.state.InFlight())
		})
	}
}

func TestSelectedFile_IsPDF(t *testing.T) {
	t.Run("declared pdf", func(t *testing.T) {
		f := SelectedFile{Name: "report.pdf", ContentType: PDFContentType}
		assert.True(t, f.IsPDF())
	})

	t.Run("declaration wins over the name", func(t *testing.T) {
		f := SelectedFile{Name: "report.pdf", ContentType: "text/plain"}
		assert.False(t, f.IsPDF())
	})

	t.Run("empty content type", func(t *testing.T) {
		f := SelectedFile{Name: "report.pdf"}
		assert.False(t, f.IsPDF())
	})
}

func TestSessionSnapshot_Ready(t *testing.T) {
	t.Run("ready with a result", func(t *testing.T) {
		snap := SessionSnapshot{
			State:        StateReady,
			Presentation: &Presentation{Filename: "abc123.pptx"},
		}
		assert.True(t, snap.Ready())
	})

	t.Run("ready state alone is not enough", func(t *testing.T) {
		snap := SessionSnapshot{State: StateReady}
		assert.False(t, snap.Ready())
	})

	t.Run("result without the ready state", func(t *testing.T) {
		snap := SessionSnapshot{
			State:        StateErrored,
			Presentation: &Presentation{Filename: "abc123.pptx"},
		}
		assert.False(t, snap.Ready())
	})
}
