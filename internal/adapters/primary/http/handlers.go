package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/piodoi/pdf2pps/internal/domain/ports"
)

// maxUploadBytes bounds the size of a browser-submitted PDF
const maxUploadBytes = 64 << 20

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string    `json:"error"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// PreviewResponse carries the rendered slide preview HTML
type PreviewResponse struct {
	HTML string `json:"html"`
}

// HealthResponse reports backend reachability for the page badge
type HealthResponse struct {
	Backend string `json:"backend"`
	Error   string `json:"error,omitempty"`
}

// handleIndex serves the single-page web client
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(indexHTML)); err != nil {
		s.logger.Error("Failed to write page: %v", err)
	}
}

func (s *Server) handleCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css")
	if _, err := w.Write([]byte(appCSS)); err != nil {
		s.logger.Error("Failed to write CSS: %v", err)
	}
}

func (s *Server) handleJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript")
	if _, err := w.Write([]byte(appJS)); err != nil {
		s.logger.Error("Failed to write JS: %v", err)
	}
}

// handleConvert accepts the file from the page and runs the full
// upload/process chain. The response is the final session snapshot; state
// transitions stream to the page over WebSocket while this request is held
// open.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid upload form", err)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "reading upload", err)
		return
	}

	if err := s.session.SelectFile(header.Filename, header.Header.Get("Content-Type"), data); err != nil {
		if errors.Is(err, ports.ErrSubmissionInFlight) {
			s.writeError(w, http.StatusConflict, "submission in progress", err)
			return
		}
		// Validation failures land in the snapshot for the page to show.
		s.writeJSON(w, http.StatusBadRequest, s.session.Snapshot())
		return
	}

	if err := s.session.Submit(r.Context()); err != nil {
		if errors.Is(err, ports.ErrSubmissionInFlight) {
			s.writeError(w, http.StatusConflict, "submission in progress", err)
			return
		}
		s.writeJSON(w, http.StatusBadGateway, s.session.Snapshot())
		return
	}

	s.writeJSON(w, http.StatusOK, s.session.Snapshot())
}

// handleSession returns the current session snapshot
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.session.Snapshot())
}

// handlePreview returns the rendered slide preview for the held result
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	snapshot := s.session.Snapshot()
	if snapshot.Presentation == nil {
		s.writeError(w, http.StatusNotFound, "no presentation available", nil)
		return
	}

	html, err := s.preview.RenderPreview(snapshot.Presentation)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "rendering preview", err)
		return
	}

	s.writeJSON(w, http.StatusOK, PreviewResponse{HTML: html})
}

// handleHealth reports whether the conversion backend is reachable
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.backend.Health(ctx); err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Backend: "unreachable",
			Error:   err.Error(),
		})
		return
	}

	s.writeJSON(w, http.StatusOK, HealthResponse{Backend: "ok"})
}

// handleDownload redirects the browser to the backend download URL. Without
// a held presentation identifier this is a 404, never a redirect.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	url := s.session.DownloadURL()
	if url == "" {
		s.writeError(w, http.StatusNotFound, "no presentation to download", nil)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

// writeJSON writes a JSON response with the given status
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response: %v", err)
	}
}

// writeError writes a JSON error response
func (s *Server) writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := ErrorResponse{
		Error:   http.StatusText(status),
		Message: msg,
		Time:    time.Now(),
	}
	if err != nil {
		resp.Message = msg + ": " + err.Error()
	}
	s.writeJSON(w, status, resp)
}
