package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piodoi/pdf2pps/internal/domain/entities"
	"github.com/piodoi/pdf2pps/internal/domain/ports"
	"github.com/piodoi/pdf2pps/internal/domain/services"
	"github.com/piodoi/pdf2pps/internal/test/builders"
)

// fakeBackend is a scriptable in-process backend
type fakeBackend struct {
	healthErr    error
	uploadResult *entities.UploadResult
	uploadErr    error
	presentation *entities.Presentation
	processErr   error
	baseURL      string

	uploads   int
	processes int
}

func (f *fakeBackend) Health(ctx context.Context) error { return f.healthErr }

func (f *fakeBackend) Upload(ctx context.Context, name string, data io.Reader) (*entities.UploadResult, error) {
	f.uploads++
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return f.uploadResult, nil
}

func (f *fakeBackend) Process(ctx context.Context, filename string) (*entities.Presentation, error) {
	f.processes++
	if f.processErr != nil {
		return nil, f.processErr
	}
	return f.presentation, nil
}

func (f *fakeBackend) Download(ctx context.Context, filename string, dst io.Writer) error {
	return nil
}

func (f *fakeBackend) DownloadURL(filename string) string {
	return f.baseURL + "/download/" + filename
}

var _ ports.BackendClient = (*fakeBackend)(nil)

func newTestServer(backend ports.BackendClient) (*Server, http.Handler) {
	session := services.NewSessionService(backend)
	server := NewServer(session, NewSlidePreviewRenderer(), backend, &entities.ServerConfig{}, nil)
	return server, server.setupRoutes()
}

// pdfForm builds a multipart body whose "file" part declares contentType.
func pdfForm(t *testing.T, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)

	part, err := form.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	return &buf, form.FormDataContentType()
}

func TestHandleConvert(t *testing.T) {
	t.Run("full conversion returns a ready snapshot", func(t *testing.T) {
		backend := &fakeBackend{
			uploadResult: &entities.UploadResult{Filename: "abc123"},
			presentation: builders.NewPresentationBuilder().
				WithFilename("abc123.pptx").
				WithSlide(builders.NewSlideBuilder().WithTitle("Intro").WithContent("point A", "point B").Build()).
				Build(),
			baseURL: "http://localhost:8000",
		}
		_, handler := newTestServer(backend)

		body, contentType := pdfForm(t, "report.pdf", entities.PDFContentType, []byte("%PDF-1.4"))
		req := httptest.NewRequest(http.MethodPost, "/api/convert", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var snap entities.SessionSnapshot
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
		assert.Equal(t, entities.StateReady, snap.State)
		require.NotNil(t, snap.Presentation)
		assert.Equal(t, "abc123.pptx", snap.Presentation.Filename)
		assert.Equal(t, "Intro", snap.Presentation.Slides[0].Title)
		assert.Equal(t, 1, backend.uploads)
		assert.Equal(t, 1, backend.processes)
	})

	t.Run("non pdf is rejected before any backend call", func(t *testing.T) {
		backend := &fakeBackend{}
		_, handler := newTestServer(backend)

		body, contentType := pdfForm(t, "notes.txt", "text/plain", []byte("hello"))
		req := httptest.NewRequest(http.MethodPost, "/api/convert", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var snap entities.SessionSnapshot
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
		assert.Equal(t, entities.StateErrored, snap.State)
		assert.Equal(t, "Please select a PDF file", snap.Error)
		assert.Zero(t, backend.uploads)
	})

	t.Run("backend failure surfaces the phase message", func(t *testing.T) {
		backend := &fakeBackend{
			uploadErr: &ports.StatusError{Code: 500, Status: "500 Internal Server Error"},
		}
		_, handler := newTestServer(backend)

		body, contentType := pdfForm(t, "report.pdf", entities.PDFContentType, []byte("%PDF-1.4"))
		req := httptest.NewRequest(http.MethodPost, "/api/convert", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadGateway, rec.Code)
		var snap entities.SessionSnapshot
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
		assert.Equal(t, "Upload failed: 500 Internal Server Error", snap.Error)
		assert.Zero(t, backend.processes)
	})

	t.Run("missing file field", func(t *testing.T) {
		_, handler := newTestServer(&fakeBackend{})

		req := httptest.NewRequest(http.MethodPost, "/api/convert", bytes.NewReader(nil))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=none")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleSession(t *testing.T) {
	_, handler := newTestServer(&fakeBackend{})

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var snap entities.SessionSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Equal(t, entities.StateIdle, snap.State)
}

func TestHandlePreview(t *testing.T) {
	t.Run("without a presentation", func(t *testing.T) {
		_, handler := newTestServer(&fakeBackend{})

		req := httptest.NewRequest(http.MethodGet, "/api/preview", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("after a conversion", func(t *testing.T) {
		backend := &fakeBackend{
			uploadResult: &entities.UploadResult{Filename: "abc123"},
			presentation: builders.NewPresentationBuilder().
				WithFilename("abc123.pptx").
				WithSlide(builders.NewSlideBuilder().WithTitle("Intro").WithContent("point A").Build()).
				Build(),
		}
		_, handler := newTestServer(backend)

		body, contentType := pdfForm(t, "report.pdf", entities.PDFContentType, []byte("%PDF-1.4"))
		convert := httptest.NewRequest(http.MethodPost, "/api/convert", body)
		convert.Header.Set("Content-Type", contentType)
		handler.ServeHTTP(httptest.NewRecorder(), convert)

		req := httptest.NewRequest(http.MethodGet, "/api/preview", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var preview PreviewResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&preview))
		assert.Contains(t, preview.HTML, "Intro")
		assert.Contains(t, preview.HTML, "point A")
	})
}

func TestHandleHealth(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		_, handler := newTestServer(&fakeBackend{})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var health HealthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&health))
		assert.Equal(t, "ok", health.Backend)
	})

	t.Run("unreachable", func(t *testing.T) {
		_, handler := newTestServer(&fakeBackend{healthErr: errors.New("connection refused")})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var health HealthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&health))
		assert.Equal(t, "unreachable", health.Backend)
		assert.Contains(t, health.Error, "connection refused")
	})
}

func TestHandleDownload(t *testing.T) {
	t.Run("no result yields 404", func(t *testing.T) {
		_, handler := newTestServer(&fakeBackend{})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("redirects to the backend", func(t *testing.T) {
		backend := &fakeBackend{
			uploadResult: &entities.UploadResult{Filename: "abc123"},
			presentation: builders.NewPresentationBuilder().WithFilename("abc123.pptx").Build(),
			baseURL:      "http://localhost:8000",
		}
		_, handler := newTestServer(backend)

		body, contentType := pdfForm(t, "report.pdf", entities.PDFContentType, []byte("%PDF-1.4"))
		convert := httptest.NewRequest(http.MethodPost, "/api/convert", body)
		convert.Header.Set("Content-Type", contentType)
		handler.ServeHTTP(httptest.NewRecorder(), convert)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download", nil))

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "http://localhost:8000/download/abc123.pptx", rec.Header().Get("Location"))
	})
}

func TestStaticAssets(t *testing.T) {
	_, handler := newTestServer(&fakeBackend{})

	tests := []struct {
		path        string
		contentType string
		marker      string
	}{
		{"/", "text/html; charset=utf-8", "<title>PDF to Presentation</title>"},
		{"/assets/app.css", "text/css", ".container"},
		{"/assets/app.js", "text/javascript", "Please select a PDF file"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.marker)
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	_, handler := newTestServer(&fakeBackend{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}
