// Package stub implements a local stand-in for the conversion backend.
// It speaks the same wire contract as the real service so the client
// stack can be exercised end to end without external infrastructure.
package stub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	httpadapter "github.com/piodoi/pdf2pps/internal/adapters/primary/http"
	"github.com/piodoi/pdf2pps/internal/adapters/secondary/export"
	"github.com/piodoi/pdf2pps/internal/adapters/secondary/outline"
	"github.com/piodoi/pdf2pps/internal/domain/entities"
)

const maxUploadBytes = 64 << 20

// detailResponse mirrors the backend's error envelope.
type detailResponse struct {
	Detail string `json:"detail"`
}

// processRequest is the body of a process call.
type processRequest struct {
	Filename string `json:"filename"`
}

// processResponse carries the generated outline back to the caller.
type processResponse struct {
	Filename string           `json:"filename"`
	Slides   []entities.Slide `json:"slides"`
}

// Server is a minimal conversion backend backed by local disk storage.
type Server struct {
	config   entities.StubConfig
	logger   *httpadapter.HTTPLogger
	builder  *outline.Builder
	exporter *export.MarkdownExporter

	storageDir string
	ownsDir    bool

	server  *http.Server
	mu      sync.Mutex
	running bool

	// names maps upload identifiers to their original file names so the
	// generated outline can carry a readable title
	names map[string]string
}

// NewServer creates a stub backend server. An empty storage dir in the
// config means a fresh per-run directory under the OS temp dir, removed
// again on Stop.
func NewServer(config entities.StubConfig, logger *httpadapter.HTTPLogger) (*Server, error) {
	storageDir := config.StorageDir
	ownsDir := false

	if storageDir == "" {
		dir, err := os.MkdirTemp("", "pdf2pps-stub-")
		if err != nil {
			return nil, fmt.Errorf("failed to create storage dir: %w", err)
		}
		storageDir = dir
		ownsDir = true
	} else {
		if err := os.MkdirAll(storageDir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create storage dir: %w", err)
		}
	}

	if logger == nil {
		logger = httpadapter.NewHTTPLogger("stub-backend", false)
	}

	return &Server{
		config:     config,
		logger:     logger,
		builder:    outline.NewBuilder(),
		exporter:   export.NewMarkdownExporter(),
		storageDir: storageDir,
		ownsDir:    ownsDir,
		names:      make(map[string]string),
	}, nil
}

// StorageDir returns the directory uploads and outlines are stored in.
func (s *Server) StorageDir() string {
	return s.storageDir
}

// Addr returns the host:port the server binds to.
func (s *Server) Addr() string {
	host := s.config.Host
	if host == "" {
		host = "localhost"
	}
	port := s.config.Port
	if port == 0 {
		port = 8000
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// Start begins serving on the configured address.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("stub server is already running")
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	s.server = &http.Server{
		Addr:              s.Addr(),
		Handler:           corsHandler.Handler(s.Routes()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.running = true
	s.logger.Info("stub backend listening on %s (storage: %s)", s.Addr(), s.storageDir)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("stub server error: %v", err)
		}
	}()

	return nil
}

// Stop shuts the server down and removes per-run storage.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	err := s.server.Shutdown(ctx)

	if s.ownsDir {
		if rmErr := os.RemoveAll(s.storageDir); rmErr != nil {
			s.logger.Warn("failed to remove storage dir: %v", rmErr)
		}
	}

	return err
}

// Routes builds the backend route table. Exposed separately so tests
// can drive the handlers through httptest.
func (s *Server) Routes() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/upload-pdf/", s.handleUpload).Methods("POST")
	router.HandleFunc("/process-pdf/", s.handleProcess).Methods("POST")
	router.HandleFunc("/download/{filename}", s.handleDownload).Methods("GET")
	router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	return router
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeDetail(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer func() { _ = file.Close() }()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		s.writeDetail(w, http.StatusBadRequest, "File must be a PDF")
		return
	}

	id := uuid.New().String()
	dst, err := os.Create(filepath.Join(s.storageDir, id+".pdf")) // #nosec G304 - path is uuid-derived
	if err != nil {
		s.writeDetail(w, http.StatusInternalServerError, "Failed to store file")
		return
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, file); err != nil {
		s.writeDetail(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	s.mu.Lock()
	s.names[id] = header.Filename
	s.mu.Unlock()

	s.logger.Info("stored upload %s (%s)", id, header.Filename)
	s.writeJSON(w, http.StatusOK, map[string]string{"filename": id})
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Filename == "" {
		s.writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id := filepath.Base(req.Filename)
	pdfPath := filepath.Join(s.storageDir, id+".pdf")

	data, err := os.ReadFile(pdfPath) // #nosec G304 - constrained to storage dir
	if err != nil {
		s.writeDetail(w, http.StatusNotFound, "PDF file not found")
		return
	}

	text := outline.ExtractPrintable(data)
	slides := s.builder.Build(text)

	s.mu.Lock()
	originalName := s.names[id]
	s.mu.Unlock()
	if originalName == "" {
		originalName = id
	}

	presentation := &entities.Presentation{
		Filename: id + ".md",
		Slides:   slides,
		Title:    s.builder.TitleFromFilename(originalName),
	}

	if err := s.exporter.WriteFile(filepath.Join(s.storageDir, id+".md"), presentation, originalName); err != nil {
		s.writeDetail(w, http.StatusInternalServerError, "Failed to generate presentation")
		return
	}

	s.logger.Info("generated outline %s.md (%d slides)", id, len(slides))
	s.writeJSON(w, http.StatusOK, processResponse{
		Filename: presentation.Filename,
		Slides:   slides,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := filepath.Base(vars["filename"])

	path := filepath.Join(s.storageDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		s.writeDetail(w, http.StatusNotFound, "Presentation not found")
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	http.ServeFile(w, r, path)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response: %v", err)
	}
}

func (s *Server) writeDetail(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, detailResponse{Detail: detail})
}
