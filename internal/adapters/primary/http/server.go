// Package http serves the single-page web client: it hosts the page, drives
// the conversion session on the user's behalf, and pushes session state
// transitions to the browser over WebSocket.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/piodoi/pdf2pps/internal/domain/entities"
	"github.com/piodoi/pdf2pps/internal/domain/ports"
)

// Server hosts the web client and its small JSON API
type Server struct {
	server  *http.Server
	hub     *Hub
	session ports.ConversionSession
	preview ports.PreviewRenderer
	backend ports.BackendClient
	config  *entities.ServerConfig
	logger  *HTTPLogger
	mu      sync.RWMutex
	running bool
}

// NewServer creates a web client server.
// config must not be nil.
func NewServer(session ports.ConversionSession, preview ports.PreviewRenderer, backend ports.BackendClient, config *entities.ServerConfig, loggingConfig *entities.LoggingConfig) *Server {
	if config == nil {
		panic("server config cannot be nil - provide a valid ServerConfig")
	}

	level := entities.LogLevelInfo
	verbose := false
	if loggingConfig != nil {
		level = loggingConfig.GetLevel()
		verbose = loggingConfig.Verbose
	}

	return &Server{
		session: session,
		preview: preview,
		backend: backend,
		hub:     NewHub(),
		config:  config,
		logger:  NewHTTPLoggerWithLevel("server", verbose, level),
	}
}

// NotifySession pushes a session snapshot to all connected web clients.
// Wire it as the session's notifier.
func (s *Server) NotifySession(snapshot entities.SessionSnapshot) {
	s.hub.Broadcast(ports.UpdateEvent{
		Type:      "session",
		Timestamp: time.Now(),
		Session:   &snapshot,
	})
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context, port int, host string) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}

	go s.hub.Run(ctx)

	router := s.setupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.GetCORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      c.Handler(router),
		ReadTimeout:  s.config.GetReadTimeout(),
		WriteTimeout: s.config.GetWriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}
	s.running = true
	s.mu.Unlock()

	go func() {
		s.logger.Info("web client starting on %s:%d", host, port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("server not running")
	}

	s.hub.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.GetShutdownTimeout())
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.running = false
	return nil
}

// IsRunning returns whether the server is currently running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()

	// WebSocket endpoint
	router.HandleFunc("/ws", s.handleWebSocket)

	// JSON API
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/convert", s.handleConvert).Methods(http.MethodPost)
	api.HandleFunc("/session", s.handleSession).Methods(http.MethodGet)
	api.HandleFunc("/preview", s.handlePreview).Methods(http.MethodGet)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	// Download redirect to the backend
	router.HandleFunc("/download", s.handleDownload).Methods(http.MethodGet)

	// Page and static assets
	router.HandleFunc("/assets/app.css", s.handleCSS).Methods(http.MethodGet)
	router.HandleFunc("/assets/app.js", s.handleJS).Methods(http.MethodGet)
	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)

	// Middleware order: security -> logging -> recovery
	handler := securityHeadersMiddleware(router)
	handler = createLoggingMiddleware(handler, s.logger)
	handler = createRecoveryMiddleware(handler, s.logger)

	return handler
}
