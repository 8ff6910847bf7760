package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/piodoi/pdf2pps/internal/domain/entities"
	"github.com/piodoi/pdf2pps/internal/domain/ports"
)

// SessionService drives a conversion session: it holds the selected file and
// the session state, and runs the two-step upload/process chain against the
// backend. The two calls are strictly sequential and a single attempt is
// best-effort: any failure is terminal for the attempt and the user must
// re-submit.
type SessionService struct {
	backend ports.BackendClient

	mu     sync.Mutex
	state  entities.SessionState
	file   *entities.SelectedFile
	errMsg string
	result *entities.Presentation

	// notify, when set, observes every state transition
	notify func(entities.SessionSnapshot)
}

// NewSessionService creates a session in the idle state
func NewSessionService(backend ports.BackendClient) *SessionService {
	return &SessionService{
		backend: backend,
		state:   entities.StateIdle,
	}
}

// SetNotifier registers an observer for state transitions. The observer is
// called outside the session lock and must not call back into the session
// mutators.
func (s *SessionService) SetNotifier(fn func(entities.SessionSnapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify = fn
}

// SelectFile stages a file for upload. Files not declared as
// application/pdf are rejected with the type error; a prior valid selection
// is left untouched in that case.
func (s *SessionService) SelectFile(name, contentType string, data []byte) error {
	file := &entities.SelectedFile{
		Name:        name,
		ContentType: contentType,
		Data:        data,
	}

	s.mu.Lock()
	if s.state.InFlight() {
		s.mu.Unlock()
		return ports.ErrSubmissionInFlight
	}

	if !file.IsPDF() {
		s.state = entities.StateErrored
		s.errMsg = entities.MsgNotPDF
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.emit(snap)
		return errors.New(entities.MsgNotPDF)
	}

	s.file = file
	s.errMsg = ""
	s.state = entities.StateIdle
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.emit(snap)
	return nil
}

// Submit uploads the selected file and requests processing. On success the
// session transitions to ready with the slide outline and presentation
// identifier stored; on any failure it transitions to errored with a
// user-facing message. The processing call is only issued after the upload
// succeeded.
func (s *SessionService) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.state.InFlight() {
		s.mu.Unlock()
		return ports.ErrSubmissionInFlight
	}

	file := s.file
	if file == nil {
		s.state = entities.StateErrored
		s.errMsg = entities.MsgNoFile
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.emit(snap)
		return errors.New(entities.MsgNoFile)
	}

	// A fresh attempt drops the previous result and error.
	s.result = nil
	s.errMsg = ""
	s.state = entities.StateUploading
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.emit(snap)

	upload, err := s.backend.Upload(ctx, file.Name, bytes.NewReader(file.Data))
	if err != nil {
		return s.fail(phaseMessage("Upload", err))
	}

	s.transition(entities.StateProcessing)

	presentation, err := s.backend.Process(ctx, upload.Filename)
	if err != nil {
		return s.fail(phaseMessage("Processing", err))
	}

	s.mu.Lock()
	s.result = presentation
	s.errMsg = ""
	s.state = entities.StateReady
	snap = s.snapshotLocked()
	s.mu.Unlock()
	s.emit(snap)
	return nil
}

// Snapshot returns an immutable view of the session
func (s *SessionService) Snapshot() entities.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// DownloadURL returns the download link for the held presentation, or the
// empty string when no result is held.
func (s *SessionService) DownloadURL() string {
	s.mu.Lock()
	result := s.result
	s.mu.Unlock()

	if result == nil || result.Filename == "" {
		return ""
	}
	return s.backend.DownloadURL(result.Filename)
}

// fail records a terminal error for the current attempt
func (s *SessionService) fail(msg string) error {
	s.mu.Lock()
	s.state = entities.StateErrored
	s.errMsg = msg
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.emit(snap)
	return errors.New(msg)
}

// transition moves the session to the given state and notifies observers
func (s *SessionService) transition(state entities.SessionState) {
	s.mu.Lock()
	s.state = state
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.emit(snap)
}

// snapshotLocked builds a snapshot; callers must hold s.mu
func (s *SessionService) snapshotLocked() entities.SessionSnapshot {
	snap := entities.SessionSnapshot{
		State: s.state,
		Error: s.errMsg,
	}
	if s.file != nil {
		snap.FileName = s.file.Name
	}
	if s.result != nil {
		result := *s.result
		result.Slides = append([]entities.Slide(nil), s.result.Slides...)
		snap.Presentation = &result
	}
	return snap
}

func (s *SessionService) emit(snap entities.SessionSnapshot) {
	s.mu.Lock()
	notify := s.notify
	s.mu.Unlock()

	if notify != nil {
		notify(snap)
	}
}

// phaseMessage maps a backend error to the user-facing message. Non-2xx
// responses get the phase-prefixed status text; transport and decoding
// failures surface their own message, with a generic fallback for errors
// that carry none.
func phaseMessage(phase string, err error) string {
	var statusErr *ports.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("%s failed: %s", phase, statusErr.Status)
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return entities.MsgUnknownError
}

// Ensure SessionService implements ports.ConversionSession
var _ ports.ConversionSession = (*SessionService)(nil)
