package entities

// SessionState describes where a conversion session currently is. A session
// is in exactly one state at any time.
type SessionState string

const (
	StateIdle       SessionState = "idle"
	StateUploading  SessionState = "uploading"
	StateProcessing SessionState = "processing"
	StateReady      SessionState = "ready"
	StateErrored    SessionState = "errored"
)

// InFlight reports whether a network request is outstanding for this state.
// New submissions are rejected while a request is in flight.
func (s SessionState) InFlight() bool {
	return s == StateUploading || s == StateProcessing
}

// PDFContentType is the only declared MIME type accepted for selection.
const PDFContentType = "application/pdf"

// User-facing messages for the session error states. These are part of the
// client contract and rendered verbatim.
const (
	MsgNotPDF       = "Please select a PDF file"
	MsgNoFile       = "Please select a file first"
	MsgUnknownError = "An unknown error occurred"
)

// SelectedFile is a locally selected file pending upload.
type SelectedFile struct {
	// Name is the original file name as selected by the user
	Name string

	// ContentType is the declared MIME type of the file
	ContentType string

	// Data is the file content
	Data []byte
}

// IsPDF reports whether the file was declared as a PDF
func (f *SelectedFile) IsPDF() bool {
	return f.ContentType == PDFContentType
}

// SessionSnapshot is an immutable view of a session, safe to serialize.
type SessionSnapshot struct {
	State        SessionState  `json:"state"`
	FileName     string        `json:"file,omitempty"`
	Error        string        `json:"error,omitempty"`
	Presentation *Presentation `json:"presentation,omitempty"`
}

// Ready reports whether the snapshot holds a downloadable result
func (s SessionSnapshot) Ready() bool {
	return s.State == StateReady && s.Presentation != nil && s.Presentation.Filename != ""
}
