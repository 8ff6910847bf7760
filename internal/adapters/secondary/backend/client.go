// Package backend implements the HTTP client for the pdf2pps conversion
// backend: a small REST API that stores uploaded PDFs, turns them into
// slide decks, and serves the generated presentation files.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/piodoi/pdf2pps/internal/domain/entities"
	"github.com/piodoi/pdf2pps/internal/domain/ports"
)

const (
	uploadPath   = "/upload-pdf/"
	processPath  = "/process-pdf/"
	downloadPath = "/download/"
	healthPath   = "/healthz"
)

// Client talks to the conversion backend over HTTP
type Client struct {
	baseURL string
	http    ports.HTTPClient
}

// NewClient creates a backend client for the given base URL. A nil
// httpClient falls back to a default client without a timeout, matching the
// backend's potentially long processing times.
func NewClient(baseURL string, httpClient ports.HTTPClient) *Client {
	if httpClient == nil {
		httpClient = ports.NewRealHTTPClient(ports.HTTPClientConfig{})
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// BaseURL returns the configured backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health checks backend reachability via the healthz endpoint
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return fmt.Errorf("creating health request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend health check: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return err
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding health response: %w", err)
	}
	if body.Status != "ok" {
		return fmt.Errorf("backend reported status %q", body.Status)
	}
	return nil
}

// Upload sends the PDF as the "file" field of a multipart form and returns
// the server-assigned identifier.
func (c *Client) Upload(ctx context.Context, name string, data io.Reader) (*entities.UploadResult, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, fmt.Errorf("writing form file: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, &buf)
	if err != nil {
		return nil, fmt.Errorf("creating upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("uploading %s: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var result entities.UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding upload response: %w", err)
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("invalid upload response: %w", err)
	}

	return &result, nil
}

// Process asks the backend to convert a stored PDF into a presentation
func (c *Client) Process(ctx context.Context, filename string) (*entities.Presentation, error) {
	body, err := json.Marshal(map[string]string{"filename": filename})
	if err != nil {
		return nil, fmt.Errorf("encoding process request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+processPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating process request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("processing %s: %w", filename, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var presentation entities.Presentation
	if err := json.NewDecoder(resp.Body).Decode(&presentation); err != nil {
		return nil, fmt.Errorf("decoding process response: %w", err)
	}
	if err := presentation.Validate(); err != nil {
		return nil, fmt.Errorf("invalid process response: %w", err)
	}

	return &presentation, nil
}

// Download streams the generated presentation file to dst
func (c *Client) Download(ctx context.Context, filename string, dst io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.DownloadURL(filename), nil)
	if err != nil {
		return fmt.Errorf("creating download request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", filename, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		return fmt.Errorf("reading download body: %w", err)
	}
	return nil
}

// DownloadURL returns the browser-facing URL for a presentation file
func (c *Client) DownloadURL(filename string) string {
	return c.baseURL + downloadPath + url.PathEscape(filename)
}

// checkStatus turns a non-2xx response into a StatusError
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	status := resp.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	return &ports.StatusError{Code: resp.StatusCode, Status: status}
}

// Ensure Client implements ports.BackendClient
var _ ports.BackendClient = (*Client)(nil)
