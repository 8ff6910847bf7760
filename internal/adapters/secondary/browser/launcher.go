// Package browser opens URLs in the user's browser. The serve command uses
// it to open the web client, and convert --open uses it to open the
// presentation download link.
package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/piodoi/pdf2pps/internal/domain/ports"
)

// Launcher implements the BrowserLauncher interface
type Launcher struct {
	candidates []candidate
}

// candidate is one way of opening a URL on the current platform
type candidate struct {
	name    string
	command string
	args    func(url string) []string
}

// NewLauncher creates a launcher for the current platform
func NewLauncher() *Launcher {
	return &Launcher{candidates: platformCandidates()}
}

// Launch opens a URL in the default browser. noOpen short-circuits so
// callers can pass the config flag through unchanged.
func (l *Launcher) Launch(url string, noOpen bool) error {
	if noOpen {
		return nil
	}

	browser, err := l.selectCandidate()
	if err != nil {
		return fmt.Errorf("browser selection: %w", err)
	}

	cmd := exec.Command(browser.command, browser.args(url)...) // #nosec G204 - command comes from the fixed platform table
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	// Don't wait for the browser to close.
	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

// Detect returns the name of the browser opener that would be used
func (l *Launcher) Detect() (string, error) {
	browser, err := l.selectCandidate()
	if err != nil {
		return "", err
	}
	return browser.name, nil
}

func (l *Launcher) selectCandidate() (*candidate, error) {
	for _, c := range l.candidates {
		if _, err := exec.LookPath(c.command); err == nil {
			return &c, nil
		}
	}
	return nil, errors.New("no supported browser opener found on this system")
}

func platformCandidates() []candidate {
	switch runtime.GOOS {
	case "darwin":
		return []candidate{
			{name: "Default", command: "open", args: func(url string) []string {
				return []string{url}
			}},
		}
	case "linux":
		return []candidate{
			{name: "xdg-open", command: "xdg-open", args: func(url string) []string {
				return []string{url}
			}},
			{name: "Chrome", command: "google-chrome", args: func(url string) []string {
				return []string{url}
			}},
			{name: "Firefox", command: "firefox", args: func(url string) []string {
				return []string{url}
			}},
		}
	case "windows":
		return []candidate{
			{name: "Default", command: "cmd", args: func(url string) []string {
				return []string{"/c", "start", url}
			}},
		}
	default:
		return nil
	}
}

// Ensure Launcher implements ports.BrowserLauncher
var _ ports.BrowserLauncher = (*Launcher)(nil)
