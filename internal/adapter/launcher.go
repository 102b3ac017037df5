package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
)

// ErrUnsupportedScheme is returned for links that are not http(s)
var ErrUnsupportedScheme = errors.New("only http and https links can be opened")

// BrowserLauncher opens URLs in the configured browser or the system default.
// It implements domain.URLOpener.
type BrowserLauncher struct {
	command string   // configured browser command, empty for system default
	args    []string // extra arguments placed before the URL
	logger  *slog.Logger

	// start runs a command without waiting for it; replaced in tests
	start func(name string, args ...string) error
}

// NewBrowserLauncher creates a launcher for the given browser command
func NewBrowserLauncher(command string, args []string, logger *slog.Logger) *BrowserLauncher {
	if logger == nil {
		logger = slog.Default()
	}
	return &BrowserLauncher{
		command: command,
		args:    args,
		logger:  logger,
		start:   startCommand,
	}
}

func startCommand(name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	return exec.Command(name, args...).Start() // Start async, don't wait
}

// Open opens rawURL in a new browser window or tab
func (l *BrowserLauncher) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid link %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q", ErrUnsupportedScheme, rawURL)
	}

	// Configured browser first
	if l.command != "" {
		args := append(append([]string{}, l.args...), rawURL)
		l.logger.Info("opening link with configured browser", "command", l.command, "args", args)
		err := l.start(l.command, args...)
		if err == nil {
			return nil
		}
		if runtime.GOOS != "darwin" {
			return fmt.Errorf("failed to start %s: %w", l.command, err)
		}

		// On macOS the browser is usually an app bundle, not a PATH command
		openArgs := []string{"-a", l.command}
		if len(l.args) > 0 {
			openArgs = append(openArgs, "--args")
			openArgs = append(openArgs, l.args...)
		}
		openArgs = append(openArgs, rawURL)
		l.logger.Info("using macOS 'open -a' to launch browser", "app", l.command)
		return l.start("open", openArgs...)
	}

	return l.openDefault(rawURL)
}

// openDefault opens the URL using the system default handler
func (l *BrowserLauncher) openDefault(rawURL string) error {
	l.logger.Info("opening link with system default", "os", runtime.GOOS)

	switch runtime.GOOS {
	case "darwin":
		return l.start("open", rawURL)
	case "windows":
		return l.start("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		// Linux and other Unix-like systems
		return l.start("xdg-open", rawURL)
	}
}
