// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"errors"
	"os"
	"strconv"
	"strings"

	chromepdf "github.com/alnah/go-chromepdf"
	"github.com/alnah/go-chromepdf/internal/config"
)

// SandboxUnavailable reports whether Chrome likely cannot use its sandbox
// here: CI, a container, or running as root.
var SandboxUnavailable = func() bool {
	inContainer, _ := chromepdf.RunningInContainer()
	return chromepdf.RunningInCI() || inContainer || os.Geteuid() == 0
}

// For returns the hints matching err, or "" when none apply.
func For(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, chromepdf.ErrBrowserNotFound):
		return ForBrowserNotFound()
	case errors.Is(err, chromepdf.ErrBrowserConnect), errors.Is(err, chromepdf.ErrPageCreate):
		return ForBrowserConnect()
	case errors.Is(err, chromepdf.ErrRenderTimeout):
		return ForTimeout()
	case errors.Is(err, chromepdf.ErrInvalidPDF):
		return ForInvalidPDF()
	case errors.Is(err, config.ErrConfigNotFound):
		return ForConfigNotFound()
	}
	return ""
}

// ForBrowserNotFound returns hints for a missing Chrome binary.
func ForBrowserNotFound() string {
	return format("install google-chrome or chromium, or set " + chromepdf.EnvBrowserBin + " / pass --browser")
}

// ForBrowserConnect returns hints for browser launch and connection errors.
// Suggests disabling the sandbox where it is usually unavailable.
func ForBrowserConnect() string {
	var hints []string

	noSandbox, _ := strconv.ParseBool(os.Getenv("CHROMEPDF_NO_SANDBOX"))
	if SandboxUnavailable() && !noSandbox {
		hints = append(hints, "set CHROMEPDF_NO_SANDBOX=1 or pass --no-sandbox")
	}
	hints = append(hints, "run 'chromepdf doctor' to check the browser setup")

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow renders.
func ForTimeout() string {
	return format("for large documents or slow asset hosts, raise --timeout (default 30s)")
}

// ForInvalidPDF returns a hint for browser output that could not be parsed.
func ForInvalidPDF() string {
	return format("the browser returned an unreadable PDF; re-run with --verbose")
}

// ForConfigNotFound returns hints for config file not found errors.
func ForConfigNotFound() string {
	return format("use --config /path/to/file.yaml or put <name>.yaml in the go-chromepdf user config directory")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
