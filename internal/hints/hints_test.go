package hints

// Notes:
// - ForBrowserConnect tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level SandboxUnavailable variable

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	chromepdf "github.com/alnah/go-chromepdf"
	"github.com/alnah/go-chromepdf/internal/config"
)

func TestForBrowserConnect_SandboxUnavailable(t *testing.T) {
	orig := SandboxUnavailable
	defer func() { SandboxUnavailable = orig }()
	SandboxUnavailable = func() bool { return true }

	t.Setenv("CHROMEPDF_NO_SANDBOX", "")

	hint := ForBrowserConnect()

	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("expected hint prefix, got %q", hint)
	}
	if !strings.Contains(hint, "CHROMEPDF_NO_SANDBOX=1") {
		t.Error("expected CHROMEPDF_NO_SANDBOX suggestion")
	}
	if !strings.Contains(hint, "chromepdf doctor") {
		t.Error("expected doctor suggestion")
	}
}

func TestForBrowserConnect_SandboxAlreadyDisabled(t *testing.T) {
	orig := SandboxUnavailable
	defer func() { SandboxUnavailable = orig }()
	SandboxUnavailable = func() bool { return true }

	t.Setenv("CHROMEPDF_NO_SANDBOX", "true")

	if hint := ForBrowserConnect(); strings.Contains(hint, "NO_SANDBOX") {
		t.Errorf("unexpected sandbox suggestion: %q", hint)
	}
}

func TestForBrowserConnect_SandboxAvailable(t *testing.T) {
	orig := SandboxUnavailable
	defer func() { SandboxUnavailable = orig }()
	SandboxUnavailable = func() bool { return false }

	t.Setenv("CHROMEPDF_NO_SANDBOX", "")

	if hint := ForBrowserConnect(); strings.Contains(hint, "NO_SANDBOX") {
		t.Errorf("unexpected sandbox suggestion: %q", hint)
	}
}

func TestFor(t *testing.T) {
	orig := SandboxUnavailable
	defer func() { SandboxUnavailable = orig }()
	SandboxUnavailable = func() bool { return false }

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"unrelated", errors.New("boom"), ""},
		{"browser not found", chromepdf.ErrBrowserNotFound, chromepdf.EnvBrowserBin},
		{"connect", fmt.Errorf("a.html: %w", chromepdf.ErrBrowserConnect), "chromepdf doctor"},
		{"page create", chromepdf.ErrPageCreate, "chromepdf doctor"},
		{"timeout", chromepdf.ErrRenderTimeout, "--timeout"},
		{"invalid pdf", chromepdf.ErrInvalidPDF, "--verbose"},
		{"config not found", fmt.Errorf("loading config: %w", config.ErrConfigNotFound), "--config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := For(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("For(%v) = %q, want empty", tt.err, got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("For(%v) = %q, want it to mention %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestFormatHints(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := formatHints([]string{"a", "b"}); got != "\n  hint: a; b" {
		t.Errorf("formatHints() = %q", got)
	}
}
