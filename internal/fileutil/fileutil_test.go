package fileutil_test

// Notes:
// - WriteString/Close failure branches in WriteTempFile are not covered:
//   forcing disk write failures is platform-specific.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-chromepdf/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{name: "html", extension: "html"},
		{name: "pdf", extension: "pdf"},
		{name: "empty", extension: "", wantErr: fileutil.ErrExtensionEmpty},
		{name: "forward slash", extension: "../etc/passwd", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "backslash", extension: `..\windows`, wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "null byte", extension: "html\x00exe", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := fileutil.ValidateExtension(tt.extension); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteTempFile
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := "<html><body>Facture 2024-001</body></html>"

	path, cleanup, err := fileutil.WriteTempFile(dir, content, "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Errorf("path %q not in %q", path, dir)
	}
	if !strings.HasPrefix(filepath.Base(path), fileutil.TempPrefix) {
		t.Errorf("path %q missing prefix %q", path, fileutil.TempPrefix)
	}
	if !strings.HasSuffix(path, ".html") {
		t.Errorf("path %q missing .html suffix", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(data) != content {
		t.Errorf("content = %q, want %q", data, content)
	}

	cleanup()
	cleanup() // second call must not panic

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("temp file still exists after cleanup: %s", path)
	}
}

func TestWriteTempFile_UniqueNames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seen := make(map[string]bool)

	for range 20 {
		path, cleanup, err := fileutil.WriteTempFile(dir, "x", "html")
		if err != nil {
			t.Fatalf("WriteTempFile() error = %v", err)
		}
		t.Cleanup(cleanup)

		if seen[path] {
			t.Fatalf("duplicate temp path %q", path)
		}
		seen[path] = true
	}
}

func TestWriteTempFile_Errors(t *testing.T) {
	t.Parallel()

	t.Run("invalid extension", func(t *testing.T) {
		t.Parallel()

		_, cleanup, err := fileutil.WriteTempFile("", "x", "../pdf")
		if cleanup != nil {
			t.Error("cleanup should be nil on error")
		}
		if !errors.Is(err, fileutil.ErrExtensionPathTraversal) {
			t.Errorf("error = %v, want %v", err, fileutil.ErrExtensionPathTraversal)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		missing := filepath.Join(t.TempDir(), "does-not-exist")
		if _, _, err := fileutil.WriteTempFile(missing, "x", "html"); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}

// ---------------------------------------------------------------------------
// TestInputKinds
// ---------------------------------------------------------------------------

func TestInputKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path         string
		wantHTML     bool
		wantMarkdown bool
		wantPDF      string
	}{
		{path: "invoice.html", wantHTML: true, wantPDF: "invoice.pdf"},
		{path: "dir/Quote.HTM", wantHTML: true, wantPDF: "dir/Quote.pdf"},
		{path: "notes.md", wantMarkdown: true, wantPDF: "notes.pdf"},
		{path: "README.markdown", wantMarkdown: true, wantPDF: "README.pdf"},
		{path: "data.txt", wantPDF: "data.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsHTML(tt.path); got != tt.wantHTML {
				t.Errorf("IsHTML(%q) = %v, want %v", tt.path, got, tt.wantHTML)
			}
			if got := fileutil.IsMarkdown(tt.path); got != tt.wantMarkdown {
				t.Errorf("IsMarkdown(%q) = %v, want %v", tt.path, got, tt.wantMarkdown)
			}
			if got := fileutil.PDFPath(tt.path); got != tt.wantPDF {
				t.Errorf("PDFPath(%q) = %q, want %q", tt.path, got, tt.wantPDF)
			}
		})
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"site":             false,
		"./site.yaml":      true,
		"/etc/chromepdf":   true,
		`C:\cfg\site.yaml`: true,
	}
	for in, want := range tests {
		if got := fileutil.IsFilePath(in); got != want {
			t.Errorf("IsFilePath(%q) = %v, want %v", in, got, want)
		}
	}
}
