package chromepdf

import (
	"context"
	"errors"
	"fmt"
)

// Request is one PDF generation call from the host application.
// Output, when set, is an accumulator the rendered pages are appended to.
type Request struct {
	HTML    string
	Options RenderOptions
	Output  *Document
}

// Backend produces a PDF document for a request.
type Backend interface {
	GetPDF(ctx context.Context, req Request) (*Document, error)
}

// Settings is the host's renderer configuration, read on every call.
type Settings interface {
	UseBrowserRenderer(ctx context.Context) (bool, error)
	RenderOptions(ctx context.Context) (RenderOptions, error)
}

// ErrNoBackend is returned by a Selector missing the backend it selected.
var ErrNoBackend = errors.New("no PDF backend configured")

var (
	_ Backend = (*BrowserBackend)(nil)
	_ Backend = (*Selector)(nil)
)

// BrowserBackend renders with headless Chrome: it makes asset URLs absolute,
// renders, then assembles the result.
type BrowserBackend struct {
	Renderer HTMLRenderer
	Session  Session
}

// GetPDF normalizes req.HTML against the session's current base URL, renders
// it and assembles the output. With req.Output set, pages are appended to it
// and it is returned; otherwise a new document is returned, encrypted when
// req.Options.Password is set.
func (b *BrowserBackend) GetPDF(ctx context.Context, req Request) (*Document, error) {
	if b.Renderer == nil {
		return nil, ErrNoBackend
	}

	html := NormalizeURLs(req.HTML, URLContextFrom(b.Session))

	pdf, err := b.Renderer.Render(ctx, html, req.Options)
	if err != nil {
		return nil, err
	}

	return Assemble(pdf, req.Output, req.Options.Password)
}

// Selector chooses between the host's default backend and the browser
// backend on every call, following Settings. Nothing is patched or cached,
// so a settings change applies to the next call.
type Selector struct {
	Settings Settings
	Default  Backend
	Browser  Backend
}

// GetPDF merges the request options over the configured defaults and
// delegates to the selected backend.
func (s *Selector) GetPDF(ctx context.Context, req Request) (*Document, error) {
	backend, err := s.pick(ctx)
	if err != nil {
		return nil, err
	}

	defaults, err := s.Settings.RenderOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading render options: %w", err)
	}
	req.Options = req.Options.Merge(defaults)

	return backend.GetPDF(ctx, req)
}

func (s *Selector) pick(ctx context.Context) (Backend, error) {
	if s.Settings == nil {
		return nil, fmt.Errorf("%w: settings missing", ErrNoBackend)
	}
	useBrowser, err := s.Settings.UseBrowserRenderer(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading renderer setting: %w", err)
	}

	backend := s.Default
	if useBrowser {
		backend = s.Browser
	}
	if backend == nil {
		return nil, fmt.Errorf("%w (browser renderer enabled: %t)", ErrNoBackend, useBrowser)
	}
	return backend, nil
}
