package chromepdf

import (
	"errors"
	"fmt"
)

// Error kinds. Every render or assembly error wraps one of these, so callers
// can branch with errors.Is without knowing the detail.
var (
	ErrRenderFailure   = errors.New("render failed")
	ErrAssemblyFailure = errors.New("PDF assembly failed")
)

// Render errors.
var (
	ErrBrowserNotFound = fmt.Errorf("%w: browser binary not found", ErrRenderFailure)
	ErrBrowserConnect  = fmt.Errorf("%w: failed to connect to browser", ErrRenderFailure)
	ErrPageCreate      = fmt.Errorf("%w: failed to create browser page", ErrRenderFailure)
	ErrPageLoad        = fmt.Errorf("%w: failed to load page", ErrRenderFailure)
	ErrPDFGeneration   = fmt.Errorf("%w: PDF generation failed", ErrRenderFailure)
	ErrRenderTimeout   = fmt.Errorf("%w: render timed out", ErrRenderFailure)
)

// Assembly errors.
var (
	ErrInvalidPDF     = fmt.Errorf("%w: invalid PDF input", ErrAssemblyFailure)
	ErrMerge          = fmt.Errorf("%w: merging pages failed", ErrAssemblyFailure)
	ErrEncrypt        = fmt.Errorf("%w: encryption failed", ErrAssemblyFailure)
	ErrDocumentSealed = fmt.Errorf("%w: document is encrypted and cannot be extended", ErrAssemblyFailure)
)

// ErrPoolClosed is returned by Pool.Render after Close.
var ErrPoolClosed = errors.New("renderer pool is closed")
