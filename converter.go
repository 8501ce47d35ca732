package chromepdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alnah/go-chromepdf/internal/fileutil"
	"github.com/alnah/go-chromepdf/internal/pipeline"
)

// Defaults applied by NewConverter.
const (
	defaultTimeout     = 30 * time.Second
	defaultSettleDelay = 50 * time.Millisecond
)

// pdfMagic starts every PDF file.
var pdfMagic = []byte("%PDF-")

// HTMLRenderer turns HTML into PDF bytes. Converter and Pool implement it.
type HTMLRenderer interface {
	Render(ctx context.Context, html string, opts RenderOptions) ([]byte, error)
}

var (
	_ HTMLRenderer = (*Converter)(nil)
	_ HTMLRenderer = (*Pool)(nil)
)

// Converter renders HTML to PDF with a headless Chrome it launches for each
// call. A Converter holds no browser between calls and is safe for
// concurrent use; use a Pool to bound how many browsers run at once.
type Converter struct {
	cfg      converterConfig
	renderer pageRenderer
}

type converterConfig struct {
	timeout    time.Duration
	settle     time.Duration
	browserBin string
	noSandbox  bool
	logger     *zap.Logger
	tempDir    string
}

// Option configures a Converter.
type Option func(*converterConfig)

// WithTimeout bounds each render. The browser is killed when it expires.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("chromepdf: WithTimeout duration must be positive")
	}
	return func(c *converterConfig) {
		c.timeout = d
	}
}

// WithSettleDelay sets the pause between switching to print media and
// capturing. Zero disables it.
func WithSettleDelay(d time.Duration) Option {
	return func(c *converterConfig) {
		if d >= 0 {
			c.settle = d
		}
	}
}

// WithLogger sets the logger for render events. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *converterConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBrowserBin sets the Chrome or Chromium binary, skipping discovery.
func WithBrowserBin(path string) Option {
	return func(c *converterConfig) {
		c.browserBin = path
	}
}

// WithNoSandbox disables the Chrome sandbox. It is disabled anyway in CI and
// container environments, where it is usually unavailable.
func WithNoSandbox(disable bool) Option {
	return func(c *converterConfig) {
		c.noSandbox = disable
	}
}

// WithTempDir sets where the per-render HTML files are written. Defaults to
// the system temp directory.
func WithTempDir(dir string) Option {
	return func(c *converterConfig) {
		c.tempDir = dir
	}
}

// NewConverter creates a Converter. No browser is started until Render.
func NewConverter(opts ...Option) *Converter {
	cfg := converterConfig{
		timeout: defaultTimeout,
		settle:  defaultSettleDelay,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	noSandbox := cfg.noSandbox
	if !noSandbox {
		inContainer, _ := RunningInContainer()
		noSandbox = RunningInCI() || inContainer
	}

	return &Converter{
		cfg: cfg,
		renderer: &rodRenderer{
			finder:    newBrowserFinder(cfg.browserBin),
			noSandbox: noSandbox,
			settle:    cfg.settle,
			logger:    cfg.logger,
		},
	}
}

// Render prints html to PDF. Page size and margins from opts are injected as
// @page CSS and passed to the browser's print call; opts.Password is ignored
// here and applied by Assemble.
//
// Errors wrap ErrRenderFailure. A render that outlives the converter timeout
// returns ErrRenderTimeout; cancelling ctx returns an error matching both
// ErrRenderFailure and ctx's error. Panics are recovered into errors.
func (c *Converter) Render(ctx context.Context, html string, opts RenderOptions) (pdf []byte, err error) {
	renderID := uuid.NewString()
	log := c.cfg.logger.With(zap.String("render_id", renderID))
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: internal error: %v", ErrRenderFailure, r)
		}
		if err != nil {
			log.Warn("render failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
			return
		}
		log.Info("render complete",
			zap.Int("html_bytes", len(html)),
			zap.Int("pdf_bytes", len(pdf)),
			zap.Duration("elapsed", time.Since(start)))
	}()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailure, err)
	}

	if css := buildPageCSS(opts); css != "" {
		html = pipeline.InjectStyle(html, css)
	}

	path, cleanup, err := fileutil.WriteTempFile(c.cfg.tempDir, html, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}
	defer cleanup()

	renderCtx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	log.Debug("render started", zap.String("file", path), zap.Duration("timeout", c.cfg.timeout))

	pdf, err = c.renderer.RenderFile(renderCtx, path, buildPrintOptions(opts))
	if err != nil {
		return nil, classifyRenderError(ctx, renderCtx, err)
	}

	if !bytes.HasPrefix(pdf, pdfMagic) {
		return nil, fmt.Errorf("%w: output does not start with %s", ErrPDFGeneration, pdfMagic)
	}
	return pdf, nil
}

// classifyRenderError tells a timeout (the render's own deadline, or the
// caller's) from a cancellation and from a browser failure.
func classifyRenderError(parent, renderCtx context.Context, err error) error {
	switch {
	case errors.Is(renderCtx.Err(), context.DeadlineExceeded) && !errors.Is(parent.Err(), context.Canceled):
		return fmt.Errorf("%w: %v", ErrRenderTimeout, err)
	case parent.Err() != nil:
		return fmt.Errorf("%w: %w", ErrRenderFailure, parent.Err())
	case errors.Is(err, ErrRenderFailure):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}
}
