package chromepdf

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// pageRenderer prints a local HTML file to PDF. It exists so the Converter
// can be tested without a browser.
type pageRenderer interface {
	RenderFile(ctx context.Context, path string, opts *proto.PagePrintToPDF) ([]byte, error)
}

var _ pageRenderer = (*rodRenderer)(nil)

// rodRenderer launches a fresh headless browser for every call and tears it
// down before returning. No browser outlives a render, so concurrent renders
// share nothing and one crash cannot affect another.
type rodRenderer struct {
	finder    browserFinder
	noSandbox bool
	settle    time.Duration
	logger    *zap.Logger
}

// RenderFile opens path in a new browser, switches to print media, waits for
// the settle delay and prints. ctx bounds the whole call: when it is done the
// browser is killed and ctx's error is returned.
func (r *rodRenderer) RenderFile(ctx context.Context, path string, opts *proto.PagePrintToPDF) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bin, err := r.finder.find()
	if err != nil {
		return nil, err
	}

	l := newLauncher(bin, r.noSandbox).Context(ctx)
	defer r.shutdown(l)

	u, err := l.Launch()
	if err != nil {
		return nil, r.fail(ctx, ErrBrowserConnect, err)
	}
	r.logger.Debug("browser launched", zap.String("bin", bin), zap.Int("pid", l.PID()))

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, r.fail(ctx, ErrBrowserConnect, err)
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + path})
	if err != nil {
		return nil, r.fail(ctx, ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	if err := page.WaitLoad(); err != nil {
		return nil, r.fail(ctx, ErrPageLoad, err)
	}

	if err := (proto.EmulationSetEmulatedMedia{Media: "print"}).Call(page); err != nil {
		return nil, r.fail(ctx, ErrPageLoad, err)
	}

	// Give style recalculation for @media print a moment before capture.
	if r.settle > 0 {
		timer := time.NewTimer(r.settle)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	stream, err := page.PDF(opts)
	if err != nil {
		return nil, r.fail(ctx, ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(stream)
	if err != nil {
		return nil, r.fail(ctx, ErrPDFGeneration, fmt.Errorf("reading PDF stream: %w", err))
	}
	return pdf, nil
}

// fail wraps err with kind, unless ctx ended, in which case the context error
// is what the caller needs to classify the failure.
func (r *rodRenderer) fail(ctx context.Context, kind, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %v", kind, err)
}

// shutdown kills the browser's process group and removes its profile
// directory. Cleanup waits for the process to exit, so it only runs when a
// process was actually started. Kill pauses a second before signaling so
// the browser's helper processes have joined the group.
func (r *rodRenderer) shutdown(l *launcher.Launcher) {
	pid := l.PID()
	if pid <= 0 {
		return
	}
	l.Kill()
	l.Cleanup()
	r.logger.Debug("browser stopped", zap.Int("pid", pid))
}
