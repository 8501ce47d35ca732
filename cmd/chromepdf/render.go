package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	chromepdf "github.com/alnah/go-chromepdf"
	"github.com/alnah/go-chromepdf/internal/config"
	"github.com/alnah/go-chromepdf/internal/fileutil"
	"github.com/alnah/go-chromepdf/internal/pipeline"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for the render command.
var (
	ErrUsage            = errors.New("invalid usage")
	ErrNoInput          = errors.New("no input specified")
	ErrInvalidExtension = errors.New("input must have .html, .htm, .md or .markdown extension")
	ErrMergeOutput      = errors.New("--merge needs -o with a .pdf file path")
	ErrReadInput        = errors.New("failed to read input file")
	ErrWritePDF         = errors.New("failed to write PDF file")
	ErrBatchFailed      = errors.New("some inputs failed to render")
)

// renderJob is one input and where its PDF goes.
type renderJob struct {
	InputPath  string
	OutputPath string
}

// RenderResult holds the outcome of a single input.
type RenderResult struct {
	InputPath  string
	OutputPath string
	Pages      int
	Err        error
	Duration   time.Duration
}

// renderer turns one input file into a document.
type renderer struct {
	backend  chromepdf.Backend
	markdown *pipeline.MarkdownConverter
	options  chromepdf.RenderOptions
}

// runRender orchestrates the render command.
func runRender(ctx context.Context, positional []string, flags *renderFlags, env *Environment) error {
	cfg, err := resolveConfig(flags)
	if err != nil {
		return err
	}

	reqOpts := requestOptions(flags)
	check := *cfg
	check.Page = overlayPage(cfg.Page, reqOpts)
	if err := check.Validate(); err != nil {
		return err
	}

	password := flags.page.password
	if password == "" {
		password = cfg.Page.Password
	}

	jobs, err := planJobs(positional, flags.output, flags.merge)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log.Level, env.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	pool := env.NewPool(chromepdf.ResolvePoolSize(cfg.Renderer.Workers), converterOptions(cfg, logger)...)
	defer func() { _ = pool.Close() }()

	logger.Debug("batch started",
		zap.Int("inputs", len(jobs)),
		zap.Int("workers", pool.Size()),
		zap.Bool("merge", flags.merge),
		zap.Bool("browser_renderer", cfg.RendererEnabled()),
	)

	r := &renderer{
		backend: &chromepdf.Selector{
			Settings: configSettings{cfg: cfg},
			Default:  unavailableBackend{},
			Browser:  &chromepdf.BrowserBackend{Renderer: pool, Session: configSession{cfg: cfg}},
		},
		markdown: pipeline.NewMarkdownConverter(),
		options:  reqOpts,
	}

	if flags.merge {
		result := r.renderMerged(ctx, jobs, flags.output, password, pool.Size())
		printResults(env, []RenderResult{result}, flags.common.quiet, flags.common.verbose)
		return result.Err
	}

	r.options.Password = password
	results := r.renderEach(ctx, jobs, pool.Size())
	failed := printResults(env, results, flags.common.quiet, flags.common.verbose)
	if failed > 0 {
		return batchError(results, failed)
	}
	return nil
}

// resolveConfig loads the config file, then applies environment variables
// and flags on top of it.
func resolveConfig(flags *renderFlags) (*config.Config, error) {
	envCfg := loadEnvConfig()

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	return cfg, nil
}

// mergeFlags applies renderer, site and log flags to cfg (CLI wins).
// Page flags stay on the request and are merged over the page settings.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	if flags.renderer.browser != "" {
		cfg.Renderer.BrowserBin = flags.renderer.browser
	}
	if flags.renderer.noSandbox {
		cfg.Renderer.NoSandbox = true
	}
	if flags.renderer.timeout != "" {
		cfg.Renderer.Timeout = flags.renderer.timeout
	}
	if flags.renderer.workers != 0 {
		cfg.Renderer.Workers = flags.renderer.workers
	}
	if flags.renderer.defaultRenderer {
		enabled := false
		cfg.Renderer.Enabled = &enabled
	}

	if flags.site.baseURL != "" {
		cfg.Site.BaseURL = flags.site.baseURL
	}
	if flags.site.sessionID != "" {
		cfg.Site.SessionID = flags.site.sessionID
	}

	switch {
	case flags.common.verbose:
		cfg.Log.Level = "debug"
	case flags.common.quiet && cfg.Log.Level == "":
		cfg.Log.Level = "error"
	}
}

// requestOptions returns the page flags as render options, password excluded.
func requestOptions(flags *renderFlags) chromepdf.RenderOptions {
	p := flags.page
	return chromepdf.RenderOptions{
		PageSize:     strings.TrimSpace(p.size),
		PageWidth:    strings.TrimSpace(p.width),
		PageHeight:   strings.TrimSpace(p.height),
		MarginTop:    strings.TrimSpace(p.marginTop),
		MarginBottom: strings.TrimSpace(p.marginBottom),
		MarginLeft:   strings.TrimSpace(p.marginLeft),
		MarginRight:  strings.TrimSpace(p.marginRight),
	}
}

// overlayPage returns page with the non-empty request options written over it.
func overlayPage(page config.PageConfig, o chromepdf.RenderOptions) config.PageConfig {
	merged := o.Merge(chromepdf.RenderOptions{
		PageSize:     page.Size,
		PageWidth:    page.Width,
		PageHeight:   page.Height,
		MarginTop:    page.MarginTop,
		MarginBottom: page.MarginBottom,
		MarginLeft:   page.MarginLeft,
		MarginRight:  page.MarginRight,
	})
	return config.PageConfig{
		Size:         merged.PageSize,
		Width:        merged.PageWidth,
		Height:       merged.PageHeight,
		MarginTop:    merged.MarginTop,
		MarginBottom: merged.MarginBottom,
		MarginLeft:   merged.MarginLeft,
		MarginRight:  merged.MarginRight,
		Password:     page.Password,
	}
}

// converterOptions maps renderer config to library options.
func converterOptions(cfg *config.Config, logger *zap.Logger) []chromepdf.Option {
	opts := []chromepdf.Option{
		chromepdf.WithLogger(logger),
		chromepdf.WithBrowserBin(cfg.Renderer.BrowserBin),
	}
	if cfg.Renderer.NoSandbox {
		opts = append(opts, chromepdf.WithNoSandbox(true))
	}
	if d := cfg.TimeoutDuration(); d > 0 {
		opts = append(opts, chromepdf.WithTimeout(d))
	}
	if d, ok := cfg.SettleDuration(); ok {
		opts = append(opts, chromepdf.WithSettleDelay(d))
	}
	return opts
}

// planJobs validates inputs and decides each output path.
//
// Without --merge, an empty output writes next to each input, an output
// ending in .pdf names the file for a single input, and anything else is a
// directory. With --merge, output must name the merged .pdf file.
func planJobs(inputs []string, output string, merge bool) ([]renderJob, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInput
	}
	for _, in := range inputs {
		if !fileutil.IsHTML(in) && !fileutil.IsMarkdown(in) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidExtension, in)
		}
	}

	outputIsFile := strings.EqualFold(filepath.Ext(output), ".pdf")

	if merge {
		if !outputIsFile {
			return nil, ErrMergeOutput
		}
		jobs := make([]renderJob, len(inputs))
		for i, in := range inputs {
			jobs[i] = renderJob{InputPath: in, OutputPath: output}
		}
		return jobs, nil
	}

	if outputIsFile && len(inputs) > 1 {
		return nil, fmt.Errorf("%w: -o %s names one file for %d inputs (use a directory or --merge)", ErrUsage, output, len(inputs))
	}

	jobs := make([]renderJob, len(inputs))
	seen := make(map[string]string, len(inputs))
	for i, in := range inputs {
		var out string
		switch {
		case output == "":
			out = fileutil.PDFPath(in)
		case outputIsFile:
			out = output
		default:
			out = filepath.Join(output, filepath.Base(fileutil.PDFPath(in)))
		}
		if prev, dup := seen[out]; dup {
			return nil, fmt.Errorf("%w: %s and %s both write %s", ErrUsage, prev, in, out)
		}
		seen[out] = in
		jobs[i] = renderJob{InputPath: in, OutputPath: out}
	}
	return jobs, nil
}

// renderEach renders every job concurrently and writes one PDF per job.
// Results keep the order of jobs.
func (r *renderer) renderEach(ctx context.Context, jobs []renderJob, workers int) []RenderResult {
	return runJobs(ctx, jobs, workers, func(ctx context.Context, _ int, j renderJob) RenderResult {
		start := time.Now()
		result := RenderResult{InputPath: j.InputPath, OutputPath: j.OutputPath}

		doc, err := r.renderFile(ctx, j.InputPath, r.options)
		if err == nil {
			result.Pages = doc.PageCount()
			err = writePDF(j.OutputPath, doc)
		}
		result.Err = err
		result.Duration = time.Since(start)
		return result
	})
}

// renderMerged renders every job concurrently, appends the documents in job
// order and writes the result once, encrypted when password is set. Nothing
// is written if any input fails.
func (r *renderer) renderMerged(ctx context.Context, jobs []renderJob, output, password string, workers int) RenderResult {
	start := time.Now()
	result := RenderResult{InputPath: joinInputs(jobs), OutputPath: output}
	fail := func(err error) RenderResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	docs := make([]*chromepdf.Document, len(jobs))
	partial := runJobs(ctx, jobs, workers, func(ctx context.Context, idx int, j renderJob) RenderResult {
		doc, err := r.renderFile(ctx, j.InputPath, r.options)
		docs[idx] = doc
		return RenderResult{InputPath: j.InputPath, Err: err}
	})
	for _, p := range partial {
		if p.Err != nil {
			return fail(fmt.Errorf("%s: %w", p.InputPath, p.Err))
		}
	}

	merged := docs[0]
	for _, doc := range docs[1:] {
		if _, err := chromepdf.Assemble(doc.Bytes(), merged, ""); err != nil {
			return fail(err)
		}
	}
	if password != "" {
		if err := merged.Encrypt(password); err != nil {
			return fail(err)
		}
	}
	if err := writePDF(output, merged); err != nil {
		return fail(err)
	}

	result.Pages = merged.PageCount()
	result.Duration = time.Since(start)
	return result
}

// renderFile reads one input, converts Markdown to HTML when needed and
// hands the HTML to the backend.
func (r *renderer) renderFile(ctx context.Context, path string, opts chromepdf.RenderOptions) (*chromepdf.Document, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided input path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	html := string(content)
	if fileutil.IsMarkdown(path) {
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		html, err = r.markdown.ToHTML(ctx, html, title)
		if err != nil {
			return nil, err
		}
	}

	return r.backend.GetPDF(ctx, chromepdf.Request{HTML: html, Options: opts})
}

// runJobs runs fn for every job on up to workers goroutines. Jobs not yet
// started when ctx ends fail with the context error.
func runJobs(ctx context.Context, jobs []renderJob, workers int, fn func(ctx context.Context, idx int, j renderJob) RenderResult) []RenderResult {
	if len(jobs) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	results := make([]RenderResult, len(jobs))
	queue := make(chan int, len(jobs))
	for i := range jobs {
		queue <- i
	}
	close(queue)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				if err := ctx.Err(); err != nil {
					results[idx] = RenderResult{
						InputPath:  jobs[idx].InputPath,
						OutputPath: jobs[idx].OutputPath,
						Err:        err,
					}
					continue
				}
				results[idx] = fn(ctx, idx, jobs[idx])
			}
		}()
	}
	wg.Wait()

	return results
}

// writePDF writes doc to path, creating parent directories.
func writePDF(path string, doc *chromepdf.Document) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	// #nosec G306 -- PDFs are meant to be readable
	if err := os.WriteFile(path, doc.Bytes(), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	return nil
}

func joinInputs(jobs []renderJob) string {
	names := make([]string, len(jobs))
	for i, j := range jobs {
		names[i] = j.InputPath
	}
	return strings.Join(names, ", ")
}

// batchError wraps the first failure so the exit code reflects its kind.
func batchError(results []RenderResult, failed int) error {
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("%w (%d of %d): %w", ErrBatchFailed, failed, len(results), r.Err)
		}
	}
	return nil
}
