package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags are shared by every command that renders.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags hold per-request render options. Empty means "use settings".
type pageFlags struct {
	size         string
	width        string
	height       string
	marginTop    string
	marginBottom string
	marginLeft   string
	marginRight  string
	password     string
}

// siteFlags hold the URL context for asset rewriting.
type siteFlags struct {
	baseURL   string
	sessionID string
}

// rendererFlags tune and select the renderer.
type rendererFlags struct {
	workers         int
	timeout         string
	browser         string
	noSandbox       bool
	defaultRenderer bool
}

// renderFlags holds all flags of the render command.
type renderFlags struct {
	common   commonFlags
	page     pageFlags
	site     siteFlags
	renderer rendererFlags
	output   string
	merge    bool
}

// addCommonFlags adds flags shared across commands to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed output and debug logs")
}

// addPageFlags adds page geometry and protection flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVar(&f.size, "page-size", "", "named page size: A4, Letter, Legal, ...")
	fs.StringVar(&f.width, "page-width", "", "page width, bare numbers in mm (needs --page-height)")
	fs.StringVar(&f.height, "page-height", "", "page height, bare numbers in mm (needs --page-width)")
	fs.StringVar(&f.marginTop, "margin-top", "", "top margin, e.g. 15 or 0.5in")
	fs.StringVar(&f.marginBottom, "margin-bottom", "", "bottom margin")
	fs.StringVar(&f.marginLeft, "margin-left", "", "left margin")
	fs.StringVar(&f.marginRight, "margin-right", "", "right margin")
	fs.StringVar(&f.password, "password", "", "encrypt output with AES-256")
}

// addSiteFlags adds URL context flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.baseURL, "base-url", "", "site URL relative asset links resolve against")
	fs.StringVar(&f.sessionID, "sid", "", "session token appended to rewritten asset URLs")
}

// addRendererFlags adds renderer selection and tuning flags to a FlagSet.
func addRendererFlags(fs *flag.FlagSet, f *rendererFlags) {
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent browsers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-render timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.browser, "browser", "", "Chrome/Chromium binary path")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable the Chrome sandbox")
	fs.BoolVar(&f.defaultRenderer, "default-renderer", false, "select the default renderer instead of the browser")
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, usage io.Writer) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.BoolVar(&f.merge, "merge", false, "append all inputs into one PDF, in argument order")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addSiteFlags(fs, &f.site)
	addRendererFlags(fs, &f.renderer)

	fs.Usage = func() { printRenderUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
