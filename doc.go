// Package chromepdf renders host-application HTML to PDF with headless Chrome.
//
// # Quick Start
//
// Render a document and write it out:
//
//	conv := chromepdf.NewConverter()
//
//	pdf, err := conv.Render(ctx, "<html><body>Hi</body></html>", chromepdf.RenderOptions{
//	    PageSize:  "A4",
//	    MarginTop: "15mm",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("out.pdf", pdf, 0o644)
//
// Every Render launches its own browser and kills it before returning, so a
// Converter is safe for concurrent use and one crash never affects another
// render. Use a Pool to bound how many browsers run at once:
//
//	pool := chromepdf.NewPool(chromepdf.ResolvePoolSize(0), chromepdf.WithTimeout(time.Minute))
//	defer pool.Close()
//
// # Pipeline
//
// A BrowserBackend runs the three stages a host framework needs:
//
//  1. NormalizeURLs makes href/src and CSS url() references absolute against
//     the site base URL and appends the session token, so the browser can
//     fetch assets outside the request
//  2. Render injects @page size and margin CSS and prints with Chrome
//  3. Assemble appends the pages to a caller-owned Document, or builds a new
//     one and encrypts it when a password is set
//
// A Selector reads the host Settings on each call and routes to either the
// browser backend or the host's default backend.
//
// # Options
//
// RenderOptions uses the host's option names (see OptionsFromMap). Named
// page sizes resolve through LookupPaperSize; unknown names reach the
// browser as a literal CSS size. Bare numbers are millimetres.
//
// # Browser Discovery
//
// The binary comes from WithBrowserBin, then CHROMEPDF_BROWSER_BIN or
// ROD_BROWSER_BIN, then google-chrome or google-chrome-stable on PATH, then
// the usual install locations. Nothing is downloaded; when no browser is
// found Render fails with ErrBrowserNotFound.
//
// # Errors
//
// Failures wrap ErrRenderFailure or ErrAssemblyFailure. Use errors.Is with
// the detail sentinels (ErrRenderTimeout, ErrInvalidPDF, ...) for finer
// handling. Nothing is retried.
package chromepdf
