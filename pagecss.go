package chromepdf

import (
	"strings"

	"github.com/go-rod/rod/lib/proto"
)

// cssValueReplacer strips characters that would end a declaration or rule.
var cssValueReplacer = strings.NewReplacer("{", "", "}", "", ";", "", "<", "", ">", "")

func cssValue(s string) string {
	return strings.TrimSpace(cssValueReplacer.Replace(s))
}

// pageSizeCSS returns the @page size value for o, or "" when o sets no size.
// Explicit width and height win over a named size; an unknown name is used
// as a literal CSS size token.
func pageSizeCSS(o RenderOptions) string {
	if o.HasExplicitSize() {
		return cssValue(cssLength(o.PageWidth)) + " " + cssValue(cssLength(o.PageHeight))
	}
	if o.PageSize == "" {
		return ""
	}
	if p, ok := LookupPaperSize(o.PageSize); ok {
		return p.CSS()
	}
	return cssValue(o.PageSize)
}

// buildPageCSS generates the @page rules for o: one block for the size and
// one holding only the margins that are set. Returns "" when o has neither.
func buildPageCSS(o RenderOptions) string {
	var buf strings.Builder

	if size := pageSizeCSS(o); size != "" {
		buf.WriteString("@page { size: ")
		buf.WriteString(size)
		buf.WriteString("; }\n")
	}

	var decls []string
	for _, m := range o.margins() {
		if v := cssValue(cssLength(m.value)); v != "" {
			decls = append(decls, m.key+": "+v+";")
		}
	}
	if len(decls) > 0 {
		buf.WriteString("@page { ")
		buf.WriteString(strings.Join(decls, " "))
		buf.WriteString(" }\n")
	}

	return buf.String()
}

// buildPrintOptions maps o to the browser's print parameters. Explicit
// dimensions are passed natively and override the document's own @page size;
// otherwise the document's CSS decides. Margins that parse as lengths are
// passed natively too, so the injected CSS and the print call agree.
func buildPrintOptions(o RenderOptions) *proto.PagePrintToPDF {
	opts := &proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	}

	if o.HasExplicitSize() {
		w, wok := lengthInches(o.PageWidth)
		h, hok := lengthInches(o.PageHeight)
		if wok && hok {
			opts.PaperWidth = floatPtr(w)
			opts.PaperHeight = floatPtr(h)
			opts.PreferCSSPageSize = false
		}
	} else if p, ok := LookupPaperSize(o.PageSize); ok {
		opts.PaperWidth = floatPtr(p.Width)
		opts.PaperHeight = floatPtr(p.Height)
	}

	opts.MarginTop = marginPtr(o.MarginTop)
	opts.MarginBottom = marginPtr(o.MarginBottom)
	opts.MarginLeft = marginPtr(o.MarginLeft)
	opts.MarginRight = marginPtr(o.MarginRight)

	return opts
}

func marginPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	v, ok := lengthInches(s)
	if !ok {
		return nil
	}
	return floatPtr(v)
}

func floatPtr(v float64) *float64 {
	return &v
}
