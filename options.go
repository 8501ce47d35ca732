package chromepdf

import (
	"strconv"
	"strings"
)

// Recognized render option keys, as host applications name them.
const (
	KeyPageWidth    = "page-width"
	KeyPageHeight   = "page-height"
	KeyPageSize     = "page-size"
	KeyMarginTop    = "margin-top"
	KeyMarginBottom = "margin-bottom"
	KeyMarginLeft   = "margin-left"
	KeyMarginRight  = "margin-right"
	KeyPassword     = "password"
)

// RenderOptions controls page geometry and output protection.
//
// Lengths are CSS-like strings. A bare number is read as millimetres, the
// unit host print settings use; "mm", "cm", "in", "px" and "pt" suffixes are
// honored as given. PageWidth and PageHeight only take effect together and
// then win over PageSize. An unknown PageSize is passed to the browser as a
// literal CSS size value. Password is not used for rendering; it asks the
// assembly step to encrypt the result.
type RenderOptions struct {
	PageWidth    string
	PageHeight   string
	PageSize     string
	MarginTop    string
	MarginBottom string
	MarginLeft   string
	MarginRight  string
	Password     string
}

// OptionsFromMap builds RenderOptions from a loosely typed option mapping.
// Unknown keys are ignored.
func OptionsFromMap(m map[string]string) RenderOptions {
	return RenderOptions{
		PageWidth:    strings.TrimSpace(m[KeyPageWidth]),
		PageHeight:   strings.TrimSpace(m[KeyPageHeight]),
		PageSize:     strings.TrimSpace(m[KeyPageSize]),
		MarginTop:    strings.TrimSpace(m[KeyMarginTop]),
		MarginBottom: strings.TrimSpace(m[KeyMarginBottom]),
		MarginLeft:   strings.TrimSpace(m[KeyMarginLeft]),
		MarginRight:  strings.TrimSpace(m[KeyMarginRight]),
		Password:     m[KeyPassword],
	}
}

// Map returns the non-empty options keyed by their recognized names.
func (o RenderOptions) Map() map[string]string {
	m := make(map[string]string, 8)
	for _, kv := range o.pairs() {
		if kv.value != "" {
			m[kv.key] = kv.value
		}
	}
	return m
}

// Merge returns o with empty fields taken from defaults. Page size, width and
// height form one unit: if o sets any of them, all three come from o.
func (o RenderOptions) Merge(defaults RenderOptions) RenderOptions {
	fill := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	size := defaults
	if o.hasSize() {
		size = o
	}
	return RenderOptions{
		PageWidth:    size.PageWidth,
		PageHeight:   size.PageHeight,
		PageSize:     size.PageSize,
		MarginTop:    fill(o.MarginTop, defaults.MarginTop),
		MarginBottom: fill(o.MarginBottom, defaults.MarginBottom),
		MarginLeft:   fill(o.MarginLeft, defaults.MarginLeft),
		MarginRight:  fill(o.MarginRight, defaults.MarginRight),
		Password:     fill(o.Password, defaults.Password),
	}
}

func (o RenderOptions) hasSize() bool {
	return o.PageSize != "" || o.PageWidth != "" || o.PageHeight != ""
}

// HasExplicitSize reports whether both page width and height are set.
func (o RenderOptions) HasExplicitSize() bool {
	return o.PageWidth != "" && o.PageHeight != ""
}

type optionPair struct {
	key   string
	value string
}

func (o RenderOptions) pairs() []optionPair {
	return []optionPair{
		{KeyPageWidth, o.PageWidth},
		{KeyPageHeight, o.PageHeight},
		{KeyPageSize, o.PageSize},
		{KeyMarginTop, o.MarginTop},
		{KeyMarginBottom, o.MarginBottom},
		{KeyMarginLeft, o.MarginLeft},
		{KeyMarginRight, o.MarginRight},
		{KeyPassword, o.Password},
	}
}

// margins returns the margin options in top, bottom, left, right order.
func (o RenderOptions) margins() []optionPair {
	return []optionPair{
		{KeyMarginTop, o.MarginTop},
		{KeyMarginBottom, o.MarginBottom},
		{KeyMarginLeft, o.MarginLeft},
		{KeyMarginRight, o.MarginRight},
	}
}

// Length units accepted in option values, as inches per unit.
var unitInches = map[string]float64{
	"mm": 1 / 25.4,
	"cm": 1 / 2.54,
	"in": 1,
	"px": 1.0 / 96,
	"pt": 1.0 / 72,
}

// splitLength separates a length into its number and unit. A bare number has
// unit "mm". ok is false when s is not a non-negative number with a known unit.
func splitLength(s string) (value float64, unit string, ok bool) {
	s = strings.TrimSpace(s)
	unit = "mm"
	if len(s) > 2 {
		if _, known := unitInches[strings.ToLower(s[len(s)-2:])]; known {
			unit = strings.ToLower(s[len(s)-2:])
			s = strings.TrimSpace(s[:len(s)-2])
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, "", false
	}
	return v, unit, true
}

// lengthInches converts a length option to inches.
func lengthInches(s string) (float64, bool) {
	v, unit, ok := splitLength(s)
	if !ok {
		return 0, false
	}
	return v * unitInches[unit], true
}

// cssLength renders a length option as a CSS value. Values that do not parse
// as a length are returned as given.
func cssLength(s string) string {
	v, unit, ok := splitLength(s)
	if !ok {
		return strings.TrimSpace(s)
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + unit
}
