package chromepdf

import (
	"maps"
	"slices"
	"strconv"
)

// PaperSize is a physical page size in inches.
type PaperSize struct {
	Width  float64
	Height float64
}

// CSS returns the size as a CSS @page size value, e.g. "8.3in 11.7in".
func (p PaperSize) CSS() string {
	return formatInches(p.Width) + " " + formatInches(p.Height)
}

func formatInches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "in"
}

// paperSizes mirrors the named sizes host applications offer in their print
// settings. Keys are case-sensitive.
var paperSizes = map[string]PaperSize{
	"A0":        {33.1, 46.8},
	"A1":        {23.4, 33.1},
	"A2":        {16.5, 23.4},
	"A3":        {11.7, 16.5},
	"A4":        {8.3, 11.7},
	"A5":        {5.8, 8.3},
	"A6":        {4.1, 5.8},
	"A7":        {2.9, 4.1},
	"A8":        {2.0, 2.9},
	"A9":        {1.5, 2.0},
	"B0":        {39.4, 55.7},
	"B1":        {27.8, 39.4},
	"B2":        {19.7, 27.8},
	"B3":        {13.9, 19.7},
	"B4":        {9.8, 13.9},
	"B5":        {6.9, 9.8},
	"B6":        {4.9, 6.9},
	"B7":        {3.5, 4.9},
	"B8":        {2.4, 3.5},
	"B9":        {1.7, 2.4},
	"B10":       {1.2, 1.7},
	"C5E":       {6.4, 9.0},
	"Comm10E":   {4.1, 9.5},
	"DLE":       {4.3, 8.7},
	"Executive": {7.25, 10.5},
	"Folio":     {8.5, 13.0},
	"Ledger":    {17.0, 11.0},
	"Legal":     {8.5, 14.0},
	"Letter":    {8.5, 11.0},
	"Tabloid":   {11.0, 17.0},
}

// LookupPaperSize resolves a named paper size. The lookup is case-sensitive:
// "A4" is known, "a4" is not.
func LookupPaperSize(name string) (PaperSize, bool) {
	p, ok := paperSizes[name]
	return p, ok
}

// PaperSizeNames returns the known size names in sorted order.
func PaperSizeNames() []string {
	return slices.Sorted(maps.Keys(paperSizes))
}
