package chromepdf

import (
	"math"
	"testing"
)

// ---------------------------------------------------------------------------
// TestOptionsFromMap
// ---------------------------------------------------------------------------

func TestOptionsFromMap(t *testing.T) {
	t.Parallel()

	got := OptionsFromMap(map[string]string{
		"page-size":     "A4",
		"page-width":    " 210 ",
		"page-height":   "297",
		"margin-top":    "15mm",
		"margin-bottom": "1in",
		"margin-left":   "10",
		"margin-right":  "2cm",
		"password":      " secret ",
		"orientation":   "Landscape",
		"encoding":      "UTF-8",
	})

	want := RenderOptions{
		PageWidth:    "210",
		PageHeight:   "297",
		PageSize:     "A4",
		MarginTop:    "15mm",
		MarginBottom: "1in",
		MarginLeft:   "10",
		MarginRight:  "2cm",
		Password:     " secret ",
	}
	if got != want {
		t.Errorf("OptionsFromMap() = %+v, want %+v", got, want)
	}
}

func TestOptionsFromMap_Nil(t *testing.T) {
	t.Parallel()

	if got := OptionsFromMap(nil); got != (RenderOptions{}) {
		t.Errorf("OptionsFromMap(nil) = %+v, want zero", got)
	}
}

func TestRenderOptions_Map(t *testing.T) {
	t.Parallel()

	o := RenderOptions{PageSize: "Letter", MarginTop: "5mm"}
	m := o.Map()

	if len(m) != 2 || m[KeyPageSize] != "Letter" || m[KeyMarginTop] != "5mm" {
		t.Errorf("Map() = %v", m)
	}
	if back := OptionsFromMap(m); back != o {
		t.Errorf("OptionsFromMap(Map()) = %+v, want %+v", back, o)
	}
}

// ---------------------------------------------------------------------------
// TestRenderOptions_Merge
// ---------------------------------------------------------------------------

func TestRenderOptions_Merge(t *testing.T) {
	t.Parallel()

	defaults := RenderOptions{
		PageSize:   "A4",
		MarginTop:  "10mm",
		MarginLeft: "10mm",
		Password:   "fromsettings",
	}

	tests := []struct {
		name    string
		request RenderOptions
		want    RenderOptions
	}{
		{
			name:    "empty request takes defaults",
			request: RenderOptions{},
			want:    defaults,
		},
		{
			name:    "request wins field by field",
			request: RenderOptions{PageSize: "Letter", MarginTop: "0"},
			want: RenderOptions{
				PageSize:   "Letter",
				MarginTop:  "0",
				MarginLeft: "10mm",
				Password:   "fromsettings",
			},
		},
		{
			name:    "explicit dimensions replace default size",
			request: RenderOptions{PageWidth: "100", PageHeight: "150"},
			want: RenderOptions{
				PageWidth:  "100",
				PageHeight: "150",
				MarginTop:  "10mm",
				MarginLeft: "10mm",
				Password:   "fromsettings",
			},
		},
		{
			name:    "lone width replaces default size",
			request: RenderOptions{PageWidth: "100"},
			want: RenderOptions{
				PageWidth:  "100",
				MarginTop:  "10mm",
				MarginLeft: "10mm",
				Password:   "fromsettings",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.request.Merge(defaults); got != tt.want {
				t.Errorf("Merge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRenderOptions_MergeKeepsSizeTogether(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		request  RenderOptions
		defaults RenderOptions
		wantCSS  string
	}{
		{
			name:     "named request size beats default dimensions",
			request:  RenderOptions{PageSize: "A4"},
			defaults: RenderOptions{PageWidth: "100", PageHeight: "200"},
			wantCSS:  "8.3in 11.7in",
		},
		{
			name:     "lone request width does not pair with default height",
			request:  RenderOptions{PageWidth: "100"},
			defaults: RenderOptions{PageHeight: "200", PageSize: "Letter"},
			wantCSS:  "",
		},
		{
			name:     "request dimensions beat default name",
			request:  RenderOptions{PageWidth: "100", PageHeight: "200"},
			defaults: RenderOptions{PageSize: "Letter"},
			wantCSS:  "100mm 200mm",
		},
		{
			name:     "empty request keeps default dimensions",
			request:  RenderOptions{MarginTop: "5"},
			defaults: RenderOptions{PageWidth: "100", PageHeight: "200"},
			wantCSS:  "100mm 200mm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := pageSizeCSS(tt.request.Merge(tt.defaults)); got != tt.wantCSS {
				t.Errorf("pageSizeCSS(Merge()) = %q, want %q", got, tt.wantCSS)
			}
		})
	}
}

func TestRenderOptions_HasExplicitSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		opts RenderOptions
		want bool
	}{
		{RenderOptions{}, false},
		{RenderOptions{PageWidth: "210"}, false},
		{RenderOptions{PageHeight: "297"}, false},
		{RenderOptions{PageWidth: "210", PageHeight: "297"}, true},
	}

	for _, tt := range tests {
		if got := tt.opts.HasExplicitSize(); got != tt.want {
			t.Errorf("%+v.HasExplicitSize() = %v, want %v", tt.opts, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestLengths
// ---------------------------------------------------------------------------

func TestLengthInches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"25.4", 1, true},
		{"25.4mm", 1, true},
		{"2.54cm", 1, true},
		{"0.5in", 0.5, true},
		{"96px", 1, true},
		{"72pt", 1, true},
		{" 1 in ", 1, true},
		{"1IN", 1, true},
		{"0", 0, true},
		{"", 0, false},
		{"in", 0, false},
		{"-5mm", 0, false},
		{"1em", 0, false},
		{"auto", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, ok := lengthInches(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("lengthInches(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("lengthInches(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCSSLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"210", "210mm"},
		{"15.5", "15.5mm"},
		{"15mm", "15mm"},
		{"1in", "1in"},
		{"2 CM", "2cm"},
		{"auto", "auto"},
		{" 1em ", "1em"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := cssLength(tt.input); got != tt.want {
			t.Errorf("cssLength(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
