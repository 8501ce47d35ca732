package chromepdf

import (
	"strings"
	"testing"
)

// stubSession is a Session whose values can change between calls.
type stubSession struct {
	base string
	sid  string
}

func (s *stubSession) BaseURL() string   { return s.base }
func (s *stubSession) SessionID() string { return s.sid }

func TestURLContextFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		session Session
		want    URLContext
	}{
		{name: "nil session", session: nil, want: URLContext{}},
		{
			name:    "trailing slash stripped",
			session: &stubSession{base: "https://erp.example.com/", sid: "tok"},
			want:    URLContext{BaseURL: "https://erp.example.com", SessionID: "tok"},
		},
		{
			name:    "outside a request",
			session: &stubSession{base: "https://erp.example.com"},
			want:    URLContext{BaseURL: "https://erp.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := URLContextFrom(tt.session); got != tt.want {
				t.Errorf("URLContextFrom() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestURLContextFrom_ReadsCurrentState(t *testing.T) {
	t.Parallel()

	s := &stubSession{base: "https://one.example.com", sid: "a"}
	first := URLContextFrom(s)

	s.base, s.sid = "https://two.example.com", ""
	second := URLContextFrom(s)

	if first.BaseURL == second.BaseURL {
		t.Errorf("base URL not re-read: %q", second.BaseURL)
	}
	if second.SessionID != "" {
		t.Errorf("stale session id %q", second.SessionID)
	}
}

func TestNormalizeURLs(t *testing.T) {
	t.Parallel()

	uc := URLContext{BaseURL: "https://erp.example.com", SessionID: "tok"}
	html := `<img src="/files/a.png"><img src="/api/x?name=1"><a href="mailto:a@b.c">m</a>`

	got := NormalizeURLs(html, uc)

	for _, want := range []string{
		`src="https://erp.example.com/files/a.png?sid=tok"`,
		`src="https://erp.example.com/api/x?name=1&sid=tok"`,
		`href="mailto:a@b.c"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("NormalizeURLs() missing %s in %s", want, got)
		}
	}

	if again := NormalizeURLs(got, uc); again != got {
		t.Errorf("NormalizeURLs() not idempotent:\n%s\n%s", got, again)
	}
	if strings.Count(got, "https://erp.example.com") != 2 {
		t.Errorf("base URL prepended more than once per value: %s", got)
	}
}

func TestNormalizeURLs_EmptyContext(t *testing.T) {
	t.Parallel()

	html := `<img src="/files/a.png">`
	if got := NormalizeURLs(html, URLContext{}); got != html {
		t.Errorf("NormalizeURLs() = %s, want unchanged", got)
	}
}
