package chromepdf

import (
	"strings"

	"github.com/alnah/go-chromepdf/internal/pipeline"
)

// Session exposes the host request state used to qualify asset URLs.
// SessionID is empty outside an active request.
type Session interface {
	BaseURL() string
	SessionID() string
}

// URLContext is the site base URL and optional session token for one
// normalization call.
type URLContext struct {
	BaseURL   string
	SessionID string
}

// URLContextFrom reads s at call time. It must not be cached across calls:
// the base URL and session can change between requests. A nil Session gives
// an empty context, which leaves HTML unchanged.
func URLContextFrom(s Session) URLContext {
	if s == nil {
		return URLContext{}
	}
	return URLContext{
		BaseURL:   strings.TrimSuffix(s.BaseURL(), "/"),
		SessionID: s.SessionID(),
	}
}

// NormalizeURLs rewrites href/src attributes and CSS url() references in
// html to absolute URLs under uc.BaseURL so a browser outside the request can
// load them. With a session token, every rewritten value carries sid=<token>.
// mailto, data: and tel: values are left as found.
//
// The rewrite is lexical, not a parse: references inside comments, scripts
// or other attribute values are matched like any other. Normalizing already
// normalized HTML is a no-op.
func NormalizeURLs(html string, uc URLContext) string {
	return pipeline.RewriteURLs(html, uc.BaseURL, uc.SessionID)
}
