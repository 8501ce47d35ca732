package pipeline

import (
	"regexp"
	"strings"
)

// Shared pattern fragments. A value runs until the first quote or '>'.
const (
	tagLead    = `(href|src)(\s*=\s*['"]?)`
	cssLead    = `(:\s?url)(\(['"]?)`
	valueChars = `[^'">]+`
	tagTail    = `(['"]?)`
	cssTail    = `(['"]?\))`
)

var (
	relativeTagPattern = regexp.MustCompile(tagLead + `(` + valueChars + `)` + tagTail)
	relativeCSSPattern = regexp.MustCompile(cssLead + `(` + valueChars + `)` + cssTail)
)

// skipPrefixes are values that are never rewritten nor session-qualified.
var skipPrefixes = []string{"mailto", "data:", "tel:"}

// RewriteURLs makes the resource references of htmlContent absolute against
// baseURL so a browser running outside the request can fetch them. When
// sessionID is set, every rewritten value also carries sid=<sessionID>.
//
// The transform is lexical. It runs four passes in a fixed order:
//  1. href/src values starting with the http:// form of baseURL
//  2. href/src values not starting with "http"
//  3. CSS :url(...) values not starting with "http"
//  4. CSS :url(...) values starting with the http:// form of baseURL
//
// It does not parse HTML or CSS: comments, script bodies and URL-like text
// inside other attribute values are matched like anything else. An unquoted
// value runs up to the next quote or '>', swallowing any attributes after it.
// Running it on its own output is a no-op unless such a swallowed attribute
// holds another href/src. An empty baseURL returns htmlContent unchanged.
func RewriteURLs(htmlContent, baseURL, sessionID string) string {
	base := strings.TrimSuffix(baseURL, "/")
	if base == "" || htmlContent == "" {
		return htmlContent
	}

	r := &urlRewriter{
		base:      base,
		insecure:  insecureForm(base),
		sessionID: sessionID,
	}

	baseValue := `(` + regexp.QuoteMeta(r.insecure) + valueChars + `)`
	absoluteTagPattern := regexp.MustCompile(tagLead + baseValue + tagTail)
	absoluteCSSPattern := regexp.MustCompile(cssLead + baseValue + cssTail)

	out := replaceEach(absoluteTagPattern, htmlContent, r.expand)
	out = replaceEach(relativeTagPattern, out, r.expandRelative)
	out = replaceEach(relativeCSSPattern, out, r.expandRelative)
	out = replaceEach(absoluteCSSPattern, out, r.expand)
	return out
}

// insecureForm returns base with an https scheme downgraded to http.
func insecureForm(base string) string {
	if rest, ok := strings.CutPrefix(base, "https://"); ok {
		return "http://" + rest
	}
	return base
}

type urlRewriter struct {
	base      string
	insecure  string
	sessionID string
}

// expandRelative rejects values starting with "http", standing in for the
// negative look-ahead RE2 does not support.
func (r *urlRewriter) expandRelative(groups []string) (string, bool) {
	if strings.HasPrefix(groups[2], "http") {
		return "", false
	}
	return r.expand(groups)
}

// expand rewrites the value group (index 2) and joins the groups back.
func (r *urlRewriter) expand(groups []string) (string, bool) {
	value := groups[2]
	if hasAnyPrefix(value, skipPrefixes) {
		return strings.Join(groups, ""), true
	}

	rewritten := true
	switch {
	case strings.HasPrefix(value, r.base):
		rewritten = false
	case r.insecure != r.base && strings.HasPrefix(value, r.insecure):
		rest := value[len(r.insecure):]
		if !atURLBoundary(rest) {
			// Another host sharing the base as a prefix.
			return strings.Join(groups, ""), true
		}
		value = r.base + rest
	default:
		if !strings.HasPrefix(value, "/") {
			value = "/" + value
		}
		value = r.base + value
	}

	if rewritten && r.sessionID != "" {
		sep := "?"
		if strings.Contains(value, "?") {
			sep = "&"
		}
		value += sep + "sid=" + r.sessionID
	}

	groups[2] = value
	return strings.Join(groups, ""), true
}

// replaceEach substitutes every match of re in s with fn's result, scanning
// left to right. When fn rejects a match, scanning resumes one byte after
// the match start, as a backtracking engine does when a look-ahead fails.
func replaceEach(re *regexp.Regexp, s string, fn func(groups []string) (string, bool)) string {
	var b strings.Builder
	changed := false
	last, pos := 0, 0

	for pos < len(s) {
		loc := re.FindStringSubmatchIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]

		groups := make([]string, len(loc)/2-1)
		for i := range groups {
			if from, to := loc[2*i+2], loc[2*i+3]; from >= 0 {
				groups[i] = s[pos+from : pos+to]
			}
		}

		out, ok := fn(groups)
		if !ok {
			pos = start + 1
			continue
		}

		b.WriteString(s[last:start])
		b.WriteString(out)
		changed = true
		last, pos = end, end
	}

	if !changed {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// atURLBoundary reports whether rest, the part of a value after the base,
// starts a path, query or fragment of that base.
func atURLBoundary(rest string) bool {
	return rest == "" || strings.IndexByte("/?#", rest[0]) != -1
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
