package pipeline

import "strings"

// InjectStyle inserts css as a <style> block ahead of the document body:
// before </head> when there is one, else right after the <body> tag, else at
// the very start.
// Empty css returns htmlContent unchanged.
func InjectStyle(htmlContent, css string) string {
	if css == "" {
		return htmlContent
	}

	block := "<style>" + sanitizeCSS(css) + "</style>"

	if idx := indexASCIIFold(htmlContent, "</head>"); idx != -1 {
		return htmlContent[:idx] + block + htmlContent[idx:]
	}
	if idx := indexASCIIFold(htmlContent, "<body"); idx != -1 {
		if end := strings.IndexByte(htmlContent[idx:], '>'); end != -1 {
			at := idx + end + 1
			return htmlContent[:at] + block + htmlContent[at:]
		}
	}
	return block + htmlContent
}

// indexASCIIFold returns the byte offset of the first match of the lowercase
// ASCII needle in s, ignoring ASCII case, or -1. Bytes are compared in place,
// so the offset is valid for s whatever non-ASCII or invalid UTF-8 it holds.
func indexASCIIFold(s, needle string) int {
	n := len(needle)
	for i := 0; i+n <= len(s); i++ {
		j := 0
		for j < n && lowerASCII(s[i+j]) == needle[j] {
			j++
		}
		if j == n {
			return i
		}
	}
	return -1
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

// sanitizeCSS keeps css from closing the surrounding <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
