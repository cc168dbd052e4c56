package registry

import (
	"io"
	"net/http"
	"strings"
)

func readAllAndClose(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	return io.ReadAll(resp.Body)
}

// isHTMLContentType reports whether the response's Content-Type header
// indicates HTML, used to short-circuit JSON parsing per spec.md §4.1/§7:
// an HTML body is never handed to a JSON decoder.
func isHTMLContentType(resp *http.Response) bool {
	ct := resp.Header.Get("Content-Type")
	return strings.Contains(strings.ToLower(ct), "text/html")
}

// extractHTMLSnippet produces a best-effort human-readable snippet from an
// HTML error body (e.g. a login wall or rate-limit page), stripping tags
// crudely rather than attempting a full parse — the body is never valid
// JSON, so there's nothing to "parse" in the strict sense.
func extractHTMLSnippet(body []byte, maxLen int) string {
	s := string(body)
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	text := strings.Join(strings.Fields(b.String()), " ")
	if len(text) > maxLen {
		text = text[:maxLen] + "..."
	}
	return text
}

// truncateToken truncates a token to 8 characters for safe logging, per
// spec.md §4.1 ("Token prefixes in logs are truncated to 8 characters with
// an ellipsis"), grounded on the teacher's pkg/stringutil.Truncate idiom.
func truncateToken(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8] + "..."
}
