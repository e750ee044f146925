package sitemark

import (
	"regexp"
	"strings"
)

// URLPattern locates the first URL-shaped substring of an ambiguous
// "title: url" text. It accepts absolute URLs with a scheme and
// root-relative paths.
var URLPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.\-]*://\S+|/\S*`)

// CanonicalURL returns the canonical form of a document id or URL.
//
// The rules, in order:
//   - empty or only slashes: "/"
//   - leading slashes are trimmed
//   - anything with a fragment loses its trailing slash
//   - a trailing "/" or "index.html" is kept verbatim
//   - otherwise a trailing "/" is appended
func CanonicalURL(id string) string {
	s := strings.TrimLeft(id, "/")
	if s == "" {
		return "/"
	}
	if strings.Contains(s, "#") {
		return strings.TrimSuffix(s, "/")
	}
	if strings.HasSuffix(s, "/") || strings.HasSuffix(s, "index.html") {
		return s
	}
	return s + "/"
}

// URLsMatch reports whether two ids refer to the same document.
func URLsMatch(a, b string) bool {
	return CanonicalURL(a) == CanonicalURL(b)
}

// IsExternalURL reports whether id points outside of the package, in which
// case no file is expected to back it.
func IsExternalURL(id string) bool {
	if strings.Contains(id, "://") || strings.HasPrefix(id, "//") {
		return true
	}
	for _, scheme := range []string{"mailto:", "tel:", "data:"} {
		if strings.HasPrefix(id, scheme) {
			return true
		}
	}
	return false
}

// stripQuery drops the query string and fragment of a request path.
func stripQuery(path string) string {
	if i := strings.IndexAny(path, "?#"); i != -1 {
		return path[:i]
	}
	return path
}
