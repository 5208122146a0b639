package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns lists the dynamic routes, most specific first.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/articles/[^/]+$`), Template: "/api/articles/{id}"},
}

// NormalizePath collapses dynamic URL paths into their route template so
// that metric labels stay bounded.
//
// Examples:
//
//	NormalizePath("/api/articles/123")      // "/api/articles/{id}"
//	NormalizePath("/api/articles/123/")     // "/api/articles/{id}"
//	NormalizePath("/api/articles?limit=2")  // "/api/articles"
//	NormalizePath("/health")                // "/health" (unchanged)
//
// Swagger asset paths are folded into "/swagger/".
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if strings.HasPrefix(path, "/swagger/") {
		return "/swagger/"
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}

// GetExpectedCardinality returns the expected number of unique path labels
// after normalization: the templates plus the static endpoints
// (/api/articles, /health, /ready, /live, /metrics, /swagger/).
func GetExpectedCardinality() int {
	const staticCount = 6
	return len(pathPatterns) + staticCount
}
