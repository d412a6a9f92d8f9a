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

const uuidSeg = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific
// and are pre-compiled at initialization.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/articles/` + uuidSeg + `/comments$`), Template: "/articles/:id/comments"},
	{Pattern: regexp.MustCompile(`^/articles/` + uuidSeg + `/view$`), Template: "/articles/:id/view"},
	{Pattern: regexp.MustCompile(`^/articles/` + uuidSeg + `$`), Template: "/articles/:id"},

	{Pattern: regexp.MustCompile(`^/comments/` + uuidSeg + `/like$`), Template: "/comments/:id/like"},
	{Pattern: regexp.MustCompile(`^/comments/` + uuidSeg + `$`), Template: "/comments/:id"},

	{Pattern: regexp.MustCompile(`^/users/` + uuidSeg + `$`), Template: "/users/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label
// cardinality explosion. It converts paths with UUIDs (e.g.
// /articles/8f14e45f-...) to template form (e.g. /articles/:id). Static
// paths pass through unchanged.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
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
