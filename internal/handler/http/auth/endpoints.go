package auth

import (
	"fmt"
	"net/http"
	"strings"
)

// PublicRule exempts requests from authentication. Method may be empty to
// match any method. Path uses http.ServeMux pattern syntax, so wildcards
// like {id} and trailing-slash subtrees work as they do for routing.
type PublicRule struct {
	Method string `yaml:"method"`
	Path   string `yaml:"path"`
}

func (r PublicRule) pattern() string {
	if r.Method == "" {
		return r.Path
	}
	return strings.ToUpper(r.Method) + " " + r.Path
}

// DefaultPublicRules are the routes reachable without a token:
//   - article reads
//   - /health, /ready, /live: orchestration probes
//   - /metrics: Prometheus scraping
//   - /swagger/: API documentation
var DefaultPublicRules = []PublicRule{
	{Method: http.MethodGet, Path: "/api/articles"},
	{Method: http.MethodGet, Path: "/api/articles/{id}"},
	{Path: "/health"},
	{Path: "/ready"},
	{Path: "/live"},
	{Path: "/metrics"},
	{Path: "/swagger/"},
}

// PublicMatcher decides whether a request is covered by a PublicRule.
// It reuses ServeMux matching so public rules and routes share one syntax.
type PublicMatcher struct {
	mux *http.ServeMux
}

// NewPublicMatcher compiles rules. Duplicate rules are ignored; a rule that
// is not a valid ServeMux pattern panics, as it would on route registration.
func NewPublicMatcher(rules []PublicRule) *PublicMatcher {
	mux := http.NewServeMux()
	seen := make(map[string]struct{}, len(rules))
	for _, rule := range rules {
		p := rule.pattern()
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		mux.Handle(p, http.NotFoundHandler())
	}
	return &PublicMatcher{mux: mux}
}

// IsPublic reports whether r matches one of the rules.
func (m *PublicMatcher) IsPublic(r *http.Request) bool {
	if m == nil {
		return false
	}
	_, pattern := m.mux.Handler(r)
	return pattern != ""
}

// ValidateRules reports the first rule NewPublicMatcher would reject.
func ValidateRules(rules []PublicRule) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("invalid public rule: %v", p)
		}
	}()
	NewPublicMatcher(rules)
	return nil
}
