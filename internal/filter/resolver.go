package filter

import (
	"strings"
	"sync"

	"github.com/yndnr/routeguard-go/internal/config"
)

// rule is a compiled filter rule.
type rule struct {
	pattern string
	filters []Filter
}

// matches reports whether the rule's pattern covers the path. A pattern
// is either an exact path or a prefix ending in "*".
func (r *rule) matches(path string) bool {
	if strings.HasSuffix(r.pattern, "*") {
		return strings.HasPrefix(path, r.pattern[:len(r.pattern)-1])
	}
	return path == r.pattern
}

// Resolver maps navigation paths to their configured filter chains.
// Rules keep their configured order and the first matching pattern wins,
// so more specific rules are listed before catch-alls.
//
// Resolve and Reload are safe for concurrent use, allowing rules to be
// swapped by a config watcher while navigation is in progress.
type Resolver struct {
	mu    sync.RWMutex
	rules []rule
}

// NewResolver compiles the configured rules into a Resolver.
func NewResolver(rules []config.FilterRule) (*Resolver, error) {
	r := &Resolver{}
	if err := r.Reload(rules); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload atomically replaces the rule set. On error the previous rules
// stay in effect.
func (r *Resolver) Reload(cfgRules []config.FilterRule) error {
	compiled := make([]rule, 0, len(cfgRules))
	for _, cr := range cfgRules {
		filters := make([]Filter, 0, len(cr.Filters))
		for _, name := range cr.Filters {
			f, err := Parse(name)
			if err != nil {
				return err
			}
			filters = append(filters, f)
		}
		compiled = append(compiled, rule{pattern: cr.Pattern, filters: filters})
	}

	r.mu.Lock()
	r.rules = compiled
	r.mu.Unlock()
	return nil
}

// Resolve returns the filter chain for a path, or nil when no rule
// matches. A nil chain means the path is unguarded.
func (r *Resolver) Resolve(path string) []Filter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.rules {
		if r.rules[i].matches(path) {
			return r.rules[i].filters
		}
	}
	return nil
}
