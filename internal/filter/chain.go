package filter

import (
	"context"

	"github.com/yndnr/routeguard-go/internal/telemetry/metric"
)

// Evaluate runs a filter chain left to right and reports whether
// navigation may proceed. It short-circuits on the first denying filter;
// filters after it are never invoked. An empty or nil chain allows.
func Evaluate(ctx context.Context, env *Env, path string, filters []Filter) bool {
	for _, f := range filters {
		allowed := f.Allow(ctx, env, path)

		if env.Metrics != nil {
			decision := metric.DecisionAllow
			if !allowed {
				decision = metric.DecisionDeny
			}
			env.Metrics.FilterDecisions.WithLabelValues(f.Name(), decision).Inc()
		}

		if !allowed {
			env.log().Debug("filter denied navigation", "filter", f.Name(), "path", path)
			return false
		}
	}
	return true
}
