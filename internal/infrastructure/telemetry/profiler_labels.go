package telemetry

import (
	"context"
	"sort"
	"strings"

	"github.com/grafana/pyroscope-go"
)

// WithProfilingLabels runs fn with pprof labels attached, so CPU samples taken
// inside fn can be filtered by label in Pyroscope. Keep label values low-cardinality.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := labelPairs(labels)
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// HTTPRequestLabels labels a request by its route template, not its concrete path
func HTTPRequestLabels(route, method string) map[string]string {
	if route == "" {
		route = "unmatched"
	}
	return map[string]string{"route": route, "method": method}
}

// labelPairs flattens labels into sorted key, value pairs, dropping empty entries
func labelPairs(labels map[string]string) []string {
	keys := make([]string, 0, len(labels))
	for k, v := range labels {
		if strings.TrimSpace(k) != "" && v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, sanitizeLabelKey(k), labels[k])
	}
	return pairs
}

// sanitizeLabelKey lower-cases the key and replaces anything outside [a-z0-9_]
func sanitizeLabelKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, strings.TrimSpace(key))
}
