package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stockroom/backend/internal/infrastructure/telemetry"
)

// ProfilingConfig holds configuration for the profiling middleware.
type ProfilingConfig struct {
	Enabled          bool
	SkipPaths        []string
	SkipPathPrefixes []string
}

// DefaultProfilingConfig skips health checks and API docs
func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Enabled:          true,
		SkipPaths:        []string{"/health"},
		SkipPathPrefixes: []string{"/swagger"},
	}
}

// ProfilingWithConfig runs the handler chain under pprof labels
// (route, method, resource) so profiles can be sliced per endpoint.
func ProfilingWithConfig(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		if skipProfiling(cfg, c.Request.URL.Path) {
			c.Next()
			return
		}

		route := c.FullPath()
		labels := telemetry.HTTPRequestLabels(route, c.Request.Method)
		if resource := resourceFromRoute(route); resource != "" {
			labels["resource"] = resource
		}

		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func skipProfiling(cfg ProfilingConfig, path string) bool {
	for _, p := range cfg.SkipPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range cfg.SkipPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// resourceFromRoute derives the resource from a route template.
// Example: "/api/location/:barcode" -> "location"
// Example: "/inventory/identifier/:barcode" -> "identifier"
func resourceFromRoute(route string) string {
	for _, part := range strings.Split(route, "/") {
		switch {
		case part == "", part == "api", part == "inventory":
			continue
		case strings.HasPrefix(part, ":"), strings.HasPrefix(part, "*"):
			continue
		}
		return part
	}
	return ""
}
