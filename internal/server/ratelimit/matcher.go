package ratelimit

import (
	"strings"
)

// MatchEndpoint returns the configuration for a request path and method, or nil when
// none applies. Exact paths win over prefix paths (those ending in "/"). GET /health
// always matches an unlimited configuration.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}
