package ratelimit

import (
	"net/http"
	"strings"
)

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns nil when nothing matches. Exact paths win over prefix entries
// (paths ending in "/"). The health check is always unlimited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == http.MethodGet {
		return &EndpointConfig{Path: path, Method: method}
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
