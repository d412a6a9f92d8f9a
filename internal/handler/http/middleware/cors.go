// Package middleware provides cross-cutting HTTP middleware that is
// configured from the environment rather than wired per route.
package middleware

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// CORSConfig holds the CORS policy for the public API.
type CORSConfig struct {
	// AllowedOrigins is the origin whitelist. Empty means same-origin only.
	AllowedOrigins []string

	// AllowedMethods are the methods permitted in cross-origin requests.
	AllowedMethods []string

	// AllowedHeaders are the request headers permitted in cross-origin requests.
	AllowedHeaders []string

	// AllowCredentials must be true for Bearer token authentication from a browser.
	AllowCredentials bool

	// MaxAge is how long preflight results may be cached, in seconds.
	MaxAge int
}

// LoadCORSConfig builds a CORSConfig from environment variables:
// CORS_ALLOWED_ORIGINS (comma separated), CORS_ALLOWED_METHODS,
// CORS_ALLOWED_HEADERS, and CORS_MAX_AGE. Unset variables fall back to
// defaults suitable for a browser frontend using Bearer tokens.
func LoadCORSConfig() CORSConfig {
	cfg := CORSConfig{
		AllowedOrigins:   splitEnvList("CORS_ALLOWED_ORIGINS", nil),
		AllowedMethods:   splitEnvList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders:   splitEnvList("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization", "X-Request-ID"}),
		AllowCredentials: true,
		MaxAge:           86400,
	}

	if v := os.Getenv("CORS_MAX_AGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxAge = n
		}
	}

	return cfg
}

func splitEnvList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// CORS returns middleware enforcing the given policy. Origins not on the
// whitelist get no CORS headers; preflight requests for allowed origins are
// answered with 204.
func CORS(cfg CORSConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[o] = struct{}{}
	}

	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if _, ok := allowed[origin]; !ok {
				if logger != nil {
					logger.Warn("cors origin rejected",
						slog.String("origin", origin),
						slog.String("path", r.URL.Path),
					)
				}
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			if cfg.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
