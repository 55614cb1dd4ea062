package chi

import (
	"net/http"
	"strings"
)

// BearerAuthMiddleware validates Bearer tokens against the configured API
// keys. With no keys configured authentication is disabled entirely.
// /health and /metrics are always reachable.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	valid := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			valid[k] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		if len(valid) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isExempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			token, reason := bearerToken(r.Header.Get("Authorization"))
			if reason != "" {
				writeError(w, http.StatusUnauthorized, codeBadRequest, reason)
				return
			}
			if _, ok := valid[token]; !ok {
				writeError(w, http.StatusUnauthorized, codeBadRequest, "invalid api key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isExempt(path string) bool {
	return path == "/health" || path == "/metrics"
}

// bearerToken extracts the token from an Authorization header value,
// returning a rejection reason when the header is absent or malformed.
func bearerToken(header string) (token, reason string) {
	if header == "" {
		return "", "missing authorization header"
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", "authorization header must use Bearer scheme"
	}
	return token, ""
}
