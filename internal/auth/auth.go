// Package auth provides the static bearer-token check guarding the MCP
// endpoint. Token validation is an exact string match; there is no key
// material, expiry, or scoping.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Middleware wraps next with a bearer-token check against token. Requests
// without a matching Authorization header get 401.
func Middleware(token string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		presented, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			w.Header().Set("WWW-Authenticate", "Bearer")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
