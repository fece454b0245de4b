package middleware

import (
	"encoding/json"
	"net/http"
)

// Authenticator reports whether the shop owner is logged in
type Authenticator interface {
	Authenticated() bool
}

// RequireAdmin rejects requests while the owner is logged out.
// The owner session is shop-wide; there is no per-request credential.
func RequireAdmin(auth Authenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.Authenticated() {
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized: owner login required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
