package auth

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
)

const realm = `Basic realm="Nexalis Admin"`

// BasicAuth guards the admin routes. An empty username disables the
// routes entirely instead of leaving them open.
func BasicAuth(log *slog.Logger, username, password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middleware.auth.BasicAuth"

			if username == "" {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			user, pass, ok := r.BasicAuth()
			if !ok || !equal(user, username) || !equal(pass, password) {
				log.Warn("admin authentication failed",
					slog.String("op", op),
					slog.String("path", r.URL.Path),
					slog.String("remote", r.RemoteAddr),
				)
				requireAuth(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func equal(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func requireAuth(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", realm)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}
