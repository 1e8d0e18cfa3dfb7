package handler

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
)

// PasswordHeader carries the application password on every API request. The
// original app gated a browser session once; a stateless API checks each
// request instead.
const PasswordHeader = "X-App-Password"

// PasswordGate rejects requests that don't carry the application password.
// The comparison is constant time so the password can't be probed byte by
// byte.
func PasswordGate(password string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(PasswordHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(password)) != 1 {
				logger.Warn("rejected request with bad password", "path", r.URL.Path, "remote", r.RemoteAddr)
				respondError(w, http.StatusUnauthorized, "password incorrect")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
