package middleware

import (
	"crypto/ed25519"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// SignatureAuth returns middleware that verifies the Ed25519 signature the
// platform puts on every interaction. The signed message is the
// X-Signature-Timestamp header followed by the raw body; the signature is in
// X-Signature-Ed25519 as hex. Requests that fail never reach next.
func SignatureAuth(key ed25519.PublicKey, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// VerifyInteraction restores r.Body after reading it.
			if !discordgo.VerifyInteraction(r, key) {
				logger.Warn("rejected request with invalid signature",
					"path", r.URL.Path,
					"remote", remoteIP(r),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid request signature"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
