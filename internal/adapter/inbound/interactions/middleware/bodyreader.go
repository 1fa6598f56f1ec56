package middleware

import (
	"bytes"
	"io"
	"net/http"
)

// maxBodyBytes bounds interaction payloads; real ones are a few kilobytes.
const maxBodyBytes = 1 << 20

// BodyReader reads and buffers the request body so it can be read twice:
// once for signature verification and once for JSON decoding.
func BodyReader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		r.Body.Close()

		// Restore body so downstream handlers can read it again
		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}
