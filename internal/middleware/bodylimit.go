package middleware

import "net/http"

// maxBodyBytes caps JSON request bodies at 10 MB.
const maxBodyBytes = 10 << 20

// MaxBody wraps request bodies so reads past the ceiling fail. The
// decode error surfaces to the client as a 400 at the handler boundary.
func MaxBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}
