package middleware

import "net/http"

// Vary lists request headers that select between response representations.
// The server passes Accept for the JSON/CBOR choice; CORS adds Origin itself.
func Vary(headers ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, h := range headers {
				w.Header().Add("Vary", h)
			}
			next.ServeHTTP(w, r)
		})
	}
}
