package middleware

import (
	"context"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const maxRequestIDLength = 128

func unprintable(r rune) bool { return r < 0x20 || r > 0x7E }

// validRequestID bounds client IDs so they are safe to log and echo back.
func validRequestID(id string) bool {
	return id != "" && len(id) <= maxRequestIDLength && strings.IndexFunc(id, unprintable) < 0
}

// newRequestID returns a time-ordered UUIDv7, so IDs sort with log timestamps.
func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// RequestID puts the request identifier under chi's RequestIDKey and in the
// X-Request-Id response header, reusing a valid client-supplied ID.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(chimiddleware.RequestIDHeader)
			if !validRequestID(id) {
				id = newRequestID()
			}
			w.Header().Set(chimiddleware.RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), chimiddleware.RequestIDKey, id)))
		})
	}
}
