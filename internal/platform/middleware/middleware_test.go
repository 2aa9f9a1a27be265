package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func containsHeader(headerValue, target string) bool {
	for part := range strings.SplitSeq(headerValue, ",") {
		if strings.EqualFold(strings.TrimSpace(part), target) {
			return true
		}
	}
	return false
}

func TestRequestIDReusesValidHeader(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = chimiddleware.GetReqID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "abc-123")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if seen != "abc-123" {
		t.Fatalf("expected context request ID abc-123, got %q", seen)
	}
	if got := resp.Header().Get(chimiddleware.RequestIDHeader); got != "abc-123" {
		t.Fatalf("expected echoed request ID, got %q", got)
	}
}

func TestRequestIDReplacesInvalidHeader(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"missing", ""},
		{"too long", strings.Repeat("a", maxRequestIDLength+1)},
		{"newline", "abc\ndef"},
		{"non-ascii", "café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.value != "" {
				req.Header.Set(chimiddleware.RequestIDHeader, tt.value)
			}
			resp := httptest.NewRecorder()
			RequestID()(okHandler).ServeHTTP(resp, req)

			got := resp.Header().Get(chimiddleware.RequestIDHeader)
			id, err := uuid.Parse(got)
			if err != nil {
				t.Fatalf("expected generated UUID, got %q", got)
			}
			if id.Version() != 7 {
				t.Fatalf("expected UUIDv7, got version %d", id.Version())
			}
		})
	}
}

func TestValidRequestIDBoundary(t *testing.T) {
	if !validRequestID(strings.Repeat("x", maxRequestIDLength)) {
		t.Fatal("expected max-length ID to be valid")
	}
	if !validRequestID(" ~") {
		t.Fatal("expected printable ASCII boundaries to be valid")
	}
	if validRequestID("abc\x7f") {
		t.Fatal("expected DEL to be rejected")
	}
}

func TestSecuritySetsHeaders(t *testing.T) {
	resp := httptest.NewRecorder()
	Security()(okHandler).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/hello", nil))

	tests := []struct {
		header string
		want   string
	}{
		{"Cache-Control", "no-store"},
		{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
		{"Referrer-Policy", "no-referrer"},
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
	}
	for _, tt := range tests {
		if got := resp.Header().Get(tt.header); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.header, tt.want, got)
		}
	}
}

func TestSecuritySkipsPaths(t *testing.T) {
	resp := httptest.NewRecorder()
	Security("/api-docs")(okHandler).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api-docs", nil))

	if got := resp.Header().Get("X-Frame-Options"); got != "" {
		t.Fatalf("expected no security headers on skipped path, got X-Frame-Options %q", got)
	}
}

func TestVaryAddsAccept(t *testing.T) {
	h := Vary("Accept")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Custom", "value")
		w.WriteHeader(http.StatusCreated)
	}))
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	if resp.Code != http.StatusCreated || resp.Header().Get("X-Custom") != "value" {
		t.Fatal("expected downstream response to be preserved")
	}
	if got := resp.Header().Get("Vary"); got != "Accept" {
		t.Fatalf("expected Vary: Accept, got %q", got)
	}
}

func TestVaryAddsEachHeader(t *testing.T) {
	resp := httptest.NewRecorder()
	Vary("Accept", "Accept-Encoding")(okHandler).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	got := resp.Header().Values("Vary")
	if len(got) != 2 || got[0] != "Accept" || got[1] != "Accept-Encoding" {
		t.Fatalf("unexpected Vary values %v", got)
	}
}

func TestCORSAllowsGETOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://localhost/api/v1/hello", nil)
	req.Header.Set("Origin", "http://example.com")
	resp := httptest.NewRecorder()
	CORS()(okHandler).ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected Access-Control-Allow-Origin '*', got %q", got)
	}
	if !containsHeader(resp.Header().Get("Access-Control-Expose-Headers"), "X-Request-Id") {
		t.Fatalf("expected X-Request-Id to be exposed, got %q", resp.Header().Get("Access-Control-Expose-Headers"))
	}
}

func TestCORSPreflightWithoutCallingNext(t *testing.T) {
	called := false
	h := CORS()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	req := httptest.NewRequest(http.MethodOptions, "http://localhost/api/v1/hello", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "traceparent")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if called {
		t.Fatal("expected preflight to be answered by the CORS middleware")
	}
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for preflight, got %d", resp.Code)
	}
	if !containsHeader(resp.Header().Get("Access-Control-Allow-Headers"), "traceparent") {
		t.Fatalf("expected traceparent to be allowed, got %q", resp.Header().Get("Access-Control-Allow-Headers"))
	}
}

func TestCORSRestrictsConfiguredOrigins(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://localhost/api/v1/hello", nil)
	req.Header.Set("Origin", "http://evil.example")
	resp := httptest.NewRecorder()
	CORS("https://app.example")(okHandler).ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow-origin for foreign origin, got %q", got)
	}
}
