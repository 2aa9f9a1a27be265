// Package hello deploys the greeting and health contract as HTTP Cloud Functions.
package hello

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
)

// RFC3339Millis matches the service's timestamp format.
const RFC3339Millis = "2006-01-02T15:04:05.000Z"

const (
	message        = "Hello, World!"
	defaultService = "hello-service"
)

var now = time.Now

func init() {
	functions.HTTP("Hello", helloHandler)
	functions.HTTP("HelloHealth", healthHandler)
}

// Greeting is the greeting body.
type Greeting struct {
	Message string `json:"message"`
}

// Health is the health body.
type Health struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

func helloHandler(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	writeJSON(w, Greeting{Message: message})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = defaultService
	}
	writeJSON(w, Health{
		Status:    "UP",
		Service:   service,
		Timestamp: now().UTC().Format(RFC3339Millis),
	})
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	return false
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
