package hello

import "github.com/sinko/hello-service/internal/platform/timeutil"

// StatusUp is the only status the hello health route reports.
const StatusUp = "UP"

// Greeting is the payload of GET /hello.
type Greeting struct {
	Message string `json:"message" doc:"Greeting message" example:"Hello, World!"`
}

// Health is the payload of GET /hello/health.
type Health struct {
	Status    string        `json:"status"    doc:"Service status"          example:"UP"`
	Service   string        `json:"service"   doc:"Service name"            example:"hello-service"`
	Timestamp timeutil.Time `json:"timestamp" doc:"Time the check was made" example:"2024-01-15T10:30:00.000Z"`
}

// GreetingOutput wraps Greeting as a huma response body.
type GreetingOutput struct {
	Body Greeting
}

// HealthOutput wraps Health as a huma response body.
type HealthOutput struct {
	Body Health
}
