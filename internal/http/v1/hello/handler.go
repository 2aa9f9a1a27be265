package hello

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/sinko/hello-service/internal/platform/logging"
	"github.com/sinko/hello-service/internal/platform/timeutil"
)

// Message is the fixed greeting.
const Message = "Hello, World!"

// clock is replaced in tests.
var clock = time.Now

// Register wires the hello routes into api. service is reported by the health route.
func Register(api huma.API, service string) {
	huma.Register(api, huma.Operation{
		OperationID: "get-hello",
		Method:      http.MethodGet,
		Path:        "/hello",
		Summary:     "Get greeting",
		Description: "Returns a fixed greeting.",
		Tags:        []string{"Hello"},
	}, func(ctx context.Context, _ *struct{}) (*GreetingOutput, error) {
		applog.LogInfo(ctx, "hello get", zap.String("path", "/hello"))
		return &GreetingOutput{Body: Greeting{Message: Message}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-hello-health",
		Method:      http.MethodGet,
		Path:        "/hello/health",
		Summary:     "Get hello service health",
		Description: "Reports that the service is up, its name and the current time.",
		Tags:        []string{"Hello"},
	}, func(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
		return &HealthOutput{Body: Health{
			Status:    StatusUp,
			Service:   service,
			Timestamp: timeutil.NewTime(clock()),
		}}, nil
	})
}
