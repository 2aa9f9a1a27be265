// Package actuator exposes operational endpoints: aggregated health and the
// list of available metrics.
package actuator

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/sinko/hello-service/internal/platform/logging"
	healthsvc "github.com/sinko/hello-service/internal/service/health"
)

// Prefix is the path the actuator operations are mounted under.
const Prefix = "/actuator"

// MetricNamer lists metric family names.
type MetricNamer interface {
	Names() ([]string, error)
}

// Register wires the actuator routes into api.
func Register(api huma.API, svc healthsvc.Service, metrics MetricNamer) {
	grp := huma.NewGroup(api, Prefix)

	huma.Register(grp, huma.Operation{
		OperationID: "get-actuator-health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Get aggregated health",
		Description: "Runs every health indicator. Responds 200 when all are UP and 503 otherwise.",
		Tags:        []string{"Actuator"},
		Responses: map[string]*huma.Response{
			"503": {Description: "At least one indicator is DOWN"},
		},
	}, func(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
		report := svc.Check(ctx)
		out := &HealthOutput{Status: http.StatusOK, Body: toHTTPHealth(report)}
		if !report.Up() {
			out.Status = http.StatusServiceUnavailable
			applog.LogWarn(ctx, "health check down", zap.Any("components", out.Body.Components))
		}
		return out, nil
	})

	huma.Register(grp, huma.Operation{
		OperationID: "list-actuator-metrics",
		Method:      http.MethodGet,
		Path:        "/metrics",
		Summary:     "List metric names",
		Tags:        []string{"Actuator"},
	}, func(ctx context.Context, _ *struct{}) (*MetricsOutput, error) {
		names, err := metrics.Names()
		if err != nil {
			return nil, err
		}
		return &MetricsOutput{Body: MetricNames{Names: names}}, nil
	})
}

func toHTTPHealth(r healthsvc.Report) HealthReport {
	components := make(map[string]Component, len(r.Components))
	for name, c := range r.Components {
		components[name] = Component{Status: c.Status, Details: c.Details}
	}
	return HealthReport{Status: r.Status, Components: components}
}
