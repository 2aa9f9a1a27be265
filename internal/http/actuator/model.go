package actuator

// Component is one indicator in the health document.
type Component struct {
	Status  string         `json:"status"            doc:"Indicator status" enum:"UP,DOWN" example:"UP"`
	Details map[string]any `json:"details,omitempty" doc:"Indicator specific details"`
}

// HealthReport is the aggregated health document. The name keeps it apart
// from the v1 hello Health schema in the shared OpenAPI registry.
type HealthReport struct {
	Status     string               `json:"status"     doc:"Aggregated status" enum:"UP,DOWN" example:"UP"`
	Components map[string]Component `json:"components" doc:"Per-indicator results"`
}

// HealthOutput carries the health document with a status code that mirrors it.
type HealthOutput struct {
	Status int
	Body   HealthReport
}

// MetricNames lists the registered metric families.
type MetricNames struct {
	Names []string `json:"names" doc:"Sorted metric family names" example:"[\"http_server_requests_total\"]"`
}

// MetricsOutput wraps MetricNames as a huma response body.
type MetricsOutput struct {
	Body MetricNames
}
