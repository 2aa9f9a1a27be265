// Package health aggregates the health indicators reported by /actuator/health.
package health

import (
	"context"
)

// Indicator statuses.
const (
	StatusUp   = "UP"
	StatusDown = "DOWN"
)

// Component is the result of a single indicator.
type Component struct {
	Status  string
	Details map[string]any
}

// Report is the aggregated service health.
type Report struct {
	Status     string
	Components map[string]Component
}

// Up reports whether every component is UP.
func (r Report) Up() bool {
	return r.Status == StatusUp
}

// Indicator checks one aspect of the running process.
type Indicator interface {
	Name() string
	Health(ctx context.Context) Component
}

// Service runs all indicators and aggregates their results.
type Service interface {
	Check(ctx context.Context) Report
}

type service struct {
	indicators []Indicator
}

// NewService returns a Service over the given indicators. Indicator names must be unique.
func NewService(indicators ...Indicator) Service {
	return &service{indicators: indicators}
}

// Check runs every indicator in registration order. The report is UP only
// when all components are UP; a service without indicators is UP.
func (s *service) Check(ctx context.Context) Report {
	report := Report{
		Status:     StatusUp,
		Components: make(map[string]Component, len(s.indicators)),
	}
	for _, ind := range s.indicators {
		c := ind.Health(ctx)
		if c.Status != StatusUp {
			report.Status = StatusDown
		}
		report.Components[ind.Name()] = c
	}
	return report
}
