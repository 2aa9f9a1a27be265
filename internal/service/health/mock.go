package health

import (
	"context"
	"sync"
)

// MockIndicator returns a fixed component and counts how often it was asked.
type MockIndicator struct {
	mu        sync.Mutex
	name      string
	component Component
	calls     int
}

// NewMockIndicator creates an indicator that always reports component.
func NewMockIndicator(name string, component Component) *MockIndicator {
	return &MockIndicator{name: name, component: component}
}

func (m *MockIndicator) Name() string { return m.name }

func (m *MockIndicator) Health(context.Context) Component {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.component
}

// Calls returns how many times Health was invoked.
func (m *MockIndicator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
