package logging

import (
	"fmt"
	"regexp"
	"sync/atomic"

	"go.uber.org/zap"
)

const traceparentHeader = "traceparent"

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
// e.g. 00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-01
var traceHeaderRe = regexp.MustCompile(`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)

var traceProject atomic.Pointer[string]

// SetTraceProject sets the Google Cloud project used to build Cloud Trace
// resource names. An empty project disables trace correlation.
func SetTraceProject(projectID string) {
	traceProject.Store(&projectID)
}

func currentTraceProject() string {
	if p := traceProject.Load(); p != nil {
		return *p
	}
	return ""
}

type traceContext struct {
	resource string
	spanID   string
	sampled  bool
}

// parseTraceparent resolves a traceparent header into a Cloud Trace context.
// ok is false when the header is malformed or no project is configured.
func parseTraceparent(header, projectID string) (tc traceContext, ok bool) {
	if projectID == "" {
		return traceContext{}, false
	}
	m := traceHeaderRe.FindStringSubmatch(header)
	if len(m) != 5 {
		return traceContext{}, false
	}
	return traceContext{
		resource: fmt.Sprintf("projects/%s/traces/%s", projectID, m[2]),
		spanID:   m[3],
		sampled:  m[4] == "01",
	}, true
}

func (tc traceContext) fields() []zap.Field {
	return []zap.Field{
		zap.String("logging.googleapis.com/trace", tc.resource),
		zap.String("logging.googleapis.com/spanId", tc.spanID),
		zap.Bool("logging.googleapis.com/trace_sampled", tc.sampled),
	}
}

func loggerWithTrace(base *zap.Logger, tc traceContext, traced bool, requestID string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	var fields []zap.Field
	if traced {
		fields = tc.fields()
	}
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}
