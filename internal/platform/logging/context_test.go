package logging

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func fieldMap(entry observer.LoggedEntry) map[string]zap.Field {
	fields := map[string]zap.Field{}
	for _, f := range entry.Context {
		fields[f.Key] = f
	}
	return fields
}

func TestTraceIDFromContext(t *testing.T) {
	if got := TraceIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty trace ID, got %q", got)
	}
	ctx := contextWithTraceID(context.Background(), "trace-abc")
	if got := TraceIDFromContext(ctx); got != "trace-abc" {
		t.Fatalf("expected trace-abc, got %q", got)
	}
}

func TestContextWithTraceIDEmpty(t *testing.T) {
	original := context.Background()
	if ctx := contextWithTraceID(original, ""); ctx != original {
		t.Fatal("expected same context for empty trace ID")
	}
}

func TestLogHelpersUseContextLogger(t *testing.T) {
	tests := []struct {
		name  string
		log   func(ctx context.Context)
		level zapcore.Level
		msg   string
	}{
		{"info", func(ctx context.Context) { LogInfo(ctx, "info message", zap.String("foo", "bar")) }, zapcore.InfoLevel, "info message"},
		{"warn", func(ctx context.Context) { LogWarn(ctx, "warn message", zap.String("foo", "bar")) }, zapcore.WarnLevel, "warn message"},
		{"error", func(ctx context.Context) { LogError(ctx, "error message", nil, zap.String("foo", "bar")) }, zapcore.ErrorLevel, "error message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.DebugLevel)
			ctx := WithLogger(context.Background(), zap.New(core))

			tt.log(ctx)

			entries := recorded.All()
			if len(entries) != 1 {
				t.Fatalf("expected 1 log entry, got %d", len(entries))
			}
			if entries[0].Message != tt.msg || entries[0].Level != tt.level {
				t.Fatalf("unexpected entry: %s %s", entries[0].Level, entries[0].Message)
			}
			fields := fieldMap(entries[0])
			if f, ok := fields["foo"]; !ok || f.String != "bar" {
				t.Fatalf("expected foo field, got %+v", fields)
			}
			if _, ok := fields["error"]; ok {
				t.Fatal("did not expect error field")
			}
		})
	}
}

func TestLogErrorAppendsErrorField(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	ctx := WithLogger(context.Background(), zap.New(core))

	LogError(ctx, "failed", errors.New("boom"))

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if f, ok := fieldMap(entries[0])["error"]; !ok || f.Type != zapcore.ErrorType {
		t.Fatalf("expected error field, got %+v", entries[0].Context)
	}
}

func TestLogFatalAppendsErrorField(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := zap.New(core, zap.WithFatalHook(zapcore.WriteThenPanic))
	ctx := WithLogger(context.Background(), logger)

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic triggered by fatal hook")
		}
		entries := recorded.All()
		if len(entries) != 1 || entries[0].Level != zapcore.FatalLevel {
			t.Fatalf("expected one fatal entry, got %+v", entries)
		}
		if _, ok := fieldMap(entries[0])["error"]; !ok {
			t.Fatalf("expected error field, got %+v", entries[0].Context)
		}
	}()

	LogFatal(ctx, "fatal failure", errors.New("boom"))
}

func TestLoggerFromContextFallsBackToGlobal(t *testing.T) {
	var nilCtx context.Context //nolint:revive // testing nil context handling
	if LoggerFromContext(nilCtx) != Logger() {
		t.Fatal("expected global logger for nil context")
	}
	ctx := context.WithValue(context.Background(), ctxLoggerKey{}, (*zap.Logger)(nil))
	if LoggerFromContext(ctx) != Logger() {
		t.Fatal("expected global logger when context holds a nil logger")
	}
	if TraceIDFromContext(nilCtx) != "" {
		t.Fatal("expected empty trace ID for nil context")
	}
}
