package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestSetup(t *testing.T) {
	testCases := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"mixed case level", "WARN"},
		{"invalid level falls back to info", "verbose"},
		{"empty level falls back to info", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			log := Setup(tc.level)

			if log == nil {
				t.Fatal("Expected a logger, got nil")
			}
			if slog.Default() != log {
				t.Error("Expected Setup to install the logger as default")
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	base := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := WithLogger(context.Background(), base)

	if got := FromContext(ctx); got != base {
		t.Error("Expected the stored logger back from the context")
	}
	if got := FromContext(context.Background()); got != nil {
		t.Error("Expected nil from a context without a logger")
	}
}

func TestFromContextOrDefault(t *testing.T) {
	base := slog.New(slog.NewTextHandler(io.Discard, nil))
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx := WithLogger(context.Background(), base)
	if got := FromContextOrDefault(ctx, fallback); got != base {
		t.Error("Expected the context logger to win over the fallback")
	}

	empty := context.Background()
	if got := FromContextOrDefault(empty, fallback); got != fallback {
		t.Error("Expected the fallback when the context carries no logger")
	}
	if got := FromContextOrDefault(empty, nil); got == nil {
		t.Error("Expected the default logger when nothing else is available")
	}
}
