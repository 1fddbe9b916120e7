package modifier

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/erraggy/docmod/value"
)

func TestNopLogger(t *testing.T) {
	t.Run("implements Logger interface", func(t *testing.T) {
		var _ Logger = NopLogger{}
	})

	t.Run("methods do nothing", func(t *testing.T) {
		l := NopLogger{}
		l.Debug("test message", "key", "value")
		l.Info("test message", "key", "value")
		l.Warn("test message", "key", "value")
		l.Error("test message", "key", "value")
	})

	t.Run("With returns same NopLogger", func(t *testing.T) {
		l2 := NopLogger{}.With("key", "value")
		if _, ok := l2.(NopLogger); !ok {
			t.Error("With should return NopLogger")
		}
	})
}

func TestSlogAdapter(t *testing.T) {
	newAdapter := func(level slog.Level) (*SlogAdapter, *bytes.Buffer) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})
		return NewSlogAdapter(slog.New(handler)), &buf
	}

	t.Run("NewSlogAdapter with nil uses default", func(t *testing.T) {
		adapter := NewSlogAdapter(nil)
		if adapter.logger == nil {
			t.Error("adapter.logger should not be nil")
		}
	})

	t.Run("Debug logs at debug level", func(t *testing.T) {
		adapter, buf := newAdapter(slog.LevelDebug)
		adapter.Debug("test debug", "foo", "bar")
		output := buf.String()
		if !strings.Contains(output, "DEBUG") {
			t.Errorf("expected DEBUG level, got: %s", output)
		}
		if !strings.Contains(output, "foo=bar") {
			t.Errorf("expected foo=bar attribute, got: %s", output)
		}
	})

	t.Run("Info logs at info level", func(t *testing.T) {
		adapter, buf := newAdapter(slog.LevelInfo)
		adapter.Info("test info", "count", 42)
		output := buf.String()
		if !strings.Contains(output, "INFO") || !strings.Contains(output, "count=42") {
			t.Errorf("expected INFO with count=42, got: %s", output)
		}
	})

	t.Run("Warn logs at warn level", func(t *testing.T) {
		adapter, buf := newAdapter(slog.LevelWarn)
		adapter.Warn("test warn", "problem", "something")
		if output := buf.String(); !strings.Contains(output, "WARN") {
			t.Errorf("expected WARN level, got: %s", output)
		}
	})

	t.Run("Error logs at error level", func(t *testing.T) {
		adapter, buf := newAdapter(slog.LevelError)
		adapter.Error("test error", "err", "boom")
		if output := buf.String(); !strings.Contains(output, "ERROR") {
			t.Errorf("expected ERROR level, got: %s", output)
		}
	})

	t.Run("filtered below level", func(t *testing.T) {
		adapter, buf := newAdapter(slog.LevelInfo)
		adapter.Debug("hidden")
		if buf.Len() != 0 {
			t.Errorf("expected no output, got: %s", buf.String())
		}
	})

	t.Run("With adds attributes", func(t *testing.T) {
		adapter, buf := newAdapter(slog.LevelInfo)
		adapter.With("doc", "users/1").Info("modified")
		if output := buf.String(); !strings.Contains(output, "doc=users/1") {
			t.Errorf("expected doc=users/1 attribute, got: %s", output)
		}
	})
}

func TestModifier_LogsOperatorApplications(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	m := New()
	m.Logger = NewSlogAdapter(slog.New(handler))
	if _, err := m.Modify(value.D(), value.D("$inc", value.D("views", 1))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "applying operator") || !strings.Contains(output, "path=views") {
		t.Errorf("expected operator debug entry, got: %s", output)
	}
}
