package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestPackage_LogFunctions_UseDefaultLogger(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	var buf bytes.Buffer

	SetDefault(Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON), WithPretty(false)))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
		{"TraceContext", func(msg string, attrs ...slog.Attr) {
			TraceContext(context.Background(), msg, attrs...)
		}, "TRACE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("package message", slog.String("key", "value"))

			output := buf.String()
			if !strings.Contains(output, "package message") ||
				!strings.Contains(output, tt.level) ||
				!strings.Contains(output, `"key":"value"`) {
				t.Errorf("unexpected output: %s", output)
			}
		})
	}
}

func TestPackage_Config_UpdatesDefault(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	var buf bytes.Buffer

	SetDefault(Make(&buf, WithPretty(false)))
	Config(WithFormat(FormatText), WithCaller(true))

	Info("configured")

	out := buf.String()
	if !strings.Contains(out, "msg=configured") {
		t.Errorf("expected text format: %s", out)
	}

	if !strings.Contains(out, "pkg_test.go") {
		t.Errorf("expected caller to name the test file: %s", out)
	}
}
