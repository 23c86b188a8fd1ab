package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zapcore.Level
	}{
		{"debug", "debug", zapcore.DebugLevel},
		{"warn", "warn", zapcore.WarnLevel},
		{"error", "error", zapcore.ErrorLevel},
		{"unknown falls back to info", "chatty", zapcore.InfoLevel},
		{"empty falls back to info", "", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.level); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestComponent(t *testing.T) {
	if err := Init("error"); err != nil {
		t.Fatalf("Init() err=%v", err)
	}
	l := Component("rules")
	if l == nil {
		t.Fatal("Component() returned nil")
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at error level")
	}
}
