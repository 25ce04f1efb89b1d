package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		l, err := New(tt.level, "json", "loan-api")
		if err != nil {
			t.Fatalf("New(%q): %v", tt.level, err)
		}
		if !l.Core().Enabled(tt.want) {
			t.Errorf("level %q: %v not enabled", tt.level, tt.want)
		}
		if tt.want > zapcore.DebugLevel && l.Core().Enabled(tt.want-1) {
			t.Errorf("level %q: %v unexpectedly enabled", tt.level, tt.want-1)
		}
	}
}

func TestNew_Console(t *testing.T) {
	l, err := New("info", "console", "")
	if err != nil {
		t.Fatalf("New console: %v", err)
	}
	if !l.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info should be enabled")
	}
}
