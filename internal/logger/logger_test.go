package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelDebug},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDiscardDropsRecords(t *testing.T) {
	log := Discard()
	if log.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Discard() logger should not be enabled for debug")
	}
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel("debug") })

	SetLevel("error")
	if got := level.Level(); got != slog.LevelError {
		t.Errorf("level = %v, want error", got)
	}
}
