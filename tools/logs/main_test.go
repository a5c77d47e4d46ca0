package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sleuth-io/razordiag/internal/ui/theme"
)

const sampleLine = `time=2026-10-14T09:15:42.123+02:00 level=WARN msg="failed to list folder" folder="C:\VS\Razor" error=missing`

func TestExtractValue(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"time", "2026-10-14T09:15:42.123+02:00"},
		{"level", "WARN"},
		{"msg", "failed to list folder"},
		{"folder", `C:\VS\Razor`},
		{"error", "missing"},
		{"absent", ""},
	}
	for _, tt := range tests {
		if got := extractValue(sampleLine, tt.key); got != tt.want {
			t.Errorf("extractValue(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestExtractRemaining(t *testing.T) {
	got := extractRemaining(sampleLine, "time", "level", "msg")
	if got != `folder="C:\VS\Razor" error=missing` {
		t.Errorf("extractRemaining() = %q", got)
	}
}

func TestColorize(t *testing.T) {
	got := newLineStyles(theme.Current()).colorize(sampleLine)
	for _, want := range []string{"09:15:42", "WRN", "failed to list folder", "error=missing"} {
		if !strings.Contains(got, want) {
			t.Errorf("colorize() = %q, missing %q", got, want)
		}
	}

	if got := newLineStyles(theme.Current()).colorize("plain text"); !strings.Contains(got, "plain text") {
		t.Errorf("unstructured line lost: %q", got)
	}
}

func TestLastMatching(t *testing.T) {
	lines := []string{"a vswhere", "b", "c vswhere", "d vswhere"}
	got := lastMatching(lines, "vswhere", 2)
	if strings.Join(got, "|") != "c vswhere|d vswhere" {
		t.Errorf("lastMatching() = %v", got)
	}
}

func TestReadTailLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "razordiag.log")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got := readTailLines(f, 200); strings.Join(got, ",") != "one,two,three" {
		t.Errorf("readTailLines() = %v", got)
	}
}
