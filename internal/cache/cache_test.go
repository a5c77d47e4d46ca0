package cache

import (
	"path/filepath"
	"testing"
)

func TestGetCacheDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RAZORDIAG_CACHE_DIR", dir)

	got, err := GetCacheDir()
	if err != nil {
		t.Fatalf("GetCacheDir() error = %v", err)
	}
	if got != dir {
		t.Errorf("GetCacheDir() = %q, want %q", got, dir)
	}

	logPath, err := GetLogPath()
	if err != nil {
		t.Fatalf("GetLogPath() error = %v", err)
	}
	if logPath != filepath.Join(dir, LogFileName) {
		t.Errorf("GetLogPath() = %q", logPath)
	}
}

func TestGetCacheDirDefaultEndsWithToolName(t *testing.T) {
	t.Setenv("RAZORDIAG_CACHE_DIR", "")
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	got, err := GetCacheDir()
	if err != nil {
		t.Fatalf("GetCacheDir() error = %v", err)
	}
	if filepath.Base(got) != "razordiag" {
		t.Errorf("GetCacheDir() = %q, want a razordiag directory", got)
	}
}
