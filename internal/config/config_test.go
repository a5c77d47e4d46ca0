package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sleuth-io/razordiag/internal/probe"
	"github.com/sleuth-io/razordiag/internal/utils"
)

// setupConfigDir points the config directory at a temp dir and clears overrides.
func setupConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("RAZORDIAG_CONFIG_DIR", dir)
	for _, env := range []string{EnvHost, EnvComponentID, EnvVSWhere, EnvLogLevel} {
		t.Setenv(env, "")
	}
	return dir
}

func TestLoadNoConfig(t *testing.T) {
	setupConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ComponentID != probe.WebComponentGroupID {
		t.Errorf("ComponentID = %q, want default", cfg.ComponentID)
	}
	if cfg.Pattern != probe.DefaultPattern {
		t.Errorf("Pattern = %q, want %q", cfg.Pattern, probe.DefaultPattern)
	}
	if cfg.Timeout() != DefaultTimeout {
		t.Errorf("Timeout() = %v, want %v", cfg.Timeout(), DefaultTimeout)
	}
	if Exists() {
		t.Error("Exists() should be false without a file")
	}
}

func TestLoadWithCommentsAndTrailingCommas(t *testing.T) {
	dir := setupConfigDir(t)

	data := `{
  // inspect a side-by-side install
  "hostPath": "D:/VS/Preview/Common7/IDE/devenv.exe",
  "pattern": "Microsoft.*.dll",
  "installedComponents": [
    "Microsoft.VisualStudio.ComponentGroup.Web",
  ],
  "format": "json",
  "timeoutSeconds": 5, /* trailing comma */
}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.HostPath != "D:/VS/Preview/Common7/IDE/devenv.exe" {
		t.Errorf("HostPath = %q", cfg.HostPath)
	}
	if cfg.Pattern != "Microsoft.*.dll" || cfg.Format != "json" {
		t.Errorf("Pattern/Format = %q/%q", cfg.Pattern, cfg.Format)
	}
	if len(cfg.InstalledComponents) != 1 {
		t.Errorf("InstalledComponents = %v", cfg.InstalledComponents)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s", cfg.Timeout())
	}
	if cfg.ComponentID != probe.WebComponentGroupID {
		t.Errorf("missing componentId should default, got %q", cfg.ComponentID)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := setupConfigDir(t)
	data := `{"hostPath": "/from/file/devenv.exe", "componentId": "File.Component"}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvHost, "/from/env/devenv.exe")
	t.Setenv(EnvComponentID, "Env.Component")
	t.Setenv(EnvVSWhere, `C:\tools\vswhere.exe`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.HostPath != "/from/env/devenv.exe" {
		t.Errorf("HostPath = %q, want env value", cfg.HostPath)
	}
	if cfg.ComponentID != "Env.Component" {
		t.Errorf("ComponentID = %q, want env value", cfg.ComponentID)
	}
	if cfg.VSWherePath != `C:\tools\vswhere.exe` {
		t.Errorf("VSWherePath = %q", cfg.VSWherePath)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	dir := setupConfigDir(t)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"pattern": `), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad format", func(c *Config) { c.Format = "xml" }, "invalid format"},
		{"bad pattern", func(c *Config) { c.Pattern = "[" }, "invalid pattern"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level"},
		{"negative timeout", func(c *Config) { c.TimeoutSeconds = -1 }, "timeoutSeconds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestInit(t *testing.T) {
	setupConfigDir(t)

	path, err := Init(false)
	if err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	want, _ := utils.GetConfigFile()
	if path != want {
		t.Errorf("Init() path = %q, want %q", path, want)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("written template does not load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("written template is invalid: %v", err)
	}
	if cfg.ComponentID != probe.WebComponentGroupID {
		t.Errorf("ComponentID = %q", cfg.ComponentID)
	}

	if _, err := Init(false); err == nil {
		t.Error("second Init() without force should fail")
	}
	if _, err := Init(true); err != nil {
		t.Errorf("Init(true) failed: %v", err)
	}
}
