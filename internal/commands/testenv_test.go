package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/sleuth-io/razordiag/internal/probe"
)

// TestEnv provides an isolated test environment with a fake Visual Studio layout.
type TestEnv struct {
	t         *testing.T
	TempDir   string // Root temp directory
	ConfigDir string // RAZORDIAG_CONFIG_DIR
	CacheDir  string // RAZORDIAG_CACHE_DIR
	HostPath  string // Fake devenv.exe
}

// NewTestEnv creates a new isolated test environment.
// Config and cache go to temp directories, environment overrides are
// cleared, and vswhere is pointed at a path that does not exist.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tempDir := t.TempDir()
	e := &TestEnv{
		t:         t,
		TempDir:   tempDir,
		ConfigDir: filepath.Join(tempDir, "config"),
		CacheDir:  filepath.Join(tempDir, "cache"),
		HostPath:  filepath.Join(tempDir, "VS", "Common7", "IDE", "devenv.exe"),
	}

	t.Setenv("RAZORDIAG_CONFIG_DIR", e.ConfigDir)
	t.Setenv("RAZORDIAG_CACHE_DIR", e.CacheDir)
	t.Setenv("RAZORDIAG_HOST", "")
	t.Setenv("RAZORDIAG_COMPONENT_ID", "")
	t.Setenv("RAZORDIAG_VSWHERE", filepath.Join(tempDir, "missing", "vswhere.exe"))
	t.Setenv("RAZORDIAG_LOG_LEVEL", "")
	t.Setenv("NO_COLOR", "1")

	e.WriteFile(e.HostPath, "not a real PE image")
	return e
}

// MkdirAll creates a directory and all parents.
func (e *TestEnv) MkdirAll(path string) string {
	e.t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		e.t.Fatalf("Failed to create directory %s: %v", path, err)
	}
	return path
}

// WriteFile writes content to a file, creating parent directories as needed.
func (e *TestEnv) WriteFile(path, content string) {
	e.t.Helper()
	e.MkdirAll(filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

// Folders returns the folders derived from the fake host.
func (e *TestEnv) Folders() probe.Folders {
	return probe.Derive(e.HostPath)
}

// AddAssemblies creates empty files in the folder of kind.
func (e *TestEnv) AddAssemblies(kind probe.SectionKind, names ...string) {
	e.t.Helper()
	dir := e.MkdirAll(e.Folders().Path(kind))
	for _, name := range names {
		e.WriteFile(filepath.Join(dir, name), "")
	}
}

// WriteConfig writes config.json.
func (e *TestEnv) WriteConfig(content string) {
	e.t.Helper()
	e.WriteFile(filepath.Join(e.ConfigDir, "config.json"), content)
}

// Run executes cmd with args and returns stdout, stderr and the error.
func (e *TestEnv) Run(cmd *cobra.Command, args ...string) (string, string, error) {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// AssertContains fails the test if s does not contain want.
func (e *TestEnv) AssertContains(s, want string) {
	e.t.Helper()
	if !strings.Contains(s, want) {
		e.t.Errorf("expected output to contain %q\ngot:\n%s", want, s)
	}
}
