package mcpserver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sleuth-io/razordiag/internal/probe"
)

type fixedHost struct {
	path string
	err  error
}

func (h fixedHost) ExecutablePath(context.Context) (string, error) {
	return h.path, h.err
}

type noVersions struct{}

func (noVersions) ProductVersion(string) string { return "1.0.0" }

type installed bool

func (i installed) IsComponentInstalled(context.Context, string) (bool, error) {
	return bool(i), nil
}

// countingRegistry records how often the installer is asked.
type countingRegistry struct {
	calls atomic.Int32
}

func (r *countingRegistry) IsComponentInstalled(context.Context, string) (bool, error) {
	r.calls.Add(1)
	return true, nil
}

// connect starts the server and a client over in-memory transports.
func connect(t *testing.T, factory ProbeFactory) *mcp.ClientSession {
	t.Helper()
	t.Setenv("RAZORDIAG_CACHE_DIR", t.TempDir())

	ctx := context.Background()
	t1, t2 := mcp.NewInMemoryTransports()

	if _, err := NewServer(factory).newMCPServer().Connect(ctx, t1, nil); err != nil {
		t.Fatalf("Failed to connect server: %v", err)
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v1.0.0"}, nil)
	session, err := client.Connect(ctx, t2, nil)
	if err != nil {
		t.Fatalf("Failed to connect client: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func fakeInstall(t *testing.T) string {
	t.Helper()
	hostPath := filepath.Join(t.TempDir(), "IDE", "devenv.exe")
	folders := probe.Derive(hostPath)
	if err := os.MkdirAll(folders.RazorExtension, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(folders.RazorExtension, "Microsoft.CodeAnalysis.Razor.dll"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	return hostPath
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("Expected content")
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("Expected TextContent, got %T", result.Content[0])
	}
	return text.Text
}

func TestServer_Collect(t *testing.T) {
	hostPath := fakeInstall(t)
	var gotOverride string
	session := connect(t, func(override string) *probe.Probe {
		gotOverride = override
		return probe.New(fixedHost{path: hostPath}, noVersions{}, installed(true), probe.Options{})
	})
	ctx := context.Background()

	t.Run("text report", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "collect_razor_diagnostics",
			Arguments: map[string]any{"host": hostPath},
		})
		if err != nil {
			t.Fatalf("CallTool failed: %v", err)
		}
		if result.IsError {
			t.Fatalf("Tool returned error: %v", result.Content)
		}
		text := textOf(t, result)
		for _, want := range []string{
			"Visual Studio Binary in " + hostPath + ":",
			"Is Razor Dependency Installed:\n    True",
			"Microsoft.CodeAnalysis.Razor.dll, 1.0.0",
		} {
			if !strings.Contains(text, want) {
				t.Errorf("report missing %q:\n%s", want, text)
			}
		}
		if gotOverride != hostPath {
			t.Errorf("factory got host %q, want %q", gotOverride, hostPath)
		}
	})

	t.Run("json report", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "collect_razor_diagnostics",
			Arguments: map[string]any{"format": "json"},
		})
		if err != nil {
			t.Fatalf("CallTool failed: %v", err)
		}
		if text := textOf(t, result); !strings.Contains(text, `"componentId": "`+probe.WebComponentGroupID+`"`) {
			t.Errorf("unexpected JSON report:\n%s", text)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "collect_razor_diagnostics",
			Arguments: map[string]any{"format": "xml"},
		})
		if err != nil {
			t.Fatalf("CallTool failed: %v", err)
		}
		if !result.IsError {
			t.Error("Expected IsError to be true for an unknown format")
		}
	})
}

func TestServer_CollectHostFailure(t *testing.T) {
	session := connect(t, func(string) *probe.Probe {
		return probe.New(fixedHost{err: errors.New("no instance")}, noVersions{}, installed(false), probe.Options{})
	})

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "collect_razor_diagnostics",
		Arguments: map[string]any{},
	})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	if !result.IsError {
		t.Error("Expected IsError to be true when the host cannot be resolved")
	}
}

func TestServer_Folders(t *testing.T) {
	hostPath := fakeInstall(t)
	session := connect(t, func(string) *probe.Probe {
		return probe.New(fixedHost{path: hostPath}, noVersions{}, installed(true), probe.Options{})
	})

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "list_razor_folders",
		Arguments: map[string]any{},
	})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	text := textOf(t, result)
	folders := probe.Derive(hostPath)
	if !strings.Contains(text, "Installed Razor Extension Assemblies: "+folders.RazorExtension+" (exists)") {
		t.Errorf("razor extension folder should exist:\n%s", text)
	}
	if !strings.Contains(text, "Installed Web Editor Assemblies: "+folders.WebEditor+" (missing)") {
		t.Errorf("web editor folder should be missing:\n%s", text)
	}
}

func TestServer_CollectChecksDependencyOncePerHost(t *testing.T) {
	hostPath := fakeInstall(t)
	otherHost := fakeInstall(t)
	registry := &countingRegistry{}
	var built atomic.Int32
	session := connect(t, func(override string) *probe.Probe {
		built.Add(1)
		path := hostPath
		if override != "" {
			path = override
		}
		return probe.New(fixedHost{path: path}, noVersions{}, registry, probe.Options{})
	})
	ctx := context.Background()

	collect := func(args map[string]any) {
		t.Helper()
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "collect_razor_diagnostics",
			Arguments: args,
		})
		if err != nil {
			t.Fatalf("CallTool failed: %v", err)
		}
		if result.IsError {
			t.Fatalf("Tool returned error: %v", result.Content)
		}
	}

	for range 3 {
		collect(map[string]any{})
	}
	if got := registry.calls.Load(); got != 1 {
		t.Errorf("registry called %d times across 3 collects, want 1", got)
	}

	collect(map[string]any{"host": otherHost})
	collect(map[string]any{"host": otherHost})
	if got := registry.calls.Load(); got != 2 {
		t.Errorf("registry called %d times after a second host, want 2", got)
	}
	if got := built.Load(); got != 2 {
		t.Errorf("built %d probes, want one per host", got)
	}
}
