package mcpserver

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sleuth-io/razordiag/internal/buildinfo"
	"github.com/sleuth-io/razordiag/internal/logger"
	"github.com/sleuth-io/razordiag/internal/probe"
	"github.com/sleuth-io/razordiag/internal/report"
	"github.com/sleuth-io/razordiag/internal/utils"
)

// ProbeFactory builds a probe for a host override ("" discovers the host).
type ProbeFactory func(hostOverride string) *probe.Probe

// Server provides an MCP server that exposes the diagnostics probe.
// Probes are built once per host override and kept for the life of the
// server, so the dependency check runs at most once per host.
type Server struct {
	newProbe ProbeFactory

	mu     sync.Mutex
	probes map[string]*probe.Probe
}

// NewServer creates a new MCP server
func NewServer(newProbe ProbeFactory) *Server {
	return &Server{newProbe: newProbe, probes: make(map[string]*probe.Probe)}
}

// probeFor returns the probe for a host override, building it on first use.
func (s *Server) probeFor(hostOverride string) *probe.Probe {
	key := hostOverride
	if key != "" {
		key = filepath.Clean(key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.probes[key]; ok {
		return p
	}
	p := s.newProbe(hostOverride)
	s.probes[key] = p
	return p
}

// CollectInput is the input type for the collect_razor_diagnostics tool
type CollectInput struct {
	Host   string `json:"host,omitempty" jsonschema:"path to devenv.exe; empty discovers the latest Visual Studio"`
	Format string `json:"format,omitempty" jsonschema:"text, json, yaml or toml; default text"`
}

// FoldersInput is the input type for the list_razor_folders tool
type FoldersInput struct {
	Host string `json:"host,omitempty" jsonschema:"path to devenv.exe; empty discovers the latest Visual Studio"`
}

func (s *Server) newMCPServer() *mcp.Server {
	impl := &mcp.Implementation{
		Name:    buildinfo.GetAppName(),
		Version: buildinfo.Version,
	}
	mcpServer := mcp.NewServer(impl, nil)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "collect_razor_diagnostics",
		Description: "Report the Visual Studio executable version, whether the web workload is installed, and the Razor and web editor assemblies with their product versions.",
	}, s.handleCollect)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "list_razor_folders",
		Description: "List the Razor tooling folders derived from the Visual Studio executable and whether each exists.",
	}, s.handleFolders)

	return mcpServer
}

// Run starts the MCP server over stdio
func (s *Server) Run(ctx context.Context) error {
	logger.Get().Info("mcp server starting")
	return s.newMCPServer().Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) handleCollect(ctx context.Context, req *mcp.CallToolRequest, input CollectInput) (*mcp.CallToolResult, any, error) {
	format, err := report.ParseFormat(input.Format)
	if err != nil {
		return nil, nil, err
	}

	inv, err := s.probeFor(input.Host).Collect(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to collect diagnostics: %w", err)
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, report.New(inv, report.Options{}), format); err != nil {
		return nil, nil, err
	}
	return textResult(buf.String()), nil, nil
}

func (s *Server) handleFolders(ctx context.Context, req *mcp.CallToolRequest, input FoldersInput) (*mcp.CallToolResult, any, error) {
	hostPath, err := s.probeFor(input.Host).GetHostExecutablePath(ctx)
	if err != nil {
		return nil, nil, err
	}

	folders := probe.Derive(hostPath)
	var b strings.Builder
	fmt.Fprintf(&b, "Host: %s\n", hostPath)
	for _, kind := range probe.SectionKinds() {
		path := folders.Path(kind)
		state := "missing"
		if utils.IsDirectory(path) {
			state = "exists"
		}
		fmt.Fprintf(&b, "%s: %s (%s)\n", report.Title(kind), path, state)
	}
	return textResult(b.String()), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
