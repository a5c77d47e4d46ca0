// Package probe inspects a Visual Studio installation for Razor tooling.
//
// A Probe resolves the running host executable, derives the web tooling
// folders relative to it, inventories the assemblies in each folder and
// asks a component registry whether the web workload is installed. All
// host access goes through the collaborator interfaces below so the probe
// can run outside the IDE and under test.
package probe

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
)

// WebComponentGroupID is the setup component group the Razor tooling depends on.
const WebComponentGroupID = "Microsoft.VisualStudio.ComponentGroup.Web"

// DefaultPattern selects the files inventoried in each folder.
const DefaultPattern = "*.dll"

// ProcessIntrospector reports the main executable of the host process.
type ProcessIntrospector interface {
	ExecutablePath(ctx context.Context) (string, error)
}

// VersionReader reads the product version embedded in a binary.
// It returns "" when the file carries no version metadata.
type VersionReader interface {
	ProductVersion(path string) string
}

// ComponentRegistry reports whether a setup component is installed.
type ComponentRegistry interface {
	IsComponentInstalled(ctx context.Context, componentID string) (bool, error)
}

// Options tune a Probe. Zero values select the defaults.
type Options struct {
	ComponentID string
	Pattern     string
	Logger      *slog.Logger
}

// Probe gathers installation diagnostics. It is safe for concurrent use.
type Probe struct {
	host        ProcessIntrospector
	versions    VersionReader
	registry    ComponentRegistry
	componentID string
	pattern     string
	presence    presenceCache
	log         *slog.Logger
}

// New creates a Probe over the given collaborators.
func New(host ProcessIntrospector, versions VersionReader, registry ComponentRegistry, opts Options) *Probe {
	if opts.ComponentID == "" {
		opts.ComponentID = WebComponentGroupID
	}
	if opts.Pattern == "" {
		opts.Pattern = DefaultPattern
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Probe{
		host:        host,
		versions:    versions,
		registry:    registry,
		componentID: opts.ComponentID,
		pattern:     opts.Pattern,
		log:         opts.Logger,
	}
}

// ComponentID returns the component group checked by Collect.
func (p *Probe) ComponentID() string {
	return p.componentID
}

// Pattern returns the file pattern used by Collect.
func (p *Probe) Pattern() string {
	return p.pattern
}

// GetHostExecutablePath returns the absolute path of the host executable.
// The path is read on every call.
func (p *Probe) GetHostExecutablePath(ctx context.Context) (string, error) {
	path, err := p.host.ExecutablePath(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrProcessIntrospection, err)
	}
	if path == "" {
		return "", fmt.Errorf("%w: empty executable path", ErrProcessIntrospection)
	}
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrProcessIntrospection, err)
		}
		path = abs
	}
	return path, nil
}

// GetAssemblyInfo returns the name and product version of a single file.
func (p *Probe) GetAssemblyInfo(path string) AssemblyInfo {
	return AssemblyInfo{
		Name:           filepath.Base(path),
		ProductVersion: p.versions.ProductVersion(path),
	}
}

// CheckDependencyInstalled reports whether componentID is installed.
// Registry faults are logged and read as false. The first answer for a
// component is kept for the lifetime of the Probe.
func (p *Probe) CheckDependencyInstalled(ctx context.Context, componentID string) bool {
	return p.presence.computeIfAbsent(componentID, func() bool {
		return p.queryRegistry(ctx, componentID)
	})
}

func (p *Probe) queryRegistry(ctx context.Context, componentID string) (installed bool) {
	if p.registry == nil {
		p.log.Warn("no component registry configured", "component", componentID)
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			p.log.Error("component registry panicked",
				"component", componentID, "error", fmt.Errorf("%w: %v", ErrComponentRegistry, r))
			installed = false
		}
	}()

	ok, err := p.registry.IsComponentInstalled(ctx, componentID)
	if err != nil {
		p.log.Error("failed to query component registry",
			"component", componentID, "error", fmt.Errorf("%w: %w", ErrComponentRegistry, err))
		return false
	}
	p.log.Debug("component registry answered", "component", componentID, "installed", ok)
	return ok
}

// Collect runs the whole probe. Only a failure to resolve the host
// executable is returned as an error; folder failures are recorded in
// the affected section and collection continues.
func (p *Probe) Collect(ctx context.Context) (*Inventory, error) {
	hostPath, err := p.GetHostExecutablePath(ctx)
	if err != nil {
		return nil, err
	}
	p.log.Info("collecting diagnostics", "host", hostPath, "pattern", p.pattern)

	folders := Derive(hostPath)
	inv := &Inventory{
		HostPath:            hostPath,
		Host:                p.GetAssemblyInfo(hostPath),
		ComponentID:         p.componentID,
		DependencyInstalled: p.CheckDependencyInstalled(ctx, p.componentID),
		Folders:             folders,
	}

	for _, kind := range SectionKinds() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		section := Section{Kind: kind, Folder: folders.Path(kind)}
		assemblies, err := p.ListAssemblyVersions(section.Folder, p.pattern)
		if err != nil {
			p.log.Warn("failed to list folder", "folder", section.Folder, "error", err)
			section.Err = err
		}
		section.Assemblies = assemblies
		inv.Sections = append(inv.Sections, section)
	}

	return inv, nil
}
