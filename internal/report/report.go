// Package report turns a probe inventory into the diagnostics report and
// renders it as text, JSON, YAML or TOML.
package report

import (
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/sleuth-io/razordiag/internal/buildinfo"
	"github.com/sleuth-io/razordiag/internal/probe"
)

// Report is the full diagnostics output.
type Report struct {
	ID          string        `json:"id" yaml:"id" toml:"id"`
	GeneratedAt time.Time     `json:"generatedAt" yaml:"generatedAt" toml:"generatedAt"`
	Tool        ToolInfo      `json:"tool" yaml:"tool" toml:"tool"`
	Host        HostInfo      `json:"host" yaml:"host" toml:"host"`
	Dependency  Dependency    `json:"dependency" yaml:"dependency" toml:"dependency"`
	Folders     probe.Folders `json:"folders" yaml:"folders" toml:"folders"`
	Sections    []Section     `json:"sections" yaml:"sections" toml:"sections"`
	Findings    []Finding     `json:"findings,omitempty" yaml:"findings,omitempty" toml:"findings,omitempty"`
}

// ToolInfo identifies the build that produced the report.
type ToolInfo struct {
	Version string `json:"version" yaml:"version" toml:"version"`
	Commit  string `json:"commit" yaml:"commit" toml:"commit"`
	OS      string `json:"os" yaml:"os" toml:"os"`
	Arch    string `json:"arch" yaml:"arch" toml:"arch"`
}

// HostInfo describes the Visual Studio executable.
type HostInfo struct {
	Path     string             `json:"path" yaml:"path" toml:"path"`
	Assembly probe.AssemblyInfo `json:"assembly" yaml:"assembly" toml:"assembly"`
}

// Dependency is the result of the component group check.
type Dependency struct {
	ComponentID string `json:"componentId" yaml:"componentId" toml:"componentId"`
	Installed   bool   `json:"installed" yaml:"installed" toml:"installed"`
}

// Section is the inventory of one tooling folder.
type Section struct {
	Kind       probe.SectionKind    `json:"kind" yaml:"kind" toml:"kind"`
	Title      string               `json:"title" yaml:"title" toml:"title"`
	Folder     string               `json:"folder" yaml:"folder" toml:"folder"`
	Assemblies []probe.AssemblyInfo `json:"assemblies" yaml:"assemblies" toml:"assemblies"`
	Error      string               `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// Failed reports whether the folder could not be listed.
func (s Section) Failed() bool {
	return s.Error != ""
}

// Titles used for each section, matching the wording of the Visual Studio extension.
var sectionTitles = map[probe.SectionKind]string{
	probe.SectionWebEditor:        "Installed Web Editor Assemblies",
	probe.SectionWebEditorRazorV4: "Installed Web Editor .Net Core Razor Assemblies",
	probe.SectionRazorExtension:   "Installed Razor Extension Assemblies",
}

// Title returns the heading for a section kind.
func Title(kind probe.SectionKind) string {
	if t, ok := sectionTitles[kind]; ok {
		return t
	}
	return string(kind)
}

// Options control report construction.
type Options struct {
	// SkipChecks disables the version consistency check.
	SkipChecks bool
	// Now overrides the timestamp, for tests.
	Now func() time.Time
}

// New builds a report from a probe inventory.
func New(inv *probe.Inventory, opts Options) *Report {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	r := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: now().UTC().Truncate(time.Second),
		Tool: ToolInfo{
			Version: buildinfo.Version,
			Commit:  buildinfo.Commit,
			OS:      runtime.GOOS,
			Arch:    runtime.GOARCH,
		},
		Host: HostInfo{
			Path:     inv.HostPath,
			Assembly: inv.Host,
		},
		Dependency: Dependency{
			ComponentID: inv.ComponentID,
			Installed:   inv.DependencyInstalled,
		},
		Folders: inv.Folders,
	}

	for _, s := range inv.Sections {
		section := Section{
			Kind:       s.Kind,
			Title:      Title(s.Kind),
			Folder:     s.Folder,
			Assemblies: s.Assemblies,
		}
		if section.Assemblies == nil {
			section.Assemblies = []probe.AssemblyInfo{}
		}
		if s.Err != nil {
			section.Error = s.Err.Error()
		}
		r.Sections = append(r.Sections, section)
	}

	if !opts.SkipChecks {
		r.Findings = CheckConsistency(r.Sections)
	}
	return r
}

// FailedSections returns the number of sections whose folder could not be listed.
func (r *Report) FailedSections() int {
	n := 0
	for _, s := range r.Sections {
		if s.Failed() {
			n++
		}
	}
	return n
}
