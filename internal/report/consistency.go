package report

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/sleuth-io/razordiag/internal/probe"
)

// Finding is a problem spotted in the inventory.
type Finding struct {
	Section  probe.SectionKind `json:"section" yaml:"section" toml:"section"`
	Folder   string            `json:"folder" yaml:"folder" toml:"folder"`
	Message  string            `json:"message" yaml:"message" toml:"message"`
	Versions []VersionGroup    `json:"versions" yaml:"versions" toml:"versions"`
}

// VersionGroup lists the assemblies that share one product version.
type VersionGroup struct {
	Version    string   `json:"version" yaml:"version" toml:"version"`
	Assemblies []string `json:"assemblies" yaml:"assemblies" toml:"assemblies"`
}

// checkedSections are the folders whose Razor assemblies must ship as one build.
var checkedSections = []probe.SectionKind{probe.SectionRazorExtension}

// CheckConsistency reports Razor assemblies in the language services folder
// that disagree on product version. Build metadata after "+" is ignored.
func CheckConsistency(sections []Section) []Finding {
	var findings []Finding
	for _, s := range sections {
		if s.Failed() || !slices.Contains(checkedSections, s.Kind) {
			continue
		}

		groups := map[string]*versionKey{}
		var unparsed []string
		for _, a := range s.Assemblies {
			if !IsRazorAssembly(a.Name) {
				continue
			}
			core := versionCore(a.ProductVersion)
			if core == "" {
				continue
			}
			g, ok := groups[core]
			if !ok {
				g = parseVersionKey(core)
				groups[core] = g
			}
			if g.semver == nil {
				unparsed = append(unparsed, a.Name)
			}
			g.assemblies = append(g.assemblies, a.Name)
		}

		if len(groups) > 1 {
			keys := make([]*versionKey, 0, len(groups))
			for _, g := range groups {
				keys = append(keys, g)
			}
			slices.SortFunc(keys, compareKeys)

			f := Finding{
				Section: s.Kind,
				Folder:  s.Folder,
				Message: fmt.Sprintf("Razor assemblies report %d different product versions", len(keys)),
			}
			for _, k := range keys {
				f.Versions = append(f.Versions, VersionGroup{Version: k.raw, Assemblies: k.assemblies})
			}
			findings = append(findings, f)
		}

		if len(unparsed) > 0 {
			f := Finding{
				Section: s.Kind,
				Folder:  s.Folder,
				Message: "Razor assemblies report product versions that are not valid semantic versions",
			}
			for _, g := range groups {
				if g.semver == nil {
					f.Versions = append(f.Versions, VersionGroup{Version: g.raw, Assemblies: g.assemblies})
				}
			}
			slices.SortFunc(f.Versions, func(a, b VersionGroup) int { return strings.Compare(a.Version, b.Version) })
			findings = append(findings, f)
		}
	}
	return findings
}

// IsRazorAssembly reports whether a file name belongs to the Razor tooling.
func IsRazorAssembly(name string) bool {
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lower, "microsoft.aspnetcore.razor"),
		strings.HasPrefix(lower, "microsoft.codeanalysis.razor"):
		return true
	case strings.HasPrefix(lower, "microsoft.visualstudio.") && strings.Contains(lower, "razor"):
		return true
	}
	return false
}

func versionCore(v string) string {
	v = strings.TrimSpace(v)
	if i := strings.IndexByte(v, '+'); i >= 0 {
		v = v[:i]
	}
	return v
}

type versionKey struct {
	raw        string
	semver     *semver.Version
	revision   int
	assemblies []string
}

// parseVersionKey reads "a.b.c[.d][-pre]". Windows file versions carry a
// fourth revision segment, which semver cannot hold, so it is kept aside.
func parseVersionKey(core string) *versionKey {
	k := &versionKey{raw: core}

	numeric, pre, hasPre := strings.Cut(core, "-")
	parts := strings.Split(numeric, ".")
	if len(parts) > 4 {
		return k
	}
	if len(parts) == 4 {
		rev, err := strconv.Atoi(parts[3])
		if err != nil {
			return k
		}
		k.revision = rev
		parts = parts[:3]
	}

	s := strings.Join(parts, ".")
	if hasPre {
		s += "-" + pre
	}
	if v, err := semver.StrictNewVersion(normalizeParts(s, len(parts))); err == nil {
		k.semver = v
	}
	return k
}

// normalizeParts pads "17" or "17.8" to three segments for strict parsing.
func normalizeParts(s string, n int) string {
	if n >= 3 {
		return s
	}
	numeric, pre, hasPre := strings.Cut(s, "-")
	numeric += strings.Repeat(".0", 3-n)
	if hasPre {
		return numeric + "-" + pre
	}
	return numeric
}

// compareKeys orders newest first; unparseable versions sort last.
func compareKeys(a, b *versionKey) int {
	switch {
	case a.semver != nil && b.semver == nil:
		return -1
	case a.semver == nil && b.semver != nil:
		return 1
	case a.semver == nil && b.semver == nil:
		return strings.Compare(a.raw, b.raw)
	}
	if c := b.semver.Compare(a.semver); c != 0 {
		return c
	}
	return b.revision - a.revision
}
