package probe

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// AssemblyInfo is a file name with the product version read from its metadata.
type AssemblyInfo struct {
	Name           string `json:"name" yaml:"name" toml:"name"`
	ProductVersion string `json:"productVersion" yaml:"productVersion" toml:"productVersion"`
}

// String formats the assembly as "name, version".
func (a AssemblyInfo) String() string {
	return a.Name + ", " + a.ProductVersion
}

// Section is the inventory of one derived folder.
type Section struct {
	Kind       SectionKind
	Folder     string
	Assemblies []AssemblyInfo
	// Err is set when the folder could not be listed.
	Err error
}

// Inventory is the raw result of Collect.
type Inventory struct {
	HostPath            string
	Host                AssemblyInfo
	ComponentID         string
	DependencyInstalled bool
	Folders             Folders
	Sections            []Section
}

// Section returns the section of the given kind.
func (inv *Inventory) Section(kind SectionKind) (Section, bool) {
	for _, s := range inv.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

// ValidatePattern reports whether pattern is a well-formed file pattern.
func ValidatePattern(pattern string) error {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}
	return nil
}

// ListAssemblyVersions inventories the files in folder whose names match
// pattern. Literal letters in pattern match in either case, as on Windows;
// character classes such as [A-Z] keep their exact meaning. Matching does
// not recurse. Results are ordered by file name.
func (p *Probe) ListAssemblyVersions(folder, pattern string) ([]AssemblyInfo, error) {
	if err := ValidatePattern(pattern); err != nil {
		return nil, err
	}

	// ReadDir returns entries sorted by filename.
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFolderNotFound, folder, err)
	}

	folded := foldPattern(pattern)
	assemblies := []AssemblyInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(folded, entry.Name()); !ok {
			continue
		}
		assemblies = append(assemblies, p.GetAssemblyInfo(filepath.Join(folder, entry.Name())))
	}
	return assemblies, nil
}

// foldPattern rewrites each letter outside a character class as a
// two-case class, so "*.DLL" becomes "*.[dD][lL][lL]".
func foldPattern(pattern string) string {
	var b strings.Builder
	inClass, escaped := false, false
	for _, r := range pattern {
		switch {
		case escaped:
			escaped = false
			if !inClass && hasCase(r) {
				b.WriteString(caseClass(r))
				continue
			}
			b.WriteRune('\\')
			b.WriteRune(r)
		case r == '\\' && runtime.GOOS != "windows":
			escaped = true
		case inClass:
			b.WriteRune(r)
			if r == ']' {
				inClass = false
			}
		case r == '[':
			inClass = true
			b.WriteRune(r)
		case hasCase(r):
			b.WriteString(caseClass(r))
		default:
			b.WriteRune(r)
		}
	}
	if escaped {
		b.WriteRune('\\')
	}
	return b.String()
}

func hasCase(r rune) bool {
	return unicode.ToLower(r) != unicode.ToUpper(r)
}

func caseClass(r rune) string {
	return "[" + string(unicode.ToLower(r)) + string(unicode.ToUpper(r)) + "]"
}

// FormatAssemblies renders one "name, version" line per assembly, each
// prefixed with indent, joined by newlines.
func FormatAssemblies(assemblies []AssemblyInfo, indent string) string {
	lines := make([]string, len(assemblies))
	for i, a := range assemblies {
		lines[i] = indent + a.String()
	}
	return strings.Join(lines, "\n")
}
