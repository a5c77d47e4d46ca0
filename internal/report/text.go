package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/sleuth-io/razordiag/internal/probe"
)

const indent = "    "

// Text renders the report in the layout of the extension's output pane.
func Text(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Visual Studio Binary in %s:\n", r.Host.Path)
	fmt.Fprintf(&b, "%s%s\n", indent, r.Host.Assembly)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Is Razor Dependency Installed:\n")
	fmt.Fprintf(&b, "%s%s\n", indent, titleBool(r.Dependency.Installed))

	for _, s := range r.Sections {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s in %s:\n", s.Title, s.Folder)
		switch {
		case s.Failed():
			fmt.Fprintf(&b, "%s<unavailable: %s>\n", indent, s.Error)
		case len(s.Assemblies) == 0:
			fmt.Fprintf(&b, "%s(none)\n", indent)
		default:
			b.WriteString(probe.FormatAssemblies(s.Assemblies, indent))
			b.WriteString("\n")
		}
	}

	if len(r.Findings) > 0 {
		b.WriteString("\nVersion Consistency:\n")
		for _, f := range r.Findings {
			fmt.Fprintf(&b, "%s%s in %s\n", indent, f.Message, f.Folder)
			for _, g := range f.Versions {
				fmt.Fprintf(&b, "%s%s%s: %s\n", indent, indent, g.Version, strings.Join(g.Assemblies, ", "))
			}
		}
	}

	return b.String()
}

// titleBool matches the True/False casing of the extension's output.
func titleBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

func writeText(w io.Writer, r *Report) error {
	_, err := io.WriteString(w, Text(r))
	return err
}
