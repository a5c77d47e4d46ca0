package probe

import "path/filepath"

// Folder suffixes relative to the host folder, in slash form.
const (
	WebEditorSuffix      = "Extensions/Microsoft/Web Tools/Editors"
	RazorV4Suffix        = "Razor/v4.0"
	RazorExtensionSuffix = "CommonExtensions/Microsoft/RazorLanguageServices"
)

// SectionKind identifies one inventoried folder.
type SectionKind string

const (
	SectionWebEditor        SectionKind = "web-editor"
	SectionWebEditorRazorV4 SectionKind = "web-editor-razor-v4"
	SectionRazorExtension   SectionKind = "razor-extension"
)

// SectionKinds returns the inventoried folders in report order.
func SectionKinds() []SectionKind {
	return []SectionKind{SectionWebEditor, SectionWebEditorRazorV4, SectionRazorExtension}
}

// Folders holds the locations derived from a host executable path.
// None of them is checked for existence.
type Folders struct {
	Host             string `json:"host" yaml:"host" toml:"host"`
	WebEditor        string `json:"webEditor" yaml:"webEditor" toml:"webEditor"`
	WebEditorRazorV4 string `json:"webEditorRazorV4" yaml:"webEditorRazorV4" toml:"webEditorRazorV4"`
	RazorExtension   string `json:"razorExtension" yaml:"razorExtension" toml:"razorExtension"`
}

// DeriveFolder joins a slash-separated suffix onto base. It never touches the filesystem.
func DeriveFolder(base, suffix string) string {
	return filepath.Join(base, filepath.FromSlash(suffix))
}

// Derive computes every folder from the host executable path.
func Derive(hostPath string) Folders {
	host := filepath.Dir(hostPath)
	webEditor := DeriveFolder(host, WebEditorSuffix)
	return Folders{
		Host:             host,
		WebEditor:        webEditor,
		WebEditorRazorV4: DeriveFolder(webEditor, RazorV4Suffix),
		RazorExtension:   DeriveFolder(host, RazorExtensionSuffix),
	}
}

// Path returns the folder inventoried for kind, or "" for an unknown kind.
func (f Folders) Path(kind SectionKind) string {
	switch kind {
	case SectionWebEditor:
		return f.WebEditor
	case SectionWebEditorRazorV4:
		return f.WebEditorRazorV4
	case SectionRazorExtension:
		return f.RazorExtension
	default:
		return ""
	}
}
