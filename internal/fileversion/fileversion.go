// Package fileversion reads product versions from Windows binaries.
package fileversion

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// ProductVersionKey is the string the Windows shell shows as "Product version".
const ProductVersionKey = "ProductVersion"

// Reader reads ProductVersion strings. It never fails: a file that is
// missing, is not a PE image or has no version resource yields "".
type Reader struct {
	log *slog.Logger
}

// NewReader creates a Reader. A nil logger discards diagnostics.
func NewReader(log *slog.Logger) *Reader {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Reader{log: log}
}

// ProductVersion returns the ProductVersion string of the file at path.
func (r *Reader) ProductVersion(path string) string {
	v, err := productVersion(path)
	if err != nil {
		r.log.Debug("no version metadata", "path", path, "error", err)
		return ""
	}
	return v
}

// fallbackTables are tried after the declared translations, in order.
var fallbackTables = []string{"040904b0", "040904e4", "000004b0"}

// translationKey formats a VarFileInfo\Translation pair as a StringFileInfo table name.
func translationKey(lang, codepage uint16) string {
	return fmt.Sprintf("%04x%04x", lang, codepage)
}

// tableKeys lists the string tables to search: the declared translations
// first, then the usual English and neutral tables.
func tableKeys(translations []string) []string {
	keys := make([]string, 0, len(translations)+len(fallbackTables))
	for _, k := range append(slices.Clone(translations), fallbackTables...) {
		k = strings.ToLower(k)
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	return keys
}
