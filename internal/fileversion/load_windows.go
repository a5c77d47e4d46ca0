//go:build windows

package fileversion

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// productVersion asks the version API, which also covers MUI resources
// that live outside the image itself. It falls back to reading the image.
func productVersion(path string) (string, error) {
	var zero windows.Handle
	size, err := windows.GetFileVersionInfoSize(path, &zero)
	if err != nil || size == 0 {
		return readResourceVersion(path)
	}

	buf := make([]byte, size)
	block := unsafe.Pointer(&buf[0])
	if err := windows.GetFileVersionInfo(path, 0, size, block); err != nil {
		return readResourceVersion(path)
	}

	for _, key := range tableKeys(translations(block)) {
		var ptr unsafe.Pointer
		var n uint32
		sub := `\StringFileInfo\` + key + `\` + ProductVersionKey
		if err := windows.VerQueryValue(block, sub, unsafe.Pointer(&ptr), &n); err != nil || n == 0 {
			continue
		}
		return windows.UTF16PtrToString((*uint16)(ptr)), nil
	}
	return "", errNoVersion
}

func translations(block unsafe.Pointer) []string {
	var ptr unsafe.Pointer
	var n uint32
	if err := windows.VerQueryValue(block, `\VarFileInfo\Translation`, unsafe.Pointer(&ptr), &n); err != nil {
		return nil
	}
	pairs := unsafe.Slice((*uint16)(ptr), n/2)
	var keys []string
	for i := 0; i+1 < len(pairs); i += 2 {
		keys = append(keys, translationKey(pairs[i], pairs[i+1]))
	}
	return keys
}
