//go:build !windows

package fileversion

func productVersion(path string) (string, error) {
	return readResourceVersion(path)
}
