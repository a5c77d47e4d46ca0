package fileversion

import (
	"errors"
	"fmt"

	"github.com/saferwall/pe"
)

var errNoVersion = errors.New("no ProductVersion in version resource")

// readResourceVersion parses the image at path and returns ProductVersion
// from its RT_VERSION resource.
func readResourceVersion(path string) (version string, err error) {
	f, err := pe.New(path, &pe.Options{})
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Malformed images must not take the report down.
	defer func() {
		if r := recover(); r != nil {
			version, err = "", fmt.Errorf("parse %s: %v", path, r)
		}
	}()

	if err := f.Parse(); err != nil {
		return "", err
	}
	strs, err := f.ParseVersionResources()
	if err != nil {
		return "", err
	}
	return productVersionFrom(strs)
}

func productVersionFrom(strs map[string]string) (string, error) {
	if v, ok := strs[ProductVersionKey]; ok {
		return v, nil
	}
	return "", errNoVersion
}
