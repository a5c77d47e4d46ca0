package probe

import "errors"

var (
	// ErrProcessIntrospection means the host executable path could not be resolved.
	ErrProcessIntrospection = errors.New("cannot resolve host executable")

	// ErrFolderNotFound means a derived folder is missing or cannot be read.
	ErrFolderNotFound = errors.New("folder not found")

	// ErrComponentRegistry wraps faults raised by a component registry.
	ErrComponentRegistry = errors.New("component registry fault")
)
