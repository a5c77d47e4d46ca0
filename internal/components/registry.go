// Package components answers whether Visual Studio setup components are installed.
package components

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrUnknownComponent means a registry has no answer for a component.
var ErrUnknownComponent = errors.New("component not known to registry")

// Registry is satisfied by every registry in this package.
type Registry interface {
	IsComponentInstalled(ctx context.Context, componentID string) (bool, error)
}

// StaticRegistry answers from a configured list of installed component IDs.
// Components not in the list are unknown rather than absent.
type StaticRegistry struct {
	installed map[string]struct{}
}

// NewStaticRegistry creates a registry that reports ids as installed.
func NewStaticRegistry(ids []string) *StaticRegistry {
	r := &StaticRegistry{installed: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			r.installed[strings.ToLower(id)] = struct{}{}
		}
	}
	return r
}

// IsComponentInstalled reports true for configured IDs, case-insensitively.
func (r *StaticRegistry) IsComponentInstalled(_ context.Context, componentID string) (bool, error) {
	if _, ok := r.installed[strings.ToLower(componentID)]; ok {
		return true, nil
	}
	return false, fmt.Errorf("%w: %s", ErrUnknownComponent, componentID)
}

// Len returns the number of configured components.
func (r *StaticRegistry) Len() int {
	return len(r.installed)
}

// Chain asks each registry in order; the first one that answers wins.
type Chain struct {
	Registries []Registry
	Logger     *slog.Logger
}

// IsComponentInstalled returns the first answer, or all errors joined.
func (c Chain) IsComponentInstalled(ctx context.Context, componentID string) (bool, error) {
	var errs []error
	for _, r := range c.Registries {
		ok, err := r.IsComponentInstalled(ctx, componentID)
		if err == nil {
			return ok, nil
		}
		if c.Logger != nil {
			c.Logger.Debug("registry could not answer", "registry", fmt.Sprintf("%T", r), "component", componentID, "error", err)
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return false, errors.New("no component registries configured")
	}
	return false, errors.Join(errs...)
}
