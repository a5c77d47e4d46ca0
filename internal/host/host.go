// Package host resolves the Visual Studio executable the probe inspects.
package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sleuth-io/razordiag/internal/utils"
	"github.com/sleuth-io/razordiag/internal/vswhere"
)

// Introspector is satisfied by every resolver in this package.
type Introspector interface {
	ExecutablePath(ctx context.Context) (string, error)
}

// Fixed resolves to a path supplied by the user.
type Fixed string

// ExecutablePath returns the configured path with tilde expanded.
func (f Fixed) ExecutablePath(context.Context) (string, error) {
	if f == "" {
		return "", errors.New("no host executable path configured")
	}
	return utils.NormalizePath(string(f))
}

// Self resolves to the executable of the running process.
type Self struct{}

// ExecutablePath returns os.Executable with symlinks resolved.
func (Self) ExecutablePath(context.Context) (string, error) {
	path, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to read running executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return path, nil
}

// Discovered resolves to the productPath of the newest Visual Studio instance.
type Discovered struct {
	Client *vswhere.Client
}

// ExecutablePath asks vswhere for the latest installation.
func (d Discovered) ExecutablePath(ctx context.Context) (string, error) {
	inst, err := d.Client.Latest(ctx)
	if err != nil {
		return "", err
	}
	if inst.ProductPath == "" {
		return "", fmt.Errorf("instance %s reports no product path", inst.InstanceID)
	}
	return inst.ProductPath, nil
}

// Chain tries each resolver in order and returns the first path found.
type Chain struct {
	Resolvers []Introspector
	Logger    *slog.Logger
}

// ExecutablePath returns the first successful resolution, or all errors joined.
func (c Chain) ExecutablePath(ctx context.Context) (string, error) {
	var errs []error
	for _, r := range c.Resolvers {
		path, err := r.ExecutablePath(ctx)
		if err == nil && path != "" {
			if c.Logger != nil {
				c.Logger.Debug("resolved host executable", "resolver", fmt.Sprintf("%T", r), "path", path)
			}
			return path, nil
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return "", errors.New("no host resolvers configured")
	}
	return "", errors.Join(errs...)
}

// Resolve builds the resolver used by the CLI: an explicit override wins,
// otherwise vswhere discovery with the running process as a last resort.
func Resolve(override string, client *vswhere.Client, log *slog.Logger) Introspector {
	if override != "" {
		return Fixed(override)
	}
	return Chain{
		Resolvers: []Introspector{
			Discovered{Client: client},
			Self{},
		},
		Logger: log,
	}
}
