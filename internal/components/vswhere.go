package components

import (
	"context"
	"fmt"

	"github.com/sleuth-io/razordiag/internal/host"
	"github.com/sleuth-io/razordiag/internal/utils"
	"github.com/sleuth-io/razordiag/internal/vswhere"
)

// instanceLister is the part of vswhere.Client the registry needs.
type instanceLister interface {
	Instances(ctx context.Context, filters ...string) ([]vswhere.Instance, error)
}

// VSWhereRegistry asks the Visual Studio installer whether the instance
// owning the inspected devenv.exe carries a component.
type VSWhereRegistry struct {
	client instanceLister
	host   host.Introspector
}

// NewVSWhereRegistry creates a registry backed by vswhere. hostPath
// resolves the executable being inspected, normally the same resolver the
// probe uses.
func NewVSWhereRegistry(client *vswhere.Client, hostPath host.Introspector) *VSWhereRegistry {
	return &VSWhereRegistry{client: client, host: hostPath}
}

// IsComponentInstalled lists every instance that has componentID and
// reports whether the host's instance is among them.
func (r *VSWhereRegistry) IsComponentInstalled(ctx context.Context, componentID string) (bool, error) {
	if r.host == nil {
		return false, fmt.Errorf("no host resolver for component %s", componentID)
	}
	productPath, err := r.host.ExecutablePath(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to resolve host for component lookup: %w", err)
	}

	instances, err := r.client.Instances(ctx, "-all", "-prerelease", "-requires", componentID)
	if err != nil {
		return false, err
	}
	for _, inst := range instances {
		if utils.SamePath(inst.ProductPath, productPath) {
			return true, nil
		}
	}
	return false, nil
}
