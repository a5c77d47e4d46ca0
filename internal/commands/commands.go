package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sleuth-io/razordiag/internal/components"
	"github.com/sleuth-io/razordiag/internal/config"
	"github.com/sleuth-io/razordiag/internal/fileversion"
	"github.com/sleuth-io/razordiag/internal/host"
	"github.com/sleuth-io/razordiag/internal/logger"
	"github.com/sleuth-io/razordiag/internal/probe"
	"github.com/sleuth-io/razordiag/internal/vswhere"
)

// RunDefaultCommand runs collect when razordiag is invoked without a subcommand
func RunDefaultCommand(cmd *cobra.Command, args []string) error {
	return runCollect(cmd, args)
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.HostPath, _ = flags.GetString("host")
	}
	if flags.Changed("component") {
		cfg.ComponentID, _ = flags.GetString("component")
	}
	if flags.Changed("pattern") {
		cfg.Pattern, _ = flags.GetString("pattern")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("notify") {
		cfg.Notify, _ = flags.GetBool("notify")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.SetLevel(cfg.LogLevel)
	return cfg, nil
}

// newVSWhere creates the vswhere client shared by host discovery and the component registry.
func newVSWhere(cfg *config.Config) *vswhere.Client {
	return vswhere.New(cfg.VSWherePath).WithTimeout(cfg.Timeout())
}

// probeFactory is replaced in tests.
var probeFactory = newProbe

// newProbe wires the probe to the real collaborators.
func newProbe(cfg *config.Config, log *slog.Logger) *probe.Probe {
	client := newVSWhere(cfg)
	introspector := host.Resolve(cfg.HostPath, client, log)

	var registries []components.Registry
	if static := components.NewStaticRegistry(cfg.InstalledComponents); static.Len() > 0 {
		registries = append(registries, static)
	}
	// The registry resolves the host the same way so the answer belongs to
	// the devenv.exe being reported, not whichever instance vswhere prefers.
	registries = append(registries, components.NewVSWhereRegistry(client, introspector))

	return probe.New(
		introspector,
		fileversion.NewReader(log),
		components.Chain{Registries: registries, Logger: log},
		probe.Options{
			ComponentID: cfg.ComponentID,
			Pattern:     cfg.Pattern,
			Logger:      log,
		},
	)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
