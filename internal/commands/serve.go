package commands

import (
	"github.com/spf13/cobra"

	"github.com/sleuth-io/razordiag/internal/logger"
	mcpserver "github.com/sleuth-io/razordiag/internal/mcp"
	"github.com/sleuth-io/razordiag/internal/probe"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Expose Razor diagnostics as MCP tools over stdio",
		Long: `Runs a Model Context Protocol server on stdin/stdout so an assistant can
collect Razor diagnostics and list the tooling folders on demand.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := logger.Get()

			server := mcpserver.NewServer(func(hostOverride string) *probe.Probe {
				c := *cfg
				if hostOverride != "" {
					c.HostPath = hostOverride
				}
				return probeFactory(&c, log)
			})
			return server.Run(commandContext(cmd))
		},
	}
}
