package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sleuth-io/razordiag/internal/buildinfo"
	"github.com/sleuth-io/razordiag/internal/commands"
	"github.com/sleuth-io/razordiag/internal/logger"
)

func main() {
	// Log command invocation with context
	log := logger.Get()
	cwd, _ := os.Getwd()
	log.Info("command invoked", "version", buildinfo.Version, "command", strings.Join(os.Args[1:], " "), "cwd", cwd)

	rootCmd := &cobra.Command{
		Use:   buildinfo.GetAppName(),
		Short: "razordiag - Razor tooling diagnostics for Visual Studio",
		Long: `razordiag reports the Visual Studio executable, the Razor and web editor
assemblies installed next to it, and whether the web development workload
is present, so the output can be pasted into a bug report.

Running razordiag without a subcommand runs collect.`,
		Version: buildinfo.String(),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunDefaultCommand(cmd, args)
		},
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	commands.AddCollectFlags(rootCmd)

	rootCmd.AddCommand(commands.NewCollectCommand())
	rootCmd.AddCommand(commands.NewFoldersCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewServeCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
