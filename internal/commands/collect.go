package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sleuth-io/razordiag/internal/config"
	"github.com/sleuth-io/razordiag/internal/logger"
	"github.com/sleuth-io/razordiag/internal/notify"
	"github.com/sleuth-io/razordiag/internal/probe"
	"github.com/sleuth-io/razordiag/internal/report"
	"github.com/sleuth-io/razordiag/internal/ui"
	"github.com/sleuth-io/razordiag/internal/ui/components"
	"github.com/sleuth-io/razordiag/internal/utils"
)

// NewCollectCommand creates the collect command
func NewCollectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Print Razor tooling diagnostics for a Visual Studio installation",
		Long: `Inspects the Visual Studio executable, the web editor and Razor language
service folders next to it, and whether the web development workload is
installed. The report goes to stdout unless --output is given.`,
		Args:         cobra.NoArgs,
		RunE:         runCollect,
		SilenceUsage: true,
	}
	AddCollectFlags(cmd)
	return cmd
}

// AddCollectFlags registers the collect flags on cmd, so the root command can run collect directly.
func AddCollectFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("host", "", "Path to devenv.exe (default: discovered with vswhere, env "+config.EnvHost+")")
	flags.StringP("format", "f", "", "Report format: text, json, yaml or toml")
	flags.StringP("output", "o", "", "Write the report to a file instead of stdout")
	flags.String("pattern", "", "File pattern inventoried in each folder (default \""+probe.DefaultPattern+"\")")
	flags.String("component", "", "Setup component group checked for the Razor dependency")
	flags.Bool("notify", false, "Send a desktop notification when done")
	flags.Bool("no-check", false, "Skip the Razor assembly version consistency check")
}

func runCollect(cmd *cobra.Command, args []string) error {
	status := ui.NewOutput(cmd.ErrOrStderr(), cmd.ErrOrStderr())
	log := logger.Get()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, _ := report.ParseFormat(cfg.Format)
	outputPath, _ := cmd.Flags().GetString("output")
	noCheck, _ := cmd.Flags().GetBool("no-check")

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	p := probeFactory(cfg, log)
	inv, err := components.RunWithSpinner(ctx, "Collecting Razor diagnostics", cmd.ErrOrStderr(), p.Collect)
	if err != nil {
		return reportFailure(cmd, status, cfg, err)
	}

	rep := report.New(inv, report.Options{SkipChecks: noCheck})
	if err := writeReport(cmd, rep, format, outputPath); err != nil {
		return reportFailure(cmd, status, cfg, err)
	}

	log.Info("diagnostics written", "report", rep.ID, "format", format, "output", outputPath,
		"failedSections", rep.FailedSections(), "findings", len(rep.Findings))

	for _, s := range rep.Sections {
		if s.Failed() {
			status.Warning(fmt.Sprintf("%s could not be listed: %s", s.Title, s.Error))
		}
	}
	for _, f := range rep.Findings {
		status.Warning(f.Message)
	}

	if outputPath != "" {
		status.Success("Razor diagnostics information has been written to " + outputPath)
	} else {
		status.Success(notify.SuccessMessage())
	}
	if cfg.Notify {
		notify.ReportSuccess()
	}
	return nil
}

// writeReport renders to stdout or to the --output file. Anything already
// written stays in the sink when rendering fails part way.
func writeReport(cmd *cobra.Command, rep *report.Report, format report.Format, outputPath string) error {
	if outputPath == "" {
		if err := report.Write(cmd.OutOrStdout(), rep, format); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	}

	path, err := utils.NormalizePath(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	return closeReport(f, report.Write(f, rep, format))
}

// closeReport closes the output file; a close failure means the report
// may not be on disk even when rendering succeeded.
func closeReport(f io.Closer, writeErr error) error {
	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("failed to write report: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close output file: %w", closeErr)
	}
	return nil
}

func reportFailure(cmd *cobra.Command, status *ui.Output, cfg *config.Config, err error) error {
	logger.Get().Error("collecting diagnostics failed", "error", err, "hostResolution", errors.Is(err, probe.ErrProcessIntrospection))

	status.Error(notify.FailureMessage(err))
	if cfg.Notify {
		notify.ReportFailure(err)
	}

	// Already printed above.
	cmd.SilenceErrors = true
	return err
}
