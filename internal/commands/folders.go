package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sleuth-io/razordiag/internal/host"
	"github.com/sleuth-io/razordiag/internal/logger"
	"github.com/sleuth-io/razordiag/internal/probe"
	"github.com/sleuth-io/razordiag/internal/report"
	"github.com/sleuth-io/razordiag/internal/ui"
	"github.com/sleuth-io/razordiag/internal/utils"
)

// FolderStatus is one derived folder and whether it exists.
type FolderStatus struct {
	Kind   string `json:"kind"`
	Title  string `json:"title"`
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

// NewFoldersCommand creates the folders command
func NewFoldersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "folders",
		Short:        "Show the tooling folders derived from the Visual Studio executable",
		Args:         cobra.NoArgs,
		RunE:         runFolders,
		SilenceUsage: true,
	}
	cmd.Flags().String("host", "", "Path to devenv.exe (default: discovered with vswhere)")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

func runFolders(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.Get()

	p := probe.New(host.Resolve(cfg.HostPath, newVSWhere(cfg), log), nil, nil, probe.Options{Logger: log})
	hostPath, err := p.GetHostExecutablePath(commandContext(cmd))
	if err != nil {
		return err
	}

	folders := probe.Derive(hostPath)
	statuses := []FolderStatus{{
		Kind:   "host",
		Title:  "Visual Studio",
		Path:   folders.Host,
		Exists: utils.IsDirectory(folders.Host),
	}}
	for _, kind := range probe.SectionKinds() {
		path := folders.Path(kind)
		statuses = append(statuses, FolderStatus{
			Kind:   string(kind),
			Title:  report.Title(kind),
			Path:   path,
			Exists: utils.IsDirectory(path),
		})
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		data, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return err
		}
		newOutputHelper(cmd).println(string(data))
		return nil
	}

	out := ui.NewOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	out.Header("Folders for " + hostPath)
	for _, s := range statuses {
		state := out.SuccessText("exists")
		if !s.Exists {
			state = out.ErrorText("missing")
		}
		out.ListItem(out.Symbols().Bullet, fmt.Sprintf("%s: %s (%s)", s.Title, s.Path, state))
	}
	return nil
}
