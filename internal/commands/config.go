package commands

import (
	"bufio"
	"encoding/json"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sleuth-io/razordiag/internal/buildinfo"
	"github.com/sleuth-io/razordiag/internal/cache"
	"github.com/sleuth-io/razordiag/internal/config"
	"github.com/sleuth-io/razordiag/internal/logger"
	"github.com/sleuth-io/razordiag/internal/ui"
	"github.com/sleuth-io/razordiag/internal/utils"
	"github.com/sleuth-io/razordiag/internal/vswhere"
)

// ConfigOutput represents the full config output for JSON serialization
type ConfigOutput struct {
	Version     VersionInfo    `json:"version"`
	Platform    PlatformInfo   `json:"platform"`
	Config      ConfigInfo     `json:"config"`
	Directories DirectoryInfo  `json:"directories"`
	Resolved    *config.Config `json:"resolved,omitempty"`
	Probe       *ProbeInfo     `json:"probe,omitempty"`
	RecentLogs  []string       `json:"recentLogs"`
}

// ProbeInfo is what collect will check, after defaults are applied.
type ProbeInfo struct {
	ComponentID string `json:"componentId"`
	Pattern     string `json:"pattern"`
}

type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

type PlatformInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	WorkingDir string `json:"workingDir"`
}

type ConfigInfo struct {
	Path    string `json:"path"`
	Exists  bool   `json:"exists"`
	Error   string `json:"error,omitempty"`
	VSWhere string `json:"vswhere,omitempty"`
}

type DirectoryInfo struct {
	Config  string `json:"config"`
	Cache   string `json:"cache"`
	LogFile string `json:"logFile"`
}

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "config",
		Short:        "Display configuration and paths",
		Long:         "Shows the resolved configuration, where it was read from, and the log location for debugging and remote support.",
		Args:         cobra.NoArgs,
		RunE:         runConfig,
		SilenceUsage: true,
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.AddCommand(newConfigInitCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			path, err := config.Init(force)
			if err != nil {
				return err
			}
			ui.NewOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()).Success("Wrote " + path)
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing config file")
	return cmd
}

func runConfig(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	output := gatherConfigInfo()

	if jsonOutput {
		return printJSON(cmd, output)
	}
	printText(cmd, output)
	return nil
}

func gatherConfigInfo() ConfigOutput {
	output := ConfigOutput{}

	output.Version = VersionInfo{
		Version: buildinfo.Version,
		Commit:  buildinfo.Commit,
		Date:    buildinfo.Date,
	}

	cwd, _ := os.Getwd()
	output.Platform = PlatformInfo{
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		WorkingDir: cwd,
	}

	configPath, _ := utils.GetConfigFile()
	output.Config = ConfigInfo{
		Path:   configPath,
		Exists: utils.FileExists(configPath),
	}
	if cfg, err := config.Load(); err != nil {
		output.Config.Error = err.Error()
	} else {
		output.Resolved = cfg
		p := probeFactory(cfg, logger.Get())
		output.Probe = &ProbeInfo{ComponentID: p.ComponentID(), Pattern: p.Pattern()}
		if path, err := vswhere.Locate(cfg.VSWherePath); err == nil {
			output.Config.VSWhere = path
		}
	}

	configDir, _ := utils.GetConfigDir()
	cacheDir, _ := cache.GetCacheDir()
	logFile, _ := cache.GetLogPath()
	output.Directories = DirectoryInfo{
		Config:  configDir,
		Cache:   cacheDir,
		LogFile: logFile,
	}

	output.RecentLogs = readLastLines(logFile, 5)
	return output
}

func readLastLines(path string, n int) []string {
	if path == "" {
		return nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var allLines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		allLines = append(allLines, scanner.Text())
	}

	if len(allLines) <= n {
		return allLines
	}
	return allLines[len(allLines)-n:]
}

func printJSON(cmd *cobra.Command, output ConfigOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}
	newOutputHelper(cmd).println(string(data))
	return nil
}

func printText(cmd *cobra.Command, output ConfigOutput) {
	o := newOutputHelper(cmd)

	o.println("Razor Diagnostics Configuration")
	o.println("===============================")
	o.println()

	o.printf("Version: %s\n", buildinfo.String())
	o.printf("Platform: %s/%s\n", output.Platform.OS, output.Platform.Arch)
	o.printf("Working Directory: %s\n", output.Platform.WorkingDir)
	o.println()

	o.println("Configuration")
	o.println("-------------")
	existsStr := "exists"
	if !output.Config.Exists {
		existsStr = "not found, using defaults"
	}
	o.printf("Config File: %s (%s)\n", output.Config.Path, existsStr)
	if output.Config.Error != "" {
		o.printf("Error: %s\n", output.Config.Error)
	}
	if cfg := output.Resolved; cfg != nil {
		o.printf("Host Path: %s\n", valueOr(cfg.HostPath, "(discover with vswhere)"))
		o.printf("Format: %s\n", cfg.Format)
		if len(cfg.InstalledComponents) > 0 {
			o.printf("Installed Components: %s\n", strings.Join(cfg.InstalledComponents, ", "))
		}
		o.printf("Notify: %t\n", cfg.Notify)
		o.printf("Log Level: %s\n", cfg.LogLevel)
		o.printf("Timeout: %s\n", cfg.Timeout())
	}
	if p := output.Probe; p != nil {
		o.printf("Component: %s\n", p.ComponentID)
		o.printf("Pattern: %s\n", p.Pattern)
	}
	o.printf("vswhere: %s\n", valueOr(output.Config.VSWhere, "not found"))
	o.println()

	o.println("Directories")
	o.println("-----------")
	o.printf("Config: %s\n", output.Directories.Config)
	o.printf("Cache: %s\n", output.Directories.Cache)
	o.printf("Log File: %s\n", output.Directories.LogFile)

	if len(output.RecentLogs) > 0 {
		o.println()
		o.println("Recent Logs")
		o.println("-----------")
		for _, line := range output.RecentLogs {
			o.println(line)
		}
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
