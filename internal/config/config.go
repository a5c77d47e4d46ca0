package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tailscale/hujson"

	"github.com/sleuth-io/razordiag/internal/probe"
	"github.com/sleuth-io/razordiag/internal/report"
	"github.com/sleuth-io/razordiag/internal/utils"
)

// Environment variables that override the config file.
const (
	EnvHost        = "RAZORDIAG_HOST"
	EnvComponentID = "RAZORDIAG_COMPONENT_ID"
	EnvVSWhere     = "RAZORDIAG_VSWHERE"
	EnvLogLevel    = "RAZORDIAG_LOG_LEVEL"
)

// DefaultTimeout bounds each vswhere invocation.
const DefaultTimeout = 30 * time.Second

// Config represents the configuration for the razordiag CLI
type Config struct {
	// HostPath is the Visual Studio executable to inspect instead of discovering one
	HostPath string `json:"hostPath,omitempty"`

	// ComponentID is the setup component group checked for the Razor dependency
	ComponentID string `json:"componentId,omitempty"`

	// Pattern selects the files inventoried in each folder
	Pattern string `json:"pattern,omitempty"`

	// VSWherePath points at vswhere.exe when it is not on PATH or in the installer folder
	VSWherePath string `json:"vswherePath,omitempty"`

	// InstalledComponents are treated as installed without asking vswhere
	InstalledComponents []string `json:"installedComponents,omitempty"`

	// Format is the default report format: text, json, yaml or toml
	Format string `json:"format,omitempty"`

	// Notify sends a desktop notification when collection finishes
	Notify bool `json:"notify,omitempty"`

	// LogLevel is debug, info, warn or error
	LogLevel string `json:"logLevel,omitempty"`

	// TimeoutSeconds bounds each vswhere call
	TimeoutSeconds int `json:"timeoutSeconds,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		ComponentID:    probe.WebComponentGroupID,
		Pattern:        probe.DefaultPattern,
		Format:         string(report.FormatText),
		LogLevel:       "debug",
		TimeoutSeconds: int(DefaultTimeout / time.Second),
	}
}

// Load reads the config file, fills defaults and applies environment overrides.
// A missing file is not an error.
func Load() (*Config, error) {
	configFile, err := utils.GetConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to get config file path: %w", err)
	}

	cfg, err := LoadFile(configFile)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadFile reads one config file. Comments and trailing commas are allowed.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if !utils.FileExists(path) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	data, err = hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.ComponentID == "" {
		c.ComponentID = d.ComponentID
	}
	if c.Pattern == "" {
		c.Pattern = d.Pattern
	}
	if c.Format == "" {
		c.Format = d.Format
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = d.TimeoutSeconds
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvHost); v != "" {
		c.HostPath = v
	}
	if v := os.Getenv(EnvComponentID); v != "" {
		c.ComponentID = v
	}
	if v := os.Getenv(EnvVSWhere); v != "" {
		c.VSWherePath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := report.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	if err := probe.ValidatePattern(c.Pattern); err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	if !validLevel(c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be 'debug', 'info', 'warn' or 'error')", c.LogLevel)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeoutSeconds must not be negative")
	}
	return nil
}

// Timeout returns the vswhere timeout.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func validLevel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// Exists checks if a configuration file exists
func Exists() bool {
	configFile, err := utils.GetConfigFile()
	if err != nil {
		return false
	}
	return utils.FileExists(configFile)
}

const template = `// razordiag configuration. Comments and trailing commas are allowed.
{
  // Visual Studio executable to inspect. Empty discovers it with vswhere.
  "hostPath": "",

  // Component group that must be installed for Razor tooling.
  "componentId": %q,

  // Files inventoried in each folder.
  "pattern": %q,

  // Location of vswhere.exe when it is not in the installer folder or on PATH.
  "vswherePath": "",

  // Components reported as installed without asking vswhere.
  "installedComponents": [],

  // Report format: text, json, yaml or toml.
  "format": %q,

  // Send a desktop notification when collection finishes.
  "notify": false,

  // debug, info, warn or error.
  "logLevel": %q,

  // Seconds allowed for each vswhere call.
  "timeoutSeconds": %d,
}
`

// Init writes a commented default config file. It refuses to overwrite
// an existing file unless force is set.
func Init(force bool) (string, error) {
	configFile, err := utils.GetConfigFile()
	if err != nil {
		return "", fmt.Errorf("failed to get config file path: %w", err)
	}
	if utils.FileExists(configFile) && !force {
		return configFile, fmt.Errorf("config file already exists: %s", configFile)
	}

	if err := utils.EnsureDir(filepath.Dir(configFile)); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	d := Default()
	data := fmt.Sprintf(template, d.ComponentID, d.Pattern, d.Format, d.LogLevel, d.TimeoutSeconds)
	if err := os.WriteFile(configFile, []byte(data), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configFile, nil
}
