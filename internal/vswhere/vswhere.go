// Package vswhere queries the Visual Studio installer's locator tool.
package vswhere

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound means vswhere.exe could not be located.
var ErrNotFound = errors.New("vswhere not found")

// Instance is one Visual Studio installation reported by vswhere.
type Instance struct {
	InstanceID          string `json:"instanceId"`
	InstallationPath    string `json:"installationPath"`
	InstallationVersion string `json:"installationVersion"`
	ProductPath         string `json:"productPath"`
	DisplayName         string `json:"displayName"`
	IsPrerelease        bool   `json:"isPrerelease"`
}

// runFunc executes the tool and returns its stdout.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Client runs vswhere.
type Client struct {
	explicit string
	timeout  time.Duration
	run      runFunc
}

// New creates a client. explicit, when set, is used instead of searching.
func New(explicit string) *Client {
	return &Client{explicit: explicit, run: execRun}
}

// WithTimeout bounds every vswhere invocation. Zero means no limit.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.timeout = d
	return c
}

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", filepath.Base(name), err, msg)
		}
		return nil, fmt.Errorf("%s: %w", filepath.Base(name), err)
	}
	return out, nil
}

// Locate finds vswhere.exe: the explicit path, then PATH, then the
// installer folders under Program Files.
func Locate(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%w at %s: %w", ErrNotFound, explicit, err)
		}
		return explicit, nil
	}

	if path, err := exec.LookPath("vswhere"); err == nil {
		return path, nil
	}

	for _, env := range []string{"ProgramFiles(x86)", "ProgramFiles"} {
		root := os.Getenv(env)
		if root == "" {
			continue
		}
		candidate := filepath.Join(root, "Microsoft Visual Studio", "Installer", "vswhere.exe")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", ErrNotFound
}

// Instances runs vswhere with extra filter arguments and parses its JSON output.
func (c *Client) Instances(ctx context.Context, filters ...string) ([]Instance, error) {
	path, err := Locate(c.explicit)
	if err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := append([]string{"-format", "json", "-utf8", "-nologo"}, filters...)
	out, err := c.run(ctx, path, args...)
	if err != nil {
		return nil, err
	}
	return ParseInstances(out)
}

// Latest returns the newest installation, including prereleases.
func (c *Client) Latest(ctx context.Context) (*Instance, error) {
	instances, err := c.Instances(ctx, "-latest", "-prerelease")
	if err != nil {
		return nil, err
	}
	if len(instances) == 0 {
		return nil, errors.New("no Visual Studio installation found")
	}
	return &instances[0], nil
}

// ParseInstances decodes vswhere's JSON array output.
func ParseInstances(data []byte) ([]Instance, error) {
	data = bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	if len(data) == 0 {
		return nil, nil
	}

	var instances []Instance
	if err := json.Unmarshal(data, &instances); err != nil {
		return nil, fmt.Errorf("failed to parse vswhere output: %w", err)
	}
	return instances, nil
}
