// Package config loads the optional launcher settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings control the names the launcher uses for its image, container,
// and hostname, and which container runtime drives them. Every field is
// optional in the file; absent fields keep their defaults.
type Settings struct {
	// Image is the tag the launcher builds and runs.
	Image string `yaml:"image"`

	// Container is the singleton container name.
	Container string `yaml:"container"`

	// Hostname is set inside the container.
	Hostname string `yaml:"hostname"`

	// Runtime pins the container runtime: "auto", "podman", or "docker".
	Runtime string `yaml:"runtime"`

	// ClaudeCommand is the assistant binary invoked in one-shot mode.
	ClaudeCommand string `yaml:"claude_command"`
}

// LoadOptions locate the settings file. WorkDir and ConfigDir are injected
// so resolution is testable against fixture directories.
type LoadOptions struct {
	// ExplicitPath is the --config value. When set, the file must exist.
	ExplicitPath string

	// WorkDir is the invocation directory, searched for a local file.
	WorkDir string

	// ConfigDir is the user configuration root (os.UserConfigDir).
	ConfigDir string
}

// Load resolves and reads the settings file, applying defaults for
// anything unset. A missing file at the local or global tier is not an
// error; a missing explicit path is.
func Load(opts LoadOptions) (*Settings, error) {
	s := DefaultSettings()

	path, err := resolvePath(opts)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return s, nil
}

// resolvePath applies the settings resolution priority.
// Priority:
// 1. Explicit path (if provided) - must exist
// 2. Local file ({workdir}/.claude-container.yaml) - if exists
// 3. Global file ({configdir}/claude-container/config.yaml) - if exists
//
// Returns empty when no tier matches.
func resolvePath(opts LoadOptions) (string, error) {
	if opts.ExplicitPath != "" {
		if _, err := os.Stat(opts.ExplicitPath); err != nil {
			return "", fmt.Errorf("settings file not found: %s", opts.ExplicitPath)
		}
		return opts.ExplicitPath, nil
	}

	if opts.WorkDir != "" {
		local := filepath.Join(opts.WorkDir, LocalSettingsFile)
		if _, err := os.Stat(local); err == nil {
			return local, nil
		}
	}

	if opts.ConfigDir != "" {
		global := filepath.Join(opts.ConfigDir, globalSettingsDir, globalSettingsFile)
		if _, err := os.Stat(global); err == nil {
			return global, nil
		}
	}

	return "", nil
}

// Validate rejects settings that would produce unusable commands.
func (s *Settings) Validate() error {
	switch s.Runtime {
	case "auto", "podman", "docker":
	default:
		return fmt.Errorf("invalid runtime: %q (must be 'auto', 'podman', or 'docker')", s.Runtime)
	}

	if s.Image == "" {
		return fmt.Errorf("image name cannot be empty")
	}
	if s.Container == "" {
		return fmt.Errorf("container name cannot be empty")
	}
	if s.Hostname == "" {
		return fmt.Errorf("hostname cannot be empty")
	}
	if s.ClaudeCommand == "" {
		return fmt.Errorf("claude command cannot be empty")
	}
	return nil
}
