package config

// Fixed names the launcher uses when no settings file overrides them.
const (
	// DefaultImageName is the image tag built and run by the launcher.
	DefaultImageName = "claude-code-ubuntu"

	// DefaultContainerName is the singleton container name.
	DefaultContainerName = "claude-code-dev"

	// DefaultHostname is the hostname set inside the container.
	DefaultHostname = "claude-dev"

	// DefaultRuntime selects the container runtime. "auto" probes for
	// podman first, then docker.
	DefaultRuntime = "auto"

	// DefaultClaudeCommand is the assistant binary invoked inside the
	// container in one-shot mode.
	DefaultClaudeCommand = "claude"
)

// Settings file locations.
const (
	// LocalSettingsFile is looked up in the invocation directory.
	LocalSettingsFile = ".claude-container.yaml"

	globalSettingsDir  = "claude-container"
	globalSettingsFile = "config.yaml"
)

// DefaultSettings returns a Settings with all default values applied.
func DefaultSettings() *Settings {
	return &Settings{
		Image:         DefaultImageName,
		Container:     DefaultContainerName,
		Hostname:      DefaultHostname,
		Runtime:       DefaultRuntime,
		ClaudeCommand: DefaultClaudeCommand,
	}
}
