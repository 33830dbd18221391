// Package container drives the container runtime CLI: image probes,
// builds, prior-instance teardown, and session runs.
package container

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Default timeout for short-lived runtime probes. Builds and session runs
// are not bounded.
const defaultProbeTimeout = 30 * time.Second

// Engine wraps one detected container runtime binary.
type Engine struct {
	runtime string
}

// NewEngine creates an Engine for the given runtime binary ("podman" or
// "docker").
func NewEngine(runtime string) *Engine {
	return &Engine{runtime: runtime}
}

// Runtime returns the underlying runtime binary name.
func (e *Engine) Runtime() string {
	return e.runtime
}

// isPodman gates the options only podman understands.
func (e *Engine) isPodman() bool {
	return e.runtime == "podman"
}

// BuildOptions describe one image build.
type BuildOptions struct {
	Image      string
	ContextDir string
	Dockerfile string

	// Build arguments baked into the image.
	UID      int
	GID      int
	Username string

	// NoCache disables layer caching.
	NoCache bool

	// Stdout and Stderr receive the streamed build output. Nil means the
	// process's own streams.
	Stdout io.Writer
	Stderr io.Writer
}

// buildArgs constructs the runtime CLI arguments for a build.
func buildArgs(opts BuildOptions) []string {
	args := []string{
		"build",
		"-f", opts.Dockerfile,
		"--build-arg", fmt.Sprintf("USER_ID=%d", opts.UID),
		"--build-arg", fmt.Sprintf("GROUP_ID=%d", opts.GID),
		"--build-arg", fmt.Sprintf("USER_NAME=%s", opts.Username),
		"-t", opts.Image,
	}
	if opts.NoCache {
		args = append(args, "--no-cache")
	}
	return append(args, opts.ContextDir)
}

// Build builds the image, streaming output to the operator.
func (e *Engine) Build(ctx context.Context, opts BuildOptions) error {
	cmd := exec.CommandContext(ctx, e.runtime, buildArgs(opts)...)
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to build image %s: %w", opts.Image, err)
	}
	return nil
}

// RunOptions describe one container session.
type RunOptions struct {
	Image    string
	Name     string
	Hostname string

	// User is the uid:gid the container process runs as.
	User string

	// WorkspaceHost is the host directory mounted at WorkspaceDest.
	WorkspaceHost string
	WorkspaceDest string

	// Interactive attaches a TTY; the session runs until the user exits.
	Interactive bool

	// Command overrides the image's default command. Arguments are passed
	// through as-is, never re-quoted by a shell.
	Command []string
}

// runArgs constructs the runtime CLI arguments for a session.
func (e *Engine) runArgs(opts RunOptions) []string {
	args := []string{"run"}
	if opts.Interactive {
		args = append(args, "-it")
	}

	volume := opts.WorkspaceHost + ":" + opts.WorkspaceDest
	if e.isPodman() {
		// SELinux relabel and id-mapped user namespace only exist on
		// podman; docker rejects both.
		volume += ":Z"
	}

	args = append(args,
		"--name", opts.Name,
		"--hostname", opts.Hostname,
		"--user", opts.User,
		"--volume", volume,
	)
	if e.isPodman() {
		args = append(args, "--userns=keep-id")
	}

	args = append(args, opts.Image)
	return append(args, opts.Command...)
}

// Run starts the session attached to the process's standard streams and
// blocks until the container exits. The container's failure is the run's
// failure.
func (e *Engine) Run(ctx context.Context, opts RunOptions) error {
	cmd := exec.CommandContext(ctx, e.runtime, e.runArgs(opts)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("container run failed: %w", err)
	}
	return nil
}

// ContainerExists reports whether a container with the name exists,
// running or stopped.
func (e *Engine) ContainerExists(ctx context.Context, name string) bool {
	out, err := e.probeOutput(ctx, "ps", "-a", "-q", "-f", "name=^"+name+"$")
	if err != nil {
		return false
	}
	return len(strings.TrimSpace(string(out))) > 0
}

// Teardown stops and force-removes any prior container with the name.
// Best-effort and idempotent: teardown errors are ignored, the launch
// itself will surface anything real.
func (e *Engine) Teardown(ctx context.Context, name string) {
	if !e.ContainerExists(ctx, name) {
		return
	}
	e.probe(ctx, "stop", name)
	e.probe(ctx, "rm", "-f", name)
}

// ImageExists reports whether the image is present locally.
func (e *Engine) ImageExists(ctx context.Context, image string) bool {
	return e.probe(ctx, "image", "inspect", image) == nil
}

// ImageCreated returns the image's creation timestamp.
func (e *Engine) ImageCreated(ctx context.Context, image string) (time.Time, error) {
	out, err := e.probeOutput(ctx, "image", "inspect", "--format", "{{.Created}}", image)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to inspect image %s: %w", image, err)
	}
	return parseCreated(strings.TrimSpace(string(out)))
}

// probe runs a short-lived runtime command, discarding output.
func (e *Engine) probe(ctx context.Context, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultProbeTimeout)
	defer cancel()

	err := exec.CommandContext(ctx, e.runtime, args...).Run()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%s %s timed out after %v", e.runtime, strings.Join(args, " "), defaultProbeTimeout)
	}
	return err
}

// probeOutput runs a short-lived runtime command and returns its stdout.
func (e *Engine) probeOutput(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultProbeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, e.runtime, args...).Output()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%s %s timed out after %v", e.runtime, strings.Join(args, " "), defaultProbeTimeout)
	}
	return out, err
}
