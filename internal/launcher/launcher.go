// Package launcher assembles the end-to-end container session: workspace
// provisioning, credential staging, the image build decision, the session
// itself, and the post-session git handling.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jeanhaley32/claude-container/internal/config"
	"github.com/jeanhaley32/claude-container/internal/container"
	"github.com/jeanhaley32/claude-container/internal/identity"
	"github.com/jeanhaley32/claude-container/internal/staging"
	"github.com/jeanhaley32/claude-container/internal/terminal"
	"github.com/jeanhaley32/claude-container/internal/worktree"
)

// Launcher drives one run. The cmd layer fills every field; cleanup
// obligations land in Cleanups, which the cmd layer runs on every exit
// path.
type Launcher struct {
	Settings    *config.Settings
	Identity    identity.Identity
	Engine      *container.Engine
	Provisioner *worktree.Provisioner
	Stager      *staging.Stager
	Printer     *terminal.Printer
	Cleanups    *CleanupRegistry
}

// Run executes the launch pipeline: resolve the workspace, stage
// credentials, decide on a rebuild, build, release staged files, tear
// down any prior container, run the session, then post-process the
// worktree. The session's error is the run's error; post-processing
// failures surface only when the session itself succeeded.
func (l *Launcher) Run(ctx context.Context, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	l.Printer.Headerf("Claude Code Container Launcher")

	workspace, err := l.resolveWorkspace(ctx, opts)
	if err != nil {
		return err
	}
	l.Cleanups.Register(func() {
		if err := l.Provisioner.Cleanup(context.Background(), workspace); err != nil {
			l.Printer.Warnf("worktree cleanup: %v", err)
		}
	})

	staged, err := l.Stager.Stage()
	if err != nil {
		return err
	}
	l.Cleanups.Register(func() {
		if err := staged.Release(); err != nil {
			l.Printer.Warnf("staging release: %v", err)
		}
	})

	if needed, reason := l.Engine.NeedsBuild(ctx, l.Settings.Image, staged.DockerfilePath, opts.NoCache); needed {
		l.Printer.Statusf("Building image %s: %s", l.Settings.Image, reason)
		if err := l.Engine.Build(ctx, container.BuildOptions{
			Image:      l.Settings.Image,
			ContextDir: staged.Dir,
			Dockerfile: staged.DockerfilePath,
			UID:        l.Identity.UID,
			GID:        l.Identity.GID,
			Username:   l.Identity.Username,
			NoCache:    opts.NoCache,
		}); err != nil {
			return err
		}
	} else {
		l.Printer.Infof("Image %s is up to date", l.Settings.Image)
	}

	// The staged credential copies exist only for the build.
	if err := staged.Release(); err != nil {
		l.Printer.Warnf("staging release: %v", err)
	}

	l.Engine.Teardown(ctx, l.Settings.Container)

	runErr := l.runSession(ctx, workspace, opts)
	if runErr == nil {
		l.Printer.Statusf("Container stopped")
	}

	postErr := l.postProcess(ctx, workspace)
	if runErr != nil {
		return runErr
	}
	return postErr
}

// resolveWorkspace maps the worktree flags onto a workspace. A worktree
// creation failure degrades to the invocation directory; a missing
// repository or a bad explicit path is fatal.
func (l *Launcher) resolveWorkspace(ctx context.Context, opts Options) (*worktree.Workspace, error) {
	if opts.NoWorktree {
		l.Printer.Infof("Using current directory (no worktree)")
		return l.Provisioner.Provision(ctx, worktree.Options{Disabled: true})
	}

	if opts.WorktreePath != "" {
		workspace, err := l.Provisioner.Provision(ctx, worktree.Options{Path: opts.WorktreePath})
		if err != nil {
			return nil, err
		}
		l.Printer.Infof("Using existing worktree at %s", workspace.Path)
		return workspace, nil
	}

	workspace, err := l.Provisioner.Provision(ctx, worktree.Options{
		Branch: opts.WorktreeBranch,
		Keep:   opts.KeepWorktree,
	})
	if err != nil {
		var creation *worktree.CreationError
		if errors.As(err, &creation) {
			l.Printer.Warnf("%v", creation)
			l.Printer.Warnf("Falling back to the current directory")
			return l.Provisioner.Provision(ctx, worktree.Options{Disabled: true})
		}
		return nil, err
	}

	l.Printer.Statusf("Created worktree at %s (branch %s)", workspace.Path, workspace.Branch)
	return workspace, nil
}

func (l *Launcher) runSession(ctx context.Context, workspace *worktree.Workspace, opts Options) error {
	dest := containerWorkspacePath(l.Identity.Username)

	l.Printer.Statusf("Starting Claude Code container...")
	l.Printer.Infof("Container name: %s", l.Settings.Container)
	l.Printer.Infof("Mounting %s at %s", workspace.Path, dest)
	if workspace.Provisioned {
		if workspace.Keep {
			l.Printer.Infof("Worktree will be preserved after the container stops")
		} else {
			l.Printer.Infof("Worktree will be cleaned up after the container stops")
		}
	}

	interactive := opts.Message == ""
	var command []string
	if interactive {
		l.Printer.Infof("Type '%s' to start Claude Code, 'exit' to stop the container", l.Settings.ClaudeCommand)
		l.Printer.Blank()
	} else {
		command = claudeCommand(l.Settings.ClaudeCommand, opts.Message, opts.PermissionMode)
		l.Printer.Infof("Running: %s", strings.Join(command, " "))
	}

	return l.Engine.Run(ctx, container.RunOptions{
		Image:         l.Settings.Image,
		Name:          l.Settings.Container,
		Hostname:      l.Settings.Hostname,
		User:          l.Identity.User(),
		WorkspaceHost: workspace.Path,
		WorkspaceDest: dest,
		Interactive:   interactive,
		Command:       command,
	})
}

// postProcess commits and pushes whatever the session changed in a
// provisioned worktree. A push failure is reported but keeps the run
// successful; the commit is already local.
func (l *Launcher) postProcess(ctx context.Context, workspace *worktree.Workspace) error {
	if workspace == nil || !workspace.Provisioned {
		return nil
	}

	l.Printer.Statusf("Processing worktree changes...")
	result, err := l.Provisioner.PostProcess(ctx, workspace)
	if err != nil {
		return fmt.Errorf("worktree post-processing: %w", err)
	}

	switch {
	case !result.Changed:
		l.Printer.Infof("No changes detected in worktree")
	case result.Pushed && result.NewBranch:
		l.Printer.Statusf("New branch created and pushed to origin/%s", result.Branch)
	case result.Pushed:
		l.Printer.Statusf("Changes pushed to origin/%s", result.Branch)
	default:
		l.Printer.Warnf("Failed to push changes to remote: %v", result.PushErr)
		l.Printer.Infof("Changes remain committed locally on %s", result.Branch)
	}
	return nil
}

// claudeCommand builds the one-shot assistant invocation. The message
// travels as its own argument; nothing shell-quotes it.
func claudeCommand(command, message, permissionMode string) []string {
	args := []string{command}
	if permissionMode != "" {
		args = append(args, "--permission-mode", permissionMode)
	} else {
		args = append(args, "--dangerously-skip-permissions")
	}
	return append(args, "-p", message, "--output-format", "stream-json", "--verbose")
}

// containerWorkspacePath is the fixed mount destination inside the
// container.
func containerWorkspacePath(username string) string {
	return "/home/" + username + "/dev"
}
