package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeanhaley32/claude-container/internal/config"
	"github.com/jeanhaley32/claude-container/internal/container"
	"github.com/jeanhaley32/claude-container/internal/embedded"
	"github.com/jeanhaley32/claude-container/internal/identity"
	"github.com/jeanhaley32/claude-container/internal/launcher"
	"github.com/jeanhaley32/claude-container/internal/staging"
	"github.com/jeanhaley32/claude-container/internal/terminal"
	"github.com/jeanhaley32/claude-container/internal/worktree"
)

var version = "0.3.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// A failed session exits with the container's own status.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts launcher.Options
	var configPath string

	cmd := &cobra.Command{
		Use:   "claude-container",
		Short: "Launch Claude Code in a disposable container",
		Long: `Builds a per-user container image with your Claude credentials baked in,
mounts an isolated git worktree (or the current directory), and drops you
into an interactive session or runs a single message to completion.`,
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(opts, configPath)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Message, "message", "m", "", "Run 'claude -p MESSAGE' after the container starts, then exit")
	flags.BoolVar(&opts.NoCache, "no-cache", false, "Force image rebuild")
	flags.StringVar(&opts.PermissionMode, "permission-mode", "", "Permission mode for one-shot mode (default, acceptEdits, plan, bypassPermissions)")
	flags.StringVar(&opts.WorktreeBranch, "worktree-branch", "", "Reference the worktree is created from (default: current HEAD)")
	flags.BoolVar(&opts.KeepWorktree, "keep-worktree", false, "Keep the worktree after the container stops")
	flags.BoolVar(&opts.NoWorktree, "no-worktree", false, "Use the current directory instead of a worktree")
	flags.StringVar(&opts.WorktreePath, "worktree-path", "", "Reuse an existing worktree (implies --keep-worktree)")
	flags.StringVar(&configPath, "config", "", "Settings file (default: ./.claude-container.yaml, then the user config directory)")

	return cmd
}

func run(opts launcher.Options, configPath string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	printer := terminal.NewPrinter()

	configDir, _ := os.UserConfigDir()
	settings, err := config.Load(config.LoadOptions{
		ExplicitPath: configPath,
		WorkDir:      workDir,
		ConfigDir:    configDir,
	})
	if err != nil {
		return err
	}

	id, err := identity.Resolve()
	if err != nil {
		return err
	}

	runtime, err := container.ResolveRuntime(settings.Runtime)
	if err != nil {
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to resolve home directory: %w", err)
	}

	cleanups := &launcher.CleanupRegistry{}
	defer cleanups.Run()
	stopSignals := cleanups.NotifySignals(printer)
	defer stopSignals()

	l := &launcher.Launcher{
		Settings:    settings,
		Identity:    id,
		Engine:      container.NewEngine(runtime),
		Provisioner: worktree.NewProvisioner(workDir),
		Stager: &staging.Stager{
			HomeDir:        home,
			Username:       id.Username,
			Dockerfile:     embedded.Dockerfile,
			Template:       embedded.ConfigTemplate,
			DefinitionTime: executableModTime(),
		},
		Printer:  printer,
		Cleanups: cleanups,
	}

	return l.Run(context.Background(), opts)
}

// executableModTime stands in for the embedded build definition's
// modification time: the definition changes only when the binary does.
func executableModTime() time.Time {
	exe, err := os.Executable()
	if err != nil {
		return time.Time{}
	}
	info, err := os.Stat(exe)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
