// Package worktree provisions the disposable git workspace a container
// session runs in, and removes it afterward.
package worktree

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Options select the workspace strategy for one run.
type Options struct {
	// Disabled mounts the invocation directory directly.
	Disabled bool

	// Branch is the reference the worktree is created from. Empty means
	// the current HEAD.
	Branch string

	// Keep suppresses cleanup of a provisioned worktree.
	Keep bool

	// Path reuses an existing worktree as-is. The caller owns that
	// path's lifecycle; no cleanup happens.
	Path string
}

// Workspace is the run-scoped handle for the mounted directory. At most one
// provisioned workspace exists per run, and its path is tracked here rather
// than rediscovered at cleanup time.
type Workspace struct {
	// Path is the directory mounted into the container.
	Path string

	// Branch is the branch checked out when this run provisioned the
	// worktree, empty otherwise.
	Branch string

	// Provisioned marks a worktree created (and owned) by this run.
	Provisioned bool

	// Keep suppresses cleanup even for a provisioned worktree.
	Keep bool
}

// Provisioner creates and removes per-run worktrees for the repository at
// Dir. Dir is injected rather than read ambiently so the lifecycle is
// testable against fixture directories.
type Provisioner struct {
	// Dir is the invocation directory, also the direct-mode workspace.
	Dir string

	// Runner executes git commands.
	Runner Runner

	// TempRoot is the parent directory for provisioned worktrees. Empty
	// means the system temp directory.
	TempRoot string
}

// NewProvisioner returns a Provisioner using the real git binary.
func NewProvisioner(dir string) *Provisioner {
	return &Provisioner{Dir: dir, Runner: osRunner{}}
}

// Provision materializes the workspace selected by opts.
//
// Worktree mode verifies the invocation directory is under version control
// (ErrNotAVersionControlledTree otherwise), then checks out the requested
// reference into a fresh uniquely named directory on a branch of the same
// name. A *CreationError is non-fatal to the run: the caller falls back to
// the invocation directory.
func (p *Provisioner) Provision(ctx context.Context, opts Options) (*Workspace, error) {
	if opts.Disabled {
		return &Workspace{Path: p.Dir}, nil
	}

	if opts.Path != "" {
		info, err := os.Stat(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("worktree path does not exist: %s", opts.Path)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("worktree path is not a directory: %s", opts.Path)
		}
		return &Workspace{Path: opts.Path}, nil
	}

	if _, err := p.Runner.Exec(ctx, p.Dir, "rev-parse", "--git-dir"); err != nil {
		return nil, ErrNotAVersionControlledTree
	}

	ref := opts.Branch
	if ref == "" {
		ref = "HEAD"
	}

	name := uniqueName(time.Now(), os.Getpid())
	dir := filepath.Join(p.tempRoot(), name)

	if _, err := p.Runner.Exec(ctx, p.Dir, "worktree", "add", "-b", name, dir, ref); err != nil {
		os.RemoveAll(dir)
		return nil, &CreationError{Ref: ref, Err: err}
	}

	return &Workspace{
		Path:        dir,
		Branch:      name,
		Provisioned: true,
		Keep:        opts.Keep,
	}, nil
}

// Cleanup removes a provisioned worktree from the registry and deletes its
// directory. Idempotent, and a no-op for kept worktrees and runs that
// never provisioned one.
func (p *Provisioner) Cleanup(ctx context.Context, ws *Workspace) error {
	if ws == nil || !ws.Provisioned || ws.Keep {
		return nil
	}

	// Only deregister paths git still knows about; the teardown may race
	// a previous partial cleanup.
	if out, err := p.Runner.Exec(ctx, p.Dir, "worktree", "list", "--porcelain"); err == nil {
		if strings.Contains(out, ws.Path) {
			p.Runner.Exec(ctx, p.Dir, "worktree", "remove", ws.Path, "--force")
		}
	}

	if err := os.RemoveAll(ws.Path); err != nil {
		return fmt.Errorf("failed to remove worktree directory: %w", err)
	}

	ws.Provisioned = false
	return nil
}

func (p *Provisioner) tempRoot() string {
	if p.TempRoot != "" {
		return p.TempRoot
	}
	return os.TempDir()
}

// uniqueName builds a per-run worktree and branch name. Timestamp plus pid
// keeps concurrent runs from colliding.
func uniqueName(now time.Time, pid int) string {
	return fmt.Sprintf("claude-wt-%d-%d", now.Unix(), pid)
}
