package worktree

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// PostProcessResult reports what happened to the changes a session left in
// a provisioned worktree.
type PostProcessResult struct {
	// Changed is true when the session left unstaged, staged, or
	// untracked files behind.
	Changed bool

	// Branch is the branch the commit landed on.
	Branch string

	// Pushed is true when the commit reached origin.
	Pushed bool

	// NewBranch is true when the push had to set an upstream.
	NewBranch bool

	// PushErr holds the push failure when Pushed is false. The commit is
	// still local; callers warn rather than fail.
	PushErr error
}

// PostProcess commits and pushes whatever the session changed in a
// provisioned worktree. Direct-mode and reused workspaces are left alone.
func (p *Provisioner) PostProcess(ctx context.Context, ws *Workspace) (*PostProcessResult, error) {
	result := &PostProcessResult{}
	if ws == nil || !ws.Provisioned {
		return result, nil
	}

	changed, err := p.hasChanges(ctx, ws.Path)
	if err != nil {
		return nil, err
	}
	if !changed {
		return result, nil
	}
	result.Changed = true

	if _, err := p.Runner.Exec(ctx, ws.Path, "add", "-A"); err != nil {
		return nil, fmt.Errorf("failed to stage session changes: %w", err)
	}

	message := fmt.Sprintf("chore: claude code container changes %s",
		time.Now().Format("2006-01-02 15:04:05"))
	if _, err := p.Runner.Exec(ctx, ws.Path, "commit", "-m", message); err != nil {
		return nil, fmt.Errorf("failed to commit session changes: %w", err)
	}

	branch, err := p.Runner.Exec(ctx, ws.Path, "branch", "--show-current")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current branch: %w", err)
	}
	result.Branch = strings.TrimSpace(branch)

	if _, err := p.Runner.Exec(ctx, ws.Path, "push", "origin", result.Branch); err == nil {
		result.Pushed = true
		return result, nil
	}

	if _, err := p.Runner.Exec(ctx, ws.Path, "push", "--set-upstream", "origin", result.Branch); err != nil {
		result.PushErr = err
		return result, nil
	}

	result.Pushed = true
	result.NewBranch = true
	return result, nil
}

// hasChanges probes the worktree the way git exposes the three change
// classes: unstaged edits, staged edits, untracked files.
func (p *Provisioner) hasChanges(ctx context.Context, dir string) (bool, error) {
	// diff --quiet exits non-zero exactly when differences exist.
	if _, err := p.Runner.Exec(ctx, dir, "diff", "--quiet"); err != nil {
		return true, nil
	}
	if _, err := p.Runner.Exec(ctx, dir, "diff", "--cached", "--quiet"); err != nil {
		return true, nil
	}

	out, err := p.Runner.Exec(ctx, dir, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return false, fmt.Errorf("failed to list untracked files: %w", err)
	}
	return strings.TrimSpace(out) != "", nil
}
