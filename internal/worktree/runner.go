package worktree

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes git commands. The production implementation shells out;
// tests substitute a fake so provisioning logic runs without a repository.
type Runner interface {
	Exec(ctx context.Context, dir string, args ...string) (string, error)
}

// osRunner executes real git commands via exec.CommandContext.
type osRunner struct{}

func (osRunner) Exec(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w\nstderr: %s",
			strings.Join(args, " "), err, stderr.String())
	}

	return stdout.String(), nil
}
