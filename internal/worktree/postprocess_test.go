package worktree

import (
	"context"
	"errors"
	"testing"
)

func TestPostProcessSkipsUnprovisioned(t *testing.T) {
	fake := newFakeRunner()
	p := newTestProvisioner(t, fake)

	result, err := p.PostProcess(context.Background(), &Workspace{Path: p.Dir})
	if err != nil {
		t.Fatalf("PostProcess() failed: %v", err)
	}
	if result.Changed {
		t.Error("direct workspace reported changes")
	}
	if n := fake.callCount(); n != 0 {
		t.Errorf("unprovisioned post-process ran %d git commands, want 0", n)
	}
}

func TestPostProcessNoChanges(t *testing.T) {
	fake := newFakeRunner()
	fake.stub("diff --quiet", "", nil)
	fake.stub("diff --cached --quiet", "", nil)
	fake.stub("ls-files --others --exclude-standard", "\n", nil)
	p := newTestProvisioner(t, fake)
	ws := provisionedWorkspace(t, p)

	result, err := p.PostProcess(context.Background(), ws)
	if err != nil {
		t.Fatalf("PostProcess() failed: %v", err)
	}

	if result.Changed {
		t.Error("clean worktree reported changes")
	}
	if n := fake.callsFor("add -A"); n != 0 {
		t.Errorf("clean worktree was staged %d times, want 0", n)
	}
}

func TestPostProcessCommitsAndPushes(t *testing.T) {
	fake := newFakeRunner()
	fake.stub("diff --quiet", "", errors.New("exit status 1"))
	fake.stub("add -A", "", nil)
	fake.stub("commit -m chore: claude code container changes", "", nil)
	fake.stub("branch --show-current", "claude-wt-1700000000-42\n", nil)
	fake.stub("push origin claude-wt-1700000000-42", "", nil)
	p := newTestProvisioner(t, fake)
	ws := provisionedWorkspace(t, p)

	result, err := p.PostProcess(context.Background(), ws)
	if err != nil {
		t.Fatalf("PostProcess() failed: %v", err)
	}

	if !result.Changed {
		t.Error("dirty worktree reported no changes")
	}
	if !result.Pushed {
		t.Error("push did not succeed")
	}
	if result.NewBranch {
		t.Error("push reported a new upstream without the fallback")
	}
	if result.Branch != "claude-wt-1700000000-42" {
		t.Errorf("Branch = %q, want claude-wt-1700000000-42", result.Branch)
	}
}

func TestPostProcessUntrackedFilesOnly(t *testing.T) {
	fake := newFakeRunner()
	fake.stub("diff --quiet", "", nil)
	fake.stub("diff --cached --quiet", "", nil)
	fake.stub("ls-files --others --exclude-standard", "newfile.txt\n", nil)
	fake.stub("add -A", "", nil)
	fake.stub("commit -m chore: claude code container changes", "", nil)
	fake.stub("branch --show-current", "claude-wt-1-2\n", nil)
	fake.stub("push origin claude-wt-1-2", "", nil)
	p := newTestProvisioner(t, fake)
	ws := provisionedWorkspace(t, p)

	result, err := p.PostProcess(context.Background(), ws)
	if err != nil {
		t.Fatalf("PostProcess() failed: %v", err)
	}
	if !result.Changed {
		t.Error("untracked files were not detected as changes")
	}
}

func TestPostProcessSetUpstreamFallback(t *testing.T) {
	fake := newFakeRunner()
	fake.stub("diff --quiet", "", errors.New("exit status 1"))
	fake.stub("add -A", "", nil)
	fake.stub("commit -m chore: claude code container changes", "", nil)
	fake.stub("branch --show-current", "claude-wt-1-2\n", nil)
	fake.stub("push origin claude-wt-1-2", "", errors.New("no upstream branch"))
	fake.stub("push --set-upstream origin claude-wt-1-2", "", nil)
	p := newTestProvisioner(t, fake)
	ws := provisionedWorkspace(t, p)

	result, err := p.PostProcess(context.Background(), ws)
	if err != nil {
		t.Fatalf("PostProcess() failed: %v", err)
	}

	if !result.Pushed {
		t.Error("fallback push did not succeed")
	}
	if !result.NewBranch {
		t.Error("fallback push not reported as new branch")
	}
}

func TestPostProcessPushFailureIsNotFatal(t *testing.T) {
	fake := newFakeRunner()
	fake.stub("diff --quiet", "", errors.New("exit status 1"))
	fake.stub("add -A", "", nil)
	fake.stub("commit -m chore: claude code container changes", "", nil)
	fake.stub("branch --show-current", "claude-wt-1-2\n", nil)
	fake.stub("push origin claude-wt-1-2", "", errors.New("network down"))
	fake.stub("push --set-upstream origin claude-wt-1-2", "", errors.New("network down"))
	p := newTestProvisioner(t, fake)
	ws := provisionedWorkspace(t, p)

	result, err := p.PostProcess(context.Background(), ws)
	if err != nil {
		t.Fatalf("PostProcess() failed: %v", err)
	}

	if result.Pushed {
		t.Error("failed push reported as pushed")
	}
	if result.PushErr == nil {
		t.Error("push failure not recorded")
	}
}

func TestPostProcessCommitFailure(t *testing.T) {
	fake := newFakeRunner()
	fake.stub("diff --quiet", "", errors.New("exit status 1"))
	fake.stub("add -A", "", nil)
	fake.stub("commit -m chore: claude code container changes", "", errors.New("empty ident"))
	p := newTestProvisioner(t, fake)
	ws := provisionedWorkspace(t, p)

	if _, err := p.PostProcess(context.Background(), ws); err == nil {
		t.Fatal("PostProcess() swallowed a commit failure")
	}
}
