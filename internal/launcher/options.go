package launcher

import "fmt"

// permissionModes are the assistant's accepted --permission-mode values.
var permissionModes = map[string]bool{
	"default":           true,
	"acceptEdits":       true,
	"plan":              true,
	"bypassPermissions": true,
}

// Options are the launcher's parsed command-line selections.
type Options struct {
	// Message switches to one-shot mode: run the assistant with this
	// message, then exit.
	Message string

	// NoCache forces an image rebuild.
	NoCache bool

	// PermissionMode overrides the assistant's default permission
	// handling in one-shot mode. Without a message it has no effect.
	PermissionMode string

	// WorktreeBranch is the reference the worktree is created from.
	WorktreeBranch string

	// KeepWorktree suppresses worktree cleanup after the session.
	KeepWorktree bool

	// NoWorktree mounts the invocation directory directly.
	NoWorktree bool

	// WorktreePath reuses an existing worktree; no cleanup.
	WorktreePath string
}

// Validate rejects values the run cannot honor. The permission mode is
// checked even when no message is set.
func (o Options) Validate() error {
	if o.PermissionMode != "" && !permissionModes[o.PermissionMode] {
		return fmt.Errorf("invalid permission mode %q (want default, acceptEdits, plan, or bypassPermissions)", o.PermissionMode)
	}
	return nil
}
