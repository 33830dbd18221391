package worktree

import (
	"errors"
	"fmt"
)

// ErrNotAVersionControlledTree means worktree mode was requested outside a
// git repository. Fatal: there is nothing to check out.
var ErrNotAVersionControlledTree = errors.New("not inside a version-controlled tree")

// CreationError reports a failed worktree materialization. Callers treat it
// as non-fatal and fall back to mounting the invocation directory.
type CreationError struct {
	Ref string
	Err error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("failed to create worktree from %s: %v", e.Ref, e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}
