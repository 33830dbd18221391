// Package identity resolves the host user identity that parameterizes
// container builds and runs.
package identity

import (
	"fmt"
	"os"
	"os/user"
)

// Identity holds the host-side user identity for a run. It is read once at
// startup and immutable afterward: the values are baked into image build
// arguments and cannot be patched later.
type Identity struct {
	UID      int
	GID      int
	Username string
}

// User returns the identity in uid:gid form for container --user flags.
func (id Identity) User() string {
	return fmt.Sprintf("%d:%d", id.UID, id.GID)
}

// Resolve reads the numeric user/group ids and the username from the
// execution environment. There is deliberately no fallback: an identity
// that cannot be determined aborts the run before any side effect.
func Resolve() (Identity, error) {
	uid := os.Getuid()
	gid := os.Getgid()
	if uid < 0 || gid < 0 {
		return Identity{}, fmt.Errorf("numeric uid/gid not available on this platform")
	}

	username, err := lookupUsername()
	if err != nil {
		return Identity{}, err
	}

	return Identity{UID: uid, GID: gid, Username: username}, nil
}

// lookupUsername consults the OS user database first and $USER second.
func lookupUsername() (string, error) {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username, nil
	}
	if name := os.Getenv("USER"); name != "" {
		return name, nil
	}
	return "", fmt.Errorf("cannot determine username: user database lookup failed and USER is unset")
}
