package container

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrNoRuntime is returned when no container runtime is found.
var ErrNoRuntime = errors.New("no container runtime found (need podman or docker)")

// DetectRuntime finds an available container runtime. Podman is preferred,
// docker is the fallback. A binary only counts if `<runtime> version`
// actually works.
func DetectRuntime() (string, error) {
	for _, bin := range []string{"podman", "docker"} {
		if _, err := exec.LookPath(bin); err != nil {
			continue
		}
		cmd := exec.Command(bin, "version")
		if err := cmd.Run(); err != nil {
			continue
		}
		return bin, nil
	}
	return "", ErrNoRuntime
}

// ResolveRuntime applies a pinned runtime or falls back to detection.
func ResolveRuntime(pinned string) (string, error) {
	switch pinned {
	case "", "auto":
		return DetectRuntime()
	default:
		if _, err := exec.LookPath(pinned); err != nil {
			return "", fmt.Errorf("%w: %q not in PATH", ErrNoRuntime, pinned)
		}
		return pinned, nil
	}
}
