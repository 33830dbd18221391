// Package staging manages the per-run build context: a temporary directory
// holding the extracted build definition plus copies of the host's
// credential and configuration files. The artifacts exist only between
// stage time and build completion; Release removes them on every exit path.
package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// In-context names the build definition copies from.
const (
	credentialsFile = ".credentials.json"
	configFile      = ".claude.json"
	dockerfileName  = "Dockerfile"
)

// Host-side locations, relative to the home directory.
const (
	hostCredentialsPath = ".claude/.credentials.json"
	hostConfigPath      = ".claude.json"
)

// Stager stages credential material and merged configuration into a
// fresh build context directory. Home directory and username are injected
// so staging is testable against a fixture filesystem.
type Stager struct {
	HomeDir  string
	Username string

	// Dockerfile and Template are the embedded assets written into the
	// context.
	Dockerfile []byte
	Template   []byte

	// DefinitionTime, when set, stamps the staged build definition's
	// modification time. The launcher passes its own executable's mtime
	// so "definition newer than image" survives embedding.
	DefinitionTime time.Time

	// StageRoot overrides the parent of the staging directory. Empty
	// means the system temp directory.
	StageRoot string
}

// Staged is the handle for one run's staged build context.
type Staged struct {
	// Dir is the staging directory, used directly as the build context.
	Dir string

	// DockerfilePath locates the extracted build definition inside Dir.
	DockerfilePath string
}

// Stage creates the build context and populates it with the build
// definition, the copied credential file, and the merged configuration.
// On any error nothing is left behind.
func (s *Stager) Stage() (*Staged, error) {
	dir, err := os.MkdirTemp(s.StageRoot, "claude-container-build-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	staged, err := s.populate(dir)
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}
	return staged, nil
}

func (s *Stager) populate(dir string) (*Staged, error) {
	credSrc := filepath.Join(s.HomeDir, hostCredentialsPath)
	credentials, err := os.ReadFile(credSrc)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingCredentials, credSrc)
		}
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, credentialsFile), credentials, 0600); err != nil {
		return nil, fmt.Errorf("failed to stage credentials: %w", err)
	}

	cfgSrc := filepath.Join(s.HomeDir, hostConfigPath)
	hostConfig, err := os.ReadFile(cfgSrc)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingHostConfig, cfgSrc)
		}
		return nil, fmt.Errorf("failed to read host configuration: %w", err)
	}
	merged, err := MergeConfig(s.Template, hostConfig, s.Username)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dir, configFile), merged, 0600); err != nil {
		return nil, fmt.Errorf("failed to stage configuration: %w", err)
	}

	dockerfilePath := filepath.Join(dir, dockerfileName)
	if err := os.WriteFile(dockerfilePath, s.Dockerfile, 0644); err != nil {
		return nil, fmt.Errorf("failed to write build definition: %w", err)
	}
	if !s.DefinitionTime.IsZero() {
		if err := os.Chtimes(dockerfilePath, s.DefinitionTime, s.DefinitionTime); err != nil {
			return nil, fmt.Errorf("failed to stamp build definition: %w", err)
		}
	}

	return &Staged{Dir: dir, DockerfilePath: dockerfilePath}, nil
}

// Release removes the staging directory and everything in it. Safe to call
// more than once and on a nil handle, so callers can register it
// unconditionally on every exit path.
func (st *Staged) Release() error {
	if st == nil || st.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(st.Dir); err != nil {
		return fmt.Errorf("failed to remove staging directory: %w", err)
	}
	st.Dir = ""
	return nil
}
