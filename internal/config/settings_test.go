package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSettings(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create settings dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}
	return path
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.Image != "claude-code-ubuntu" {
		t.Errorf("Image = %q, want claude-code-ubuntu", s.Image)
	}
	if s.Container != "claude-code-dev" {
		t.Errorf("Container = %q, want claude-code-dev", s.Container)
	}
	if s.Hostname != "claude-dev" {
		t.Errorf("Hostname = %q, want claude-dev", s.Hostname)
	}
	if s.Runtime != "auto" {
		t.Errorf("Runtime = %q, want auto", s.Runtime)
	}
	if s.ClaudeCommand != "claude" {
		t.Errorf("ClaudeCommand = %q, want claude", s.ClaudeCommand)
	}
}

func TestLoadWithoutAnyFile(t *testing.T) {
	s, err := Load(LoadOptions{WorkDir: t.TempDir(), ConfigDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if s.Image != DefaultImageName {
		t.Errorf("Image = %q, want default %q", s.Image, DefaultImageName)
	}
}

func TestLoadLocalFilePartialOverride(t *testing.T) {
	workDir := t.TempDir()
	writeSettings(t, workDir, LocalSettingsFile, "image: custom-image\nruntime: docker\n")

	s, err := Load(LoadOptions{WorkDir: workDir, ConfigDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if s.Image != "custom-image" {
		t.Errorf("Image = %q, want custom-image", s.Image)
	}
	if s.Runtime != "docker" {
		t.Errorf("Runtime = %q, want docker", s.Runtime)
	}
	// Unset fields keep defaults.
	if s.Container != DefaultContainerName {
		t.Errorf("Container = %q, want default %q", s.Container, DefaultContainerName)
	}
}

func TestLoadGlobalFile(t *testing.T) {
	configDir := t.TempDir()
	writeSettings(t, configDir, filepath.Join(globalSettingsDir, globalSettingsFile), "hostname: other-host\n")

	s, err := Load(LoadOptions{WorkDir: t.TempDir(), ConfigDir: configDir})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if s.Hostname != "other-host" {
		t.Errorf("Hostname = %q, want other-host", s.Hostname)
	}
}

func TestLoadLocalBeatsGlobal(t *testing.T) {
	workDir := t.TempDir()
	configDir := t.TempDir()
	writeSettings(t, workDir, LocalSettingsFile, "image: local-image\n")
	writeSettings(t, configDir, filepath.Join(globalSettingsDir, globalSettingsFile), "image: global-image\n")

	s, err := Load(LoadOptions{WorkDir: workDir, ConfigDir: configDir})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if s.Image != "local-image" {
		t.Errorf("Image = %q, want local-image", s.Image)
	}
}

func TestLoadExplicitBeatsLocal(t *testing.T) {
	workDir := t.TempDir()
	writeSettings(t, workDir, LocalSettingsFile, "image: local-image\n")
	explicit := writeSettings(t, t.TempDir(), "custom.yaml", "image: explicit-image\n")

	s, err := Load(LoadOptions{ExplicitPath: explicit, WorkDir: workDir})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if s.Image != "explicit-image" {
		t.Errorf("Image = %q, want explicit-image", s.Image)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	_, err := Load(LoadOptions{ExplicitPath: filepath.Join(t.TempDir(), "nope.yaml")})
	if err == nil {
		t.Fatal("Load() succeeded with missing explicit path, want error")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	workDir := t.TempDir()
	writeSettings(t, workDir, LocalSettingsFile, "image: [unclosed\n")

	if _, err := Load(LoadOptions{WorkDir: workDir}); err == nil {
		t.Fatal("Load() succeeded on malformed yaml, want error")
	}
}

func TestValidateRuntime(t *testing.T) {
	tests := []struct {
		runtime string
		wantErr bool
	}{
		{"auto", false},
		{"podman", false},
		{"docker", false},
		{"containerd", true},
		{"", true},
	}

	for _, tt := range tests {
		s := DefaultSettings()
		s.Runtime = tt.runtime
		err := s.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate() with runtime %q: error = %v, wantErr %v", tt.runtime, err, tt.wantErr)
		}
	}
}

func TestValidateEmptyNames(t *testing.T) {
	for _, field := range []string{"image", "container", "hostname", "claude_command"} {
		s := DefaultSettings()
		switch field {
		case "image":
			s.Image = ""
		case "container":
			s.Container = ""
		case "hostname":
			s.Hostname = ""
		case "claude_command":
			s.ClaudeCommand = ""
		}
		if err := s.Validate(); err == nil {
			t.Errorf("Validate() accepted empty %s", field)
		}
	}
}
