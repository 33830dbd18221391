package architect

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveInputLiteral(t *testing.T) {
	t.Parallel()

	got, err := ResolveInput("user authentication with sessions", "features")
	if err != nil {
		t.Fatalf("ResolveInput: %v", err)
	}
	if got != "user authentication with sessions" {
		t.Errorf("got %q, want literal value", got)
	}
}

func TestResolveInputReadsMarkdownFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "features.md")
	if err := os.WriteFile(path, []byte("# Features\n- login\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ResolveInput(path, "features")
	if err != nil {
		t.Fatalf("ResolveInput: %v", err)
	}
	if got != "# Features\n- login\n" {
		t.Errorf("got %q, want file contents", got)
	}
}

func TestResolveInputMissingMarkdownFileIsLiteral(t *testing.T) {
	t.Parallel()

	got, err := ResolveInput("no-such-file.md", "features")
	if err != nil {
		t.Fatalf("ResolveInput: %v", err)
	}
	if got != "no-such-file.md" {
		t.Errorf("got %q, want the raw value", got)
	}
}

func TestCombineExistingEmpty(t *testing.T) {
	t.Parallel()

	got, err := CombineExisting(nil)
	if err != nil {
		t.Fatalf("CombineExisting: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestCombineExistingJoinsWithHeaders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "api.md")
	second := filepath.Join(dir, "storage.md")
	if err := os.WriteFile(first, []byte("endpoints"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("tables"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := CombineExisting([]string{first, second})
	if err != nil {
		t.Fatalf("CombineExisting: %v", err)
	}
	want := "## api.md\nendpoints\n\n## storage.md\ntables"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCombineExistingRejectsNonMarkdown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("text"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := CombineExisting([]string{path})
	if err == nil || !strings.Contains(err.Error(), "must be markdown") {
		t.Errorf("err = %v, want markdown rejection", err)
	}
}

func TestCombineExistingMissingFile(t *testing.T) {
	t.Parallel()

	_, err := CombineExisting([]string{filepath.Join(t.TempDir(), "gone.md")})
	if err == nil {
		t.Error("expected error for missing file")
	}
}
