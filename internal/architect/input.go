package architect

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveInput returns the contents of value when it names an existing
// markdown file, and value itself otherwise. kind names the input in
// error messages.
func ResolveInput(value, kind string) (string, error) {
	if !strings.HasSuffix(value, ".md") {
		return value, nil
	}
	content, err := os.ReadFile(value)
	if err != nil {
		// A .md-looking value that is not a readable file is treated
		// as literal text, matching how a quoted description that
		// happens to end in ".md" should behave.
		if os.IsNotExist(err) {
			return value, nil
		}
		return "", fmt.Errorf("reading %s file %q: %w", kind, value, err)
	}
	return string(content), nil
}

// CombineExisting reads each markdown file and concatenates them under
// per-file headers so the model can attribute content to its source.
func CombineExisting(paths []string) (string, error) {
	if len(paths) == 0 {
		return "", nil
	}

	var sections []string
	for _, path := range paths {
		if !strings.HasSuffix(path, ".md") {
			return "", fmt.Errorf("existing file must be markdown: %s", path)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading existing file %q: %w", path, err)
		}
		sections = append(sections, fmt.Sprintf("## %s\n%s", filepath.Base(path), content))
	}
	return strings.Join(sections, "\n\n"), nil
}
