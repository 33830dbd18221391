package architect

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultOutputDir is where generated documents land.
const DefaultOutputDir = "specs"

// Sections are the tagged blocks extracted from a design response.
// A block the model failed to emit is empty.
type Sections struct {
	Planning string
	Design   string
	Updated  string
}

var (
	planningPattern = regexp.MustCompile(`(?s)<architecture_planning>(.*?)</architecture_planning>`)
	designPattern   = regexp.MustCompile(`(?s)<technical_design_document>(.*?)</technical_design_document>`)
	updatedPattern  = regexp.MustCompile(`(?s)<updated_markdown>(.*?)</updated_markdown>`)
)

// ExtractSections pulls the tagged output blocks from a raw response.
func ExtractSections(response string) Sections {
	return Sections{
		Planning: extractBlock(planningPattern, response),
		Design:   extractBlock(designPattern, response),
		Updated:  extractBlock(updatedPattern, response),
	}
}

func extractBlock(pattern *regexp.Regexp, response string) string {
	match := pattern.FindStringSubmatch(response)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// WriteOutputs writes the extracted sections under dir and returns the
// paths written. Empty sections are skipped. Updated markdown is written
// once per existing input file, named after its basename.
func WriteOutputs(dir, slug string, sections Sections, existing []string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var written []string
	write := func(name, content string) error {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		written = append(written, path)
		return nil
	}

	if sections.Planning != "" {
		if err := write(slug+"_architecture_planning.md", sections.Planning); err != nil {
			return written, err
		}
	}
	if sections.Design != "" {
		if err := write(slug+"_technical_design.md", sections.Design); err != nil {
			return written, err
		}
	}
	if sections.Updated != "" {
		for _, path := range existing {
			if err := write("updated_"+filepath.Base(path), sections.Updated); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}
