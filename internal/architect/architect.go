// Package architect turns a feature description into technical design
// documents through two Messages API calls: a small model picks a
// filename slug, a large model writes the design.
package architect

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jeanhaley32/claude-container/internal/anthropic"
	"github.com/jeanhaley32/claude-container/internal/terminal"
)

const (
	slugModel       = "claude-3-5-haiku-latest"
	slugMaxTokens   = 50
	slugTemperature = 0.1

	designModel       = "claude-opus-4-20250514"
	designMaxTokens   = 20000
	designTemperature = 0.2
)

// slugInputLimit caps how much of the feature description rides along
// with the slug request.
const slugInputLimit = 500

// progressInterval is how many new response characters arrive between
// streaming progress updates.
const progressInterval = 5000

// MessagesAPI is the slice of the Anthropic client the generator needs.
type MessagesAPI interface {
	Complete(ctx context.Context, request anthropic.Request) (string, error)
	Stream(ctx context.Context, request anthropic.Request, onText func(delta string)) (string, error)
}

// Options carries the resolved command-line inputs.
type Options struct {
	// Features is the feature description, literal text or the path of
	// a markdown file.
	Features string

	// Context is optional technical context, literal text or the path
	// of a markdown file.
	Context string

	// Existing lists markdown files the design should update.
	Existing []string

	// OutputDir overrides DefaultOutputDir when set.
	OutputDir string
}

func (options Options) outputDir() string {
	if options.OutputDir != "" {
		return options.OutputDir
	}
	return DefaultOutputDir
}

// Architect generates design documents from feature descriptions.
type Architect struct {
	api     MessagesAPI
	printer *terminal.Printer
}

func New(api MessagesAPI, printer *terminal.Printer) *Architect {
	return &Architect{api: api, printer: printer}
}

// Run executes the full pipeline: resolve inputs, pick a slug, generate
// the design, split the response into output files.
func (architect *Architect) Run(ctx context.Context, options Options) error {
	features, err := ResolveInput(options.Features, "features")
	if err != nil {
		return err
	}

	contextText := ""
	if options.Context != "" {
		if contextText, err = ResolveInput(options.Context, "context"); err != nil {
			return err
		}
	}

	existingContent, err := CombineExisting(options.Existing)
	if err != nil {
		return err
	}

	architect.printer.Infof("Generating system slug...")
	slug, err := architect.generateSlug(ctx, features)
	if err != nil {
		return err
	}
	architect.printer.Infof("Slug: %s", slug)

	architect.printer.Statusf("Generating technical design (streaming)...")
	response, err := architect.generateDesign(ctx, features, contextText, existingContent)
	if err != nil {
		return err
	}

	sections := ExtractSections(response)
	if sections.Planning == "" {
		architect.printer.Warnf("no architecture planning section in response")
	}
	if sections.Design == "" {
		architect.printer.Warnf("no technical design document section in response")
	}

	written, err := WriteOutputs(options.outputDir(), slug, sections, options.Existing)
	if err != nil {
		return err
	}

	architect.printer.Statusf("Generated files:")
	for _, path := range written {
		architect.printer.Infof("  %s", path)
	}
	return nil
}

func (architect *Architect) generateSlug(ctx context.Context, features string) (string, error) {
	response, err := architect.api.Complete(ctx, anthropic.Request{
		Model:       slugModel,
		MaxTokens:   slugMaxTokens,
		Temperature: slugTemperature,
		Messages: []anthropic.Message{{
			Role:    "user",
			Content: fmt.Sprintf(slugPrompt, truncate(features, slugInputLimit)),
		}},
	})
	if err != nil {
		return "", fmt.Errorf("generating slug: %w", err)
	}

	slug := sanitizeSlug(response)
	if slug == "" {
		return "", fmt.Errorf("slug response unusable: %q", response)
	}
	return slug, nil
}

func (architect *Architect) generateDesign(ctx context.Context, features, contextText, existingContent string) (string, error) {
	received := 0
	nextReport := progressInterval

	response, err := architect.api.Stream(ctx, anthropic.Request{
		Model:       designModel,
		MaxTokens:   designMaxTokens,
		Temperature: designTemperature,
		System:      designSystemPrompt,
		Messages: []anthropic.Message{{
			Role:    "user",
			Content: fmt.Sprintf(designPrompt, features, contextText, existingContent),
		}},
	}, func(delta string) {
		received += len(delta)
		if received >= nextReport {
			architect.printer.Dimf("  received %d characters", received)
			for nextReport <= received {
				nextReport += progressInterval
			}
		}
	})
	if err != nil {
		return "", fmt.Errorf("generating technical design: %w", err)
	}
	architect.printer.Dimf("  streaming complete, %d characters", received)
	return response, nil
}

var (
	slugDropPattern      = regexp.MustCompile(`[^\w\s-]`)
	slugSeparatorPattern = regexp.MustCompile(`[-\s]+`)
)

// sanitizeSlug normalizes a model-chosen slug into a filename-safe
// underscore_separated token.
func sanitizeSlug(raw string) string {
	slug := strings.TrimSpace(raw)
	slug = slugDropPattern.ReplaceAllString(slug, "")
	slug = slugSeparatorPattern.ReplaceAllString(slug, "_")
	return strings.ToLower(slug)
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
