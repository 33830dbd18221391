package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeanhaley32/claude-container/internal/anthropic"
	"github.com/jeanhaley32/claude-container/internal/architect"
	"github.com/jeanhaley32/claude-container/internal/terminal"
)

var version = "0.3.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		features     string
		contextInput string
		existing     []string
		apiKey       string
	)

	cmd := &cobra.Command{
		Use:     "architect",
		Short:   "Generate technical design documents from feature descriptions",
		Version: version,
		Example: `  architect -f "user authentication dashboard design"
  architect -f features.md -c context.md
  architect -f features.md -c context.md -e api.md -e storage.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			key, err := resolveAPIKey(apiKey)
			if err != nil {
				return err
			}

			printer := terminal.NewPrinter()
			generator := architect.New(anthropic.NewClient(key), printer)
			return generator.Run(context.Background(), architect.Options{
				Features: features,
				Context:  contextInput,
				Existing: existing,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&features, "features", "f", "", "Feature descriptions (text or path to a .md file)")
	flags.StringVarP(&contextInput, "context", "c", "", "Technical context (text or path to a .md file)")
	flags.StringSliceVarP(&existing, "existing", "e", nil, "Existing markdown file to update (repeatable)")
	flags.StringVarP(&apiKey, "api-key", "k", "", "Anthropic API key (overrides ANTHROPIC_API_KEY)")
	cmd.MarkFlagRequired("features")

	return cmd
}

func resolveAPIKey(flagKey string) (string, error) {
	if flagKey != "" {
		return flagKey, nil
	}
	if envKey := os.Getenv("ANTHROPIC_API_KEY"); envKey != "" {
		return envKey, nil
	}
	return "", fmt.Errorf("no API key provided: use --api-key or set ANTHROPIC_API_KEY")
}
