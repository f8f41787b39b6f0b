package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/gentlegoose/internal/gitignore"
	"github.com/shinji-kodama/gentlegoose/internal/model"
	"github.com/shinji-kodama/gentlegoose/internal/syncer"
)

// NewPatternsCommand creates the "patterns" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewPatternsCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "Show the exclusion patterns derived from the global gitignore",
		Long: `Show where the global gitignore was found and the Zed exclusion
patterns it translates to. Nothing is written.

Examples:
  gentlegoose patterns
  gentlegoose patterns --ignore-file ~/.config/git/ignore
  gentlegoose patterns --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatterns(cmd, g)
		},
	}
}

func runPatterns(cmd *cobra.Command, g *globalFlags) error {
	opts, err := resolveOptions(cmd, g, nil)
	if err != nil {
		return err
	}

	s := syncer.New(newLogger(cmd, g))
	source, patterns, err := s.CollectPatterns(cmd.Context(), opts)
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "failed to collect patterns", err)
	}

	printPatterns(cmd.OutOrStdout(), source, patterns, g.jsonOutput)
	return nil
}

// patternsJSON is the JSON output structure of the patterns command.
type patternsJSON struct {
	Source   *gitignore.Source `json:"source"`
	Patterns []string          `json:"patterns"`
}

func printPatterns(w io.Writer, source gitignore.Source, patterns []string, jsonOutput bool) {
	if jsonOutput {
		out := patternsJSON{Patterns: patterns}
		if source.Path != "" {
			out.Source = &source
		}
		// Use an empty slice so JSON shows [] instead of null.
		if out.Patterns == nil {
			out.Patterns = []string{}
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if source.Path == "" {
		fmt.Fprintln(w, "No global gitignore file found.")
	} else {
		fmt.Fprintf(w, "Source: %s (%s)\n", source.Path, source.Strategy)
	}
	for _, p := range patterns {
		fmt.Fprintln(w, p)
	}
}
