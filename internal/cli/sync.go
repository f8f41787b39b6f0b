package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/gentlegoose/internal/model"
	"github.com/shinji-kodama/gentlegoose/internal/syncer"
)

// maxExistingToShow caps the existing patterns listed in a dry run.
const maxExistingToShow = 5

var (
	addedColor = color.New(color.FgGreen)
	keptColor  = color.New(color.Faint)
)

// runSync is the main logic of the root command.
func runSync(cmd *cobra.Command, g *globalFlags, f *syncFlags) error {
	opts, err := resolveOptions(cmd, g, f)
	if err != nil {
		return err
	}

	s := syncer.New(newLogger(cmd, g))
	result, err := s.Sync(cmd.Context(), opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return model.WrapCLIError(model.ExitFailure, "sync failed", err)
	}

	printSyncResult(cmd.OutOrStdout(), result, g.jsonOutput)
	return nil
}

// printSyncResult outputs the result in text or JSON format.
func printSyncResult(w io.Writer, result *syncer.Result, jsonOutput bool) {
	if jsonOutput {
		printSyncResultJSON(w, result)
	} else {
		printSyncResultText(w, result)
	}
}

// syncResultJSON adds fields derived from the action to the result.
type syncResultJSON struct {
	*syncer.Result
	Changed bool `json:"changed"`
}

func printSyncResultJSON(w io.Writer, result *syncer.Result) {
	out := syncResultJSON{Result: result, Changed: result.Action.Changed()}
	data, _ := json.MarshalIndent(out, "", "  ")
	fmt.Fprintln(w, string(data))
}

// printSyncResultText prints a one-line summary. Dry runs also print the
// resulting exclusion list:
//
//	= **/.git
//	+ **/.env
func printSyncResultText(w io.Writer, result *syncer.Result) {
	switch result.Action {
	case model.ActionUpdated:
		fmt.Fprintf(w, "Added %s to %s\n", plural(len(result.Added), "pattern"), result.Path)
	case model.ActionUpToDate:
		fmt.Fprintf(w, "All global gitignore patterns already present in %s\n", result.Path)
	case model.ActionNoPatterns:
		fmt.Fprintln(w, "No global gitignore patterns found.")
	case model.ActionSkippedExisting:
		fmt.Fprintf(w, "Settings file already exists: %s\nUse --update-existing to add new global gitignore patterns.\n", result.Path)
	case model.ActionDryRun:
		fmt.Fprintf(w, "Dry run: would add %s to %s\n", plural(len(result.Added), "pattern"), result.Path)
		printDryRunList(w, result)
	}
}

func printDryRunList(w io.Writer, result *syncer.Result) {
	shown := result.Existing
	if len(shown) > maxExistingToShow {
		shown = shown[:maxExistingToShow]
	}
	for _, p := range shown {
		keptColor.Fprintf(w, "  = %s\n", p)
	}
	if hidden := len(result.Existing) - len(shown); hidden > 0 {
		keptColor.Fprintf(w, "  ... and %d more\n", hidden)
	}
	for _, p := range result.Added {
		addedColor.Fprintf(w, "  + %s\n", p)
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
