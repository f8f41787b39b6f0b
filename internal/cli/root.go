// Package cli implements the cobra-based CLI for gentlegoose.
//
// The root command performs the sync itself; `patterns` is a read-only
// subcommand for inspecting what would be merged. This file defines the
// root command, the flags shared by all commands, and error/exit-code
// handling.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/gentlegoose/internal/config"
	"github.com/shinji-kodama/gentlegoose/internal/logging"
	"github.com/shinji-kodama/gentlegoose/internal/model"
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// globalFlags holds flags inherited by every command.
type globalFlags struct {
	jsonOutput bool   // --json: structured output
	verbose    int    // -v, repeatable: log verbosity
	configPath string // --config: explicit config file
	ignoreFile string // --ignore-file: use this file instead of discovery
}

// syncFlags holds the flags of the root (sync) command.
type syncFlags struct {
	settingsFile   string
	updateExisting bool
	dryRun         bool
}

// NewRootCommand creates and configures the root cobra command.
// Running it without a subcommand syncs the global gitignore into the
// project's Zed settings.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}
	f := &syncFlags{}

	rootCmd := &cobra.Command{
		Use:   "gentlegoose",
		Short: "Sync global gitignore patterns into Zed editor project settings",
		Long: `gentlegoose adds the patterns from your global gitignore to the
file_scan_exclusions list of a Zed project settings file.

Existing settings, including comments-tolerant formatting quirks such as
trailing commas, are read without loss; existing exclusions keep their
order and new patterns are appended after them.

Examples:
  gentlegoose
  gentlegoose --update-existing
  gentlegoose --dry-run --update-existing -v
  gentlegoose --settings-file ~/code/app/.zed/settings.json --update-existing`,

		Args: cobra.NoArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, g, f)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&g.jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().CountVarP(&g.verbose, "verbose", "v", "Increase verbosity (can be used multiple times)")
	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/gentlegoose/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&g.ignoreFile, "ignore-file", "", "Read patterns from this file instead of the global gitignore")

	rootCmd.Flags().StringVar(&f.settingsFile, "settings-file", config.DefaultSettingsFile, "Path to Zed settings.json file")
	rootCmd.Flags().BoolVar(&f.updateExisting, "update-existing", false, "Update existing settings file with new global gitignore patterns")
	rootCmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Show what would be done without making changes")

	rootCmd.AddCommand(NewPatternsCommand(g))

	return rootCmd
}

// resolveOptions layers defaults, the config file and explicitly set
// flags, in that order.
func resolveOptions(cmd *cobra.Command, g *globalFlags, f *syncFlags) (config.Options, error) {
	opts := config.Defaults()

	path, required := g.configPath, g.configPath != ""
	if !required {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			// No home directory means no default config; flags still work.
			path = ""
		}
	}
	if path != "" {
		file, err := config.Load(path, required)
		if err != nil {
			return opts, model.WrapCLIError(model.ExitFailure, "invalid configuration", err)
		}
		file.Apply(&opts)
	}

	flags := cmd.Flags()
	if flags.Changed("ignore-file") {
		opts.IgnoreFile = g.ignoreFile
	}
	if f == nil {
		return opts, nil
	}
	if flags.Changed("settings-file") {
		opts.SettingsFile = f.settingsFile
	}
	if flags.Changed("update-existing") {
		opts.UpdateExisting = f.updateExisting
	}
	if flags.Changed("dry-run") {
		opts.DryRun = f.dryRun
	}
	return opts, nil
}

func newLogger(cmd *cobra.Command, g *globalFlags) *slog.Logger {
	return logging.New(cmd.ErrOrStderr(), g.verbose)
}

// Execute runs the root command and exits the process with the
// appropriate code. SIGINT and SIGTERM cancel the command context.
// This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, rootCmd)
	stop()

	if code != model.ExitSuccess {
		os.Exit(int(code))
	}
}

// Run executes rootCmd with ctx and translates its error into an exit
// code. CLIError types carry their own exit codes; cancellation maps to
// ExitInterrupted and any other error to ExitFailure.
func Run(ctx context.Context, rootCmd *cobra.Command) model.ExitCode {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return model.ExitSuccess
	}

	jsonOutput, _ := rootCmd.PersistentFlags().GetBool("json")
	w := rootCmd.ErrOrStderr()

	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		printError(w, jsonOutput, "operation cancelled by user", nil)
		return model.ExitInterrupted
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(w, jsonOutput, cliErr.Message, cliErr.Err)
		return cliErr.Code
	}

	// Generic error, such as a flag parsing failure.
	printError(w, jsonOutput, err.Error(), nil)
	return model.ExitFailure
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, jsonOutput bool, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}
