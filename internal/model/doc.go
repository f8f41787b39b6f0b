// Package model defines the small set of values shared between the sync
// engine and the CLI: the outcome of a sync run (SyncAction), exit codes
// (ExitCode) and an error type carrying an exit code (CLIError).
//
// The package has no dependencies on the rest of the module.
package model
