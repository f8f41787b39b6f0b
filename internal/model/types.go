package model

import (
	"fmt"
)

// SyncAction describes what a sync run did to the settings file.
type SyncAction string

const (
	// ActionUpdated means new exclusion patterns were written.
	ActionUpdated SyncAction = "updated"

	// ActionDryRun means patterns would have been written but --dry-run
	// was set.
	ActionDryRun SyncAction = "dry-run"

	// ActionUpToDate means every global pattern is already excluded.
	ActionUpToDate SyncAction = "up-to-date"

	// ActionNoPatterns means no global gitignore patterns were found.
	ActionNoPatterns SyncAction = "no-patterns"

	// ActionSkippedExisting means the settings file exists and updating
	// existing files was not requested.
	ActionSkippedExisting SyncAction = "skipped-existing"
)

// String returns the string representation of SyncAction.
func (a SyncAction) String() string {
	return string(a)
}

// Changed reports whether the action wrote to the settings file.
func (a SyncAction) Changed() bool {
	return a == ActionUpdated
}

// ExitCode defines the process exit codes of the CLI.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitFailure indicates the sync could not be completed.
	ExitFailure ExitCode = 1

	// ExitInterrupted indicates the run was cancelled by SIGINT or SIGTERM,
	// following the shell convention of 128 + signal number.
	ExitInterrupted ExitCode = 130
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
