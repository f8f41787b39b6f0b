package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSyncAction_String verifies the values that appear in --json output.
func TestSyncAction_String(t *testing.T) {
	tests := []struct {
		action   SyncAction
		expected string
	}{
		{ActionUpdated, "updated"},
		{ActionDryRun, "dry-run"},
		{ActionUpToDate, "up-to-date"},
		{ActionNoPatterns, "no-patterns"},
		{ActionSkippedExisting, "skipped-existing"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.action.String())
		})
	}
}

func TestSyncAction_Changed(t *testing.T) {
	assert.True(t, ActionUpdated.Changed())
	assert.False(t, ActionDryRun.Changed())
	assert.False(t, ActionUpToDate.Changed())
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitFailure, "settings file is a directory")
		assert.Equal(t, ExitFailure, err.Code)
		assert.Equal(t, "settings file is a directory", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("permission denied")
		err := WrapCLIError(ExitFailure, "failed to write settings", inner)
		assert.Equal(t, ExitFailure, err.Code)
		assert.Equal(t, "failed to write settings: permission denied", err.Error())
		assert.Equal(t, inner, err.Unwrap())
	})

	// Verify errors.Is works with unwrapped errors (Go 1.13+ error chain).
	t.Run("errors.Is chain", func(t *testing.T) {
		inner := errors.New("permission denied")
		err := WrapCLIError(ExitInterrupted, "interrupted", inner)
		assert.True(t, errors.Is(err, inner))
	})
}
