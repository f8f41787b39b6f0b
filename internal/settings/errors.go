package settings

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of
// these with errors.Is, and also matches its underlying cause (for example
// an *fs.PathError) when there is one.
var (
	// ErrMalformedDocument means the text is not valid once line comments
	// and trailing commas have been removed.
	ErrMalformedDocument = errors.New("malformed settings document")

	// ErrValidation means a freshly written temporary file did not decode
	// back to the document that was written.
	ErrValidation = errors.New("settings validation failed")

	// ErrIO covers directory creation, temp file creation, write and rename
	// failures.
	ErrIO = errors.New("settings I/O failed")

	// ErrSerialization means a value in the tree has no JSON representation.
	ErrSerialization = errors.New("settings serialization failed")
)

// MalformedError describes where strict decoding of the preprocessed text
// failed. Line and Column are 1-based. Preprocessing never adds or removes
// newlines, so Line always matches the line in the original file.
type MalformedError struct {
	Line   int
	Column int

	// Reason is the decoder's description of the problem.
	Reason string

	// Hint is set when the text uses JSONC syntax outside the supported
	// subset (block comments), so the user can tell why an editor accepts
	// a file this tool rejects.
	Hint string

	Err error
}

func (e *MalformedError) Error() string {
	msg := ErrMalformedDocument.Error()
	if e.Line > 0 {
		msg = fmt.Sprintf("%s at line %d, column %d", msg, e.Line, e.Column)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

// Is makes errors.Is(err, ErrMalformedDocument) true.
func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedDocument
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// FieldError reports a known settings field holding a value of the wrong
// shape.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("settings field %q: %s", e.Field, e.Message)
}

// kindError joins an error kind with its cause so callers can match both.
func kindError(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %w", kind, fmt.Errorf(format, args...))
}
