package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shinji-kodama/gentlegoose/internal/logging"
)

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
)

// Writer persists settings documents so that a concurrent reader of the
// target path sees either the old file or the complete new one, never a
// partial write. No lock is taken: two simultaneous writers race and the
// last rename wins.
type Writer struct {
	Logger *slog.Logger

	// validate checks the bytes read back from the temp file. Tests replace
	// it to exercise the rollback path.
	validate func(written []byte, want *Object) error
}

// NewWriter returns a Writer that logs to logger. A nil logger discards.
func NewWriter(logger *slog.Logger) *Writer {
	return &Writer{Logger: logger}
}

// Write encodes doc and atomically replaces path with it.
//
// The sequence is: encode, create missing parent directories, write a temp
// file next to path, read it back and decode it, then rename it over path.
// Encoding failures return before anything touches the filesystem. Every
// later failure removes the temp file and leaves path as it was.
func (w *Writer) Write(path string, doc *Object) (err error) {
	logger := w.logger()

	data, err := Encode(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return kindError(ErrIO, "create directory %s: %w", dir, err)
	}

	// The temp file must live in the target's directory: rename is only
	// atomic within one filesystem.
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return kindError(ErrIO, "create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	logger.Debug("writing temp settings file", "path", tmpPath)

	defer func() {
		if err == nil {
			return
		}
		_ = tmp.Close()
		if rmErr := os.Remove(tmpPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			logger.Warn("failed to remove temp settings file", "path", tmpPath, "error", rmErr)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return kindError(ErrIO, "write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		return kindError(ErrIO, "sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return kindError(ErrIO, "close %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, targetMode(path)); err != nil {
		return kindError(ErrIO, "chmod %s: %w", tmpPath, err)
	}

	written, err := readBack(tmpPath)
	if err != nil {
		return err
	}
	if err := w.validator()(written, doc); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrValidation, tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return kindError(ErrIO, "rename %s to %s: %w", tmpPath, path, err)
	}
	logger.Debug("settings file replaced", "path", path, "bytes", len(data))
	return nil
}

func (w *Writer) logger() *slog.Logger {
	if w.Logger == nil {
		return logging.Discard()
	}
	return w.Logger
}

func (w *Writer) validator() func([]byte, *Object) error {
	if w.validate == nil {
		return validateRoundTrip
	}
	return w.validate
}

// validateRoundTrip decodes the written bytes and compares them with the
// document that was meant to be written.
func validateRoundTrip(written []byte, want *Object) error {
	got, err := Decode(written)
	if err != nil {
		return err
	}
	if !Equal(got, want) {
		return errors.New("written document differs from the source document")
	}
	return nil
}

func readBack(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, kindError(ErrIO, "read back %s: %w", path, err)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		return nil, fmt.Errorf("%w: %s is truncated", ErrValidation, path)
	}
	return data, nil
}

// targetMode keeps the permission bits of an existing target so a rewrite
// does not change who can read the user's settings.
func targetMode(path string) fs.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return filePerm
	}
	return info.Mode().Perm()
}
