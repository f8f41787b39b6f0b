package gitignore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/shinji-kodama/gentlegoose/internal/logging"
)

// ErrNoSource means no strategy produced an existing global gitignore file.
var ErrNoSource = errors.New("no global gitignore file found")

// Source is a located global gitignore file.
type Source struct {
	Path     string `json:"path"`
	Strategy string `json:"strategy"`
}

// Locator tries each strategy in order and returns the first proposed path
// that is an existing regular file.
type Locator struct {
	Strategies []Strategy
	Logger     *slog.Logger
}

// NewLocator returns a Locator using DefaultStrategies over env.
func NewLocator(env Env, logger *slog.Logger) *Locator {
	return &Locator{Strategies: DefaultStrategies(env), Logger: logger}
}

// Locate runs the strategies. It returns ErrNoSource when none of them
// leads to a file; strategy errors are logged and never returned.
func (l *Locator) Locate(ctx context.Context) (Source, error) {
	logger := l.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	var checked []string
	for _, s := range l.Strategies {
		if err := ctx.Err(); err != nil {
			return Source{}, err
		}

		path, err := s.Path(ctx)
		switch {
		case err != nil:
			logger.Debug("global gitignore strategy unavailable", "strategy", s.Name(), "error", err)
			checked = append(checked, fmt.Sprintf("%s: unavailable", s.Name()))
			continue
		case path == "":
			logger.Debug("global gitignore strategy found no path", "strategy", s.Name())
			checked = append(checked, fmt.Sprintf("%s: not configured", s.Name()))
			continue
		}

		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			logger.Debug("global gitignore candidate does not exist", "strategy", s.Name(), "path", path)
			checked = append(checked, fmt.Sprintf("%s: %s (not found)", s.Name(), path))
			continue
		}

		logger.Info("using global gitignore", "strategy", s.Name(), "path", path)
		return Source{Path: path, Strategy: s.Name()}, nil
	}

	for _, c := range checked {
		logger.Info("checked global gitignore location", "result", c)
	}
	return Source{}, fmt.Errorf("%w (checked %s)", ErrNoSource, strings.Join(checked, "; "))
}

// ReadLines returns the lines of a gitignore file without line terminators.
// The file must be valid UTF-8.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("reading %s: file is not valid UTF-8", path)
	}

	text := strings.TrimSuffix(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if text == "" {
		return []string{}, nil
	}
	return strings.Split(text, "\n"), nil
}
