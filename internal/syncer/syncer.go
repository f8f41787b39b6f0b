package syncer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/shinji-kodama/gentlegoose/internal/config"
	"github.com/shinji-kodama/gentlegoose/internal/exclusion"
	"github.com/shinji-kodama/gentlegoose/internal/gitignore"
	"github.com/shinji-kodama/gentlegoose/internal/logging"
	"github.com/shinji-kodama/gentlegoose/internal/model"
	"github.com/shinji-kodama/gentlegoose/internal/settings"
)

// Locator finds the global gitignore file.
type Locator interface {
	Locate(ctx context.Context) (gitignore.Source, error)
}

// DocumentWriter persists a settings document.
type DocumentWriter interface {
	Write(path string, doc *settings.Object) error
}

// Result describes the outcome of a sync run.
type Result struct {
	// Path is the absolute settings file path.
	Path string `json:"path"`

	// Source is the gitignore file the patterns came from, if any.
	Source string `json:"source,omitempty"`

	Action model.SyncAction `json:"action"`

	// Existing is the exclusion list found in the settings file.
	Existing []string `json:"existing"`

	// Added lists the patterns appended (or, in a dry run, that would be).
	Added []string `json:"added"`
}

// Syncer merges global gitignore patterns into Zed settings files.
type Syncer struct {
	Locator Locator
	Writer  DocumentWriter
	Env     gitignore.Env
	Logger  *slog.Logger
}

// New returns a Syncer that discovers the global gitignore from the real
// environment and writes through an atomic settings.Writer.
func New(logger *slog.Logger) *Syncer {
	env := gitignore.OSEnv()
	return &Syncer{
		Locator: gitignore.NewLocator(env, logger),
		Writer:  settings.NewWriter(logger),
		Env:     env,
		Logger:  logger,
	}
}

func (s *Syncer) logger() *slog.Logger {
	if s.Logger == nil {
		return logging.Discard()
	}
	return s.Logger
}

// Sync performs one sync run with opts.
func (s *Syncer) Sync(ctx context.Context, opts config.Options) (*Result, error) {
	logger := s.logger()

	// Step 1: Resolve and check the settings path.
	path, err := s.resolve(opts.SettingsFile)
	if err != nil {
		return nil, err
	}
	exists, err := checkSettingsPath(path)
	if err != nil {
		return nil, err
	}
	result := &Result{Path: path, Existing: []string{}, Added: []string{}}

	// Step 2: Leave an existing file alone unless asked to update it.
	if exists && !opts.UpdateExisting {
		logger.Info("settings file exists; use --update-existing to add new global patterns", "path", path)
		result.Action = model.ActionSkippedExisting
		return result, nil
	}

	// Step 3: Collect candidate patterns.
	source, candidates, err := s.CollectPatterns(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Source = source.Path
	if len(candidates) == 0 {
		logger.Info("no global gitignore patterns found")
		result.Action = model.ActionNoPatterns
		return result, nil
	}

	// Step 4: Read the current document. A malformed file is an error;
	// treating it as empty would throw away the user's settings.
	doc, _, err := settings.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	existing, err := settings.Exclusions(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	result.Existing = existing

	// Step 5: Merge.
	additions := exclusion.Merge(existing, candidates)
	for _, p := range candidates {
		logger.Debug("candidate pattern", "pattern", p, "new", slices.Contains(additions, p))
	}
	result.Added = additions
	if len(additions) == 0 {
		logger.Info("all global gitignore patterns already present in Zed settings", "path", path)
		result.Action = model.ActionUpToDate
		return result, nil
	}

	// Step 6: Report or write.
	if opts.DryRun {
		logger.Info("dry run: settings not written", "path", path, "would_add", len(additions))
		result.Action = model.ActionDryRun
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	settings.SetExclusions(doc, exclusion.Append(existing, additions))
	if err := s.Writer.Write(path, doc); err != nil {
		return nil, fmt.Errorf("failed to write settings file %s: %w", path, err)
	}

	logger.Info("updated Zed settings", "path", path, "added", len(additions))
	for _, p := range additions {
		logger.Debug("added pattern", "pattern", p)
	}
	result.Action = model.ActionUpdated
	return result, nil
}

// CollectPatterns returns the candidate exclusion globs: the global
// gitignore (or opts.IgnoreFile) followed by opts.ExtraPatterns. Finding no
// global gitignore is not an error; the returned Source is then empty.
func (s *Syncer) CollectPatterns(ctx context.Context, opts config.Options) (gitignore.Source, []string, error) {
	source, err := s.findSource(ctx, opts.IgnoreFile)
	if err != nil {
		return gitignore.Source{}, nil, err
	}

	var lines []string
	if source.Path != "" {
		lines, err = gitignore.ReadLines(source.Path)
		if err != nil {
			return gitignore.Source{}, nil, fmt.Errorf("failed to read global gitignore: %w", err)
		}
	}

	patterns := exclusion.FromIgnoreLines(lines)
	patterns = append(patterns, exclusion.FromIgnoreLines(opts.ExtraPatterns)...)
	return source, patterns, nil
}

func (s *Syncer) findSource(ctx context.Context, ignoreFile string) (gitignore.Source, error) {
	if ignoreFile != "" {
		path, err := s.resolve(ignoreFile)
		if err != nil {
			return gitignore.Source{}, err
		}
		s.logger().Info("using ignore file from options", "path", path)
		return gitignore.Source{Path: path, Strategy: "option"}, nil
	}

	source, err := s.Locator.Locate(ctx)
	if errors.Is(err, gitignore.ErrNoSource) {
		return gitignore.Source{}, nil
	}
	return source, err
}

// resolve expands ~ and makes path absolute.
func (s *Syncer) resolve(path string) (string, error) {
	env := s.Env
	if env == nil {
		env = gitignore.OSEnv()
	}
	expanded, err := gitignore.ExpandTilde(env, path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	return abs, nil
}

// checkSettingsPath reports whether the settings file exists, and rejects
// paths that can never be written: a parent that is not a directory, or a
// settings path that is not a regular file.
func checkSettingsPath(path string) (bool, error) {
	parent := filepath.Dir(path)
	if info, err := os.Stat(parent); err == nil && !info.IsDir() {
		return false, fmt.Errorf("settings parent path is not a directory: %s", parent)
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("failed to inspect settings file: %w", err)
	case !info.Mode().IsRegular():
		return false, fmt.Errorf("settings path exists but is not a file: %s", path)
	}
	return true, nil
}
