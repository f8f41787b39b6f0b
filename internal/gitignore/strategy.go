package gitignore

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Strategy proposes a location for the global gitignore file. Path returns
// "" when the strategy has nothing to propose, and an error when it could
// not run at all. Neither stops the Locator from trying the next one.
type Strategy interface {
	Name() string
	Path(ctx context.Context) (string, error)
}

// DefaultStrategies returns the lookup order git itself uses: the
// configured core.excludesFile, then the XDG default.
func DefaultStrategies(env Env) []Strategy {
	return []Strategy{
		&GitCommand{Env: env},
		&GitConfigFile{Env: env},
		&XDGDefault{Env: env},
	}
}

// GitCommand asks the git binary for core.excludesFile.
type GitCommand struct {
	Env Env

	// Binary is the git executable; "git" (resolved on PATH) when empty.
	Binary string
}

func (g *GitCommand) Name() string { return "git config" }

func (g *GitCommand) Path(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "config", "--global", "core.excludesfile")
	if err != nil {
		// git exits 1 when the key is simply not set.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}

	path := strings.TrimSpace(out)
	if path == "" {
		return "", nil
	}
	return ExpandTilde(g.Env, path)
}

// run executes git with args and returns stdout. Failures include git's
// stderr so the debug log says why git refused.
func (g *GitCommand) run(ctx context.Context, args ...string) (string, error) {
	binary := g.Binary
	if binary == "" {
		binary = "git"
	}

	// #nosec G204 -- args are constructed internally, not from user input
	cmd := exec.CommandContext(ctx, binary, args...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if stderrStr := strings.TrimSpace(stderr.String()); stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return "", fmt.Errorf("%s: %w", message, err)
	}
	return stdout.String(), nil
}

// GitConfigFile reads core.excludesFile straight from git's global config
// files, for machines where the git binary is missing.
type GitConfigFile struct {
	Env Env
}

func (g *GitConfigFile) Name() string { return "git config file" }

func (g *GitConfigFile) Path(ctx context.Context) (string, error) {
	files, err := g.files()
	if err != nil {
		return "", err
	}

	var found string
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		value, ok, err := scanConfigFile(file, "core", "excludesfile")
		if err != nil {
			return "", err
		}
		// Git reads these files in order and the last value wins.
		if ok {
			found = value
		}
	}

	if found == "" {
		return "", nil
	}
	return ExpandTilde(g.Env, found)
}

// files lists global config files in the order git reads them.
// GIT_CONFIG_GLOBAL replaces both defaults.
func (g *GitConfigFile) files() ([]string, error) {
	if explicit := g.Env.Getenv("GIT_CONFIG_GLOBAL"); explicit != "" {
		return []string{explicit}, nil
	}

	xdg, err := xdgConfigHome(g.Env)
	if err != nil {
		return nil, err
	}
	home, err := g.Env.HomeDir()
	if err != nil {
		return nil, fmt.Errorf("determining home directory: %w", err)
	}
	return []string{
		filepath.Join(xdg, "git", "config"),
		filepath.Join(home, ".gitconfig"),
	}, nil
}

// XDGDefault is the path git uses when core.excludesFile is unset.
type XDGDefault struct {
	Env Env
}

func (x *XDGDefault) Name() string { return "XDG default" }

func (x *XDGDefault) Path(context.Context) (string, error) {
	xdg, err := xdgConfigHome(x.Env)
	if err != nil {
		return "", err
	}
	return filepath.Join(xdg, "git", "ignore"), nil
}
