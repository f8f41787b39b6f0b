package gitignore

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// Env is the slice of the process environment the strategies depend on.
type Env interface {
	Getenv(key string) string
	HomeDir() (string, error)
}

// OSEnv returns an Env backed by the real process environment.
func OSEnv() Env {
	return osEnv{}
}

type osEnv struct{}

func (osEnv) Getenv(key string) string { return os.Getenv(key) }
func (osEnv) HomeDir() (string, error) { return os.UserHomeDir() }

// xdgConfigHome returns $XDG_CONFIG_HOME, or ~/.config when it is unset.
func xdgConfigHome(env Env) (string, error) {
	if xdg := env.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg, nil
	}
	home, err := env.HomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(home, ".config"), nil
}

// ExpandTilde expands a leading ~ or ~user the way git does for
// core.excludesFile.
func ExpandTilde(env Env, path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	userPart, rest := path, ""
	if i := strings.IndexByte(path, '/'); i >= 0 {
		userPart, rest = path[:i], path[i:]
	}

	if userPart == "~" {
		home, err := env.HomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding ~: %w", err)
		}
		return home + rest, nil
	}

	u, err := user.Lookup(userPart[1:])
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", userPart, err)
	}
	return u.HomeDir + rest, nil
}
