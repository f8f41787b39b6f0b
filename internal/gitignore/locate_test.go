package gitignore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEnv is an Env with a fixed home directory and variables.
type fakeEnv struct {
	home string
	vars map[string]string
}

func (e fakeEnv) Getenv(key string) string { return e.vars[key] }

func (e fakeEnv) HomeDir() (string, error) {
	if e.home == "" {
		return "", errors.New("no home")
	}
	return e.home, nil
}

// fakeStrategy returns a canned path or error.
type fakeStrategy struct {
	name  string
	path  string
	err   error
	calls int
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Path(context.Context) (string, error) {
	f.calls++
	return f.path, f.err
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLocate_FirstExistingFileWins(t *testing.T) {
	dir := t.TempDir()
	existing := writeFile(t, filepath.Join(dir, "ignore"), ".env\n")

	failing := &fakeStrategy{name: "broken", err: errors.New("boom")}
	empty := &fakeStrategy{name: "unset"}
	missing := &fakeStrategy{name: "missing", path: filepath.Join(dir, "nope")}
	hit := &fakeStrategy{name: "hit", path: existing}
	never := &fakeStrategy{name: "never", path: existing}

	l := &Locator{Strategies: []Strategy{failing, empty, missing, hit, never}}
	src, err := l.Locate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Source{Path: existing, Strategy: "hit"}, src)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 0, never.calls, "strategies after a hit must not run")
}

func TestLocate_DirectoryIsNotASource(t *testing.T) {
	dir := t.TempDir()
	l := &Locator{Strategies: []Strategy{&fakeStrategy{name: "dir", path: dir}}}

	_, err := l.Locate(context.Background())
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestLocate_NoSource(t *testing.T) {
	l := &Locator{Strategies: []Strategy{
		&fakeStrategy{name: "a", err: errors.New("x")},
		&fakeStrategy{name: "b", path: "/definitely/not/here"},
	}}

	_, err := l.Locate(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSource)
	assert.Contains(t, err.Error(), "a: unavailable")
	assert.Contains(t, err.Error(), "/definitely/not/here (not found)")
}

func TestLocate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &fakeStrategy{name: "a"}
	l := &Locator{Strategies: []Strategy{s}}
	_, err := l.Locate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, s.calls)
}

// TestDefaultStrategies_FallBackToXDG runs the real strategy list with git
// pointed at an empty global config, so only the XDG default can match.
func TestDefaultStrategies_FallBackToXDG(t *testing.T) {
	home := t.TempDir()
	xdg := filepath.Join(home, "xdg")
	ignore := writeFile(t, filepath.Join(xdg, "git", "ignore"), "*.swp\n")

	emptyConfig := writeFile(t, filepath.Join(home, "empty.gitconfig"), "")
	t.Setenv("GIT_CONFIG_GLOBAL", emptyConfig)

	env := fakeEnv{home: home, vars: map[string]string{
		"XDG_CONFIG_HOME":   xdg,
		"GIT_CONFIG_GLOBAL": emptyConfig,
	}}
	src, err := NewLocator(env, nil).Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ignore, src.Path)
	assert.Equal(t, "XDG default", src.Strategy)
}

func TestReadLines(t *testing.T) {
	dir := t.TempDir()

	path := writeFile(t, filepath.Join(dir, "ignore"), "# comment\r\n.env\r\n\r\nnode_modules/\n")
	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"# comment", ".env", "", "node_modules/"}, lines)

	empty := writeFile(t, filepath.Join(dir, "empty"), "")
	lines, err = ReadLines(empty)
	require.NoError(t, err)
	assert.Empty(t, lines)

	bad := filepath.Join(dir, "bad")
	require.NoError(t, os.WriteFile(bad, []byte{0xff, 0xfe, '\n'}, 0o644))
	_, err = ReadLines(bad)
	assert.ErrorContains(t, err, "not valid UTF-8")

	_, err = ReadLines(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
