// Package gitignore finds and reads the user's global gitignore file.
//
// Git lets users point core.excludesFile anywhere, so the file is located
// by an ordered list of strategies: ask the git binary, scan git's config
// files directly when git is not installed, then fall back to the XDG
// default path. The first strategy that names an existing file wins.
package gitignore
