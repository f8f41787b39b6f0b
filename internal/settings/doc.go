// Package settings reads and writes Zed settings.json files.
//
// Zed accepts a relaxed JSON dialect. This package supports the part of it
// that real project settings use: `//` line comments and trailing commas.
// Both are removed by a small string-aware scanner before the text is
// handed to encoding/json. Objects decode into *Object, which keeps keys in
// file order, so a rewrite changes only what the caller changed. Comments
// are not part of the data model and are dropped on rewrite.
//
// Writes go through a temp file in the target directory that is decoded
// again before it is renamed over the target.
package settings
