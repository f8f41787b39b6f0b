// Package exclusion turns gitignore lines into Zed file_scan_exclusions
// globs and merges them into an existing exclusion list.
//
// Merging only ever appends: entries already in the list keep their
// position and are never removed, so running a sync twice adds nothing the
// second time.
package exclusion
