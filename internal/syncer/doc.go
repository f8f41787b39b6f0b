// Package syncer runs one read-merge-write cycle: it collects the global
// gitignore patterns, merges the new ones into the project's Zed
// file_scan_exclusions and writes the settings file back atomically.
//
// Orchestration steps:
//  1. Resolve and check the settings path
//  2. Skip an existing file unless updating was requested
//  3. Collect candidate patterns (global gitignore, then extra patterns)
//  4. Read the current settings document
//  5. Merge the patterns into the exclusion list
//  6. Report (dry run) or write the document
package syncer
