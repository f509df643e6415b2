// Package fileutil provides directory scanning for the sequence checker.
//
// ScanDirectory walks a directory tree and produces one listing of basenames
// per directory, which is the exact input shape the sequence detector wants:
// sequences never merge across directories, so files are grouped by their
// containing directory from the start.
//
// # Filtering
//
// Three filters run before a file reaches a listing:
//
//   - ExcludeNames: exact basenames to skip. DefaultExcludeNames seeds this
//     with the platform's junk files (.DS_Store and friends on macOS,
//     Thumbs.db and desktop.ini on Windows).
//   - ExcludePattern / IncludePattern: regular expressions matched against the
//     file's path. Exclusion has precedence over inclusion.
//   - Hidden directories (leading ".") are always skipped during traversal.
//
// # Determinism
//
// Listings are sorted by directory path and filenames are sorted within each
// listing, so a scan of an unchanged tree always yields the same result.
// Non-fatal errors (unreadable subdirectories) are collected in
// ScanResult.Errors; only an unusable root path fails the scan outright.
package fileutil
