package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
)

// ScanOptions configures the directory scanning behavior.
type ScanOptions struct {
	// Recursive enables recursive directory scanning.
	Recursive bool
	// MaxDepth limits recursion depth (0 = unlimited, 1 = root dir only).
	MaxDepth int
	// ExcludeNames is a list of exact basenames to skip, typically seeded
	// from DefaultExcludeNames.
	ExcludeNames []string
	// IncludePattern is a regex; when set, only files whose path matches are
	// listed.
	IncludePattern string
	// ExcludePattern is a regex; files whose path matches are skipped.
	// Exclusion has precedence over inclusion.
	ExcludePattern string
	// Verbose receives a line per skipped file when set (e.g. logger output).
	Verbose func(format string, args ...interface{})
}

// DirListing holds the surviving basenames of one directory.
type DirListing struct {
	// Dir is the directory path as derived from the scan root.
	Dir string
	// Files are the basenames, sorted.
	Files []string
}

// ScanResult contains the results of a directory scan.
type ScanResult struct {
	// Listings contains one entry per directory that held at least one file,
	// sorted by directory path.
	Listings []DirListing
	// TotalFiles is the number of files across all listings.
	TotalFiles int
	// Errors contains any non-fatal errors encountered during scanning.
	Errors []error
}

// DefaultExcludeNames returns the platform's junk-file names, which are never
// part of a sequence and would otherwise pollute the unsequenced report.
func DefaultExcludeNames() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			".DS_Store",
			".Spotlight-V100",
			".Trashes",
			".com.apple.timemachine.supported",
			".fseventsd",
			".syncinfo",
			".TemporaryItems",
			"Desktop DF",
			"Desktop DB",
		}
	case "windows":
		return []string{
			"thumbs.db",
			"Thumbs.db",
			"desktop.ini",
		}
	default:
		return nil
	}
}

// ScanDirectory scans a directory tree and returns per-directory file listings
// matching the provided options.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	var includeRe, excludeRe *regexp.Regexp
	if opts.IncludePattern != "" {
		includeRe, err = regexp.Compile(opts.IncludePattern)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern: %w", err)
		}
	}
	if opts.ExcludePattern != "" {
		excludeRe, err = regexp.Compile(opts.ExcludePattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern: %w", err)
		}
	}

	excludeNames := make(map[string]bool, len(opts.ExcludeNames))
	for _, name := range opts.ExcludeNames {
		excludeNames[name] = true
	}

	verbose := opts.Verbose
	if verbose == nil {
		verbose = func(string, ...interface{}) {}
	}

	result := &ScanResult{}
	byDir := make(map[string][]string)

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil // continue walking
		}

		if d.IsDir() {
			if path == dir {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if !opts.Recursive {
				return filepath.SkipDir
			}
			if opts.MaxDepth > 0 {
				relPath, _ := filepath.Rel(dir, path)
				depth := strings.Count(relPath, string(filepath.Separator)) + 1
				if depth >= opts.MaxDepth {
					return filepath.SkipDir
				}
			}
			return nil
		}

		name := d.Name()
		if excludeNames[name] {
			verbose("Excluding %s", path)
			return nil
		}
		if excludeRe != nil && excludeRe.MatchString(path) {
			verbose("Excluding %s", path)
			return nil
		}
		if includeRe != nil && !includeRe.MatchString(path) {
			verbose("Not including %s", path)
			return nil
		}

		byDir[filepath.Dir(path)] = append(byDir[filepath.Dir(path)], name)
		result.TotalFiles++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	dirs := make([]string, 0, len(byDir))
	for d := range byDir {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	for _, d := range dirs {
		files := byDir[d]
		sort.Strings(files)
		result.Listings = append(result.Listings, DirListing{Dir: d, Files: files})
	}

	return result, nil
}
