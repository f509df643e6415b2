package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/seqcheck/internal/config"
	"github.com/harrison/seqcheck/internal/display"
	"github.com/harrison/seqcheck/internal/filelock"
	"github.com/harrison/seqcheck/internal/fileutil"
	"github.com/harrison/seqcheck/internal/history"
	"github.com/harrison/seqcheck/internal/logger"
	"github.com/harrison/seqcheck/internal/sequence"
)

// checkFlags holds the flag values of one check invocation.
type checkFlags struct {
	configPath   string
	recursive    bool
	maxDepth     int
	from         int
	to           int
	include      string
	exclude      string
	excludeFiles []string
	fullPaths    bool
	output       string
	verbose      bool
	noHistory    bool
}

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Check directories for incomplete file sequences",
		Long: `Check one or more directories for numbered file sequences with
missing members and print a per-directory report.

A sequence is a set of files in one directory that differ only in one
embedded number, e.g. img.001.png, img.002.png, img.004.png (img.003.png
is reported missing). Sequences never merge across directories.

Missing files are findings, not errors: the exit code is 0 for a clean
run and non-zero only for operational failures such as an unreadable
path or an invalid pattern.

Configuration is loaded from .seqcheck/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  # Check a single directory
  seqcheck check /shots/sq010

  # Recurse into subdirectories, frames 0 through 100 only
  seqcheck check -r --from 1 --to 100 /shots/sq010

  # Only look at EXR plates, skip anything under "_old"
  seqcheck check -r -i '\.exr$' -e '_old' /shots

  # Write the report to a file as well
  seqcheck check -o gaps.txt /shots/sq010`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&flags.configPath, "config", config.DefaultConfigPath, "path to config file")
	cmd.Flags().BoolVarP(&flags.recursive, "recursive", "r", false, "recurse into subdirectories")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", 0, "limit recursion depth (0 = unlimited)")
	cmd.Flags().IntVarP(&flags.from, "from", "f", 0, "only consider sequence numbers greater than or equal to NUM")
	cmd.Flags().IntVarP(&flags.to, "to", "t", 0, "only consider sequence numbers less than or equal to NUM")
	cmd.Flags().StringVarP(&flags.include, "include", "i", "", "only include paths matching this regex")
	cmd.Flags().StringVarP(&flags.exclude, "exclude", "e", "", "exclude paths matching this regex (wins over --include)")
	cmd.Flags().StringArrayVarP(&flags.excludeFiles, "exclude-file", "x", nil, "exact filenames to skip (repeatable, extends platform defaults)")
	cmd.Flags().BoolVar(&flags.fullPaths, "full-paths", false, "report directories by absolute path")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "also write the report to this file (atomic)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "print per-file processing details")
	cmd.Flags().BoolVar(&flags.noHistory, "no-history", false, "do not record this scan in the history database")

	return cmd
}

// mergeConfig applies config-file settings underneath any flags the user did
// not set explicitly.
func mergeConfig(cmd *cobra.Command, flags *checkFlags, cfg *config.Config) {
	if !cmd.Flags().Changed("recursive") {
		flags.recursive = cfg.Recursive
	}
	if !cmd.Flags().Changed("max-depth") {
		flags.maxDepth = cfg.MaxDepth
	}
	if !cmd.Flags().Changed("include") {
		flags.include = cfg.IncludePattern
	}
	if !cmd.Flags().Changed("exclude") {
		flags.exclude = cfg.ExcludePattern
	}
	if !cmd.Flags().Changed("full-paths") {
		flags.fullPaths = cfg.FullPaths
	}
}

// runCheck executes the check command
func runCheck(cmd *cobra.Command, paths []string, flags *checkFlags) error {
	out := cmd.OutOrStdout()

	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return err
	}
	mergeConfig(cmd, flags, cfg)

	if flags.from < 0 || flags.to < 0 {
		return fmt.Errorf("invalid range: --from and --to must be positive")
	}
	if flags.from != 0 && flags.to != 0 && flags.from >= flags.to {
		return fmt.Errorf("invalid range: --from (%d) must be less than --to (%d)", flags.from, flags.to)
	}
	if flags.include != "" && flags.include == flags.exclude {
		return fmt.Errorf("include and exclude pattern are equal, nothing would be processed")
	}

	logLevel := cfg.LogLevel
	if flags.verbose {
		logLevel = "debug"
	}
	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), logLevel)

	excludeNames := append(fileutil.DefaultExcludeNames(), cfg.FileExcludes...)
	excludeNames = append(excludeNames, flags.excludeFiles...)

	scanOpts := fileutil.ScanOptions{
		Recursive:      flags.recursive,
		MaxDepth:       flags.maxDepth,
		ExcludeNames:   excludeNames,
		IncludePattern: flags.include,
		ExcludePattern: flags.exclude,
		Verbose:        log.Debugf,
	}
	detectOpts := sequence.Options{Start: flags.from, End: flags.to}

	// Render into a buffer so the report can also be written to a file.
	var report bytes.Buffer
	dest := io.MultiWriter(out, &report)

	reporter := display.NewReporter(dest)
	reporter.ShowUnsequenced = flags.verbose
	reporter.ShowTieBreaks = flags.verbose

	var progress *display.ProgressIndicator
	if flags.verbose && len(paths) > 1 {
		progress = display.NewProgressIndicator(cmd.ErrOrStderr(), len(paths))
		progress.Start()
	}

	start := time.Now()
	totals := display.Totals{}
	var records []*history.ScanRecord
	var allMissing [][]history.MissingFile

	for _, path := range paths {
		if progress != nil {
			progress.Step(path)
		}

		result, err := fileutil.ScanDirectory(path, scanOpts)
		if err != nil {
			return err
		}
		for _, scanErr := range result.Errors {
			log.Warnf("%v", scanErr)
		}

		rec := &history.ScanRecord{
			Root:           path,
			FilesProcessed: result.TotalFiles,
			DirsScanned:    len(result.Listings),
			StartedAt:      start,
		}
		var missing []history.MissingFile

		for _, listing := range result.Listings {
			dir := listing.Dir
			if flags.fullPaths {
				if abs, err := filepath.Abs(dir); err == nil {
					dir = abs
				}
			}
			log.Debugf("Processing %s (%d files)", dir, len(listing.Files))

			res := sequence.Detect(listing.Files, detectOpts)
			totals = reporter.DirectoryResult(dir, res, totals)

			rec.UnsequencedFiles += len(res.Unsequenced)
			for _, g := range res.Groups {
				for _, m := range g.Missing {
					missing = append(missing, history.MissingFile{Dir: dir, Name: m.Name, Number: m.Number})
				}
			}
		}

		rec.MissingFiles = len(missing)
		totals.ProcessedFiles += result.TotalFiles
		records = append(records, rec)
		allMissing = append(allMissing, missing)
	}

	if progress != nil {
		progress.Complete()
	}

	totals.Elapsed = time.Since(start)
	for _, rec := range records {
		rec.Duration = totals.Elapsed
	}
	reporter.Summary(totals)

	if flags.output != "" {
		if err := filelock.AtomicWrite(flags.output, report.Bytes()); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		log.Infof("Report written to %s", flags.output)
	}

	if cfg.History.Enabled && !flags.noHistory {
		if err := recordHistory(cmd.Context(), cfg, records, allMissing); err != nil {
			// History is bookkeeping; a failed write never fails the scan.
			log.Warnf("failed to record scan history: %v", err)
		}
	}

	return nil
}

// recordHistory persists one record per scanned root path and prunes old runs.
func recordHistory(ctx context.Context, cfg *config.Config, records []*history.ScanRecord, missing [][]history.MissingFile) error {
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	for i, rec := range records {
		if err := store.RecordScan(ctx, rec, missing[i]); err != nil {
			return err
		}
	}
	return store.Prune(ctx, cfg.History.KeepScans)
}
