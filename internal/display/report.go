package display

import (
	"fmt"
	"io"
	"time"

	"github.com/harrison/seqcheck/internal/sequence"
)

// Totals accumulates run-wide counters. It is a value threaded through the
// reporting calls, never shared mutable state, so independent scans tally
// independently.
type Totals struct {
	MissingFiles   int
	MissingDirs    int
	ProcessedFiles int
	Elapsed        time.Duration
}

// Reporter renders detection results for one scan run.
type Reporter struct {
	out io.Writer
	// ShowUnsequenced includes files that have no digit run in the report.
	ShowUnsequenced bool
	// ShowTieBreaks renders the ambiguous-digit-run advisory, which is noisy
	// for trees full of lone multi-number files.
	ShowTieBreaks bool
}

// NewReporter creates a Reporter writing to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// DirectoryResult prints the report for one directory's detection result and
// returns the updated totals. Directories with nothing to report produce no
// output.
func (r *Reporter) DirectoryResult(dir string, res sequence.Result, totals Totals) Totals {
	missing := res.TotalMissing()
	if missing > 0 {
		fmt.Fprintf(r.out, "In %s:\n", dir)
		for _, g := range res.Groups {
			for _, m := range g.Missing {
				fmt.Fprintf(r.out, "  Missing %s\n", m.Name)
			}
		}
		totals.MissingFiles += missing
		totals.MissingDirs++
	}

	for _, g := range res.Groups {
		if g.MixedPadding {
			WarnMixedPadding(g).Display(r.out)
		}
		if len(g.Duplicates) > 0 {
			WarnDuplicateNumbers(g).Display(r.out)
		}
		if r.ShowTieBreaks && len(g.TieBroken) > 0 {
			WarnAmbiguousNumbers(g).Display(r.out)
		}
	}

	if r.ShowUnsequenced && len(res.Unsequenced) > 0 {
		fmt.Fprintf(r.out, "In %s (unsequenced):\n", dir)
		for _, name := range res.Unsequenced {
			fmt.Fprintf(r.out, "  %s\n", name)
		}
	}

	return totals
}

// Summary prints the run totals in the classic closing format.
func (r *Reporter) Summary(totals Totals) {
	if totals.MissingFiles > 0 {
		fmt.Fprintf(r.out, "\n-------------\n")
		fmt.Fprintf(r.out, "Total missing: %d file%s in %d dir%s\n",
			totals.MissingFiles, plural(totals.MissingFiles),
			totals.MissingDirs, plural(totals.MissingDirs))
	} else {
		fmt.Fprintf(r.out, "Nothing missing\n")
	}
	fmt.Fprintf(r.out, "\nProcessed %d file%s in %.4f s\n",
		totals.ProcessedFiles, plural(totals.ProcessedFiles), totals.Elapsed.Seconds())
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
