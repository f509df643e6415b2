// Package display renders the sequence checker's user-facing output: per
// directory missing-file reports, advisory warnings, progress for multi-root
// scans, and the run summary.
//
// # Reports
//
// Reporter turns detection results into the classic report shape:
//
//	In /shots/sq010:
//	  Missing img.003.png
//	  Missing img.007.png
//
// Run totals are threaded through an explicit Totals value rather than any
// package-level state, so concurrent scans can keep independent tallies:
//
//	r := display.NewReporter(os.Stdout)
//	totals := display.Totals{}
//	for _, listing := range listings {
//	    totals = r.DirectoryResult(listing.Dir, result, totals)
//	}
//	r.Summary(totals)
//
// # Warnings
//
// Advisory conditions (mixed padding widths, duplicate sequence numbers,
// tie-broken token choices) are rendered as yellow warning blocks:
//
//	warning := display.Warning{
//	    Title:      "Mixed padding in sequence img.#.png",
//	    Suggestion: "Renumber the narrower files to width 3",
//	}
//	warning.Display(os.Stderr)
//
// # Progress
//
// ProgressIndicator prints [N/Total] steps while scanning several root paths.
package display
