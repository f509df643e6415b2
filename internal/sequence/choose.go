package sequence

// chooseNumericToken picks which numeric token of p carries the sequence
// number. keyCounts maps every candidate skeleton key in the directory to the
// number of files that could produce it.
//
// Policy: prefer the token whose blanking yields the skeleton shared by the
// most files in the listing (majority grouping); break ties by preferring the
// rightmost digit run, matching the convention that the frame number is the
// last digit run before the extension while an earlier run (a version or
// resolution tag) differentiates independent sequences.
//
// Returns the chosen token index and whether a tie was broken. The second
// result lets the caller surface an advisory when the decision could
// plausibly have gone the other way. p must have at least one numeric token.
func chooseNumericToken(p ParsedFilename, keyCounts map[string]int) (int, bool) {
	if len(p.NumericIndices) == 1 {
		return p.NumericIndices[0], false
	}

	best := -1
	bestCount := -1
	tied := false
	// NumericIndices ascend, so >= keeps the rightmost of equal counts.
	for _, idx := range p.NumericIndices {
		count := keyCounts[skeletonKey(p, idx)]
		if count > bestCount {
			best, bestCount = idx, count
			tied = false
		} else if count == bestCount {
			best = idx
			tied = true
		}
	}
	return best, tied
}
