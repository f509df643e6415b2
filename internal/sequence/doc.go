// Package sequence implements detection of incomplete numbered file sequences.
//
// The package is a pure, in-memory computation over a listing of basenames from
// a single directory. It has three layers, consumed leaf-first:
//
// # Tokenizer
//
// Tokenize splits a filename into an ordered list of literal and numeric
// fragments. Every maximal run of decimal digits becomes one numeric token with
// its original text preserved (leading zeros and width intact); everything else
// becomes literal tokens. Joining the tokens back together always reproduces
// the input exactly:
//
//	parsed := sequence.Tokenize("img.001.png")
//	// parsed.Tokens: ["img." "001" ".png"], parsed.Join() == "img.001.png"
//
// # Skeletons
//
// A Skeleton is the grouping key for a sequence: the token list with one
// designated numeric token blanked out. Two filenames belong to the same
// sequence exactly when they are identical except at that token. Filenames
// with more than one digit run are eligible for several candidate skeletons;
// chooseNumericToken resolves the ambiguity.
//
// # Detection
//
// Detect partitions a directory listing into sequence groups, infers each
// group's numeric range and zero-padding width, and computes the missing
// members:
//
//	res := sequence.Detect([]string{"img.001.png", "img.002.png", "img.004.png"}, sequence.Options{})
//	// res.Groups[0].Missing: [{3 "img.003.png"}]
//
// Detect never fails and never aborts on a single file's ambiguity: duplicate
// numbers, mixed padding widths and tie-broken token choices are recorded as
// advisory data on the affected group. Filenames without any digit run are
// returned in Result.Unsequenced.
//
// Detect is deterministic given a deterministic input order, performs no I/O,
// and shares no state between calls: concurrent Detect invocations are
// independent.
package sequence
