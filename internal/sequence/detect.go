package sequence

import "strconv"

// Options constrains which sequence numbers Detect considers.
// A zero bound is unbounded, so the zero value of Options examines everything.
type Options struct {
	// Start: only consider members with sequence number >= Start.
	Start int
	// End: only consider members with sequence number <= End.
	End int
}

// inRange reports whether n falls inside the configured bounds.
func (o Options) inRange(n int) bool {
	if o.Start != 0 && n < o.Start {
		return false
	}
	if o.End != 0 && n > o.End {
		return false
	}
	return true
}

// MissingEntry is a reconstructed filename for a number inside a group's range
// that is not present on disk.
type MissingEntry struct {
	Number int
	Name   string
}

// DuplicateNumber records a file whose sequence number collides with another
// member of the same group, e.g. "file.5.png" next to "file.05.png". The first
// file seen keeps the member slot; the collision is advisory, not fatal.
type DuplicateNumber struct {
	Number int
	Name   string
}

// SequenceGroup is one detected file sequence within a single directory.
type SequenceGroup struct {
	// Skeleton is the shared grouping key.
	Skeleton Skeleton
	// Members maps sequence number to the file present on disk. At most one
	// file per number; collisions land in Duplicates.
	Members map[int]ParsedFilename
	// PaddingWidth is the digit count used to zero-pad reconstructed names.
	PaddingWidth int
	// MinNumber and MaxNumber are the observed bounds among Members.
	MinNumber int
	MaxNumber int
	// Missing lists every absent number in [MinNumber, MaxNumber], ascending.
	Missing []MissingEntry

	// MixedPadding is set when members disagree on digit width. PaddingWidth
	// is then the maximum observed width.
	MixedPadding bool
	// Duplicates lists files rejected because their number was already taken.
	Duplicates []DuplicateNumber
	// TieBroken lists member filenames whose sequence-number token was chosen
	// by the rightmost tie-break rather than a clear majority.
	TieBroken []string
}

// Result is the outcome of one Detect call.
type Result struct {
	// Groups in the order their skeleton was first encountered.
	Groups []SequenceGroup
	// Unsequenced holds filenames with no digit run, which can never join a
	// sequence. Reported, never silently dropped.
	Unsequenced []string
}

// TotalMissing returns the number of missing files across all groups.
func (r Result) TotalMissing() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Missing)
	}
	return n
}

// member pairs a parsed filename with its chosen numeric token.
type member struct {
	parsed    ParsedFilename
	tokenIdx  int
	tieBroken bool
}

// bucket collects the members of one candidate skeleton in input order.
type bucket struct {
	skeleton Skeleton
	members  []member
}

// Detect partitions a directory listing into sequence groups and computes the
// missing members of each. The input is treated as an immutable snapshot of one
// directory's basenames; Detect performs no I/O and is deterministic given a
// deterministic input order.
func Detect(filenames []string, opts Options) Result {
	var res Result

	parsed := make([]ParsedFilename, 0, len(filenames))
	for _, name := range filenames {
		p := Tokenize(name)
		if len(p.NumericIndices) == 0 {
			res.Unsequenced = append(res.Unsequenced, name)
			continue
		}
		parsed = append(parsed, p)
	}

	// Count, per candidate skeleton, how many files could produce it. Each
	// file contributes each of its candidate keys once; the counts drive the
	// majority-grouping disambiguation for multi-digit-run names.
	keyCounts := make(map[string]int)
	for _, p := range parsed {
		for _, idx := range p.NumericIndices {
			keyCounts[skeletonKey(p, idx)]++
		}
	}

	buckets := make(map[string]*bucket)
	var order []string
	for _, p := range parsed {
		idx, tied := chooseNumericToken(p, keyCounts)
		key := skeletonKey(p, idx)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{skeleton: newSkeleton(p, idx)}
			buckets[key] = b
			order = append(order, key)
		}
		b.members = append(b.members, member{parsed: p, tokenIdx: idx, tieBroken: tied})
	}

	for _, key := range order {
		group, overflow := finalizeBucket(buckets[key], opts)
		res.Unsequenced = append(res.Unsequenced, overflow...)
		if group != nil {
			res.Groups = append(res.Groups, *group)
		}
	}

	return res
}

// finalizeBucket turns a candidate bucket into a SequenceGroup: parses each
// member's sequence number, rejects duplicates, resolves the padding width and
// computes the missing range. Returns nil when no member survives (all out of
// range). Names whose digit run overflows int are returned separately so the
// caller can report them as unsequenced.
func finalizeBucket(b *bucket, opts Options) (*SequenceGroup, []string) {
	group := &SequenceGroup{
		Skeleton: b.skeleton,
		Members:  make(map[int]ParsedFilename, len(b.members)),
	}

	var overflow []string
	width := -1
	for _, m := range b.members {
		text := m.parsed.Tokens[m.tokenIdx].Value
		n, err := strconv.Atoi(text)
		if err != nil {
			// Digit run too long for int. The name cannot participate in
			// range arithmetic, so report it alongside unsequenced files.
			overflow = append(overflow, m.parsed.Name)
			continue
		}
		if !opts.inRange(n) {
			continue
		}
		if _, taken := group.Members[n]; taken {
			group.Duplicates = append(group.Duplicates, DuplicateNumber{Number: n, Name: m.parsed.Name})
			continue
		}
		group.Members[n] = m.parsed

		if width == -1 {
			width = len(text)
		} else if len(text) != width {
			group.MixedPadding = true
			if len(text) > width {
				width = len(text)
			}
		}
		if m.tieBroken {
			group.TieBroken = append(group.TieBroken, m.parsed.Name)
		}
	}

	if len(group.Members) == 0 {
		return nil, overflow
	}

	group.PaddingWidth = width
	first := true
	for n := range group.Members {
		if first || n < group.MinNumber {
			group.MinNumber = n
		}
		if first || n > group.MaxNumber {
			group.MaxNumber = n
		}
		first = false
	}

	for n := group.MinNumber; n <= group.MaxNumber; n++ {
		if _, ok := group.Members[n]; ok {
			continue
		}
		group.Missing = append(group.Missing, MissingEntry{
			Number: n,
			Name:   group.Skeleton.Reconstruct(n, group.PaddingWidth),
		})
	}

	return group, overflow
}
