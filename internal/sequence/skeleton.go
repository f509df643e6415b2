package sequence

import (
	"fmt"
	"strings"
)

// placeholder marks the blanked token in a skeleton key. NUL cannot occur in a
// filename, so the key can never collide with a literal token value.
const placeholder = "\x00"

// Skeleton is the grouping key for a file sequence: the token list of one
// member with the designated numeric token blanked out. All other tokens,
// including any other numeric tokens, are held literal. Members of the same
// group are identical except at the blanked token, so the token list of the
// first member stands in for the whole group.
type Skeleton struct {
	tokens []Token
	// index of the blanked token within tokens
	index int
}

// newSkeleton builds the skeleton for p with the numeric token at tokenIndex
// blanked. tokenIndex must be one of p.NumericIndices.
func newSkeleton(p ParsedFilename, tokenIndex int) Skeleton {
	return Skeleton{tokens: p.Tokens, index: tokenIndex}
}

// Key returns the canonical string form of the skeleton, used for bucketing.
// The blanked token's position is part of the key: two filenames share a key
// iff they are identical except at the chosen numeric token.
func (s Skeleton) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:", s.index)
	for i, t := range s.tokens {
		if i == s.index {
			b.WriteString(placeholder)
			continue
		}
		b.WriteString(t.Value)
	}
	return b.String()
}

// skeletonKey is the bucketing key for p with the numeric token at tokenIndex
// blanked, without allocating a Skeleton.
func skeletonKey(p ParsedFilename, tokenIndex int) string {
	return newSkeleton(p, tokenIndex).Key()
}

// Pattern returns a human-readable form of the skeleton with the sequence
// number shown as "#", e.g. "img.#.png". Used in advisory messages.
func (s Skeleton) Pattern() string {
	var b strings.Builder
	for i, t := range s.tokens {
		if i == s.index {
			b.WriteString("#")
			continue
		}
		b.WriteString(t.Value)
	}
	return b.String()
}

// Reconstruct substitutes number, zero-padded to width digits, for the blanked
// token and re-joins all tokens into a filename.
func (s Skeleton) Reconstruct(number, width int) string {
	var b strings.Builder
	for i, t := range s.tokens {
		if i == s.index {
			fmt.Fprintf(&b, "%0*d", width, number)
			continue
		}
		b.WriteString(t.Value)
	}
	return b.String()
}
