package sequence

import "strings"

// TokenKind discriminates literal from numeric filename fragments.
type TokenKind int

const (
	// Literal is a maximal run of non-digit characters.
	Literal TokenKind = iota
	// Numeric is a maximal run of ASCII decimal digits.
	Numeric
)

// Token is one fragment of a filename. Value holds the original text span, so
// numeric tokens keep their leading zeros. Position is the ordinal index of the
// fragment within the filename and is fixed at creation.
type Token struct {
	Kind     TokenKind
	Value    string
	Position int
}

// ParsedFilename is the tokenized form of a single filename. It is immutable
// value data: Detect references parsed filenames but never mutates them.
type ParsedFilename struct {
	// Name is the original filename.
	Name string
	// Tokens in left-to-right order of occurrence.
	Tokens []Token
	// NumericIndices are the positions within Tokens that are numeric. A
	// filename may contain more than one digit run (e.g. "André-002 03.png").
	NumericIndices []int
}

// isDigit reports whether b is an ASCII decimal digit. Digit runs are matched
// bytewise: multi-byte runes are never digits, so UTF-8 names tokenize safely.
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Tokenize splits a filename into literal and numeric tokens. It is total over
// any input string: every character belongs to exactly one token and no input
// is rejected. A name with no digits yields a single literal token; such a file
// can never join a sequence.
func Tokenize(name string) ParsedFilename {
	p := ParsedFilename{Name: name}

	start := 0
	for start < len(name) {
		numeric := isDigit(name[start])
		end := start + 1
		for end < len(name) && isDigit(name[end]) == numeric {
			end++
		}

		tok := Token{Kind: Literal, Value: name[start:end], Position: len(p.Tokens)}
		if numeric {
			tok.Kind = Numeric
			p.NumericIndices = append(p.NumericIndices, tok.Position)
		}
		p.Tokens = append(p.Tokens, tok)
		start = end
	}

	return p
}

// Join concatenates the tokens in order, reproducing the original filename
// exactly.
func (p ParsedFilename) Join() string {
	var b strings.Builder
	b.Grow(len(p.Name))
	for _, t := range p.Tokens {
		b.WriteString(t.Value)
	}
	return b.String()
}
