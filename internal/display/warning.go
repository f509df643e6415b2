package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/harrison/seqcheck/internal/sequence"
)

// Warning represents a user-facing advisory message.
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow.
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("\x1b[33m")
	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected file:\n")
		} else {
			b.WriteString("Affected files:\n")
		}
		for i, file := range w.Files {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, file))
			b.WriteString("\n")
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	b.WriteString("\x1b[0m")

	fmt.Fprint(out, b.String())
}

// WarnMixedPadding creates the advisory for a sequence whose members disagree
// on zero-padding width.
func WarnMixedPadding(group sequence.SequenceGroup) Warning {
	return Warning{
		Title:      fmt.Sprintf("Mixed padding in sequence %s", group.Skeleton.Pattern()),
		Message:    fmt.Sprintf("Members use different digit widths; missing names assume width %d", group.PaddingWidth),
		Suggestion: fmt.Sprintf("Renumber the narrower files to width %d", group.PaddingWidth),
	}
}

// WarnDuplicateNumbers creates the advisory for files that collide on the
// same sequence number, e.g. "file.5.png" next to "file.05.png".
func WarnDuplicateNumbers(group sequence.SequenceGroup) Warning {
	files := make([]string, 0, len(group.Duplicates))
	for _, d := range group.Duplicates {
		files = append(files, fmt.Sprintf("%s (number %d already present)", d.Name, d.Number))
	}
	return Warning{
		Title: fmt.Sprintf("Duplicate sequence numbers in %s", group.Skeleton.Pattern()),
		Files: files,
	}
}

// WarnAmbiguousNumbers creates the advisory for filenames whose sequence
// number was picked by the rightmost tie-break between several digit runs.
func WarnAmbiguousNumbers(group sequence.SequenceGroup) Warning {
	return Warning{
		Title:      fmt.Sprintf("Ambiguous digit runs in %s", group.Skeleton.Pattern()),
		Message:    "The digit run closest to the extension was assumed to be the frame number",
		Files:      group.TieBroken,
		Suggestion: "Verify the detected grouping matches the intended sequences",
	}
}
