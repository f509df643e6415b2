package display

import (
	"fmt"
	"io"
)

// ProgressIndicator manages multi-step progress display for scans that cover
// several root paths.
type ProgressIndicator struct {
	writer  io.Writer
	total   int
	current int
}

// NewProgressIndicator creates a new progress indicator.
func NewProgressIndicator(w io.Writer, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer: w,
		total:  total,
	}
}

// Start displays the header message.
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "Scanning %d path(s):\n", p.total)
}

// Step displays progress for the current path: [N/Total] path (cyan).
func (p *ProgressIndicator) Step(path string) {
	p.current++
	fmt.Fprintf(p.writer, "\x1b[36m  [%d/%d] %s\x1b[0m\n", p.current, p.total, path)
}

// Complete displays the success message with a green checkmark.
func (p *ProgressIndicator) Complete() {
	fmt.Fprintf(p.writer, "\x1b[32m✓\x1b[0m Scanned %d path(s)\n", p.total)
}
