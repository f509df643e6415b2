package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/harrison/seqcheck/internal/sequence"
)

func TestDirectoryResult(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	res := sequence.Detect([]string{"img.001.png", "img.002.png", "img.004.png"}, sequence.Options{})
	totals := r.DirectoryResult("/shots/sq010", res, Totals{})

	out := buf.String()
	assert.Contains(t, out, "In /shots/sq010:\n")
	assert.Contains(t, out, "  Missing img.003.png\n")
	assert.Equal(t, 1, totals.MissingFiles)
	assert.Equal(t, 1, totals.MissingDirs)
}

func TestDirectoryResultNothingMissing(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	res := sequence.Detect([]string{"img.001.png", "img.002.png"}, sequence.Options{})
	totals := r.DirectoryResult("/clean", res, Totals{})

	assert.Empty(t, buf.String(), "clean directories produce no output")
	assert.Zero(t, totals.MissingFiles)
	assert.Zero(t, totals.MissingDirs)
}

func TestDirectoryResultAccumulatesTotals(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	totals := Totals{}
	totals = r.DirectoryResult("/a", sequence.Detect([]string{"a.1.png", "a.3.png"}, sequence.Options{}), totals)
	totals = r.DirectoryResult("/b", sequence.Detect([]string{"b.1.png", "b.4.png"}, sequence.Options{}), totals)

	assert.Equal(t, 3, totals.MissingFiles)
	assert.Equal(t, 2, totals.MissingDirs)
}

func TestDirectoryResultAdvisories(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	res := sequence.Detect([]string{"f.01.png", "f.2.png", "f.02.png"}, sequence.Options{})
	r.DirectoryResult("/d", res, Totals{})

	out := buf.String()
	assert.Contains(t, out, "Mixed padding in sequence f.#.png")
	assert.Contains(t, out, "Duplicate sequence numbers in f.#.png")
}

func TestDirectoryResultUnsequenced(t *testing.T) {
	res := sequence.Detect([]string{"readme.txt"}, sequence.Options{})

	var quiet bytes.Buffer
	NewReporter(&quiet).DirectoryResult("/d", res, Totals{})
	assert.Empty(t, quiet.String())

	var verbose bytes.Buffer
	r := NewReporter(&verbose)
	r.ShowUnsequenced = true
	r.DirectoryResult("/d", res, Totals{})
	assert.Contains(t, verbose.String(), "In /d (unsequenced):\n  readme.txt\n")
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name   string
		totals Totals
		want   []string
	}{
		{
			name:   "missing files",
			totals: Totals{MissingFiles: 3, MissingDirs: 1, ProcessedFiles: 10, Elapsed: 5 * time.Millisecond},
			want: []string{
				"Total missing: 3 files in 1 dir\n",
				"Processed 10 files in 0.0050 s\n",
			},
		},
		{
			name:   "singular forms",
			totals: Totals{MissingFiles: 1, MissingDirs: 1, ProcessedFiles: 1},
			want: []string{
				"Total missing: 1 file in 1 dir\n",
				"Processed 1 file in 0.0000 s\n",
			},
		},
		{
			name:   "nothing missing",
			totals: Totals{ProcessedFiles: 4, Elapsed: time.Millisecond},
			want: []string{
				"Nothing missing\n",
				"Processed 4 files in 0.0010 s\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewReporter(&buf).Summary(tt.totals)
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestWarningDisplay(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{
		Title:      "Mixed padding in sequence f.#.png",
		Message:    "details",
		Files:      []string{"f.1.png", "f.02.png"},
		Suggestion: "renumber",
	}
	w.Display(&buf)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\x1b[33m"))
	assert.True(t, strings.HasSuffix(out, "\x1b[0m"))
	assert.Contains(t, out, "Warning: Mixed padding in sequence f.#.png")
	assert.Contains(t, out, "Affected files:")
	assert.Contains(t, out, "1. f.1.png")
	assert.Contains(t, out, "Suggestion:")
}

func TestProgressIndicator(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressIndicator(&buf, 2)
	p.Start()
	p.Step("/a")
	p.Step("/b")
	p.Complete()

	out := buf.String()
	assert.Contains(t, out, "Scanning 2 path(s):")
	assert.Contains(t, out, "[1/2] /a")
	assert.Contains(t, out, "[2/2] /b")
	assert.Contains(t, out, "Scanned 2 path(s)")
}
