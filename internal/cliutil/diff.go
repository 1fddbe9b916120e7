package cliutil

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// IsTerminal reports whether w is a terminal. Only *os.File can be one.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// LineDiff is one line of a line-oriented diff.
type LineDiff struct {
	// Op is '+' for an added line, '-' for a removed line and ' ' for an
	// unchanged one.
	Op   byte
	Text string
}

// DiffLines computes a line-oriented diff of before and after.
func DiffLines(before, after string) []LineDiff {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []LineDiff
	for _, d := range diffs {
		op := byte(' ')
		switch d.Type {
		case diffpatch.DiffInsert:
			op = '+'
		case diffpatch.DiffDelete:
			op = '-'
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out = append(out, LineDiff{Op: op, Text: strings.TrimSuffix(line, "\n")})
		}
	}
	return out
}

// WriteDiff writes the diff of before and after to w, one prefixed line per
// entry. Added lines are green and removed lines red when colored is set.
func WriteDiff(w io.Writer, before, after string, colored bool) {
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	if colored {
		added.EnableColor()
		removed.EnableColor()
	} else {
		added.DisableColor()
		removed.DisableColor()
	}

	for _, d := range DiffLines(before, after) {
		line := string(d.Op) + d.Text
		switch d.Op {
		case '+':
			line = added.Sprint(line)
		case '-':
			line = removed.Sprint(line)
		}
		Writef(w, "%s\n", line)
	}
}
