// Package cliutil holds the output helpers shared by the docmod commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to w. A failed write is reported on stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Warnf writes a single "Warning: " line to w.
func Warnf(w io.Writer, format string, args ...any) {
	Writef(w, "Warning: "+format+"\n", args...)
}
