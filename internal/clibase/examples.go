package clibase

import (
	"errors"
	"fmt"
	"io"
)

// ErrShowExamples is what ParseArgs returns for --examples. The caller prints
// the examples to stdout and exits 0.
var ErrShowExamples = errors.New("examples requested")

// PrintExamples writes the example invocations of a command, indented under
// a title line.
func PrintExamples(out io.Writer, name string, body func(io.Writer)) {
	if out == nil || body == nil {
		return
	}
	fmt.Fprintf(out, "Examples for %s:\n\n", name)
	body(out)
	fmt.Fprintf(out, "\nAll flags: %s --help\n", name)
}
