// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"gfaquery/internal/pipeline"
)

// Format describes one registered output format.
type Format struct {
	Name  string
	Ext   string // file extension without the dot
	Write func(w io.Writer, in <-chan pipeline.Result) error
}

// Writer registry (format → handler). Formats register themselves in init()
// blocks from text.go, tsv.go and jsonl.go. Last registration wins.
var registry = map[string]Format{}

func Register(f Format) { registry[f.Name] = f }

// Lookup returns the format registered under name.
func Lookup(name string) (Format, error) {
	f, ok := registry[name]
	if !ok {
		return Format{}, fmt.Errorf("unknown result format %q (no writer registered)", name)
	}
	return f, nil
}

// Formats lists the registered format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StartResultWriter spins up a writer goroutine for format. The goroutine
// returns as soon as writing fails, so producers must select on the error
// channel while sending. A nil error is sent after in is closed and all
// output is flushed.
func StartResultWriter(out io.Writer, format string, bufSize int) (chan<- pipeline.Result, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan pipeline.Result, bufSize)
	errCh := make(chan error, 1)

	f, err := Lookup(format)
	if err != nil {
		errCh <- err
		return in, errCh
	}
	go func() {
		errCh <- f.Write(out, in)
	}()
	return in, errCh
}
