// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// Reuse a 64 KiB buffered writer across JSONL writers.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Encode writes every value received on in as one JSON line to out and
// flushes at the end. encode converts one value to its wire type and calls
// enc.Encode. It returns on the first error without draining in; callers
// stop sending when the writer goroutine reports back.
func Encode[T any](out io.Writer, in <-chan T, encode func(*json.Encoder, T) error) error {
	bw := bwPool.Get().(*bufio.Writer)
	// Rebind to the actual output while keeping the pooled buffer.
	bw.Reset(out)
	defer func() {
		bw.Reset(io.Discard)
		bwPool.Put(bw)
	}()

	enc := json.NewEncoder(bw)
	for v := range in {
		if err := encode(enc, v); err != nil {
			return err
		}
	}
	return bw.Flush()
}
