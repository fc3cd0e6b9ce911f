// internal/fasta/stream.go
package fasta

import (
	"context"
	"errors"
	"io"
)

// Stream opens path, scans FASTA, and calls emit for each record in file
// order. Cancellation via ctx is honored between records. Returning a non-nil
// error from emit stops the scan and is returned unchanged.
func Stream(ctx context.Context, path string, emit func(Record) error) error {
	r, err := Open(path)
	if err != nil {
		return err
	}
	defer r.Close()
	return StreamReader(ctx, r, emit)
}

// StreamReader is Stream over an already opened Reader.
func StreamReader(ctx context.Context, r *Reader, emit func(Record) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := emit(rec); err != nil {
			return err
		}
	}
}
