// internal/fasta/reader.go
package fasta

import (
	"bytes"
	"fmt"
	"io"

	"gfaquery/internal/errs"
	"gfaquery/internal/fileio"
)

// Record is one FASTA entry.
type Record struct {
	Name string // first whitespace-delimited token after '>'
	Desc string // rest of the header line, trimmed
	Seq  string // body lines concatenated with no separator
}

// Reader yields records one at a time. It is single-pass: once a record has
// been returned it cannot be read again without reopening the source.
type Reader struct {
	lr     *fileio.LineReader
	closer io.Closer

	seq     []byte
	next    []byte // header read ahead of the record it starts
	hasNext bool
	err     error
}

// NewReader reads FASTA from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{lr: fileio.NewLineReader(r)}
}

// Open opens path ("-" for stdin, gzip detected) for streaming.
func Open(path string) (*Reader, error) {
	rc, err := fileio.Open(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: open fasta: %w", errs.ErrIO, err)
	}
	r := NewReader(rc)
	r.closer = rc
	return r, nil
}

// Close releases the underlying file, if the Reader owns one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Next returns the next record, or io.EOF after the last one. Lines that
// appear before the first header are ignored. Read failures are wrapped in
// errs.ErrIO and are sticky.
func (r *Reader) Next() (Record, error) {
	if r.err != nil {
		return Record{}, r.err
	}
	var (
		rec  Record
		open bool
	)
	r.seq = r.seq[:0]
	if r.hasNext {
		rec.Name, rec.Desc = parseHeader(r.next)
		open = true
		r.hasNext = false
	}
	for {
		line, err := r.lr.ReadLine()
		if err == io.EOF {
			r.err = io.EOF
			if open {
				rec.Seq = string(r.seq)
				return rec, nil
			}
			return Record{}, io.EOF
		}
		if err != nil {
			r.err = fmt.Errorf("%w: read fasta: %w", errs.ErrIO, err)
			return Record{}, r.err
		}
		if len(line) > 0 && line[0] == '>' {
			if open {
				r.next = append(r.next[:0], line[1:]...)
				r.hasNext = true
				rec.Seq = string(r.seq)
				return rec, nil
			}
			rec.Name, rec.Desc = parseHeader(line[1:])
			open = true
			continue
		}
		if !open {
			continue
		}
		r.seq = append(r.seq, line...)
	}
}

// parseHeader splits a header (without '>') into its name, which ends at the
// first space or tab, and the trimmed remainder.
func parseHeader(hdr []byte) (name, desc string) {
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i]), string(bytes.TrimSpace(hdr[i+1:]))
	}
	return string(hdr), ""
}
