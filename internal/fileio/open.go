// internal/fileio/open.go
package fileio

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a reader over path. "-" selects stdin. Gzip input is detected by
// magic number (1F 8B) or by a .gz suffix and decompressed transparently.
//
// If tee is non-nil it receives every raw byte read from the underlying file
// (compressed bytes for gzip input), which lets callers hash an input while it
// is being parsed.
func Open(path string, tee io.Writer) (io.ReadCloser, error) {
	var (
		src     io.Reader
		closers []io.Closer
	)
	if path == Stdin {
		src = os.Stdin
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src = fh
		closers = append(closers, fh)
	}
	if tee != nil {
		src = io.TeeReader(src, tee)
	}

	br := bufio.NewReaderSize(src, 64<<10)
	sig, _ := br.Peek(2)
	if (len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(br)
		if err != nil {
			for _, c := range closers {
				_ = c.Close()
			}
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: append([]io.Closer{gr}, closers...)}, nil
	}
	return &multiReadCloser{Reader: br, closers: closers}, nil
}
