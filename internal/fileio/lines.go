package fileio

import (
	"bufio"
	"bytes"
	"io"
)

// LineReader reads newline-terminated lines of any length. The returned slice
// is only valid until the next call.
type LineReader struct {
	br   *bufio.Reader
	line []byte
	n    int
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{br: bufio.NewReaderSize(r, 64<<10)}
}

// ReadLine returns the next line without "\n" or "\r\n". A final line without
// a terminator is returned normally; io.EOF is returned only when no bytes
// remain.
func (l *LineReader) ReadLine() ([]byte, error) {
	l.line = l.line[:0]
	for {
		chunk, err := l.br.ReadSlice('\n')
		l.line = append(l.line, chunk...)
		switch err {
		case nil:
			l.n++
			return trimEOL(l.line), nil
		case bufio.ErrBufferFull:
			continue
		case io.EOF:
			if len(l.line) == 0 {
				return nil, io.EOF
			}
			l.n++
			return trimEOL(l.line), nil
		default:
			return nil, err
		}
	}
}

// Line is the 1-based number of the line last returned.
func (l *LineReader) Line() int { return l.n }

func trimEOL(b []byte) []byte {
	b = bytes.TrimSuffix(b, []byte{'\n'})
	return bytes.TrimSuffix(b, []byte{'\r'})
}
