// internal/gfa/reader.go
package gfa

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"gfaquery/internal/fileio"
)

// Handler receives parsed records. Nil callbacks skip that record type.
type Handler struct {
	Header  func(tags []string) error
	Segment func(Segment) error
	Link    func(Link) error
}

// Read scans GFA from r in file order and dispatches each H, S and L line to h.
// Empty lines and '#' comments are ignored. Malformed lines yield a
// *ParseError; handler errors are returned unchanged. ctx is checked every
// few thousand lines.
func Read(ctx context.Context, r io.Reader, h Handler) error {
	lr := fileio.NewLineReader(r)
	for {
		line, err := lr.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if lr.Line()%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		line = bytes.TrimRight(line, " \t")
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		switch line[0] {
		case 'H':
			if h.Header == nil {
				continue
			}
			if err := h.Header(split(line)[1:]); err != nil {
				return err
			}
		case 'S':
			if h.Segment == nil {
				continue
			}
			s, perr := parseSegment(split(line))
			if perr != nil {
				return &ParseError{Line: lr.Line(), Msg: perr.Error()}
			}
			if err := h.Segment(s); err != nil {
				return err
			}
		case 'L':
			if h.Link == nil {
				continue
			}
			l, perr := parseLink(split(line))
			if perr != nil {
				return &ParseError{Line: lr.Line(), Msg: perr.Error()}
			}
			if err := h.Link(l); err != nil {
				return err
			}
		}
	}
}

func split(line []byte) []string {
	return strings.Split(string(line), "\t")
}
