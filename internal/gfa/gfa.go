// Package gfa reads and writes the subset of GFA 1.0 used to exchange
// compacted de Bruijn graphs: header (H), segment (S) and link (L) lines.
// Other record types are skipped.
package gfa

import (
	"fmt"
	"strconv"
	"strings"
)

// Orient is the orientation of a segment end in a link.
type Orient byte

const (
	Forward Orient = '+'
	Reverse Orient = '-'
)

func (o Orient) String() string { return string(o) }

// Flip returns the opposite orientation.
func (o Orient) Flip() Orient {
	if o == Forward {
		return Reverse
	}
	return Forward
}

// ParseOrient parses "+" or "-".
func ParseOrient(s string) (Orient, error) {
	switch s {
	case "+":
		return Forward, nil
	case "-":
		return Reverse, nil
	}
	return 0, fmt.Errorf("bad orientation %q", s)
}

// Segment is an S line. Seq is empty when the file stores "*".
type Segment struct {
	Name   string
	Seq    string
	Length int // LN:i tag, or len(Seq) when absent
	Tags   []string
}

// HasSeq reports whether the segment carries its sequence.
func (s Segment) HasSeq() bool { return s.Seq != "" }

// Link is an L line.
type Link struct {
	From       string
	FromOrient Orient
	To         string
	ToOrient   Orient
	Overlap    string // CIGAR or "*"
}

// Flip returns the same adjacency read from the other strand.
func (l Link) Flip() Link {
	return Link{
		From:       l.To,
		FromOrient: l.ToOrient.Flip(),
		To:         l.From,
		ToOrient:   l.FromOrient.Flip(),
		Overlap:    l.Overlap,
	}
}

// IsCanonical reports whether From sorts before To.
func (l Link) IsCanonical() bool { return l.From < l.To }

// Canonical orders the link so the lexicographically lower name comes first.
// A link that is not canonical is flipped once; self links are therefore
// always flipped.
func (l Link) Canonical() Link {
	if l.IsCanonical() {
		return l
	}
	return l.Flip()
}

// String renders the link as a GFA L line without the trailing newline.
func (l Link) String() string {
	ov := l.Overlap
	if ov == "" {
		ov = "*"
	}
	return strings.Join([]string{"L", l.From, l.FromOrient.String(), l.To, l.ToOrient.String(), ov}, "\t")
}

// ParseError reports a malformed line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string { return fmt.Sprintf("gfa line %d: %s", e.Line, e.Msg) }

func parseSegment(fields []string) (Segment, error) {
	if len(fields) < 3 {
		return Segment{}, fmt.Errorf("segment needs 3 fields, got %d", len(fields))
	}
	s := Segment{Name: fields[1], Tags: fields[3:]}
	if s.Name == "" {
		return Segment{}, fmt.Errorf("segment with empty name")
	}
	if fields[2] != "*" {
		s.Seq = fields[2]
		s.Length = len(s.Seq)
	}
	for _, tag := range s.Tags {
		if !strings.HasPrefix(tag, "LN:i:") {
			continue
		}
		n, err := strconv.Atoi(tag[len("LN:i:"):])
		if err != nil || n < 0 {
			return Segment{}, fmt.Errorf("segment %s: bad LN tag %q", s.Name, tag)
		}
		if s.Seq != "" && n != len(s.Seq) {
			return Segment{}, fmt.Errorf("segment %s: LN:i:%d disagrees with sequence length %d", s.Name, n, len(s.Seq))
		}
		s.Length = n
	}
	return s, nil
}

func parseLink(fields []string) (Link, error) {
	if len(fields) < 5 {
		return Link{}, fmt.Errorf("link needs at least 5 fields, got %d", len(fields))
	}
	fo, err := ParseOrient(fields[2])
	if err != nil {
		return Link{}, err
	}
	to, err := ParseOrient(fields[4])
	if err != nil {
		return Link{}, err
	}
	l := Link{From: fields[1], FromOrient: fo, To: fields[3], ToOrient: to, Overlap: "*"}
	if len(fields) > 5 && fields[5] != "" {
		l.Overlap = fields[5]
	}
	return l, nil
}
