// Package bcalm converts BCALM2/ggcat unitig FASTA into GFA 1.0.
//
// Each record header carries the unitig id followed by space-separated
// annotations, e.g.
//
//	>1 LN:i:31 L:+:5:+ L:+:35509:- L:-:0:+
//
// where L:<o1>:<id>:<o2> is an edge from this unitig (orientation o1) to
// unitig id (orientation o2). Tokens other than LN and L are ignored.
package bcalm

import (
	"fmt"
	"strconv"
	"strings"

	"gfaquery/internal/gfa"
)

// Header is a parsed BCALM header.
type Header struct {
	ID     string
	Length int // LN:i value, -1 when absent
	Links  []gfa.Link
}

// ParseHeader parses a header line without the leading '>'.
func ParseHeader(s string) (Header, error) {
	tokens := strings.Split(strings.TrimSpace(s), " ")
	h := Header{ID: tokens[0], Length: -1}
	if h.ID == "" {
		return h, fmt.Errorf("header %q has no id", s)
	}
	for _, t := range tokens[1:] {
		switch {
		case strings.HasPrefix(t, "LN:i:"):
			n, err := strconv.Atoi(t[len("LN:i:"):])
			if err != nil || n < 0 {
				return h, fmt.Errorf("unitig %s: bad length %q", h.ID, t)
			}
			h.Length = n
		case strings.HasPrefix(t, "L:"):
			l, err := parseEdge(h.ID, t[len("L:"):])
			if err != nil {
				return h, fmt.Errorf("unitig %s: %w", h.ID, err)
			}
			h.Links = append(h.Links, l)
		}
	}
	return h, nil
}

// parseEdge parses "<o1>:<id>:<o2>".
func parseEdge(from, t string) (gfa.Link, error) {
	if len(t) < 5 || t[1] != ':' || t[len(t)-2] != ':' {
		return gfa.Link{}, fmt.Errorf("bad edge %q", "L:"+t)
	}
	fo, err := gfa.ParseOrient(t[:1])
	if err != nil {
		return gfa.Link{}, fmt.Errorf("edge %q: %w", "L:"+t, err)
	}
	to, err := gfa.ParseOrient(t[len(t)-1:])
	if err != nil {
		return gfa.Link{}, fmt.Errorf("edge %q: %w", "L:"+t, err)
	}
	return gfa.Link{From: from, FromOrient: fo, To: t[2 : len(t)-2], ToOrient: to, Overlap: "*"}, nil
}
