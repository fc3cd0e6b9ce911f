package bcalm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"gfaquery/internal/errs"
	"gfaquery/internal/fasta"
	"gfaquery/internal/gfa"
	"gfaquery/internal/logging"
)

// GFAVersion is written in the H line.
const GFAVersion = "1.0"

// Options controls Convert.
type Options struct {
	NoSequence bool // write "*" and an LN tag instead of the sequence
	Logger     *log.Logger
}

// Stats summarizes a conversion.
type Stats struct {
	Segments       int
	Links          int // unique canonical links written
	DuplicateLinks int // links dropped as already seen (each edge is listed from both ends)
}

// Convert reads unitig FASTA from r and writes GFA to w: the header, one S
// line per record in input order, then every distinct canonical link in
// first-seen order.
func Convert(ctx context.Context, r io.Reader, w io.Writer, opt Options) (Stats, error) {
	return convertReader(ctx, fasta.NewReader(r), w, opt)
}

func convertReader(ctx context.Context, fr *fasta.Reader, w io.Writer, opt Options) (Stats, error) {
	logger := opt.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	var st Stats
	gw := gfa.NewWriter(w)
	if err := gw.Header(GFAVersion); err != nil {
		return st, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	ids := make(map[string]struct{})
	seen := make(map[gfa.Link]struct{})
	var links []gfa.Link

	err := fasta.StreamReader(ctx, fr, func(rec fasta.Record) error {
		h, err := ParseHeader(rec.Name + " " + rec.Desc)
		if err != nil {
			return err
		}
		if _, dup := ids[h.ID]; dup {
			return fmt.Errorf("duplicate unitig id %s", h.ID)
		}
		ids[h.ID] = struct{}{}
		if h.Length >= 0 && h.Length != len(rec.Seq) {
			logger.Warn("length annotation disagrees with sequence", "unitig", h.ID, "LN", h.Length, "len", len(rec.Seq))
		}

		seg := gfa.Segment{Name: h.ID, Length: len(rec.Seq)}
		if !opt.NoSequence {
			seg.Seq = rec.Seq
		}
		if err := gw.Segment(seg); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrIO, err)
		}
		st.Segments++

		for _, l := range h.Links {
			l = l.Canonical()
			if _, ok := seen[l]; ok {
				st.DuplicateLinks++
				continue
			}
			seen[l] = struct{}{}
			links = append(links, l)
		}
		return nil
	})
	if err != nil {
		return st, err
	}

	for _, l := range links {
		if _, ok := ids[l.From]; !ok {
			logger.Warn("link references unknown unitig", "link", l.String(), "unitig", l.From)
		} else if _, ok := ids[l.To]; !ok {
			logger.Warn("link references unknown unitig", "link", l.String(), "unitig", l.To)
		}
		if err := gw.Link(l); err != nil {
			return st, fmt.Errorf("%w: %w", errs.ErrIO, err)
		}
	}
	st.Links = len(links)
	if err := gw.Flush(); err != nil {
		return st, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}
	return st, nil
}

// DefaultOutput replaces the last extension of in with ".gfa"
// ("unitigs.fa" → "unitigs.gfa", "x.fa.gz" → "x.fa.gfa").
func DefaultOutput(in string) string {
	ext := filepath.Ext(in)
	return strings.TrimSuffix(in, ext) + ".gfa"
}

// ConvertFile converts the FASTA at in (gzip ok, "-" for stdin) to a new GFA
// file at out. out must not exist.
func ConvertFile(ctx context.Context, in, out string, opt Options) (Stats, error) {
	fr, err := fasta.Open(in)
	if err != nil {
		return Stats{}, err
	}
	defer fr.Close()

	fh, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return Stats{}, fmt.Errorf("%w: output %s already exists", errs.ErrConfig, out)
		}
		return Stats{}, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}
	st, err := convertReader(ctx, fr, fh, opt)
	if cerr := fh.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: %w", errs.ErrIO, cerr)
	}
	return st, err
}
