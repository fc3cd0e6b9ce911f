// internal/graph/index.go
package graph

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shenwei356/kmers"
	"golang.org/x/sync/errgroup"

	"gfaquery/internal/errs"
	"gfaquery/internal/fileio"
	"gfaquery/internal/gfa"
	"gfaquery/internal/kmer"
	"gfaquery/internal/logging"
)

// MaxK is the largest k that fits a 2-bit code in a uint64 with odd k.
const MaxK = 31

// Options controls Load.
type Options struct {
	K       int
	Threads int       // workers used to build the index (>= 1)
	Digest  io.Writer // if set, receives the raw bytes of the file
	Logger  *log.Logger
}

// Index is the in-memory k-mer index over a GFA graph.
type Index struct {
	k     int
	names []string
	seqs  []string
	locs  map[uint64]uint64 // canonical code -> packed location
	stats Stats
}

var _ Graph = (*Index)(nil)
var _ UnitigLister = (*Index)(nil)

// packed location: unitig<<33 | offset<<1 | canonical-is-forward
func pack(unitig, offset int, fwd bool) uint64 {
	v := uint64(unitig)<<33 | uint64(offset)<<1
	if fwd {
		v |= 1
	}
	return v
}

func unpack(v uint64) (unitig, offset int, fwd bool) {
	return int(v >> 33), int((v >> 1) & math.MaxUint32), v&1 == 1
}

// ValidateK reports whether k can be indexed: odd and within 1..MaxK. Even k
// admits palindromic k-mers whose strand is undefined.
func ValidateK(k int) error {
	if k < 1 || k > MaxK || k%2 == 0 {
		return fmt.Errorf("k-mer size must be odd and between 1 and %d, got %d", MaxK, k)
	}
	return nil
}

func (o Options) validate() error {
	if o.Threads < 1 {
		return fmt.Errorf("%w: thread count must be at least 1, got %d", errs.ErrGraphLoad, o.Threads)
	}
	if err := ValidateK(o.K); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrGraphLoad, err)
	}
	return nil
}

// Load reads the GFA at path ("-" for stdin, gzip detected) and indexes its
// segments. Every failure, including invalid options, is an errs.ErrGraphLoad.
func Load(ctx context.Context, path string, opt Options) (*Index, error) {
	if err := opt.validate(); err != nil {
		return nil, err
	}
	rc, err := fileio.Open(path, opt.Digest)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", errs.ErrGraphLoad, path, err)
	}
	defer rc.Close()

	idx, err := Build(ctx, rc, opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return idx, nil
}

// Build parses GFA from r and indexes it. See Load.
func Build(ctx context.Context, r io.Reader, opt Options) (*Index, error) {
	if err := opt.validate(); err != nil {
		return nil, err
	}
	logger := opt.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	x := &Index{k: opt.K}
	byName := make(map[string]int)
	var links []gfa.Link
	err := gfa.Read(ctx, r, gfa.Handler{
		Segment: func(s gfa.Segment) error {
			if !s.HasSeq() {
				return fmt.Errorf("segment %s has no sequence", s.Name)
			}
			if _, dup := byName[s.Name]; dup {
				return fmt.Errorf("duplicate segment %s", s.Name)
			}
			if uint64(len(s.Seq)) > math.MaxUint32 || len(x.names) >= 1<<31 {
				return fmt.Errorf("segment %s exceeds index limits", s.Name)
			}
			byName[s.Name] = len(x.names)
			x.names = append(x.names, s.Name)
			x.seqs = append(x.seqs, strings.ToUpper(s.Seq))
			return nil
		},
		Link: func(l gfa.Link) error {
			links = append(links, l)
			return nil
		},
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", errs.ErrGraphLoad, err)
	}
	if len(x.names) == 0 {
		return nil, fmt.Errorf("%w: no segments", errs.ErrGraphLoad)
	}
	for _, l := range links {
		for _, name := range []string{l.From, l.To} {
			if _, ok := byName[name]; !ok {
				return nil, fmt.Errorf("%w: link %s references unknown segment %s", errs.ErrGraphLoad, l, name)
			}
		}
	}
	x.stats.Segments = len(x.names)
	x.stats.Links = len(links)

	logger.Debug("indexing segments", "segments", x.stats.Segments, "links", x.stats.Links, "k", x.k, "threads", opt.Threads)
	if err := x.index(ctx, opt.Threads); err != nil {
		return nil, err
	}
	if x.stats.Duplicates > 0 {
		logger.Warn("k-mers occur in more than one position; first occurrence wins", "duplicates", x.stats.Duplicates)
	}
	return x, nil
}

type shard struct {
	locs       map[uint64]uint64
	duplicates int
	short      int
	skipped    int
}

// index fills x.locs. Segments are split into contiguous ranges built in
// parallel and merged in range order, so the first occurrence of a k-mer in
// file order always wins regardless of thread count.
func (x *Index) index(ctx context.Context, threads int) error {
	n := len(x.seqs)
	parts := threads * 4
	if parts > n {
		parts = n
	}
	shards := make([]shard, parts)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for p := 0; p < parts; p++ {
		lo, hi := p*n/parts, (p+1)*n/parts
		g.Go(func() error {
			return x.indexRange(gctx, lo, hi, &shards[p])
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	total := 0
	for i := range shards {
		total += len(shards[i].locs)
	}
	x.locs = make(map[uint64]uint64, total)
	for i := range shards {
		s := &shards[i]
		x.stats.Duplicates += s.duplicates
		x.stats.Short += s.short
		x.stats.Skipped += s.skipped
		for code, v := range s.locs {
			if _, seen := x.locs[code]; seen {
				x.stats.Duplicates++
				continue
			}
			x.locs[code] = v
		}
		s.locs = nil
	}
	x.stats.Kmers = len(x.locs)
	return nil
}

func (x *Index) indexRange(ctx context.Context, lo, hi int, s *shard) error {
	k := x.k
	size := 0
	for u := lo; u < hi; u++ {
		size += kmer.Windows(len(x.seqs[u]), k)
	}
	s.locs = make(map[uint64]uint64, size)
	for u := lo; u < hi; u++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		seq := x.seqs[u]
		if len(seq) < k {
			s.short++
			continue
		}
		b := []byte(seq)
		valid := 0
		kmer.Extract(seq, k, func(km kmer.Kmer) bool {
			valid++
			code, _ := kmers.Encode(b[km.Pos : km.Pos+k])
			canon, fwd := canonical(code, k)
			if _, seen := s.locs[canon]; seen {
				s.duplicates++
				return true
			}
			s.locs[canon] = pack(u, km.Pos, fwd)
			return true
		})
		s.skipped += kmer.Windows(len(seq), k) - valid
	}
	return nil
}

// canonical returns the canonical code and whether code itself is canonical.
func canonical(code uint64, k int) (uint64, bool) {
	rc := kmers.RevComp(code, k)
	if rc < code {
		return rc, false
	}
	return code, true
}

// K returns the k-mer size of the index.
func (x *Index) K() int { return x.k }

// Stats returns load statistics.
func (x *Index) Stats() Stats { return x.stats }

// Find looks up one k-mer. Input of the wrong length or containing anything
// but A, C, G, T is reported as not found.
func (x *Index) Find(s string) Hit {
	if len(s) != x.k {
		return Hit{}
	}
	for i := 0; i < len(s); i++ {
		if !kmer.ValidBase(s[i]) {
			return Hit{}
		}
	}
	code, err := kmers.Encode([]byte(s))
	if err != nil {
		return Hit{}
	}
	canon, queryFwd := canonical(code, x.k)
	v, ok := x.locs[canon]
	if !ok {
		return Hit{}
	}
	u, off, unitigFwd := unpack(v)
	strand := Forward
	if queryFwd != unitigFwd {
		strand = ReverseComplement
	}
	return Hit{
		Found:     true,
		Unitig:    x.names[u],
		UnitigLen: len(x.seqs[u]),
		Strand:    strand,
		Offset:    off,
	}
}

// Unitigs calls fn for every segment in file order until fn returns false.
func (x *Index) Unitigs(fn func(name, seq string) bool) {
	for i := range x.names {
		if !fn(x.names[i], x.seqs[i]) {
			return
		}
	}
}
