// Package graph answers k-mer membership queries against a compacted de
// Bruijn graph read from GFA.
//
// Every k-mer of every segment (unitig) is stored once under its canonical
// code, the smaller of its 2-bit encoding and that of its reverse complement,
// together with the unitig, the 0-based offset of the window in the unitig's
// stored orientation, and whether the stored orientation is the canonical one.
// A query is canonicalized the same way, so a k-mer and its reverse complement
// resolve to the same (unitig, offset) with opposite strands.
//
// An Index is immutable once Load returns and may be queried from any number
// of goroutines.
package graph

// Strand tells whether a queried k-mer reads along the unitig as stored
// (Forward) or along its reverse complement.
type Strand uint8

const (
	Forward Strand = iota
	ReverseComplement
)

func (s Strand) String() string {
	if s == Forward {
		return "forward"
	}
	return "reverse-complement"
}

// Hit is the answer to a single lookup. Unitig, UnitigLen, Strand and Offset
// are meaningful only when Found is true.
type Hit struct {
	Found     bool
	Unitig    string
	UnitigLen int
	Strand    Strand
	Offset    int
}

// Graph is the query surface the orchestrator depends on.
type Graph interface {
	K() int
	Find(kmer string) Hit
}

// UnitigLister is implemented by graphs that can enumerate their unitigs in
// file order. fn returns false to stop.
type UnitigLister interface {
	Unitigs(fn func(name, seq string) bool)
}

// Stats summarizes a loaded graph.
type Stats struct {
	Segments   int // S lines
	Links      int // L lines
	Kmers      int // distinct canonical k-mers indexed
	Duplicates int // k-mers seen again after their first occurrence
	Short      int // segments shorter than k
	Skipped    int // windows dropped for non-ACGT bases
}
