// Package kmer cuts sequences into fixed-length windows usable as graph keys.
//
// Extraction is a pure function of its input: calling Extract again on the
// same sequence yields the same k-mers in the same order.
package kmer

// DefaultK is the k-mer size used when none is configured.
const DefaultK = 31

// Kmer is a window of a sequence. Seq is a substring of the input and shares
// its memory.
type Kmer struct {
	Pos int
	Seq string
}

// ValidBase reports whether b is one of the upper-case bases A, C, G, T.
func ValidBase(b byte) bool {
	return b == 'A' || b == 'C' || b == 'G' || b == 'T'
}

// Windows returns the number of candidate windows of size k in a sequence of
// length n, before any filtering.
func Windows(n, k int) int {
	if k <= 0 || n < k {
		return 0
	}
	return n - k + 1
}

// Extract slides a window of size k over seq one position at a time and calls
// yield for every window made only of A, C, G and T. Windows holding any other
// byte (N, lower case, IUPAC codes) are skipped, never substituted. Iteration
// stops early when yield returns false.
func Extract(seq string, k int, yield func(Kmer) bool) {
	if Windows(len(seq), k) == 0 {
		return
	}
	// bad is the index of the most recent invalid byte seen, -1 if none.
	bad := -1
	for i := 0; i < len(seq); i++ {
		if !ValidBase(seq[i]) {
			bad = i
		}
		start := i - k + 1
		if start < 0 || bad >= start {
			continue
		}
		if !yield(Kmer{Pos: start, Seq: seq[start : i+1]}) {
			return
		}
	}
}

// Collect returns every k-mer Extract would yield.
func Collect(seq string, k int) []Kmer {
	out := make([]Kmer, 0, Windows(len(seq), k))
	Extract(seq, k, func(km Kmer) bool {
		out = append(out, km)
		return true
	})
	return out
}
