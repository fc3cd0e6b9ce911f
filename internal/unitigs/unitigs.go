// Package unitigs exports the segments of a loaded graph as FASTA.
package unitigs

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"gfaquery/internal/errs"
	"gfaquery/internal/graph"
)

// FileName is the export's name inside the output directory.
const FileName = "unitigs.fa"

// LineWidth is the number of bases per FASTA line.
const LineWidth = 60

// Write emits every unitig of g, in file order, as a FASTA record named
// after its segment. It returns the number of records written.
func Write(w io.Writer, g graph.UnitigLister) (int, error) {
	fw := fasta.NewWriter(w, LineWidth)
	var (
		n   int
		err error
	)
	g.Unitigs(func(name, seq string) bool {
		s := linear.NewSeq(name, alphabet.BytesToLetters([]byte(seq)), alphabet.DNA)
		if _, err = fw.Write(s); err != nil {
			return false
		}
		n++
		return true
	})
	return n, err
}

// WriteFile creates path and writes the unitigs of g to it. An existing file
// is an error.
func WriteFile(path string, g graph.UnitigLister) (int, error) {
	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("%w: create unitigs: %w", errs.ErrIO, err)
	}
	bw := bufio.NewWriterSize(fh, 64<<10)
	n, err := Write(bw, g)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := fh.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("%w: write unitigs: %w", errs.ErrIO, err)
	}
	return n, nil
}
