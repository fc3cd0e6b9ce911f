package writers

import (
	"bufio"
	"io"
	"strconv"

	"gfaquery/internal/pipeline"
)

func init() {
	Register(Format{Name: "text", Ext: "txt", Write: WriteText})
}

// WriteText renders the human-readable report: a "---- name ----" banner per
// record followed by one sentence per k-mer.
func WriteText(w io.Writer, in <-chan pipeline.Result) error {
	bw := bufio.NewWriterSize(w, 64<<10)
	var line []byte
	for res := range in {
		line = append(line[:0], "---- "...)
		line = append(line, res.Record.Name...)
		line = append(line, " ----\n"...)
		if _, err := bw.Write(line); err != nil {
			return err
		}
		for _, l := range res.Lookups {
			line = appendTextLine(line[:0], l)
			if _, err := bw.Write(line); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func appendTextLine(b []byte, l pipeline.Lookup) []byte {
	b = append(b, "Kmer "...)
	b = append(b, l.Kmer.Seq...)
	if !l.Hit.Found {
		return append(b, " was not found\n"...)
	}
	b = append(b, " was found in the "...)
	b = append(b, l.Hit.Strand.String()...)
	b = append(b, " direction of unitig "...)
	b = append(b, l.Hit.Unitig...)
	b = append(b, " at position "...)
	b = strconv.AppendInt(b, int64(l.Hit.Offset), 10)
	return append(b, '\n')
}
