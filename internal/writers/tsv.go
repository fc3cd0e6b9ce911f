package writers

import (
	"bufio"
	"io"
	"strconv"

	"gfaquery/internal/pipeline"
)

// TSVHeader is the first line of tsv output.
const TSVHeader = "query\tkmer_pos\tkmer\tfound\tunitig\tstrand\toffset"

func init() {
	Register(Format{Name: "tsv", Ext: "tsv", Write: WriteTSV})
}

// WriteTSV emits one row per k-mer. Columns that only apply to hits hold "."
// for misses.
func WriteTSV(w io.Writer, in <-chan pipeline.Result) error {
	bw := bufio.NewWriterSize(w, 64<<10)
	if _, err := bw.WriteString(TSVHeader + "\n"); err != nil {
		return err
	}
	var row []byte
	for res := range in {
		for _, l := range res.Lookups {
			row = append(row[:0], res.Record.Name...)
			row = append(row, '\t')
			row = strconv.AppendInt(row, int64(l.Kmer.Pos), 10)
			row = append(row, '\t')
			row = append(row, l.Kmer.Seq...)
			if l.Hit.Found {
				row = append(row, "\ttrue\t"...)
				row = append(row, l.Hit.Unitig...)
				row = append(row, '\t')
				row = append(row, l.Hit.Strand.String()...)
				row = append(row, '\t')
				row = strconv.AppendInt(row, int64(l.Hit.Offset), 10)
			} else {
				row = append(row, "\tfalse\t.\t.\t."...)
			}
			row = append(row, '\n')
			if _, err := bw.Write(row); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
