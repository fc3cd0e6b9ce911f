// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"gfaquery/internal/jsonlutil"
	"gfaquery/internal/pipeline"
	"gfaquery/pkg/api"
)

func init() {
	Register(Format{Name: "jsonl", Ext: "jsonl", Write: WriteJSONL})
}

// WriteJSONL streams each lookup as one api.ResultV1 line.
func WriteJSONL(w io.Writer, in <-chan pipeline.Result) error {
	return jsonlutil.Encode[pipeline.Result](w, in, func(enc *json.Encoder, res pipeline.Result) error {
		for _, l := range res.Lookups {
			if err := enc.Encode(ToAPIResult(res.Record.Name, l)); err != nil {
				return err
			}
		}
		return nil
	})
}

// ToAPIResult converts one lookup to its wire form.
func ToAPIResult(query string, l pipeline.Lookup) api.ResultV1 {
	v := api.ResultV1{
		Query:   query,
		KmerPos: l.Kmer.Pos,
		Kmer:    l.Kmer.Seq,
		Found:   l.Hit.Found,
	}
	if l.Hit.Found {
		off := l.Hit.Offset
		v.Unitig = l.Hit.Unitig
		v.UnitigLen = l.Hit.UnitigLen
		v.Strand = l.Hit.Strand.String()
		v.Offset = &off
	}
	return v
}
