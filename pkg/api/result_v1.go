// pkg/api/result_v1.go
package api

// ResultV1 is the stable JSON/JSONL schema for one k-mer lookup.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ResultV1 struct {
	Query   string `json:"query"`    // FASTA record name
	KmerPos int    `json:"kmer_pos"` // 0-based start of the k-mer in the query
	Kmer    string `json:"kmer"`
	Found   bool   `json:"found"`

	// Set only when Found.
	Unitig    string `json:"unitig,omitempty"`
	UnitigLen int    `json:"unitig_len,omitempty"`
	Strand    string `json:"strand,omitempty"` // "forward" | "reverse-complement"
	Offset    *int   `json:"offset,omitempty"` // 0-based, in the unitig's stored orientation
}
