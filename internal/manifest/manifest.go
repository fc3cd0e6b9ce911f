// Package manifest records the provenance of a query run in run.json.
package manifest

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/blake2b"

	"gfaquery/internal/errs"
	"gfaquery/internal/graph"
)

// FileName is the manifest's name inside the output directory.
const FileName = "run.json"

// Input identifies one input file.
type Input struct {
	Path    string `json:"path"`
	Blake2b string `json:"blake2b_256,omitempty"` // hex digest of the raw bytes
}

// Counts are the totals of a run.
type Counts struct {
	Records int `json:"records"`
	Kmers   int `json:"kmers"`
	Found   int `json:"found"`
	Skipped int `json:"skipped"`
}

// Manifest is written once per run, after the results.
type Manifest struct {
	Tool     string      `json:"tool"`
	Version  string      `json:"version"`
	GFA      Input       `json:"gfa"`
	Query    Input       `json:"query"`
	K        int         `json:"k"`
	Threads  int         `json:"threads"`
	Format   string      `json:"format"`
	Results  string      `json:"results,omitempty"` // empty when streamed to stdout
	Unitigs  string      `json:"unitigs,omitempty"`
	Graph    graph.Stats `json:"graph"`
	Counts   Counts      `json:"counts"`
	Started  time.Time   `json:"started"`
	Loaded   time.Time   `json:"graph_loaded"`
	Finished time.Time   `json:"finished"`
}

// NewDigest returns the hash used for input digests (BLAKE2b-256).
func NewDigest() hash.Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		// only possible with an oversized key
		panic(err)
	}
	return h
}

// Hex formats the current sum of h.
func Hex(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}

// Write stores m as indented JSON in dir/run.json and returns the path.
func Write(dir string, m Manifest) (string, error) {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}
	fn := filepath.Join(dir, FileName)
	if err := os.WriteFile(fn, append(b, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("%w: write manifest: %w", errs.ErrIO, err)
	}
	return fn, nil
}

// Read loads a manifest written by Write.
func Read(fn string) (Manifest, error) {
	var m Manifest
	b, err := os.ReadFile(fn)
	if err != nil {
		return m, fmt.Errorf("%w: read manifest: %w", errs.ErrIO, err)
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return m, fmt.Errorf("%s: %w", fn, err)
	}
	return m, nil
}
