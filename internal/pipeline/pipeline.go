// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"io"
	"sync"

	"gfaquery/internal/fasta"
	"gfaquery/internal/graph"
	"gfaquery/internal/kmer"
)

// Config controls the query pipeline.
type Config struct {
	Threads int // number of worker goroutines (>=1)
	// Window bounds the records in flight (queued, being looked up, or waiting
	// to be visited in order). 0 means Threads*4.
	Window int
}

// Lookup is one k-mer of a record and the graph's answer for it.
type Lookup struct {
	Kmer kmer.Kmer
	Hit  graph.Hit
}

// Result holds every lookup of one record, in extraction order.
type Result struct {
	Index   int // 0-based record ordinal in the input
	Record  fasta.Record
	Lookups []Lookup
	Skipped int // windows dropped for non-ACGT bases
}

// LookupRecord runs the extractor over one record and queries g for each k-mer.
func LookupRecord(g graph.Graph, rec fasta.Record) ([]Lookup, int) {
	k := g.K()
	n := kmer.Windows(len(rec.Seq), k)
	out := make([]Lookup, 0, n)
	kmer.Extract(rec.Seq, k, func(km kmer.Kmer) bool {
		out = append(out, Lookup{Kmer: km, Hit: g.Find(km.Seq)})
		return true
	})
	return out, n - len(out)
}

// ForEachRecord reads r to the end, looks up every record on cfg.Threads
// workers and calls visit once per record in input order. visit runs on a
// single goroutine. The first error wins: a read error, a visit error or
// context cancellation stops the feeder and is returned.
func ForEachRecord(
	ctx context.Context,
	cfg Config,
	r *fasta.Reader,
	g graph.Graph,
	visit func(Result) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if cfg.Window < cfg.Threads {
		cfg.Window = cfg.Threads * 4
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct {
		idx int
		rec fasta.Record
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan Result, cfg.Threads*2)
	slots := make(chan struct{}, cfg.Window)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					lookups, skipped := LookupRecord(g, j.rec)
					select {
					case results <- Result{Index: j.idx, Record: j.rec, Lookups: lookups, Skipped: skipped}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector + re-orderer
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := make(map[int]Result, cfg.Window)
		next := 0
		for res := range results {
			if cerr != nil {
				continue
			}
			pending[res.Index] = res
			for {
				p, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if err := visit(p); err != nil {
					cerr = err
					cancel()
					break
				}
				<-slots
			}
		}
	}()

	// Feed work
	var ferr error
	idx := 0
feed:
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			ferr = err
			break
		}
		select {
		case <-ctx.Done():
			break feed
		case slots <- struct{}{}:
		}
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{idx: idx, rec: rec}:
		}
		idx++
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	switch {
	case cerr != nil:
		return cerr
	case ferr != nil:
		return ferr
	}
	return ctx.Err()
}
