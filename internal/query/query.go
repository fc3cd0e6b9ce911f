// Package query runs a whole k-mer query: it prepares the output directory,
// loads the graph, streams the query FASTA through the lookup pipeline and
// writes results, optional unitigs and the run manifest.
package query

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"gfaquery/internal/errs"
	"gfaquery/internal/fasta"
	"gfaquery/internal/graph"
	"gfaquery/internal/kmer"
	"gfaquery/internal/logging"
	"gfaquery/internal/manifest"
	"gfaquery/internal/pipeline"
	"gfaquery/internal/unitigs"
	"gfaquery/internal/version"
	"gfaquery/internal/writers"
)

// LoaderFunc builds the graph handle. Tests substitute fakes.
type LoaderFunc func(ctx context.Context, path string, opt graph.Options) (graph.Graph, error)

// LoadIndex is the default LoaderFunc.
func LoadIndex(ctx context.Context, path string, opt graph.Options) (graph.Graph, error) {
	return graph.Load(ctx, path, opt)
}

// Config is everything a run needs. There is no process-wide state.
type Config struct {
	GFAPath   string
	FastaPath string
	OutputDir string // must not exist yet

	Threads int    // graph load and query workers (>=1)
	K       int    // k-mer size; 0 means kmer.DefaultK
	Format  string // registered writer format; "" means text

	Stdout       io.Writer // if set, results go here instead of OutputDir
	WriteUnitigs bool      // also write OutputDir/unitigs.fa

	Loader LoaderFunc  // nil means LoadIndex
	Logger *log.Logger // nil discards
}

// Summary totals a run.
type Summary struct {
	Records int // FASTA records processed
	Kmers   int // k-mers looked up
	Found   int // k-mers present in the graph
	Skipped int // windows dropped for non-ACGT bases
}

// ResultsPath returns where results are written for format inside dir.
func ResultsPath(dir, format string) (string, error) {
	f, err := writers.Lookup(format)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "results."+f.Ext), nil
}

func (c *Config) normalize() error {
	if c.K == 0 {
		c.K = kmer.DefaultK
	}
	if c.Format == "" {
		c.Format = "text"
	}
	if c.Loader == nil {
		c.Loader = LoadIndex
	}
	if c.Logger == nil {
		c.Logger = logging.Discard()
	}
	switch {
	case c.GFAPath == "":
		return fmt.Errorf("%w: no GFA path", errs.ErrConfig)
	case c.FastaPath == "":
		return fmt.Errorf("%w: no query FASTA path", errs.ErrConfig)
	case c.OutputDir == "":
		return fmt.Errorf("%w: no output directory", errs.ErrConfig)
	case c.Threads < 1:
		return fmt.Errorf("%w: thread count must be at least 1, got %d", errs.ErrConfig, c.Threads)
	}
	if err := graph.ValidateK(c.K); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrConfig, err)
	}
	if _, err := writers.Lookup(c.Format); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrConfig, err)
	}
	return nil
}

// Run executes one query. An existing OutputDir fails with errs.ErrConfig
// before any other file is touched. Once the directory is created it is left
// in place on failure.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	var sum Summary
	if err := cfg.normalize(); err != nil {
		return sum, err
	}
	logger := cfg.Logger
	m := manifest.Manifest{
		Tool:    "gfaquery",
		Version: version.Version,
		GFA:     manifest.Input{Path: cfg.GFAPath},
		Query:   manifest.Input{Path: cfg.FastaPath},
		K:       cfg.K,
		Threads: cfg.Threads,
		Format:  cfg.Format,
		Started: time.Now(),
	}

	if err := createOutputDir(cfg.OutputDir); err != nil {
		return sum, err
	}

	// Open the queries before the (slow) graph load so a bad path fails fast.
	fr, err := fasta.Open(cfg.FastaPath)
	if err != nil {
		return sum, err
	}
	defer fr.Close()

	digest := manifest.NewDigest()
	logger.Info("loading graph", "gfa", cfg.GFAPath, "k", cfg.K, "threads", cfg.Threads)
	g, err := cfg.Loader(ctx, cfg.GFAPath, graph.Options{
		K:       cfg.K,
		Threads: cfg.Threads,
		Digest:  digest,
		Logger:  logger,
	})
	if err != nil {
		if ctx.Err() != nil {
			return sum, ctx.Err()
		}
		if !errors.Is(err, errs.ErrGraphLoad) {
			err = fmt.Errorf("%w: %w", errs.ErrGraphLoad, err)
		}
		return sum, err
	}
	m.Loaded = time.Now()
	m.GFA.Blake2b = manifest.Hex(digest)
	if st, ok := g.(interface{ Stats() graph.Stats }); ok {
		m.Graph = st.Stats()
	}
	logger.Info("graph loaded", "k", g.K(), "segments", m.Graph.Segments, "links", m.Graph.Links,
		"kmers", m.Graph.Kmers, "elapsed", m.Loaded.Sub(m.Started).Round(time.Millisecond))

	sum, err = queryAll(ctx, cfg, fr, g, &m)
	if err != nil {
		return sum, err
	}

	if cfg.WriteUnitigs {
		if ul, ok := g.(graph.UnitigLister); ok {
			fn := filepath.Join(cfg.OutputDir, unitigs.FileName)
			n, err := unitigs.WriteFile(fn, ul)
			if err != nil {
				return sum, err
			}
			m.Unitigs = unitigs.FileName
			logger.Debug("unitigs written", "path", fn, "records", n)
		} else {
			logger.Warn("graph cannot list unitigs; skipping export")
		}
	}

	m.Counts = manifest.Counts(sum)
	m.Finished = time.Now()
	if _, err := manifest.Write(cfg.OutputDir, m); err != nil {
		return sum, err
	}
	logger.Info("query finished", "records", sum.Records, "kmers", sum.Kmers, "found", sum.Found,
		"skipped", sum.Skipped, "elapsed", m.Finished.Sub(m.Started).Round(time.Millisecond))
	return sum, nil
}

func createOutputDir(dir string) error {
	_, err := os.Stat(dir)
	switch {
	case err == nil:
		return fmt.Errorf("%w: output directory %s already exists", errs.ErrConfig, dir)
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", errs.ErrIO, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrIO, err)
	}
	return nil
}

// queryAll streams fr through the pipeline into the result writer.
func queryAll(ctx context.Context, cfg Config, fr *fasta.Reader, g graph.Graph, m *manifest.Manifest) (Summary, error) {
	var sum Summary

	out := cfg.Stdout
	var fh *os.File
	if out == nil {
		fn, err := ResultsPath(cfg.OutputDir, cfg.Format)
		if err != nil {
			return sum, err
		}
		fh, err = os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			return sum, fmt.Errorf("%w: create results: %w", errs.ErrIO, err)
		}
		defer fh.Close()
		out = fh
		m.Results = filepath.Base(fn)
	}

	in, werrCh := writers.StartResultWriter(out, cfg.Format, cfg.Threads*4)
	var (
		werr       error
		writerDone bool
	)
	perr := pipeline.ForEachRecord(ctx, pipeline.Config{Threads: cfg.Threads}, fr, g,
		func(res pipeline.Result) error {
			sum.Records++
			sum.Kmers += len(res.Lookups)
			sum.Skipped += res.Skipped
			for _, l := range res.Lookups {
				if l.Hit.Found {
					sum.Found++
				}
			}
			select {
			case in <- res:
				return nil
			case werr = <-werrCh:
				writerDone = true
				if werr == nil {
					werr = errors.New("result writer stopped early")
				}
				return werr
			}
		})
	close(in)
	if !writerDone {
		werr = <-werrCh
	}
	if fh != nil && werr == nil {
		werr = fh.Close()
	}
	if werr != nil {
		return sum, fmt.Errorf("%w: write results: %w", errs.ErrIO, werr)
	}
	return sum, perr
}
