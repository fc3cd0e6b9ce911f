// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"gfaquery/internal/clibase"
	"gfaquery/internal/cliutil"
	"gfaquery/internal/errs"
	"gfaquery/internal/fileio"
	"gfaquery/internal/graph"
	"gfaquery/internal/kmer"
	"gfaquery/internal/writers"
)

// Options holds all gfaquery flags.
type Options struct {
	clibase.Common

	// Input
	GFA        string
	QueryFasta string

	// Output
	OutputDir string
	Format    string
	Stdout    bool
	Unitigs   bool

	// Performance
	Threads int
	K       int
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "query a compacted de Bruijn graph (GFA) with FASTA k-mers",
		func(out io.Writer, def func(string) string) {
			fmt.Fprintln(out, "Usage:")
			fmt.Fprintf(out, "  %s -g graph.gfa -q queries.fa -o outdir [options]\n", name)

			fmt.Fprintln(out, "\nInput:")
			fmt.Fprintln(out, "  -g, --gfa file              Compacted de Bruijn graph in GFA 1.0 (gzip ok) [required]")
			fmt.Fprintln(out, "  -q, --query_fasta file      Query sequences in FASTA (gzip ok, '-' for STDIN) [required]")

			fmt.Fprintln(out, "\nOutput:")
			fmt.Fprintln(out, "  -o, --output_dir dir        Output directory; must not exist [required]")
			fmt.Fprintf(out, "      --format string         %s [%s]\n", strings.Join(writers.Formats(), " | "), def("format"))
			fmt.Fprintf(out, "      --stdout                Stream results to STDOUT instead of a file [%s]\n", def("stdout"))
			fmt.Fprintf(out, "      --unitigs               Also write the graph unitigs as FASTA [%s]\n", def("unitigs"))

			fmt.Fprintln(out, "\nPerformance:")
			fmt.Fprintf(out, "  -t, --threads int           Worker threads for loading and querying [%s]\n", def("threads"))
			fmt.Fprintf(out, "  -k int                      k-mer size, odd, at most %d [%s]\n", graph.MaxK, def("k"))
		})
	return fs
}

// PrintExamples prints example invocations of gfaquery.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "gfaquery", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Look up every 31-mer of each query in a unitig graph.")
		_, _ = fmt.Fprintln(w, "\nExample:")
		_, _ = fmt.Fprintln(w, "  gfaquery -g unitigs.gfa -q reads.fa.gz -o results -t 8")
		_, _ = fmt.Fprintln(w, "\nTSV on STDOUT:")
		_, _ = fmt.Fprintln(w, "  gfaquery -g unitigs.gfa -q - -o run1 --format tsv --stdout < reads.fa")
	})
}

// ParseArgs registers and parses all flags. Validation failures wrap
// errs.ErrUsage, except a thread count below one, which is errs.ErrConfig; -h yields flag.ErrHelp and --examples
// clibase.ErrShowExamples.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	clibase.Register(fs, &o.Common)

	fs.StringVar(&o.GFA, "gfa", "", "input GFA file [required]")
	fs.StringVar(&o.GFA, "g", "", "alias of --gfa")
	fs.StringVar(&o.QueryFasta, "query_fasta", "", "query FASTA file or '-' [required]")
	fs.StringVar(&o.QueryFasta, "q", "", "alias of --query_fasta")
	fs.StringVar(&o.OutputDir, "output_dir", "", "output directory, must not exist [required]")
	fs.StringVar(&o.OutputDir, "o", "", "alias of --output_dir")

	fs.StringVar(&o.Format, "format", "text", "result format: text | tsv | jsonl [text]")
	fs.BoolVar(&o.Stdout, "stdout", false, "write results to STDOUT [false]")
	fs.BoolVar(&o.Unitigs, "unitigs", false, "also write unitigs.fa [false]")

	fs.IntVar(&o.Threads, "threads", 1, "worker threads [1]")
	fs.IntVar(&o.Threads, "t", 1, "alias of --threads")
	fs.IntVar(&o.K, "k", kmer.DefaultK, "k-mer size [31]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return o, err
		}
		return o, fmt.Errorf("%w: %w", errs.ErrUsage, err)
	}
	if o.Examples {
		return o, clibase.ErrShowExamples
	}
	if o.Help {
		return o, flag.ErrHelp
	}
	if o.Version {
		return o, nil
	}
	if err := validate(&o, posArgs); err != nil {
		if errors.Is(err, errs.ErrConfig) {
			return o, err
		}
		return o, fmt.Errorf("%w: %w", errs.ErrUsage, err)
	}
	return o, nil
}

func validate(o *Options, posArgs []string) error {
	if err := cliutil.NoPositionals(posArgs); err != nil {
		return err
	}
	var missing []string
	if o.GFA == "" {
		missing = append(missing, "--gfa")
	}
	if o.QueryFasta == "" {
		missing = append(missing, "--query_fasta")
	}
	if o.OutputDir == "" {
		missing = append(missing, "--output_dir")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required flag(s): %s", strings.Join(missing, ", "))
	}
	if o.GFA == fileio.Stdin && o.QueryFasta == fileio.Stdin {
		return errors.New("--gfa and --query_fasta cannot both read stdin")
	}
	if o.Threads < 1 {
		return fmt.Errorf("%w: --threads must be ≥ 1, got %d", errs.ErrConfig, o.Threads)
	}
	if err := graph.ValidateK(o.K); err != nil {
		return fmt.Errorf("-k: %w", err)
	}
	if _, err := writers.Lookup(o.Format); err != nil {
		return fmt.Errorf("--format: %w", err)
	}
	return clibase.Validate(&o.Common)
}
