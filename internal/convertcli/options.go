package convertcli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"gfaquery/internal/clibase"
	"gfaquery/internal/cliutil"
	"gfaquery/internal/errs"
	"gfaquery/internal/fileio"
)

type Options struct {
	clibase.Common

	Input      string
	Output     string // empty: input with its extension replaced by .gfa
	NoSequence bool
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "convert BCALM2/ggcat unitig FASTA to GFA 1.0",
		func(out io.Writer, def func(string) string) {
			_, _ = fmt.Fprintln(out, "Usage:")
			_, _ = fmt.Fprintf(out, "  %s -i unitigs.fa [-o unitigs.gfa] [options]\n", name)
			_, _ = fmt.Fprintf(out, "  %s unitigs.fa\n", name)

			_, _ = fmt.Fprintln(out, "\nConversion:")
			_, _ = fmt.Fprintln(out, "  -i, --input file            Unitig FASTA with BCALM link annotations (gzip ok, '-' for STDIN) [required]")
			_, _ = fmt.Fprintln(out, "  -o, --output file           GFA to create; must not exist [input with .gfa extension]")
			_, _ = fmt.Fprintf(out, "      --no-sequence           Write '*' and LN:i tags instead of sequences [%s]\n", def("no-sequence"))
		})
	return fs
}

// PrintExamples prints example invocations of bcalm2gfa.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "bcalm2gfa", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Turn ggcat/BCALM2 unitigs into a graph gfaquery can load.")
		_, _ = fmt.Fprintln(w, "\nExample:")
		_, _ = fmt.Fprintln(w, "  bcalm2gfa -i unitigs.fa        # writes unitigs.gfa")
		_, _ = fmt.Fprintln(w, "  gfaquery -g unitigs.gfa -q reads.fa -o results")
	})
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	clibase.Register(fs, &o.Common)

	fs.StringVar(&o.Input, "input", "", "unitig FASTA [required]")
	fs.StringVar(&o.Input, "i", "", "alias of --input")
	fs.StringVar(&o.Output, "output", "", "output GFA")
	fs.StringVar(&o.Output, "o", "", "alias of --output")
	fs.BoolVar(&o.NoSequence, "no-sequence", false, "omit sequences [false]")

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

	// A single positional stands in for --input.
	if o.Input == "" && len(posArgs) == 1 {
		o.Input, posArgs = posArgs[0], nil
	}
	if err := validate(&o, posArgs); err != nil {
		return o, fmt.Errorf("%w: %w", errs.ErrUsage, err)
	}
	return o, nil
}

func validate(o *Options, posArgs []string) error {
	if err := cliutil.NoPositionals(posArgs); err != nil {
		return err
	}
	if o.Input == "" {
		return errors.New("--input is required")
	}
	if o.Input == fileio.Stdin && o.Output == "" {
		return errors.New("--output is required when reading STDIN")
	}
	return clibase.Validate(&o.Common)
}
