// internal/convertapp/app.go
package convertapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"gfaquery/internal/bcalm"
	"gfaquery/internal/clibase"
	"gfaquery/internal/cmdutil"
	"gfaquery/internal/convertcli"
	"gfaquery/internal/errs"
	"gfaquery/internal/version"
)

const name = "bcalm2gfa"

// RunContext runs bcalm2gfa with argv (without the program name) and returns
// the process exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := convertcli.NewFlagSet(name)
	fs.SetOutput(io.Discard)
	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	opts, err := convertcli.ParseArgs(fs, argv)
	switch {
	case errors.Is(err, flag.ErrHelp):
		fs.SetOutput(outw)
		fs.Usage()
		return cmdutil.Exit(cmdutil.Logger(stderr, "info", false), cmdutil.Flush(outw, nil))
	case errors.Is(err, clibase.ErrShowExamples):
		convertcli.PrintExamples(outw)
		return cmdutil.Exit(cmdutil.Logger(stderr, "info", false), cmdutil.Flush(outw, nil))
	case err != nil:
		code := cmdutil.Exit(cmdutil.Logger(stderr, opts.LogLevel, false), err)
		if errors.Is(err, errs.ErrUsage) {
			fs.SetOutput(stderr)
			fs.Usage()
		}
		return code
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return cmdutil.Exit(cmdutil.Logger(stderr, "info", false), cmdutil.Flush(outw, nil))
	}

	logger := cmdutil.Logger(stderr, opts.LogLevel, opts.Quiet)
	out := opts.Output
	if out == "" {
		out = bcalm.DefaultOutput(opts.Input)
	}
	start := time.Now()
	logger.Info("converting", "input", opts.Input, "output", out)
	st, err := bcalm.ConvertFile(ctx, opts.Input, out, bcalm.Options{NoSequence: opts.NoSequence, Logger: logger})
	if err != nil {
		return cmdutil.Exit(logger, err)
	}
	logger.Info("done", "segments", st.Segments, "links", st.Links,
		"duplicate_links", st.DuplicateLinks, "elapsed", time.Since(start).Round(time.Millisecond))
	return 0
}

// Run is RunContext without cancellation.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
