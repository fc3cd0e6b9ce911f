// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"gfaquery/internal/cli"
	"gfaquery/internal/clibase"
	"gfaquery/internal/cmdutil"
	"gfaquery/internal/errs"
	"gfaquery/internal/query"
	"gfaquery/internal/version"
)

const name = "gfaquery"

// RunContext runs gfaquery with argv (without the program name) and returns
// the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := cli.NewFlagSet(name)
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	opts, err := cli.ParseArgs(fs, argv)
	switch {
	case errors.Is(err, flag.ErrHelp):
		fs.SetOutput(outw)
		fs.Usage()
		return cmdutil.Exit(cmdutil.Logger(stderr, "info", false), cmdutil.Flush(outw, nil))
	case errors.Is(err, clibase.ErrShowExamples):
		cli.PrintExamples(outw)
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
	cfg := query.Config{
		GFAPath:      opts.GFA,
		FastaPath:    opts.QueryFasta,
		OutputDir:    opts.OutputDir,
		Threads:      opts.Threads,
		K:            opts.K,
		Format:       opts.Format,
		WriteUnitigs: opts.Unitigs,
		Logger:       logger,
	}
	if opts.Stdout {
		cfg.Stdout = outw
	}
	_, err = query.Run(parent, cfg)
	return cmdutil.Exit(logger, cmdutil.Flush(outw, err))
}

// Run is RunContext without cancellation.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
