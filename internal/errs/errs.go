// Package errs defines the failure kinds shared by gfaquery and bcalm2gfa and
// maps them onto process exit codes.
//
// Producers wrap the underlying cause together with a kind:
//
//	fmt.Errorf("%w: open %s: %w", errs.ErrIO, path, err)
//
// and the app layer calls ExitCode once at the end of a run.
package errs

import (
	"context"
	"errors"
)

var (
	// ErrUsage marks a command line that could not be parsed.
	ErrUsage = errors.New("usage error")
	// ErrConfig marks an invalid run configuration, e.g. a pre-existing
	// output directory or a thread count below one.
	ErrConfig = errors.New("config error")
	// ErrIO marks an input that could not be opened or read.
	ErrIO = errors.New("io error")
	// ErrGraphLoad marks a graph file that could not be loaded.
	ErrGraphLoad = errors.New("graph load error")
)

// Exit codes.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitUsage     = 2
	ExitConfig    = 3
	ExitIO        = 4
	ExitGraphLoad = 5
	ExitCanceled  = 130
)

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, ErrConfig):
		return ExitConfig
	case errors.Is(err, ErrIO):
		return ExitIO
	case errors.Is(err, ErrGraphLoad):
		return ExitGraphLoad
	default:
		return ExitFailure
	}
}
