// Package appshell wires a RunContext-style entry point to the process:
// signals, arguments, standard streams and the exit code.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"gfaquery/internal/errs"
)

// RunFunc is the signature shared by app.RunContext and convertapp.RunContext.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs run until it returns or SIGINT/SIGTERM cancels it, then exits.
func Main(run RunFunc) {
	os.Exit(Exec(run, os.Args[1:], os.Stdout, os.Stderr))
}

// Exec is Main without os.Exit. A canceled run never reports success.
func Exec(run RunFunc, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := run(ctx, argv, stdout, stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == errs.ExitOK {
		code = errs.ExitCanceled
	}
	return code
}
