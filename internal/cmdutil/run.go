// internal/cmdutil/run.go
package cmdutil

import (
	"bufio"
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"gfaquery/internal/errs"
	"gfaquery/internal/writers"
)

// Exit logs err once and returns the process exit code for it. A downstream
// consumer closing the pipe early (e.g. `| head`) is not a failure.
func Exit(logger *log.Logger, err error) int {
	switch {
	case err == nil:
		return errs.ExitOK
	case writers.IsBrokenPipe(err):
		return errs.ExitOK
	case errors.Is(err, context.Canceled):
		logger.Warn("interrupted")
		return errs.ExitCanceled
	}
	logger.Error(err.Error())
	return errs.ExitCode(err)
}

// Flush flushes w and folds a flush failure into err.
func Flush(w *bufio.Writer, err error) error {
	ferr := w.Flush()
	if err != nil || ferr == nil {
		return err
	}
	return fmt.Errorf("%w: write output: %w", errs.ErrIO, ferr)
}
