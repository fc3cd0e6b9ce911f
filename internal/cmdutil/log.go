// internal/cmdutil/log.go
package cmdutil

import (
	"io"

	"github.com/charmbracelet/log"

	"gfaquery/internal/logging"
)

// Logger builds the run logger from the parsed flags. An unusable level falls
// back to info so the failure itself can still be reported.
func Logger(stderr io.Writer, level string, quiet bool) *log.Logger {
	logger, err := logging.New(stderr, level, quiet)
	if err != nil {
		logger, _ = logging.New(stderr, "info", quiet)
	}
	return logger
}
