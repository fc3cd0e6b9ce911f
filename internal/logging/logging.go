// Package logging builds the stderr logger shared by the commands.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Levels accepted by --log-level.
var Levels = []string{"debug", "info", "warn", "error"}

// ParseLevel maps a --log-level value to a log.Level. "warning" is accepted
// as an alias of "warn".
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel, nil
	case "info", "":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	}
	return log.InfoLevel, fmt.Errorf("unknown log level %q (want one of %s)", s, strings.Join(Levels, ", "))
}

// Styles renders levels as lower-case prefixes ("error:", "warn:") so a
// failure reads as a single "error: ..." line.
func Styles() *log.Styles {
	st := log.DefaultStyles()
	st.Levels[log.DebugLevel] = lipgloss.NewStyle().SetString("debug:").Foreground(lipgloss.Color("63"))
	st.Levels[log.InfoLevel] = lipgloss.NewStyle().SetString("info:").Foreground(lipgloss.Color("86"))
	st.Levels[log.WarnLevel] = lipgloss.NewStyle().SetString("warn:").Foreground(lipgloss.Color("192")).Bold(true)
	st.Levels[log.ErrorLevel] = lipgloss.NewStyle().SetString("error:").Foreground(lipgloss.Color("204")).Bold(true)
	return st
}

// New returns a logger writing to w at the given level. quiet raises the
// level to error regardless of level. Timestamps are only shown at debug.
func New(w io.Writer, level string, quiet bool) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if quiet {
		lvl = log.ErrorLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: lvl == log.DebugLevel,
		TimeFormat:      "15:04:05.000",
	})
	logger.SetStyles(Styles())
	return logger, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
