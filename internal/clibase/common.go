// internal/clibase/common.go
package clibase

import (
	"flag"

	"gfaquery/internal/logging"
)

// Common holds CLI fields shared by gfaquery and bcalm2gfa.
type Common struct {
	LogLevel string
	Quiet    bool
	Version  bool
	Help     bool
	Examples bool
}

// Register wires the shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	fs.StringVar(&c.LogLevel, "log-level", "info", "log level: debug | info | warn | error [info]")
	fs.BoolVar(&c.Quiet, "quiet", false, "only log errors [false]")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&c.Help, "h", false, "show this help [false]")
	fs.BoolVar(&c.Help, "help", false, "show this help [false]")
	fs.BoolVar(&c.Examples, "examples", false, "print example invocations and exit [false]")
}

// Validate applies the shared checks.
func Validate(c *Common) error {
	_, err := logging.ParseLevel(c.LogLevel)
	return err
}
