package convertcli

import (
	"errors"
	"flag"
	"io"
	"testing"

	"gfaquery/internal/errs"
)

func parse(args ...string) (Options, error) {
	fs := NewFlagSet("test")
	fs.SetOutput(io.Discard)
	return ParseArgs(fs, args)
}

func TestParse(t *testing.T) {
	o, err := parse("-i", "u.fa", "-o", "g.gfa", "--no-sequence")
	if err != nil || o.Input != "u.fa" || o.Output != "g.gfa" || !o.NoSequence {
		t.Fatalf("%+v %v", o, err)
	}
	o, err = parse("u.fa", "--log-level", "debug")
	if err != nil || o.Input != "u.fa" || o.LogLevel != "debug" {
		t.Fatalf("positional: %+v %v", o, err)
	}
}

func TestParseErrors(t *testing.T) {
	for name, args := range map[string][]string{
		"no input":        {"--no-sequence"},
		"two positionals": {"a.fa", "b.fa"},
		"input and pos":   {"-i", "a.fa", "b.fa"},
		"stdin no output": {"-i", "-"},
		"bad level":       {"-i", "a.fa", "--log-level", "x"},
	} {
		if _, err := parse(args...); !errors.Is(err, errs.ErrUsage) {
			t.Errorf("%s: want ErrUsage, got %v", name, err)
		}
	}
	if _, err := parse("-h"); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("-h: %v", err)
	}
}
