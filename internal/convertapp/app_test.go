package convertapp

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gfaquery/internal/app"
)

// A converted BCALM file is a graph gfaquery can query.
func TestConvertThenQuery(t *testing.T) {
	dir := t.TempDir()
	const u0 = "ACGTCGTACGTCCCGTAAACGTTAAACGTAAACGTGTGTG"
	in := filepath.Join(dir, "unitigs.fa")
	fa := ">0 LN:i:40 L:+:1:+\n" + u0 + "\n>1 LN:i:8 L:-:0:-\nACGTACGT\n"
	if err := os.WriteFile(in, []byte(fa), 0o644); err != nil {
		t.Fatal(err)
	}

	var out, errB bytes.Buffer
	if code := Run([]string{"-i", in}, &out, &errB); code != 0 {
		t.Fatalf("convert exit %d: %s", code, errB.String())
	}
	gfa := filepath.Join(dir, "unitigs.gfa")
	b, err := os.ReadFile(gfa)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(b), "\nL\t") != 1 {
		t.Fatalf("want one canonical link:\n%s", b)
	}

	q := filepath.Join(dir, "q.fa")
	if err := os.WriteFile(q, []byte(">q\n"+u0[:31]+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	code := app.Run([]string{"-g", gfa, "-q", q, "-o", filepath.Join(dir, "res"), "--stdout", "--quiet"}, &out, &errB)
	if code != 0 {
		t.Fatalf("query exit %d: %s", code, errB.String())
	}
	if !strings.Contains(out.String(), "found in the forward direction of unitig 0 at position 0") {
		t.Fatalf("unexpected result:\n%s", out.String())
	}
}

func TestExistingOutputIsConfigError(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "u.fa")
	out := filepath.Join(dir, "u.gfa")
	_ = os.WriteFile(in, []byte(">0\nACGT\n"), 0o644)
	_ = os.WriteFile(out, nil, 0o644)
	var o, e bytes.Buffer
	if code := Run([]string{"-i", in, "-o", out}, &o, &e); code != 3 {
		t.Fatalf("exit %d: %s", code, e.String())
	}
	if !strings.Contains(e.String(), "already exists") {
		t.Fatalf("stderr: %s", e.String())
	}
}

func TestUsageAndVersion(t *testing.T) {
	var o, e bytes.Buffer
	if code := Run(nil, &o, &e); code != 0 || !strings.Contains(o.String(), "--no-sequence") {
		t.Fatalf("usage: %d %s", code, o.String())
	}
	o.Reset()
	if code := Run([]string{"-v"}, &o, &e); code != 0 || !strings.HasPrefix(o.String(), "bcalm2gfa version") {
		t.Fatalf("version: %d %s", code, o.String())
	}
	if code := Run([]string{"--bogus"}, &o, &e); code != 2 {
		t.Fatalf("bad flag exit %d", code)
	}
}
