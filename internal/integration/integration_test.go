// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gfaquery/internal/app"
	"gfaquery/internal/manifest"
)

const seq40 = "ACGTCGTACGTCCCGTAAACGTTAAACGTAAACGTGTGTG"

func write(t *testing.T, fn, data string) string {
	t.Helper()
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func revcomp(s string) string {
	r := strings.NewReplacer("A", "t", "C", "g", "G", "c", "T", "a")
	b := []byte(strings.ToUpper(r.Replace(s)))
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func TestEndToEnd(t *testing.T) {
	dir := t.TempDir()
	gfa := write(t, filepath.Join(dir, "g.gfa"), "H\tVN:Z:1.0\nS\tu1\t"+seq40+"\n")
	fa := write(t, filepath.Join(dir, "q.fa"), ">fwd\n"+seq40+"\n>rc\n"+revcomp(seq40)+"\n>miss\n"+strings.Repeat("A", 31)+"\n")
	outDir := filepath.Join(dir, "out")

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"-g", gfa, "-q", fa, "-o", outDir}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	if out.Len() != 0 {
		t.Fatalf("results leaked to stdout: %q", out.String())
	}
	b, err := os.ReadFile(filepath.Join(outDir, "results.txt"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
	if len(lines) != 1+10+1+10+1+1 {
		t.Fatalf("got %d lines:\n%s", len(lines), b)
	}
	if lines[0] != "---- fwd ----" || lines[11] != "---- rc ----" || lines[22] != "---- miss ----" {
		t.Fatalf("record banners wrong:\n%s", b)
	}
	for i := 0; i < 10; i++ {
		fwd := fmt.Sprintf("Kmer %s was found in the forward direction of unitig u1 at position %d", seq40[i:i+31], i)
		if lines[1+i] != fwd {
			t.Errorf("fwd line %d: %q", i, lines[1+i])
		}
		// i-th k-mer of the reverse complement is the (9-i)-th window of the unitig
		rc := revcomp(seq40)[i : i+31]
		want := fmt.Sprintf("Kmer %s was found in the reverse-complement direction of unitig u1 at position %d", rc, 9-i)
		if lines[12+i] != want {
			t.Errorf("rc line %d: %q want %q", i, lines[12+i], want)
		}
	}
	if lines[23] != "Kmer "+strings.Repeat("A", 31)+" was not found" {
		t.Errorf("miss line: %q", lines[23])
	}
	if _, err := os.Stat(filepath.Join(outDir, manifest.FileName)); err != nil {
		t.Errorf("manifest missing: %v", err)
	}
}

func TestParallelMatchesEqualSerial(t *testing.T) {
	dir := t.TempDir()
	gfa := write(t, filepath.Join(dir, "g.gfa"), "S\t1\t"+seq40+"\nS\t2\t"+revcomp(seq40[5:])+"AC\n")
	var fa strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&fa, ">r%d\n%s\n", i, seq40[i%9:])
	}
	faPath := write(t, filepath.Join(dir, "q.fa"), fa.String())

	run := func(threads int) string {
		var out, errB bytes.Buffer
		code := app.Run([]string{
			"--gfa", gfa,
			"--query_fasta", faPath,
			"--output_dir", filepath.Join(dir, fmt.Sprint("out", threads)),
			"--threads", fmt.Sprint(threads),
			"--format", "tsv",
			"--stdout",
		}, &out, &errB)
		if code != 0 {
			t.Fatalf("exit %d err %s", code, errB.String())
		}
		return out.String()
	}

	serial := run(1)
	parallel := run(4)

	if serial != parallel {
		t.Fatalf("parallel output differs from serial\nserial: %s\nparallel:%s", serial, parallel)
	}
	if !strings.HasPrefix(serial, "query\tkmer_pos\tkmer\tfound\tunitig\tstrand\toffset\n") {
		t.Fatalf("tsv header missing:\n%s", serial)
	}
}

func TestExitCodes(t *testing.T) {
	dir := t.TempDir()
	gfa := write(t, filepath.Join(dir, "g.gfa"), "S\t1\t"+seq40+"\n")
	bad := write(t, filepath.Join(dir, "bad.gfa"), "S\t1\t*\n")
	fa := write(t, filepath.Join(dir, "q.fa"), ">a\n"+seq40+"\n")

	cases := []struct {
		name string
		argv []string
		code int
		msg  string
	}{
		{"usage", []string{"-g", gfa}, 2, "missing required flag"},
		{"existing dir", []string{"-g", gfa, "-q", fa, "-o", dir}, 3, "already exists"},
		{"zero threads", []string{"-g", gfa, "-q", fa, "-o", filepath.Join(dir, "o0"), "-t", "0"}, 3, "--threads must be"},
		{"both stdin", []string{"-g", "-", "-q", "-", "-o", filepath.Join(dir, "o4")}, 2, "cannot both read stdin"},
		{"missing fasta", []string{"-g", gfa, "-q", filepath.Join(dir, "nope.fa"), "-o", filepath.Join(dir, "o1")}, 4, "open fasta"},
		{"bad graph", []string{"-g", bad, "-q", fa, "-o", filepath.Join(dir, "o2")}, 5, "no sequence"},
		{"missing graph", []string{"-g", filepath.Join(dir, "nope.gfa"), "-q", fa, "-o", filepath.Join(dir, "o3")}, 5, "nope.gfa"},
	}
	for _, tc := range cases {
		var out, errB bytes.Buffer
		code := app.Run(tc.argv, &out, &errB)
		if code != tc.code {
			t.Errorf("%s: exit %d want %d (stderr %s)", tc.name, code, tc.code, errB.String())
		}
		if !strings.Contains(errB.String(), "error:") || !strings.Contains(errB.String(), tc.msg) {
			t.Errorf("%s: stderr %q lacks error line with %q", tc.name, errB.String(), tc.msg)
		}
	}
}

func TestHelpAndVersion(t *testing.T) {
	for _, argv := range [][]string{nil, {"-h"}, {"--help"}} {
		var out, errB bytes.Buffer
		if code := app.Run(argv, &out, &errB); code != 0 {
			t.Fatalf("%v: exit %d", argv, code)
		}
		if !strings.Contains(out.String(), "--query_fasta") {
			t.Fatalf("%v: usage missing:\n%s", argv, out.String())
		}
	}
	var out, errB bytes.Buffer
	if code := app.Run([]string{"--version"}, &out, &errB); code != 0 || !strings.HasPrefix(out.String(), "gfaquery version ") {
		t.Fatalf("version: exit %d out %q", code, out.String())
	}
	out.Reset()
	if code := app.Run([]string{"--examples"}, &out, &errB); code != 0 || !strings.Contains(out.String(), "Examples for gfaquery:") {
		t.Fatalf("examples: exit %d out %q", code, out.String())
	}
}

func TestQuietSuppressesInfo(t *testing.T) {
	dir := t.TempDir()
	gfa := write(t, filepath.Join(dir, "g.gfa"), "S\t1\t"+seq40+"\n")
	fa := write(t, filepath.Join(dir, "q.fa"), ">a\n"+seq40+"\n")

	var out, errB bytes.Buffer
	code := app.Run([]string{"-g", gfa, "-q", fa, "-o", filepath.Join(dir, "o"), "--quiet", "--unitigs", "--format", "jsonl"}, &out, &errB)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errB.String())
	}
	if errB.Len() != 0 {
		t.Fatalf("quiet run logged: %q", errB.String())
	}
	for _, fn := range []string{"results.jsonl", "unitigs.fa", "run.json"} {
		if _, err := os.Stat(filepath.Join(dir, "o", fn)); err != nil {
			t.Errorf("%s: %v", fn, err)
		}
	}
}
