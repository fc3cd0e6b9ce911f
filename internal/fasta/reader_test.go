package fasta

import (
	"compress/gzip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gfaquery/internal/errs"
)

func readAll(t *testing.T, in string) []Record {
	t.Helper()
	r := NewReader(strings.NewReader(in))
	var out []Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		out = append(out, rec)
	}
}

func TestReaderRecords(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []Record
	}{
		{"empty", "", nil},
		{"no header", "ACGT\nACGT\n", nil},
		{"single", ">seq1\nACGT\n", []Record{{Name: "seq1", Seq: "ACGT"}}},
		{"multiline", ">s\nAC\nGT\nTT", []Record{{Name: "s", Seq: "ACGTTT"}}},
		{"desc", ">chr1 LN:i:4 extra\nACGT\n", []Record{{Name: "chr1", Desc: "LN:i:4 extra", Seq: "ACGT"}}},
		{"tab", ">a\tb\nA\n", []Record{{Name: "a", Desc: "b", Seq: "A"}}},
		{"empty body", ">a\n>b\nCC\n>c\n", []Record{{Name: "a"}, {Name: "b", Seq: "CC"}, {Name: "c"}}},
		{"empty lines", ">a\nAC\n\nGT\n\n", []Record{{Name: "a", Seq: "ACGT"}}},
		{"crlf", ">a x\r\nAC\r\nGT\r\n", []Record{{Name: "a", Desc: "x", Seq: "ACGT"}}},
		{"body kept verbatim", ">a\n AC\nGT \n", []Record{{Name: "a", Seq: " ACGT "}}},
		{"leading junk", "NNNN\n>a\nA\n", []Record{{Name: "a", Seq: "A"}}},
		{"bare marker", ">\nAC\n", []Record{{Name: "", Seq: "AC"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := readAll(t, tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d records %+v, want %d", len(got), got, len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("record %d: got %+v, want %+v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestReaderOneRecordPerHeader(t *testing.T) {
	var b strings.Builder
	const n = 250
	for i := 0; i < n; i++ {
		b.WriteString(">r\n")
		if i%3 != 0 {
			b.WriteString("ACGT\nTTGA\n")
		}
	}
	got := readAll(t, b.String())
	if len(got) != n {
		t.Fatalf("want %d records, got %d", n, len(got))
	}
	for i, r := range got {
		want := "ACGTTTGA"
		if i%3 == 0 {
			want = ""
		}
		if r.Seq != want {
			t.Fatalf("record %d seq %q, want %q", i, r.Seq, want)
		}
	}
}

func TestReaderLongLine(t *testing.T) {
	seq := strings.Repeat("ACGT", 100_000) // larger than the bufio buffer
	got := readAll(t, ">big\n"+seq+"\n>small\nA\n")
	if len(got) != 2 || got[0].Seq != seq || got[1].Seq != "A" {
		t.Fatalf("long line mangled: %d records", len(got))
	}
}

func TestReaderNotRestartable(t *testing.T) {
	r := NewReader(strings.NewReader(">a\nA\n"))
	if _, err := r.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := r.Next(); !errors.Is(err, io.EOF) {
			t.Fatalf("want io.EOF after last record, got %v", err)
		}
	}
}

type failingReader struct{ data string }

func (f *failingReader) Read(p []byte) (int, error) {
	if f.data == "" {
		return 0, errors.New("disk on fire")
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestReaderReadErrorIsIO(t *testing.T) {
	r := NewReader(&failingReader{data: ">a\nACGT\n>b\nAC"})
	var err error
	for err == nil {
		_, err = r.Next()
	}
	if !errors.Is(err, errs.ErrIO) {
		t.Fatalf("want ErrIO, got %v", err)
	}
}

func TestOpenMissingIsIO(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.fa"))
	if !errors.Is(err, errs.ErrIO) {
		t.Fatalf("want ErrIO, got %v", err)
	}
}

func TestStreamGzip(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "q.fa.gz")
	fh, err := os.Create(fn)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	gw := gzip.NewWriter(fh)
	_, _ = io.WriteString(gw, ">seq1\nACGT\n>seq2\nNNnn\n")
	if err := gw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	var names []string
	err = Stream(context.Background(), fn, func(r Record) error {
		names = append(names, r.Name)
		return nil
	})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	if strings.Join(names, ",") != "seq1,seq2" {
		t.Fatalf("names = %v", names)
	}
}

func TestStreamStopsOnEmitError(t *testing.T) {
	stop := errors.New("stop")
	n := 0
	err := StreamReader(context.Background(), NewReader(strings.NewReader(">a\n>b\n>c\n")), func(Record) error {
		n++
		return stop
	})
	if !errors.Is(err, stop) || n != 1 {
		t.Fatalf("err=%v n=%d", err, n)
	}
}

func TestStreamCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n := 0
	err := StreamReader(ctx, NewReader(strings.NewReader(">a\nA\n")), func(Record) error {
		n++
		return nil
	})
	if !errors.Is(err, context.Canceled) || n != 0 {
		t.Fatalf("err=%v n=%d", err, n)
	}
}
