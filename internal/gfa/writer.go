package gfa

import (
	"bufio"
	"io"
	"strconv"
)

// Writer emits GFA 1.0 lines. Call Flush when done.
type Writer struct {
	bw *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriterSize(w, 64<<10)}
}

// Header writes "H\tVN:Z:<version>".
func (w *Writer) Header(version string) error {
	_, err := w.bw.WriteString("H\tVN:Z:" + version + "\n")
	return err
}

// Segment writes an S line. Without a sequence it writes "*" and an LN tag.
func (w *Writer) Segment(s Segment) error {
	w.bw.WriteString("S\t")
	w.bw.WriteString(s.Name)
	w.bw.WriteByte('\t')
	if s.HasSeq() {
		w.bw.WriteString(s.Seq)
	} else {
		w.bw.WriteString("*\tLN:i:")
		w.bw.WriteString(strconv.Itoa(s.Length))
	}
	_, err := w.bw.WriteString("\n")
	return err
}

// Link writes an L line.
func (w *Writer) Link(l Link) error {
	_, err := w.bw.WriteString(l.String() + "\n")
	return err
}

func (w *Writer) Flush() error { return w.bw.Flush() }
