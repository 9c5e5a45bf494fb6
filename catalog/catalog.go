// Package catalog reads and writes flat chirotope files.
//
// A catalogue is a header line followed by one chirotope per line in the
// text form of om.Parse. Uniform representatives of rank R on N elements are
// read from UniformFileName(R, N); the lower cone of entry i is written to
// LowerConeFileName(R, N, i).
package catalog

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/wippyai/chirotope/errors"
	"github.com/wippyai/chirotope/om"
)

// UniformFileName is the catalogue of uniform representatives.
func UniformFileName(rank, elements int) string {
	return fmt.Sprintf("uniform_representatives_rank%d_%delements.txt", rank, elements)
}

// LowerConeFileName is the output of the lower cone job for one entry.
func LowerConeFileName(rank, elements, index int) string {
	return fmt.Sprintf("lower_cones_rank%d_%delements_%d.txt", rank, elements, index)
}

// LowerConeHeader is the first line of a lower cone file.
func LowerConeHeader(index, rank, elements int) string {
	return fmt.Sprintf("Elements of lower cone of the %d-th uniform representative "+
		"(under reorientations and permutations) of rank %d on %d elements:", index, rank, elements)
}

// Reader delivers the chirotopes of a catalogue in file order. The first
// line is a header and is skipped; empty lines are ignored. The first
// malformed line stops the reader for good.
type Reader struct {
	sc      *bufio.Scanner
	closer  io.Closer
	name    string
	bases   int
	line    int
	count   int
	started bool
	err     error
}

// NewReader reads a catalogue from r. name is used in errors. When bases is
// positive every entry must have exactly that many signs.
func NewReader(r io.Reader, name string, bases int) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Reader{sc: sc, name: name, bases: bases}
}

// Open opens the catalogue at path.
func Open(path string, bases int) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IO(errors.PhaseLoad, path, err)
	}
	r := NewReader(f, path, bases)
	r.closer = f
	return r, nil
}

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Next returns the next chirotope, or io.EOF after the last one.
func (r *Reader) Next() (om.Chirotope, error) {
	if r.err != nil {
		return om.Chirotope{}, r.err
	}
	c, err := r.next()
	if err != nil {
		r.err = err
		return om.Chirotope{}, err
	}
	r.count++
	return c, nil
}

func (r *Reader) next() (om.Chirotope, error) {
	for r.sc.Scan() {
		r.line++
		if !r.started {
			r.started = true
			continue
		}
		text := strings.TrimSuffix(r.sc.Text(), "\r")
		if text == "" {
			continue
		}
		c, err := om.Parse(text)
		if err != nil {
			var e *errors.Error
			if stderrors.As(err, &e) {
				e.Path = r.where()
			}
			return om.Chirotope{}, err
		}
		if r.bases > 0 && c.Len() != r.bases {
			return om.Chirotope{}, errors.InvalidData(errors.PhaseParse, r.where(),
				fmt.Sprintf("chirotope has %d signs, want %d", c.Len(), r.bases))
		}
		return c, nil
	}
	if err := r.sc.Err(); err != nil {
		return om.Chirotope{}, errors.IO(errors.PhaseLoad, r.name, err)
	}
	return om.Chirotope{}, io.EOF
}

func (r *Reader) where() []string {
	return []string{r.name, strconv.Itoa(r.line)}
}

// Nth skips ahead and returns the entry at position idx, counted from the
// reader's start. Asking for an entry past the end is an out_of_range error.
func (r *Reader) Nth(idx int) (om.Chirotope, error) {
	if idx < r.count {
		return om.Chirotope{}, errors.OutOfRange(errors.PhaseLoad, []string{r.name}, idx, r.count)
	}
	for {
		c, err := r.Next()
		if err == io.EOF {
			return om.Chirotope{}, errors.OutOfRange(errors.PhaseLoad, []string{r.name}, idx, r.count)
		}
		if err != nil {
			return om.Chirotope{}, err
		}
		if r.count == idx+1 {
			return c, nil
		}
	}
}

// Writer writes a header line followed by one chirotope per line. It
// implements chirotope.Sink.
type Writer struct {
	w      *bufio.Writer
	closer io.Closer
	name   string
	count  int
}

// NewWriter writes header to w and returns a writer for the entries.
func NewWriter(w io.Writer, name, header string) (*Writer, error) {
	cw := &Writer{w: bufio.NewWriter(w), name: name}
	if _, err := cw.w.WriteString(header + "\n"); err != nil {
		return nil, errors.IO(errors.PhaseWrite, name, err)
	}
	return cw, nil
}

// Create truncates or creates the file at path and writes header to it.
func Create(path, header string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.IO(errors.PhaseWrite, path, err)
	}
	w, err := NewWriter(f, path, header)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// Emit appends c.
func (w *Writer) Emit(c om.Chirotope) error {
	for i := 0; i < c.Len(); i++ {
		w.w.WriteByte(c.Sign(i).Char())
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return errors.IO(errors.PhaseWrite, w.name, err)
	}
	w.count++
	return nil
}

// Count returns the number of entries written.
func (w *Writer) Count() int { return w.count }

// Flush writes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return errors.IO(errors.PhaseWrite, w.name, err)
	}
	return nil
}

// Close flushes and closes the file opened by Create.
func (w *Writer) Close() error {
	err := w.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); cerr != nil && err == nil {
			err = errors.IO(errors.PhaseWrite, w.name, cerr)
		}
	}
	return err
}
