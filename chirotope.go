package chirotope

import (
	"errors"
	"io"

	"github.com/wippyai/chirotope/om"
)

// Source delivers chirotopes in order. Next returns io.EOF after the last one.
type Source interface {
	Next() (om.Chirotope, error)
}

// Sink consumes chirotopes, e.g. the members of a lower cone as they are found.
type Sink interface {
	Emit(c om.Chirotope) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(c om.Chirotope) error

// Emit calls f(c).
func (f SinkFunc) Emit(c om.Chirotope) error { return f(c) }

// Collect drains src into a slice.
func Collect(src Source) ([]om.Chirotope, error) {
	var out []om.Chirotope
	for {
		c, err := src.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
}

// Discard is a Sink that drops everything.
var Discard Sink = SinkFunc(func(om.Chirotope) error { return nil })
