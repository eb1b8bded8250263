// Package streamstore implements StoreFacade (spec §4.5): the same
// dataset model as package dataset, behind a stream-shaped boundary
// instead of a direct Dataset return. Spec's "observer" emitting
// data/end/error over a host event loop is translated to Go's own
// idioms: a pull-style Reader (grounded on cayleygraph/cayley's
// quad.Reader -- quad/rw.go: "ReadQuad reads next valid Quad. It returns
// io.EOF if no quads are left") for produced streams, and a goroutine +
// done-channel Observer for the asynchronous write-side operations spec
// §5 calls out as genuine suspension points (import, remove,
// remove_matches all yield between quads / defer to a later turn; a
// background goroutine is the direct Go equivalent of "deferred to a
// subsequent event-loop turn").
package streamstore

import (
	"io"

	"github.com/rdfkit/quadforest/dataset"
	"github.com/rdfkit/quadforest/pkg/term"
)

// QuadReader pulls quads one at a time. ReadQuad returns io.EOF once
// exhausted, matching cayleygraph/cayley's quad.Reader contract.
type QuadReader interface {
	ReadQuad() (term.Quad, error)
}

// QuadWriter accepts quads one at a time.
type QuadWriter interface {
	WriteQuad(term.Quad) error
}

// SliceReader is a QuadReader over an in-memory slice -- the Go
// equivalent of cayley's quad.NewReader(quads []Quad) for feeding
// import/remove from already-materialized data.
type SliceReader struct {
	quads []term.Quad
	idx   int
}

// NewSliceReader wraps quads as a QuadReader.
func NewSliceReader(quads []term.Quad) *SliceReader { return &SliceReader{quads: quads} }

func (r *SliceReader) ReadQuad() (term.Quad, error) {
	if r.idx >= len(r.quads) {
		return term.Quad{}, io.EOF
	}
	q := r.quads[r.idx]
	r.idx++
	return q, nil
}

// datasetReader adapts a dataset.Iterator (Next/Quad/Close) to the
// QuadReader pull contract Match returns.
type datasetReader struct {
	it *dataset.Iterator
}

func (r *datasetReader) ReadQuad() (term.Quad, error) {
	if !r.it.Next() {
		return term.Quad{}, io.EOF
	}
	return r.it.Quad()
}

// Observer is the result of an asynchronous write-side operation
// (Import, Remove, RemoveMatches): spec's "emits end" / "emits error",
// collapsed into a single Wait call since Go has no notion of a caller
// that isn't already blocking on *something*.
type Observer struct {
	done chan struct{}
	err  error
}

func newObserver() *Observer { return &Observer{done: make(chan struct{})} }

func (o *Observer) finish(err error) {
	o.err = err
	close(o.done)
}

// Wait blocks until the operation's terminal event (end or error) and
// returns the error, if any.
func (o *Observer) Wait() error {
	<-o.done
	return o.err
}

// Done exposes the completion signal directly for select-based callers.
func (o *Observer) Done() <-chan struct{} { return o.done }
