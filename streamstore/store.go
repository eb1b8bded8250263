package streamstore

import (
	"errors"
	"io"

	"github.com/rdfkit/quadforest/dataset"
	"github.com/rdfkit/quadforest/pkg/term"
)

// Store is a StoreFacade: one dataset.Dataset (Shared/IdList variant,
// the general-purpose default -- see dataset.New) behind a stream-shaped
// write boundary. Store lifecycle admits a freed state (spec §4.5); any
// write operation lazily re-materializes it, inherited directly from the
// underlying facade's own lazy-anchor behavior.
type Store struct {
	ds      dataset.Dataset
	factory term.Factory
}

// NewStore builds an empty store over a fresh interner from factory.
func NewStore(factory term.Factory) *Store {
	return &Store{ds: dataset.New(factory), factory: factory}
}

// Add inserts a single quad synchronously.
func (s *Store) Add(q term.Quad) *Store {
	s.ds.Add(q)
	return s
}

// AddQuad builds a quad from its four positions and inserts it synchronously.
func (s *Store) AddQuad(subject, predicate, object, graph term.Term) *Store {
	return s.Add(s.factory.Quad(subject, predicate, object, graph))
}

// Has reports whether q is present.
func (s *Store) Has(q term.Quad) bool { return s.ds.Has(q) }

// Size returns the number of quads currently held.
func (s *Store) Size() int { return s.ds.Size() }

// Free releases the underlying dataset's materialized state (spec §4.5's
// freed anchor). The next write operation lazily re-materializes it.
func (s *Store) Free() { s.ds.Free() }

// Match returns a readable quad stream over every quad satisfying the
// pattern (nil positions are wildcards), in the underlying forest's
// permutation order.
func (s *Store) Match(subject, predicate, object, graph term.Term) QuadReader {
	m := s.ds.Match(subject, predicate, object, graph)
	return &datasetReader{it: m.Iterator()}
}

// Import drains r, interning and inserting each quad, until r reports
// io.EOF (clean end) or any other error. Runs in the background; call
// Wait on the returned Observer to block for completion.
func (s *Store) Import(r QuadReader) *Observer {
	obs := newObserver()
	go func() {
		for {
			q, err := r.ReadQuad()
			if errors.Is(err, io.EOF) {
				obs.finish(nil)
				return
			}
			if err != nil {
				obs.finish(err)
				return
			}
			s.ds.Add(q)
		}
	}()
	return obs
}

// Remove drains r, deleting each quad if present. Quads carrying terms
// unknown to this store's interner are silently skipped (spec §4.5:
// "Malformed quads are silently skipped") -- Dataset.Delete already
// no-ops on an unknown term via try_intern_quad, so this is a direct
// pass-through.
func (s *Store) Remove(r QuadReader) *Observer {
	obs := newObserver()
	go func() {
		for {
			q, err := r.ReadQuad()
			if errors.Is(err, io.EOF) {
				obs.finish(nil)
				return
			}
			if err != nil {
				obs.finish(err)
				return
			}
			s.ds.Delete(q)
		}
	}()
	return obs
}

// RemoveMatches deletes every quad satisfying the pattern in a deferred
// task (spec §5's second suspension point), returning immediately. An
// unsatisfiable pattern (unknown bound term) completes with no work, same
// as the synchronous DeleteMatches it delegates to.
func (s *Store) RemoveMatches(subject, predicate, object, graph term.Term) *Observer {
	obs := newObserver()
	go func() {
		s.ds.DeleteMatches(subject, predicate, object, graph)
		obs.finish(nil)
	}()
	return obs
}

// DeleteGraph deletes every quad in graph g. A string g is wrapped as a
// named node (spec §4.5); any other term.Term is used as-is. Delegates
// to RemoveMatches(*, *, *, g).
func (s *Store) DeleteGraph(g any) *Observer {
	var gt term.Term
	switch v := g.(type) {
	case string:
		gt = s.factory.NamedNode(v)
	case term.Term:
		gt = v
	default:
		panic("streamstore: DeleteGraph requires a string or term.Term")
	}
	return s.RemoveMatches(nil, nil, nil, gt)
}

// ImportStream is the free-standing convenience constructor spec §4.5
// names: build a store, drive Import, and resolve to the store once
// draining completes.
func ImportStream(factory term.Factory, r QuadReader) (*Store, error) {
	s := NewStore(factory)
	if err := s.Import(r).Wait(); err != nil {
		return nil, err
	}
	return s, nil
}
