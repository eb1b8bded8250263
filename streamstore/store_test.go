package streamstore

import (
	"errors"
	"io"
	"testing"

	"github.com/rdfkit/quadforest/pkg/term"
	"github.com/rdfkit/quadforest/pkg/term/simple"
)

var fac = simple.Factory{}

func quad(s, p, o string, g term.Term) term.Quad {
	if g == nil {
		g = fac.DefaultGraph()
	}
	return fac.Quad(fac.NamedNode(s), fac.NamedNode(p), fac.NamedNode(o), g)
}

func TestAddHasSize(t *testing.T) {
	s := NewStore(fac)
	q := quad("a", "p", "1", nil)
	s.Add(q)
	if !s.Has(q) || s.Size() != 1 {
		t.Fatalf("expected store to hold the added quad")
	}
}

func TestImportDrainsReader(t *testing.T) {
	s := NewStore(fac)
	r := NewSliceReader([]term.Quad{
		quad("a", "p", "1", nil),
		quad("b", "p", "2", nil),
	})
	if err := s.Import(r).Wait(); err != nil {
		t.Fatalf("unexpected import error: %v", err)
	}
	if s.Size() != 2 {
		t.Fatalf("expected size 2 after import, got %d", s.Size())
	}
}

func TestRemoveSkipsMalformed(t *testing.T) {
	s := NewStore(fac)
	s.Add(quad("a", "p", "1", nil))

	r := NewSliceReader([]term.Quad{
		quad("a", "p", "1", nil),      // present, removed
		quad("unknown", "x", "y", nil), // never interned into this store
	})
	if err := s.Remove(r).Wait(); err != nil {
		t.Fatalf("unexpected remove error: %v", err)
	}
	if s.Size() != 0 {
		t.Fatalf("expected size 0 after remove, got %d", s.Size())
	}
}

func TestRemoveMatchesDeferred(t *testing.T) {
	s := NewStore(fac)
	s.Add(quad("a", "p", "1", nil))
	s.Add(quad("b", "p", "2", nil))

	if err := s.RemoveMatches(fac.NamedNode("a"), nil, nil, nil).Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Size() != 1 {
		t.Fatalf("expected size 1 after remove_matches, got %d", s.Size())
	}
}

func TestRemoveMatchesUnsatisfiableIsNoOp(t *testing.T) {
	s := NewStore(fac)
	s.Add(quad("a", "p", "1", nil))
	if err := s.RemoveMatches(fac.NamedNode("does-not-exist"), nil, nil, nil).Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Size() != 1 {
		t.Fatalf("expected unsatisfiable remove_matches to be a no-op")
	}
}

func TestDeleteGraphWrapsString(t *testing.T) {
	s := NewStore(fac)
	s.Add(quad("a", "p", "1", fac.NamedNode("g1")))
	s.Add(quad("b", "p", "2", fac.NamedNode("g2")))

	if err := s.DeleteGraph("g1").Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Size() != 1 {
		t.Fatalf("expected graph g1's quad removed, size=%d", s.Size())
	}
}

func TestMatchReturnsReadableStream(t *testing.T) {
	s := NewStore(fac)
	s.Add(quad("a", "p", "1", nil))
	s.Add(quad("a", "p", "2", nil))

	r := s.Match(fac.NamedNode("a"), nil, nil, nil)
	n := 0
	for {
		_, err := r.ReadQuad()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		n++
	}
	if n != 2 {
		t.Fatalf("expected 2 quads from match stream, got %d", n)
	}
}

func TestFreeThenReuse(t *testing.T) {
	s := NewStore(fac)
	q := quad("a", "p", "1", nil)
	s.Add(q)
	s.Free()
	if s.Has(q) || s.Size() != 0 {
		t.Fatalf("expected empty store after free")
	}
	s.Add(q)
	if !s.Has(q) {
		t.Fatalf("expected store usable after free")
	}
}

func TestImportStreamConvenience(t *testing.T) {
	r := NewSliceReader([]term.Quad{quad("a", "p", "1", nil)})
	s, err := ImportStream(fac, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Size() != 1 {
		t.Fatalf("expected size 1, got %d", s.Size())
	}
}
