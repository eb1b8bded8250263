package interner

import (
	"testing"

	"github.com/rdfkit/quadforest/pkg/term"
	"github.com/rdfkit/quadforest/pkg/term/simple"
)

func TestDefaultGraphAtZero(t *testing.T) {
	in := New(simple.Factory{})
	id, ok := in.TryIntern(simple.Factory{}.DefaultGraph())
	if !ok || id != 0 {
		t.Fatalf("expected default graph at id 0, got %d ok=%v", id, ok)
	}
	if in.Next() != 1 {
		t.Fatalf("expected next=1, got %d", in.Next())
	}
}

func TestInternOrAddMonotone(t *testing.T) {
	in := New(simple.Factory{})
	a := simple.NamedNode("http://example.org/a")

	id1 := in.InternOrAdd(a)
	id2 := in.InternOrAdd(a)
	if id1 != id2 {
		t.Fatalf("expected stable id across calls, got %d then %d", id1, id2)
	}

	b := simple.NamedNode("http://example.org/b")
	id3 := in.InternOrAdd(b)
	if id3 == id1 {
		t.Fatalf("distinct terms got the same id")
	}
	if in.Next() <= id3 {
		t.Fatalf("next (%d) must exceed last assigned id (%d)", in.Next(), id3)
	}
}

func TestTryInternUnknown(t *testing.T) {
	in := New(simple.Factory{})
	_, ok := in.TryIntern(simple.NamedNode("http://example.org/missing"))
	if ok {
		t.Fatalf("expected unknown term to miss")
	}
}

func TestDecodeQuadRoundTrip(t *testing.T) {
	in := New(simple.Factory{})
	f := simple.Factory{}
	q := f.Quad(simple.NamedNode("http://example.org/s"), simple.NamedNode("http://example.org/p"),
		simple.Literal("o"), f.DefaultGraph())

	iq := in.InternOrAddQuad(q)
	back, ok := in.DecodeQuad(iq)
	if !ok {
		t.Fatalf("expected decode to succeed")
	}
	if back.Subject != q.Subject || back.Predicate != q.Predicate || back.Object != q.Object || back.Graph != q.Graph {
		t.Fatalf("round-trip mismatch: got %+v want %+v", back, q)
	}
}

func TestMatchIDsUnsatisfiable(t *testing.T) {
	in := New(simple.Factory{})
	in.InternOrAdd(simple.NamedNode("http://example.org/s"))

	_, ok := in.MatchIDs(simple.NamedNode("http://example.org/unknown"), nil, nil, nil)
	if ok {
		t.Fatalf("expected match against unknown bound term to signal unsatisfiable")
	}
}

func TestMatchIDsWildcardsPassThrough(t *testing.T) {
	in := New(simple.Factory{})
	s := simple.NamedNode("http://example.org/s")
	in.InternOrAdd(s)

	pat, ok := in.MatchIDs(s, nil, nil, nil)
	if !ok {
		t.Fatalf("expected satisfiable match")
	}
	if !pat.IsBound(term.Subject) {
		t.Fatalf("expected subject to be bound")
	}
	if pat.IsBound(term.Predicate) {
		t.Fatalf("expected predicate to remain wildcard")
	}
}

func TestCloneSubsetPreservesIdentifiers(t *testing.T) {
	in := New(simple.Factory{})
	a := simple.NamedNode("http://example.org/a")
	b := simple.NamedNode("http://example.org/b")
	idA := in.InternOrAdd(a)
	idB := in.InternOrAdd(b)

	clone := in.CloneSubset([]uint32{idA})

	if clone.Next() != in.Next() {
		t.Fatalf("expected clone to preserve next=%d, got %d", in.Next(), clone.Next())
	}
	gotA, ok := clone.TryIntern(a)
	if !ok || gotA != idA {
		t.Fatalf("expected a to keep id %d in clone, got %d ok=%v", idA, gotA, ok)
	}
	if _, ok := clone.TryIntern(b); ok {
		t.Fatalf("expected b to be absent from the subset clone")
	}
	if _, ok := clone.Term(0); !ok {
		t.Fatalf("expected default graph id 0 to be carried into every clone")
	}
	_ = idB
}
