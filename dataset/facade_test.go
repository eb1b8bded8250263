package dataset

import (
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

func TestAddHasDeleteSize(t *testing.T) {
	d := NewSharedIdList(fac)
	q := quad("s", "p", "o", nil)
	if d.Has(q) {
		t.Fatalf("expected not-present before add")
	}
	d.Add(q)
	if !d.Has(q) {
		t.Fatalf("expected present after add")
	}
	if d.Size() != 1 {
		t.Fatalf("expected size 1, got %d", d.Size())
	}
	d.Delete(q)
	if d.Has(q) || d.Size() != 0 {
		t.Fatalf("expected empty after delete")
	}
	// deleting an already-absent quad is a no-op, not an error.
	d.Delete(q)
}

func TestMatchAndDeleteMatches(t *testing.T) {
	d := NewSharedIdList(fac)
	d.Add(quad("a", "p", "1", nil))
	d.Add(quad("a", "p", "2", nil))
	d.Add(quad("b", "p", "1", nil))

	m := d.Match(fac.NamedNode("a"), nil, nil, nil)
	if m.Size() != 2 {
		t.Fatalf("expected 2 matches for subject=a, got %d", m.Size())
	}
	if d.CountQuads(nil, nil, fac.NamedNode("1"), nil) != 2 {
		t.Fatalf("expected 2 quads with object=1")
	}

	d.DeleteMatches(fac.NamedNode("a"), nil, nil, nil)
	if d.Size() != 1 {
		t.Fatalf("expected size 1 after delete_matches, got %d", d.Size())
	}
}

func TestMatchUnsatisfiablePatternIsEmpty(t *testing.T) {
	d := NewSharedIdList(fac)
	d.Add(quad("a", "p", "1", nil))
	m := d.Match(fac.NamedNode("does-not-exist"), nil, nil, nil)
	if m.Size() != 0 {
		t.Fatalf("expected empty result for unknown term, got %d", m.Size())
	}
}

func TestForEachEveryToArray(t *testing.T) {
	d := NewSharedIdList(fac)
	d.Add(quad("a", "p", "1", nil))
	d.Add(quad("b", "p", "2", nil))

	n := 0
	d.ForEach(func(term.Quad) bool { n++; return true })
	if n != 2 {
		t.Fatalf("expected 2 quads visited, got %d", n)
	}
	if !d.Every(func(q term.Quad) bool { return q.Predicate.String() == "<p>" }) {
		t.Fatalf("expected every quad to share predicate p")
	}
	if !d.Some(func(q term.Quad) bool { return q.Subject.String() == "<a>" }) {
		t.Fatalf("expected some quad with subject a")
	}
	if len(d.ToArray()) != 2 {
		t.Fatalf("expected ToArray len 2")
	}
}

func TestSetAlgebraSameInterner(t *testing.T) {
	d := NewSharedIdList(fac)
	d.Add(quad("a", "p", "1", nil))
	d.Add(quad("b", "p", "2", nil))

	sub := d.Match(fac.NamedNode("a"), nil, nil, nil) // shares d's interner (Shared variant)
	if !d.Contains(sub) {
		t.Fatalf("expected d to contain its own match result")
	}
	union := d.Union(sub)
	if union.Size() != 2 {
		t.Fatalf("expected union with own subset to equal original size, got %d", union.Size())
	}
	if !union.Equals(d) {
		t.Fatalf("expected union of d with its own subset to equal d")
	}
}

func TestSetAlgebraCrossInterner(t *testing.T) {
	a := NewSharedIdList(fac)
	a.Add(quad("x", "p", "1", nil))
	a.Add(quad("y", "p", "2", nil))

	b := NewSharedIdList(fac) // independent interner
	b.Add(quad("x", "p", "1", nil))
	b.Add(quad("z", "p", "3", nil))

	inter := a.Intersection(b)
	if inter.Size() != 1 {
		t.Fatalf("expected intersection size 1, got %d", inter.Size())
	}

	diff := a.Difference(b)
	if diff.Size() != 1 {
		t.Fatalf("expected difference size 1, got %d", diff.Size())
	}

	if a.Contains(b) {
		t.Fatalf("a does not contain all of b's quads")
	}
	if a.Equals(b) {
		t.Fatalf("a and b are not equal")
	}

	union := a.Union(b)
	if union.Size() != 3 {
		t.Fatalf("expected union size 3, got %d", union.Size())
	}
}

func TestAddAllMutatesSelf(t *testing.T) {
	a := NewSharedIdList(fac)
	a.Add(quad("x", "p", "1", nil))
	b := NewSharedIdList(fac)
	b.Add(quad("y", "p", "2", nil))

	a.AddAll(b)
	if a.Size() != 2 {
		t.Fatalf("expected AddAll to grow self to size 2, got %d", a.Size())
	}
}

func TestFilterProducesDuplicateFreeNoForest(t *testing.T) {
	d := NewSharedIdList(fac)
	d.Add(quad("a", "p", "1", nil))
	d.Add(quad("b", "p", "2", nil))

	evens := d.Filter(func(q term.Quad) bool { return q.Object.String() == "<2>" })
	if evens.Size() != 1 {
		t.Fatalf("expected filtered size 1, got %d", evens.Size())
	}
}

func TestMapDedupesViaForest(t *testing.T) {
	d := NewSharedIdList(fac)
	d.Add(quad("a", "p", "1", nil))
	d.Add(quad("b", "p", "1", nil))

	collapsed := d.Map(func(q term.Quad) term.Quad {
		return quad("same", "p", "1", nil)
	})
	if collapsed.Size() != 1 {
		t.Fatalf("expected map collapse to dedupe to size 1, got %d", collapsed.Size())
	}
}

func TestIsolatedVariantClonesInterner(t *testing.T) {
	d := NewIsolatedIdList(fac)
	d.Add(quad("a", "p", "1", nil))
	d.Add(quad("b", "p", "2", nil))

	m := d.Match(fac.NamedNode("a"), nil, nil, nil)
	if !d.Has(quad("a", "p", "1", nil)) {
		t.Fatalf("expected parent unaffected by derived facade")
	}
	if m.Size() != 1 {
		t.Fatalf("expected derived facade to have its own single-element view")
	}
}

func TestFreeThenReuse(t *testing.T) {
	d := NewSharedIdList(fac)
	q := quad("a", "p", "1", nil)
	d.Add(q)
	d.Free()
	if d.Size() != 0 {
		t.Fatalf("expected size 0 after free")
	}
	d.Add(q)
	if !d.Has(q) {
		t.Fatalf("expected facade usable after free")
	}
}

func TestReduce(t *testing.T) {
	d := NewSharedIdList(fac)
	d.Add(quad("a", "p", "1", nil))
	d.Add(quad("b", "p", "1", nil))

	count := Reduce(d, 0, func(acc int, _ term.Quad) int { return acc + 1 })
	if count != 2 {
		t.Fatalf("expected reduce count 2, got %d", count)
	}
}

func TestForestOnlyVariantNeverCachesBareSequence(t *testing.T) {
	d := NewSharedForestOnly(fac)
	d.Add(quad("a", "p", "1", nil))
	m := d.Match(fac.NamedNode("a"), nil, nil, nil)
	sid, ok := m.(*SharedForestOnly)
	if !ok {
		t.Fatalf("expected *SharedForestOnly, got %T", m)
	}
	if sid.forest == nil {
		t.Fatalf("expected ForestOnly variant to eagerly materialize a forest")
	}
}
