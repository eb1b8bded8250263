package ordered

import (
	"sort"
	"testing"

	"github.com/rdfkit/quadforest/internal/ids"
	"github.com/rdfkit/quadforest/pkg/term"
)

func TestSelectPermutationCoversAllShapes(t *testing.T) {
	var materialized [6]bool
	for mask := 0; mask < 16; mask++ {
		idx := SelectPermutation(uint8(mask), materialized)
		if idx < 0 {
			t.Fatalf("no permutation covers bound mask %04b", mask)
		}
	}
}

func TestSelectPermutationPrefersMaterialized(t *testing.T) {
	materialized := [6]bool{false, false, false, false, true, false}
	// {P,O,G} bound is a prefix of both POGS (index 1) and GPOS (index 4);
	// the materialized GPOS must win over the lower-indexed POGS.
	idx := SelectPermutation(1<<uint(term.Predicate)|1<<uint(term.Object)|1<<uint(term.Graph), materialized)
	if idx != 4 {
		t.Fatalf("expected GPOS (4), got %d", idx)
	}
}

func TestInsertContainsRemove(t *testing.T) {
	s := New(Permutations[0])
	q := ids.Quad{S: 1, P: 2, O: 3, G: 0}

	if !s.Insert(q) {
		t.Fatalf("expected first insert to report new")
	}
	if s.Insert(q) {
		t.Fatalf("expected duplicate insert to report not-new")
	}
	if !s.Contains(q) {
		t.Fatalf("expected set to contain inserted quad")
	}
	if s.Len() != 1 {
		t.Fatalf("expected len 1, got %d", s.Len())
	}
	if !s.Remove(q) {
		t.Fatalf("expected remove to report present")
	}
	if s.Contains(q) {
		t.Fatalf("expected quad gone after remove")
	}
}

func TestIterationOrderMatchesPermutation(t *testing.T) {
	perm := Permutations[0] // SPOG
	s := New(perm)
	quads := []ids.Quad{
		{S: 2, P: 1, O: 1, G: 0},
		{S: 1, P: 2, O: 1, G: 0},
		{S: 1, P: 1, O: 2, G: 0},
		{S: 1, P: 1, O: 1, G: 0},
	}
	for _, q := range quads {
		s.Insert(q)
	}
	got := s.All()
	if !sort.SliceIsSorted(got, func(i, j int) bool { return less(perm)(got[i], got[j]) }) {
		t.Fatalf("expected iteration in SPOG order, got %+v", got)
	}
}

func TestRangeContiguousScan(t *testing.T) {
	s := New(Permutations[0]) // SPOG
	s.Insert(ids.Quad{S: 1, P: 1, O: 1, G: 0})
	s.Insert(ids.Quad{S: 1, P: 2, O: 1, G: 0})
	s.Insert(ids.Quad{S: 2, P: 1, O: 1, G: 0})

	var pat ids.Pattern
	pat.Bind(term.Subject, 1)

	var got []ids.Quad
	s.Range(pat, func(q ids.Quad) bool {
		got = append(got, q)
		return true
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 matches for subject=1, got %d (%+v)", len(got), got)
	}
}

func TestSetAlgebra(t *testing.T) {
	perm := Permutations[0]
	a := New(perm)
	b := New(perm)
	q1 := ids.Quad{S: 1}
	q2 := ids.Quad{S: 2}
	q3 := ids.Quad{S: 3}
	a.Insert(q1)
	a.Insert(q2)
	b.Insert(q1)
	b.Insert(q3)

	inter := a.Intersection(b)
	if inter.Len() != 1 || !inter.Contains(q1) {
		t.Fatalf("expected intersection {q1}, got %+v", inter.All())
	}
	if a.Contains(q3) || b.Contains(q2) {
		t.Fatalf("intersection must not mutate operands")
	}

	diff := a.Difference(b)
	if diff.Len() != 1 || !diff.Contains(q2) {
		t.Fatalf("expected difference {q2}, got %+v", diff.All())
	}

	union := a.Union(b)
	if union.Len() != 3 {
		t.Fatalf("expected union of size 3, got %d", union.Len())
	}

	if !a.Equals(a.Clone()) {
		t.Fatalf("expected a set to equal its own clone")
	}
	if a.Equals(b) {
		t.Fatalf("expected distinct sets to not be equal")
	}
}
