// Package forest implements QuadForest (spec §4.3): a collection of
// OrderedQuadSets keyed by permutation, with pattern routing and set
// algebra dispatched across them.
//
// Grounded on two teacher-adjacent designs: the pattern-to-index
// selection split of aleksaelezovic/trigo's pkg/store/query.go
// (selectIndex picks a table, buildScanPrefix builds the range; here
// ordered.SelectPermutation picks a permutation, ordered.Set.Range scans
// it) generalized from trigo's 11 fixed tables down to spec §4.2's six
// permutations, and cayleygraph/cayley's graph/memstore.QuadDirectionIndex
// / indexesForQuad (graph/memstore/quadstore.go), which keeps every
// materialized index in sync on insert/delete the same way this forest
// keeps every materialized permutation in sync.
package forest

import (
	"github.com/rdfkit/quadforest/internal/ids"
	"github.com/rdfkit/quadforest/internal/ordered"
)

// Forest holds zero or more materialized OrderedQuadSets, one per
// permutation, all containing the same elements, plus a designated anchor
// that defines membership. A Forest returned by New (or one that has been
// Free'd) is in the "freed" state: anchor absent (-1), nothing
// materialized. The zero value is not that state (its anchor is 0 with no
// set behind it); build forests with New.
type Forest struct {
	sets         [6]*ordered.Set
	materialized [6]bool
	anchor       int // index into sets/materialized, or -1 if freed
}

// New returns an empty, unmaterialized (freed) forest.
func New() *Forest {
	return &Forest{anchor: -1}
}

// ensureAnchor lazily builds the anchor set (permutation 0, SPOG) the
// first time the forest needs to hold elements -- spec §4.3 "an
// insert/remove on a freed forest lazily re-materializes the anchor."
func (f *Forest) ensureAnchor() *ordered.Set {
	if f.anchor < 0 {
		f.anchor = 0
		f.materialized[0] = true
		f.sets[0] = ordered.New(ordered.Permutations[0])
	}
	return f.sets[f.anchor]
}

// Anchor returns the anchor set, materializing it if necessary.
func (f *Forest) Anchor() *ordered.Set { return f.ensureAnchor() }

// Insert adds q to every materialized set. Returns true if q was new.
func (f *Forest) Insert(q ids.Quad) bool {
	anchor := f.ensureAnchor()
	if !anchor.Insert(q) {
		return false
	}
	for i, ok := range f.materialized {
		if ok && i != f.anchor {
			f.sets[i].Insert(q)
		}
	}
	return true
}

// Remove deletes q from every materialized set. Returns true if it was present.
func (f *Forest) Remove(q ids.Quad) bool {
	anchor := f.ensureAnchor()
	if !anchor.Remove(q) {
		return false
	}
	for i, ok := range f.materialized {
		if ok && i != f.anchor {
			f.sets[i].Remove(q)
		}
	}
	return true
}

// Contains is a membership test against the anchor.
func (f *Forest) Contains(q ids.Quad) bool {
	return f.ensureAnchor().Contains(q)
}

// BulkLoad inserts every element of seq, materializing the anchor first.
func (f *Forest) BulkLoad(seq []ids.Quad) {
	f.ensureAnchor()
	for _, q := range seq {
		f.Insert(q)
	}
}

// EnsureIndex materializes (if needed) and returns the index of a set
// whose permutation prefix covers boundSet, selecting per spec §4.2: an
// already-materialized qualifying order wins, otherwise the lowest-indexed
// qualifying order is built by copying the anchor under its comparator.
func (f *Forest) EnsureIndex(boundSet uint8) int {
	idx := ordered.SelectPermutation(boundSet, f.materialized)
	if idx < 0 {
		panic("forest: no permutation covers bound set; Permutations must cover all 16 shapes")
	}
	if f.materialized[idx] {
		return idx
	}
	anchor := f.ensureAnchor()
	fresh := ordered.New(ordered.Permutations[idx])
	anchor.Each(func(q ids.Quad) bool {
		fresh.Insert(q)
		return true
	})
	f.sets[idx] = fresh
	f.materialized[idx] = true
	return idx
}

// Match selects the cheapest index for pat, ensures it, and range-scans it,
// returning matches in that index's permutation order.
func (f *Forest) Match(pat ids.Pattern) []ids.Quad {
	idx := f.EnsureIndex(pat.BoundSet())
	var out []ids.Quad
	f.sets[idx].Range(pat, func(q ids.Quad) bool {
		out = append(out, q)
		return true
	})
	return out
}

// MatchCount is like Match but avoids materializing the result sequence
// where possible: a fully-wildcard pattern is answered directly from the
// anchor's size.
func (f *Forest) MatchCount(pat ids.Pattern) int {
	if pat.BoundSet() == 0 {
		return f.ensureAnchor().Len()
	}
	idx := f.EnsureIndex(pat.BoundSet())
	count := 0
	f.sets[idx].Range(pat, func(ids.Quad) bool {
		count++
		return true
	})
	return count
}

// DeleteMatches computes the match set once, then removes every matched
// element from every materialized set. Returns the number removed.
func (f *Forest) DeleteMatches(pat ids.Pattern) int {
	matches := f.Match(pat)
	for _, q := range matches {
		f.Remove(q)
	}
	return len(matches)
}

// Size returns the number of elements (anchor's length).
func (f *Forest) Size() int {
	if f.anchor < 0 {
		return 0
	}
	return f.sets[f.anchor].Len()
}

// MaterializedCount returns how many of the six permutations are built.
func (f *Forest) MaterializedCount() int {
	n := 0
	for _, ok := range f.materialized {
		if ok {
			n++
		}
	}
	return n
}

// Free empties the forest and releases every materialized set.
func (f *Forest) Free() {
	*f = Forest{anchor: -1}
}

// ---- set algebra: fast path (against another Forest's anchor) ----

func (f *Forest) UnionForest(other *Forest) *Forest {
	out := New()
	out.ensureAnchor()
	out.sets[0] = f.Anchor().Union(other.Anchor())
	return out
}

func (f *Forest) IntersectionForest(other *Forest) *Forest {
	out := New()
	out.ensureAnchor()
	out.sets[0] = f.Anchor().Intersection(other.Anchor())
	return out
}

func (f *Forest) DifferenceForest(other *Forest) *Forest {
	out := New()
	out.ensureAnchor()
	out.sets[0] = f.Anchor().Difference(other.Anchor())
	return out
}

func (f *Forest) ContainsAllForest(other *Forest) bool {
	return f.Anchor().ContainsAll(other.Anchor())
}

func (f *Forest) EqualsForest(other *Forest) bool {
	return f.Anchor().Equals(other.Anchor())
}

// ---- set algebra: slow path (against an unordered identifier sequence) ----

func (f *Forest) UnionSeq(seq []ids.Quad) *Forest {
	out := New()
	anchor := out.ensureAnchor()
	f.Anchor().Each(func(q ids.Quad) bool {
		anchor.Insert(q)
		return true
	})
	for _, q := range seq {
		anchor.Insert(q)
	}
	return out
}

func (f *Forest) IntersectionSeq(seq []ids.Quad) *Forest {
	present := make(map[ids.Quad]bool, len(seq))
	for _, q := range seq {
		present[q] = true
	}
	out := New()
	anchor := out.ensureAnchor()
	f.Anchor().Each(func(q ids.Quad) bool {
		if present[q] {
			anchor.Insert(q)
		}
		return true
	})
	return out
}

func (f *Forest) DifferenceSeq(seq []ids.Quad) *Forest {
	absent := make(map[ids.Quad]bool, len(seq))
	for _, q := range seq {
		absent[q] = true
	}
	out := New()
	anchor := out.ensureAnchor()
	f.Anchor().Each(func(q ids.Quad) bool {
		if !absent[q] {
			anchor.Insert(q)
		}
		return true
	})
	return out
}

// ContainsAllSeq reports whether every element of seq is a member of f.
func (f *Forest) ContainsAllSeq(seq []ids.Quad) bool {
	for _, q := range seq {
		if !f.Contains(q) {
			return false
		}
	}
	return true
}

// EqualsSeq reports whether f's elements are exactly seq as a set (no
// duplicates assumed in seq; duplicates collapse naturally via Contains).
func (f *Forest) EqualsSeq(seq []ids.Quad) bool {
	seen := make(map[ids.Quad]bool, len(seq))
	for _, q := range seq {
		if !f.Contains(q) {
			return false
		}
		seen[q] = true
	}
	return len(seen) == f.Size()
}
