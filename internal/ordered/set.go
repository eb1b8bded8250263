// Package ordered implements OrderedQuadSet (spec §4.2): one ordered set
// of IdentifierQuads under a single fixed permutation, generic over the
// comparator used for that permutation (spec §9, "implement the ordered
// set generically over a comparator selected by permutation index").
//
// Grounded on github.com/google/btree, the same library the pack's
// AKJUS-bsc-erigon module uses for its in-memory history index
// (core/state/history_reader_v3.go, btree.New/AscendGreaterOrEqual). That
// file uses the classic Item-interface API; here we use the newer generic
// BTreeG[T] the same module ships, since it lets each of the six
// permutations be one instantiation with its own Less func instead of six
// boxed Item wrapper types.
package ordered

import (
	"github.com/google/btree"

	"github.com/rdfkit/quadforest/internal/ids"
)

// btreeDegree is the branching factor passed to btree.NewG, matching the
// degree erigon uses for its in-memory trees.
const btreeDegree = 32

// Set is one OrderedQuadSet: a duplicate-free set of ids.Quad sorted under
// Permutation, with logarithmic insert/remove/contains and range scans
// that degrade to a contiguous walk once a query's bound prefix matches
// Permutation's order.
type Set struct {
	perm Permutation
	tree *btree.BTreeG[ids.Quad]
}

func less(perm Permutation) func(a, b ids.Quad) bool {
	order := perm.Order
	return func(a, b ids.Quad) bool {
		for _, d := range order {
			av, bv := a.Get(d), b.Get(d)
			if av != bv {
				return av < bv
			}
		}
		return false
	}
}

// New creates an empty OrderedQuadSet under the given permutation.
func New(perm Permutation) *Set {
	return &Set{perm: perm, tree: btree.NewG(btreeDegree, less(perm))}
}

// Permutation returns the order this set is sorted under.
func (s *Set) Permutation() Permutation { return s.perm }

// Insert adds q, if not already present. Returns true if it was new.
func (s *Set) Insert(q ids.Quad) bool {
	_, had := s.tree.ReplaceOrInsert(q)
	return !had
}

// Remove deletes q. Returns true if it was present.
func (s *Set) Remove(q ids.Quad) bool {
	_, had := s.tree.Delete(q)
	return had
}

// Contains reports whether q is a member.
func (s *Set) Contains(q ids.Quad) bool {
	_, ok := s.tree.Get(q)
	return ok
}

// Len returns the number of elements.
func (s *Set) Len() int { return s.tree.Len() }

// Each calls fn for every element in permutation order. Stops early if fn
// returns false.
func (s *Set) Each(fn func(ids.Quad) bool) {
	s.tree.Ascend(func(q ids.Quad) bool { return fn(q) })
}

// All returns every element in permutation order.
func (s *Set) All() []ids.Quad {
	out := make([]ids.Quad, 0, s.tree.Len())
	s.Each(func(q ids.Quad) bool {
		out = append(out, q)
		return true
	})
	return out
}

// Range yields elements matching pat via a single contiguous range scan
// when pat's bound set is a prefix of s's permutation (the selection rule
// in §4.2 is expected to guarantee this); otherwise it falls back to a
// full scan, filtering every element.
func (s *Set) Range(pat ids.Pattern, fn func(ids.Quad) bool) {
	n := boundPrefixLen(s.perm, pat)
	if n < 0 {
		s.Each(func(q ids.Quad) bool {
			if pat.Matches(q) {
				return fn(q)
			}
			return true
		})
		return
	}
	if n == 0 {
		s.Each(fn)
		return
	}
	low := lowKey(s.perm, pat, n)
	s.tree.AscendGreaterOrEqual(low, func(q ids.Quad) bool {
		if !prefixMatches(s.perm, pat, n, q) {
			return false
		}
		return fn(q)
	})
}

// boundPrefixLen returns how many leading positions of perm's order are
// bound in pat, or -1 if the bound positions are not exactly a prefix of
// perm (i.e. this set cannot service pat with a contiguous scan).
func boundPrefixLen(perm Permutation, pat ids.Pattern) int {
	n := 0
	for _, d := range perm.Order {
		if !pat.IsBound(d) {
			break
		}
		n++
	}
	// every position after the prefix must be unbound for this to be a
	// true prefix match; otherwise a bound position lies outside the
	// contiguous range this set can scan.
	for i := n; i < 4; i++ {
		if pat.IsBound(perm.Order[i]) {
			return -1
		}
	}
	return n
}

func lowKey(perm Permutation, pat ids.Pattern, n int) ids.Quad {
	var q ids.Quad
	for i := 0; i < n; i++ {
		q = q.With(perm.Order[i], pat.Vals.Get(perm.Order[i]))
	}
	return q
}

func prefixMatches(perm Permutation, pat ids.Pattern, n int, q ids.Quad) bool {
	for i := 0; i < n; i++ {
		d := perm.Order[i]
		if pat.Vals.Get(d) != q.Get(d) {
			return false
		}
	}
	return true
}

// Clone returns a shallow copy of s (new tree, same elements, same
// permutation); Union starts from it.
func (s *Set) Clone() *Set {
	out := New(s.perm)
	s.Each(func(q ids.Quad) bool {
		out.tree.ReplaceOrInsert(q)
		return true
	})
	return out
}

// Union, Intersection and Difference implement set algebra against another
// Set of the same permutation, producing a new Set under that permutation.
func (s *Set) Union(other *Set) *Set {
	out := s.Clone()
	other.Each(func(q ids.Quad) bool {
		out.tree.ReplaceOrInsert(q)
		return true
	})
	return out
}

func (s *Set) Intersection(other *Set) *Set {
	out := New(s.perm)
	s.Each(func(q ids.Quad) bool {
		if other.Contains(q) {
			out.tree.ReplaceOrInsert(q)
		}
		return true
	})
	return out
}

func (s *Set) Difference(other *Set) *Set {
	out := New(s.perm)
	s.Each(func(q ids.Quad) bool {
		if !other.Contains(q) {
			out.tree.ReplaceOrInsert(q)
		}
		return true
	})
	return out
}

// ContainsAll reports whether every element of other is also in s.
func (s *Set) ContainsAll(other *Set) bool {
	all := true
	other.Each(func(q ids.Quad) bool {
		if !s.Contains(q) {
			all = false
			return false
		}
		return true
	})
	return all
}

// Equals reports whether s and other contain exactly the same elements.
func (s *Set) Equals(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	return s.ContainsAll(other)
}
