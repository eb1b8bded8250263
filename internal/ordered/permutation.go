package ordered

import "github.com/rdfkit/quadforest/pkg/term"

// Permutation names one of the six total orders over term.Direction that
// the forest materializes trees under (spec §4.2). Order is the
// comparison order: Order[0] is compared first.
type Permutation struct {
	Name  string
	Order [4]term.Direction
}

// The six permutations are exactly the ones spec §4.2 requires: a minimal
// covering of every one of the sixteen possible pattern shapes, so that
// any bound set of positions is a prefix of at least one of them.
var Permutations = [6]Permutation{
	{Name: "SPOG", Order: [4]term.Direction{term.Subject, term.Predicate, term.Object, term.Graph}},
	{Name: "POGS", Order: [4]term.Direction{term.Predicate, term.Object, term.Graph, term.Subject}},
	{Name: "OGSP", Order: [4]term.Direction{term.Object, term.Graph, term.Subject, term.Predicate}},
	{Name: "GSPO", Order: [4]term.Direction{term.Graph, term.Subject, term.Predicate, term.Object}},
	{Name: "GPOS", Order: [4]term.Direction{term.Graph, term.Predicate, term.Object, term.Subject}},
	{Name: "OSPG", Order: [4]term.Direction{term.Object, term.Subject, term.Predicate, term.Graph}},
}

// prefixSet returns the set of positions covered by the first n elements
// of a permutation's order, as a bitmask matching ids.Pattern.BoundSet.
func prefixSet(p Permutation, n int) uint8 {
	var mask uint8
	for i := 0; i < n; i++ {
		mask |= 1 << uint(p.Order[i])
	}
	return mask
}

// SelectPermutation implements spec §4.2's selection rule: for a bound
// set B, pick an order whose prefix is a permutation of B, preferring
// whichever candidate is already materialized (materialized is indexed
// the same way as Permutations); otherwise the lowest index. It returns
// -1 if no permutation covers B (structurally impossible: see
// Permutations' covering property, verified by set_test.go).
func SelectPermutation(boundSet uint8, materialized [6]bool) int {
	popcount := func(m uint8) int {
		n := 0
		for m != 0 {
			n += int(m & 1)
			m >>= 1
		}
		return n
	}
	n := popcount(boundSet)
	best := -1
	for i, p := range Permutations {
		if prefixSet(p, n) != boundSet {
			continue
		}
		if materialized[i] {
			return i
		}
		if best == -1 {
			best = i
		}
	}
	return best
}
