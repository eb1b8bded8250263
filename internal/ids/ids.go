// Package ids defines the identifier-level quad and pattern types shared by
// the interner, the ordered sets and the forest. Identifiers are the
// 32-bit unsigned integers a TermInterner mints for terms (spec §3); every
// package below the dataset facade operates on these, never on terms.
package ids

import (
	"fmt"

	"github.com/rdfkit/quadforest/pkg/term"
)

// ID is a term identifier. 0 is reserved for the default graph.
type ID = uint32

// Quad is a 4-tuple of identifiers, compared componentwise.
type Quad struct {
	S, P, O, G ID
}

// Get returns the identifier at the given position.
func (q Quad) Get(d term.Direction) ID {
	switch d {
	case term.Subject:
		return q.S
	case term.Predicate:
		return q.P
	case term.Object:
		return q.O
	case term.Graph:
		return q.G
	default:
		panic(d.String())
	}
}

func (q Quad) String() string { return fmt.Sprintf("%d %d %d %d", q.S, q.P, q.O, q.G) }

func (q Quad) GoString() string {
	return fmt.Sprintf("ids.Quad{S:%d, P:%d, O:%d, G:%d}", q.S, q.P, q.O, q.G)
}

// With returns a copy of q with the given position set.
func (q Quad) With(d term.Direction, v ID) Quad {
	switch d {
	case term.Subject:
		q.S = v
	case term.Predicate:
		q.P = v
	case term.Object:
		q.O = v
	case term.Graph:
		q.G = v
	default:
		panic(d.String())
	}
	return q
}

// Pattern is a quad shape where each position is either bound to a concrete
// identifier or left wildcard. Identifier 0 is a legitimate bound value
// (the default graph), so wildcardness is tracked with an explicit mask
// rather than a sentinel value.
type Pattern struct {
	Vals  Quad
	Bound [4]bool // indexed by term.Direction
}

// Bind sets d to a concrete identifier.
func (p *Pattern) Bind(d term.Direction, v ID) {
	p.Vals = p.Vals.With(d, v)
	p.Bound[d] = true
}

// IsBound reports whether d is bound in this pattern.
func (p Pattern) IsBound(d term.Direction) bool { return p.Bound[d] }

// BoundSet returns the set of bound positions as a bitmask, one bit per
// term.Direction (bit 0 = subject ... bit 3 = graph).
func (p Pattern) BoundSet() uint8 {
	var mask uint8
	for _, d := range term.Directions {
		if p.Bound[d] {
			mask |= 1 << uint(d)
		}
	}
	return mask
}

func (p Pattern) String() string {
	vals := [4]string{}
	for _, d := range term.Directions {
		if p.Bound[d] {
			vals[d] = fmt.Sprintf("%d", p.Vals.Get(d))
		} else {
			vals[d] = "_"
		}
	}
	return fmt.Sprintf("%s %s %s %s", vals[0], vals[1], vals[2], vals[3])
}

func (p Pattern) GoString() string {
	return fmt.Sprintf("ids.Pattern{Vals:%#v, Bound:%v}", p.Vals, p.Bound)
}

// Matches reports whether q satisfies every bound position of p.
func (p Pattern) Matches(q Quad) bool {
	for _, d := range term.Directions {
		if p.Bound[d] && p.Vals.Get(d) != q.Get(d) {
			return false
		}
	}
	return true
}
