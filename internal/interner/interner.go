// Package interner implements TermInterner (spec §4.1): a bidirectional
// map between RDF terms and the small unsigned integers the rest of the
// store operates on.
//
// Term lookup is grounded on the teacher's hashing strategy
// (internal/encoding.TermEncoder.Hash128, github.com/zeebo/xxh3): each
// term is hash-bucketed by the 128-bit xxh3 digest of its canonical key
// string (computed on every probe), so the map itself keys on a fixed-size
// digest, with an exact string compare resolving collisions within a bucket. The teacher hashes terms
// down to a fixed-size on-disk key; here the hash is purely an in-memory
// lookup accelerator; the identifier assigned to a term is always the
// monotonic counter spec §3 requires, never the hash itself.
package interner

import (
	"github.com/zeebo/xxh3"

	"github.com/rdfkit/quadforest/internal/ids"
	"github.com/rdfkit/quadforest/pkg/term"
)

// bucketKey is the 128-bit xxh3 digest of a term's canonical key string.
type bucketKey [2]uint64

func hashKey(key string) bucketKey {
	h := xxh3.Hash128([]byte(key))
	return bucketKey{h.Hi, h.Lo}
}

type entry struct {
	key string
	id  ids.ID
}

// Interner is a TermInterner: every identifier in [0, next) maps to
// exactly one term and vice versa, the default graph occupies position 0,
// and identifiers are monotonically allocated and never reused. A
// CloneSubset copy keeps Next but maps only the identifiers it carried.
type Interner struct {
	factory term.Factory
	buckets map[bucketKey][]entry
	terms   []term.Term // terms[id]
	next    ids.ID
}

// New creates an interner and pre-assigns identifier 0 to the default graph.
func New(factory term.Factory) *Interner {
	in := &Interner{
		factory: factory,
		buckets: make(map[bucketKey][]entry),
		terms:   make([]term.Term, 0, 16),
	}
	in.assign(factory.DefaultGraph())
	return in
}

// Factory returns the term factory this interner was built with.
func (in *Interner) Factory() term.Factory { return in.factory }

// Next returns the next identifier that would be allocated.
func (in *Interner) Next() ids.ID { return in.next }

func (in *Interner) assign(t term.Term) ids.ID {
	id := in.next
	in.next++
	in.terms = append(in.terms, t)
	key := in.factory.Key(t)
	bk := hashKey(key)
	in.buckets[bk] = append(in.buckets[bk], entry{key: key, id: id})
	return id
}

func (in *Interner) lookup(key string) (ids.ID, bool) {
	bk := hashKey(key)
	for _, e := range in.buckets[bk] {
		if e.key == key {
			return e.id, true
		}
	}
	return 0, false
}

// InternOrAdd returns term t's identifier, allocating a new one if t is
// not yet known. Allocation is monotonic; calling this twice with an
// already-known term returns the same identifier both times.
func (in *Interner) InternOrAdd(t term.Term) ids.ID {
	t = in.factory.FromTerm(t)
	key := in.factory.Key(t)
	if id, ok := in.lookup(key); ok {
		return id
	}
	return in.assign(t)
}

// TryIntern returns t's existing identifier without mutating the interner,
// or false if t is unknown.
func (in *Interner) TryIntern(t term.Term) (ids.ID, bool) {
	t = in.factory.FromTerm(t)
	return in.lookup(in.factory.Key(t))
}

// Term is the reverse lookup: the term assigned to id, or false if id is
// out of range or unmapped (not carried into a CloneSubset copy).
func (in *Interner) Term(id ids.ID) (term.Term, bool) {
	if id >= in.next || in.terms[id] == nil {
		return nil, false
	}
	return in.terms[id], true
}

// InternOrAddQuad interns all four positions of q, allocating as needed.
func (in *Interner) InternOrAddQuad(q term.Quad) ids.Quad {
	return ids.Quad{
		S: in.InternOrAdd(q.Subject),
		P: in.InternOrAdd(q.Predicate),
		O: in.InternOrAdd(q.Object),
		G: in.InternOrAdd(q.Graph),
	}
}

// TryInternQuad interns all four positions of q without mutating the
// interner. ok is false if any position is unknown.
func (in *Interner) TryInternQuad(q term.Quad) (iq ids.Quad, ok bool) {
	s, ok1 := in.TryIntern(q.Subject)
	p, ok2 := in.TryIntern(q.Predicate)
	o, ok3 := in.TryIntern(q.Object)
	g, ok4 := in.TryIntern(q.Graph)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return ids.Quad{}, false
	}
	return ids.Quad{S: s, P: p, O: o, G: g}, true
}

// DecodeQuad reverses an identifier quad into a term.Quad. ok is false
// (StaleIdentifier, spec §7) if any component identifier is unmapped --
// a structural invariant violation that should be impossible in normal use.
func (in *Interner) DecodeQuad(q ids.Quad) (term.Quad, bool) {
	s, ok := in.Term(q.S)
	if !ok {
		return term.Quad{}, false
	}
	p, ok := in.Term(q.P)
	if !ok {
		return term.Quad{}, false
	}
	o, ok := in.Term(q.O)
	if !ok {
		return term.Quad{}, false
	}
	g, ok := in.Term(q.G)
	if !ok {
		return term.Quad{}, false
	}
	return term.Quad{Subject: s, Predicate: p, Object: o, Graph: g}, true
}

// MatchIDs lifts each non-nil term in a pattern to its identifier. It
// returns ok=false (PatternUnsatisfiable, spec §7) if any bound term is
// unknown to this interner -- signaling "no quad can match" -- without
// mutating the interner. A nil term passes through as wildcard.
func (in *Interner) MatchIDs(s, p, o, g term.Term) (ids.Pattern, bool) {
	var pat ids.Pattern
	for _, part := range []struct {
		d term.Direction
		t term.Term
	}{
		{term.Subject, s},
		{term.Predicate, p},
		{term.Object, o},
		{term.Graph, g},
	} {
		if part.t == nil {
			continue
		}
		id, ok := in.TryIntern(part.t)
		if !ok {
			return ids.Pattern{}, false
		}
		pat.Bind(part.d, id)
	}
	return pat, true
}

// CloneSubset builds a new interner containing exactly the identifiers
// present in idSet, preserving their source identifier values and Next.
// Used by "Isolated" dataset variants so a derived facade does not keep
// the whole parent interner alive.
func (in *Interner) CloneSubset(idSet []ids.ID) *Interner {
	out := &Interner{
		factory: in.factory,
		buckets: make(map[bucketKey][]entry),
		terms:   make([]term.Term, in.next),
	}
	out.next = in.next
	// Default graph (id 0) is always carried so Isolated facades still
	// satisfy the "default graph present in every dataset" invariant.
	seen := make(map[ids.ID]bool, len(idSet)+1)
	add := func(id ids.ID) {
		if seen[id] {
			return
		}
		seen[id] = true
		t := in.terms[id]
		out.terms[id] = t
		key := in.factory.Key(t)
		bk := hashKey(key)
		out.buckets[bk] = append(out.buckets[bk], entry{key: key, id: id})
	}
	add(0)
	for _, id := range idSet {
		add(id)
	}
	return out
}
