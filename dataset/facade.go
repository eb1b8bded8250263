// Package dataset implements DatasetFacade (spec §4.4): a public dataset
// contract over interner + forest (+ optional identifier-sequence cache),
// shaped after the teacher's top-level store API
// (aleksaelezovic/trigo pkg/store.TripleStore: Insert/Delete/Contains/Query
// around a shared encoder) and cayleygraph/cayley's graph.QuadStore
// method names (AddQuad/RemoveQuad/QuadIterator), adapted to the
// in-memory, no-persistence, set-algebra-capable contract spec.md defines.
package dataset

import (
	"errors"
	"fmt"

	"github.com/rdfkit/quadforest/internal/forest"
	"github.com/rdfkit/quadforest/internal/ids"
	"github.com/rdfkit/quadforest/internal/interner"
	"github.com/rdfkit/quadforest/pkg/term"
)

// ErrStaleIdentifier signals a structural invariant violation: an
// identifier decoded out of a forest has no corresponding term in the
// interner. Spec §7: "should be impossible in normal use; signals state
// corruption." Grounded on the teacher's own defensive panics for
// equivalent impossible states (graph/memstore's
// "panic("remove of deleted node")" in cayleygraph/cayley, and the
// teacher's own fmt.Errorf-wrapped invariant checks throughout its pkg/store).
var ErrStaleIdentifier = errors.New("quadforest: stale identifier decoded out of forest")

// Dataset is the public contract every facade variant implements. All
// four variants (Shared/Isolated x IdList-cache/Forest-only, see
// variants.go) behave identically; only performance and memory differ.
type Dataset interface {
	Add(q term.Quad) Dataset
	Delete(q term.Quad) Dataset
	Has(q term.Quad) bool
	Match(s, p, o, g term.Term) Dataset
	DeleteMatches(s, p, o, g term.Term) Dataset
	Size() int
	Iterator() *Iterator
	ForEach(fn func(term.Quad) bool)
	CountQuads(s, p, o, g term.Term) int
	EnsureIndexFor(s, p, o, g term.Term)
	Union(other Dataset) Dataset
	Intersection(other Dataset) Dataset
	Difference(other Dataset) Dataset
	Contains(other Dataset) bool
	Equals(other Dataset) bool
	AddAll(other Dataset) Dataset
	Filter(pred func(term.Quad) bool) Dataset
	Map(fn func(term.Quad) term.Quad) Dataset
	Every(pred func(term.Quad) bool) bool
	Some(pred func(term.Quad) bool) bool
	AsIdentifierSequence() []uint32
	ToArray() []term.Quad
	Free()
}

// variant captures the two orthogonal toggles spec §4.4/§9 describe:
// whether a facade caches the identifier sequence as a standalone
// representation (vs. always forcing a forest), and whether derived
// facades share this facade's interner or clone the reachable subset.
type variant struct {
	cacheSequence  bool
	isolateDerived bool
}

// engine is the shared implementation behind all four variant types
// (spec §9: "Variant-specific behavior is encoded in construction, not in
// runtime branches" -- the only per-call branch is the two booleans in
// variant, set once at construction and otherwise just read).
type engine struct {
	interner *interner.Interner
	forest   *forest.Forest // nil: no forest materialized
	seq      []ids.Quad     // nil: no cached identifier sequence
	variant  variant
}

func newEngine(in *interner.Interner, v variant) *engine {
	return &engine{interner: in, variant: v}
}

// asEngine lets any wrapper type recover its shared engine for fast-path
// dispatch; promoted automatically since every wrapper embeds *engine.
func (e *engine) asEngine() *engine { return e }

type hasEngine interface{ asEngine() *engine }

// ensureForest materializes a forest from the cached sequence (or empty)
// if one isn't already present. Read-only paths call this; it never
// drops a cached sequence (spec §4.4 read-only state transition).
func (e *engine) ensureForest() *forest.Forest {
	if e.forest == nil {
		e.forest = forest.New()
		if e.seq != nil {
			e.forest.BulkLoad(e.seq)
		}
	}
	return e.forest
}

// ensureModifiableForest materializes a forest and drops the (now stale)
// cached sequence -- spec §4.4's mutating-path state transition.
func (e *engine) ensureModifiableForest() *forest.Forest {
	f := e.ensureForest()
	e.seq = nil
	return f
}

// idSeq returns the current identifier-sequence view of this engine's
// elements, preferring the cache and falling back to the anchor.
func (e *engine) idSeq() []ids.Quad {
	if e.seq != nil {
		return e.seq
	}
	if e.forest != nil {
		return e.forest.Anchor().All()
	}
	return nil
}

func (e *engine) size() int {
	if e.forest != nil {
		return e.forest.Size()
	}
	return len(e.seq)
}

func flattenIDs(quads []ids.Quad) []ids.ID {
	out := make([]ids.ID, 0, len(quads)*4)
	for _, q := range quads {
		out = append(out, q.S, q.P, q.O, q.G)
	}
	return out
}

// deriveFromForest builds a new engine of the same variant from a fresh
// forest, applying the Isolated/Shared interner-sharing rule.
func (e *engine) deriveFromForest(nf *forest.Forest) *engine {
	if e.variant.isolateDerived {
		return &engine{interner: e.interner.CloneSubset(flattenIDs(nf.Anchor().All())), forest: nf, variant: e.variant}
	}
	return &engine{interner: e.interner, forest: nf, variant: e.variant}
}

// deriveFromSeq builds a new engine of the same variant holding only a
// cached identifier sequence (no forest) -- the representation Match
// returns (spec §4.4: "cheapest representation for a read-and-discard result").
func (e *engine) deriveFromSeq(seq []ids.Quad) *engine {
	if e.variant.isolateDerived {
		return &engine{interner: e.interner.CloneSubset(flattenIDs(seq)), seq: seq, variant: e.variant}
	}
	return &engine{interner: e.interner, seq: seq, variant: e.variant}
}

func (e *engine) add(q term.Quad) {
	f := e.ensureModifiableForest()
	iq := e.interner.InternOrAddQuad(q)
	f.Insert(iq)
}

func (e *engine) delete(q term.Quad) {
	f := e.ensureModifiableForest()
	if iq, ok := e.interner.TryInternQuad(q); ok {
		f.Remove(iq)
	}
	// unknown term => PatternUnsatisfiable (spec §7), absorbed as a no-op.
}

func (e *engine) has(q term.Quad) bool {
	f := e.ensureForest() // open question #2 (SPEC_FULL.md): has() is allowed to materialize.
	iq, ok := e.interner.TryInternQuad(q)
	if !ok {
		return false
	}
	return f.Contains(iq)
}

func (e *engine) matchPattern(s, p, o, g term.Term) []ids.Quad {
	pat, ok := e.interner.MatchIDs(s, p, o, g)
	if !ok {
		return nil
	}
	return e.ensureForest().Match(pat)
}

func (e *engine) deleteMatches(s, p, o, g term.Term) {
	f := e.ensureModifiableForest()
	if pat, ok := e.interner.MatchIDs(s, p, o, g); ok {
		f.DeleteMatches(pat)
	}
}

func (e *engine) countQuads(s, p, o, g term.Term) int {
	pat, ok := e.interner.MatchIDs(s, p, o, g)
	if !ok {
		return 0
	}
	return e.ensureForest().MatchCount(pat)
}

func (e *engine) ensureIndexFor(s, p, o, g term.Term) {
	if pat, ok := e.interner.MatchIDs(s, p, o, g); ok {
		e.ensureForest().EnsureIndex(pat.BoundSet())
	}
}

// decodeOrPanic decodes an identifier quad, panicking (spec §7
// StaleIdentifier: "abort the operation with a diagnostic") if the
// interner has forgotten one of its own identifiers -- a structural
// invariant violation that should be impossible in normal use.
func (e *engine) decodeOrPanic(iq ids.Quad) term.Quad {
	q, ok := e.interner.DecodeQuad(iq)
	if !ok {
		panic(fmt.Errorf("%w: %+v", ErrStaleIdentifier, iq))
	}
	return q
}

func (e *engine) forEach(fn func(term.Quad) bool) {
	for _, iq := range e.idSeq() {
		if !fn(e.decodeOrPanic(iq)) {
			return
		}
	}
}

func (e *engine) every(pred func(term.Quad) bool) bool {
	ok := true
	e.forEach(func(q term.Quad) bool {
		if !pred(q) {
			ok = false
			return false
		}
		return true
	})
	return ok
}

func (e *engine) some(pred func(term.Quad) bool) bool {
	found := false
	e.forEach(func(q term.Quad) bool {
		if pred(q) {
			found = true
			return false
		}
		return true
	})
	return found
}

func (e *engine) toArray() []term.Quad {
	seq := e.idSeq()
	out := make([]term.Quad, 0, len(seq))
	for _, iq := range seq {
		out = append(out, e.decodeOrPanic(iq))
	}
	return out
}

func (e *engine) asIdentifierSequence() []uint32 {
	seq := e.idSeq()
	out := make([]uint32, 0, len(seq)*4)
	for _, iq := range seq {
		out = append(out, iq.S, iq.P, iq.O, iq.G)
	}
	return out
}

// filter consumes the current sequence and produces a new, duplicate-free
// sequence -- the source was already unique, so the result needs no
// forest (spec §4.4).
func (e *engine) filter(pred func(term.Quad) bool) *engine {
	src := e.idSeq()
	out := make([]ids.Quad, 0, len(src))
	for _, iq := range src {
		if pred(e.decodeOrPanic(iq)) {
			out = append(out, iq)
		}
	}
	return e.deriveFromSeq(out)
}

// mapOp may produce duplicates or new terms, so the result is built
// straight into a forest (which dedupes) rather than a cached sequence.
func (e *engine) mapOp(fn func(term.Quad) term.Quad) *engine {
	src := e.idSeq()
	transformed := make([]term.Quad, 0, len(src))
	for _, iq := range src {
		transformed = append(transformed, fn(e.decodeOrPanic(iq)))
	}

	target := e.interner
	if e.variant.isolateDerived {
		target = e.interner.CloneSubset(flattenIDs(src))
	}
	mapped := make([]ids.Quad, 0, len(transformed))
	for _, q := range transformed {
		mapped = append(mapped, target.InternOrAddQuad(q))
	}
	nf := forest.New()
	nf.BulkLoad(mapped)
	return &engine{interner: target, forest: nf, variant: e.variant}
}

// sameInternerAs implements the SAME_INTERNER similarity level (spec
// §4.4): other must be one of our facade types and share this engine's
// exact interner. SAME_CLASS and NONE both fall back to the iterable-of-
// quads slow path via the Dataset interface's ForEach, so (deliberately,
// see DESIGN.md) they are not distinguished in code: Go's static typing
// makes no operational difference between "a facade of ours with a
// different interner" and "not one of our facades at all" once we're
// consuming it through the Dataset interface.
func (e *engine) sameInternerAs(other Dataset) (*engine, bool) {
	he, ok := other.(hasEngine)
	if !ok {
		return nil, false
	}
	oe := he.asEngine()
	if oe.interner != e.interner {
		return nil, false
	}
	return oe, true
}

// tryInternSeq re-interns every quad of other into e's interner without
// admitting new terms (try_intern_quad, spec §4.4). ok is false the
// moment any quad carries a term e's interner doesn't know -- used by
// Contains/Equals, where that alone means other isn't contained.
func (e *engine) tryInternSeq(other Dataset) (seq []ids.Quad, ok bool) {
	ok = true
	other.ForEach(func(q term.Quad) bool {
		iq, known := e.interner.TryInternQuad(q)
		if !known {
			ok = false
			return false
		}
		seq = append(seq, iq)
		return true
	})
	if !ok {
		return nil, false
	}
	return seq, true
}

// tryInternSeqSkipping is tryInternSeq's intersection/difference
// sibling: unknown terms are skipped rather than failing the whole call
// (spec §4.4, intersection/difference sub-strategy).
func (e *engine) tryInternSeqSkipping(other Dataset) []ids.Quad {
	var seq []ids.Quad
	other.ForEach(func(q term.Quad) bool {
		if iq, known := e.interner.TryInternQuad(q); known {
			seq = append(seq, iq)
		}
		return true
	})
	return seq
}

func (e *engine) union(other Dataset) *engine {
	if oe, ok := e.sameInternerAs(other); ok {
		return e.deriveFromForest(e.ensureForest().UnionForest(oe.ensureForest()))
	}
	// Admits new terms into the left-hand interner (spec §4.4: union uses
	// intern_or_add_quad). See DESIGN.md for why this, unlike Map, always
	// targets e.interner directly rather than a private clone first.
	var seq []ids.Quad
	other.ForEach(func(q term.Quad) bool {
		seq = append(seq, e.interner.InternOrAddQuad(q))
		return true
	})
	return e.deriveFromForest(e.ensureForest().UnionSeq(seq))
}

func (e *engine) intersection(other Dataset) *engine {
	if oe, ok := e.sameInternerAs(other); ok {
		return e.deriveFromForest(e.ensureForest().IntersectionForest(oe.ensureForest()))
	}
	seq := e.tryInternSeqSkipping(other)
	return e.deriveFromForest(e.ensureForest().IntersectionSeq(seq))
}

func (e *engine) difference(other Dataset) *engine {
	if oe, ok := e.sameInternerAs(other); ok {
		return e.deriveFromForest(e.ensureForest().DifferenceForest(oe.ensureForest()))
	}
	seq := e.tryInternSeqSkipping(other)
	return e.deriveFromForest(e.ensureForest().DifferenceSeq(seq))
}

func (e *engine) contains(other Dataset) bool {
	if oe, ok := e.sameInternerAs(other); ok {
		return e.ensureForest().ContainsAllForest(oe.ensureForest())
	}
	seq, ok := e.tryInternSeq(other)
	if !ok {
		return false
	}
	return e.ensureForest().ContainsAllSeq(seq)
}

func (e *engine) equals(other Dataset) bool {
	if oe, ok := e.sameInternerAs(other); ok {
		return e.ensureForest().EqualsForest(oe.ensureForest())
	}
	seq, ok := e.tryInternSeq(other)
	if !ok {
		return false
	}
	return e.ensureForest().EqualsSeq(seq)
}

func (e *engine) addAll(other Dataset) {
	f := e.ensureModifiableForest()
	other.ForEach(func(q term.Quad) bool {
		f.Insert(e.interner.InternOrAddQuad(q))
		return true
	})
}

func (e *engine) free() {
	e.forest = nil
	e.seq = nil
}

// Iterator is a pull-style, finite iterator over a facade's elements at
// the moment Iterator() was called, in the underlying index's
// permutation order -- grounded on the teacher's QuadIterator contract
// (pkg/store/query.go: Next() bool / Quad() (*rdf.Quad, error) / Close() error).
type Iterator struct {
	quads    []ids.Quad
	idx      int
	interner *interner.Interner
}

func newIterator(seq []ids.Quad, in *interner.Interner) *Iterator {
	return &Iterator{quads: seq, idx: -1, interner: in}
}

// Next advances to the next element, reporting whether one exists.
func (it *Iterator) Next() bool {
	it.idx++
	return it.idx < len(it.quads)
}

// Quad returns the current element.
func (it *Iterator) Quad() (term.Quad, error) {
	q, ok := it.interner.DecodeQuad(it.quads[it.idx])
	if !ok {
		return term.Quad{}, fmt.Errorf("%w: %+v", ErrStaleIdentifier, it.quads[it.idx])
	}
	return q, nil
}

// Close releases no resources (the iterator already holds a plain slice)
// but is kept for symmetry with streaming consumers.
func (it *Iterator) Close() error { return nil }
