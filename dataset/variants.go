package dataset

import (
	"github.com/rdfkit/quadforest/internal/interner"
	"github.com/rdfkit/quadforest/pkg/term"
)

// The four facade variants (spec §4.4/§9) are distinct named types so
// callers and documentation can refer to a concrete kind, but each is a
// one-line wrapper around *engine: all behavior lives in engine, and the
// only per-variant state is the variant value baked in at construction.

// SharedIdList shares its interner with sibling facades and keeps
// Match/Filter results as a bare cached identifier sequence, without
// building a forest. The default, general-purpose variant.
type SharedIdList struct{ *engine }

// SharedForestOnly shares its interner but always forces a forest,
// trading the cheap sequence-only representation for uniform forest-path
// performance on every subsequent operation.
type SharedForestOnly struct{ *engine }

// IsolatedIdList clones only the identifiers reachable from a derived
// result into its own interner, and keeps Match/Filter results as a bare
// cached identifier sequence, without building a forest.
type IsolatedIdList struct{ *engine }

// IsolatedForestOnly clones only the identifiers reachable from a derived
// result and always forces a forest.
type IsolatedForestOnly struct{ *engine }

// NewSharedIdList builds an empty dataset over a fresh interner built
// from factory, using the Shared/IdList variant.
func NewSharedIdList(factory term.Factory) *SharedIdList {
	return &SharedIdList{newEngine(interner.New(factory), variant{cacheSequence: true})}
}

// NewSharedForestOnly builds an empty dataset using the Shared/ForestOnly variant.
func NewSharedForestOnly(factory term.Factory) *SharedForestOnly {
	return &SharedForestOnly{newEngine(interner.New(factory), variant{})}
}

// NewIsolatedIdList builds an empty dataset using the Isolated/IdList variant.
func NewIsolatedIdList(factory term.Factory) *IsolatedIdList {
	return &IsolatedIdList{newEngine(interner.New(factory), variant{cacheSequence: true, isolateDerived: true})}
}

// NewIsolatedForestOnly builds an empty dataset using the Isolated/ForestOnly variant.
func NewIsolatedForestOnly(factory term.Factory) *IsolatedForestOnly {
	return &IsolatedForestOnly{newEngine(interner.New(factory), variant{isolateDerived: true})}
}

// New builds the general-purpose default variant (Shared/IdList).
func New(factory term.Factory) Dataset { return NewSharedIdList(factory) }

// wrap rebuilds a facade of v's concrete type around a derived engine,
// implemented per-type rather than via reflection to keep derived
// facades cheap and the variant set closed and exhaustive.
func (v *SharedIdList) wrap(e *engine) Dataset      { return &SharedIdList{e} }
func (v *SharedForestOnly) wrap(e *engine) Dataset   { return &SharedForestOnly{e} }
func (v *IsolatedIdList) wrap(e *engine) Dataset     { return &IsolatedIdList{e} }
func (v *IsolatedForestOnly) wrap(e *engine) Dataset { return &IsolatedForestOnly{e} }

type wrapper interface {
	wrap(*engine) Dataset
}

// Forest-only variants force a forest immediately on every result that
// would otherwise be a bare cached sequence, matching spec §4.4's "a
// Forest-only dataset never holds the cached-sequence-without-forest
// state." IdList variants keep Match/Filter's cheap sequence-only result
// as-is.
func settle(w wrapper, e *engine, v variant) Dataset {
	if !v.cacheSequence && e.forest == nil {
		e.ensureForest()
	}
	return w.wrap(e)
}

// ---- Add/Delete/Has/Match/DeleteMatches/Size/Iterator/ForEach ----

func (v *SharedIdList) Add(q term.Quad) Dataset      { v.add(q); return v }
func (v *SharedForestOnly) Add(q term.Quad) Dataset  { v.add(q); return v }
func (v *IsolatedIdList) Add(q term.Quad) Dataset    { v.add(q); return v }
func (v *IsolatedForestOnly) Add(q term.Quad) Dataset { v.add(q); return v }

func (v *SharedIdList) Delete(q term.Quad) Dataset      { v.delete(q); return v }
func (v *SharedForestOnly) Delete(q term.Quad) Dataset   { v.delete(q); return v }
func (v *IsolatedIdList) Delete(q term.Quad) Dataset     { v.delete(q); return v }
func (v *IsolatedForestOnly) Delete(q term.Quad) Dataset { v.delete(q); return v }

func (v *SharedIdList) Has(q term.Quad) bool      { return v.has(q) }
func (v *SharedForestOnly) Has(q term.Quad) bool   { return v.has(q) }
func (v *IsolatedIdList) Has(q term.Quad) bool     { return v.has(q) }
func (v *IsolatedForestOnly) Has(q term.Quad) bool { return v.has(q) }

func (v *SharedIdList) Match(s, p, o, g term.Term) Dataset {
	return settle(v, v.deriveFromSeq(v.matchPattern(s, p, o, g)), v.variant)
}
func (v *SharedForestOnly) Match(s, p, o, g term.Term) Dataset {
	return settle(v, v.deriveFromSeq(v.matchPattern(s, p, o, g)), v.variant)
}
func (v *IsolatedIdList) Match(s, p, o, g term.Term) Dataset {
	return settle(v, v.deriveFromSeq(v.matchPattern(s, p, o, g)), v.variant)
}
func (v *IsolatedForestOnly) Match(s, p, o, g term.Term) Dataset {
	return settle(v, v.deriveFromSeq(v.matchPattern(s, p, o, g)), v.variant)
}

func (v *SharedIdList) DeleteMatches(s, p, o, g term.Term) Dataset {
	v.deleteMatches(s, p, o, g)
	return v
}
func (v *SharedForestOnly) DeleteMatches(s, p, o, g term.Term) Dataset {
	v.deleteMatches(s, p, o, g)
	return v
}
func (v *IsolatedIdList) DeleteMatches(s, p, o, g term.Term) Dataset {
	v.deleteMatches(s, p, o, g)
	return v
}
func (v *IsolatedForestOnly) DeleteMatches(s, p, o, g term.Term) Dataset {
	v.deleteMatches(s, p, o, g)
	return v
}

func (v *SharedIdList) Size() int      { return v.size() }
func (v *SharedForestOnly) Size() int   { return v.size() }
func (v *IsolatedIdList) Size() int     { return v.size() }
func (v *IsolatedForestOnly) Size() int { return v.size() }

func (v *SharedIdList) Iterator() *Iterator      { return newIterator(v.idSeq(), v.interner) }
func (v *SharedForestOnly) Iterator() *Iterator   { return newIterator(v.idSeq(), v.interner) }
func (v *IsolatedIdList) Iterator() *Iterator     { return newIterator(v.idSeq(), v.interner) }
func (v *IsolatedForestOnly) Iterator() *Iterator { return newIterator(v.idSeq(), v.interner) }

func (v *SharedIdList) ForEach(fn func(term.Quad) bool)      { v.forEach(fn) }
func (v *SharedForestOnly) ForEach(fn func(term.Quad) bool)   { v.forEach(fn) }
func (v *IsolatedIdList) ForEach(fn func(term.Quad) bool)     { v.forEach(fn) }
func (v *IsolatedForestOnly) ForEach(fn func(term.Quad) bool) { v.forEach(fn) }

func (v *SharedIdList) CountQuads(s, p, o, g term.Term) int      { return v.countQuads(s, p, o, g) }
func (v *SharedForestOnly) CountQuads(s, p, o, g term.Term) int   { return v.countQuads(s, p, o, g) }
func (v *IsolatedIdList) CountQuads(s, p, o, g term.Term) int     { return v.countQuads(s, p, o, g) }
func (v *IsolatedForestOnly) CountQuads(s, p, o, g term.Term) int { return v.countQuads(s, p, o, g) }

func (v *SharedIdList) EnsureIndexFor(s, p, o, g term.Term)      { v.ensureIndexFor(s, p, o, g) }
func (v *SharedForestOnly) EnsureIndexFor(s, p, o, g term.Term)   { v.ensureIndexFor(s, p, o, g) }
func (v *IsolatedIdList) EnsureIndexFor(s, p, o, g term.Term)     { v.ensureIndexFor(s, p, o, g) }
func (v *IsolatedForestOnly) EnsureIndexFor(s, p, o, g term.Term) { v.ensureIndexFor(s, p, o, g) }

// ---- set algebra ----

func (v *SharedIdList) Union(other Dataset) Dataset      { return settle(v, v.union(other), v.variant) }
func (v *SharedForestOnly) Union(other Dataset) Dataset   { return settle(v, v.union(other), v.variant) }
func (v *IsolatedIdList) Union(other Dataset) Dataset     { return settle(v, v.union(other), v.variant) }
func (v *IsolatedForestOnly) Union(other Dataset) Dataset { return settle(v, v.union(other), v.variant) }

func (v *SharedIdList) Intersection(other Dataset) Dataset {
	return settle(v, v.intersection(other), v.variant)
}
func (v *SharedForestOnly) Intersection(other Dataset) Dataset {
	return settle(v, v.intersection(other), v.variant)
}
func (v *IsolatedIdList) Intersection(other Dataset) Dataset {
	return settle(v, v.intersection(other), v.variant)
}
func (v *IsolatedForestOnly) Intersection(other Dataset) Dataset {
	return settle(v, v.intersection(other), v.variant)
}

func (v *SharedIdList) Difference(other Dataset) Dataset {
	return settle(v, v.difference(other), v.variant)
}
func (v *SharedForestOnly) Difference(other Dataset) Dataset {
	return settle(v, v.difference(other), v.variant)
}
func (v *IsolatedIdList) Difference(other Dataset) Dataset {
	return settle(v, v.difference(other), v.variant)
}
func (v *IsolatedForestOnly) Difference(other Dataset) Dataset {
	return settle(v, v.difference(other), v.variant)
}

func (v *SharedIdList) Contains(other Dataset) bool      { return v.contains(other) }
func (v *SharedForestOnly) Contains(other Dataset) bool   { return v.contains(other) }
func (v *IsolatedIdList) Contains(other Dataset) bool     { return v.contains(other) }
func (v *IsolatedForestOnly) Contains(other Dataset) bool { return v.contains(other) }

func (v *SharedIdList) Equals(other Dataset) bool      { return v.equals(other) }
func (v *SharedForestOnly) Equals(other Dataset) bool   { return v.equals(other) }
func (v *IsolatedIdList) Equals(other Dataset) bool     { return v.equals(other) }
func (v *IsolatedForestOnly) Equals(other Dataset) bool { return v.equals(other) }

func (v *SharedIdList) AddAll(other Dataset) Dataset      { v.addAll(other); return v }
func (v *SharedForestOnly) AddAll(other Dataset) Dataset   { v.addAll(other); return v }
func (v *IsolatedIdList) AddAll(other Dataset) Dataset     { v.addAll(other); return v }
func (v *IsolatedForestOnly) AddAll(other Dataset) Dataset { v.addAll(other); return v }

// ---- Filter/Map/Every/Some ----

func (v *SharedIdList) Filter(pred func(term.Quad) bool) Dataset {
	return settle(v, v.filter(pred), v.variant)
}
func (v *SharedForestOnly) Filter(pred func(term.Quad) bool) Dataset {
	return settle(v, v.filter(pred), v.variant)
}
func (v *IsolatedIdList) Filter(pred func(term.Quad) bool) Dataset {
	return settle(v, v.filter(pred), v.variant)
}
func (v *IsolatedForestOnly) Filter(pred func(term.Quad) bool) Dataset {
	return settle(v, v.filter(pred), v.variant)
}

func (v *SharedIdList) Map(fn func(term.Quad) term.Quad) Dataset      { return v.wrap(v.mapOp(fn)) }
func (v *SharedForestOnly) Map(fn func(term.Quad) term.Quad) Dataset   { return v.wrap(v.mapOp(fn)) }
func (v *IsolatedIdList) Map(fn func(term.Quad) term.Quad) Dataset     { return v.wrap(v.mapOp(fn)) }
func (v *IsolatedForestOnly) Map(fn func(term.Quad) term.Quad) Dataset { return v.wrap(v.mapOp(fn)) }

func (v *SharedIdList) Every(pred func(term.Quad) bool) bool      { return v.every(pred) }
func (v *SharedForestOnly) Every(pred func(term.Quad) bool) bool   { return v.every(pred) }
func (v *IsolatedIdList) Every(pred func(term.Quad) bool) bool     { return v.every(pred) }
func (v *IsolatedForestOnly) Every(pred func(term.Quad) bool) bool { return v.every(pred) }

func (v *SharedIdList) Some(pred func(term.Quad) bool) bool      { return v.some(pred) }
func (v *SharedForestOnly) Some(pred func(term.Quad) bool) bool   { return v.some(pred) }
func (v *IsolatedIdList) Some(pred func(term.Quad) bool) bool     { return v.some(pred) }
func (v *IsolatedForestOnly) Some(pred func(term.Quad) bool) bool { return v.some(pred) }

func (v *SharedIdList) AsIdentifierSequence() []uint32      { return v.asIdentifierSequence() }
func (v *SharedForestOnly) AsIdentifierSequence() []uint32   { return v.asIdentifierSequence() }
func (v *IsolatedIdList) AsIdentifierSequence() []uint32     { return v.asIdentifierSequence() }
func (v *IsolatedForestOnly) AsIdentifierSequence() []uint32 { return v.asIdentifierSequence() }

func (v *SharedIdList) ToArray() []term.Quad      { return v.toArray() }
func (v *SharedForestOnly) ToArray() []term.Quad   { return v.toArray() }
func (v *IsolatedIdList) ToArray() []term.Quad     { return v.toArray() }
func (v *IsolatedForestOnly) ToArray() []term.Quad { return v.toArray() }

func (v *SharedIdList) Free()      { v.free() }
func (v *SharedForestOnly) Free()   { v.free() }
func (v *IsolatedIdList) Free()     { v.free() }
func (v *IsolatedForestOnly) Free() { v.free() }

// Reduce folds over a dataset's elements in iteration order. A free
// function, not a method, since Go methods cannot carry their own type
// parameters (spec's "reduce" operation, expressed the idiomatic way).
func Reduce[T any](d Dataset, init T, fn func(T, term.Quad) T) T {
	acc := init
	d.ForEach(func(q term.Quad) bool {
		acc = fn(acc, q)
		return true
	})
	return acc
}
