// Package simple provides a default term.Factory: the same NamedNode,
// BlankNode, Literal and DefaultGraph shapes the teacher's pkg/rdf
// package builds, trimmed to what this store's TermFactory contract needs.
package simple

import "github.com/rdfkit/quadforest/pkg/term"

// Factory is a stateless term.Factory over the plain term.Term value types.
type Factory struct{}

var _ term.Factory = Factory{}

// xsdString is the datatype an absent Datatype implies per RDF 1.1, so a
// literal explicitly typed xsd:string keys the same as an untyped one.
const xsdString = "http://www.w3.org/2001/XMLSchema#string"

func (Factory) DefaultGraph() term.Term { return term.DefaultGraph{} }

func (Factory) NamedNode(iri string) term.Term { return term.NamedNode{IRI: iri} }

func (Factory) FromTerm(t term.Term) term.Term { return t }

func (Factory) Quad(s, p, o, g term.Term) term.Quad {
	return term.Quad{Subject: s, Predicate: p, Object: o, Graph: g}
}

// Key produces a canonical string key: key-equal iff semantically equal.
// The prefix byte disambiguates kinds so that e.g. a literal "1" and a
// named node "1" never collide, mirroring the teacher's per-kind encoding
// in internal/encoding.EncodeTerm (there a type byte precedes the hash;
// here it precedes the string form).
func (Factory) Key(t term.Term) string {
	if t == nil {
		return ""
	}
	switch v := t.(type) {
	case term.NamedNode:
		return "N" + v.IRI
	case term.BlankNode:
		return "B" + v.ID
	case term.Literal:
		switch {
		case v.Lang != "":
			return "L" + v.Value + "\x00@" + v.Lang
		case v.Datatype != "" && v.Datatype != xsdString:
			return "L" + v.Value + "\x00^" + v.Datatype
		default:
			return "L" + v.Value
		}
	case term.DefaultGraph:
		return "G"
	default:
		return t.String()
	}
}

// NamedNode, BlankNode and Literal are convenience constructors matching
// the teacher's pkg/rdf.NewNamedNode/NewBlankNode/NewLiteral* helpers.
func NamedNode(iri string) term.Term { return term.NamedNode{IRI: iri} }
func BlankNode(id string) term.Term  { return term.BlankNode{ID: id} }
func Literal(value string) term.Term { return term.Literal{Value: value} }
func LiteralLang(value, lang string) term.Term {
	return term.Literal{Value: value, Lang: lang}
}
func LiteralTyped(value, datatype string) term.Term {
	return term.Literal{Value: value, Datatype: datatype}
}
