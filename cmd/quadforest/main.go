// Command quadforest is a small demo/inspection CLI over the dataset and
// streamstore packages, grounded on the teacher's own cmd/trigo/main.go:
// a hand-rolled os.Args switch (no flag package, no cobra -- the teacher
// doesn't reach for a CLI framework either), log.Fatalf on fatal setup
// errors, fmt.Printf for everything else.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rdfkit/quadforest/pkg/term"
	"github.com/rdfkit/quadforest/pkg/term/simple"
	"github.com/rdfkit/quadforest/streamstore"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: quadforest <command> [args]")
		fmt.Println("Commands:")
		fmt.Println("  demo              - run an in-memory demo with sample data")
		fmt.Println("  load <file>       - load \"subject predicate object [graph]\" lines and print the count")
		fmt.Println("  match <file> s p o [g] - load a file, then print every quad matching the given pattern (use _ for wildcard)")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "demo":
		runDemo()
	case "load":
		if len(os.Args) < 3 {
			fmt.Println("Usage: quadforest load <file>")
			os.Exit(1)
		}
		runLoad(os.Args[2])
	case "match":
		if len(os.Args) < 6 {
			fmt.Println("Usage: quadforest match <file> s p o [g]")
			os.Exit(1)
		}
		runMatch(os.Args[2], os.Args[3:])
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

var factory = simple.Factory{}

func runDemo() {
	fmt.Println("=== quadforest demo ===")
	fmt.Println()

	s := streamstore.NewStore(factory)

	alice := factory.NamedNode("http://example.org/alice")
	bob := factory.NamedNode("http://example.org/bob")
	carol := factory.NamedNode("http://example.org/carol")
	knows := factory.NamedNode("http://xmlns.com/foaf/0.1/knows")
	name := factory.NamedNode("http://xmlns.com/foaf/0.1/name")

	defaultGraph := factory.DefaultGraph()

	fmt.Println("Inserting sample data...")
	s.AddQuad(alice, name, simple.Literal("Alice"), defaultGraph)
	s.AddQuad(alice, knows, bob, defaultGraph)
	s.AddQuad(bob, name, simple.Literal("Bob"), defaultGraph)
	s.AddQuad(bob, knows, carol, defaultGraph)
	s.AddQuad(carol, name, simple.Literal("Carol"), defaultGraph)

	graph1 := factory.NamedNode("http://example.org/graph1")
	s.Add(factory.Quad(alice, name, simple.Literal("Alice in Graph1"), graph1))
	fmt.Printf("Total quads stored: %d\n", s.Size())

	fmt.Println()
	fmt.Println("Everyone alice knows, transitively one hop:")
	r := s.Match(alice, knows, nil, nil)
	for {
		q, err := r.ReadQuad()
		if err != nil {
			break
		}
		fmt.Printf("  %s\n", formatTerm(q.Object))
	}

	fmt.Println("\n=== demo complete ===")
}

func runLoad(path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	s := streamstore.NewStore(factory)
	n, err := loadLines(s, f)
	if err != nil {
		log.Fatalf("failed to load %s: %v", path, err)
	}
	fmt.Printf("Loaded %d quads (%d total in store)\n", n, s.Size())
}

func runMatch(path string, patternArgs []string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	s := streamstore.NewStore(factory)
	if _, err := loadLines(s, f); err != nil {
		log.Fatalf("failed to load %s: %v", path, err)
	}

	pat := make([]term.Term, 4)
	for i, a := range patternArgs {
		if i >= 4 {
			break
		}
		if a != "_" {
			pat[i] = factory.NamedNode(a)
		}
	}

	r := s.Match(pat[0], pat[1], pat[2], pat[3])
	n := 0
	for {
		q, err := r.ReadQuad()
		if err != nil {
			break
		}
		fmt.Printf("%s %s %s %s .\n", formatTerm(q.Subject), formatTerm(q.Predicate), formatTerm(q.Object), formatTerm(q.Graph))
		n++
	}
	fmt.Printf("\n%d matches\n", n)
}

// loadLines reads whitespace-separated "subject predicate object [graph]"
// lines into s. This is a deliberately minimal demo loader, not an
// N-Triples/N-Quads parser -- full RDF surface-syntax parsing is out of
// scope here (spec's Non-goals exclude serialization formats).
func loadLines(s *streamstore.Store, f *os.File) (int, error) {
	scanner := bufio.NewScanner(f)
	n := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		g := factory.DefaultGraph()
		if len(fields) >= 4 {
			g = factory.NamedNode(fields[3])
		}
		s.Add(factory.Quad(factory.NamedNode(fields[0]), factory.NamedNode(fields[1]), factory.NamedNode(fields[2]), g))
		n++
	}
	return n, scanner.Err()
}

func formatTerm(t term.Term) string {
	switch v := t.(type) {
	case term.NamedNode:
		iri := v.IRI
		for i := len(iri) - 1; i >= 0; i-- {
			if iri[i] == '/' || iri[i] == '#' {
				return iri[i+1:]
			}
		}
		return iri
	case term.Literal:
		return v.Value
	default:
		return t.String()
	}
}
