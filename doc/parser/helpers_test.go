package parser

import (
	"strings"
	"testing"
)

// testIndex is an in-memory SymbolIndex that records every probe.
type testIndex struct {
	defs     map[string]*Definition
	docs     map[string][2]string
	sections map[string]SectionInfo
	xrefs    map[string]XRefEntry
	probes   []string
}

func newTestIndex(defs ...*Definition) *testIndex {
	idx := &testIndex{
		defs:     map[string]*Definition{},
		docs:     map[string][2]string{},
		sections: map[string]SectionInfo{},
		xrefs:    map[string]XRefEntry{},
	}
	for _, d := range defs {
		idx.defs[d.QualifiedName()] = d
	}
	return idx
}

func (idx *testIndex) Lookup(name, args string) Resolution {
	idx.probes = append(idx.probes, name)
	d, ok := idx.defs[name]
	if !ok {
		return Resolution{}
	}
	if d.Kind == DefMember {
		return Resolution{Member: d}
	}
	return Resolution{Compound: d}
}

func (idx *testIndex) Section(label string) (SectionInfo, bool) {
	s, ok := idx.sections[label]
	return s, ok
}

func (idx *testIndex) DocText(name string) (string, string, bool) {
	d, ok := idx.docs[name]
	return d[0], d[1], ok
}

func (idx *testIndex) XRefItem(key string, id int) (XRefEntry, bool) {
	e, ok := idx.xrefs[key]
	return e, ok && id > 0
}

// mapFiles serves example and image files from memory.
type mapFiles map[string]string

func (m mapFiles) Locate(name string, kind FileKind) (string, error) {
	if _, ok := m[name]; !ok {
		return "", ErrFileNotFound
	}
	return "/files/" + name, nil
}

func (m mapFiles) Read(name string, kind FileKind) (string, error) {
	text, ok := m[name]
	if !ok {
		return "", ErrFileNotFound
	}
	return text, nil
}

func parse(t *testing.T, input string, opts ...Option) (*Document, *Collector) {
	t.Helper()
	sink := &Collector{}
	opts = append([]Option{WithSink(sink), WithFile("test.h")}, opts...)
	return Parse(input, opts...), sink
}

// findAll returns the nodes of the given kind below n in reading order.
func findAll(n *Node, kind Kind) []*Node {
	var found []*Node
	Inspect(n, func(c *Node) bool {
		if c.Kind == kind {
			found = append(found, c)
		}
		return true
	})
	return found
}

func childKinds(n *Node) string {
	kinds := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		kinds = append(kinds, c.Kind.String())
	}
	return strings.Join(kinds, " ")
}

func expectWarnings(t *testing.T, sink *Collector, n int) {
	t.Helper()
	if got := sink.Count(); got != n {
		t.Fatalf("expected %d warnings, got %d: %v", n, got, sink.Diagnostics())
	}
}
