// Package index provides an in-memory SymbolIndex for the parser.
package index

import (
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/docparse/doc/parser"
)

// Index is a SymbolIndex, XRefLister and FormulaTable backed by maps. It
// is safe for concurrent use.
type Index struct {
	mu       sync.RWMutex
	defs     map[string][]*parser.Definition
	docs     map[string]docText
	sections map[string]parser.SectionInfo
	xrefs    map[string]map[int]parser.XRefEntry
	formulas map[int]string
}

type docText struct {
	brief, details string
}

func New() *Index {
	return &Index{
		defs:     make(map[string][]*parser.Definition),
		docs:     make(map[string]docText),
		sections: make(map[string]parser.SectionInfo),
		xrefs:    make(map[string]map[int]parser.XRefEntry),
		formulas: make(map[int]string),
	}
}

// Add registers a definition under its qualified name together with its
// documentation. Overloads share a name and are told apart by their
// argument lists.
func (idx *Index) Add(def *parser.Definition, brief, details string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	name := def.QualifiedName()
	idx.defs[name] = append(idx.defs[name], def)
	if brief != "" || details != "" {
		if _, ok := idx.docs[name]; !ok {
			idx.docs[name] = docText{brief: brief, details: details}
		}
	}
}

func (idx *Index) AddSection(info parser.SectionInfo) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.sections[info.Label] = info
}

func (idx *Index) AddXRefItem(key string, id int, e parser.XRefEntry) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	items, ok := idx.xrefs[key]
	if !ok {
		items = make(map[int]parser.XRefEntry)
		idx.xrefs[key] = items
	}
	items[id] = e
}

func (idx *Index) AddFormula(id int, text string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.formulas[id] = text
}

// Len returns the number of registered names.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.defs)
}

// Names returns the registered qualified names in sorted order.
func (idx *Index) Names() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	names := make([]string, 0, len(idx.defs))
	for name := range idx.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds the entities registered under qualifiedName. When args is
// given, members whose argument list matches are preferred; several
// remaining members make the result ambiguous.
func (idx *Index) Lookup(qualifiedName, args string) parser.Resolution {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var res parser.Resolution
	var members []*parser.Definition
	for _, def := range idx.defs[qualifiedName] {
		if def.Kind == parser.DefMember {
			members = append(members, def)
		} else if res.Compound == nil {
			res.Compound = def
		}
	}
	if len(members) == 0 {
		return res
	}

	if args != "" {
		var matching []*parser.Definition
		want := normalizeArgs(args)
		for _, m := range members {
			if normalizeArgs(m.ArgString()) == want || normalizeArgs(argTypes(m)) == want {
				matching = append(matching, m)
			}
		}
		if len(matching) > 0 {
			members = matching
		}
	}
	res.Member = members[0]
	if len(members) > 1 {
		res.Ambiguous = true
		res.Candidates = members
	}
	return res
}

func (idx *Index) Section(label string) (parser.SectionInfo, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	info, ok := idx.sections[label]
	return info, ok
}

func (idx *Index) DocText(qualifiedName string) (string, string, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	d, ok := idx.docs[qualifiedName]
	return d.brief, d.details, ok
}

func (idx *Index) XRefItem(key string, id int) (parser.XRefEntry, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	e, ok := idx.xrefs[key][id]
	return e, ok
}

func (idx *Index) Formula(id int) (string, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	text, ok := idx.formulas[id]
	return text, ok
}

// argTypes renders the parameter types only, as "(int, char *)".
func argTypes(def *parser.Definition) string {
	types := make([]string, 0, len(def.Params))
	for _, p := range def.Params {
		types = append(types, p.Type)
	}
	return "(" + strings.Join(types, ", ") + ")"
}

// normalizeArgs drops all blanks so "(int a, char *b)" and
// "(int a,char* b)" compare equal.
func normalizeArgs(args string) string {
	return strings.Join(strings.Fields(args), "")
}
