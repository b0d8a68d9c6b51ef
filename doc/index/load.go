package index

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/docparse/doc/parser"
)

// File is the YAML layout of an index file:
//
//	definitions:
//	  - name: push
//	    kind: member
//	    scope: List
//	    file: class_list.html
//	    anchor: a1f3
//	    params:
//	      - {type: int, name: value}
//	    brief: Appends a value.
//	sections:
//	  - {label: intro, title: Introduction, file: index.html, kind: section}
//	xrefs:
//	  todo:
//	    - {id: 1, file: todo.html, anchor: _todo000001, title: Todo List}
//	formulas:
//	  - {id: 1, text: "$x^2$"}
type File struct {
	Definitions []DefinitionEntry       `yaml:"definitions"`
	Sections    []SectionEntry          `yaml:"sections"`
	XRefs       map[string][]XRefRecord `yaml:"xrefs"`
	Formulas    []FormulaEntry          `yaml:"formulas"`
}

type DefinitionEntry struct {
	Name         string         `yaml:"name"`
	Kind         string         `yaml:"kind"`
	Scope        string         `yaml:"scope"`
	File         string         `yaml:"file"`
	Anchor       string         `yaml:"anchor"`
	Ref          string         `yaml:"ref"`
	Linkable     *bool          `yaml:"linkable"`
	Title        string         `yaml:"title"`
	SourceFile   string         `yaml:"source"`
	Params       []parser.Param `yaml:"params"`
	ReturnType   string         `yaml:"returns"`
	Define       bool           `yaml:"define"`
	Reimplements string         `yaml:"reimplements"`
	Brief        string         `yaml:"brief"`
	Details      string         `yaml:"details"`
}

type SectionEntry struct {
	Label string `yaml:"label"`
	Title string `yaml:"title"`
	File  string `yaml:"file"`
	Kind  string `yaml:"kind"`
}

type XRefRecord struct {
	ID     int    `yaml:"id"`
	File   string `yaml:"file"`
	Anchor string `yaml:"anchor"`
	Title  string `yaml:"title"`
	Text   string `yaml:"text"`
}

type FormulaEntry struct {
	ID   int    `yaml:"id"`
	Text string `yaml:"text"`
}

var sectionKinds = map[string]parser.SectionKind{
	"page":          parser.SectionPage,
	"section":       parser.SectionSection,
	"subsection":    parser.SectionSubsection,
	"subsubsection": parser.SectionSubsubsection,
	"paragraph":     parser.SectionParagraph,
	"anchor":        parser.SectionAnchor,
}

// Load reads an index file.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load index %s: %w", path, err)
	}
	idx, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load index %s: %w", path, err)
	}
	return idx, nil
}

// Parse builds an index from YAML.
func Parse(data []byte) (*Index, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}

	idx := New()
	for i, e := range f.Definitions {
		def, err := e.definition()
		if err != nil {
			return nil, fmt.Errorf("definition %d: %w", i, err)
		}
		idx.Add(def, e.Brief, e.Details)
	}
	for i, e := range f.Sections {
		if e.Label == "" {
			return nil, fmt.Errorf("section %d: missing label", i)
		}
		kind := parser.SectionSection
		if e.Kind != "" {
			k, ok := sectionKinds[strings.ToLower(e.Kind)]
			if !ok {
				return nil, fmt.Errorf("section %s: unknown kind %q", e.Label, e.Kind)
			}
			kind = k
		}
		idx.AddSection(parser.SectionInfo{Label: e.Label, Title: e.Title, File: e.File, Kind: kind})
	}
	for key, items := range f.XRefs {
		for _, it := range items {
			idx.AddXRefItem(key, it.ID, parser.XRefEntry{File: it.File, Anchor: it.Anchor, Title: it.Title, Text: it.Text})
		}
	}
	for _, e := range f.Formulas {
		idx.AddFormula(e.ID, e.Text)
	}
	return idx, nil
}

func (e DefinitionEntry) definition() (*parser.Definition, error) {
	if e.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	kind := parser.DefMember
	if e.Kind != "" {
		k, ok := parser.ParseDefKind(e.Kind)
		if !ok {
			return nil, fmt.Errorf("%s: unknown kind %q", e.Name, e.Kind)
		}
		kind = k
	}
	linkable := e.File != ""
	if e.Linkable != nil {
		linkable = *e.Linkable
	}
	return &parser.Definition{
		Name:         e.Name,
		Kind:         kind,
		Scope:        e.Scope,
		File:         e.File,
		Anchor:       e.Anchor,
		Ref:          e.Ref,
		Linkable:     linkable,
		Title:        e.Title,
		SourceFile:   e.SourceFile,
		Params:       e.Params,
		ReturnType:   e.ReturnType,
		IsDefine:     e.Define,
		Reimplements: e.Reimplements,
	}, nil
}
