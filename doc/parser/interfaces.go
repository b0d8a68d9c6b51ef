package parser

import (
	"errors"
	"fmt"
	"strings"
)

// DefKind is the kind of a documented entity.
type DefKind int

const (
	DefMember DefKind = iota
	DefClass
	DefNamespace
	DefFile
	DefGroup
	DefPage
)

var defKindNames = map[DefKind]string{
	DefMember:    "member",
	DefClass:     "class",
	DefNamespace: "namespace",
	DefFile:      "file",
	DefGroup:     "group",
	DefPage:      "page",
}

func (k DefKind) String() string {
	if name, ok := defKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseDefKind maps a kind name such as "class" back to its DefKind.
func ParseDefKind(s string) (DefKind, bool) {
	for k, name := range defKindNames {
		if name == strings.ToLower(s) {
			return k, true
		}
	}
	return DefMember, false
}

// Param is one formal parameter of a member.
type Param struct {
	Type string `yaml:"type" json:"type,omitempty"`
	Name string `yaml:"name" json:"name"`
	Docs string `yaml:"docs" json:"docs,omitempty"`
}

// Definition describes an entity the parser can link to.
type Definition struct {
	Name     string
	Kind     DefKind
	Scope    string // qualified name of the enclosing scope
	File     string // output file the entity is documented in
	Anchor   string
	Ref      string // external tag file reference, if any
	Linkable bool

	Title      string // group or page title
	SourceFile string // source listing of an undocumented file

	Params       []Param
	ReturnType   string
	IsDefine     bool
	Reimplements string // qualified name of the member this one overrides
}

// QualifiedName returns the scope-qualified name of d.
func (d *Definition) QualifiedName() string {
	if d.Scope == "" {
		return d.Name
	}
	return d.Scope + "::" + d.Name
}

// ArgString renders the parameter list as "(int a, char *b)".
func (d *Definition) ArgString() string {
	parts := make([]string, 0, len(d.Params))
	for _, p := range d.Params {
		parts = append(parts, strings.TrimSpace(p.Type+" "+p.Name))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Resolution is the result of an exact index probe. Member and Compound
// may both be set; the parser prefers the member.
type Resolution struct {
	Member     *Definition
	Compound   *Definition
	Ambiguous  bool
	Candidates []*Definition
}

// Found reports whether the probe hit anything.
func (r Resolution) Found() bool {
	return r.Member != nil || r.Compound != nil
}

// SectionKind distinguishes pages, headings and anchors in the section
// table.
type SectionKind int

const (
	SectionPage SectionKind = iota
	SectionSection
	SectionSubsection
	SectionSubsubsection
	SectionParagraph
	SectionAnchor
)

// SectionInfo is one labelled target of the section table.
type SectionInfo struct {
	Label string
	Title string
	File  string
	Kind  SectionKind
}

// SymbolIndex is the cross-reference index the parser resolves names
// against. Lookup is an exact probe: the parser itself walks scopes.
type SymbolIndex interface {
	Lookup(qualifiedName, args string) Resolution
	Section(label string) (SectionInfo, bool)
	// DocText returns the stored brief and detailed documentation of the
	// entity with the given qualified name.
	DocText(qualifiedName string) (brief, detailed string, ok bool)
}

// XRefEntry is one item of a cross-reference list such as the todo list.
type XRefEntry struct {
	File   string
	Anchor string
	Title  string
	Text   string
}

// XRefLister is implemented by indexes that carry cross-reference lists.
type XRefLister interface {
	XRefItem(key string, id int) (XRefEntry, bool)
}

// FormulaTable is implemented by indexes that carry rendered formulas.
type FormulaTable interface {
	Formula(id int) (string, bool)
}

// FileKind selects the search path a FileProvider consults.
type FileKind int

const (
	FileExample FileKind = iota
	FileImage
	FileDot
	FileInclude
)

var fileKindNames = [...]string{"example", "image", "dot", "include"}

func (k FileKind) String() string { return fileKindNames[k] }

// ErrFileNotFound is returned by a FileProvider for unknown names.
var ErrFileNotFound = errors.New("file not found")

// AmbiguousFileError is returned by a FileProvider when a name matches
// more than one file.
type AmbiguousFileError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguousFileError) Error() string {
	return fmt.Sprintf("file name %s is ambiguous: %s", e.Name, strings.Join(e.Candidates, ", "))
}

// FileProvider loads example, image and dot files by logical name.
type FileProvider interface {
	Locate(name string, kind FileKind) (string, error)
	Read(name string, kind FileKind) (string, error)
}

// WordIndexer receives the words of a block for a search index.
type WordIndexer interface {
	AddWord(word string, important bool)
}
