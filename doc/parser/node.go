package parser

import "strings"

// Kind identifies the variant of a documentation node.
type Kind int

const (
	KindRoot Kind = iota
	KindText
	KindPara

	// Inline leaves
	KindWord
	KindLinkedWord
	KindWhiteSpace
	KindURL
	KindSymbol
	KindStyleChange
	KindLineBreak
	KindHorRuler
	KindAnchor
	KindFormula
	KindIndexEntry

	// Raw content
	KindVerbatim
	KindInclude
	KindIncOperator

	// Sections and titled blocks
	KindSimpleSect
	KindTitle
	KindParamSect
	KindParamList
	KindXRefItem
	KindSection
	KindInternal
	KindCopy

	// Lists
	KindSimpleList
	KindSimpleListItem
	KindAutoList
	KindAutoListItem
	KindHTMLList
	KindHTMLListItem
	KindHTMLDescList
	KindHTMLDescTitle
	KindHTMLDescData

	// Tables and headers
	KindHTMLTable
	KindHTMLCaption
	KindHTMLRow
	KindHTMLCell
	KindHTMLHeader

	// References
	KindHRef
	KindRef
	KindLink
	KindInternalRef
	KindSecRefList
	KindSecRefItem

	// Media
	KindImage
	KindDotFile
)

var kindNames = map[Kind]string{
	KindRoot:           "Root",
	KindText:           "Text",
	KindPara:           "Para",
	KindWord:           "Word",
	KindLinkedWord:     "LinkedWord",
	KindWhiteSpace:     "WhiteSpace",
	KindURL:            "URL",
	KindSymbol:         "Symbol",
	KindStyleChange:    "StyleChange",
	KindLineBreak:      "LineBreak",
	KindHorRuler:       "HorRuler",
	KindAnchor:         "Anchor",
	KindFormula:        "Formula",
	KindIndexEntry:     "IndexEntry",
	KindVerbatim:       "Verbatim",
	KindInclude:        "Include",
	KindIncOperator:    "IncOperator",
	KindSimpleSect:     "SimpleSect",
	KindTitle:          "Title",
	KindParamSect:      "ParamSect",
	KindParamList:      "ParamList",
	KindXRefItem:       "XRefItem",
	KindSection:        "Section",
	KindInternal:       "Internal",
	KindCopy:           "Copy",
	KindSimpleList:     "SimpleList",
	KindSimpleListItem: "SimpleListItem",
	KindAutoList:       "AutoList",
	KindAutoListItem:   "AutoListItem",
	KindHTMLList:       "HTMLList",
	KindHTMLListItem:   "HTMLListItem",
	KindHTMLDescList:   "HTMLDescList",
	KindHTMLDescTitle:  "HTMLDescTitle",
	KindHTMLDescData:   "HTMLDescData",
	KindHTMLTable:      "HTMLTable",
	KindHTMLCaption:    "HTMLCaption",
	KindHTMLRow:        "HTMLRow",
	KindHTMLCell:       "HTMLCell",
	KindHTMLHeader:     "HTMLHeader",
	KindHRef:           "HRef",
	KindRef:            "Ref",
	KindLink:           "Link",
	KindInternalRef:    "InternalRef",
	KindSecRefList:     "SecRefList",
	KindSecRefItem:     "SecRefItem",
	KindImage:          "Image",
	KindDotFile:        "DotFile",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is one node of the documentation tree. The variant is given by Kind;
// kinds that carry attributes store them in Data as the matching payload
// type (Word for KindWord, Para for KindPara, and so on).
type Node struct {
	Kind     Kind
	Data     Data
	Children []*Node
	Line     int

	parent *Node
}

// Data is the closed set of per-kind node payloads.
type Data interface {
	data()
}

func newNode(kind Kind, data Data) *Node {
	return &Node{Kind: kind, Data: data}
}

// Parent returns the node that owns n, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// AddChild appends child to n and makes n its parent.
func (n *Node) AddChild(child *Node) {
	if child != nil {
		child.parent = n
		n.Children = append(n.Children, child)
	}
}

// LastChild returns the last child of n, or nil when n has none.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

func (n *Node) ChildrenOfKind(kind Kind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// Ancestor returns the nearest node above n (n excluded) whose kind is one
// of kinds.
func (n *Node) Ancestor(kinds ...Kind) *Node {
	for p := n.parent; p != nil; p = p.parent {
		for _, k := range kinds {
			if p.Kind == k {
				return p
			}
		}
	}
	return nil
}

// IsEmpty reports whether n has no children.
func (n *Node) IsEmpty() bool {
	return len(n.Children) == 0
}

// Preformatted reports whether whitespace below n is significant.
func (n *Node) Preformatted() bool {
	for p := n; p != nil; p = p.parent {
		if para, ok := p.Data.(*Para); ok && para.InsidePre {
			return true
		}
	}
	return false
}

// Text returns the concatenated text of the words, whitespace and symbols
// below n.
func (n *Node) Text() string {
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	switch d := n.Data.(type) {
	case *Word:
		sb.WriteString(d.Text)
	case *LinkedWord:
		sb.WriteString(d.Text)
	case *WhiteSpace:
		sb.WriteString(d.Chars)
	case *URL:
		sb.WriteString(d.Text)
	case *Symbol:
		sb.WriteString(d.Literal())
	case *Verbatim:
		sb.WriteString(d.Text)
	}
	for _, c := range n.prefix() {
		c.writeText(sb)
	}
	for _, c := range n.Children {
		c.writeText(sb)
	}
}

// prefix returns nodes that belong to n but are not part of its body:
// a section title, a table caption or documented parameter names.
func (n *Node) prefix() []*Node {
	switch d := n.Data.(type) {
	case *SimpleSect:
		if d.Title != nil {
			return []*Node{d.Title}
		}
	case *HTMLTable:
		if d.Caption != nil {
			return []*Node{d.Caption}
		}
	case *ParamList:
		return d.Params
	}
	return nil
}

// Describe returns a one-line summary of the node's attributes, or "".
func (n *Node) Describe() string {
	if d, ok := n.Data.(interface{ describe() string }); ok {
		return d.describe()
	}
	return ""
}

// Prefix returns the title, caption or parameter names that Walk visits
// before the children of n.
func (n *Node) Prefix() []*Node {
	return n.prefix()
}

func (n *Node) String() string {
	var sb strings.Builder
	n.stringIndent(&sb, 0)
	return sb.String()
}

func (n *Node) stringIndent(sb *strings.Builder, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Kind.String())
	if s := n.Describe(); s != "" {
		sb.WriteString(" ")
		sb.WriteString(s)
	}
	sb.WriteString("\n")
	for _, c := range n.prefix() {
		c.stringIndent(sb, indent+1)
	}
	for _, c := range n.Children {
		c.stringIndent(sb, indent+1)
	}
}

// NumCols returns the number of cells in the widest row of a table node.
func (n *Node) NumCols() int {
	cols := 0
	for _, row := range n.ChildrenOfKind(KindHTMLRow) {
		if c := len(row.Children); c > cols {
			cols = c
		}
	}
	return cols
}
