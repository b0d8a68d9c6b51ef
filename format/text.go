package format

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/dhamidi/docparse/doc/parser"
)

// TextEncoder renders a tree as plain text: styles are dropped, entities
// decoded, paragraphs separated by blank lines and list items put on
// their own lines.
type TextEncoder struct {
	w    io.Writer
	node *parser.Node
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(n *parser.Node) error {
	e.node = n
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	v := &textVisitor{}
	parser.Walk(v, e.node)
	out := strings.TrimRight(v.sb.String(), " \n")
	if out == "" {
		return nil, nil
	}
	return []byte(out + "\n"), nil
}

// PlainText returns the text of the tree rooted at n.
func PlainText(n *parser.Node) string {
	text, _ := (&TextEncoder{node: n}).MarshalText()
	return string(text)
}

type textVisitor struct {
	sb strings.Builder
	// fresh is set right after a list marker or label; breaks are not
	// written until text follows.
	fresh bool
}

func (v *textVisitor) write(s string) {
	if s == "" {
		return
	}
	v.sb.WriteString(s)
	v.fresh = false
}

func (v *textVisitor) marker(s string) {
	v.sb.WriteString(s)
	v.fresh = true
}

func (v *textVisitor) trimSpaces() {
	s := v.sb.String()
	t := strings.TrimRight(s, " ")
	if len(t) != len(s) {
		v.sb.Reset()
		v.sb.WriteString(t)
	}
}

func (v *textVisitor) space() {
	s := v.sb.String()
	if v.fresh || s == "" || strings.HasSuffix(s, " ") || strings.HasSuffix(s, "\n") {
		return
	}
	v.sb.WriteString(" ")
}

func (v *textVisitor) line() {
	if v.fresh {
		return
	}
	v.trimSpaces()
	if s := v.sb.String(); s != "" && !strings.HasSuffix(s, "\n") {
		v.sb.WriteString("\n")
	}
}

func (v *textVisitor) block() {
	if v.fresh {
		return
	}
	v.line()
	if s := v.sb.String(); s != "" && !strings.HasSuffix(s, "\n\n") {
		v.sb.WriteString("\n")
	}
}

func (v *textVisitor) VisitPre(n *parser.Node) bool {
	if n.Kind == parser.KindSimpleListItem {
		v.line()
		v.marker(listIndent(n) + "- ")
		return true
	}
	switch d := n.Data.(type) {
	case *parser.Word:
		v.write(d.Text)
	case *parser.LinkedWord:
		v.write(d.Text)
	case *parser.URL:
		v.write(d.Text)
	case *parser.Symbol:
		v.write(html.UnescapeString(d.Entity()))
	case *parser.WhiteSpace:
		if n.Preformatted() {
			v.write(d.Chars)
		} else {
			v.space()
		}
	case *parser.Formula:
		v.write(d.Text)
	case *parser.Para:
		if !d.First || !isItem(n.Parent()) {
			v.block()
		}
	case *parser.Verbatim:
		if d.Type == parser.VerbatimCode || d.Type == parser.VerbatimVerbatim {
			v.block()
			v.write(strings.TrimRight(d.Text, "\n"))
			v.block()
		}
		return false
	case *parser.Include:
		v.block()
		v.write(strings.TrimRight(d.Text, "\n"))
		v.block()
	case *parser.IncOperator:
		v.line()
		v.write(strings.TrimRight(d.Text, "\n"))
	case *parser.SimpleSect:
		v.block()
		if d.Title != nil {
			v.walkAll(d.Title.Children)
			v.marker(":\n")
		} else {
			v.marker(sectLabel(d.Type) + ":\n")
		}
		v.walkAll(n.Children)
		return false
	case *parser.ParamSect:
		v.block()
		v.marker(paramLabel(d.Type) + ":\n")
		v.walkAll(n.Children)
		return false
	case *parser.ParamList:
		v.line()
		v.marker("  " + strings.Join(d.Names(), ", ") + "  ")
		v.walkAll(n.Children)
		return false
	case *parser.Section:
		v.block()
		if d.Title != "" {
			v.write(d.Title)
		} else {
			v.write(d.ID)
		}
		v.block()
	case *parser.HTMLHeader:
		v.block()
		v.walkAll(n.Children)
		v.block()
		return false
	case *parser.AutoListItem:
		v.line()
		v.marker(listIndent(n) + itemMarker(n, d.Num))
	case *parser.HTMLListItem:
		v.line()
		v.marker(listIndent(n) + itemMarker(n, d.Num))
	case *parser.HTMLDescTitle:
		v.line()
	case *parser.HTMLDescData:
		v.line()
		v.marker("  ")
	case *parser.HTMLRow:
		v.line()
	case *parser.HTMLCell:
		if !d.First {
			v.write(" | ")
		}
	case *parser.Ref:
		if n.IsEmpty() {
			v.write(firstNonEmpty(d.Text, d.Target))
		}
	case *parser.Link:
		if n.IsEmpty() {
			v.write(firstNonEmpty(d.RefText, d.Target))
		}
	case *parser.Image, *parser.DotFile, *parser.Anchor, *parser.IndexEntry, *parser.StyleChange:
		return false
	default:
		switch n.Kind {
		case parser.KindLineBreak:
			v.line()
		case parser.KindHorRuler:
			v.block()
			v.write("----")
			v.block()
		}
	}
	return true
}

func (v *textVisitor) VisitPost(n *parser.Node) {
	switch n.Kind {
	case parser.KindAutoList, parser.KindHTMLList, parser.KindSimpleList, parser.KindHTMLTable, parser.KindHTMLDescList:
		v.line()
	}
}

func (v *textVisitor) walkAll(nodes []*parser.Node) {
	for _, c := range nodes {
		parser.Walk(v, c)
	}
}

func isItem(n *parser.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case parser.KindAutoListItem, parser.KindHTMLListItem, parser.KindSimpleListItem,
		parser.KindHTMLCell, parser.KindHTMLDescData, parser.KindParamList:
		return true
	}
	return false
}

// listIndent indents an item by two spaces per enclosing list.
func listIndent(item *parser.Node) string {
	depth := 0
	for p := item.Parent(); p != nil; p = p.Parent() {
		switch p.Kind {
		case parser.KindAutoList, parser.KindHTMLList, parser.KindSimpleList:
			depth++
		}
	}
	if depth == 0 {
		return ""
	}
	return strings.Repeat("  ", depth-1)
}

func itemMarker(item *parser.Node, num int) string {
	list := item.Parent()
	if list != nil {
		switch d := list.Data.(type) {
		case *parser.AutoList:
			if d.Enumerated {
				return strconv.Itoa(num) + ". "
			}
		case *parser.HTMLList:
			if d.Ordered {
				return strconv.Itoa(num) + ". "
			}
		}
	}
	return "- "
}

var sectLabels = map[parser.SimpleSectType]string{
	parser.SectSee:       "See also",
	parser.SectReturn:    "Returns",
	parser.SectAuthor:    "Author",
	parser.SectAuthors:   "Authors",
	parser.SectVersion:   "Version",
	parser.SectSince:     "Since",
	parser.SectDate:      "Date",
	parser.SectNote:      "Note",
	parser.SectWarning:   "Warning",
	parser.SectPre:       "Precondition",
	parser.SectPost:      "Postcondition",
	parser.SectInvar:     "Invariant",
	parser.SectRemark:    "Remarks",
	parser.SectAttention: "Attention",
	parser.SectRcs:       "Revision",
}

func sectLabel(t parser.SimpleSectType) string {
	if label, ok := sectLabels[t]; ok {
		return label
	}
	return t.String()
}

func paramLabel(t parser.ParamSectType) string {
	switch t {
	case parser.ParamRetVal:
		return "Return values"
	case parser.ParamException:
		return "Exceptions"
	}
	return "Parameters"
}

func firstNonEmpty(values ...string) string {
	for _, s := range values {
		if s != "" {
			return s
		}
	}
	return ""
}
