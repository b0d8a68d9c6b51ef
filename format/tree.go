package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dhamidi/docparse/doc/parser"
)

// TreePrinter dumps a tree one node per line, indented by depth. Colors
// are only used when the writer is a terminal.
type TreePrinter struct {
	w    io.Writer
	node *parser.Node

	// ShowLines prefixes each node with its source line.
	ShowLines bool

	kindStyle   lipgloss.Style
	detailStyle lipgloss.Style
	lineStyle   lipgloss.Style
}

func NewTreePrinter(w io.Writer) *TreePrinter {
	r := lipgloss.NewRenderer(w)
	return &TreePrinter{
		w:           w,
		kindStyle:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		detailStyle: r.NewStyle().Foreground(lipgloss.Color("10")),
		lineStyle:   r.NewStyle().Faint(true),
	}
}

func (p *TreePrinter) Encode(n *parser.Node) error {
	p.node = n
	text, err := p.MarshalText()
	if err != nil {
		return err
	}
	_, err = p.w.Write(text)
	return err
}

func (p *TreePrinter) MarshalText() ([]byte, error) {
	v := &treeVisitor{p: p}
	parser.Walk(v, p.node)
	return []byte(v.sb.String()), nil
}

type treeVisitor struct {
	p     *TreePrinter
	sb    strings.Builder
	depth int
}

func (v *treeVisitor) VisitPre(n *parser.Node) bool {
	v.p.writeNode(&v.sb, n, v.depth)
	v.depth++
	return true
}

func (v *treeVisitor) VisitPost(*parser.Node) {
	v.depth--
}

func (p *TreePrinter) writeNode(sb *strings.Builder, n *parser.Node, depth int) {
	if p.ShowLines {
		sb.WriteString(p.lineStyle.Render(fmt.Sprintf("%4d", n.Line)))
		sb.WriteString(" ")
	}
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(p.kindStyle.Render(n.Kind.String()))
	if d := n.Describe(); d != "" {
		sb.WriteString(" ")
		sb.WriteString(p.detailStyle.Render(d))
	}
	sb.WriteString("\n")
}
