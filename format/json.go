package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/docparse/doc/parser"
)

type JSONEncoder struct {
	w    io.Writer
	node *parser.Node
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(n *parser.Node) error {
	e.node = n
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(NodeJSON(e.node), "", "  ")
}

// JSONNode is the serialized form of a parser.Node.
type JSONNode struct {
	Kind     string         `json:"kind"`
	Line     int            `json:"line,omitempty"`
	Attrs    map[string]any `json:"attrs,omitempty"`
	Title    *JSONNode      `json:"title,omitempty"`
	Caption  *JSONNode      `json:"caption,omitempty"`
	Params   []*JSONNode    `json:"params,omitempty"`
	Children []*JSONNode    `json:"children,omitempty"`
}

// NodeJSON converts the tree rooted at n. A nil node gives nil.
func NodeJSON(n *parser.Node) *JSONNode {
	if n == nil {
		return nil
	}
	jn := &JSONNode{
		Kind:  n.Kind.String(),
		Line:  n.Line,
		Attrs: dataAttrs(n.Data),
	}

	switch d := n.Data.(type) {
	case *parser.SimpleSect:
		jn.Title = NodeJSON(d.Title)
	case *parser.HTMLTable:
		jn.Caption = NodeJSON(d.Caption)
	case *parser.ParamList:
		for _, p := range d.Params {
			jn.Params = append(jn.Params, NodeJSON(p))
		}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*JSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = NodeJSON(child)
		}
	}

	return jn
}

type attrs map[string]any

// set stores v unless it is the zero value of its type.
func (a attrs) set(key string, v any) {
	switch x := v.(type) {
	case string:
		if x == "" {
			return
		}
	case bool:
		if !x {
			return
		}
	case int:
		if x == 0 {
			return
		}
	case []parser.Attribute:
		if len(x) == 0 {
			return
		}
	}
	a[key] = v
}

func dataAttrs(data parser.Data) map[string]any {
	a := attrs{}
	switch d := data.(type) {
	case *parser.Word:
		a.set("text", d.Text)
	case *parser.LinkedWord:
		a.set("text", d.Text)
		a.set("ref", d.Ref)
		a.set("file", d.File)
		a.set("relPath", d.RelPath)
		a.set("anchor", d.Anchor)
		a.set("tooltip", d.Tooltip)
	case *parser.WhiteSpace:
		a.set("chars", d.Chars)
	case *parser.URL:
		a.set("url", d.Text)
		a.set("email", d.IsEmail)
	case *parser.Symbol:
		a.set("entity", d.Entity())
	case *parser.StyleChange:
		a.set("style", d.Style.String())
		a["enter"] = d.Enter
		a.set("position", d.Position)
		a.set("attributes", d.Attrs)
	case *parser.Anchor:
		a.set("id", d.ID)
		a.set("file", d.File)
		a.set("anchor", d.Anchor)
	case *parser.Verbatim:
		a.set("type", d.Type.String())
		a.set("text", d.Text)
		a.set("context", d.Context)
		a.set("exampleFile", d.ExampleFile)
	case *parser.Include:
		a.set("type", d.Type.String())
		a.set("file", d.File)
		a.set("text", d.Text)
		a.set("context", d.Context)
	case *parser.IncOperator:
		a.set("type", d.Type.String())
		a.set("pattern", d.Pattern)
		a.set("text", d.Text)
		a.set("first", d.First)
		a.set("last", d.Last)
	case *parser.Formula:
		a.set("id", d.ID)
		a.set("name", d.Name)
		a.set("text", d.Text)
	case *parser.IndexEntry:
		a.set("entry", d.Entry)
	case *parser.Para:
		a.set("first", d.First)
		a.set("last", d.Last)
		a.set("pre", d.InsidePre)
	case *parser.SimpleSect:
		a.set("type", d.Type.String())
	case *parser.ParamSect:
		a.set("type", d.Type.String())
		a.set("direction", d.Dir.String())
	case *parser.ParamList:
		a.set("type", d.Type.String())
		a.set("direction", d.Dir.String())
	case *parser.AutoList:
		a.set("indent", d.Indent)
		a.set("enumerated", d.Enumerated)
		a.set("depth", d.Depth)
	case *parser.AutoListItem:
		a.set("num", d.Num)
	case *parser.HTMLList:
		a.set("ordered", d.Ordered)
		a.set("xml", d.XML)
		a.set("attributes", d.Attrs)
	case *parser.HTMLListItem:
		a.set("num", d.Num)
		a.set("attributes", d.Attrs)
	case *parser.HTMLDescList:
		a.set("attributes", d.Attrs)
	case *parser.HTMLDescTitle:
		a.set("attributes", d.Attrs)
	case *parser.HTMLDescData:
		a.set("attributes", d.Attrs)
	case *parser.HTMLTable:
		a.set("attributes", d.Attrs)
	case *parser.HTMLCaption:
		a.set("attributes", d.Attrs)
	case *parser.HTMLRow:
		a.set("attributes", d.Attrs)
	case *parser.HTMLCell:
		a.set("heading", d.Heading)
		a.set("first", d.First)
		a.set("last", d.Last)
		a.set("attributes", d.Attrs)
	case *parser.HTMLHeader:
		a.set("level", d.Level)
		a.set("attributes", d.Attrs)
	case *parser.HRef:
		a.set("url", d.URL)
		a.set("attributes", d.Attrs)
	case *parser.Ref:
		a.set("target", d.Target)
		a.set("text", d.Text)
		a.set("file", d.File)
		a.set("relPath", d.RelPath)
		a.set("anchor", d.Anchor)
		a.set("ref", d.Ref)
		a.set("toSection", d.ToSection)
		a.set("toAnchor", d.ToAnchor)
	case *parser.Link:
		a.set("target", d.Target)
		a.set("refText", d.RefText)
		a.set("file", d.File)
		a.set("relPath", d.RelPath)
		a.set("anchor", d.Anchor)
		a.set("ref", d.Ref)
	case *parser.InternalRef:
		a.set("file", d.File)
		a.set("relPath", d.RelPath)
		a.set("anchor", d.Anchor)
	case *parser.SecRefItem:
		a.set("target", d.Target)
		a.set("file", d.File)
		a.set("anchor", d.Anchor)
	case *parser.Image:
		a.set("type", d.Type.String())
		a.set("name", d.Name)
		a.set("path", d.Path)
		a.set("width", d.Width)
		a.set("height", d.Height)
		a.set("attributes", d.Attrs)
	case *parser.DotFile:
		a.set("name", d.Name)
		a.set("file", d.File)
		a.set("width", d.Width)
		a.set("height", d.Height)
	case *parser.Copy:
		a.set("target", d.Target)
		a.set("brief", d.Brief)
		a.set("details", d.Details)
	case *parser.XRefItem:
		a.set("key", d.Key)
		a.set("id", d.ID)
		a.set("file", d.File)
		a.set("anchor", d.Anchor)
		a.set("title", d.Title)
	case *parser.Section:
		a.set("level", d.Level)
		a.set("id", d.ID)
		a.set("title", d.Title)
		a.set("file", d.File)
		a.set("anchor", d.Anchor)
	case *parser.Internal:
		a.set("level", d.Level)
	}
	if len(a) == 0 {
		return nil
	}
	return a
}
