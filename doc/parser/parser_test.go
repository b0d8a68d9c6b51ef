package parser

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse_StylesReopenInNextParagraph(t *testing.T) {
	doc, sink := parse(t, "<b><i>x\n\ny</i></b>")
	expectWarnings(t, sink, 0)

	paras := doc.Root.ChildrenOfKind(KindPara)
	if len(paras) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d:\n%s", len(paras), doc.Root)
	}
	for i, p := range paras {
		if got := childKinds(p); got != "StyleChange StyleChange Word StyleChange StyleChange" {
			t.Fatalf("paragraph %d: unexpected children %q", i, got)
		}
	}

	second := paras[1].Children
	wantOrder := []struct {
		style Style
		enter bool
	}{
		{StyleBold, true},
		{StyleItalic, true},
	}
	for i, want := range wantOrder {
		sc := second[i].Data.(*StyleChange)
		if sc.Style != want.style || sc.Enter != want.enter {
			t.Errorf("reopened style %d: got %s enter=%v, want %s enter=%v", i, sc.Style, sc.Enter, want.style, want.enter)
		}
	}
	if sc := second[3].Data.(*StyleChange); sc.Style != StyleItalic || sc.Enter {
		t.Errorf("expected </i> to close the italic span, got %s enter=%v", sc.Style, sc.Enter)
	}
}

// styleTrail lists the style changes below n as "+b", "-b" and so on.
func styleTrail(n *Node) []string {
	var trail []string
	for _, c := range findAll(n, KindStyleChange) {
		sc := c.Data.(*StyleChange)
		sign := "-"
		if sc.Enter {
			sign = "+"
		}
		trail = append(trail, sign+sc.Style.String())
	}
	return trail
}

func TestParse_StyleCloseMismatch(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
		trail   []string
	}{
		{
			name:    "crossed spans",
			input:   "<b><i>x</b>y</i></b>",
			message: "while expecting </em>",
			trail:   []string{"+b", "+em", "-em", "-b"},
		},
		{
			name:    "close inside nested cell",
			input:   "<b>x<table><tr><td>c</b></td></tr></table>y</b>",
			message: "inside HTMLCell",
			trail:   []string{"+b", "-b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, sink := parse(t, tt.input)
			expectWarnings(t, sink, 1)
			d := sink.Diagnostics()[0]
			if d.Kind != StructuralMismatch || !strings.Contains(d.Message, tt.message) {
				t.Errorf("unexpected warning %s: %q", d.Kind, d.Message)
			}
			if got := styleTrail(doc.Root); !reflect.DeepEqual(got, tt.trail) {
				t.Errorf("style changes: got %v, want %v\n%s", got, tt.trail, doc.Root)
			}
		})
	}
}

func TestParse_StyleCloseInsideCellLeavesCellUnstyled(t *testing.T) {
	doc, _ := parse(t, "<b>x<table><tr><td>c</b></td></tr></table>y</b>")
	cells := findAll(doc.Root, KindHTMLCell)
	if len(cells) != 1 {
		t.Fatalf("expected 1 cell, got %d", len(cells))
	}
	if got := styleTrail(cells[0]); len(got) != 0 {
		t.Errorf("expected no style changes inside the cell, got %v", got)
	}
}

func TestParse_UnclosedStyleReportedOnce(t *testing.T) {
	_, sink := parse(t, "<b>x\n\ny")
	expectWarnings(t, sink, 1)
	if d := sink.Diagnostics()[0]; !strings.Contains(d.Message, "</b>") {
		t.Errorf("unexpected message %q", d.Message)
	}
}

func TestParse_ProbesScopesInnermostFirst(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		defs   []*Definition
		probes []string
		ref    string
	}{
		{
			name:   "unresolved",
			input:  "Foo",
			probes: []string{"ns::C::Foo", "ns::Foo", "Foo"},
		},
		{
			name:   "stops at first hit",
			input:  "Foo",
			defs:   []*Definition{{Name: "Foo", Scope: "ns", Kind: DefClass, Linkable: true, File: "classns_1_1Foo"}},
			probes: []string{"ns::C::Foo", "ns::Foo"},
			ref:    "ns::Foo",
		},
		{
			name:   "global name",
			input:  "::Foo",
			defs:   []*Definition{{Name: "Foo", Kind: DefClass, Linkable: true, File: "classFoo"}},
			probes: []string{"Foo"},
			ref:    "Foo",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := newTestIndex(tt.defs...)
			doc, _ := parse(t, tt.input, WithIndex(idx), WithScope("ns::C"))
			if !reflect.DeepEqual(idx.probes, tt.probes) {
				t.Fatalf("expected probes %v, got %v", tt.probes, idx.probes)
			}
			linked := findAll(doc.Root, KindLinkedWord)
			if tt.ref == "" {
				if len(linked) != 0 {
					t.Fatalf("expected no linked words, got %d", len(linked))
				}
				return
			}
			if len(linked) != 1 {
				t.Fatalf("expected 1 linked word, got %d:\n%s", len(linked), doc.Root)
			}
			if got := linked[0].Data.(*LinkedWord).Ref; got != tt.ref {
				t.Errorf("expected link to %s, got %s", tt.ref, got)
			}
		})
	}
}

func TestParse_LowerCaseWordsOnlyLinkedInSeeAlso(t *testing.T) {
	idx := newTestIndex(&Definition{Name: "foo", Kind: DefMember, Linkable: true, File: "a", Anchor: "x"})

	doc, _ := parse(t, "call foo", WithIndex(idx))
	if n := len(findAll(doc.Root, KindLinkedWord)); n != 0 {
		t.Errorf("expected plain words outside \\sa, got %d links", n)
	}
	if len(idx.probes) != 0 {
		t.Errorf("expected no index probes, got %v", idx.probes)
	}

	doc, _ = parse(t, "\\sa foo", WithIndex(idx))
	links := findAll(doc.Root, KindLinkedWord)
	if len(links) != 1 {
		t.Fatalf("expected 1 link inside \\sa, got %d:\n%s", len(links), doc.Root)
	}
	if links[0].Ancestor(KindSimpleSect) == nil {
		t.Errorf("expected the link inside the see-also section")
	}
}

func TestParse_CopyDocRecursionStops(t *testing.T) {
	a := &Definition{Name: "A", Kind: DefMember, Linkable: true, File: "a", Anchor: "a1"}
	idx := newTestIndex(a)
	idx.docs["A"] = [2]string{"", "Alpha text. \\copydoc A"}

	doc, sink := parse(t, "\\copydoc A", WithIndex(idx))
	expectWarnings(t, sink, 1)
	if sink.Count(RecursionDetected) != 1 {
		t.Fatalf("expected a recursion warning, got %v", sink.Diagnostics())
	}
	copies := findAll(doc.Root, KindCopy)
	if len(copies) != 1 {
		t.Fatalf("expected 1 copy, got %d:\n%s", len(copies), doc.Root)
	}
	if got := copies[0].Text(); !strings.HasPrefix(got, "Alpha text.") {
		t.Errorf("unexpected copied text %q", got)
	}
}

func TestParse_CopyDocOfDocumentedMember(t *testing.T) {
	a := &Definition{Name: "A", Kind: DefMember}
	idx := newTestIndex(a)
	idx.docs["A"] = [2]string{"", "Alpha."}

	doc, sink := parse(t, "\\copydoc A", WithIndex(idx), WithMember(a))
	expectWarnings(t, sink, 1)
	if sink.Count(RecursionDetected) != 1 {
		t.Fatalf("expected a recursion warning, got %v", sink.Diagnostics())
	}
	if n := len(findAll(doc.Root, KindCopy)); n != 0 {
		t.Fatalf("expected no copy, got %d", n)
	}
}

func TestParse_CopyVariants(t *testing.T) {
	b := &Definition{Name: "B", Kind: DefMember, Linkable: true, File: "b"}
	idx := newTestIndex(b)
	idx.docs["B"] = [2]string{"Brief B.", "Details B."}

	tests := []struct {
		input   string
		want    []string
		notWant []string
	}{
		{"\\copybrief B", []string{"Brief"}, []string{"Details"}},
		{"\\copydetails B", []string{"Details"}, []string{"Brief"}},
		{"\\copydoc B", []string{"Brief", "Details"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			doc, sink := parse(t, tt.input, WithIndex(idx))
			expectWarnings(t, sink, 0)
			text := doc.Root.Text()
			for _, w := range tt.want {
				if !strings.Contains(text, w) {
					t.Errorf("expected %q in %q", w, text)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(text, w) {
					t.Errorf("did not expect %q in %q", w, text)
				}
			}
		})
	}
}

func TestParse_CopyDocUsesTargetScope(t *testing.T) {
	f := &Definition{Name: "f", Scope: "ns::C", Kind: DefMember}
	helper := &Definition{Name: "Helper", Scope: "ns::C", Kind: DefClass, Linkable: true, File: "helper"}
	idx := newTestIndex(f, helper)
	idx.docs["ns::C::f"] = [2]string{"", "Uses Helper"}

	doc, sink := parse(t, "\\copydoc ns::C::f", WithIndex(idx))
	expectWarnings(t, sink, 0)
	links := findAll(doc.Root, KindLinkedWord)
	if len(links) != 1 || links[0].Data.(*LinkedWord).Ref != "ns::C::Helper" {
		t.Fatalf("expected a link to ns::C::Helper, got:\n%s", doc.Root)
	}
}

func TestParse_CopyDocUnknownTarget(t *testing.T) {
	doc, sink := parse(t, "\\copydoc Missing", WithIndex(newTestIndex()))
	expectWarnings(t, sink, 1)
	if sink.Count(UnresolvedReference) != 1 {
		t.Errorf("expected an unresolved reference, got %v", sink.Diagnostics())
	}
	if n := len(findAll(doc.Root, KindCopy)); n != 0 {
		t.Errorf("expected no copy node, got %d", n)
	}
}

func TestParse_InheritDoc(t *testing.T) {
	base := &Definition{Name: "run", Scope: "Base", Kind: DefMember}
	derived := &Definition{Name: "run", Scope: "Derived", Kind: DefMember, Reimplements: "Base::run"}
	idx := newTestIndex(base, derived)
	idx.docs["Base::run"] = [2]string{"", "Runs the job."}

	doc, sink := parse(t, "\\inheritdoc", WithIndex(idx), WithMember(derived))
	expectWarnings(t, sink, 0)
	if got := doc.Root.Text(); got != "Runs the job." {
		t.Errorf("unexpected text %q", got)
	}
}

func TestParse_AutoListIndentation(t *testing.T) {
	input := "Intro\n  - a\n  - b\n    - c\n    - d\n  - e"
	doc, sink := parse(t, input)
	expectWarnings(t, sink, 0)

	lists := findAll(doc.Root, KindAutoList)
	if len(lists) != 2 {
		t.Fatalf("expected 2 lists, got %d:\n%s", len(lists), doc.Root)
	}
	outer, inner := lists[0], lists[1]
	if got := outer.Data.(*AutoList).Indent; got != 2 {
		t.Errorf("outer indent: got %d, want 2", got)
	}
	if got := inner.Data.(*AutoList); got.Indent != 4 || got.Depth != 1 {
		t.Errorf("inner list: got indent %d depth %d, want 4 and 1", got.Indent, got.Depth)
	}
	if len(outer.Children) != 3 {
		t.Fatalf("expected 3 outer items, got %d", len(outer.Children))
	}
	if len(inner.Children) != 2 {
		t.Fatalf("expected 2 inner items, got %d", len(inner.Children))
	}
	if inner.Ancestor(KindAutoListItem) != outer.Children[1] {
		t.Errorf("expected the inner list inside the second item")
	}
	for i, item := range outer.Children {
		if got := item.Data.(*AutoListItem).Num; got != i+1 {
			t.Errorf("item %d numbered %d", i, got)
		}
	}
	if got := strings.TrimSpace(outer.Children[2].Text()); got != "e" {
		t.Errorf("last item text %q", got)
	}
}

func TestParse_EnumeratedList(t *testing.T) {
	doc, sink := parse(t, "-# one\n-# two")
	expectWarnings(t, sink, 0)
	lists := findAll(doc.Root, KindAutoList)
	if len(lists) != 1 {
		t.Fatalf("expected 1 list, got %d", len(lists))
	}
	if !lists[0].Data.(*AutoList).Enumerated || len(lists[0].Children) != 2 {
		t.Errorf("unexpected list:\n%s", lists[0])
	}
}

func TestParse_TableRecoversFromMissingEndTags(t *testing.T) {
	doc, sink := parse(t, "<table><tr><td>a</table>")
	expectWarnings(t, sink, 1)
	if msg := sink.Diagnostics()[0].Message; msg != "missing </td> tag" {
		t.Errorf("unexpected warning %q", msg)
	}

	tables := findAll(doc.Root, KindHTMLTable)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	rows := tables[0].ChildrenOfKind(KindHTMLRow)
	if len(rows) != 1 || len(rows[0].Children) != 1 {
		t.Fatalf("expected 1 row with 1 cell:\n%s", tables[0])
	}
	cell := rows[0].Children[0]
	if got := cell.Text(); got != "a" {
		t.Errorf("cell text: got %q, want %q", got, "a")
	}
	if d := cell.Data.(*HTMLCell); !d.First || !d.Last {
		t.Errorf("expected the only cell to be first and last")
	}
}

func TestParse_TableRowWithoutCellEnd(t *testing.T) {
	doc, sink := parse(t, "<table><tr><td>a</tr><tr><td>b</td></tr></table> after")
	expectWarnings(t, sink, 1)
	if msg := sink.Diagnostics()[0].Message; msg != "missing </td> tag" {
		t.Errorf("unexpected warning %q", msg)
	}

	tables := findAll(doc.Root, KindHTMLTable)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	rows := tables[0].ChildrenOfKind(KindHTMLRow)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows:\n%s", tables[0])
	}
	for i, want := range []string{"a", "b"} {
		if len(rows[i].Children) != 1 {
			t.Fatalf("row %d: expected 1 cell, got %d", i, len(rows[i].Children))
		}
		if got := rows[i].Children[0].Text(); got != want {
			t.Errorf("row %d: got %q, want %q", i, got, want)
		}
	}

	words := findAll(doc.Root, KindWord)
	if len(words) == 0 || words[len(words)-1].Text() != "after" {
		t.Errorf("expected the text after the table to be kept:\n%s", doc.Root)
	}
}

func TestParse_TableWarnsPerOpenCell(t *testing.T) {
	_, sink := parse(t, "<table><tr><td>a<td>b<tr><td>c</table>")
	expectWarnings(t, sink, 3)
	for _, d := range sink.Diagnostics() {
		if d.Message != "missing </td> tag" {
			t.Errorf("unexpected warning %q", d.Message)
		}
	}
}

func TestParse_TableWithHeadings(t *testing.T) {
	doc, sink := parse(t, "<table><tr><th>H</th></tr><tr><td>v</td></tr></table>")
	expectWarnings(t, sink, 0)
	table := findAll(doc.Root, KindHTMLTable)[0]
	rows := table.ChildrenOfKind(KindHTMLRow)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !rows[0].Children[0].Data.(*HTMLCell).Heading {
		t.Errorf("expected a heading cell in the first row")
	}
	if rows[1].Children[0].Data.(*HTMLCell).Heading {
		t.Errorf("expected a data cell in the second row")
	}
	if table.NumCols() != 1 {
		t.Errorf("expected 1 column, got %d", table.NumCols())
	}
}

func TestParse_HTMLList(t *testing.T) {
	doc, sink := parse(t, "<ul><li>one<li>two</ul>")
	expectWarnings(t, sink, 0)
	lists := findAll(doc.Root, KindHTMLList)
	if len(lists) != 1 || len(lists[0].Children) != 2 {
		t.Fatalf("unexpected lists:\n%s", doc.Root)
	}
	if got := lists[0].Children[1].Text(); got != "two" {
		t.Errorf("second item: got %q", got)
	}
}

func TestParse_SkippedSectionLevelIsFlattened(t *testing.T) {
	input := "\\section s1 One\ntext\n\\subsubsection s3 Three\nmore"
	doc, sink := parse(t, input)
	expectWarnings(t, sink, 1)
	if msg := sink.Diagnostics()[0].Message; msg != "Unexpected subsubsection command found inside section!" {
		t.Errorf("unexpected warning %q", msg)
	}

	sections := findAll(doc.Root, KindSection)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d:\n%s", len(sections), doc.Root)
	}
	sec := sections[0]
	if d := sec.Data.(*Section); d.Level != 1 || d.Anchor != "s1" || d.Title != "One" {
		t.Errorf("unexpected section %+v", d)
	}
	if got := childKinds(sec); got != "Para Para" {
		t.Errorf("expected the skipped level's content in the section, got %q", got)
	}
}

func TestParse_NestedSections(t *testing.T) {
	idx := newTestIndex()
	idx.sections["intro"] = SectionInfo{Label: "intro", Title: "Introduction", File: "index", Kind: SectionSection}
	input := "\\section intro\na\n\\subsection details Details\nb\n\\section next Next\nc"
	doc, sink := parse(t, input, WithIndex(idx))
	expectWarnings(t, sink, 0)

	top := doc.Root.ChildrenOfKind(KindSection)
	if len(top) != 2 {
		t.Fatalf("expected 2 top level sections:\n%s", doc.Root)
	}
	if d := top[0].Data.(*Section); d.Title != "Introduction" || d.File != "index" {
		t.Errorf("expected the title from the section table, got %+v", d)
	}
	if n := len(top[0].ChildrenOfKind(KindSection)); n != 1 {
		t.Errorf("expected 1 subsection, got %d", n)
	}
}

func TestParse_SectionWithoutIDOrTitle(t *testing.T) {
	doc, sink := parse(t, "\\section nowhere\ntext")
	expectWarnings(t, sink, 1)
	if sink.Count(UnresolvedReference) != 1 {
		t.Errorf("expected an unresolved section id, got %v", sink.Diagnostics())
	}
	if n := len(findAll(doc.Root, KindSection)); n != 0 {
		t.Errorf("expected no sections, got %d", n)
	}
	if !strings.Contains(doc.Root.Text(), "text") {
		t.Errorf("expected the content to be kept")
	}
}

func TestParse_ParamDocumentation(t *testing.T) {
	member := &Definition{
		Name:   "copy",
		Params: []Param{{Type: "int", Name: "a"}, {Type: "int", Name: "b"}},
	}
	doc, sink := parse(t, "\\param[in] a the first\n\\param c missing", WithMember(member))
	if !doc.HasParamCommand {
		t.Errorf("expected HasParamCommand")
	}
	if !doc.ParamsDocumented || !doc.ReturnDocumented {
		t.Errorf("expected params and return documented, got %v %v", doc.ParamsDocumented, doc.ReturnDocumented)
	}

	diags := sink.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("expected 2 warnings, got %v", diags)
	}
	if !strings.Contains(diags[0].Message, "argument `c' of command @param is not found in the argument list of copy(int a, int b)") {
		t.Errorf("unexpected first warning %q", diags[0].Message)
	}
	if !strings.Contains(diags[1].Message, "parameter b") {
		t.Errorf("unexpected second warning %q", diags[1].Message)
	}

	sects := findAll(doc.Root, KindParamSect)
	if len(sects) != 1 {
		t.Fatalf("expected consecutive params to share a section:\n%s", doc.Root)
	}
	lists := sects[0].ChildrenOfKind(KindParamList)
	if len(lists) != 2 {
		t.Fatalf("expected 2 param lists, got %d", len(lists))
	}
	if got := lists[0].Data.(*ParamList).Names(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("unexpected names %v", got)
	}
	if got := sects[0].Data.(*ParamSect).Dir; got != DirIn {
		t.Errorf("expected direction in, got %s", got)
	}
}

func TestParse_WarningsDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WarnIfDocError = false
	_, sink := parse(t, "\\unknowncmd <b>x", WithConfig(cfg))
	expectWarnings(t, sink, 0)
}

func TestParse_UnknownCommand(t *testing.T) {
	_, sink := parse(t, "\\frobnicate")
	expectWarnings(t, sink, 1)
	if d := sink.Diagnostics()[0]; d.Kind != UnknownCommand || d.File != "test.h" || d.Line != 1 {
		t.Errorf("unexpected diagnostic %+v", d)
	}
}

func TestParse_XRefItem(t *testing.T) {
	idx := newTestIndex()
	idx.xrefs["todo"] = XRefEntry{File: "todo", Anchor: "_todo000001", Title: "Todo", Text: "Fix this."}

	doc, sink := parse(t, "\\xrefitem todo 1", WithIndex(idx))
	expectWarnings(t, sink, 0)
	items := findAll(doc.Root, KindXRefItem)
	if len(items) != 1 {
		t.Fatalf("expected 1 xref item:\n%s", doc.Root)
	}
	x := items[0].Data.(*XRefItem)
	if x.Key != "todo" || x.ID != 1 || x.Anchor != "_todo000001" || x.Title != "Todo" {
		t.Errorf("unexpected item %+v", x)
	}
	if got := items[0].Text(); got != "Fix this." {
		t.Errorf("unexpected text %q", got)
	}

	cfg := DefaultConfig()
	cfg.GenerateTodoList = false
	doc, _ = parse(t, "\\xrefitem todo 1", WithIndex(idx), WithConfig(cfg))
	if n := len(findAll(doc.Root, KindXRefItem)); n != 0 {
		t.Errorf("expected disabled list to be dropped, got %d items", n)
	}
}

func TestParse_IndexEntry(t *testing.T) {
	doc, sink := parse(t, "\\addindex foo\\@bar &ndash; baz\nnext")
	expectWarnings(t, sink, 0)
	entries := findAll(doc.Root, KindIndexEntry)
	if len(entries) != 1 {
		t.Fatalf("expected 1 index entry:\n%s", doc.Root)
	}
	if got := entries[0].Data.(*IndexEntry).Entry; got != "foo@bar -- baz" {
		t.Errorf("unexpected entry %q", got)
	}
	if !strings.Contains(doc.Root.Text(), "next") {
		t.Errorf("expected parsing to continue after the entry")
	}
}

func TestParse_IncludeOperators(t *testing.T) {
	files := mapFiles{"ex.c": "int main() {\n  return 0;\n}\n"}
	doc, sink := parse(t, "\\dontinclude ex.c\n\\line main\n\\until }", WithFiles(files))
	expectWarnings(t, sink, 0)

	ops := findAll(doc.Root, KindIncOperator)
	if len(ops) != 2 {
		t.Fatalf("expected 2 operators:\n%s", doc.Root)
	}
	first, second := ops[0].Data.(*IncOperator), ops[1].Data.(*IncOperator)
	if first.Text != "int main() {" {
		t.Errorf("\\line: got %q", first.Text)
	}
	if second.Text != "  return 0;\n}" {
		t.Errorf("\\until: got %q", second.Text)
	}
	if !first.First || first.Last || second.First || !second.Last {
		t.Errorf("unexpected first/last marks: %+v %+v", first, second)
	}
}

func TestParse_IncludeMissingFile(t *testing.T) {
	doc, sink := parse(t, "\\include nothere.c", WithFiles(mapFiles{}))
	expectWarnings(t, sink, 1)
	inc := findAll(doc.Root, KindInclude)
	if len(inc) != 1 || inc[0].Data.(*Include).Text != "" {
		t.Errorf("expected an empty include node:\n%s", doc.Root)
	}
}

func TestParse_VerbatimCode(t *testing.T) {
	doc, sink := parse(t, "Example:\n\\code\n\nx = 1;\n\\endcode\nafter")
	expectWarnings(t, sink, 0)
	v := findAll(doc.Root, KindVerbatim)
	if len(v) != 1 {
		t.Fatalf("expected 1 verbatim block:\n%s", doc.Root)
	}
	if got := v[0].Data.(*Verbatim).Text; got != "x = 1;\n" {
		t.Errorf("unexpected code %q", got)
	}
}

func TestParse_VerbatimWithoutEnd(t *testing.T) {
	_, sink := parse(t, "\\verbatim\nraw")
	expectWarnings(t, sink, 1)
}

func TestParse_DepthLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDepth = 8
	input := strings.Repeat("<ul><li>", 20) + "deep"
	doc, sink := parse(t, input, WithConfig(cfg))
	if sink.Count(RecursionDetected) != 1 {
		t.Fatalf("expected one depth warning, got %v", sink.Diagnostics())
	}
	expectWarnings(t, sink, 1)
	if doc.Root == nil {
		t.Fatalf("expected a tree")
	}
}

func TestParse_DepthLimitReportsOnlyTheLimit(t *testing.T) {
	input := strings.Repeat("<ul><li>", 5000) + "x"
	doc, sink := parse(t, input)
	expectWarnings(t, sink, 1)
	if d := sink.Diagnostics()[0]; d.Kind != RecursionDetected {
		t.Errorf("expected a %s diagnostic, got %s: %s", RecursionDetected, d.Kind, d.Message)
	}
	if len(findAll(doc.Root, KindHTMLList)) == 0 {
		t.Errorf("expected the lists below the limit to be kept")
	}
}

func TestParse_WarningsResumeAfterDepthLimit(t *testing.T) {
	sink := &Collector{}
	o := defaultOptions()
	WithSink(sink)(o)
	s := newSession(o)
	s.tok.Init("x y", "test.h", 1)
	if !s.descend() {
		t.Fatalf("expected the first level to be accepted")
	}
	s.cfg.MaxDepth = 1
	if s.descend() {
		t.Fatalf("expected the depth limit to be hit")
	}
	s.warn(StructuralMismatch, "while unwinding")
	if got := sink.Count(); got != 1 {
		t.Fatalf("expected only the depth warning while unwinding, got %v", sink.Diagnostics())
	}
	s.next()
	if s.unwinding {
		t.Fatalf("expected reading a token to end the unwinding")
	}
	sink.Reset()
	s.warn(StructuralMismatch, "after")
	if sink.Count(StructuralMismatch) != 1 {
		t.Errorf("expected warnings to be reported again, got %v", sink.Diagnostics())
	}
}

func TestParseText(t *testing.T) {
	text := ParseText("Tom &amp; Jerry\\@home")
	if text.Kind != KindText {
		t.Fatalf("expected a text node, got %s", text.Kind)
	}
	if got := childKinds(text); got != "Word WhiteSpace Symbol WhiteSpace Word Symbol Word" {
		t.Errorf("unexpected children %q", got)
	}
	if got := text.Text(); got != "Tom & Jerry@home" {
		t.Errorf("unexpected text %q", got)
	}
}

type recordingWords struct {
	words     []string
	important []string
}

func (r *recordingWords) AddWord(word string, important bool) {
	r.words = append(r.words, word)
	if important {
		r.important = append(r.important, word)
	}
}

func TestParse_SearchWords(t *testing.T) {
	idx := newTestIndex(&Definition{Name: "List", Kind: DefClass, File: "list", Linkable: true})

	cfg := DefaultConfig()
	cfg.SearchEngine = true
	words := &recordingWords{}
	parse(t, "Uses List here.", WithIndex(idx), WithConfig(cfg), WithWordIndexer(words))
	if len(words.words) == 0 || words.words[0] != "Uses" {
		t.Fatalf("expected the words to be indexed, got %v", words.words)
	}
	if len(words.important) != 1 || words.important[0] != "List" {
		t.Errorf("expected List to be marked important, got %v", words.important)
	}

	words = &recordingWords{}
	parse(t, "Uses List here.", WithIndex(idx), WithWordIndexer(words))
	if len(words.words) != 0 {
		t.Errorf("expected no indexing without the search engine, got %v", words.words)
	}
}
