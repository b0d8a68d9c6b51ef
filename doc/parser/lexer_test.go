package parser

import (
	"testing"
)

func lexAll(t *testing.T, l *Lexer) []Token {
	t.Helper()
	var toks []Token
	for i := 0; i < 100; i++ {
		tok := l.Next()
		if tok.Kind == TokenEOF {
			return toks
		}
		toks = append(toks, tok)
	}
	t.Fatalf("lexer did not reach the end of input")
	return nil
}

func lex(t *testing.T, input string, mode Mode) []Token {
	t.Helper()
	l := NewLexer()
	l.Init(input, "test.h", 1)
	l.SetMode(mode)
	return lexAll(t, l)
}

type wantToken struct {
	kind TokenKind
	name string
}

func TestLexer_Para(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []wantToken
	}{
		{
			name:  "words and paragraph break",
			input: "Hello  world\n\nnext",
			want: []wantToken{
				{TokenLinkedWord, "Hello"},
				{TokenWhitespace, ""},
				{TokenLinkedWord, "world"},
				{TokenNewPara, ""},
				{TokenLinkedWord, "next"},
			},
		},
		{
			name:  "command",
			input: "\\b bold",
			want: []wantToken{
				{TokenCommand, "b"},
				{TokenWhitespace, ""},
				{TokenLinkedWord, "bold"},
			},
		},
		{
			name:  "escape",
			input: "a\\@b",
			want: []wantToken{
				{TokenLinkedWord, "a"},
				{TokenCommand, "@"},
				{TokenLinkedWord, "b"},
			},
		},
		{
			name:  "entity",
			input: "&copy;",
			want:  []wantToken{{TokenSymbol, "&copy;"}},
		},
		{
			name:  "url with trailing period",
			input: "http://example.com/a.",
			want: []wantToken{
				{TokenURL, "http://example.com/a"},
				{TokenWord, "."},
			},
		},
		{
			name:  "list item",
			input: " - item",
			want: []wantToken{
				{TokenListItem, ""},
				{TokenLinkedWord, "item"},
			},
		},
		{
			name:  "end of list",
			input: "  .\n",
			want: []wantToken{
				{TokenEndList, ""},
				{TokenWhitespace, ""},
			},
		},
		{
			name:  "html comment is skipped",
			input: "<!-- hidden -->x",
			want:  []wantToken{{TokenLinkedWord, "x"}},
		},
		{
			name:  "java link",
			input: "{@link Foo}",
			want: []wantToken{
				{TokenCommand, "javalink"},
				{TokenWhitespace, ""},
				{TokenWord, "Foo}"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lex(t, tt.input, ModePara)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d tokens, got %d: %+v", len(tt.want), len(got), got)
			}
			for i, w := range tt.want {
				if got[i].Kind != w.kind {
					t.Errorf("token %d: expected %s, got %s", i, w.kind, got[i].Kind)
				}
				if w.name != "" && got[i].Name != w.name {
					t.Errorf("token %d: expected name %q, got %q", i, w.name, got[i].Name)
				}
			}
		})
	}
}

func TestLexer_TokenDetails(t *testing.T) {
	toks := lex(t, "<a href=\"x.html\" class=big>", ModePara)
	if len(toks) != 1 || toks[0].Kind != TokenHTMLTag || toks[0].Name != "a" {
		t.Fatalf("unexpected tokens %+v", toks)
	}
	if v, _ := AttrValue(toks[0].Attrs, "href"); v != "x.html" {
		t.Errorf("href: got %q", v)
	}
	if v, _ := AttrValue(toks[0].Attrs, "class"); v != "big" {
		t.Errorf("class: got %q", v)
	}

	toks = lex(t, "</td>", ModePara)
	if !toks[0].EndTag || toks[0].Name != "td" {
		t.Errorf("expected an end tag, got %+v", toks[0])
	}

	toks = lex(t, "\\param[in,out] x", ModePara)
	if toks[0].Name != "param" || toks[0].Dir != DirInOut {
		t.Errorf("expected param with direction in,out, got %+v", toks[0])
	}

	toks = lex(t, "\\form#3", ModePara)
	if toks[0].Name != "form" || toks[0].ID != 3 {
		t.Errorf("expected formula 3, got %+v", toks[0])
	}

	toks = lex(t, "user@example.com", ModePara)
	if toks[0].Kind != TokenURL || !toks[0].IsEmail {
		t.Errorf("expected an email address, got %+v", toks[0])
	}

	toks = lex(t, "\t- x", ModePara)
	if toks[0].Kind != TokenListItem || toks[0].Indent != tabSize {
		t.Errorf("expected a list item at column %d, got %+v", tabSize, toks[0])
	}

	toks = lex(t, "$Id: file.c 42 $", ModePara)
	if toks[0].Kind != TokenRCSTag || toks[0].Name != "Id" || toks[0].Text != "file.c 42" {
		t.Errorf("expected an rcs tag, got %+v", toks[0])
	}
}

func TestLexer_Title(t *testing.T) {
	toks := lex(t, " \"A b\" rest", ModeTitle)
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %+v", toks)
	}
	if toks[0].Name != "A" || toks[1].Kind != TokenWhitespace || toks[2].Name != "b" {
		t.Errorf("unexpected tokens %+v", toks)
	}

	toks = lex(t, "Caption text width=10\nnext", ModeTitle)
	if len(toks) != 4 {
		t.Fatalf("expected the title to stop at width=, got %+v", toks)
	}
}

func TestLexer_TitleAttr(t *testing.T) {
	toks := lex(t, "width=10 height=5\nnext", ModeTitleAttr)
	if len(toks) != 2 {
		t.Fatalf("expected 2 options, got %+v", toks)
	}
	if toks[0].Name != "width" || toks[0].Chars != "10" || toks[1].Name != "height" || toks[1].Chars != "5" {
		t.Errorf("unexpected options %+v", toks)
	}
}

func TestLexer_Param(t *testing.T) {
	l := NewLexer()
	l.Init("a, b description", "test.h", 1)
	l.SetMode(ModeParam)
	for _, want := range []string{"a", "b"} {
		if tok := l.Next(); tok.Kind != TokenWord || tok.Name != want {
			t.Fatalf("expected %q, got %+v", want, tok)
		}
	}
	if tok := l.Next(); tok.Kind != TokenWhitespace {
		t.Fatalf("expected whitespace after the names, got %+v", tok)
	}
}

func TestLexer_Ref(t *testing.T) {
	l := NewLexer()
	l.Init("sec1 \"the text\" after", "test.h", 1)
	l.SetMode(ModeRef)
	if tok := l.Next(); tok.Kind != TokenWord || tok.Name != "sec1" {
		t.Fatalf("expected the target, got %+v", tok)
	}
	toks := lexAll(t, l)
	if len(toks) != 3 || toks[0].Name != "the" || toks[2].Name != "text" {
		t.Errorf("unexpected text tokens %+v", toks)
	}

	l.Init("Foo.", "test.h", 1)
	l.SetMode(ModeRef)
	if tok := l.Next(); tok.Name != "Foo" {
		t.Errorf("expected trailing punctuation to be dropped, got %q", tok.Name)
	}
}

func TestLexer_Verbatim(t *testing.T) {
	l := NewLexer()
	l.Init("x = 1;\n\\endcode rest", "test.h", 1)
	l.SetMode(ModeCode)
	tok := l.Next()
	if tok.Kind != TokenVerbatim || tok.Text != "x = 1;\n" {
		t.Fatalf("unexpected token %+v", tok)
	}
	if l.Line() != 2 {
		t.Errorf("expected line 2 after the block, got %d", l.Line())
	}

	l.Init("no end", "test.h", 1)
	l.SetMode(ModeVerbatim)
	if tok := l.Next(); tok.Kind != TokenEOF || tok.Text != "no end" {
		t.Errorf("expected EOF with the rest of the input, got %+v", tok)
	}
}

func TestLexer_PushPopState(t *testing.T) {
	l := NewLexer()
	l.Init("outer words", "a.h", 3)
	l.Next()

	l.PushState()
	l.Init("inner\ntext", "b.h", 1)
	lexAll(t, l)
	if l.Line() != 2 {
		t.Errorf("expected line 2 in the nested input, got %d", l.Line())
	}
	l.PopState()

	if l.Line() != 3 {
		t.Errorf("expected line 3 after restore, got %d", l.Line())
	}
	toks := lexAll(t, l)
	if len(toks) != 2 || toks[1].Name != "words" {
		t.Errorf("expected to resume the outer input, got %+v", toks)
	}
}
