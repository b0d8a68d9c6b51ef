package grammar

import (
	"slices"
	"sort"
	"strings"
	"testing"

	"github.com/dhamidi/docparse/doc/parser"
)

func TestLoad(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatalf("load: %v", Errors(err))
	}
	if err := Check(g, Start); err != nil {
		t.Fatalf("check: %v", Errors(err))
	}
}

func TestCommandTableMatchesParser(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	names, err := Alternatives(g, "commandName")
	if err != nil {
		t.Fatal(err)
	}
	escapes, err := Alternatives(g, "escapeChar")
	if err != nil {
		t.Fatal(err)
	}
	got := append(names, escapes...)
	sort.Strings(got)

	want := parser.CommandNames()
	if !slices.Equal(got, want) {
		for _, name := range want {
			if !slices.Contains(got, name) {
				t.Errorf("command %q is missing from the grammar", name)
			}
		}
		for _, name := range got {
			if !parser.IsCommand(name) {
				t.Errorf("grammar lists unknown command %q", name)
			}
		}
	}
}

func TestCheck_Errors(t *testing.T) {
	tests := []struct {
		name    string
		grammar string
		start   string
		want    string
	}{
		{"missing production", `A = B .`, "A", "missing production B"},
		{"unreachable", `A = "a" . C = "c" .`, "A", "C is unreachable"},
		{"no start", `A = "a" .`, "S", "no start production S"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Parse("test.ebnf", strings.NewReader(tt.grammar))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			errs := Errors(Check(g, tt.start))
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %v", errs)
			}
			if !strings.Contains(errs[0].Error(), tt.want) {
				t.Errorf("expected %q, got %q", tt.want, errs[0])
			}
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse("bad.ebnf", strings.NewReader(`A = "a"`))
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	if len(Errors(err)) == 0 {
		t.Errorf("expected the individual errors to be listed")
	}
}

func TestScanner(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "mixed markup",
			input: "\\b bold &amp; <em>x</em> http://a.b\n\nnext",
			want: []string{
				"Command", "Whitespace", "Word", "Whitespace", "Entity", "Whitespace",
				"HTMLTag", "Word", "HTMLTag", "Whitespace", "URL", "NewParagraph", "Word",
			},
		},
		{
			name:  "email",
			input: "mail user@example.com.",
			want:  []string{"Word", "Whitespace", "Email", "Word"},
		},
		{
			name:  "param direction and escape",
			input: "\\param[in,out] x \\@",
			want:  []string{"Command", "Whitespace", "Word", "Whitespace", "Escape"},
		},
		{
			name:  "html comment and tag attributes",
			input: "<!-- a - b --><a href=\"x.html\" id=top>",
			want:  []string{"HTMLComment", "HTMLTag"},
		},
		{
			name:  "unmatched byte",
			input: "\x01",
			want:  []string{"ERROR"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMarkupScanner([]byte(tt.input), "test")
			if err != nil {
				t.Fatal(err)
			}
			var kinds []string
			for _, tok := range s.All() {
				kinds = append(kinds, tok.Kind)
			}
			if !slices.Equal(kinds, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, kinds)
			}
		})
	}
}

func TestScanner_Positions(t *testing.T) {
	s, err := NewMarkupScanner([]byte("one\n\ntwo"), "x.h")
	if err != nil {
		t.Fatal(err)
	}
	toks := s.All()
	last := toks[len(toks)-1]
	if last.Literal != "two" || last.Position.Line != 3 || last.Position.Column != 1 {
		t.Errorf("unexpected last token %s", last)
	}
	if got := last.Position.String(); got != "x.h:3:1" {
		t.Errorf("unexpected position %s", got)
	}
}
