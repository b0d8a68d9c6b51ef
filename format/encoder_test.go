package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dhamidi/docparse/doc/parser"
)

func parseQuiet(t *testing.T, input string) *parser.Node {
	t.Helper()
	sink := &parser.Collector{}
	doc := parser.Parse(input, parser.WithSink(sink), parser.WithFile("test.h"))
	if sink.Count() != 0 {
		t.Fatalf("unexpected warnings: %v", sink.Diagnostics())
	}
	return doc.Root
}

func TestTreePrinter_MatchesNodeString(t *testing.T) {
	root := parseQuiet(t, "A <b>bold</b> word.\n\n- one\n- two")

	var buf bytes.Buffer
	if err := NewTreePrinter(&buf).Encode(root); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got, want := buf.String(), root.String(); got != want {
		t.Errorf("tree mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestJSONEncoder(t *testing.T) {
	root := parseQuiet(t, "Tom &amp; Jerry")

	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(root); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var got JSONNode
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Kind != "Root" {
		t.Fatalf("expected Root, got %s", got.Kind)
	}
	if len(got.Children) != 1 || got.Children[0].Kind != "Para" {
		t.Fatalf("expected one paragraph, got %+v", got.Children)
	}

	var texts []string
	var entities []string
	for _, c := range got.Children[0].Children {
		switch c.Kind {
		case "Word", "LinkedWord":
			texts = append(texts, c.Attrs["text"].(string))
		case "Symbol":
			entities = append(entities, c.Attrs["entity"].(string))
		}
	}
	if len(texts) != 2 || texts[0] != "Tom" || texts[1] != "Jerry" {
		t.Errorf("unexpected words %v", texts)
	}
	if len(entities) != 1 || entities[0] != "&amp;" {
		t.Errorf("unexpected symbols %v", entities)
	}
}

func TestJSONEncoder_ParamNames(t *testing.T) {
	root := parseQuiet(t, "\\param count how many")

	lists := NodeJSON(root)
	var found *JSONNode
	var find func(n *JSONNode)
	find = func(n *JSONNode) {
		if n.Kind == "ParamList" {
			found = n
		}
		for _, c := range n.Children {
			find(c)
		}
	}
	find(lists)
	if found == nil {
		t.Fatalf("no ParamList in output")
	}
	if len(found.Params) != 1 || found.Params[0].Attrs["text"] != "count" {
		t.Errorf("unexpected params %+v", found.Params)
	}
}

func TestTextEncoder(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "paragraphs and entities",
			input: "Tom &amp; <b>Jerry</b>\n\nSecond para.",
			want:  "Tom & Jerry\n\nSecond para.\n",
		},
		{
			name:  "list",
			input: "Items:\n - one\n - two",
			want:  "Items:\n- one\n- two\n",
		},
		{
			name:  "simple list",
			input: "\\li one \\li two",
			want:  "- one\n- two\n",
		},
		{
			name:  "sections",
			input: "Adds.\n\\param a first\n\\return sum",
			want:  "Adds.\n\nParameters:\n  a  first\n\nReturns:\nsum\n",
		},
		{
			name:  "escaped characters",
			input: "a\\@b \\< c",
			want:  "a@b < c\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseQuiet(t, tt.input)
			var buf bytes.Buffer
			if err := NewTextEncoder(&buf).Encode(root); err != nil {
				t.Fatalf("encode: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestPlainText_Empty(t *testing.T) {
	if got := PlainText(parseQuiet(t, "")); got != "" {
		t.Errorf("expected no text, got %q", got)
	}
}
