package comment

import (
	"testing"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		skipped int
	}{
		{
			name:    "javadoc",
			raw:     "/**\n * Brief.\n *\n * Details.\n */",
			want:    "Brief.\n\nDetails.",
			skipped: 1,
		},
		{
			name: "qt single line",
			raw:  "/*! Brief. */",
			want: "Brief.",
		},
		{
			name: "member after",
			raw:  "/**< the count */",
			want: "the count",
		},
		{
			name: "triple slash",
			raw:  "/// one\n/// two",
			want: "one\ntwo",
		},
		{
			name:    "lines without asterisks keep indentation",
			raw:     "/*!\n  - a\n  - b\n*/",
			want:    "  - a\n  - b",
			skipped: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, skipped := Strip(tt.raw)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if skipped != tt.skipped {
				t.Errorf("expected %d skipped lines, got %d", tt.skipped, skipped)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	src := `#include <stdio.h>

/* plain comment */
const char *s = "/** not a comment */";

/**
 * Adds two numbers.
 * \param a first
 */
int add(int a, int b);

/// Line one.
/// Line two.
int x; ///< the x

//! Qt style.
////////////////
/***************/
`
	blocks := Extract(src)
	if len(blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d: %+v", len(blocks), blocks)
	}

	if blocks[0].Text != "Adds two numbers.\n\\param a first" {
		t.Errorf("block 0: unexpected text %q", blocks[0].Text)
	}
	if blocks[0].Line != 7 || blocks[0].EndLine != 9 || blocks[0].Style != StyleJavaDoc {
		t.Errorf("block 0: unexpected position %+v", blocks[0])
	}

	if blocks[1].Text != "Line one.\nLine two." || blocks[1].Line != 12 || blocks[1].Style != StyleTripleSlash {
		t.Errorf("block 1: unexpected %+v", blocks[1])
	}

	if blocks[2].Text != "the x" || !blocks[2].After || blocks[2].Line != 14 {
		t.Errorf("block 2: unexpected %+v", blocks[2])
	}

	if blocks[3].Text != "Qt style." || blocks[3].Style != StyleBang || blocks[3].Line != 16 {
		t.Errorf("block 3: unexpected %+v", blocks[3])
	}
}

func TestExtract_UnterminatedComment(t *testing.T) {
	blocks := Extract("/** open\n * more")
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Text != "open\nmore" {
		t.Errorf("unexpected text %q", blocks[0].Text)
	}
}
