package comment

import (
	"strings"
)

// scanner walks a source file, skipping string and character literals so
// that comment markers inside them are ignored.
type scanner struct {
	input []rune
	pos   int
	len   int
	line  int
}

// Extract returns the documentation comments of src in source order.
// Consecutive "///" or "//!" lines form one block. Plain comments, and
// "////" or "/***" rulers, are skipped.
func Extract(src string) []Block {
	s := &scanner{input: []rune(src), line: 1}
	s.len = len(s.input)

	var blocks []Block
	for s.pos < s.len {
		switch {
		case s.peek() == '"' || s.peek() == '\'':
			s.skipLiteral(s.peek())
		case s.match("/*"):
			if b, ok := s.blockComment(); ok {
				blocks = append(blocks, b)
			}
		case s.match("//"):
			if b, ok := s.lineComments(); ok {
				blocks = append(blocks, b)
			}
		default:
			s.advance(1)
		}
	}
	return blocks
}

func (s *scanner) peek() rune {
	return s.peekAt(0)
}

func (s *scanner) peekAt(offset int) rune {
	pos := s.pos + offset
	if pos >= s.len || pos < 0 {
		return 0
	}
	return s.input[pos]
}

// advance moves n runes forward, counting lines.
func (s *scanner) advance(n int) {
	for i := 0; i < n && s.pos < s.len; i++ {
		if s.input[s.pos] == '\n' {
			s.line++
		}
		s.pos++
	}
}

func (s *scanner) match(prefix string) bool {
	i := 0
	for _, ch := range prefix {
		if s.peekAt(i) != ch {
			return false
		}
		i++
	}
	return true
}

func (s *scanner) skipLiteral(quote rune) {
	s.advance(1)
	for s.pos < s.len {
		switch s.peek() {
		case '\\':
			s.advance(2)
		case quote:
			s.advance(1)
			return
		case '\n':
			// unterminated literal
			return
		default:
			s.advance(1)
		}
	}
}

func (s *scanner) blockComment() (Block, bool) {
	start, line := s.pos, s.line
	doc := (s.match("/**") && !s.match("/**/") && s.peekAt(3) != '*') || s.match("/*!")
	s.advance(2)
	for s.pos < s.len && !s.match("*/") {
		s.advance(1)
	}
	s.advance(2)
	if !doc {
		return Block{}, false
	}

	raw := string(s.input[start:s.pos])
	style := StyleJavaDoc
	if raw[2] == '!' {
		style = StyleQt
	}
	text, skipped := Strip(raw)
	return Block{
		Text:    text,
		Line:    line + skipped,
		EndLine: s.line,
		Style:   style,
		After:   strings.HasPrefix(raw[3:], "<"),
	}, true
}

// lineComments collects a run of "///" or "//!" comments on consecutive
// lines.
func (s *scanner) lineComments() (Block, bool) {
	marker := ""
	switch {
	case s.match("////"):
	case s.match("///"):
		marker = "///"
	case s.match("//!"):
		marker = "//!"
	}
	if marker == "" {
		s.skipLine()
		return Block{}, false
	}

	line := s.line
	after := s.peekAt(3) == '<'
	var raw []string
	for {
		begin := s.pos
		s.skipLine()
		raw = append(raw, string(s.input[begin:s.pos]))
		endLine := s.line
		if !s.nextLineStartsWith(marker) {
			style := StyleTripleSlash
			if marker == "//!" {
				style = StyleBang
			}
			text, skipped := Strip(strings.Join(raw, "\n"))
			return Block{Text: text, Line: line + skipped, EndLine: endLine, Style: style, After: after}, true
		}
	}
}

// skipLine moves to the end of the current line, leaving the newline.
func (s *scanner) skipLine() {
	for s.pos < s.len && s.peek() != '\n' {
		s.advance(1)
	}
}

// nextLineStartsWith consumes the newline and indentation before the
// next comment of the run, if the next line continues it.
func (s *scanner) nextLineStartsWith(marker string) bool {
	if s.peek() != '\n' {
		return false
	}
	i := 1
	for s.peekAt(i) == ' ' || s.peekAt(i) == '\t' {
		i++
	}
	for j, ch := range marker {
		if s.peekAt(i+j) != ch {
			return false
		}
	}
	if s.peekAt(i+len(marker)) == '/' && marker == "///" {
		return false
	}
	s.advance(i)
	return true
}
