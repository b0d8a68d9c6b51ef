package grammar

import (
	"fmt"
	"io"

	"golang.org/x/exp/ebnf"
)

// Position is a location in scanned input.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is one match of a token production.
type Token struct {
	Kind     string
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

type memoKey struct {
	name   string
	offset int
}

// Scanner splits input into the longest matches of a grammar's token
// productions. Equal-length matches go to the kind listed first.
type Scanner struct {
	grammar  ebnf.Grammar
	kinds    []string
	input    []byte
	filename string
	pos      int
	line     int
	column   int
	memo     map[memoKey]int  // match length, -1 for no match
	visiting map[memoKey]bool // left recursion guard
}

func NewScanner(g ebnf.Grammar, kinds []string, input []byte, filename string) *Scanner {
	return &Scanner{
		grammar:  g,
		kinds:    kinds,
		input:    input,
		filename: filename,
		line:     1,
		column:   1,
	}
}

// NewMarkupScanner scans input with the embedded grammar.
func NewMarkupScanner(input []byte, filename string) (*Scanner, error) {
	g, err := Load()
	if err != nil {
		return nil, err
	}
	kinds, err := TokenKinds(g, TokenProduction)
	if err != nil {
		return nil, err
	}
	return NewScanner(g, kinds, input, filename), nil
}

func (s *Scanner) Position() Position {
	return Position{
		Filename: s.filename,
		Offset:   s.pos,
		Line:     s.line,
		Column:   s.column,
	}
}

func (s *Scanner) advance() byte {
	if s.pos >= len(s.input) {
		return 0
	}
	ch := s.input[s.pos]
	s.pos++
	if ch == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return ch
}

// Next returns the next token, or io.EOF at the end of input. Bytes no
// production matches come back one at a time as ERROR tokens.
func (s *Scanner) Next() (Token, error) {
	if s.pos >= len(s.input) {
		return Token{Kind: "EOF", Position: s.Position()}, io.EOF
	}

	start := s.Position()
	s.memo = make(map[memoKey]int)

	var bestKind string
	bestLen := 0
	for _, name := range s.kinds {
		prod, ok := s.grammar[name]
		if !ok || prod.Expr == nil {
			continue
		}
		s.visiting = make(map[memoKey]bool)
		if n := s.match(prod.Expr, s.pos); n > bestLen {
			bestLen = n
			bestKind = name
		}
	}

	if bestLen == 0 {
		ch := s.advance()
		return Token{Kind: "ERROR", Literal: string(ch), Position: start}, nil
	}

	literal := string(s.input[s.pos : s.pos+bestLen])
	for i := 0; i < bestLen; i++ {
		s.advance()
	}
	return Token{Kind: bestKind, Literal: literal, Position: start}, nil
}

// All scans the rest of the input. The EOF token is not included.
func (s *Scanner) All() []Token {
	var tokens []Token
	for {
		tok, err := s.Next()
		if err != nil {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// match returns the length of the longest match of expr at offset, or 0.
// Repetitions are greedy and sequences do not backtrack.
func (s *Scanner) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		return s.matchLiteral(e.String, offset)

	case *ebnf.Range:
		return s.matchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := s.match(item, offset+total)
			if n == 0 && !optional(item) {
				return 0
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := 0
		for _, alt := range e {
			if n := s.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := s.match(e.Body, offset+total)
			if n == 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		return s.match(e.Body, offset)

	case *ebnf.Group:
		return s.match(e.Body, offset)

	case *ebnf.Name:
		return s.matchName(e.String, offset)
	}
	return 0
}

// optional reports whether expr may match the empty string.
func optional(expr ebnf.Expression) bool {
	switch expr.(type) {
	case *ebnf.Option, *ebnf.Repetition:
		return true
	}
	return false
}

func (s *Scanner) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := s.memo[key]; ok {
		if n < 0 {
			return 0
		}
		return n
	}
	if s.visiting[key] {
		return 0
	}
	prod, ok := s.grammar[name]
	if !ok || prod.Expr == nil {
		s.memo[key] = -1
		return 0
	}

	s.visiting[key] = true
	n := s.match(prod.Expr, offset)
	delete(s.visiting, key)

	if n == 0 {
		s.memo[key] = -1
	} else {
		s.memo[key] = n
	}
	return n
}

func (s *Scanner) matchLiteral(lit string, offset int) int {
	if offset+len(lit) > len(s.input) {
		return 0
	}
	if string(s.input[offset:offset+len(lit)]) == lit {
		return len(lit)
	}
	return 0
}

func (s *Scanner) matchRange(begin, end string, offset int) int {
	if offset >= len(s.input) || len(begin) != 1 || len(end) != 1 {
		return 0
	}
	if ch := s.input[offset]; ch >= begin[0] && ch <= end[0] {
		return 1
	}
	return 0
}
