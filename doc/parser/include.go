package parser

import (
	"errors"
	"strings"
)

// handleInclude parses \include, \includelineno, \dontinclude,
// \htmlinclude and \verbinclude.
func (s *Session) handleInclude(para *Node, cmdName string, typ IncludeType) {
	if !s.expectWhitespace(cmdName) {
		return
	}
	s.setMode(ModeFile)
	tok := s.next()
	s.setMode(ModePara)
	switch tok.Kind {
	case TokenWord:
	case TokenEOF:
		s.warn(InvalidArgument, "unexpected end of comment block while parsing the argument of command %s", cmdName)
		return
	default:
		s.warn(InvalidArgument, "unexpected token %s as the argument of %s", tok.Kind, cmdName)
		return
	}

	inc := &Include{
		Type:        typ,
		File:        tok.Name,
		Context:     s.context,
		IsExample:   s.isExample,
		ExampleFile: s.exampleName,
	}
	inc.Text = s.readTextFile(tok.Name)
	para.AddChild(s.node(KindInclude, inc))
	switch typ {
	case IncludePlain, IncludeWithLines, IncludeDontInclude:
		s.includeText = inc.Text
		s.includeOffset = 0
	}
}

// readTextFile returns the contents of an example file, or "" after
// reporting why it could not be read.
func (s *Session) readTextFile(name string) string {
	if s.files == nil {
		s.warn(InvalidArgument, "included file %s is not found. Check your EXAMPLE_PATH", name)
		return ""
	}
	text, err := s.files.Read(name, FileExample)
	if err == nil {
		return text
	}
	var ambiguous *AmbiguousFileError
	if errors.As(err, &ambiguous) {
		s.warn(InvalidArgument, "included file name %s is ambigious. Possible candidates: %s", name, strings.Join(ambiguous.Candidates, ", "))
		return ""
	}
	if !errors.Is(err, ErrFileNotFound) {
		log.Warningf("reading %s: %s", name, err)
	}
	s.warn(InvalidArgument, "included file %s is not found. Check your EXAMPLE_PATH", name)
	return ""
}

// handleIncludeOperator parses \line, \skip, \skipline and \until, which
// walk through the file of the last \include or \dontinclude.
func (s *Session) handleIncludeOperator(para *Node, cmdName string, typ IncOperatorType) {
	if !s.expectWhitespace(cmdName) {
		return
	}
	s.setMode(ModePattern)
	tok := s.next()
	s.setMode(ModePara)
	switch tok.Kind {
	case TokenWord:
	case TokenEOF:
		s.warn(InvalidArgument, "unexpected end of comment block while parsing the argument of command %s", cmdName)
		return
	default:
		s.warn(InvalidArgument, "unexpected token %s as the argument of %s", tok.Kind, cmdName)
		return
	}

	op := &IncOperator{
		Type:        typ,
		Pattern:     tok.Name,
		Context:     s.context,
		IsExample:   s.isExample,
		ExampleFile: s.exampleName,
		Last:        true,
	}
	var n1, n2 *Node
	if k := len(para.Children); k > 0 {
		n1 = para.Children[k-1]
		if k > 1 {
			n2 = para.Children[k-2]
		}
	}
	switch {
	case n1 == nil:
		op.First = true
	case n1.Kind == KindIncOperator:
		n1.Data.(*IncOperator).Last = false
	case n1.Kind == KindWhiteSpace && n2 != nil && n2.Kind == KindIncOperator:
		n2.Data.(*IncOperator).Last = false
	default:
		op.First = true
	}
	para.AddChild(s.node(KindIncOperator, op))
	s.applyIncOperator(op)
}

// nextLine scans text from o to the end of the next line that has
// content. nonEmpty carries over between calls of one operator. It
// returns the start of that line and the offset of its newline.
func nextLine(text string, o int, nonEmpty *bool) (start, end int) {
	start = o
	for o < len(text) {
		switch c := text[o]; {
		case c == '\n':
			if *nonEmpty {
				return start, o
			}
			start = o + 1
		case !isSpace(c):
			*nonEmpty = true
		}
		o++
	}
	return start, o
}

// applyIncOperator selects the operator's text from the current include
// file and moves the include position past it.
func (s *Session) applyIncOperator(op *IncOperator) {
	text, o := s.includeText, s.includeOffset
	l := len(text)
	nonEmpty := false
	switch op.Type {
	case IncLine:
		so, eo := nextLine(text, o, &nonEmpty)
		if strings.Contains(text[so:eo], op.Pattern) {
			op.Text = text[so:eo]
		}
		s.includeOffset = min(l, eo+1)
	case IncSkipLine, IncSkip, IncUntil:
		bo, so := o, o
	scan:
		for o < l {
			so, o = nextLine(text, o, &nonEmpty)
			if strings.Contains(text[so:o], op.Pattern) {
				switch op.Type {
				case IncSkipLine:
					op.Text = text[so:o]
				case IncUntil:
					op.Text = text[bo:o]
				}
				break scan
			}
			o++
		}
		if op.Type == IncSkip {
			s.includeOffset = so
		} else {
			s.includeOffset = min(l, o+1)
		}
	}
}
