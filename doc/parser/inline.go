package parser

import (
	"strconv"
	"strings"
)

// styleCommands maps the one-word style commands to their style.
var styleCommands = map[command]Style{
	cmdEmphasis: StyleItalic,
	cmdBold:     StyleBold,
	cmdCode:     StyleCode,
}

// argumentTerminators end the argument of a style command when they
// appear as a word of their own.
const argumentTerminators = ".,|()[]:;?"

// keepsWhitespace reports whether whitespace is significant at this point
// of parent: inside <pre>, or after some other content.
func keepsWhitespace(parent *Node) bool {
	return parent.Preformatted() || !parent.IsEmpty()
}

// within reports whether n or one of its ancestors has one of the kinds.
func within(n *Node, kinds ...Kind) bool {
	for p := n; p != nil; p = p.parent {
		for _, k := range kinds {
			if p.Kind == k {
				return true
			}
		}
	}
	return false
}

func insideList(n *Node, ordered bool) bool {
	for p := n; p != nil; p = p.parent {
		if l, ok := p.Data.(*HTMLList); ok && l.Ordered == ordered {
			return true
		}
	}
	return false
}

func (s *Session) addSymbol(parent *Node, typ SymbolType, letter byte) {
	parent.AddChild(s.node(KindSymbol, &Symbol{Type: typ, Letter: letter}))
}

func (s *Session) addWhiteSpace(parent *Node, chars string) {
	parent.AddChild(s.node(KindWhiteSpace, &WhiteSpace{Chars: chars}))
}

func (s *Session) addURL(parent *Node, tok Token) {
	if s.insideHTMLLink {
		s.addWord(parent, tok.Name)
		return
	}
	parent.AddChild(s.node(KindURL, &URL{Text: tok.Name, IsEmail: tok.IsEmail}))
}

// defaultHandleToken handles the tokens allowed in titles, captions and
// other single-line contexts. It reports whether tok was consumed.
func (s *Session) defaultHandleToken(parent *Node, tok Token, handleWord bool) bool {
	for {
		switch tok.Kind {
		case TokenCommand:
			if typ, ok := escapeCommand(tok.Name); ok {
				s.addSymbol(parent, typ, 0)
				return true
			}
			cmd := lookupCommand(tok.Name)
			switch cmd {
			case cmdEmphasis, cmdBold, cmdCode:
				if s.handleStyleCommand(parent, styleCommands[cmd], tok.Name) == stopReparse {
					switch s.token.Kind {
					case TokenWord, TokenHTMLTag, TokenNewPara:
						tok = s.token
						continue
					}
				}
			case cmdHTMLOnly:
				s.handleVerbatim(parent, ModeHTMLOnly, VerbatimHTMLOnly)
			case cmdManOnly:
				s.handleVerbatim(parent, ModeManOnly, VerbatimManOnly)
			case cmdLatexOnly:
				s.handleVerbatim(parent, ModeLatexOnly, VerbatimLatexOnly)
			case cmdXMLOnly:
				s.handleVerbatim(parent, ModeXMLOnly, VerbatimXMLOnly)
			case cmdFormula:
				s.addFormula(parent, tok.ID)
			case cmdAnchor:
				s.handleAnchor(parent, tok.Name)
			case cmdInternalRef:
				s.handleInternalRef(parent, tok.Name)
			default:
				return false
			}
		case TokenHTMLTag:
			t := lookupTag(tok.Name)
			switch t {
			case tagDiv, tagPre:
				s.warn(StructuralMismatch, "found <%s> tag in heading", strings.ToLower(tok.Name))
			case tagBold, tagCode, tagEmphasis, tagSub, tagSup, tagCenter, tagSmall:
				if tok.EndTag {
					s.styleLeave(parent, styleTags[t], tok.Name)
				} else {
					s.styleEnter(parent, styleTags[t], tok.Attrs)
				}
			default:
				return false
			}
		case TokenSymbol:
			typ, letter := DecodeSymbol(tok.Name)
			if typ == SymUnknown {
				return false
			}
			s.addSymbol(parent, typ, letter)
		case TokenWhitespace, TokenNewPara:
			if keepsWhitespace(parent) {
				s.addWhiteSpace(parent, tok.Chars)
			}
		case TokenLinkedWord:
			if !handleWord {
				return false
			}
			s.handleLinkedWord(parent, tok.Name)
		case TokenWord:
			if !handleWord {
				return false
			}
			s.addWord(parent, tok.Name)
		case TokenURL:
			s.addURL(parent, tok)
		default:
			return false
		}
		return true
	}
}

// handleStyleCommand parses \b, \e or \c and the word that follows.
func (s *Session) handleStyleCommand(parent *Node, style Style, cmdName string) stopReason {
	parent.AddChild(s.styleChange(style, true, nil))
	r := s.handleStyleArgument(parent, cmdName)
	parent.AddChild(s.styleChange(style, false, nil))
	if r != stopReparse || s.token.Kind != TokenWord {
		s.addWhiteSpace(parent, " ")
	}
	return r
}

// handleStyleArgument parses the single-word argument of a style command.
// It returns stopReparse when the token that ended the argument must be
// handled by the caller; that token is s.token.
func (s *Session) handleStyleArgument(parent *Node, cmdName string) stopReason {
	if tok := s.next(); tok.Kind != TokenWhitespace {
		s.warn(InvalidArgument, "expected whitespace after %s command", cmdName)
		return stopReparse
	}
	for {
		tok := s.next()
		switch tok.Kind {
		case TokenEOF, TokenWhitespace:
			return stopOK
		case TokenNewPara, TokenListItem, TokenEndList:
			return stopReparse
		case TokenWord:
			if len(tok.Name) == 1 && strings.Contains(argumentTerminators, tok.Name) {
				return stopReparse
			}
		}
		if s.defaultHandleToken(parent, tok, true) {
			continue
		}
		switch tok.Kind {
		case TokenCommand:
			s.warn(InvalidArgument, "Illegal command \\%s as the argument of a \\%s command", tok.Name, cmdName)
		case TokenSymbol:
			s.warn(InvalidArgument, "Unsupported symbol %s found while handling command %s", tok.Name, cmdName)
		case TokenHTMLTag:
			if within(parent, KindHTMLListItem) && tok.EndTag && lookupTag(tok.Name) != tagUnknown {
				continue
			}
			return stopReparse
		default:
			s.warn(InvalidArgument, "Unexpected token %s while handling command %s", tok.Kind, cmdName)
		}
		return stopOK
	}
}

// handleVerbatim reads a raw block in the given tokenizer mode. It returns
// stopEOF when the block has no end marker.
func (s *Session) handleVerbatim(parent *Node, mode Mode, typ VerbatimType) stopReason {
	prev := s.mode
	s.setMode(mode)
	tok := s.next()
	text := tok.Text
	if typ == VerbatimCode {
		text = stripLeadingBlankLines(text)
	}
	parent.AddChild(s.node(KindVerbatim, &Verbatim{
		Type:        typ,
		Text:        text,
		Context:     s.context,
		IsExample:   s.isExample,
		ExampleFile: s.exampleName,
	}))
	s.setMode(prev)
	if tok.Kind == TokenEOF {
		s.warn(StructuralMismatch, "%s section ended without end marker", typ)
		return stopEOF
	}
	return stopOK
}

// stripLeadingBlankLines drops the blank lines that open a code block.
func stripLeadingBlankLines(text string) string {
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			start = i + 1
		case ' ', '\t', '\r':
		default:
			return text[start:]
		}
	}
	return text[start:]
}

func (s *Session) addFormula(parent *Node, id int) {
	f := &Formula{ID: id, Name: "form_" + strconv.Itoa(id), Text: "\\form#" + strconv.Itoa(id)}
	if ft, ok := s.index.(FormulaTable); ok {
		if text, ok := ft.Formula(id); ok {
			f.Text = text
		}
	}
	parent.AddChild(s.node(KindFormula, f))
}

// expectWordArgument reads the whitespace and the word argument of a
// command, reporting what is missing.
func (s *Session) expectWordArgument(cmdName string) (Token, bool) {
	if tok := s.next(); tok.Kind != TokenWhitespace {
		s.warn(InvalidArgument, "expected whitespace after %s command", cmdName)
		return tok, false
	}
	tok := s.next()
	switch tok.Kind {
	case TokenWord, TokenLinkedWord:
		return tok, true
	case TokenEOF:
		s.warn(InvalidArgument, "unexpected end of comment block while parsing the argument of command %s", cmdName)
	default:
		s.warn(InvalidArgument, "unexpected token %s as the argument of %s", tok.Kind, cmdName)
	}
	return tok, false
}

func (s *Session) handleAnchor(parent *Node, cmdName string) {
	tok, ok := s.expectWordArgument(cmdName)
	if !ok {
		return
	}
	parent.AddChild(s.node(KindAnchor, s.newAnchor(tok.Name, false)))
}

// newAnchor builds an anchor. Anchors from <a name> are taken as is;
// \anchor labels must be known to the section table.
func (s *Session) newAnchor(id string, fromHTML bool) *Anchor {
	if id == "" {
		s.warn(InvalidArgument, "Empty anchor label")
	}
	a := &Anchor{ID: id}
	if fromHTML {
		a.Anchor = id
		return a
	}
	if sec, ok := s.index.Section(id); ok {
		a.File = sec.File
		a.Anchor = sec.Label
		return a
	}
	s.warn(UnresolvedReference, "Invalid anchor id `%s'", id)
	a.File = "invalid"
	a.Anchor = "invalid"
	return a
}
