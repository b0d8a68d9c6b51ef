package parser

import (
	"strings"
)

// parseInline reads single-line markup into n until the tokenizer ends
// the argument. what names the construct in warnings.
func (s *Session) parseInline(n *Node, what string) {
	s.pushNode(n)
	defer s.popNode(n)

	for {
		tok := s.next()
		if tok.Kind == TokenEOF {
			break
		}
		if s.defaultHandleToken(n, tok, true) {
			continue
		}
		switch tok.Kind {
		case TokenCommand:
			s.warn(InvalidArgument, "Illegal command %s as part of a %s", tok.Name, what)
		case TokenSymbol:
			s.warn(StructuralMismatch, "Unsupported symbol %s found", tok.Name)
		default:
			s.warn(StructuralMismatch, "Unexpected token %s", tok.Kind)
		}
	}
	s.flushPendingStyles(n)
}

// parseTitle reads the rest of the line, or a quoted string, as a title.
func (s *Session) parseTitle(title *Node) {
	s.setMode(ModeTitle)
	s.parseInline(title, "title section")
	s.setMode(ModePara)
}

// expectWhitespace consumes the blank that must follow cmdName.
func (s *Session) expectWhitespace(cmdName string) bool {
	if tok := s.next(); tok.Kind != TokenWhitespace {
		s.warn(InvalidArgument, "expected whitespace after %s command", cmdName)
		return false
	}
	return true
}

// newRef resolves target against the section table first and the symbol
// index second.
func (s *Session) newRef(target string) *Node {
	ref := &Ref{Target: target, RelPath: s.relPath}
	n := s.node(KindRef, ref)
	if sec, ok := s.index.Section(target); ok {
		ref.Text = sec.Title
		if ref.Text == "" {
			ref.Text = sec.Label
		}
		ref.File = s.stripExtension(sec.File)
		if sec.Kind != SectionPage {
			ref.Anchor = sec.Label
		}
		ref.ToAnchor = sec.Kind == SectionAnchor
		ref.ToSection = !ref.ToAnchor
		return n
	}
	if res, ok := s.resolve(target); ok {
		if def, file, anchor, text, ok := linkTarget(res); ok {
			switch {
			case def.Kind == DefFile:
				ref.Text = target
			case text != "":
				ref.Text = text
			default:
				ref.Text = linkText(target)
			}
			ref.File = file
			ref.Anchor = anchor
			ref.Ref = def.QualifiedName()
			return n
		}
	}
	ref.Text = linkText(target)
	s.warn(UnresolvedReference, "unable to resolve reference to `%s' for \\ref command", target)
	return n
}

func (s *Session) stripExtension(file string) string {
	if ext := s.cfg.HTMLFileExtension; ext != "" {
		return strings.TrimSuffix(file, ext)
	}
	return file
}

// handleRef parses \ref or \subpage: a target and an optional quoted text.
func (s *Session) handleRef(parent *Node, cmdName string) {
	if !s.expectWhitespace(cmdName) {
		return
	}
	s.setMode(ModeRef)
	defer s.setMode(ModePara)
	tok := s.next()
	if tok.Kind != TokenWord {
		s.warn(InvalidArgument, "unexpected token %s as the argument of %s", tok.Kind, cmdName)
		return
	}
	ref := s.newRef(tok.Name)
	parent.AddChild(ref)
	s.parseInline(ref, "\\ref")
}

// handleLink parses \link target text \endlink, or {@link target text}
// for Java style links. Text after the closing brace of a Java link is
// appended to parent.
func (s *Session) handleLink(parent *Node, cmdName string, java bool) {
	if !s.expectWhitespace(cmdName) {
		return
	}
	s.setMode(ModeLink)
	tok := s.next()
	s.setMode(ModePara)
	if tok.Kind != TokenWord {
		s.warn(InvalidArgument, "unexpected token %s as the argument of %s", tok.Kind, cmdName)
		return
	}
	link := s.newLink(tok.Name)
	parent.AddChild(link)
	if rest := s.parseLink(link, java); rest != "" {
		s.addWord(parent, rest)
	}
}

func (s *Session) newLink(target string) *Node {
	l := &Link{Target: target, RefText: strings.TrimPrefix(target, "#"), RelPath: s.relPath}
	n := s.node(KindLink, l)
	if res, ok := s.resolve(s.stripExtension(target)); ok {
		if def, file, anchor, _, ok := linkTarget(res); ok {
			l.File = file
			l.Anchor = anchor
			l.Ref = def.QualifiedName()
			return n
		}
	}
	s.warn(UnresolvedReference, "unable to resolve link to `%s' for \\link command", target)
	return n
}

func (s *Session) parseLink(link *Node, java bool) (rest string) {
	s.pushNode(link)
	defer s.popNode(link)

loop:
	for {
		tok := s.next()
		if tok.Kind == TokenEOF {
			s.warn(StructuralMismatch, "Unexpected end of comment while inside link command")
			break
		}
		if s.defaultHandleToken(link, tok, false) {
			continue
		}
		switch tok.Kind {
		case TokenCommand:
			if lookupCommand(tok.Name) == cmdEndLink {
				if java {
					s.warn(StructuralMismatch, "{@link.. ended with @endlink command")
				}
				break loop
			}
			s.warn(InvalidArgument, "Illegal command %s as part of a \\link", tok.Name)
		case TokenSymbol:
			s.warn(StructuralMismatch, "Unsupported symbol %s found", tok.Name)
		case TokenWord, TokenLinkedWord:
			if java {
				if i := strings.IndexByte(tok.Name, '}'); i >= 0 {
					if i > 0 {
						s.addWord(link, tok.Name[:i])
					}
					rest = tok.Name[i+1:]
					break loop
				}
			}
			s.addWord(link, tok.Name)
		default:
			s.warn(StructuralMismatch, "Unexpected token %s", tok.Kind)
		}
	}

	if link.IsEmpty() {
		s.addWord(link, link.Data.(*Link).RefText)
	}
	s.flushPendingStyles(link)
	return rest
}

// handleInternalRef parses \_internalref file#anchor text.
func (s *Session) handleInternalRef(parent *Node, cmdName string) {
	if !s.expectWhitespace(cmdName) {
		return
	}
	prev := s.mode
	s.setMode(ModeInternalRef)
	defer s.setMode(prev)
	tok := s.next()
	if tok.Kind != TokenWord && tok.Kind != TokenLinkedWord {
		s.warn(InvalidArgument, "unexpected token %s as the argument of %s", tok.Kind, cmdName)
		return
	}
	ir := &InternalRef{File: tok.Name, RelPath: s.relPath}
	if i := strings.IndexByte(tok.Name, '#'); i >= 0 {
		ir.File, ir.Anchor = tok.Name[:i], tok.Name[i+1:]
	}
	n := s.node(KindInternalRef, ir)
	parent.AddChild(n)
	s.parseInline(n, "\\ref")
}

// parseSecRefList parses \refitem entries up to \endsecreflist.
func (s *Session) parseSecRefList(list *Node) {
	s.pushNode(list)
	defer s.popNode(list)

	for tok := s.nextNonBlank(); tok.Kind != TokenEOF; tok = s.next() {
		switch tok.Kind {
		case TokenWhitespace, TokenNewPara:
		case TokenCommand:
			switch lookupCommand(tok.Name) {
			case cmdSecRefItem:
				s.handleSecRefItem(list, tok.Name)
			case cmdEndSecRefList:
				return
			default:
				s.warn(InvalidArgument, "Illegal command %s as part of a \\secreflist", tok.Name)
				return
			}
		default:
			s.warn(StructuralMismatch, "Unexpected token %s inside section reference list", tok.Kind)
			return
		}
	}
}

func (s *Session) handleSecRefItem(list *Node, cmdName string) {
	tok, ok := s.expectWordArgument(cmdName)
	if !ok {
		return
	}
	d := &SecRefItem{Target: tok.Name}
	item := s.node(KindSecRefItem, d)
	list.AddChild(item)
	s.setMode(ModeTitle)
	s.parseInline(item, "\\refitem")
	s.setMode(ModePara)

	if sec, ok := s.index.Section(d.Target); ok {
		d.File = sec.File
		d.Anchor = sec.Label
		return
	}
	s.warn(UnresolvedReference, "reference to unknown section %s", d.Target)
}
