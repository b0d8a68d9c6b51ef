package parser

import (
	"slices"
	"strings"
)

// handleCopy expands \copydoc, \copybrief and \copydetails by parsing the
// target's stored documentation into a Copy node below para.
func (s *Session) handleCopy(para *Node, cmdName string, cmd command) {
	tok, ok := s.expectWordArgument(cmdName)
	if !ok {
		return
	}
	def, brief, detailed, ok := s.findDocs(tok.Name)
	if !ok {
		s.warn(UnresolvedReference, "target %s of \\%s command not found", tok.Name, cmdName)
		return
	}
	name := def.QualifiedName()
	if slices.Contains(s.copyStack, name) {
		s.warn(RecursionDetected, "recursive call chain of \\%s commands detected at %d", cmdName, s.tok.Line())
		return
	}

	c := &Copy{
		Target:  name,
		Brief:   cmd == cmdCopyDoc || cmd == cmdCopyBrief,
		Details: cmd == cmdCopyDoc || cmd == cmdCopyDetails,
	}
	n := s.node(KindCopy, c)
	para.AddChild(n)

	context := name
	if def.Kind == DefMember {
		context = def.Scope
	}
	s.expand(n, name, context, func() {
		if c.Brief {
			s.parseInto(n, brief)
		}
		if c.Details {
			s.parseInto(n, detailed)
		}
	})
}

// handleInheritDoc copies the detailed documentation of the member the
// current one reimplements.
func (s *Session) handleInheritDoc(para *Node) {
	m := s.member
	if m == nil || m.Reimplements == "" {
		return
	}
	res := s.index.Lookup(m.Reimplements, "")
	if res.Member == nil {
		s.warn(UnresolvedReference, "target %s of \\inheritdoc command not found", m.Reimplements)
		return
	}
	name := res.Member.QualifiedName()
	if slices.Contains(s.copyStack, name) {
		s.warn(RecursionDetected, "recursive call chain of \\inheritdoc commands detected at %d", s.tok.Line())
		return
	}
	_, detailed, ok := s.index.DocText(name)
	if !ok {
		return
	}
	s.expand(para, name, res.Member.Scope, func() {
		s.parseInto(para, detailed)
	})
}

// expand runs parse in a nested session whose scope is context and whose
// copy stack includes target.
func (s *Session) expand(n *Node, target, context string, parse func()) {
	if !s.descend() {
		return
	}
	defer s.ascend()

	log.Debugf("%s: expanding documentation of %s", s.fileName, target)
	s.push()
	s.clearStacks()
	s.context = context
	s.copyStack = append(s.copyStack, target)
	s.pushNode(n)
	parse()
	s.popNode(n)
	s.pop()
	log.Debugf("%s: done expanding %s", s.fileName, target)
}

// parseInto parses text as paragraphs appended to parent. The tokenizer
// must have been saved by push.
func (s *Session) parseInto(parent *Node, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	s.tok.Init(text, s.fileName, 1)
	s.setMode(ModePara)
	for {
		p := s.newPara(parent)
		r := s.parsePara(p)
		s.keepPara(parent, p)
		if r != stopNewPara {
			return
		}
	}
}

// handleXRefItem expands the text of a todo, test, bug, deprecated or
// user defined list item.
func (s *Session) handleXRefItem(para *Node) {
	if tok := s.next(); tok.Kind != TokenWhitespace {
		return
	}
	s.setMode(ModeXRefItem)
	tok := s.next()
	s.setMode(ModePara)
	if tok.Kind != TokenWord {
		return
	}
	key := tok.Name
	if !s.cfg.xrefEnabled(key) {
		return
	}
	lister, ok := s.index.(XRefLister)
	if !ok {
		return
	}
	entry, ok := lister.XRefItem(key, tok.ID)
	if !ok {
		return
	}

	x := &XRefItem{Key: key, ID: tok.ID, File: entry.File, Anchor: entry.Anchor, Title: entry.Title}
	if m := s.member; m != nil && strings.HasPrefix(m.Name, "@") {
		x.File, x.Anchor = "@", "@"
	}
	n := s.node(KindXRefItem, x)
	para.AddChild(n)

	s.push()
	s.clearStacks()
	s.pushNode(n)
	s.inSeeBlock = false
	s.parseInto(n, entry.Text)
	s.popNode(n)
	s.pop()
}

var indexSymbols = map[SymbolType]string{
	SymBSlash:  "\\",
	SymAt:      "@",
	SymLess:    "<",
	SymGreater: ">",
	SymAmp:     "&",
	SymDollar:  "$",
	SymHash:    "#",
	SymPercent: "%",
	SymApos:    "'",
	SymQuot:    "\"",
	SymLsquo:   "`",
	SymRsquo:   "'",
	SymLdquo:   "``",
	SymRdquo:   "''",
	SymNdash:   "--",
	SymMdash:   "---",
}

// parseIndexEntry reads the rest of an \addindex line as plain text.
func (s *Session) parseIndexEntry(ie *Node) stopReason {
	if tok := s.next(); tok.Kind != TokenWhitespace {
		s.warn(InvalidArgument, "expected whitespace after \\addindex command")
		return stopOK
	}
	var sb strings.Builder
	s.setMode(ModeTitle)
	for tok := s.next(); tok.Kind != TokenEOF; tok = s.next() {
		switch tok.Kind {
		case TokenWhitespace:
			sb.WriteByte(' ')
		case TokenWord, TokenLinkedWord:
			sb.WriteString(tok.Name)
		case TokenSymbol:
			typ, _ := DecodeSymbol(tok.Name)
			if text, ok := indexSymbols[typ]; ok {
				sb.WriteString(text)
				continue
			}
			s.warn(StructuralMismatch, "Unexpected symbol found as argument of \\addindex")
		case TokenCommand:
			if typ, ok := escapeCommand(tok.Name); ok {
				if text, ok := indexSymbols[typ]; ok {
					sb.WriteString(text)
					continue
				}
			}
			s.warn(InvalidArgument, "Unexpected command %s found as argument of \\addindex", tok.Name)
		default:
			s.warn(StructuralMismatch, "Unexpected token %s", tok.Kind)
		}
	}
	s.setMode(ModePara)
	ie.Data.(*IndexEntry).Entry = strings.TrimSpace(sb.String())
	return stopOK
}
