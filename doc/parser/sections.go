package parser

// parseRoot parses a complete comment block into root.
func (s *Session) parseRoot(root *Node) {
	s.setMode(ModePara)
	s.pushNode(root)
	s.parseBody(root, 0, false)
	s.reportUnclosedStyles()
	s.popNode(root)
}

// parseBody parses the paragraphs of a block at the given heading level,
// then the sections one level below it. It returns what ended the block:
// the end of input or a heading at level or above.
func (s *Session) parseBody(parent *Node, level int, internal bool) stopReason {
	r := s.parseBlockParagraphs(parent, level, internal)
	for {
		switch {
		case r.sectionLevel() == level+1:
			sec := s.newSection(level + 1)
			if sec == nil {
				r = s.parseBlockParagraphs(parent, level, internal)
				continue
			}
			parent.AddChild(sec)
			r = s.parseSection(sec, level+1)
		case r == stopInternal && !internal:
			in := s.node(KindInternal, &Internal{Level: level + 1})
			parent.AddChild(in)
			s.pushNode(in)
			r = s.parseBody(in, level, true)
			s.popNode(in)
		default:
			return r
		}
	}
}

// parseBlockParagraphs parses paragraphs into parent up to the end of
// input, a heading that does not nest below level, or \internal. Headings
// that skip a level are reported and their content stays in parent.
func (s *Session) parseBlockParagraphs(parent *Node, level int, internal bool) stopReason {
	for {
		p := s.newPara(parent)
		r := s.parsePara(p)
		s.keepPara(parent, p)
		switch r {
		case stopEOF:
			return r
		case stopInternal:
			if !internal {
				return r
			}
			s.warn(StructuralMismatch, "\\internal command found inside internal section")
		case stopListItem:
			s.warn(StructuralMismatch, "Invalid list item found")
		case stopTableRow, stopTableCell, stopTableHCell, stopDescTitle, stopEndTable, stopEndDesc:
			s.warn(StructuralMismatch, "Unexpected tag <%s%s> found", endSlash(s.token), s.token.Name)
		}
		h := r.sectionLevel()
		switch {
		case h == 0:
		case h <= level+1:
			return r
		case level == 0:
			s.warn(StructuralMismatch, "found %s command outside of %s context!", sectionLevelNames[h], sectionLevelNames[h-1])
		default:
			s.warn(StructuralMismatch, "Unexpected %s command found inside %s!", sectionLevelNames[h], sectionLevelNames[level])
		}
	}
}

// newSection creates the node for the heading just read. It returns nil
// when the id is neither in the section table nor followed by a title.
func (s *Session) newSection(level int) *Node {
	sec := &Section{Level: level, ID: s.sectionID}
	info, ok := s.index.Section(s.sectionID)
	switch {
	case s.sectionID != "" && ok:
		sec.File = info.File
		sec.Anchor = info.Label
		sec.Title = info.Title
		if sec.Title == "" {
			sec.Title = s.sectionTitle
		}
		if sec.Title == "" {
			sec.Title = info.Label
		}
	case s.sectionID != "" && s.sectionTitle != "":
		sec.Anchor = s.sectionID
		sec.Title = s.sectionTitle
	default:
		s.warn(UnresolvedReference, "Invalid section id `%s'; ignoring section", s.sectionID)
		return nil
	}
	return s.node(KindSection, sec)
}

func (s *Session) parseSection(sec *Node, level int) stopReason {
	if !s.descend() {
		return stopEOF
	}
	defer s.ascend()
	s.pushNode(sec)
	defer s.popNode(sec)
	return s.parseBody(sec, level, false)
}

// parseText parses plain text: words, whitespace, symbols and escapes.
func (s *Session) parseText(text *Node) {
	s.setMode(ModeText)
	s.pushNode(text)
	defer s.popNode(text)

	for {
		tok := s.next()
		switch tok.Kind {
		case TokenEOF:
			s.reportUnclosedStyles()
			return
		case TokenWord, TokenLinkedWord:
			s.addWord(text, tok.Name)
		case TokenWhitespace:
			s.addWhiteSpace(text, tok.Chars)
		case TokenURL:
			s.addURL(text, tok)
		case TokenSymbol:
			typ, letter := DecodeSymbol(tok.Name)
			if typ == SymUnknown {
				s.warn(StructuralMismatch, "Unsupported symbol %s found", tok.Name)
				continue
			}
			s.addSymbol(text, typ, letter)
		case TokenCommand:
			if typ, ok := escapeCommand(tok.Name); ok {
				s.addSymbol(text, typ, 0)
				continue
			}
			s.warn(UnknownCommand, "Unexpected command `%s' found", tok.Name)
		default:
			s.warn(StructuralMismatch, "Unexpected token %s in text", tok.Kind)
		}
	}
}
