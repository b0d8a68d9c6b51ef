package parser

// noTrailingSpace lists the block kinds after which whitespace in a
// paragraph is dropped.
var noTrailingSpace = map[Kind]bool{
	KindHTMLDescList: true,
	KindHTMLTable:    true,
	KindHTMLList:     true,
	KindSimpleSect:   true,
	KindAutoList:     true,
	KindSimpleList:   true,
	KindHTMLHeader:   true,
	KindParamSect:    true,
	KindXRefItem:     true,
}

// newPara creates a paragraph below parent without attaching it, so that
// ancestor queries work while it is parsed and an empty result can be
// dropped.
func (s *Session) newPara(parent *Node) *Node {
	p := s.node(KindPara, &Para{})
	p.parent = parent
	return p
}

// keepPara attaches p to parent unless it is empty, keeping the First and
// Last marks of parent's paragraphs current.
func (s *Session) keepPara(parent, p *Node) bool {
	if p.IsEmpty() {
		return false
	}
	first := true
	for i := len(parent.Children) - 1; i >= 0; i-- {
		if prev, ok := parent.Children[i].Data.(*Para); ok {
			prev.Last = false
			first = false
			break
		}
	}
	d := p.Data.(*Para)
	d.First = first
	d.Last = true
	parent.AddChild(p)
	return true
}

// parseParagraphs parses paragraphs into parent for as long as they end
// with a paragraph break.
func (s *Session) parseParagraphs(parent *Node) stopReason {
	for {
		p := s.newPara(parent)
		r := s.parsePara(p)
		s.keepPara(parent, p)
		if r != stopNewPara {
			return r
		}
	}
}

// parsePara reads tokens into para until something ends the paragraph and
// returns the reason.
func (s *Session) parsePara(para *Node) stopReason {
	if !s.descend() {
		return stopEOF
	}
	defer s.ascend()
	s.pushNode(para)
	s.reopenStyles(para)
	r := s.paraBody(para)
	s.flushPendingStyles(para)
	s.popNode(para)
	return r
}

func (s *Session) paraBody(para *Node) stopReason {
	reparse := false
	for {
		if !reparse {
			s.next()
		}
		reparse = false
		tok := s.token
		switch tok.Kind {
		case TokenEOF:
			return stopEOF
		case TokenWord:
			s.addWord(para, tok.Name)
		case TokenLinkedWord:
			s.handleLinkedWord(para, tok.Name)
		case TokenURL:
			s.addURL(para, tok)
		case TokenWhitespace:
			if para.Preformatted() || (!para.IsEmpty() && !noTrailingSpace[para.LastChild().Kind]) {
				s.addWhiteSpace(para, tok.Chars)
			}
		case TokenListItem:
			r := s.paraListItem(para, tok)
			switch r {
			case stopOK:
			case stopSimpleSect:
				s.token = s.pending
				reparse = true
			default:
				return r
			}
		case TokenEndList:
			if p := para.parent; p != nil && p.Kind == KindAutoListItem {
				if p.parent.Data.(*AutoList).Indent >= tok.Indent {
					return stopEndList
				}
				s.warn(StructuralMismatch, "End of list marker found has invalid indent level")
			} else {
				s.warn(StructuralMismatch, "End of list marker found without any preceding list items")
			}
		case TokenCommand:
			cmd := lookupCommand(tok.Name)
			if cmd.isSimpleSect() && para.Ancestor(KindSimpleSect, KindParamSect) != nil {
				s.pending = tok
				return stopSimpleSect
			}
			if cmd == cmdLi && para.Ancestor(KindSimpleListItem) != nil {
				return stopNextItem
			}
			switch r := s.handleCommand(para, tok); r {
			case stopOK:
			case stopSimpleSect:
				s.token = s.pending
				reparse = true
			case stopReparse:
				reparse = true
			default:
				return r
			}
		case TokenHTMLTag:
			var r stopReason
			if tok.EndTag {
				r = s.handleHTMLEndTag(para, tok)
			} else {
				r = s.handleHTMLStartTag(para, tok)
			}
			switch r {
			case stopOK:
			case stopReparse:
				reparse = true
			default:
				return r
			}
		case TokenSymbol:
			typ, letter := DecodeSymbol(tok.Name)
			if typ == SymUnknown {
				s.warn(StructuralMismatch, "Unsupported symbol %s found", tok.Name)
				break
			}
			s.addSymbol(para, typ, letter)
		case TokenNewPara:
			return stopNewPara
		case TokenRCSTag:
			ss := s.node(KindSimpleSect, &SimpleSect{Type: SectRcs})
			para.AddChild(ss)
			s.parseRCS(ss, tok)
		default:
			s.warn(StructuralMismatch, "Found unexpected token %s", tok.Kind)
		}
	}
}

// paraListItem starts an auto list at a list marker, or ends the paragraph
// when the marker belongs to an enclosing list.
func (s *Session) paraListItem(para *Node, tok Token) stopReason {
	if al := para.Ancestor(KindAutoList); al != nil && al.Data.(*AutoList).Indent >= tok.Indent {
		return stopListItem
	}
	depth := 0
	for p := para.parent; p != nil; p = p.parent {
		if p.Kind == KindAutoList {
			depth++
		}
	}
	var (
		list *AutoList
		r    stopReason
	)
	for {
		list = &AutoList{Indent: s.token.Indent, Enumerated: s.token.Enumerated, Depth: depth}
		n := s.node(KindAutoList, list)
		para.AddChild(n)
		r = s.parseAutoList(n)
		if r != stopListItem || list.Indent != s.token.Indent {
			break
		}
	}
	switch r {
	case stopSimpleSect:
		return stopSimpleSect
	case stopEndList:
		if list.Indent > s.token.Indent {
			return stopEndList
		}
		return stopOK
	}
	return r
}

var simpleSectForCommand = map[command]SimpleSectType{
	cmdSa:        SectSee,
	cmdReturn:    SectReturn,
	cmdAuthor:    SectAuthor,
	cmdAuthors:   SectAuthors,
	cmdVersion:   SectVersion,
	cmdSince:     SectSince,
	cmdDate:      SectDate,
	cmdNote:      SectNote,
	cmdWarning:   SectWarning,
	cmdPre:       SectPre,
	cmdPost:      SectPost,
	cmdInvariant: SectInvar,
	cmdRemark:    SectRemark,
	cmdAttention: SectAttention,
	cmdPar:       SectUser,
}

var verbatimCommands = map[command]struct {
	mode Mode
	typ  VerbatimType
}{
	cmdStartCode: {ModeCode, VerbatimCode},
	cmdVerbatim:  {ModeVerbatim, VerbatimVerbatim},
	cmdHTMLOnly:  {ModeHTMLOnly, VerbatimHTMLOnly},
	cmdManOnly:   {ModeManOnly, VerbatimManOnly},
	cmdLatexOnly: {ModeLatexOnly, VerbatimLatexOnly},
	cmdXMLOnly:   {ModeXMLOnly, VerbatimXMLOnly},
	cmdDot:       {ModeDot, VerbatimDot},
}

var sectionCommands = map[command]stopReason{
	cmdSection:       stopSection,
	cmdSubsection:    stopSubsection,
	cmdSubsubsection: stopSubsubsection,
	cmdParagraph:     stopParagraph,
}

var includeCommands = map[command]IncludeType{
	cmdInclude:      IncludePlain,
	cmdIncWithLines: IncludeWithLines,
	cmdDontInclude:  IncludeDontInclude,
	cmdHTMLInclude:  IncludeHTML,
	cmdVerbInclude:  IncludeVerbatim,
}

var includeOperators = map[command]IncOperatorType{
	cmdLine:     IncLine,
	cmdSkipLine: IncSkipLine,
	cmdSkip:     IncSkip,
	cmdUntil:    IncUntil,
}

// handleCommand dispatches a command found in a paragraph.
func (s *Session) handleCommand(para *Node, tok Token) stopReason {
	name := tok.Name
	cmd := lookupCommand(name)
	if typ, ok := escapeCommand(name); ok {
		s.addSymbol(para, typ, 0)
		return stopOK
	}
	if style, ok := styleCommands[cmd]; ok {
		return s.handleStyleCommand(para, style, name)
	}
	if typ, ok := simpleSectForCommand[cmd]; ok {
		switch cmd {
		case cmdSa:
			s.inSeeBlock = true
			defer func() { s.inSeeBlock = false }()
		case cmdReturn:
			s.hasReturnCommand = true
		}
		return s.handleSimpleSection(para, typ, false)
	}
	if v, ok := verbatimCommands[cmd]; ok {
		return s.handleVerbatim(para, v.mode, v.typ)
	}
	if r, ok := sectionCommands[cmd]; ok {
		s.handleSection(name)
		return r
	}
	if typ, ok := includeCommands[cmd]; ok {
		s.handleInclude(para, name, typ)
		return stopOK
	}
	if typ, ok := includeOperators[cmd]; ok {
		s.handleIncludeOperator(para, name, typ)
		return stopOK
	}

	switch cmd {
	case cmdUnknown:
		s.warn(UnknownCommand, "Found unknown command `\\%s'", name)
	case cmdLi:
		sl := s.node(KindSimpleList, nil)
		para.AddChild(sl)
		return s.parseSimpleList(sl)
	case cmdEndCode, cmdEndHTMLOnly, cmdEndManOnly, cmdEndLatexOnly, cmdEndXMLOnly,
		cmdEndLink, cmdEndVerbatim, cmdEndDot, cmdSecRefItem, cmdEndSecRefList, cmdInternalRef:
		s.warn(StructuralMismatch, "unexpected command %s", name)
	case cmdParam:
		return s.handleParamSection(para, name, ParamParam, false, tok.Dir)
	case cmdRetVal:
		return s.handleParamSection(para, name, ParamRetVal, false, DirUnspecified)
	case cmdException:
		return s.handleParamSection(para, name, ParamException, false, DirUnspecified)
	case cmdXRefItem:
		s.handleXRefItem(para)
	case cmdLineBreak:
		para.AddChild(s.node(KindLineBreak, nil))
	case cmdAnchor:
		s.handleAnchor(para, name)
	case cmdAddIndex:
		ie := s.node(KindIndexEntry, &IndexEntry{})
		para.AddChild(ie)
		return s.parseIndexEntry(ie)
	case cmdInternal:
		return stopInternal
	case cmdCopyDoc, cmdCopyBrief, cmdCopyDetails:
		s.handleCopy(para, name, cmd)
	case cmdImage:
		s.handleImage(para, name)
	case cmdDotFile:
		s.handleDotFile(para, name)
	case cmdLink:
		s.handleLink(para, name, false)
	case cmdJavaLink:
		s.handleLink(para, name, true)
	case cmdRef, cmdSubpage:
		s.handleRef(para, name)
	case cmdSecRefList:
		list := s.node(KindSecRefList, nil)
		para.AddChild(list)
		s.parseSecRefList(list)
	case cmdFormula:
		s.addFormula(para, tok.ID)
	case cmdInheritDoc:
		s.handleInheritDoc(para)
	}
	return stopOK
}

// handleSection reads the id of a section command and the rest of its
// line, which serves as the title when the section table has none.
func (s *Session) handleSection(cmdName string) {
	s.sectionID = ""
	s.sectionTitle = ""
	tok, ok := s.expectWordArgument(cmdName)
	if !ok {
		return
	}
	s.sectionID = tok.Name
	s.setMode(ModeSkipTitle)
	if title := s.next(); title.Kind == TokenWord {
		s.sectionTitle = title.Name
	}
	s.setMode(ModePara)
}

// handleSimpleSection appends to the previous section of the same type or
// starts a new one. User defined sections never merge.
func (s *Session) handleSimpleSection(para *Node, typ SimpleSectType, xml bool) stopReason {
	ss := para.LastChild()
	if ss == nil || ss.Kind != KindSimpleSect || ss.Data.(*SimpleSect).Type != typ || typ == SectUser {
		ss = s.node(KindSimpleSect, &SimpleSect{Type: typ})
		para.AddChild(ss)
	}
	if xml {
		return s.parseSimpleSectXML(ss)
	}
	r := s.parseSimpleSect(ss, typ == SectUser)
	if r == stopNewPara {
		return stopOK
	}
	return r
}

func (s *Session) parseSimpleSect(ss *Node, userTitle bool) stopReason {
	if !s.descend() {
		return stopEOF
	}
	defer s.ascend()
	s.pushNode(ss)
	defer s.popNode(ss)

	if userTitle {
		title := s.node(KindTitle, nil)
		title.parent = ss
		s.parseTitle(title)
		ss.Data.(*SimpleSect).Title = title
	}
	p := s.newPara(ss)
	r := s.parsePara(p)
	s.keepPara(ss, p)
	return r
}

// parseSimpleSectXML parses paragraphs up to the closing XML tag.
func (s *Session) parseSimpleSectXML(ss *Node) stopReason {
	if !s.descend() {
		return stopEOF
	}
	defer s.ascend()
	s.pushNode(ss)
	defer s.popNode(ss)

	for {
		p := s.newPara(ss)
		r := s.parsePara(p)
		s.keepPara(ss, p)
		switch r {
		case stopEOF:
			return r
		case stopCloseXML:
			return stopOK
		}
	}
}

// parseRCS fills an rcs section from a "$Keyword: value $" tag.
func (s *Session) parseRCS(ss *Node, tok Token) {
	s.pushNode(ss)
	defer s.popNode(ss)

	title := s.node(KindTitle, nil)
	title.parent = ss
	title.AddChild(s.node(KindWord, &Word{Text: tok.Name}))
	ss.Data.(*SimpleSect).Title = title

	s.push()
	s.parseInto(ss, tok.Text)
	s.pop()
}
