package parser

// nextNonBlank skips whitespace and paragraph breaks and returns the first
// other token.
func (s *Session) nextNonBlank() Token {
	for {
		tok := s.next()
		if tok.Kind != TokenWhitespace && tok.Kind != TokenNewPara {
			return tok
		}
	}
}

// parseAutoList parses the items of a "-" or "-#" list. The list marker
// that opened it is the current token.
func (s *Session) parseAutoList(list *Node) stopReason {
	if !s.descend() {
		return stopEOF
	}
	defer s.ascend()
	s.pushNode(list)
	defer s.popNode(list)

	d := list.Data.(*AutoList)
	num := 1
	for {
		item := s.node(KindAutoListItem, &AutoListItem{Num: num})
		num++
		list.AddChild(item)
		r := s.parseAutoListItem(item)
		if r != stopListItem || s.token.Indent != d.Indent || s.token.Enumerated != d.Enumerated {
			return r
		}
	}
}

func (s *Session) parseAutoListItem(item *Node) stopReason {
	s.pushNode(item)
	defer s.popNode(item)

	p := s.newPara(item)
	r := s.parsePara(p)
	s.keepPara(item, p)
	return r
}

// parseSimpleList parses consecutive \li items.
func (s *Session) parseSimpleList(list *Node) stopReason {
	if !s.descend() {
		return stopEOF
	}
	defer s.ascend()
	s.pushNode(list)
	defer s.popNode(list)

	for {
		item := s.node(KindSimpleListItem, nil)
		list.AddChild(item)
		s.pushNode(item)
		p := s.newPara(item)
		r := s.parsePara(p)
		s.keepPara(item, p)
		s.popNode(item)
		switch r {
		case stopNextItem:
		case stopNewPara:
			return stopOK
		default:
			return r
		}
	}
}

// parseHTMLList parses a <ul> or <ol> list, or an XML <list>, whose
// start tag has been read.
func (s *Session) parseHTMLList(list *Node) stopReason {
	if !s.descend() {
		return stopEOF
	}
	defer s.ascend()
	s.pushNode(list)
	defer s.popNode(list)

	d := list.Data.(*HTMLList)
	itemTag, itemName := tagLI, "li"
	if d.XML {
		itemTag, itemName = xmlItem, "item"
	}
	tok := s.nextNonBlank()
	switch {
	case tok.Kind == TokenEOF:
		s.warn(StructuralMismatch, "unexpected end of comment while looking for a html list item")
		return stopOK
	case tok.Kind != TokenHTMLTag:
		s.warn(StructuralMismatch, "expected <%s> tag but found %s token instead!", itemName, tok.Kind)
		return stopOK
	case tok.EndTag || lookupTag(tok.Name) != itemTag:
		s.warn(StructuralMismatch, "expected <%s> tag but found <%s%s> instead!", itemName, endSlash(tok), tok.Name)
		return stopOK
	}

	var r stopReason
	for num := 1; ; num++ {
		item := s.node(KindHTMLListItem, &HTMLListItem{Num: num, Attrs: s.token.Attrs})
		list.AddChild(item)
		if d.XML {
			r = s.parseHTMLListItemXML(item)
		} else {
			r = s.parseParagraphsInto(item)
		}
		if r != stopNextItem {
			break
		}
	}

	switch r {
	case stopEOF:
		s.warn(StructuralMismatch, "unexpected end of comment while inside <%s> block", listTagName(d))
	case stopEndHTMLList:
		return stopOK
	case stopCloseXML:
		if d.XML && lookupTag(s.token.Name) == xmlList {
			return stopOK
		}
	}
	return r
}

func listTagName(d *HTMLList) string {
	switch {
	case d.XML:
		return "list"
	case d.Ordered:
		return "ol"
	}
	return "ul"
}

func endSlash(tok Token) string {
	if tok.EndTag {
		return "/"
	}
	return ""
}

// parseParagraphsInto parses the paragraphs of a container that is already
// attached to the tree.
func (s *Session) parseParagraphsInto(n *Node) stopReason {
	s.pushNode(n)
	defer s.popNode(n)
	return s.parseParagraphs(n)
}

// parseHTMLListItemXML parses an <item> up to the next item or the end of
// the enclosing <list>. Closing tags of nested elements do not end it.
func (s *Session) parseHTMLListItemXML(item *Node) stopReason {
	s.pushNode(item)
	defer s.popNode(item)

	for {
		p := s.newPara(item)
		r := s.parsePara(p)
		s.keepPara(item, p)
		switch r {
		case stopNewPara:
		case stopCloseXML:
			if lookupTag(s.token.Name) == xmlList {
				return r
			}
		default:
			return r
		}
	}
}

// parseDescList parses a <dl> list as pairs of <dt> and <dd> nodes.
func (s *Session) parseDescList(list *Node) stopReason {
	if !s.descend() {
		return stopEOF
	}
	defer s.ascend()
	s.pushNode(list)
	defer s.popNode(list)

	tok := s.nextNonBlank()
	switch {
	case tok.Kind == TokenEOF:
		s.warn(StructuralMismatch, "unexpected end of comment while looking for a html description title")
		return stopOK
	case tok.Kind != TokenHTMLTag:
		s.warn(StructuralMismatch, "expected <dt> tag but found %s token instead!", tok.Kind)
		return stopOK
	case tok.EndTag || lookupTag(tok.Name) != tagDT:
		s.warn(StructuralMismatch, "expected <dt> tag but found <%s%s> instead!", endSlash(tok), tok.Name)
		return stopOK
	}

	var r stopReason
	for {
		dt := s.node(KindHTMLDescTitle, &HTMLDescTitle{Attrs: s.token.Attrs})
		list.AddChild(dt)
		dd := s.node(KindHTMLDescData, &HTMLDescData{})
		list.AddChild(dd)
		r = s.parseDescTitle(dt)
		if r == stopDescData {
			dd.Data.(*HTMLDescData).Attrs = s.token.Attrs
			r = s.parseParagraphsInto(dd)
		}
		if r != stopDescTitle {
			break
		}
	}

	switch r {
	case stopEOF:
		s.warn(StructuralMismatch, "unexpected end of comment while inside <dl> block")
	case stopEndDesc:
		return stopOK
	}
	return r
}

// parseDescTitle parses the single-line content of a <dt> and reports
// which tag ended it.
func (s *Session) parseDescTitle(dt *Node) stopReason {
	s.pushNode(dt)
	defer s.popNode(dt)
	defer s.flushPendingStyles(dt)

	for {
		tok := s.next()
		if tok.Kind == TokenEOF {
			s.warn(StructuralMismatch, "Unexpected end of comment while inside <dt> tag")
			return stopEOF
		}
		if s.defaultHandleToken(dt, tok, true) {
			continue
		}
		switch tok.Kind {
		case TokenCommand:
			switch lookupCommand(tok.Name) {
			case cmdRef:
				s.handleRef(dt, tok.Name)
			case cmdLink:
				s.handleLink(dt, tok.Name, false)
			case cmdJavaLink:
				s.handleLink(dt, tok.Name, true)
			default:
				s.warn(InvalidArgument, "Illegal command %s as part of a <dt> tag", tok.Name)
			}
		case TokenSymbol:
			s.warn(StructuralMismatch, "Unsupported symbol %s found", tok.Name)
		case TokenHTMLTag:
			switch t := lookupTag(tok.Name); {
			case t == tagDD && !tok.EndTag:
				return stopDescData
			case t == tagDT && tok.EndTag:
			case t == tagDT:
				return stopDescTitle
			case t == tagDL && tok.EndTag:
				return stopEndDesc
			default:
				s.warn(StructuralMismatch, "Unexpected html tag <%s%s> found within <dt> context", endSlash(tok), tok.Name)
			}
		default:
			s.warn(StructuralMismatch, "Unexpected token %s", tok.Kind)
		}
	}
}
