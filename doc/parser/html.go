package parser

import (
	"strings"
)

// handleHTMLStartTag handles a start tag found in a paragraph.
func (s *Session) handleHTMLStartTag(para *Node, tok Token) stopReason {
	t := lookupTag(tok.Name)
	if tok.EmptyTag && !t.isXML() && t != tagUnknown {
		s.warn(StructuralMismatch, "HTML tags may not use the 'empty tag' XHTML syntax.")
	}
	if t == tagCode && strings.HasSuffix(s.fileName, ".cs") {
		return s.handleVerbatim(para, ModeXMLCode, VerbatimCode)
	}
	if style, ok := styleTags[t]; ok {
		s.styleEnter(para, style, tok.Attrs)
		if t == tagPre {
			para.Data.(*Para).InsidePre = true
		}
		return stopOK
	}
	if level := t.headerLevel(); level > 0 {
		return s.handleHTMLHeader(para, tok.Attrs, level)
	}

	switch t {
	case tagUL, tagOL:
		list := s.node(KindHTMLList, &HTMLList{Ordered: t == tagOL, Attrs: tok.Attrs})
		para.AddChild(list)
		return s.parseHTMLList(list)
	case tagLI, xmlItem:
		if !insideList(para, false) && !insideList(para, true) {
			s.warn(StructuralMismatch, "lonely <%s> tag found", strings.ToLower(tok.Name))
			break
		}
		return stopNextItem
	case tagP:
		return stopNewPara
	case tagDL:
		list := s.node(KindHTMLDescList, &HTMLDescList{Attrs: tok.Attrs})
		para.AddChild(list)
		return s.parseDescList(list)
	case tagDT:
		return stopDescTitle
	case tagDD:
		s.warn(StructuralMismatch, "Unexpected tag <dd> found")
	case tagTable:
		table := s.node(KindHTMLTable, &HTMLTable{Attrs: tok.Attrs})
		para.AddChild(table)
		return s.parseTable(table)
	case tagTR:
		return stopTableRow
	case tagTD:
		return stopTableCell
	case tagTH:
		return stopTableHCell
	case tagCaption:
		s.warn(StructuralMismatch, "Unexpected tag <caption> found")
	case tagBR:
		para.AddChild(s.node(KindLineBreak, nil))
	case tagHR:
		para.AddChild(s.node(KindHorRuler, nil))
	case tagA:
		return s.handleAHref(para, tok.Attrs)
	case tagImg:
		src := attr(tok.Attrs, "src")
		if src == "" {
			s.warn(InvalidArgument, "IMG tag does not have a SRC attribute!")
			break
		}
		para.AddChild(s.node(KindImage, &Image{
			Type:  ImageHTML,
			Name:  src,
			Attrs: withoutAttr(tok.Attrs, "src"),
		}))

	case xmlSummary, xmlRemarks, xmlValue, xmlPara:
		if !para.IsEmpty() {
			return stopNewPara
		}
	case xmlExample, xmlDescription, xmlInclude, xmlPermission:
	case xmlC:
		s.styleEnter(para, StyleCode, tok.Attrs)
	case xmlParam:
		name := attr(tok.Attrs, "name")
		if name == "" {
			s.warn(InvalidArgument, "Missing 'name' attribute from <param> tag.")
			break
		}
		return s.handleParamSection(para, name, ParamParam, true, DirUnspecified)
	case xmlParamRef:
		name := attr(tok.Attrs, "name")
		if name == "" {
			s.warn(InvalidArgument, "Missing 'name' attribute from <paramref> tag.")
			break
		}
		para.AddChild(s.styleChange(StyleItalic, true, nil))
		s.addWord(para, name)
		para.AddChild(s.styleChange(StyleItalic, false, nil))
	case xmlException:
		cref := attr(tok.Attrs, "cref")
		if cref == "" {
			s.warn(InvalidArgument, "Missing 'cref' attribute from <exception> tag.")
			break
		}
		return s.handleParamSection(para, cref, ParamException, true, DirUnspecified)
	case xmlReturns:
		s.hasReturnCommand = true
		return s.handleSimpleSection(para, SectReturn, true)
	case xmlSee:
		cref := attr(tok.Attrs, "cref")
		if cref == "" {
			s.warn(InvalidArgument, "Missing 'cref' attribute from <see> tag.")
			break
		}
		para.AddChild(s.newRef(cref))
	case xmlSeeAlso:
		cref := attr(tok.Attrs, "cref")
		if cref == "" {
			s.warn(InvalidArgument, "Missing 'cref' attribute from <seealso> tag.")
			break
		}
		s.appendSeeAlso(para, cref)
	case xmlList:
		list := s.node(KindHTMLList, &HTMLList{
			Ordered: attr(tok.Attrs, "type") == "number",
			XML:     true,
			Attrs:   tok.Attrs,
		})
		para.AddChild(list)
		return s.parseHTMLList(list)
	default:
		s.warn(UnknownCommand, "Unsupported xml/html tag <%s> found", tok.Name)
		s.addWord(para, "<"+tok.Name+attrString(tok.Attrs)+">")
	}
	return stopOK
}

// handleHTMLEndTag handles an end tag found in a paragraph.
func (s *Session) handleHTMLEndTag(para *Node, tok Token) stopReason {
	t := lookupTag(tok.Name)
	if style, ok := styleTags[t]; ok {
		s.styleLeave(para, style, strings.ToLower(tok.Name))
		if t == tagPre {
			para.Data.(*Para).InsidePre = false
		}
		return stopOK
	}
	if t.headerLevel() > 0 {
		s.warn(StructuralMismatch, "Unexpected tag </%s> found", strings.ToLower(tok.Name))
		return stopOK
	}

	switch t {
	case tagUL, tagOL:
		name := strings.ToLower(tok.Name)
		if !insideList(para, t == tagOL) {
			s.warn(StructuralMismatch, "found </%s> tag without matching <%s>", name, name)
			break
		}
		return stopEndHTMLList
	case tagLI:
		if para.Ancestor(KindHTMLListItem) == nil {
			s.warn(StructuralMismatch, "found </li> tag without matching <li>")
		}
	case tagDL:
		return stopEndDesc
	case tagTable:
		return stopEndTable
	case tagTD, tagTH:
		if cell := para.Ancestor(KindHTMLCell); cell != nil {
			cell.Data.(*HTMLCell).closed = true
		}
	case tagP, tagDT, tagDD, tagTR, tagA:
	case tagCaption, tagImg, tagHR:
		s.warn(StructuralMismatch, "Unexpected tag </%s> found", strings.ToLower(tok.Name))
	case tagBR:
		s.warn(StructuralMismatch, "Illegal </br> tag found")

	case xmlSummary, xmlRemarks, xmlPara, xmlValue, xmlList, xmlExample,
		xmlParam, xmlReturns, xmlSeeAlso, xmlException:
		return stopCloseXML
	case xmlC:
		s.styleLeave(para, StyleCode, "c")
	case xmlItem, xmlInclude, xmlPermission, xmlDescription, xmlParamRef, xmlSee:
	default:
		s.warn(UnknownCommand, "Unsupported xml/html tag </%s> found", tok.Name)
		s.addWord(para, "</"+tok.Name+">")
	}
	return stopOK
}

// appendSeeAlso adds a comma separated link to the "see also" section of
// para, creating the section on first use.
func (s *Session) appendSeeAlso(para *Node, cref string) {
	var ss *Node
	for _, c := range para.ChildrenOfKind(KindSimpleSect) {
		if c.Data.(*SimpleSect).Type == SectSee {
			ss = c
		}
	}
	if ss == nil {
		ss = s.node(KindSimpleSect, &SimpleSect{Type: SectSee})
		para.AddChild(ss)
	}
	p := ss.LastChild()
	if p == nil || p.Kind != KindPara {
		p = s.node(KindPara, &Para{First: true, Last: true})
		ss.AddChild(p)
	} else {
		s.addWord(p, ",")
		s.addWhiteSpace(p, " ")
	}
	s.inSeeBlock = true
	s.handleLinkedWord(p, cref)
	s.inSeeBlock = false
}

// handleAHref handles <a name=...> as an anchor and <a href=...> as a
// link whose content runs up to </a>.
func (s *Session) handleAHref(parent *Node, attrs []Attribute) stopReason {
	for _, a := range attrs {
		switch strings.ToLower(a.Name) {
		case "name":
			if a.Value == "" {
				s.warn(InvalidArgument, "found <a> tag with name option but without value!")
				continue
			}
			parent.AddChild(s.node(KindAnchor, s.newAnchor(a.Value, true)))
			return stopOK
		case "href":
			href := s.node(KindHRef, &HRef{URL: a.Value, Attrs: withoutAttr(attrs, "href")})
			parent.AddChild(href)
			s.insideHTMLLink = true
			s.parseHRef(href)
			s.insideHTMLLink = false
			return stopOK
		}
	}
	return stopOK
}

func (s *Session) parseHRef(href *Node) {
	s.pushNode(href)
	defer s.popNode(href)
	defer s.flushPendingStyles(href)

	for {
		tok := s.next()
		if tok.Kind == TokenEOF {
			s.warn(StructuralMismatch, "Unexpected end of comment while inside <a href=...> tag")
			return
		}
		if s.defaultHandleToken(href, tok, true) {
			continue
		}
		switch tok.Kind {
		case TokenCommand:
			s.warn(InvalidArgument, "Illegal command %s as part of a <a>..</a> block", tok.Name)
		case TokenSymbol:
			s.warn(StructuralMismatch, "Unsupported symbol %s found", tok.Name)
		case TokenHTMLTag:
			if lookupTag(tok.Name) == tagA && tok.EndTag {
				return
			}
			s.warn(StructuralMismatch, "Unexpected html tag <%s%s> found within <a href=...> context", endSlash(tok), tok.Name)
		default:
			s.warn(StructuralMismatch, "Unexpected token %s", tok.Kind)
		}
	}
}

// handleHTMLHeader parses <h1>..<h6>. A complete header ends the
// paragraph.
func (s *Session) handleHTMLHeader(para *Node, attrs []Attribute, level int) stopReason {
	h := s.node(KindHTMLHeader, &HTMLHeader{Level: level, Attrs: attrs})
	para.AddChild(h)
	if s.parseHTMLHeader(h, level) {
		return stopNewPara
	}
	return stopEOF
}

func (s *Session) parseHTMLHeader(h *Node, level int) bool {
	s.pushNode(h)
	defer s.popNode(h)
	defer s.flushPendingStyles(h)

	for {
		tok := s.next()
		if tok.Kind == TokenEOF {
			s.warn(StructuralMismatch, "Unexpected end of comment while inside <h%d> tag", level)
			return false
		}
		if s.defaultHandleToken(h, tok, true) {
			continue
		}
		switch tok.Kind {
		case TokenCommand:
			s.warn(InvalidArgument, "Illegal command %s as part of a <h%d> tag", tok.Name, level)
		case TokenSymbol:
			s.warn(StructuralMismatch, "Unsupported symbol %s found", tok.Name)
		case TokenHTMLTag:
			t := lookupTag(tok.Name)
			switch {
			case t.headerLevel() > 0 && tok.EndTag:
				if t.headerLevel() != level {
					s.warn(StructuralMismatch, "<h%d> ended with </h%d>", level, t.headerLevel())
				}
				return true
			case t == tagA:
				if !tok.EndTag {
					s.handleAHref(h, tok.Attrs)
				}
			case t == tagBR:
				h.AddChild(s.node(KindLineBreak, nil))
			default:
				s.warn(StructuralMismatch, "Unexpected html tag <%s%s> found within <h%d> context", endSlash(tok), tok.Name, level)
			}
		default:
			s.warn(StructuralMismatch, "Unexpected token %s", tok.Kind)
		}
	}
}

func attr(attrs []Attribute, name string) string {
	v, _ := AttrValue(attrs, name)
	return v
}
