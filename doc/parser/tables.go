package parser

// parseTable parses a <table> whose start tag has been read. Rows and
// cells are parsed even when their end tags are missing.
func (s *Session) parseTable(table *Node) stopReason {
	if !s.descend() {
		return stopEOF
	}
	defer s.ascend()
	s.pushNode(table)
	defer s.popNode(table)

	r := s.tableStart(table)
	for r == stopTableRow {
		row := s.node(KindHTMLRow, &HTMLRow{Attrs: s.token.Attrs})
		table.AddChild(row)
		r = s.parseRow(row)
	}
	if r == stopEndTable {
		return stopOK
	}
	return r
}

// tableStart reads up to the first <tr>, parsing the caption on the way.
func (s *Session) tableStart(table *Node) stopReason {
	d := table.Data.(*HTMLTable)
	for {
		tok := s.nextNonBlank()
		switch tok.Kind {
		case TokenEOF:
			s.warn(StructuralMismatch, "unexpected end of comment while looking for a <tr> or <caption> tag")
			return stopEOF
		case TokenHTMLTag:
		default:
			s.warn(StructuralMismatch, "expected <tr> tag but found %s token instead!", tok.Kind)
			return stopOK
		}
		switch t := lookupTag(tok.Name); {
		case t == tagTR && !tok.EndTag:
			return stopTableRow
		case t == tagCaption && !tok.EndTag:
			if d.Caption != nil {
				s.warn(StructuralMismatch, "table already has a caption, found another one")
				return stopOK
			}
			caption := s.node(KindHTMLCaption, &HTMLCaption{Attrs: tok.Attrs})
			caption.parent = table
			d.Caption = caption
			if !s.parseCaption(caption) {
				return stopEOF
			}
		default:
			s.warn(StructuralMismatch, "expected <tr> or <caption> tag but found <%s%s> instead!", endSlash(tok), tok.Name)
			return stopOK
		}
	}
}

// parseCaption reads a caption up to </caption>. It returns false when the
// comment ends first.
func (s *Session) parseCaption(caption *Node) bool {
	s.pushNode(caption)
	defer s.popNode(caption)
	defer s.flushPendingStyles(caption)

	for {
		tok := s.next()
		if tok.Kind == TokenEOF {
			s.warn(StructuralMismatch, "Unexpected end of comment while inside <caption> tag")
			return false
		}
		if s.defaultHandleToken(caption, tok, true) {
			continue
		}
		switch tok.Kind {
		case TokenCommand:
			s.warn(InvalidArgument, "Illegal command %s as part of a <caption> tag", tok.Name)
		case TokenSymbol:
			s.warn(StructuralMismatch, "Unsupported symbol %s found", tok.Name)
		case TokenHTMLTag:
			if lookupTag(tok.Name) == tagCaption && tok.EndTag {
				return true
			}
			s.warn(StructuralMismatch, "Unexpected html tag <%s%s> found within <caption> context", endSlash(tok), tok.Name)
		default:
			s.warn(StructuralMismatch, "Unexpected token %s", tok.Kind)
		}
	}
}

// parseRow parses the cells of a row whose <tr> has been read.
func (s *Session) parseRow(row *Node) stopReason {
	s.pushNode(row)
	defer s.popNode(row)

	tok := s.nextNonBlank()
	heading := false
	switch {
	case tok.Kind == TokenEOF:
		s.warn(StructuralMismatch, "unexpected end of comment while looking for a <td> or <th> tag")
		return stopEOF
	case tok.Kind != TokenHTMLTag:
		s.warn(StructuralMismatch, "expected <td> or <th> tag but found %s token instead!", tok.Kind)
		return stopOK
	case tok.EndTag:
		s.warn(StructuralMismatch, "expected <td> or <th> tag but found </%s> instead!", tok.Name)
		return stopOK
	}
	switch lookupTag(tok.Name) {
	case tagTD:
	case tagTH:
		heading = true
	default:
		s.warn(StructuralMismatch, "expected <td> or <th> tag but found <%s> instead!", tok.Name)
		return stopOK
	}

	var (
		cell *Node
		r    stopReason
	)
	for {
		cell = s.node(KindHTMLCell, &HTMLCell{Attrs: s.token.Attrs, Heading: heading, First: cell == nil})
		row.AddChild(cell)
		r = s.parseCell(cell)
		if r != stopTableCell && r != stopTableHCell {
			break
		}
		heading = r == stopTableHCell
	}
	cell.Data.(*HTMLCell).Last = true
	return r
}

func (s *Session) parseCell(cell *Node) stopReason {
	r := s.parseParagraphsInto(cell)
	if d := cell.Data.(*HTMLCell); !d.closed {
		name := "td"
		if d.Heading {
			name = "th"
		}
		s.warn(StructuralMismatch, "missing </%s> tag", name)
	}
	return r
}
