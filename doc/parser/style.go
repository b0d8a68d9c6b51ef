package parser

func (s *Session) styleChange(style Style, enter bool, attrs []Attribute) *Node {
	return s.node(KindStyleChange, &StyleChange{
		Style:    style,
		Enter:    enter,
		Position: len(s.nodeStack),
		Attrs:    attrs,
	})
}

// styleEnter opens a style span that stays open until the matching
// styleLeave or the end of the paragraph.
func (s *Session) styleEnter(parent *Node, style Style, attrs []Attribute) {
	sc := s.styleChange(style, true, attrs)
	parent.AddChild(sc)
	s.styleStack = append(s.styleStack, sc)
}

// styleLeave closes the innermost span if it has the given style and was
// opened at the current depth. Otherwise the close is reported and ignored.
func (s *Session) styleLeave(parent *Node, style Style, tagName string) {
	if len(s.styleStack) == 0 {
		s.warn(StructuralMismatch, "found </%s> tag without matching <%s>", tagName, tagName)
		return
	}
	top := s.styleStack[len(s.styleStack)-1].Data.(*StyleChange)
	if top.Style != style {
		s.warn(StructuralMismatch, "found </%s> tag while expecting </%s>", tagName, top.Style)
		return
	}
	if top.Position < len(s.nodeStack) {
		s.warn(StructuralMismatch, "found </%s> tag inside %s but its <%s> tag was opened outside it",
			tagName, s.enclosingBlock(), tagName)
		return
	}
	if top.Position > len(s.nodeStack) {
		s.warn(StructuralMismatch, "found </%s> tag outside the block its <%s> tag was opened in", tagName, tagName)
		return
	}
	parent.AddChild(s.styleChange(style, false, nil))
	s.styleStack = s.styleStack[:len(s.styleStack)-1]
}

// enclosingBlock names the innermost open node that is not a paragraph.
func (s *Session) enclosingBlock() Kind {
	for i := len(s.nodeStack) - 1; i >= 0; i-- {
		if k := s.nodeStack[i].Kind; k != KindPara {
			return k
		}
	}
	return KindRoot
}

// flushPendingStyles closes the spans still open at the end of a paragraph
// and queues them for reopening in the next one.
func (s *Session) flushPendingStyles(parent *Node) {
	for len(s.styleStack) > 0 {
		top := s.styleStack[len(s.styleStack)-1]
		sc := top.Data.(*StyleChange)
		if sc.Position < len(s.nodeStack) {
			break
		}
		parent.AddChild(s.styleChange(sc.Style, false, nil))
		s.initialStyles = append(s.initialStyles, top)
		s.styleStack = s.styleStack[:len(s.styleStack)-1]
	}
}

// reopenStyles enters the spans queued by flushPendingStyles, outermost
// first.
func (s *Session) reopenStyles(para *Node) {
	for len(s.initialStyles) > 0 {
		top := s.initialStyles[len(s.initialStyles)-1]
		s.initialStyles = s.initialStyles[:len(s.initialStyles)-1]
		sc := top.Data.(*StyleChange)
		s.styleEnter(para, sc.Style, sc.Attrs)
	}
}

// reportUnclosedStyles warns about spans still queued when the block ends.
func (s *Session) reportUnclosedStyles() {
	for _, n := range s.initialStyles {
		s.warn(StructuralMismatch, "end of comment block while expecting command </%s>", n.Data.(*StyleChange).Style)
	}
	s.initialStyles = nil
}
