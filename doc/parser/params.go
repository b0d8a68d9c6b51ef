package parser

import (
	"regexp"
	"strings"
)

var argNamePattern = regexp.MustCompile(`[a-zA-Z0-9_]+\.*`)

// handleParamSection parses \param, \retval or \exception, or the XML
// <param> and <exception> tags, where arg is the documented name.
// Consecutive sections of the same type share one node.
func (s *Session) handleParamSection(para *Node, arg string, typ ParamSectType, xml bool, dir ParamDir) stopReason {
	ps := para.LastChild()
	if ps == nil || ps.Kind != KindParamSect || ps.Data.(*ParamSect).Type != typ {
		ps = s.node(KindParamSect, &ParamSect{Type: typ, Dir: dir})
		para.AddChild(ps)
	}
	s.pushNode(ps)
	defer s.popNode(ps)

	list := s.node(KindParamList, &ParamList{Type: typ, Dir: dir})
	ps.AddChild(list)
	var r stopReason
	if xml {
		r = s.parseParamListXML(list, arg)
	} else {
		r = s.parseParamList(list, arg)
	}
	if r == stopNewPara {
		return stopOK
	}
	return r
}

// addParamName records a documented name and appends its node to list.
func (s *Session) addParamName(list *Node, name string) {
	d := list.Data.(*ParamList)
	switch d.Type {
	case ParamParam:
		s.hasParamCommand = true
		s.checkArgumentName(name, true)
	case ParamRetVal:
		s.hasReturnCommand = true
		s.checkArgumentName(name, false)
	}
	holder := s.node(KindText, nil)
	holder.parent = list
	s.handleLinkedWord(holder, name)
	for _, n := range holder.Children {
		n.parent = list
	}
	d.Params = append(d.Params, holder.Children...)
}

func (s *Session) parseParamList(list *Node, cmdName string) stopReason {
	if !s.descend() {
		return stopEOF
	}
	defer s.ascend()
	s.pushNode(list)
	defer s.popNode(list)

	if tok := s.next(); tok.Kind != TokenWhitespace {
		s.warn(InvalidArgument, "expected whitespace after %s command", cmdName)
	}
	s.setMode(ModeParam)
	tok := s.next()
	for tok.Kind == TokenWord {
		s.addParamName(list, tok.Name)
		tok = s.next()
	}
	s.setMode(ModePara)
	if tok.Kind == TokenEOF {
		s.warn(InvalidArgument, "unexpected end of comment block while parsing the argument of command %s", cmdName)
		return stopEOF
	}

	p := s.newPara(list)
	r := s.parsePara(p)
	s.keepPara(list, p)
	return r
}

func (s *Session) parseParamListXML(list *Node, name string) stopReason {
	if !s.descend() {
		return stopEOF
	}
	defer s.ascend()
	s.pushNode(list)
	defer s.popNode(list)

	s.addParamName(list, name)
	for {
		p := s.newPara(list)
		r := s.parsePara(p)
		if !s.keepPara(list, p) {
			if r == stopEOF {
				break
			}
			return stopOK
		}
		if r == stopEOF {
			break
		}
		if r != stopCloseXML {
			return stopOK
		}
		if t := lookupTag(s.token.Name); t == xmlParam || t == xmlException {
			return stopOK
		}
	}
	s.warn(StructuralMismatch, "unterminated param or exception tag")
	return stopEOF
}

// argName returns the name a parameter is documented under. Macros are
// documented by the names in their type field.
func argName(def *Definition, p Param) string {
	name := p.Name
	if def.IsDefine {
		name = p.Type
	}
	return strings.TrimSuffix(name, "...")
}

// checkArgumentName records the names in a \param argument, which may
// list several names separated by commas, and reports the ones the
// member does not have.
func (s *Session) checkArgumentName(name string, isParam bool) {
	m := s.member
	if m == nil || len(m.Params) == 0 {
		return
	}
	for _, a := range argNamePattern.FindAllString(name, -1) {
		found := false
		for _, p := range m.Params {
			if argName(m, p) == a {
				s.paramsFound[a] = true
				found = true
				break
			}
		}
		if !found && isParam {
			s.warn(InvalidArgument, "argument `%s' of command @param is not found in the argument list of %s%s",
				a, m.QualifiedName(), m.ArgString())
		}
	}
}

// checkUndocumentedParams reports the parameters of the member that have
// no documentation once \param was used at least once.
func (s *Session) checkUndocumentedParams() {
	m := s.member
	if m == nil || !s.hasParamCommand || len(m.Params) == 0 {
		return
	}
	var missing []string
	for _, p := range m.Params {
		name := argName(m, p)
		if name != "" && !s.paramsFound[name] && p.Docs == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return
	}
	var sb strings.Builder
	sb.WriteString("The following parameters of ")
	sb.WriteString(m.QualifiedName())
	sb.WriteString(m.ArgString())
	sb.WriteString(" are not documented:")
	for _, name := range missing {
		sb.WriteString("\n  parameter ")
		sb.WriteString(name)
	}
	s.warn(InvalidArgument, "%s", sb.String())
}

// detectDocumentedParams reports whether the member's parameters and
// return value are documented, by this block or by their own docs.
func (s *Session) detectDocumentedParams() (params, ret bool) {
	m := s.member
	if m == nil {
		return false, false
	}
	params = s.hasParamCommand
	if !params {
		params = true
		for _, p := range m.Params {
			if p.Name != "" && p.Type != "void" && p.Docs == "" {
				params = false
				break
			}
		}
	}
	rt := strings.TrimSpace(m.ReturnType)
	ret = s.hasReturnCommand || rt == "" || strings.Contains(rt, "void")

	if s.cfg.WarnNoParamDoc {
		if !params {
			s.warn(InvalidArgument, "parameters of member %s are not (all) documented", m.QualifiedName())
		}
		if !ret {
			s.warn(InvalidArgument, "return type of member %s is not documented", m.QualifiedName())
		}
	}
	return params, ret
}
