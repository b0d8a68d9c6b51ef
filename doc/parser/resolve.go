package parser

import (
	"strings"
)

// splitRef normalizes a reference and splits off its argument list.
// "A#f(int)" becomes "A::f" and "(int)". A leading "::" marks a global
// name.
func splitRef(raw string) (name, args string, global bool) {
	name = strings.ReplaceAll(raw, "#", "::")
	if strings.HasPrefix(name, "::") {
		name = name[2:]
		global = true
	}
	if i := strings.IndexByte(name, '('); i >= 0 {
		name, args = name[:i], name[i:]
	}
	return strings.TrimSpace(name), args, global
}

// scopeProbes returns the qualified names tried for name in scope, from the
// innermost scope outwards, ending with name itself.
func scopeProbes(scope, name string, global bool) []string {
	var probes []string
	for !global && scope != "" {
		probes = append(probes, scope+"::"+name)
		i := strings.LastIndex(scope, "::")
		if i < 0 {
			break
		}
		scope = scope[:i]
	}
	return append(probes, name)
}

// resolve looks up a reference, walking the current scope. The first probe
// that finds anything wins.
func (s *Session) resolve(raw string) (Resolution, bool) {
	name, args, global := splitRef(raw)
	if name == "" {
		return Resolution{}, false
	}
	for _, q := range scopeProbes(s.context, name, global) {
		res := s.index.Lookup(q, args)
		if !res.Found() {
			continue
		}
		if res.Ambiguous && s.cfg.WarnAmbiguous {
			s.warn(UnresolvedReference, "reference to '%s' is ambiguous; using %s", raw, describeCandidates(res))
		}
		return res, true
	}
	return Resolution{}, false
}

func describeCandidates(res Resolution) string {
	if res.Member != nil {
		return res.Member.QualifiedName()
	}
	return res.Compound.QualifiedName()
}

// linkTarget picks what a resolved word links to: a linkable member,
// else a linkable compound, else the source listing of a file.
func linkTarget(res Resolution) (def *Definition, file, anchor, text string, ok bool) {
	if m := res.Member; m != nil && m.Linkable {
		return m, m.File, m.Anchor, "", true
	}
	c := res.Compound
	if c == nil {
		return nil, "", "", "", false
	}
	if c.Linkable {
		text := ""
		if c.Kind == DefGroup && c.Title != "" {
			text = c.Title
		}
		return c, c.File, "", text, true
	}
	if c.Kind == DefFile && c.SourceFile != "" {
		return c, c.SourceFile, "", "", true
	}
	return nil, "", "", "", false
}

// linkText returns the text shown for a reference as written in the
// source.
func linkText(name string) string {
	switch {
	case strings.HasPrefix(name, "#"):
		name = name[1:]
	case strings.HasPrefix(name, "::"):
		name = name[2:]
	}
	return strings.ReplaceAll(name, "#", "::")
}

// handleLinkedWord appends a linked word when name resolves and a plain
// word otherwise.
func (s *Session) handleLinkedWord(parent *Node, name string) {
	if !s.inSeeBlock && isPlainLowerCase(name) {
		s.addWord(parent, name)
		return
	}
	if !s.insideHTMLLink {
		if res, ok := s.resolve(name); ok {
			if def, file, anchor, text, ok := linkTarget(res); ok {
				if text == "" {
					text = linkText(name)
				}
				if def.Kind == DefFile {
					text = name
				}
				s.addLinkedWord(parent, &LinkedWord{
					Text:    text,
					Ref:     def.QualifiedName(),
					File:    file,
					RelPath: s.relPath,
					Anchor:  anchor,
					Tooltip: def.Kind.String() + " " + def.QualifiedName(),
				})
				return
			}
			s.addWord(parent, linkText(name))
			return
		}
		if len(name) > 1 && strings.HasSuffix(name, ":") {
			s.handleLinkedWord(parent, name[:len(name)-1])
			s.addWord(parent, ":")
			return
		}
	}
	if strings.HasPrefix(name, "#") {
		s.warn(UnresolvedReference, "explicit link request to '%s' could not be resolved", linkText(name))
	}
	s.addWord(parent, linkText(name))
}

// isPlainLowerCase reports whether name is a lower case identifier without
// scope or argument list. Such words are only linked inside \sa blocks.
func isPlainLowerCase(name string) bool {
	if strings.ContainsAny(name, ":#.(-") {
		return false
	}
	return strings.ToLower(name) == name
}

func (s *Session) addWord(parent *Node, text string) {
	parent.AddChild(s.node(KindWord, &Word{Text: text}))
	s.indexWord(text, false)
}

func (s *Session) addLinkedWord(parent *Node, lw *LinkedWord) {
	parent.AddChild(s.node(KindLinkedWord, lw))
	s.indexWord(lw.Text, true)
}

func (s *Session) indexWord(text string, important bool) {
	if s.words != nil && s.cfg.SearchEngine {
		s.words.AddWord(text, important)
	}
}

// findDocs locates the documentation \copydoc refers to. Members are tried
// before compounds; both walk the current scope.
func (s *Session) findDocs(target string) (def *Definition, brief, detailed string, ok bool) {
	name, args, global := splitRef(target)
	if name == "" {
		return nil, "", "", false
	}
	probes := scopeProbes(s.context, name, global)
	for _, q := range probes {
		if res := s.index.Lookup(q, args); res.Member != nil {
			def = res.Member
			break
		}
	}
	if def == nil {
		for _, q := range probes {
			if res := s.index.Lookup(q, ""); res.Compound != nil {
				def = res.Compound
				break
			}
		}
	}
	if def == nil {
		return nil, "", "", false
	}
	brief, detailed, ok = s.index.DocText(def.QualifiedName())
	return def, brief, detailed, ok
}
