package parser

import (
	"fmt"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("docparse.parser")

// stopReason tells the caller of a node parser why it stopped consuming
// tokens.
type stopReason int

const (
	stopEOF stopReason = iota
	stopOK
	stopNewPara
	stopListItem
	stopEndList
	stopSimpleSect // s.pending holds the command to re-dispatch
	stopSection
	stopSubsection
	stopSubsubsection
	stopParagraph
	stopInternal
	stopNextItem // <li>, <item> or \li starts the next item
	stopEndHTMLList
	stopDescTitle
	stopDescData
	stopEndDesc
	stopTableRow
	stopTableCell
	stopTableHCell
	stopEndTable
	stopCloseXML
	stopReparse // s.token must be handled again by the caller
)

var stopNames = [...]string{
	"eof", "ok", "new-paragraph", "list-item", "end-list", "simple-section",
	"section", "subsection", "subsubsection", "paragraph", "internal",
	"next-item", "end-html-list", "desc-title", "desc-data", "end-desc",
	"table-row", "table-cell", "table-hcell", "end-table", "close-xml", "reparse",
}

func (r stopReason) String() string { return stopNames[r] }

// sectionLevel returns the level of the heading that caused r, or 0.
func (r stopReason) sectionLevel() int {
	switch r {
	case stopSection:
		return 1
	case stopSubsection:
		return 2
	case stopSubsubsection:
		return 3
	case stopParagraph:
		return 4
	}
	return 0
}

var sectionLevelNames = [...]string{"page", "section", "subsection", "subsubsection", "paragraph"}

// Session owns the mutable state of one top-level parse. Sessions are not
// shared: each Parse call creates its own.
type Session struct {
	tok   Tokenizer
	index SymbolIndex
	files FileProvider
	sink  DiagnosticSink
	cfg   Config
	words WordIndexer

	token   Token // most recently read token
	pending Token // command that ended a simple section
	mode    Mode

	context        string
	inSeeBlock     bool
	insideHTMLLink bool
	nodeStack      []*Node
	styleStack     []*Node
	initialStyles  []*Node
	copyStack      []string
	fileName       string
	relPath        string
	member         *Definition
	isExample      bool
	exampleName    string

	includeText   string
	includeOffset int

	sectionID    string
	sectionTitle string

	paramsFound      map[string]bool
	hasParamCommand  bool
	hasReturnCommand bool

	depth       int
	depthWarned bool
	// unwinding is set while parsers return from an abandoned construct
	// and cleared by the next token read.
	unwinding bool

	saved []sessionState
}

type sessionState struct {
	context        string
	inSeeBlock     bool
	insideHTMLLink bool
	nodeStack      []*Node
	styleStack     []*Node
	initialStyles  []*Node
	copyStack      []string
	fileName       string
	relPath        string
	member         *Definition
	mode           Mode
}

func newSession(o *options) *Session {
	s := &Session{
		tok:         o.tokenizer,
		index:       o.index,
		files:       o.files,
		sink:        o.sink,
		cfg:         o.config,
		words:       o.words,
		context:     o.scope,
		fileName:    o.file,
		relPath:     o.relPath,
		member:      o.member,
		isExample:   o.exampleName != "",
		exampleName: o.exampleName,
		paramsFound: make(map[string]bool),
	}
	if s.tok == nil {
		s.tok = NewLexer()
	}
	if s.index == nil {
		s.index = emptyIndex{}
	}
	if s.sink == nil {
		s.sink = NewLogSink("docparse.diagnostics")
	}
	if s.cfg.MaxDepth <= 0 {
		s.cfg.MaxDepth = DefaultMaxDepth
	}
	return s
}

func (s *Session) setMode(mode Mode) {
	s.mode = mode
	s.tok.SetMode(mode)
}

func (s *Session) next() Token {
	s.token = s.tok.Next()
	s.unwinding = false
	return s.token
}

// node creates a node stamped with the current line.
func (s *Session) node(kind Kind, data Data) *Node {
	n := newNode(kind, data)
	n.Line = s.tok.Line()
	return n
}

func (s *Session) warn(kind DiagnosticKind, format string, args ...interface{}) {
	d := Diagnostic{
		File:    s.fileName,
		Line:    s.tok.Line(),
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
	if !s.cfg.WarnIfDocError {
		log.Debugf("suppressed: %s", d)
		return
	}
	if s.unwinding {
		log.Debugf("suppressed after depth limit: %s", d)
		return
	}
	s.sink.Warn(d)
}

// descend guards the nesting depth of node parsers. When it returns false
// the caller must abandon its construct without consuming tokens. The
// enclosing parsers then see the end of input; their warnings about it
// are dropped until another token is read.
func (s *Session) descend() bool {
	if s.depth >= s.cfg.MaxDepth {
		if !s.depthWarned {
			s.depthWarned = true
			s.warn(RecursionDetected, "maximum nesting depth of %d exceeded; ignoring the rest of the comment block", s.cfg.MaxDepth)
			log.Debugf("%s: depth limit %d reached", s.fileName, s.cfg.MaxDepth)
		}
		s.unwinding = true
		return false
	}
	s.depth++
	return true
}

func (s *Session) ascend() {
	s.depth--
}

func (s *Session) pushNode(n *Node) {
	s.nodeStack = append(s.nodeStack, n)
}

func (s *Session) popNode(n *Node) {
	if len(s.nodeStack) == 0 {
		panic("parser: node stack underflow")
	}
	top := s.nodeStack[len(s.nodeStack)-1]
	if top != n {
		panic(fmt.Sprintf("parser: node stack mismatch: popped %s, expected %s", top.Kind, n.Kind))
	}
	s.nodeStack = s.nodeStack[:len(s.nodeStack)-1]
}

// push saves the session and tokenizer state before parsing text from
// another source.
func (s *Session) push() {
	s.saved = append(s.saved, sessionState{
		context:        s.context,
		inSeeBlock:     s.inSeeBlock,
		insideHTMLLink: s.insideHTMLLink,
		nodeStack:      cloneNodes(s.nodeStack),
		styleStack:     cloneNodes(s.styleStack),
		initialStyles:  cloneNodes(s.initialStyles),
		copyStack:      append([]string(nil), s.copyStack...),
		fileName:       s.fileName,
		relPath:        s.relPath,
		member:         s.member,
		mode:           s.mode,
	})
	s.tok.PushState()
}

// pop restores the state saved by the matching push.
func (s *Session) pop() {
	if len(s.saved) == 0 {
		panic("parser: session state stack underflow")
	}
	st := s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	s.context = st.context
	s.inSeeBlock = st.inSeeBlock
	s.insideHTMLLink = st.insideHTMLLink
	s.nodeStack = st.nodeStack
	s.styleStack = st.styleStack
	s.initialStyles = st.initialStyles
	s.copyStack = st.copyStack
	s.fileName = st.fileName
	s.relPath = st.relPath
	s.member = st.member
	s.mode = st.mode
	s.tok.PopState()
}

func cloneNodes(nodes []*Node) []*Node {
	return append([]*Node(nil), nodes...)
}

// clearStacks starts a nested parse with empty ancestor and style stacks.
func (s *Session) clearStacks() {
	s.nodeStack = nil
	s.styleStack = nil
	s.initialStyles = nil
}

type emptyIndex struct{}

func (emptyIndex) Lookup(string, string) Resolution      { return Resolution{} }
func (emptyIndex) Section(string) (SectionInfo, bool)    { return SectionInfo{}, false }
func (emptyIndex) DocText(string) (string, string, bool) { return "", "", false }
