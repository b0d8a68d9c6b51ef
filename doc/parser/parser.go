// Package parser turns documentation comments into a tree of Nodes.
//
// A parse reads tokens from a Tokenizer, resolves references against a
// SymbolIndex, loads example and image files through a FileProvider and
// reports problems to a DiagnosticSink. Problems never abort a parse: the
// worst outcome is a degraded tree plus warnings.
//
//	doc := parser.Parse(comment,
//		parser.WithIndex(idx),
//		parser.WithFile("src/list.h"),
//		parser.WithStartLine(12),
//		parser.WithScope("List"),
//	)
//	parser.Walk(visitor, doc.Root)
package parser

// Option configures a parse.
type Option func(*options)

type options struct {
	tokenizer   Tokenizer
	index       SymbolIndex
	files       FileProvider
	sink        DiagnosticSink
	config      Config
	words       WordIndexer
	scope       string
	file        string
	line        int
	relPath     string
	member      *Definition
	exampleName string
}

func defaultOptions() *options {
	return &options{
		config: DefaultConfig(),
		file:   "<unknown>",
		line:   1,
	}
}

// WithTokenizer replaces the default Lexer.
func WithTokenizer(t Tokenizer) Option {
	return func(o *options) { o.tokenizer = t }
}

func WithIndex(idx SymbolIndex) Option {
	return func(o *options) { o.index = idx }
}

func WithFiles(files FileProvider) Option {
	return func(o *options) { o.files = files }
}

// WithSink sets where warnings go. The default logs them.
func WithSink(sink DiagnosticSink) Option {
	return func(o *options) { o.sink = sink }
}

func WithConfig(cfg Config) Option {
	return func(o *options) { o.config = cfg }
}

// WithWordIndexer feeds the words of the block to a search index when
// Config.SearchEngine is set.
func WithWordIndexer(w WordIndexer) Option {
	return func(o *options) { o.words = w }
}

// WithScope sets the qualified name of the scope references are resolved
// in.
func WithScope(scope string) Option {
	return func(o *options) { o.scope = scope }
}

// WithFile sets the file name used in warnings.
func WithFile(name string) Option {
	return func(o *options) { o.file = name }
}

// WithStartLine sets the line of the file the block starts on.
func WithStartLine(line int) Option {
	return func(o *options) { o.line = line }
}

// WithRelPath sets the path prefix of generated links.
func WithRelPath(p string) Option {
	return func(o *options) { o.relPath = p }
}

// WithMember sets the documented member. Its parameters are checked
// against \param commands and its name guards \copydoc cycles.
func WithMember(def *Definition) Option {
	return func(o *options) { o.member = def }
}

// WithExample marks the block as the documentation of an example file.
func WithExample(name string) Option {
	return func(o *options) { o.exampleName = name }
}

// Document is the result of a parse.
type Document struct {
	Root *Node

	// HasParamCommand and HasReturnCommand report whether the block used
	// \param or \return and \retval.
	HasParamCommand  bool
	HasReturnCommand bool

	// ParamsDocumented and ReturnDocumented are only meaningful when a
	// member was given.
	ParamsDocumented bool
	ReturnDocumented bool
}

// Parse parses a documentation comment.
func Parse(input string, opts ...Option) *Document {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	s := newSession(o)
	if s.member != nil {
		s.copyStack = append(s.copyStack, s.member.QualifiedName())
	}
	s.tok.Init(input, s.fileName, o.line)

	root := s.node(KindRoot, nil)
	s.parseRoot(root)
	if len(s.nodeStack) != 0 || len(s.saved) != 0 {
		panic("parser: unbalanced session stacks after parse")
	}

	s.checkUndocumentedParams()
	doc := &Document{
		Root:             root,
		HasParamCommand:  s.hasParamCommand,
		HasReturnCommand: s.hasReturnCommand,
	}
	doc.ParamsDocumented, doc.ReturnDocumented = s.detectDocumentedParams()
	return doc
}

// ParseText parses plain text such as a title: words, whitespace and
// symbols only.
func ParseText(input string, opts ...Option) *Node {
	o := defaultOptions()
	o.file = "<parseText>"
	for _, opt := range opts {
		opt(o)
	}
	s := newSession(o)
	s.tok.Init(input, s.fileName, o.line)

	text := s.node(KindText, nil)
	if input != "" {
		s.parseText(text)
	}
	return text
}
