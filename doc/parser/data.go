package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Style is an inline style that can be switched on and off with a
// StyleChange node.
type Style int

const (
	StyleBold Style = iota
	StyleItalic
	StyleCode
	StyleCenter
	StyleSmall
	StyleSubscript
	StyleSuperscript
	StylePreformatted
	StyleDiv
	StyleSpan
)

var styleNames = [...]string{
	StyleBold:         "b",
	StyleItalic:       "em",
	StyleCode:         "code",
	StyleCenter:       "center",
	StyleSmall:        "small",
	StyleSubscript:    "subscript",
	StyleSuperscript:  "superscript",
	StylePreformatted: "pre",
	StyleDiv:          "div",
	StyleSpan:         "span",
}

func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return "unknown"
}

// SymbolType is the category of a Symbol node.
type SymbolType int

const (
	SymUnknown SymbolType = iota
	SymBSlash
	SymAt
	SymLess
	SymGreater
	SymAmp
	SymDollar
	SymHash
	SymPercent
	SymCopy
	SymTm
	SymReg
	SymApos
	SymQuot
	SymLsquo
	SymRsquo
	SymLdquo
	SymRdquo
	SymNdash
	SymMdash
	SymUml
	SymAcute
	SymGrave
	SymCirc
	SymSlash
	SymTilde
	SymSzlig
	SymCedil
	SymRing
	SymNbsp
)

var symbolEntities = map[string]SymbolType{
	"&copy;":  SymCopy,
	"&tm;":    SymTm,
	"&trade;": SymTm,
	"&reg;":   SymReg,
	"&lt;":    SymLess,
	"&gt;":    SymGreater,
	"&amp;":   SymAmp,
	"&apos;":  SymApos,
	"&quot;":  SymQuot,
	"&lsquo;": SymLsquo,
	"&rsquo;": SymRsquo,
	"&ldquo;": SymLdquo,
	"&rdquo;": SymRdquo,
	"&ndash;": SymNdash,
	"&mdash;": SymMdash,
	"&szlig;": SymSzlig,
	"&nbsp;":  SymNbsp,
}

// accents maps the suffix of a letter entity such as "&ouml;" to its type.
var accents = []struct {
	suffix string
	typ    SymbolType
}{
	{"uml;", SymUml},
	{"acute;", SymAcute},
	{"grave;", SymGrave},
	{"circ;", SymCirc},
	{"tilde;", SymTilde},
	{"cedil;", SymCedil},
	{"ring;", SymRing},
	{"slash;", SymSlash},
}

var escapeSymbols = map[string]SymbolType{
	"\\": SymBSlash,
	"@":  SymAt,
	"<":  SymLess,
	">":  SymGreater,
	"&":  SymAmp,
	"$":  SymDollar,
	"#":  SymHash,
	"%":  SymPercent,
}

// DecodeSymbol maps an entity such as "&copy;" or "&auml;" to its symbol
// type. Letter entities also return the accented letter.
func DecodeSymbol(name string) (SymbolType, byte) {
	if t, ok := symbolEntities[name]; ok {
		return t, 0
	}
	for _, a := range accents {
		if len(name) == len(a.suffix)+2 && name[0] == '&' && strings.HasSuffix(name, a.suffix) {
			return a.typ, name[1]
		}
	}
	return SymUnknown, 0
}

// Word is a plain word.
type Word struct {
	Text string
}

// LinkedWord is a word that resolved to a documented entity.
type LinkedWord struct {
	Text    string
	Ref     string // qualified name of the target
	File    string
	RelPath string
	Anchor  string
	Tooltip string
}

// WhiteSpace is a run of literal whitespace.
type WhiteSpace struct {
	Chars string
}

type URL struct {
	Text    string
	IsEmail bool
}

type Symbol struct {
	Type   SymbolType
	Letter byte
}

// Entity returns the HTML entity for s, suitable for html.UnescapeString.
func (s *Symbol) Entity() string {
	switch s.Type {
	case SymBSlash:
		return "\\"
	case SymAt:
		return "@"
	case SymLess:
		return "&lt;"
	case SymGreater:
		return "&gt;"
	case SymAmp:
		return "&amp;"
	case SymDollar:
		return "$"
	case SymHash:
		return "#"
	case SymPercent:
		return "%"
	case SymUml:
		return "&" + string(s.Letter) + "uml;"
	case SymAcute:
		return "&" + string(s.Letter) + "acute;"
	case SymGrave:
		return "&" + string(s.Letter) + "grave;"
	case SymCirc:
		return "&" + string(s.Letter) + "circ;"
	case SymSlash:
		return "&" + string(s.Letter) + "slash;"
	case SymTilde:
		return "&" + string(s.Letter) + "tilde;"
	case SymCedil:
		return "&" + string(s.Letter) + "cedil;"
	case SymRing:
		return "&" + string(s.Letter) + "ring;"
	}
	for name, t := range symbolEntities {
		if t == s.Type && name != "&trade;" {
			return name
		}
	}
	return ""
}

// Literal returns the source spelling of s: the escaped character for
// escape commands, the entity otherwise.
func (s *Symbol) Literal() string {
	switch s.Type {
	case SymLess:
		return "<"
	case SymGreater:
		return ">"
	case SymAmp:
		return "&"
	}
	return s.Entity()
}

// StyleChange opens or closes a style span. Position is the depth of the
// ancestor stack when the span was opened.
type StyleChange struct {
	Style    Style
	Enter    bool
	Position int
	Attrs    []Attribute
}

type Anchor struct {
	ID     string
	File   string
	Anchor string
}

// VerbatimType distinguishes the raw-text blocks.
type VerbatimType int

const (
	VerbatimCode VerbatimType = iota
	VerbatimVerbatim
	VerbatimHTMLOnly
	VerbatimManOnly
	VerbatimLatexOnly
	VerbatimXMLOnly
	VerbatimDot
)

var verbatimNames = [...]string{"code", "verbatim", "htmlonly", "manonly", "latexonly", "xmlonly", "dot"}

func (t VerbatimType) String() string { return verbatimNames[t] }

type Verbatim struct {
	Type        VerbatimType
	Text        string
	Context     string
	IsExample   bool
	ExampleFile string
}

// IncludeType is the flavor of an include command.
type IncludeType int

const (
	IncludePlain IncludeType = iota
	IncludeWithLines
	IncludeDontInclude
	IncludeHTML
	IncludeVerbatim
)

var includeNames = [...]string{"include", "includelineno", "dontinclude", "htmlinclude", "verbinclude"}

func (t IncludeType) String() string { return includeNames[t] }

type Include struct {
	Type        IncludeType
	File        string
	Text        string
	Context     string
	IsExample   bool
	ExampleFile string
}

// IncOperatorType is one of the operators walking a \dontinclude buffer.
type IncOperatorType int

const (
	IncLine IncOperatorType = iota
	IncSkipLine
	IncSkip
	IncUntil
)

var incOperatorNames = [...]string{"line", "skipline", "skip", "until"}

func (t IncOperatorType) String() string { return incOperatorNames[t] }

type IncOperator struct {
	Type        IncOperatorType
	Pattern     string
	Text        string
	Context     string
	IsExample   bool
	ExampleFile string
	First, Last bool
}

type Formula struct {
	ID   int
	Name string
	Text string
}

type IndexEntry struct {
	Entry string
}

// Para is a paragraph. First and Last mark its position within the
// enclosing block.
type Para struct {
	First, Last bool
	InsidePre   bool
}

// SimpleSectType is the kind of a titled block.
type SimpleSectType int

const (
	SectUnknown SimpleSectType = iota
	SectSee
	SectReturn
	SectAuthor
	SectAuthors
	SectVersion
	SectSince
	SectDate
	SectNote
	SectWarning
	SectPre
	SectPost
	SectInvar
	SectRemark
	SectAttention
	SectUser
	SectRcs
)

var simpleSectNames = [...]string{
	"unknown", "see", "return", "author", "authors", "version", "since", "date",
	"note", "warning", "pre", "post", "invariant", "remark", "attention", "user", "rcs",
}

func (t SimpleSectType) String() string { return simpleSectNames[t] }

type SimpleSect struct {
	Type  SimpleSectType
	Title *Node
}

// ParamSectType is the kind of a parameter section.
type ParamSectType int

const (
	ParamUnknown ParamSectType = iota
	ParamParam
	ParamRetVal
	ParamException
)

var paramSectNames = [...]string{"unknown", "param", "retval", "exception"}

func (t ParamSectType) String() string { return paramSectNames[t] }

// ParamDir is the data direction of a documented parameter.
type ParamDir int

const (
	DirUnspecified ParamDir = iota
	DirIn
	DirOut
	DirInOut
)

var paramDirNames = [...]string{"", "in", "out", "in,out"}

func (d ParamDir) String() string { return paramDirNames[d] }

type ParamSect struct {
	Type ParamSectType
	Dir  ParamDir
}

// ParamList documents one or more names; the children are the
// description paragraphs.
type ParamList struct {
	Type   ParamSectType
	Dir    ParamDir
	Params []*Node
}

// Names returns the documented names as written.
func (p *ParamList) Names() []string {
	names := make([]string, 0, len(p.Params))
	for _, n := range p.Params {
		names = append(names, n.Text())
	}
	return names
}

type AutoList struct {
	Indent     int
	Enumerated bool
	Depth      int
}

type AutoListItem struct {
	Num int
}

type HTMLList struct {
	Ordered bool
	XML     bool
	Attrs   []Attribute
}

type HTMLListItem struct {
	Num   int
	Attrs []Attribute
}

type HTMLDescList struct {
	Attrs []Attribute
}

type HTMLDescTitle struct {
	Attrs []Attribute
}

type HTMLDescData struct {
	Attrs []Attribute
}

type HTMLTable struct {
	Attrs   []Attribute
	Caption *Node
}

type HTMLCaption struct {
	Attrs []Attribute
}

type HTMLRow struct {
	Attrs []Attribute
}

type HTMLCell struct {
	Attrs       []Attribute
	Heading     bool
	First, Last bool

	closed bool // </td> or </th> seen
}

type HTMLHeader struct {
	Level int
	Attrs []Attribute
}

type HRef struct {
	URL   string
	Attrs []Attribute
}

// Ref is a \ref or \subpage reference. An unresolved reference keeps its
// target with an empty File.
type Ref struct {
	Target    string
	Text      string
	File      string
	RelPath   string
	Anchor    string
	Ref       string
	ToSection bool
	ToAnchor  bool
}

// Resolved reports whether the reference found a target.
func (r *Ref) Resolved() bool { return r.File != "" }

type Link struct {
	Target  string
	RefText string
	File    string
	RelPath string
	Anchor  string
	Ref     string
}

func (l *Link) Resolved() bool { return l.File != "" }

type InternalRef struct {
	File    string
	RelPath string
	Anchor  string
}

type SecRefItem struct {
	Target string
	File   string
	Anchor string
}

// ImageType is the output format an image is meant for.
type ImageType int

const (
	ImageHTML ImageType = iota
	ImageLatex
	ImageRtf
)

var imageNames = [...]string{"html", "latex", "rtf"}

func (t ImageType) String() string { return imageNames[t] }

type Image struct {
	Type   ImageType
	Name   string
	Path   string
	Width  string
	Height string
	Attrs  []Attribute
}

type DotFile struct {
	Name   string
	File   string
	Width  string
	Height string
}

// Copy holds the paragraphs taken from another entity's documentation.
type Copy struct {
	Target  string
	Brief   bool
	Details bool
}

type XRefItem struct {
	Key    string
	ID     int
	File   string
	Anchor string
	Title  string
}

type Section struct {
	Level  int
	ID     string
	Title  string
	File   string
	Anchor string
}

type Internal struct {
	Level int
}

func (*Word) data()          {}
func (*LinkedWord) data()    {}
func (*WhiteSpace) data()    {}
func (*URL) data()           {}
func (*Symbol) data()        {}
func (*StyleChange) data()   {}
func (*Anchor) data()        {}
func (*Verbatim) data()      {}
func (*Include) data()       {}
func (*IncOperator) data()   {}
func (*Formula) data()       {}
func (*IndexEntry) data()    {}
func (*Para) data()          {}
func (*SimpleSect) data()    {}
func (*ParamSect) data()     {}
func (*ParamList) data()     {}
func (*AutoList) data()      {}
func (*AutoListItem) data()  {}
func (*HTMLList) data()      {}
func (*HTMLListItem) data()  {}
func (*HTMLDescList) data()  {}
func (*HTMLDescTitle) data() {}
func (*HTMLDescData) data()  {}
func (*HTMLTable) data()     {}
func (*HTMLCaption) data()   {}
func (*HTMLRow) data()       {}
func (*HTMLCell) data()      {}
func (*HTMLHeader) data()    {}
func (*HRef) data()          {}
func (*Ref) data()           {}
func (*Link) data()          {}
func (*InternalRef) data()   {}
func (*SecRefItem) data()    {}
func (*Image) data()         {}
func (*DotFile) data()       {}
func (*Copy) data()          {}
func (*XRefItem) data()      {}
func (*Section) data()       {}
func (*Internal) data()      {}

func (d *Word) describe() string       { return strconv.Quote(d.Text) }
func (d *WhiteSpace) describe() string { return strconv.Quote(d.Chars) }
func (d *LinkedWord) describe() string {
	return fmt.Sprintf("%q -> %s", d.Text, d.Ref)
}
func (d *URL) describe() string {
	if d.IsEmail {
		return d.Text + " (email)"
	}
	return d.Text
}
func (d *Symbol) describe() string { return d.Entity() }
func (d *StyleChange) describe() string {
	if d.Enter {
		return "<" + d.Style.String() + ">"
	}
	return "</" + d.Style.String() + ">"
}
func (d *Anchor) describe() string   { return d.ID }
func (d *Verbatim) describe() string { return d.Type.String() + " " + strconv.Quote(d.Text) }
func (d *Include) describe() string  { return d.Type.String() + " " + d.File }
func (d *IncOperator) describe() string {
	return d.Type.String() + " " + strconv.Quote(d.Pattern)
}
func (d *Formula) describe() string    { return d.Name }
func (d *IndexEntry) describe() string { return strconv.Quote(d.Entry) }
func (d *SimpleSect) describe() string { return d.Type.String() }
func (d *ParamSect) describe() string  { return d.Type.String() }
func (d *ParamList) describe() string {
	if d.Dir != DirUnspecified {
		return "[" + d.Dir.String() + "]"
	}
	return ""
}
func (d *AutoList) describe() string {
	kind := "bullet"
	if d.Enumerated {
		kind = "enum"
	}
	return fmt.Sprintf("%s indent=%d depth=%d", kind, d.Indent, d.Depth)
}
func (d *HTMLList) describe() string {
	if d.Ordered {
		return "ordered"
	}
	return "unordered"
}
func (d *HTMLCell) describe() string {
	if d.Heading {
		return "heading"
	}
	return ""
}
func (d *HTMLHeader) describe() string { return "h" + strconv.Itoa(d.Level) }
func (d *HRef) describe() string       { return d.URL }
func (d *Ref) describe() string {
	if !d.Resolved() {
		return d.Target + " (unresolved)"
	}
	return d.Target + " -> " + d.File + "#" + d.Anchor
}
func (d *Link) describe() string {
	if !d.Resolved() {
		return d.Target + " (unresolved)"
	}
	return d.Target + " -> " + d.File + "#" + d.Anchor
}
func (d *InternalRef) describe() string { return d.File + "#" + d.Anchor }
func (d *SecRefItem) describe() string  { return d.Target }
func (d *Image) describe() string       { return d.Type.String() + " " + d.Name }
func (d *DotFile) describe() string     { return d.Name }
func (d *Copy) describe() string        { return d.Target }
func (d *XRefItem) describe() string    { return fmt.Sprintf("%s %d", d.Key, d.ID) }
func (d *Section) describe() string {
	return fmt.Sprintf("%d %s %q", d.Level, d.ID, d.Title)
}
