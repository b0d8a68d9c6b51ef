package parser

import (
	"fmt"
	"strings"
)

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenWord
	TokenLinkedWord
	TokenWhitespace
	TokenNewPara
	TokenListItem
	TokenEndList
	TokenCommand
	TokenHTMLTag
	TokenSymbol
	TokenURL
	TokenRCSTag
	TokenVerbatim
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:        "end of comment",
	TokenWord:       "word",
	TokenLinkedWord: "linked word",
	TokenWhitespace: "whitespace",
	TokenNewPara:    "new paragraph",
	TokenListItem:   "list item",
	TokenEndList:    "end of list",
	TokenCommand:    "command",
	TokenHTMLTag:    "html tag",
	TokenSymbol:     "symbol",
	TokenURL:        "url",
	TokenRCSTag:     "rcs tag",
	TokenVerbatim:   "verbatim",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Attribute is one name/value pair of an HTML tag.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// AttrValue returns the value of the named attribute, ignoring case.
func AttrValue(attrs []Attribute, name string) (string, bool) {
	for _, a := range attrs {
		if strings.EqualFold(a.Name, name) {
			return a.Value, true
		}
	}
	return "", false
}

// Token is one lexical unit of a documentation block. Which fields are
// set depends on Kind:
//
//	Word, LinkedWord  Name is the word
//	Whitespace        Chars is the literal run
//	ListItem, EndList Indent is the marker column, Enumerated is set for "-#"
//	Command           Name is the command without its leading \ or @;
//	                  ID is the number of \form#N; Dir is the \param direction
//	HTMLTag           Name, Attrs, EndTag and EmptyTag
//	Symbol            Name is the entity, e.g. "&copy;"
//	URL               Name is the address, IsEmail marks mail addresses
//	RCSTag            Name is the keyword, Text its value
//	Verbatim          Text is the raw block
//	Word (TitleAttr)  Name is the key, Chars the value
type Token struct {
	Kind       TokenKind
	Name       string
	Chars      string
	Text       string
	Attrs      []Attribute
	EndTag     bool
	EmptyTag   bool
	Indent     int
	Enumerated bool
	ID         int
	Dir        ParamDir
	IsEmail    bool
	Line       int
}

func (t Token) String() string {
	switch t.Kind {
	case TokenEOF, TokenNewPara:
		return t.Kind.String()
	case TokenWhitespace:
		return fmt.Sprintf("%s %q", t.Kind, t.Chars)
	case TokenListItem, TokenEndList:
		if t.Enumerated {
			return fmt.Sprintf("%s indent=%d enumerated", t.Kind, t.Indent)
		}
		return fmt.Sprintf("%s indent=%d", t.Kind, t.Indent)
	case TokenCommand:
		return fmt.Sprintf("%s \\%s", t.Kind, t.Name)
	case TokenHTMLTag:
		slash := ""
		if t.EndTag {
			slash = "/"
		}
		return fmt.Sprintf("%s <%s%s>", t.Kind, slash, t.Name)
	case TokenRCSTag:
		return fmt.Sprintf("%s %s: %q", t.Kind, t.Name, t.Text)
	case TokenVerbatim:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Name)
}

// Mode selects the lexical rules a Tokenizer applies.
type Mode int

const (
	ModePara Mode = iota
	ModeTitle
	ModeTitleAttr
	ModeParam
	ModeFile
	ModePattern
	ModeLink
	ModeRef
	ModeInternalRef
	ModeXRefItem
	ModeSkipTitle
	ModeCode
	ModeXMLCode
	ModeVerbatim
	ModeHTMLOnly
	ModeManOnly
	ModeLatexOnly
	ModeXMLOnly
	ModeDot
	ModeText
)

// Tokenizer produces the token stream the parser consumes.
type Tokenizer interface {
	// Init starts tokenizing input; line is the line number of its first
	// line within file.
	Init(input, file string, line int)
	Next() Token
	SetMode(mode Mode)
	// PushState saves the input, position and mode; PopState restores
	// the most recent saved state.
	PushState()
	PopState()
	Line() int
}
