package parser

import (
	"regexp"
	"strconv"
	"strings"
)

const tabSize = 8

var (
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9_.+\-]+@[A-Za-z0-9_\-]+(\.[A-Za-z0-9_\-]+)+$`)
	linkablePattern = regexp.MustCompile(`^(::|#)?~?[A-Za-z_][A-Za-z0-9_]*((::|#|\.|->)~?[A-Za-z_][A-Za-z0-9_]*)*(\([^()]*\))?:?$`)
	urlPrefixes     = []string{"http://", "https://", "ftp://", "file://", "news:"}
	rcsKeywords     = map[string]bool{
		"Author": true, "Date": true, "Header": true, "Id": true, "Locker": true, "Log": true,
		"Name": true, "RCSfile": true, "Revision": true, "Source": true, "State": true,
	}
	verbatimEnds = map[Mode]string{
		ModeCode:      "endcode",
		ModeVerbatim:  "endverbatim",
		ModeHTMLOnly:  "endhtmlonly",
		ModeManOnly:   "endmanonly",
		ModeLatexOnly: "endlatexonly",
		ModeXMLOnly:   "endxmlonly",
		ModeDot:       "enddot",
	}
)

// Lexer is the default Tokenizer.
type Lexer struct {
	input     string
	file      string
	pos       int
	line      int
	lineStart int
	mode      Mode

	// argument scanning progress for the title and reference modes
	quoted bool
	phase  int

	saved []lexerState
}

type lexerState struct {
	input     string
	file      string
	pos       int
	line      int
	lineStart int
	mode      Mode
	quoted    bool
	phase     int
}

func NewLexer() *Lexer {
	return &Lexer{line: 1}
}

func (l *Lexer) Init(input, file string, line int) {
	if line < 1 {
		line = 1
	}
	l.input = input
	l.file = file
	l.pos = 0
	l.line = line
	l.lineStart = 0
	l.SetMode(ModePara)
}

func (l *Lexer) SetMode(mode Mode) {
	l.mode = mode
	l.quoted = false
	l.phase = 0
}

func (l *Lexer) PushState() {
	l.saved = append(l.saved, lexerState{
		input:     l.input,
		file:      l.file,
		pos:       l.pos,
		line:      l.line,
		lineStart: l.lineStart,
		mode:      l.mode,
		quoted:    l.quoted,
		phase:     l.phase,
	})
}

func (l *Lexer) PopState() {
	if len(l.saved) == 0 {
		panic("parser: lexer state stack underflow")
	}
	s := l.saved[len(l.saved)-1]
	l.saved = l.saved[:len(l.saved)-1]
	l.input, l.file, l.pos, l.line, l.lineStart = s.input, s.file, s.pos, s.line, s.lineStart
	l.mode, l.quoted, l.phase = s.mode, s.quoted, s.phase
}

func (l *Lexer) Line() int {
	return l.line
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekAt(i int) byte {
	if i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.input)
}

// advanceTo moves to offset end, keeping line bookkeeping current.
func (l *Lexer) advanceTo(end int) {
	if end > len(l.input) {
		end = len(l.input)
	}
	for ; l.pos < end; l.pos++ {
		if l.input[l.pos] == '\n' {
			l.line++
			l.lineStart = l.pos + 1
		}
	}
}

func (l *Lexer) column(i int) int {
	col := 0
	for j := l.lineStart; j < i && j < len(l.input); j++ {
		if l.input[j] == '\t' {
			col = (col/tabSize + 1) * tabSize
		} else {
			col++
		}
	}
	return col
}

func (l *Lexer) skipBlanks() {
	for !l.eof() && isBlank(l.peek()) {
		l.pos++
	}
}

func (l *Lexer) token(kind TokenKind, name string) Token {
	return Token{Kind: kind, Name: name, Line: l.line}
}

func (l *Lexer) Next() Token {
	switch l.mode {
	case ModePara, ModeText:
		return l.nextPara()
	case ModeTitle:
		return l.nextTitle()
	case ModeTitleAttr:
		return l.nextTitleAttr()
	case ModeParam:
		return l.nextParam()
	case ModeFile:
		return l.nextFile()
	case ModePattern, ModeSkipTitle:
		return l.nextRestOfLine()
	case ModeLink:
		return l.nextLink()
	case ModeRef, ModeInternalRef:
		return l.nextRef()
	case ModeXRefItem:
		return l.nextXRefItem()
	case ModeXMLCode:
		return l.nextVerbatim("</code>")
	}
	if end, ok := verbatimEnds[l.mode]; ok {
		return l.nextVerbatim(end)
	}
	return l.token(TokenEOF, "")
}

func (l *Lexer) nextPara() Token {
	for strings.HasPrefix(l.input[l.pos:], "<!--") {
		end := strings.Index(l.input[l.pos:], "-->")
		if end < 0 {
			l.advanceTo(len(l.input))
			break
		}
		l.advanceTo(l.pos + end + 3)
	}
	if l.eof() {
		return l.token(TokenEOF, "")
	}
	if l.mode == ModePara && l.pos == l.lineStart {
		if tok, end, ok := l.listMarker(l.pos); ok {
			l.advanceTo(end)
			return tok
		}
	}
	switch ch := l.peek(); {
	case isBlank(ch) || ch == '\n':
		return l.scanBlanks()
	case ch == '\\' || ch == '@':
		if tok, ok := l.scanCommand(); ok {
			return tok
		}
	case ch == '{' && strings.HasPrefix(l.input[l.pos:], "{@link") && isSpace(l.peekAt(l.pos+6)):
		tok := l.token(TokenCommand, "javalink")
		l.advanceTo(l.pos + 6)
		return tok
	case ch == '<':
		if tok, ok := l.scanTag(); ok {
			return tok
		}
	case ch == '&':
		if tok, ok := l.scanEntity(); ok {
			return tok
		}
	case ch == '$':
		if tok, ok := l.scanRCS(); ok {
			return tok
		}
	}
	if tok, ok := l.scanURL(); ok {
		return tok
	}
	return l.scanWord(false)
}

// listMarker recognizes "-", "-#" or a lone "." at the start of the line
// beginning at i.
func (l *Lexer) listMarker(i int) (Token, int, bool) {
	for i < len(l.input) && isBlank(l.input[i]) {
		i++
	}
	switch l.peekAt(i) {
	case '-':
		j := i + 1
		enumerated := false
		if l.peekAt(j) == '#' {
			j++
			enumerated = true
		}
		if j < len(l.input) && !isSpace(l.input[j]) {
			return Token{}, 0, false
		}
		tok := Token{Kind: TokenListItem, Indent: l.column(i), Enumerated: enumerated, Line: l.line}
		if isBlank(l.peekAt(j)) {
			j++
		}
		return tok, j, true
	case '.':
		j := i + 1
		for j < len(l.input) && isBlank(l.input[j]) {
			j++
		}
		if j < len(l.input) && l.input[j] != '\n' && l.input[j] != '\r' {
			return Token{}, 0, false
		}
		return Token{Kind: TokenEndList, Indent: l.column(i), Line: l.line}, j, true
	}
	return Token{}, 0, false
}

func (l *Lexer) scanBlanks() Token {
	tok := l.token(TokenWhitespace, "")
	start := l.pos
	newlines := 0
	for !l.eof() {
		ch := l.peek()
		if isBlank(ch) {
			l.pos++
			continue
		}
		if ch != '\n' {
			break
		}
		l.advanceTo(l.pos + 1)
		newlines++
		if l.mode == ModePara {
			if _, _, ok := l.listMarker(l.pos); ok {
				break
			}
		}
	}
	tok.Chars = l.input[start:l.pos]
	if newlines >= 2 && l.mode == ModePara {
		tok.Kind = TokenNewPara
	}
	return tok
}

func (l *Lexer) scanCommand() (Token, bool) {
	next := l.peekAt(l.pos + 1)
	if next != 0 && strings.IndexByte(`\@<>&$#%`, next) >= 0 {
		tok := l.token(TokenCommand, string(next))
		l.advanceTo(l.pos + 2)
		return tok, true
	}
	if !isCmdChar(next) {
		return Token{}, false
	}
	i := l.pos + 1
	for i < len(l.input) && isCmdChar(l.input[i]) {
		i++
	}
	tok := l.token(TokenCommand, l.input[l.pos+1:i])
	switch tok.Name {
	case "form":
		if l.peekAt(i) == '#' {
			j := i + 1
			for j < len(l.input) && isDigit(l.input[j]) {
				j++
			}
			tok.ID, _ = strconv.Atoi(l.input[i+1 : j])
			i = j
		}
	case "param":
		if l.peekAt(i) == '[' {
			if end := strings.IndexByte(l.input[i:], ']'); end > 0 {
				tok.Dir = parseDir(l.input[i+1 : i+end])
				i += end + 1
			}
		}
	}
	l.advanceTo(i)
	return tok, true
}

func parseDir(s string) ParamDir {
	dir := DirUnspecified
	for _, part := range strings.Split(strings.ToLower(s), ",") {
		switch strings.TrimSpace(part) {
		case "in":
			dir |= DirIn
		case "out":
			dir |= DirOut
		}
	}
	return dir
}

func (l *Lexer) scanTag() (Token, bool) {
	i := l.pos + 1
	tok := l.token(TokenHTMLTag, "")
	if l.peekAt(i) == '/' {
		tok.EndTag = true
		i++
	}
	start := i
	if !isLetter(l.peekAt(i)) {
		return Token{}, false
	}
	for i < len(l.input) && (isLetter(l.input[i]) || isDigit(l.input[i])) {
		i++
	}
	tok.Name = l.input[start:i]
	for {
		for i < len(l.input) && isSpace(l.input[i]) {
			i++
		}
		switch {
		case i >= len(l.input):
			return Token{}, false
		case l.input[i] == '>':
			l.advanceTo(i + 1)
			return tok, true
		case l.input[i] == '/' && l.peekAt(i+1) == '>':
			tok.EmptyTag = true
			l.advanceTo(i + 2)
			return tok, true
		}
		nameStart := i
		for i < len(l.input) && !isSpace(l.input[i]) && strings.IndexByte("=>/", l.input[i]) < 0 {
			i++
		}
		if i == nameStart {
			return Token{}, false
		}
		attr := Attribute{Name: l.input[nameStart:i]}
		j := i
		for j < len(l.input) && isSpace(l.input[j]) {
			j++
		}
		if l.peekAt(j) == '=' {
			j++
			for j < len(l.input) && isSpace(l.input[j]) {
				j++
			}
			if q := l.peekAt(j); q == '"' || q == '\'' {
				end := strings.IndexByte(l.input[j+1:], q)
				if end < 0 {
					return Token{}, false
				}
				attr.Value = l.input[j+1 : j+1+end]
				j += end + 2
			} else {
				valStart := j
				for j < len(l.input) && !isSpace(l.input[j]) && l.input[j] != '>' {
					j++
				}
				attr.Value = l.input[valStart:j]
			}
			i = j
		}
		tok.Attrs = append(tok.Attrs, attr)
	}
}

func (l *Lexer) scanEntity() (Token, bool) {
	i := l.pos + 1
	if !isLetter(l.peekAt(i)) {
		return Token{}, false
	}
	for i < len(l.input) && (isLetter(l.input[i]) || isDigit(l.input[i])) {
		i++
	}
	if l.peekAt(i) != ';' {
		return Token{}, false
	}
	tok := l.token(TokenSymbol, l.input[l.pos:i+1])
	l.advanceTo(i + 1)
	return tok, true
}

func (l *Lexer) scanRCS() (Token, bool) {
	rest := l.input[l.pos+1:]
	colon := strings.IndexByte(rest, ':')
	if colon <= 0 || !rcsKeywords[rest[:colon]] {
		return Token{}, false
	}
	end := strings.IndexAny(rest[colon+1:], "$\n")
	if end < 0 || rest[colon+1+end] != '$' {
		return Token{}, false
	}
	tok := l.token(TokenRCSTag, rest[:colon])
	tok.Text = strings.TrimSpace(rest[colon+1 : colon+1+end])
	l.advanceTo(l.pos + 1 + colon + 1 + end + 1)
	return tok, true
}

func (l *Lexer) scanURL() (Token, bool) {
	rest := l.input[l.pos:]
	for _, prefix := range urlPrefixes {
		if !strings.HasPrefix(rest, prefix) {
			continue
		}
		i := len(prefix)
		for i < len(rest) && !isSpace(rest[i]) && strings.IndexByte(`<>"`, rest[i]) < 0 {
			i++
		}
		for i > len(prefix) && strings.IndexByte(".,;:!?)", rest[i-1]) >= 0 {
			i--
		}
		tok := l.token(TokenURL, rest[:i])
		l.advanceTo(l.pos + i)
		return tok, true
	}
	return Token{}, false
}

// scanWord reads a word. The first byte is always consumed. With quoted
// set, a double quote also ends the word.
func (l *Lexer) scanWord(quoted bool) Token {
	start := l.pos
	i := l.pos + 1
	for i < len(l.input) {
		ch := l.input[i]
		if isSpace(ch) || ch == '\\' || ch == '<' || (quoted && ch == '"') {
			break
		}
		if ch == '&' && l.entityAt(i) {
			break
		}
		if ch == '{' && strings.HasPrefix(l.input[i:], "{@") {
			break
		}
		i++
	}
	run := l.input[start:i]
	tok := l.token(TokenWord, run)
	switch {
	case emailPattern.MatchString(run):
		tok.Kind = TokenURL
		tok.IsEmail = true
	case len(run) > 1 && isPunct(run[0]) && !strings.HasPrefix(run, "::"):
		tok.Name = run[:1]
	default:
		tok.Name = trimTrailingPunct(run)
		if linkablePattern.MatchString(tok.Name) {
			tok.Kind = TokenLinkedWord
		}
	}
	l.advanceTo(start + len(tok.Name))
	return tok
}

func (l *Lexer) entityAt(i int) bool {
	j := i + 1
	for j < len(l.input) && isLetter(l.input[j]) {
		j++
	}
	return j > i+1 && l.peekAt(j) == ';'
}

// trimTrailingPunct strips sentence punctuation from the end of a word,
// keeping closing brackets that balance an opening one.
func trimTrailingPunct(w string) string {
	for len(w) > 1 {
		last := w[len(w)-1]
		switch {
		case strings.IndexByte(`.,;?!"'`, last) >= 0:
		case last == ')' && strings.Count(w, "(") < strings.Count(w, ")"):
		case last == ']' && strings.Count(w, "[") < strings.Count(w, "]"):
		default:
			return w
		}
		w = w[:len(w)-1]
	}
	return w
}

func (l *Lexer) nextTitle() Token {
	if l.phase == 0 {
		l.skipBlanks()
		if l.peek() == '"' {
			l.quoted = true
			l.pos++
		}
		l.phase = 1
	}
	if l.phase == 2 || l.eof() || l.peek() == '\n' {
		return l.token(TokenEOF, "")
	}
	if l.quoted && l.peek() == '"' {
		l.pos++
		l.phase = 2
		return l.token(TokenEOF, "")
	}
	rest := l.input[l.pos:]
	if !l.quoted && (strings.HasPrefix(rest, "width=") || strings.HasPrefix(rest, "height=")) {
		return l.token(TokenEOF, "")
	}
	return l.inlineToken()
}

// inlineToken lexes one token of a single-line argument such as a title
// or the text of a reference.
func (l *Lexer) inlineToken() Token {
	switch ch := l.peek(); {
	case isBlank(ch):
		tok := l.token(TokenWhitespace, "")
		start := l.pos
		l.skipBlanks()
		tok.Chars = l.input[start:l.pos]
		return tok
	case ch == '\\' || ch == '@':
		if tok, ok := l.scanCommand(); ok {
			return tok
		}
	case ch == '<':
		if tok, ok := l.scanTag(); ok {
			return tok
		}
	case ch == '&':
		if tok, ok := l.scanEntity(); ok {
			return tok
		}
	}
	if tok, ok := l.scanURL(); ok {
		return tok
	}
	return l.scanWord(l.quoted)
}

func (l *Lexer) nextTitleAttr() Token {
	l.skipBlanks()
	if l.eof() || l.peek() == '\n' || l.peek() == '\r' {
		return l.token(TokenEOF, "")
	}
	start := l.pos
	for !l.eof() && !isSpace(l.peek()) {
		l.pos++
	}
	tok := l.token(TokenWord, l.input[start:l.pos])
	if eq := strings.IndexByte(tok.Name, '='); eq >= 0 {
		tok.Name, tok.Chars = tok.Name[:eq], tok.Name[eq+1:]
	}
	return tok
}

func (l *Lexer) nextParam() Token {
	if l.eof() {
		return l.token(TokenEOF, "")
	}
	i := l.pos
	for i < len(l.input) && isBlank(l.input[i]) {
		i++
	}
	if l.peekAt(i) == ',' {
		i++
		for i < len(l.input) && isBlank(l.input[i]) {
			i++
		}
		l.pos = i
	}
	if ch := l.peek(); isSpace(ch) {
		tok := l.token(TokenWhitespace, "")
		start := l.pos
		l.skipBlanks()
		if l.peek() == '\n' {
			l.advanceTo(l.pos + 1)
		}
		tok.Chars = l.input[start:l.pos]
		return tok
	}
	if l.eof() {
		return l.token(TokenEOF, "")
	}
	start := l.pos
	for !l.eof() && !isSpace(l.peek()) && l.peek() != ',' {
		l.pos++
	}
	return l.token(TokenWord, l.input[start:l.pos])
}

func (l *Lexer) nextFile() Token {
	l.skipBlanks()
	if l.eof() || isSpace(l.peek()) {
		return l.token(TokenEOF, "")
	}
	if l.peek() == '"' {
		end := strings.IndexAny(l.input[l.pos+1:], "\"\n")
		if end >= 0 && l.input[l.pos+1+end] == '"' {
			tok := l.token(TokenWord, l.input[l.pos+1:l.pos+1+end])
			l.pos += end + 2
			return tok
		}
	}
	start := l.pos
	for !l.eof() && !isSpace(l.peek()) {
		l.pos++
	}
	return l.token(TokenWord, l.input[start:l.pos])
}

func (l *Lexer) nextRestOfLine() Token {
	end := strings.IndexByte(l.input[l.pos:], '\n')
	if end < 0 {
		end = len(l.input) - l.pos
	}
	text := strings.TrimSpace(l.input[l.pos : l.pos+end])
	tok := l.token(TokenWord, text)
	l.pos += end
	if text == "" {
		tok.Kind = TokenEOF
	}
	return tok
}

func (l *Lexer) nextLink() Token {
	l.skipBlanks()
	if l.eof() || isSpace(l.peek()) {
		return l.token(TokenEOF, "")
	}
	start := l.pos
	for !l.eof() && !isSpace(l.peek()) && l.peek() != '}' {
		l.pos++
	}
	return l.token(TokenWord, l.input[start:l.pos])
}

func (l *Lexer) nextRef() Token {
	switch l.phase {
	case 0:
		l.skipBlanks()
		if l.eof() || isSpace(l.peek()) {
			return l.token(TokenEOF, "")
		}
		start := l.pos
		for !l.eof() && !isSpace(l.peek()) && l.peek() != '"' {
			l.pos++
		}
		target := l.input[start:l.pos]
		for len(target) > 1 && strings.IndexByte(".,;:!?)", target[len(target)-1]) >= 0 {
			target = target[:len(target)-1]
		}
		l.pos = start + len(target)
		l.phase = 1
		return l.token(TokenWord, target)
	case 1:
		i := l.pos
		for i < len(l.input) && isBlank(l.input[i]) {
			i++
		}
		if l.peekAt(i) != '"' {
			l.phase = 3
			return l.token(TokenEOF, "")
		}
		l.pos = i + 1
		l.quoted = true
		l.phase = 2
		return l.nextRef()
	case 2:
		if l.eof() || l.peek() == '\n' {
			l.phase = 3
			return l.token(TokenEOF, "")
		}
		if l.peek() == '"' {
			l.pos++
			l.phase = 3
			return l.token(TokenEOF, "")
		}
		return l.inlineToken()
	}
	return l.token(TokenEOF, "")
}

func (l *Lexer) nextXRefItem() Token {
	l.skipBlanks()
	start := l.pos
	for !l.eof() && !isSpace(l.peek()) {
		l.pos++
	}
	tok := l.token(TokenWord, l.input[start:l.pos])
	l.skipBlanks()
	idStart := l.pos
	for !l.eof() && isDigit(l.peek()) {
		l.pos++
	}
	id, err := strconv.Atoi(l.input[idStart:l.pos])
	if tok.Name == "" || err != nil {
		return l.token(TokenEOF, "")
	}
	tok.ID = id
	return tok
}

// nextVerbatim returns the raw text up to the end marker. Without an end
// marker the rest of the input is returned with an EOF token.
func (l *Lexer) nextVerbatim(end string) Token {
	rest := l.input[l.pos:]
	tok := l.token(TokenVerbatim, "")
	idx, markerLen := -1, 0
	if strings.HasPrefix(end, "<") {
		idx, markerLen = strings.Index(rest, end), len(end)
	} else {
		for off := 0; off < len(rest); {
			i := strings.Index(rest[off:], end)
			if i < 0 {
				break
			}
			at := off + i
			if at > 0 && (rest[at-1] == '\\' || rest[at-1] == '@') && !isCmdChar(l.peekAt(l.pos+at+len(end))) {
				idx, markerLen = at-1, len(end)+1
				break
			}
			off = at + len(end)
		}
	}
	if idx < 0 {
		tok.Kind = TokenEOF
		tok.Text = rest
		l.advanceTo(len(l.input))
		return tok
	}
	tok.Text = rest[:idx]
	l.advanceTo(l.pos + idx + markerLen)
	return tok
}

func isBlank(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isCmdChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}

func isPunct(ch byte) bool {
	return strings.IndexByte(`.,;:?!()[]'"=`, ch) >= 0
}
