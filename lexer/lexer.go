// Package lexer turns JavaScript/TypeScript source extended with inline
// XML-like markup into a flat token stream. A stack of lexer states gives
// every nested context (markup inside an expression, an expression inside an
// attribute, a type annotation after ':') a well-defined return state.
//
// The lexer never fails: any byte it cannot classify becomes a one-byte
// Unknown token, so the output always covers the input contiguously and
// always ends with an EOF token.
package lexer

import (
	"github.com/jsxgrep/jsxgrep/token"
)

type state int

const (
	stateCode state = iota
	stateTagOpen
	stateTagClose
	stateChildren
	stateExpr
	stateType
	stateGeneric
)

// frame is one entry of the state stack. depth counts brackets opened inside
// the frame: braces for stateExpr, any of (/[/{ for stateType.
type frame struct {
	state   state
	depth   int
	sawType bool
}

// Options controls which trivia tokens appear in the output. Position
// tracking and disambiguation are unaffected; excluded tokens are simply not
// appended.
type Options struct {
	IncludeWhitespace bool
	IncludeComments   bool
}

// Lexer scans a single source string. Not safe for reuse; create one per
// input.
type Lexer struct {
	input  string
	pos    int
	line   int
	col    int
	stack  []frame
	tokens []token.Token
	opts   Options

	prev    token.Token // last significant token, tracked regardless of opts
	hasPrev bool

	// ternaryDepth counts ternary '?' operators still waiting for their
	// ':', which must not open a type annotation.
	ternaryDepth int
}

// New returns a Lexer over input with the given options.
func New(input string, opts Options) *Lexer {
	return &Lexer{
		input: input,
		line:  1,
		col:   1,
		stack: []frame{{state: stateCode}},
		opts:  opts,
	}
}

// Tokenize returns the significant tokens of source, EOF-terminated.
func Tokenize(source string) []token.Token {
	return New(source, Options{}).Tokenize()
}

// TokenizeAll returns every token of source including whitespace and
// comments, EOF-terminated.
func TokenizeAll(source string) []token.Token {
	return New(source, Options{IncludeWhitespace: true, IncludeComments: true}).Tokenize()
}

// Tokenize processes the entire input and produces the token list.
func (l *Lexer) Tokenize() []token.Token {
	for l.pos < len(l.input) {
		switch l.top().state {
		case stateCode, stateExpr:
			l.lexCode()
		case stateTagOpen:
			l.lexTagOpen()
		case stateTagClose:
			l.lexTagClose()
		case stateChildren:
			l.lexChildren()
		case stateType:
			l.lexType()
		case stateGeneric:
			l.lexGeneric()
		}
	}

	l.tokens = append(l.tokens, token.Token{
		Type:   token.EOF,
		Start:  l.pos,
		End:    l.pos,
		Line:   l.line,
		Column: l.col,
	})
	return l.tokens
}

// mark remembers a source position so a token spanning from it can be
// emitted after the cursor has moved on.
type mark struct {
	off, line, col int
}

func (l *Lexer) mark() mark {
	return mark{off: l.pos, line: l.line, col: l.col}
}

func (l *Lexer) emit(t token.Type, m mark) {
	tok := token.Token{
		Type:   t,
		Text:   l.input[m.off:l.pos],
		Start:  m.off,
		End:    l.pos,
		Line:   m.line,
		Column: m.col,
	}
	switch t {
	case token.Whitespace:
		if l.opts.IncludeWhitespace {
			l.tokens = append(l.tokens, tok)
		}
		return
	case token.Comment:
		if l.opts.IncludeComments {
			l.tokens = append(l.tokens, tok)
		}
		return
	}
	l.tokens = append(l.tokens, tok)
	l.prev = tok
	l.hasPrev = true
}

func (l *Lexer) top() *frame {
	return &l.stack[len(l.stack)-1]
}

func (l *Lexer) push(s state) {
	l.stack = append(l.stack, frame{state: s})
}

// pop removes the current frame but never the root code frame.
func (l *Lexer) pop() {
	if len(l.stack) > 1 {
		l.stack = l.stack[:len(l.stack)-1]
	}
}

func (l *Lexer) peek() byte {
	if l.pos < len(l.input) {
		return l.input[l.pos]
	}
	return 0
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n < len(l.input) {
		return l.input[l.pos+n]
	}
	return 0
}

// advance consumes one byte, keeping line/column current.
func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// nextNonSpace returns the first byte at or after pos that is not
// whitespace, without moving the cursor.
func (l *Lexer) nextNonSpace(from int) byte {
	for i := from; i < len(l.input); i++ {
		if !isSpace(l.input[i]) {
			return l.input[i]
		}
	}
	return 0
}

func (l *Lexer) lexWhitespace() {
	m := l.mark()
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.advance()
	}
	l.emit(token.Whitespace, m)
}

// lexUnknown is the fallback for bytes no state recognizes.
func (l *Lexer) lexUnknown() {
	m := l.mark()
	l.advance()
	l.emit(token.Unknown, m)
}

// lexString scans a single- or double-quoted string, emitting it as typ
// (String in code, AttributeValue inside a tag). An unterminated string ends
// at the newline or EOF.
func (l *Lexer) lexString(typ token.Type) {
	m := l.mark()
	quote := l.input[l.pos]
	l.advance()
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '\\' && l.pos+1 < len(l.input) {
			l.advanceN(2)
			continue
		}
		if c == quote {
			l.advance()
			break
		}
		if c == '\n' {
			break
		}
		l.advance()
	}
	l.emit(typ, m)
}

// lexTemplate scans a backtick template literal as a single token. Embedded
// ${...} regions are skipped by brace-depth counting instead of re-entering
// the state machine, so decoy braces inside an interpolation do not end it
// early.
func (l *Lexer) lexTemplate() {
	m := l.mark()
	l.advance() // opening backtick
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '\\' && l.pos+1 < len(l.input) {
			l.advanceN(2)
			continue
		}
		if c == '$' && l.peekAt(1) == '{' {
			l.advanceN(2)
			depth := 1
			for l.pos < len(l.input) && depth > 0 {
				switch l.input[l.pos] {
				case '{':
					depth++
				case '}':
					depth--
				}
				l.advance()
			}
			continue
		}
		if c == '`' {
			l.advance()
			break
		}
		l.advance()
	}
	l.emit(token.Template, m)
}

func (l *Lexer) lexNumber() {
	m := l.mark()
	if l.peek() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X' ||
		l.peekAt(1) == 'b' || l.peekAt(1) == 'B' ||
		l.peekAt(1) == 'o' || l.peekAt(1) == 'O') {
		l.advanceN(2)
		for l.pos < len(l.input) && (isHexDigit(l.input[l.pos]) || l.input[l.pos] == '_') {
			l.advance()
		}
	} else {
		for l.pos < len(l.input) && (isDigit(l.input[l.pos]) || l.input[l.pos] == '_') {
			l.advance()
		}
		if l.peek() == '.' && isDigit(l.peekAt(1)) {
			l.advance()
			for l.pos < len(l.input) && (isDigit(l.input[l.pos]) || l.input[l.pos] == '_') {
				l.advance()
			}
		}
		if l.peek() == 'e' || l.peek() == 'E' {
			next := l.peekAt(1)
			if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
				l.advanceN(2)
				for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
					l.advance()
				}
			}
		}
	}
	if l.peek() == 'n' { // bigint suffix
		l.advance()
	}
	l.emit(token.Number, m)
}

func (l *Lexer) lexLineComment() {
	m := l.mark()
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.advance()
	}
	l.emit(token.Comment, m)
}

func (l *Lexer) lexBlockComment() {
	m := l.mark()
	l.advanceN(2)
	for l.pos < len(l.input) {
		if l.input[l.pos] == '*' && l.peekAt(1) == '/' {
			l.advanceN(2)
			break
		}
		l.advance()
	}
	l.emit(token.Comment, m)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

// isTagNameChar covers markup element names, including namespaced and
// member-expression forms like svg:rect and Foo.Bar.
func isTagNameChar(c byte) bool {
	return isIdentChar(c) || c == '-' || c == '.' || c == ':'
}

// isAttrNameChar covers attribute names such as data-id and xlink:href.
func isAttrNameChar(c byte) bool {
	return isIdentChar(c) || c == '-' || c == ':'
}
