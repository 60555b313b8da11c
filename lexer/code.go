package lexer

import "github.com/jsxgrep/jsxgrep/token"

var keywords = map[string]bool{
	"abstract": true, "as": true, "async": true, "await": true,
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "declare": true, "default": true,
	"delete": true, "do": true, "else": true, "enum": true, "export": true,
	"extends": true, "false": true, "finally": true, "for": true, "from": true,
	"function": true, "get": true, "if": true, "implements": true,
	"import": true, "in": true, "instanceof": true, "interface": true,
	"let": true, "namespace": true, "new": true, "null": true, "of": true,
	"private": true, "protected": true, "public": true, "readonly": true,
	"return": true, "set": true, "static": true, "super": true, "switch": true,
	"this": true, "throw": true, "true": true, "try": true, "type": true,
	"typeof": true, "undefined": true, "var": true, "void": true,
	"while": true, "yield": true,
}

// genericKeywords are the keywords after which '<' always opens a generic
// parameter list.
var genericKeywords = map[string]bool{
	"class": true, "interface": true, "type": true,
	"extends": true, "implements": true,
}

// valueKeywords are value-like keywords; a '/' after one of them is
// division, never a regex literal.
var valueKeywords = map[string]bool{
	"this": true, "true": true, "false": true, "null": true, "undefined": true,
}

// operators in longest-first order so multi-byte forms are munched before
// their prefixes.
var operators = []string{
	">>>=", "===", "!==", "**=", "...", "<<=", ">>=", ">>>", "&&=", "||=", "??=",
	"==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>", "**",
	"+", "-", "*", "%", "&", "|", "^", "!", "~", "=", ">",
}

const punctuation = "(){}[],;."

// lexCode handles the plain-code state and the markup-expression state. The
// only difference is brace accounting: inside an expression the matching '}'
// ends the frame instead of being punctuation.
func (l *Lexer) lexCode() {
	c := l.peek()
	switch {
	case isSpace(c):
		l.lexWhitespace()
	case c == '/' && l.peekAt(1) == '/':
		l.lexLineComment()
	case c == '/' && l.peekAt(1) == '*':
		l.lexBlockComment()
	case c == '\'' || c == '"':
		l.lexString(token.String)
	case c == '`':
		l.lexTemplate()
	case isDigit(c) || (c == '.' && isDigit(l.peekAt(1))):
		l.lexNumber()
	case isIdentStart(c):
		l.lexIdentifier()
	case c == '<':
		l.lexLess()
	case c == ':':
		l.lexColon()
	case c == '/':
		l.lexSlash()
	case c == '?':
		l.lexQuestion()
	case c == '=' && l.peekAt(1) == '>':
		m := l.mark()
		l.advanceN(2)
		l.emit(token.Arrow, m)
	case c == '{':
		m := l.mark()
		l.advance()
		l.emit(token.Punctuation, m)
		if l.top().state == stateExpr {
			l.top().depth++
		}
	case c == '}':
		m := l.mark()
		l.advance()
		if t := l.top(); t.state == stateExpr && t.depth == 0 {
			l.emit(token.ExpressionEnd, m)
			l.pop()
		} else {
			if l.top().state == stateExpr {
				l.top().depth--
			}
			l.emit(token.Punctuation, m)
		}
	case indexByte(punctuation, c):
		if c == ';' {
			l.ternaryDepth = 0
		}
		m := l.mark()
		l.advance()
		l.emit(token.Punctuation, m)
	default:
		if op := l.matchOperator(); op != "" {
			m := l.mark()
			l.advanceN(len(op))
			l.emit(token.Operator, m)
			return
		}
		l.lexUnknown()
	}
}

func (l *Lexer) lexIdentifier() {
	m := l.mark()
	for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
		l.advance()
	}
	word := l.input[m.off:l.pos]
	if keywords[word] {
		l.emit(token.Keyword, m)
		if word == "as" && l.prevEndsValue() {
			l.push(stateType)
		}
		return
	}
	l.emit(token.Identifier, m)
}

// lexLess decides between markup, a generic parameter list, and the
// less-than operator.
//
//   - "</" and "<>" always start markup.
//   - A '<' right after one of class/interface/type/extends/implements, or
//     right after an identifier, type name, or generic close, opens a
//     generic list when a name follows with no space (Array<string>).
//   - Otherwise "<Name" is markup unless the name is immediately followed
//     by ',' or by ">(", which only occur in generic argument lists.
//   - Anything else is the comparison operator ("a < b" has a space before
//     'b' and falls through here).
func (l *Lexer) lexLess() {
	next := l.peekAt(1)
	if next == '/' || next == '>' {
		l.lexMarkupStart()
		return
	}
	if !isIdentStart(next) {
		l.lexLessOperator()
		return
	}
	if l.hasPrev {
		if l.prev.Type == token.Keyword && genericKeywords[l.prev.Text] {
			l.lexGenericOpen()
			return
		}
		switch l.prev.Type {
		case token.Identifier, token.TypeName, token.GenericClose:
			l.lexGenericOpen()
			return
		}
	}
	// Scan past "<Name" and peek at what follows.
	i := l.pos + 1
	for i < len(l.input) && isTagNameChar(l.input[i]) {
		i++
	}
	for i < len(l.input) && isSpace(l.input[i]) {
		i++
	}
	if i < len(l.input) {
		if l.input[i] == ',' {
			l.lexGenericOpen()
			return
		}
		if l.input[i] == '>' && i+1 < len(l.input) && l.input[i+1] == '(' {
			l.lexGenericOpen()
			return
		}
	}
	l.lexMarkupStart()
}

func (l *Lexer) lexLessOperator() {
	m := l.mark()
	switch {
	case l.peekAt(1) == '<' && l.peekAt(2) == '=':
		l.advanceN(3)
	case l.peekAt(1) == '<' || l.peekAt(1) == '=':
		l.advanceN(2)
	default:
		l.advance()
	}
	l.emit(token.Operator, m)
}

func (l *Lexer) lexGenericOpen() {
	m := l.mark()
	l.advance()
	l.emit(token.GenericOpen, m)
	l.push(stateGeneric)
}

// lexColon opens a type annotation only when the previous significant token
// was an identifier, a closing ')' or ']', or an optional marker; otherwise
// it is a plain operator (ternary else, object-literal key separator).
func (l *Lexer) lexColon() {
	m := l.mark()
	l.advance()
	if l.ternaryDepth > 0 {
		l.ternaryDepth--
		l.emit(token.Operator, m)
		return
	}
	if l.colonOpensType() {
		l.emit(token.Colon, m)
		l.push(stateType)
		return
	}
	l.emit(token.Operator, m)
}

func (l *Lexer) colonOpensType() bool {
	if !l.hasPrev {
		return false
	}
	switch l.prev.Type {
	case token.Identifier, token.OptionalMarker:
		return true
	case token.Punctuation:
		return l.prev.Text == ")" || l.prev.Text == "]"
	}
	return false
}

// lexSlash distinguishes a regex literal from division. Division follows a
// value: an identifier, number, string, template, a value-like keyword, or a
// closing ')', ']', '}' ending an expression.
func (l *Lexer) lexSlash() {
	if l.prevEndsValue() || (l.hasPrev && l.prev.Type == token.Punctuation && l.prev.Text == "}") ||
		(l.hasPrev && l.prev.Type == token.Keyword && valueKeywords[l.prev.Text]) {
		l.lexDivision()
		return
	}
	end, ok := l.scanRegex()
	if !ok {
		l.lexDivision()
		return
	}
	m := l.mark()
	l.advanceN(end - l.pos)
	l.emit(token.Regex, m)
}

// prevEndsValue reports whether the previous significant token can end a
// value expression, which is also the test for 'as' starting a type
// assertion.
func (l *Lexer) prevEndsValue() bool {
	if !l.hasPrev {
		return false
	}
	switch l.prev.Type {
	case token.Identifier, token.Number, token.String, token.Template, token.GenericClose:
		return true
	case token.Punctuation:
		return l.prev.Text == ")" || l.prev.Text == "]"
	}
	return false
}

func (l *Lexer) lexDivision() {
	m := l.mark()
	if l.peekAt(1) == '=' {
		l.advanceN(2)
	} else {
		l.advance()
	}
	l.emit(token.Operator, m)
}

// scanRegex looks for the end of a regex literal starting at the current
// '/'. It returns the offset just past the flags, or ok=false when no
// terminator exists on this line.
func (l *Lexer) scanRegex() (int, bool) {
	i := l.pos + 1
	inClass := false
	for i < len(l.input) {
		c := l.input[i]
		switch {
		case c == '\\' && i+1 < len(l.input):
			i++
		case c == '\n':
			return 0, false
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			i++
			for i < len(l.input) && isIdentChar(l.input[i]) {
				i++
			}
			return i, true
		}
		i++
	}
	return 0, false
}

// lexQuestion emits an optional marker for "x?: t" style positions and an
// operator everywhere else ("?.", "??", ternary).
func (l *Lexer) lexQuestion() {
	m := l.mark()
	if l.peekAt(1) == '.' {
		l.advanceN(2)
		l.emit(token.Operator, m)
		return
	}
	if l.peekAt(1) == '?' {
		if l.peekAt(2) == '=' {
			l.advanceN(3)
		} else {
			l.advanceN(2)
		}
		l.emit(token.Operator, m)
		return
	}
	if l.hasPrev && l.nextNonSpace(l.pos+1) == ':' {
		switch {
		case l.prev.Type == token.Identifier,
			l.prev.Type == token.Punctuation && (l.prev.Text == ")" || l.prev.Text == "]"):
			l.advance()
			l.emit(token.OptionalMarker, m)
			return
		}
	}
	l.advance()
	l.emit(token.Operator, m)
	l.ternaryDepth++
}

func (l *Lexer) matchOperator() string {
	rest := l.input[l.pos:]
	for _, op := range operators {
		if len(rest) >= len(op) && rest[:len(op)] == op {
			return op
		}
	}
	return ""
}

func indexByte(s string, c byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return true
		}
	}
	return false
}
