package lexer

import "github.com/jsxgrep/jsxgrep/token"

// typeKeywords are words with dedicated token types inside a type position.
var typeKeywords = map[string]token.Type{
	"extends": token.Extends,
	"in":      token.MappedIn,
}

// typeOperandKeywords stay plain keywords inside a type position.
var typeOperandKeywords = map[string]bool{
	"keyof": true, "typeof": true, "infer": true, "readonly": true,
	"new": true, "void": true, "is": true, "asserts": true,
}

// lexType scans a type annotation entered after ':' or 'as'. The frame's
// depth counter tracks (, [ and { opened inside the annotation; a closer or
// separator arriving at depth 0 ends the annotation, and the terminating
// byte is left for the parent state. A newline at depth 0 after at least one
// type token also ends it, so an annotation cannot swallow the next
// statement.
func (l *Lexer) lexType() {
	c := l.peek()
	t := l.top()
	switch {
	case isSpace(c):
		if t.depth == 0 && t.sawType && spanHasNewline(l.input[l.pos:]) {
			l.pop()
		}
		l.lexWhitespace()
	case c == '/' && l.peekAt(1) == '/':
		l.lexLineComment()
	case c == '/' && l.peekAt(1) == '*':
		l.lexBlockComment()
	case isIdentStart(c):
		l.lexTypeWord()
	case c == '\'' || c == '"':
		l.lexString(token.String)
		t.sawType = true
	case c == '`':
		l.lexTemplate()
		t.sawType = true
	case isDigit(c):
		l.lexNumber()
		t.sawType = true
	case c == '<':
		m := l.mark()
		l.advance()
		l.emit(token.GenericOpen, m)
		l.push(stateGeneric)
	case c == '[':
		m := l.mark()
		l.advance()
		l.emit(token.TupleOpen, m)
		t.depth++
	case c == ']':
		if t.depth == 0 {
			l.pop()
			return
		}
		m := l.mark()
		l.advance()
		l.emit(token.TupleClose, m)
		t.depth--
		t.sawType = true
	case c == '|' || c == '&':
		m := l.mark()
		l.advance()
		l.emit(token.TypeOperator, m)
	case c == '?':
		m := l.mark()
		l.advance()
		l.emit(token.OptionalMarker, m)
	case c == '=' && l.peekAt(1) == '>':
		m := l.mark()
		l.advanceN(2)
		l.emit(token.Arrow, m)
		l.pop()
	case c == '(' || c == '{':
		m := l.mark()
		l.advance()
		l.emit(token.Punctuation, m)
		t.depth++
	case c == ')' || c == '}':
		if t.depth == 0 {
			l.pop()
			return
		}
		m := l.mark()
		l.advance()
		l.emit(token.Punctuation, m)
		t.depth--
		t.sawType = true
	case c == ',' || c == ';':
		if t.depth == 0 {
			l.pop()
			return
		}
		m := l.mark()
		l.advance()
		l.emit(token.Punctuation, m)
	case c == ':':
		m := l.mark()
		l.advance()
		l.emit(token.Colon, m)
	case c == '.':
		m := l.mark()
		l.advance()
		l.emit(token.Punctuation, m)
	case c == '=':
		// default value or assignment; not part of the type
		l.pop()
	default:
		l.pop()
	}
}

func (l *Lexer) lexTypeWord() {
	m := l.mark()
	for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
		l.advance()
	}
	word := l.input[m.off:l.pos]
	if tt, ok := typeKeywords[word]; ok {
		l.emit(tt, m)
		return
	}
	if typeOperandKeywords[word] {
		l.emit(token.Keyword, m)
		return
	}
	l.emit(token.TypeName, m)
	l.top().sawType = true
}

// lexGeneric scans the inside of a generic parameter or argument list up to
// the matching '>'. Nested '<' pushes another generic frame, so Map<string,
// Array<number>> closes correctly.
func (l *Lexer) lexGeneric() {
	c := l.peek()
	switch {
	case isSpace(c):
		l.lexWhitespace()
	case c == '/' && l.peekAt(1) == '/':
		l.lexLineComment()
	case c == '/' && l.peekAt(1) == '*':
		l.lexBlockComment()
	case isIdentStart(c):
		l.lexTypeWord()
	case c == '\'' || c == '"':
		l.lexString(token.String)
	case isDigit(c):
		l.lexNumber()
	case c == '<':
		m := l.mark()
		l.advance()
		l.emit(token.GenericOpen, m)
		l.push(stateGeneric)
	case c == '>':
		m := l.mark()
		l.advance()
		l.emit(token.GenericClose, m)
		l.pop()
	case c == '[':
		m := l.mark()
		l.advance()
		l.emit(token.TupleOpen, m)
	case c == ']':
		m := l.mark()
		l.advance()
		l.emit(token.TupleClose, m)
	case c == '|' || c == '&':
		m := l.mark()
		l.advance()
		l.emit(token.TypeOperator, m)
	case c == '?':
		m := l.mark()
		l.advance()
		l.emit(token.OptionalMarker, m)
	case c == '=' && l.peekAt(1) == '>':
		m := l.mark()
		l.advanceN(2)
		l.emit(token.Arrow, m)
	case c == ':':
		m := l.mark()
		l.advance()
		l.emit(token.Colon, m)
	case c == ',' || c == '(' || c == ')' || c == '{' || c == '}' || c == '.' || c == ';':
		m := l.mark()
		l.advance()
		l.emit(token.Punctuation, m)
	case c == '=':
		m := l.mark()
		l.advance()
		l.emit(token.Operator, m)
	default:
		l.lexUnknown()
	}
}

// spanHasNewline reports whether the leading whitespace of s contains a
// newline.
func spanHasNewline(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return true
		}
		if !isSpace(s[i]) {
			return false
		}
	}
	return false
}
