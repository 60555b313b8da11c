package lexer

import "github.com/jsxgrep/jsxgrep/token"

// lexMarkupStart consumes "<Name", "</Name", "<" (fragment), or "</"
// (fragment close) and enters the matching tag state. Reached from code,
// expression, and children states.
func (l *Lexer) lexMarkupStart() {
	m := l.mark()
	l.advance() // '<'
	if l.peek() == '/' {
		l.advance()
		for l.pos < len(l.input) && isTagNameChar(l.input[l.pos]) {
			l.advance()
		}
		l.emit(token.ElementClose, m)
		if l.top().state == stateChildren {
			// The children region ends with its closing tag.
			l.top().state = stateTagClose
		} else {
			l.push(stateTagClose)
		}
		return
	}
	for l.pos < len(l.input) && isTagNameChar(l.input[l.pos]) {
		l.advance()
	}
	l.emit(token.ElementOpen, m)
	l.push(stateTagOpen)
}

// lexTagOpen scans the inside of "<tag ...": attributes, attribute values,
// embedded expressions, and the tag terminator.
func (l *Lexer) lexTagOpen() {
	c := l.peek()
	switch {
	case isSpace(c):
		l.lexWhitespace()
	case c == '>':
		m := l.mark()
		l.advance()
		l.emit(token.TagEnd, m)
		l.top().state = stateChildren
	case c == '/' && l.peekAt(1) == '>':
		m := l.mark()
		l.advanceN(2)
		l.emit(token.SelfClose, m)
		l.pop()
	case c == '{':
		m := l.mark()
		l.advance()
		l.emit(token.ExpressionStart, m)
		l.push(stateExpr)
	case c == '\'' || c == '"':
		l.lexString(token.AttributeValue)
	case c == '=':
		m := l.mark()
		l.advance()
		l.emit(token.Operator, m)
	case isIdentStart(c):
		m := l.mark()
		for l.pos < len(l.input) && isAttrNameChar(l.input[l.pos]) {
			l.advance()
		}
		l.emit(token.AttributeName, m)
	default:
		l.lexUnknown()
	}
}

// lexTagClose scans from "</name" to the '>' that ends the element.
func (l *Lexer) lexTagClose() {
	c := l.peek()
	switch {
	case isSpace(c):
		l.lexWhitespace()
	case c == '>':
		m := l.mark()
		l.advance()
		l.emit(token.TagEnd, m)
		l.pop()
	default:
		l.lexUnknown()
	}
}

// lexChildren scans the mixed text/markup/expression region between a tag
// end and its closing tag. Text runs extend to the next '<' or '{'; brackets
// and quotes inside them are plain text, which is what keeps decoy brackets
// out of balanced-match depth counts downstream.
func (l *Lexer) lexChildren() {
	c := l.peek()
	switch {
	case c == '<':
		l.lexMarkupStart()
	case c == '{':
		m := l.mark()
		l.advance()
		l.emit(token.ExpressionStart, m)
		l.push(stateExpr)
	case isSpace(c):
		l.lexWhitespace()
	default:
		m := l.mark()
		for l.pos < len(l.input) && l.input[l.pos] != '<' && l.input[l.pos] != '{' {
			l.advance()
		}
		l.emit(token.Text, m)
	}
}
