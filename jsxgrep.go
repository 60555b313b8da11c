// Package jsxgrep exposes the tokenizer and the token pattern engine behind
// one small API: tokenize a source string, compile a pattern, search.
package jsxgrep

import (
	"github.com/jsxgrep/jsxgrep/lexer"
	"github.com/jsxgrep/jsxgrep/pattern"
	"github.com/jsxgrep/jsxgrep/token"
)

// Tokenize returns the token stream for source, without whitespace and
// comment tokens.
func Tokenize(source string) []token.Token {
	return lexer.Tokenize(source)
}

// TokenizeAll returns the token stream for source including whitespace and
// comment tokens.
func TokenizeAll(source string) []token.Token {
	return lexer.TokenizeAll(source)
}

// Compile compiles a pattern expression.
func Compile(expr string, opts ...pattern.Option) (*pattern.Pattern, error) {
	return pattern.Compile(expr, opts...)
}

// Search tokenizes source and returns all non-overlapping matches of expr.
func Search(expr, source string) ([]*pattern.MatchResult, error) {
	p, err := pattern.Compile(expr)
	if err != nil {
		return nil, err
	}
	return p.FindAll(lexer.Tokenize(source)), nil
}
