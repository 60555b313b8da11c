package pattern

import (
	"strconv"
	"strings"

	"github.com/jsxgrep/jsxgrep/token"
)

// MatchResult describes one successful match: the exact token sub-slice
// consumed (never a copy), its index range in the original stream, and the
// captures in declaration order.
type MatchResult struct {
	Tokens  []token.Token
	Start   int
	End     int
	Pattern string

	captures []Capture
	named    map[string]*Capture
}

// Group returns the capture with 1-based index i. The second result is false
// when the index is out of range or the group never matched.
func (m *MatchResult) Group(i int) (Capture, bool) {
	if i < 1 || i > len(m.captures) {
		return Capture{}, false
	}
	c := m.captures[i-1]
	return c, c.ok
}

// Named returns the capture declared with the given name.
func (m *MatchResult) Named(name string) (Capture, bool) {
	c, ok := m.named[name]
	if !ok {
		return Capture{}, false
	}
	return *c, c.ok
}

// Groups returns all declared captures, matched or not, in declaration
// order.
func (m *MatchResult) Groups() []Capture { return m.captures }

// Text returns the joined text of the matched tokens.
func (m *MatchResult) Text() string { return joinTokens(m.Tokens) }

// Capture is one captured token range with its declared index and optional
// name.
type Capture struct {
	Tokens []token.Token
	Index  int
	Name   string
	ok     bool
}

// Matched reports whether the group actually took part in the match.
func (c Capture) Matched() bool { return c.ok }

// Text returns the joined text of the capture's significant tokens.
func (c Capture) Text() string { return joinTokens(c.Tokens) }

// First returns the first significant token of the capture.
func (c Capture) First() (token.Token, bool) {
	for _, t := range c.Tokens {
		if !t.IsTrivia() {
			return t, true
		}
	}
	return token.Token{}, false
}

// FirstOfType returns the first captured token of the requested type.
func (c Capture) FirstOfType(tt token.Type) (token.Token, bool) {
	for _, t := range c.Tokens {
		if t.Type == tt {
			return t, true
		}
	}
	return token.Token{}, false
}

// Inner returns the capture with its first and last tokens trimmed, the
// content of a balanced region without its delimiters.
func (c Capture) Inner() Capture {
	out := c
	if len(out.Tokens) >= 2 {
		out.Tokens = out.Tokens[1 : len(out.Tokens)-1]
	} else {
		out.Tokens = nil
	}
	return out
}

// Int coerces the capture's joined text to an integer.
func (c Capture) Int() (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(c.Text()), 0, 64)
	return n, err == nil
}

// Float coerces the capture's joined text to a float.
func (c Capture) Float() (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(c.Text()), 64)
	return f, err == nil
}

// Bool coerces the capture's joined text to a boolean.
func (c Capture) Bool() (bool, bool) {
	b, err := strconv.ParseBool(strings.TrimSpace(c.Text()))
	return b, err == nil
}

func joinTokens(toks []token.Token) string {
	var sb strings.Builder
	for _, t := range toks {
		if t.IsTrivia() {
			continue
		}
		sb.WriteString(t.Text)
	}
	return sb.String()
}
