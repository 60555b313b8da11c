package types

import "fmt"

// Match is one rule finding in a source file, positioned by 1-based
// line/column of the first and last matched tokens.
type Match struct {
	Rule      string
	Severity  string
	Message   string
	Filename  string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
	Snippet   string
}

func (m Match) String() string {
	return fmt.Sprintf("%s:%d:%d: %s (%s)", m.Filename, m.Line, m.Column, m.Message, m.Rule)
}
