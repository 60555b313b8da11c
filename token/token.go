// Package token defines the lexical token model shared by the lexer and the
// pattern engine. Tokens are immutable values: the lexer produces them once
// and every later stage works on sub-slices of the same token list.
package token

import "fmt"

// Type identifies the lexical category of a token.
type Type int

const (
	// Generic lexical categories.
	EOF Type = iota
	Unknown
	Keyword
	Identifier
	String
	Template
	Number
	Regex
	Operator
	Punctuation
	Comment
	Whitespace

	// Markup categories.
	ElementOpen  // "<div" or "<" for a fragment
	ElementClose // "</div" or "</" for a fragment
	SelfClose    // "/>"
	TagEnd       // ">" closing an open or close tag
	AttributeName
	AttributeValue
	Text            // text run between tags
	ExpressionStart // "{" entering an embedded expression
	ExpressionEnd   // "}" leaving an embedded expression

	// Type-annotation categories.
	Colon
	GenericOpen
	GenericClose
	TypeName
	OptionalMarker
	Arrow
	TypeOperator
	Extends
	TupleOpen
	TupleClose
	MappedIn
)

var typeNames = map[Type]string{
	EOF:             "EOF",
	Unknown:         "Unknown",
	Keyword:         "Keyword",
	Identifier:      "Identifier",
	String:          "String",
	Template:        "Template",
	Number:          "Number",
	Regex:           "Regex",
	Operator:        "Operator",
	Punctuation:     "Punctuation",
	Comment:         "Comment",
	Whitespace:      "Whitespace",
	ElementOpen:     "ElementOpen",
	ElementClose:    "ElementClose",
	SelfClose:       "SelfClose",
	TagEnd:          "TagEnd",
	AttributeName:   "AttributeName",
	AttributeValue:  "AttributeValue",
	Text:            "Text",
	ExpressionStart: "ExpressionStart",
	ExpressionEnd:   "ExpressionEnd",
	Colon:           "Colon",
	GenericOpen:     "GenericOpen",
	GenericClose:    "GenericClose",
	TypeName:        "TypeName",
	OptionalMarker:  "OptionalMarker",
	Arrow:           "Arrow",
	TypeOperator:    "TypeOperator",
	Extends:         "Extends",
	TupleOpen:       "TupleOpen",
	TupleClose:      "TupleClose",
	MappedIn:        "MappedIn",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Token is a single lexical unit. Start and End are byte offsets into the
// original source; Line and Column are 1-based and refer to the first byte.
type Token struct {
	Type   Type
	Text   string
	Start  int
	End    int
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q %d:%d)", t.Type, t.Text, t.Line, t.Column)
}

// IsTrivia reports whether the token is whitespace or a comment, the two
// categories the matcher skips between pattern elements.
func (t Token) IsTrivia() bool {
	return t.Type == Whitespace || t.Type == Comment
}

// IsEOF reports whether the token terminates the stream.
func (t Token) IsEOF() bool { return t.Type == EOF }

// TagName returns the element name of an ElementOpen or ElementClose token,
// with the leading "<" or "</" stripped. Fragments yield "".
func (t Token) TagName() string {
	switch t.Type {
	case ElementOpen:
		if len(t.Text) > 0 && t.Text[0] == '<' {
			return t.Text[1:]
		}
	case ElementClose:
		if len(t.Text) > 1 && t.Text[0] == '<' && t.Text[1] == '/' {
			return t.Text[2:]
		}
	}
	return ""
}
