package token

import "testing"

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{EOF, "EOF"},
		{Keyword, "Keyword"},
		{ElementOpen, "ElementOpen"},
		{OptionalMarker, "OptionalMarker"},
		{Type(999), "Type(999)"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", int(tt.typ), got, tt.want)
		}
	}
}

func TestIsTrivia(t *testing.T) {
	if !(Token{Type: Whitespace}).IsTrivia() {
		t.Error("whitespace should be trivia")
	}
	if !(Token{Type: Comment}).IsTrivia() {
		t.Error("comment should be trivia")
	}
	if (Token{Type: Identifier}).IsTrivia() {
		t.Error("identifier should not be trivia")
	}
}

func TestTagName(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Type: ElementOpen, Text: "<div"}, "div"},
		{Token{Type: ElementOpen, Text: "<Foo.Bar"}, "Foo.Bar"},
		{Token{Type: ElementClose, Text: "</div"}, "div"},
		{Token{Type: ElementOpen, Text: "<"}, ""},
		{Token{Type: ElementClose, Text: "</"}, ""},
		{Token{Type: Identifier, Text: "div"}, ""},
	}
	for _, tt := range tests {
		if got := tt.tok.TagName(); got != tt.want {
			t.Errorf("TagName(%q %s) = %q, want %q", tt.tok.Text, tt.tok.Type, got, tt.want)
		}
	}
}
