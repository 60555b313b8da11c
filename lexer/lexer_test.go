package lexer

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/jsxgrep/jsxgrep/token"
)

// tok is a compact expectation: type plus literal text.
type tok struct {
	typ  token.Type
	text string
}

func checkTokens(t *testing.T, source string, want []tok) {
	t.Helper()
	got := Tokenize(source)
	if len(got) == 0 || got[len(got)-1].Type != token.EOF {
		t.Fatalf("Tokenize(%q) not EOF-terminated: %v", source, got)
	}
	got = got[:len(got)-1]
	if len(got) != len(want) {
		t.Fatalf("Tokenize(%q) = %v, want %d tokens %v", source, got, len(want), want)
	}
	for i, w := range want {
		if got[i].Type != w.typ || got[i].Text != w.text {
			t.Errorf("Tokenize(%q)[%d] = %s(%q), want %s(%q)",
				source, i, got[i].Type, got[i].Text, w.typ, w.text)
		}
	}
}

func TestTokenizeStatement(t *testing.T) {
	checkTokens(t, "const x = 1;", []tok{
		{token.Keyword, "const"},
		{token.Identifier, "x"},
		{token.Operator, "="},
		{token.Number, "1"},
		{token.Punctuation, ";"},
	})
}

func TestLessThanDisambiguation(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []tok
	}{
		{
			name:   "comparison operator",
			source: "a < b",
			want: []tok{
				{token.Identifier, "a"},
				{token.Operator, "<"},
				{token.Identifier, "b"},
			},
		},
		{
			name:   "markup open tag",
			source: "<div>",
			want: []tok{
				{token.ElementOpen, "<div"},
				{token.TagEnd, ">"},
			},
		},
		{
			name:   "generic after identifier",
			source: "Array<string>",
			want: []tok{
				{token.Identifier, "Array"},
				{token.GenericOpen, "<"},
				{token.TypeName, "string"},
				{token.GenericClose, ">"},
			},
		},
		{
			name:   "markup after return",
			source: "return <br/>;",
			want: []tok{
				{token.Keyword, "return"},
				{token.ElementOpen, "<br"},
				{token.SelfClose, "/>"},
				{token.Punctuation, ";"},
			},
		},
		{
			name:   "fragment",
			source: "<>x</>",
			want: []tok{
				{token.ElementOpen, "<"},
				{token.TagEnd, ">"},
				{token.Text, "x"},
				{token.ElementClose, "</"},
				{token.TagEnd, ">"},
			},
		},
		{
			name:   "left shift",
			source: "a << 2",
			want: []tok{
				{token.Identifier, "a"},
				{token.Operator, "<<"},
				{token.Number, "2"},
			},
		},
		{
			name:   "generic declaration",
			source: "function id<T,U>(x)",
			want: []tok{
				{token.Keyword, "function"},
				{token.Identifier, "id"},
				{token.GenericOpen, "<"},
				{token.TypeName, "T"},
				{token.Punctuation, ","},
				{token.TypeName, "U"},
				{token.GenericClose, ">"},
				{token.Punctuation, "("},
				{token.Identifier, "x"},
				{token.Punctuation, ")"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkTokens(t, tt.source, tt.want)
		})
	}
}

func TestMarkupElement(t *testing.T) {
	checkTokens(t, `<div className="app">Hello {name}</div>`, []tok{
		{token.ElementOpen, "<div"},
		{token.AttributeName, "className"},
		{token.Operator, "="},
		{token.AttributeValue, `"app"`},
		{token.TagEnd, ">"},
		{token.Text, "Hello "},
		{token.ExpressionStart, "{"},
		{token.Identifier, "name"},
		{token.ExpressionEnd, "}"},
		{token.ElementClose, "</div"},
		{token.TagEnd, ">"},
	})
}

func TestMarkupNestedInExpression(t *testing.T) {
	checkTokens(t, `<ul>{items.map(i => <li key={i}/>)}</ul>`, []tok{
		{token.ElementOpen, "<ul"},
		{token.TagEnd, ">"},
		{token.ExpressionStart, "{"},
		{token.Identifier, "items"},
		{token.Punctuation, "."},
		{token.Identifier, "map"},
		{token.Punctuation, "("},
		{token.Identifier, "i"},
		{token.Arrow, "=>"},
		{token.ElementOpen, "<li"},
		{token.AttributeName, "key"},
		{token.Operator, "="},
		{token.ExpressionStart, "{"},
		{token.Identifier, "i"},
		{token.ExpressionEnd, "}"},
		{token.SelfClose, "/>"},
		{token.Punctuation, ")"},
		{token.ExpressionEnd, "}"},
		{token.ElementClose, "</ul"},
		{token.TagEnd, ">"},
	})
}

func TestMarkupTextWithDecoyBrackets(t *testing.T) {
	checkTokens(t, `<b>Toggle (currently: X)</b>`, []tok{
		{token.ElementOpen, "<b"},
		{token.TagEnd, ">"},
		{token.Text, "Toggle (currently: X)"},
		{token.ElementClose, "</b"},
		{token.TagEnd, ">"},
	})
}

func TestTypeAnnotations(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []tok
	}{
		{
			name:   "simple annotation",
			source: "const x: number = 1;",
			want: []tok{
				{token.Keyword, "const"},
				{token.Identifier, "x"},
				{token.Colon, ":"},
				{token.TypeName, "number"},
				{token.Operator, "="},
				{token.Number, "1"},
				{token.Punctuation, ";"},
			},
		},
		{
			name:   "optional parameter",
			source: "function f(x?: number) {}",
			want: []tok{
				{token.Keyword, "function"},
				{token.Identifier, "f"},
				{token.Punctuation, "("},
				{token.Identifier, "x"},
				{token.OptionalMarker, "?"},
				{token.Colon, ":"},
				{token.TypeName, "number"},
				{token.Punctuation, ")"},
				{token.Punctuation, "{"},
				{token.Punctuation, "}"},
			},
		},
		{
			name:   "union type",
			source: "let v: string | null;",
			want: []tok{
				{token.Keyword, "let"},
				{token.Identifier, "v"},
				{token.Colon, ":"},
				{token.TypeName, "string"},
				{token.TypeOperator, "|"},
				{token.TypeName, "null"},
				{token.Punctuation, ";"},
			},
		},
		{
			name:   "as assertion",
			source: "x as string",
			want: []tok{
				{token.Identifier, "x"},
				{token.Keyword, "as"},
				{token.TypeName, "string"},
			},
		},
		{
			name:   "nested generics",
			source: "m: Map<string, Array<number>>",
			want: []tok{
				{token.Identifier, "m"},
				{token.Colon, ":"},
				{token.TypeName, "Map"},
				{token.GenericOpen, "<"},
				{token.TypeName, "string"},
				{token.Punctuation, ","},
				{token.TypeName, "Array"},
				{token.GenericOpen, "<"},
				{token.TypeName, "number"},
				{token.GenericClose, ">"},
				{token.GenericClose, ">"},
			},
		},
		{
			name:   "ternary is not a type",
			source: "a ? b : c",
			want: []tok{
				{token.Identifier, "a"},
				{token.Operator, "?"},
				{token.Identifier, "b"},
				{token.Operator, ":"},
				{token.Identifier, "c"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkTokens(t, tt.source, tt.want)
		})
	}
}

func TestRegexVersusDivision(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []tok
	}{
		{
			name:   "division after identifier",
			source: "a / b",
			want: []tok{
				{token.Identifier, "a"},
				{token.Operator, "/"},
				{token.Identifier, "b"},
			},
		},
		{
			name:   "regex after assignment",
			source: "x = /ab+c/g",
			want: []tok{
				{token.Identifier, "x"},
				{token.Operator, "="},
				{token.Regex, "/ab+c/g"},
			},
		},
		{
			name:   "regex with slash in class",
			source: "m = /[/]/",
			want: []tok{
				{token.Identifier, "m"},
				{token.Operator, "="},
				{token.Regex, "/[/]/"},
			},
		},
		{
			name:   "division after call",
			source: "f(x) / 2",
			want: []tok{
				{token.Identifier, "f"},
				{token.Punctuation, "("},
				{token.Identifier, "x"},
				{token.Punctuation, ")"},
				{token.Operator, "/"},
				{token.Number, "2"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkTokens(t, tt.source, tt.want)
		})
	}
}

func TestTemplateLiteral(t *testing.T) {
	checkTokens(t, "`a${f({x: 1})}b`", []tok{
		{token.Template, "`a${f({x: 1})}b`"},
	})
}

func TestArrowFunction(t *testing.T) {
	checkTokens(t, "const f = (a) => a;", []tok{
		{token.Keyword, "const"},
		{token.Identifier, "f"},
		{token.Operator, "="},
		{token.Punctuation, "("},
		{token.Identifier, "a"},
		{token.Punctuation, ")"},
		{token.Arrow, "=>"},
		{token.Identifier, "a"},
		{token.Punctuation, ";"},
	})
}

func TestUnknownByte(t *testing.T) {
	checkTokens(t, "a # b", []tok{
		{token.Identifier, "a"},
		{token.Unknown, "#"},
		{token.Identifier, "b"},
	})
}

func TestKeywordPrefixIdentifier(t *testing.T) {
	checkTokens(t, "let letter", []tok{
		{token.Keyword, "let"},
		{token.Identifier, "letter"},
	})
}

func TestPositions(t *testing.T) {
	toks := Tokenize("let a;\nlet b;")
	if len(toks) != 7 {
		t.Fatalf("got %d tokens, want 7: %v", len(toks), toks)
	}
	second := toks[3] // "let" on line 2
	if second.Line != 2 || second.Column != 1 {
		t.Errorf("second let at %d:%d, want 2:1", second.Line, second.Column)
	}
	if second.Start != 7 {
		t.Errorf("second let Start = %d, want 7", second.Start)
	}
}

func TestTriviaOptions(t *testing.T) {
	source := "a // note\nb"
	if got := Tokenize(source); len(got) != 3 { // a, b, EOF
		t.Errorf("Tokenize kept trivia: %v", got)
	}
	all := TokenizeAll(source)
	var comments, spaces int
	for _, tk := range all {
		switch tk.Type {
		case token.Comment:
			comments++
		case token.Whitespace:
			spaces++
		}
	}
	if comments != 1 || spaces == 0 {
		t.Errorf("TokenizeAll comments=%d spaces=%d: %v", comments, spaces, all)
	}
}

// checkCoverage asserts the coverage invariant: the full token list
// reproduces the source exactly, with contiguous non-overlapping spans.
func checkCoverage(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, source string,
) {
	t.Helper()
	toks := TokenizeAll(source)
	if len(toks) == 0 || toks[len(toks)-1].Type != token.EOF {
		t.Fatalf("not EOF-terminated for %q", source)
	}
	off := 0
	var rebuilt []byte
	for _, tk := range toks {
		if tk.Start != off {
			t.Fatalf("token %v starts at %d, want %d (source %q)", tk, tk.Start, off, source)
		}
		if tk.End < tk.Start {
			t.Fatalf("token %v has negative span (source %q)", tk, source)
		}
		rebuilt = append(rebuilt, tk.Text...)
		off = tk.End
	}
	if string(rebuilt) != source {
		t.Fatalf("rebuilt %q != source %q", rebuilt, source)
	}
}

func TestCoverageInvariantFixed(t *testing.T) {
	sources := []string{
		"",
		"const x = 1;",
		"<div className={style}>a {b} c</div>",
		"function f<T>(x: T): T { return x; }",
		"`tpl ${a + `${b}`}`",
		"/* unterminated",
		"\"broken\nlet x",
		"a ?? b ?. c",
		"type T = { [K in keyof U]?: U[K] };",
		"<a href=\"#\">{/* c */}</a>",
	}
	for _, s := range sources {
		checkCoverage(t, s)
	}
}

func TestCoverageInvariantRandom(t *testing.T) {
	alphabet := []rune("abx01 \t\n<>/{}()[]=:;,.\"'`\\?!+-*&|#$_")
	rapid.Check(t, func(rt *rapid.T) {
		source := rapid.StringOf(rapid.RuneFrom(alphabet)).Draw(rt, "source")
		checkCoverage(rt, source)
	})
}
