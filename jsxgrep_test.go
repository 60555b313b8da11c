package jsxgrep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsxgrep/jsxgrep/token"
)

func TestTokenize(t *testing.T) {
	toks := Tokenize("const x = 1;")
	require.Len(t, toks, 6) // five significant tokens plus EOF
	assert.Equal(t, token.Keyword, toks[0].Type)
	assert.Equal(t, token.EOF, toks[5].Type)

	all := TokenizeAll("a b")
	assert.Len(t, all, 4) // a, space, b, EOF
}

func TestSearch(t *testing.T) {
	source := `
var a = 1;
let b = 2;
var c = 3;
`
	matches, err := Search(`\k"var" (\i)`, source)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	first, ok := matches[0].Group(1)
	require.True(t, ok)
	assert.Equal(t, "a", first.Text())

	second, ok := matches[1].Group(1)
	require.True(t, ok)
	assert.Equal(t, "c", second.Text())
}

func TestSearchBadPattern(t *testing.T) {
	_, err := Search(`(\i`, "let x;")
	assert.Error(t, err)
}

func TestCompileReExport(t *testing.T) {
	p, err := Compile(`\Je`)
	require.NoError(t, err)
	m, ok := p.FindFirst(Tokenize(`<div>hi</div>`))
	require.True(t, ok)
	assert.Equal(t, "<div>hi</div>", m.Text())
}
