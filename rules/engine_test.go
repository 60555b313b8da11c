package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEngineCheck(t *testing.T) {
	source := `var x = 1;
console.log("hi");
debugger;`

	engine := NewEngine(Default(), zap.NewNop())
	matches := engine.Check("app.js", source)
	require.Len(t, matches, 3)

	// Priority order: no-debugger first, then no-console and no-var.
	assert.Equal(t, "no-debugger", matches[0].Rule)
	assert.Equal(t, 3, matches[0].Line)
	assert.Equal(t, SeverityError, matches[0].Severity)

	assert.Equal(t, "no-console", matches[1].Rule)
	assert.Equal(t, 2, matches[1].Line)
	assert.Equal(t, `console.log("hi")`, matches[1].Snippet)

	assert.Equal(t, "no-var", matches[2].Rule)
	assert.Equal(t, 1, matches[2].Line)
	assert.Equal(t, 1, matches[2].Column)
	assert.Equal(t, "app.js", matches[2].Filename)
}

func TestEngineCheckTypeRule(t *testing.T) {
	engine := NewEngine(Default(), nil)
	matches := engine.Check("lib.ts", "function f(x: any) { return x; }")
	require.Len(t, matches, 1)
	assert.Equal(t, "no-explicit-any", matches[0].Rule)
}

func TestEngineCheckClean(t *testing.T) {
	engine := NewEngine(Default(), nil)
	matches := engine.Check("clean.ts", "const greeting: string = `hello`;")
	assert.Empty(t, matches)
}

func TestEngineSkipsInvalidPattern(t *testing.T) {
	rules := []Rule{
		{Name: "broken", Pattern: `(\i`, Message: "m", Severity: SeverityError},
		{Name: "no-debugger", Pattern: `\k"debugger"`, Message: "m", Severity: SeverityError},
	}
	engine := NewEngine(rules, zap.NewNop())
	matches := engine.Check("a.js", "debugger;")
	require.Len(t, matches, 1)
	assert.Equal(t, "no-debugger", matches[0].Rule)
}

func TestEngineCheckFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.jsx")
	require.NoError(t, os.WriteFile(path, []byte("var a = 1;\n"), 0o644))

	engine := NewEngine(Default(), nil)
	matches, err := engine.CheckFile(path)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "no-var", matches[0].Rule)
	assert.Equal(t, path, matches[0].Filename)

	_, err = engine.CheckFile(filepath.Join(dir, "missing.jsx"))
	assert.Error(t, err)
}

func TestEngineCachesCompiledPatterns(t *testing.T) {
	engine := NewEngine(Default(), nil)

	first, err := engine.compile(`\k"var"`)
	require.NoError(t, err)
	second, err := engine.compile(`\k"var"`)
	require.NoError(t, err)
	assert.Same(t, first, second)
}
