package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	content := `
rules:
  - name: no-eval
    pattern: '\i"eval" \Bp'
    message: avoid eval
    severity: info
    priority: 5
  - name: no-debugger
    pattern: '\k"debugger"'
    message: remove debugger
    severity: error
`
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, "no-debugger", rules[0].Name, "lower priority runs first")
	assert.Equal(t, SeverityError, rules[0].Severity)
	assert.Equal(t, "no-eval", rules[1].Name)
	assert.Equal(t, 5, rules[1].Priority)
}

func TestLoadDefaultSeverity(t *testing.T) {
	content := `
rules:
  - name: sample
    pattern: '\i'
    message: msg
`
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, SeverityWarning, rules[0].Severity)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	noName := filepath.Join(dir, "noname.yaml")
	require.NoError(t, os.WriteFile(noName, []byte("rules:\n  - pattern: '\\i'\n    message: m\n"), 0o644))
	_, err = Load(noName)
	assert.ErrorContains(t, err, "no name")

	noPattern := filepath.Join(dir, "nopattern.yaml")
	require.NoError(t, os.WriteFile(noPattern, []byte("rules:\n  - name: r\n    message: m\n"), 0o644))
	_, err = Load(noPattern)
	assert.ErrorContains(t, err, "no pattern")
}

func TestDefaultRuleTable(t *testing.T) {
	rules := Default()
	require.NotEmpty(t, rules)

	names := make(map[string]bool)
	for i, r := range rules {
		assert.NotEmpty(t, r.Name)
		assert.NotEmpty(t, r.Pattern)
		assert.NotEmpty(t, r.Message)
		assert.False(t, names[r.Name], "duplicate rule name %q", r.Name)
		names[r.Name] = true
		if i > 0 {
			assert.GreaterOrEqual(t, r.Priority, rules[i-1].Priority)
		}
	}
	assert.True(t, names["no-debugger"])
	assert.True(t, names["no-var"])
}
