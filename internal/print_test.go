package internal

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	tt "github.com/jsxgrep/jsxgrep/internal/types"
)

func TestFormatMatchesWithArrows(t *testing.T) {
	color.NoColor = true

	source := &SourceCode{
		Lines: []string{
			"import React from 'react';",
			"",
			"var count = 0;",
			"debugger;",
		},
	}

	matches := []tt.Match{
		{
			Rule:     "no-var",
			Severity: "warning",
			Filename: "app.jsx",
			Line:     3,
			Column:   1,
			Message:  "unexpected var, use let or const instead",
		},
		{
			Rule:     "no-debugger",
			Severity: "error",
			Filename: "app.jsx",
			Line:     4,
			Column:   1,
			Message:  "remove debugger statement before shipping",
		},
	}

	expected := `warning: no-var
 --> app.jsx:3:1
  |
3 | var count = 0;
  | ^ unexpected var, use let or const instead

error: no-debugger
 --> app.jsx:4:1
  |
4 | debugger;
  | ^ remove debugger statement before shipping

`

	result := FormatMatchesWithArrows(matches, source)
	assert.Equal(t, expected, result, "Formatted output does not match expected")
}

func TestFormatMatchOutOfRangeLine(t *testing.T) {
	color.NoColor = true

	matches := []tt.Match{{
		Rule:     "no-var",
		Severity: "warning",
		Filename: "a.js",
		Line:     99,
		Column:   1,
		Message:  "msg",
	}}
	result := FormatMatchesWithArrows(matches, &SourceCode{Lines: []string{"let x"}})
	assert.Contains(t, result, "msg")
	assert.NotContains(t, result, "let x")
}
