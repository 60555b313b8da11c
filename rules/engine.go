package rules

import (
	"fmt"
	"os"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	tt "github.com/jsxgrep/jsxgrep/internal/types"
	"github.com/jsxgrep/jsxgrep/lexer"
	"github.com/jsxgrep/jsxgrep/pattern"
	"github.com/jsxgrep/jsxgrep/token"
)

const (
	defaultExpiration = 30 * time.Minute
	cleanupInterval   = time.Hour
)

// Engine runs a rule set over token streams. Compiled patterns are cached
// by expression, so the same Engine can check many files cheaply.
type Engine struct {
	rules    []Rule
	compiled *gocache.Cache
	logger   *zap.Logger
}

// NewEngine builds an engine for the given rules. A nil logger disables
// rule diagnostics.
func NewEngine(rules []Rule, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		rules:    rules,
		compiled: gocache.New(defaultExpiration, cleanupInterval),
		logger:   logger,
	}
}

// Rules returns the engine's rule table in execution order.
func (e *Engine) Rules() []Rule { return e.rules }

func (e *Engine) compile(expr string) (*pattern.Pattern, error) {
	if cached, found := e.compiled.Get(expr); found {
		if p, ok := cached.(*pattern.Pattern); ok {
			return p, nil
		}
	}
	p, err := pattern.Compile(expr)
	if err != nil {
		return nil, err
	}
	e.compiled.Set(expr, p, gocache.DefaultExpiration)
	return p, nil
}

// Check tokenizes source and applies every rule, returning findings
// ordered by rule priority then stream position. A rule whose pattern
// fails to compile is logged and skipped.
func (e *Engine) Check(filename, source string) []tt.Match {
	toks := lexer.Tokenize(source)

	var matches []tt.Match
	for _, rule := range e.rules {
		p, err := e.compile(rule.Pattern)
		if err != nil {
			e.logger.Error("skipping rule with invalid pattern",
				zap.String("rule", rule.Name),
				zap.Error(err))
			continue
		}
		for _, m := range p.FindAll(toks) {
			matches = append(matches, e.toMatch(rule, filename, source, m))
		}
	}
	return matches
}

// CheckFile reads filename and runs Check on its contents.
func (e *Engine) CheckFile(filename string) ([]tt.Match, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return e.Check(filename, string(data)), nil
}

func (e *Engine) toMatch(rule Rule, filename, source string, m *pattern.MatchResult) tt.Match {
	first, last, ok := significantSpan(m.Tokens)
	if !ok {
		return tt.Match{
			Rule:     rule.Name,
			Severity: rule.Severity,
			Message:  rule.Message,
			Filename: filename,
			Line:     1,
			Column:   1,
		}
	}

	endLine := last.Line
	endCol := last.Column
	for _, c := range last.Text {
		if c == '\n' {
			endLine++
			endCol = 1
		} else {
			endCol++
		}
	}

	snippet := ""
	if first.Start >= 0 && last.End <= len(source) && first.Start <= last.End {
		snippet = strings.TrimSpace(source[first.Start:last.End])
	}

	return tt.Match{
		Rule:      rule.Name,
		Severity:  rule.Severity,
		Message:   rule.Message,
		Filename:  filename,
		Line:      first.Line,
		Column:    first.Column,
		EndLine:   endLine,
		EndColumn: endCol,
		Snippet:   snippet,
	}
}

func significantSpan(toks []token.Token) (first, last token.Token, ok bool) {
	for _, t := range toks {
		if t.IsTrivia() || t.IsEOF() {
			continue
		}
		if !ok {
			first = t
			ok = true
		}
		last = t
	}
	return first, last, ok
}
