package pattern

import "github.com/jsxgrep/jsxgrep/token"

// DefaultStepLimit bounds the number of matcher steps a single match attempt
// may take. Backtracking engines are exponential on pathological patterns;
// the budget turns a runaway attempt into a plain "no match".
const DefaultStepLimit = 1_000_000

type options struct {
	skipTrivia bool
	stepLimit  int
}

func defaultOptions() options {
	return options{skipTrivia: true, stepLimit: DefaultStepLimit}
}

// Option adjusts compiled-pattern behavior.
type Option func(*options)

// WithStepLimit overrides the per-attempt backtracking budget.
func WithStepLimit(n int) Option {
	return func(o *options) { o.stepLimit = n }
}

// WithoutTriviaSkip disables the automatic skipping of whitespace and
// comment tokens between pattern elements.
func WithoutTriviaSkip() Option {
	return func(o *options) { o.skipTrivia = false }
}

// Pattern is a compiled pattern expression. It is immutable and safe for
// concurrent use; every match call works on its own context.
type Pattern struct {
	expr       string
	root       *SequenceNode
	groupCount int
	names      []string // group index-1 -> declared name, "" when unnamed
	nameIndex  map[string]int
	opts       options
}

// Expr returns the pattern source string.
func (p *Pattern) Expr() string { return p.expr }

// GroupCount returns the number of capturing groups the pattern declares.
func (p *Pattern) GroupCount() int { return p.groupCount }

// MatchAt reports whether the pattern matches toks starting exactly at
// start. "No match" is a normal false result, never an error.
func (p *Pattern) MatchAt(toks []token.Token, start int) (*MatchResult, bool) {
	if start < 0 || start > len(toks) {
		return nil, false
	}
	ctx := &matchContext{
		toks:       toks,
		start:      start,
		pos:        start,
		caps:       make([]capture, p.groupCount),
		limit:      p.opts.stepLimit,
		skipTrivia: p.opts.skipTrivia,
	}
	if !p.match(ctx, p.root, func() bool { return true }) {
		return nil, false
	}
	return p.buildResult(ctx), true
}

// FindFirst returns the leftmost match in toks.
func (p *Pattern) FindFirst(toks []token.Token) (*MatchResult, bool) {
	for i := 0; i <= len(toks); i++ {
		if m, ok := p.MatchAt(toks, i); ok {
			return m, true
		}
		if i < len(toks) && toks[i].IsEOF() {
			break
		}
	}
	return nil, false
}

// FindAll returns every sequential, non-overlapping match in toks. Each call
// is a fresh scan.
func (p *Pattern) FindAll(toks []token.Token) []*MatchResult {
	var out []*MatchResult
	i := 0
	for i <= len(toks) {
		m, ok := p.MatchAt(toks, i)
		if ok && m.End > m.Start {
			out = append(out, m)
			i = m.End
			continue
		}
		if ok {
			out = append(out, m)
		}
		if i < len(toks) && toks[i].IsEOF() {
			break
		}
		i++
	}
	return out
}

func (p *Pattern) buildResult(ctx *matchContext) *MatchResult {
	res := &MatchResult{
		Tokens:  ctx.toks[ctx.start:ctx.pos],
		Start:   ctx.start,
		End:     ctx.pos,
		Pattern: p.expr,
	}
	res.captures = make([]Capture, p.groupCount)
	for i := 0; i < p.groupCount; i++ {
		c := ctx.caps[i]
		cap := Capture{Index: i + 1, Name: p.names[i], ok: c.set}
		if c.set {
			cap.Tokens = ctx.toks[c.start:c.end]
		}
		res.captures[i] = cap
	}
	if len(p.nameIndex) > 0 {
		res.named = make(map[string]*Capture, len(p.nameIndex))
		for name, idx := range p.nameIndex {
			res.named[name] = &res.captures[idx-1]
		}
	}
	return res
}
