package pattern

import "github.com/jsxgrep/jsxgrep/token"

// capture is the in-progress record of one group: a token index range plus
// the markup nesting depth at the moment it was taken.
type capture struct {
	start int
	end   int
	depth int
	set   bool
}

// matchContext is the per-call mutable state of a match attempt. A fresh
// context is allocated for every MatchAt call, which is what makes a single
// compiled Pattern safe to share across goroutines.
type matchContext struct {
	toks  []token.Token
	start int
	pos   int
	caps  []capture

	// elemDepth is the live markup nesting depth, maintained by consume.
	elemDepth int

	steps      int
	limit      int
	overBudget bool
	skipTrivia bool
}

// checkpoint is a restorable snapshot. The consumed region is toks[start:pos],
// so position plus captures plus depth is the whole of the mutable state.
type checkpoint struct {
	pos       int
	elemDepth int
	caps      []capture
}

func (ctx *matchContext) save() checkpoint {
	caps := make([]capture, len(ctx.caps))
	copy(caps, ctx.caps)
	return checkpoint{pos: ctx.pos, elemDepth: ctx.elemDepth, caps: caps}
}

func (ctx *matchContext) restore(cp checkpoint) {
	ctx.pos = cp.pos
	ctx.elemDepth = cp.elemDepth
	copy(ctx.caps, cp.caps)
}

// cur returns the token at the cursor. Past the end it reports EOF, so a
// pattern that consumed the stream's EOF token still sees a terminator.
func (ctx *matchContext) cur() token.Token {
	if ctx.pos < len(ctx.toks) {
		return ctx.toks[ctx.pos]
	}
	return token.Token{Type: token.EOF, Start: ctx.sourceEnd(), End: ctx.sourceEnd()}
}

func (ctx *matchContext) sourceEnd() int {
	if n := len(ctx.toks); n > 0 {
		return ctx.toks[n-1].End
	}
	return 0
}

// consume advances past the current token, keeping the markup nesting depth
// current: open tags push, self-closes and close tags pop.
func (ctx *matchContext) consume() {
	if ctx.pos >= len(ctx.toks) {
		return
	}
	switch ctx.toks[ctx.pos].Type {
	case token.ElementOpen:
		ctx.elemDepth++
	case token.SelfClose, token.ElementClose:
		ctx.elemDepth--
	}
	ctx.pos++
}

// skipTriviaTokens consumes whitespace and comment tokens when the pattern
// has trivia skipping enabled (the default).
func (ctx *matchContext) skipTriviaTokens() {
	if !ctx.skipTrivia {
		return
	}
	for ctx.pos < len(ctx.toks) && ctx.toks[ctx.pos].IsTrivia() {
		ctx.consume()
	}
}

// fork clones the context for an isolated sub-match (lookaround). Captures
// are copied so the sub-match can read them without its writes escaping.
func (ctx *matchContext) fork(at int) *matchContext {
	caps := make([]capture, len(ctx.caps))
	copy(caps, ctx.caps)
	return &matchContext{
		toks:       ctx.toks,
		start:      at,
		pos:        at,
		caps:       caps,
		elemDepth:  ctx.elemDepth,
		steps:      ctx.steps,
		limit:      ctx.limit,
		skipTrivia: ctx.skipTrivia,
	}
}

// joined returns the concatenated text of a capture's significant tokens,
// the value backreferences compare against.
func (ctx *matchContext) joined(c capture) string {
	out := ""
	for i := c.start; i < c.end && i < len(ctx.toks); i++ {
		if ctx.toks[i].IsTrivia() {
			continue
		}
		out += ctx.toks[i].Text
	}
	return out
}

// captureTagName extracts the element name a close-tag backreference must
// match: the first open tag inside the capture, or the capture's joined text
// when it holds a bare name.
func (ctx *matchContext) captureTagName(c capture) string {
	for i := c.start; i < c.end && i < len(ctx.toks); i++ {
		if ctx.toks[i].Type == token.ElementOpen {
			return ctx.toks[i].TagName()
		}
	}
	return ctx.joined(c)
}

// depthSatisfied checks a depth constraint against the given live depth.
func depthSatisfied(d *DepthConstraint, live int, c capture) bool {
	if d == nil {
		return true
	}
	if d.Relative {
		return live == c.depth+d.Value
	}
	return live == d.Value
}
