package pattern

import "github.com/jsxgrep/jsxgrep/token"

// match attempts node n at the context's cursor and calls cont for the rest
// of the enclosing sequence. The context is restored to its entry state
// whenever the attempt (including cont) fails, which is the sole mechanism
// behind all backtracking.
func (p *Pattern) match(ctx *matchContext, n Node, cont func() bool) bool {
	if ctx.overBudget {
		return false
	}
	ctx.steps++
	if ctx.steps > ctx.limit {
		ctx.overBudget = true
		return false
	}
	cp := ctx.save()
	if p.matchNode(ctx, n, cont) {
		return true
	}
	ctx.restore(cp)
	return false
}

func (p *Pattern) matchNode(ctx *matchContext, n Node, cont func() bool) bool {
	switch n := n.(type) {
	case *SequenceNode:
		return p.matchSequence(ctx, n, cont)
	case *TokenNode:
		return p.matchToken(ctx, n, cont)
	case *AnyNode:
		ctx.skipTriviaTokens()
		if ctx.cur().IsEOF() {
			return false
		}
		ctx.consume()
		return cont()
	case *QuantifierNode:
		return p.matchQuantifier(ctx, n, cont)
	case *GroupNode:
		return p.matchGroup(ctx, n, cont)
	case *AlternationNode:
		for _, alt := range n.Alts {
			if p.match(ctx, alt, cont) {
				return true
			}
		}
		return false
	case *BackrefNode:
		return p.matchBackref(ctx, n, cont)
	case *BalancedNode:
		return p.matchBalanced(ctx, n, cont)
	case *BalancedUntilNode:
		return p.matchBalancedUntil(ctx, n, cont)
	case *ElementNode:
		return p.matchElement(ctx, cont)
	case *ChildrenNode:
		return p.matchChildren(ctx, cont)
	case *CloseRefNode:
		return p.matchCloseRef(ctx, n, cont)
	case *LookaroundNode:
		return p.matchLookaround(ctx, n, cont)
	}
	return false
}

func (p *Pattern) matchSequence(ctx *matchContext, n *SequenceNode, cont func() bool) bool {
	var step func(i int) bool
	step = func(i int) bool {
		if i == len(n.Items) {
			return cont()
		}
		return p.match(ctx, n.Items[i], func() bool { return step(i + 1) })
	}
	return step(0)
}

func (p *Pattern) matchToken(ctx *matchContext, n *TokenNode, cont func() bool) bool {
	ctx.skipTriviaTokens()
	t := ctx.cur()
	if n.Negate {
		if t.IsEOF() || t.Type == n.TokType {
			return false
		}
	} else if n.AnyType {
		if t.IsEOF() {
			return false
		}
	} else if t.Type != n.TokType {
		return false
	}
	if n.HasValue && t.Text != n.Value {
		return false
	}
	ctx.consume()
	return cont()
}

// matchQuantifier implements greedy-with-backtrack and lazy repetition. A
// repetition that consumes nothing ends the expansion, so a nullable child
// cannot loop forever.
func (p *Pattern) matchQuantifier(ctx *matchContext, n *QuantifierNode, cont func() bool) bool {
	if n.Greedy {
		var rep func(count int) bool
		rep = func(count int) bool {
			if n.Max < 0 || count < n.Max {
				before := ctx.pos
				if p.match(ctx, n.Child, func() bool {
					if ctx.pos == before {
						return count+1 >= n.Min && cont()
					}
					return rep(count + 1)
				}) {
					return true
				}
			}
			if count >= n.Min {
				return cont()
			}
			return false
		}
		return rep(0)
	}
	var rep func(count int) bool
	rep = func(count int) bool {
		if count >= n.Min && cont() {
			return true
		}
		if n.Max >= 0 && count >= n.Max {
			return false
		}
		before := ctx.pos
		return p.match(ctx, n.Child, func() bool {
			if ctx.pos == before {
				return false
			}
			return rep(count + 1)
		})
	}
	return rep(0)
}

// matchGroup records the capture inside the child's continuation, so the
// recorded range always reflects the repetition count the overall match
// succeeded with, not an earlier over-consumed attempt.
func (p *Pattern) matchGroup(ctx *matchContext, n *GroupNode, cont func() bool) bool {
	if !n.Capturing {
		return p.match(ctx, n.Child, cont)
	}
	capStart := ctx.pos
	return p.match(ctx, n.Child, func() bool {
		idx := n.Index - 1
		prev := ctx.caps[idx]
		ctx.caps[idx] = capture{start: capStart, end: ctx.pos, depth: ctx.elemDepth, set: true}
		if cont() {
			return true
		}
		ctx.caps[idx] = prev
		return false
	})
}

func (p *Pattern) resolve(ctx *matchContext, index int, name string) (capture, bool) {
	if name != "" {
		idx, ok := p.nameIndex[name]
		if !ok {
			return capture{}, false
		}
		index = idx
	}
	if index < 1 || index > len(ctx.caps) {
		return capture{}, false
	}
	c := ctx.caps[index-1]
	return c, c.set
}

func (p *Pattern) matchBackref(ctx *matchContext, n *BackrefNode, cont func() bool) bool {
	c, ok := p.resolve(ctx, n.Index, n.Name)
	if !ok {
		return false
	}
	ctx.skipTriviaTokens()
	t := ctx.cur()
	if t.IsEOF() || t.Text != ctx.joined(c) {
		return false
	}
	if !depthSatisfied(n.Depth, ctx.elemDepth, c) {
		return false
	}
	ctx.consume()
	return cont()
}

// matchBalanced consumes from the opening delimiter to the closer that
// returns the count to zero. Markup text tokens and whole embedded
// expression regions are stepped over without counting, so decoy brackets
// inside them never perturb the depth.
func (p *Pattern) matchBalanced(ctx *matchContext, n *BalancedNode, cont func() bool) bool {
	ctx.skipTriviaTokens()
	first := ctx.cur()
	if first.Type != token.Punctuation || first.Text != n.Open {
		return false
	}
	depth := 0
	for {
		t := ctx.cur()
		if t.IsEOF() {
			return false
		}
		switch {
		case t.Type == token.ExpressionStart:
			if !ctx.skipExpressionRegion() {
				return false
			}
			continue
		case t.Type == token.Text:
			ctx.consume()
			continue
		case t.Type == token.Punctuation && t.Text == n.Open:
			depth++
		case t.Type == token.Punctuation && t.Text == n.Close:
			depth--
		}
		ctx.consume()
		if depth == 0 {
			return cont()
		}
	}
}

// skipExpressionRegion consumes a whole {...} markup expression, including
// nested expression regions. Reports false when the region never closes.
func (ctx *matchContext) skipExpressionRegion() bool {
	depth := 0
	for {
		t := ctx.cur()
		if t.IsEOF() {
			return false
		}
		switch t.Type {
		case token.ExpressionStart:
			depth++
		case token.ExpressionEnd:
			depth--
		}
		ctx.consume()
		if depth == 0 {
			return true
		}
	}
}

// matchBalancedUntil consumes tokens while tracking ()/{}/[] depth. At depth
// zero the separator and every terminator stop the scan without being
// consumed; a closer that would take the depth negative stops it too. At
// least one token must be consumed.
func (p *Pattern) matchBalancedUntil(ctx *matchContext, n *BalancedUntilNode, cont func() bool) bool {
	consumed := 0
	depth := 0
scan:
	for {
		t := ctx.cur()
		if t.IsEOF() {
			break
		}
		if depth == 0 && t.Type == token.Punctuation {
			if t.Text == n.Separator {
				break
			}
			for _, term := range n.Terminators {
				if t.Text == term {
					break scan
				}
			}
		}
		if t.Type == token.Punctuation {
			switch t.Text {
			case "(", "{", "[":
				depth++
			case ")", "}", "]":
				if depth == 0 {
					break scan
				}
				depth--
			}
		}
		ctx.consume()
		consumed++
	}
	if consumed == 0 {
		return false
	}
	return cont()
}

// matchElement consumes one complete markup element: the open tag, its
// children (nested elements included), and the matching close tag or
// self-close.
func (p *Pattern) matchElement(ctx *matchContext, cont func() bool) bool {
	ctx.skipTriviaTokens()
	if ctx.cur().Type != token.ElementOpen {
		return false
	}
	base := ctx.elemDepth
	ctx.consume()
	for ctx.elemDepth > base {
		t := ctx.cur()
		if t.IsEOF() {
			return false
		}
		wasClose := t.Type == token.ElementClose
		ctx.consume()
		if wasClose && ctx.elemDepth == base {
			ctx.skipTriviaTokens()
			if ctx.cur().Type == token.TagEnd {
				ctx.consume()
			}
		}
	}
	return cont()
}

// matchChildren consumes the content between an already-consumed open tag
// and its matching close tag, which is left unconsumed. Empty content is a
// valid match.
func (p *Pattern) matchChildren(ctx *matchContext, cont func() bool) bool {
	base := ctx.elemDepth
	for {
		t := ctx.cur()
		if t.IsEOF() {
			return false
		}
		if t.Type == token.ElementClose && ctx.elemDepth == base {
			return cont()
		}
		ctx.consume()
	}
}

// matchCloseRef matches a closing tag against a previously captured opening
// tag name. The depth constraint applies to the depth the close returns the
// matcher to, which is what tells the outermost close apart from a
// same-named nested sibling.
func (p *Pattern) matchCloseRef(ctx *matchContext, n *CloseRefNode, cont func() bool) bool {
	c, ok := p.resolve(ctx, n.Index, n.Name)
	if !ok {
		return false
	}
	ctx.skipTriviaTokens()
	t := ctx.cur()
	if t.Type != token.ElementClose || t.TagName() != ctx.captureTagName(c) {
		return false
	}
	if !depthSatisfied(n.Depth, ctx.elemDepth-1, c) {
		return false
	}
	ctx.consume()
	ctx.skipTriviaTokens()
	if ctx.cur().Type == token.TagEnd {
		ctx.consume()
	}
	return cont()
}

// matchLookaround evaluates the child on a forked context so neither input
// position nor captures of the outer match are disturbed.
func (p *Pattern) matchLookaround(ctx *matchContext, n *LookaroundNode, cont func() bool) bool {
	matched := false
	if n.Behind {
		for at := ctx.pos - 1; at >= 0 && !matched; at-- {
			sub := ctx.fork(at)
			target := ctx.pos
			matched = p.match(sub, n.Child, func() bool { return sub.pos == target })
			ctx.steps = sub.steps
			if sub.overBudget {
				ctx.overBudget = true
				return false
			}
		}
	} else {
		sub := ctx.fork(ctx.pos)
		matched = p.match(sub, n.Child, func() bool { return true })
		ctx.steps = sub.steps
		if sub.overBudget {
			ctx.overBudget = true
			return false
		}
	}
	if matched == n.Negative {
		return false
	}
	return cont()
}
