package pattern

import (
	"fmt"
	"strconv"

	"github.com/jsxgrep/jsxgrep/token"
)

// CompileError reports a malformed pattern. Offset and Fragment point at the
// offending part of the expression.
type CompileError struct {
	Expr     string
	Offset   int
	Fragment string
	Msg      string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("pattern %q: %s at offset %d near %q", e.Expr, e.Msg, e.Offset, e.Fragment)
}

// tokenShorthands maps escape codes to the token type they match.
var tokenShorthands = map[string]token.Type{
	"k":  token.Keyword,
	"i":  token.Identifier,
	"s":  token.String,
	"n":  token.Number,
	"o":  token.Operator,
	"p":  token.Punctuation,
	"co": token.Colon,
	"go": token.GenericOpen,
	"gc": token.GenericClose,
	"tn": token.TypeName,
	"qm": token.OptionalMarker,
	"fa": token.Arrow,
	"jo": token.ElementOpen,
	"jt": token.Text,
	"ja": token.AttributeName,
	"jv": token.AttributeValue,
}

// negatedShorthands match any token except the given type.
var negatedShorthands = map[string]token.Type{
	"W": token.Whitespace,
	"C": token.Comment,
	"E": token.EOF,
}

// compiler is a single-use recursive-descent parser over a pattern string.
type compiler struct {
	expr       string
	pos        int
	groupCount int
	groupNames map[string]int
	names      []string // index -> name, "" when unnamed
}

// Compile parses a pattern expression into an immutable Pattern. The
// returned error is always a *CompileError.
func Compile(expr string, opts ...Option) (*Pattern, error) {
	c := &compiler{expr: expr, groupNames: make(map[string]int)}
	root, err := c.parseSequence()
	if err != nil {
		return nil, err
	}
	if c.pos < len(c.expr) {
		return nil, c.errorf(c.pos, "unexpected %q", c.expr[c.pos])
	}
	p := &Pattern{
		expr:       expr,
		root:       root,
		groupCount: c.groupCount,
		names:      c.names,
		nameIndex:  c.groupNames,
		opts:       defaultOptions(),
	}
	for _, o := range opts {
		o(&p.opts)
	}
	return p, nil
}

// MustCompile is Compile that panics on error, for package-level pattern
// variables.
func MustCompile(expr string, opts ...Option) *Pattern {
	p, err := Compile(expr, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func (c *compiler) errorf(off int, format string, args ...any) *CompileError {
	lo, hi := off-8, off+8
	if lo < 0 {
		lo = 0
	}
	if hi > len(c.expr) {
		hi = len(c.expr)
	}
	return &CompileError{
		Expr:     c.expr,
		Offset:   off,
		Fragment: c.expr[lo:hi],
		Msg:      fmt.Sprintf(format, args...),
	}
}

func (c *compiler) peek() byte {
	if c.pos < len(c.expr) {
		return c.expr[c.pos]
	}
	return 0
}

func (c *compiler) skipSpace() {
	for c.pos < len(c.expr) {
		switch c.expr[c.pos] {
		case ' ', '\t', '\n', '\r':
			c.pos++
		default:
			return
		}
	}
}

// parseSequence parses elements until ')' , ']', '|' or end of input.
func (c *compiler) parseSequence() (*SequenceNode, error) {
	seq := &SequenceNode{pos: c.pos}
	for {
		c.skipSpace()
		if c.pos >= len(c.expr) {
			return seq, nil
		}
		switch c.expr[c.pos] {
		case ')', ']', '|':
			return seq, nil
		}
		el, err := c.parseElement()
		if err != nil {
			return nil, err
		}
		seq.Items = append(seq.Items, el)
	}
}

func (c *compiler) parseElement() (Node, error) {
	atom, err := c.parseAtom()
	if err != nil {
		return nil, err
	}
	return c.parseQuantifier(atom)
}

func (c *compiler) parseAtom() (Node, error) {
	start := c.pos
	switch c.expr[c.pos] {
	case '(':
		return c.parseGroup()
	case '[':
		return c.parseAlternation()
	case '.':
		c.pos++
		return &AnyNode{pos: start}, nil
	case '"':
		value, err := c.parseQuoted()
		if err != nil {
			return nil, err
		}
		return &TokenNode{AnyType: true, Value: value, HasValue: true, pos: start}, nil
	case '\\':
		return c.parseEscape()
	}
	return nil, c.errorf(start, "unexpected %q", c.expr[start])
}

// parseQuoted reads a double-quoted literal, honoring backslash escapes.
func (c *compiler) parseQuoted() (string, error) {
	start := c.pos
	c.pos++ // opening quote
	var out []byte
	for c.pos < len(c.expr) {
		ch := c.expr[c.pos]
		if ch == '\\' && c.pos+1 < len(c.expr) {
			out = append(out, c.expr[c.pos+1])
			c.pos += 2
			continue
		}
		if ch == '"' {
			c.pos++
			return string(out), nil
		}
		out = append(out, ch)
		c.pos++
	}
	return "", c.errorf(start, "unterminated literal")
}

func (c *compiler) parseEscape() (Node, error) {
	start := c.pos
	c.pos++ // backslash
	if c.pos >= len(c.expr) {
		return nil, c.errorf(start, "dangling escape")
	}
	ch := c.expr[c.pos]

	// Numbered backreference.
	if ch >= '1' && ch <= '9' {
		c.pos++
		idx := int(ch - '0')
		if idx > c.groupCount {
			return nil, c.errorf(start, "backreference \\%d has no group", idx)
		}
		depth, err := c.parseDepth()
		if err != nil {
			return nil, err
		}
		return &BackrefNode{Index: idx, Depth: depth, pos: start}, nil
	}

	// Named backreference: \k<name>.
	if ch == 'k' && c.pos+1 < len(c.expr) && c.expr[c.pos+1] == '<' {
		c.pos += 2
		name, err := c.parseName('>')
		if err != nil {
			return nil, err
		}
		if _, ok := c.groupNames[name]; !ok {
			return nil, c.errorf(start, "backreference to unknown group %q", name)
		}
		depth, err := c.parseDepth()
		if err != nil {
			return nil, err
		}
		return &BackrefNode{Name: name, Depth: depth, pos: start}, nil
	}

	// Two-letter codes take precedence over one-letter prefixes.
	if c.pos+1 < len(c.expr) {
		code := c.expr[c.pos : c.pos+2]
		if node, ok, err := c.parseCode(code, start); ok || err != nil {
			return node, err
		}
	}
	code := c.expr[c.pos : c.pos+1]
	if node, ok, err := c.parseCode(code, start); ok || err != nil {
		return node, err
	}
	return nil, c.errorf(start, "unknown escape \\%c", ch)
}

// parseCode resolves one shorthand code. ok=false means the code is not
// recognized at this length.
func (c *compiler) parseCode(code string, start int) (Node, bool, error) {
	switch code {
	case "Bp":
		c.pos += 2
		return &BalancedNode{Open: "(", Close: ")", pos: start}, true, nil
	case "Bb":
		c.pos += 2
		return &BalancedNode{Open: "{", Close: "}", pos: start}, true, nil
	case "Bc":
		c.pos += 2
		return &BalancedUntilNode{
			Separator:   ",",
			Terminators: []string{")", "}", "]"},
			pos:         start,
		}, true, nil
	case "Bj":
		c.pos += 2
		return &ChildrenNode{pos: start}, true, nil
	case "Je":
		c.pos += 2
		return &ElementNode{pos: start}, true, nil
	case "jc":
		c.pos += 2
		return c.parseCloseRef(start)
	}
	if tt, ok := tokenShorthands[code]; ok {
		c.pos += len(code)
		n := &TokenNode{TokType: tt, pos: start}
		if c.peek() == '"' {
			value, err := c.parseQuoted()
			if err != nil {
				return nil, true, err
			}
			n.Value = value
			n.HasValue = true
		}
		return n, true, nil
	}
	if tt, ok := negatedShorthands[code]; ok {
		c.pos += len(code)
		return &TokenNode{TokType: tt, Negate: true, pos: start}, true, nil
	}
	return nil, false, nil
}

// parseCloseRef parses the body of \jc<ref>, the closing-tag backreference.
func (c *compiler) parseCloseRef(start int) (Node, bool, error) {
	if c.peek() != '<' {
		return nil, true, c.errorf(start, `\jc requires <group>`)
	}
	c.pos++
	ref, err := c.parseName('>')
	if err != nil {
		return nil, true, err
	}
	node := &CloseRefNode{pos: start}
	if idx, convErr := strconv.Atoi(ref); convErr == nil {
		if idx < 1 || idx > c.groupCount {
			return nil, true, c.errorf(start, `\jc<%d> has no group`, idx)
		}
		node.Index = idx
	} else {
		if _, ok := c.groupNames[ref]; !ok {
			return nil, true, c.errorf(start, `\jc references unknown group %q`, ref)
		}
		node.Name = ref
	}
	depth, err := c.parseDepth()
	if err != nil {
		return nil, true, err
	}
	node.Depth = depth
	return node, true, nil
}

// parseDepth parses an optional @N / @+N / @-N suffix.
func (c *compiler) parseDepth() (*DepthConstraint, error) {
	if c.peek() != '@' {
		return nil, nil
	}
	start := c.pos
	c.pos++
	d := &DepthConstraint{}
	if c.peek() == '+' || c.peek() == '-' {
		d.Relative = true
		if c.expr[c.pos] == '-' {
			d.Value = -1
		} else {
			d.Value = 1
		}
		c.pos++
	}
	numStart := c.pos
	for c.pos < len(c.expr) && c.expr[c.pos] >= '0' && c.expr[c.pos] <= '9' {
		c.pos++
	}
	if c.pos == numStart {
		return nil, c.errorf(start, "depth constraint requires a number")
	}
	n, _ := strconv.Atoi(c.expr[numStart:c.pos])
	if d.Relative {
		d.Value *= n
	} else {
		d.Value = n
	}
	return d, nil
}

func (c *compiler) parseName(closer byte) (string, error) {
	start := c.pos
	for c.pos < len(c.expr) && c.expr[c.pos] != closer {
		c.pos++
	}
	if c.pos >= len(c.expr) {
		return "", c.errorf(start, "unterminated name, expected %q", string(closer))
	}
	name := c.expr[start:c.pos]
	c.pos++ // closer
	if name == "" {
		return "", c.errorf(start, "empty name")
	}
	return name, nil
}

func (c *compiler) parseGroup() (Node, error) {
	start := c.pos
	c.pos++ // '('

	behind, negative, lookaround := false, false, false
	capturing, name := true, ""

	if c.peek() == '?' {
		c.pos++
		switch c.peek() {
		case ':':
			c.pos++
			capturing = false
		case '=':
			c.pos++
			lookaround = true
		case '!':
			c.pos++
			lookaround, negative = true, true
		case '<':
			c.pos++
			switch c.peek() {
			case '=':
				c.pos++
				lookaround, behind = true, true
			case '!':
				c.pos++
				lookaround, behind, negative = true, true, true
			default:
				n, err := c.parseName('>')
				if err != nil {
					return nil, err
				}
				name = n
			}
		default:
			return nil, c.errorf(c.pos, "unknown group modifier")
		}
	}

	var idx int
	if !lookaround && capturing {
		c.groupCount++
		idx = c.groupCount
		c.names = append(c.names, name)
		if name != "" {
			if _, dup := c.groupNames[name]; dup {
				return nil, c.errorf(start, "duplicate group name %q", name)
			}
			c.groupNames[name] = idx
		}
	}

	child, err := c.parseSequence()
	if err != nil {
		return nil, err
	}
	if c.peek() != ')' {
		return nil, c.errorf(start, "unterminated group")
	}
	c.pos++

	if lookaround {
		return &LookaroundNode{Child: child, Behind: behind, Negative: negative, pos: start}, nil
	}
	return &GroupNode{Child: child, Index: idx, Name: name, Capturing: capturing, pos: start}, nil
}

func (c *compiler) parseAlternation() (Node, error) {
	start := c.pos
	c.pos++ // '['
	alt := &AlternationNode{pos: start}
	for {
		seq, err := c.parseSequence()
		if err != nil {
			return nil, err
		}
		alt.Alts = append(alt.Alts, seq)
		switch c.peek() {
		case '|':
			c.pos++
		case ']':
			c.pos++
			return alt, nil
		default:
			return nil, c.errorf(start, "unterminated alternation")
		}
	}
}

// parseQuantifier wraps atom when a quantifier suffix follows it directly.
func (c *compiler) parseQuantifier(atom Node) (Node, error) {
	if c.pos >= len(c.expr) {
		return atom, nil
	}
	start := c.pos
	var min, max int
	switch c.expr[c.pos] {
	case '*':
		min, max = 0, -1
		c.pos++
	case '+':
		min, max = 1, -1
		c.pos++
	case '?':
		min, max = 0, 1
		c.pos++
	case '{':
		var err error
		min, max, err = c.parseBounds()
		if err != nil {
			return nil, err
		}
	default:
		return atom, nil
	}
	if _, ok := atom.(*LookaroundNode); ok {
		return nil, c.errorf(start, "quantifier on zero-width assertion")
	}
	greedy := true
	if c.peek() == '?' {
		greedy = false
		c.pos++
	}
	return &QuantifierNode{Child: atom, Min: min, Max: max, Greedy: greedy, pos: start}, nil
}

// parseBounds parses {n}, {n,} and {n,m}.
func (c *compiler) parseBounds() (int, int, error) {
	start := c.pos
	c.pos++ // '{'
	min, ok := c.parseInt()
	if !ok {
		return 0, 0, c.errorf(start, "malformed quantifier bounds")
	}
	max := min
	if c.peek() == ',' {
		c.pos++
		if c.peek() == '}' {
			max = -1
		} else {
			max, ok = c.parseInt()
			if !ok {
				return 0, 0, c.errorf(start, "malformed quantifier bounds")
			}
		}
	}
	if c.peek() != '}' {
		return 0, 0, c.errorf(start, "unterminated quantifier bounds")
	}
	c.pos++
	if max >= 0 && max < min {
		return 0, 0, c.errorf(start, "quantifier bounds out of order")
	}
	return min, max, nil
}

func (c *compiler) parseInt() (int, bool) {
	start := c.pos
	for c.pos < len(c.expr) && c.expr[c.pos] >= '0' && c.expr[c.pos] <= '9' {
		c.pos++
	}
	if c.pos == start {
		return 0, false
	}
	n, _ := strconv.Atoi(c.expr[start:c.pos])
	return n, true
}
