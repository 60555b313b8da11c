package pattern

import (
	"fmt"
	"strings"

	"github.com/jsxgrep/jsxgrep/token"
)

// NodeKind discriminates AST node types.
type NodeKind int

const (
	KindSequence NodeKind = iota
	KindToken
	KindAny
	KindQuantifier
	KindGroup
	KindAlternation
	KindBackref
	KindBalanced
	KindBalancedUntil
	KindElement
	KindChildren
	KindCloseRef
	KindLookaround
)

// Node is a compiled pattern AST node. Nodes are immutable after compilation
// and carry no match state, so a compiled pattern is freely shareable.
type Node interface {
	Kind() NodeKind
	String() string
	Pos() int // offset in the pattern source, for error reporting
}

var (
	_ Node = (*SequenceNode)(nil)
	_ Node = (*TokenNode)(nil)
	_ Node = (*AnyNode)(nil)
	_ Node = (*QuantifierNode)(nil)
	_ Node = (*GroupNode)(nil)
	_ Node = (*AlternationNode)(nil)
	_ Node = (*BackrefNode)(nil)
	_ Node = (*BalancedNode)(nil)
	_ Node = (*BalancedUntilNode)(nil)
	_ Node = (*ElementNode)(nil)
	_ Node = (*ChildrenNode)(nil)
	_ Node = (*CloseRefNode)(nil)
	_ Node = (*LookaroundNode)(nil)
)

// DepthConstraint restricts a backreference (or closing-tag reference) to a
// markup nesting depth: absolute ("@0") or relative to the depth at which
// the referenced capture was made ("@+1").
type DepthConstraint struct {
	Relative bool
	Value    int
}

func (d DepthConstraint) String() string {
	if d.Relative {
		return fmt.Sprintf("@%+d", d.Value)
	}
	return fmt.Sprintf("@%d", d.Value)
}

// SequenceNode matches its items in order.
type SequenceNode struct {
	Items []Node
	pos   int
}

func (n *SequenceNode) Kind() NodeKind { return KindSequence }
func (n *SequenceNode) Pos() int       { return n.pos }
func (n *SequenceNode) String() string {
	parts := make([]string, len(n.Items))
	for i, it := range n.Items {
		parts[i] = it.String()
	}
	return strings.Join(parts, " ")
}

// TokenNode matches one token by type, optionally by literal value, or by
// value alone when AnyType is set. Negate inverts the type test.
type TokenNode struct {
	TokType  token.Type
	AnyType  bool
	Value    string
	HasValue bool
	Negate   bool
	pos      int
}

func (n *TokenNode) Kind() NodeKind { return KindToken }
func (n *TokenNode) Pos() int       { return n.pos }
func (n *TokenNode) String() string {
	var sb strings.Builder
	if n.Negate {
		sb.WriteString("!")
	}
	if n.AnyType {
		sb.WriteString("any")
	} else {
		sb.WriteString(n.TokType.String())
	}
	if n.HasValue {
		fmt.Fprintf(&sb, "=%q", n.Value)
	}
	return sb.String()
}

// AnyNode matches any single token except EOF.
type AnyNode struct {
	pos int
}

func (n *AnyNode) Kind() NodeKind { return KindAny }
func (n *AnyNode) Pos() int       { return n.pos }
func (n *AnyNode) String() string { return "." }

// QuantifierNode repeats its child between Min and Max times. Max < 0 means
// unbounded.
type QuantifierNode struct {
	Child  Node
	Min    int
	Max    int
	Greedy bool
	pos    int
}

func (n *QuantifierNode) Kind() NodeKind { return KindQuantifier }
func (n *QuantifierNode) Pos() int       { return n.pos }
func (n *QuantifierNode) String() string {
	suffix := ""
	if !n.Greedy {
		suffix = "?"
	}
	switch {
	case n.Min == 0 && n.Max < 0:
		return n.Child.String() + "*" + suffix
	case n.Min == 1 && n.Max < 0:
		return n.Child.String() + "+" + suffix
	case n.Min == 0 && n.Max == 1:
		return n.Child.String() + "?" + suffix
	default:
		return fmt.Sprintf("%s{%d,%d}%s", n.Child.String(), n.Min, n.Max, suffix)
	}
}

// GroupNode wraps a sub-pattern. Capturing groups record the token range
// their child consumed; Index is assigned in declaration order at compile
// time.
type GroupNode struct {
	Child     Node
	Index     int
	Name      string
	Capturing bool
	pos       int
}

func (n *GroupNode) Kind() NodeKind { return KindGroup }
func (n *GroupNode) Pos() int       { return n.pos }
func (n *GroupNode) String() string {
	if !n.Capturing {
		return "(?:" + n.Child.String() + ")"
	}
	if n.Name != "" {
		return "(?<" + n.Name + ">" + n.Child.String() + ")"
	}
	return "(" + n.Child.String() + ")"
}

// AlternationNode tries its alternatives in order.
type AlternationNode struct {
	Alts []Node
	pos  int
}

func (n *AlternationNode) Kind() NodeKind { return KindAlternation }
func (n *AlternationNode) Pos() int       { return n.pos }
func (n *AlternationNode) String() string {
	parts := make([]string, len(n.Alts))
	for i, a := range n.Alts {
		parts[i] = a.String()
	}
	return "[" + strings.Join(parts, "|") + "]"
}

// BackrefNode matches a token whose text equals the referenced capture's
// text. Either Index or Name identifies the capture.
type BackrefNode struct {
	Index int
	Name  string
	Depth *DepthConstraint
	pos   int
}

func (n *BackrefNode) Kind() NodeKind { return KindBackref }
func (n *BackrefNode) Pos() int       { return n.pos }
func (n *BackrefNode) String() string {
	var sb strings.Builder
	if n.Name != "" {
		sb.WriteString(`\k<` + n.Name + ">")
	} else {
		fmt.Fprintf(&sb, `\%d`, n.Index)
	}
	if n.Depth != nil {
		sb.WriteString(n.Depth.String())
	}
	return sb.String()
}

// BalancedNode consumes from an Open punctuation token to the Close token
// that returns the depth count to zero. Markup text and embedded expression
// regions are skipped whole so decoy brackets inside them never perturb the
// count.
type BalancedNode struct {
	Open  string
	Close string
	pos   int
}

func (n *BalancedNode) Kind() NodeKind { return KindBalanced }
func (n *BalancedNode) Pos() int       { return n.pos }
func (n *BalancedNode) String() string {
	return "balanced" + n.Open + n.Close
}

// BalancedUntilNode consumes tokens while tracking ()/{}/[] depth and stops,
// without consuming, at a separator or terminator seen at depth zero, or
// when depth would go negative. It must consume at least one token.
type BalancedUntilNode struct {
	Separator   string
	Terminators []string
	pos         int
}

func (n *BalancedUntilNode) Kind() NodeKind { return KindBalancedUntil }
func (n *BalancedUntilNode) Pos() int       { return n.pos }
func (n *BalancedUntilNode) String() string {
	return "until" + n.Separator
}

// ElementNode matches one complete markup element, open tag through matching
// close (or self-close), including nested children.
type ElementNode struct {
	pos int
}

func (n *ElementNode) Kind() NodeKind { return KindElement }
func (n *ElementNode) Pos() int       { return n.pos }
func (n *ElementNode) String() string { return "element" }

// ChildrenNode matches the content between a consumed open tag's end and its
// matching close tag, leaving the close tag unconsumed.
type ChildrenNode struct {
	pos int
}

func (n *ChildrenNode) Kind() NodeKind { return KindChildren }
func (n *ChildrenNode) Pos() int       { return n.pos }
func (n *ChildrenNode) String() string { return "children" }

// CloseRefNode matches a closing tag whose name equals the tag name captured
// by the referenced group, with an optional depth constraint to tell the
// outermost close apart from same-named nested siblings.
type CloseRefNode struct {
	Index int
	Name  string
	Depth *DepthConstraint
	pos   int
}

func (n *CloseRefNode) Kind() NodeKind { return KindCloseRef }
func (n *CloseRefNode) Pos() int       { return n.pos }
func (n *CloseRefNode) String() string {
	var sb strings.Builder
	sb.WriteString(`\jc<`)
	if n.Name != "" {
		sb.WriteString(n.Name)
	} else {
		fmt.Fprintf(&sb, "%d", n.Index)
	}
	sb.WriteString(">")
	if n.Depth != nil {
		sb.WriteString(n.Depth.String())
	}
	return sb.String()
}

// LookaroundNode is a zero-width assertion. Behind selects lookbehind,
// Negative inverts the result. The child match never consumes input and its
// captures never escape.
type LookaroundNode struct {
	Child    Node
	Behind   bool
	Negative bool
	pos      int
}

func (n *LookaroundNode) Kind() NodeKind { return KindLookaround }
func (n *LookaroundNode) Pos() int       { return n.pos }
func (n *LookaroundNode) String() string {
	op := "?="
	switch {
	case n.Behind && n.Negative:
		op = "?<!"
	case n.Behind:
		op = "?<="
	case n.Negative:
		op = "?!"
	}
	return "(" + op + n.Child.String() + ")"
}
