/*
Package pattern provides a compact regex-like language compiled to an AST and
executed against token streams, with captures, backreferences, quantifier
backtracking, alternation, lookaround, and depth-aware balanced matching.

# Overview

Patterns are compiled once with Compile and may then be matched repeatedly,
concurrently, against any token stream produced by the lexer package. The
compiled AST carries no match state; every match call runs on its own
context.

Whitespace between pattern elements is insignificant, and whitespace and
comment tokens in the subject stream are skipped between elements unless the
pattern is compiled with WithoutTriviaSkip.

# Token shorthands

  - \k  keyword (optionally \k"value" for a specific keyword)
  - \i  identifier
  - \s  string
  - \n  number
  - \o  operator
  - \p  punctuation
  - .   any single token except EOF
  - "x" a token with exactly the text x, regardless of type

Every shorthand accepts a quoted value suffix, so \o"=" matches only the
assignment operator.

# Type-annotation shorthands

  - \co colon opening a type annotation
  - \go / \gc generic open and close
  - \tn type name
  - \qm optional marker
  - \fa arrow

# Markup shorthands and macros

  - \jo open tag, \jt text run, \ja attribute name, \jv attribute value
  - \Je one complete markup element, nested children included
  - \Bj the children between a consumed open tag and its matching close
  - \jc<1> or \jc<name>: a closing tag whose name equals the tag captured by
    the referenced group, optionally depth-constrained: \jc<1>@0

# Balanced macros

  - \Bp balanced parentheses, \Bb balanced braces. Markup text runs and
    embedded expression regions are skipped whole, so brackets inside them
    never disturb the depth count.
  - \Bc balanced-until-comma: consumes a value while tracking ()/{}/[] depth
    and stops, without consuming, before a comma or closing delimiter seen
    at depth zero.

# Composition

  - (...) capturing group, (?<name>...) named group, (?:...) non-capturing
  - [a|b|c] alternation, tried left to right
  - quantifiers * + ? {n} {n,} {n,m}, each with a trailing ? for non-greedy
  - \1..\9 and \k<name> backreferences, with optional depth suffix @0
    (absolute) or @+1 (relative to the referenced capture's depth)
  - (?=...) (?!...) lookahead, (?<=...) (?<!...) lookbehind

# Errors

Compile reports malformed patterns as *CompileError with the offending
fragment and offset. "No match" at match time is a normal boolean outcome,
never an error. A per-attempt step budget (WithStepLimit) bounds pathological
backtracking; an exhausted budget reads as "no match".
*/
package pattern
