package pattern

import (
	"errors"
	"strings"
	"testing"
)

func TestCompileValid(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"single shorthand", `\i`},
		{"shorthand with value", `\k"const"`},
		{"value on operator", `\o"="`},
		{"bare literal", `"console"`},
		{"wildcard", `.`},
		{"sequence", `\k"const" \i \o"=" \n`},
		{"group", `\k"var" (\i)`},
		{"named group", `(?<name>\i)`},
		{"non capturing", `(?:\i \o)`},
		{"alternation", `[\k"let"|\k"const"|\k"var"]`},
		{"star", `\i*`},
		{"plus lazy", `.+?`},
		{"bounds", `\i{2,5}`},
		{"open bounds", `\i{3,}`},
		{"exact bounds", `\i{2}`},
		{"numbered backref", `(\i) \o \1`},
		{"named backref", `(?<v>\i) \o \k<v>`},
		{"backref with depth", `(\jo) \Bj \jc<1>@0`},
		{"relative depth", `(?<tag>\jo) \jc<tag>@+0`},
		{"balanced parens", `\i \Bp`},
		{"balanced braces", `\Bb`},
		{"balanced until", `\co (\Bc)`},
		{"element", `\Je`},
		{"lookahead", `\i (?=\o"=")`},
		{"negative lookahead", `\i (?!\p".")`},
		{"lookbehind", `(?<=\k"return") \Je`},
		{"negative lookbehind", `(?<!\o) \n`},
		{"negated trivia", `\W \C \E`},
		{"markup shorthands", `\jo \ja \jv \jt`},
		{"type shorthands", `\co \go \gc \tn \qm \fa`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.expr, err)
			}
			if p.Expr() != tt.expr {
				t.Errorf("Expr() = %q, want %q", p.Expr(), tt.expr)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
		msg  string
	}{
		{"empty escape", `\`, "dangling escape"},
		{"unknown escape", `\z`, "unknown escape"},
		{"unterminated group", `(\i`, "unterminated group"},
		{"unterminated alternation", `[\i|\o`, "unterminated alternation"},
		{"unterminated literal", `"abc`, "unterminated literal"},
		{"stray close", `\i)`, "unexpected"},
		{"backref before group", `\1 (\i)`, "no group"},
		{"unknown named backref", `\k<x>`, "unknown group"},
		{"duplicate group name", `(?<a>\i) (?<a>\o)`, "duplicate group name"},
		{"quantified lookahead", `(?=\i)*`, "zero-width"},
		{"bounds out of order", `\i{5,2}`, "out of order"},
		{"malformed bounds", `\i{a}`, "malformed"},
		{"depth without number", `(\jo) \jc<1>@`, "requires a number"},
		{"close ref without group", `\jc<3>`, "no group"},
		{"empty group name", `(?<>\i)`, "empty name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expr)
			if err == nil {
				t.Fatalf("Compile(%q) succeeded, want error containing %q", tt.expr, tt.msg)
			}
			var ce *CompileError
			if !errors.As(err, &ce) {
				t.Fatalf("Compile(%q) error type %T, want *CompileError", tt.expr, err)
			}
			if !strings.Contains(ce.Msg, tt.msg) {
				t.Errorf("Compile(%q) msg = %q, want substring %q", tt.expr, ce.Msg, tt.msg)
			}
			if ce.Expr != tt.expr {
				t.Errorf("CompileError.Expr = %q, want %q", ce.Expr, tt.expr)
			}
		})
	}
}

func TestCompileGroupCounting(t *testing.T) {
	p, err := Compile(`(\i) (?:\o) (?<rhs>.+) (?=\p";")`)
	if err != nil {
		t.Fatal(err)
	}
	if p.GroupCount() != 2 {
		t.Errorf("GroupCount() = %d, want 2", p.GroupCount())
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile on a bad pattern did not panic")
		}
	}()
	MustCompile(`(\i`)
}
