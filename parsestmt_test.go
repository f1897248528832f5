package main

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/nalgeon/be"
)

func TestParseStatements(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Declarations
		{"int a;\x00", `(decl int "a")`},
		{"float x, y, x;\x00", `(decl float "x" "y" "x")`},

		// Assignments
		{"a = 3;\x00", `(assign "a" (integer 3))`},
		{"r = x + suma(1, y);\x00", `(assign "r" (binary "+" (ident "x") (call "suma" (integer 1) (ident "y"))))`},

		// Return
		{"return;\x00", "(return)"},
		{"return a + 1;\x00", `(return (binary "+" (ident "a") (integer 1)))`},

		// Expression statements
		{"f(1);\x00", `(expr (call "f" (integer 1)))`},
		{"a;\x00", `(expr (ident "a"))`},
	}

	for _, test := range tests {
		l := NewLexer([]byte(test.input))
		l.NextToken()
		result := ToSExpr(ParseStatement(l))
		if result != test.expected {
			t.Errorf("Input: %q\nExpected: %s\nActual: %s", test.input, test.expected, result)
		}
		be.Equal(t, l.CurrTokenType, EOF)
	}
}

func TestParseInvalidStatements(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		next     TokenType // token left for the caller
	}{
		{"a = a * 2; b = 1;\x00", `(invalid "a = a * 2;")`, IDENT},
		{"void v;\x00", `(invalid "void v;")`, EOF},
		{"int;\x00", `(invalid "int;")`, EOF},
		{"int a\x00", `(invalid "int a")`, EOF},
		{"return 1\x00", `(invalid "return 1")`, EOF},
		{"while (x) { x = 1; } y = 2;\x00", `(invalid "while (x) { x = 1; }")`, IDENT},
		{"x = 1 }\x00", `(invalid "x = 1")`, RBRACE},
		{"{ a; } }\x00", `(invalid "{ a; }")`, RBRACE},
	}

	for _, test := range tests {
		l := NewLexer([]byte(test.input))
		l.NextToken()
		result := ToSExpr(ParseStatement(l))
		if result != test.expected {
			t.Errorf("Input: %q\nExpected: %s\nActual: %s", test.input, test.expected, result)
		}
		be.Equal(t, l.CurrTokenType, test.next)
	}
}

func TestParseEmptyStatement(t *testing.T) {
	l := NewLexer([]byte(";\x00"))
	l.NextToken()
	be.True(t, ParseStatement(l) == nil)
	be.Equal(t, l.CurrTokenType, EOF)
}

// =============================================================================
// Programs
// =============================================================================

func TestParseProgram(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"\x00", "(program)"},
		{"int a; float b, c;\x00", `(program (decl int "a") (decl float "b" "c"))`},
		{
			"int suma(int x, int y) { int r; r = x + y; }\x00",
			`(program (func int "suma" (params (param int "x") (param int "y")) (block (decl int "r") (assign "r" (binary "+" (ident "x") (ident "y"))))))`,
		},
		{"int f(int);\x00", `(program (func int "f" (params (param int))))`},
		{"void g(void) { }\x00", `(program (func void "g" (params) (block)))`},
		{"int a; a = 3.5;\x00", `(program (decl int "a") (assign "a" (float 3.5)))`},
		{"f(1);\x00", `(program (expr (call "f" (integer 1))))`},
		{";;int a;\x00", `(program (decl int "a"))`},
	}

	for _, test := range tests {
		l := NewLexer([]byte(test.input))
		l.NextToken()
		result := ToSExpr(ParseProgram(l))
		if result != test.expected {
			t.Errorf("Input: %q\nExpected: %s\nActual: %s", test.input, test.expected, result)
		}
	}
}

func TestParseProgramRecovery(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// A stray top-level statement is skipped up to its ';'.
		{"x * 2; int a;\x00", `(program (invalid "x * 2;") (decl int "a"))`},
		// Braces are skipped as a group at top level.
		{"struct s { int a; } int b;\x00", `(program (invalid "struct s { int a; }") (decl int "b"))`},
		// A malformed header discards its body.
		{"int f(int x { x = 1; } int a;\x00", `(program (invalid "int f(int x { x = 1; }") (decl int "a"))`},
		{"int f(void x) { } int a;\x00", `(program (invalid "int f(void x) { }") (decl int "a"))`},
		// A stray closing brace is its own invalid item.
		{"} int a;\x00", `(program (invalid "}") (decl int "a"))`},
		// Return is only a statement inside a body.
		{"return 1;\x00", `(program (invalid "return 1;"))`},
		// Bad statements inside a body do not end the body.
		{"int f() { a * 2; a = 1; }\x00", `(program (func int "f" (params) (block (invalid "a * 2;") (assign "a" (integer 1)))))`},
	}

	for _, test := range tests {
		l := NewLexer([]byte(test.input))
		l.NextToken()
		result := ToSExpr(ParseProgram(l))
		if result != test.expected {
			t.Errorf("Input: %q\nExpected: %s\nActual: %s", test.input, test.expected, result)
		}
	}
}

func TestParseUnclosedFunction(t *testing.T) {
	program := ParseSource("int f() {\n  int a;\n")
	be.Equal(t, len(program.Children), 1)

	fn := program.Children[0]
	be.Equal(t, fn.Kind, NodeFunc)
	be.True(t, fn.HasBody)
	be.True(t, fn.Unclosed)
	be.Equal(t, len(fn.Children), 1)
}

func TestParseFunctionNode(t *testing.T) {
	program := ParseSource("int a;\nfloat scale(float v, int) {\n  return v;\n}\n")
	be.Equal(t, len(program.Children), 2)

	fn := program.Children[1]
	want := &ASTNode{
		Kind:     NodeFunc,
		Line:     2,
		String:   "scale",
		DeclType: TypeFloat,
		Params:   []Param{{Name: "v", Type: TypeFloat}, {Type: TypeInt}},
		HasBody:  true,
		Children: []*ASTNode{
			{
				Kind: NodeReturn,
				Line: 3,
				Children: []*ASTNode{
					{Kind: NodeIdent, Line: 3, String: "v"},
				},
			},
		},
	}
	if diff := deep.Equal(fn, want); diff != nil {
		t.Error(diff)
	}
}
