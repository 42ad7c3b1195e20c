package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func parseProgString(t *testing.T, input string) string {
	t.Helper()
	prog, err := ParseSource(input, "<test>")
	be.Err(t, err, nil)
	return ToSExpr(prog)
}

func parseProgError(t *testing.T, input string) error {
	t.Helper()
	_, err := ParseSource(input, "<test>")
	be.True(t, err != nil)
	return err
}

func TestParseVarDecls(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"let x: int = 1", `(program (let "x" int (integer 1)))`},
		{"const pi: float = 3.14", `(program (const "pi" float (float 3.14)))`},
		{"let s: str = \"hi\"", `(program (let "s" str (string "hi")))`},
		{"let ok: bool = true", `(program (let "ok" bool (bool true)))`},
		{"let xs: [int] = [1]", `(program (let "xs" (list-of int) (list (integer 1))))`},
		{"let grid: [[int]] = [[1]]", `(program (let "grid" (list-of (list-of int)) (list (list (integer 1)))))`},
		{`let m: {str: int} = {"a": 1}`, `(program (let "m" (dict-of str int) (dict ((string "a") (integer 1)))))`},
		{"let p: Point = Point { x: 1, y: 2 }", `(program (let "p" Point (struct-lit "Point" ("x" (integer 1)) ("y" (integer 2)))))`},
	}

	for _, tt := range tests {
		be.Equal(t, parseProgString(t, tt.input), tt.expected)
	}
}

func TestParseVarDeclRequiresAnnotation(t *testing.T) {
	err := parseProgError(t, "let x = 1")
	be.True(t, strings.Contains(err.Error(), "syntax error"))
}

func TestParseVarDeclRequiresInitializer(t *testing.T) {
	err := parseProgError(t, "let x: int")
	be.True(t, strings.Contains(err.Error(), "syntax error"))
}

func TestParseFuncDecl(t *testing.T) {
	be.Equal(t,
		parseProgString(t, "fn add(a: int, b: int): int { return a + b }"),
		`(program (fn "add" ((param "a" int) (param "b" int)) int (block (return (binary "+" (ident "a") (ident "b"))))))`)
}

func TestParseFuncDeclDefaultsToVoid(t *testing.T) {
	be.Equal(t,
		parseProgString(t, "fn greet(name: str) { print(name) }"),
		`(program (fn "greet" ((param "name" str)) void (block (print (ident "name")))))`)
}

func TestParseVoidOnlyInReturnPosition(t *testing.T) {
	err := parseProgError(t, "let x: void = 1")
	be.True(t, strings.Contains(err.Error(), "syntax error"))

	err = parseProgError(t, "fn f(a: void) { }")
	be.True(t, strings.Contains(err.Error(), "syntax error"))
}

func TestParseStructDecl(t *testing.T) {
	be.Equal(t,
		parseProgString(t, "struct Point { x: int, y: int }"),
		`(program (struct "Point" (field "x" int) (field "y" int)))`)
}

func TestParseEnumDecl(t *testing.T) {
	be.Equal(t,
		parseProgString(t, "enum Color { Red, Green, Blue }"),
		`(program (enum "Color" "Red" "Green" "Blue"))`)
}

func TestParseEnumRequiresVariant(t *testing.T) {
	err := parseProgError(t, "enum Empty { }")
	be.True(t, strings.Contains(err.Error(), "at least one variant"))
}

func TestParseImport(t *testing.T) {
	be.Equal(t, parseProgString(t, "import math"), `(program (import "math"))`)
}

func TestParseIfElseChain(t *testing.T) {
	be.Equal(t,
		parseProgString(t, "if a { print(1) } else if b { print(2) } else { print(3) }"),
		`(program (if (ident "a") (block (print (integer 1))) (block (if (ident "b") (block (print (integer 2))) (block (print (integer 3)))))))`)
}

func TestParseWhile(t *testing.T) {
	be.Equal(t,
		parseProgString(t, "while x < 10 { x = x + 1 }"),
		`(program (while (binary "<" (ident "x") (integer 10)) (block (assign (ident "x") (binary "+" (ident "x") (integer 1))))))`)
}

func TestParseFor(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			"for i in 0..3 { print(i) }",
			`(program (for "i" (range (integer 0) (integer 3) exclusive) (block (print (ident "i")))))`,
		},
		{
			"for x in xs { print(x) }",
			`(program (for "x" (ident "xs") (block (print (ident "x")))))`,
		},
	}

	for _, tt := range tests {
		be.Equal(t, parseProgString(t, tt.input), tt.expected)
	}
}

func TestParseReturn(t *testing.T) {
	be.Equal(t,
		parseProgString(t, "fn f(): int { return 1 }"),
		`(program (fn "f" () int (block (return (integer 1)))))`)
	be.Equal(t,
		parseProgString(t, "fn f() { return }"),
		`(program (fn "f" () void (block (return))))`)
}

func TestParseAssignments(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"x = 1", `(program (assign (ident "x") (integer 1)))`},
		{"xs[0] = 5", `(program (index-assign (index (ident "xs") (integer 0)) (integer 5)))`},
		{"p.x = 2", `(program (member-assign (member (ident "p") "x") (integer 2)))`},
	}

	for _, tt := range tests {
		be.Equal(t, parseProgString(t, tt.input), tt.expected)
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	err := parseProgError(t, "f() = 1")
	be.True(t, strings.Contains(err.Error(), "invalid assignment target"))
}

func TestParsePrint(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"print(1)", `(program (print (integer 1)))`},
		{"print()", `(program (print))`},
		{`print(1, 2, sep: ", ")`, `(program (print (integer 1) (integer 2) (sep (string ", "))))`},
		{`print(1, end: "")`, `(program (print (integer 1) (end (string ""))))`},
		{`print(sep: "-", end: "!", 1)`, `(program (print (integer 1) (sep (string "-")) (end (string "!"))))`},
	}

	for _, tt := range tests {
		be.Equal(t, parseProgString(t, tt.input), tt.expected)
	}
}

func TestParsePrintRejectsBadNamedArgs(t *testing.T) {
	err := parseProgError(t, `print(1, gap: " ")`)
	be.True(t, strings.Contains(err.Error(), "expected 'sep' or 'end'"))

	err = parseProgError(t, `print(sep: "a", sep: "b")`)
	be.True(t, strings.Contains(err.Error(), "duplicate 'sep'"))
}

func TestParseOptionalSemicolons(t *testing.T) {
	be.Equal(t,
		parseProgString(t, "let x: int = 1; x = 2"),
		`(program (let "x" int (integer 1)) (assign (ident "x") (integer 2)))`)
}

// A brace at statement position starts a block, not a dict literal.
func TestParseBraceAtStatementPosition(t *testing.T) {
	be.Equal(t,
		parseProgString(t, "{ let x: int = 1 }"),
		`(program (block (let "x" int (integer 1))))`)
}

func TestParseStatementErrorPositions(t *testing.T) {
	_, err := ParseSource("let x: int = 1\nlet y: int =\n", "main.tern")
	be.True(t, err != nil)

	var syntaxErr *SyntaxError
	be.True(t, errors.As(err, &syntaxErr))
	be.Equal(t, syntaxErr.Span.StartLine, 2)
	be.True(t, strings.HasPrefix(err.Error(), "main.tern:2:"))
}

// Every node's span must lie inside its parent's span.
func TestSpanContainment(t *testing.T) {
	source := `
import math
struct Point { x: int, y: int }
enum Color { Red, Green }

fn dist(p: Point): float {
    let dx: float = float(p.x)
    return math.sqrt(dx * dx)
}

let total: int = 0
for i in 0..=10 {
    if i % 2 == 0 {
        total = total + i
    } else {
        continue
    }
}
print(total, sep: " ")
`
	prog, err := ParseSource(source, "<test>")
	be.Err(t, err, nil)

	var walk func(parent Node)
	walk = func(parent Node) {
		for _, child := range Children(parent) {
			if !parent.Span().Contains(child.Span()) {
				t.Errorf("%T span %s not inside %T span %s",
					child, child.Span(), parent, parent.Span())
			}
			walk(child)
		}
	}
	walk(prog)
}
