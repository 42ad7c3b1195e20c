package main

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
)

func analyzeSource(t *testing.T, source string) (*Info, error) {
	t.Helper()
	prog, err := ParseSource(source, "<test>")
	be.Err(t, err, nil)
	return Analyze(prog)
}

func analyzeOK(t *testing.T, source string) *Info {
	t.Helper()
	info, err := analyzeSource(t, source)
	be.Err(t, err, nil)
	return info
}

// analyzeCode asserts that analysis fails with the given diagnostic code.
func analyzeCode(t *testing.T, source, code string) {
	t.Helper()
	_, err := analyzeSource(t, source)
	be.True(t, err != nil)
	var semErr *SemanticError
	be.True(t, errors.As(err, &semErr))
	be.Equal(t, semErr.Code, code)
}

func exprType(t *testing.T, input string) (*Type, error) {
	t.Helper()
	tokens, err := Scan(input, "<test>")
	be.Err(t, err, nil)
	expr, err := NewParser(tokens).ParseExpression()
	be.Err(t, err, nil)
	return AnalyzeExpression(expr)
}

func TestExpressionTypes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2", "int"},
		{"1.5 - 0.5", "float"},
		{"7 % 3", "int"},
		{`"a" + "b"`, "str"},
		{"1 < 2", "bool"},
		{"1 == 2", "bool"},
		{"true && false", "bool"},
		{"!true", "bool"},
		{"-3", "int"},
		{"-2.5", "float"},
		{"[1, 2]", "[int]"},
		{"[[1], [2]]", "[[int]]"},
		{`{"a": 1}`, "{str: int}"},
		{"[1, 2].len()", "int"},
		{"[1, 2].contains(1)", "bool"},
		{`{"a": 1}.keys()`, "[str]"},
		{`{"a": 1}.values()`, "[int]"},
		{`"hi".upper()`, "str"},
		{`"a,b".split(",")`, "[str]"},
		{`int("42")`, "int"},
		{"float(3)", "float"},
		{"str(true)", "str"},
		{"[1, 2][0]", "int"},
		{`{"a": 1}["a"]`, "int"},
	}

	for _, tt := range tests {
		typ, err := exprType(t, tt.input)
		be.Err(t, err, nil)
		be.Equal(t, typ.String(), tt.expected)
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		input string
		code  string
	}{
		{"1 + 2.0", ErrArithmeticType},
		{"1 + true", ErrArithmeticType},
		{`"a" - "b"`, ErrArithmeticType},
		{"-true", ErrArithmeticType},
		{"!1", ErrLogicalType},
		{"1 && true", ErrLogicalType},
		{`"a" < "b"`, ErrComparisonType},
		{"1 < 2.0", ErrComparisonType},
		{"1 == 1.0", ErrTypeMismatch},
		{"1 / 0", ErrDivisionByZero},
		{"5 % 0", ErrDivisionByZero},
		{"1.0 / 0.0", ErrDivisionByZero},
		{"x", ErrUndeclared},
		{`[1, "a"]`, ErrListElementType},
		{"[]", ErrEmptyLiteral},
		{"{}", ErrEmptyLiteral},
		{"{[1]: 2}", ErrUnhashableKey},
		{`{"a": 1, "b": 2.0}`, ErrDictEntryType},
		{`{"a": 1, 2: 3}`, ErrDictKeyType},
		{"int([1])", ErrInvalidCast},
		{`int("1", "2")`, ErrArityMismatch},
		{"[1].upper()", ErrUnknownMethod},
		{"[1].push()", ErrArityMismatch},
		{`[1].push("a")`, ErrArgumentType},
		{"[1, 2][true]", ErrIndexType},
		{`{"a": 1}[2]`, ErrDictKeyType},
		{"1[0]", ErrNotIndexable},
		{"1.x", ErrNotAStruct},
		{"0..10", ErrTypeMismatch},
	}

	for _, tt := range tests {
		_, err := exprType(t, tt.input)
		be.True(t, err != nil)
		var semErr *SemanticError
		be.True(t, errors.As(err, &semErr))
		be.Equal(t, semErr.Code, tt.code)
	}
}

// A zero divisor is only rejected when written literally.
func TestRuntimeDivisorIsNotChecked(t *testing.T) {
	analyzeOK(t, `
let x: int = 0
let y: int = 1 / x
`)
}

func TestVarDeclChecks(t *testing.T) {
	analyzeOK(t, "let x: int = 1")
	analyzeOK(t, `const greeting: str = "hi"`)
	analyzeCode(t, "let x: bool = 1", ErrTypeMismatch)
	analyzeCode(t, "let x: [int] = [1.0]", ErrTypeMismatch)
	analyzeCode(t, "let x: Missing = 1", ErrUnknownType)
	analyzeCode(t, "let x: {[int]: str} = {}", ErrUnhashableKey)
}

func TestConstRules(t *testing.T) {
	analyzeCode(t, `
const c: int = 1
c = 2
`, ErrConstReassignment)

	// const forbids rebinding, not container mutation
	analyzeOK(t, `
const xs: [int] = [1]
xs.push(2)
xs[0] = 3
`)
}

func TestEmptyLiteralAdoption(t *testing.T) {
	analyzeOK(t, "let xs: [int] = []")
	analyzeOK(t, "let m: {str: int} = {}")
	analyzeOK(t, `
let xs: [int] = [1]
xs = []
`)
	analyzeOK(t, "fn f(): [int] { return [] }")
	analyzeOK(t, "let grid: [[int]] = [[], [1]]")

	analyzeCode(t, "[].len()", ErrEmptyLiteral)
}

func TestPrintChecks(t *testing.T) {
	analyzeOK(t, `print(1, "two", 3.0, true)`)
	analyzeOK(t, `print(1, 2, sep: ", ", end: "")`)
	analyzeCode(t, "print(1, sep: 2)", ErrTypeMismatch)
	analyzeCode(t, "print(1, end: 2)", ErrTypeMismatch)
	analyzeCode(t, `
fn f() { }
print(f())
`, ErrTypeMismatch)

	// with both options invalid, sep is always the one reported
	_, err := analyzeSource(t, "print(1, sep: 2, end: 3)")
	be.True(t, err != nil)
	var semErr *SemanticError
	be.True(t, errors.As(err, &semErr))
	be.Equal(t, semErr.Message, "print sep must be str, got int")
}

func TestNamespaces(t *testing.T) {
	analyzeOK(t, `
import math
let tau: float = math.pi * 2.0
let r: float = math.sqrt(2.0)
let down: int = math.floor(1.5)
`)
	analyzeOK(t, `
import random
let roll: int = random.between(1, 6)
let lucky: bool = random.chance(0.5)
`)
	analyzeOK(t, `
import time
let start: int = time.now()
let ms: int = time.millis()
`)

	analyzeCode(t, "import net", ErrUnknownImport)
	analyzeCode(t, "let pi: float = math.pi", ErrUndeclared)
	analyzeCode(t, `
import math
let m: int = math
`, ErrNamespaceValue)
	analyzeCode(t, `
import math
let x: float = math.tau
`, ErrUnknownField)
	analyzeCode(t, `
import math
let x: float = math.cbrt(8.0)
`, ErrUnknownMethod)
	analyzeCode(t, `
import math
let x: float = math.sqrt(4)
`, ErrArgumentType)
	analyzeCode(t, "let math: int = 1", ErrReservedIdentifier)
	analyzeCode(t, "fn random() { }", ErrReservedIdentifier)
}

func TestAssignChecks(t *testing.T) {
	analyzeOK(t, `
let x: int = 1
x = 2
`)
	analyzeCode(t, "y = 1", ErrUndeclared)
	analyzeCode(t, `
let x: int = 1
x = "str"
`, ErrTypeMismatch)
	analyzeCode(t, `
let xs: [int] = [1]
xs[0] = "a"
`, ErrTypeMismatch)
	analyzeCode(t, `
let m: {str: int} = {"a": 1}
m[1] = 2
`, ErrDictKeyType)
	analyzeCode(t, `
let x: int = 1
x[0] = 2
`, ErrNotIndexable)
}

// Analysis annotates every expression with its resolved type.
func TestInfoTypes(t *testing.T) {
	prog, err := ParseSource("let x: int = 1 + 2", "<test>")
	be.Err(t, err, nil)
	info, err := Analyze(prog)
	be.Err(t, err, nil)

	let := prog.Stmts[0].(*Let)
	be.Equal(t, info.Types[let.Value], IntType)

	sum := let.Value.(*BinaryExpr)
	be.Equal(t, info.Types[sum.Left], IntType)
	be.Equal(t, info.Types[sum.Right], IntType)
}
