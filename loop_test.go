package main

import "testing"

func TestWhileChecks(t *testing.T) {
	analyzeOK(t, `
let x: int = 0
while x < 10 {
    x = x + 1
}
`)
	analyzeCode(t, "while 1 { }", ErrNonBooleanCondition)
}

func TestIfChecks(t *testing.T) {
	analyzeOK(t, `
let x: int = 1
if x > 0 {
    print("pos")
} else {
    print("non-pos")
}
`)
	analyzeCode(t, "if 1 { }", ErrNonBooleanCondition)
	analyzeCode(t, `if "yes" { }`, ErrNonBooleanCondition)
}

func TestBreakAndContinue(t *testing.T) {
	analyzeOK(t, `
while true {
    break
}
`)
	analyzeOK(t, `
for i in 0..10 {
    if i == 5 {
        continue
    }
    print(i)
}
`)
	analyzeCode(t, "break", ErrBreakOutsideLoop)
	analyzeCode(t, "continue", ErrContinueOutsideLoop)
	analyzeCode(t, `
if true {
    break
}
`, ErrBreakOutsideLoop)
}

// A function body starts outside any loop, even when the declaration
// itself sits inside one.
func TestLoopDepthResetsInFunctions(t *testing.T) {
	analyzeCode(t, `
while true {
    fn f() {
        break
    }
}
`, ErrBreakOutsideLoop)
	analyzeCode(t, `
for i in 0..3 {
    fn g() {
        continue
    }
}
`, ErrContinueOutsideLoop)
}

func TestForIterables(t *testing.T) {
	// range yields int
	analyzeOK(t, `
for i in 0..5 {
    let double: int = i * 2
}
`)
	// list yields the element type
	analyzeOK(t, `
let names: [str] = ["ada", "tern"]
for name in names {
    print(name.upper())
}
`)
	// dict yields its keys
	analyzeOK(t, `
let ages: {str: int} = {"ada": 36}
for key in ages {
    let age: int = ages[key]
}
`)
	// str yields str
	analyzeOK(t, `
for ch in "hello" {
    let c: str = ch
}
`)

	analyzeCode(t, "for x in 5 { }", ErrInvalidIterable)
	analyzeCode(t, "for x in true { }", ErrInvalidIterable)
}

func TestForRangeBounds(t *testing.T) {
	analyzeOK(t, `
let hi: int = 10
for i in 0..=hi {
    print(i)
}
`)
	analyzeCode(t, "for i in 0.5..2.5 { }", ErrTypeMismatch)
	analyzeCode(t, `for i in 0.."ten" { }`, ErrTypeMismatch)
}

// The loop variable is scoped to the loop and may shadow outer names.
func TestForVariableScope(t *testing.T) {
	analyzeOK(t, `
let i: str = "outer"
for i in 0..3 {
    let double: int = i * 2
}
let still: str = i
`)
	analyzeCode(t, `
for i in 0..3 { }
print(i)
`, ErrUndeclared)
}
