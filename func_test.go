package main

import "testing"

func TestFunctionCalls(t *testing.T) {
	analyzeOK(t, `
fn add(a: int, b: int): int {
    return a + b
}
let sum: int = add(1, 2)
`)
	analyzeCode(t, `
fn f(a: int): int {
    return a
}
f()
`, ErrArityMismatch)
	analyzeCode(t, `
fn f(a: int): int {
    return a
}
f(1, 2)
`, ErrArityMismatch)
	analyzeCode(t, `
fn f(a: int): int {
    return a
}
f("x")
`, ErrArgumentType)
	analyzeCode(t, "g()", ErrUndeclared)
	analyzeCode(t, `
let x: int = 1
x(2)
`, ErrNotCallable)
}

func TestFunctionIsNotAValue(t *testing.T) {
	analyzeCode(t, `
fn f(): int {
    return 1
}
let g: int = f
`, ErrTypeMismatch)
}

func TestRecursion(t *testing.T) {
	analyzeOK(t, `
fn fact(n: int): int {
    if n <= 1 {
        return 1
    } else {
        return n * fact(n - 1)
    }
}
`)
	// single pass: mutual recursion needs a forward reference, which fails
	analyzeCode(t, `
fn even(n: int): bool {
    if n == 0 {
        return true
    } else {
        return odd(n - 1)
    }
}
fn odd(n: int): bool {
    if n == 0 {
        return false
    } else {
        return even(n - 1)
    }
}
`, ErrUndeclared)
}

func TestReturnChecks(t *testing.T) {
	analyzeOK(t, `
fn f() {
    return
}
`)
	analyzeCode(t, "return 1", ErrReturnOutsideFunc)
	analyzeCode(t, `
fn f() {
    return 1
}
`, ErrReturnTypeMismatch)
	analyzeCode(t, `
fn f(): int {
    return "one"
}
`, ErrReturnTypeMismatch)
	analyzeCode(t, `
fn f(): int {
    return
}
`, ErrReturnTypeMismatch)
}

func TestDefiniteReturn(t *testing.T) {
	analyzeOK(t, `
fn f(): int {
    return 1
}
`)
	// both branches return, the if is the last statement
	analyzeOK(t, `
fn sign(n: int): int {
    if n < 0 {
        return -1
    } else {
        return 1
    }
}
`)
	// statements after an early return still count via the last statement
	analyzeOK(t, `
fn f(n: int): int {
    if n == 0 {
        return 0
    }
    return n * 2
}
`)

	analyzeCode(t, "fn f(): int { }", ErrMissingReturn)
	analyzeCode(t, `
fn f(n: int): int {
    if n < 0 {
        return -1
    }
}
`, ErrMissingReturn)
	// loops never satisfy definite return
	analyzeCode(t, `
fn f(): int {
    while true {
        return 1
    }
}
`, ErrMissingReturn)
	analyzeCode(t, `
fn f(): int {
    for i in 0..10 {
        return i
    }
}
`, ErrMissingReturn)
	// a return before the end is not enough on its own
	analyzeCode(t, `
fn f(): int {
    return 1
    print("unreachable")
}
`, ErrMissingReturn)
}

// Nested functions close over nothing; each body checks in its own frame
// with its own return type.
func TestNestedFunctionReturnTypes(t *testing.T) {
	analyzeOK(t, `
fn outer(): str {
    fn inner(): int {
        return 1
    }
    return str(inner())
}
`)
	analyzeCode(t, `
fn outer(): str {
    fn inner(): int {
        return "one"
    }
    return "ok"
}
`, ErrReturnTypeMismatch)
}

func TestVoidResultsAreNotValues(t *testing.T) {
	analyzeCode(t, `
fn f() { }
let x: int = f()
`, ErrTypeMismatch)
}
