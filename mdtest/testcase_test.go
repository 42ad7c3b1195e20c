package mdtest

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestExtractTestCasesBasic(t *testing.T) {
	markdown := `# Binary expressions

## Test: addition
` + "```tern-expr" + `
1 + 2
` + "```" + `
` + "```ast" + `
(binary "+" (integer 1) (integer 2))
` + "```" + `

## Test: subtraction
` + "```tern-expr" + `
1 - 2
` + "```" + `
` + "```ast" + `
(binary "-" (integer 1) (integer 2))
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 2)

	tc1 := testCases[0]
	be.Equal(t, tc1.Name, "addition")
	be.Equal(t, tc1.Input, "1 + 2")
	be.Equal(t, tc1.InputType, InputTypeExpr)
	be.Equal(t, len(tc1.Assertions), 1)
	be.Equal(t, tc1.Assertions[0].Type, AssertionTypeAST)
	be.Equal(t, tc1.Assertions[0].Content, `(binary "+" (integer 1) (integer 2))`)
	be.Equal(t, tc1.Assertions[0].Pattern.String(), `(binary "+" (integer 1) (integer 2))`)

	tc2 := testCases[1]
	be.Equal(t, tc2.Name, "subtraction")
	be.Equal(t, tc2.Input, "1 - 2")
}

func TestExtractTestCasesProgramInput(t *testing.T) {
	markdown := `## Test: program
` + "```tern-program" + `
let x: int = 1
` + "```" + `
` + "```check-ok" + `
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)
	be.Equal(t, testCases[0].InputType, InputTypeProgram)
	be.Equal(t, testCases[0].Input, "let x: int = 1")
	be.Equal(t, testCases[0].Assertions[0].Type, AssertionTypeCheckOK)
}

func TestExtractTestCasesMultipleAssertions(t *testing.T) {
	markdown := `## Test: typed expression
` + "```tern-expr" + `
1 + 2
` + "```" + `
` + "```ast" + `
(binary "+" (integer 1) (integer 2))
` + "```" + `
` + "```types" + `
int
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)
	be.Equal(t, len(testCases[0].Assertions), 2)
	be.Equal(t, testCases[0].Assertions[0].Type, AssertionTypeAST)
	be.Equal(t, testCases[0].Assertions[1].Type, AssertionTypeTypes)
	be.Equal(t, testCases[0].Assertions[1].Content, "int")
	// only ast fences parse as patterns
	be.True(t, testCases[0].Assertions[1].Pattern == nil)
}

func TestExtractTestCasesCheckError(t *testing.T) {
	markdown := `## Test: bad operand
` + "```tern-expr" + `
1 + true
` + "```" + `
` + "```check-error" + `
arithmetic-type
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, testCases[0].Assertions[0].Type, AssertionTypeCheckError)
	be.Equal(t, testCases[0].Assertions[0].Content, "arithmetic-type")
}

func TestExtractTestCasesErrors(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		expected string
	}{
		{
			"fence outside test",
			"```tern-expr\n1\n```",
			"outside of test case",
		},
		{
			"unknown fence language",
			"## Test: t\n```tern-expr\n1\n```\n```nonsense\nx\n```",
			"unknown fence language",
		},
		{
			"missing input",
			"## Test: t\n```ast\n(integer 1)\n```",
			"no input fence",
		},
		{
			"missing assertions",
			"## Test: t\n```tern-expr\n1\n```",
			"no assertion fences",
		},
		{
			"duplicate input",
			"## Test: t\n```tern-expr\n1\n```\n```tern-expr\n2\n```\n```ast\n(integer 1)\n```",
			"multiple input fences",
		},
		{
			"bad pattern",
			"## Test: t\n```tern-expr\n1\n```\n```ast\n(integer 1\n```",
			"bad pattern",
		},
	}

	for _, tt := range tests {
		_, err := ExtractTestCases(tt.markdown)
		be.True(t, err != nil)
		be.True(t, strings.Contains(err.Error(), tt.expected))
	}
}

// Plain untagged code blocks are documentation, not assertions.
func TestExtractTestCasesIgnoresPlainFences(t *testing.T) {
	markdown := "Intro prose.\n\n```\njust an example\n```\n\n## Test: t\n```tern-expr\n1\n```\n```ast\n(integer 1)\n```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)
	be.Equal(t, len(testCases[0].Assertions), 1)
}
