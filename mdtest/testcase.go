package mdtest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputType names the kind of input code fence in a corpus test.
type InputType string

const (
	InputTypeExpr    InputType = "tern-expr"
	InputTypeProgram InputType = "tern-program"
)

// AssertionType names the kind of assertion code fence in a corpus test.
type AssertionType string

const (
	// AssertionTypeAST matches the parsed AST against an s-expression pattern.
	AssertionTypeAST AssertionType = "ast"
	// AssertionTypeTypes matches the analyzed type of a tern-expr input.
	AssertionTypeTypes AssertionType = "types"
	// AssertionTypeCheckError expects a diagnostic whose display contains
	// the fence content.
	AssertionTypeCheckError AssertionType = "check-error"
	// AssertionTypeCheckOK expects the input to parse and analyze cleanly.
	AssertionTypeCheckOK AssertionType = "check-ok"
)

// Assertion is a single assertion fence within a test case.
type Assertion struct {
	Type    AssertionType
	Content string // raw fence content, trailing newline stripped
	Pattern *Node  // parsed pattern, only for ast assertions
}

// TestCase is one corpus test extracted from a markdown document: a
// "Test: " heading, an input fence, and one or more assertion fences.
type TestCase struct {
	Name       string
	Input      string
	InputType  InputType
	Assertions []Assertion
}

// ExtractTestCases parses a markdown document and collects its test cases.
// Fences with unknown languages, input fences outside a test, or tests
// missing an input or assertions are reported as errors.
func ExtractTestCases(markdownContent string) ([]TestCase, error) {
	md := goldmark.New()
	source := []byte(markdownContent)

	doc := md.Parser().Parse(text.NewReader(source))

	var testCases []TestCase
	var current *TestCase

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			headingText := extractTextFromNode(n, source)
			if !strings.HasPrefix(headingText, "Test: ") {
				return ast.WalkContinue, nil
			}
			if current != nil {
				if err := validateTestCase(current); err != nil {
					return ast.WalkStop, err
				}
				testCases = append(testCases, *current)
			}
			current = &TestCase{Name: strings.TrimPrefix(headingText, "Test: ")}

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			content := strings.TrimRight(extractCodeBlockContent(n, source), "\n")
			lineNum := lineNumber(n, source)

			if language == "" {
				return ast.WalkContinue, nil
			}
			if !isInputFence(language) && !isAssertionFence(language) {
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language %q", lineNum, language)
			}
			if current == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", lineNum, language)
			}

			if isInputFence(language) {
				if current.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple input fences in test %q", lineNum, current.Name)
				}
				current.Input = content
				current.InputType = InputType(language)
				return ast.WalkContinue, nil
			}

			assertion := Assertion{Type: AssertionType(language), Content: content}
			if assertion.Type == AssertionTypeAST {
				pattern, parseErr := Parse(assertion.Content)
				if parseErr != nil {
					return ast.WalkStop, fmt.Errorf("line %d: bad pattern in test %q: %w", lineNum, current.Name, parseErr)
				}
				assertion.Pattern = pattern
			}
			current.Assertions = append(current.Assertions, assertion)
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}

	if current != nil {
		if err := validateTestCase(current); err != nil {
			return nil, err
		}
		testCases = append(testCases, *current)
	}

	return testCases, nil
}

func extractTextFromNode(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if text, ok := n.(*ast.Text); ok {
				buf.Write(text.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func extractCodeBlockContent(codeBlock *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < codeBlock.Lines().Len(); i++ {
		line := codeBlock.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

func isInputFence(language string) bool {
	return language == string(InputTypeExpr) || language == string(InputTypeProgram)
}

func isAssertionFence(language string) bool {
	return language == string(AssertionTypeAST) ||
		language == string(AssertionTypeTypes) ||
		language == string(AssertionTypeCheckError) ||
		language == string(AssertionTypeCheckOK)
}

func validateTestCase(tc *TestCase) error {
	if tc.Input == "" {
		return fmt.Errorf("test %q has no input fence", tc.Name)
	}
	if len(tc.Assertions) == 0 {
		return fmt.Errorf("test %q has no assertion fences", tc.Name)
	}
	return nil
}

func lineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	startPos := node.Lines().At(0).Start
	lineNum := 1
	for i := 0; i < startPos && i < len(source); i++ {
		if source[i] == '\n' {
			lineNum++
		}
	}
	return lineNum
}
