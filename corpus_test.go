package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/tern-lang/tern/mdtest"
)

// TestMarkdownCorpus runs every test case in test/*_test.md: parses the
// input fence and checks each assertion fence against the front end.
func TestMarkdownCorpus(t *testing.T) {
	testFiles, err := filepath.Glob("test/*_test.md")
	be.Err(t, err, nil)
	be.True(t, len(testFiles) > 0)

	for _, testFile := range testFiles {
		testName := strings.TrimSuffix(filepath.Base(testFile), ".md")

		t.Run(testName, func(t *testing.T) {
			content, err := os.ReadFile(testFile)
			be.Err(t, err, nil)

			testCases, err := mdtest.ExtractTestCases(string(content))
			be.Err(t, err, nil)

			for _, tc := range testCases {
				t.Run(tc.Name, func(t *testing.T) {
					runCorpusCase(t, tc)
				})
			}
		})
	}
}

func runCorpusCase(t *testing.T, tc mdtest.TestCase) {
	var (
		node     Node // parsed input, for ast assertions
		expr     Expr // set for tern-expr inputs
		prog     *Program
		parseErr error
	)
	switch tc.InputType {
	case mdtest.InputTypeExpr:
		tokens, err := Scan(tc.Input, "<test>")
		if err != nil {
			parseErr = err
			break
		}
		p := NewParser(tokens)
		expr, parseErr = p.ParseExpression()
		if parseErr == nil {
			node = expr
		}
	case mdtest.InputTypeProgram:
		prog, parseErr = ParseSource(tc.Input, "<test>")
		if parseErr == nil {
			node = prog
		}
	default:
		t.Fatalf("unknown input type: %s", tc.InputType)
	}

	analyze := func() error {
		if expr != nil {
			_, err := AnalyzeExpression(expr)
			return err
		}
		_, err := Analyze(prog)
		return err
	}

	for _, assertion := range tc.Assertions {
		switch assertion.Type {
		case mdtest.AssertionTypeAST:
			if parseErr != nil {
				t.Fatalf("parse failed: %v", parseErr)
			}
			actual, err := mdtest.Parse(ToSExpr(node))
			be.Err(t, err, nil)
			if err := mdtest.Match(assertion.Pattern, actual); err != nil {
				t.Errorf("AST mismatch: %v", err)
			}

		case mdtest.AssertionTypeTypes:
			if parseErr != nil {
				t.Fatalf("parse failed: %v", parseErr)
			}
			if expr == nil {
				t.Fatal("types assertion requires a tern-expr input")
			}
			typ, err := AnalyzeExpression(expr)
			be.Err(t, err, nil)
			be.Equal(t, typ.String(), assertion.Content)

		case mdtest.AssertionTypeCheckError:
			err := parseErr
			if err == nil {
				err = analyze()
			}
			if err == nil {
				t.Errorf("expected diagnostic containing %q, got none", assertion.Content)
			} else if !strings.Contains(err.Error(), assertion.Content) {
				t.Errorf("diagnostic %q does not contain %q", err, assertion.Content)
			}

		case mdtest.AssertionTypeCheckOK:
			if parseErr != nil {
				t.Fatalf("parse failed: %v", parseErr)
			}
			if err := analyze(); err != nil {
				t.Errorf("expected no diagnostics, got %v", err)
			}

		default:
			t.Fatalf("unknown assertion type: %s", assertion.Type)
		}
	}
}
