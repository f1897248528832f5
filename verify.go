package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-test/deep"
	"github.com/strager/semcheck/sexy"
)

// RunTestCase evaluates one Markdown test case and returns a description of
// each failed assertion. An empty result means the case passed.
func RunTestCase(tc sexy.TestCase) []string {
	var (
		tree  *ASTNode
		diags *DiagnosticCollection
		typ   Type
	)
	var failures []string

	switch tc.InputType {
	case sexy.InputTypeProgram:
		tree = ParseSource(tc.Input)
		diags = CheckProgram(tree, DefaultOptions())
	case sexy.InputTypeExpr:
		l := NewLexer([]byte(tc.Input))
		l.NextToken()
		tree = ParseExpression(l)
		if l.CurrTokenType != EOF {
			failures = append(failures, fmt.Sprintf("unexpected %q after expression", l.CurrLiteral))
		}
		checker := NewTypeChecker(NewSymbolTable(), DefaultOptions())
		typ = checker.InferExpression(tree)
		diags = checker.Diagnostics
	default:
		return []string{fmt.Sprintf("unsupported input type %q", tc.InputType)}
	}

	for _, a := range tc.Assertions {
		if failure := checkAssertion(a, tree, diags, typ); failure != "" {
			failures = append(failures, fmt.Sprintf("line %d: %s assertion: %s", a.Line, a.Type, failure))
		}
	}
	return failures
}

func checkAssertion(a sexy.Assertion, tree *ASTNode, diags *DiagnosticCollection, typ Type) string {
	switch a.Type {
	case sexy.AssertionTypeAST:
		actual, err := sexy.Parse(ToSExpr(tree))
		if err != nil {
			return fmt.Sprintf("cannot read tree %s: %v", ToSExpr(tree), err)
		}
		if err := sexy.Match(a.ParsedSexy, actual); err != nil {
			return fmt.Sprintf("%v\nexpected: %s\nactual:   %s", err, a.ParsedSexy, actual)
		}
	case sexy.AssertionTypeType:
		if want := strings.TrimSpace(a.Content); typ.String() != want {
			return fmt.Sprintf("expected %s, got %s", want, typ)
		}
	case sexy.AssertionTypeErrors:
		return diffLines(a.Lines(), diags.ErrorStrings())
	case sexy.AssertionTypeWarnings:
		return diffLines(a.Lines(), diags.WarningStrings())
	}
	return ""
}

func diffLines(expected, actual []string) string {
	if diff := deep.Equal(actual, expected); diff != nil {
		return fmt.Sprintf("%s\nexpected: %q\nactual:   %q", strings.Join(diff, "\n"), expected, actual)
	}
	return ""
}

// VerifyResult counts the test cases of one Markdown document.
type VerifyResult struct {
	Passed int
	Failed int
}

// VerifyFile runs every test case in a Markdown document. Failures are
// reported through report as "name: description".
func VerifyFile(path string, report func(name, failure string)) (VerifyResult, error) {
	var result VerifyResult

	content, err := os.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("reading %s: %w", path, err)
	}
	testCases, err := sexy.ExtractTestCases(string(content))
	if err != nil {
		return result, fmt.Errorf("%s: %w", path, err)
	}

	for _, tc := range testCases {
		failures := RunTestCase(tc)
		if len(failures) == 0 {
			result.Passed++
			continue
		}
		result.Failed++
		for _, failure := range failures {
			report(tc.Name, failure)
		}
	}
	return result, nil
}
