package sexy

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestExtractTestCases_BasicTest(t *testing.T) {
	markdown := `# Addition

## Test: int plus int
` + "```c-expr" + `
1 + 2
` + "```" + `
` + "```ast" + `
(binary "+" (integer 1) (integer 2))
` + "```" + `

## Test: int plus float
` + "```c-expr" + `
1 + 2.5
` + "```" + `
` + "```type" + `
float
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 2)

	tc1 := testCases[0]
	be.Equal(t, tc1.Name, "int plus int")
	be.Equal(t, tc1.Input, "1 + 2")
	be.Equal(t, tc1.InputType, InputTypeExpr)
	be.Equal(t, len(tc1.Assertions), 1)
	be.Equal(t, tc1.Assertions[0].Type, AssertionTypeAST)
	be.Equal(t, tc1.Assertions[0].ParsedSexy.String(), `(binary "+" (integer 1) (integer 2))`)

	tc2 := testCases[1]
	be.Equal(t, tc2.Name, "int plus float")
	be.Equal(t, tc2.Input, "1 + 2.5")
	be.Equal(t, tc2.Assertions[0].Type, AssertionTypeType)
	be.Equal(t, tc2.Assertions[0].Content, "float")
	be.True(t, tc2.Assertions[0].ParsedSexy == nil)
}

func TestExtractTestCases_ProgramWithDiagnostics(t *testing.T) {
	markdown := `## Test: coercion in assignment
` + "```c-program" + `
int a;
int main() {
  a = 3.5;
}
` + "```" + `
` + "```errors" + `
` + "```" + `
` + "```warnings" + `
[main] implicit conversion float->int in assignment to 'a'
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)

	tc := testCases[0]
	be.Equal(t, tc.InputType, InputTypeProgram)
	be.Equal(t, tc.Input, "int a;\nint main() {\n  a = 3.5;\n}")
	be.Equal(t, len(tc.Assertions), 2)
	be.Equal(t, tc.Assertions[0].Type, AssertionTypeErrors)
	be.Equal(t, tc.Assertions[0].Lines(), []string{})
	be.Equal(t, tc.Assertions[1].Type, AssertionTypeWarnings)
	be.Equal(t, tc.Assertions[1].Lines(), []string{"[main] implicit conversion float->int in assignment to 'a'"})
}

func TestAssertionLines(t *testing.T) {
	tests := []struct {
		content  string
		expected []string
	}{
		{"", []string{}},
		{"one", []string{"one"}},
		{"  one  \n\ntwo\n", []string{"one", "two"}},
	}

	for _, test := range tests {
		a := Assertion{Type: AssertionTypeErrors, Content: test.content}
		be.Equal(t, a.Lines(), test.expected)
	}
}

func TestExtractTestCases_EmptyFile(t *testing.T) {
	testCases, err := ExtractTestCases("")
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 0)
}

func TestExtractTestCases_NoTestCases(t *testing.T) {
	markdown := `# Notes

Plain prose with a snippet:

` + "```" + `
int a;
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 0)
}

func TestExtractTestCases_InvalidSexyAssertion(t *testing.T) {
	markdown := `## Test: invalid sexy
` + "```c-expr" + `
1 + 2
` + "```" + `
` + "```ast" + `
(unclosed list
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "failed to parse ast assertion"))
	be.True(t, strings.Contains(err.Error(), "line 5"))
}

// =============================================================================
// Error conditions
// =============================================================================

func TestExtractTestCases_FenceOutsideTestCase(t *testing.T) {
	tests := []struct {
		name      string
		markdown  string
		fenceType string
	}{
		{
			"c-expr fence outside test",
			"# Document\n\n```c-expr\n1 + 2\n```\n",
			"c-expr",
		},
		{
			"c-program fence outside test",
			"# Document\n\n```c-program\nint a;\n```\n",
			"c-program",
		},
		{
			"ast fence outside test",
			"# Document\n\n```ast\n(program)\n```\n",
			"ast",
		},
		{
			"errors fence outside test",
			"# Document\n\n```errors\n[global] x\n```\n",
			"errors",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ExtractTestCases(test.markdown)
			be.True(t, err != nil)
			be.True(t, strings.Contains(err.Error(), "line 3: "+test.fenceType+" fence found outside of test case"))
		})
	}
}

func TestExtractTestCases_UnknownFenceLanguageInTest(t *testing.T) {
	markdown := `## Test: with unknown fence
` + "```python" + `
print("hello")
` + "```" + `
` + "```c-expr" + `
1 + 2
` + "```" + `
` + "```type" + `
int
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "unknown fence language 'python'"))
	be.True(t, strings.Contains(err.Error(), "line 2"))
}

func TestExtractTestCases_TestMissingInputFence(t *testing.T) {
	markdown := `## Test: no input
` + "```errors" + `
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "test 'no input' has no input fence"))
}

func TestExtractTestCases_TestMissingAssertionFence(t *testing.T) {
	markdown := `## Test: no assertions
` + "```c-expr" + `
1 + 2
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "test 'no assertions' has no assertion fences"))
}

func TestExtractTestCases_MultipleInputFences(t *testing.T) {
	markdown := `## Test: multiple inputs
` + "```c-expr" + `
1 + 2
` + "```" + `
` + "```c-expr" + `
3 + 4
` + "```" + `
` + "```type" + `
int
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "multiple input fences found"))
	be.True(t, strings.Contains(err.Error(), "line 5"))
}

func TestExtractTestCases_TypeAssertionOnProgram(t *testing.T) {
	markdown := `## Test: type on program
` + "```c-program" + `
int a;
` + "```" + `
` + "```type" + `
int
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "type assertion needs a c-expr input"))
}

func TestExtractTestCases_EmptyProgramIsInput(t *testing.T) {
	markdown := `## Test: empty program
` + "```c-program" + `
` + "```" + `
` + "```ast" + `
(program)
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)
	be.Equal(t, testCases[0].Input, "")
	be.Equal(t, testCases[0].InputType, InputTypeProgram)
}

func TestExtractTestCases_ErrorInSecondTest(t *testing.T) {
	markdown := `## Test: first test
` + "```c-expr" + `
1 + 2
` + "```" + `
` + "```type" + `
int
` + "```" + `

## Test: second test missing input
` + "```type" + `
int
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "test 'second test missing input' has no input fence"))
}
