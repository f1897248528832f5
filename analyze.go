package main

// Options controls which optional checks run.
type Options struct {
	// Strict reports redefined functions and conflicting prototypes as
	// DuplicateDeclaration errors. The later declaration still wins.
	Strict bool
	// ReportUnrecognized turns statements the parser could not recognize
	// into SyntaxWarning diagnostics instead of dropping them silently.
	ReportUnrecognized bool
}

func DefaultOptions() Options {
	return Options{Strict: false, ReportUnrecognized: true}
}

// ParseSource tokenizes and parses a whole program.
func ParseSource(source string) *ASTNode {
	l := NewLexer([]byte(source))
	l.NextToken()
	return ParseProgram(l)
}

// AnalyzeSource parses and checks a program. Each call uses its own tables,
// so repeated calls on the same source give the same result.
func AnalyzeSource(source string, opts Options) *DiagnosticCollection {
	return CheckProgram(ParseSource(source), opts)
}

// Analyze checks a program with the default options and returns its errors
// and warnings, each formatted as "[context] message". The program passes if
// errors is empty.
func Analyze(source string) (errors, warnings []string) {
	diags := AnalyzeSource(source, DefaultOptions())
	return diags.ErrorStrings(), diags.WarningStrings()
}
