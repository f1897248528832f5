package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

func showUsage() {
	fmt.Fprintf(os.Stderr, `semcheck - a static checker for a small C-like language

Usage:
    semcheck <command> [arguments]

Commands:
    check <file>...      Type-check source files
    eval <code>          Type-check inline source code
    ast <file>           Print the parsed tree as an S-expression
    verify <file.md>...  Run Markdown test documents
    help                 Show this help message

Examples:
    semcheck check examples/calls.c
    semcheck check -strict a.c b.c
    semcheck eval 'int a; int main() { a = 3.5; }'
    semcheck verify test/*_test.md

Use "semcheck <command> -h" for more information about a command.
`)
}

// optionFlags registers the checker options shared by check and eval.
func optionFlags(fs *flag.FlagSet) func() Options {
	strict := fs.Bool("strict", false, "Report redefined and conflicting function declarations")
	quiet := fs.Bool("no-syntax-warnings", false, "Do not warn about unrecognized statements")
	return func() Options {
		opts := DefaultOptions()
		opts.Strict = *strict
		opts.ReportUnrecognized = !*quiet
		return opts
	}
}

// reportDiagnostics prints one line per diagnostic, prefixed with name, and
// reports whether any of them is an error.
func reportDiagnostics(w io.Writer, name string, diags *DiagnosticCollection) bool {
	for _, d := range diags.All() {
		fmt.Fprintf(w, "%s:%d: %s: %s\n", name, d.Line, d.Severity, d)
	}
	return diags.HasErrors()
}

func checkCommand(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose checking details")
	options := optionFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: semcheck check [-v] [-strict] [-no-syntax-warnings] <file>...\n")
		fmt.Fprintf(os.Stderr, "Type-check source files\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: expected at least one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	opts := options()
	failed := false
	for _, filename := range fs.Args() {
		if *verbose {
			fmt.Printf("Checking %s...\n", filename)
		}

		sourceBytes, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
			os.Exit(1)
		}

		program := ParseSource(string(sourceBytes))
		if *verbose {
			fmt.Printf("AST: %s\n", ToSExpr(program))
		}

		diags := CheckProgram(program, opts)
		if reportDiagnostics(os.Stdout, filename, diags) {
			failed = true
			continue
		}
		fmt.Printf("%s: no errors found\n", filename)
	}

	if failed {
		os.Exit(1)
	}
}

func evalCommand(args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose checking details")
	options := optionFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: semcheck eval [-v] [-strict] [-no-syntax-warnings] <code>\n")
		fmt.Fprintf(os.Stderr, "Type-check inline source code\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one code argument\n")
		fs.Usage()
		os.Exit(1)
	}

	code := fs.Arg(0)
	program := ParseSource(code)
	if *verbose {
		fmt.Printf("AST: %s\n", ToSExpr(program))
	}

	if reportDiagnostics(os.Stdout, "<eval>", CheckProgram(program, options())) {
		os.Exit(1)
	}
}

func astCommand(args []string) {
	fs := flag.NewFlagSet("ast", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: semcheck ast <file>\n")
		fmt.Fprintf(os.Stderr, "Print the parsed tree as an S-expression\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	filename := fs.Arg(0)
	sourceBytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}

	fmt.Println(ToSExpr(ParseSource(string(sourceBytes))))
}

func verifyCommand(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show per-file results")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: semcheck verify [-v] <file.md>...\n")
		fmt.Fprintf(os.Stderr, "Run Markdown test documents\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: expected at least one Markdown file\n")
		fs.Usage()
		os.Exit(1)
	}

	var total VerifyResult
	for _, filename := range fs.Args() {
		result, err := VerifyFile(filename, func(name, failure string) {
			fmt.Printf("FAIL %s: %s: %s\n", filename, name, failure)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if *verbose {
			fmt.Printf("%s: %d passed, %d failed\n", filename, result.Passed, result.Failed)
		}
		total.Passed += result.Passed
		total.Failed += result.Failed
	}

	fmt.Printf("%d passed, %d failed\n", total.Passed, total.Failed)
	if total.Failed > 0 {
		os.Exit(1)
	}
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "check":
		checkCommand(args)
	case "eval":
		evalCommand(args)
	case "ast":
		astCommand(args)
	case "verify":
		verifyCommand(args)
	case "help", "-h", "--help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showUsage()
		os.Exit(1)
	}
}
