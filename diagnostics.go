package main

import (
	"fmt"
	"strings"
)

// Severity separates diagnostics that fail a check from advisory ones.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// DiagnosticKind identifies what a diagnostic is about.
type DiagnosticKind string

const (
	// Errors
	UndeclaredVariable   DiagnosticKind = "UndeclaredVariable"
	UndeclaredFunction   DiagnosticKind = "UndeclaredFunction"
	ArityMismatch        DiagnosticKind = "ArityMismatch"
	ArgumentTypeMismatch DiagnosticKind = "ArgumentTypeMismatch"
	VoidValue            DiagnosticKind = "VoidValue"
	DuplicateDeclaration DiagnosticKind = "DuplicateDeclaration"

	// Warnings
	ImplicitCoercion DiagnosticKind = "ImplicitCoercion"
	SyntaxWarning    DiagnosticKind = "SyntaxWarning"
)

// Diagnostic is one error or warning found by the checker.
type Diagnostic struct {
	Severity Severity
	Kind     DiagnosticKind
	Context  string // "global" or the enclosing function's name
	Line     int
	Message  string
}

// String formats the diagnostic as "[context] message".
func (d Diagnostic) String() string {
	return "[" + d.Context + "] " + d.Message
}

func (d Diagnostic) Error() string {
	return d.String()
}

// DiagnosticCollection accumulates diagnostics for one checker run, in the
// order they were found.
type DiagnosticCollection struct {
	diagnostics []Diagnostic
}

func NewDiagnosticCollection() *DiagnosticCollection {
	return &DiagnosticCollection{}
}

// Add appends a diagnostic.
func (dc *DiagnosticCollection) Add(d Diagnostic) {
	dc.diagnostics = append(dc.diagnostics, d)
}

// Errorf appends an error.
func (dc *DiagnosticCollection) Errorf(kind DiagnosticKind, context string, line int, format string, args ...any) {
	dc.Add(Diagnostic{
		Severity: SeverityError,
		Kind:     kind,
		Context:  context,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warnf appends a warning.
func (dc *DiagnosticCollection) Warnf(kind DiagnosticKind, context string, line int, format string, args ...any) {
	dc.Add(Diagnostic{
		Severity: SeverityWarning,
		Kind:     kind,
		Context:  context,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
	})
}

// All returns every diagnostic in discovery order.
func (dc *DiagnosticCollection) All() []Diagnostic {
	return dc.diagnostics
}

func (dc *DiagnosticCollection) Errors() []Diagnostic {
	return dc.filter(SeverityError)
}

func (dc *DiagnosticCollection) Warnings() []Diagnostic {
	return dc.filter(SeverityWarning)
}

func (dc *DiagnosticCollection) HasErrors() bool {
	for _, d := range dc.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ErrorStrings returns the errors formatted as "[context] message".
func (dc *DiagnosticCollection) ErrorStrings() []string {
	return diagnosticStrings(dc.Errors())
}

// WarningStrings returns the warnings formatted as "[context] message".
func (dc *DiagnosticCollection) WarningStrings() []string {
	return diagnosticStrings(dc.Warnings())
}

// Count returns how many diagnostics of the given kind were recorded.
func (dc *DiagnosticCollection) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range dc.diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// String lists every diagnostic on its own line as
// "line N: severity: [context] message".
func (dc *DiagnosticCollection) String() string {
	var b strings.Builder
	for _, d := range dc.diagnostics {
		fmt.Fprintf(&b, "line %d: %s: %s\n", d.Line, d.Severity, d)
	}
	return b.String()
}

func (dc *DiagnosticCollection) filter(severity Severity) []Diagnostic {
	result := []Diagnostic{}
	for _, d := range dc.diagnostics {
		if d.Severity == severity {
			result = append(result, d)
		}
	}
	return result
}

func diagnosticStrings(diagnostics []Diagnostic) []string {
	result := make([]string, len(diagnostics))
	for i, d := range diagnostics {
		result[i] = d.String()
	}
	return result
}
