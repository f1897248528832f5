package main

const globalContext = "global"

// TypeChecker infers expression types and checks statements against the
// symbol and function tables. All findings go to Diagnostics; checking never
// stops early.
type TypeChecker struct {
	Functions   *FunctionTable
	Scope       Scope
	Diagnostics *DiagnosticCollection
	Options     Options

	context  string             // "global" or the current function's name
	function *FunctionSignature // nil at top level
}

// NewTypeChecker creates a type checker at top level with the given global
// table and an empty function table.
func NewTypeChecker(global *SymbolTable, opts Options) *TypeChecker {
	return &TypeChecker{
		Functions:   NewFunctionTable(),
		Scope:       Scope{Global: global},
		Diagnostics: NewDiagnosticCollection(),
		Options:     opts,
		context:     globalContext,
	}
}

// CheckProgram checks a parsed program with fresh tables and returns what it
// found.
func CheckProgram(program *ASTNode, opts Options) *DiagnosticCollection {
	tc := NewTypeChecker(NewSymbolTable(), opts)
	tc.CheckProgram(program)
	return tc.Diagnostics
}

// CheckProgram walks the top-level items of program in source order.
func (tc *TypeChecker) CheckProgram(program *ASTNode) {
	for _, item := range program.Children {
		switch item.Kind {
		case NodeDecl:
			tc.declare(tc.Scope.Global, item)
		case NodeFunc:
			tc.checkFunction(item)
		case NodeAssign, NodeExprStmt, NodeInvalid:
			tc.checkStatement(item)
		}
	}
}

// InferExpression returns the type of expr, records it in expr.TypeAST and
// reports unresolved names and bad calls. Every subexpression is inferred.
func (tc *TypeChecker) InferExpression(expr *ASTNode) Type {
	var typ Type
	switch expr.Kind {
	case NodeInteger, NodeFloat:
		typ = tc.Scope.Resolve(expr.String)
	case NodeIdent:
		typ = tc.inferIdent(expr)
	case NodeBinary:
		typ = tc.inferAddition(expr)
	case NodeCall:
		typ = tc.inferCall(expr)
	default:
		typ = TypeUndefined
	}
	expr.TypeAST = typ
	return typ
}

func (tc *TypeChecker) inferIdent(expr *ASTNode) Type {
	sym := tc.Scope.Lookup(expr.String)
	if sym == nil {
		tc.Diagnostics.Errorf(UndeclaredVariable, tc.context, expr.Line, "variable '%s' not declared", expr.String)
		return TypeUndefined
	}
	return sym.Type
}

func (tc *TypeChecker) inferAddition(expr *ASTNode) Type {
	left := tc.InferExpression(expr.Children[0])
	right := tc.InferExpression(expr.Children[1])

	for _, operand := range expr.Children {
		if operand.TypeAST == TypeVoid {
			tc.voidValue(operand)
		}
	}
	if left == TypeVoid || right == TypeVoid {
		return TypeUndefined
	}
	return PromoteAddition(left, right)
}

func (tc *TypeChecker) inferCall(expr *ASTNode) Type {
	sig := tc.Functions.Lookup(expr.String)
	if sig == nil {
		tc.Diagnostics.Errorf(UndeclaredFunction, tc.context, expr.Line, "function '%s' not declared", expr.String)
		for _, arg := range expr.Children {
			tc.InferExpression(arg)
		}
		return TypeUndefined
	}

	if len(expr.Children) != len(sig.Params) {
		tc.Diagnostics.Errorf(ArityMismatch, tc.context, expr.Line,
			"wrong number of arguments in call to '%s': expected %d, got %d",
			sig.Name, len(sig.Params), len(expr.Children))
	}

	for i, arg := range expr.Children {
		argType := tc.InferExpression(arg)
		if i >= len(sig.Params) {
			continue
		}
		if want := sig.Params[i].Type; argType != want {
			tc.Diagnostics.Errorf(ArgumentTypeMismatch, tc.context, arg.Line,
				"argument '%s' (%s) expected %s in call to '%s'",
				FormatExpression(arg), argType, want, sig.Name)
		}
	}
	return sig.Return
}

func (tc *TypeChecker) checkFunction(fn *ASTNode) {
	sig := &FunctionSignature{
		Name:    fn.String,
		Return:  fn.DeclType,
		Params:  fn.Params,
		Defined: fn.HasBody,
		Line:    fn.Line,
	}
	previous := tc.Functions.Lookup(sig.Name)
	if previous != nil && tc.Options.Strict {
		switch {
		case previous.Defined && sig.Defined:
			tc.Diagnostics.Errorf(DuplicateDeclaration, globalContext, fn.Line, "function '%s' redefined", sig.Name)
		case !previous.SameShape(sig):
			tc.Diagnostics.Errorf(DuplicateDeclaration, globalContext, fn.Line, "conflicting declaration of function '%s'", sig.Name)
		}
	}
	// A prototype after a definition does not forget the body.
	if previous != nil && previous.Defined {
		sig.Defined = true
	}
	tc.Functions.Declare(sig)
	if !fn.HasBody {
		return
	}

	local := NewSymbolTable()
	for _, param := range fn.Params {
		if param.Name != "" {
			local.DeclareVariable(param.Name, param.Type, fn.Line)
		}
	}

	tc.Scope.Local = local
	tc.context = fn.String
	tc.function = sig
	defer func() {
		tc.Scope.Local = nil
		tc.context = globalContext
		tc.function = nil
	}()

	for _, stmt := range fn.Children {
		tc.checkStatement(stmt)
	}
	if fn.Unclosed && tc.Options.ReportUnrecognized {
		tc.Diagnostics.Warnf(SyntaxWarning, tc.context, fn.Line, "missing '}' at end of function '%s'", fn.String)
	}
}

// checkStatement checks one statement in the current context. Top-level
// assignments and expression statements are checked in the global context.
func (tc *TypeChecker) checkStatement(stmt *ASTNode) {
	switch stmt.Kind {
	case NodeDecl:
		tc.declare(tc.Scope.Local, stmt)
	case NodeAssign:
		tc.checkAssignment(stmt)
	case NodeReturn:
		tc.checkReturn(stmt)
	case NodeExprStmt:
		tc.InferExpression(stmt.Children[0])
	case NodeInvalid:
		tc.unrecognized(stmt)
	}
}

func (tc *TypeChecker) declare(table *SymbolTable, decl *ASTNode) {
	for _, name := range decl.Names {
		table.DeclareVariable(name, decl.DeclType, decl.Line)
	}
}

func (tc *TypeChecker) checkAssignment(stmt *ASTNode) {
	target := TypeUndefined
	if sym := tc.Scope.Lookup(stmt.String); sym != nil {
		target = sym.Type
	} else {
		tc.Diagnostics.Errorf(UndeclaredVariable, tc.context, stmt.Line, "variable '%s' not declared", stmt.String)
	}

	value := tc.InferExpression(stmt.Children[0])
	switch {
	case value == TypeVoid:
		tc.voidValue(stmt.Children[0])
	case value != target && value != TypeUndefined:
		tc.Diagnostics.Warnf(ImplicitCoercion, tc.context, stmt.Line,
			"implicit conversion %s->%s in assignment to '%s'", value, target, stmt.String)
	}
}

func (tc *TypeChecker) checkReturn(stmt *ASTNode) {
	if len(stmt.Children) == 0 {
		return
	}
	value := tc.InferExpression(stmt.Children[0])
	want := tc.function.Return
	if want != TypeInt && want != TypeFloat {
		return
	}
	switch {
	case value == TypeVoid:
		tc.voidValue(stmt.Children[0])
	case value != want && value != TypeUndefined:
		tc.Diagnostics.Warnf(ImplicitCoercion, tc.context, stmt.Line,
			"implicit conversion %s->%s in return from '%s'", value, want, tc.function.Name)
	}
}

// voidValue reports a call to a void function whose result is used.
func (tc *TypeChecker) voidValue(expr *ASTNode) {
	tc.Diagnostics.Errorf(VoidValue, tc.context, expr.Line, "call to void function '%s' used as a value", expr.String)
}

func (tc *TypeChecker) unrecognized(stmt *ASTNode) {
	if tc.Options.ReportUnrecognized {
		tc.Diagnostics.Warnf(SyntaxWarning, tc.context, stmt.Line, "unrecognized statement '%s'", stmt.String)
	}
}
