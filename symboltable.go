package main

// Symbol is one declared variable or parameter.
type Symbol struct {
	Name string
	Type Type
	Line int
}

// SymbolTable maps variable names to their declared types, in declaration
// order. Redeclaring a name replaces the earlier entry in place.
type SymbolTable struct {
	variables []Symbol
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// DeclareVariable adds or replaces a variable. It returns the entry that was
// replaced, or nil if the name is new.
func (st *SymbolTable) DeclareVariable(name string, typ Type, line int) *Symbol {
	for i := range st.variables {
		if st.variables[i].Name == name {
			previous := st.variables[i]
			st.variables[i] = Symbol{Name: name, Type: typ, Line: line}
			return &previous
		}
	}
	st.variables = append(st.variables, Symbol{Name: name, Type: typ, Line: line})
	return nil
}

// LookupVariable returns the variable with the given name, or nil.
func (st *SymbolTable) LookupVariable(name string) *Symbol {
	for i := range st.variables {
		if st.variables[i].Name == name {
			return &st.variables[i]
		}
	}
	return nil
}

// Variables returns the declared variables in declaration order.
func (st *SymbolTable) Variables() []Symbol {
	return st.variables
}

// Scope is the ordered pair of tables consulted when resolving a name.
// Local is nil at top level.
type Scope struct {
	Global *SymbolTable
	Local  *SymbolTable
}

// Lookup finds a variable in the local table, then the global table.
func (s Scope) Lookup(name string) *Symbol {
	if s.Local != nil {
		if sym := s.Local.LookupVariable(name); sym != nil {
			return sym
		}
	}
	if s.Global != nil {
		return s.Global.LookupVariable(name)
	}
	return nil
}

// Resolve returns the type of a bare token: a local variable, else a global
// variable, else a numeric literal, else TypeUndefined.
func (s Scope) Resolve(token string) Type {
	if sym := s.Lookup(token); sym != nil {
		return sym.Type
	}
	return ClassifyLiteral(token)
}

// FunctionSignature is a function's return type and ordered parameter list.
type FunctionSignature struct {
	Name    string
	Return  Type
	Params  []Param
	Defined bool // has a body; false for prototypes
	Line    int
}

// SameShape reports whether two signatures agree on return and parameter
// types. Parameter names are ignored.
func (sig *FunctionSignature) SameShape(other *FunctionSignature) bool {
	if sig.Return != other.Return || len(sig.Params) != len(other.Params) {
		return false
	}
	for i := range sig.Params {
		if sig.Params[i].Type != other.Params[i].Type {
			return false
		}
	}
	return true
}

// FunctionTable maps function names to their most recent signature.
type FunctionTable struct {
	functions map[string]*FunctionSignature
}

func NewFunctionTable() *FunctionTable {
	return &FunctionTable{functions: make(map[string]*FunctionSignature)}
}

// Declare registers a signature, replacing any earlier one with the same
// name. It returns the replaced signature, or nil.
func (ft *FunctionTable) Declare(sig *FunctionSignature) *FunctionSignature {
	previous := ft.functions[sig.Name]
	ft.functions[sig.Name] = sig
	return previous
}

// Lookup returns the signature for name, or nil.
func (ft *FunctionTable) Lookup(name string) *FunctionSignature {
	return ft.functions[name]
}
