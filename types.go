package main

// Type is the static type of a variable, parameter, function result or
// expression.
type Type int

const (
	// TypeUndefined marks a name or expression that could not be resolved.
	// It is a diagnostic placeholder, never a declarable type.
	TypeUndefined Type = iota
	TypeInt
	TypeFloat
	// TypeVoid only appears as a function return type.
	TypeVoid
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeVoid:
		return "void"
	default:
		return "undefined"
	}
}

// typeFromToken maps a type keyword token to its Type.
func typeFromToken(tt TokenType) (Type, bool) {
	switch tt {
	case KW_INT:
		return TypeInt, true
	case KW_FLOAT:
		return TypeFloat, true
	case KW_VOID:
		return TypeVoid, true
	default:
		return TypeUndefined, false
	}
}

// ClassifyLiteral determines the intrinsic type of a bare token: TypeFloat
// for digits.digits, TypeInt for digits, TypeUndefined for anything else.
// It never consults scope.
func ClassifyLiteral(tok string) Type {
	i := 0
	for i < len(tok) && isDigit(tok[i]) {
		i++
	}
	if i == 0 {
		return TypeUndefined
	}
	if i == len(tok) {
		return TypeInt
	}
	if tok[i] != '.' {
		return TypeUndefined
	}
	i++
	frac := i
	for i < len(tok) && isDigit(tok[i]) {
		i++
	}
	if i == frac || i != len(tok) {
		return TypeUndefined
	}
	return TypeFloat
}

// PromoteAddition returns the result type of a + b for two numeric operands:
// float if either side is float, int otherwise.
func PromoteAddition(a, b Type) Type {
	if a == TypeFloat || b == TypeFloat {
		return TypeFloat
	}
	return TypeInt
}
