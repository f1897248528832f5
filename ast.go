package main

import (
	"strconv"
	"strings"
)

// NodeKind represents different types of AST nodes
type NodeKind string

const (
	NodeProgram  NodeKind = "NodeProgram"
	NodeDecl     NodeKind = "NodeDecl"
	NodeFunc     NodeKind = "NodeFunc"
	NodeAssign   NodeKind = "NodeAssign"
	NodeExprStmt NodeKind = "NodeExprStmt"
	NodeReturn   NodeKind = "NodeReturn"
	NodeInvalid  NodeKind = "NodeInvalid"

	NodeCall    NodeKind = "NodeCall"
	NodeBinary  NodeKind = "NodeBinary"
	NodeIdent   NodeKind = "NodeIdent"
	NodeInteger NodeKind = "NodeInteger"
	NodeFloat   NodeKind = "NodeFloat"
)

// Param is one typed function parameter. Name is empty for unnamed
// prototype parameters such as `int f(int);`.
type Param struct {
	Name string
	Type Type
}

// ASTNode represents a node in the Abstract Syntax Tree
type ASTNode struct {
	Kind NodeKind
	Line int

	// NodeIdent, NodeCall (callee), NodeFunc (name), NodeAssign (target),
	// NodeInteger and NodeFloat (literal text), NodeInvalid (skipped text):
	String string
	// NodeBinary:
	Op       string
	Children []*ASTNode

	// NodeDecl, NodeFunc (return type):
	DeclType Type
	// NodeDecl:
	Names []string
	// NodeFunc:
	Params   []Param
	HasBody  bool
	Unclosed bool

	// Set by the type checker on expression nodes.
	TypeAST Type
}

// ToSExpr converts an AST node to s-expression string representation
func ToSExpr(node *ASTNode) string {
	switch node.Kind {
	case NodeProgram:
		return "(program" + childrenSExpr(node.Children) + ")"
	case NodeDecl:
		result := "(decl " + node.DeclType.String()
		for _, name := range node.Names {
			result += " " + strconv.Quote(name)
		}
		return result + ")"
	case NodeFunc:
		result := "(func " + node.DeclType.String() + " " + strconv.Quote(node.String) + " (params"
		for _, p := range node.Params {
			result += " (param " + p.Type.String()
			if p.Name != "" {
				result += " " + strconv.Quote(p.Name)
			}
			result += ")"
		}
		result += ")"
		if node.HasBody {
			result += " (block" + childrenSExpr(node.Children) + ")"
		}
		return result + ")"
	case NodeAssign:
		return "(assign " + strconv.Quote(node.String) + " " + ToSExpr(node.Children[0]) + ")"
	case NodeExprStmt:
		return "(expr " + ToSExpr(node.Children[0]) + ")"
	case NodeReturn:
		if len(node.Children) == 0 {
			return "(return)"
		}
		return "(return " + ToSExpr(node.Children[0]) + ")"
	case NodeInvalid:
		return "(invalid " + strconv.Quote(node.String) + ")"
	case NodeCall:
		return "(call " + strconv.Quote(node.String) + childrenSExpr(node.Children) + ")"
	case NodeBinary:
		left := ToSExpr(node.Children[0])
		right := ToSExpr(node.Children[1])
		return "(binary " + strconv.Quote(node.Op) + " " + left + " " + right + ")"
	case NodeIdent:
		return "(ident " + strconv.Quote(node.String) + ")"
	case NodeInteger:
		return "(integer " + node.String + ")"
	case NodeFloat:
		return "(float " + node.String + ")"
	default:
		return ""
	}
}

func childrenSExpr(children []*ASTNode) string {
	var b strings.Builder
	for _, child := range children {
		b.WriteByte(' ')
		b.WriteString(ToSExpr(child))
	}
	return b.String()
}

// FormatExpression renders an expression back to source form, e.g.
// "f(a, 1)" or "x + 2.5".
func FormatExpression(node *ASTNode) string {
	switch node.Kind {
	case NodeIdent, NodeInteger, NodeFloat:
		return node.String
	case NodeBinary:
		return FormatExpression(node.Children[0]) + " " + node.Op + " " + FormatExpression(node.Children[1])
	case NodeCall:
		args := make([]string, len(node.Children))
		for i, arg := range node.Children {
			args[i] = FormatExpression(arg)
		}
		return node.String + "(" + strings.Join(args, ", ") + ")"
	default:
		return ""
	}
}
