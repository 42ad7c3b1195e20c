package main

import (
	"fmt"
	"strconv"
	"strings"
)

// ToSExpr converts an AST node to its s-expression string representation.
// Used by parser tests, the markdown test corpus, and the `parse` command.
func ToSExpr(n Node) string {
	switch n := n.(type) {
	case *Program:
		return "(program" + sexprList(stmtsToNodes(n.Stmts)) + ")"

	case *IntLit:
		return "(integer " + strconv.FormatInt(n.Value, 10) + ")"
	case *FloatLit:
		return "(float " + strconv.FormatFloat(n.Value, 'g', -1, 64) + ")"
	case *StringLit:
		return "(string " + quoteSExpr(n.Value) + ")"
	case *BoolLit:
		return "(bool " + strconv.FormatBool(n.Value) + ")"
	case *Ident:
		return "(ident " + quoteSExpr(n.Name) + ")"

	case *ListLit:
		return "(list" + sexprList(exprsToNodes(n.Elems)) + ")"
	case *DictLit:
		var sb strings.Builder
		sb.WriteString("(dict")
		for _, entry := range n.Entries {
			sb.WriteString(" (" + ToSExpr(entry.Key) + " " + ToSExpr(entry.Value) + ")")
		}
		sb.WriteString(")")
		return sb.String()
	case *StructLit:
		var sb strings.Builder
		sb.WriteString("(struct-lit " + quoteSExpr(n.Name))
		for _, f := range n.Fields {
			sb.WriteString(" (" + quoteSExpr(f.Name) + " " + ToSExpr(f.Value) + ")")
		}
		sb.WriteString(")")
		return sb.String()

	case *BinaryExpr:
		return "(binary " + quoteSExpr(n.Op) + " " + ToSExpr(n.Left) + " " + ToSExpr(n.Right) + ")"
	case *UnaryExpr:
		return "(unary " + quoteSExpr(n.Op) + " " + ToSExpr(n.Operand) + ")"
	case *CallExpr:
		return "(call " + ToSExpr(n.Callee) + sexprList(exprsToNodes(n.Args)) + ")"
	case *IndexExpr:
		return "(index " + ToSExpr(n.Target) + " " + ToSExpr(n.Index) + ")"
	case *MemberExpr:
		return "(member " + ToSExpr(n.Target) + " " + quoteSExpr(n.Name) + ")"
	case *MethodCallExpr:
		return "(method " + ToSExpr(n.Target) + " " + quoteSExpr(n.Name) + sexprList(exprsToNodes(n.Args)) + ")"
	case *RangeExpr:
		mode := "inclusive"
		if n.Exclusive {
			mode = "exclusive"
		}
		return "(range " + ToSExpr(n.Start) + " " + ToSExpr(n.End) + " " + mode + ")"

	case *Block:
		return "(block" + sexprList(stmtsToNodes(n.Stmts)) + ")"
	case *ExprStmt:
		return ToSExpr(n.X)
	case *If:
		out := "(if " + ToSExpr(n.Cond) + " " + ToSExpr(n.Then)
		if n.Else != nil {
			out += " " + ToSExpr(n.Else)
		}
		return out + ")"
	case *While:
		return "(while " + ToSExpr(n.Cond) + " " + ToSExpr(n.Body) + ")"
	case *For:
		return "(for " + quoteSExpr(n.Var.Name) + " " + ToSExpr(n.Iter) + " " + ToSExpr(n.Body) + ")"
	case *Return:
		if n.Value == nil {
			return "(return)"
		}
		return "(return " + ToSExpr(n.Value) + ")"
	case *Break:
		return "(break)"
	case *Continue:
		return "(continue)"
	case *Assign:
		return "(assign " + ToSExpr(n.Target) + " " + ToSExpr(n.Value) + ")"
	case *IndexAssign:
		return "(index-assign " + ToSExpr(n.Target) + " " + ToSExpr(n.Value) + ")"
	case *MemberAssign:
		return "(member-assign " + ToSExpr(n.Target) + " " + ToSExpr(n.Value) + ")"
	case *Print:
		out := "(print" + sexprList(exprsToNodes(n.Args))
		if n.Sep != nil {
			out += " (sep " + ToSExpr(n.Sep) + ")"
		}
		if n.End != nil {
			out += " (end " + ToSExpr(n.End) + ")"
		}
		return out + ")"

	case *Let:
		return "(let " + quoteSExpr(n.Name.Name) + " " + ToSExpr(n.Type) + " " + ToSExpr(n.Value) + ")"
	case *Const:
		return "(const " + quoteSExpr(n.Name.Name) + " " + ToSExpr(n.Type) + " " + ToSExpr(n.Value) + ")"
	case *FuncDecl:
		var sb strings.Builder
		sb.WriteString("(fn " + quoteSExpr(n.Name.Name) + " (")
		for i, param := range n.Params {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString("(param " + quoteSExpr(param.Name.Name) + " " + ToSExpr(param.Type) + ")")
		}
		sb.WriteString(") " + ToSExpr(n.Ret) + " " + ToSExpr(n.Body) + ")")
		return sb.String()
	case *StructDecl:
		var sb strings.Builder
		sb.WriteString("(struct " + quoteSExpr(n.Name.Name))
		for _, f := range n.Fields {
			sb.WriteString(" (field " + quoteSExpr(f.Name.Name) + " " + ToSExpr(f.Type) + ")")
		}
		sb.WriteString(")")
		return sb.String()
	case *EnumDecl:
		var sb strings.Builder
		sb.WriteString("(enum " + quoteSExpr(n.Name.Name))
		for _, v := range n.Variants {
			sb.WriteString(" " + quoteSExpr(v.Name))
		}
		sb.WriteString(")")
		return sb.String()
	case *Import:
		return "(import " + quoteSExpr(n.Name.Name) + ")"

	case *NamedType:
		return n.Name
	case *ListType:
		return "(list-of " + ToSExpr(n.Elem) + ")"
	case *DictType:
		return "(dict-of " + ToSExpr(n.Key) + " " + ToSExpr(n.Value) + ")"

	default:
		panic(fmt.Sprintf("ToSExpr: unhandled node %T", n))
	}
}

func sexprList(nodes []Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(" " + ToSExpr(n))
	}
	return sb.String()
}

func exprsToNodes(exprs []Expr) []Node {
	out := make([]Node, len(exprs))
	for i, e := range exprs {
		out[i] = e
	}
	return out
}

func stmtsToNodes(stmts []Stmt) []Node {
	out := make([]Node, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}

func quoteSExpr(s string) string {
	escaped := strings.ReplaceAll(s, "\\", "\\\\")
	escaped = strings.ReplaceAll(escaped, "\"", "\\\"")
	return "\"" + escaped + "\""
}
