package main

// The AST is three closed families (expressions, statements, declarations)
// plus a small union for type annotations. Nodes are pure data: the parser
// builds them and nothing mutates them afterwards. Every node carries the
// span of the source text it covers; composite spans are the union of their
// children's spans.

type Node interface {
	Span() Span
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node. Declarations satisfy Stmt as well, so blocks
// hold an ordered mix of both.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is a declaration node.
type Decl interface {
	Stmt
	declNode()
}

// TypeExpr is a type annotation as written in source. Bare identifiers are
// forward references resolved during semantic analysis.
type TypeExpr interface {
	Node
	typeExprNode()
}

// Program is the root of a parsed source file.
type Program struct {
	Stmts []Stmt
	span  Span
}

func (p *Program) Span() Span { return p.span }

// ----- Expressions -----

type IntLit struct {
	Value int64
	span  Span
}

type FloatLit struct {
	Value float64
	span  Span
}

type StringLit struct {
	Value string
	span  Span
}

type BoolLit struct {
	Value bool
	span  Span
}

type Ident struct {
	Name string
	span Span
}

type ListLit struct {
	Elems []Expr
	span  Span
}

// DictEntry is one ordered key/value pair of a dict literal.
type DictEntry struct {
	Key   Expr
	Value Expr
}

type DictLit struct {
	Entries []DictEntry
	span    Span
}

// FieldInit is one ordered field initializer of a struct-init expression.
type FieldInit struct {
	Name  string
	Value Expr
	span  Span
}

func (f FieldInit) Span() Span { return f.span }

type StructLit struct {
	Name   string
	Fields []FieldInit
	span   Span
}

type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
	span  Span
}

type UnaryExpr struct {
	Op      string
	Operand Expr
	span    Span
}

// CallExpr is a call whose callee has already been reduced to a bare
// identifier by the parser; anything else is a syntax error.
type CallExpr struct {
	Callee *Ident
	Args   []Expr
	span   Span
}

type IndexExpr struct {
	Target Expr
	Index  Expr
	span   Span
}

type MemberExpr struct {
	Target Expr
	Name   string
	span   Span
}

type MethodCallExpr struct {
	Target Expr
	Name   string
	Args   []Expr
	span   Span
}

type RangeExpr struct {
	Start     Expr
	End       Expr
	Exclusive bool
	span      Span
}

func (e *IntLit) Span() Span         { return e.span }
func (e *FloatLit) Span() Span       { return e.span }
func (e *StringLit) Span() Span      { return e.span }
func (e *BoolLit) Span() Span        { return e.span }
func (e *Ident) Span() Span          { return e.span }
func (e *ListLit) Span() Span        { return e.span }
func (e *DictLit) Span() Span        { return e.span }
func (e *StructLit) Span() Span      { return e.span }
func (e *BinaryExpr) Span() Span     { return e.span }
func (e *UnaryExpr) Span() Span      { return e.span }
func (e *CallExpr) Span() Span       { return e.span }
func (e *IndexExpr) Span() Span      { return e.span }
func (e *MemberExpr) Span() Span     { return e.span }
func (e *MethodCallExpr) Span() Span { return e.span }
func (e *RangeExpr) Span() Span      { return e.span }

func (*IntLit) exprNode()         {}
func (*FloatLit) exprNode()       {}
func (*StringLit) exprNode()      {}
func (*BoolLit) exprNode()        {}
func (*Ident) exprNode()          {}
func (*ListLit) exprNode()        {}
func (*DictLit) exprNode()        {}
func (*StructLit) exprNode()      {}
func (*BinaryExpr) exprNode()     {}
func (*UnaryExpr) exprNode()      {}
func (*CallExpr) exprNode()       {}
func (*IndexExpr) exprNode()      {}
func (*MemberExpr) exprNode()     {}
func (*MethodCallExpr) exprNode() {}
func (*RangeExpr) exprNode()      {}

// ----- Statements -----

type Block struct {
	Stmts []Stmt
	span  Span
}

type ExprStmt struct {
	X    Expr
	span Span
}

type If struct {
	Cond Expr
	Then *Block
	Else *Block // nil when there is no else branch
	span Span
}

type While struct {
	Cond Expr
	Body *Block
	span Span
}

type For struct {
	Var  *Ident
	Iter Expr
	Body *Block
	span Span
}

type Return struct {
	Value Expr // nil for a bare return
	span  Span
}

type Break struct {
	span Span
}

type Continue struct {
	span Span
}

type Assign struct {
	Target *Ident
	Value  Expr
	span   Span
}

type IndexAssign struct {
	Target *IndexExpr
	Value  Expr
	span   Span
}

type MemberAssign struct {
	Target *MemberExpr
	Value  Expr
	span   Span
}

type Print struct {
	Args []Expr
	Sep  Expr // nil unless sep: was given
	End  Expr // nil unless end: was given
	span Span
}

func (s *Block) Span() Span        { return s.span }
func (s *ExprStmt) Span() Span     { return s.span }
func (s *If) Span() Span           { return s.span }
func (s *While) Span() Span        { return s.span }
func (s *For) Span() Span          { return s.span }
func (s *Return) Span() Span       { return s.span }
func (s *Break) Span() Span        { return s.span }
func (s *Continue) Span() Span     { return s.span }
func (s *Assign) Span() Span       { return s.span }
func (s *IndexAssign) Span() Span  { return s.span }
func (s *MemberAssign) Span() Span { return s.span }
func (s *Print) Span() Span        { return s.span }

func (*Block) stmtNode()        {}
func (*ExprStmt) stmtNode()     {}
func (*If) stmtNode()           {}
func (*While) stmtNode()        {}
func (*For) stmtNode()          {}
func (*Return) stmtNode()       {}
func (*Break) stmtNode()        {}
func (*Continue) stmtNode()     {}
func (*Assign) stmtNode()       {}
func (*IndexAssign) stmtNode()  {}
func (*MemberAssign) stmtNode() {}
func (*Print) stmtNode()        {}

// ----- Declarations -----

type Let struct {
	Name  *Ident
	Type  TypeExpr
	Value Expr
	span  Span
}

type Const struct {
	Name  *Ident
	Type  TypeExpr
	Value Expr
	span  Span
}

type Param struct {
	Name *Ident
	Type TypeExpr
}

type FuncDecl struct {
	Name   *Ident
	Params []Param
	Ret    TypeExpr // never nil; defaults to void
	Body   *Block
	span   Span
}

type StructFieldDecl struct {
	Name *Ident
	Type TypeExpr
}

type StructDecl struct {
	Name   *Ident
	Fields []StructFieldDecl
	span   Span
}

type EnumDecl struct {
	Name     *Ident
	Variants []*Ident
	span     Span
}

type Import struct {
	Name *Ident
	span Span
}

func (d *Let) Span() Span        { return d.span }
func (d *Const) Span() Span      { return d.span }
func (d *FuncDecl) Span() Span   { return d.span }
func (d *StructDecl) Span() Span { return d.span }
func (d *EnumDecl) Span() Span   { return d.span }
func (d *Import) Span() Span     { return d.span }

func (*Let) stmtNode()        {}
func (*Const) stmtNode()      {}
func (*FuncDecl) stmtNode()   {}
func (*StructDecl) stmtNode() {}
func (*EnumDecl) stmtNode()   {}
func (*Import) stmtNode()     {}

func (*Let) declNode()        {}
func (*Const) declNode()      {}
func (*FuncDecl) declNode()   {}
func (*StructDecl) declNode() {}
func (*EnumDecl) declNode()   {}
func (*Import) declNode()     {}

// ----- Type annotations -----

type NamedType struct {
	Name string
	span Span
}

type ListType struct {
	Elem TypeExpr
	span Span
}

type DictType struct {
	Key   TypeExpr
	Value TypeExpr
	span  Span
}

func (t *NamedType) Span() Span { return t.span }
func (t *ListType) Span() Span  { return t.span }
func (t *DictType) Span() Span  { return t.span }

func (*NamedType) typeExprNode() {}
func (*ListType) typeExprNode()  {}
func (*DictType) typeExprNode()  {}

// Children returns the direct child nodes of n in source order. Used by
// tooling and tests that walk the tree generically.
func Children(n Node) []Node {
	var out []Node
	add := func(children ...Node) {
		for _, c := range children {
			if c != nil {
				out = append(out, c)
			}
		}
	}

	switch n := n.(type) {
	case *Program:
		for _, s := range n.Stmts {
			add(s)
		}
	case *IntLit, *FloatLit, *StringLit, *BoolLit, *Ident,
		*Break, *Continue, *NamedType:
		// leaves
	case *ListLit:
		for _, e := range n.Elems {
			add(e)
		}
	case *DictLit:
		for _, entry := range n.Entries {
			add(entry.Key, entry.Value)
		}
	case *StructLit:
		for _, f := range n.Fields {
			add(f.Value)
		}
	case *BinaryExpr:
		add(n.Left, n.Right)
	case *UnaryExpr:
		add(n.Operand)
	case *CallExpr:
		add(n.Callee)
		for _, a := range n.Args {
			add(a)
		}
	case *IndexExpr:
		add(n.Target, n.Index)
	case *MemberExpr:
		add(n.Target)
	case *MethodCallExpr:
		add(n.Target)
		for _, a := range n.Args {
			add(a)
		}
	case *RangeExpr:
		add(n.Start, n.End)
	case *Block:
		for _, s := range n.Stmts {
			add(s)
		}
	case *ExprStmt:
		add(n.X)
	case *If:
		add(n.Cond, n.Then)
		if n.Else != nil {
			add(n.Else)
		}
	case *While:
		add(n.Cond, n.Body)
	case *For:
		add(n.Var, n.Iter, n.Body)
	case *Return:
		if n.Value != nil {
			add(n.Value)
		}
	case *Assign:
		add(n.Target, n.Value)
	case *IndexAssign:
		add(n.Target, n.Value)
	case *MemberAssign:
		add(n.Target, n.Value)
	case *Print:
		for _, a := range n.Args {
			add(a)
		}
		add(n.Sep, n.End)
	case *Let:
		add(n.Name, n.Type, n.Value)
	case *Const:
		add(n.Name, n.Type, n.Value)
	case *FuncDecl:
		add(n.Name)
		for _, p := range n.Params {
			add(p.Name, p.Type)
		}
		add(n.Ret, n.Body)
	case *StructDecl:
		add(n.Name)
		for _, f := range n.Fields {
			add(f.Name, f.Type)
		}
	case *EnumDecl:
		add(n.Name)
		for _, v := range n.Variants {
			add(v)
		}
	case *Import:
		add(n.Name)
	case *ListType:
		add(n.Elem)
	case *DictType:
		add(n.Key, n.Value)
	default:
		panic("Children: unhandled node kind")
	}
	return out
}
