package main

// Info is the analysis product handed to the code emitter: every expression
// node mapped to its resolved type. The AST itself is never mutated, so a
// validated Program plus its Info is safe to share.
type Info struct {
	Types map[Expr]*Type
}

// Analyzer walks a parsed program, resolving names against the symbol table
// and checking every typing and control-flow rule. It is single-pass and
// fail-fast: the first violation aborts the walk with a *SemanticError.
// Analyzer state is per-run; independent runs never share anything.
type Analyzer struct {
	symbols    *SymbolTable
	info       *Info
	structs    map[string]*Type
	enums      map[string]*Type
	imports    map[string]bool
	loopDepth  int
	returnType *Type // declared return type of the enclosing function, nil at top level
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		symbols: NewSymbolTable(),
		info:    &Info{Types: map[Expr]*Type{}},
		structs: map[string]*Type{},
		enums:   map[string]*Type{},
		imports: map[string]bool{},
	}
}

// Analyze validates prog and returns the type annotations for its
// expressions. On the first violation it returns a *SemanticError instead.
func Analyze(prog *Program) (*Info, error) {
	a := NewAnalyzer()
	for _, stmt := range prog.Stmts {
		if err := a.checkStmt(stmt); err != nil {
			return nil, err
		}
	}
	return a.info, nil
}

// AnalyzeExpression type-checks a standalone expression against an empty
// global scope. Used by tests and the markdown corpus runner.
func AnalyzeExpression(e Expr) (*Type, error) {
	return NewAnalyzer().checkExpr(e, nil)
}

// ----- Statements and declarations -----

func (a *Analyzer) checkStmt(stmt Stmt) error {
	switch n := stmt.(type) {
	case *Block:
		exit := a.symbols.EnterScope()
		defer exit()
		for _, s := range n.Stmts {
			if err := a.checkStmt(s); err != nil {
				return err
			}
		}
		return nil

	case *ExprStmt:
		_, err := a.checkExpr(n.X, nil)
		return err

	case *If:
		if err := a.checkCondition(n.Cond, "if"); err != nil {
			return err
		}
		if err := a.checkStmt(n.Then); err != nil {
			return err
		}
		if n.Else != nil {
			return a.checkStmt(n.Else)
		}
		return nil

	case *While:
		if err := a.checkCondition(n.Cond, "while"); err != nil {
			return err
		}
		a.loopDepth++
		defer func() { a.loopDepth-- }()
		return a.checkStmt(n.Body)

	case *For:
		return a.checkFor(n)

	case *Return:
		return a.checkReturn(n)

	case *Break:
		if a.loopDepth == 0 {
			return semanticErrorf(ErrBreakOutsideLoop, n.Span(), "'break' outside of a loop")
		}
		return nil

	case *Continue:
		if a.loopDepth == 0 {
			return semanticErrorf(ErrContinueOutsideLoop, n.Span(), "'continue' outside of a loop")
		}
		return nil

	case *Assign:
		return a.checkAssign(n)

	case *IndexAssign:
		return a.checkIndexAssign(n)

	case *MemberAssign:
		return a.checkMemberAssign(n)

	case *Print:
		return a.checkPrint(n)

	case *Let:
		return a.checkVarDecl(n.Name, n.Type, n.Value, false)

	case *Const:
		return a.checkVarDecl(n.Name, n.Type, n.Value, true)

	case *FuncDecl:
		return a.checkFuncDecl(n)

	case *StructDecl:
		return a.checkStructDecl(n)

	case *EnumDecl:
		return a.checkEnumDecl(n)

	case *Import:
		if _, ok := namespaces[n.Name.Name]; !ok {
			return semanticErrorf(ErrUnknownImport, n.Name.Span(), "unknown namespace %q", n.Name.Name)
		}
		a.imports[n.Name.Name] = true
		return nil

	default:
		panic("analyzer: unhandled statement kind")
	}
}

func (a *Analyzer) checkCondition(cond Expr, construct string) error {
	t, err := a.checkExpr(cond, nil)
	if err != nil {
		return err
	}
	if t.Kind != TypeBool {
		return semanticErrorf(ErrNonBooleanCondition, cond.Span(),
			"%s condition must be bool, got %s", construct, t)
	}
	return nil
}

func (a *Analyzer) checkFor(n *For) error {
	if isReservedName(n.Var.Name) {
		return semanticErrorf(ErrReservedIdentifier, n.Var.Span(),
			"%q is a reserved namespace name", n.Var.Name)
	}

	var elem *Type
	if r, ok := n.Iter.(*RangeExpr); ok {
		for _, bound := range []Expr{r.Start, r.End} {
			t, err := a.checkExpr(bound, nil)
			if err != nil {
				return err
			}
			if t.Kind != TypeInt {
				return semanticErrorf(ErrTypeMismatch, bound.Span(),
					"range bounds must be int, got %s", t)
			}
		}
		elem = IntType
		a.info.Types[r] = ListOf(IntType)
	} else {
		t, err := a.checkExpr(n.Iter, nil)
		if err != nil {
			return err
		}
		switch t.Kind {
		case TypeList:
			elem = t.Elem
		case TypeDict:
			elem = t.Key
		case TypeStr:
			elem = StrType
		default:
			return semanticErrorf(ErrInvalidIterable, n.Iter.Span(),
				"cannot iterate over %s", t)
		}
	}

	exit := a.symbols.EnterScope()
	defer exit()
	a.symbols.Define(&Symbol{Name: n.Var.Name, Type: elem})
	a.info.Types[n.Var] = elem

	a.loopDepth++
	defer func() { a.loopDepth-- }()
	return a.checkStmt(n.Body)
}

func (a *Analyzer) checkReturn(n *Return) error {
	if a.returnType == nil {
		return semanticErrorf(ErrReturnOutsideFunc, n.Span(), "'return' outside of a function")
	}
	if n.Value == nil {
		if a.returnType.Kind != TypeVoid {
			return semanticErrorf(ErrReturnTypeMismatch, n.Span(),
				"missing return value in function returning %s", a.returnType)
		}
		return nil
	}
	if a.returnType.Kind == TypeVoid {
		return semanticErrorf(ErrReturnTypeMismatch, n.Value.Span(),
			"void function cannot return a value")
	}
	t, err := a.checkExpr(n.Value, a.returnType)
	if err != nil {
		return err
	}
	if !TypesEqual(t, a.returnType) {
		return semanticErrorf(ErrReturnTypeMismatch, n.Value.Span(),
			"function returns %s, got %s", a.returnType, t)
	}
	return nil
}

func (a *Analyzer) checkAssign(n *Assign) error {
	name := n.Target.Name
	if isReservedName(name) {
		return semanticErrorf(ErrReservedIdentifier, n.Target.Span(),
			"%q is a reserved namespace name", name)
	}
	sym := a.symbols.Lookup(name)
	if sym == nil {
		return semanticErrorf(ErrUndeclared, n.Target.Span(), "undeclared identifier %q", name)
	}
	if sym.Const || sym.IsFunc {
		return semanticErrorf(ErrConstReassignment, n.Target.Span(),
			"cannot assign to %q: it is not reassignable", name)
	}
	t, err := a.checkExpr(n.Value, sym.Type)
	if err != nil {
		return err
	}
	if !TypesEqual(t, sym.Type) {
		return semanticErrorf(ErrTypeMismatch, n.Value.Span(),
			"%q has type %s, cannot assign %s", name, sym.Type, t)
	}
	a.info.Types[n.Target] = sym.Type
	return nil
}

func (a *Analyzer) checkIndexAssign(n *IndexAssign) error {
	target := n.Target
	t, err := a.checkExpr(target.Target, nil)
	if err != nil {
		return err
	}
	switch t.Kind {
	case TypeList:
		it, err := a.checkExpr(target.Index, nil)
		if err != nil {
			return err
		}
		if it.Kind != TypeInt {
			return semanticErrorf(ErrIndexType, target.Index.Span(),
				"list index must be int, got %s", it)
		}
		vt, err := a.checkExpr(n.Value, t.Elem)
		if err != nil {
			return err
		}
		if !TypesEqual(vt, t.Elem) {
			return semanticErrorf(ErrTypeMismatch, n.Value.Span(),
				"list element type is %s, cannot assign %s", t.Elem, vt)
		}
		a.info.Types[target] = t.Elem

	case TypeDict:
		kt, err := a.checkExpr(target.Index, t.Key)
		if err != nil {
			return err
		}
		if !TypesEqual(kt, t.Key) {
			return semanticErrorf(ErrDictKeyType, target.Index.Span(),
				"dict key type is %s, got %s", t.Key, kt)
		}
		vt, err := a.checkExpr(n.Value, t.Elem)
		if err != nil {
			return err
		}
		if !TypesEqual(vt, t.Elem) {
			return semanticErrorf(ErrTypeMismatch, n.Value.Span(),
				"dict value type is %s, cannot assign %s", t.Elem, vt)
		}
		a.info.Types[target] = t.Elem

	default:
		return semanticErrorf(ErrNotIndexable, target.Target.Span(), "%s is not indexable", t)
	}
	return nil
}

func (a *Analyzer) checkMemberAssign(n *MemberAssign) error {
	target := n.Target
	if id, ok := target.Target.(*Ident); ok && a.symbols.Lookup(id.Name) == nil {
		if _, isEnum := a.enums[id.Name]; isEnum || isReservedName(id.Name) {
			return semanticErrorf(ErrInvalidAssignment, target.Span(),
				"cannot assign to a member of %q", id.Name)
		}
	}
	t, err := a.checkExpr(target.Target, nil)
	if err != nil {
		return err
	}
	if t.Kind != TypeStruct {
		return semanticErrorf(ErrNotAStruct, target.Target.Span(),
			"member access requires a struct, got %s", t)
	}
	ft, ok := t.FieldType(target.Name)
	if !ok {
		return semanticErrorf(ErrUnknownField, target.Span(),
			"struct %s has no field %q", t.Name, target.Name)
	}
	vt, err := a.checkExpr(n.Value, ft)
	if err != nil {
		return err
	}
	if !TypesEqual(vt, ft) {
		return semanticErrorf(ErrTypeMismatch, n.Value.Span(),
			"field %q has type %s, cannot assign %s", target.Name, ft, vt)
	}
	a.info.Types[target] = ft
	return nil
}

func (a *Analyzer) checkPrint(n *Print) error {
	for _, arg := range n.Args {
		t, err := a.checkExpr(arg, nil)
		if err != nil {
			return err
		}
		if t.Kind == TypeVoid {
			return semanticErrorf(ErrTypeMismatch, arg.Span(), "cannot print a void value")
		}
	}
	for _, opt := range []struct {
		name string
		expr Expr
	}{{"sep", n.Sep}, {"end", n.End}} {
		if opt.expr == nil {
			continue
		}
		t, err := a.checkExpr(opt.expr, nil)
		if err != nil {
			return err
		}
		if t.Kind != TypeStr {
			return semanticErrorf(ErrTypeMismatch, opt.expr.Span(),
				"print %s must be str, got %s", opt.name, t)
		}
	}
	return nil
}

func (a *Analyzer) checkVarDecl(name *Ident, typeExpr TypeExpr, value Expr, isConst bool) error {
	if isReservedName(name.Name) {
		return semanticErrorf(ErrReservedIdentifier, name.Span(),
			"%q is a reserved namespace name", name.Name)
	}
	declared, err := a.resolveTypeExpr(typeExpr)
	if err != nil {
		return err
	}
	t, err := a.checkExpr(value, declared)
	if err != nil {
		return err
	}
	if !TypesEqual(t, declared) {
		return semanticErrorf(ErrTypeMismatch, value.Span(),
			"%q is declared as %s but its initializer has type %s", name.Name, declared, t)
	}
	if a.symbols.LookupCurrentScope(name.Name) != nil {
		return semanticErrorf(ErrRedeclaration, name.Span(),
			"%q is already declared in this scope", name.Name)
	}
	a.symbols.Define(&Symbol{Name: name.Name, Type: declared, Const: isConst})
	a.info.Types[name] = declared
	return nil
}

func (a *Analyzer) checkFuncDecl(n *FuncDecl) error {
	if isReservedName(n.Name.Name) {
		return semanticErrorf(ErrReservedIdentifier, n.Name.Span(),
			"%q is a reserved namespace name", n.Name.Name)
	}
	ret, err := a.resolveTypeExpr(n.Ret)
	if err != nil {
		return err
	}
	paramTypes := make([]*Type, len(n.Params))
	for i, param := range n.Params {
		t, err := a.resolveTypeExpr(param.Type)
		if err != nil {
			return err
		}
		paramTypes[i] = t
	}

	// The function's own name lands in the enclosing scope before the body
	// is analyzed, so direct recursion resolves.
	if a.symbols.LookupCurrentScope(n.Name.Name) != nil {
		return semanticErrorf(ErrRedeclaration, n.Name.Span(),
			"%q is already declared in this scope", n.Name.Name)
	}
	a.symbols.Define(&Symbol{
		Name:   n.Name.Name,
		Type:   ret,
		IsFunc: true,
		Params: paramTypes,
	})

	// One scope holds both the parameters and the body's top-level
	// declarations; nested blocks open their own scopes as usual.
	exit := a.symbols.EnterScope()
	defer exit()
	for i, param := range n.Params {
		if isReservedName(param.Name.Name) {
			return semanticErrorf(ErrReservedIdentifier, param.Name.Span(),
				"%q is a reserved namespace name", param.Name.Name)
		}
		if !a.symbols.Define(&Symbol{Name: param.Name.Name, Type: paramTypes[i]}) {
			return semanticErrorf(ErrRedeclaration, param.Name.Span(),
				"duplicate parameter %q", param.Name.Name)
		}
		a.info.Types[param.Name] = paramTypes[i]
	}

	savedLoop, savedRet := a.loopDepth, a.returnType
	a.loopDepth, a.returnType = 0, ret
	defer func() { a.loopDepth, a.returnType = savedLoop, savedRet }()

	for _, stmt := range n.Body.Stmts {
		if err := a.checkStmt(stmt); err != nil {
			return err
		}
	}

	if ret.Kind != TypeVoid && !blockReturns(n.Body) {
		return semanticErrorf(ErrMissingReturn, n.Name.Span(),
			"function %q does not return on every path", n.Name.Name)
	}
	return nil
}

func (a *Analyzer) checkStructDecl(n *StructDecl) error {
	if err := a.checkTypeName(n.Name); err != nil {
		return err
	}
	fields := make([]StructField, 0, len(n.Fields))
	seen := map[string]bool{}
	for _, f := range n.Fields {
		if seen[f.Name.Name] {
			return semanticErrorf(ErrDuplicateField, f.Name.Span(),
				"duplicate field %q", f.Name.Name)
		}
		seen[f.Name.Name] = true
		t, err := a.resolveTypeExpr(f.Type)
		if err != nil {
			return err
		}
		fields = append(fields, StructField{Name: f.Name.Name, Type: t})
	}
	a.structs[n.Name.Name] = &Type{Kind: TypeStruct, Name: n.Name.Name, Fields: fields}
	return nil
}

func (a *Analyzer) checkEnumDecl(n *EnumDecl) error {
	if err := a.checkTypeName(n.Name); err != nil {
		return err
	}
	variants := make([]string, 0, len(n.Variants))
	seen := map[string]bool{}
	for _, v := range n.Variants {
		if seen[v.Name] {
			return semanticErrorf(ErrDuplicateVariant, v.Span(),
				"duplicate variant %q", v.Name)
		}
		seen[v.Name] = true
		variants = append(variants, v.Name)
	}
	a.enums[n.Name.Name] = &Type{Kind: TypeEnum, Name: n.Name.Name, Variants: variants}
	return nil
}

func (a *Analyzer) checkTypeName(name *Ident) error {
	if isReservedName(name.Name) {
		return semanticErrorf(ErrReservedIdentifier, name.Span(),
			"%q is a reserved namespace name", name.Name)
	}
	_, isStruct := a.structs[name.Name]
	_, isEnum := a.enums[name.Name]
	if isStruct || isEnum {
		return semanticErrorf(ErrRedeclaration, name.Span(),
			"type %q is already declared", name.Name)
	}
	return nil
}

// resolveTypeExpr turns a source annotation into a Type, resolving bare
// identifiers against the struct and enum declarations seen so far.
func (a *Analyzer) resolveTypeExpr(te TypeExpr) (*Type, error) {
	switch te := te.(type) {
	case *NamedType:
		switch te.Name {
		case "int":
			return IntType, nil
		case "float":
			return FloatType, nil
		case "bool":
			return BoolType, nil
		case "str":
			return StrType, nil
		case "void":
			return VoidType, nil
		}
		if t, ok := a.structs[te.Name]; ok {
			return t, nil
		}
		if t, ok := a.enums[te.Name]; ok {
			return t, nil
		}
		return nil, semanticErrorf(ErrUnknownType, te.Span(), "unknown type %q", te.Name)

	case *ListType:
		elem, err := a.resolveTypeExpr(te.Elem)
		if err != nil {
			return nil, err
		}
		return ListOf(elem), nil

	case *DictType:
		key, err := a.resolveTypeExpr(te.Key)
		if err != nil {
			return nil, err
		}
		if !IsHashable(key) {
			return nil, semanticErrorf(ErrUnhashableKey, te.Key.Span(),
				"%s cannot be used as a dict key", key)
		}
		value, err := a.resolveTypeExpr(te.Value)
		if err != nil {
			return nil, err
		}
		return DictOf(key, value), nil

	default:
		panic("analyzer: unhandled type annotation kind")
	}
}

// ----- Expressions -----

// checkExpr resolves and records the type of e. want is the type the
// surrounding context requires, if any; it only guides empty container
// literals, which have no type of their own.
func (a *Analyzer) checkExpr(e Expr, want *Type) (*Type, error) {
	t, err := a.checkExprInner(e, want)
	if err != nil {
		return nil, err
	}
	a.info.Types[e] = t
	return t, nil
}

func (a *Analyzer) checkExprInner(e Expr, want *Type) (*Type, error) {
	switch n := e.(type) {
	case *IntLit:
		return IntType, nil
	case *FloatLit:
		return FloatType, nil
	case *StringLit:
		return StrType, nil
	case *BoolLit:
		return BoolType, nil

	case *Ident:
		if sym := a.symbols.Lookup(n.Name); sym != nil {
			if sym.IsFunc {
				return nil, semanticErrorf(ErrTypeMismatch, n.Span(),
					"function %q is not a value", n.Name)
			}
			return sym.Type, nil
		}
		if isReservedName(n.Name) {
			return nil, semanticErrorf(ErrNamespaceValue, n.Span(),
				"namespace %q is not a value", n.Name)
		}
		if _, ok := a.structs[n.Name]; ok {
			return nil, semanticErrorf(ErrTypeMismatch, n.Span(),
				"type %q is not a value", n.Name)
		}
		if _, ok := a.enums[n.Name]; ok {
			return nil, semanticErrorf(ErrTypeMismatch, n.Span(),
				"enum %q is not a value; use one of its variants", n.Name)
		}
		return nil, semanticErrorf(ErrUndeclared, n.Span(), "undeclared identifier %q", n.Name)

	case *UnaryExpr:
		return a.checkUnary(n)

	case *BinaryExpr:
		return a.checkBinary(n)

	case *RangeExpr:
		return nil, semanticErrorf(ErrTypeMismatch, n.Span(),
			"range expression is only valid as a 'for' loop iterable")

	case *ListLit:
		return a.checkListLit(n, want)

	case *DictLit:
		return a.checkDictLit(n, want)

	case *StructLit:
		return a.checkStructLit(n)

	case *CallExpr:
		return a.checkCall(n)

	case *IndexExpr:
		return a.checkIndex(n)

	case *MemberExpr:
		return a.checkMember(n)

	case *MethodCallExpr:
		return a.checkMethodCall(n)

	default:
		panic("analyzer: unhandled expression kind")
	}
}

func (a *Analyzer) checkUnary(n *UnaryExpr) (*Type, error) {
	t, err := a.checkExpr(n.Operand, nil)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "!":
		if t.Kind != TypeBool {
			return nil, semanticErrorf(ErrLogicalType, n.Span(),
				"operator '!' requires bool, got %s", t)
		}
		return BoolType, nil
	case "-":
		if !IsNumeric(t) {
			return nil, semanticErrorf(ErrArithmeticType, n.Span(),
				"operator '-' requires int or float, got %s", t)
		}
		return t, nil
	default:
		panic("analyzer: unhandled unary operator " + n.Op)
	}
}

func (a *Analyzer) checkBinary(n *BinaryExpr) (*Type, error) {
	lt, err := a.checkExpr(n.Left, nil)
	if err != nil {
		return nil, err
	}
	rt, err := a.checkExpr(n.Right, nil)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case "+":
		if lt.Kind == TypeStr && rt.Kind == TypeStr {
			return StrType, nil
		}
		fallthrough
	case "-", "*", "/", "%":
		if !IsNumeric(lt) || !TypesEqual(lt, rt) {
			return nil, semanticErrorf(ErrArithmeticType, n.Span(),
				"operator %q requires operands of the same numeric type, got %s and %s",
				n.Op, lt, rt)
		}
		if n.Op == "/" || n.Op == "%" {
			if isZeroLiteral(n.Right) {
				return nil, semanticErrorf(ErrDivisionByZero, n.Right.Span(), "division by zero")
			}
		}
		return lt, nil

	case "<", ">", "<=", ">=":
		if lt.Kind == TypeStr && rt.Kind == TypeStr {
			return nil, semanticErrorf(ErrComparisonType, n.Span(),
				"operator %q cannot compare str values", n.Op)
		}
		if !IsNumeric(lt) || !TypesEqual(lt, rt) {
			return nil, semanticErrorf(ErrComparisonType, n.Span(),
				"operator %q requires operands of the same numeric type, got %s and %s",
				n.Op, lt, rt)
		}
		return BoolType, nil

	case "==", "!=":
		if !TypesEqual(lt, rt) {
			return nil, semanticErrorf(ErrTypeMismatch, n.Span(),
				"cannot compare %s and %s", lt, rt)
		}
		return BoolType, nil

	case "&&", "||":
		if lt.Kind != TypeBool || rt.Kind != TypeBool {
			return nil, semanticErrorf(ErrLogicalType, n.Span(),
				"operator %q requires bool operands, got %s and %s", n.Op, lt, rt)
		}
		return BoolType, nil

	default:
		panic("analyzer: unhandled binary operator " + n.Op)
	}
}

// isZeroLiteral reports whether e is a literal integer or float zero.
// Runtime-computed zero divisors are left to the target runtime.
func isZeroLiteral(e Expr) bool {
	switch lit := e.(type) {
	case *IntLit:
		return lit.Value == 0
	case *FloatLit:
		return lit.Value == 0
	default:
		return false
	}
}

func (a *Analyzer) checkListLit(n *ListLit, want *Type) (*Type, error) {
	if len(n.Elems) == 0 {
		if want != nil && want.Kind == TypeList {
			return want, nil
		}
		return nil, semanticErrorf(ErrEmptyLiteral, n.Span(),
			"cannot determine the element type of an empty list")
	}
	var elemWant *Type
	if want != nil && want.Kind == TypeList {
		elemWant = want.Elem
	}
	first, err := a.checkExpr(n.Elems[0], elemWant)
	if err != nil {
		return nil, err
	}
	for _, elem := range n.Elems[1:] {
		t, err := a.checkExpr(elem, first)
		if err != nil {
			return nil, err
		}
		if !TypesEqual(t, first) {
			return nil, semanticErrorf(ErrListElementType, elem.Span(),
				"list element has type %s, expected %s", t, first)
		}
	}
	return ListOf(first), nil
}

func (a *Analyzer) checkDictLit(n *DictLit, want *Type) (*Type, error) {
	if len(n.Entries) == 0 {
		if want != nil && want.Kind == TypeDict {
			return want, nil
		}
		return nil, semanticErrorf(ErrEmptyLiteral, n.Span(),
			"cannot determine the key and value types of an empty dict")
	}
	var keyWant, valWant *Type
	if want != nil && want.Kind == TypeDict {
		keyWant, valWant = want.Key, want.Elem
	}

	keyType, err := a.checkExpr(n.Entries[0].Key, keyWant)
	if err != nil {
		return nil, err
	}
	if !IsHashable(keyType) {
		return nil, semanticErrorf(ErrUnhashableKey, n.Entries[0].Key.Span(),
			"%s cannot be used as a dict key", keyType)
	}
	valType, err := a.checkExpr(n.Entries[0].Value, valWant)
	if err != nil {
		return nil, err
	}

	for _, entry := range n.Entries[1:] {
		kt, err := a.checkExpr(entry.Key, keyType)
		if err != nil {
			return nil, err
		}
		if !TypesEqual(kt, keyType) {
			return nil, semanticErrorf(ErrDictKeyType, entry.Key.Span(),
				"dict key has type %s, expected %s", kt, keyType)
		}
		vt, err := a.checkExpr(entry.Value, valType)
		if err != nil {
			return nil, err
		}
		if !TypesEqual(vt, valType) {
			return nil, semanticErrorf(ErrDictEntryType, entry.Value.Span(),
				"dict value has type %s, expected %s", vt, valType)
		}
	}
	return DictOf(keyType, valType), nil
}

func (a *Analyzer) checkStructLit(n *StructLit) (*Type, error) {
	st, ok := a.structs[n.Name]
	if !ok {
		return nil, semanticErrorf(ErrUnknownType, n.Span(), "unknown struct type %q", n.Name)
	}
	seen := map[string]bool{}
	for _, f := range n.Fields {
		ft, ok := st.FieldType(f.Name)
		if !ok {
			return nil, semanticErrorf(ErrUnknownField, f.Span(),
				"struct %s has no field %q", st.Name, f.Name)
		}
		if seen[f.Name] {
			return nil, semanticErrorf(ErrDuplicateField, f.Span(),
				"duplicate field %q", f.Name)
		}
		seen[f.Name] = true
		vt, err := a.checkExpr(f.Value, ft)
		if err != nil {
			return nil, err
		}
		if !TypesEqual(vt, ft) {
			return nil, semanticErrorf(ErrTypeMismatch, f.Value.Span(),
				"field %q of %s has type %s, got %s", f.Name, st.Name, ft, vt)
		}
	}
	for _, field := range st.Fields {
		if !seen[field.Name] {
			return nil, semanticErrorf(ErrMissingField, n.Span(),
				"missing field %q in %s initializer", field.Name, st.Name)
		}
	}
	return st, nil
}

func (a *Analyzer) checkCall(n *CallExpr) (*Type, error) {
	name := n.Callee.Name

	if cast, ok := castTargets[name]; ok {
		if len(n.Args) != 1 {
			return nil, semanticErrorf(ErrArityMismatch, n.Span(),
				"%s() takes exactly 1 argument, got %d", name, len(n.Args))
		}
		t, err := a.checkExpr(n.Args[0], nil)
		if err != nil {
			return nil, err
		}
		for _, from := range cast.From {
			if t.Kind == from {
				return cast.Result, nil
			}
		}
		return nil, semanticErrorf(ErrInvalidCast, n.Args[0].Span(),
			"cannot cast %s to %s", t, name)
	}

	sym := a.symbols.Lookup(name)
	if sym == nil {
		if isReservedName(name) {
			return nil, semanticErrorf(ErrNamespaceValue, n.Callee.Span(),
				"namespace %q is not callable", name)
		}
		return nil, semanticErrorf(ErrUndeclared, n.Callee.Span(),
			"undeclared identifier %q", name)
	}
	if !sym.IsFunc {
		return nil, semanticErrorf(ErrNotCallable, n.Callee.Span(),
			"%q is not a function", name)
	}
	if len(n.Args) != len(sym.Params) {
		return nil, semanticErrorf(ErrArityMismatch, n.Span(),
			"%q expects %d arguments (%s), got %d", name, len(sym.Params), formatTypeList(sym.Params), len(n.Args))
	}
	for i, arg := range n.Args {
		t, err := a.checkExpr(arg, sym.Params[i])
		if err != nil {
			return nil, err
		}
		if !TypesEqual(t, sym.Params[i]) {
			return nil, semanticErrorf(ErrArgumentType, arg.Span(),
				"argument %d of %q must be %s, got %s", i+1, name, sym.Params[i], t)
		}
	}
	return sym.Type, nil
}

func (a *Analyzer) checkIndex(n *IndexExpr) (*Type, error) {
	t, err := a.checkExpr(n.Target, nil)
	if err != nil {
		return nil, err
	}
	switch t.Kind {
	case TypeList:
		it, err := a.checkExpr(n.Index, nil)
		if err != nil {
			return nil, err
		}
		if it.Kind != TypeInt {
			return nil, semanticErrorf(ErrIndexType, n.Index.Span(),
				"list index must be int, got %s", it)
		}
		return t.Elem, nil
	case TypeDict:
		it, err := a.checkExpr(n.Index, t.Key)
		if err != nil {
			return nil, err
		}
		if !TypesEqual(it, t.Key) {
			return nil, semanticErrorf(ErrDictKeyType, n.Index.Span(),
				"dict key type is %s, got %s", t.Key, it)
		}
		return t.Elem, nil
	default:
		return nil, semanticErrorf(ErrNotIndexable, n.Target.Span(), "%s is not indexable", t)
	}
}

func (a *Analyzer) checkMember(n *MemberExpr) (*Type, error) {
	if id, ok := n.Target.(*Ident); ok && a.symbols.Lookup(id.Name) == nil {
		if et, isEnum := a.enums[id.Name]; isEnum {
			if !et.HasVariant(n.Name) {
				return nil, semanticErrorf(ErrUnknownVariant, n.Span(),
					"enum %s has no variant %q", et.Name, n.Name)
			}
			return et, nil
		}
		if ns, isNS := namespaces[id.Name]; isNS {
			if !a.imports[id.Name] {
				return nil, semanticErrorf(ErrUndeclared, id.Span(),
					"namespace %q must be imported before use", id.Name)
			}
			ct, ok := ns.Consts[n.Name]
			if !ok {
				return nil, semanticErrorf(ErrUnknownField, n.Span(),
					"namespace %s has no member %q", id.Name, n.Name)
			}
			return ct, nil
		}
	}

	t, err := a.checkExpr(n.Target, nil)
	if err != nil {
		return nil, err
	}
	if t.Kind != TypeStruct {
		return nil, semanticErrorf(ErrNotAStruct, n.Target.Span(),
			"member access requires a struct, got %s", t)
	}
	ft, ok := t.FieldType(n.Name)
	if !ok {
		return nil, semanticErrorf(ErrUnknownField, n.Span(),
			"struct %s has no field %q", t.Name, n.Name)
	}
	return ft, nil
}

func (a *Analyzer) checkMethodCall(n *MethodCallExpr) (*Type, error) {
	if id, ok := n.Target.(*Ident); ok && a.symbols.Lookup(id.Name) == nil {
		if ns, isNS := namespaces[id.Name]; isNS {
			if !a.imports[id.Name] {
				return nil, semanticErrorf(ErrUndeclared, id.Span(),
					"namespace %q must be imported before use", id.Name)
			}
			sig, ok := ns.Funcs[n.Name]
			if !ok {
				return nil, semanticErrorf(ErrUnknownMethod, n.Span(),
					"namespace %s has no function %q", id.Name, n.Name)
			}
			return a.checkMethodArgs(n, id.Name, sig)
		}
		if _, isEnum := a.enums[id.Name]; isEnum {
			return nil, semanticErrorf(ErrUnknownMethod, n.Span(),
				"enum %s has no methods", id.Name)
		}
	}

	t, err := a.checkExpr(n.Target, nil)
	if err != nil {
		return nil, err
	}
	sig, ok := lookupMethod(t, n.Name)
	if !ok {
		return nil, semanticErrorf(ErrUnknownMethod, n.Span(),
			"type %s has no method %q", t, n.Name)
	}
	return a.checkMethodArgs(n, t.String(), sig)
}

func (a *Analyzer) checkMethodArgs(n *MethodCallExpr, recv string, sig MethodSig) (*Type, error) {
	if len(n.Args) != len(sig.Params) {
		return nil, semanticErrorf(ErrArityMismatch, n.Span(),
			"%s.%s expects %d arguments, got %d", recv, n.Name, len(sig.Params), len(n.Args))
	}
	for i, arg := range n.Args {
		t, err := a.checkExpr(arg, sig.Params[i])
		if err != nil {
			return nil, err
		}
		if !TypesEqual(t, sig.Params[i]) {
			return nil, semanticErrorf(ErrArgumentType, arg.Span(),
				"argument %d of %s.%s must be %s, got %s", i+1, recv, n.Name, sig.Params[i], t)
		}
	}
	return sig.Result, nil
}

// ----- Definite-return analysis -----

// blockReturns reports whether a statement sequence definitely returns: its
// last statement must definitely return. Loop bodies never count because the
// loop may execute zero times.
func blockReturns(b *Block) bool {
	if len(b.Stmts) == 0 {
		return false
	}
	return stmtReturns(b.Stmts[len(b.Stmts)-1])
}

func stmtReturns(s Stmt) bool {
	switch s := s.(type) {
	case *Return:
		return true
	case *Block:
		return blockReturns(s)
	case *If:
		return s.Else != nil && blockReturns(s.Then) && blockReturns(s.Else)
	default:
		return false
	}
}
