package main

// MethodSig describes one built-in method: its parameter types and result
// type, already specialized to the receiver.
type MethodSig struct {
	Params []*Type
	Result *Type
}

// lookupMethod resolves a built-in method against the fixed per-type
// registry. The registry is closed: user code cannot add methods.
func lookupMethod(recv *Type, name string) (MethodSig, bool) {
	switch recv.Kind {
	case TypeList:
		switch name {
		case "len":
			return MethodSig{Result: IntType}, true
		case "push":
			return MethodSig{Params: []*Type{recv.Elem}, Result: VoidType}, true
		case "pop":
			return MethodSig{Result: recv.Elem}, true
		case "contains":
			return MethodSig{Params: []*Type{recv.Elem}, Result: BoolType}, true
		}
	case TypeDict:
		switch name {
		case "len":
			return MethodSig{Result: IntType}, true
		case "keys":
			return MethodSig{Result: ListOf(recv.Key)}, true
		case "values":
			return MethodSig{Result: ListOf(recv.Elem)}, true
		case "has":
			return MethodSig{Params: []*Type{recv.Key}, Result: BoolType}, true
		case "remove":
			return MethodSig{Params: []*Type{recv.Key}, Result: VoidType}, true
		}
	case TypeStr:
		switch name {
		case "len":
			return MethodSig{Result: IntType}, true
		case "upper":
			return MethodSig{Result: StrType}, true
		case "lower":
			return MethodSig{Result: StrType}, true
		case "contains":
			return MethodSig{Params: []*Type{StrType}, Result: BoolType}, true
		case "split":
			return MethodSig{Params: []*Type{StrType}, Result: ListOf(StrType)}, true
		}
	}
	return MethodSig{}, false
}

// namespace is one built-in static namespace reachable through an import
// declaration, e.g. `import math` then `math.sqrt(2.0)`.
type namespace struct {
	Consts map[string]*Type
	Funcs  map[string]MethodSig
}

// namespaces is the fixed set of built-in static namespaces. Their names are
// reserved: they can never be declared, shadowed, or assigned at any scope.
var namespaces = map[string]namespace{
	"math": {
		Consts: map[string]*Type{
			"pi": FloatType,
			"e":  FloatType,
		},
		Funcs: map[string]MethodSig{
			"sqrt":  {Params: []*Type{FloatType}, Result: FloatType},
			"pow":   {Params: []*Type{FloatType, FloatType}, Result: FloatType},
			"abs":   {Params: []*Type{FloatType}, Result: FloatType},
			"floor": {Params: []*Type{FloatType}, Result: IntType},
			"ceil":  {Params: []*Type{FloatType}, Result: IntType},
		},
	},
	"random": {
		Funcs: map[string]MethodSig{
			"seed":    {Params: []*Type{IntType}, Result: VoidType},
			"between": {Params: []*Type{IntType, IntType}, Result: IntType},
			"chance":  {Params: []*Type{FloatType}, Result: BoolType},
		},
	},
	"time": {
		Funcs: map[string]MethodSig{
			"now":    {Result: IntType},
			"millis": {Result: IntType},
			"sleep":  {Params: []*Type{IntType}, Result: VoidType},
		},
	},
}

// isReservedName reports whether name denotes a built-in namespace.
func isReservedName(name string) bool {
	_, ok := namespaces[name]
	return ok
}

// castTargets maps the primitive-keyword call targets (`int(x)`, `str(x)`,
// ...) to the source types each cast accepts.
var castTargets = map[string]struct {
	Result *Type
	From   []TypeKind
}{
	"int":   {IntType, []TypeKind{TypeInt, TypeFloat, TypeStr, TypeBool}},
	"float": {FloatType, []TypeKind{TypeInt, TypeFloat, TypeStr}},
	"str":   {StrType, []TypeKind{TypeInt, TypeFloat, TypeBool, TypeStr}},
	"bool":  {BoolType, []TypeKind{TypeBool, TypeInt, TypeStr}},
}
