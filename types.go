package main

import "strings"

// TypeKind discriminates the closed set of Tern value types.
type TypeKind string

const (
	TypeInt    TypeKind = "int"
	TypeFloat  TypeKind = "float"
	TypeBool   TypeKind = "bool"
	TypeStr    TypeKind = "str"
	TypeVoid   TypeKind = "void" // return-type position only
	TypeList   TypeKind = "list"
	TypeDict   TypeKind = "dict"
	TypeStruct TypeKind = "struct"
	TypeEnum   TypeKind = "enum"
)

// StructField is one ordered field of a struct type.
type StructField struct {
	Name string
	Type *Type
}

// Type describes a Tern value type. Which fields are meaningful depends on
// Kind: Elem for lists (and the value type of dicts), Key for dict keys,
// Name/Fields for structs, Name/Variants for enums.
type Type struct {
	Kind     TypeKind
	Elem     *Type
	Key      *Type
	Name     string
	Fields   []StructField
	Variants []string
}

// Primitive type singletons. Compound types are allocated per use;
// TypesEqual compares them structurally, so identity never matters.
var (
	IntType   = &Type{Kind: TypeInt}
	FloatType = &Type{Kind: TypeFloat}
	BoolType  = &Type{Kind: TypeBool}
	StrType   = &Type{Kind: TypeStr}
	VoidType  = &Type{Kind: TypeVoid}
)

// TypesEqual reports whether two types are the same: structurally for lists
// and dicts (element types must match exactly, no numeric widening),
// nominally for structs and enums (declared name only).
func TypesEqual(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case TypeList:
		return TypesEqual(a.Elem, b.Elem)
	case TypeDict:
		return TypesEqual(a.Key, b.Key) && TypesEqual(a.Elem, b.Elem)
	case TypeStruct, TypeEnum:
		return a.Name == b.Name
	default:
		return true
	}
}

// IsNumeric reports whether t is int or float.
func IsNumeric(t *Type) bool {
	return t != nil && (t.Kind == TypeInt || t.Kind == TypeFloat)
}

// IsHashable reports whether t may be used as a dict key.
func IsHashable(t *Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case TypeInt, TypeFloat, TypeBool, TypeStr:
		return true
	default:
		return false
	}
}

func ListOf(elem *Type) *Type {
	return &Type{Kind: TypeList, Elem: elem}
}

func DictOf(key, value *Type) *Type {
	return &Type{Kind: TypeDict, Key: key, Elem: value}
}

// String renders the type the way it is written in source: "int", "[str]",
// "{str: int}", or the declared name for structs and enums.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case TypeList:
		return "[" + t.Elem.String() + "]"
	case TypeDict:
		return "{" + t.Key.String() + ": " + t.Elem.String() + "}"
	case TypeStruct, TypeEnum:
		return t.Name
	default:
		return string(t.Kind)
	}
}

// FieldType returns the type of the named struct field.
func (t *Type) FieldType(name string) (*Type, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// HasVariant reports whether the enum declares the named variant.
func (t *Type) HasVariant(name string) bool {
	for _, v := range t.Variants {
		if v == name {
			return true
		}
	}
	return false
}

// formatTypeList renders parameter type lists for diagnostics.
func formatTypeList(types []*Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
