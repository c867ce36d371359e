package ast

import (
	"fmt"
	"strings"
)

// Type is an optional annotation descriptor. The core never rejects a
// program based on types; an absent annotation is UnknownType.
type Type interface {
	typeNode()
	String() string
}

type PrimitiveKind int

const (
	KindInteger PrimitiveKind = iota
	KindFloat
	KindString
	KindBoolean
	KindVoid
	KindUnknown
)

// Primitive is one of the built-in scalar types.
type Primitive struct {
	Kind PrimitiveKind
}

func (p *Primitive) typeNode() {}
func (p *Primitive) String() string {
	switch p.Kind {
	case KindInteger:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBoolean:
		return "bool"
	case KindVoid:
		return "void"
	default:
		return "unknown"
	}
}

// Shared descriptors for the primitive types.
var (
	IntegerType = &Primitive{Kind: KindInteger}
	FloatType   = &Primitive{Kind: KindFloat}
	StringType  = &Primitive{Kind: KindString}
	BooleanType = &Primitive{Kind: KindBoolean}
	VoidType    = &Primitive{Kind: KindVoid}
	UnknownType = &Primitive{Kind: KindUnknown}
)

// ReferenceType is &T or &mut T.
type ReferenceType struct {
	Inner   Type
	Mutable bool
}

func (r *ReferenceType) typeNode() {}
func (r *ReferenceType) String() string {
	if r.Mutable {
		return "&mut " + r.Inner.String()
	}
	return "&" + r.Inner.String()
}

// PointerType is *T.
type PointerType struct {
	Inner Type
}

func (p *PointerType) typeNode()      {}
func (p *PointerType) String() string { return "*" + p.Inner.String() }

// ArrayType is a fixed-size array [T; N].
type ArrayType struct {
	Elem Type
	Size int
}

func (a *ArrayType) typeNode()      {}
func (a *ArrayType) String() string { return fmt.Sprintf("[%s; %d]", a.Elem.String(), a.Size) }

// DynamicArrayType is a growable array of T.
type DynamicArrayType struct {
	Elem Type
}

func (d *DynamicArrayType) typeNode()      {}
func (d *DynamicArrayType) String() string { return "[" + d.Elem.String() + "]" }

// SliceType is a view into an array of T.
type SliceType struct {
	Elem Type
}

func (s *SliceType) typeNode()      {}
func (s *SliceType) String() string { return "&[" + s.Elem.String() + "]" }

// FunctionType is a function signature.
type FunctionType struct {
	Params []Type
	Return Type
}

func (f *FunctionType) typeNode() {}
func (f *FunctionType) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("fn(%s) -> %s", strings.Join(params, ", "), f.Return.String())
}

// StructType is a named struct with ordered fields.
type StructType struct {
	Name   string
	Fields []struct {
		Name string
		Type Type
	}
}

func (s *StructType) typeNode()      {}
func (s *StructType) String() string { return "struct " + s.Name }

// EnumVariantDef is one variant of an enum type, with optional payloads.
type EnumVariantDef struct {
	Name  string
	Types []Type
}

// EnumType is a named enum with ordered variants.
type EnumType struct {
	Name     string
	Variants []EnumVariantDef
}

func (e *EnumType) typeNode()      {}
func (e *EnumType) String() string { return "enum " + e.Name }

// GenericType is a generic placeholder such as T.
type GenericType struct {
	Name string
}

func (g *GenericType) typeNode()      {}
func (g *GenericType) String() string { return g.Name }

// LookupPrimitive maps a type annotation identifier to its descriptor.
// Unrecognized names degrade to UnknownType; the core never rejects a
// program for naming a type it does not know.
func LookupPrimitive(name string) Type {
	switch name {
	case "i32", "int":
		return IntegerType
	case "f64", "float":
		return FloatType
	case "bool", "boolean":
		return BooleanType
	case "str", "string":
		return StringType
	case "void":
		return VoidType
	default:
		return UnknownType
	}
}
