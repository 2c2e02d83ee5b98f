package compiler

// Kind is the closed set of type tags in the C-- type system.
type Kind int

const (
	KindInt Kind = iota
	KindBool
	KindVoid
	KindString
	KindFn
	KindStruct
	KindStructDef
	KindError
)

// Type is a value of the closed type-tag variant described in spec §3.
// A Struct type additionally carries the declared struct name; two Struct
// types are equal iff their names are equal.
type Type struct {
	Kind       Kind
	StructName string
}

var (
	IntType       = Type{Kind: KindInt}
	BoolType      = Type{Kind: KindBool}
	VoidType      = Type{Kind: KindVoid}
	StringType    = Type{Kind: KindString}
	FnType        = Type{Kind: KindFn}
	StructDefType = Type{Kind: KindStructDef}
	ErrorType     = Type{Kind: KindError}
)

// StructType builds the Struct(name) type for a declared struct name.
func StructType(name string) Type {
	return Type{Kind: KindStruct, StructName: name}
}

// Equal implements the type-equality rule of spec §3: Struct types compare
// by declared name, Error is never equal to anything (including another
// Error) so callers must special-case Error absorption themselves rather
// than relying on Equal to signal it.
func (t Type) Equal(o Type) bool {
	if t.Kind == KindError || o.Kind == KindError {
		return false
	}
	if t.Kind != o.Kind {
		return false
	}
	if t.Kind == KindStruct {
		return t.StructName == o.StructName
	}
	return true
}

func (t Type) IsError() bool     { return t.Kind == KindError }
func (t Type) IsFn() bool        { return t.Kind == KindFn }
func (t Type) IsVoid() bool      { return t.Kind == KindVoid }
func (t Type) IsStruct() bool    { return t.Kind == KindStruct }
func (t Type) IsStructDef() bool { return t.Kind == KindStructDef }
func (t Type) IsInt() bool       { return t.Kind == KindInt }
func (t Type) IsBool() bool      { return t.Kind == KindBool }

func (t Type) String() string {
	switch t.Kind {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindVoid:
		return "void"
	case KindString:
		return "string"
	case KindFn:
		return "function"
	case KindStruct:
		return "struct " + t.StructName
	case KindStructDef:
		return "struct type"
	case KindError:
		return "error"
	default:
		return "?"
	}
}
