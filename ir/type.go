package ir

import "fmt"

// Type is the algebraic GraphQL type-reference shape: a Named leaf, or
// a List/NonNull wrapper around another Type. One tagged union instead
// of three separate marker types, so validate and execute can switch on
// Type.Kind without type assertions.
type TypeKind int

const (
	NamedTypeKind TypeKind = iota
	ListTypeKind
	NonNullTypeKind
)

type Type struct {
	Kind TypeKind
	// Named is set when Kind == NamedTypeKind.
	Named string
	// Of is set when Kind is ListTypeKind or NonNullTypeKind.
	Of *Type
}

func Named(name string) Type      { return Type{Kind: NamedTypeKind, Named: name} }
func List(of Type) Type           { return Type{Kind: ListTypeKind, Of: &of} }
func NonNull(of Type) Type        { return Type{Kind: NonNullTypeKind, Of: &of} }
func (t Type) IsNamed() bool      { return t.Kind == NamedTypeKind }
func (t Type) IsList() bool       { return t.Kind == ListTypeKind }
func (t Type) IsNonNull() bool    { return t.Kind == NonNullTypeKind }

// InnerType strips exactly one NonNull wrapper, returning t unchanged
// otherwise.
func (t Type) InnerType() Type {
	if t.Kind == NonNullTypeKind {
		return *t.Of
	}
	return t
}

// NamedTypeName walks through List/NonNull wrappers to the leaf Named
// type's name.
func (t Type) NamedTypeName() string {
	for t.Kind != NamedTypeKind {
		t = *t.Of
	}
	return t.Named
}

func (t Type) String() string {
	switch t.Kind {
	case ListTypeKind:
		return fmt.Sprintf("[%s]", t.Of.String())
	case NonNullTypeKind:
		return fmt.Sprintf("%s!", t.Of.String())
	default:
		return t.Named
	}
}

// Equal reports structural equality between two Type references.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case NamedTypeKind:
		return t.Named == other.Named
	default:
		return t.Of.Equal(*other.Of)
	}
}

// IsSubTypeOf reports whether t can be used where expected is required,
// per the GraphQL October 2021 §3.6.1 "IsTypeSubTypeOf" algorithm: a
// NonNull type satisfies its inner type's requirement, and a List type
// satisfies another List requirement if their item types are
// compatible. This is the core of input-coercion and fragment-spread
// type-compatibility checks in package validate.
func (t Type) IsSubTypeOf(expected Type) bool {
	if t.Equal(expected) {
		return true
	}
	if expected.Kind == NonNullTypeKind {
		if t.Kind != NonNullTypeKind {
			return false
		}
		return t.Of.IsSubTypeOf(*expected.Of)
	}
	if t.Kind == NonNullTypeKind {
		return t.Of.IsSubTypeOf(expected)
	}
	if expected.Kind == ListTypeKind {
		if t.Kind != ListTypeKind {
			return false
		}
		return t.Of.IsSubTypeOf(*expected.Of)
	}
	return false
}
