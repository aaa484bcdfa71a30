// Package schema builds a validated, name-resolved Schema from parsed
// type-system definitions and extensions, tracking which definition or
// extension contributed each piece for later diagnostics.
//
// The six named-type kinds share one ExtendedType struct rather than a
// per-kind Go type, so the builder can look types up by name without a
// type switch at every call site. Building runs in two stages: merge
// definitions into a single map, then resolve cross-references.
package schema

import "github.com/shyptr/gqlcore/ir"

// TypeKind identifies which of the six GraphQL named-type kinds an
// ExtendedType is.
type TypeKind int

const (
	ScalarKind TypeKind = iota
	ObjectKind
	InterfaceKind
	UnionKind
	EnumKind
	InputObjectKind
)

func (k TypeKind) String() string {
	switch k {
	case ScalarKind:
		return "scalar"
	case ObjectKind:
		return "object"
	case InterfaceKind:
		return "interface"
	case UnionKind:
		return "union"
	case EnumKind:
		return "enum"
	case InputObjectKind:
		return "input_object"
	default:
		return "unknown"
	}
}

// Origin tags where a piece of the schema came from: the base
// definition, or one of its extensions. ExtensionID is the zero value for a base definition.
type Origin struct {
	ExtensionID string
}

// FieldDef is one field of an Object or Interface type.
type FieldDef struct {
	Name        string
	Description string
	Arguments   []*InputValueDef
	Type        ir.Type
	Directives  []DirectiveApplication
	Origin      Origin
}

// InputValueDef is one argument or input-object field.
type InputValueDef struct {
	Name         string
	Description  string
	Type         ir.Type
	DefaultValue *ir.Value
	Directives   []DirectiveApplication
	Origin       Origin
}

// EnumValueDef is one member of an enum type.
type EnumValueDef struct {
	Name        string
	Description string
	Directives  []DirectiveApplication
	Origin      Origin
}

// DirectiveApplication is one `@name(args...)` use.
type DirectiveApplication struct {
	Name      string
	Arguments []Argument
}

// Argument is one `name: value` pair inside a directive application.
type Argument struct {
	Name  string
	Value ir.Value
}

// ExtendedType is the tagged union of the six named GraphQL type
// kinds, carrying every field any kind might need; accessors below
// only make sense for the kind they're named after. One Go type for
// all six keeps a Schema's Types map homogeneous.
type ExtendedType struct {
	Kind        TypeKind
	Name        string
	Description string
	Directives  []DirectiveApplication
	BuiltIn     bool
	Origin      Origin

	// Object, Interface
	Fields     []*FieldDef
	Interfaces []*ExtendedType

	// Union
	PossibleTypes []*ExtendedType

	// Enum
	EnumValues []*EnumValueDef

	// InputObject
	InputFields []*InputValueDef
}

func (t *ExtendedType) Field(name string) *FieldDef {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (t *ExtendedType) EnumValue(name string) *EnumValueDef {
	for _, v := range t.EnumValues {
		if v.Name == name {
			return v
		}
	}
	return nil
}

func (t *ExtendedType) InputField(name string) *InputValueDef {
	for _, f := range t.InputFields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// ImplementsInterface reports whether t declares the interface called
// name among its Interfaces (direct, not transitive; use
// Schema.Implementers for the transitive closure).
func (t *ExtendedType) ImplementsInterface(name string) bool {
	for _, i := range t.Interfaces {
		if i.Name == name {
			return true
		}
	}
	return false
}

// DirectiveDef is a `directive @name on LOCATIONS` declaration.
type DirectiveDef struct {
	Name        string
	Description string
	Arguments   []*InputValueDef
	Repeatable  bool
	Locations   []string
	BuiltIn     bool
}

func (d *DirectiveDef) HasLocation(loc string) bool {
	for _, l := range d.Locations {
		if l == loc {
			return true
		}
	}
	return false
}

// Schema is a fully built, name-resolved GraphQL type system: every
// named type and directive definition, keyed by name, plus the three
// (possibly absent) root operation types and a precomputed
// implementers map.
type Schema struct {
	Types      map[string]*ExtendedType
	Directives map[string]*DirectiveDef

	Query        *ExtendedType
	Mutation     *ExtendedType
	Subscription *ExtendedType

	// TypeOrder preserves declaration order for deterministic
	// iteration and introspection listing.
	TypeOrder []string

	// implementers maps an interface name to every Object/Interface
	// type that (transitively) implements it.
	implementers map[string][]*ExtendedType
}

// Implementers returns every type that implements the interface named
// ifaceName, computed once during Build and cached here.
func (s *Schema) Implementers(ifaceName string) []*ExtendedType {
	return s.implementers[ifaceName]
}

// PossibleTypes returns the concrete object types a value of abstract
// type t (an interface or a union) could actually be.
func (s *Schema) PossibleTypes(t *ExtendedType) []*ExtendedType {
	switch t.Kind {
	case UnionKind:
		return t.PossibleTypes
	case InterfaceKind:
		return s.implementers[t.Name]
	default:
		return nil
	}
}

// IsAbstractType reports whether t is an interface or union, the two
// kinds whose concrete runtime type must be resolved during execution.
func (t *ExtendedType) IsAbstractType() bool {
	return t.Kind == InterfaceKind || t.Kind == UnionKind
}

// IsCompositeType reports whether t can have a selection set: object,
// interface, or union.
func (t *ExtendedType) IsCompositeType() bool {
	return t.Kind == ObjectKind || t.Kind == InterfaceKind || t.Kind == UnionKind
}

// IsInputType reports whether t may legally appear as a variable or
// argument type: scalar, enum, or input object.
func (t *ExtendedType) IsInputType() bool {
	return t.Kind == ScalarKind || t.Kind == EnumKind || t.Kind == InputObjectKind
}

// IsLeafType reports whether t allows no sub-selection: scalar or
// enum.
func (t *ExtendedType) IsLeafType() bool {
	return t.Kind == ScalarKind || t.Kind == EnumKind
}
