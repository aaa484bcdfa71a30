// Package executable resolves a parsed executable GraphQL document
// (operations and fragments) against a built schema.Schema, producing
// name-resolved Operation/Fragment/Selection values ready for
// validation or execution.
package executable

import (
	"github.com/shyptr/gqlcore/ir"
	"github.com/shyptr/gqlcore/schema"
)

// OperationType mirrors the three GraphQL operation kinds.
type OperationType int

const (
	Query OperationType = iota
	Mutation
	Subscription
)

func (t OperationType) String() string {
	switch t {
	case Mutation:
		return "mutation"
	case Subscription:
		return "subscription"
	default:
		return "query"
	}
}

// Document is a resolved executable document: every operation and
// fragment it defines, plus the schema it was resolved against.
type Document struct {
	Schema     *schema.Schema
	Operations []*Operation
	Fragments  map[string]*Fragment
}

// Operation is a resolved OperationDefinition.
type Operation struct {
	Type                OperationType
	Name                ir.Name // zero Name for the anonymous/shorthand form
	VariableDefinitions []*VariableDefinition
	Directives          []schema.DirectiveApplication
	SelectionSet         SelectionSet
	RootType            *schema.ExtendedType
}

// VariableDefinition is one `$name: Type = default` declaration.
type VariableDefinition struct {
	Name         ir.Name
	Type         ir.Type
	DefaultValue *ir.Value
	Directives   []schema.DirectiveApplication
}

// Fragment is a resolved FragmentDefinition.
type Fragment struct {
	Name          ir.Name
	TypeCondition *schema.ExtendedType
	Directives    []schema.DirectiveApplication
	SelectionSet  SelectionSet
}

// SelectionSet is an ordered list of Selections.
type SelectionSet struct {
	Selections []Selection
}

// SelectionKind tags which variant a Selection is.
type SelectionKind int

const (
	FieldSelection SelectionKind = iota
	FragmentSpreadSelection
	InlineFragmentSelection
)

// Selection is a tagged union over Field/FragmentSpread/InlineFragment,
// mirroring ir.Value's shape so validate and an eventual executor can
// switch on Kind without type assertions.
type Selection struct {
	Kind SelectionKind

	Field *Field // FieldSelection

	FragmentName ir.Name // FragmentSpreadSelection

	TypeCondition *schema.ExtendedType // InlineFragmentSelection (nil: no condition)
	Directives    []schema.DirectiveApplication
	SelectionSet  SelectionSet // FragmentSpreadSelection doesn't use this directly; InlineFragmentSelection and Field do
}

// Field is a resolved field selection.
type Field struct {
	Alias       ir.Name // zero Name when no alias was written
	Name        ir.Name
	Arguments   []schema.Argument
	Directives  []schema.DirectiveApplication
	FieldDef    *schema.FieldDef // nil for an unknown field name (validate reports this)
	ParentType  *schema.ExtendedType
	SelectionSet SelectionSet
}

// ResponseKey is the key this field's result is recorded under: its
// alias if present, otherwise its name.
func (f *Field) ResponseKey() string {
	if f.Alias.Text != "" {
		return f.Alias.Text
	}
	return f.Name.Text
}
