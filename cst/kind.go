package cst

import "github.com/shyptr/gqlcore/token"

// Kind tags every CST node and token. Token kinds from the token
// package are embedded directly (their values fit below nodeKindBase);
// grammar production kinds are declared here starting at nodeKindBase,
// so a single Kind value unambiguously identifies either a leaf token
// or an interior node without a wrapper type.
type Kind uint16

const nodeKindBase Kind = 1000

// TokenKind lifts a token.Kind into the CST Kind space.
func TokenKind(k token.Kind) Kind { return Kind(k) }

// AsTokenKind reports whether k is a token (leaf) kind, and if so which.
func (k Kind) AsTokenKind() (token.Kind, bool) {
	if k < nodeKindBase {
		return token.Kind(k), true
	}
	return token.Illegal, false
}

// IsNode reports whether k identifies an interior (node) kind rather
// than a leaf token kind.
func (k Kind) IsNode() bool { return k >= nodeKindBase }

// Node kinds, one per grammar production: Document, the Definition
// variants, selections, values, type references, and the type-system
// definitions and extensions.
const (
	Document Kind = nodeKindBase + iota
	Error // a recovery node wrapping one or more bumped, unrecognized tokens

	OperationDefinition
	FragmentDefinition
	VariableDefinitions
	VariableDefinition
	SelectionSet
	Field
	Alias
	Arguments
	Argument
	FragmentSpread
	InlineFragment
	Directives
	Directive

	NamedType
	ListType
	NonNullType

	IntValue
	FloatValue
	StringValue
	BooleanValue
	NullValue
	EnumValue
	ListValue
	ObjectValue
	ObjectField
	Variable

	Name

	SchemaDefinition
	SchemaExtension
	OperationTypeDefinition

	ScalarTypeDefinition
	ScalarTypeExtension

	ObjectTypeDefinition
	ObjectTypeExtension
	ImplementsInterfaces
	FieldsDefinition
	FieldDefinition

	InterfaceTypeDefinition
	InterfaceTypeExtension

	UnionTypeDefinition
	UnionTypeExtension
	UnionMemberTypes

	EnumTypeDefinition
	EnumTypeExtension
	EnumValuesDefinition
	EnumValueDefinition

	InputObjectTypeDefinition
	InputObjectTypeExtension
	InputFieldsDefinition

	InputValueDefinition
	ArgumentsDefinition

	DirectiveDefinition
	DirectiveLocations

	Description
)

var kindNames = map[Kind]string{
	Document: "Document", Error: "Error",
	OperationDefinition: "OperationDefinition", FragmentDefinition: "FragmentDefinition",
	VariableDefinitions: "VariableDefinitions", VariableDefinition: "VariableDefinition",
	SelectionSet: "SelectionSet", Field: "Field", Alias: "Alias",
	Arguments: "Arguments", Argument: "Argument",
	FragmentSpread: "FragmentSpread", InlineFragment: "InlineFragment",
	Directives: "Directives", Directive: "Directive",
	NamedType: "NamedType", ListType: "ListType", NonNullType: "NonNullType",
	IntValue: "IntValue", FloatValue: "FloatValue", StringValue: "StringValue",
	BooleanValue: "BooleanValue", NullValue: "NullValue", EnumValue: "EnumValue",
	ListValue: "ListValue", ObjectValue: "ObjectValue", ObjectField: "ObjectField",
	Variable: "Variable", Name: "Name",
	SchemaDefinition: "SchemaDefinition", SchemaExtension: "SchemaExtension",
	OperationTypeDefinition:  "OperationTypeDefinition",
	ScalarTypeDefinition:     "ScalarTypeDefinition",
	ScalarTypeExtension:      "ScalarTypeExtension",
	ObjectTypeDefinition:     "ObjectTypeDefinition",
	ObjectTypeExtension:      "ObjectTypeExtension",
	ImplementsInterfaces:     "ImplementsInterfaces",
	FieldsDefinition:         "FieldsDefinition",
	FieldDefinition:          "FieldDefinition",
	InterfaceTypeDefinition:  "InterfaceTypeDefinition",
	InterfaceTypeExtension:   "InterfaceTypeExtension",
	UnionTypeDefinition:      "UnionTypeDefinition",
	UnionTypeExtension:       "UnionTypeExtension",
	UnionMemberTypes:         "UnionMemberTypes",
	EnumTypeDefinition:       "EnumTypeDefinition",
	EnumTypeExtension:        "EnumTypeExtension",
	EnumValuesDefinition:     "EnumValuesDefinition",
	EnumValueDefinition:      "EnumValueDefinition",
	InputObjectTypeDefinition:  "InputObjectTypeDefinition",
	InputObjectTypeExtension:   "InputObjectTypeExtension",
	InputFieldsDefinition:      "InputFieldsDefinition",
	InputValueDefinition:       "InputValueDefinition",
	ArgumentsDefinition:        "ArgumentsDefinition",
	DirectiveDefinition:        "DirectiveDefinition",
	DirectiveLocations:         "DirectiveLocations",
	Description:                "Description",
}

func (k Kind) String() string {
	if tk, ok := k.AsTokenKind(); ok {
		return tk.String()
	}
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}
