package schema

import "github.com/shyptr/gqlcore/ir"

// newBuiltinSchema returns a Schema seeded with the five built-in
// scalars, the built-in directives, and the introspection meta-types
// every GraphQL schema implicitly carries. They are registered as
// ordinary schema entries marked built-in rather than special-cased
// throughout validation and introspection.
func newBuiltinSchema() *Schema {
	s := &Schema{
		Types:      map[string]*ExtendedType{},
		Directives: map[string]*DirectiveDef{},
	}

	for _, name := range []string{"Int", "Float", "String", "Boolean", "ID"} {
		s.Types[name] = &ExtendedType{Kind: ScalarKind, Name: name, BuiltIn: true}
		s.TypeOrder = append(s.TypeOrder, name)
	}

	deprecatedArgs := []*InputValueDef{
		{Name: "reason", Type: ir.Named("String"), DefaultValue: strPtr(ir.StringValue("No longer supported"))},
	}
	includeSkipArgs := []*InputValueDef{
		{Name: "if", Type: ir.NonNull(ir.Named("Boolean"))},
	}
	s.Directives["skip"] = &DirectiveDef{
		Name: "skip", Arguments: includeSkipArgs,
		Locations: []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"}, BuiltIn: true,
	}
	s.Directives["include"] = &DirectiveDef{
		Name: "include", Arguments: includeSkipArgs,
		Locations: []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"}, BuiltIn: true,
	}
	s.Directives["deprecated"] = &DirectiveDef{
		Name: "deprecated", Arguments: deprecatedArgs,
		Locations: []string{"FIELD_DEFINITION", "ARGUMENT_DEFINITION", "ENUM_VALUE", "INPUT_FIELD_DEFINITION"},
		BuiltIn:   true,
	}
	s.Directives["specifiedBy"] = &DirectiveDef{
		Name:      "specifiedBy",
		Arguments: []*InputValueDef{{Name: "url", Type: ir.NonNull(ir.Named("String"))}},
		Locations: []string{"SCALAR"},
		BuiltIn:   true,
	}

	addIntrospectionTypes(s)
	return s
}

func strPtr(v ir.Value) *ir.Value { return &v }

// addIntrospectionTypes registers __Schema, __Type, __Field,
// __InputValue, __EnumValue, __TypeKind, __Directive and
// __DirectiveLocation, matching the October 2021 introspection schema.
// The three meta-fields (__schema, __type, __typename) consumers expect
// to find on the root/any type are synthesized by package executable's
// builder and answered by package introspect rather than stored here,
// since they're resolvable
// without being real SDL-declared fields.
func addIntrospectionTypes(s *Schema) {
	str := ir.Named("String")
	nonNullStr := ir.NonNull(str)
	boolean := ir.Named("Boolean")

	typeKind := &ExtendedType{Kind: EnumKind, Name: "__TypeKind", BuiltIn: true}
	for _, v := range []string{"SCALAR", "OBJECT", "INTERFACE", "UNION", "ENUM", "INPUT_OBJECT", "LIST", "NON_NULL"} {
		typeKind.EnumValues = append(typeKind.EnumValues, &EnumValueDef{Name: v})
	}
	register(s, typeKind)

	directiveLocation := &ExtendedType{Kind: EnumKind, Name: "__DirectiveLocation", BuiltIn: true}
	for _, v := range []string{
		"QUERY", "MUTATION", "SUBSCRIPTION", "FIELD", "FRAGMENT_DEFINITION", "FRAGMENT_SPREAD", "INLINE_FRAGMENT",
		"VARIABLE_DEFINITION", "SCHEMA", "SCALAR", "OBJECT", "FIELD_DEFINITION", "ARGUMENT_DEFINITION",
		"INTERFACE", "UNION", "ENUM", "ENUM_VALUE", "INPUT_OBJECT", "INPUT_FIELD_DEFINITION",
	} {
		directiveLocation.EnumValues = append(directiveLocation.EnumValues, &EnumValueDef{Name: v})
	}
	register(s, directiveLocation)

	inputValue := &ExtendedType{Kind: ObjectKind, Name: "__InputValue", BuiltIn: true}
	register(s, inputValue)

	field := &ExtendedType{Kind: ObjectKind, Name: "__Field", BuiltIn: true}
	register(s, field)

	enumValue := &ExtendedType{Kind: ObjectKind, Name: "__EnumValue", BuiltIn: true}
	enumValue.Fields = []*FieldDef{
		{Name: "name", Type: nonNullStr},
		{Name: "description", Type: str},
		{Name: "isDeprecated", Type: ir.NonNull(boolean)},
		{Name: "deprecationReason", Type: str},
	}
	register(s, enumValue)

	typ := &ExtendedType{Kind: ObjectKind, Name: "__Type", BuiltIn: true}
	register(s, typ)

	listOfNonNullInputValue := ir.NonNull(ir.List(ir.NonNull(ir.Named("__InputValue"))))
	inputValue.Fields = []*FieldDef{
		{Name: "name", Type: nonNullStr},
		{Name: "description", Type: str},
		{Name: "type", Type: ir.NonNull(ir.Named("__Type"))},
		{Name: "defaultValue", Type: str},
	}
	field.Fields = []*FieldDef{
		{Name: "name", Type: nonNullStr},
		{Name: "description", Type: str},
		{Name: "args", Type: listOfNonNullInputValue},
		{Name: "type", Type: ir.NonNull(ir.Named("__Type"))},
		{Name: "isDeprecated", Type: ir.NonNull(boolean)},
		{Name: "deprecationReason", Type: str},
	}
	typ.Fields = []*FieldDef{
		{Name: "kind", Type: ir.NonNull(ir.Named("__TypeKind"))},
		{Name: "name", Type: str},
		{Name: "description", Type: str},
		{Name: "fields", Type: ir.List(ir.NonNull(ir.Named("__Field")))},
		{Name: "interfaces", Type: ir.List(ir.NonNull(ir.Named("__Type")))},
		{Name: "possibleTypes", Type: ir.List(ir.NonNull(ir.Named("__Type")))},
		{Name: "enumValues", Type: ir.List(ir.NonNull(ir.Named("__EnumValue")))},
		{Name: "inputFields", Type: listOfNonNullInputValue},
		{Name: "ofType", Type: ir.Named("__Type")},
	}

	directive := &ExtendedType{Kind: ObjectKind, Name: "__Directive", BuiltIn: true}
	directive.Fields = []*FieldDef{
		{Name: "name", Type: nonNullStr},
		{Name: "description", Type: str},
		{Name: "locations", Type: ir.NonNull(ir.List(ir.NonNull(ir.Named("__DirectiveLocation"))))},
		{Name: "args", Type: listOfNonNullInputValue},
		{Name: "isRepeatable", Type: ir.NonNull(boolean)},
	}
	register(s, directive)

	sch := &ExtendedType{Kind: ObjectKind, Name: "__Schema", BuiltIn: true}
	sch.Fields = []*FieldDef{
		{Name: "description", Type: str},
		{Name: "types", Type: ir.NonNull(ir.List(ir.NonNull(ir.Named("__Type"))))},
		{Name: "queryType", Type: ir.NonNull(ir.Named("__Type"))},
		{Name: "mutationType", Type: ir.Named("__Type")},
		{Name: "subscriptionType", Type: ir.Named("__Type")},
		{Name: "directives", Type: ir.NonNull(ir.List(ir.NonNull(ir.Named("__Directive"))))},
	}
	register(s, sch)
}

func register(s *Schema, t *ExtendedType) {
	s.Types[t.Name] = t
	s.TypeOrder = append(s.TypeOrder, t.Name)
}
