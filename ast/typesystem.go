package ast

import "github.com/shyptr/gqlcore/cst"

// Description returns the leading description string attached to n, if
// any. Every type-system definition wrapper below embeds this same
// lookup rather than repeating it, since cst.Description is nested as
// the first child of each definition node (see parser.maybeParseDescription).
func description(n *cst.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	d := n.ChildNode(cst.Description)
	if d == nil {
		return "", false
	}
	v := Value{Node: d.ChildNode(cst.StringValue)}
	if v.Node == nil {
		return "", false
	}
	return v.StringValue(), true
}

// SchemaDefinition wraps a cst.SchemaDefinition node.
type SchemaDefinition struct{ Node *cst.Node }

func (s SchemaDefinition) Description() (string, bool) { return description(s.Node) }
func (s SchemaDefinition) Directives() Directives {
	return Directives{Node: s.Node.ChildNode(cst.Directives)}
}
func (s SchemaDefinition) OperationTypes() []OperationTypeDefinition {
	var out []OperationTypeDefinition
	for _, c := range s.Node.ChildNodes(cst.OperationTypeDefinition) {
		out = append(out, OperationTypeDefinition{Node: c})
	}
	return out
}

// OperationTypeDefinition wraps a cst.OperationTypeDefinition node: the
// `query: Query` style entries inside a schema block.
type OperationTypeDefinition struct{ Node *cst.Node }

func (o OperationTypeDefinition) OperationType() string {
	names := o.Node.ChildNodes(cst.Name)
	if len(names) > 0 {
		return Name{Node: names[0]}.Text()
	}
	return ""
}

func (o OperationTypeDefinition) NamedType() Name {
	nt := o.Node.ChildNode(cst.NamedType)
	return childName(nt)
}

// ScalarTypeDefinition wraps a cst.ScalarTypeDefinition node.
type ScalarTypeDefinition struct{ Node *cst.Node }

func (s ScalarTypeDefinition) Description() (string, bool) { return description(s.Node) }
func (s ScalarTypeDefinition) Name() Name                  { return childName(s.Node) }
func (s ScalarTypeDefinition) Directives() Directives {
	return Directives{Node: s.Node.ChildNode(cst.Directives)}
}

// ObjectTypeDefinition wraps a cst.ObjectTypeDefinition node.
type ObjectTypeDefinition struct{ Node *cst.Node }

func (o ObjectTypeDefinition) Description() (string, bool) { return description(o.Node) }
func (o ObjectTypeDefinition) Name() Name                  { return childName(o.Node) }
func (o ObjectTypeDefinition) Implements() []Name          { return implementsNames(o.Node) }
func (o ObjectTypeDefinition) Directives() Directives {
	return Directives{Node: o.Node.ChildNode(cst.Directives)}
}
func (o ObjectTypeDefinition) Fields() []FieldDefinition { return fieldDefs(o.Node) }

func implementsNames(n *cst.Node) []Name {
	ii := n.ChildNode(cst.ImplementsInterfaces)
	if ii == nil {
		return nil
	}
	var out []Name
	for _, c := range ii.ChildNodes(cst.NamedType) {
		out = append(out, childName(c))
	}
	return out
}

func fieldDefs(n *cst.Node) []FieldDefinition {
	fd := n.ChildNode(cst.FieldsDefinition)
	if fd == nil {
		return nil
	}
	var out []FieldDefinition
	for _, c := range fd.ChildNodes(cst.FieldDefinition) {
		out = append(out, FieldDefinition{Node: c})
	}
	return out
}

// FieldDefinition wraps a cst.FieldDefinition node (an Object or
// Interface field's declared shape, not a request-time Field).
type FieldDefinition struct{ Node *cst.Node }

func (f FieldDefinition) Description() (string, bool) { return description(f.Node) }
func (f FieldDefinition) Name() Name                  { return childName(f.Node) }
func (f FieldDefinition) Arguments() []InputValueDefinition {
	return inputValueDefs(f.Node.ChildNode(cst.ArgumentsDefinition))
}
func (f FieldDefinition) Type() Type {
	for _, c := range f.Node.AnyChildNodes() {
		switch c.Kind() {
		case cst.NamedType, cst.ListType, cst.NonNullType:
			return Type{Node: c}
		}
	}
	return Type{}
}
func (f FieldDefinition) Directives() Directives {
	return Directives{Node: f.Node.ChildNode(cst.Directives)}
}

func inputValueDefs(n *cst.Node) []InputValueDefinition {
	if n == nil {
		return nil
	}
	var out []InputValueDefinition
	for _, c := range n.ChildNodes(cst.InputValueDefinition) {
		out = append(out, InputValueDefinition{Node: c})
	}
	return out
}

// InputValueDefinition wraps a cst.InputValueDefinition node: used both
// for field arguments and input-object fields.
type InputValueDefinition struct{ Node *cst.Node }

func (i InputValueDefinition) Description() (string, bool) { return description(i.Node) }
func (i InputValueDefinition) Name() Name                  { return childName(i.Node) }
func (i InputValueDefinition) Type() Type {
	for _, c := range i.Node.AnyChildNodes() {
		switch c.Kind() {
		case cst.NamedType, cst.ListType, cst.NonNullType:
			return Type{Node: c}
		}
	}
	return Type{}
}
func (i InputValueDefinition) DefaultValue() (Value, bool) {
	for _, c := range i.Node.AnyChildNodes() {
		switch c.Kind() {
		case cst.NamedType, cst.ListType, cst.NonNullType:
			continue
		}
		if isValueKind(c.Kind()) {
			return Value{Node: c}, true
		}
	}
	return Value{}, false
}
func (i InputValueDefinition) Directives() Directives {
	return Directives{Node: i.Node.ChildNode(cst.Directives)}
}

// InterfaceTypeDefinition wraps a cst.InterfaceTypeDefinition node.
type InterfaceTypeDefinition struct{ Node *cst.Node }

func (i InterfaceTypeDefinition) Description() (string, bool) { return description(i.Node) }
func (i InterfaceTypeDefinition) Name() Name                  { return childName(i.Node) }
func (i InterfaceTypeDefinition) Implements() []Name          { return implementsNames(i.Node) }
func (i InterfaceTypeDefinition) Directives() Directives {
	return Directives{Node: i.Node.ChildNode(cst.Directives)}
}
func (i InterfaceTypeDefinition) Fields() []FieldDefinition { return fieldDefs(i.Node) }

// UnionTypeDefinition wraps a cst.UnionTypeDefinition node.
type UnionTypeDefinition struct{ Node *cst.Node }

func (u UnionTypeDefinition) Description() (string, bool) { return description(u.Node) }
func (u UnionTypeDefinition) Name() Name                  { return childName(u.Node) }
func (u UnionTypeDefinition) Directives() Directives {
	return Directives{Node: u.Node.ChildNode(cst.Directives)}
}
func (u UnionTypeDefinition) Members() []Name {
	mt := u.Node.ChildNode(cst.UnionMemberTypes)
	if mt == nil {
		return nil
	}
	var out []Name
	for _, c := range mt.ChildNodes(cst.NamedType) {
		out = append(out, childName(c))
	}
	return out
}

// EnumTypeDefinition wraps a cst.EnumTypeDefinition node.
type EnumTypeDefinition struct{ Node *cst.Node }

func (e EnumTypeDefinition) Description() (string, bool) { return description(e.Node) }
func (e EnumTypeDefinition) Name() Name                  { return childName(e.Node) }
func (e EnumTypeDefinition) Directives() Directives {
	return Directives{Node: e.Node.ChildNode(cst.Directives)}
}
func (e EnumTypeDefinition) Values() []EnumValueDefinition {
	evd := e.Node.ChildNode(cst.EnumValuesDefinition)
	if evd == nil {
		return nil
	}
	var out []EnumValueDefinition
	for _, c := range evd.ChildNodes(cst.EnumValueDefinition) {
		out = append(out, EnumValueDefinition{Node: c})
	}
	return out
}

// EnumValueDefinition wraps a cst.EnumValueDefinition node.
type EnumValueDefinition struct{ Node *cst.Node }

func (e EnumValueDefinition) Description() (string, bool) { return description(e.Node) }
func (e EnumValueDefinition) Name() Name                  { return childName(e.Node) }
func (e EnumValueDefinition) Directives() Directives {
	return Directives{Node: e.Node.ChildNode(cst.Directives)}
}

// InputObjectTypeDefinition wraps a cst.InputObjectTypeDefinition node.
type InputObjectTypeDefinition struct{ Node *cst.Node }

func (i InputObjectTypeDefinition) Description() (string, bool) { return description(i.Node) }
func (i InputObjectTypeDefinition) Name() Name                  { return childName(i.Node) }
func (i InputObjectTypeDefinition) Directives() Directives {
	return Directives{Node: i.Node.ChildNode(cst.Directives)}
}
func (i InputObjectTypeDefinition) Fields() []InputValueDefinition {
	return inputValueDefs(i.Node.ChildNode(cst.InputFieldsDefinition))
}

// DirectiveDefinition wraps a cst.DirectiveDefinition node.
type DirectiveDefinition struct{ Node *cst.Node }

func (d DirectiveDefinition) Description() (string, bool) { return description(d.Node) }
func (d DirectiveDefinition) Name() Name                  { return childName(d.Node) }
func (d DirectiveDefinition) Arguments() []InputValueDefinition {
	return inputValueDefs(d.Node.ChildNode(cst.ArgumentsDefinition))
}
func (d DirectiveDefinition) Repeatable() bool {
	for _, c := range d.Node.Children() {
		if c.Tok != nil && c.Tok.Text() == "repeatable" {
			return true
		}
	}
	return false
}
func (d DirectiveDefinition) Locations() []string {
	dl := d.Node.ChildNode(cst.DirectiveLocations)
	if dl == nil {
		return nil
	}
	var out []string
	for _, c := range dl.ChildNodes(cst.Name) {
		out = append(out, Name{Node: c}.Text())
	}
	return out
}

// Extension kinds mirror their corresponding definitions minus the
// description (extensions never carry one; GraphQL October 2021
// grammar). They're distinct wrapper types, not aliases, so a schema
// builder can tell definitions and extensions apart by Go type alone
// in addition to by cst.Kind.

type SchemaExtension struct{ Node *cst.Node }

func (s SchemaExtension) Directives() Directives {
	return Directives{Node: s.Node.ChildNode(cst.Directives)}
}
func (s SchemaExtension) OperationTypes() []OperationTypeDefinition {
	var out []OperationTypeDefinition
	for _, c := range s.Node.ChildNodes(cst.OperationTypeDefinition) {
		out = append(out, OperationTypeDefinition{Node: c})
	}
	return out
}

type ScalarTypeExtension struct{ Node *cst.Node }

func (s ScalarTypeExtension) Name() Name { return childName(s.Node) }
func (s ScalarTypeExtension) Directives() Directives {
	return Directives{Node: s.Node.ChildNode(cst.Directives)}
}

type ObjectTypeExtension struct{ Node *cst.Node }

func (o ObjectTypeExtension) Name() Name         { return childName(o.Node) }
func (o ObjectTypeExtension) Implements() []Name { return implementsNames(o.Node) }
func (o ObjectTypeExtension) Directives() Directives {
	return Directives{Node: o.Node.ChildNode(cst.Directives)}
}
func (o ObjectTypeExtension) Fields() []FieldDefinition { return fieldDefs(o.Node) }

type InterfaceTypeExtension struct{ Node *cst.Node }

func (i InterfaceTypeExtension) Name() Name         { return childName(i.Node) }
func (i InterfaceTypeExtension) Implements() []Name { return implementsNames(i.Node) }
func (i InterfaceTypeExtension) Directives() Directives {
	return Directives{Node: i.Node.ChildNode(cst.Directives)}
}
func (i InterfaceTypeExtension) Fields() []FieldDefinition { return fieldDefs(i.Node) }

type UnionTypeExtension struct{ Node *cst.Node }

func (u UnionTypeExtension) Name() Name { return childName(u.Node) }
func (u UnionTypeExtension) Directives() Directives {
	return Directives{Node: u.Node.ChildNode(cst.Directives)}
}
func (u UnionTypeExtension) Members() []Name {
	mt := u.Node.ChildNode(cst.UnionMemberTypes)
	if mt == nil {
		return nil
	}
	var out []Name
	for _, c := range mt.ChildNodes(cst.NamedType) {
		out = append(out, childName(c))
	}
	return out
}

type EnumTypeExtension struct{ Node *cst.Node }

func (e EnumTypeExtension) Name() Name { return childName(e.Node) }
func (e EnumTypeExtension) Directives() Directives {
	return Directives{Node: e.Node.ChildNode(cst.Directives)}
}
func (e EnumTypeExtension) Values() []EnumValueDefinition {
	evd := e.Node.ChildNode(cst.EnumValuesDefinition)
	if evd == nil {
		return nil
	}
	var out []EnumValueDefinition
	for _, c := range evd.ChildNodes(cst.EnumValueDefinition) {
		out = append(out, EnumValueDefinition{Node: c})
	}
	return out
}

type InputObjectTypeExtension struct{ Node *cst.Node }

func (i InputObjectTypeExtension) Name() Name { return childName(i.Node) }
func (i InputObjectTypeExtension) Directives() Directives {
	return Directives{Node: i.Node.ChildNode(cst.Directives)}
}
func (i InputObjectTypeExtension) Fields() []InputValueDefinition {
	return inputValueDefs(i.Node.ChildNode(cst.InputFieldsDefinition))
}
