// Package ast provides typed, read-only views over a cst.Node tree: one
// wrapper type per grammar production, each a thin struct around the
// underlying red node with accessor methods that navigate to the right
// children and decode token text into Go values.
//
// Every accessor reads through the lossless CST built by package
// parser instead of allocating a tree of its own: an ast.Field is not
// a copy of the parse result, it is a view over it. Every wrapper is
// safe to construct from a nil *cst.Node; the zero value reports
// itself absent via the ok bools the accessors return.
package ast

import (
	"strconv"
	"strings"

	"github.com/shyptr/gqlcore/cst"
)

// Document wraps a cst.Document node: the root of any parsed source.
type Document struct{ Node *cst.Node }

// NewDocument wraps n, which must be a cst.Document node (or nil).
func NewDocument(n *cst.Node) Document { return Document{Node: n} }

// Definitions returns every top-level definition or extension.
func (d Document) Definitions() []Definition {
	if d.Node == nil {
		return nil
	}
	var out []Definition
	for _, c := range d.Node.AnyChildNodes() {
		out = append(out, Definition{Node: c})
	}
	return out
}

// Definition is a generic view over any top-level Definition production
// (executable or type-system). Callers switch on Kind() and use the
// matching As* conversion.
type Definition struct{ Node *cst.Node }

func (d Definition) Kind() cst.Kind { return d.Node.Kind() }

func (d Definition) AsOperation() (OperationDefinition, bool) {
	if d.Node.Kind() == cst.OperationDefinition {
		return OperationDefinition{Node: d.Node}, true
	}
	return OperationDefinition{}, false
}

func (d Definition) AsFragment() (FragmentDefinition, bool) {
	if d.Node.Kind() == cst.FragmentDefinition {
		return FragmentDefinition{Node: d.Node}, true
	}
	return FragmentDefinition{}, false
}

func (d Definition) AsSchema() (SchemaDefinition, bool) {
	if d.Node.Kind() == cst.SchemaDefinition {
		return SchemaDefinition{Node: d.Node}, true
	}
	return SchemaDefinition{}, false
}

func (d Definition) AsScalarType() (ScalarTypeDefinition, bool) {
	if d.Node.Kind() == cst.ScalarTypeDefinition {
		return ScalarTypeDefinition{Node: d.Node}, true
	}
	return ScalarTypeDefinition{}, false
}

func (d Definition) AsObjectType() (ObjectTypeDefinition, bool) {
	if d.Node.Kind() == cst.ObjectTypeDefinition {
		return ObjectTypeDefinition{Node: d.Node}, true
	}
	return ObjectTypeDefinition{}, false
}

func (d Definition) AsInterfaceType() (InterfaceTypeDefinition, bool) {
	if d.Node.Kind() == cst.InterfaceTypeDefinition {
		return InterfaceTypeDefinition{Node: d.Node}, true
	}
	return InterfaceTypeDefinition{}, false
}

func (d Definition) AsUnionType() (UnionTypeDefinition, bool) {
	if d.Node.Kind() == cst.UnionTypeDefinition {
		return UnionTypeDefinition{Node: d.Node}, true
	}
	return UnionTypeDefinition{}, false
}

func (d Definition) AsEnumType() (EnumTypeDefinition, bool) {
	if d.Node.Kind() == cst.EnumTypeDefinition {
		return EnumTypeDefinition{Node: d.Node}, true
	}
	return EnumTypeDefinition{}, false
}

func (d Definition) AsInputObjectType() (InputObjectTypeDefinition, bool) {
	if d.Node.Kind() == cst.InputObjectTypeDefinition {
		return InputObjectTypeDefinition{Node: d.Node}, true
	}
	return InputObjectTypeDefinition{}, false
}

func (d Definition) AsDirectiveDefinition() (DirectiveDefinition, bool) {
	if d.Node.Kind() == cst.DirectiveDefinition {
		return DirectiveDefinition{Node: d.Node}, true
	}
	return DirectiveDefinition{}, false
}

func (d Definition) AsSchemaExtension() (SchemaExtension, bool) {
	if d.Node.Kind() == cst.SchemaExtension {
		return SchemaExtension{Node: d.Node}, true
	}
	return SchemaExtension{}, false
}

func (d Definition) AsScalarTypeExtension() (ScalarTypeExtension, bool) {
	if d.Node.Kind() == cst.ScalarTypeExtension {
		return ScalarTypeExtension{Node: d.Node}, true
	}
	return ScalarTypeExtension{}, false
}

func (d Definition) AsObjectTypeExtension() (ObjectTypeExtension, bool) {
	if d.Node.Kind() == cst.ObjectTypeExtension {
		return ObjectTypeExtension{Node: d.Node}, true
	}
	return ObjectTypeExtension{}, false
}

func (d Definition) AsInterfaceTypeExtension() (InterfaceTypeExtension, bool) {
	if d.Node.Kind() == cst.InterfaceTypeExtension {
		return InterfaceTypeExtension{Node: d.Node}, true
	}
	return InterfaceTypeExtension{}, false
}

func (d Definition) AsUnionTypeExtension() (UnionTypeExtension, bool) {
	if d.Node.Kind() == cst.UnionTypeExtension {
		return UnionTypeExtension{Node: d.Node}, true
	}
	return UnionTypeExtension{}, false
}

func (d Definition) AsEnumTypeExtension() (EnumTypeExtension, bool) {
	if d.Node.Kind() == cst.EnumTypeExtension {
		return EnumTypeExtension{Node: d.Node}, true
	}
	return EnumTypeExtension{}, false
}

func (d Definition) AsInputObjectTypeExtension() (InputObjectTypeExtension, bool) {
	if d.Node.Kind() == cst.InputObjectTypeExtension {
		return InputObjectTypeExtension{Node: d.Node}, true
	}
	return InputObjectTypeExtension{}, false
}

// Name wraps a cst.Name node, decoding its single token's text.
type Name struct{ Node *cst.Node }

func (n Name) Text() string {
	if n.Node == nil {
		return ""
	}
	for _, c := range n.Node.NonTrivia() {
		if c.Tok != nil {
			return c.Tok.Text()
		}
	}
	return ""
}

func childName(n *cst.Node) Name {
	if n == nil {
		return Name{}
	}
	return Name{Node: n.ChildNode(cst.Name)}
}

// OperationDefinition wraps a cst.OperationDefinition node, covering
// both the explicit `query { ... }` form and the shorthand `{ ... }`
// form: OperationType returns "query" for the latter.
type OperationDefinition struct{ Node *cst.Node }

func (o OperationDefinition) OperationType() string {
	for _, c := range o.Node.Children() {
		if c.Tok != nil {
			if t := c.Tok.Text(); t == "query" || t == "mutation" || t == "subscription" {
				return t
			}
		}
		if c.Node != nil {
			// First non-trivia node is either VariableDefinitions,
			// Directives, or SelectionSet: if we hit a node before
			// finding a keyword token, this is the shorthand form.
			break
		}
	}
	return "query"
}

func (o OperationDefinition) Name() (Name, bool) {
	n := childName(o.Node)
	return n, n.Node != nil
}

func (o OperationDefinition) VariableDefinitions() []VariableDefinition {
	vs := o.Node.ChildNode(cst.VariableDefinitions)
	if vs == nil {
		return nil
	}
	var out []VariableDefinition
	for _, c := range vs.ChildNodes(cst.VariableDefinition) {
		out = append(out, VariableDefinition{Node: c})
	}
	return out
}

func (o OperationDefinition) Directives() Directives {
	return Directives{Node: o.Node.ChildNode(cst.Directives)}
}

func (o OperationDefinition) SelectionSet() SelectionSet {
	return SelectionSet{Node: o.Node.ChildNode(cst.SelectionSet)}
}

// VariableDefinition wraps a cst.VariableDefinition node.
type VariableDefinition struct{ Node *cst.Node }

func (v VariableDefinition) Variable() Variable {
	return Variable{Node: v.Node.ChildNode(cst.Variable)}
}

func (v VariableDefinition) Type() Type {
	for _, c := range v.Node.AnyChildNodes() {
		switch c.Kind() {
		case cst.NamedType, cst.ListType, cst.NonNullType:
			return Type{Node: c}
		}
	}
	return Type{}
}

func (v VariableDefinition) DefaultValue() (Value, bool) {
	for _, c := range v.Node.AnyChildNodes() {
		if c.Kind() == cst.Variable {
			continue
		}
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

func (v VariableDefinition) Directives() Directives {
	return Directives{Node: v.Node.ChildNode(cst.Directives)}
}

// Variable wraps a cst.Variable node (the `$name` production).
type Variable struct{ Node *cst.Node }

func (v Variable) Name() Name { return childName(v.Node) }

// Type wraps a Named/List/NonNull type reference, exposing the same
// algebraic shape as ir.Type.
type Type struct{ Node *cst.Node }

func (t Type) IsNamed() bool   { return t.Node != nil && t.Node.Kind() == cst.NamedType }
func (t Type) IsList() bool    { return t.Node != nil && t.Node.Kind() == cst.ListType }
func (t Type) IsNonNull() bool { return t.Node != nil && t.Node.Kind() == cst.NonNullType }

func (t Type) Name() Name {
	if !t.IsNamed() {
		return Name{}
	}
	return childName(t.Node)
}

func (t Type) Inner() Type {
	for _, c := range t.Node.AnyChildNodes() {
		switch c.Kind() {
		case cst.NamedType, cst.ListType, cst.NonNullType:
			return Type{Node: c}
		}
	}
	return Type{}
}

// SelectionSet wraps a cst.SelectionSet node.
type SelectionSet struct{ Node *cst.Node }

func (s SelectionSet) Selections() []Selection {
	if s.Node == nil {
		return nil
	}
	var out []Selection
	for _, c := range s.Node.AnyChildNodes() {
		out = append(out, Selection{Node: c})
	}
	return out
}

// Selection is a generic view over Field, FragmentSpread or
// InlineFragment.
type Selection struct{ Node *cst.Node }

func (s Selection) Kind() cst.Kind { return s.Node.Kind() }

func (s Selection) AsField() (Field, bool) {
	if s.Node.Kind() == cst.Field {
		return Field{Node: s.Node}, true
	}
	return Field{}, false
}

func (s Selection) AsFragmentSpread() (FragmentSpread, bool) {
	if s.Node.Kind() == cst.FragmentSpread {
		return FragmentSpread{Node: s.Node}, true
	}
	return FragmentSpread{}, false
}

func (s Selection) AsInlineFragment() (InlineFragment, bool) {
	if s.Node.Kind() == cst.InlineFragment {
		return InlineFragment{Node: s.Node}, true
	}
	return InlineFragment{}, false
}

// Field wraps a cst.Field node.
type Field struct{ Node *cst.Node }

func (f Field) Alias() (Name, bool) {
	if a := f.Node.ChildNode(cst.Alias); a != nil {
		return childName(a), true
	}
	return Name{}, false
}

// Name returns the field's own name (distinct from its alias, if any).
func (f Field) Name() Name {
	if a := f.Node.ChildNode(cst.Alias); a != nil {
		names := a.ChildNodes(cst.Name)
		if len(names) >= 2 {
			return Name{Node: names[1]}
		}
	}
	return childName(f.Node)
}

// ResponseKey is the name under which this field's result is keyed: the
// alias when present, otherwise the field name itself.
func (f Field) ResponseKey() string {
	if alias, ok := f.Alias(); ok {
		return alias.Text()
	}
	return f.Name().Text()
}

func (f Field) Arguments() []Argument {
	args := f.Node.ChildNode(cst.Arguments)
	if args == nil {
		return nil
	}
	var out []Argument
	for _, c := range args.ChildNodes(cst.Argument) {
		out = append(out, Argument{Node: c})
	}
	return out
}

func (f Field) Directives() Directives {
	return Directives{Node: f.Node.ChildNode(cst.Directives)}
}

func (f Field) SelectionSet() (SelectionSet, bool) {
	n := f.Node.ChildNode(cst.SelectionSet)
	return SelectionSet{Node: n}, n != nil
}

// Argument wraps a cst.Argument node.
type Argument struct{ Node *cst.Node }

func (a Argument) Name() Name { return childName(a.Node) }
func (a Argument) Value() Value {
	for _, c := range a.Node.AnyChildNodes() {
		if isValueKind(c.Kind()) {
			return Value{Node: c}
		}
	}
	return Value{}
}

// FragmentSpread wraps a cst.FragmentSpread node.
type FragmentSpread struct{ Node *cst.Node }

func (f FragmentSpread) Name() Name           { return childName(f.Node) }
func (f FragmentSpread) Directives() Directives { return Directives{Node: f.Node.ChildNode(cst.Directives)} }

// InlineFragment wraps a cst.InlineFragment node.
type InlineFragment struct{ Node *cst.Node }

func (f InlineFragment) TypeCondition() (Name, bool) {
	if t := f.Node.ChildNode(cst.NamedType); t != nil {
		return childName(t), true
	}
	return Name{}, false
}

func (f InlineFragment) Directives() Directives {
	return Directives{Node: f.Node.ChildNode(cst.Directives)}
}

func (f InlineFragment) SelectionSet() SelectionSet {
	return SelectionSet{Node: f.Node.ChildNode(cst.SelectionSet)}
}

// FragmentDefinition wraps a cst.FragmentDefinition node.
type FragmentDefinition struct{ Node *cst.Node }

func (f FragmentDefinition) Name() Name { return childName(f.Node) }

func (f FragmentDefinition) TypeCondition() Name {
	return childName(f.Node.ChildNode(cst.NamedType))
}

func (f FragmentDefinition) Directives() Directives {
	return Directives{Node: f.Node.ChildNode(cst.Directives)}
}

func (f FragmentDefinition) SelectionSet() SelectionSet {
	return SelectionSet{Node: f.Node.ChildNode(cst.SelectionSet)}
}

// Directives wraps a cst.Directives node. A nil Node means "no
// directives were written"; Items returns nil in that case.
type Directives struct{ Node *cst.Node }

func (d Directives) Items() []Directive {
	if d.Node == nil {
		return nil
	}
	var out []Directive
	for _, c := range d.Node.ChildNodes(cst.Directive) {
		out = append(out, Directive{Node: c})
	}
	return out
}

// Directive wraps a cst.Directive node.
type Directive struct{ Node *cst.Node }

func (d Directive) Name() Name { return childName(d.Node) }
func (d Directive) Arguments() []Argument {
	args := d.Node.ChildNode(cst.Arguments)
	if args == nil {
		return nil
	}
	var out []Argument
	for _, c := range args.ChildNodes(cst.Argument) {
		out = append(out, Argument{Node: c})
	}
	return out
}

func isValueKind(k cst.Kind) bool {
	switch k {
	case cst.Variable, cst.IntValue, cst.FloatValue, cst.StringValue,
		cst.BooleanValue, cst.NullValue, cst.EnumValue, cst.ListValue, cst.ObjectValue:
		return true
	}
	return false
}

// Value is a generic view over any Value production.
type Value struct{ Node *cst.Node }

func (v Value) Kind() cst.Kind { return v.Node.Kind() }

func (v Value) Token() string {
	for _, c := range v.Node.NonTrivia() {
		if c.Tok != nil {
			return c.Tok.Text()
		}
	}
	return ""
}

// IntValue decodes the literal's text as an int64.
func (v Value) IntValue() (int64, error) {
	return strconv.ParseInt(v.Token(), 10, 64)
}

// FloatValue decodes the literal's text as a float64.
func (v Value) FloatValue() (float64, error) {
	return strconv.ParseFloat(v.Token(), 64)
}

// BooleanValue decodes the literal's text as a bool.
func (v Value) BooleanValue() bool { return v.Token() == "true" }

// StringValue decodes the literal's text, unescaping it per the
// String/BlockString grammar.
// Block strings are additionally dedented per the GraphQL
// BlockStringValue algorithm.
func (v Value) StringValue() string {
	raw := v.Token()
	if strings.HasPrefix(raw, `"""`) {
		return dedentBlockString(strings.TrimSuffix(strings.TrimPrefix(raw, `"""`), `"""`))
	}
	return unescapeString(strings.TrimSuffix(strings.TrimPrefix(raw, `"`), `"`))
}

func (v Value) EnumValue() string { return v.Token() }

func (v Value) VariableName() Name { return childName(v.Node) }

func (v Value) ListValues() []Value {
	var out []Value
	for _, c := range v.Node.AnyChildNodes() {
		out = append(out, Value{Node: c})
	}
	return out
}

func (v Value) ObjectFields() []ObjectField {
	var out []ObjectField
	for _, c := range v.Node.ChildNodes(cst.ObjectField) {
		out = append(out, ObjectField{Node: c})
	}
	return out
}

// ObjectField wraps a cst.ObjectField node.
type ObjectField struct{ Node *cst.Node }

func (f ObjectField) Name() Name { return childName(f.Node) }
func (f ObjectField) Value() Value {
	for _, c := range f.Node.AnyChildNodes() {
		if isValueKind(c.Kind()) {
			return Value{Node: c}
		}
	}
	return Value{}
}

func unescapeString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case '/':
			b.WriteByte('/')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			if i+4 < len(s) {
				if n, err := strconv.ParseUint(s[i+1:i+5], 16, 32); err == nil {
					b.WriteRune(rune(n))
					i += 4
					continue
				}
			}
			b.WriteByte('u')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// dedentBlockString implements the GraphQL October 2021 BlockStringValue
// algorithm: strip the common leading-whitespace indent from every line
// after the first, then trim leading/trailing blank lines.
func dedentBlockString(raw string) string {
	raw = strings.ReplaceAll(raw, `\"""`, `"""`)
	lines := strings.Split(raw, "\n")
	commonIndent := -1
	for i, line := range lines {
		if i == 0 {
			continue
		}
		indent := leadingWhitespace(line)
		if indent == len(line) {
			continue // blank line doesn't count
		}
		if commonIndent == -1 || indent < commonIndent {
			commonIndent = indent
		}
	}
	if commonIndent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= commonIndent {
				lines[i] = lines[i][commonIndent:]
			} else {
				lines[i] = ""
			}
		}
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func leadingWhitespace(s string) int {
	n := 0
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}
	return n
}
