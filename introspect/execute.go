package introspect

import (
	"fmt"

	"github.com/shyptr/gqlcore/executable"
	"github.com/shyptr/gqlcore/ir"
	"github.com/shyptr/gqlcore/schema"
)

// GraphQLError is the wire shape of one execution error.
type GraphQLError struct {
	Message    string                 `json:"message"`
	Locations  []Location             `json:"locations,omitempty"`
	Path       []interface{}          `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Response is the introspection executor's output: data
// is omitted entirely (not merely null) on a request error.
type Response struct {
	Errors     []GraphQLError
	Data       interface{}
	HasData    bool
	Extensions map[string]interface{}
}

// node is the concrete object resolver: a typename plus whatever
// schema value backs it, letting resolveField dispatch by typename
// without a separate interface per introspection type.
type node struct {
	typename string
	value    interface{}
}

// Execute answers op (assumed already validated and depth-checked)
// against sch, resolving only the introspection subset of its root
// selection set; any other root field is silently skipped, and the
// caller is expected to merge a separate partial response for it.
func Execute(sch *schema.Schema, op *executable.Operation, variables map[string]ir.Value) *Response {
	if op.Type != executable.Query {
		return &Response{Errors: []GraphQLError{{Message: "introspection may only be executed for query operations"}}}
	}
	if sch.Query == nil {
		return &Response{Errors: []GraphQLError{{Message: "schema has no Query root operation type"}}}
	}
	if err := CheckDepth(op); err != nil {
		return &Response{Errors: []GraphQLError{{Message: err.Error()}}}
	}

	data := map[string]interface{}{}
	var errs []GraphQLError

	for _, sel := range op.SelectionSet.Selections {
		if sel.Kind != executable.FieldSelection || sel.Field == nil {
			continue
		}
		f := sel.Field
		switch f.Name.Text {
		case "__typename":
			data[f.ResponseKey()] = sch.Query.Name
		case "__schema":
			v, fieldErrs := resolveSelectionOnValue(sch, variables, node{typename: "__Schema", value: sch}, f.SelectionSet)
			data[f.ResponseKey()] = v
			errs = append(errs, fieldErrs...)
		case "__type":
			name, _ := stringArg(f.Arguments, "name", variables)
			t, ok := sch.Types[name]
			if !ok {
				data[f.ResponseKey()] = nil
				continue
			}
			v, fieldErrs := resolveSelectionOnValue(sch, variables, node{typename: "__Type", value: typeRef{named: t.Name}}, f.SelectionSet)
			data[f.ResponseKey()] = v
			errs = append(errs, fieldErrs...)
		default:
			// Non-introspection root field: left for the caller to
			// merge from a separate execution path.
		}
	}

	return &Response{Errors: errs, Data: data, HasData: true}
}

func stringArg(args []schema.Argument, name string, variables map[string]ir.Value) (string, bool) {
	for _, a := range args {
		if a.Name != name {
			continue
		}
		v := a.Value
		if v.Kind == ir.VariableKind {
			v = variables[v.VarName.Text]
		}
		if v.Kind == ir.StringKind {
			return v.Str, true
		}
	}
	return "", false
}

// resolveSelectionOnValue resolves ss against n, returning a
// JSON-shaped map plus any field errors encountered. Field errors
// propagate to the nearest nullable ancestor, which in this flat
// introspection subset means the immediate field slot becomes null
// while the error is still recorded.
func resolveSelectionOnValue(sch *schema.Schema, variables map[string]ir.Value, n node, ss executable.SelectionSet) (map[string]interface{}, []GraphQLError) {
	out := map[string]interface{}{}
	var errs []GraphQLError
	for _, sel := range ss.Selections {
		if sel.Kind != executable.FieldSelection || sel.Field == nil {
			continue
		}
		f := sel.Field
		if f.Name.Text == "__typename" {
			out[f.ResponseKey()] = n.typename
			continue
		}
		result, err := resolveField(sch, variables, n, f)
		if err != nil {
			errs = append(errs, GraphQLError{Message: err.Error()})
			out[f.ResponseKey()] = nil
			continue
		}
		out[f.ResponseKey()] = result
	}
	return out, errs
}

// typeRef lowers an ir.Type-shaped reference into something __Type's
// resolvers can walk uniformly: a bare name, or a list/non-null
// wrapper around another typeRef, mirroring ir.Type's own recursion.
type typeRef struct {
	named   string
	list    *typeRef
	nonNull *typeRef
}

func typeRefFromIR(t ir.Type) typeRef {
	switch {
	case t.IsList():
		inner := typeRefFromIR(*t.Of)
		return typeRef{list: &inner}
	case t.IsNonNull():
		inner := typeRefFromIR(*t.Of)
		return typeRef{nonNull: &inner}
	default:
		return typeRef{named: t.Named}
	}
}

func resolveField(sch *schema.Schema, variables map[string]ir.Value, n node, f *executable.Field) (interface{}, error) {
	name := f.Name.Text
	switch n.typename {
	case "__Schema":
		return resolveSchemaField(sch, variables, name, f)
	case "__Type":
		return resolveTypeField(sch, variables, n.value.(typeRef), name, f)
	case "__Field":
		return resolveFieldDefField(sch, variables, n.value.(*schema.FieldDef), name, f)
	case "__InputValue":
		return resolveInputValueField(sch, variables, n.value.(*schema.InputValueDef), name, f)
	case "__EnumValue":
		return resolveEnumValueField(n.value.(*schema.EnumValueDef), name)
	case "__Directive":
		return resolveDirectiveField(sch, variables, n.value.(*schema.DirectiveDef), name, f)
	default:
		return nil, fmt.Errorf("unsupported introspection type %q", n.typename)
	}
}

func resolveSchemaField(sch *schema.Schema, variables map[string]ir.Value, name string, f *executable.Field) (interface{}, error) {
	switch name {
	case "description":
		return nil, nil
	case "types":
		var out []interface{}
		for _, tn := range sch.TypeOrder {
			v, errs := resolveSelectionOnValue(sch, variables, node{typename: "__Type", value: typeRef{named: tn}}, f.SelectionSet)
			if len(errs) > 0 {
				return nil, fmt.Errorf("%s", errs[0].Message)
			}
			out = append(out, v)
		}
		return out, nil
	case "queryType":
		if sch.Query == nil {
			return nil, fmt.Errorf("schema has no Query root type")
		}
		v, _ := resolveSelectionOnValue(sch, variables, node{typename: "__Type", value: typeRef{named: sch.Query.Name}}, f.SelectionSet)
		return v, nil
	case "mutationType":
		if sch.Mutation == nil {
			return nil, nil
		}
		v, _ := resolveSelectionOnValue(sch, variables, node{typename: "__Type", value: typeRef{named: sch.Mutation.Name}}, f.SelectionSet)
		return v, nil
	case "subscriptionType":
		if sch.Subscription == nil {
			return nil, nil
		}
		v, _ := resolveSelectionOnValue(sch, variables, node{typename: "__Type", value: typeRef{named: sch.Subscription.Name}}, f.SelectionSet)
		return v, nil
	case "directives":
		var out []interface{}
		for _, d := range sch.Directives {
			v, _ := resolveSelectionOnValue(sch, variables, node{typename: "__Directive", value: d}, f.SelectionSet)
			out = append(out, v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown field %q on __Schema", name)
	}
}

func resolveTypeField(sch *schema.Schema, variables map[string]ir.Value, t typeRef, name string, f *executable.Field) (interface{}, error) {
	if t.list != nil {
		switch name {
		case "kind":
			return "LIST", nil
		case "ofType":
			v, _ := resolveSelectionOnValue(sch, variables, node{typename: "__Type", value: *t.list}, f.SelectionSet)
			return v, nil
		case "name", "description":
			return nil, nil
		default:
			return nil, nil
		}
	}
	if t.nonNull != nil {
		switch name {
		case "kind":
			return "NON_NULL", nil
		case "ofType":
			v, _ := resolveSelectionOnValue(sch, variables, node{typename: "__Type", value: *t.nonNull}, f.SelectionSet)
			return v, nil
		case "name", "description":
			return nil, nil
		default:
			return nil, nil
		}
	}

	target, ok := sch.Types[t.named]
	if !ok {
		return nil, fmt.Errorf("undefined type %q", t.named)
	}
	switch name {
	case "kind":
		return introspectionKind(target.Kind), nil
	case "name":
		return target.Name, nil
	case "description":
		if target.Description == "" {
			return nil, nil
		}
		return target.Description, nil
	case "fields":
		if target.Kind != schema.ObjectKind && target.Kind != schema.InterfaceKind {
			return nil, nil
		}
		var out []interface{}
		for _, fd := range target.Fields {
			v, _ := resolveSelectionOnValue(sch, variables, node{typename: "__Field", value: fd}, f.SelectionSet)
			out = append(out, v)
		}
		return out, nil
	case "interfaces":
		if target.Kind != schema.ObjectKind && target.Kind != schema.InterfaceKind {
			return nil, nil
		}
		var out []interface{}
		for _, i := range target.Interfaces {
			v, _ := resolveSelectionOnValue(sch, variables, node{typename: "__Type", value: typeRef{named: i.Name}}, f.SelectionSet)
			out = append(out, v)
		}
		return out, nil
	case "possibleTypes":
		if !target.IsAbstractType() {
			return nil, nil
		}
		var out []interface{}
		for _, p := range sch.PossibleTypes(target) {
			v, _ := resolveSelectionOnValue(sch, variables, node{typename: "__Type", value: typeRef{named: p.Name}}, f.SelectionSet)
			out = append(out, v)
		}
		return out, nil
	case "enumValues":
		if target.Kind != schema.EnumKind {
			return nil, nil
		}
		var out []interface{}
		for _, ev := range target.EnumValues {
			v, _ := resolveSelectionOnValue(sch, variables, node{typename: "__EnumValue", value: ev}, f.SelectionSet)
			out = append(out, v)
		}
		return out, nil
	case "inputFields":
		if target.Kind != schema.InputObjectKind {
			return nil, nil
		}
		var out []interface{}
		for _, iv := range target.InputFields {
			v, _ := resolveSelectionOnValue(sch, variables, node{typename: "__InputValue", value: iv}, f.SelectionSet)
			out = append(out, v)
		}
		return out, nil
	case "ofType":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown field %q on __Type", name)
	}
}

func introspectionKind(k schema.TypeKind) string {
	switch k {
	case schema.ScalarKind:
		return "SCALAR"
	case schema.ObjectKind:
		return "OBJECT"
	case schema.InterfaceKind:
		return "INTERFACE"
	case schema.UnionKind:
		return "UNION"
	case schema.EnumKind:
		return "ENUM"
	case schema.InputObjectKind:
		return "INPUT_OBJECT"
	default:
		return "SCALAR"
	}
}

func resolveFieldDefField(sch *schema.Schema, variables map[string]ir.Value, fd *schema.FieldDef, name string, f *executable.Field) (interface{}, error) {
	switch name {
	case "name":
		return fd.Name, nil
	case "description":
		if fd.Description == "" {
			return nil, nil
		}
		return fd.Description, nil
	case "args":
		var out []interface{}
		for _, a := range fd.Arguments {
			v, _ := resolveSelectionOnValue(sch, variables, node{typename: "__InputValue", value: a}, f.SelectionSet)
			out = append(out, v)
		}
		return out, nil
	case "type":
		v, _ := resolveSelectionOnValue(sch, variables, node{typename: "__Type", value: typeRefFromIR(fd.Type)}, f.SelectionSet)
		return v, nil
	case "isDeprecated":
		return deprecationReason(fd.Directives) != nil, nil
	case "deprecationReason":
		if r := deprecationReason(fd.Directives); r != nil {
			return *r, nil
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown field %q on __Field", name)
	}
}

func resolveInputValueField(sch *schema.Schema, variables map[string]ir.Value, iv *schema.InputValueDef, name string, f *executable.Field) (interface{}, error) {
	switch name {
	case "name":
		return iv.Name, nil
	case "description":
		if iv.Description == "" {
			return nil, nil
		}
		return iv.Description, nil
	case "type":
		v, _ := resolveSelectionOnValue(sch, variables, node{typename: "__Type", value: typeRefFromIR(iv.Type)}, f.SelectionSet)
		return v, nil
	case "defaultValue":
		if iv.DefaultValue == nil {
			return nil, nil
		}
		return iv.DefaultValue.String(), nil
	default:
		return nil, fmt.Errorf("unknown field %q on __InputValue", name)
	}
}

func resolveEnumValueField(ev *schema.EnumValueDef, name string) (interface{}, error) {
	switch name {
	case "name":
		return ev.Name, nil
	case "description":
		if ev.Description == "" {
			return nil, nil
		}
		return ev.Description, nil
	case "isDeprecated":
		return deprecationReason(ev.Directives) != nil, nil
	case "deprecationReason":
		if r := deprecationReason(ev.Directives); r != nil {
			return *r, nil
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown field %q on __EnumValue", name)
	}
}

func resolveDirectiveField(sch *schema.Schema, variables map[string]ir.Value, d *schema.DirectiveDef, name string, f *executable.Field) (interface{}, error) {
	switch name {
	case "name":
		return d.Name, nil
	case "description":
		if d.Description == "" {
			return nil, nil
		}
		return d.Description, nil
	case "locations":
		out := make([]interface{}, len(d.Locations))
		for i, l := range d.Locations {
			out[i] = l
		}
		return out, nil
	case "args":
		var out []interface{}
		for _, a := range d.Arguments {
			v, _ := resolveSelectionOnValue(sch, variables, node{typename: "__InputValue", value: a}, f.SelectionSet)
			out = append(out, v)
		}
		return out, nil
	case "isRepeatable":
		return d.Repeatable, nil
	default:
		return nil, fmt.Errorf("unknown field %q on __Directive", name)
	}
}

func deprecationReason(ds []schema.DirectiveApplication) *string {
	for _, d := range ds {
		if d.Name != "deprecated" {
			continue
		}
		for _, a := range d.Arguments {
			if a.Name == "reason" && a.Value.Kind == ir.StringKind {
				s := a.Value.Str
				return &s
			}
		}
		reason := "No longer supported"
		return &reason
	}
	return nil
}
