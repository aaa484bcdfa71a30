package executable

import (
	"github.com/shyptr/gqlcore/ast"
	"github.com/shyptr/gqlcore/diagnostic"
	"github.com/shyptr/gqlcore/ir"
	"github.com/shyptr/gqlcore/schema"
	"github.com/shyptr/gqlcore/source"
)

// Result is the outcome of Build.
type Result struct {
	Document    *Document
	Diagnostics []diagnostic.Diagnostic
}

type builder struct {
	schema *schema.Schema
	doc    *Document
	diags  []diagnostic.Diagnostic
}

// Build resolves every OperationDefinition and FragmentDefinition in
// defs against sch. Type-system definitions mixed into the same
// document are reported as diagnostics and skipped.
func Build(defs []ast.Definition, sch *schema.Schema) Result {
	b := &builder{schema: sch, doc: &Document{Schema: sch, Fragments: map[string]*Fragment{}}}

	for _, d := range defs {
		switch d.Kind().String() {
		case "OperationDefinition":
			op, _ := d.AsOperation()
			b.doc.Operations = append(b.doc.Operations, b.buildOperation(op))
		case "FragmentDefinition":
			fd, _ := d.AsFragment()
			frag := b.buildFragment(fd)
			name := frag.Name.Text
			if _, dup := b.doc.Fragments[name]; dup {
				b.errorf(fd.Node.Span(), "duplicate fragment definition %q", name)
				continue
			}
			b.doc.Fragments[name] = frag
		default:
			b.errorf(d.Node.Span(), "executable documents may not contain type-system definitions")
		}
	}

	return Result{Document: b.doc, Diagnostics: b.diags}
}

func (b *builder) errorf(span source.Span, format string, args ...interface{}) {
	b.diags = append(b.diags, diagnostic.New("executable error", span, format, args...))
}

func (b *builder) buildOperation(o ast.OperationDefinition) *Operation {
	opType := parseOperationType(o.OperationType())
	op := &Operation{Type: opType}
	if n, ok := o.Name(); ok {
		op.Name = ir.NameFromAST(n)
	}
	op.RootType = b.rootTypeFor(opType)
	for _, vd := range o.VariableDefinitions() {
		op.VariableDefinitions = append(op.VariableDefinitions, b.buildVariableDefinition(vd))
	}
	op.Directives = directivesFromAST(o.Directives())
	op.SelectionSet = b.buildSelectionSet(o.SelectionSet(), op.RootType)
	return op
}

func parseOperationType(s string) OperationType {
	switch s {
	case "mutation":
		return Mutation
	case "subscription":
		return Subscription
	default:
		return Query
	}
}

func (b *builder) rootTypeFor(t OperationType) *schema.ExtendedType {
	if b.schema == nil {
		return nil
	}
	switch t {
	case Mutation:
		return b.schema.Mutation
	case Subscription:
		return b.schema.Subscription
	default:
		return b.schema.Query
	}
}

func (b *builder) buildVariableDefinition(vd ast.VariableDefinition) *VariableDefinition {
	out := &VariableDefinition{
		Name: ir.NameFromAST(vd.Variable().Name()),
		Type: ir.TypeFromAST(vd.Type()),
	}
	if v, ok := vd.DefaultValue(); ok {
		dv := ir.FromAST(v)
		out.DefaultValue = &dv
	}
	out.Directives = directivesFromAST(vd.Directives())
	return out
}

func (b *builder) buildFragment(fd ast.FragmentDefinition) *Fragment {
	frag := &Fragment{Name: ir.NameFromAST(fd.Name())}
	condName := fd.TypeCondition().Text()
	cond := b.schema.Types[condName]
	if cond == nil {
		b.errorf(fd.Node.Span(), "undefined type %q in fragment type condition", condName)
	} else if !cond.IsCompositeType() {
		b.errorf(fd.Node.Span(), "fragment type condition %q must be an object, interface or union type", condName)
		cond = nil
	}
	frag.TypeCondition = cond
	frag.Directives = directivesFromAST(fd.Directives())
	frag.SelectionSet = b.buildSelectionSet(fd.SelectionSet(), cond)
	return frag
}

func (b *builder) buildSelectionSet(ss ast.SelectionSet, parentType *schema.ExtendedType) SelectionSet {
	out := SelectionSet{}
	for _, sel := range ss.Selections() {
		if f, ok := sel.AsField(); ok {
			out.Selections = append(out.Selections, Selection{Kind: FieldSelection, Field: b.buildField(f, parentType)})
			continue
		}
		if fs, ok := sel.AsFragmentSpread(); ok {
			out.Selections = append(out.Selections, Selection{
				Kind:         FragmentSpreadSelection,
				FragmentName: ir.NameFromAST(fs.Name()),
				Directives:   directivesFromAST(fs.Directives()),
			})
			continue
		}
		if inf, ok := sel.AsInlineFragment(); ok {
			condType := parentType
			if tc, ok := inf.TypeCondition(); ok {
				condType = b.schema.Types[tc.Text()]
				if condType == nil {
					b.errorf(inf.Node.Span(), "undefined type %q in inline fragment type condition", tc.Text())
				}
			}
			out.Selections = append(out.Selections, Selection{
				Kind:          InlineFragmentSelection,
				TypeCondition: condType,
				Directives:    directivesFromAST(inf.Directives()),
				SelectionSet:  b.buildSelectionSet(inf.SelectionSet(), condType),
			})
		}
	}
	return out
}

func (b *builder) buildField(f ast.Field, parentType *schema.ExtendedType) *Field {
	name := f.Name().Text()
	out := &Field{Name: ir.NameFromAST(f.Name()), ParentType: parentType}
	if alias, ok := f.Alias(); ok {
		out.Alias = ir.NameFromAST(alias)
	}
	out.Arguments = argumentsFromAST(f.Arguments())
	out.Directives = directivesFromAST(f.Directives())

	var fieldType *schema.ExtendedType
	if parentType != nil {
		if fd := b.lookupMetaField(name, parentType); fd != nil {
			out.FieldDef = fd
			fieldType = b.schema.Types[fd.Type.NamedTypeName()]
		} else if fd := parentType.Field(name); fd != nil {
			out.FieldDef = fd
			fieldType = b.schema.Types[fd.Type.NamedTypeName()]
		} else {
			b.errorf(f.Node.Span(), "field %q does not exist on type %q", name, parentType.Name)
		}
	}

	if ss, ok := f.SelectionSet(); ok {
		out.SelectionSet = b.buildSelectionSet(ss, fieldType)
	}
	return out
}

// lookupMetaField synthesizes the three meta-fields (__typename on any
// type, __schema/__type only on the query root type) so the
// field-exists check above doesn't have to special-case them as
// schema.FieldDef entries stored on every type.
func (b *builder) lookupMetaField(name string, parentType *schema.ExtendedType) *schema.FieldDef {
	switch name {
	case "__typename":
		return &schema.FieldDef{Name: "__typename", Type: ir.NonNull(ir.Named("String"))}
	case "__schema":
		if b.schema.Query != nil && parentType == b.schema.Query {
			return &schema.FieldDef{Name: "__schema", Type: ir.NonNull(ir.Named("__Schema"))}
		}
	case "__type":
		if b.schema.Query != nil && parentType == b.schema.Query {
			return &schema.FieldDef{
				Name: "__type",
				Type: ir.Named("__Type"),
				Arguments: []*schema.InputValueDef{
					{Name: "name", Type: ir.NonNull(ir.Named("String"))},
				},
			}
		}
	}
	return nil
}

func directivesFromAST(ds ast.Directives) []schema.DirectiveApplication {
	items := ds.Items()
	if len(items) == 0 {
		return nil
	}
	out := make([]schema.DirectiveApplication, len(items))
	for i, d := range items {
		out[i] = schema.DirectiveApplication{Name: d.Name().Text(), Arguments: argumentsFromAST(d.Arguments())}
	}
	return out
}

func argumentsFromAST(args []ast.Argument) []schema.Argument {
	if len(args) == 0 {
		return nil
	}
	out := make([]schema.Argument, len(args))
	for i, a := range args {
		out[i] = schema.Argument{Name: a.Name().Text(), Value: ir.FromAST(a.Value())}
	}
	return out
}
