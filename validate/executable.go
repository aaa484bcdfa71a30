package validate

import (
	"github.com/shyptr/gqlcore/diagnostic"
	"github.com/shyptr/gqlcore/executable"
	"github.com/shyptr/gqlcore/ir"
	"github.com/shyptr/gqlcore/schema"
)

// Executable runs every executable-level rule against doc (built
// against sch) and returns their combined diagnostics.
func Executable(sch *schema.Schema, doc *executable.Document, opts Options) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	diags = append(diags, checkOperationNames(doc)...)
	diags = append(diags, checkFragmentsUsedAndAcyclic(doc, opts.ExecutableRecursionLimit)...)
	for _, op := range doc.Operations {
		diags = append(diags, checkVariables(sch, doc, op)...)
		diags = append(diags, checkSelectionShapes(sch, op.SelectionSet)...)
		diags = append(diags, checkDirectiveUsages(sch, op.Directives, locationForOperation(op.Type))...)
		diags = append(diags, checkSelectionDirectives(sch, op.SelectionSet)...)
		diags = append(diags, checkSubscriptionShape(op)...)
		diags = append(diags, checkArgumentCoercion(sch, op.SelectionSet)...)
		diags = append(diags, checkFieldMerging(sch, doc, op, opts.ExecutableRecursionLimit)...)
	}
	for _, frag := range doc.Fragments {
		diags = append(diags, checkSelectionShapes(sch, frag.SelectionSet)...)
		diags = append(diags, checkDirectiveUsages(sch, frag.Directives, "FRAGMENT_DEFINITION")...)
		diags = append(diags, checkSelectionDirectives(sch, frag.SelectionSet)...)
		diags = append(diags, checkArgumentCoercion(sch, frag.SelectionSet)...)
	}
	return diags
}

func locationForOperation(t executable.OperationType) string {
	switch t {
	case executable.Mutation:
		return "MUTATION"
	case executable.Subscription:
		return "SUBSCRIPTION"
	default:
		return "QUERY"
	}
}

func checkOperationNames(doc *executable.Document) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	seen := map[string]bool{}
	named := 0
	anonymous := 0
	for _, op := range doc.Operations {
		if op.Name.Text == "" {
			anonymous++
			continue
		}
		named++
		if seen[op.Name.Text] {
			diags = append(diags, errorf("duplicate operation name", "duplicate operation name %q", op.Name.Text))
		}
		seen[op.Name.Text] = true
	}
	if anonymous > 0 && (named > 0 || anonymous > 1) {
		diags = append(diags, errorf("anonymous operation not alone",
			"an anonymous operation must be the only operation in the document"))
	}
	return diags
}

// checkFragmentsUsedAndAcyclic walks every operation's selection set
// (and transitively every fragment it spreads) to find unused
// fragments, undefined fragment references, and fragment cycles, the
// last via DFS with an explicit "visiting" set.
func checkFragmentsUsedAndAcyclic(doc *executable.Document, limit int) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	used := map[string]bool{}

	var walkSet func(ss executable.SelectionSet, visiting map[string]bool, depth int)
	walkSet = func(ss executable.SelectionSet, visiting map[string]bool, depth int) {
		if depth > limit {
			diags = append(diags, errorf("too much recursion", "fragment spread nesting exceeded the recursion limit"))
			return
		}
		for _, sel := range ss.Selections {
			switch sel.Kind {
			case executable.FieldSelection:
				if sel.Field != nil {
					walkSet(sel.Field.SelectionSet, visiting, depth+1)
				}
			case executable.InlineFragmentSelection:
				walkSet(sel.SelectionSet, visiting, depth+1)
			case executable.FragmentSpreadSelection:
				name := sel.FragmentName.Text
				used[name] = true
				frag, ok := doc.Fragments[name]
				if !ok {
					diags = append(diags, errorf("undefined fragment", "undefined fragment %q", name))
					continue
				}
				if visiting[name] {
					diags = append(diags, errorf("fragment cycle", "fragment %q spreads itself transitively", name))
					continue
				}
				visiting[name] = true
				walkSet(frag.SelectionSet, visiting, depth+1)
				delete(visiting, name)
			}
		}
	}

	for _, op := range doc.Operations {
		walkSet(op.SelectionSet, map[string]bool{}, 0)
	}
	for name := range doc.Fragments {
		if !used[name] {
			diags = append(diags, errorf("unused fragment", "fragment %q is never used", name))
		}
	}
	return diags
}

// checkVariables enforces that every variable used in op's selection
// set, including transitively through named fragment spreads, is
// declared, every declared variable is used, and its declared type is
// an input type.
func checkVariables(sch *schema.Schema, doc *executable.Document, op *executable.Operation) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	declared := map[string]bool{}
	for _, vd := range op.VariableDefinitions {
		declared[vd.Name.Text] = true
		target, ok := sch.Types[vd.Type.NamedTypeName()]
		if !ok || !target.IsInputType() {
			diags = append(diags, errorf("variable type not input type",
				"variable $%s has type %q, which is not a valid input type", vd.Name.Text, vd.Type))
		}
	}

	used := map[string]bool{}
	var collect func(v ir.Value)
	collect = func(v ir.Value) {
		switch v.Kind {
		case ir.VariableKind:
			used[v.VarName.Text] = true
		case ir.ListKind:
			for _, item := range v.List {
				collect(item)
			}
		case ir.ObjectKind:
			for _, f := range v.Object {
				collect(f.Value)
			}
		}
	}
	visiting := map[string]bool{}
	var walk func(ss executable.SelectionSet)
	walk = func(ss executable.SelectionSet) {
		for _, sel := range ss.Selections {
			for _, d := range directivesOf(sel) {
				for _, a := range d.Arguments {
					collect(a.Value)
				}
			}
			switch sel.Kind {
			case executable.FieldSelection:
				if sel.Field != nil {
					for _, a := range sel.Field.Arguments {
						collect(a.Value)
					}
					walk(sel.Field.SelectionSet)
				}
			case executable.InlineFragmentSelection:
				walk(sel.SelectionSet)
			case executable.FragmentSpreadSelection:
				// A variable used only inside a spread fragment still
				// counts for this operation. The visiting guard skips
				// fragments already being spread higher in the walk;
				// the cycle itself is the fragment-cycle rule's to
				// report.
				name := sel.FragmentName.Text
				if visiting[name] {
					continue
				}
				frag, ok := doc.Fragments[name]
				if !ok {
					continue
				}
				visiting[name] = true
				for _, d := range frag.Directives {
					for _, a := range d.Arguments {
						collect(a.Value)
					}
				}
				walk(frag.SelectionSet)
				delete(visiting, name)
			}
		}
	}
	walk(op.SelectionSet)

	for name := range used {
		if !declared[name] {
			diags = append(diags, errorf("undefined variable", "variable $%s is used but not defined", name))
		}
	}
	for name := range declared {
		if !used[name] {
			diags = append(diags, errorf("unused variable", "variable $%s is defined but never used", name))
		}
	}
	return diags
}

// directivesOf returns whichever directive list a selection carries:
// field selections keep theirs on the Field, spreads and inline
// fragments on the Selection itself.
func directivesOf(sel executable.Selection) []schema.DirectiveApplication {
	if sel.Kind == executable.FieldSelection {
		if sel.Field == nil {
			return nil
		}
		return sel.Field.Directives
	}
	return sel.Directives
}

// checkSelectionDirectives applies the directive-usage rules at every
// selection in ss: FIELD, FRAGMENT_SPREAD and INLINE_FRAGMENT
// locations, recursively.
func checkSelectionDirectives(sch *schema.Schema, ss executable.SelectionSet) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	var walk func(ss executable.SelectionSet)
	walk = func(ss executable.SelectionSet) {
		for _, sel := range ss.Selections {
			switch sel.Kind {
			case executable.FieldSelection:
				if sel.Field == nil {
					continue
				}
				diags = append(diags, checkDirectiveUsages(sch, sel.Field.Directives, "FIELD")...)
				walk(sel.Field.SelectionSet)
			case executable.FragmentSpreadSelection:
				diags = append(diags, checkDirectiveUsages(sch, sel.Directives, "FRAGMENT_SPREAD")...)
			case executable.InlineFragmentSelection:
				diags = append(diags, checkDirectiveUsages(sch, sel.Directives, "INLINE_FRAGMENT")...)
				walk(sel.SelectionSet)
			}
		}
	}
	walk(ss)
	return diags
}

// checkSelectionShapes enforces leaf/composite selection rules: a leaf
// (scalar/enum) field must have no selection set, a composite
// (object/interface/union) field must have one, and every field it
// visits must have resolved to a known FieldDef.
func checkSelectionShapes(sch *schema.Schema, ss executable.SelectionSet) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	var walk func(ss executable.SelectionSet)
	walk = func(ss executable.SelectionSet) {
		for _, sel := range ss.Selections {
			switch sel.Kind {
			case executable.FieldSelection:
				f := sel.Field
				if f == nil {
					continue
				}
				hasSelectionSet := len(f.SelectionSet.Selections) > 0
				if f.FieldDef == nil {
					continue // already reported by the executable builder
				}
				returnType := sch.Types[f.FieldDef.Type.NamedTypeName()]
				if returnType == nil {
					continue
				}
				if returnType.IsLeafType() && hasSelectionSet {
					diags = append(diags, errorf("leaf field with selection",
						"field %q returns leaf type %q and may not have a selection set", f.ResponseKey(), returnType.Name))
				}
				if returnType.IsCompositeType() && !hasSelectionSet {
					diags = append(diags, errorf("composite field without selection",
						"field %q returns composite type %q and must have a selection set", f.ResponseKey(), returnType.Name))
				}
				walk(f.SelectionSet)
			case executable.InlineFragmentSelection:
				walk(sel.SelectionSet)
			}
		}
	}
	walk(ss)
	return diags
}

// checkDirectiveUsages enforces that every directive application names
// a known directive, is used in a location it permits, and (for
// non-repeatable directives) is not repeated within the same location.
// loc identifies the location the Directives slice itself was applied
// at (callers pass the location for operation/fragment-level
// directives; field/selection-level directives are walked separately).
func checkDirectiveUsages(sch *schema.Schema, ds []schema.DirectiveApplication, loc string) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	seen := map[string]int{}
	for _, d := range ds {
		def, ok := sch.Directives[d.Name]
		if !ok {
			diags = append(diags, errorf("undefined directive", "undefined directive @%s", d.Name))
			continue
		}
		if !def.HasLocation(loc) {
			diags = append(diags, errorf("directive location not allowed",
				"directive @%s is not allowed at %s", d.Name, loc))
		}
		seen[d.Name]++
		if seen[d.Name] > 1 && !def.Repeatable {
			diags = append(diags, errorf("directive not repeatable", "directive @%s is not repeatable but is applied more than once", d.Name))
		}
		if d.Name == "skip" || d.Name == "include" {
			for _, a := range d.Arguments {
				if a.Name == "if" && a.Value.Kind != ir.BooleanKind && a.Value.Kind != ir.VariableKind {
					diags = append(diags, errorf("skip/include condition not boolean",
						"the `if` argument of @%s must be a Boolean", d.Name))
				}
			}
		}
	}
	return diags
}

// checkSubscriptionShape enforces the subscription operation rules:
// exactly one root field, not an introspection meta-field, and no
// @skip/@include on that field.
func checkSubscriptionShape(op *executable.Operation) []diagnostic.Diagnostic {
	if op.Type != executable.Subscription {
		return nil
	}
	var diags []diagnostic.Diagnostic
	if len(op.SelectionSet.Selections) != 1 {
		diags = append(diags, errorf("subscription root field count",
			"subscription %q must select exactly one root field", op.Name.Text))
		return diags
	}
	sel := op.SelectionSet.Selections[0]
	if sel.Kind != executable.FieldSelection || sel.Field == nil {
		diags = append(diags, errorf("subscription root field count",
			"subscription %q must select exactly one root field", op.Name.Text))
		return diags
	}
	if sel.Field.Name.Text == "__typename" || sel.Field.Name.Text == "__schema" || sel.Field.Name.Text == "__type" {
		diags = append(diags, errorf("subscription introspection root",
			"subscription root field may not be an introspection meta-field"))
	}
	for _, d := range sel.Field.Directives {
		if d.Name == "skip" || d.Name == "include" {
			diags = append(diags, errorf("subscription root directive",
				"subscription root field may not carry @%s", d.Name))
		}
	}
	return diags
}

// checkArgumentCoercion validates every argument value in ss against
// the declared argument type of the field it's applied to. Fragment
// spreads are not followed here: the rule runs once per operation and
// once per named fragment, so every selection is checked exactly once.
func checkArgumentCoercion(sch *schema.Schema, ss executable.SelectionSet) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	var walk func(ss executable.SelectionSet)
	walk = func(ss executable.SelectionSet) {
		for _, sel := range ss.Selections {
			if sel.Kind == executable.FieldSelection && sel.Field != nil {
				f := sel.Field
				if f.FieldDef != nil {
					for _, arg := range f.Arguments {
						argDef := findArg(f.FieldDef.Arguments, arg.Name)
						if argDef == nil {
							diags = append(diags, errorf("unknown argument",
								"unknown argument %q on field %q", arg.Name, f.ResponseKey()))
							continue
						}
						if err := Coerce(sch, argDef.Type, arg.Value); err != nil {
							diags = append(diags, errorf("argument type mismatch",
								"argument %q on field %q: %s", arg.Name, f.ResponseKey(), err))
						}
					}
				}
				walk(f.SelectionSet)
			}
			if sel.Kind == executable.InlineFragmentSelection {
				walk(sel.SelectionSet)
			}
		}
	}
	walk(ss)
	return diags
}
