// Package validate implements the GraphQL schema and executable
// validation rules, each a pure function over already-built
// schema/executable IR returning a list of diagnostics; never
// panicking, never mutating its input. One function per rule, all
// invoked from a single entry point with their diagnostics
// concatenated.
package validate

import (
	"fmt"

	"github.com/shyptr/gqlcore/diagnostic"
	"github.com/shyptr/gqlcore/ir"
	"github.com/shyptr/gqlcore/schema"
	"github.com/shyptr/gqlcore/source"
)

// Schema runs every schema-level rule against sch and returns their
// combined diagnostics.
func Schema(sch *schema.Schema, opts Options) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	diags = append(diags, checkQueryPresent(sch)...)
	diags = append(diags, checkUniqueMemberNames(sch)...)
	diags = append(diags, checkInterfaceImplementations(sch)...)
	diags = append(diags, checkFieldArgumentPositions(sch)...)
	diags = append(diags, checkInputObjectCycles(sch, opts.SchemaRecursionLimit)...)
	diags = append(diags, checkDefaultValues(sch)...)
	return diags
}

func errorf(kind string, format string, args ...interface{}) diagnostic.Diagnostic {
	return diagnostic.New(kind, source.Span{}, format, args...)
}

func checkQueryPresent(sch *schema.Schema) []diagnostic.Diagnostic {
	if sch.Query == nil {
		return []diagnostic.Diagnostic{errorf("missing Query root", "schema has no Query root operation type")}
	}
	return nil
}

// checkUniqueMemberNames reports duplicate fields, enum values, union
// members, input fields, and argument names within each merged type:
// a duplicate here usually means a definition and one of its
// extensions both declared the same component.
func checkUniqueMemberNames(sch *schema.Schema) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	dup := func(kind, format string, args ...interface{}) {
		diags = append(diags, errorf(kind, format, args...))
	}
	for _, name := range sch.TypeOrder {
		t := sch.Types[name]
		seenFields := map[string]bool{}
		for _, f := range t.Fields {
			if seenFields[f.Name] {
				dup("duplicate field", "type %q declares field %q more than once", t.Name, f.Name)
			}
			seenFields[f.Name] = true
			seenArgs := map[string]bool{}
			for _, a := range f.Arguments {
				if seenArgs[a.Name] {
					dup("duplicate argument", "field %q on type %q declares argument %q more than once", f.Name, t.Name, a.Name)
				}
				seenArgs[a.Name] = true
			}
		}
		seenValues := map[string]bool{}
		for _, v := range t.EnumValues {
			if seenValues[v.Name] {
				dup("duplicate enum value", "enum %q declares value %q more than once", t.Name, v.Name)
			}
			seenValues[v.Name] = true
		}
		if t.Kind == schema.UnionKind {
			seenMembers := map[string]bool{}
			for _, m := range t.PossibleTypes {
				if seenMembers[m.Name] {
					dup("duplicate union member", "union %q lists member %q more than once", t.Name, m.Name)
				}
				seenMembers[m.Name] = true
			}
		}
		seenInputs := map[string]bool{}
		for _, f := range t.InputFields {
			if seenInputs[f.Name] {
				dup("duplicate input field", "input object %q declares field %q more than once", t.Name, f.Name)
			}
			seenInputs[f.Name] = true
		}
	}
	return diags
}

// checkInterfaceImplementations enforces that every field an interface
// declares is present, with a compatible (covariant) return type and
// identical required arguments, on every type implementing it.
func checkInterfaceImplementations(sch *schema.Schema) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	for _, name := range sch.TypeOrder {
		t := sch.Types[name]
		if t.Kind != schema.ObjectKind && t.Kind != schema.InterfaceKind {
			continue
		}
		for _, iface := range t.Interfaces {
			declared, ok := sch.Types[iface.Name]
			if !ok || declared.Kind != schema.InterfaceKind {
				diags = append(diags, errorf("undefined interface",
					"type %q implements undefined interface %q", t.Name, iface.Name))
				continue
			}
			for _, requiredField := range declared.Fields {
				actual := t.Field(requiredField.Name)
				if actual == nil {
					diags = append(diags, errorf("missing interface field",
						"type %q must declare field %q to implement interface %q", t.Name, requiredField.Name, iface.Name))
					continue
				}
				if !actual.Type.IsSubTypeOf(requiredField.Type) {
					diags = append(diags, errorf("incompatible field type",
						"field %q on type %q has type %q, not compatible with %q required by interface %q",
						requiredField.Name, t.Name, actual.Type, requiredField.Type, iface.Name))
				}
				for _, requiredArg := range requiredField.Arguments {
					actualArg := findArg(actual.Arguments, requiredArg.Name)
					if actualArg == nil || !actualArg.Type.Equal(requiredArg.Type) {
						diags = append(diags, errorf("incompatible field argument",
							"field %q on type %q must accept argument %q of type %q to implement interface %q",
							requiredField.Name, t.Name, requiredArg.Name, requiredArg.Type, iface.Name))
					}
				}
			}
		}
	}
	return diags
}

func findArg(args []*schema.InputValueDef, name string) *schema.InputValueDef {
	for _, a := range args {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// checkFieldArgumentPositions enforces that output types are used only
// in output positions and input types only in input positions:
// field/argument/input-field declared types must resolve to a known
// type of the right broad category.
func checkFieldArgumentPositions(sch *schema.Schema) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	checkOutput := func(where string, t ir.Type) {
		name := t.NamedTypeName()
		target, ok := sch.Types[name]
		if !ok {
			diags = append(diags, errorf("undefined type", "%s refers to undefined type %q", where, name))
			return
		}
		if target.Kind == schema.InputObjectKind {
			diags = append(diags, errorf("wrong type position", "%s may not use input type %q in output position", where, name))
		}
	}
	checkInput := func(where string, t ir.Type) {
		name := t.NamedTypeName()
		target, ok := sch.Types[name]
		if !ok {
			diags = append(diags, errorf("undefined type", "%s refers to undefined type %q", where, name))
			return
		}
		if !target.IsInputType() {
			diags = append(diags, errorf("wrong type position", "%s may not use output type %q in input position", where, name))
		}
	}

	for _, name := range sch.TypeOrder {
		t := sch.Types[name]
		for _, f := range t.Fields {
			checkOutput(fmt.Sprintf("field %q on type %q", f.Name, t.Name), f.Type)
			for _, a := range f.Arguments {
				checkInput(fmt.Sprintf("argument %q of field %q on type %q", a.Name, f.Name, t.Name), a.Type)
			}
		}
		for _, f := range t.InputFields {
			checkInput(fmt.Sprintf("input field %q on type %q", f.Name, t.Name), f.Type)
		}
	}
	for _, d := range sch.Directives {
		for _, a := range d.Arguments {
			checkInput(fmt.Sprintf("argument %q of directive @%s", a.Name, d.Name), a.Type)
		}
	}
	return diags
}

// checkInputObjectCycles detects a non-null edge from an input object
// field back to an ancestor input object via DFS with an explicit
// stack; the only reportable kind of cycle. A nullable edge back to
// an ancestor is fine: a client can always supply null to break the
// cycle at runtime.
func checkInputObjectCycles(sch *schema.Schema, limit int) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	onStack := map[string]bool{}
	visited := map[string]bool{}

	var visit func(name string, depth int) bool
	visit = func(name string, depth int) bool {
		if depth > limit {
			diags = append(diags, errorf("too much recursion", "input object cycle check exceeded recursion limit at %q", name))
			return true
		}
		if onStack[name] {
			diags = append(diags, errorf("input object cycle",
				"input object %q has a non-null reference cycle through itself", name))
			return true
		}
		if visited[name] {
			return false
		}
		t := sch.Types[name]
		if t == nil || t.Kind != schema.InputObjectKind {
			return false
		}
		onStack[name] = true
		defer delete(onStack, name)
		for _, f := range t.InputFields {
			if !f.Type.IsNonNull() {
				continue
			}
			inner := f.Type.InnerType()
			if inner.IsNamed() {
				if next := sch.Types[inner.Named]; next != nil && next.Kind == schema.InputObjectKind {
					if visit(inner.Named, depth+1) {
						return true
					}
				}
			}
		}
		visited[name] = true
		return false
	}

	for _, name := range sch.TypeOrder {
		if sch.Types[name].Kind == schema.InputObjectKind {
			visit(name, 0)
		}
	}
	return diags
}

// checkDefaultValues verifies that every declared default value's
// shape is compatible with its declared type.
func checkDefaultValues(sch *schema.Schema) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	check := func(where string, t ir.Type, v *ir.Value) {
		if v == nil {
			return
		}
		if err := CoerceConst(sch, t, *v); err != nil {
			diags = append(diags, errorf("default value mistyped", "%s: %s", where, err))
		}
	}
	for _, name := range sch.TypeOrder {
		t := sch.Types[name]
		for _, f := range t.Fields {
			for _, a := range f.Arguments {
				check(fmt.Sprintf("default value of argument %q of field %q on type %q", a.Name, f.Name, t.Name), a.Type, a.DefaultValue)
			}
		}
		for _, f := range t.InputFields {
			check(fmt.Sprintf("default value of input field %q on type %q", f.Name, t.Name), f.Type, f.DefaultValue)
		}
	}
	for _, d := range sch.Directives {
		for _, a := range d.Arguments {
			check(fmt.Sprintf("default value of argument %q of directive @%s", a.Name, d.Name), a.Type, a.DefaultValue)
		}
	}
	return diags
}
