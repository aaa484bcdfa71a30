package validate

import (
	"github.com/shyptr/gqlcore/diagnostic"
	"github.com/shyptr/gqlcore/executable"
	"github.com/shyptr/gqlcore/ir"
	"github.com/shyptr/gqlcore/schema"
)

// fieldEntry is one occurrence of a field under a response key, paired
// with the parent type it was selected on (which differs across
// fragment spreads and inline fragments merged into the same set).
type fieldEntry struct {
	parent *schema.ExtendedType
	field  *executable.Field
}

// checkFieldMerging detects conflicts among overlapping selections:
// two fields recorded under the same response key must be the same
// field with the same arguments whenever both can apply to the same
// concrete object, and their return types must have the same response
// shape. The walk resolves fragment spreads inline and is bounded by
// the executable recursion limit; crossing it emits a "too much
// recursion" diagnostic instead of risking a false positive from an
// abandoned subtree.
func checkFieldMerging(sch *schema.Schema, doc *executable.Document, op *executable.Operation, limit int) []diagnostic.Diagnostic {
	m := &merger{sch: sch, doc: doc, limit: limit}
	m.checkSet([]selectionSource{{set: op.SelectionSet, parent: op.RootType}}, 0)
	return m.diags
}

type selectionSource struct {
	set    executable.SelectionSet
	parent *schema.ExtendedType
}

type merger struct {
	sch     *schema.Schema
	doc     *executable.Document
	limit   int
	diags   []diagnostic.Diagnostic
	aborted bool
}

func (m *merger) checkSet(sources []selectionSource, depth int) {
	if m.aborted {
		return
	}
	if depth > m.limit {
		m.diags = append(m.diags, errorf("too much recursion",
			"field merging check exceeded the recursion limit"))
		m.aborted = true
		return
	}

	keys, byKey := m.collect(sources)
	for _, key := range keys {
		entries := byKey[key]
		for i := 1; i < len(entries); i++ {
			m.checkPair(key, entries[0], entries[i])
		}

		// Recurse into the merged sub-selections of every entry under
		// this key, so conflicts nested below an overlap are found too.
		var sub []selectionSource
		for _, e := range entries {
			if len(e.field.SelectionSet.Selections) == 0 {
				continue
			}
			var fieldType *schema.ExtendedType
			if e.field.FieldDef != nil {
				fieldType = m.sch.Types[e.field.FieldDef.Type.NamedTypeName()]
			}
			sub = append(sub, selectionSource{set: e.field.SelectionSet, parent: fieldType})
		}
		if len(sub) > 0 {
			m.checkSet(sub, depth+1)
		}
		if m.aborted {
			return
		}
	}
}

// collect flattens sources into response-key buckets, spreading
// fragments in place. Named fragments already being spread higher in
// the walk are skipped: the cycle itself is the fragment-cycle rule's
// to report, not this one's.
func (m *merger) collect(sources []selectionSource) ([]string, map[string][]fieldEntry) {
	var keys []string
	byKey := map[string][]fieldEntry{}
	spreading := map[string]bool{}

	var add func(ss executable.SelectionSet, parent *schema.ExtendedType)
	add = func(ss executable.SelectionSet, parent *schema.ExtendedType) {
		for _, sel := range ss.Selections {
			switch sel.Kind {
			case executable.FieldSelection:
				if sel.Field == nil {
					continue
				}
				key := sel.Field.ResponseKey()
				if _, seen := byKey[key]; !seen {
					keys = append(keys, key)
				}
				byKey[key] = append(byKey[key], fieldEntry{parent: parent, field: sel.Field})
			case executable.InlineFragmentSelection:
				p := parent
				if sel.TypeCondition != nil {
					p = sel.TypeCondition
				}
				add(sel.SelectionSet, p)
			case executable.FragmentSpreadSelection:
				name := sel.FragmentName.Text
				if spreading[name] {
					continue
				}
				frag, ok := m.doc.Fragments[name]
				if !ok {
					continue
				}
				spreading[name] = true
				add(frag.SelectionSet, frag.TypeCondition)
				delete(spreading, name)
			}
		}
	}
	for _, src := range sources {
		add(src.set, src.parent)
	}
	return keys, byKey
}

func (m *merger) checkPair(key string, a, b fieldEntry) {
	// Two concrete object parents that differ can never both apply to
	// one response object, so only the response shapes must agree.
	sameScope := true
	if a.parent != nil && b.parent != nil &&
		a.parent.Kind == schema.ObjectKind && b.parent.Kind == schema.ObjectKind &&
		a.parent.Name != b.parent.Name {
		sameScope = false
	}

	if sameScope {
		if a.field.Name.Text != b.field.Name.Text {
			m.diags = append(m.diags, errorf("field merge conflict",
				"fields %q and %q are both recorded under response key %q and cannot be merged",
				a.field.Name.Text, b.field.Name.Text, key))
			return
		}
		if !sameArguments(a.field.Arguments, b.field.Arguments) {
			m.diags = append(m.diags, errorf("field merge conflict",
				"field %q is selected twice with differing arguments", key))
			return
		}
	}

	if a.field.FieldDef != nil && b.field.FieldDef != nil &&
		!sameResponseShape(m.sch, a.field.FieldDef.Type, b.field.FieldDef.Type) {
		m.diags = append(m.diags, errorf("field merge conflict",
			"response key %q is selected with incompatible types %q and %q",
			key, a.field.FieldDef.Type, b.field.FieldDef.Type))
	}
}

func sameArguments(a, b []schema.Argument) bool {
	if len(a) != len(b) {
		return false
	}
	find := func(args []schema.Argument, name string) *schema.Argument {
		for i := range args {
			if args[i].Name == name {
				return &args[i]
			}
		}
		return nil
	}
	for _, arg := range a {
		other := find(b, arg.Name)
		if other == nil || !sameValue(arg.Value, other.Value) {
			return false
		}
	}
	return true
}

func sameValue(a, b ir.Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ir.ListKind:
		if len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if !sameValue(a.List[i], b.List[i]) {
				return false
			}
		}
		return true
	case ir.ObjectKind:
		if len(a.Object) != len(b.Object) {
			return false
		}
		for i := range a.Object {
			if a.Object[i].Name.Text != b.Object[i].Name.Text ||
				!sameValue(a.Object[i].Value, b.Object[i].Value) {
				return false
			}
		}
		return true
	default:
		return a.String() == b.String()
	}
}

// sameResponseShape requires list and non-null wrapping to match level
// by level, and leaf (scalar/enum) named types to be identical.
// Composite named types may differ here: their sub-selections merge,
// and the recursion in checkSet validates the merged set.
func sameResponseShape(sch *schema.Schema, a, b ir.Type) bool {
	for {
		if a.IsNonNull() || b.IsNonNull() {
			if !a.IsNonNull() || !b.IsNonNull() {
				return false
			}
			a, b = a.InnerType(), b.InnerType()
			continue
		}
		if a.IsList() || b.IsList() {
			if !a.IsList() || !b.IsList() {
				return false
			}
			a, b = *a.Of, *b.Of
			continue
		}
		break
	}
	ta, tb := sch.Types[a.Named], sch.Types[b.Named]
	if ta == nil || tb == nil {
		return true // undefined types are reported elsewhere
	}
	if ta.IsLeafType() || tb.IsLeafType() {
		return ta.Name == tb.Name
	}
	return true
}
