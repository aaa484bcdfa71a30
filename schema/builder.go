package schema

import (
	"github.com/shyptr/gqlcore/ast"
	"github.com/shyptr/gqlcore/diagnostic"
	"github.com/shyptr/gqlcore/ir"
	"github.com/shyptr/gqlcore/source"

	"github.com/google/uuid"
)

// Result is the outcome of Build: the resulting Schema (always
// non-nil, possibly incomplete) plus whatever diagnostics were raised
// while merging definitions and extensions.
type Result struct {
	Schema      *Schema
	Diagnostics []diagnostic.Diagnostic
}

type builder struct {
	schema *Schema
	diags  []diagnostic.Diagnostic
	// Extension ids are not tracked here: each extension applied gets a
	// fresh id from newExtensionID (google/uuid) so merged-in components
	// can be attributed to the extension that contributed them.
}

// Build merges every type-system Definition/Extension found among defs
// into a single Schema, seeding it first with the built-in scalars,
// directives, and introspection types every GraphQL schema implicitly
// has.
func Build(defs []ast.Definition) Result {
	b := &builder{schema: newBuiltinSchema()}

	var schemaDefs []ast.SchemaDefinition
	var schemaExts []ast.SchemaExtension

	for _, d := range defs {
		switch d.Kind().String() {
		case "SchemaDefinition":
			sd, _ := d.AsSchema()
			schemaDefs = append(schemaDefs, sd)
		case "SchemaExtension":
			se, _ := d.AsSchemaExtension()
			schemaExts = append(schemaExts, se)
		case "ScalarTypeDefinition":
			v, _ := d.AsScalarType()
			b.addScalar(v)
		case "ObjectTypeDefinition":
			v, _ := d.AsObjectType()
			b.addObject(v)
		case "InterfaceTypeDefinition":
			v, _ := d.AsInterfaceType()
			b.addInterface(v)
		case "UnionTypeDefinition":
			v, _ := d.AsUnionType()
			b.addUnion(v)
		case "EnumTypeDefinition":
			v, _ := d.AsEnumType()
			b.addEnum(v)
		case "InputObjectTypeDefinition":
			v, _ := d.AsInputObjectType()
			b.addInputObject(v)
		case "DirectiveDefinition":
			v, _ := d.AsDirectiveDefinition()
			b.addDirective(v)
		}
	}

	// Extensions are applied in a second pass, since an extension may
	// legally precede its base definition in source order.
	for _, d := range defs {
		switch d.Kind().String() {
		case "ScalarTypeExtension":
			v, _ := d.AsScalarTypeExtension()
			b.extendScalar(v)
		case "ObjectTypeExtension":
			v, _ := d.AsObjectTypeExtension()
			b.extendObject(v)
		case "InterfaceTypeExtension":
			v, _ := d.AsInterfaceTypeExtension()
			b.extendInterface(v)
		case "UnionTypeExtension":
			v, _ := d.AsUnionTypeExtension()
			b.extendUnion(v)
		case "EnumTypeExtension":
			v, _ := d.AsEnumTypeExtension()
			b.extendEnum(v)
		case "InputObjectTypeExtension":
			v, _ := d.AsInputObjectTypeExtension()
			b.extendInputObject(v)
		}
	}

	b.resolveRootOperationTypes(schemaDefs, schemaExts)
	b.resolveImplementers()

	return Result{Schema: b.schema, Diagnostics: b.diags}
}

func (b *builder) errorf(span source.Span, format string, args ...interface{}) {
	b.diags = append(b.diags, diagnostic.New("schema error", span, format, args...))
}

func (b *builder) declare(name string, kind TypeKind, span source.Span) *ExtendedType {
	if existing, ok := b.schema.Types[name]; ok {
		b.errorf(span, "duplicate type definition %q (already defined as %s)", name, existing.Kind)
		return nil
	}
	t := &ExtendedType{Kind: kind, Name: name}
	b.schema.Types[name] = t
	b.schema.TypeOrder = append(b.schema.TypeOrder, name)
	return t
}

func newExtensionID() string { return uuid.NewString() }

func directivesFromAST(ds ast.Directives) []DirectiveApplication {
	items := ds.Items()
	if len(items) == 0 {
		return nil
	}
	out := make([]DirectiveApplication, len(items))
	for i, d := range items {
		out[i] = DirectiveApplication{Name: d.Name().Text(), Arguments: argumentsFromAST(d.Arguments())}
	}
	return out
}

func argumentsFromAST(args []ast.Argument) []Argument {
	if len(args) == 0 {
		return nil
	}
	out := make([]Argument, len(args))
	for i, a := range args {
		out[i] = Argument{Name: a.Name().Text(), Value: ir.FromAST(a.Value())}
	}
	return out
}

func inputValuesFromAST(ivs []ast.InputValueDefinition) []*InputValueDef {
	if len(ivs) == 0 {
		return nil
	}
	out := make([]*InputValueDef, len(ivs))
	for i, iv := range ivs {
		desc, _ := iv.Description()
		var def *ir.Value
		if v, ok := iv.DefaultValue(); ok {
			dv := ir.FromAST(v)
			def = &dv
		}
		out[i] = &InputValueDef{
			Name:         iv.Name().Text(),
			Description:  desc,
			Type:         ir.TypeFromAST(iv.Type()),
			DefaultValue: def,
			Directives:   directivesFromAST(iv.Directives()),
		}
	}
	return out
}

func fieldsFromAST(fds []ast.FieldDefinition) []*FieldDef {
	if len(fds) == 0 {
		return nil
	}
	out := make([]*FieldDef, len(fds))
	for i, fd := range fds {
		desc, _ := fd.Description()
		out[i] = &FieldDef{
			Name:        fd.Name().Text(),
			Description: desc,
			Arguments:   inputValuesFromAST(fd.Arguments()),
			Type:        ir.TypeFromAST(fd.Type()),
			Directives:  directivesFromAST(fd.Directives()),
		}
	}
	return out
}

func (b *builder) addScalar(v ast.ScalarTypeDefinition) {
	t := b.declare(v.Name().Text(), ScalarKind, v.Node.Span())
	if t == nil {
		return
	}
	t.Description, _ = v.Description()
	t.Directives = directivesFromAST(v.Directives())
}

func (b *builder) addObject(v ast.ObjectTypeDefinition) {
	t := b.declare(v.Name().Text(), ObjectKind, v.Node.Span())
	if t == nil {
		return
	}
	t.Description, _ = v.Description()
	t.Directives = directivesFromAST(v.Directives())
	t.Fields = fieldsFromAST(v.Fields())
	b.deferInterfaces(t, v.Implements())
}

func (b *builder) addInterface(v ast.InterfaceTypeDefinition) {
	t := b.declare(v.Name().Text(), InterfaceKind, v.Node.Span())
	if t == nil {
		return
	}
	t.Description, _ = v.Description()
	t.Directives = directivesFromAST(v.Directives())
	t.Fields = fieldsFromAST(v.Fields())
	b.deferInterfaces(t, v.Implements())
}

func (b *builder) addUnion(v ast.UnionTypeDefinition) {
	t := b.declare(v.Name().Text(), UnionKind, v.Node.Span())
	if t == nil {
		return
	}
	t.Description, _ = v.Description()
	t.Directives = directivesFromAST(v.Directives())
	b.deferMembers(t, v.Members())
}

func (b *builder) addEnum(v ast.EnumTypeDefinition) {
	t := b.declare(v.Name().Text(), EnumKind, v.Node.Span())
	if t == nil {
		return
	}
	t.Description, _ = v.Description()
	t.Directives = directivesFromAST(v.Directives())
	for _, ev := range v.Values() {
		desc, _ := ev.Description()
		t.EnumValues = append(t.EnumValues, &EnumValueDef{
			Name: ev.Name().Text(), Description: desc, Directives: directivesFromAST(ev.Directives()),
		})
	}
}

func (b *builder) addInputObject(v ast.InputObjectTypeDefinition) {
	t := b.declare(v.Name().Text(), InputObjectKind, v.Node.Span())
	if t == nil {
		return
	}
	t.Description, _ = v.Description()
	t.Directives = directivesFromAST(v.Directives())
	t.InputFields = inputValuesFromAST(v.Fields())
}

func (b *builder) addDirective(v ast.DirectiveDefinition) {
	name := v.Name().Text()
	if _, ok := b.schema.Directives[name]; ok {
		b.errorf(v.Node.Span(), "duplicate directive definition %q", name)
		return
	}
	desc, _ := v.Description()
	b.schema.Directives[name] = &DirectiveDef{
		Name:        name,
		Description: desc,
		Arguments:   inputValuesFromAST(v.Arguments()),
		Repeatable:  v.Repeatable(),
		Locations:   v.Locations(),
	}
}

// deferInterfaces and deferMembers do not resolve cross-references:
// they record only the *names* of implemented interfaces and union
// members, attached as placeholder ExtendedType stubs. The stubs are
// patched in resolveImplementers, after every definition and extension
// has been registered, so a forward reference such as "type Dog
// implements Pet" works even when Pet is declared later.
func (b *builder) deferInterfaces(t *ExtendedType, names []ast.Name) {
	for _, n := range names {
		t.Interfaces = append(t.Interfaces, &ExtendedType{Kind: InterfaceKind, Name: n.Text()})
	}
}

func (b *builder) deferMembers(t *ExtendedType, names []ast.Name) {
	for _, n := range names {
		t.PossibleTypes = append(t.PossibleTypes, &ExtendedType{Kind: ObjectKind, Name: n.Text()})
	}
}

// resolveImplementers replaces every placeholder stub left by
// deferInterfaces/deferMembers with the real declared ExtendedType, and
// computes the transitive implementers map.
func (b *builder) resolveImplementers() {
	resolve := func(stub *ExtendedType) *ExtendedType {
		if real, ok := b.schema.Types[stub.Name]; ok {
			return real
		}
		return stub
	}
	for _, t := range b.schema.Types {
		for i, iface := range t.Interfaces {
			t.Interfaces[i] = resolve(iface)
		}
		for i, member := range t.PossibleTypes {
			t.PossibleTypes[i] = resolve(member)
		}
	}

	b.schema.implementers = map[string][]*ExtendedType{}
	for _, t := range b.schema.Types {
		if t.Kind != ObjectKind && t.Kind != InterfaceKind {
			continue
		}
		for _, iface := range transitiveInterfaces(t) {
			b.schema.implementers[iface] = append(b.schema.implementers[iface], t)
		}
	}
}

func transitiveInterfaces(t *ExtendedType) []string {
	seen := map[string]bool{}
	var out []string
	var visit func(*ExtendedType)
	visit = func(t *ExtendedType) {
		for _, iface := range t.Interfaces {
			if seen[iface.Name] {
				continue
			}
			seen[iface.Name] = true
			out = append(out, iface.Name)
			visit(iface)
		}
	}
	visit(t)
	return out
}

func (b *builder) resolveRootOperationTypes(defs []ast.SchemaDefinition, exts []ast.SchemaExtension) {
	assign := func(opType string, named ast.Name) {
		t := b.schema.Types[named.Text()]
		if t == nil {
			b.errorf(named.Node.Span(), "undefined type %q for %s root operation", named.Text(), opType)
			return
		}
		switch opType {
		case "query":
			b.schema.Query = t
		case "mutation":
			b.schema.Mutation = t
		case "subscription":
			b.schema.Subscription = t
		}
	}

	if len(defs) > 1 {
		for _, d := range defs[1:] {
			b.errorf(d.Node.Span(), "duplicate schema definition; a document may declare `schema` at most once")
		}
	}

	if len(defs) == 0 {
		// Without an explicit `schema { ... }` block, types named
		// Query/Mutation/Subscription act as the respective root
		// operation types.
		if t, ok := b.schema.Types["Query"]; ok {
			b.schema.Query = t
		}
		if t, ok := b.schema.Types["Mutation"]; ok {
			b.schema.Mutation = t
		}
		if t, ok := b.schema.Types["Subscription"]; ok {
			b.schema.Subscription = t
		}
	}
	for _, d := range defs {
		for _, ot := range d.OperationTypes() {
			assign(ot.OperationType(), ot.NamedType())
		}
	}
	for _, e := range exts {
		for _, ot := range e.OperationTypes() {
			assign(ot.OperationType(), ot.NamedType())
		}
	}
}

func (b *builder) extendScalar(v ast.ScalarTypeExtension) {
	t := b.schema.Types[v.Name().Text()]
	if t == nil {
		b.errorf(v.Node.Span(), "cannot extend undefined type %q", v.Name().Text())
		return
	}
	if t.Kind != ScalarKind {
		b.errorf(v.Node.Span(), "scalar extension cannot extend %q, which is defined as %s", v.Name().Text(), t.Kind)
		return
	}
	t.Directives = append(t.Directives, directivesFromAST(v.Directives())...)
}

func (b *builder) extendObject(v ast.ObjectTypeExtension) {
	t := b.schema.Types[v.Name().Text()]
	if t == nil {
		b.errorf(v.Node.Span(), "cannot extend undefined type %q", v.Name().Text())
		return
	}
	if t.Kind != ObjectKind {
		b.errorf(v.Node.Span(), "object extension cannot extend %q, which is defined as %s", v.Name().Text(), t.Kind)
		return
	}
	eid := newExtensionID()
	for _, f := range fieldsFromAST(v.Fields()) {
		f.Origin = Origin{ExtensionID: eid}
		t.Fields = append(t.Fields, f)
	}
	b.deferInterfaces(t, v.Implements())
	t.Directives = append(t.Directives, directivesFromAST(v.Directives())...)
}

func (b *builder) extendInterface(v ast.InterfaceTypeExtension) {
	t := b.schema.Types[v.Name().Text()]
	if t == nil {
		b.errorf(v.Node.Span(), "cannot extend undefined type %q", v.Name().Text())
		return
	}
	if t.Kind != InterfaceKind {
		b.errorf(v.Node.Span(), "interface extension cannot extend %q, which is defined as %s", v.Name().Text(), t.Kind)
		return
	}
	eid := newExtensionID()
	for _, f := range fieldsFromAST(v.Fields()) {
		f.Origin = Origin{ExtensionID: eid}
		t.Fields = append(t.Fields, f)
	}
	b.deferInterfaces(t, v.Implements())
	t.Directives = append(t.Directives, directivesFromAST(v.Directives())...)
}

func (b *builder) extendUnion(v ast.UnionTypeExtension) {
	t := b.schema.Types[v.Name().Text()]
	if t == nil {
		b.errorf(v.Node.Span(), "cannot extend undefined type %q", v.Name().Text())
		return
	}
	if t.Kind != UnionKind {
		b.errorf(v.Node.Span(), "union extension cannot extend %q, which is defined as %s", v.Name().Text(), t.Kind)
		return
	}
	b.deferMembers(t, v.Members())
	t.Directives = append(t.Directives, directivesFromAST(v.Directives())...)
}

func (b *builder) extendEnum(v ast.EnumTypeExtension) {
	t := b.schema.Types[v.Name().Text()]
	if t == nil {
		b.errorf(v.Node.Span(), "cannot extend undefined type %q", v.Name().Text())
		return
	}
	if t.Kind != EnumKind {
		b.errorf(v.Node.Span(), "enum extension cannot extend %q, which is defined as %s", v.Name().Text(), t.Kind)
		return
	}
	eid := newExtensionID()
	for _, ev := range v.Values() {
		desc, _ := ev.Description()
		t.EnumValues = append(t.EnumValues, &EnumValueDef{
			Name: ev.Name().Text(), Description: desc,
			Directives: directivesFromAST(ev.Directives()), Origin: Origin{ExtensionID: eid},
		})
	}
	t.Directives = append(t.Directives, directivesFromAST(v.Directives())...)
}

func (b *builder) extendInputObject(v ast.InputObjectTypeExtension) {
	t := b.schema.Types[v.Name().Text()]
	if t == nil {
		b.errorf(v.Node.Span(), "cannot extend undefined type %q", v.Name().Text())
		return
	}
	if t.Kind != InputObjectKind {
		b.errorf(v.Node.Span(), "input object extension cannot extend %q, which is defined as %s", v.Name().Text(), t.Kind)
		return
	}
	eid := newExtensionID()
	for _, f := range inputValuesFromAST(v.Fields()) {
		f.Origin = Origin{ExtensionID: eid}
		t.InputFields = append(t.InputFields, f)
	}
	t.Directives = append(t.Directives, directivesFromAST(v.Directives())...)
}
