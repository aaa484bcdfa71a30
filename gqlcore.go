// Package gqlcore is the root convenience API over the lexer, parser,
// schema, executable, validate and introspect packages: parsing,
// validation, variable coercion and introspection execution collected
// here so a caller pulls in one import instead of wiring the pipeline
// by hand.
package gqlcore

import (
	"github.com/shyptr/gqlcore/ast"
	"github.com/shyptr/gqlcore/diagnostic"
	"github.com/shyptr/gqlcore/executable"
	"github.com/shyptr/gqlcore/introspect"
	"github.com/shyptr/gqlcore/ir"
	"github.com/shyptr/gqlcore/parser"
	"github.com/shyptr/gqlcore/schema"
	"github.com/shyptr/gqlcore/source"
	"github.com/shyptr/gqlcore/validate"
)

// ParseSchema parses text as schema source, building a Schema directly
// from it. Combined diagnostics from parsing and schema-building are
// returned together.
func ParseSchema(fset *source.FileSet, path, text string) (*schema.Schema, []diagnostic.Diagnostic) {
	file := fset.Add(path, text, source.Schema)
	res := parser.Parse(file, text, parser.DefaultOptions())
	doc := ast.NewDocument(res.Root)
	built := schema.Build(doc.Definitions())

	diags := append(res.Diagnostics, built.Diagnostics...)
	return built.Schema, diags
}

// ParseExecutable parses text as executable source and resolves it
// against sch.
func ParseExecutable(fset *source.FileSet, sch *schema.Schema, path, text string) (*executable.Document, []diagnostic.Diagnostic) {
	file := fset.Add(path, text, source.Executable)
	res := parser.Parse(file, text, parser.DefaultOptions())
	doc := ast.NewDocument(res.Root)
	built := executable.Build(doc.Definitions(), sch)

	diags := append(res.Diagnostics, built.Diagnostics...)
	return built.Document, diags
}

// ValidateSchema runs every schema-level validation rule.
func ValidateSchema(sch *schema.Schema) []diagnostic.Diagnostic {
	return validate.Schema(sch, validate.DefaultOptions())
}

// ValidateExecutable runs every executable-level validation rule.
func ValidateExecutable(sch *schema.Schema, doc *executable.Document) []diagnostic.Diagnostic {
	return validate.Executable(sch, doc, validate.DefaultOptions())
}

// CoerceVariables coerces raw variable values against op's declared
// variable types, applying defaults for omitted ones.
func CoerceVariables(sch *schema.Schema, op *executable.Operation, raw map[string]ir.Value) (map[string]ir.Value, error) {
	return introspect.CoerceVariables(sch, op, raw)
}

// CheckIntrospectionDepth reports a request error if op's selection
// set would force introspection resolution past the depth guard.
func CheckIntrospectionDepth(op *executable.Operation) error {
	return introspect.CheckDepth(op)
}

// ExecuteIntrospection answers the introspection subset of op against
// sch.
func ExecuteIntrospection(sch *schema.Schema, op *executable.Operation, variables map[string]ir.Value) *introspect.Response {
	return introspect.Execute(sch, op, variables)
}
