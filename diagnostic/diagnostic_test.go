package diagnostic_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlcore/diagnostic"
	"github.com/shyptr/gqlcore/source"
)

func TestReportIncludesMessageSourceLineAndCaret(t *testing.T) {
	fset := source.NewFileSet()
	file := fset.Add("op.graphql", "query {\n  bogus\n}\n", source.Executable)

	d := diagnostic.New("field does not exist", source.Span{File: file, Start: 10, End: 15}, "field %q does not exist on type %q", "bogus", "Query")
	d = d.WithHelp("did you mean \"bogu\"?").WithNote("fields are case sensitive")

	out := diagnostic.Report(fset, d, false)
	assert.Contains(t, out, "error: field \"bogus\" does not exist on type \"Query\"")
	assert.Contains(t, out, "op.graphql:2:3")
	assert.Contains(t, out, "  bogus")
	assert.Contains(t, out, "^^^^^")
	assert.Contains(t, out, "help: did you mean \"bogu\"?")
	assert.Contains(t, out, "note: fields are case sensitive")
}

func TestReportColorWrapsSeverityAndCaretInAnsiCodes(t *testing.T) {
	fset := source.NewFileSet()
	file := fset.Add("op.graphql", "{ a }\n", source.Executable)

	d := diagnostic.New("field does not exist", source.Span{File: file, Start: 2, End: 3}, "boom")
	out := diagnostic.Report(fset, d, true)

	assert.Contains(t, out, "\x1b[31m")
	assert.Contains(t, out, "\x1b[0m")
	assert.NotContains(t, diagnostic.Report(fset, d, false), "\x1b[31m")
}

func TestWithLabelAppendsWithoutMutatingOriginal(t *testing.T) {
	base := diagnostic.New("duplicate field", source.Span{}, "field %q redefined", "a")
	labeled := base.WithLabel(source.Span{Start: 1, End: 2}, "previously defined here")

	assert.Empty(t, base.Labels)
	require.Len(t, labeled.Labels, 1)
	assert.Equal(t, "previously defined here", labeled.Labels[0].Message)
}

func TestReportAllJoinsEachDiagnosticWithBlankLine(t *testing.T) {
	fset := source.NewFileSet()
	ds := []diagnostic.Diagnostic{
		diagnostic.New("a", source.Span{}, "first"),
		diagnostic.New("b", source.Span{}, "second"),
	}
	out := diagnostic.ReportAll(fset, ds, false)
	assert.Equal(t, 2, strings.Count(out, "error:"))
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
}

// Every diagnostic's primary span must lie within the bounds of the
// file it names; a span referencing byte offsets beyond the source
// text, or a different FileID than the one being reported against,
// would be a locality bug.
func TestDiagnosticPrimarySpanIsWithinItsOwnFile(t *testing.T) {
	fset := source.NewFileSet()
	text := "type Query {\n  f: Int\n}\n"
	file := fset.Add("schema.graphql", text, source.Schema)

	d := diagnostic.New("duplicate type", source.Span{File: file, Start: 5, End: 10}, "boom")

	assert.Equal(t, file, d.Primary.File)
	assert.LessOrEqual(t, d.Primary.End, uint32(len(text)))
	assert.LessOrEqual(t, d.Primary.Start, d.Primary.End)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", diagnostic.SeverityError.String())
	assert.Equal(t, "warning", diagnostic.SeverityWarning.String())
}
