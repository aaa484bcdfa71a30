// Package diagnostic defines the structured, source-annotated error/
// warning value every layer of gqlcore produces: a stable kind, a
// primary span, labeled secondary spans, help/note text and severity,
// collected into slices rather than returned as Go errors.
package diagnostic

import (
	"fmt"

	"github.com/shyptr/gqlcore/source"
)

// Severity distinguishes diagnostics that block further processing of
// a definition from advisory notes.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Label attaches a message to a secondary span, e.g. "previously
// defined here" or "implements `I` here".
type Label struct {
	Span    source.Span
	Message string
}

// Diagnostic is a stable error/warning kind, a primary span, any number
// of labeled secondary spans, and optional help/note text.
type Diagnostic struct {
	Kind     string
	Severity Severity
	Message  string
	Primary  source.Span
	Labels   []Label
	Help     string
	Note     string
}

func (d Diagnostic) Error() string { return d.Message }

// New builds an error-severity Diagnostic with a formatted message.
func New(kind string, primary source.Span, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Kind:     kind,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Primary:  primary,
	}
}

// WithLabel returns a copy of d with an additional secondary span.
func (d Diagnostic) WithLabel(span source.Span, message string) Diagnostic {
	d.Labels = append(append([]Label{}, d.Labels...), Label{Span: span, Message: message})
	return d
}

// WithHelp returns a copy of d carrying a help footer.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// WithNote returns a copy of d carrying a note footer.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Note = note
	return d
}
