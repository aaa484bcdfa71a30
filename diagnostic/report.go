package diagnostic

import (
	"fmt"
	"strings"

	"github.com/shyptr/gqlcore/source"
)

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiBold   = "\x1b[1m"
	ansiReset  = "\x1b[0m"
)

// Report renders d against fset: the offending source line, a caret
// under the primary span, labels under secondary spans, and a `help:`
// footer when present. The color
// flag is the builder option the same section requires.
func Report(fset *source.FileSet, d Diagnostic, color bool) string {
	var b strings.Builder

	sev := d.Severity.String()
	if color {
		c := ansiRed
		if d.Severity == SeverityWarning {
			c = ansiYellow
		}
		fmt.Fprintf(&b, "%s%s%s%s: %s\n", ansiBold, c, sev, ansiReset, d.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s\n", sev, d.Message)
	}

	writeSpanBlock(&b, fset, d.Primary, "", color)
	for _, l := range d.Labels {
		writeSpanBlock(&b, fset, l.Span, l.Message, color)
	}

	if d.Help != "" {
		writeFooter(&b, "help", d.Help, color, ansiBlue)
	}
	if d.Note != "" {
		writeFooter(&b, "note", d.Note, color, ansiBlue)
	}
	return b.String()
}

func writeFooter(b *strings.Builder, label, text string, color bool, c string) {
	if color {
		fmt.Fprintf(b, "  %s%s%s: %s\n", ansiBold+c, label, ansiReset, text)
	} else {
		fmt.Fprintf(b, "  %s: %s\n", label, text)
	}
}

func writeSpanBlock(b *strings.Builder, fset *source.FileSet, span source.Span, label string, color bool) {
	if fset == nil || span.IsZero() {
		return
	}
	src := fset.Get(span.File)
	if src == nil {
		return
	}
	pos := fset.Position(span.File, span.Start)
	line := fset.Line(span.File, pos.Line)

	fmt.Fprintf(b, "   --> %s:%d:%d\n", src.Path(), pos.Line, pos.Column)
	fmt.Fprintf(b, "    | %s\n", line)

	caretLen := int(span.End - span.Start)
	if caretLen < 1 {
		caretLen = 1
	}
	padding := pos.Column - 1
	if padding < 0 {
		padding = 0
	}
	if padding > len(line) {
		padding = len(line)
	}
	caret := strings.Repeat(" ", padding) + strings.Repeat("^", caretLen)
	if color {
		fmt.Fprintf(b, "    | %s%s%s", ansiBold+ansiRed, caret, ansiReset)
	} else {
		fmt.Fprintf(b, "    | %s", caret)
	}
	if label != "" {
		fmt.Fprintf(b, " %s", label)
	}
	b.WriteString("\n")
}

// ReportAll renders every diagnostic in ds, separated by blank lines.
func ReportAll(fset *source.FileSet, ds []Diagnostic, color bool) string {
	parts := make([]string, 0, len(ds))
	for _, d := range ds {
		parts = append(parts, Report(fset, d, color))
	}
	return strings.Join(parts, "\n")
}
