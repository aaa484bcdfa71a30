// Package source maps file ids to source text and converts byte offsets
// to line/column positions for diagnostic rendering.
package source

import (
	"os"

	"github.com/pkg/errors"
	"github.com/shyptr/gqlcore/internal/fileid"
)

// FileID is a process-wide opaque identifier for an ingested Source.
// Equality is by value; it carries no lifetime beyond the process.
type FileID uint32

// Kind classifies what a Source's text may contain.
type Kind int

const (
	// Schema sources may only contain type-system definitions/extensions.
	Schema Kind = iota
	// Executable sources may only contain operations and fragments.
	Executable
	// Mixed sources may contain either, used by tooling that doesn't
	// separate the two (e.g. a single-file example schema + query).
	Mixed
)

func (k Kind) String() string {
	switch k {
	case Schema:
		return "schema"
	case Executable:
		return "executable"
	case Mixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// Source is an immutable piece of ingested GraphQL source text.
type Source struct {
	id   FileID
	path string
	text string
	kind Kind
}

func (s *Source) ID() FileID   { return s.id }
func (s *Source) Path() string { return s.path }
func (s *Source) Text() string { return s.text }
func (s *Source) Kind() Kind   { return s.kind }

// Span is a byte range within a single file. The zero Span is not a valid
// span; it marks a value with no source location, such as a diagnostic
// about a synthetic node that never appeared in source text.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// IsZero reports whether s is the unset/default span.
func (s Span) IsZero() bool {
	return s.File == 0 && s.Start == 0 && s.End == 0
}

// Union returns the smallest span covering both a and b. Both must share
// a File; mismatched files panic since that can only be a caller bug.
func (s Span) Union(o Span) Span {
	if s.IsZero() {
		return o
	}
	if o.IsZero() {
		return s
	}
	if s.File != o.File {
		panic("source: Union of spans from different files")
	}
	start, end := s.Start, s.End
	if o.Start < start {
		start = o.Start
	}
	if o.End > end {
		end = o.End
	}
	return Span{File: s.File, Start: start, End: end}
}

// Position is a 1-based line and column, as rendered in diagnostics.
type Position struct {
	Line   int
	Column int
}

// FileSet owns a collection of ingested Sources and answers line/column
// queries against them for diagnostic rendering.
type FileSet struct {
	files map[FileID]*Source
	// lineStarts caches, per file, the byte offset of the start of each
	// line, so repeated Position lookups are a binary search rather than
	// a rescan.
	lineStarts map[FileID][]uint32
}

// NewFileSet creates an empty set.
func NewFileSet() *FileSet {
	return &FileSet{
		files:      make(map[FileID]*Source),
		lineStarts: make(map[FileID][]uint32),
	}
}

// Add ingests literal text under path and returns its new FileID.
func (fs *FileSet) Add(path, text string, kind Kind) FileID {
	id := FileID(fileid.Next())
	fs.files[id] = &Source{id: id, path: path, text: text, kind: kind}
	fs.lineStarts[id] = computeLineStarts(text)
	return id
}

// AddFile reads path from disk and ingests it. This is a system-boundary
// operation; I/O errors are
// wrapped with github.com/pkg/errors so callers get a stack-annotated
// cause without the core diagnostic model needing to know
// about the filesystem.
func (fs *FileSet) AddFile(path string, kind Kind) (FileID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrapf(err, "source: reading %s", path)
	}
	return fs.Add(path, string(data), kind), nil
}

// Get returns the Source for id, or nil if unknown.
func (fs *FileSet) Get(id FileID) *Source {
	return fs.files[id]
}

func computeLineStarts(text string) []uint32 {
	starts := []uint32{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, uint32(i+1))
		}
	}
	return starts
}

// Position converts a byte offset in file id to a 1-based line/column.
// Columns count bytes since line start, the usual convention for
// ASCII-dominant source text.
func (fs *FileSet) Position(id FileID, offset uint32) Position {
	starts := fs.lineStarts[id]
	if len(starts) == 0 {
		return Position{Line: 1, Column: int(offset) + 1}
	}
	lo, hi := 0, len(starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return Position{Line: lo + 1, Column: int(offset-starts[lo]) + 1}
}

// Line returns the text of the given 1-based line number, without its
// trailing newline, for caret-annotated diagnostic rendering.
func (fs *FileSet) Line(id FileID, line int) string {
	src := fs.files[id]
	starts := fs.lineStarts[id]
	if src == nil || line < 1 || line > len(starts) {
		return ""
	}
	start := starts[line-1]
	var end uint32
	if line < len(starts) {
		end = starts[line] - 1
	} else {
		end = uint32(len(src.text))
	}
	if end > 0 && end <= uint32(len(src.text)) && src.text[end-1] == '\r' {
		end--
	}
	return src.text[start:end]
}
