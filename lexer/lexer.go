// Package lexer tokenizes GraphQL source text into a lossless token
// stream with byte-offset spans.
//
// A single forward scan classifies each byte; whitespace, commas and
// comments are emitted as trivia tokens rather than discarded, so the
// CST built from this stream can reproduce its input exactly.
package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/rangetable"

	"github.com/shyptr/gqlcore/source"
	"github.com/shyptr/gqlcore/token"
)

// Token is one lexical unit: its kind, exact source text, and span.
// Error tokens additionally carry Message, the diagnostic text the
// parser surfaces verbatim.
type Token struct {
	Kind    token.Kind
	Text    string
	Span    source.Span
	Message string
}

// letterOrDigit is the Unicode fallback classification table consulted
// once a byte falls off the ASCII fast path. GraphQL's Name production is
// ASCII-only, so any codepoint in this table is never a valid Name
// character, but it lets the lexer tell "a letter from another script"
// (reported as an invalid Name character) apart from stray punctuation
// or control bytes (reported as a generic invalid character).
var letterOrDigit = rangetable.Merge(unicode.L, unicode.N)

func isUnicodeLetterOrDigit(r rune) bool {
	return unicode.Is(letterOrDigit, r)
}

// Lexer produces Tokens from a single source file. It holds no
// cross-call state beyond its own scan position.
type Lexer struct {
	file       source.FileID
	text       string
	pos        int // byte offset of the next unread byte
	tokenLimit int // 0 means unbounded
	tokenCount int
	halted     bool
}

// New creates a Lexer over text attributed to file. tokenLimit of 0
// means unbounded.
func New(file source.FileID, text string, tokenLimit int) *Lexer {
	return &Lexer{file: file, text: text, tokenLimit: tokenLimit}
}

// Clone returns an independent copy of l at its current scan position.
// The parser uses this for the rare case where a single token of
// lookahead beyond the buffered stream is needed (disambiguating
// `extend <keyword>`) without disturbing the real lexer's token-limit
// counter. The clone does not share the original's halted/tokenCount
// bookkeeping going forward; it is discarded after one probe.
func (l *Lexer) Clone() *Lexer {
	cp := *l
	return &cp
}

// asciiNameStart/asciiNameCont are the ASCII fast path: lookup tables
// consulted before falling through to full Unicode handling.
var asciiNameStart [128]bool
var asciiNameCont [128]bool
var asciiDigit [128]bool

func init() {
	for c := byte('a'); c <= 'z'; c++ {
		asciiNameStart[c] = true
		asciiNameCont[c] = true
	}
	for c := byte('A'); c <= 'Z'; c++ {
		asciiNameStart[c] = true
		asciiNameCont[c] = true
	}
	asciiNameStart['_'] = true
	asciiNameCont['_'] = true
	for c := byte('0'); c <= '9'; c++ {
		asciiNameCont[c] = true
		asciiDigit[c] = true
	}
}

// TokenLimitReached reports whether lexing halted after token_limit was
// exceeded.
func (l *Lexer) TokenLimitReached() bool { return l.halted }

// Next returns the next Token, ending with an unbounded run of EOF
// tokens once the input is exhausted.
func (l *Lexer) Next() Token {
	if l.halted {
		return l.eof()
	}
	if l.pos >= len(l.text) {
		return l.eof()
	}

	start := l.pos
	b := l.text[l.pos]

	switch {
	case b == ' ' || b == '\t' || b == '\n' || b == '\r' || (b == 0xEF && l.matchBOM()):
		return l.lexWhitespace(start)
	case b == ',':
		l.pos++
		return l.emit(token.Comma, start)
	case b == '#':
		return l.lexComment(start)
	case b < 128 && asciiNameStart[b]:
		return l.lexName(start)
	case b == '"':
		return l.lexString(start)
	case b == '-' || (b < 128 && asciiDigit[b]):
		return l.lexNumber(start)
	case b == '.':
		return l.lexSpread(start)
	}

	if k, ok := token.Punct(b); ok {
		l.pos++
		return l.emit(k, start)
	}

	// Fall through to full Unicode handling: decode one rune and report
	// it as illegal. GraphQL source is ASCII-structural; any other
	// leading byte is always an error, but we must still advance by a
	// whole rune so downstream spans stay on UTF-8 boundaries.
	r, size := utf8.DecodeRuneInString(l.text[l.pos:])
	if r == utf8.RuneError && size <= 1 {
		size = 1
	}
	l.pos += size
	if isUnicodeLetterOrDigit(r) {
		return l.errorToken(start, "Invalid character %q in Name; Name must match /[_A-Za-z][_A-Za-z0-9]*/.", l.text[start:l.pos])
	}
	return l.errorToken(start, "Invalid character %q.", l.text[start:l.pos])
}

func (l *Lexer) matchBOM() bool {
	return l.pos == 0 && len(l.text) >= 3 && l.text[:3] == "\ufeff"
}

func (l *Lexer) lexWhitespace(start int) Token {
	if l.matchBOM() {
		l.pos += 3
	}
	for l.pos < len(l.text) {
		b := l.text[l.pos]
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			l.pos++
			continue
		}
		break
	}
	return l.emitTrivia(token.Whitespace, start)
}

func (l *Lexer) lexComment(start int) Token {
	l.pos++ // '#'
	for l.pos < len(l.text) {
		b := l.text[l.pos]
		if b == '\n' || b == '\r' {
			break
		}
		l.pos++
	}
	return l.emitTrivia(token.Comment, start)
}

func (l *Lexer) lexSpread(start int) Token {
	if l.pos+3 <= len(l.text) && l.text[l.pos:l.pos+3] == "..." {
		l.pos += 3
		return l.emit(token.Spread, start)
	}
	l.pos++
	return l.errorToken(start, `Invalid character "."; perhaps you meant "..."?`)
}

func (l *Lexer) lexName(start int) Token {
	l.pos++
	for l.pos < len(l.text) {
		b := l.text[l.pos]
		if b < 128 && asciiNameCont[b] {
			l.pos++
			continue
		}
		break
	}
	return l.emit(token.Name, start)
}

// lexNumber greedily consumes the longest numeric prefix per the GraphQL
// IntValue/FloatValue grammar, then validates the shape.
func (l *Lexer) lexNumber(start int) Token {
	isFloat := false

	if l.text[l.pos] == '-' {
		l.pos++
	}
	if l.pos >= len(l.text) || !l.digit() {
		return l.errorToken(start, "Invalid number, expected digit but got %s.", l.describeAt(l.pos))
	}
	if l.text[l.pos] == '0' {
		l.pos++
		if l.pos < len(l.text) && isDigitByte(l.text[l.pos]) {
			l.consumeDigits()
			return l.errorWithText(start, "Invalid number, unexpected digit after 0: %s.", l.describeAt(l.pos))
		}
	} else {
		l.consumeDigits()
	}

	if l.pos < len(l.text) && l.text[l.pos] == '.' {
		isFloat = true
		l.pos++
		if l.pos >= len(l.text) || !isDigitByte(l.text[l.pos]) {
			return l.errorWithText(start, "Invalid number, expected digit but got %s.", l.describeAt(l.pos))
		}
		l.consumeDigits()
	}

	if l.pos < len(l.text) && (l.text[l.pos] == 'e' || l.text[l.pos] == 'E') {
		isFloat = true
		l.pos++
		if l.pos < len(l.text) && (l.text[l.pos] == '+' || l.text[l.pos] == '-') {
			l.pos++
		}
		if l.pos >= len(l.text) || !isDigitByte(l.text[l.pos]) {
			return l.errorWithText(start, "Invalid number, expected digit but got %s.", l.describeAt(l.pos))
		}
		l.consumeDigits()
	}

	// "name-character following numeric literal".
	if l.pos < len(l.text) {
		b := l.text[l.pos]
		if b < 128 && asciiNameStart[b] {
			bad := l.text[l.pos]
			l.pos++
			return l.errorWithText(start, "Invalid number, expected digit but got %q.", string(bad))
		}
	}

	if isFloat {
		return l.emit(token.Float, start)
	}
	return l.emit(token.Int, start)
}

func (l *Lexer) digit() bool {
	return l.pos < len(l.text) && isDigitByte(l.text[l.pos])
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

func (l *Lexer) consumeDigits() {
	for l.pos < len(l.text) && isDigitByte(l.text[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) describeAt(pos int) string {
	if pos >= len(l.text) {
		return "<EOF>"
	}
	r, _ := utf8.DecodeRuneInString(l.text[pos:])
	return string(r)
}

// lexString handles both single-line strings and block strings
// ("""…"""). Block strings are lexed with escape handling, storing the
// raw text; common-indent stripping is deferred to consumption, in
// ast's StringValue accessor, not here.
func (l *Lexer) lexString(start int) Token {
	if l.pos+3 <= len(l.text) && l.text[l.pos:l.pos+3] == `"""` {
		return l.lexBlockString(start)
	}
	l.pos++ // opening quote
	for {
		if l.pos >= len(l.text) {
			return l.errorToken(start, "Unterminated string.")
		}
		b := l.text[l.pos]
		if b == '\n' || b == '\r' {
			return l.errorToken(start, "Unterminated string.")
		}
		if b == '"' {
			l.pos++
			return l.emit(token.String, start)
		}
		if b == '\\' {
			l.pos++
			if l.pos >= len(l.text) {
				return l.errorToken(start, "Unterminated string.")
			}
			if !isValidEscape(l.text[l.pos]) {
				bad := l.text[l.pos]
				l.pos++
				return l.errorToken(start, "Invalid character escape sequence: \\%c.", bad)
			}
			if l.text[l.pos] == 'u' {
				if !l.consumeUnicodeEscape() {
					return l.errorToken(start, "Invalid character escape sequence.")
				}
				continue
			}
			l.pos++
			continue
		}
		l.pos++
	}
}

func isValidEscape(b byte) bool {
	switch b {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
		return true
	default:
		return false
	}
}

func (l *Lexer) consumeUnicodeEscape() bool {
	l.pos++ // 'u'
	if l.pos+4 > len(l.text) {
		return false
	}
	for i := 0; i < 4; i++ {
		b := l.text[l.pos+i]
		if !isHexDigit(b) {
			return false
		}
	}
	l.pos += 4
	return true
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func (l *Lexer) lexBlockString(start int) Token {
	l.pos += 3
	for {
		if l.pos+3 > len(l.text) {
			return l.errorToken(start, "Unterminated string.")
		}
		if l.text[l.pos:l.pos+3] == `"""` {
			l.pos += 3
			return l.emit(token.BlockString, start)
		}
		if l.text[l.pos] == '\\' && l.pos+4 <= len(l.text) && l.text[l.pos+1:l.pos+4] == `"""` {
			l.pos += 4
			continue
		}
		l.pos++
	}
}

func (l *Lexer) emit(k token.Kind, start int) Token {
	l.countToken(k)
	if l.halted {
		return l.haltToken(start)
	}
	return Token{Kind: k, Text: l.text[start:l.pos], Span: l.span(start)}
}

func (l *Lexer) emitTrivia(k token.Kind, start int) Token {
	return Token{Kind: k, Text: l.text[start:l.pos], Span: l.span(start)}
}

func (l *Lexer) errorToken(start int, format string, args ...interface{}) Token {
	l.countToken(token.Error)
	return Token{
		Kind:    token.Error,
		Text:    l.text[start:l.pos],
		Span:    l.span(start),
		Message: sprintf(format, args...),
	}
}

// errorWithText builds the same token as errorToken; call sites use it
// where the formatted message already embeds the offending slice.
func (l *Lexer) errorWithText(start int, format string, args ...interface{}) Token {
	return l.errorToken(start, format, args...)
}

func (l *Lexer) span(start int) source.Span {
	return source.Span{File: l.file, Start: uint32(start), End: uint32(l.pos)}
}

func (l *Lexer) eof() Token {
	return Token{Kind: token.EOF, Span: source.Span{File: l.file, Start: uint32(len(l.text)), End: uint32(len(l.text))}}
}

// countToken increments the non-trivia token counter and halts lexing
// once token_limit is exceeded.
func (l *Lexer) countToken(k token.Kind) {
	if k.IsTrivia() {
		return
	}
	l.tokenCount++
	if l.tokenLimit > 0 && l.tokenCount > l.tokenLimit {
		l.halted = true
	}
}

func (l *Lexer) haltToken(start int) Token {
	return Token{
		Kind:    token.Error,
		Span:    l.span(start),
		Message: "token limit reached",
	}
}

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
