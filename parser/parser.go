// Package parser implements a grammar-directed recursive-descent parser
// that drives a cst.Builder to produce a lossless concrete syntax tree,
// tolerating syntax errors via anchor-based recovery and enforcing
// configurable recursion/token limits.
//
// Each grammar production gets one function; peek/bump drive
// straight-line recursive descent, and every function emits CST builder
// events rather than allocating tree nodes of its own.
package parser

import (
	"github.com/shyptr/gqlcore/cst"
	"github.com/shyptr/gqlcore/diagnostic"
	"github.com/shyptr/gqlcore/lexer"
	"github.com/shyptr/gqlcore/source"
	"github.com/shyptr/gqlcore/token"
)

// Result is the outcome of a Parse call: the CST root plus whatever
// diagnostics were collected along the way. Parse always returns a
// tree whose span covers the full input.
type Result struct {
	Root        *cst.Node
	Diagnostics []diagnostic.Diagnostic
}

type parser struct {
	file    source.FileID
	lex     *lexer.Lexer
	b       *cst.Builder
	cur     lexer.Token
	pending []lexer.Token // buffered trivia, flushed on the next bump

	diags []diagnostic.Diagnostic

	depth            int
	recursionLimit   int
	recursionAborted bool

	tokenLimitReported bool

	consumed int // incremented by bump; lets bounded loops detect a stalled production
}

// Parse parses text (attributed to file) as a full GraphQL Document,
// accepting any mix of executable definitions and type-system
// definitions/extensions; callers decide afterward (via the schema and
// executable builders) which parts they care about.
func Parse(file source.FileID, text string, opts Options) Result {
	p := &parser{
		file:           file,
		lex:            lexer.New(file, text, opts.TokenLimit),
		b:              cst.NewBuilder(),
		recursionLimit: opts.RecursionLimit,
	}
	p.fill()

	p.b.StartNode(cst.Document)
	for p.peek() != token.EOF {
		mark := p.consumed
		p.parseDefinition()
		p.forceProgress(mark)
	}
	// Any trivia trailing the last definition still belongs inside the
	// document so the tree remains lossless.
	p.flushPending()
	root := p.b.FinishNode()

	return Result{Root: cst.NewRoot(root, file), Diagnostics: p.diags}
}

// fill advances the lexer until the next significant (non-trivia)
// token, buffering trivia so it can be attached to whichever node is
// open when the significant token is finally bumped.
func (p *parser) fill() {
	for {
		t := p.lex.Next()
		if t.Kind.IsTrivia() {
			p.pending = append(p.pending, t)
			continue
		}
		if t.Kind == token.Error {
			msg := t.Message
			if msg == "" {
				msg = "syntax error"
			}
			if msg == "token limit reached" {
				// The halt marker carries no source text: report it once
				// and end the stream there, so the tree never holds more
				// than token_limit non-trivia tokens.
				if !p.tokenLimitReported {
					p.tokenLimitReported = true
					p.diags = append(p.diags, diagnostic.New("token limit", t.Span, "%s", msg))
				}
				p.cur = lexer.Token{Kind: token.EOF, Span: t.Span}
				return
			}
			p.diags = append(p.diags, diagnostic.New("syntax error", t.Span, "%s", msg))
			// An error token still occupies a position in the stream:
			// surface it to the caller so expect()/recovery can bump it
			// into an Error node, preserving losslessness.
			p.cur = t
			return
		}
		p.cur = t
		return
	}
}

func (p *parser) peek() token.Kind { return p.cur.Kind }

func (p *parser) peekIsName(name string) bool {
	return p.cur.Kind == token.Name && p.cur.Text == name
}

func (p *parser) flushPending() {
	for _, t := range p.pending {
		p.b.Token(cst.TokenKind(t.Kind), t.Text)
	}
	p.pending = p.pending[:0]
}

// bump consumes the current token unconditionally, emitting any
// buffered trivia first, then advances.
func (p *parser) bump() {
	p.flushPending()
	p.b.Token(cst.TokenKind(p.cur.Kind), p.cur.Text)
	p.consumed++
	p.fill()
}

// forceProgress bumps the current token, unwrapped, if nothing was
// consumed since mark. A malformed sub-production (e.g. a Name or Colon
// expected where neither appears) can legitimately decline to consume
// anything; without this, the bounded loop calling it would retry the
// same production against the same token forever.
func (p *parser) forceProgress(mark int) {
	if p.consumed == mark && p.peek() != token.EOF {
		p.bump()
	}
}

// expect bumps the current token if it matches kind, recording a
// diagnostic and leaving the stream position unchanged otherwise.
func (p *parser) expect(kind token.Kind) bool {
	if p.cur.Kind == kind {
		p.bump()
		return true
	}
	p.errorf(p.cur.Span, "expected %s, found %s", kind, p.describeCurrent())
	return false
}

func (p *parser) describeCurrent() string {
	if p.cur.Kind == token.EOF {
		return "<EOF>"
	}
	if p.cur.Kind == token.Name {
		return p.cur.Text
	}
	return p.cur.Kind.String()
}

func (p *parser) errorf(span source.Span, format string, args ...interface{}) {
	p.diags = append(p.diags, diagnostic.New("syntax error", span, format, args...))
}

// enterRule guards recursive descent with a depth budget. Callers that get false back must unwind without
// recursing further.
func (p *parser) enterRule() bool {
	p.depth++
	if p.depth > p.recursionLimit {
		if !p.recursionAborted {
			p.errorf(p.cur.Span, "recursion limit reached")
			p.recursionAborted = true
		}
		return false
	}
	return true
}

func (p *parser) exitRule() { p.depth-- }

// abortRule finishes an empty node of kind after enterRule refused entry
//. It still bumps
// the current token, if any remains, into that node: a caller looping
// on a following delimiter (a selection set's `}`, an argument list's
// `)`, ...) must see the token stream advance, or it would re-invoke the
// same aborted production forever on an unconsumed token.
func (p *parser) abortRule(kind cst.Kind) {
	p.b.StartNode(kind)
	if p.peek() != token.EOF {
		p.bump()
	}
	p.b.FinishNode()
	p.exitRule()
}

// recoverToAnchor bumps tokens, wrapping them into an Error node, until
// it reaches EOF, a top-level recovery anchor keyword, or `{`.
func (p *parser) recoverToAnchor() {
	cp := p.b.Checkpoint()
	bumped := false
	for {
		switch p.peek() {
		case token.EOF, token.BraceL:
			goto done
		case token.Name:
			if token.IsRecoveryAnchor(p.cur.Text) {
				goto done
			}
		}
		p.bump()
		bumped = true
	}
done:
	if bumped {
		p.b.WrapSince(cp, cst.Error)
	}
}

// parseName parses a bare Name token into a Name node.
func (p *parser) parseName() bool {
	if p.peek() != token.Name {
		p.errorf(p.cur.Span, "expected a Name, found %s", p.describeCurrent())
		return false
	}
	p.b.StartNode(cst.Name)
	p.bump()
	p.b.FinishNode()
	return true
}

// parseDefinition parses one top-level Definition and recovers to the
// next anchor on failure. A leading String/BlockString
// description (GraphQL October 2021 grammar) may precede any
// type-system definition; the keyword actually driving dispatch is
// found by a one-token lookahead past it, but the description itself is
// consumed *inside* the chosen production, as its first child, by
// maybeParseDescription.
func (p *parser) parseDefinition() {
	kw := p.cur.Text
	if isDescriptionStart(p.peek()) {
		kw = p.lookaheadNameAfterDescription()
	} else if p.peek() == token.BraceL {
		p.parseShorthandQuery()
		return
	} else if p.peek() != token.Name {
		p.errorf(p.cur.Span, "unexpected %s", p.describeCurrent())
		p.recoverToAnchor()
		return
	}

	switch kw {
	case "query", "mutation", "subscription":
		p.parseOperationDefinition()
	case "fragment":
		p.parseFragmentDefinition()
	case "schema":
		p.parseSchemaDefinition()
	case "scalar":
		p.parseScalarTypeDefinition()
	case "type":
		p.parseObjectTypeDefinition()
	case "interface":
		p.parseInterfaceTypeDefinition()
	case "union":
		p.parseUnionTypeDefinition()
	case "enum":
		p.parseEnumTypeDefinition()
	case "input":
		p.parseInputObjectTypeDefinition()
	case "directive":
		p.parseDirectiveDefinition()
	case "extend":
		p.parseExtension()
	default:
		p.errorf(p.cur.Span, "unexpected %s", p.describeCurrent())
		p.recoverToAnchor()
	}
}

func isDescriptionStart(k token.Kind) bool {
	return k == token.String || k == token.BlockString
}

// lookaheadNameAfterDescription reports the Name that follows a leading
// description token, without consuming anything, so parseDefinition can
// dispatch on it before the chosen production consumes the description
// itself.
func (p *parser) lookaheadNameAfterDescription() string {
	return p.secondTokenText()
}

// maybeParseDescription parses a leading String/BlockString as this
// definition's Description child, if present.
func (p *parser) maybeParseDescription() {
	if !isDescriptionStart(p.peek()) {
		return
	}
	p.b.StartNode(cst.Description)
	p.bump()
	p.b.FinishNode()
}

func (p *parser) parseShorthandQuery() {
	if !p.enterRule() {
		p.abortRule(cst.OperationDefinition)
		return
	}
	defer p.exitRule()
	p.b.StartNode(cst.OperationDefinition)
	p.parseSelectionSet()
	p.b.FinishNode()
}

func (p *parser) parseOperationDefinition() {
	if !p.enterRule() {
		p.abortRule(cst.OperationDefinition)
		return
	}
	defer p.exitRule()
	p.b.StartNode(cst.OperationDefinition)
	p.bump() // query|mutation|subscription keyword
	if p.peek() == token.Name {
		p.parseName()
	}
	p.parseVariableDefinitions()
	p.parseDirectives()
	p.parseSelectionSet()
	p.b.FinishNode()
}

func (p *parser) parseVariableDefinitions() {
	if p.peek() != token.ParenL {
		return
	}
	p.b.StartNode(cst.VariableDefinitions)
	p.bump()
	for p.peek() != token.ParenR && p.peek() != token.EOF {
		mark := p.consumed
		p.parseVariableDefinition()
		p.forceProgress(mark)
	}
	p.expect(token.ParenR)
	p.b.FinishNode()
}

func (p *parser) parseVariableDefinition() {
	p.b.StartNode(cst.VariableDefinition)
	p.parseVariable()
	p.expect(token.Colon)
	p.parseType()
	if p.peek() == token.Equals {
		p.bump()
		p.parseValueLiteral(true)
	}
	p.parseDirectives()
	p.b.FinishNode()
}

func (p *parser) parseVariable() {
	p.b.StartNode(cst.Variable)
	p.expect(token.Dollar)
	p.parseName()
	p.b.FinishNode()
}

// parseType parses a Type reference: Named, List or NonNull, resolving
// the known grammar ambiguity by parsing the inner type first and
// inspecting lookahead for `!`.
func (p *parser) parseType() {
	if !p.enterRule() {
		p.abortRule(cst.NamedType)
		return
	}
	defer p.exitRule()

	cp := p.b.Checkpoint()
	switch p.peek() {
	case token.BracketL:
		p.b.StartNode(cst.ListType)
		p.bump()
		p.parseType()
		p.expect(token.BracketR)
		p.b.FinishNode()
	default:
		p.b.StartNode(cst.NamedType)
		p.parseName()
		p.b.FinishNode()
	}

	if p.peek() == token.Bang {
		p.bump()
		p.b.WrapSince(cp, cst.NonNullType)
	}
}

func (p *parser) parseSelectionSet() {
	if !p.enterRule() {
		p.abortRule(cst.SelectionSet)
		return
	}
	defer p.exitRule()

	p.b.StartNode(cst.SelectionSet)
	if !p.expect(token.BraceL) {
		p.b.FinishNode()
		return
	}
	for p.peek() != token.BraceR && p.peek() != token.EOF {
		mark := p.consumed
		p.parseSelection()
		p.forceProgress(mark)
	}
	p.expect(token.BraceR)
	p.b.FinishNode()
}

func (p *parser) parseSelection() {
	if p.peek() == token.Spread {
		p.parseFragmentSelection()
		return
	}
	if p.peek() != token.Name {
		p.errorf(p.cur.Span, "unexpected %s in selection set", p.describeCurrent())
		p.recoverToAnchor()
		return
	}
	p.parseField()
}

func (p *parser) parseField() {
	if !p.enterRule() {
		p.abortRule(cst.Field)
		return
	}
	defer p.exitRule()

	p.b.StartNode(cst.Field)
	cp := p.b.Checkpoint()
	p.parseName()
	if p.peek() == token.Colon {
		p.b.WrapSince(cp, cst.Alias)
		p.bump()
		p.parseName()
	}
	p.parseArguments()
	p.parseDirectives()
	if p.peek() == token.BraceL {
		p.parseSelectionSet()
	}
	p.b.FinishNode()
}

func (p *parser) parseArguments() {
	if p.peek() != token.ParenL {
		return
	}
	p.b.StartNode(cst.Arguments)
	p.bump()
	for p.peek() != token.ParenR && p.peek() != token.EOF {
		mark := p.consumed
		p.parseArgument()
		p.forceProgress(mark)
	}
	p.expect(token.ParenR)
	p.b.FinishNode()
}

func (p *parser) parseArgument() {
	p.b.StartNode(cst.Argument)
	p.parseName()
	p.expect(token.Colon)
	p.parseValueLiteral(false)
	p.b.FinishNode()
}

// parseFragmentSelection parses `...` followed by either a fragment
// name (FragmentSpread) or an optional type condition + selection set
// (InlineFragment); one production covers both.
func (p *parser) parseFragmentSelection() {
	if !p.enterRule() {
		p.abortRule(cst.InlineFragment)
		return
	}
	defer p.exitRule()

	// The node kind is only known once the token after `...` is seen,
	// so the production is wrapped retroactively from a checkpoint.
	cp := p.b.Checkpoint()
	p.expect(token.Spread)
	if p.peek() == token.Name && !p.peekIsName("on") {
		p.parseName()
		p.parseDirectives()
		p.b.WrapSince(cp, cst.FragmentSpread)
		return
	}

	if p.peekIsName("on") {
		p.bump()
		p.b.StartNode(cst.NamedType)
		p.parseName()
		p.b.FinishNode()
	}
	p.parseDirectives()
	p.parseSelectionSet()
	p.b.WrapSince(cp, cst.InlineFragment)
}

func (p *parser) parseFragmentDefinition() {
	if !p.enterRule() {
		p.abortRule(cst.FragmentDefinition)
		return
	}
	defer p.exitRule()

	p.b.StartNode(cst.FragmentDefinition)
	p.bump() // 'fragment'
	if p.peekIsName("on") {
		p.errorf(p.cur.Span, `unexpected Name "on"`)
	}
	p.parseName()
	if !p.peekIsName("on") {
		p.errorf(p.cur.Span, `expected "on", found %s`, p.describeCurrent())
	} else {
		p.bump()
	}
	p.b.StartNode(cst.NamedType)
	p.parseName()
	p.b.FinishNode()
	p.parseDirectives()
	p.parseSelectionSet()
	p.b.FinishNode()
}

func (p *parser) parseDirectives() {
	if p.peek() != token.At {
		return
	}
	p.b.StartNode(cst.Directives)
	for p.peek() == token.At {
		p.parseDirective()
	}
	p.b.FinishNode()
}

func (p *parser) parseDirective() {
	p.b.StartNode(cst.Directive)
	p.bump() // '@'
	p.parseName()
	p.parseArguments()
	p.b.FinishNode()
}

// parseValueLiteral parses a Value; constOnly rejects Variable (used
// for default values and other "Const" grammar contexts).
func (p *parser) parseValueLiteral(constOnly bool) {
	if !p.enterRule() {
		p.abortRule(cst.NullValue)
		return
	}
	defer p.exitRule()

	switch p.peek() {
	case token.BracketL:
		p.parseListValue(constOnly)
	case token.BraceL:
		p.parseObjectValue(constOnly)
	case token.Dollar:
		if constOnly {
			p.errorf(p.cur.Span, "unexpected $; variables are not allowed in this context")
		}
		p.b.StartNode(cst.Variable)
		p.bump()
		p.parseName()
		p.b.FinishNode()
	case token.Int:
		p.b.StartNode(cst.IntValue)
		p.bump()
		p.b.FinishNode()
	case token.Float:
		p.b.StartNode(cst.FloatValue)
		p.bump()
		p.b.FinishNode()
	case token.String, token.BlockString:
		p.b.StartNode(cst.StringValue)
		p.bump()
		p.b.FinishNode()
	case token.Name:
		switch p.cur.Text {
		case "true", "false":
			p.b.StartNode(cst.BooleanValue)
			p.bump()
			p.b.FinishNode()
		case "null":
			p.b.StartNode(cst.NullValue)
			p.bump()
			p.b.FinishNode()
		default:
			p.b.StartNode(cst.EnumValue)
			p.bump()
			p.b.FinishNode()
		}
	default:
		p.errorf(p.cur.Span, "unexpected %s; expected a value", p.describeCurrent())
		p.b.StartNode(cst.NullValue)
		p.b.FinishNode()
	}
}

func (p *parser) parseListValue(constOnly bool) {
	p.b.StartNode(cst.ListValue)
	p.bump()
	for p.peek() != token.BracketR && p.peek() != token.EOF {
		mark := p.consumed
		p.parseValueLiteral(constOnly)
		p.forceProgress(mark)
	}
	p.expect(token.BracketR)
	p.b.FinishNode()
}

func (p *parser) parseObjectValue(constOnly bool) {
	p.b.StartNode(cst.ObjectValue)
	p.bump()
	for p.peek() != token.BraceR && p.peek() != token.EOF {
		mark := p.consumed
		p.parseObjectField(constOnly)
		p.forceProgress(mark)
	}
	p.expect(token.BraceR)
	p.b.FinishNode()
}

func (p *parser) parseObjectField(constOnly bool) {
	p.b.StartNode(cst.ObjectField)
	p.parseName()
	p.expect(token.Colon)
	p.parseValueLiteral(constOnly)
	p.b.FinishNode()
}
