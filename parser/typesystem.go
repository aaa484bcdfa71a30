package parser

import (
	"github.com/shyptr/gqlcore/cst"
	"github.com/shyptr/gqlcore/token"
)

// This file covers the type-system grammar productions: schema
// definitions/extensions, the kind-specific type definitions and
// their extensions, directive definitions, and the shared sub-grammars
// (arguments definitions, input value definitions, directive
// locations) they're built from.

func (p *parser) parseSchemaDefinition() {
	if !p.enterRule() {
		p.abortRule(cst.SchemaDefinition)
		return
	}
	defer p.exitRule()

	p.b.StartNode(cst.SchemaDefinition)
	p.maybeParseDescription()
	p.bump() // 'schema'
	p.parseDirectives()
	if p.expect(token.BraceL) {
		for p.peek() != token.BraceR && p.peek() != token.EOF {
			mark := p.consumed
			p.parseOperationTypeDefinition()
			p.forceProgress(mark)
		}
		p.expect(token.BraceR)
	}
	p.b.FinishNode()
}

func (p *parser) parseOperationTypeDefinition() {
	p.b.StartNode(cst.OperationTypeDefinition)
	if p.peek() == token.Name {
		p.parseName() // query|mutation|subscription
	}
	p.expect(token.Colon)
	p.b.StartNode(cst.NamedType)
	p.parseName()
	p.b.FinishNode()
	p.b.FinishNode()
}

func (p *parser) parseScalarTypeDefinition() {
	p.b.StartNode(cst.ScalarTypeDefinition)
	p.maybeParseDescription()
	p.bump() // 'scalar'
	p.parseName()
	p.parseDirectives()
	p.b.FinishNode()
}

func (p *parser) parseObjectTypeDefinition() {
	if !p.enterRule() {
		p.abortRule(cst.ObjectTypeDefinition)
		return
	}
	defer p.exitRule()

	p.b.StartNode(cst.ObjectTypeDefinition)
	p.maybeParseDescription()
	p.bump() // 'type'
	p.parseName()
	p.parseImplementsInterfaces()
	p.parseDirectives()
	p.parseFieldsDefinition()
	p.b.FinishNode()
}

func (p *parser) parseImplementsInterfaces() {
	if !p.peekIsName("implements") {
		return
	}
	p.b.StartNode(cst.ImplementsInterfaces)
	p.bump()
	if p.peek() == token.Amp {
		p.bump()
	}
	p.b.StartNode(cst.NamedType)
	p.parseName()
	p.b.FinishNode()
	for p.peek() == token.Amp {
		p.bump()
		p.b.StartNode(cst.NamedType)
		p.parseName()
		p.b.FinishNode()
	}
	p.b.FinishNode()
}

func (p *parser) parseFieldsDefinition() {
	if p.peek() != token.BraceL {
		return
	}
	p.b.StartNode(cst.FieldsDefinition)
	p.bump()
	for p.peek() != token.BraceR && p.peek() != token.EOF {
		mark := p.consumed
		p.parseFieldDefinition()
		p.forceProgress(mark)
	}
	p.expect(token.BraceR)
	p.b.FinishNode()
}

func (p *parser) parseFieldDefinition() {
	p.b.StartNode(cst.FieldDefinition)
	p.maybeParseDescription()
	p.parseName()
	p.parseArgumentsDefinition()
	p.expect(token.Colon)
	p.parseType()
	p.parseDirectives()
	p.b.FinishNode()
}

func (p *parser) parseArgumentsDefinition() {
	if p.peek() != token.ParenL {
		return
	}
	p.b.StartNode(cst.ArgumentsDefinition)
	p.bump()
	for p.peek() != token.ParenR && p.peek() != token.EOF {
		mark := p.consumed
		p.parseInputValueDefinition()
		p.forceProgress(mark)
	}
	p.expect(token.ParenR)
	p.b.FinishNode()
}

func (p *parser) parseInputValueDefinition() {
	p.b.StartNode(cst.InputValueDefinition)
	p.maybeParseDescription()
	p.parseName()
	p.expect(token.Colon)
	p.parseType()
	if p.peek() == token.Equals {
		p.bump()
		p.parseValueLiteral(true)
	}
	p.parseDirectives()
	p.b.FinishNode()
}

func (p *parser) parseInterfaceTypeDefinition() {
	if !p.enterRule() {
		p.abortRule(cst.InterfaceTypeDefinition)
		return
	}
	defer p.exitRule()

	p.b.StartNode(cst.InterfaceTypeDefinition)
	p.maybeParseDescription()
	p.bump() // 'interface'
	p.parseName()
	p.parseImplementsInterfaces()
	p.parseDirectives()
	p.parseFieldsDefinition()
	p.b.FinishNode()
}

func (p *parser) parseUnionTypeDefinition() {
	p.b.StartNode(cst.UnionTypeDefinition)
	p.maybeParseDescription()
	p.bump() // 'union'
	p.parseName()
	p.parseDirectives()
	p.parseUnionMemberTypes()
	p.b.FinishNode()
}

func (p *parser) parseUnionMemberTypes() {
	if p.peek() != token.Equals {
		return
	}
	p.b.StartNode(cst.UnionMemberTypes)
	p.bump()
	if p.peek() == token.Pipe {
		p.bump()
	}
	p.b.StartNode(cst.NamedType)
	p.parseName()
	p.b.FinishNode()
	for p.peek() == token.Pipe {
		p.bump()
		p.b.StartNode(cst.NamedType)
		p.parseName()
		p.b.FinishNode()
	}
	p.b.FinishNode()
}

func (p *parser) parseEnumTypeDefinition() {
	p.b.StartNode(cst.EnumTypeDefinition)
	p.maybeParseDescription()
	p.bump() // 'enum'
	p.parseName()
	p.parseDirectives()
	p.parseEnumValuesDefinition()
	p.b.FinishNode()
}

func (p *parser) parseEnumValuesDefinition() {
	if p.peek() != token.BraceL {
		return
	}
	p.b.StartNode(cst.EnumValuesDefinition)
	p.bump()
	for p.peek() != token.BraceR && p.peek() != token.EOF {
		mark := p.consumed
		p.parseEnumValueDefinition()
		p.forceProgress(mark)
	}
	p.expect(token.BraceR)
	p.b.FinishNode()
}

func (p *parser) parseEnumValueDefinition() {
	p.b.StartNode(cst.EnumValueDefinition)
	p.maybeParseDescription()
	p.parseName()
	p.parseDirectives()
	p.b.FinishNode()
}

func (p *parser) parseInputObjectTypeDefinition() {
	p.b.StartNode(cst.InputObjectTypeDefinition)
	p.maybeParseDescription()
	p.bump() // 'input'
	p.parseName()
	p.parseDirectives()
	p.parseInputFieldsDefinition()
	p.b.FinishNode()
}

func (p *parser) parseInputFieldsDefinition() {
	if p.peek() != token.BraceL {
		return
	}
	p.b.StartNode(cst.InputFieldsDefinition)
	p.bump()
	for p.peek() != token.BraceR && p.peek() != token.EOF {
		mark := p.consumed
		p.parseInputValueDefinition()
		p.forceProgress(mark)
	}
	p.expect(token.BraceR)
	p.b.FinishNode()
}

func (p *parser) parseDirectiveDefinition() {
	p.b.StartNode(cst.DirectiveDefinition)
	p.maybeParseDescription()
	p.bump() // 'directive'
	p.expect(token.At)
	p.parseName()
	p.parseArgumentsDefinition()
	if p.peekIsName("repeatable") {
		p.bump()
	}
	if p.peekIsName("on") {
		p.bump()
		p.parseDirectiveLocations()
	} else {
		p.errorf(p.cur.Span, `expected "on", found %s`, p.describeCurrent())
	}
	p.b.FinishNode()
}

func (p *parser) parseDirectiveLocations() {
	p.b.StartNode(cst.DirectiveLocations)
	if p.peek() == token.Pipe {
		p.bump()
	}
	p.parseName()
	for p.peek() == token.Pipe {
		p.bump()
		p.parseName()
	}
	p.b.FinishNode()
}

// parseExtension handles `extend` followed by any type-system
// definition keyword. An unrecognized keyword after `extend` is a
// diagnostic that resyncs at the next top-level anchor. It needs one token of
// lookahead past `extend` itself, provided by secondTokenText.
func (p *parser) parseExtension() {
	switch p.secondTokenText() {
	case "schema":
		p.b.StartNode(cst.SchemaExtension)
		p.bump() // 'extend'
		p.bump() // 'schema'
		p.parseDirectives()
		if p.peek() == token.BraceL {
			p.bump()
			for p.peek() != token.BraceR && p.peek() != token.EOF {
				mark := p.consumed
				p.parseOperationTypeDefinition()
				p.forceProgress(mark)
			}
			p.expect(token.BraceR)
		}
		p.b.FinishNode()
	case "scalar":
		p.b.StartNode(cst.ScalarTypeExtension)
		p.bump()
		p.bump()
		p.parseName()
		p.parseDirectives()
		p.b.FinishNode()
	case "type":
		p.b.StartNode(cst.ObjectTypeExtension)
		p.bump()
		p.bump()
		p.parseName()
		p.parseImplementsInterfaces()
		p.parseDirectives()
		p.parseFieldsDefinition()
		p.b.FinishNode()
	case "interface":
		p.b.StartNode(cst.InterfaceTypeExtension)
		p.bump()
		p.bump()
		p.parseName()
		p.parseImplementsInterfaces()
		p.parseDirectives()
		p.parseFieldsDefinition()
		p.b.FinishNode()
	case "union":
		p.b.StartNode(cst.UnionTypeExtension)
		p.bump()
		p.bump()
		p.parseName()
		p.parseDirectives()
		p.parseUnionMemberTypes()
		p.b.FinishNode()
	case "enum":
		p.b.StartNode(cst.EnumTypeExtension)
		p.bump()
		p.bump()
		p.parseName()
		p.parseDirectives()
		p.parseEnumValuesDefinition()
		p.b.FinishNode()
	case "input":
		p.b.StartNode(cst.InputObjectTypeExtension)
		p.bump()
		p.bump()
		p.parseName()
		p.parseDirectives()
		p.parseInputFieldsDefinition()
		p.b.FinishNode()
	default:
		p.bump() // 'extend'
		p.errorf(p.cur.Span, "unexpected %s after \"extend\"", p.describeCurrent())
		p.recoverToAnchor()
	}
}

// secondTokenText reports the text of the Name token that would follow
// the current token, without disturbing parser state, by lexing a
// throwaway clone positioned right where the real lexer left off. Used
// to disambiguate `extend <keyword>` and `"description" <keyword>`
// without a general-purpose multi-token lookahead buffer.
func (p *parser) secondTokenText() string {
	probe := p.lex.Clone()
	for {
		t := probe.Next()
		if t.Kind.IsTrivia() {
			continue
		}
		if t.Kind == token.Name {
			return t.Text
		}
		return ""
	}
}
