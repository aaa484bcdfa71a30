package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shyptr/gqlcore/lexer"
	"github.com/shyptr/gqlcore/token"
)

// collect drains l to EOF, returning every emitted token including trivia.
func collect(l *lexer.Lexer) []lexer.Token {
	var out []lexer.Token
	for {
		tok := l.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func TestLosslessConcatenation(t *testing.T) {
	src := "type Query {\n  hello: String!\n}\n"
	l := lexer.New(1, src, 0)
	toks := collect(l)

	var buf string
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			continue
		}
		buf += tok.Text
	}
	assert.Equal(t, src, buf)
}

func TestNameAndPunctuation(t *testing.T) {
	l := lexer.New(1, "type Query{hello:String!}", 0)
	var kinds []token.Kind
	for {
		tok := l.Next()
		if tok.Kind == token.EOF {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.Name, token.Whitespace, token.Name, token.BraceL,
		token.Name, token.Colon, token.Name, token.Bang, token.BraceR,
	}, kinds)
}

func TestNumberLiterals(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{"123", token.Int},
		{"-123", token.Int},
		{"0", token.Int},
		{"1.5", token.Float},
		{"1e10", token.Float},
		{"1.5e-10", token.Float},
	}
	for _, c := range cases {
		l := lexer.New(1, c.src, 0)
		tok := l.Next()
		assert.Equal(t, c.kind, tok.Kind, "source %q", c.src)
		assert.Equal(t, c.src, tok.Text)
	}
}

func TestInvalidLeadingZeroIsError(t *testing.T) {
	l := lexer.New(1, "013", 0)
	tok := l.Next()
	assert.Equal(t, token.Error, tok.Kind)
}

func TestNameCharacterAfterNumberIsError(t *testing.T) {
	l := lexer.New(1, "123abc", 0)
	tok := l.Next()
	assert.Equal(t, token.Error, tok.Kind)
}

func TestUnterminatedStringIsError(t *testing.T) {
	l := lexer.New(1, `"abc`, 0)
	tok := l.Next()
	assert.Equal(t, token.Error, tok.Kind)
}

func TestBlockStringConsumesEscapedTripleQuote(t *testing.T) {
	src := `"""a \""" b"""`
	l := lexer.New(1, src, 0)
	tok := l.Next()
	assert.Equal(t, token.BlockString, tok.Kind)
	assert.Equal(t, src, tok.Text)
}

func TestCommentRunsToEndOfLine(t *testing.T) {
	l := lexer.New(1, "# a comment\nname", 0)
	tok := l.Next()
	assert.Equal(t, token.Comment, tok.Kind)
	assert.Equal(t, "# a comment", tok.Text)
}

func TestTokenLimitHaltsLexing(t *testing.T) {
	l := lexer.New(1, "one two three four", 2)
	var kinds []token.Kind
	for {
		tok := l.Next()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF || l.TokenLimitReached() {
			break
		}
	}
	assert.True(t, l.TokenLimitReached())
}

func TestSpreadRequiresThreeDots(t *testing.T) {
	l := lexer.New(1, "..", 0)
	tok := l.Next()
	assert.Equal(t, token.Error, tok.Kind)
}
