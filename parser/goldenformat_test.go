package parser_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/shyptr/gqlcore/parser"
)

// TestLosslessRoundTripMatchesGoldenSource golden-tests the lossless
// guarantee in its strongest form: concatenating the CST's tokens must
// reproduce byte-for-byte the exact source text that was parsed.
func TestLosslessRoundTripMatchesGoldenSource(t *testing.T) {
	src := "type Query {\n  hello: String!\n}\n"
	res := parser.Parse(1, src, parser.DefaultOptions())

	g := goldie.New(t)
	g.Assert(t, "roundtrip", []byte(res.Root.Text()))
}
