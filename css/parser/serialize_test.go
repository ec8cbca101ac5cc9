package parser

import (
	"testing"

	tu "github.com/benoitkugler/cssom/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestIdentifiers(t *testing.T) {
	source := "\fezeze"
	ref := tokenizeString(source, false)
	resToTest := tokenizeString(Serialize(ref), false)
	tu.AssertEqual(t, resToTest[1].(Ident).Value, ref[1].(Ident).Value)

	tu.AssertEqual(t, SerializeIdentifier("1a"), `\31 a`)
	tu.AssertEqual(t, SerializeIdentifier("--my-space"), "--my-space")
	tu.AssertEqual(t, SerializeIdentifier("a b"), `a\ b`)
}

func TestSerializeString(t *testing.T) {
	tu.AssertEqual(t, SerializeString(`a"b`), `"a\"b"`)
	tu.AssertEqual(t, SerializeString("l1\nl2"), `"l1\A l2"`)
	tu.AssertEqual(t, SerializeString("tab\there"), `"tab\9 here"`)
	tu.AssertEqual(t, Serialize([]Token{URL{Value: "a b(1).png"}}), `url(a\ b\(1\).png)`)
}

func TestControlEscapes(t *testing.T) {
	tu.AssertEqual(t, SerializeIdentifier("a\tb"), `a\9 b`)
	tu.AssertEqual(t, SerializeIdentifier("\n"), `\A `)
	tu.AssertEqual(t, SerializeIdentifier("-1"), `-\31 `)
	tu.AssertEqual(t, SerializeIdentifier("--"), "--")
	tu.AssertEqual(t, SerializeIdentifier("a.b"), `a\.b`)
	tu.AssertEqual(t, SerializeIdentifier("é"), "é")

	// the escaped form reads back as the original value
	for _, value := range []string{"a\tb", "1a", "a b", "x\x7fy"} {
		tokens := tokenizeString(SerializeIdentifier(value), true)
		require.Len(t, tokens, 1)
		tu.AssertEqual(t, tokens[0].(Ident).Value, value)
	}
}

func TestDimensionExponentUnit(t *testing.T) {
	tokens := tokenizeString(`1\65 -3`, true)
	require.Len(t, tokens, 1)
	dim, ok := tokens[0].(Dimension)
	require.True(t, ok)
	tu.AssertEqual(t, dim.Unit, "e-3")
	tu.AssertEqual(t, Serialize(tokens), `1\65 -3`)
}

func TestCommentEof(t *testing.T) {
	source := "/* foo "
	parsed := tokenizeString(source, false)
	tu.AssertEqual(t, Serialize(parsed), "/* foo */")
}

func TestBackslashDelim(t *testing.T) {
	source := "\\\nfoo"
	tokens := tokenizeString(source, false)
	tu.AssertEqual(t, len(tokens), 3)
	lit, ok := tokens[0].(Literal)
	tu.AssertEqual(t, ok, true)
	tu.AssertEqual(t, lit.Value, "\\")
	tu.AssertEqual(t, tokens[1].Kind(), KWhitespace)
	tu.AssertEqual(t, tokens[2].Kind(), KIdent)

	tokens = []Token{tokens[0], tokens[2]}
	tu.AssertEqual(t, Serialize(tokens), source)
}

func TestSerializeBadPairs(t *testing.T) {
	// two idents must not be merged
	tokens := []Token{NewIdent("a", Pos{}), NewIdent("b", Pos{})}
	tu.AssertEqual(t, Serialize(tokens), "a/**/b")

	tokens = []Token{NewNumber(1, Pos{}), NewLiteral("/", Pos{}), NewNumber(2.5, Pos{})}
	tu.AssertEqual(t, Serialize(tokens), "1/2.5")
}

func TestSerializeRoundTrip(t *testing.T) {
	for _, input := range []string{
		"calc(100% / 3 - 2 * 1em)",
		"rgb(1 2 3 / 50%)",
		`attr(data-x px, "a b")`,
		"url(a.png) U+0-7F",
		"[first] 1fr [second]",
	} {
		tu.AssertEqual(t, Serialize(tokenizeString(input, true)), input)
	}
}
