package parser

import (
	"testing"

	tu "github.com/benoitkugler/cssom/utils/testutils"
)

func TestTdewolffSameTree(t *testing.T) {
	for _, input := range []string{
		"12px auto",
		"calc(100% / 3 - 2 * (1em + 1px))",
		"rgb(1 2 3 / 50%), #abc",
		`attr(title string, "fallback") url(a.png) url("b.png")`,
		"color-mix(in oklch longer hue, red 40%, blue)",
		"U+4?? [a b] --custom",
	} {
		exp := tokenizeString(input, true)
		got := TokenizeTdewolff([]byte(input), true)
		tu.AssertEqual(t, Serialize(got), Serialize(exp))
		tu.AssertEqual(t, kinds(got), kinds(exp))
	}
}

func TestTdewolffPositions(t *testing.T) {
	tokens := TokenizeTdewolff([]byte("a\n  b"), true)
	tu.AssertEqual(t, tokens[0].Pos(), Pos{1, 1})
	tu.AssertEqual(t, tokens[2].Pos(), Pos{2, 3})
}
