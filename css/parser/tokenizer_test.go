package parser

import (
	"testing"

	tu "github.com/benoitkugler/cssom/utils/testutils"
)

func tokenizeString(css string, skipComments bool) []Token {
	return Tokenize([]byte(css), skipComments)
}

func kinds(l []Token) []Kind {
	out := make([]Kind, len(l))
	for i, t := range l {
		out[i] = t.Kind()
	}
	return out
}

func TestTokenizeKinds(t *testing.T) {
	for _, test := range []struct {
		input string
		exp   []Kind
	}{
		{"12px", []Kind{KDimension}},
		{"12.5% auto", []Kind{KPercentage, KWhitespace, KIdent}},
		{"calc(1px + 2em)", []Kind{KFunctionBlock}},
		{"#fff, 'a'", []Kind{KHash, KLiteral, KWhitespace, KString}},
		{"url(a.png) U+0-7F", []Kind{KURL, KWhitespace, KUnicodeRange}},
		{"[a b] (c) {d}", []Kind{KSquareBracketsBlock, KWhitespace, KParenthesesBlock, KWhitespace, KCurlyBracketsBlock}},
		{"16/9", []Kind{KNumber, KLiteral, KNumber}},
		{"@media", []Kind{KAtKeyword}},
		{"a)", []Kind{KIdent, KParseError}},
	} {
		tu.AssertEqual(t, kinds(tokenizeString(test.input, true)), test.exp)
	}
}

func TestTokenizeNumbers(t *testing.T) {
	tokens := tokenizeString("1 -2.5 +3e2 4PX 50%", true)
	tokens = RemoveWhitespace(tokens)
	tu.AssertEqual(t, len(tokens), 5)

	n := tokens[0].(Number)
	tu.AssertEqual(t, n.ValueF, 1.)
	tu.AssertEqual(t, n.IsInt(), true)

	n = tokens[1].(Number)
	tu.AssertEqual(t, n.ValueF, -2.5)
	tu.AssertEqual(t, n.IsInt(), false)

	n = tokens[2].(Number)
	tu.AssertEqual(t, n.ValueF, 300.)
	tu.AssertEqual(t, n.Value, "+3e2")

	d := tokens[3].(Dimension)
	tu.AssertEqual(t, d.ValueF, 4.)
	tu.AssertEqual(t, d.Unit, "PX") // case is preserved by the tokenizer

	p := tokens[4].(Percentage)
	tu.AssertEqual(t, p.ValueF, 50.)
}

func TestTokenizeNested(t *testing.T) {
	tokens := tokenizeString("calc(2 * (1px + min(3em, 4px)))", true)
	tu.AssertEqual(t, len(tokens), 1)
	fn := tokens[0].(FunctionBlock)
	tu.AssertEqual(t, fn.Name, "calc")
	args := RemoveWhitespace(fn.Arguments)
	tu.AssertEqual(t, kinds(args), []Kind{KNumber, KLiteral, KParenthesesBlock})
	inner := RemoveWhitespace(args[2].(ParenthesesBlock).Arguments)
	tu.AssertEqual(t, kinds(inner), []Kind{KDimension, KLiteral, KFunctionBlock})
	tu.AssertEqual(t, inner[2].(FunctionBlock).Name, "min")

	// unclosed blocks are closed at EOF
	tokens = tokenizeString("rgb(1 2 3", true)
	tu.AssertEqual(t, len(tokens), 1)
	tu.AssertEqual(t, len(RemoveWhitespace(tokens[0].(FunctionBlock).Arguments)), 3)
}

func TestTokenizeUnicodeRange(t *testing.T) {
	for _, test := range []struct {
		input      string
		start, end uint32
		wildcard   bool
	}{
		{"U+26", 0x26, 0x26, false},
		{"u+0-7F", 0, 0x7F, false},
		{"U+4??", 0x400, 0x4FF, true},
	} {
		tokens := tokenizeString(test.input, true)
		tu.AssertEqual(t, len(tokens), 1)
		ur := tokens[0].(UnicodeRange)
		tu.AssertEqual(t, ur.Start, test.start)
		tu.AssertEqual(t, ur.End, test.end)
		tu.AssertEqual(t, ur.Wildcard, test.wildcard)
	}
}

func TestTokenizeStrings(t *testing.T) {
	tokens := tokenizeString(`"a\"b" 'c\64 ' url( "d.png" )`, true)
	tokens = RemoveWhitespace(tokens)
	tu.AssertEqual(t, tokens[0].(String).Value, `a"b`)
	tu.AssertEqual(t, tokens[1].(String).Value, "cd")
	fn := tokens[2].(FunctionBlock)
	tu.AssertEqual(t, fn.Name, "url")
	tu.AssertEqual(t, RemoveWhitespace(fn.Arguments)[0].(String).Value, "d.png")

	tokens = tokenizeString(`"unclosed`, true)
	tu.AssertEqual(t, kinds(tokens), []Kind{KString, KParseError})
}

func TestTokenizePositions(t *testing.T) {
	tokens := tokenizeString("a\n  b", true)
	tu.AssertEqual(t, tokens[0].Pos(), Pos{1, 1})
	tu.AssertEqual(t, tokens[2].Pos(), Pos{2, 3})
}

func TestNoSkipComments(t *testing.T) {
	source := `
    /* foo */
    @media print {
        #foo {
            width: /* bar*/4px;
            color: green;
        }
    }
    `
	tokens := tokenizeString(source, false)
	tu.AssertEqual(t, Serialize(tokens), source)
}

func TestDataurl(t *testing.T) {
	input := `@import "data:text/css;charset=utf-16le;base64,\
				bABpAHsAYwBvAGwAbwByADoAcgBlAGQAfQA=";`
	s := Serialize(tokenizeString(input, true))
	tu.AssertEqual(t, s, `@import "data:text/css;charset=utf-16le;base64,				bABpAHsAYwBvAGwAbwByADoAcgBlAGQAfQA=";`)
}
