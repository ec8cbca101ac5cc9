package parser

import (
	"bytes"
	"strconv"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// TokenizeTdewolff builds the same token tree as [Tokenize], using
// the lexer of github.com/tdewolff/parse as front-end.
// Blocks are matched here, since the tdewolff lexer
// only emits a flat stream.
func TokenizeTdewolff(input []byte, skipComments bool) []Token {
	lexer := css.NewLexer(parse.NewInputBytes(input))

	var (
		ts      []Token
		stack   []nestedBlock
		endChar byte
		line    = 1
		column  = 1
	)
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken { // EOF or invalid input
			break
		}
		tokenPos := newPosition(line, column)
		// advance the position for the next token
		if nl := bytes.Count(data, []byte{'\n'}); nl != 0 {
			line += nl
			column = len(data) - bytes.LastIndexByte(data, '\n')
		} else {
			column += len(data)
		}

		switch tt {
		case css.WhitespaceToken:
			ts = append(ts, Whitespace{pos: tokenPos, Value: string(data)})
		case css.CommentToken:
			if !skipComments {
				content := bytes.TrimPrefix(data, []byte("/*"))
				content = bytes.TrimSuffix(content, []byte("*/"))
				ts = append(ts, Comment{pos: tokenPos, Value: string(content)})
			}
		case css.IdentToken, css.CustomPropertyNameToken:
			value, _ := consumeIdent(data, 0)
			ts = append(ts, Ident{pos: tokenPos, Value: value})
		case css.AtKeywordToken:
			value, _ := consumeIdent(data, 1)
			ts = append(ts, AtKeyword{pos: tokenPos, Value: value})
		case css.HashToken:
			value, _ := consumeIdent(data, 1)
			ts = append(ts, Hash{pos: tokenPos, Value: value, isID: len(data) > 1 && isIdentStart(data, 1)})
		case css.StringToken, css.BadStringToken:
			value, _, _, err := consumeQuotedString(data, 0)
			ts = append(ts, String{pos: tokenPos, Value: value, isErr: err != nil})
			if tt == css.BadStringToken {
				ts = append(ts, ParseError{pos: tokenPos, kind: errBadString, Message: "bad string token"})
			}
		case css.URLToken:
			ts = append(ts, tdewolffURL(data, tokenPos))
		case css.BadURLToken:
			ts = append(ts, ParseError{pos: tokenPos, kind: errBadURL, Message: "bad url token"})
		case css.NumberToken, css.PercentageToken, css.DimensionToken:
			ts = append(ts, tdewolffNumeric(data, tokenPos))
		case css.UnicodeRangeToken:
			start, end, wildcard, _, err := consumeUnicodeRange(data, 2)
			if err != nil {
				ts = append(ts, ParseError{pos: tokenPos, kind: errInvalid, Message: err.Error()})
			} else {
				ts = append(ts, UnicodeRange{pos: tokenPos, Start: uint32(start), End: uint32(end), Wildcard: wildcard})
			}
		case css.FunctionToken:
			name, _ := consumeIdent(data[:len(data)-1], 0)
			ts = append(ts, FunctionBlock{pos: tokenPos, Name: name})
			stack = append(stack, nestedBlock{parent: ts, endChar: endChar})
			endChar, ts = ')', nil
		case css.LeftParenthesisToken:
			ts = append(ts, ParenthesesBlock{pos: tokenPos})
			stack = append(stack, nestedBlock{parent: ts, endChar: endChar})
			endChar, ts = ')', nil
		case css.LeftBracketToken:
			ts = append(ts, SquareBracketsBlock{pos: tokenPos})
			stack = append(stack, nestedBlock{parent: ts, endChar: endChar})
			endChar, ts = ']', nil
		case css.LeftBraceToken:
			ts = append(ts, CurlyBracketsBlock{pos: tokenPos})
			stack = append(stack, nestedBlock{parent: ts, endChar: endChar})
			endChar, ts = '}', nil
		case css.RightParenthesisToken, css.RightBracketToken, css.RightBraceToken:
			if len(stack) != 0 && data[0] == endChar {
				var block nestedBlock
				block, stack = stack[len(stack)-1], stack[:len(stack)-1]
				ts, endChar = closeBlock(block.parent, ts), block.endChar
			} else {
				ts = append(ts, ParseError{pos: tokenPos, kind: errKind(data), Message: "Unmatched " + string(data)})
			}
		default: // delimiters and match tokens
			ts = append(ts, Literal{pos: tokenPos, Value: string(data)})
		}
	}
	for len(stack) != 0 {
		var block nestedBlock
		block, stack = stack[len(stack)-1], stack[:len(stack)-1]
		ts = closeBlock(block.parent, ts)
	}
	return ts
}

func tdewolffNumeric(data []byte, pos Pos) Token {
	num := parse.Number(data)
	repr := string(data[:num])
	value, _ := strconv.ParseFloat(repr, 64)
	if value == 0 {
		value = 0. // workaround -0
	}
	n := numberVal{pos: pos, Value: repr, ValueF: value, isInt: !bytes.ContainsAny(data[:num], ".eE")}
	switch {
	case num < len(data) && data[num] == '%':
		return Percentage(n)
	case num < len(data):
		// units may contain escapes
		name, _ := consumeIdent(data, num)
		return Dimension{numberVal: n, Unit: name}
	default:
		return Number(n)
	}
}

// tdewolffURL splits the url token emitted by the tdewolff lexer,
// which also covers url("..."), into the [URL] or [FunctionBlock]
// tokens produced by [Tokenize].
func tdewolffURL(data []byte, pos Pos) Token {
	start := bytes.IndexByte(data, '(') + 1
	inner := bytes.TrimLeft(data[start:], " \t\n")
	if len(inner) != 0 && (inner[0] == '"' || inner[0] == '\'') {
		value, _, _, err := consumeQuotedString(inner, 0)
		name, _ := consumeIdent(data[:start-1], 0)
		return FunctionBlock{
			pos:       pos,
			Name:      name,
			Arguments: []Token{String{pos: pos, Value: value, isErr: err != nil}},
		}
	}
	value, _, _, _ := consumeUrl(data, start)
	return URL{pos: pos, Value: value}
}
