package parser

import "github.com/benoitkugler/cssom/utils"

// SplitOnComma splits the tokens on top level commas.
// It returns at least one (possibly empty) part.
func SplitOnComma(tokens []Token) [][]Token { return SplitOn(tokens, ",") }

// SplitOn splits the tokens on top level [Literal] equal to delim.
func SplitOn(tokens []Token, delim string) [][]Token {
	var (
		parts [][]Token
		this  []Token
	)
	for _, token := range tokens {
		if lit, ok := token.(Literal); ok && lit.Value == delim {
			parts = append(parts, this)
			this = nil
			continue
		}
		this = append(this, token)
	}
	return append(parts, this)
}

// TrimWhitespace removes the whitespace and comments at both ends of tokens.
func TrimWhitespace(tokens []Token) []Token {
	for len(tokens) != 0 && !IsSignificant(tokens[0]) {
		tokens = tokens[1:]
	}
	for len(tokens) != 0 && !IsSignificant(tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

// ParseFunction returns the lower-cased name of a function token
// and its arguments, or an empty name if token is not a function.
func ParseFunction(token Token) (string, []Token) {
	fn, ok := token.(FunctionBlock)
	if !ok {
		return "", nil
	}
	return utils.AsciiLower(fn.Name), fn.Arguments
}

// HasFunction returns true if token is, or contains in one of its blocks,
// a function named name, compared ASCII case-insensitively.
func HasFunction(token Token, name string) bool {
	var args []Token
	switch token := token.(type) {
	case FunctionBlock:
		if utils.AsciiEqualFold(token.Name, name) {
			return true
		}
		args = token.Arguments
	case ParenthesesBlock:
		args = token.Arguments
	case SquareBracketsBlock:
		args = token.Arguments
	case CurlyBracketsBlock:
		args = token.Arguments
	}
	for _, arg := range args {
		if HasFunction(arg, name) {
			return true
		}
	}
	return false
}

// AnyHasFunction is the same as [HasFunction] for a list of tokens.
func AnyHasFunction(tokens []Token, name string) bool {
	for _, token := range tokens {
		if HasFunction(token, name) {
			return true
		}
	}
	return false
}

// Normalize returns a copy of tokens where comments are dropped,
// whitespace runs are collapsed to one space and trimmed
// at both ends of each block.
func Normalize(tokens []Token) []Token {
	tokens = TrimWhitespace(tokens)
	out := make([]Token, 0, len(tokens))
	for _, token := range tokens {
		switch t := token.(type) {
		case Comment:
			continue
		case Whitespace:
			if len(out) != 0 && out[len(out)-1].Kind() == KWhitespace {
				continue
			}
			token = Whitespace{Value: " ", pos: t.pos}
		case FunctionBlock:
			t.Arguments = Normalize(t.Arguments)
			token = t
		case ParenthesesBlock:
			t.Arguments = Normalize(t.Arguments)
			token = t
		case SquareBracketsBlock:
			t.Arguments = Normalize(t.Arguments)
			token = t
		case CurlyBracketsBlock:
			t.Arguments = Normalize(t.Arguments)
			token = t
		}
		out = append(out, token)
	}
	return out
}
