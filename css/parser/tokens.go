package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Pos is the position of a token in the input, starting at line 1, column 1.
type Pos struct {
	Line, Column int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

func newPosition(line, column int) Pos { return Pos{Line: line, Column: column} }

// Kind identifies the concrete type of a [Token].
type Kind uint8

const (
	_ Kind = iota
	KWhitespace
	KComment
	KLiteral
	KIdent
	KAtKeyword
	KHash
	KString
	KURL
	KUnicodeRange
	KNumber
	KPercentage
	KDimension
	KParenthesesBlock
	KSquareBracketsBlock
	KCurlyBracketsBlock
	KFunctionBlock
	KParseError
)

// String returns the name used in the serialization tables of CSS Syntax.
func (k Kind) String() string {
	switch k {
	case KWhitespace:
		return "whitespace"
	case KComment:
		return "comment"
	case KLiteral:
		return "literal"
	case KIdent:
		return "ident"
	case KAtKeyword:
		return "at-keyword"
	case KHash:
		return "hash"
	case KString:
		return "string"
	case KURL:
		return "url"
	case KUnicodeRange:
		return "unicode-range"
	case KNumber:
		return "number"
	case KPercentage:
		return "percentage"
	case KDimension:
		return "dimension"
	case KParenthesesBlock:
		return "() block"
	case KSquareBracketsBlock:
		return "[] block"
	case KCurlyBracketsBlock:
		return "{} block"
	case KFunctionBlock:
		return "function"
	case KParseError:
		return "error"
	default:
		return "<invalid kind " + strconv.Itoa(int(k)) + ">"
	}
}

// Token is one component value, as produced by [Tokenize].
// Blocks and functions store their content, so that a list of
// tokens is in fact a tree.
type Token interface {
	Pos() Pos
	Kind() Kind
	writeTo(b *strings.Builder)
}

type (
	Whitespace struct {
		Value string
		pos   Pos
	}
	Comment struct {
		Value string
		pos   Pos
	}
	// Literal is a delimiter token, like ',' or '/'.
	Literal struct {
		Value string
		pos   Pos
	}
	Ident struct {
		Value string
		pos   Pos
	}
	AtKeyword struct {
		Value string
		pos   Pos
	}
	Hash struct {
		Value string
		pos   Pos
		isID  bool
	}
	String struct {
		Value string
		pos   Pos
		isErr bool
	}
	URL struct {
		Value string
		pos   Pos
		flag  uint8
	}
	// UnicodeRange stores the inclusive range [Start, End].
	// Wildcard is true for the U+4?? form.
	UnicodeRange struct {
		pos        Pos
		Start, End uint32
		Wildcard   bool
	}

	numberVal struct {
		// Value is the representation found in the input
		Value  string
		ValueF float64
		pos    Pos
		isInt  bool
	}
	Number     numberVal
	Percentage numberVal
	Dimension  struct {
		Unit string
		numberVal
	}

	ParenthesesBlock struct {
		Arguments []Token
		pos       Pos
	}
	SquareBracketsBlock struct {
		Arguments []Token
		pos       Pos
	}
	CurlyBracketsBlock struct {
		Arguments []Token
		pos       Pos
	}
	FunctionBlock struct {
		Name      string
		Arguments []Token
		pos       Pos
	}

	ParseError struct {
		Message string
		kind    errKind
		pos     Pos
	}
)

const (
	isErrorInString uint8 = 1 << iota
	isErrorInURL
)

type errKind string

const (
	errBadString   errKind = "bad-string"
	errBadURL      errKind = "bad-url"
	errP           errKind = ")"
	errB           errKind = "]"
	errC           errKind = "}"
	errEofInString errKind = "eof-in-string"
	errEofInUrl    errKind = "eof-in-url"
	errExtraInput  errKind = "extra-input"
	errInvalid     errKind = "invalid"
)

func (t Whitespace) Pos() Pos          { return t.pos }
func (t Comment) Pos() Pos             { return t.pos }
func (t Literal) Pos() Pos             { return t.pos }
func (t Ident) Pos() Pos               { return t.pos }
func (t AtKeyword) Pos() Pos           { return t.pos }
func (t Hash) Pos() Pos                { return t.pos }
func (t String) Pos() Pos              { return t.pos }
func (t URL) Pos() Pos                 { return t.pos }
func (t UnicodeRange) Pos() Pos        { return t.pos }
func (t Number) Pos() Pos              { return t.pos }
func (t Percentage) Pos() Pos          { return t.pos }
func (t Dimension) Pos() Pos           { return t.pos }
func (t ParenthesesBlock) Pos() Pos    { return t.pos }
func (t SquareBracketsBlock) Pos() Pos { return t.pos }
func (t CurlyBracketsBlock) Pos() Pos  { return t.pos }
func (t FunctionBlock) Pos() Pos       { return t.pos }
func (t ParseError) Pos() Pos          { return t.pos }

func (Whitespace) Kind() Kind          { return KWhitespace }
func (Comment) Kind() Kind             { return KComment }
func (Literal) Kind() Kind             { return KLiteral }
func (Ident) Kind() Kind               { return KIdent }
func (AtKeyword) Kind() Kind           { return KAtKeyword }
func (Hash) Kind() Kind                { return KHash }
func (String) Kind() Kind              { return KString }
func (URL) Kind() Kind                 { return KURL }
func (UnicodeRange) Kind() Kind        { return KUnicodeRange }
func (Number) Kind() Kind              { return KNumber }
func (Percentage) Kind() Kind          { return KPercentage }
func (Dimension) Kind() Kind           { return KDimension }
func (ParenthesesBlock) Kind() Kind    { return KParenthesesBlock }
func (SquareBracketsBlock) Kind() Kind { return KSquareBracketsBlock }
func (CurlyBracketsBlock) Kind() Kind  { return KCurlyBracketsBlock }
func (FunctionBlock) Kind() Kind       { return KFunctionBlock }
func (ParseError) Kind() Kind          { return KParseError }

// IsIdentifier is true for '#abc', false for '#0bc'
func (t Hash) IsIdentifier() bool { return t.isID }

func (t String) isError() bool { return t.isErr }

// IsInt returns true if the representation is an integer literal
// (no decimal point or exponent).
func (t numberVal) IsInt() bool { return t.isInt }

// Int returns the integer value, and is only meaningful when IsInt is true.
func (t numberVal) Int() int { return int(t.ValueF) }

func (t Number) IsInt() bool     { return numberVal(t).IsInt() }
func (t Percentage) IsInt() bool { return numberVal(t).IsInt() }

// Error implements the error interface so that a ParseError can be
// returned by higher level helpers.
func (t ParseError) Error() string {
	return fmt.Sprintf("%s (at %s): %s", t.kind, t.pos, t.Message)
}

// TokensIter is a cursor over a list of tokens.
type TokensIter struct {
	tokens []Token
	index  int
}

func NewIter(tokens []Token) *TokensIter {
	return &TokensIter{tokens: tokens}
}

func (it TokensIter) HasNext() bool {
	return it.index < len(it.tokens)
}

// Next returns the next token or nil at the end
func (it *TokensIter) Next() Token {
	if !it.HasNext() {
		return nil
	}
	t := it.tokens[it.index]
	it.index += 1
	return t
}

// NextSignificant returns the next significant (neither whitespace or comment) token, or nil
func (it *TokensIter) NextSignificant() Token {
	for it.HasNext() {
		token := it.Next()
		if k := token.Kind(); k != KWhitespace && k != KComment {
			return token
		}
	}
	return nil
}

// Rest returns the tokens not yet consumed.
func (it TokensIter) Rest() []Token { return it.tokens[it.index:] }

// IsSignificant returns false for whitespace and comments.
func IsSignificant(t Token) bool {
	k := t.Kind()
	return k != KWhitespace && k != KComment
}

// RemoveWhitespace returns the significant tokens of l, without
// looking into blocks.
func RemoveWhitespace(l []Token) []Token {
	out := make([]Token, 0, len(l))
	for _, v := range l {
		if IsSignificant(v) {
			out = append(out, v)
		}
	}
	return out
}

// NewIdent, NewLiteral, NewNumber and NewWhitespace build synthetic
// tokens, for instance when splicing substituted values.
func NewIdent(value string, pos Pos) Ident { return Ident{Value: value, pos: pos} }

func NewLiteral(value string, pos Pos) Literal { return Literal{Value: value, pos: pos} }

func NewWhitespace(pos Pos) Whitespace { return Whitespace{Value: " ", pos: pos} }

func NewNumber(value float64, pos Pos) Number {
	repr := strconv.FormatFloat(value, 'f', -1, 64)
	return Number{Value: repr, ValueF: value, pos: pos, isInt: value == float64(int(value))}
}
