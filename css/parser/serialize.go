package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/benoitkugler/cssom/utils"
)

// Serialize returns the CSS text of tokens. An empty comment is inserted
// between two tokens which would otherwise be read back as one.
func Serialize(tokens []Token) string {
	var b strings.Builder
	writeTokens(&b, tokens)
	return b.String()
}

// SerializeIdentifier escapes value so that it parses back as an [Ident].
func SerializeIdentifier(value string) string {
	switch {
	case value == "":
		return ""
	case value == "-":
		return `\-`
	case strings.HasPrefix(value, "--"):
		var b strings.Builder
		b.WriteString("--")
		writeName(&b, value[2:])
		return b.String()
	}
	var b strings.Builder
	if value[0] == '-' {
		b.WriteByte('-')
		value = value[1:]
	}
	first, size := utf8.DecodeRuneInString(value)
	switch {
	case '0' <= first && first <= '9':
		writeHexEscape(&b, first)
	case first == '-':
		b.WriteString(`\-`)
	default:
		writeNameRune(&b, first)
	}
	writeName(&b, value[size:])
	return b.String()
}

// SerializeString returns value as a double quoted CSS string.
func SerializeString(value string) string {
	var b strings.Builder
	b.WriteByte('"')
	writeStringContent(&b, value)
	b.WriteByte('"')
	return b.String()
}

func isControl(r rune) bool { return r < 0x20 || r == 0x7F }

// writeHexEscape writes r as \XX, followed by a space which ends the escape.
func writeHexEscape(b *strings.Builder, r rune) {
	fmt.Fprintf(b, "\\%X ", r)
}

func writeNameRune(b *strings.Builder, r rune) {
	switch {
	case r == 0:
		b.WriteRune(utf8.RuneError)
	case isControl(r):
		writeHexEscape(b, r)
	case r == '-' || r == '_' || r > 0x7F,
		'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
		b.WriteRune(r)
	default:
		b.WriteByte('\\')
		b.WriteRune(r)
	}
}

func writeName(b *strings.Builder, value string) {
	for _, r := range value {
		writeNameRune(b, r)
	}
}

func writeStringContent(b *strings.Builder, value string) {
	for _, r := range value {
		switch {
		case r == 0:
			b.WriteRune(utf8.RuneError)
		case isControl(r):
			writeHexEscape(b, r)
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
}

// writeURLContent escapes the characters forbidden in unquoted url()
func writeURLContent(b *strings.Builder, value string) {
	for _, r := range value {
		switch {
		case isControl(r):
			writeHexEscape(b, r)
		case strings.ContainsRune(`'"\() `, r):
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
}

var (
	identLike  = utils.NewSet("ident", "function", "url")
	numberLike = utils.NewSet("number", "percentage", "dimension")
)

// class is the delimiter of a literal, or the kind name of other tokens
func class(t Token) string {
	if lit, ok := t.(Literal); ok {
		return lit.Value
	}
	return t.Kind().String()
}

// needsComment returns true if a token of class prev directly followed
// by a token of class next would not be tokenized back as two tokens.
func needsComment(prev, next string) bool {
	switch prev {
	case "ident":
		return identLike.Has(next) || numberLike.Has(next) ||
			next == "unicode-range" || next == "-" || next == "-->" || next == "() block"
	case "at-keyword", "hash", "dimension":
		return identLike.Has(next) || numberLike.Has(next) ||
			next == "unicode-range" || next == "-" || next == "-->"
	case "#", "-", "number":
		return identLike.Has(next) || numberLike.Has(next) || next == "unicode-range"
	case "@":
		return identLike.Has(next) || next == "unicode-range" || next == "-"
	case "unicode-range":
		return numberLike.Has(next) || next == "ident" || next == "function" || next == "?"
	case ".", "+":
		return numberLike.Has(next)
	case "$", "*", "^", "~":
		return next == "="
	case "|":
		return next == "=" || next == "|"
	case "/":
		return next == "*"
	}
	return false
}

func writeTokens(b *strings.Builder, tokens []Token) {
	var prev string
	for _, token := range tokens {
		next := class(token)
		if needsComment(prev, next) {
			b.WriteString("/**/")
		} else if prev == `\` {
			// a backslash is only a delimiter before a newline
			if ws, ok := token.(Whitespace); !ok || !strings.HasPrefix(ws.Value, "\n") {
				b.WriteByte('\n')
			}
		}
		token.writeTo(b)
		prev = next
	}
}

// endsWithEOFString returns true if the last argument, possibly
// in nested functions, is a string interrupted by the end of input.
func endsWithEOFString(args []Token) bool {
	if len(args) == 0 {
		return false
	}
	switch last := args[len(args)-1].(type) {
	case ParseError:
		return last.kind == errEofInString
	case FunctionBlock:
		return endsWithEOFString(last.Arguments)
	}
	return false
}

func (t Whitespace) writeTo(b *strings.Builder) { b.WriteString(t.Value) }
func (t Literal) writeTo(b *strings.Builder)    { b.WriteString(t.Value) }
func (t Ident) writeTo(b *strings.Builder)      { b.WriteString(SerializeIdentifier(t.Value)) }
func (t Number) writeTo(b *strings.Builder)     { b.WriteString(t.Value) }

func (t Comment) writeTo(b *strings.Builder) {
	b.WriteString("/*" + t.Value + "*/")
}

func (t AtKeyword) writeTo(b *strings.Builder) {
	b.WriteByte('@')
	b.WriteString(SerializeIdentifier(t.Value))
}

func (t Hash) writeTo(b *strings.Builder) {
	b.WriteByte('#')
	if t.isID {
		b.WriteString(SerializeIdentifier(t.Value))
	} else {
		writeName(b, t.Value)
	}
}

func (t String) writeTo(b *strings.Builder) {
	b.WriteByte('"')
	writeStringContent(b, t.Value)
	if !t.isErr {
		b.WriteByte('"')
	}
}

func (t URL) writeTo(b *strings.Builder) {
	var content strings.Builder
	content.WriteString("url(")
	writeURLContent(&content, t.Value)
	content.WriteByte(')')
	text := content.String()
	switch {
	case t.flag&isErrorInString != 0:
		text = text[:len(text)-2]
	case t.flag&isErrorInURL != 0:
		text = text[:len(text)-1]
	}
	b.WriteString(text)
}

func (t UnicodeRange) writeTo(b *strings.Builder) {
	if t.Start == t.End {
		fmt.Fprintf(b, "U+%X", t.Start)
	} else {
		fmt.Fprintf(b, "U+%X-%X", t.Start, t.End)
	}
}

func (t Percentage) writeTo(b *strings.Builder) {
	b.WriteString(t.Value)
	b.WriteByte('%')
}

func (t Dimension) writeTo(b *strings.Builder) {
	b.WriteString(t.Value)
	// a unit like "e-3" would be read back as an exponent
	if len(t.Unit) != 0 && (t.Unit[0] == 'e' || t.Unit[0] == 'E') &&
		(len(t.Unit) == 1 || t.Unit[1] == '-') {
		writeHexEscape(b, rune(t.Unit[0]))
		writeName(b, t.Unit[1:])
	} else {
		b.WriteString(SerializeIdentifier(t.Unit))
	}
}

func (t ParenthesesBlock) writeTo(b *strings.Builder) {
	b.WriteByte('(')
	writeTokens(b, t.Arguments)
	b.WriteByte(')')
}

func (t SquareBracketsBlock) writeTo(b *strings.Builder) {
	b.WriteByte('[')
	writeTokens(b, t.Arguments)
	b.WriteByte(']')
}

func (t CurlyBracketsBlock) writeTo(b *strings.Builder) {
	b.WriteByte('{')
	writeTokens(b, t.Arguments)
	b.WriteByte('}')
}

func (t FunctionBlock) writeTo(b *strings.Builder) {
	b.WriteString(SerializeIdentifier(t.Name))
	b.WriteByte('(')
	writeTokens(b, t.Arguments)
	if !endsWithEOFString(t.Arguments) {
		b.WriteByte(')')
	}
}

func (t ParseError) writeTo(b *strings.Builder) {
	switch t.kind {
	case errBadString:
		b.WriteString("\"[bad string]\n")
	case errBadURL:
		b.WriteString("url([bad url])")
	case errP, errB, errC:
		b.WriteString(string(t.kind))
	}
}
