package parser

import (
	"github.com/benoitkugler/cssom/css/errs"
	"github.com/benoitkugler/cssom/utils"
)

// Declaration is one item of a declaration list. Its value is
// still made of raw tokens, without the trailing !important.
// Err is non nil for the items which are not declarations.
type Declaration struct {
	Err       error
	Name      string
	Value     []Token
	Important bool
}

// ParseDeclarationList tokenizes css, a declaration list as found in a
// style attribute, and splits it on its top level semicolons.
// Empty items are skipped. At-rules are not supported and
// are returned as errors.
func ParseDeclarationList(css string) []Declaration {
	var (
		out  []Declaration
		item []Token
	)
	flush := func() {
		if len(TrimWhitespace(item)) != 0 {
			out = append(out, parseDeclaration(item))
		}
		item = nil
	}
	for _, token := range TokenizeString(css, true) {
		if lit, ok := token.(Literal); ok && lit.Value == ";" {
			flush()
			continue
		}
		item = append(item, token)
		// an at-rule ends with its block
		if _, ok := token.(CurlyBracketsBlock); ok {
			if _, isAt := TrimWhitespace(item)[0].(AtKeyword); isAt {
				flush()
			}
		}
	}
	flush()
	return out
}

// parseDeclaration parses <ident> : <value> [! important]?
func parseDeclaration(tokens []Token) Declaration {
	it := NewIter(tokens)
	var name string
	switch first := it.NextSignificant().(type) {
	case AtKeyword:
		return Declaration{Err: errs.Syntaxf("unsupported at-rule @%s in a declaration list", first.Value)}
	case Ident:
		name = first.Value
	default:
		return Declaration{Err: errs.Syntaxf("expected a property name, got %s", Serialize([]Token{first}))}
	}
	if colon, ok := it.NextSignificant().(Literal); !ok || colon.Value != ":" {
		return Declaration{Name: name, Err: errs.Syntaxf("expected ':' after the property name %s", name)}
	}
	value, important := splitImportant(it.Rest())
	return Declaration{Name: name, Value: value, Important: important}
}

// splitImportant removes a trailing "!important" from value
func splitImportant(value []Token) ([]Token, bool) {
	last, beforeLast := -1, -1
	for i, token := range value {
		if IsSignificant(token) {
			beforeLast, last = last, i
		}
	}
	if beforeLast == -1 {
		return value, false
	}
	bang, ok1 := value[beforeLast].(Literal)
	important, ok2 := value[last].(Ident)
	if ok1 && ok2 && bang.Value == "!" && utils.AsciiLower(important.Value) == "important" {
		return value[:beforeLast], true
	}
	return value, false
}
