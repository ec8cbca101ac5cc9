package values

import (
	"strings"

	pa "github.com/benoitkugler/cssom/css/parser"
	"github.com/benoitkugler/cssom/css/errs"
	"github.com/benoitkugler/cssom/css/units"
	"github.com/benoitkugler/cssom/utils"
)

// Lookup returns the raw text associated to name,
// and false if it is not defined.
type Lookup func(name string) (string, bool)

// maximum nesting of var() references, which also breaks cycles
const maxSubstitutionDepth = 32

// SubstituteVars replaces the var() references of v by the values
// returned by lookup (or their fallback), and parses the result.
// An undefined reference without fallback is a syntax error.
func SubstituteVars(v Value, lookup Lookup) (Value, error) {
	tokens := pa.TokenizeString(CssText(v), true)
	s := substituter{fn: "var", lookup: lookup}
	tokens, err := s.substitute(tokens, 0)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// SubstituteAttrs replaces the attr() references of v, using lookup to
// fetch the attribute values of the element, and parses the result.
// Attribute values are interpreted according to the declared type of the
// attr() reference : an invalid or missing attribute uses the fallback.
func SubstituteAttrs(v Value, lookup Lookup) (Value, error) {
	tokens := pa.TokenizeString(CssText(v), true)
	s := substituter{fn: "attr", lookup: lookup}
	tokens, err := s.substitute(tokens, 0)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

type substituter struct {
	lookup Lookup
	fn     string // var or attr
}

func (s substituter) substitute(tokens []Token, depth int) ([]Token, error) {
	if depth > maxSubstitutionDepth {
		return nil, errs.Syntaxf("too many nested %s() references", s.fn)
	}
	out := make([]Token, 0, len(tokens))
	for _, token := range tokens {
		var err error
		switch t := token.(type) {
		case pa.FunctionBlock:
			if name, args := pa.ParseFunction(t); name == s.fn {
				var replacement []Token
				if s.fn == "var" {
					replacement, err = s.resolveVar(args, depth)
				} else {
					replacement, err = s.resolveAttr(args, depth)
				}
				if err != nil {
					return nil, err
				}
				out = append(out, replacement...)
				continue
			}
			t.Arguments, err = s.substitute(t.Arguments, depth)
			token = t
		case pa.ParenthesesBlock:
			t.Arguments, err = s.substitute(t.Arguments, depth)
			token = t
		case pa.SquareBracketsBlock:
			t.Arguments, err = s.substitute(t.Arguments, depth)
			token = t
		}
		if err != nil {
			return nil, err
		}
		out = append(out, token)
	}
	return out, nil
}

// splitReference returns the tokens before the first comma, and the
// fallback tokens (nil if there is no comma)
func splitReference(args []Token) (head, fallback []Token, hasFallback bool) {
	parts := pa.SplitOnComma(args)
	if len(parts) == 1 {
		return pa.RemoveWhitespace(args), nil, false
	}
	return pa.RemoveWhitespace(parts[0]), pa.TrimWhitespace(args[len(parts[0])+1:]), true
}

func (s substituter) resolveVar(args []Token, depth int) ([]Token, error) {
	head, fallback, hasFallback := splitReference(args)
	if len(head) != 1 {
		return nil, errs.Syntaxf("invalid var() arguments")
	}
	ident, ok := head[0].(pa.Ident)
	if !ok || !strings.HasPrefix(ident.Value, "--") {
		return nil, errs.Syntaxf("invalid custom property name in var()")
	}
	if text, ok := s.lookup(ident.Value); ok {
		return s.substitute(pa.TokenizeString(text, true), depth+1)
	}
	if !hasFallback {
		return nil, errs.Syntaxf("custom property %s is not defined", ident.Value)
	}
	return s.substitute(fallback, depth+1)
}

func (s substituter) resolveAttr(args []Token, depth int) ([]Token, error) {
	_, fallback, hasFallback := splitReference(args)
	attr, err := parseAttr(args)
	if err != nil {
		return nil, err
	}
	if text, ok := s.lookup(attr.Name); ok {
		if tokens, ok := attrTokens(attr, text); ok {
			return tokens, nil
		}
	}
	if hasFallback && len(fallback) != 0 {
		return s.substitute(fallback, depth+1)
	}
	if attr.DataType() == "string" {
		return pa.TokenizeString(`""`, true), nil
	}
	return nil, errs.Syntaxf("attribute %s is missing or invalid, and attr() has no fallback", attr.Name)
}

// attrTokens interprets the attribute value text according
// to the declared type of attr, and returns false if it is invalid.
func attrTokens(attr *Attr, text string) ([]Token, bool) {
	switch {
	case attr.TypeName == "" || attr.TypeName == "string":
		return pa.TokenizeString(pa.SerializeString(text), true), true
	case attr.TypeName == "raw-string":
		return pa.Normalize(pa.TokenizeString(text, true)), true
	case strings.HasPrefix(attr.TypeName, "type("):
		tokens := pa.Normalize(pa.TokenizeString(text, true))
		return tokens, len(tokens) != 0
	case attr.TypeName == "url":
		return pa.TokenizeString("url("+pa.SerializeString(text)+")", true), true
	}
	text = strings.TrimSpace(text)
	if u := attr.Unit(); u != units.Invalid {
		// the attribute is a plain number, to which the unit is appended
		tokens := pa.RemoveWhitespace(pa.TokenizeString(text, true))
		if len(tokens) != 1 || tokens[0].Kind() != pa.KNumber {
			return nil, false
		}
		return pa.TokenizeString(text+u.String(), true), true
	}
	tokens := pa.Normalize(pa.TokenizeString(text, true))
	v, err := Parse(tokens)
	if err != nil || !hasDataType(v, attr.DataType()) {
		return nil, false
	}
	if attr.DataType() == "ident" && (IsWideKeyword(text) || utils.AsciiEqualFold(text, "default")) {
		return nil, false
	}
	return tokens, true
}
