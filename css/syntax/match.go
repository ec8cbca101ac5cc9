package syntax

import (
	"github.com/benoitkugler/cssom/css/units"
	"github.com/benoitkugler/cssom/css/values"
	"github.com/benoitkugler/cssom/utils"
)

// Result is the outcome of matching a value against a syntax.
type Result uint8

const (
	False Result = iota
	True
	// Pending is returned when the answer depends on
	// var() or attr() substitutions.
	Pending
)

func (r Result) String() string {
	switch r {
	case True:
		return "TRUE"
	case Pending:
		return "PENDING"
	}
	return "FALSE"
}

// or returns the best of the two results.
func or(a, b Result) Result {
	if a == True || b == True {
		return True
	}
	if a == Pending || b == Pending {
		return Pending
	}
	return False
}

// and returns the worst of the two results.
func and(a, b Result) Result {
	if a == False || b == False {
		return False
	}
	if a == Pending || b == Pending {
		return Pending
	}
	return True
}

func boolResult(b bool) Result {
	if b {
		return True
	}
	return False
}

// Match returns whether v is a valid instance of s.
// The CSS-wide keywords match any syntax.
func (s Syntax) Match(v values.Value) Result {
	if s.Universal {
		return True
	}
	if v.CssType() == values.Keyword {
		return True
	}
	out := False
	for _, comp := range s.Alternatives {
		out = or(out, comp.match(v))
		if out == True {
			break
		}
	}
	return out
}

// Match is a convenience wrapper parsing both the value
// and the syntax before calling [Syntax.Match].
func Match(value, syntax string) (Result, error) {
	s, err := Parse(syntax)
	if err != nil {
		return False, err
	}
	v, err := values.ParseString(value)
	if err != nil {
		return False, err
	}
	return s.Match(v), nil
}

// isSubstitution returns true for values which may expand
// to any number of items (including zero).
func isSubstitution(v values.Value) bool {
	switch v := v.(type) {
	case *values.Var:
		return true
	case *values.Lexical:
		return v.Final != values.FinalInvalid
	}
	return false
}

func (c Component) match(v values.Value) Result {
	list, isList := v.(*values.ValueList)
	if !isList {
		// a single item is a list of length one
		return c.matchSingle(v)
	}
	if list.Separator == values.SpaceSeparated &&
		(c.Multiplier == SpaceList || c.Name == "transform-list") {
		return matchItems(list.Items, c.matchSingle)
	}
	if list.Separator == values.CommaSeparated && c.Multiplier == CommaList {
		return matchItems(list.Items, c.matchItem)
	}
	return listWithSubstitutions(list)
}

// matchItem matches an item of a comma separated list,
// which may be a space separated list.
func (c Component) matchItem(v values.Value) Result {
	if list, ok := v.(*values.ValueList); ok {
		return listWithSubstitutions(list)
	}
	return c.matchSingle(v)
}

func matchItems(items []values.Value, match func(values.Value) Result) Result {
	out := True
	for _, item := range items {
		out = and(out, match(item))
		if out == False {
			break
		}
	}
	return out
}

// a space list may still collapse to a single value
// when its var() references are empty
func listWithSubstitutions(list *values.ValueList) Result {
	if list.Separator != values.SpaceSeparated {
		return False
	}
	for _, item := range list.Items {
		if isSubstitution(item) {
			return Pending
		}
	}
	return False
}

func (c Component) matchSingle(v values.Value) Result {
	if c.Literal {
		switch v := v.(type) {
		case *values.Ident:
			return boolResult(v.Value == c.Name)
		case *values.Var:
			return Pending
		case *values.Lexical:
			return boolResult(v.Final == values.FinalUnknown).pending()
		case *values.Attr:
			if p := v.DataType(); p == "ident" || p == "" {
				return Pending
			}
			if v.Fallback != nil {
				return c.matchSingle(v.Fallback).pending()
			}
		}
		return False
	}
	return dataTypes[c.Name](v)
}

// pending maps True to Pending
func (r Result) pending() Result {
	if r == True {
		return Pending
	}
	return r
}

type typeMatcher = func(values.Value) Result

var dataTypes map[string]typeMatcher

func init() {
	dataTypes = map[string]typeMatcher{
		"length":             numericMatcher(isLength),
		"number":             numericMatcher(isCategory(units.CatNumber)),
		"integer":            integer,
		"percentage":         numericMatcher(isCategory(units.CatPercentage)),
		"length-percentage":  numericMatcher(isLengthPercentage),
		"angle":              numericMatcher(isCategory(units.CatAngle)),
		"time":               numericMatcher(isCategory(units.CatTime)),
		"frequency":          numericMatcher(isCategory(units.CatFrequency)),
		"resolution":         numericMatcher(isCategory(units.CatResolution)),
		"flex":               numericMatcher(isCategory(units.CatFlex)),
		"color":              colorType,
		"image":              image,
		"url":                url,
		"string":             str,
		"custom-ident":       customIdent,
		"ident":              ident,
		"transform-function": transformFunction,
		"transform-list":     transformFunction,
		"ratio":              ratio,
		"unicode-range":      unicodeRange,
	}
}

// matchProxy handles the values with pending substitutions, calling
// fallback for the other values.
func matchProxy(v values.Value, dataType string, final values.FinalType, fallback typeMatcher) Result {
	switch v := v.(type) {
	case *values.Var:
		return Pending
	case *values.Lexical:
		return boolResult(v.Final == values.FinalUnknown || v.Final == final).pending()
	case *values.Attr:
		return matchAttr(v, dataType)
	}
	return fallback(v)
}

// matchAttr returns True if the attr() reference is statically
// typed with a compatible type.
func matchAttr(attr *values.Attr, dataType string) Result {
	produced := attr.DataType()
	compatible := produced == dataType ||
		(dataType == "length-percentage" && (produced == "length" || produced == "percentage")) ||
		(dataType == "number" && produced == "integer") ||
		(dataType == "custom-ident" && produced == "ident") ||
		(dataType == "image" && produced == "url")
	if attr.CssType() == values.Typed {
		if compatible {
			return True
		}
		return False
	}
	// the attribute or an incompatible fallback will be used
	if compatible || produced == "" {
		return Pending
	}
	if attr.Fallback != nil {
		return dataTypes[dataType](attr.Fallback).pending()
	}
	return False
}

// numericMatcher returns a matcher accepting the numeric values, calc()
// expressions and math functions whose type is accepted by check.
func numericMatcher(check func(units.Type) bool) typeMatcher {
	return func(v values.Value) Result {
		switch v := v.(type) {
		case *values.Numeric:
			if v.Unit == units.Number && v.Value == 0 && check(units.TypeOf(units.Px)) && !check(units.TypeOf(units.Number)) {
				// unitless zero is a length, and only a length
				return True
			}
			return boolResult(check(units.TypeOf(v.Unit)))
		case *values.Expression:
			ty, ok := v.ResultType()
			if !ok {
				return Pending
			}
			return boolResult(!ty.IsInvalid() && check(ty))
		case *values.MathFunction:
			ty, ok := v.ResultType()
			if !ok {
				return Pending
			}
			return boolResult(!ty.IsInvalid() && check(ty))
		case *values.Var:
			return Pending
		case *values.Lexical:
			return boolResult(v.Final == values.FinalUnknown || v.Final == values.FinalNumeric).pending()
		case *values.Attr:
			if v.CssType() != values.Typed || v.TypeName == "" {
				return matchAttrNumeric(v, check)
			}
			ty, ok := v.Type()
			return boolResult(ok && check(ty))
		}
		return False
	}
}

func matchAttrNumeric(attr *values.Attr, check func(units.Type) bool) Result {
	if ty, ok := attr.Type(); ok && check(ty) {
		return Pending
	}
	if attr.DataType() == "" {
		return Pending
	}
	if attr.Fallback != nil {
		return numericMatcher(check)(attr.Fallback).pending()
	}
	return False
}

func isCategory(cat units.Category) func(units.Type) bool {
	return func(ty units.Type) bool {
		if cat == units.CatPercentage {
			return ty.Category() == units.CatPercentage
		}
		return ty.Category() == cat && !ty.HasPercent()
	}
}

func isLength(ty units.Type) bool { return isCategory(units.CatLength)(ty) }

func isLengthPercentage(ty units.Type) bool {
	switch ty.Category() {
	case units.CatLength, units.CatPercentage:
		return true
	}
	return false
}

func integer(v values.Value) Result {
	switch v := v.(type) {
	case *values.Numeric:
		return boolResult(v.Unit == units.Number && v.Integer)
	case *values.Attr:
		if v.CssType() == values.Typed && v.TypeName != "" {
			return boolResult(v.DataType() == "integer")
		}
	}
	// calc() expressions resolving to a number are rounded
	return numericMatcher(isCategory(units.CatNumber))(v)
}

func colorType(v values.Value) Result {
	return matchProxy(v, "color", values.FinalColor, func(v values.Value) Result {
		switch v := v.(type) {
		case *values.Color:
			if v.CssType() == values.Proxy {
				return Pending
			}
			return True
		case *values.ColorMix:
			if v.CssType() == values.Proxy {
				return Pending
			}
			return True
		case *values.Ident:
			return boolResult(values.IsColorKeyword(v.Value))
		}
		return False
	})
}

func image(v values.Value) Result {
	return matchProxy(v, "image", values.FinalImage, func(v values.Value) Result {
		switch v := v.(type) {
		case *values.Gradient, *values.URI:
			return True
		case *values.FunctionValue:
			return boolResult(values.IsImageFunction(v.Name))
		}
		return False
	})
}

func url(v values.Value) Result {
	return matchProxy(v, "url", values.FinalUnknown, func(v values.Value) Result {
		_, ok := v.(*values.URI)
		return boolResult(ok)
	})
}

func str(v values.Value) Result {
	return matchProxy(v, "string", values.FinalUnknown, func(v values.Value) Result {
		_, ok := v.(*values.String)
		return boolResult(ok)
	})
}

func ident(v values.Value) Result {
	return matchProxy(v, "ident", values.FinalUnknown, func(v values.Value) Result {
		_, ok := v.(*values.Ident)
		return boolResult(ok)
	})
}

func customIdent(v values.Value) Result {
	return matchProxy(v, "custom-ident", values.FinalUnknown, func(v values.Value) Result {
		id, ok := v.(*values.Ident)
		return boolResult(ok && !utils.AsciiEqualFold(id.Value, "default"))
	})
}

func transformFunction(v values.Value) Result {
	return matchProxy(v, "transform-function", values.FinalTransform, func(v values.Value) Result {
		f, ok := v.(*values.FunctionValue)
		return boolResult(ok && values.IsTransformFunction(f.Name))
	})
}

func ratio(v values.Value) Result {
	return matchProxy(v, "ratio", values.FinalUnknown, func(v values.Value) Result {
		switch v := v.(type) {
		case *values.Ratio:
			return True
		case *values.Numeric:
			// a single number is the ratio n / 1
			return boolResult(v.Unit == units.Number && v.Value >= 0)
		}
		return False
	})
}

func unicodeRange(v values.Value) Result {
	return matchProxy(v, "unicode-range", values.FinalUnknown, func(v values.Value) Result {
		switch v.(type) {
		case *values.UnicodeRange, *values.UnicodeCharacter, *values.UnicodeWildcard:
			return True
		}
		return False
	})
}
