package values

import (
	"strings"

	pa "github.com/benoitkugler/cssom/css/parser"
	"github.com/benoitkugler/cssom/css/units"
	"github.com/benoitkugler/cssom/utils"
)

// FinalType is the conservative type of a pending-substitution value,
// inferred from the syntax around the substitution.
type FinalType uint8

const (
	FinalUnknown FinalType = iota
	FinalColor
	FinalImage
	FinalTransform
	// numeric expressions, like calc()
	FinalNumeric
	// FinalInvalid is used when the parts free of substitutions
	// already make the value invalid, whatever the substitutions are.
	FinalInvalid
)

func (f FinalType) String() string {
	switch f {
	case FinalColor:
		return "color"
	case FinalImage:
		return "image"
	case FinalTransform:
		return "transform"
	case FinalNumeric:
		return "numeric"
	case FinalInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Var is a var() reference to a custom property.
type Var struct {
	Fallback Value // may be nil, even if HasFallback is true
	Name     string
	// HasFallback distinguishes var(--x) from var(--x,)
	HasFallback bool
}

func (*Var) CssType() CssType { return Proxy }
func (*Var) Kind() Kind       { return KVar }
func (v *Var) Clone() Value {
	return &Var{Name: v.Name, HasFallback: v.HasFallback, Fallback: cloneValue(v.Fallback)}
}

func (v *Var) serialize(w *writer) {
	w.WriteString("var(")
	w.WriteString(pa.SerializeIdentifier(v.Name))
	if v.HasFallback {
		if v.Fallback == nil {
			w.WriteByte(',')
		} else {
			w.comma()
			v.Fallback.serialize(w)
		}
	}
	w.WriteByte(')')
}

// Lexical is a value containing var() references which can't be
// modeled before substitution, like rgb(var(--rgb) / 50%).
// It stores the normalized text of the value.
type Lexical struct {
	Text  string
	Final FinalType
}

func (*Lexical) CssType() CssType      { return Proxy }
func (*Lexical) Kind() Kind            { return KLexical }
func (l *Lexical) Clone() Value        { c := *l; return &c }
func (l *Lexical) serialize(w *writer) { w.WriteString(l.Text) }

// Attr is an attr() reference to an element attribute.
//
// An attribute with a declared type (or no type, meaning <string>)
// and a compatible fallback is typed. It is a proxy if its
// fallback is not compatible with the declared type, if the
// fallback has pending substitutions, or if the type is given with type().
type Attr struct {
	Fallback Value // optional
	Name     string
	// TypeName is the declared type, in lower case : empty, a data type
	// ("string", "color", "length", ...), a unit ("px", "%") or a type() function.
	TypeName string
}

func (a *Attr) CssType() CssType {
	if strings.HasPrefix(a.TypeName, "type(") {
		return Proxy
	}
	if a.Fallback != nil && (hasProxy(a.Fallback) || !hasDataType(a.Fallback, a.DataType())) {
		return Proxy
	}
	return Typed
}

func (*Attr) Kind() Kind { return KAttr }
func (a *Attr) Clone() Value {
	return &Attr{Name: a.Name, TypeName: a.TypeName, Fallback: cloneValue(a.Fallback)}
}

func (a *Attr) serialize(w *writer) {
	w.WriteString("attr(")
	w.WriteString(pa.SerializeIdentifier(a.Name))
	if a.TypeName != "" {
		w.WriteByte(' ')
		w.WriteString(a.TypeName)
	}
	if a.Fallback != nil {
		w.comma()
		a.Fallback.serialize(w)
	}
	w.WriteByte(')')
}

var attrDataTypes = utils.NewSet("string", "ident", "color", "url", "integer", "number",
	"length", "angle", "time", "frequency", "flex", "percentage", "resolution")

// DataType returns the name of the data type produced by the attribute
// ("string", "length", ...), or an empty string for type(<syntax>).
func (a *Attr) DataType() string {
	switch {
	case a.TypeName == "" || a.TypeName == "raw-string":
		return "string"
	case attrDataTypes.Has(a.TypeName):
		return a.TypeName
	case strings.HasPrefix(a.TypeName, "type("):
		return ""
	}
	if u := units.Parse(a.TypeName); u != units.Invalid {
		return u.Category().String()
	}
	return ""
}

// Unit returns the declared unit, or [units.Invalid].
func (a *Attr) Unit() units.Unit {
	if attrDataTypes.Has(a.TypeName) {
		return units.Invalid
	}
	return units.Parse(a.TypeName)
}

func isValidAttrType(name string) bool {
	return name == "raw-string" || attrDataTypes.Has(name) || units.Parse(name) != units.Invalid
}

// Type returns the calc() type of the attribute, and false
// if the attribute is not numeric.
func (a *Attr) Type() (units.Type, bool) {
	cat := categoryOf(a.DataType())
	if cat == units.CatInvalid {
		return units.Type{}, false
	}
	return units.TypeOfCategory(cat), true
}

// children returns the direct sub-values of v.
func children(v Value) []Value {
	switch v := v.(type) {
	case *ValueList:
		return v.Items
	case *Var:
		if v.Fallback != nil {
			return []Value{v.Fallback}
		}
	case *Attr:
		if v.Fallback != nil {
			return []Value{v.Fallback}
		}
	case *EnvReference:
		if v.Fallback != nil {
			return []Value{v.Fallback}
		}
	case *FunctionValue:
		return v.Args
	case *Gradient:
		return v.Args
	case *Rect:
		return v.Sides[:]
	case *Expression:
		return v.Root.operands(nil)
	case *MathFunction:
		var out []Value
		for _, arg := range v.Args {
			out = arg.operands(out)
		}
		return out
	case *Color:
		return v.Components
	case *ColorMix:
		var out []Value
		for _, c := range [4]Value{v.Color1, v.Percentage1, v.Color2, v.Percentage2} {
			if c != nil {
				out = append(out, c)
			}
		}
		return out
	}
	return nil
}

// walk calls f on v and its descendants, until f returns false
func walk(v Value, f func(Value) bool) bool {
	if !f(v) {
		return false
	}
	for _, child := range children(v) {
		if !walk(child, f) {
			return false
		}
	}
	return true
}

// hasProxy returns true if v or one of its descendants
// is a pending substitution (var(), or an untyped attr()).
func hasProxy(v Value) bool {
	found := false
	walk(v, func(node Value) bool {
		switch node := node.(type) {
		case *Var, *Lexical:
			found = true
		case *Attr:
			found = node.CssType() == Proxy
		}
		return !found
	})
	return found
}

// HasPendingSubstitution returns true if v contains var() or
// attr() references which must be substituted before use.
func HasPendingSubstitution(v Value) bool {
	found := false
	walk(v, func(node Value) bool {
		switch node.(type) {
		case *Var, *Lexical, *Attr:
			found = true
		}
		return !found
	})
	return found
}

// hasDataType returns true if the concrete value v is an instance
// of the data type (as returned by [Attr.DataType]).
func hasDataType(v Value, dataType string) bool {
	switch dataType {
	case "string":
		_, ok := v.(*String)
		return ok
	case "ident":
		_, ok := v.(*Ident)
		return ok
	case "url":
		_, ok := v.(*URI)
		return ok
	case "color":
		switch v := v.(type) {
		case *Color, *ColorMix:
			return true
		case *Ident:
			return IsColorKeyword(v.Value)
		}
		return false
	case "integer":
		if n, ok := v.(*Numeric); ok {
			return n.Unit == units.Number && n.Integer
		}
	}
	cat := categoryOf(dataType)
	if cat == units.CatInvalid {
		return false
	}
	switch v := v.(type) {
	case *Numeric:
		if v.Unit == units.Number && v.Value == 0 && cat != units.CatNumber {
			return true
		}
		return v.Unit.Category() == cat
	case *Expression, *MathFunction, *Attr:
		ty, ok := numericType(v)
		return ok && ty.Category() == cat
	}
	return false
}

func categoryOf(dataType string) units.Category {
	for c := units.CatNumber; c <= units.CatFlex; c++ {
		if c.String() == dataType {
			return c
		}
	}
	if dataType == "integer" {
		return units.CatNumber
	}
	return units.CatInvalid
}
