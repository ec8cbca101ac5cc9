// Package values builds typed CSS values from tokens, and implements
// their serialization, calc() expressions and color nodes.
//
// Each value has a [CssType] and, for typed values, a [Kind].
// Values are trees, exclusively owned by their parent, and mutated
// only through explicit setters.
package values

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/cespare/xxhash/v2"

	pa "github.com/benoitkugler/cssom/css/parser"
	"github.com/benoitkugler/cssom/utils"
)

type Token = pa.Token

// CssType is the fundamental type of a value.
type CssType uint8

const (
	Typed CssType = iota
	List
	Keyword
	Proxy
)

func (c CssType) String() string {
	switch c {
	case Typed:
		return "TYPED"
	case List:
		return "LIST"
	case Keyword:
		return "KEYWORD"
	case Proxy:
		return "PROXY"
	}
	return fmt.Sprintf("<invalid css type %d>", c)
}

// Kind is the primitive kind of a value. Lists and CSS-wide
// keywords have kind [KNone].
type Kind uint8

const (
	KNone Kind = iota
	KNumeric
	KString
	KIdent
	KURI
	KColor
	KExpression
	KFunction
	KGradient
	KCounter
	KCounters
	KCubicBezier
	KSteps
	KMathFunction
	KColorMix
	KUnicodeRange
	KUnicodeCharacter
	KUnicodeWildcard
	KRect
	KElementReference
	KEnvReference
	KRatio
	KUnknown
	KVar
	KAttr
	KLexical
)

var kindNames = [...]string{
	KNone:             "none",
	KNumeric:          "numeric",
	KString:           "string",
	KIdent:            "ident",
	KURI:              "uri",
	KColor:            "color",
	KExpression:       "expression",
	KFunction:         "function",
	KGradient:         "gradient",
	KCounter:          "counter",
	KCounters:         "counters",
	KCubicBezier:      "cubic-bezier",
	KSteps:            "steps",
	KMathFunction:     "math-function",
	KColorMix:         "color-mix",
	KUnicodeRange:     "unicode-range",
	KUnicodeCharacter: "unicode-character",
	KUnicodeWildcard:  "unicode-wildcard",
	KRect:             "rect",
	KElementReference: "element-reference",
	KEnvReference:     "env-reference",
	KRatio:            "ratio",
	KUnknown:          "unknown",
	KVar:              "var",
	KAttr:             "attr",
	KLexical:          "lexical",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("<invalid kind %d>", k)
}

// Value is a node of a value tree.
type Value interface {
	CssType() CssType
	Kind() Kind
	// Clone returns a deep copy.
	Clone() Value

	serialize(w *writer)
}

// CssText returns the canonical serialization of v.
func CssText(v Value) string {
	w := writer{}
	v.serialize(&w)
	return w.String()
}

// MinifiedCssText returns the serialization of v
// without optional whitespace, and with compact numbers.
func MinifiedCssText(v Value) string {
	w := writer{minify: true}
	v.serialize(&w)
	return w.String()
}

// Equal returns true if a and b are structurally equal: same node
// types and same payloads, recursively. Magnitudes are compared exactly
// (two NaN are equal) and the source form flag [Numeric.Integer] is ignored.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return equalNodes(reflect.ValueOf(a), reflect.ValueOf(b))
}

var numericReflectType = reflect.TypeOf(Numeric{})

// skipField returns true for the fields ignored by Equal and Hash
func skipField(t reflect.Type, i int) bool {
	return t == numericReflectType && t.Field(i).Name == "Integer"
}

func equalNodes(a, b reflect.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		return equalNodes(a.Elem(), b.Elem())
	case reflect.Pointer:
		if a.Type() != b.Type() {
			return false
		}
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		return equalNodes(a.Elem(), b.Elem())
	case reflect.Struct:
		if a.Type() != b.Type() {
			return false
		}
		for i := 0; i < a.NumField(); i++ {
			if skipField(a.Type(), i) {
				continue
			}
			if !equalNodes(a.Field(i), b.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Slice, reflect.Array:
		if a.Len() != b.Len() {
			return false
		}
		for i := 0; i < a.Len(); i++ {
			if !equalNodes(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Float32, reflect.Float64:
		x, y := a.Float(), b.Float()
		return x == y || (math.IsNaN(x) && math.IsNaN(y))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return a.Uint() == b.Uint()
	case reflect.String:
		return a.String() == b.String()
	case reflect.Bool:
		return a.Bool() == b.Bool()
	}
	return false
}

// Hash returns a structural hash of v, consistent with [Equal].
func Hash(v Value) int {
	if v == nil {
		return 0
	}
	h := xxhash.New()
	hashNode(h, reflect.ValueOf(v))
	return int(h.Sum64() >> 1)
}

func hashNode(h *xxhash.Digest, v reflect.Value) {
	var buf [8]byte
	writeUint := func(u uint64) {
		binary.LittleEndian.PutUint64(buf[:], u)
		h.Write(buf[:])
	}
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			h.WriteString("nil;")
			return
		}
		if v.Kind() == reflect.Pointer {
			h.WriteString(v.Type().Elem().Name())
		}
		hashNode(h, v.Elem())
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !skipField(v.Type(), i) {
				hashNode(h, v.Field(i))
			}
		}
	case reflect.Slice, reflect.Array:
		writeUint(uint64(v.Len()))
		for i := 0; i < v.Len(); i++ {
			hashNode(h, v.Index(i))
		}
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		switch {
		case math.IsNaN(f):
			f = math.NaN()
		case f == 0:
			f = 0 // -0 == 0
		}
		writeUint(math.Float64bits(f))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		writeUint(uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		writeUint(v.Uint())
	case reflect.String:
		writeUint(uint64(v.Len()))
		h.WriteString(v.String())
	case reflect.Bool:
		if v.Bool() {
			h.WriteString("t")
		} else {
			h.WriteString("f")
		}
	}
}

func cloneValue(v Value) Value {
	if v == nil {
		return nil
	}
	return v.Clone()
}

func cloneValues(l []Value) []Value {
	if l == nil {
		return nil
	}
	out := make([]Value, len(l))
	for i, v := range l {
		out[i] = v.Clone()
	}
	return out
}

type writer struct {
	strings.Builder
	minify bool
}

func (w *writer) number(f float64) {
	s := utils.FormatFloat(f)
	if w.minify {
		s = utils.MinifyFloat(s)
	}
	w.WriteString(s)
}

// comma writes a separator between function arguments or list items
func (w *writer) comma() {
	if w.minify {
		w.WriteByte(',')
	} else {
		w.WriteString(", ")
	}
}

// padded writes op with spaces around, omitted in minified mode
func (w *writer) padded(op string) {
	if w.minify {
		w.WriteString(op)
	} else {
		w.WriteString(" " + op + " ")
	}
}

func (w *writer) values(l []Value, sep func()) {
	for i, v := range l {
		if i != 0 {
			sep()
		}
		v.serialize(w)
	}
}

// ---------------------------- CSS-wide keywords ----------------------------

// WideKeyword is one of the CSS-wide keywords.
type WideKeyword struct {
	Name string // lower case
}

var wideKeywords = utils.NewSet("initial", "inherit", "unset", "revert", "revert-layer")

// IsWideKeyword returns true for the CSS-wide keywords, compared ASCII case-insensitively.
func IsWideKeyword(s string) bool { return wideKeywords.Has(utils.AsciiLower(s)) }

func (*WideKeyword) CssType() CssType      { return Keyword }
func (*WideKeyword) Kind() Kind            { return KNone }
func (k *WideKeyword) Clone() Value        { c := *k; return &c }
func (k *WideKeyword) serialize(w *writer) { w.WriteString(k.Name) }

// ---------------------------- lists ----------------------------

// Separator is the separator of the items of a [ValueList].
type Separator uint8

const (
	SpaceSeparated Separator = iota
	CommaSeparated
	SlashSeparated
	// Bracketed lists are whitespace separated items enclosed in [ ]
	Bracketed
)

// ValueList is an ordered sequence of values.
type ValueList struct {
	Items     []Value
	Separator Separator
}

func (*ValueList) CssType() CssType { return List }
func (*ValueList) Kind() Kind       { return KNone }
func (l *ValueList) Clone() Value {
	return &ValueList{Items: cloneValues(l.Items), Separator: l.Separator}
}

func (l *ValueList) serialize(w *writer) {
	switch l.Separator {
	case CommaSeparated:
		w.values(l.Items, w.comma)
	case SlashSeparated:
		w.values(l.Items, func() { w.padded("/") })
	case Bracketed:
		w.WriteByte('[')
		w.values(l.Items, func() { w.WriteByte(' ') })
		w.WriteByte(']')
	default:
		w.values(l.Items, func() { w.WriteByte(' ') })
	}
}
