package values

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	pa "github.com/benoitkugler/cssom/css/parser"
	"github.com/benoitkugler/cssom/css/units"
	"github.com/tdewolff/parse/v2/css"
)

// Numeric is a number, a percentage or a dimension.
type Numeric struct {
	Value float64
	Unit  units.Unit
	// Integer is true for numbers written without
	// decimal point nor exponent. It is ignored by [Equal].
	Integer bool
}

// NewNumber returns a unitless number.
func NewNumber(v float64) *Numeric {
	return &Numeric{Value: v, Unit: units.Number, Integer: v == math.Trunc(v) && !math.IsInf(v, 0)}
}

// NewDimension returns a value with unit u.
func NewDimension(v float64, u units.Unit) *Numeric { return &Numeric{Value: v, Unit: u} }

func (*Numeric) CssType() CssType { return Typed }
func (*Numeric) Kind() Kind       { return KNumeric }
func (n *Numeric) Clone() Value   { c := *n; return &c }

// Dimension returns the value and its unit.
func (n *Numeric) Dimension() units.Dimension { return units.NewDim(n.Value, n.Unit) }

func (n *Numeric) serialize(w *writer) {
	switch {
	case math.IsInf(n.Value, 1):
		w.WriteString("infinity")
	case math.IsInf(n.Value, -1):
		w.WriteString("-infinity")
	case math.IsNaN(n.Value):
		w.WriteString("NaN")
	default:
		w.number(n.Value)
	}
	w.WriteString(n.Unit.String())
}

type String struct {
	Value string
}

func (*String) CssType() CssType      { return Typed }
func (*String) Kind() Kind            { return KString }
func (s *String) Clone() Value        { c := *s; return &c }
func (s *String) serialize(w *writer) { w.WriteString(pa.SerializeString(s.Value)) }

// Ident is an identifier, with its case preserved.
// Named colors are also stored as identifiers.
type Ident struct {
	Value string
}

func (*Ident) CssType() CssType      { return Typed }
func (*Ident) Kind() Kind            { return KIdent }
func (s *Ident) Clone() Value        { c := *s; return &c }
func (s *Ident) serialize(w *writer) { w.WriteString(pa.SerializeIdentifier(s.Value)) }

// URI is an opaque url.
type URI struct {
	URL string
}

func (*URI) CssType() CssType { return Typed }
func (*URI) Kind() Kind       { return KURI }
func (u *URI) Clone() Value   { c := *u; return &c }
func (u *URI) serialize(w *writer) {
	w.WriteString("url(")
	if u.URL != "" && css.IsURLUnquoted([]byte(u.URL)) {
		w.WriteString(u.URL)
	} else {
		w.WriteString(pa.SerializeString(u.URL))
	}
	w.WriteByte(')')
}

// Unknown stores the normalized text of a value
// which is valid CSS but not modeled.
type Unknown struct {
	Text string
}

func (*Unknown) CssType() CssType      { return Typed }
func (*Unknown) Kind() Kind            { return KUnknown }
func (u *Unknown) Clone() Value        { c := *u; return &c }
func (u *Unknown) serialize(w *writer) { w.WriteString(u.Text) }

// Ratio is a <ratio>, like 16 / 9
type Ratio struct {
	Numerator, Denominator float64
}

func (*Ratio) CssType() CssType { return Typed }
func (*Ratio) Kind() Kind       { return KRatio }
func (r *Ratio) Clone() Value   { c := *r; return &c }
func (r *Ratio) serialize(w *writer) {
	w.number(r.Numerator)
	w.padded("/")
	w.number(r.Denominator)
}

// UnicodeRange is the inclusive range U+Start-End
type UnicodeRange struct {
	Start, End uint32
}

func (*UnicodeRange) CssType() CssType { return Typed }
func (*UnicodeRange) Kind() Kind       { return KUnicodeRange }
func (u *UnicodeRange) Clone() Value   { c := *u; return &c }
func (u *UnicodeRange) serialize(w *writer) {
	fmt.Fprintf(w, "U+%X-%X", u.Start, u.End)
}

// UnicodeCharacter is a single code point, like U+26
type UnicodeCharacter struct {
	Code uint32
}

func (*UnicodeCharacter) CssType() CssType { return Typed }
func (*UnicodeCharacter) Kind() Kind       { return KUnicodeCharacter }
func (u *UnicodeCharacter) Clone() Value   { c := *u; return &c }
func (u *UnicodeCharacter) serialize(w *writer) {
	fmt.Fprintf(w, "U+%X", u.Code)
}

// UnicodeWildcard is a range written with '?', like U+4??,
// stored as its inclusive bounds.
type UnicodeWildcard struct {
	Start, End uint32
}

func (*UnicodeWildcard) CssType() CssType { return Typed }
func (*UnicodeWildcard) Kind() Kind       { return KUnicodeWildcard }
func (u *UnicodeWildcard) Clone() Value   { c := *u; return &c }
func (u *UnicodeWildcard) serialize(w *writer) {
	n := 0 // number of '?'
	for size := u.End - u.Start + 1; size > 1 && n < 6; size >>= 4 {
		n++
	}
	w.WriteString("U+")
	if prefix := u.Start >> (4 * n); prefix != 0 || n == 0 {
		fmt.Fprintf(w, "%X", prefix)
	}
	w.WriteString(strings.Repeat("?", n))
}

// Counter is counter(name) or counter(name, style).
type Counter struct {
	Name  string
	Style string // optional
}

func (*Counter) CssType() CssType { return Typed }
func (*Counter) Kind() Kind       { return KCounter }
func (c *Counter) Clone() Value   { cp := *c; return &cp }
func (c *Counter) serialize(w *writer) {
	w.WriteString("counter(")
	w.WriteString(pa.SerializeIdentifier(c.Name))
	if c.Style != "" {
		w.comma()
		w.WriteString(pa.SerializeIdentifier(c.Style))
	}
	w.WriteByte(')')
}

// Counters is counters(name, separator) or counters(name, separator, style).
type Counters struct {
	Name      string
	Separator string
	Style     string // optional
}

func (*Counters) CssType() CssType { return Typed }
func (*Counters) Kind() Kind       { return KCounters }
func (c *Counters) Clone() Value   { cp := *c; return &cp }
func (c *Counters) serialize(w *writer) {
	w.WriteString("counters(")
	w.WriteString(pa.SerializeIdentifier(c.Name))
	w.comma()
	w.WriteString(pa.SerializeString(c.Separator))
	if c.Style != "" {
		w.comma()
		w.WriteString(pa.SerializeIdentifier(c.Style))
	}
	w.WriteByte(')')
}

type CubicBezier struct {
	X1, Y1, X2, Y2 float64
}

func (*CubicBezier) CssType() CssType { return Typed }
func (*CubicBezier) Kind() Kind       { return KCubicBezier }
func (c *CubicBezier) Clone() Value   { cp := *c; return &cp }
func (c *CubicBezier) serialize(w *writer) {
	w.WriteString("cubic-bezier(")
	for i, v := range [4]float64{c.X1, c.Y1, c.X2, c.Y2} {
		if i != 0 {
			w.comma()
		}
		w.number(v)
	}
	w.WriteByte(')')
}

// Steps is steps(count) or steps(count, position).
type Steps struct {
	Position string // optional, lower case
	Count    int
}

func (*Steps) CssType() CssType { return Typed }
func (*Steps) Kind() Kind       { return KSteps }
func (s *Steps) Clone() Value   { cp := *s; return &cp }
func (s *Steps) serialize(w *writer) {
	w.WriteString("steps(")
	w.WriteString(strconv.Itoa(s.Count))
	if s.Position != "" {
		w.comma()
		w.WriteString(s.Position)
	}
	w.WriteByte(')')
}

// Rect is the legacy rect() shape, whose sides
// are lengths or the 'auto' identifier.
type Rect struct {
	Sides [4]Value
	// Commas is true if the arguments are comma separated
	Commas bool
}

func (*Rect) CssType() CssType { return Typed }
func (*Rect) Kind() Kind       { return KRect }
func (r *Rect) Clone() Value {
	out := &Rect{Commas: r.Commas}
	for i, s := range r.Sides {
		out.Sides[i] = cloneValue(s)
	}
	return out
}

func (r *Rect) serialize(w *writer) {
	w.WriteString("rect(")
	sep := func() { w.WriteByte(' ') }
	if r.Commas {
		sep = w.comma
	}
	w.values(r.Sides[:], sep)
	w.WriteByte(')')
}

// ElementReference is element(#id)
type ElementReference struct {
	ID string
}

func (*ElementReference) CssType() CssType { return Typed }
func (*ElementReference) Kind() Kind       { return KElementReference }
func (e *ElementReference) Clone() Value   { c := *e; return &c }
func (e *ElementReference) serialize(w *writer) {
	w.WriteString("element(#")
	w.WriteString(pa.SerializeIdentifier(e.ID))
	w.WriteByte(')')
}

// EnvReference is env(name indices..., fallback)
type EnvReference struct {
	Fallback Value // optional
	Name     string
	Indices  []int
}

func (*EnvReference) CssType() CssType { return Typed }
func (*EnvReference) Kind() Kind       { return KEnvReference }
func (e *EnvReference) Clone() Value {
	return &EnvReference{
		Name:     e.Name,
		Indices:  append([]int(nil), e.Indices...),
		Fallback: cloneValue(e.Fallback),
	}
}

func (e *EnvReference) serialize(w *writer) {
	w.WriteString("env(")
	w.WriteString(pa.SerializeIdentifier(e.Name))
	for _, index := range e.Indices {
		w.WriteByte(' ')
		w.WriteString(strconv.Itoa(index))
	}
	if e.Fallback != nil {
		w.comma()
		e.Fallback.serialize(w)
	}
	w.WriteByte(')')
}

// FunctionValue is a function not otherwise modeled, like
// the transform functions. Its arguments are comma separated.
type FunctionValue struct {
	Name string // lower case
	Args []Value
}

func (*FunctionValue) CssType() CssType { return Typed }
func (*FunctionValue) Kind() Kind       { return KFunction }
func (f *FunctionValue) Clone() Value {
	return &FunctionValue{Name: f.Name, Args: cloneValues(f.Args)}
}

func (f *FunctionValue) serialize(w *writer) {
	w.WriteString(f.Name)
	w.WriteByte('(')
	w.values(f.Args, w.comma)
	w.WriteByte(')')
}

// Gradient is one of the gradient functions (linear-gradient(),
// repeating-radial-gradient(), ...). Its arguments are comma separated.
type Gradient struct {
	Name string // lower case
	Args []Value
}

func (*Gradient) CssType() CssType { return Typed }
func (*Gradient) Kind() Kind       { return KGradient }
func (g *Gradient) Clone() Value {
	return &Gradient{Name: g.Name, Args: cloneValues(g.Args)}
}

func (g *Gradient) serialize(w *writer) {
	w.WriteString(g.Name)
	w.WriteByte('(')
	w.values(g.Args, w.comma)
	w.WriteByte(')')
}
