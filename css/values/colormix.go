package values

import (
	"github.com/benoitkugler/cssom/css/color"
	"github.com/benoitkugler/cssom/css/errs"
	"github.com/benoitkugler/cssom/css/units"
)

// ColorMix is a color-mix() function.
type ColorMix struct {
	Color1, Color2 Value
	// optional percentages
	Percentage1, Percentage2 Value

	// Space is the interpolation space, which defaults to [color.DefaultInterpolationSpace]
	Space     color.Space
	HueMethod color.HueMethod
	// HasSpace is false when the interpolation space is omitted
	HasSpace     bool
	HasHueMethod bool
}

func (m *ColorMix) CssType() CssType {
	for _, v := range children(m) {
		if hasProxy(v) {
			return Proxy
		}
	}
	return Typed
}

func (*ColorMix) Kind() Kind { return KColorMix }

func (m *ColorMix) Clone() Value {
	out := *m
	out.Color1, out.Color2 = cloneValue(m.Color1), cloneValue(m.Color2)
	out.Percentage1, out.Percentage2 = cloneValue(m.Percentage1), cloneValue(m.Percentage2)
	return &out
}

func (m *ColorMix) serialize(w *writer) {
	w.WriteString("color-mix(")
	if m.HasSpace {
		w.WriteString("in ")
		w.WriteString(m.Space.String())
		if m.HasHueMethod {
			w.WriteByte(' ')
			w.WriteString(m.HueMethod.String())
			w.WriteString(" hue")
		}
		w.comma()
	}
	m.Color1.serialize(w)
	if m.Percentage1 != nil {
		w.WriteByte(' ')
		m.Percentage1.serialize(w)
	}
	w.comma()
	m.Color2.serialize(w)
	if m.Percentage2 != nil {
		w.WriteByte(' ')
		m.Percentage2.serialize(w)
	}
	w.WriteByte(')')
}

// interpolationSpace returns the space used to mix
func (m *ColorMix) interpolationSpace() color.Space {
	if m.HasSpace {
		return m.Space
	}
	return color.DefaultInterpolationSpace
}

// checkMixPercentage returns an error if v is not a percentage in [0%, 100%]
// (or a calc() percentage, or a pending substitution).
func checkMixPercentage(v Value) error {
	if v == nil {
		return nil
	}
	switch v := v.(type) {
	case *Numeric:
		if v.Unit != units.Percentage {
			return errs.TypeMismatchf("expected a percentage, got %s", CssText(v))
		}
		if v.Value < 0 || v.Value > 100 {
			return errs.Syntaxf("color-mix() percentages must be in [0%%, 100%%], got %s", CssText(v))
		}
		return nil
	}
	ty, ok := numericType(v)
	if ok && ty.Category() != units.CatPercentage {
		return errs.TypeMismatchf("expected a percentage, got %s", CssText(v))
	}
	return nil
}

// checkMixColor returns an error if v is not a color value
func checkMixColor(v Value) error {
	if v == nil {
		return errs.TypeMismatchf("missing color")
	}
	if hasDataType(v, "color") || hasProxy(v) {
		return nil
	}
	return errs.TypeMismatchf("expected a color, got %s", CssText(v))
}

// SetColor1 replaces the first color.
func (m *ColorMix) SetColor1(v Value) error {
	if err := checkMixColor(v); err != nil {
		return err
	}
	m.Color1 = v.Clone()
	return nil
}

// SetColor2 replaces the second color.
func (m *ColorMix) SetColor2(v Value) error {
	if err := checkMixColor(v); err != nil {
		return err
	}
	m.Color2 = v.Clone()
	return nil
}

// SetPercentage1 replaces the percentage of the first color.
// A nil value removes it.
func (m *ColorMix) SetPercentage1(v Value) error {
	if err := checkMixPercentage(v); err != nil {
		return err
	}
	m.Percentage1 = cloneValue(v)
	return nil
}

// SetPercentage2 replaces the percentage of the second color.
// A nil value removes it.
func (m *ColorMix) SetPercentage2(v Value) error {
	if err := checkMixPercentage(v); err != nil {
		return err
	}
	m.Percentage2 = cloneValue(v)
	return nil
}

func resolvePercentage(v Value) (*float64, error) {
	if v == nil {
		return nil, nil
	}
	f, _, err := resolveComponent(v, channelRange{percentRef: 100})
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Resolve computes the mix, returning a color in the interpolation space.
// Colors must be resolvable (see [ToColor]).
func (m *ColorMix) Resolve() (*Color, error) {
	if m.CssType() == Proxy {
		return nil, errs.NotSupportedf("color-mix() has pending substitutions")
	}
	c1, err := ToColor(m.Color1)
	if err != nil {
		return nil, err
	}
	c2, err := ToColor(m.Color2)
	if err != nil {
		return nil, err
	}
	p1, err := resolvePercentage(m.Percentage1)
	if err != nil {
		return nil, err
	}
	p2, err := resolvePercentage(m.Percentage2)
	if err != nil {
		return nil, err
	}
	w, err := color.NormalizeWeights(p1, p2)
	if err != nil {
		return nil, errs.Syntaxf("invalid color-mix() percentages: %s", err)
	}
	method := color.Shorter
	if m.HasHueMethod {
		method = m.HueMethod
	}
	return FromColor(color.Mix(m.interpolationSpace(), method, c1, c2, w)), nil
}
