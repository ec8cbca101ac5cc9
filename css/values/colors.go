package values

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/cssom/css/color"
	"github.com/benoitkugler/cssom/css/errs"
	"github.com/benoitkugler/cssom/css/units"
	"github.com/benoitkugler/cssom/utils"
	"github.com/mazznoer/csscolorparser"
)

// ColorModel is the family of a [Color].
type ColorModel uint8

const (
	ModelRGB ColorModel = iota
	ModelLab
	ModelLCh
	ModelHWB
	ModelHSL
	ModelXYZ
	ModelProfile
)

func (m ColorModel) String() string {
	switch m {
	case ModelRGB:
		return "RGB"
	case ModelLab:
		return "LAB"
	case ModelLCh:
		return "LCH"
	case ModelHWB:
		return "HWB"
	case ModelHSL:
		return "HSL"
	case ModelXYZ:
		return "XYZ"
	case ModelProfile:
		return "PROFILE"
	}
	return fmt.Sprintf("<invalid model %d>", m)
}

func modelOf(space color.Space) ColorModel {
	switch {
	case space.IsCustomProfile():
		return ModelProfile
	case space.IsRGB():
		return ModelRGB
	case space.IsXYZ():
		return ModelXYZ
	case space == color.Lab || space == color.OKLab:
		return ModelLab
	case space == color.LCh || space == color.OKLCh:
		return ModelLCh
	case space == color.HSL:
		return ModelHSL
	default:
		return ModelHWB
	}
}

// Color is a color value : hex notation, rgb(), hsl(), hwb(), lab(), lch(),
// oklab(), oklch() or color().
//
// Components[0] is the alpha channel; the other components are the
// channels of the color space, three for all models except [ModelProfile].
// Each component is a *Numeric, a calc() expression or the 'none' identifier.
type Color struct {
	Components []Value
	// Function is the lower case function name, or "#" for the hex notation
	Function string
	// Profile is the color space name of color(), lower case
	// for predefined spaces, case-sensitive for custom profiles
	Profile string
	// Legacy is true for the comma separated syntax
	Legacy bool
	Model  ColorModel
	// Space is only meaningful if Known is true, which is
	// false for unknown custom profiles
	Space color.Space
	Known bool
}

func (c *Color) CssType() CssType {
	for _, comp := range c.Components {
		if hasProxy(comp) {
			return Proxy
		}
	}
	return Typed
}

func (*Color) Kind() Kind { return KColor }

func (c *Color) Clone() Value {
	out := *c
	out.Components = cloneValues(c.Components)
	return &out
}

func isNone(v Value) bool {
	id, ok := v.(*Ident)
	return ok && utils.AsciiEqualFold(id.Value, "none")
}

func isOpaque(alpha Value) bool {
	n, ok := alpha.(*Numeric)
	return ok && n.Unit == units.Number && n.Value == 1
}

func (c *Color) serialize(w *writer) {
	if c.Function == "#" {
		if hex, ok := c.hex(); ok {
			w.WriteString(hex)
			return
		}
		// not representable anymore
		c := *c
		c.Function = "rgb"
		c.serialize(w)
		return
	}
	w.WriteString(c.Function)
	w.WriteByte('(')
	if c.Function == "color" {
		w.WriteString(c.Profile)
		w.WriteByte(' ')
	}
	channels, alpha := c.Components[1:], c.Components[0]
	if c.Legacy {
		w.values(channels, w.comma)
		if !isOpaque(alpha) {
			w.comma()
			alpha.serialize(w)
		}
	} else {
		w.values(channels, func() { w.WriteByte(' ') })
		if !isOpaque(alpha) {
			w.padded("/")
			alpha.serialize(w)
		}
	}
	w.WriteByte(')')
}

// hex returns the #rrggbb[aa] notation, if components are 8 bit integers
func (c *Color) hex() (string, bool) {
	var out strings.Builder
	out.WriteByte('#')
	for i, comp := range append(c.Components[1:4:4], c.Components[0]) {
		n, ok := comp.(*Numeric)
		if !ok || n.Unit != units.Number {
			return "", false
		}
		v := n.Value
		if i == 3 {
			if v == 1 {
				break
			}
			v = math.Round(v * 255)
		}
		if v != math.Trunc(v) || v < 0 || v > 255 {
			return "", false
		}
		fmt.Fprintf(&out, "%02x", int(v))
	}
	return out.String(), true
}

// channel ranges, as the value of 100%, and the scale of numbers
type channelRange struct {
	percentRef  float64
	numberScale float64
	hue         bool
}

var (
	alphaRange   = channelRange{percentRef: 1, numberScale: 1}
	unitRange    = channelRange{percentRef: 1, numberScale: 1}
	byteRange    = channelRange{percentRef: 1, numberScale: 1. / 255}
	hueRange     = channelRange{hue: true}
	fractRange   = channelRange{percentRef: 1, numberScale: 1. / 100}
	labLRange    = channelRange{percentRef: 100, numberScale: 1}
	labABRange   = channelRange{percentRef: 125, numberScale: 1}
	lchCRange    = channelRange{percentRef: 150, numberScale: 1}
	okABRange    = channelRange{percentRef: 0.4, numberScale: 1}
	okLightness = channelRange{percentRef: 1, numberScale: 1}
)

// rangeOf returns the range of the component i (0 for alpha)
func (c *Color) rangeOf(i int) channelRange {
	if i == 0 {
		return alphaRange
	}
	if !c.Known {
		return unitRange
	}
	switch c.Space {
	case color.SRGB:
		if c.Function != "color" {
			return byteRange
		}
	case color.HSL, color.HWB:
		if i == 1 {
			return hueRange
		}
		return fractRange
	case color.Lab:
		if i == 1 {
			return labLRange
		}
		return labABRange
	case color.LCh:
		return [4]channelRange{1: labLRange, 2: lchCRange, 3: hueRange}[i]
	case color.OKLab:
		if i == 1 {
			return okLightness
		}
		return okABRange
	case color.OKLCh:
		return [4]channelRange{1: okLightness, 2: okABRange, 3: hueRange}[i]
	}
	return unitRange
}

// resolveComponent returns the float value of a component,
// and false for 'none'
func resolveComponent(v Value, rng channelRange) (float64, bool, error) {
	if isNone(v) {
		return 0, false, nil
	}
	var dim units.Dimension
	switch v := v.(type) {
	case *Numeric:
		dim = v.Dimension()
	case *Expression:
		var ok bool
		if dim, ok = v.Evaluate(); !ok {
			return 0, false, errs.NotSupportedf("component %s is not resolvable", CssText(v))
		}
	case *MathFunction:
		val, ty, ok := v.evaluate()
		if !ok || ty.Category() == units.CatInvalid {
			return 0, false, errs.NotSupportedf("component %s is not resolvable", CssText(v))
		}
		dim = units.NewDim(val, ty.Category().Canonical())
	default:
		return 0, false, errs.NotSupportedf("component %s is not resolvable", CssText(v))
	}
	switch cat := dim.Unit.Category(); {
	case rng.hue && (cat == units.CatAngle || cat == units.CatNumber):
		deg, _ := dim.ConvertTo(units.Deg)
		if cat == units.CatNumber {
			deg.Value = dim.Value
		}
		return deg.Value, true, nil
	case !rng.hue && cat == units.CatPercentage:
		return dim.Value / 100 * rng.percentRef, true, nil
	case !rng.hue && cat == units.CatNumber:
		return dim.Value * rng.numberScale, true, nil
	}
	return 0, false, errs.TypeMismatchf("unexpected component %s", CssText(v))
}

// ToColor resolves the components of the color.
func (c *Color) ToColor() (color.Color, error) {
	if !c.Known {
		return color.Color{}, errs.NotSupportedf("color profile %s is not supported", c.Profile)
	}
	if len(c.Components) != 4 {
		return color.Color{}, errs.NotSupportedf("invalid number of components for %s", c.Profile)
	}
	out := color.Color{Space: c.Space}
	for i, comp := range c.Components {
		v, ok, err := resolveComponent(comp, c.rangeOf(i))
		if err != nil {
			return color.Color{}, err
		}
		out.Components[i] = v
		out.Missing[i] = !ok
	}
	out.Components[0] = utils.Clamp(out.Components[0], 0, 1)
	return out, nil
}

// FromColor returns the color value for c. sRGB colors use the legacy
// rgb() notation with percentages, the other RGB spaces, xyz and
// the custom profiles use color().
func FromColor(c color.Color) *Color {
	out := &Color{Space: c.Space, Known: true, Model: modelOf(c.Space), Components: make([]Value, 4)}
	for i, v := range c.Components {
		if c.Missing[i] {
			out.Components[i] = &Ident{Value: "none"}
		} else {
			out.Components[i] = NewNumber(v)
		}
	}
	switch c.Space {
	case color.SRGB:
		out.Function, out.Legacy = "rgb", true
		if c.Missing != [4]bool{} {
			out.Legacy = false
		}
		for i := 1; i < 4; i++ {
			if !c.Missing[i] {
				out.Components[i] = NewDimension(c.Components[i]*100, units.Percentage)
			}
		}
		if out.Legacy && !isOpaque(out.Components[0]) {
			out.Function = "rgba"
		}
	case color.HSL, color.HWB:
		out.Function = c.Space.String()
		for i := 2; i < 4; i++ {
			if !c.Missing[i] {
				out.Components[i] = NewDimension(c.Components[i]*100, units.Percentage)
			}
		}
	case color.Lab, color.LCh, color.OKLab, color.OKLCh:
		out.Function = c.Space.String()
	default:
		out.Function, out.Profile = "color", c.Space.String()
	}
	return out
}

// allowedCategories returns the dimensions accepted by the component index
func (c *Color) allowedCategories(index int) [2]units.Category {
	if c.rangeOf(index).hue {
		return [2]units.Category{units.CatNumber, units.CatAngle}
	}
	return [2]units.Category{units.CatNumber, units.CatPercentage}
}

// SetComponent sets the component at index (0 for alpha), checking
// its dimension. The alpha channel is clamped to [0, 1] (or [0%, 100%]).
func (c *Color) SetComponent(index int, v Value) error {
	if index < 0 || index >= len(c.Components) {
		return errs.InvalidModificationf("color %s has no component %d", c.Function, index)
	}
	if v == nil {
		return errs.TypeMismatchf("missing component value")
	}
	v = v.Clone()
	if !isNone(v) {
		// pending substitutions are checked once substituted
		if ty, ok := numericType(v); ok {
			allowed, cat := c.allowedCategories(index), ty.Category()
			if cat == units.CatInvalid || (cat != allowed[0] && cat != allowed[1]) {
				return errs.TypeMismatchf("invalid component %s for %s", CssText(v), c.Function)
			}
		}
		if n, ok := v.(*Numeric); ok && index == 0 {
			if n.Unit == units.Percentage {
				n.Value = utils.Clamp(n.Value, 0, 100)
			} else {
				n.Value = utils.Clamp(n.Value, 0, 1)
			}
		}
	}
	if c.Function == "#" {
		c.Function, c.Legacy = "rgb", true
	}
	if isNone(v) {
		c.Legacy = false
	}
	c.Components[index] = v
	return nil
}

// SetCssText parses text and replaces c, which is only allowed
// if the parsed color has the same model.
func (c *Color) SetCssText(text string) error {
	v, err := ParseString(text)
	if err != nil {
		return err
	}
	other, ok := v.(*Color)
	if !ok {
		return errs.InvalidModificationf("%s is not a color", text)
	}
	if other.Model != c.Model {
		return errs.InvalidModificationf("can't change a %s color into a %s color", c.Model, other.Model)
	}
	*c = *other
	return nil
}

func parseTargetSpace(name string) (color.Space, error) {
	space, ok := color.ParseSpace(name)
	if !ok {
		return 0, errs.NotSupportedf("unsupported color space %s", name)
	}
	return space, nil
}

// ToSpace converts the color to the given space name.
func (c *Color) ToSpace(space string) (*Color, error) {
	target, err := parseTargetSpace(space)
	if err != nil {
		return nil, err
	}
	col, err := c.ToColor()
	if err != nil {
		return nil, err
	}
	return FromColor(col.Convert(target)), nil
}

// IsInGamut returns true if the color, converted to the
// given space, is inside its nominal range.
func (c *Color) IsInGamut(space string) (bool, error) {
	return c.IsInGamutEpsilon(space, color.DefaultGamutEpsilon)
}

// IsInGamutEpsilon is the same as [Color.IsInGamut] with a custom tolerance.
func (c *Color) IsInGamutEpsilon(space string, epsilon float64) (bool, error) {
	target, err := parseTargetSpace(space)
	if err != nil {
		return false, err
	}
	col, err := c.ToColor()
	if err != nil {
		return false, err
	}
	return col.InGamutEpsilon(target, epsilon), nil
}

// DeltaE2000 returns the CIEDE2000 distance to other.
func (c *Color) DeltaE2000(other Value) (float64, error) {
	c1, c2, err := c.pair(other)
	if err != nil {
		return 0, err
	}
	return color.DeltaE2000(c1, c2), nil
}

// DeltaEOK returns the euclidean OKLab distance to other.
func (c *Color) DeltaEOK(other Value) (float64, error) {
	c1, c2, err := c.pair(other)
	if err != nil {
		return 0, err
	}
	return color.DeltaEOK(c1, c2), nil
}

func (c *Color) pair(other Value) (color.Color, color.Color, error) {
	c1, err := c.ToColor()
	if err != nil {
		return c1, c1, err
	}
	c2, err := ToColor(other)
	return c1, c2, err
}

// IsColorKeyword returns true for the named colors, 'transparent'
// and 'currentcolor', compared ASCII case-insensitively.
func IsColorKeyword(name string) bool {
	name = utils.AsciiLower(name)
	if name == "currentcolor" {
		return true
	}
	_, ok := NamedColor(name)
	return ok
}

// NamedColor returns the color of a named color keyword (including
// 'transparent'), given in lower case.
func NamedColor(name string) (color.Color, bool) {
	if name == "" || isHexDigits(name) {
		return color.Color{}, false
	}
	for i := 0; i < len(name); i++ {
		if c := name[i]; c < 'a' || c > 'z' {
			return color.Color{}, false
		}
	}
	parsed, err := csscolorparser.Parse(name)
	if err != nil {
		return color.Color{}, false
	}
	return color.New(color.SRGB, parsed.R, parsed.G, parsed.B, parsed.A), true
}

func isHexDigits(s string) bool {
	_, err := strconv.ParseUint(s, 16, 64)
	return err == nil
}

// ToColor resolves a color value : a [Color], a named color
// or a [ColorMix].
func ToColor(v Value) (color.Color, error) {
	switch v := v.(type) {
	case *Color:
		return v.ToColor()
	case *ColorMix:
		c, err := v.Resolve()
		if err != nil {
			return color.Color{}, err
		}
		return c.ToColor()
	case *Ident:
		if c, ok := NamedColor(utils.AsciiLower(v.Value)); ok {
			return c, nil
		}
		if utils.AsciiEqualFold(v.Value, "currentcolor") {
			return color.Color{}, errs.NotSupportedf("currentcolor can't be resolved")
		}
	}
	if v != nil && hasProxy(v) {
		return color.Color{}, errs.NotSupportedf("color %s has pending substitutions", CssText(v))
	}
	return color.Color{}, errs.TypeMismatchf("%s is not a color", cssTextOrNil(v))
}

func cssTextOrNil(v Value) string {
	if v == nil {
		return "<nil>"
	}
	return CssText(v)
}
