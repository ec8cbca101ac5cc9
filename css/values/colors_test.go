package values

import (
	"testing"

	"github.com/benoitkugler/cssom/css/color"
	"github.com/benoitkugler/cssom/css/errs"
	"github.com/benoitkugler/cssom/css/units"
	tu "github.com/benoitkugler/cssom/utils/testutils"
	"github.com/stretchr/testify/require"
)

func parseColor(t *testing.T, css string) *Color {
	t.Helper()
	c, ok := mustParse(t, css).(*Color)
	require.True(t, ok, css)
	return c
}

func componentValues(t *testing.T, c *Color) []float64 {
	t.Helper()
	out := make([]float64, len(c.Components))
	for i, comp := range c.Components {
		n, ok := comp.(*Numeric)
		require.True(t, ok, CssText(comp))
		out[i] = n.Value
	}
	return out
}

func TestColorModels(t *testing.T) {
	for _, test := range []struct {
		css   string
		model ColorModel
		space color.Space
	}{
		{"#fff", ModelRGB, color.SRGB},
		{"rgba(1, 2, 3, 0.5)", ModelRGB, color.SRGB},
		{"color(display-p3 1 0 0)", ModelRGB, color.DisplayP3},
		{"hsl(1 2% 3%)", ModelHSL, color.HSL},
		{"hwb(1 2% 3%)", ModelHWB, color.HWB},
		{"lab(50 10 10)", ModelLab, color.Lab},
		{"oklab(0.5 0.1 0.1)", ModelLab, color.OKLab},
		{"lch(50 10 10)", ModelLCh, color.LCh},
		{"oklch(0.5 0.1 10)", ModelLCh, color.OKLCh},
		{"color(xyz 0.1 0.2 0.3)", ModelXYZ, color.XYZD65},
		{"color(xyz-d50 0.1 0.2 0.3)", ModelXYZ, color.XYZD50},
		{"color(--rec2020-linear 0.1 0.2 0.3)", ModelProfile, color.Rec2020Linear},
	} {
		c := parseColor(t, test.css)
		tu.AssertEqual(t, c.Model, test.model)
		tu.AssertEqual(t, c.Space, test.space)
		tu.AssertEqual(t, len(c.Components), 4)
		tu.AssertEqual(t, c.Known, true)
	}

	custom := parseColor(t, "color(--Custom 1 2 3 4 5)")
	tu.AssertEqual(t, custom.Model, ModelProfile)
	tu.AssertEqual(t, custom.Known, false)
	tu.AssertEqual(t, custom.Profile, "--Custom")
	tu.AssertEqual(t, len(custom.Components), 6)
	tu.AssertEqual(t, CssText(custom), "color(--Custom 1 2 3 4 5)")
}

func TestColorToColor(t *testing.T) {
	c, err := parseColor(t, "rgb(255 51 0 / 50%)").ToColor()
	require.NoError(t, err)
	tu.AssertInDelta(t, c.Components[1], 1, 1e-9)
	tu.AssertInDelta(t, c.Components[2], 0.2, 1e-9)
	tu.AssertInDelta(t, c.Components[0], 0.5, 1e-9)

	c, err = parseColor(t, "hsl(0.5turn 100% 50%)").ToColor()
	require.NoError(t, err)
	tu.AssertInDelta(t, c.Components[1], 180, 1e-9)
	tu.AssertInDelta(t, c.Components[2], 1, 1e-9)

	c, err = parseColor(t, "lab(50% 100% -50%)").ToColor()
	require.NoError(t, err)
	tu.AssertInDelta(t, c.Components[1], 50, 1e-9)
	tu.AssertInDelta(t, c.Components[2], 125, 1e-9)
	tu.AssertInDelta(t, c.Components[3], -62.5, 1e-9)

	c, err = parseColor(t, "oklch(50% 100% calc(90deg * 2))").ToColor()
	require.NoError(t, err)
	tu.AssertInDelta(t, c.Components[1], 0.5, 1e-9)
	tu.AssertInDelta(t, c.Components[2], 0.4, 1e-9)
	tu.AssertInDelta(t, c.Components[3], 180, 1e-9)

	c, err = parseColor(t, "lch(50 20 none)").ToColor()
	require.NoError(t, err)
	tu.AssertEqual(t, c.Missing, [4]bool{false, false, false, true})

	_, err = parseColor(t, "rgb(attr(r number) 0 0)").ToColor()
	tu.AssertEqual(t, errs.KindOf(err), errs.NotSupported)
}

func TestColorToSpace(t *testing.T) {
	// scenario: srgb to lab
	c := parseColor(t, "color(srgb 0.0314 0.24706 1 / 0.5)")
	lab, err := c.ToSpace("lab")
	require.NoError(t, err)
	tu.AssertEqual(t, lab.Model, ModelLab)
	got := componentValues(t, lab)
	tu.AssertInDelta(t, got[1], 37.2631, 0.001)
	tu.AssertInDelta(t, got[2], 47.061, 0.001)
	tu.AssertInDelta(t, got[3], -99.208, 0.001)
	tu.AssertInDelta(t, got[0], 0.5, 1e-9)
	require.Contains(t, CssText(lab), "/ 0.5)")

	white, err := parseColor(t, "#ffffff").ToSpace("srgb")
	require.NoError(t, err)
	tu.AssertEqual(t, CssText(white), "rgb(100%, 100%, 100%)")

	xyz, err := parseColor(t, "#ffffff").ToSpace("xyz")
	require.NoError(t, err)
	require.Contains(t, CssText(xyz), "color(xyz-d65 ")

	gray, err := parseColor(t, "#ffffff").ToSpace("oklch")
	require.NoError(t, err)
	require.True(t, isNone(gray.Components[3]), CssText(gray))

	_, err = c.ToSpace("foo")
	tu.AssertEqual(t, errs.KindOf(err), errs.NotSupported)
	_, err = parseColor(t, "color(--foo 1 2 3)").ToSpace("srgb")
	tu.AssertEqual(t, errs.KindOf(err), errs.NotSupported)

	// known custom profiles are convertible
	linear, err := parseColor(t, "color(--display-p3-linear 1 1 1)").ToSpace("srgb")
	require.NoError(t, err)
	for _, v := range componentValues(t, linear)[1:] {
		tu.AssertInDelta(t, v, 100, 1e-2)
	}
}

func TestColorToSpaceKeepsPrecision(t *testing.T) {
	for _, input := range []string{"color(srgb 0.01 0.02 0.03)", "color(srgb 0.2 0.4 0.6)"} {
		start := parseColor(t, input)
		expected := componentValues(t, start)
		for _, space := range []string{"srgb-linear", "display-p3", "rec2020", "xyz", "lab", "oklch", "hsl"} {
			c, err := start.ToSpace(space)
			require.NoError(t, err)
			back, err := c.ToSpace("srgb")
			require.NoError(t, err)
			got := componentValues(t, back)
			for i := 1; i < 4; i++ {
				// rgb() uses percentages
				require.InEpsilon(t, expected[i]*100, got[i], 1e-6, "%s via %s", input, space)
			}
		}
	}

	// rounding only happens at serialization
	c, err := parseColor(t, "color(srgb 0.123456789 0 0)").ToSpace("srgb-linear")
	require.NoError(t, err)
	tu.AssertInDelta(t, componentValues(t, c)[1], 0.014056379549048313, 1e-12)
	tu.AssertEqual(t, CssText(c), "color(srgb-linear 0.014056 0 0)")
}

func TestColorGamut(t *testing.T) {
	in, err := parseColor(t, "rgb(10 20 30)").IsInGamut("srgb")
	require.NoError(t, err)
	require.True(t, in)

	in, err = parseColor(t, "color(display-p3 1 0 0)").IsInGamut("srgb")
	require.NoError(t, err)
	require.False(t, in)

	// p3 red lies just outside the rec2020 red-green edge
	in, err = parseColor(t, "color(display-p3 1 0 0)").IsInGamut("rec2020")
	require.NoError(t, err)
	require.False(t, in)

	in, err = parseColor(t, "color(display-p3 0.8 0.2 0.2)").IsInGamut("rec2020")
	require.NoError(t, err)
	require.True(t, in)

	_, err = parseColor(t, "#fff").IsInGamut("--foo")
	tu.AssertEqual(t, errs.KindOf(err), errs.NotSupported)
}

func TestColorDistances(t *testing.T) {
	c := parseColor(t, "lab(50 2.6772 -79.7751)")
	d, err := c.DeltaE2000(mustParse(t, "lab(50 0 -82.7485)"))
	require.NoError(t, err)
	tu.AssertInDelta(t, d, 2.0425, 1e-4)

	d, err = parseColor(t, "#ffffff").DeltaEOK(mustParse(t, "white"))
	require.NoError(t, err)
	tu.AssertInDelta(t, d, 0, 1e-9)

	_, err = c.DeltaE2000(mustParse(t, "color(--foo 1 2 3)"))
	tu.AssertEqual(t, errs.KindOf(err), errs.NotSupported)
	_, err = parseColor(t, "color(--foo 1 2 3)").DeltaEOK(c)
	tu.AssertEqual(t, errs.KindOf(err), errs.NotSupported)
	_, err = c.DeltaEOK(mustParse(t, "1px"))
	tu.AssertEqual(t, errs.KindOf(err), errs.TypeMismatch)
}

func TestSetComponent(t *testing.T) {
	c := parseColor(t, "rgb(1 2 3)")

	err := c.SetComponent(1, NewDimension(10, units.Deg))
	tu.AssertEqual(t, errs.KindOf(err), errs.TypeMismatch)
	err = c.SetComponent(1, &String{Value: "a"})
	tu.AssertEqual(t, errs.KindOf(err), errs.TypeMismatch)
	err = c.SetComponent(4, NewNumber(1))
	tu.AssertEqual(t, errs.KindOf(err), errs.InvalidModification)
	err = c.SetComponent(-1, NewNumber(1))
	tu.AssertEqual(t, errs.KindOf(err), errs.InvalidModification)

	// out of gamut values are kept, alpha is clamped
	require.NoError(t, c.SetComponent(1, NewNumber(300)))
	require.NoError(t, c.SetComponent(0, NewNumber(2)))
	tu.AssertEqual(t, CssText(c), "rgb(300 2 3)")
	require.NoError(t, c.SetComponent(0, NewDimension(-20, units.Percentage)))
	tu.AssertEqual(t, CssText(c), "rgb(300 2 3 / 0%)")

	require.NoError(t, c.SetComponent(2, mustParse(t, "calc(10% * 2)")))
	require.NoError(t, c.SetComponent(3, &Var{Name: "--b"}))
	tu.AssertEqual(t, c.CssType(), Proxy)
	err = c.SetComponent(3, mustParse(t, "calc(1px * 2)"))
	tu.AssertEqual(t, errs.KindOf(err), errs.TypeMismatch)

	h := parseColor(t, "hsl(120 50% 50%)")
	require.NoError(t, h.SetComponent(1, NewDimension(1, units.Turn)))
	err = h.SetComponent(2, NewDimension(1, units.Turn))
	tu.AssertEqual(t, errs.KindOf(err), errs.TypeMismatch)

	// hex switches to rgb(), none switches to the modern syntax
	hex := parseColor(t, "#ff0000")
	require.NoError(t, hex.SetComponent(1, NewNumber(0)))
	tu.AssertEqual(t, CssText(hex), "rgb(0, 0, 0)")
	require.NoError(t, hex.SetComponent(2, &Ident{Value: "none"}))
	tu.AssertEqual(t, CssText(hex), "rgb(0 none 0)")
}

func TestSetCssText(t *testing.T) {
	c := parseColor(t, "color(xyz 0.1 0.2 0.3)")
	err := c.SetCssText("rgb(0 0 0)")
	tu.AssertEqual(t, errs.KindOf(err), errs.InvalidModification)
	err = c.SetCssText("1px")
	tu.AssertEqual(t, errs.KindOf(err), errs.InvalidModification)
	err = c.SetCssText("rgb(")
	tu.AssertEqual(t, errs.KindOf(err), errs.Syntax)
	tu.AssertEqual(t, CssText(c), "color(xyz 0.1 0.2 0.3)")

	require.NoError(t, c.SetCssText("color(xyz-d50 1 1 1)"))
	tu.AssertEqual(t, CssText(c), "color(xyz-d50 1 1 1)")
	tu.AssertEqual(t, c.Space, color.XYZD50)
}

func TestNamedColors(t *testing.T) {
	for _, name := range []string{"red", "RebeccaPurple", "transparent", "currentColor", "white"} {
		require.True(t, IsColorKeyword(name), name)
	}
	for _, name := range []string{"", "bad", "fed", "abcdef", "not-a-color", "redd"} {
		require.False(t, IsColorKeyword(name), name)
	}

	c, err := ToColor(&Ident{Value: "Red"})
	require.NoError(t, err)
	tu.AssertEqual(t, c.Components, [4]float64{1, 1, 0, 0})

	_, err = ToColor(&Ident{Value: "currentcolor"})
	tu.AssertEqual(t, errs.KindOf(err), errs.NotSupported)
	_, err = ToColor(&Var{Name: "--c"})
	tu.AssertEqual(t, errs.KindOf(err), errs.NotSupported)
	_, err = ToColor(&Ident{Value: "auto"})
	tu.AssertEqual(t, errs.KindOf(err), errs.TypeMismatch)
}

func TestFromColor(t *testing.T) {
	for _, test := range []struct {
		c        color.Color
		expected string
	}{
		{color.New(color.SRGB, 1, 0.5, 0, 1), "rgb(100%, 50%, 0%)"},
		{color.New(color.SRGB, 1, 0.5, 0, 0.25), "rgba(100%, 50%, 0%, 0.25)"},
		{color.New(color.HSL, 120, 0.5, 0.25, 1), "hsl(120 50% 25%)"},
		{color.New(color.HWB, 120, 0.5, 0.25, 1), "hwb(120 50% 25%)"},
		{color.New(color.OKLCh, 0.5, 0.1, 30, 1), "oklch(0.5 0.1 30)"},
		{color.New(color.DisplayP3, 1, 0, 0, 1), "color(display-p3 1 0 0)"},
		{color.New(color.XYZD50, 1, 0, 0, 1), "color(xyz-d50 1 0 0)"},
		{color.New(color.A98RGBLinear, 1, 0, 0, 1), "color(--a98-rgb-linear 1 0 0)"},
		{color.Color{Space: color.SRGB, Components: [4]float64{1, 1, 0, 0}, Missing: [4]bool{false, false, true, false}}, "rgb(100% none 0%)"},
	} {
		v := FromColor(test.c)
		tu.AssertEqual(t, CssText(v), test.expected)
		// the result is a valid value
		reparsed := mustParse(t, test.expected)
		require.True(t, Equal(v, reparsed), test.expected)
	}
}
