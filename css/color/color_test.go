package color

import (
	"math"
	"testing"

	tu "github.com/benoitkugler/cssom/utils/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertChannels(t *testing.T, got Color, exp [4]float64, delta float64) {
	t.Helper()
	for i := range exp {
		assert.InDelta(t, exp[i], got.Components[i], delta, "channel %d of %s", i, got)
	}
}

func TestParseSpace(t *testing.T) {
	for s := SRGB; s < nbSpaces; s++ {
		got, ok := ParseSpace(s.String())
		tu.AssertEqual(t, ok, true)
		tu.AssertEqual(t, got, s)
	}
	s, ok := ParseSpace("XYZ")
	tu.AssertEqual(t, ok, true)
	tu.AssertEqual(t, s, XYZD65)
	_, ok = ParseSpace("--Display-P3-linear")
	tu.AssertEqual(t, ok, false)
	_, ok = ParseSpace("--my-profile")
	tu.AssertEqual(t, ok, false)
	tu.AssertEqual(t, DisplayP3Linear.IsCustomProfile(), true)
	tu.AssertEqual(t, DisplayP3.IsCustomProfile(), false)
}

func TestSRGBToLab(t *testing.T) {
	c := New(SRGB, 0.0314, 0.24706, 1, 0.5)
	lab := c.Convert(Lab)
	assertChannels(t, lab, [4]float64{0.5, 37.2631, 47.061, -99.208}, 0.001)
}

func TestHWBToSRGB(t *testing.T) {
	c := New(HWB, 135.6, 0.4, 0.03, 1)
	assertChannels(t, c.Convert(SRGB), [4]float64{1, 0.4, 0.97, 0.5482}, 1e-9)

	gray := New(HWB, 20, 0.6, 0.6, 1)
	assertChannels(t, gray.Convert(SRGB), [4]float64{1, 0.5, 0.5, 0.5}, 1e-9)
}

func TestHSL(t *testing.T) {
	red := New(SRGB, 1, 0, 0, 1)
	assertChannels(t, red.Convert(HSL), [4]float64{1, 0, 1, 0.5}, 1e-9)
	assertChannels(t, New(HSL, 120, 1, 0.25, 1).Convert(SRGB), [4]float64{1, 0, 0.5, 0}, 1e-9)
}

func TestRoundTrip(t *testing.T) {
	base := New(SRGB, 0.2, 0.6, 0.4, 0.8)
	for from := SRGB; from < nbSpaces; from++ {
		c := base.Convert(from)
		for to := SRGB; to < nbSpaces; to++ {
			back := c.Convert(to).Convert(from)
			for i := range c.Components {
				tol := 1e-6 * math.Max(1, math.Abs(c.Components[i]))
				require.InDelta(t, c.Components[i], back.Components[i], tol, "%s -> %s -> %s", from, to, from)
			}
		}
	}
}

func TestPowerlessHue(t *testing.T) {
	white := New(SRGB, 1, 1, 1, 1)
	for _, s := range []Space{HSL, HWB, LCh, OKLCh} {
		c := white.Convert(s)
		tu.AssertEqual(t, c.Missing[s.HueIndex()], true)
	}
	blue := New(SRGB, 0, 0, 1, 1).Convert(OKLCh)
	tu.AssertEqual(t, blue.Missing, [4]bool{})
}

func TestMissingCarried(t *testing.T) {
	c := New(LCh, 50, 30, 120, 1)
	c.Missing[3] = true
	tu.AssertEqual(t, c.Convert(OKLCh).Missing, [4]bool{false, false, false, true})
	tu.AssertEqual(t, c.Convert(HSL).Missing, [4]bool{false, true, false, false})
	tu.AssertEqual(t, c.Convert(Lab).Missing, [4]bool{})

	c = New(SRGB, 0.5, 0.2, 0.1, 1)
	c.Missing[1] = true
	tu.AssertEqual(t, c.Convert(XYZD65).Missing, [4]bool{false, true, false, false})
	tu.AssertEqual(t, c.Convert(Lab).Missing, [4]bool{})
}

func TestInGamut(t *testing.T) {
	c := New(DisplayP3, 1, 0, 0, 1)
	tu.AssertEqual(t, c.InGamut(DisplayP3), true)
	tu.AssertEqual(t, c.InGamut(SRGB), false)
	tu.AssertEqual(t, c.InGamut(HSL), false)
	// just outside the red-green edge of rec2020
	tu.AssertEqual(t, c.InGamut(Rec2020), false)
	tu.AssertEqual(t, New(DisplayP3, 0.8, 0.2, 0.2, 1).InGamut(Rec2020), true)
	tu.AssertEqual(t, c.InGamut(Lab), true)
	tu.AssertEqual(t, New(SRGB, 1.00001, 0, 0, 1).InGamut(SRGB), true)
	tu.AssertEqual(t, New(SRGB, 1.00001, 0, 0, 1).InGamutEpsilon(SRGB, 0), false)
}

func TestClip(t *testing.T) {
	c := New(SRGB, 1.2, -0.1, 0.5, 1.5).Clip()
	tu.AssertEqual(t, c.Components, [4]float64{1, 1, 0, 0.5})
}

func TestDeltaE(t *testing.T) {
	// reference pair from Sharma, Wu and Dalal
	c1 := New(Lab, 50, 2.6772, -79.7751, 1)
	c2 := New(Lab, 50, 0, -82.7485, 1)
	tu.AssertInDelta(t, DeltaE2000(c1, c2), 2.0425, 1e-4)

	c1 = New(Lab, 50, 2.5, 0, 1)
	c2 = New(Lab, 73, 25, -18, 1)
	tu.AssertInDelta(t, DeltaE2000(c1, c2), 27.1492, 1e-4)

	tu.AssertInDelta(t, DeltaE2000(c1, c1), 0, 1e-12)

	o1 := New(OKLab, 0.5, 0, 0, 1)
	o2 := New(OKLab, 0.5, 0.3, 0.4, 1)
	tu.AssertInDelta(t, DeltaEOK(o1, o2), 0.5, 1e-12)
}

func ptr(f float64) *float64 { return &f }

func TestNormalizeWeights(t *testing.T) {
	for _, test := range []struct {
		p1, p2 *float64
		exp    Weights
	}{
		{nil, nil, Weights{0.5, 0.5, 1}},
		{ptr(40), nil, Weights{0.4, 0.6, 1}},
		{nil, ptr(25), Weights{0.75, 0.25, 1}},
		{ptr(40), ptr(60), Weights{0.4, 0.6, 1}},
		{ptr(75), ptr(75), Weights{0.5, 0.5, 1}},
		{ptr(20), ptr(60), Weights{0.25, 0.75, 0.8}},
	} {
		got, err := NormalizeWeights(test.p1, test.p2)
		tu.AssertNoErr(t, err)
		tu.AssertInDelta(t, got.P1, test.exp.P1, 1e-12)
		tu.AssertInDelta(t, got.P2, test.exp.P2, 1e-12)
		tu.AssertInDelta(t, got.AlphaMultiplier, test.exp.AlphaMultiplier, 1e-12)
	}

	_, err := NormalizeWeights(ptr(0), ptr(0))
	require.ErrorIs(t, err, ErrZeroWeights)
	_, err = NormalizeWeights(ptr(120), nil)
	require.Error(t, err)
}

func TestMixSRGB(t *testing.T) {
	w, _ := NormalizeWeights(nil, nil)
	got := Mix(SRGB, Shorter, New(SRGB, 1, 1, 1, 1), New(SRGB, 0, 0, 0, 1), w)
	assertChannels(t, got, [4]float64{1, 0.5, 0.5, 0.5}, 1e-12)

	// premultiplied
	got = Mix(SRGB, Shorter, New(SRGB, 1, 0, 0, 1), New(SRGB, 0, 0, 1, 0), w)
	assertChannels(t, got, [4]float64{0.5, 1, 0, 0}, 1e-12)
}

func TestMixOKLCh(t *testing.T) {
	c1 := New(SRGB, 2./255, 0, 250./255, 1)
	c2 := New(HWB, 135.6, 0.4, 0.03, 1)
	w, _ := NormalizeWeights(ptr(40), ptr(60))
	got := Mix(OKLCh, Shorter, c1, c2, w)
	tu.AssertEqual(t, got.Space, OKLCh)
	assertChannels(t, got, [4]float64{1, 0.702039, 0.23939, 195.243}, 1e-4)
}

func TestMixMissingHue(t *testing.T) {
	w, _ := NormalizeWeights(nil, nil)
	blue := New(SRGB, 0, 0, 1, 1)
	got := Mix(OKLCh, Shorter, New(SRGB, 1, 1, 1, 1), blue, w)
	tu.AssertEqual(t, got.Missing[3], false)
	tu.AssertInDelta(t, got.Components[3], blue.Convert(OKLCh).Components[3], 1e-9)
}

func TestFixupHues(t *testing.T) {
	for _, test := range []struct {
		h1, h2 float64
		method HueMethod
		exp    float64 // hue at 50%
	}{
		{10, 350, Shorter, 0},
		{10, 350, Longer, 180},
		{10, 350, Increasing, 180},
		{10, 350, Decreasing, 0},
		{350, 10, Increasing, 0},
		{350, 10, Decreasing, 180},
		{20, 60, Shorter, 40},
		{20, 60, Longer, 220},
	} {
		a, b := fixupHues(test.h1, test.h2, test.method)
		got := math.Mod((a+b)/2, 360)
		tu.AssertInDelta(t, got, test.exp, 1e-9)
	}
}

func TestMixIdentity(t *testing.T) {
	c := New(DisplayP3, 0.3, 0.7, 0.2, 0.9)
	other := New(SRGB, 0.9, 0.1, 0.6, 0.4)
	w, _ := NormalizeWeights(ptr(100), nil)
	for s := SRGB; s < nbSpaces; s++ {
		for _, method := range []HueMethod{Shorter, Longer, Increasing, Decreasing} {
			got := Mix(s, method, c, other, w)
			exp := c.Convert(s)
			for i := range exp.Components {
				require.InDelta(t, exp.Components[i], got.Components[i], 1e-9, "space %s", s)
			}
		}
	}
}
