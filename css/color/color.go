package color

import (
	"fmt"
	"math"
)

// Color is a color in a given space.
// Components[0] is the alpha channel, in [0, 1], and
// Components[1:] are the channels of the space, with
// the following ranges :
//   - RGB spaces : [0, 1] for in gamut colors
//   - xyz : unbounded, Y = 1 for the reference white
//   - lab, lch : L in [0, 100], hue in degrees
//   - oklab, oklch : L in [0, 1], hue in degrees
//   - hsl, hwb : hue in degrees, other channels in [0, 1]
//
// Missing[i] is true for the 'none' channels, whose value is
// then ignored (and treated as 0 in conversions).
type Color struct {
	Components [4]float64
	Missing    [4]bool
	Space      Space
}

// New returns a color in the given space, with no missing channel.
func New(space Space, c1, c2, c3, alpha float64) Color {
	return Color{Space: space, Components: [4]float64{alpha, c1, c2, c3}}
}

func (c Color) String() string {
	var chans [4]string
	for i, v := range c.Components {
		if c.Missing[i] {
			chans[i] = "none"
		} else {
			chans[i] = fmt.Sprintf("%g", v)
		}
	}
	return fmt.Sprintf("%s(%s %s %s / %s)", c.Space, chans[1], chans[2], chans[3], chans[0])
}

// Alpha returns the alpha channel, 0 if missing.
func (c Color) Alpha() float64 {
	if c.Missing[0] {
		return 0
	}
	return c.Components[0]
}

func (c Color) channels() vec {
	var out vec
	for i := range out {
		if !c.Missing[i+1] {
			out[i] = c.Components[i+1]
		}
	}
	return out
}

// thresholds under which a hue is powerless
const (
	achromaticLCh   = 0.02
	achromaticOKLCh = 0.0002
	achromaticHSL   = 1e-6
)

func (c *Color) markPowerlessHue() {
	switch c.Space {
	case LCh:
		if c.Components[2] < achromaticLCh {
			c.Missing[3] = true
		}
	case OKLCh:
		if c.Components[2] < achromaticOKLCh {
			c.Missing[3] = true
		}
	case HSL:
		if c.Components[2] < achromaticHSL {
			c.Missing[1] = true
		}
	case HWB:
		if c.Components[2]+c.Components[3] >= 1-achromaticHSL {
			c.Missing[1] = true
		}
	}
	if c.Missing[c.Space.HueIndex()] {
		c.Components[c.Space.HueIndex()] = 0
	}
}

// Convert returns the color expressed in the space [to].
// Missing channels are carried to their analogous channel in [to], if any,
// and an achromatic color converted to a polar space has a missing hue.
func (c Color) Convert(to Space) Color {
	if c.Space == to {
		return c
	}
	v := convertChannels(c.Space, to, c.channels())
	out := Color{Space: to, Components: [4]float64{c.Components[0], v[0], v[1], v[2]}}
	out.Missing[0] = c.Missing[0]

	fromAnalogs, toAnalogs := c.Space.analogs(), to.analogs()
	for i, a := range fromAnalogs {
		if !c.Missing[i+1] || a == aNone {
			continue
		}
		for j, b := range toAnalogs {
			if a == b {
				out.Missing[j+1] = true
				out.Components[j+1] = 0
			}
		}
	}
	if to.IsPolar() {
		out.markPowerlessHue()
	}
	return out
}

// DefaultGamutEpsilon is the tolerance used by [Color.InGamut].
const DefaultGamutEpsilon = 0.000075

// InGamut converts the color to [space] and checks that its channels
// are in the nominal range of the space, with a [DefaultGamutEpsilon] tolerance.
func (c Color) InGamut(space Space) bool { return c.InGamutEpsilon(space, DefaultGamutEpsilon) }

// InGamutEpsilon is the same as [Color.InGamut] with a custom tolerance.
// Spaces without a nominal range (xyz, lab, lch, oklab, oklch) contain every color.
func (c Color) InGamutEpsilon(space Space, epsilon float64) bool {
	switch {
	case space == HSL, space == HWB:
		space = SRGB
	case !space.IsRGB():
		return true
	}
	v := c.Convert(space).channels()
	for _, ch := range v {
		if math.IsNaN(ch) || ch < -epsilon || ch > 1+epsilon {
			return false
		}
	}
	return true
}

// Clip clamps the channels of a color in an RGB space, and
// its alpha channel, to [0, 1].
func (c Color) Clip() Color {
	c.Components[0] = clamp01(c.Components[0])
	if c.Space.IsRGB() {
		for i := 1; i < 4; i++ {
			c.Components[i] = clamp01(c.Components[i])
		}
	}
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
