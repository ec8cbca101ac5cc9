package color

import (
	"errors"
	"fmt"

	"github.com/benoitkugler/cssom/utils"
)

// HueMethod is the hue interpolation method used
// in polar spaces.
type HueMethod uint8

const (
	Shorter HueMethod = iota
	Longer
	Increasing
	Decreasing
)

func (h HueMethod) String() string {
	switch h {
	case Shorter:
		return "shorter"
	case Longer:
		return "longer"
	case Increasing:
		return "increasing"
	case Decreasing:
		return "decreasing"
	}
	return fmt.Sprintf("<invalid hue method %d>", h)
}

// ParseHueMethod is ASCII case-insensitive.
func ParseHueMethod(s string) (HueMethod, bool) {
	switch utils.AsciiLower(s) {
	case "shorter":
		return Shorter, true
	case "longer":
		return Longer, true
	case "increasing":
		return Increasing, true
	case "decreasing":
		return Decreasing, true
	}
	return 0, false
}

// DefaultInterpolationSpace is used by color-mix() when
// no space is given.
const DefaultInterpolationSpace = OKLab

// Weights are the normalized percentages of a color mix.
type Weights struct {
	P1, P2 float64 // in [0, 1], P1 + P2 = 1
	// AlphaMultiplier is less than 1 when the
	// given percentages sum to less than 100%.
	AlphaMultiplier float64
}

var ErrZeroWeights = errors.New("color-mix percentages sum to zero")

// NormalizeWeights resolves the percentages (in [0, 100]) of
// a color mix, where a nil pointer is an omitted percentage.
func NormalizeWeights(p1, p2 *float64) (Weights, error) {
	var a, b float64
	switch {
	case p1 == nil && p2 == nil:
		a, b = 50, 50
	case p1 == nil:
		a, b = 100-*p2, *p2
	case p2 == nil:
		a, b = *p1, 100-*p1
	default:
		a, b = *p1, *p2
	}
	if a < 0 || b < 0 || a > 100 || b > 100 {
		return Weights{}, fmt.Errorf("color-mix percentages out of range: %g%%, %g%%", a, b)
	}
	sum := a + b
	if sum == 0 {
		return Weights{}, ErrZeroWeights
	}
	w := Weights{P1: a / sum, P2: b / sum, AlphaMultiplier: 1}
	if sum < 100 {
		w.AlphaMultiplier = sum / 100
	}
	return w, nil
}

// fixupHues adjusts the hues (in degrees) so that a linear
// interpolation follows [method].
func fixupHues(h1, h2 float64, method HueMethod) (float64, float64) {
	h1, h2 = utils.FloatModulo(h1, 360), utils.FloatModulo(h2, 360)
	delta := h2 - h1
	switch method {
	case Shorter:
		if delta > 180 {
			h1 += 360
		} else if delta < -180 {
			h2 += 360
		}
	case Longer:
		if 0 < delta && delta < 180 {
			h1 += 360
		} else if -180 < delta && delta <= 0 {
			h2 += 360
		}
	case Increasing:
		if delta < 0 {
			h2 += 360
		}
	case Decreasing:
		if delta > 0 {
			h1 += 360
		}
	}
	return h1, h2
}

// Mix interpolates between c1 and c2 in [space], as color-mix() does.
// The result is expressed in [space].
func Mix(space Space, method HueMethod, c1, c2 Color, w Weights) Color {
	c1, c2 = c1.Convert(space), c2.Convert(space)

	// a missing channel takes the value of the other color
	var out Color
	out.Space = space
	for i := range out.Components {
		switch {
		case c1.Missing[i] && c2.Missing[i]:
			out.Missing[i] = true
		case c1.Missing[i]:
			c1.Components[i], c1.Missing[i] = c2.Components[i], false
		case c2.Missing[i]:
			c2.Components[i], c2.Missing[i] = c1.Components[i], false
		}
	}

	hueIndex := space.HueIndex()
	if hueIndex != 0 && !out.Missing[hueIndex] {
		c1.Components[hueIndex], c2.Components[hueIndex] = fixupHues(c1.Components[hueIndex], c2.Components[hueIndex], method)
	}

	a1, a2 := c1.Alpha(), c2.Alpha()
	if c1.Missing[0] {
		a1, a2 = 1, 1
	}
	alpha := a1*w.P1 + a2*w.P2
	for i := 1; i < 4; i++ {
		if out.Missing[i] {
			continue
		}
		if i == hueIndex {
			out.Components[i] = utils.FloatModulo(c1.Components[i]*w.P1+c2.Components[i]*w.P2, 360)
			continue
		}
		// premultiplied interpolation
		v := c1.Components[i]*a1*w.P1 + c2.Components[i]*a2*w.P2
		if alpha != 0 {
			v /= alpha
		}
		out.Components[i] = v
	}
	if !out.Missing[0] {
		out.Components[0] = alpha * w.AlphaMultiplier
	}
	return out
}
