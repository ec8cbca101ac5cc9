// Package color implements color spaces conversions, gamut
// checks, perceptual distances and interpolation, on plain float
// components.
package color

import (
	"strings"

	"github.com/benoitkugler/cssom/utils"
)

// Space is a color space or model. Each space has three channels.
type Space uint8

const (
	SRGB Space = iota
	SRGBLinear
	DisplayP3
	A98RGB
	ProPhotoRGB
	Rec2020
	XYZD50
	XYZD65
	Lab
	LCh
	OKLab
	OKLCh
	HSL
	HWB
	// linear variants, only available as custom profiles
	DisplayP3Linear
	A98RGBLinear
	ProPhotoRGBLinear
	Rec2020Linear

	nbSpaces
)

var spaceNames = [nbSpaces]string{
	SRGB:              "srgb",
	SRGBLinear:        "srgb-linear",
	DisplayP3:         "display-p3",
	A98RGB:            "a98-rgb",
	ProPhotoRGB:       "prophoto-rgb",
	Rec2020:           "rec2020",
	XYZD50:            "xyz-d50",
	XYZD65:            "xyz-d65",
	Lab:               "lab",
	LCh:               "lch",
	OKLab:             "oklab",
	OKLCh:             "oklch",
	HSL:               "hsl",
	HWB:               "hwb",
	DisplayP3Linear:   "--display-p3-linear",
	A98RGBLinear:      "--a98-rgb-linear",
	ProPhotoRGBLinear: "--prophoto-rgb-linear",
	Rec2020Linear:     "--rec2020-linear",
}

func (s Space) String() string {
	if s >= nbSpaces {
		return "<invalid space>"
	}
	return spaceNames[s]
}

// ParseSpace returns the space with the given name.
// Predefined names are ASCII case-insensitive, custom
// profile names (starting with --) are case-sensitive.
// "xyz" is an alias for "xyz-d65".
func ParseSpace(name string) (Space, bool) {
	if !strings.HasPrefix(name, "--") {
		name = utils.AsciiLower(name)
	}
	if name == "xyz" {
		return XYZD65, true
	}
	for s, n := range spaceNames {
		if n == name {
			return Space(s), true
		}
	}
	return 0, false
}

// IsCustomProfile returns true for the spaces only reachable
// with a dashed profile name.
func (s Space) IsCustomProfile() bool { return s >= DisplayP3Linear && s < nbSpaces }

// IsRGB returns true for the RGB spaces, linear or not.
func (s Space) IsRGB() bool {
	switch s {
	case SRGB, SRGBLinear, DisplayP3, A98RGB, ProPhotoRGB, Rec2020,
		DisplayP3Linear, A98RGBLinear, ProPhotoRGBLinear, Rec2020Linear:
		return true
	}
	return false
}

// IsXYZ returns true for xyz-d50 and xyz-d65
func (s Space) IsXYZ() bool { return s == XYZD50 || s == XYZD65 }

// HueIndex returns the index of the hue channel, in [1, 3],
// or 0 if the space is rectangular.
func (s Space) HueIndex() int {
	switch s {
	case HSL, HWB:
		return 1
	case LCh, OKLCh:
		return 3
	}
	return 0
}

// IsPolar returns true for the cylindrical spaces (hsl, hwb, lch, oklch).
func (s Space) IsPolar() bool { return s.HueIndex() != 0 }

// analogous components, used to carry missing channels
// across conversions
type analog uint8

const (
	aNone analog = iota
	aRed
	aGreen
	aBlue
	aLightness
	aColorfulness
	aHue
	aOpponentA
	aOpponentB
)

func (s Space) analogs() [3]analog {
	switch s {
	case Lab, OKLab:
		return [3]analog{aLightness, aOpponentA, aOpponentB}
	case LCh, OKLCh:
		return [3]analog{aLightness, aColorfulness, aHue}
	case HSL:
		return [3]analog{aHue, aColorfulness, aLightness}
	case HWB:
		return [3]analog{aHue, aNone, aNone}
	default: // RGB and XYZ
		return [3]analog{aRed, aGreen, aBlue}
	}
}
