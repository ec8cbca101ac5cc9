// Package units implements the closed set of CSS units,
// their dimensions and the arithmetic of dimensions used by calc().
package units

import (
	"fmt"

	"github.com/benoitkugler/cssom/utils"
)

// Unit is a CSS unit. The zero value is [Invalid].
type Unit uint8

const (
	Invalid Unit = iota
	Number       // means no unit, but a valid value
	Percentage   // %

	// absolute lengths
	Px
	Cm
	Mm
	Q
	In
	Pt
	Pc

	// font relative lengths
	Em
	Ex
	Ch
	Rem
	Cap
	Ic
	Lh
	Rlh
	Rex
	Rch
	Ric
	Rcap

	// viewport relative lengths
	Vw
	Vh
	Vi
	Vb
	Vmin
	Vmax
	Svw
	Svh
	Lvw
	Lvh
	Dvw
	Dvh

	// container relative lengths
	Cqw
	Cqh
	Cqi
	Cqb
	Cqmin
	Cqmax

	Deg
	Grad
	Rad
	Turn

	S
	Ms

	Hz
	Khz

	Dpi
	Dpcm
	Dppx
	X

	Fr

	nbUnits
)

type unitInfo struct {
	name     string
	category Category
	// factor to the canonical unit of the category,
	// 0 for relative units
	factor float64
}

var unitInfos = [nbUnits]unitInfo{
	Invalid:    {"<invalid unit>", CatInvalid, 0},
	Number:     {"", CatNumber, 1},
	Percentage: {"%", CatPercentage, 0},

	Px: {"px", CatLength, 1},
	Cm: {"cm", CatLength, 96. / 2.54},
	Mm: {"mm", CatLength, 96. / 25.4},
	Q:  {"q", CatLength, 96. / 25.4 / 4.},
	In: {"in", CatLength, 96.},
	Pt: {"pt", CatLength, 1. / 0.75},
	Pc: {"pc", CatLength, 16.},

	Em:   {"em", CatLength, 0},
	Ex:   {"ex", CatLength, 0},
	Ch:   {"ch", CatLength, 0},
	Rem:  {"rem", CatLength, 0},
	Cap:  {"cap", CatLength, 0},
	Ic:   {"ic", CatLength, 0},
	Lh:   {"lh", CatLength, 0},
	Rlh:  {"rlh", CatLength, 0},
	Rex:  {"rex", CatLength, 0},
	Rch:  {"rch", CatLength, 0},
	Ric:  {"ric", CatLength, 0},
	Rcap: {"rcap", CatLength, 0},

	Vw:   {"vw", CatLength, 0},
	Vh:   {"vh", CatLength, 0},
	Vi:   {"vi", CatLength, 0},
	Vb:   {"vb", CatLength, 0},
	Vmin: {"vmin", CatLength, 0},
	Vmax: {"vmax", CatLength, 0},
	Svw:  {"svw", CatLength, 0},
	Svh:  {"svh", CatLength, 0},
	Lvw:  {"lvw", CatLength, 0},
	Lvh:  {"lvh", CatLength, 0},
	Dvw:  {"dvw", CatLength, 0},
	Dvh:  {"dvh", CatLength, 0},

	Cqw:   {"cqw", CatLength, 0},
	Cqh:   {"cqh", CatLength, 0},
	Cqi:   {"cqi", CatLength, 0},
	Cqb:   {"cqb", CatLength, 0},
	Cqmin: {"cqmin", CatLength, 0},
	Cqmax: {"cqmax", CatLength, 0},

	Deg:  {"deg", CatAngle, 3.141592653589793 / 180},
	Grad: {"grad", CatAngle, 3.141592653589793 / 200},
	Rad:  {"rad", CatAngle, 1},
	Turn: {"turn", CatAngle, 2 * 3.141592653589793},

	S:  {"s", CatTime, 1},
	Ms: {"ms", CatTime, 1. / 1000},

	Hz:  {"hz", CatFrequency, 1},
	Khz: {"khz", CatFrequency, 1000},

	Dpi:  {"dpi", CatResolution, 1. / 96},
	Dpcm: {"dpcm", CatResolution, 2.54 / 96},
	Dppx: {"dppx", CatResolution, 1},
	X:    {"x", CatResolution, 1},

	Fr: {"fr", CatFlex, 0},
}

var unitsByName = map[string]Unit{}

func init() {
	for u := Px; u < nbUnits; u++ {
		unitsByName[unitInfos[u].name] = u
	}
}

// String returns the lower case CSS name of the unit,
// which is empty for [Number].
func (u Unit) String() string {
	if u >= nbUnits {
		return fmt.Sprintf("<invalid unit %d>", u)
	}
	return unitInfos[u].name
}

// Parse returns the unit for the given dimension name, compared ASCII case-insensitively.
// It returns [Invalid] for unknown names; use "%" for [Percentage].
func Parse(name string) Unit {
	if name == "%" {
		return Percentage
	}
	return unitsByName[utils.AsciiLower(name)]
}

// Category returns the dimension of the unit.
func (u Unit) Category() Category {
	if u >= nbUnits {
		return CatInvalid
	}
	return unitInfos[u].category
}

// IsAbsolute returns true if the unit may be converted to the canonical
// unit of its category without context (like em or %).
func (u Unit) IsAbsolute() bool {
	return u < nbUnits && unitInfos[u].factor != 0
}

// Category is a physical dimension (a family of units).
type Category uint8

const (
	CatInvalid Category = iota
	CatNumber
	CatPercentage
	CatLength
	CatAngle
	CatTime
	CatFrequency
	CatResolution
	CatFlex
)

func (c Category) String() string {
	switch c {
	case CatNumber:
		return "number"
	case CatPercentage:
		return "percentage"
	case CatLength:
		return "length"
	case CatAngle:
		return "angle"
	case CatTime:
		return "time"
	case CatFrequency:
		return "frequency"
	case CatResolution:
		return "resolution"
	case CatFlex:
		return "flex"
	default:
		return "invalid"
	}
}

// Canonical returns the unit used to express folded values of the category:
// px, rad, s, hz and dppx.
func (c Category) Canonical() Unit {
	switch c {
	case CatNumber:
		return Number
	case CatPercentage:
		return Percentage
	case CatLength:
		return Px
	case CatAngle:
		return Rad
	case CatTime:
		return S
	case CatFrequency:
		return Hz
	case CatResolution:
		return Dppx
	case CatFlex:
		return Fr
	default:
		return Invalid
	}
}

// Dimension is a value with a unit.
type Dimension struct {
	Value float64
	Unit  Unit
}

func NewDim(v float64, u Unit) Dimension { return Dimension{v, u} }

func (d Dimension) String() string {
	return fmt.Sprintf("<%g %s>", d.Value, d.Unit)
}

// ToCanonical converts an absolute dimension into the canonical unit
// of its category. It returns false for relative units.
func (d Dimension) ToCanonical() (Dimension, bool) {
	if d.Unit == Percentage || d.Unit == Fr {
		return d, true
	}
	if !d.Unit.IsAbsolute() {
		return d, false
	}
	return Dimension{d.Value * unitInfos[d.Unit].factor, d.Unit.Category().Canonical()}, true
}

// ConvertTo converts d into the unit u, which must be absolute and of
// the same category.
func (d Dimension) ConvertTo(u Unit) (Dimension, bool) {
	if d.Unit == u {
		return d, true
	}
	if d.Unit.Category() != u.Category() || !d.Unit.IsAbsolute() || !u.IsAbsolute() {
		return d, false
	}
	return Dimension{d.Value * unitInfos[d.Unit].factor / unitInfos[u].factor, u}, true
}
