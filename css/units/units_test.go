package units

import (
	"math"
	"testing"

	tu "github.com/benoitkugler/cssom/utils/testutils"
)

func TestParse(t *testing.T) {
	tu.AssertEqual(t, Parse("PX"), Px)
	tu.AssertEqual(t, Parse("kHz"), Khz)
	tu.AssertEqual(t, Parse("%"), Percentage)
	tu.AssertEqual(t, Parse("foo"), Invalid)
	tu.AssertEqual(t, Parse(""), Invalid)
	for u := Px; u < nbUnits; u++ {
		tu.AssertEqual(t, Parse(u.String()), u)
		tu.AssertEqual(t, u.Category() != CatInvalid, true)
	}
}

func TestConversions(t *testing.T) {
	d, ok := NewDim(1, In).ToCanonical()
	tu.AssertEqual(t, ok, true)
	tu.AssertEqual(t, d, NewDim(96, Px))

	d, ok = NewDim(180, Deg).ToCanonical()
	tu.AssertEqual(t, ok, true)
	tu.AssertInDelta(t, d.Value, math.Pi, 1e-12)
	tu.AssertEqual(t, d.Unit, Rad)

	d, ok = NewDim(1, Turn).ConvertTo(Grad)
	tu.AssertEqual(t, ok, true)
	tu.AssertInDelta(t, d.Value, 400, 1e-9)

	_, ok = NewDim(1, Em).ToCanonical()
	tu.AssertEqual(t, ok, false)
	_, ok = NewDim(1, Px).ConvertTo(Deg)
	tu.AssertEqual(t, ok, false)
}

func TestCancellation(t *testing.T) {
	for u := Number; u < nbUnits; u++ {
		ty := TypeOf(u)
		tu.AssertEqual(t, Div(ty, ty).Category(), CatNumber)
	}
	tu.AssertEqual(t, Mul(TypeOf(Hz), TypeOf(S)).Category(), CatNumber)
	tu.AssertEqual(t, Div(TypeOf(Number), TypeOf(Ms)).Category(), CatFrequency)
	tu.AssertEqual(t, Div(TypeOf(Number), TypeOf(Hz)).Category(), CatTime)
	tu.AssertEqual(t, Div(TypeOf(Number), TypeOf(Px)).Category(), CatResolution)
	tu.AssertEqual(t, Mul(TypeOf(Px), TypeOf(Em)).Category(), CatInvalid)
	tu.AssertEqual(t, Div(Mul(TypeOf(Px), TypeOf(Em)), TypeOf(Pt)).Category(), CatLength)
}

func TestAdd(t *testing.T) {
	tu.AssertEqual(t, Add(TypeOf(Px), TypeOf(Em)).Category(), CatLength)
	tu.AssertEqual(t, Add(TypeOf(Px), TypeOf(Deg)).IsInvalid(), true)
	tu.AssertEqual(t, Add(TypeOf(Number), TypeOf(Percentage)).IsInvalid(), true)

	lp := Add(TypeOf(Percentage), TypeOf(Px))
	tu.AssertEqual(t, lp.Category(), CatLength)
	tu.AssertEqual(t, lp.HasPercent(), true)
	tu.AssertEqual(t, lp.String(), "length-percentage")

	// 100% / 3 is still a percentage
	p := Div(TypeOf(Percentage), TypeOf(Number))
	tu.AssertEqual(t, p.Category(), CatPercentage)
	tu.AssertEqual(t, Add(p, TypeOf(Percentage)).Category(), CatPercentage)
	tu.AssertEqual(t, Add(Add(p, TypeOf(Em)), TypeOf(Px)).Category(), CatLength)
}
