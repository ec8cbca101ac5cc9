package values

import (
	"math"
	"testing"

	"github.com/benoitkugler/cssom/css/units"
	tu "github.com/benoitkugler/cssom/utils/testutils"
	"github.com/stretchr/testify/require"
)

func parseExpression(t *testing.T, css string) *Expression {
	t.Helper()
	e, ok := mustParse(t, css).(*Expression)
	require.True(t, ok, css)
	return e
}

func TestUnitCancellation(t *testing.T) {
	for _, u := range []string{"px", "cm", "mm", "q", "in", "pt", "pc", "em", "rem", "vw", "cqmin",
		"deg", "rad", "turn", "s", "ms", "hz", "khz", "dpi", "dppx", "x", "fr", "%"} {
		e := parseExpression(t, "calc(1"+u+" / 1"+u+")")
		tu.AssertEqual(t, e.ComputeUnit(), units.Number)
	}
}

func TestComputeUnit(t *testing.T) {
	for _, test := range []struct {
		css      string
		expected units.Unit
	}{
		{"calc(1px + 1deg)", units.Invalid},
		{"calc(1px + 1s)", units.Invalid},
		{"calc(1px * 1px)", units.Invalid},
		{"calc(1px + 1cm)", units.Px},
		{"calc(1em + 2em)", units.Em},
		{"calc(1px * 2)", units.Px},
		{"calc(2 * 3)", units.Number},
		{"calc(1s * 1hz)", units.Number},
		{"calc(1 / 1s)", units.Hz},
		{"calc(10% + 1px)", units.Px},
		{"calc(1px / 1s)", units.Invalid},
		{"calc(var(--a) + 1px)", units.Invalid},
		{"calc(attr(w px) * 2)", units.Px},
		{"calc(min(1px, 1deg))", units.Invalid},
		{"calc(sin(1rad) * 1px)", units.Px},
	} {
		e := parseExpression(t, test.css)
		tu.AssertEqual(t, e.ComputeUnit(), test.expected)
	}
}

func TestResultType(t *testing.T) {
	e := parseExpression(t, "calc(100%/3 - 2*1em - 2*1px)")
	ty, ok := e.ResultType()
	require.True(t, ok)
	tu.AssertEqual(t, ty.Category(), units.CatLength)
	require.True(t, ty.HasPercent())

	// depends on the substitution
	e = parseExpression(t, "calc(var(--x) * 2)")
	_, ok = e.ResultType()
	require.False(t, ok)
	e = parseExpression(t, "calc(attr(width) * 2)")
	_, ok = e.ResultType()
	require.False(t, ok)

	m := mustParse(t, "asin(0.5)").(*MathFunction)
	ty, _ = m.ResultType()
	tu.AssertEqual(t, ty.Category(), units.CatAngle)
	m = mustParse(t, "sin(1px)").(*MathFunction)
	ty, _ = m.ResultType()
	require.True(t, ty.IsInvalid())
	m = mustParse(t, "sign(-3px)").(*MathFunction)
	ty, _ = m.ResultType()
	tu.AssertEqual(t, ty.Category(), units.CatNumber)
}

func TestEvaluate(t *testing.T) {
	for _, test := range []struct {
		css      string
		expected units.Dimension
	}{
		{"calc(1in + 4px)", units.NewDim(100, units.Px)},
		{"calc(2 * 90deg)", units.NewDim(math.Pi, units.Rad)},
		{"calc(sin(90deg))", units.NewDim(1, units.Number)},
		{"calc(pow(2, 10))", units.NewDim(1024, units.Number)},
		{"calc(round(up, 7px, 2px))", units.NewDim(8, units.Px)},
		{"calc(round(7px, 2px))", units.NewDim(8, units.Px)},
		{"calc(round(down, 7px, 2px))", units.NewDim(6, units.Px)},
		{"calc(round(to-zero, -7px, 2px))", units.NewDim(-6, units.Px)},
		{"calc(mod(-7, 3))", units.NewDim(2, units.Number)},
		{"calc(rem(-7, 3))", units.NewDim(-1, units.Number)},
		{"calc(clamp(1px, 5px, 3px))", units.NewDim(3, units.Px)},
		{"calc(hypot(3px, 4px))", units.NewDim(5, units.Px)},
		{"calc(atan2(1, 1))", units.NewDim(math.Pi/4, units.Rad)},
		{"calc(log(8, 2))", units.NewDim(3, units.Number)},
		{"calc(exp(0))", units.NewDim(1, units.Number)},
		{"calc(abs(-2px) * 2)", units.NewDim(4, units.Px)},
		{"calc(1s - 500ms)", units.NewDim(0.5, units.S)},
		{"calc(1 / 2s)", units.NewDim(0.5, units.Hz)},
		{"calc(1px - (2px - 3px))", units.NewDim(2, units.Px)},
		{"calc(-(1px + 2px))", units.NewDim(-3, units.Px)},
		{"calc(2 * pi)", units.NewDim(2*math.Pi, units.Number)},
		{"calc(50% * 2)", units.NewDim(100, units.Percentage)},
	} {
		e := parseExpression(t, test.css)
		got, ok := e.Evaluate()
		require.True(t, ok, test.css)
		tu.AssertEqual(t, got.Unit, test.expected.Unit)
		require.InDelta(t, test.expected.Value, got.Value, 1e-9, test.css)
	}

	for _, css := range []string{
		"calc(1em + 1px)",
		"calc(10% + 1px)",
		"calc(1px + 1deg)",
		"calc(var(--x) + 1px)",
		"calc(attr(w px) + 1px)",
	} {
		_, ok := parseExpression(t, css).Evaluate()
		require.False(t, ok, css)
	}
}

func TestInfinity(t *testing.T) {
	got, ok := parseExpression(t, "calc(infinity * 1px)").Evaluate()
	require.True(t, ok)
	require.True(t, math.IsInf(got.Value, 1))

	got, ok = parseExpression(t, "calc(NaN)").Evaluate()
	require.True(t, ok)
	require.True(t, math.IsNaN(got.Value))
	tu.AssertEqual(t, CssText(parseExpression(t, "calc(-infinity)")), "calc(-infinity)")
}

func TestPartFlattening(t *testing.T) {
	px := func(v float64) *Part { return NewOperand(NewDimension(v, units.Px)) }

	inner := NewSum(px(1), px(2))
	inner.Children[1].Inverse = true // 1px - 2px
	outer := NewSum(px(3))
	outer.Add(inner, true) // 3px - (1px - 2px)
	tu.AssertEqual(t, len(outer.Children), 3)
	for _, c := range outer.Children {
		tu.AssertEqual(t, c.Type, Operand)
	}
	tu.AssertEqual(t, CssText(NewExpression(outer)), "calc(3px - 1px + 2px)")

	product := NewProduct(NewOperand(NewNumber(2)), NewSum(px(1), px(2)))
	tu.AssertEqual(t, CssText(NewExpression(product)), "calc(2 * (1px + 2px))")

	nested := NewProduct(NewOperand(NewNumber(2)), NewProduct(px(1), NewOperand(NewNumber(4))))
	tu.AssertEqual(t, len(nested.Children), 3)

	// leading inverted children
	sum := &Part{Type: Sum}
	sum.Add(px(1), true)
	sum.Add(px(2), false)
	tu.AssertEqual(t, CssText(NewExpression(sum)), "calc(-1 * 1px + 2px)")
	prod := &Part{Type: Product}
	prod.Add(NewOperand(NewNumber(2)), true)
	prod.Add(px(3), false)
	tu.AssertEqual(t, CssText(NewExpression(prod)), "calc(1 / 2 * 3px)")
	tu.AssertEqual(t, MinifiedCssText(NewExpression(prod)), "calc(1/2*3px)")
}

func TestExpressionClone(t *testing.T) {
	e := parseExpression(t, "calc((1px + 2px) * var(--a, 3))")
	c := e.Clone().(*Expression)
	c.Root.Children[0].Children[0].Operand.(*Numeric).Value = 10
	tu.AssertEqual(t, CssText(e), "calc((1px + 2px) * var(--a, 3))")
	tu.AssertEqual(t, CssText(c), "calc((10px + 2px) * var(--a, 3))")
}
