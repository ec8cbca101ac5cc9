package utils

import (
	"math"
	"strconv"
	"strings"
)

func MinInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}

type Fl = float64

func Maxs(values ...Fl) Fl {
	max := values[0]
	for _, w := range values {
		if w > max {
			max = w
		}
	}
	return max
}

func Mins(values ...Fl) Fl {
	min := values[0]
	for _, w := range values {
		if w < min {
			min = w
		}
	}
	return min
}

// Clamp restricts x to [min, max].
func Clamp(x, min, max Fl) Fl {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// FloatModulo implements Python modulo for float numbers, like
//
//	-30.5 % 360 = 329.5
func FloatModulo(x, m Fl) Fl {
	res := math.Mod(x, m)
	if (res < 0 && m > 0) || (res > 0 && m < 0) {
		return res + m
	}
	return res
}

// RoundPrec rounds f with n digits precision
func RoundPrec(f Fl, n int) Fl {
	n10 := math.Pow10(n)
	return math.Round(f*n10) / n10
}

// Round rounds f with 6 digits precision
func Round(f Fl) Fl {
	return RoundPrec(f, 6)
}

// FormatFloat returns the CSS representation of f, rounded
// with 6 digits precision and without trailing zeros.
// Very small or very large values use the scientific notation.
func FormatFloat(f Fl) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs < 1e-6 || abs >= 1e21 {
		return strconv.FormatFloat(f, 'g', 6, 64)
	}
	out := strconv.FormatFloat(Round(f), 'f', -1, 64)
	if out == "-0" {
		return "0"
	}
	return out
}

// MinifyFloat compacts the output of [FormatFloat]:
// the leading zero is removed ("0.5" -> ".5") and the
// exponent is stripped of its sign and leading zeros ("1e+06" -> "1e6").
func MinifyFloat(s string) string {
	if i := strings.IndexAny(s, "eE"); i != -1 {
		mant, exp := s[:i], s[i+1:]
		neg := strings.HasPrefix(exp, "-")
		exp = strings.TrimLeft(exp, "+-")
		exp = strings.TrimLeft(exp, "0")
		if exp == "" {
			return MinifyFloat(mant)
		}
		if neg {
			exp = "-" + exp
		}
		return MinifyFloat(mant) + "e" + exp
	}
	if strings.HasPrefix(s, "0.") {
		return s[1:]
	}
	if strings.HasPrefix(s, "-0.") {
		return "-" + s[2:]
	}
	return s
}
