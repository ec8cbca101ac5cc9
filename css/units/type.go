package units

import "strings"

// base dimensions of a [Type]; frequency is time^-1
// and resolution is length^-1
const (
	baseLength = iota
	baseAngle
	baseTime
	baseFlex
	basePercent
	nbBases
)

// Type is the type of a calc() expression, as an exponent
// for each base dimension. Percentages resolved against another
// dimension are tracked with a hint.
// The zero value is the type of a number.
type Type struct {
	powers  [nbBases]int8
	percent bool // a percentage has been resolved into this type
	invalid bool
}

// InvalidType is the result of incompatible operations.
var InvalidType = Type{invalid: true}

// TypeOf returns the type of a value with unit u.
func TypeOf(u Unit) Type {
	var t Type
	switch u.Category() {
	case CatNumber:
	case CatPercentage:
		t.powers[basePercent] = 1
	case CatLength:
		t.powers[baseLength] = 1
	case CatAngle:
		t.powers[baseAngle] = 1
	case CatTime:
		t.powers[baseTime] = 1
	case CatFrequency:
		t.powers[baseTime] = -1
	case CatResolution:
		t.powers[baseLength] = -1
	case CatFlex:
		t.powers[baseFlex] = 1
	default:
		return InvalidType
	}
	return t
}

// TypeOfCategory is the same as TypeOf(c.Canonical())
func TypeOfCategory(c Category) Type { return TypeOf(c.Canonical()) }

// IsInvalid returns true for the result of incompatible operations.
func (t Type) IsInvalid() bool { return t.invalid }

// HasPercent returns true if the type is a percentage or
// involves a percentage resolved against another dimension.
func (t Type) HasPercent() bool { return t.percent || t.powers[basePercent] != 0 }

func (t Type) isPurePercent() bool {
	return t.powers == [nbBases]int8{basePercent: 1}
}

// a single base dimension percentages may be resolved against
func (t Type) acceptsPercent() bool {
	switch t.Category() {
	case CatLength, CatAngle, CatTime, CatFrequency:
		return true
	}
	return false
}

// Add returns the type of a + b, which is invalid
// if the types are not compatible.
func Add(a, b Type) Type {
	if a.invalid || b.invalid {
		return InvalidType
	}
	if a.powers == b.powers {
		return Type{powers: a.powers, percent: a.percent || b.percent}
	}
	if a.isPurePercent() && b.acceptsPercent() {
		b.percent = true
		return b
	}
	if b.isPurePercent() && a.acceptsPercent() {
		a.percent = true
		return a
	}
	return InvalidType
}

// Mul returns the type of a * b
func Mul(a, b Type) Type {
	if a.invalid || b.invalid {
		return InvalidType
	}
	out := Type{percent: a.percent || b.percent}
	for i := range out.powers {
		out.powers[i] = a.powers[i] + b.powers[i]
	}
	return out
}

// Div returns the type of a / b
func Div(a, b Type) Type {
	if a.invalid || b.invalid {
		return InvalidType
	}
	out := Type{percent: a.percent || b.percent}
	for i := range out.powers {
		out.powers[i] = a.powers[i] - b.powers[i]
	}
	return out
}

// Category returns the dimension described by the type, or
// [CatInvalid] if the type is not a valid CSS dimension (like length²).
func (t Type) Category() Category {
	if t.invalid {
		return CatInvalid
	}
	var (
		base, nonZero int
		power         int8
	)
	for i, p := range t.powers {
		if p != 0 {
			nonZero++
			base, power = i, p
		}
	}
	switch nonZero {
	case 0:
		return CatNumber
	case 1:
	default:
		return CatInvalid
	}
	switch {
	case base == baseLength && power == 1:
		return CatLength
	case base == baseLength && power == -1:
		return CatResolution
	case base == baseAngle && power == 1:
		return CatAngle
	case base == baseTime && power == 1:
		return CatTime
	case base == baseTime && power == -1:
		return CatFrequency
	case base == baseFlex && power == 1:
		return CatFlex
	case base == basePercent && power == 1:
		return CatPercentage
	}
	return CatInvalid
}

func (t Type) String() string {
	if t.invalid {
		return "invalid"
	}
	var sb strings.Builder
	sb.WriteString(t.Category().String())
	if t.percent {
		sb.WriteString("-percentage")
	}
	return sb.String()
}
