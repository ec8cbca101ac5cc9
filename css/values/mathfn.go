package values

import (
	"math"

	"github.com/benoitkugler/cssom/css/units"
	"github.com/benoitkugler/cssom/utils"
)

// argument count bounds of the math functions
var mathFunctions = map[string][2]int{
	"min":   {1, -1},
	"max":   {1, -1},
	"clamp": {3, 3},
	"sin":   {1, 1},
	"cos":   {1, 1},
	"tan":   {1, 1},
	"asin":  {1, 1},
	"acos":  {1, 1},
	"atan":  {1, 1},
	"atan2": {2, 2},
	"sqrt":  {1, 1},
	"exp":   {1, 1},
	"log":   {1, 2},
	"pow":   {2, 2},
	"hypot": {1, -1},
	"abs":   {1, 1},
	"sign":  {1, 1},
	"round": {1, 2},
	"mod":   {2, 2},
	"rem":   {2, 2},
}

// IsMathFunction returns true for the names (in lower case)
// of the math functions other than calc().
func IsMathFunction(name string) bool {
	_, ok := mathFunctions[name]
	return ok
}

var roundingStrategies = utils.NewSet("nearest", "up", "down", "to-zero")

// MathFunction is one of the math functions, like min() or sin().
// Its arguments are calc() trees.
type MathFunction struct {
	Name string // lower case
	// Strategy is the optional rounding strategy of round()
	Strategy string
	Args     []*Part
}

func (m *MathFunction) CssType() CssType {
	for _, arg := range m.Args {
		for _, op := range arg.operands(nil) {
			if hasProxy(op) {
				return Proxy
			}
		}
	}
	return Typed
}

func (*MathFunction) Kind() Kind { return KMathFunction }

func (m *MathFunction) Clone() Value {
	out := &MathFunction{Name: m.Name, Strategy: m.Strategy, Args: make([]*Part, len(m.Args))}
	for i, arg := range m.Args {
		out.Args[i] = arg.clone()
	}
	return out
}

func (m *MathFunction) serialize(w *writer) {
	w.WriteString(m.Name)
	w.WriteByte('(')
	if m.Strategy != "" {
		w.WriteString(m.Strategy)
		w.comma()
	}
	for i, arg := range m.Args {
		if i != 0 {
			w.comma()
		}
		arg.serialize(w, Operand)
	}
	w.WriteByte(')')
}

// ResultType returns the type of the function result, which is invalid
// if the arguments have incompatible or unexpected dimensions, or false
// if it depends on a pending substitution.
func (m *MathFunction) ResultType() (units.Type, bool) {
	types := make([]units.Type, len(m.Args))
	for i, arg := range m.Args {
		ty, ok := arg.resultType()
		if !ok {
			return units.Type{}, false
		}
		types[i] = ty
	}
	return mathResultType(m.Name, types), true
}

var (
	numberType = units.TypeOf(units.Number)
	angleType  = units.TypeOf(units.Rad)
)

func isNumberType(ty units.Type) bool { return ty.Category() == units.CatNumber }

func mathResultType(name string, args []units.Type) units.Type {
	sameType := func() units.Type {
		out := args[0]
		for _, ty := range args[1:] {
			out = units.Add(out, ty)
		}
		if out.Category() == units.CatInvalid {
			return units.InvalidType
		}
		return out
	}
	allNumbers := func() bool {
		for _, ty := range args {
			if !isNumberType(ty) {
				return false
			}
		}
		return true
	}
	switch name {
	case "min", "max", "clamp", "hypot", "round", "mod", "rem":
		return sameType()
	case "abs":
		return args[0]
	case "sign":
		if args[0].Category() == units.CatInvalid {
			return units.InvalidType
		}
		return numberType
	case "sin", "cos", "tan":
		if cat := args[0].Category(); cat == units.CatAngle || cat == units.CatNumber {
			return numberType
		}
	case "asin", "acos", "atan":
		if allNumbers() {
			return angleType
		}
	case "atan2":
		if sameType().IsInvalid() {
			return units.InvalidType
		}
		return angleType
	case "sqrt", "exp", "log", "pow":
		if allNumbers() {
			return numberType
		}
	}
	return units.InvalidType
}

func (m *MathFunction) evaluate() (float64, units.Type, bool) {
	vals := make([]float64, len(m.Args))
	types := make([]units.Type, len(m.Args))
	for i, arg := range m.Args {
		v, ty, ok := arg.evaluate()
		if !ok {
			return 0, units.Type{}, false
		}
		vals[i], types[i] = v, ty
	}
	ty := mathResultType(m.Name, types)
	if ty.IsInvalid() {
		return 0, units.Type{}, false
	}
	// arguments of the same dimension must not mix percentages with other units
	switch m.Name {
	case "min", "max", "clamp", "hypot", "round", "mod", "rem", "atan2":
		for _, t := range types[1:] {
			if t != types[0] {
				return 0, units.Type{}, false
			}
		}
	}
	return evaluateMath(m.Name, m.Strategy, vals), ty, true
}

func evaluateMath(name, strategy string, args []float64) float64 {
	switch name {
	case "min":
		return utils.Mins(args...)
	case "max":
		return utils.Maxs(args...)
	case "clamp":
		return math.Max(args[0], math.Min(args[1], args[2]))
	case "hypot":
		var s float64
		for _, v := range args {
			s += v * v
		}
		return math.Sqrt(s)
	case "abs":
		return math.Abs(args[0])
	case "sign":
		switch {
		case args[0] > 0:
			return 1
		case args[0] < 0:
			return -1
		}
		return args[0] // 0, -0 or NaN
	case "sin":
		return math.Sin(args[0])
	case "cos":
		return math.Cos(args[0])
	case "tan":
		return math.Tan(args[0])
	case "asin":
		return math.Asin(args[0])
	case "acos":
		return math.Acos(args[0])
	case "atan":
		return math.Atan(args[0])
	case "atan2":
		return math.Atan2(args[0], args[1])
	case "sqrt":
		return math.Sqrt(args[0])
	case "exp":
		return math.Exp(args[0])
	case "log":
		if len(args) == 2 {
			return math.Log(args[0]) / math.Log(args[1])
		}
		return math.Log(args[0])
	case "pow":
		return math.Pow(args[0], args[1])
	case "round":
		step := 1.
		if len(args) == 2 {
			step = args[1]
		}
		return roundTo(args[0], step, strategy)
	case "mod":
		return args[0] - args[1]*math.Floor(args[0]/args[1])
	case "rem":
		return math.Mod(args[0], args[1])
	}
	return math.NaN()
}

func roundTo(v, step float64, strategy string) float64 {
	if step == 0 {
		return math.NaN()
	}
	q := v / step
	switch strategy {
	case "up":
		q = math.Ceil(q)
	case "down":
		q = math.Floor(q)
	case "to-zero":
		q = math.Trunc(q)
	default: // nearest, half values towards +infinity
		q = math.Floor(q + 0.5)
	}
	return q * step
}
