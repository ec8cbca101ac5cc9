package values

import (
	"github.com/benoitkugler/cssom/css/units"
)

// PartType is the type of a node in a calc() tree.
type PartType uint8

const (
	Operand PartType = iota
	Sum
	Product
)

// Part is a node of an algebraic expression tree.
//
// Sum and Product parts have at least one child; a Sum never
// directly contains a Sum, and a Product never directly contains a Product.
// Parentheses are derived from the tree when serializing.
type Part struct {
	// Operand is set for Operand parts : *Numeric, *Var, *Attr,
	// *Expression (nested calc()) or *MathFunction
	Operand  Value
	Children []*Part
	Type     PartType
	// Inverse is true for a child subtracted from its Sum parent,
	// or dividing its Product parent.
	Inverse bool
}

// NewOperand returns an Operand part.
func NewOperand(v Value) *Part { return &Part{Type: Operand, Operand: v} }

// NewSum returns the sum of the given parts.
func NewSum(children ...*Part) *Part {
	p := &Part{Type: Sum}
	for _, child := range children {
		p.Add(child, false)
	}
	return p
}

// NewProduct returns the product of the given parts.
func NewProduct(children ...*Part) *Part {
	p := &Part{Type: Product}
	for _, child := range children {
		p.Add(child, false)
	}
	return p
}

// Add appends child to the Sum or Product p, inverting it if needed
// (subtraction or division).
// A child of the same type as p is flattened.
func (p *Part) Add(child *Part, inverse bool) {
	if child.Type == p.Type {
		for _, c := range child.Children {
			c.Inverse = c.Inverse != (inverse != child.Inverse)
			p.Children = append(p.Children, c)
		}
		return
	}
	child.Inverse = child.Inverse != inverse
	p.Children = append(p.Children, child)
}

func (p *Part) clone() *Part {
	out := &Part{Type: p.Type, Inverse: p.Inverse, Operand: cloneValue(p.Operand)}
	if p.Children != nil {
		out.Children = make([]*Part, len(p.Children))
		for i, c := range p.Children {
			out.Children[i] = c.clone()
		}
	}
	return out
}

// operands appends the leaves of the tree to out
func (p *Part) operands(out []Value) []Value {
	if p.Type == Operand {
		return append(out, p.Operand)
	}
	for _, c := range p.Children {
		out = c.operands(out)
	}
	return out
}

func (p *Part) serialize(w *writer, parent PartType) {
	switch p.Type {
	case Operand:
		p.Operand.serialize(w)
	case Sum:
		if parent == Product {
			w.WriteByte('(')
		}
		for i, c := range p.Children {
			switch {
			case i == 0 && c.Inverse:
				w.WriteString("-1")
				w.padded("*")
			case i == 0:
			case c.Inverse:
				w.WriteString(" - ")
			default:
				w.WriteString(" + ")
			}
			c.serialize(w, Sum)
		}
		if parent == Product {
			w.WriteByte(')')
		}
	case Product:
		for i, c := range p.Children {
			switch {
			case i == 0 && c.Inverse:
				w.WriteString("1")
				w.padded("/")
			case i == 0:
			case c.Inverse:
				w.padded("/")
			default:
				w.padded("*")
			}
			c.serialize(w, Product)
		}
	}
}

// resultType returns the calc() type of the tree, or false
// if it depends on a pending substitution.
func (p *Part) resultType() (units.Type, bool) {
	switch p.Type {
	case Operand:
		return numericType(p.Operand)
	case Sum:
		var out units.Type
		for i, c := range p.Children {
			ty, ok := c.resultType()
			if !ok {
				return units.Type{}, false
			}
			if i == 0 {
				out = ty
			} else {
				out = units.Add(out, ty)
			}
		}
		return out, true
	default:
		var out units.Type // number
		for _, c := range p.Children {
			ty, ok := c.resultType()
			if !ok {
				return units.Type{}, false
			}
			if c.Inverse {
				out = units.Div(out, ty)
			} else {
				out = units.Mul(out, ty)
			}
		}
		return out, true
	}
}

// evaluate folds an absolute tree, returning a value in canonical units
func (p *Part) evaluate() (float64, units.Type, bool) {
	switch p.Type {
	case Operand:
		return evaluateOperand(p.Operand)
	case Sum:
		var (
			sum float64
			ty  units.Type
		)
		for i, c := range p.Children {
			v, cty, ok := c.evaluate()
			if !ok || (i != 0 && cty != ty) {
				return 0, units.Type{}, false
			}
			ty = cty
			if c.Inverse {
				sum -= v
			} else {
				sum += v
			}
		}
		return sum, ty, true
	default:
		prod, ty := 1., units.Type{}
		for _, c := range p.Children {
			v, cty, ok := c.evaluate()
			if !ok {
				return 0, units.Type{}, false
			}
			if c.Inverse {
				prod /= v
				ty = units.Div(ty, cty)
			} else {
				prod *= v
				ty = units.Mul(ty, cty)
			}
		}
		return prod, ty, true
	}
}

func evaluateOperand(v Value) (float64, units.Type, bool) {
	switch v := v.(type) {
	case *Numeric:
		dim, ok := v.Dimension().ToCanonical()
		if !ok {
			return 0, units.Type{}, false
		}
		return dim.Value, units.TypeOf(dim.Unit), true
	case *Expression:
		return v.Root.evaluate()
	case *MathFunction:
		return v.evaluate()
	}
	return 0, units.Type{}, false
}

// numericType returns the calc() type of a numeric value,
// or false if it depends on a pending substitution.
// Non numeric values have an invalid type.
func numericType(v Value) (units.Type, bool) {
	switch v := v.(type) {
	case *Numeric:
		return units.TypeOf(v.Unit), true
	case *Expression:
		return v.Root.resultType()
	case *MathFunction:
		return v.ResultType()
	case *Attr:
		// an untyped attr() is only known after substitution
		if v.CssType() == Proxy || v.TypeName == "" {
			return units.Type{}, false
		}
		if ty, ok := v.Type(); ok {
			return ty, true
		}
	case *Var, *Lexical:
		return units.Type{}, false
	}
	return units.InvalidType, true
}

// Expression is a calc() expression.
type Expression struct {
	Root *Part
	Name string // lower case function name, like "calc"
}

// NewExpression returns calc(root).
func NewExpression(root *Part) *Expression { return &Expression{Root: root, Name: "calc"} }

func (e *Expression) CssType() CssType {
	for _, op := range e.Root.operands(nil) {
		if hasProxy(op) {
			return Proxy
		}
	}
	return Typed
}

func (*Expression) Kind() Kind { return KExpression }

func (e *Expression) Clone() Value { return &Expression{Root: e.Root.clone(), Name: e.Name} }

func (e *Expression) serialize(w *writer) {
	w.WriteString(e.Name)
	w.WriteByte('(')
	e.Root.serialize(w, Operand)
	w.WriteByte(')')
}

// ResultType returns the type inferred from the units of the operands,
// which is invalid for incompatible dimensions, or false if
// the expression has pending substitutions.
func (e *Expression) ResultType() (units.Type, bool) { return e.Root.resultType() }

// ComputeUnit returns the unit of the expression : the common unit
// of its operands of the resulting dimension if they share one,
// the canonical unit of the dimension otherwise.
// It returns [units.Invalid] for incompatible dimensions and
// pending substitutions.
func (e *Expression) ComputeUnit() units.Unit {
	ty, ok := e.ResultType()
	if !ok {
		return units.Invalid
	}
	cat := ty.Category()
	if cat == units.CatInvalid {
		return units.Invalid
	}
	common := units.Invalid
	for _, op := range e.Root.operands(nil) {
		n, isNumeric := op.(*Numeric)
		if !isNumeric || n.Unit.Category() != cat {
			continue
		}
		if common == units.Invalid {
			common = n.Unit
		} else if common != n.Unit {
			return cat.Canonical()
		}
	}
	if common == units.Invalid {
		return cat.Canonical()
	}
	return common
}

// Evaluate folds an expression whose operands are absolute,
// returning a value in the canonical unit of its dimension.
// It returns false for relative units, unresolved percentages,
// incompatible dimensions and pending substitutions.
func (e *Expression) Evaluate() (units.Dimension, bool) {
	v, ty, ok := e.Root.evaluate()
	if !ok {
		return units.Dimension{}, false
	}
	cat := ty.Category()
	if cat == units.CatInvalid {
		return units.Dimension{}, false
	}
	return units.NewDim(v, cat.Canonical()), true
}
