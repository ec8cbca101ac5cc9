package values

import (
	pa "github.com/benoitkugler/cssom/css/parser"
	"github.com/benoitkugler/cssom/css/errs"
	"github.com/benoitkugler/cssom/css/units"
)

// calcItem is an operand or an operator of a calc() expression
type calcItem struct {
	token Token
	op    byte // '+', '-', '*', '/' or 0 for operands
	// whitespace around the item
	spaceBefore, spaceAfter bool
}

type calcParser struct {
	items []calcItem
	pos   int
}

func newCalcParser(tokens []Token) (*calcParser, error) {
	var (
		p     calcParser
		space bool
	)
	for _, token := range tokens {
		switch token := token.(type) {
		case pa.Whitespace:
			if len(p.items) != 0 {
				p.items[len(p.items)-1].spaceAfter = true
			}
			space = true
			continue
		case pa.Comment:
			continue
		case pa.Literal:
			switch token.Value {
			case "+", "-", "*", "/":
				p.items = append(p.items, calcItem{token: token, op: token.Value[0], spaceBefore: space})
			default:
				return nil, errs.Syntaxf("unexpected %s in calc()", token.Value)
			}
		default:
			p.items = append(p.items, calcItem{token: token, spaceBefore: space})
		}
		space = false
	}
	return &p, nil
}

// parseCalcSum parses the content of calc(), or of one argument of a math function
func parseCalcSum(tokens []Token) (*Part, error) {
	p, err := newCalcParser(tokens)
	if err != nil {
		return nil, err
	}
	if len(p.items) == 0 {
		return nil, errs.Syntaxf("empty calc() expression")
	}
	root, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.items) {
		return nil, errs.Syntaxf("missing operator before %s", tokenText(p.items[p.pos].token))
	}
	return root, nil
}

func (p *calcParser) peekOp() byte {
	if p.pos >= len(p.items) {
		return 0
	}
	return p.items[p.pos].op
}

func (p *calcParser) parseSum() (*Part, error) {
	first, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	if op := p.peekOp(); op != '+' && op != '-' {
		return first, nil
	}
	sum := NewSum(first)
	for op := p.peekOp(); op == '+' || op == '-'; op = p.peekOp() {
		item := p.items[p.pos]
		if !item.spaceBefore || !item.spaceAfter {
			return nil, errs.Syntaxf("'%c' must be surrounded by whitespace in calc()", op)
		}
		p.pos++
		next, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		sum.Add(next, op == '-')
	}
	return sum, nil
}

func (p *calcParser) parseProduct() (*Part, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if op := p.peekOp(); op != '*' && op != '/' {
		return first, nil
	}
	product := NewProduct(first)
	for op := p.peekOp(); op == '*' || op == '/'; op = p.peekOp() {
		p.pos++
		next, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		product.Add(next, op == '/')
	}
	return product, nil
}

// parseUnary handles a sign directly attached to the next operand
func (p *calcParser) parseUnary() (*Part, error) {
	if p.pos >= len(p.items) {
		return nil, errs.Syntaxf("missing operand in calc()")
	}
	item := p.items[p.pos]
	if (item.op == '-' || item.op == '+') && !item.spaceAfter {
		p.pos++
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		if item.op == '+' {
			return operand, nil
		}
		return NewProduct(NewOperand(NewNumber(-1)), operand), nil
	}
	return p.parsePrimary()
}

func (p *calcParser) parsePrimary() (*Part, error) {
	if p.pos >= len(p.items) {
		return nil, errs.Syntaxf("missing operand in calc()")
	}
	item := p.items[p.pos]
	if item.op != 0 {
		return nil, errs.Syntaxf("unexpected operator '%c' in calc()", item.op)
	}
	p.pos++
	switch token := item.token.(type) {
	case pa.Number, pa.Percentage:
		v, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		return NewOperand(v), nil
	case pa.Dimension:
		if units.Parse(token.Unit) == units.Invalid {
			return nil, errs.Syntaxf("unknown unit %s in calc()", token.Unit)
		}
		v, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		return NewOperand(v), nil
	case pa.Ident:
		if f, ok := calcConstant(token.Value); ok {
			return NewOperand(NewNumber(f)), nil
		}
		return nil, errs.Syntaxf("unexpected identifier %s in calc()", token.Value)
	case pa.ParenthesesBlock:
		return parseCalcSum(token.Arguments)
	case pa.FunctionBlock:
		name, _ := pa.ParseFunction(token)
		if name == "calc" || name == "var" || name == "attr" || IsMathFunction(name) {
			v, err := parseFunction(token)
			if err != nil {
				return nil, err
			}
			return NewOperand(v), nil
		}
		return nil, errs.Syntaxf("%s() is not allowed in calc()", name)
	}
	return nil, errs.Syntaxf("unexpected %s in calc()", tokenText(item.token))
}
