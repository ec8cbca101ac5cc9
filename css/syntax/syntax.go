// Package syntax implements the grammar of registered custom properties
// (like `<length>+ | auto`) and the matching of parsed values against it.
//
// Matching is three-valued: a value with pending var() or attr()
// substitutions may only be decided after substitution.
package syntax

import (
	"strings"

	"github.com/benoitkugler/cssom/css/errs"
	"github.com/benoitkugler/cssom/css/values"
	"github.com/benoitkugler/cssom/utils"
	"github.com/tdewolff/parse/v2/css"
)

// Multiplier is the optional repetition of a [Component].
type Multiplier uint8

const (
	Once Multiplier = iota
	// '+' : one or more space separated items
	SpaceList
	// '#' : one or more comma separated items
	CommaList
)

func (m Multiplier) String() string {
	switch m {
	case SpaceList:
		return "+"
	case CommaList:
		return "#"
	}
	return ""
}

// Component is one alternative of a syntax: a data type
// like <length> or a literal identifier.
type Component struct {
	// Name is the data type name, without brackets,
	// or the identifier for literals.
	Name       string
	Literal    bool
	Multiplier Multiplier
}

func (c Component) String() string {
	if c.Literal {
		return c.Name + c.Multiplier.String()
	}
	return "<" + c.Name + ">" + c.Multiplier.String()
}

// Syntax is a parsed grammar: either the universal syntax `*`,
// or a list of alternatives separated by `|`.
type Syntax struct {
	Alternatives []Component
	Universal    bool
}

// Universal is the syntax `*`, matching any value.
var Universal = Syntax{Universal: true}

func (s Syntax) String() string {
	if s.Universal {
		return "*"
	}
	chunks := make([]string, len(s.Alternatives))
	for i, c := range s.Alternatives {
		chunks[i] = c.String()
	}
	return strings.Join(chunks, " | ")
}

// types which already denote a list, and do not accept a multiplier
var preMultiplied = utils.NewSet("transform-list")

// Parse parses a syntax string, as found in the 'syntax'
// descriptor of @property rules.
func Parse(text string) (Syntax, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Syntax{}, errs.Syntaxf("empty syntax")
	}
	if text == "*" {
		return Universal, nil
	}
	var out Syntax
	for _, chunk := range strings.Split(text, "|") {
		comp, err := parseComponent(strings.TrimSpace(chunk))
		if err != nil {
			return Syntax{}, err
		}
		out.Alternatives = append(out.Alternatives, comp)
	}
	return out, nil
}

// MustParse is like [Parse] but panics on invalid input.
func MustParse(text string) Syntax {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

func parseComponent(chunk string) (Component, error) {
	if chunk == "" {
		return Component{}, errs.Syntaxf("empty syntax component")
	}
	var out Component
	switch chunk[len(chunk)-1] {
	case '+':
		out.Multiplier = SpaceList
		chunk = chunk[:len(chunk)-1]
	case '#':
		out.Multiplier = CommaList
		chunk = chunk[:len(chunk)-1]
	}
	if strings.HasPrefix(chunk, "<") {
		if !strings.HasSuffix(chunk, ">") {
			return Component{}, errs.Syntaxf("unterminated data type name %q", chunk)
		}
		out.Name = chunk[1 : len(chunk)-1]
		if _, known := dataTypes[out.Name]; !known {
			return Component{}, errs.NotSupportedf("unsupported data type <%s>", out.Name)
		}
		if out.Multiplier != Once && preMultiplied.Has(out.Name) {
			return Component{}, errs.Syntaxf("<%s> does not accept a multiplier", out.Name)
		}
		return out, nil
	}
	if !css.IsIdent([]byte(chunk)) {
		return Component{}, errs.Syntaxf("invalid syntax component %q", chunk)
	}
	if values.IsWideKeyword(chunk) || utils.AsciiEqualFold(chunk, "default") {
		return Component{}, errs.Syntaxf("reserved keyword %s in syntax", chunk)
	}
	out.Name = chunk
	out.Literal = true
	return out, nil
}
