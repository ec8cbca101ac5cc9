package values

import (
	"math"
	"strings"

	pa "github.com/benoitkugler/cssom/css/parser"
	"github.com/benoitkugler/cssom/css/color"
	"github.com/benoitkugler/cssom/css/errs"
	"github.com/benoitkugler/cssom/css/units"
	"github.com/benoitkugler/cssom/utils"
)

// ParseString tokenizes css and calls [Parse].
func ParseString(css string) (Value, error) {
	return Parse(pa.TokenizeString(css, true))
}

// Parse builds the value tree of a property value.
// Invalid input yields a nil value and an error of kind [errs.Syntax]
// or [errs.TypeMismatch].
func Parse(tokens []Token) (Value, error) {
	tokens = pa.Normalize(tokens)
	if len(tokens) == 0 {
		return nil, errs.Syntaxf("empty value")
	}
	if err := checkParseErrors(tokens); err != nil {
		return nil, err
	}
	return parseCommaList(tokens)
}

func checkParseErrors(tokens []Token) error {
	for _, token := range tokens {
		var args []Token
		switch token := token.(type) {
		case pa.ParseError:
			return errs.Syntaxf("%s", token.Message)
		case pa.FunctionBlock:
			args = token.Arguments
		case pa.ParenthesesBlock:
			args = token.Arguments
		case pa.SquareBracketsBlock:
			args = token.Arguments
		case pa.CurlyBracketsBlock:
			args = token.Arguments
		}
		if err := checkParseErrors(args); err != nil {
			return err
		}
	}
	return nil
}

func tokenText(token Token) string { return pa.Serialize([]Token{token}) }

// parseCommaList handles the top level comma separated items
func parseCommaList(tokens []Token) (Value, error) {
	parts := pa.SplitOnComma(tokens)
	if len(parts) == 1 {
		return parseComponent(tokens, true)
	}
	out := &ValueList{Separator: CommaSeparated, Items: make([]Value, len(parts))}
	for i, part := range parts {
		part = pa.TrimWhitespace(part)
		if len(part) == 0 {
			return nil, errs.Syntaxf("empty item in comma separated list")
		}
		item, err := parseComponent(part, false)
		if err != nil {
			return nil, err
		}
		out.Items[i] = item
	}
	return out, nil
}

// parseComponent parses a value without top level commas.
// CSS-wide keywords are only accepted if alone is true.
func parseComponent(tokens []Token, alone bool) (Value, error) {
	tokens = pa.TrimWhitespace(tokens)
	parts := pa.SplitOn(tokens, "/")
	if len(parts) == 1 {
		return parseSpaceList(tokens, alone)
	}
	if len(parts) == 2 {
		if r, ok := parseRatio(pa.RemoveWhitespace(parts[0]), pa.RemoveWhitespace(parts[1])); ok {
			return r, nil
		}
	}
	out := &ValueList{Separator: SlashSeparated, Items: make([]Value, len(parts))}
	for i, part := range parts {
		part = pa.TrimWhitespace(part)
		if len(part) == 0 {
			return nil, errs.Syntaxf("empty item in slash separated list")
		}
		item, err := parseSpaceList(part, false)
		if err != nil {
			return nil, err
		}
		out.Items[i] = item
	}
	return out, nil
}

func parseRatio(num, den []Token) (*Ratio, bool) {
	if len(num) != 1 || len(den) != 1 {
		return nil, false
	}
	n, ok1 := num[0].(pa.Number)
	d, ok2 := den[0].(pa.Number)
	if !ok1 || !ok2 || n.ValueF < 0 || d.ValueF < 0 {
		return nil, false
	}
	return &Ratio{Numerator: n.ValueF, Denominator: d.ValueF}, true
}

func parseSpaceList(tokens []Token, alone bool) (Value, error) {
	significant := pa.RemoveWhitespace(tokens)
	if len(significant) == 1 {
		if id, ok := significant[0].(pa.Ident); ok && IsWideKeyword(id.Value) {
			if !alone {
				return nil, errs.Syntaxf("%s must be the only component of a value", id.Value)
			}
			return &WideKeyword{Name: utils.AsciiLower(id.Value)}, nil
		}
		return parseToken(significant[0])
	}
	out := &ValueList{Separator: SpaceSeparated, Items: make([]Value, len(significant))}
	for i, token := range significant {
		if id, ok := token.(pa.Ident); ok && IsWideKeyword(id.Value) {
			return nil, errs.Syntaxf("%s must be the only component of a value", id.Value)
		}
		item, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		out.Items[i] = item
	}
	return out, nil
}

// parseToken parses one significant token.
func parseToken(token Token) (Value, error) {
	switch token := token.(type) {
	case pa.Number:
		return &Numeric{Value: token.ValueF, Unit: units.Number, Integer: token.IsInt()}, nil
	case pa.Percentage:
		return &Numeric{Value: token.ValueF, Unit: units.Percentage}, nil
	case pa.Dimension:
		u := units.Parse(token.Unit)
		if u == units.Invalid {
			return &Unknown{Text: tokenText(token)}, nil
		}
		return &Numeric{Value: token.ValueF, Unit: u, Integer: token.IsInt()}, nil
	case pa.String:
		return &String{Value: token.Value}, nil
	case pa.Ident:
		return &Ident{Value: token.Value}, nil
	case pa.URL:
		return &URI{URL: token.Value}, nil
	case pa.Hash:
		if c, ok := parseHex(token.Value); ok {
			return c, nil
		}
		return &Unknown{Text: tokenText(token)}, nil
	case pa.UnicodeRange:
		switch {
		case token.Wildcard:
			return &UnicodeWildcard{Start: token.Start, End: token.End}, nil
		case token.Start == token.End:
			return &UnicodeCharacter{Code: token.Start}, nil
		default:
			return &UnicodeRange{Start: token.Start, End: token.End}, nil
		}
	case pa.SquareBracketsBlock:
		items := pa.RemoveWhitespace(token.Arguments)
		out := &ValueList{Separator: Bracketed, Items: make([]Value, len(items))}
		for i, item := range items {
			v, err := parseToken(item)
			if err != nil {
				return nil, err
			}
			out.Items[i] = v
		}
		return out, nil
	case pa.FunctionBlock:
		v, err := parseFunction(token)
		if err != nil {
			return nil, err
		}
		return v, nil
	case pa.ParenthesesBlock, pa.CurlyBracketsBlock:
		return &Unknown{Text: tokenText(token)}, nil
	case pa.ParseError:
		return nil, errs.Syntaxf("%s", token.Message)
	}
	return nil, errs.Syntaxf("unexpected %s %s", token.Kind(), tokenText(token))
}

var (
	colorFunctions = utils.NewSet("rgb", "rgba", "hsl", "hsla", "hwb", "lab", "lch", "oklab", "oklch", "color")

	gradientFunctions = utils.NewSet("linear-gradient", "radial-gradient", "conic-gradient",
		"repeating-linear-gradient", "repeating-radial-gradient", "repeating-conic-gradient")

	imageFunctions = utils.NewSet("image", "image-set", "cross-fade")

	transformFunctions = utils.NewSet("matrix", "matrix3d", "translate", "translatex", "translatey",
		"translatez", "translate3d", "scale", "scalex", "scaley", "scalez", "scale3d", "rotate",
		"rotatex", "rotatey", "rotatez", "rotate3d", "skew", "skewx", "skewy", "perspective")
)

// IsTransformFunction returns true for the lower case names of the <transform-function>s.
func IsTransformFunction(name string) bool { return transformFunctions.Has(name) }

// IsImageFunction returns true for the lower case names of the functions
// producing an <image>, gradients included.
func IsImageFunction(name string) bool {
	return gradientFunctions.Has(name) || imageFunctions.Has(name)
}

// finalTypeOf infers the type of a function whose arguments
// have pending substitutions.
func finalTypeOf(name string) FinalType {
	switch {
	case colorFunctions.Has(name) || name == "color-mix":
		return FinalColor
	case gradientFunctions.Has(name) || imageFunctions.Has(name):
		return FinalImage
	case transformFunctions.Has(name):
		return FinalTransform
	case name == "calc" || IsMathFunction(name):
		return FinalNumeric
	}
	return FinalUnknown
}

func parseFunction(token pa.FunctionBlock) (Value, error) {
	name, args := pa.ParseFunction(token)
	switch {
	case name == "var":
		return parseVar(args)
	case name == "attr":
		return parseAttr(args)
	case name == "calc":
		root, err := parseCalcSum(args)
		if err != nil {
			return nil, err
		}
		return &Expression{Root: root, Name: name}, nil
	case IsMathFunction(name):
		return parseMathFunction(name, args)
	}

	// other functions are opaque to var() substitution
	if pa.AnyHasFunction(args, "var") {
		final := finalTypeOf(name)
		// color-mix() models var() colors and percentages
		if name == "color-mix" {
			if m, err := parseColorMix(args); err == nil {
				return m, nil
			}
			if !colorMixSatisfiable(args) {
				final = FinalInvalid
			}
		}
		return &Lexical{Text: tokenText(token), Final: final}, nil
	}

	switch {
	case colorFunctions.Has(name):
		return parseColorFunction(name, args)
	case name == "color-mix":
		return parseColorMix(args)
	case gradientFunctions.Has(name):
		items, err := parseArguments(args)
		if err != nil {
			return nil, err
		}
		return &Gradient{Name: name, Args: items}, nil
	case name == "url":
		return parseURLFunction(args)
	case name == "counter", name == "counters":
		return parseCounter(name, args)
	case name == "cubic-bezier":
		return parseCubicBezier(args)
	case name == "steps":
		return parseSteps(args)
	case name == "rect":
		return parseRect(args)
	case name == "element":
		return parseElement(args)
	case name == "env":
		return parseEnv(args)
	}
	items, err := parseArguments(args)
	if err != nil {
		return nil, err
	}
	return &FunctionValue{Name: name, Args: items}, nil
}

// parseArguments parses comma separated arguments
func parseArguments(args []Token) ([]Value, error) {
	if len(pa.RemoveWhitespace(args)) == 0 {
		return nil, nil
	}
	parts := pa.SplitOnComma(args)
	out := make([]Value, len(parts))
	for i, part := range parts {
		if len(pa.TrimWhitespace(part)) == 0 {
			return nil, errs.Syntaxf("empty function argument")
		}
		v, err := parseComponent(part, false)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ---------------------------- substitution functions ----------------------------

func parseVar(args []Token) (Value, error) {
	parts := pa.SplitOnComma(args)
	name := pa.RemoveWhitespace(parts[0])
	if len(name) != 1 {
		return nil, errs.Syntaxf("invalid var() arguments")
	}
	ident, ok := name[0].(pa.Ident)
	if !ok || !strings.HasPrefix(ident.Value, "--") {
		return nil, errs.Syntaxf("expected a custom property name in var(), got %s", tokenText(name[0]))
	}
	out := &Var{Name: ident.Value, HasFallback: len(parts) > 1}
	if !out.HasFallback {
		return out, nil
	}
	// everything after the first comma, commas included
	fallback := pa.TrimWhitespace(args[len(parts[0])+1:])
	if len(fallback) == 0 {
		return out, nil
	}
	fb, err := Parse(fallback)
	if err != nil {
		// the fallback of var() is any token sequence
		fb = &Unknown{Text: pa.Serialize(fallback)}
	}
	out.Fallback = fb
	return out, nil
}

func parseAttr(args []Token) (*Attr, error) {
	parts := pa.SplitOnComma(args)
	head := pa.RemoveWhitespace(parts[0])
	if len(head) == 0 || len(head) > 2 {
		return nil, errs.Syntaxf("invalid attr() arguments")
	}
	ident, ok := head[0].(pa.Ident)
	if !ok {
		return nil, errs.Syntaxf("expected an attribute name in attr(), got %s", tokenText(head[0]))
	}
	out := &Attr{Name: ident.Value}
	if len(head) == 2 {
		switch ty := head[1].(type) {
		case pa.Ident:
			out.TypeName = utils.AsciiLower(ty.Value)
			if !isValidAttrType(out.TypeName) {
				return nil, errs.Syntaxf("invalid attr() type %s", ty.Value)
			}
		case pa.Literal:
			if ty.Value != "%" {
				return nil, errs.Syntaxf("invalid attr() type %s", ty.Value)
			}
			out.TypeName = "%"
		case pa.FunctionBlock:
			if name, _ := pa.ParseFunction(ty); name != "type" {
				return nil, errs.Syntaxf("invalid attr() type %s()", ty.Name)
			}
			ty.Name = "type"
			out.TypeName = tokenText(ty)
		default:
			return nil, errs.Syntaxf("invalid attr() type %s", tokenText(ty))
		}
	}
	if len(parts) == 1 {
		return out, nil
	}
	fallback := pa.TrimWhitespace(args[len(parts[0])+1:])
	if len(fallback) == 0 {
		return out, nil
	}
	if pa.AnyHasFunction(fallback, "attr") {
		return nil, errs.TypeMismatchf("attr() is not allowed in the fallback of attr()")
	}
	for _, token := range fallback {
		if _, isURL := token.(pa.URL); isURL {
			return nil, errs.Syntaxf("unquoted url() is not allowed in the fallback of attr()")
		}
	}
	fb, err := Parse(fallback)
	if err != nil {
		return nil, err
	}
	out.Fallback = fb
	return out, nil
}

// ---------------------------- math functions ----------------------------

func parseMathFunction(name string, args []Token) (*MathFunction, error) {
	parts := pa.SplitOnComma(args)
	out := &MathFunction{Name: name}
	if name == "round" {
		if first := pa.RemoveWhitespace(parts[0]); len(first) == 1 {
			if id, ok := first[0].(pa.Ident); ok && roundingStrategies.Has(utils.AsciiLower(id.Value)) {
				out.Strategy = utils.AsciiLower(id.Value)
				parts = parts[1:]
			}
		}
	}
	bounds := mathFunctions[name]
	if len(parts) < bounds[0] || (bounds[1] != -1 && len(parts) > bounds[1]) {
		return nil, errs.Syntaxf("invalid number of arguments for %s()", name)
	}
	for _, part := range parts {
		arg, err := parseCalcSum(part)
		if err != nil {
			return nil, err
		}
		out.Args = append(out.Args, arg)
	}
	return out, nil
}

// ---------------------------- colors ----------------------------

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func hexValue(c byte) float64 {
	switch {
	case c <= '9':
		return float64(c - '0')
	case c <= 'F':
		return float64(c - 'A' + 10)
	default:
		return float64(c - 'a' + 10)
	}
}

// parseHex parses the hex notation, without the leading '#'
func parseHex(value string) (*Color, bool) {
	for i := 0; i < len(value); i++ {
		if !isHexDigit(value[i]) {
			return nil, false
		}
	}
	var channels [4]float64
	channels[3] = 255
	switch len(value) {
	case 3, 4:
		for i := 0; i < len(value); i++ {
			channels[i] = hexValue(value[i]) * 17
		}
	case 6, 8:
		for i := 0; i < len(value); i += 2 {
			channels[i/2] = hexValue(value[i])*16 + hexValue(value[i+1])
		}
	default:
		return nil, false
	}
	out := &Color{
		Function: "#", Space: color.SRGB, Known: true, Model: ModelRGB,
		Components: []Value{NewNumber(channels[3] / 255), NewNumber(channels[0]), NewNumber(channels[1]), NewNumber(channels[2])},
	}
	return out, true
}

// parseColorComponent parses one channel of a color function.
func parseColorComponent(token Token) (Value, error) {
	switch token := token.(type) {
	case pa.Number, pa.Percentage, pa.Dimension:
		v, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		if _, ok := v.(*Numeric); !ok {
			return nil, errs.Syntaxf("invalid color component %s", tokenText(token))
		}
		return v, nil
	case pa.Ident:
		if utils.AsciiEqualFold(token.Value, "none") {
			return &Ident{Value: "none"}, nil
		}
	case pa.FunctionBlock:
		if name, _ := pa.ParseFunction(token); name == "calc" || IsMathFunction(name) || name == "attr" {
			return parseFunction(token)
		}
	}
	return nil, errs.Syntaxf("invalid color component %s", tokenText(token))
}

// checkColorComponents validates the parsed components of c
func (c *Color) checkComponents() error {
	var (
		legacyKinds  = map[units.Category]bool{}
		legacyStrict = c.Legacy && (c.Space == color.SRGB)
	)
	for i, comp := range c.Components {
		if isNone(comp) {
			if c.Legacy {
				return errs.Syntaxf("'none' is not allowed in the legacy color syntax")
			}
			continue
		}
		ty, ok := numericType(comp)
		if !ok {
			continue
		}
		allowed, cat := c.allowedCategories(i), ty.Category()
		if cat == units.CatInvalid || (cat != allowed[0] && cat != allowed[1]) {
			return errs.Syntaxf("invalid component %s for %s()", CssText(comp), c.Function)
		}
		if i == 0 {
			if n, ok := comp.(*Numeric); ok {
				if n.Unit == units.Percentage {
					n.Value = utils.Clamp(n.Value, 0, 100)
				} else {
					n.Value = utils.Clamp(n.Value, 0, 1)
				}
			}
			continue
		}
		if legacyStrict {
			legacyKinds[cat] = true
		}
		if c.Legacy && c.Space == color.HSL && i > 1 && cat != units.CatPercentage {
			return errs.Syntaxf("saturation and lightness must be percentages in the legacy hsl() syntax")
		}
	}
	if len(legacyKinds) > 1 {
		return errs.Syntaxf("mixing numbers and percentages in the legacy rgb() syntax")
	}
	return nil
}

func parseColorFunction(name string, args []Token) (*Color, error) {
	out := &Color{Function: name, Known: true}
	switch name {
	case "rgb", "rgba":
		out.Space = color.SRGB
	case "hsl", "hsla":
		out.Space = color.HSL
	case "color":
	default:
		out.Space, _ = color.ParseSpace(name)
	}

	var channels []Token
	alpha := Value(NewNumber(1))
	if parts := pa.SplitOnComma(args); len(parts) > 1 {
		if name != "rgb" && name != "rgba" && name != "hsl" && name != "hsla" {
			return nil, errs.Syntaxf("commas are not allowed in %s()", name)
		}
		if len(parts) != 3 && len(parts) != 4 {
			return nil, errs.Syntaxf("expected 3 or 4 arguments in %s()", name)
		}
		out.Legacy = true
		for _, part := range parts {
			part = pa.RemoveWhitespace(part)
			if len(part) != 1 {
				return nil, errs.Syntaxf("invalid argument in %s()", name)
			}
			channels = append(channels, part[0])
		}
		if len(channels) == 4 {
			a, err := parseColorComponent(channels[3])
			if err != nil {
				return nil, err
			}
			alpha, channels = a, channels[:3]
		}
	} else {
		slash := pa.SplitOn(args, "/")
		if len(slash) > 2 {
			return nil, errs.Syntaxf("invalid alpha in %s()", name)
		}
		channels = pa.RemoveWhitespace(slash[0])
		if len(slash) == 2 {
			a := pa.RemoveWhitespace(slash[1])
			if len(a) != 1 {
				return nil, errs.Syntaxf("invalid alpha in %s()", name)
			}
			var err error
			if alpha, err = parseColorComponent(a[0]); err != nil {
				return nil, err
			}
		}
	}

	if name == "color" {
		if len(channels) == 0 {
			return nil, errs.Syntaxf("missing color space in color()")
		}
		if err := out.setProfile(channels[0]); err != nil {
			return nil, err
		}
		channels = channels[1:]
		if out.Model == ModelProfile && !out.Known {
			if len(channels) == 0 {
				return nil, errs.Syntaxf("missing components in color(%s)", out.Profile)
			}
		} else if len(channels) != 3 {
			return nil, errs.Syntaxf("expected 3 components in color(%s)", out.Profile)
		}
	} else {
		out.Model = modelOf(out.Space)
		if len(channels) != 3 {
			return nil, errs.Syntaxf("expected 3 components in %s()", name)
		}
	}

	out.Components = []Value{alpha}
	for _, token := range channels {
		comp, err := parseColorComponent(token)
		if err != nil {
			return nil, err
		}
		out.Components = append(out.Components, comp)
	}
	if err := out.checkComponents(); err != nil {
		return nil, err
	}
	return out, nil
}

// setProfile sets the color space of a color() function
func (c *Color) setProfile(token Token) error {
	ident, ok := token.(pa.Ident)
	if !ok {
		return errs.Syntaxf("expected a color space, got %s", tokenText(token))
	}
	if strings.HasPrefix(ident.Value, "--") {
		c.Profile, c.Model = ident.Value, ModelProfile
		c.Space, c.Known = color.ParseSpace(ident.Value)
		return nil
	}
	space, ok := color.ParseSpace(ident.Value)
	if !ok || !(space.IsRGB() || space.IsXYZ()) {
		return errs.Syntaxf("invalid color space %s in color()", ident.Value)
	}
	c.Profile, c.Space, c.Model = utils.AsciiLower(ident.Value), space, modelOf(space)
	return nil
}

func parseColorMix(args []Token) (*ColorMix, error) {
	parts := pa.SplitOnComma(args)
	out := &ColorMix{}
	if len(parts) == 3 {
		if err := out.parseInterpolation(pa.RemoveWhitespace(parts[0])); err != nil {
			return nil, err
		}
		parts = parts[1:]
	}
	if len(parts) != 2 {
		return nil, errs.Syntaxf("expected two colors in color-mix()")
	}
	var err error
	if out.Color1, out.Percentage1, err = parseMixItem(parts[0]); err != nil {
		return nil, err
	}
	if out.Color2, out.Percentage2, err = parseMixItem(parts[1]); err != nil {
		return nil, err
	}
	p1, ok1 := out.Percentage1.(*Numeric)
	p2, ok2 := out.Percentage2.(*Numeric)
	if ok1 && ok2 && p1.Value+p2.Value == 0 {
		return nil, errs.Syntaxf("color-mix() percentages can't sum to zero")
	}
	return out, nil
}

// colorMixSatisfiable returns false if the color-mix() arguments
// not containing var() can't be valid, whatever the substitutions.
func colorMixSatisfiable(args []Token) bool {
	parts := pa.SplitOnComma(args)
	// substitutions may add commas, never remove them
	if len(parts) > 3 {
		return false
	}
	for i, part := range parts {
		if pa.AnyHasFunction(part, "var") {
			continue
		}
		_, _, itemErr := parseMixItem(part)
		switch {
		case i == 0 && len(parts) == 3:
			if (&ColorMix{}).parseInterpolation(pa.RemoveWhitespace(part)) != nil {
				return false
			}
		case i == 0:
			// either the interpolation method or the first color
			if itemErr != nil && (&ColorMix{}).parseInterpolation(pa.RemoveWhitespace(part)) != nil {
				return false
			}
		case itemErr != nil:
			return false
		}
	}
	return true
}

// parseInterpolation parses in <space> [<hue-method> hue]
func (m *ColorMix) parseInterpolation(tokens []Token) error {
	idents := make([]string, len(tokens))
	for i, token := range tokens {
		id, ok := token.(pa.Ident)
		if !ok {
			return errs.Syntaxf("invalid color-mix() interpolation method")
		}
		idents[i] = utils.AsciiLower(id.Value)
	}
	if len(idents) < 2 || idents[0] != "in" {
		return errs.Syntaxf("invalid color-mix() interpolation method")
	}
	space, ok := color.ParseSpace(idents[1])
	if !ok || space.IsCustomProfile() {
		return errs.Syntaxf("invalid color-mix() interpolation space %s", idents[1])
	}
	m.Space, m.HasSpace = space, true
	switch len(idents) {
	case 2:
		return nil
	case 4:
		method, ok := color.ParseHueMethod(idents[2])
		if !ok || idents[3] != "hue" || !space.IsPolar() {
			return errs.Syntaxf("invalid color-mix() hue interpolation method")
		}
		m.HueMethod, m.HasHueMethod = method, true
		return nil
	}
	return errs.Syntaxf("invalid color-mix() interpolation method")
}

// parseMixItem parses <color> && <percentage>?
func parseMixItem(tokens []Token) (col, percentage Value, err error) {
	tokens = pa.RemoveWhitespace(tokens)
	if len(tokens) == 0 || len(tokens) > 2 {
		return nil, nil, errs.Syntaxf("invalid color-mix() argument")
	}
	for _, token := range tokens {
		v, err := parseToken(token)
		if err != nil {
			return nil, nil, err
		}
		if colErr := checkMixColor(v); colErr == nil && col == nil && !isPercentageLike(v) {
			col = v
			continue
		}
		if percentage != nil {
			return nil, nil, errs.Syntaxf("invalid color-mix() argument %s", CssText(v))
		}
		if checkMixPercentage(v) != nil {
			return nil, nil, errs.Syntaxf("invalid color-mix() percentage %s", CssText(v))
		}
		percentage = v
	}
	if col == nil {
		return nil, nil, errs.Syntaxf("missing color in color-mix() argument")
	}
	return col, percentage, nil
}

// isPercentageLike returns true for percentages and calc() expressions
func isPercentageLike(v Value) bool {
	switch v := v.(type) {
	case *Numeric:
		return v.Unit == units.Percentage
	case *Expression, *MathFunction:
		return true
	}
	return false
}

// ---------------------------- other functions ----------------------------

func parseURLFunction(args []Token) (*URI, error) {
	args = pa.RemoveWhitespace(args)
	if len(args) == 1 {
		if s, ok := args[0].(pa.String); ok {
			return &URI{URL: s.Value}, nil
		}
	}
	return nil, errs.Syntaxf("invalid url()")
}

// singleTokenArgs splits comma separated arguments, which must be single tokens
func singleTokenArgs(name string, args []Token) ([]Token, error) {
	parts := pa.SplitOnComma(args)
	out := make([]Token, len(parts))
	for i, part := range parts {
		part = pa.RemoveWhitespace(part)
		if len(part) != 1 {
			return nil, errs.Syntaxf("invalid arguments for %s()", name)
		}
		out[i] = part[0]
	}
	return out, nil
}

func parseCounter(name string, args []Token) (Value, error) {
	tokens, err := singleTokenArgs(name, args)
	if err != nil {
		return nil, err
	}
	ident := func(t Token) (string, bool) {
		id, ok := t.(pa.Ident)
		return id.Value, ok
	}
	counterName, ok := ident(tokens[0])
	if !ok {
		return nil, errs.Syntaxf("expected a counter name in %s()", name)
	}
	if name == "counter" {
		out := &Counter{Name: counterName}
		switch len(tokens) {
		case 1:
		case 2:
			if out.Style, ok = ident(tokens[1]); !ok {
				return nil, errs.Syntaxf("expected a counter style in counter()")
			}
		default:
			return nil, errs.Syntaxf("invalid number of arguments for counter()")
		}
		return out, nil
	}
	out := &Counters{Name: counterName}
	if len(tokens) != 2 && len(tokens) != 3 {
		return nil, errs.Syntaxf("invalid number of arguments for counters()")
	}
	sep, ok := tokens[1].(pa.String)
	if !ok {
		return nil, errs.Syntaxf("expected a string separator in counters()")
	}
	out.Separator = sep.Value
	if len(tokens) == 3 {
		if out.Style, ok = ident(tokens[2]); !ok {
			return nil, errs.Syntaxf("expected a counter style in counters()")
		}
	}
	return out, nil
}

func parseCubicBezier(args []Token) (*CubicBezier, error) {
	tokens, err := singleTokenArgs("cubic-bezier", args)
	if err != nil {
		return nil, err
	}
	if len(tokens) != 4 {
		return nil, errs.Syntaxf("expected 4 arguments for cubic-bezier()")
	}
	var values [4]float64
	for i, token := range tokens {
		n, ok := token.(pa.Number)
		if !ok {
			return nil, errs.Syntaxf("expected a number in cubic-bezier(), got %s", tokenText(token))
		}
		values[i] = n.ValueF
	}
	if values[0] < 0 || values[0] > 1 || values[2] < 0 || values[2] > 1 {
		return nil, errs.Syntaxf("x values of cubic-bezier() must be in [0, 1]")
	}
	return &CubicBezier{X1: values[0], Y1: values[1], X2: values[2], Y2: values[3]}, nil
}

var stepPositions = utils.NewSet("jump-start", "jump-end", "jump-none", "jump-both", "start", "end")

func parseSteps(args []Token) (*Steps, error) {
	tokens, err := singleTokenArgs("steps", args)
	if err != nil {
		return nil, err
	}
	if len(tokens) > 2 {
		return nil, errs.Syntaxf("invalid number of arguments for steps()")
	}
	n, ok := tokens[0].(pa.Number)
	if !ok || !n.IsInt() || n.ValueF < 1 {
		return nil, errs.Syntaxf("expected a positive integer in steps(), got %s", tokenText(tokens[0]))
	}
	out := &Steps{Count: int(n.ValueF)}
	if len(tokens) == 2 {
		id, ok := tokens[1].(pa.Ident)
		if !ok || !stepPositions.Has(utils.AsciiLower(id.Value)) {
			return nil, errs.Syntaxf("invalid steps() position %s", tokenText(tokens[1]))
		}
		out.Position = utils.AsciiLower(id.Value)
		if out.Position == "jump-none" && out.Count < 2 {
			return nil, errs.Syntaxf("steps() with jump-none requires at least 2 steps")
		}
	}
	return out, nil
}

func parseRect(args []Token) (*Rect, error) {
	out := &Rect{}
	var tokens []Token
	if parts := pa.SplitOnComma(args); len(parts) > 1 {
		var err error
		if tokens, err = singleTokenArgs("rect", args); err != nil {
			return nil, err
		}
		out.Commas = true
	} else {
		tokens = pa.RemoveWhitespace(args)
	}
	if len(tokens) != 4 {
		return nil, errs.Syntaxf("expected 4 arguments for rect()")
	}
	for i, token := range tokens {
		v, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		switch v := v.(type) {
		case *Ident:
			if !utils.AsciiEqualFold(v.Value, "auto") {
				return nil, errs.Syntaxf("invalid rect() side %s", v.Value)
			}
		case *Numeric:
			if cat := v.Unit.Category(); cat != units.CatLength && !(cat == units.CatNumber && v.Value == 0) {
				return nil, errs.Syntaxf("invalid rect() side %s", CssText(v))
			}
		case *Expression, *MathFunction:
		default:
			return nil, errs.Syntaxf("invalid rect() side %s", CssText(v))
		}
		out.Sides[i] = v
	}
	return out, nil
}

func parseElement(args []Token) (*ElementReference, error) {
	args = pa.RemoveWhitespace(args)
	if len(args) == 1 {
		if h, ok := args[0].(pa.Hash); ok && h.IsIdentifier() {
			return &ElementReference{ID: h.Value}, nil
		}
	}
	return nil, errs.Syntaxf("expected an #id in element()")
}

func parseEnv(args []Token) (*EnvReference, error) {
	parts := pa.SplitOnComma(args)
	head := pa.RemoveWhitespace(parts[0])
	if len(head) == 0 {
		return nil, errs.Syntaxf("missing name in env()")
	}
	ident, ok := head[0].(pa.Ident)
	if !ok {
		return nil, errs.Syntaxf("expected a name in env(), got %s", tokenText(head[0]))
	}
	out := &EnvReference{Name: ident.Value}
	for _, token := range head[1:] {
		n, ok := token.(pa.Number)
		if !ok || !n.IsInt() || n.ValueF < 0 {
			return nil, errs.Syntaxf("expected a non negative integer in env(), got %s", tokenText(token))
		}
		out.Indices = append(out.Indices, int(n.ValueF))
	}
	if len(parts) > 1 {
		fallback := pa.TrimWhitespace(args[len(parts[0])+1:])
		if len(fallback) != 0 {
			fb, err := Parse(fallback)
			if err != nil {
				return nil, err
			}
			out.Fallback = fb
		}
	}
	return out, nil
}

// constants accepted in calc()
func calcConstant(name string) (float64, bool) {
	switch utils.AsciiLower(name) {
	case "pi":
		return math.Pi, true
	case "-pi":
		return -math.Pi, true
	case "e":
		return math.E, true
	case "-e":
		return -math.E, true
	case "infinity":
		return math.Inf(1), true
	case "-infinity":
		return math.Inf(-1), true
	case "nan":
		return math.NaN(), true
	}
	return 0, false
}
