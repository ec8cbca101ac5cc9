package main

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/benoitkugler/cssom/config"
	"github.com/benoitkugler/cssom/css/color"
	"github.com/benoitkugler/cssom/css/errs"
	pa "github.com/benoitkugler/cssom/css/parser"
	"github.com/benoitkugler/cssom/css/syntax"
	"github.com/benoitkugler/cssom/css/values"
	"github.com/benoitkugler/cssom/logger"
)

func args(cmd *cli.Command, names ...string) ([]string, error) {
	if cmd.NArg() != len(names) {
		return nil, fmt.Errorf("expected %d argument(s) %v, got %d", len(names), names, cmd.NArg())
	}
	return cmd.Args().Slice(), nil
}

func (e *env) parse(text string, tdewolff bool) (values.Value, error) {
	var tokens []pa.Token
	if tdewolff || e.opts.Serialization.Tokenizer == config.TokenizerTdewolff {
		tokens = pa.TokenizeTdewolff([]byte(text), true)
	} else {
		tokens = pa.TokenizeString(text, true)
	}
	v, err := values.Parse(tokens)
	if err != nil {
		return nil, fmt.Errorf("invalid value %q: %w", text, err)
	}
	e.log.Debug("Parsed value", zap.Stringer("type", v.CssType()), zap.Stringer("kind", v.Kind()))
	return v, nil
}

func (e *env) serialize(v values.Value, minify bool) string {
	if minify || e.opts.Serialization.Minify {
		return values.MinifiedCssText(v)
	}
	return values.CssText(v)
}

func runParse(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	in, err := args(cmd, "VALUE")
	if err != nil {
		return err
	}
	v, err := e.parse(in[0], cmd.Bool("tdewolff"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output(cmd), e.serialize(v, cmd.Bool("minify")))
	return err
}

func runMatch(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	in, err := args(cmd, "VALUE")
	if err != nil {
		return err
	}
	s, err := syntax.Parse(cmd.String("syntax"))
	if err != nil {
		return fmt.Errorf("invalid syntax: %w", err)
	}
	v, err := e.parse(in[0], false)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output(cmd), s.Match(v))
	return err
}

// parseColor accepts color values and named colors
func (e *env) parseColor(text string) (color.Color, error) {
	v, err := e.parse(text, false)
	if err != nil {
		return color.Color{}, err
	}
	c, err := values.ToColor(v)
	if err != nil {
		return color.Color{}, fmt.Errorf("%q: %w", text, err)
	}
	return c, nil
}

func runConvert(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	in, err := args(cmd, "COLOR")
	if err != nil {
		return err
	}
	space, ok := color.ParseSpace(cmd.String("to"))
	if !ok {
		return errs.NotSupportedf("unknown color space %q", cmd.String("to"))
	}
	c, err := e.parseColor(in[0])
	if err != nil {
		return err
	}
	converted := c.Convert(space)
	if !converted.InGamutEpsilon(space, e.opts.Color.GamutEpsilon) {
		e.log.Warn("Color is out of gamut", zap.String("color", in[0]), zap.Stringer("space", space))
	}
	_, err = fmt.Fprintln(output(cmd), e.serialize(values.FromColor(converted), false))
	return err
}

func runMix(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	in, err := args(cmd, "COLOR-MIX")
	if err != nil {
		return err
	}
	v, err := e.parse(in[0], false)
	if err != nil {
		return err
	}
	mix, ok := v.(*values.ColorMix)
	if !ok {
		return errs.TypeMismatchf("expected a color-mix() expression, got %s", v.Kind())
	}
	if !mix.HasSpace {
		if mix.Space, err = e.opts.InterpolationSpace(); err != nil {
			return err
		}
		mix.HasSpace = true
	}
	res, err := mix.Resolve()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output(cmd), e.serialize(res, false))
	return err
}

func runDelta(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	in, err := args(cmd, "COLOR1", "COLOR2")
	if err != nil {
		return err
	}
	c1, err := e.parseColor(in[0])
	if err != nil {
		return err
	}
	c2, err := e.parseColor(in[1])
	if err != nil {
		return err
	}
	var d float64
	if cmd.Bool("ok") {
		d = color.DeltaEOK(c1, c2)
	} else {
		d = color.DeltaE2000(c1, c2)
	}
	_, err = fmt.Fprintf(output(cmd), "%.4f\n", d)
	return err
}

// reportHandler logs each invalid declaration and keeps track of them
type reportHandler struct {
	log     values.LogHandler
	collect values.CollectHandler
}

func (h *reportHandler) Report(property, value string, err error) {
	h.log.Report(property, value, err)
	h.collect.Report(property, value, err)
}

func runCheck(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	in, err := args(cmd, "FILE")
	if err != nil {
		return err
	}
	var data []byte
	if in[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(in[0])
	}
	if err != nil {
		return fmt.Errorf("unable to read declarations: %w", err)
	}

	handler := &reportHandler{log: values.LogHandler{Logger: logger.WarningLogger}}
	decls := values.ParseDeclarations(string(data), handler)
	invalid := handler.collect.Errors()
	e.log.Info("Checked declarations", zap.String("file", in[0]), zap.Int("valid", len(decls)), zap.Int("invalid", len(invalid)))

	w := output(cmd)
	for _, decl := range decls {
		important := ""
		if decl.Important {
			important = " !important"
		}
		if _, err := fmt.Fprintf(w, "%s: %s%s\n", decl.Property, e.serialize(decl.Value, false), important); err != nil {
			return err
		}
	}
	if len(invalid) != 0 {
		return fmt.Errorf("%d invalid declaration(s): %w", len(invalid), handler.collect.Err())
	}
	return nil
}
