// Command cssvalue parses, matches and converts CSS property values.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benoitkugler/cssom/config"
	"github.com/benoitkugler/cssom/logger"
	"github.com/benoitkugler/cssom/version"
)

// env is shared by the commands, and prepared once
// the command line has been parsed
type env struct {
	opts *config.Options
	log  *zap.Logger
}

type envKey struct{}

func contextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &env{})
}

func envFromContext(ctx context.Context) *env {
	if e, ok := ctx.Value(envKey{}).(*env); ok {
		return e
	}
	return &env{opts: config.Default(), log: zap.NewNop()}
}

func initializeEnv(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	e := envFromContext(ctx)

	var err error
	configFile := cmd.String("config")
	if e.opts, err = config.Load(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	level, err := e.opts.LogLevel()
	if err != nil {
		return ctx, err
	}
	if cmd.Bool("debug") {
		level = zapcore.DebugLevel
	}
	logger.SetLevel(level)
	e.log = logger.ProgressLogger.Named("cli")

	e.log.Debug("Program started", zap.Strings("args", cmd.Args().Slice()), zap.String("ver", version.Version))
	if configFile == "" {
		e.log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyEnv(ctx context.Context, _ *cli.Command) error {
	e := envFromContext(ctx)
	if e.log != nil {
		_ = e.log.Sync()
	}
	return nil
}

var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	e := envFromContext(ctx)
	if e.log != nil {
		e.log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

// output returns the writer of the root command
func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:            "cssvalue",
		Usage:           "parses, validates and converts CSS property values",
		Version:         version.VersionString,
		HideHelpCommand: true,
		Before:          initializeEnv,
		After:           destroyEnv,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log at debug level"},
		},
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "Parses a value and prints its canonical serialization",
				ArgsUsage: "VALUE",
				Action:    runParse,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "minify", Aliases: []string{"m"}, Usage: "use the minified serialization"},
					&cli.BoolFlag{Name: "tdewolff", Usage: "tokenize with the tdewolff CSS lexer"},
				},
			},
			{
				Name:      "match",
				Usage:     "Matches a value against a registered property syntax (TRUE, FALSE or PENDING)",
				ArgsUsage: "VALUE",
				Action:    runMatch,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "syntax", Aliases: []string{"s"}, Required: true, Usage: "`GRAMMAR`, like '<length>+ | auto'"},
				},
			},
			{
				Name:      "convert",
				Usage:     "Converts a color to another color space",
				ArgsUsage: "COLOR",
				Action:    runConvert,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to", Required: true, Usage: "destination color `SPACE`"},
				},
			},
			{
				Name:      "mix",
				Usage:     "Resolves a color-mix() expression",
				ArgsUsage: "COLOR-MIX",
				Action:    runMix,
			},
			{
				Name:      "delta",
				Usage:     "Prints the perceptual distance between two colors",
				ArgsUsage: "COLOR1 COLOR2",
				Action:    runDelta,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "ok", Usage: "use deltaEOK instead of deltaE2000"},
				},
			},
			{
				Name:      "check",
				Usage:     "Parses a declaration block and reports the invalid declarations",
				ArgsUsage: "FILE",
				Action:    runCheck,
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(contextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	var err error
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = newApp().Run(ctx, os.Args)
}
