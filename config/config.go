// Package config loads the options of the cssvalue command line tool.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
	yaml "gopkg.in/yaml.v3"

	"github.com/benoitkugler/cssom/css/color"
	"github.com/benoitkugler/cssom/css/errs"
)

//go:embed default.yaml
var defaultData []byte

type (
	SerializationConfig struct {
		Minify    bool   `yaml:"minify"`
		Tokenizer string `yaml:"tokenizer"`
	}

	ColorConfig struct {
		InterpolationSpace string  `yaml:"interpolation_space"`
		GamutEpsilon       float64 `yaml:"gamut_epsilon"`
	}

	LoggingConfig struct {
		Level string `yaml:"level"`
	}

	Options struct {
		Version       int                 `yaml:"version"`
		Serialization SerializationConfig `yaml:"serialization"`
		Color         ColorConfig         `yaml:"color"`
		Logging       LoggingConfig       `yaml:"logging"`
	}
)

const (
	TokenizerBuiltin  = "builtin"
	TokenizerTdewolff = "tdewolff"
)

func decode(data []byte, opts *Options) error {
	// only the fields defined above are accepted
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(opts); err != nil {
		return fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return nil
}

// Default returns the built-in options.
func Default() *Options {
	var opts Options
	if err := decode(defaultData, &opts); err != nil {
		panic(err)
	}
	return &opts
}

// Load reads the YAML file at path on top of the built-in options,
// and validates the result. An empty path returns the defaults.
func Load(path string) (*Options, error) {
	opts := Default()
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err = decode(data, opts); err != nil {
		return nil, err
	}
	if err = opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	return opts, nil
}

// Dump returns the YAML representation of opts.
func Dump(opts *Options) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(opts); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks the consistency of the options.
func (opts *Options) Validate() error {
	if opts.Version != 1 {
		return errs.NotSupportedf("unsupported configuration version %d", opts.Version)
	}
	switch opts.Serialization.Tokenizer {
	case TokenizerBuiltin, TokenizerTdewolff:
	default:
		return errs.Syntaxf("unknown tokenizer %q", opts.Serialization.Tokenizer)
	}
	if _, err := opts.InterpolationSpace(); err != nil {
		return err
	}
	if opts.Color.GamutEpsilon < 0 {
		return errs.Syntaxf("negative gamut epsilon %g", opts.Color.GamutEpsilon)
	}
	if _, err := opts.LogLevel(); err != nil {
		return err
	}
	return nil
}

// InterpolationSpace returns the color space used by color-mix()
// when none is given.
func (opts *Options) InterpolationSpace() (color.Space, error) {
	space, ok := color.ParseSpace(opts.Color.InterpolationSpace)
	if !ok {
		return 0, errs.NotSupportedf("unknown color space %q", opts.Color.InterpolationSpace)
	}
	return space, nil
}

// LogLevel returns the parsed logging level.
func (opts *Options) LogLevel() (zapcore.Level, error) {
	l, err := zapcore.ParseLevel(opts.Logging.Level)
	if err != nil {
		return 0, errs.Syntaxf("invalid log level %q", opts.Logging.Level)
	}
	return l, nil
}
