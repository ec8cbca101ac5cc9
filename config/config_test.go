package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/benoitkugler/cssom/css/color"
	tu "github.com/benoitkugler/cssom/utils/testutils"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cssvalue.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	opts, err := Load("")
	require.NoError(t, err)
	require.NoError(t, opts.Validate())
	tu.AssertEqual(t, opts.Version, 1)
	tu.AssertEqual(t, opts.Serialization.Minify, false)
	tu.AssertEqual(t, opts.Serialization.Tokenizer, TokenizerBuiltin)
	tu.AssertEqual(t, opts.Color.GamutEpsilon, color.DefaultGamutEpsilon)

	space, err := opts.InterpolationSpace()
	require.NoError(t, err)
	tu.AssertEqual(t, space, color.DefaultInterpolationSpace)
	level, err := opts.LogLevel()
	require.NoError(t, err)
	tu.AssertEqual(t, level, zapcore.InfoLevel)
}

func TestLoadOverlay(t *testing.T) {
	path := writeConfig(t, `
serialization:
  minify: true
color:
  interpolation_space: Display-P3
logging:
  level: debug
`)
	opts, err := Load(path)
	require.NoError(t, err)
	tu.AssertEqual(t, opts.Serialization.Minify, true)
	// untouched values keep their defaults
	tu.AssertEqual(t, opts.Serialization.Tokenizer, TokenizerBuiltin)
	tu.AssertEqual(t, opts.Color.GamutEpsilon, color.DefaultGamutEpsilon)

	space, err := opts.InterpolationSpace()
	require.NoError(t, err)
	tu.AssertEqual(t, space, color.DisplayP3)
}

func TestLoadErrors(t *testing.T) {
	for _, content := range []string{
		"unknown_key: 1",
		"serialization:\n  minifi: true",
		"version: 2",
		"serialization:\n  tokenizer: other",
		"color:\n  interpolation_space: cmyk",
		"color:\n  gamut_epsilon: -1",
		"logging:\n  level: verbose",
		"color: [",
	} {
		_, err := Load(writeConfig(t, content))
		require.Error(t, err, content)
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestDump(t *testing.T) {
	opts := Default()
	opts.Serialization.Minify = true
	data, err := Dump(opts)
	require.NoError(t, err)

	path := writeConfig(t, string(data))
	loaded, err := Load(path)
	require.NoError(t, err)
	tu.AssertEqual(t, loaded, opts)
}
