package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tu "github.com/benoitkugler/cssom/utils/testutils"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	app.ErrWriter = &buf
	err := app.Run(contextWithEnv(context.Background()), append([]string{"cssvalue"}, args...))
	return buf.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCommand(t *testing.T) {
	for _, test := range []struct {
		args     []string
		expected string
	}{
		{[]string{"parse", "calc(1px + 2px)"}, "calc(1px + 2px)\n"},
		{[]string{"parse", "--minify", "0.5px"}, ".5px\n"},
		{[]string{"parse", "--tdewolff", "rgb(255 0 0 / 50%)"}, "rgb(255 0 0 / 50%)\n"},
		{[]string{"parse", "attr(width px, 20em)"}, "attr(width px, 20em)\n"},
	} {
		out, err := run(t, test.args...)
		require.NoError(t, err, test.args)
		tu.AssertEqual(t, out, test.expected)
	}

	_, err := run(t, "parse")
	require.Error(t, err)
	_, err = run(t, "parse", "rgb(")
	require.Error(t, err)
}

func TestMatchCommand(t *testing.T) {
	out, err := run(t, "match", "--syntax", "<length>", "attr(width px, 20em)")
	require.NoError(t, err)
	tu.AssertEqual(t, out, "TRUE\n")

	out, err = run(t, "match", "--syntax", "<percentage>", "attr(width px, 20em)")
	require.NoError(t, err)
	tu.AssertEqual(t, out, "FALSE\n")

	out, err = run(t, "match", "--syntax", "<color>", "color-mix(in srgb, var(--c), red)")
	require.NoError(t, err)
	tu.AssertEqual(t, out, "PENDING\n")

	_, err = run(t, "match", "--syntax", "<foo>", "1px")
	require.Error(t, err)
}

func TestColorCommands(t *testing.T) {
	out, err := run(t, "convert", "--to", "lab", "color(srgb 0.0314 0.24706 1 / 0.5)")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "lab(37.26"), out)
	require.True(t, strings.HasSuffix(out, "/ 0.5)\n"), out)

	_, err = run(t, "convert", "--to", "cmyk", "red")
	require.Error(t, err)
	_, err = run(t, "convert", "--to", "lab", "1px")
	require.Error(t, err)

	out, err = run(t, "mix", "color-mix(in srgb, white, black)")
	require.NoError(t, err)
	tu.AssertEqual(t, out, "rgb(50%, 50%, 50%)\n")

	// the configured interpolation space is used by default
	out, err = run(t, "mix", "color-mix(white, black)")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "oklab("), out)

	cfg := writeFile(t, "cfg.yaml", "color:\n  interpolation_space: srgb\n")
	out, err = run(t, "--config", cfg, "mix", "color-mix(white, black)")
	require.NoError(t, err)
	tu.AssertEqual(t, out, "rgb(50%, 50%, 50%)\n")

	_, err = run(t, "mix", "red")
	require.Error(t, err)

	out, err = run(t, "delta", "--ok", "#fff", "white")
	require.NoError(t, err)
	tu.AssertEqual(t, out, "0.0000\n")

	out, err = run(t, "delta", "lab(50 2.6772 -79.7751)", "lab(50 0 -82.7485)")
	require.NoError(t, err)
	tu.AssertEqual(t, out, "2.0425\n")
}

func TestCheckCommand(t *testing.T) {
	capture := tu.CaptureLogs()
	defer capture.Close()

	valid := writeFile(t, "valid.css", "width: 1px; color: red !important")
	out, err := run(t, "check", valid)
	require.NoError(t, err)
	tu.AssertEqual(t, out, "width: 1px\ncolor: red !important\n")

	invalid := writeFile(t, "invalid.css", "width: 1px; height: ; margin: calc(1px + )")
	out, err = run(t, "check", invalid)
	require.Error(t, err)
	require.Contains(t, err.Error(), "2 invalid declaration(s)")
	tu.AssertEqual(t, out, "width: 1px\n")

	var warnings int
	for _, line := range capture.Logs() {
		if strings.HasPrefix(line, "ignored declaration") {
			warnings++
		}
	}
	tu.AssertEqual(t, warnings, 2)

	_, err = run(t, "check", filepath.Join(t.TempDir(), "missing.css"))
	require.Error(t, err)

	_, err = run(t, "--config", writeFile(t, "bad.yaml", "version: 3"), "check", valid)
	require.Error(t, err)
}
