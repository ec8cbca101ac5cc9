package utils

import "testing"

func TestFormatFloat(t *testing.T) {
	for _, test := range []struct {
		f        Fl
		expected string
		minified string
	}{
		{0, "0", "0"},
		{-0.0000001, "-1e-07", "-1e-7"},
		{1, "1", "1"},
		{0.5, "0.5", ".5"},
		{-0.25, "-0.25", "-.25"},
		{1.0000001, "1", "1"},
		{33.3333333, "33.333333", "33.333333"},
		{-0.0000004, "-4e-07", "-4e-7"},
		{1e21, "1e+21", "1e21"},
		{123456, "123456", "123456"},
	} {
		if got := FormatFloat(test.f); got != test.expected {
			t.Fatalf("FormatFloat(%v): expected %s, got %s", test.f, test.expected, got)
		}
		if got := MinifyFloat(FormatFloat(test.f)); got != test.minified {
			t.Fatalf("MinifyFloat(%v): expected %s, got %s", test.f, test.minified, got)
		}
	}
}

func TestFloatModulo(t *testing.T) {
	if got := FloatModulo(-30.5, 360); got != 329.5 {
		t.Fatalf("expected 329.5, got %v", got)
	}
	if got := FloatModulo(370, 360); got != 10 {
		t.Fatalf("expected 10, got %v", got)
	}
}

func TestAscii(t *testing.T) {
	if AsciiLower("RebeccaPURPLE-É") != "rebeccapurple-É" {
		t.Fatal("unexpected lower case")
	}
	if !AsciiEqualFold("Color-Mix", "color-mix") || AsciiEqualFold("a", "ab") {
		t.Fatal("unexpected comparison")
	}
	if !NewSet("a", "b").Has("b") || NewSet("a").Has("A") {
		t.Fatal("unexpected set")
	}
}
