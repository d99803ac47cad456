package main

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/marben/fractarium"
)

func TestParseFlags(t *testing.T) {
	opts, view, err := parseFlags([]string{
		"-o", "julia.png",
		"-width", "120",
		"-formula", "julia",
		"-julia", "-0.8+0.156i",
		"-preset", "ice",
		"-thumb", "60",
	}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if opts.out != "julia.png" || opts.thumb != 60 || opts.zoomFactor != 2 {
		t.Errorf("options = %+v", opts)
	}
	if view.Params.Width != 120 || view.Params.Height != fractarium.DefaultParameters().Height {
		t.Errorf("geometry = %+v", view.Params)
	}
	want := fractarium.Selection{Formula: fractarium.Julia, Julia: fractarium.Complex{Real: -0.8, Imag: 0.156}, Exponent: 2}
	if view.Selection != want {
		t.Errorf("selection = %+v, want %+v", view.Selection, want)
	}
	ice, _ := fractarium.PresetPalette("ice")
	if got := view.Palette.Hex(); got[1] != ice.Hex()[1] {
		t.Errorf("palette = %v, want the ice preset", got)
	}
}

func TestParseFlagsViewQuery(t *testing.T) {
	base := fractarium.DefaultView()
	base.Params.Scale = 999
	base.Selection.Formula = fractarium.Tricorn

	_, view, err := parseFlags([]string{"-view", "?" + base.Query().Encode(), "-iterations", "42"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if view.Params.Scale != 999 || view.Selection.Formula != fractarium.Tricorn {
		t.Errorf("view from -view = %+v %+v", view.Params, view.Selection)
	}
	if view.Params.IterationLimit != 42 {
		t.Errorf("-iterations did not override -view: %d", view.Params.IterationLimit)
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"bad formula", []string{"-formula", "newton"}, fractarium.ErrInvalidFormat},
		{"zero height", []string{"-height", "0"}, fractarium.ErrConfigurationInvalid},
		{"bad view", []string{"-view", "width=x"}, fractarium.ErrInvalidFormat},
		{"bad preview", []string{"-preview", "sideways"}, nil},
		{"unknown flag", []string{"-nope"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseFlags(tt.args, io.Discard)
			if err == nil {
				t.Fatal("parseFlags succeeded")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseFlagsList(t *testing.T) {
	var out bytes.Buffer
	_, _, err := parseFlags([]string{"-list"}, &out)
	if !errors.Is(err, errListed) {
		t.Fatalf("error = %v, want errListed", err)
	}
	for _, want := range []string{"burning-ship-julia", "Tricorn set", "seahorse-valley", "rainbow"} {
		if !bytes.Contains(out.Bytes(), []byte(want)) {
			t.Errorf("-list output lacks %q:\n%s", want, out.String())
		}
	}
}

func TestParsePixel(t *testing.T) {
	x, y, err := parsePixel("10, 20.5")
	if err != nil || x != 10 || y != 20.5 {
		t.Errorf("parsePixel = %v, %v, %v", x, y, err)
	}
	for _, bad := range []string{"10", "a,1", "1,b", "", "NaN,1", "1,+Inf"} {
		if _, _, err := parsePixel(bad); err == nil {
			t.Errorf("parsePixel(%q) succeeded", bad)
		}
	}
}
