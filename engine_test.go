package fractarium

import (
	"errors"
	"testing"
)

func newTestEngine(t *testing.T, limit int, sel Selection) *Engine {
	t.Helper()
	params := Parameters{Width: 10, Height: 10, IterationLimit: limit, Scale: 1}
	e, err := NewEngine(params, DefaultPalette(), sel)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestNewEngineRejects(t *testing.T) {
	good := Parameters{Width: 1, Height: 1, IterationLimit: 1, Scale: 1}
	tests := []struct {
		name    string
		params  Parameters
		palette *Palette
		sel     Selection
	}{
		{"invalid geometry", Parameters{}, DefaultPalette(), DefaultSelection()},
		{"nil palette", good, nil, DefaultSelection()},
		{"unknown formula", good, DefaultPalette(), Selection{Formula: Formula(42)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEngine(tt.params, tt.palette, tt.sel); !errors.Is(err, ErrConfigurationInvalid) {
				t.Errorf("NewEngine error = %v, want ErrConfigurationInvalid", err)
			}
		})
	}
}

func TestMandelbrotMembership(t *testing.T) {
	for _, limit := range []int{100, 1000} {
		e := newTestEngine(t, limit, DefaultSelection())
		if got := e.Iterate(Complex{}); got != DefaultPalette().ElementColor() {
			t.Errorf("limit %d: Iterate(0) = %#08x, want the element color", limit, got)
		}
	}
}

func TestKnownEscape(t *testing.T) {
	e := newTestEngine(t, 100, DefaultSelection())
	n, _, escaped := e.Escape(Complex{Real: 2, Imag: 2})
	if !escaped || n > 3 {
		t.Errorf("Escape(2+2i) = %d, %v, want escape within 3 steps", n, escaped)
	}
	// fast escapes smooth to the bottom of the gradient
	if got := e.Iterate(Complex{Real: 2, Imag: 2}); got != 0xFF0000FF {
		t.Errorf("Iterate(2+2i) = %#08x, want 0xff0000ff", got)
	}
}

func TestFormulaEscapeCounts(t *testing.T) {
	const limit = 100
	tests := []struct {
		name        string
		sel         Selection
		point       Complex
		wantN       int
		wantEscaped bool
	}{
		{"mandelbrot 1+i", DefaultSelection(), Complex{Real: 1, Imag: 1}, 2, true},
		{"tricorn 1+i", Selection{Formula: Tricorn}, Complex{Real: 1, Imag: 1}, 3, true},
		{"mandelbrot 1-i", DefaultSelection(), Complex{Real: 1, Imag: -1}, 2, true},
		{"burning ship 1-i", Selection{Formula: BurningShip}, Complex{Real: 1, Imag: -1}, limit, false},
		{"mandelbrot 1", DefaultSelection(), Complex{Real: 1}, 3, true},
		{"multibrot d=3 at 1", Selection{Formula: Multibrot, Exponent: 3}, Complex{Real: 1}, 2, true},
		{"multibrot d=2 at 2+2i", Selection{Formula: Multibrot, Exponent: 2}, Complex{Real: 2, Imag: 2}, 1, true},
		{"julia 0 at 0.5", Selection{Formula: Julia}, Complex{Real: 0.5}, limit, false},
		{"julia 0 at 2", Selection{Formula: Julia}, Complex{Real: 2}, 2, true},
		{"julia 1+i at 0", Selection{Formula: Julia, Julia: Complex{Real: 1, Imag: 1}}, Complex{}, 3, true},
		{"burning ship d=2 at 1-i", Selection{Formula: BurningShip, Exponent: 2}, Complex{Real: 1, Imag: -1}, limit, false},
		{"burning ship d=3 at 1-i", Selection{Formula: BurningShip, Exponent: 3}, Complex{Real: 1, Imag: -1}, 3, true},
		{"multibrot d=3 at 1-i", Selection{Formula: Multibrot, Exponent: 3}, Complex{Real: 1, Imag: -1}, 2, true},
		{"burning ship at 0", Selection{Formula: BurningShip}, Complex{}, limit, false},
		{"burning ship julia 1+i at 0", Selection{Formula: BurningShipJulia, Julia: Complex{Real: 1, Imag: 1}}, Complex{}, 3, true},
		{"burning ship julia 1-i at 0", Selection{Formula: BurningShipJulia, Julia: Complex{Real: 1, Imag: -1}}, Complex{}, limit, false},
		{"julia 1-i at 0", Selection{Formula: Julia, Julia: Complex{Real: 1, Imag: -1}}, Complex{}, 3, true},
		{"burning ship julia d=3 1 at 0", Selection{Formula: BurningShipJulia, Julia: Complex{Real: 1}, Exponent: 3}, Complex{}, 3, true},
		{"multibrot d=3 at 0", Selection{Formula: Multibrot, Exponent: 3}, Complex{}, limit, false},
		{"multi-julia d=3 1 at 0", Selection{Formula: MultiJulia, Julia: Complex{Real: 1}, Exponent: 3}, Complex{}, 3, true},
		{"multi-julia d=3 0 at 1", Selection{Formula: MultiJulia, Exponent: 3}, Complex{Real: 1}, limit, false},
		{"tricorn at 0", Selection{Formula: Tricorn}, Complex{}, limit, false},
		{"phoenix at 0", Selection{Formula: Phoenix}, Complex{}, limit, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, limit, tt.sel)
			n, _, escaped := e.Escape(tt.point)
			if n != tt.wantN || escaped != tt.wantEscaped {
				t.Errorf("Escape(%v) = %d, %v, want %d, %v", tt.point, n, escaped, tt.wantN, tt.wantEscaped)
			}
		})
	}
}

func TestIterateSmoothsFromEscapingStep(t *testing.T) {
	e := newTestEngine(t, 100, DefaultSelection())
	point := Complex{Real: 0.3, Imag: 0.6}

	n, z, escaped := e.Escape(point)
	if !escaped || n != 15 {
		t.Fatalf("Escape(%v) = %d, %v, want 15, true", point, n, escaped)
	}
	want := DefaultPalette().GradientColor(normalize(n-1, z) / 100)
	if got := e.Iterate(point); got != want || got != 0xFF7C00FF {
		t.Errorf("Iterate(%v) = %#08x, want %#08x and 0xff7c00ff", point, got, want)
	}
}

func TestPhoenixWithoutPhoenixConstantMirrorsJulia(t *testing.T) {
	j := Complex{Real: -0.4, Imag: 0.6}
	phoenix := newTestEngine(t, 200, Selection{Formula: Phoenix, Julia: j})
	julia := newTestEngine(t, 200, Selection{Formula: Julia, Julia: j})

	for _, p := range []Complex{
		{Real: 0.3, Imag: 0.1},
		{Real: -1.2, Imag: 0.4},
		{Real: 0.9, Imag: -0.9},
		{Real: 0.05, Imag: 0.7},
	} {
		pn, pz, pe := phoenix.Escape(p)
		jn, jz, je := julia.Escape(Complex{Real: -p.Real, Imag: p.Imag})
		if pn != jn || pz != jz || pe != je {
			t.Errorf("at %v: phoenix %d %v %v, julia at mirrored point %d %v %v", p, pn, pz, pe, jn, jz, je)
		}
	}
}

func TestPhoenixConstantChangesOrbit(t *testing.T) {
	j := Complex{Real: 0.5667}
	plain := newTestEngine(t, 200, Selection{Formula: Phoenix, Julia: j})
	withP := newTestEngine(t, 200, Selection{Formula: Phoenix, Julia: j, Phoenix: Complex{Real: -0.5}})

	differs := false
	for y := -1.0; y <= 1; y += 0.125 {
		for x := -1.5; x <= 1.5; x += 0.125 {
			a, _, _ := plain.Escape(Complex{Real: x, Imag: y})
			b, _, _ := withP.Escape(Complex{Real: x, Imag: y})
			if a != b {
				differs = true
			}
		}
	}
	if !differs {
		t.Error("the Phoenix constant had no effect on any sampled point")
	}
}

func TestEngineSnapshotsPalette(t *testing.T) {
	p := DefaultPalette()
	e, err := NewEngine(Parameters{Width: 1, Height: 1, IterationLimit: 50, Scale: 1}, p, DefaultSelection())
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetColor(0, Color{0xFF, 1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if got := e.Iterate(Complex{}); got != 0xFF000000 {
		t.Errorf("Iterate(0) = %#08x after editing the source palette", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := normalize(1, Complex{Real: 100}); got != 0 {
		t.Errorf("normalize clamps to 0, got %v", got)
	}
	// log2(log2 16) = 2
	if got := normalize(10, Complex{Real: 16}); got != 8 {
		t.Errorf("normalize(10, 16) = %v, want 8", got)
	}
}
