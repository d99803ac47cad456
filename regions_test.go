package fractarium

import (
	"errors"
	"testing"
)

func TestRegionByName(t *testing.T) {
	r, err := RegionByName("Seahorse-Valley")
	if err != nil {
		t.Fatal(err)
	}
	if r != SeahorseValley {
		t.Errorf("RegionByName = %+v, want %+v", r, SeahorseValley)
	}
	if _, err := RegionByName("atlantis"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("unknown region error = %v", err)
	}
}

func TestRegionParametersFit(t *testing.T) {
	const w, h = 800, 600
	const eps = 1e-6
	seen := map[string]bool{}
	for _, r := range Regions() {
		t.Run(r.Name, func(t *testing.T) {
			if seen[r.Name] {
				t.Fatalf("duplicate region name %q", r.Name)
			}
			seen[r.Name] = true

			p, err := r.Parameters(w, h, 100)
			if err != nil {
				t.Fatal(err)
			}
			if p.Midpoint != r.Center() {
				t.Errorf("midpoint %v, want %v", p.Midpoint, r.Center())
			}
			for _, corner := range []Complex{
				{Real: r.Xmin, Imag: r.Ymin},
				{Real: r.Xmax, Imag: r.Ymax},
			} {
				x, y := p.PixelOf(corner)
				if x < -eps || x > w+eps || y < -eps || y > h+eps {
					t.Errorf("corner %v lands on pixel (%v, %v), outside the image", corner, x, y)
				}
			}
		})
	}

	empty := Region{Name: "empty", Xmin: 1, Xmax: 1, Ymin: 0, Ymax: 1}
	if _, err := empty.Parameters(w, h, 100); !errors.Is(err, ErrConfigurationInvalid) {
		t.Errorf("empty region error = %v", err)
	}
}
