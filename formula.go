package fractarium

import (
	"fmt"
	"strings"
)

// Formula selects one of the escape-time recurrences.
type Formula int

const (
	Mandelbrot Formula = iota
	Julia
	Phoenix
	BurningShip
	BurningShipJulia
	Multibrot
	MultiJulia
	Tricorn
)

var formulaNames = [...]struct{ id, display string }{
	Mandelbrot:       {"mandelbrot", "Mandelbrot set"},
	Julia:            {"julia", "Julia set"},
	Phoenix:          {"phoenix", "Phoenix set"},
	BurningShip:      {"burning-ship", "Burning Ship set"},
	BurningShipJulia: {"burning-ship-julia", "Burning Ship Julia set"},
	Multibrot:        {"multibrot", "Multibrot set"},
	MultiJulia:       {"multi-julia", "Multi-Julia set"},
	Tricorn:          {"tricorn", "Tricorn set"},
}

// Formulas lists every formula in declaration order.
func Formulas() []Formula {
	out := make([]Formula, len(formulaNames))
	for i := range out {
		out[i] = Formula(i)
	}
	return out
}

// String returns the short identifier, e.g. "burning-ship".
func (f Formula) String() string {
	if !f.valid() {
		return fmt.Sprintf("Formula(%d)", int(f))
	}
	return formulaNames[f].id
}

// DisplayName returns the human readable name, e.g. "Burning Ship set".
func (f Formula) DisplayName() string {
	if !f.valid() {
		return f.String()
	}
	return formulaNames[f].display
}

// ParseFormula accepts either the identifier or the display name, ignoring
// case, spaces, dashes and underscores.
func ParseFormula(name string) (Formula, error) {
	key := normalizeFormulaName(name)
	for f, n := range formulaNames {
		if key == normalizeFormulaName(n.id) || key == normalizeFormulaName(n.display) {
			return Formula(f), nil
		}
	}
	return 0, fmt.Errorf("formula %q: %w", name, ErrInvalidFormat)
}

func normalizeFormulaName(s string) string {
	s = strings.ToLower(s)
	s = strings.TrimSuffix(s, " set")
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

func (f Formula) valid() bool {
	return f >= 0 && int(f) < len(formulaNames)
}

// usesJuliaConstant reports whether the constant J is added each step instead
// of the sampled point.
func (f Formula) usesJuliaConstant() bool {
	switch f {
	case Julia, Phoenix, BurningShipJulia, MultiJulia:
		return true
	}
	return false
}

// Selection is a formula together with the constants it may need.
// Constants a formula does not use are ignored.
type Selection struct {
	Formula  Formula
	Julia    Complex
	Phoenix  Complex
	Exponent float64
}

// DefaultSelection is the Mandelbrot set with exponent 2 and zero constants.
func DefaultSelection() Selection {
	return Selection{Formula: Mandelbrot, Exponent: 2}
}
