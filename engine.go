package fractarium

import (
	"fmt"
	"math"
)

// DivergenceThreshold is the squared magnitude past which an orbit counts as escaped.
// It is well above the mathematical bound of 4 so the smoothing term is well behaved.
const DivergenceThreshold = 50

// stepFunc computes the next iterate from the current one (r, i), the previous
// one (lr, li) and the additive constant (cr, ci).
type stepFunc func(r, i, lr, li, cr, ci float64) (float64, float64)

// steps builds the recurrence of each formula. Only Phoenix reads the previous
// iterate, only the power formulas read the exponent.
var steps = [...]func(sel Selection) stepFunc{
	Mandelbrot:       func(Selection) stepFunc { return square },
	Julia:            func(Selection) stepFunc { return square },
	BurningShip:      burningShipPower,
	BurningShipJulia: burningShipPower,
	Tricorn:          func(Selection) stepFunc { return tricorn },
	Multibrot:        power,
	MultiJulia:       power,
	Phoenix:          phoenix,
}

func square(r, i, _, _, cr, ci float64) (float64, float64) {
	return r*r - i*i + cr, 2*r*i + ci
}

func burningShip(r, i, _, _, cr, ci float64) (float64, float64) {
	return r*r - i*i + cr, 2*math.Abs(r*i) + ci
}

// tricorn squares the conjugate of z.
func tricorn(r, i, _, _, cr, ci float64) (float64, float64) {
	return r*r - i*i + cr, -2*r*i + ci
}

func power(sel Selection) stepFunc {
	d := sel.Exponent
	return func(r, i, _, _, cr, ci float64) (float64, float64) {
		mag := math.Pow(r*r+i*i, d/2)
		sin, cos := math.Sincos(d * math.Atan2(i, r))
		return mag*cos + cr, mag*sin + ci
	}
}

// burningShipPower folds the imaginary part of z^d. Exponents 0 (unset) and 2
// keep the quadratic form.
func burningShipPower(sel Selection) stepFunc {
	d := sel.Exponent
	if d == 0 || d == 2 {
		return burningShip
	}
	return func(r, i, _, _, cr, ci float64) (float64, float64) {
		mag := math.Pow(r*r+i*i, d/2)
		sin, cos := math.Sincos(d * math.Atan2(i, r))
		return mag*cos + cr, math.Abs(mag*sin) + ci
	}
}

func phoenix(sel Selection) stepFunc {
	pr, pi := sel.Phoenix.Real, sel.Phoenix.Imag
	return func(r, i, lr, li, cr, ci float64) (float64, float64) {
		return r*r - i*i + cr + pr*lr - pi*li,
			2*r*i + ci + pr*li + pi*lr
	}
}

// Engine evaluates one formula for one render. It holds private copies of its
// inputs and is safe for concurrent use by the render workers.
type Engine struct {
	params  Parameters
	palette *Palette
	sel     Selection
	step    stepFunc
}

// NewEngine validates the inputs and binds them for a render. The palette is
// copied, so later edits to it do not affect the engine.
func NewEngine(params Parameters, palette *Palette, sel Selection) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if palette == nil {
		return nil, fmt.Errorf("nil palette: %w", ErrConfigurationInvalid)
	}
	if !sel.Formula.valid() {
		return nil, fmt.Errorf("formula %d: %w", int(sel.Formula), ErrConfigurationInvalid)
	}
	return &Engine{
		params:  params,
		palette: palette.Clone(),
		sel:     sel,
		step:    steps[sel.Formula](sel),
	}, nil
}

// Parameters returns the geometry the engine was built with.
func (e *Engine) Parameters() Parameters {
	return e.params
}

// Escape iterates point until it escapes or the iteration limit is reached.
// It returns the number of steps taken, counting the escaping step, the last
// iterate and whether the orbit escaped.
func (e *Engine) Escape(point Complex) (n int, z Complex, escaped bool) {
	r, i := point.Real, point.Imag
	cr, ci := point.Real, point.Imag
	if e.sel.Formula.usesJuliaConstant() {
		cr, ci = e.sel.Julia.Real, e.sel.Julia.Imag
	}
	if e.sel.Formula == Phoenix {
		r = -r
	}

	var lr, li float64
	for n < e.params.IterationLimit {
		nr, ni := e.step(r, i, lr, li, cr, ci)
		lr, li = r, i
		r, i = nr, ni
		n++
		if r*r+i*i > DivergenceThreshold {
			return n, Complex{Real: r, Imag: i}, true
		}
	}
	return n, Complex{Real: r, Imag: i}, false
}

// Iterate returns the packed ARGB color of point: the element color for
// points that stay bounded, a gradient color picked by the smoothed escape
// count otherwise.
func (e *Engine) Iterate(point Complex) uint32 {
	n, z, escaped := e.Escape(point)
	if !escaped {
		return e.palette.ElementColor()
	}
	// smoothing starts from the index of the escaping step, which is n-1
	return e.palette.GradientColor(normalize(n-1, z) / float64(e.params.IterationLimit))
}

// normalize subtracts log2(log2|z|) from the step count, which removes the
// banding at whole iteration boundaries.
func normalize(n int, z Complex) float64 {
	mag := math.Sqrt(z.Real*z.Real + z.Imag*z.Imag)
	v := float64(n) - math.Log2(math.Log2(mag))
	if !(v > 0) {
		return 0
	}
	return v
}
