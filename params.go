package fractarium

import (
	"fmt"
	"math"
)

// Parameters describes the image geometry and the sampled window of the plane.
// A render treats it as read-only.
type Parameters struct {
	Width, Height  int
	IterationLimit int

	// Scale is the number of pixels per unit length on the plane.
	Scale uint64

	// Midpoint is the plane point drawn at pixel (Width/2, Height/2).
	Midpoint Complex
}

// DefaultParameters returns the geometry the applications start with.
func DefaultParameters() Parameters {
	return Parameters{
		Width:          800,
		Height:         600,
		IterationLimit: 100,
		Scale:          200,
	}
}

// Validate reports geometry that cannot be rendered.
func (p Parameters) Validate() error {
	switch {
	case p.Width <= 0:
		return fmt.Errorf("width %d: %w", p.Width, ErrConfigurationInvalid)
	case p.Height <= 0:
		return fmt.Errorf("height %d: %w", p.Height, ErrConfigurationInvalid)
	case p.IterationLimit <= 0:
		return fmt.Errorf("iteration limit %d: %w", p.IterationLimit, ErrConfigurationInvalid)
	case p.Scale == 0:
		return fmt.Errorf("scale 0: %w", ErrConfigurationInvalid)
	case p.Width > math.MaxInt/p.Height:
		return fmt.Errorf("%dx%d pixels overflow: %w", p.Width, p.Height, ErrConfigurationInvalid)
	}
	return nil
}

// PointAt maps a pixel position to the plane.
//
// The imaginary axis grows upwards: moving down one row subtracts 1/Scale
// from the imaginary part. Fractional pixel positions are allowed, which is
// what cursor tracking on a scaled display produces.
func (p Parameters) PointAt(x, y float64) Complex {
	scale := float64(p.Scale)
	return Complex{
		Real: (x-float64(p.Width/2))/scale + p.Midpoint.Real,
		Imag: p.Midpoint.Imag - (y-float64(p.Height/2))/scale,
	}
}

// PixelOf is the inverse of PointAt.
func (p Parameters) PixelOf(c Complex) (x, y float64) {
	scale := float64(p.Scale)
	x = (c.Real-p.Midpoint.Real)*scale + float64(p.Width/2)
	y = (p.Midpoint.Imag-c.Imag)*scale + float64(p.Height/2)
	return x, y
}

// ZoomIn recenters the view on at and multiplies the scale by factor.
// A scale that would not fit in a uint64 is rejected.
func (p Parameters) ZoomIn(at Complex, factor uint64) (Parameters, error) {
	if factor == 0 {
		return p, fmt.Errorf("zoom factor 0: %w", ErrConfigurationInvalid)
	}
	if p.Scale > math.MaxUint64/factor {
		return p, fmt.Errorf("scale %d times %d overflows: %w", p.Scale, factor, ErrConfigurationInvalid)
	}
	p.Midpoint = at
	p.Scale *= factor
	return p, nil
}

// ZoomOut recenters the view on at and divides the scale by factor.
// The scale never drops below 1.
func (p Parameters) ZoomOut(at Complex, factor uint64) (Parameters, error) {
	if factor == 0 {
		return p, fmt.Errorf("zoom factor 0: %w", ErrConfigurationInvalid)
	}
	p.Midpoint = at
	p.Scale = max(p.Scale/factor, 1)
	return p, nil
}
