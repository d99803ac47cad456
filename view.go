package fractarium

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// View bundles everything a render needs.
type View struct {
	Params    Parameters
	Selection Selection
	Palette   *Palette
}

// DefaultView is the default geometry, formula and palette.
func DefaultView() View {
	return View{
		Params:    DefaultParameters(),
		Selection: DefaultSelection(),
		Palette:   DefaultPalette(),
	}
}

// Render draws the view with r.
func (v View) Render(ctx context.Context, r Renderer) (*Buffer, error) {
	return r.Render(ctx, v.Params, v.Palette, v.Selection)
}

// Query encodes the view as URL query parameters understood by ParseView.
func (v View) Query() url.Values {
	q := url.Values{}
	q.Set("width", strconv.Itoa(v.Params.Width))
	q.Set("height", strconv.Itoa(v.Params.Height))
	q.Set("iterations", strconv.Itoa(v.Params.IterationLimit))
	q.Set("scale", strconv.FormatUint(v.Params.Scale, 10))
	q.Set("midpoint", FormatComplex(v.Params.Midpoint))
	q.Set("formula", v.Selection.Formula.String())
	if v.Selection.Formula.usesJuliaConstant() {
		q.Set("julia", FormatComplex(v.Selection.Julia))
	}
	switch v.Selection.Formula {
	case Phoenix:
		q.Set("phoenix", FormatComplex(v.Selection.Phoenix))
	case Multibrot, MultiJulia, BurningShip, BurningShipJulia:
		q.Set("exponent", strconv.FormatFloat(v.Selection.Exponent, 'f', -1, 64))
	}
	if v.Palette != nil {
		q.Set("palette", strings.Join(v.Palette.Hex(), ","))
	}
	return q
}

// ParseView overrides the fields of base with the parameters present in q.
// "region" fits a landmark to the image size; explicit "scale" and "midpoint"
// win over it. "preset" picks a named palette, "palette" lists hex colors.
func ParseView(q url.Values, base View) (View, error) {
	v := base
	p := &v.Params

	var err error
	intField := func(name string, dst *int) {
		if s := q.Get(name); s != "" && err == nil {
			var n int
			if n, err = strconv.Atoi(s); err != nil {
				err = fmt.Errorf("%s %q: %w", name, s, ErrInvalidFormat)
				return
			}
			*dst = n
		}
	}
	complexField := func(name string, dst *Complex) {
		if s := q.Get(name); s != "" && err == nil {
			var c Complex
			// an unescaped '+' in a URL decodes as a space
			if c, err = ParseComplex(strings.ReplaceAll(s, " ", "+")); err != nil {
				err = fmt.Errorf("%s: %w", name, err)
				return
			}
			*dst = c
		}
	}

	intField("width", &p.Width)
	intField("height", &p.Height)
	intField("iterations", &p.IterationLimit)
	if name := q.Get("region"); name != "" && err == nil {
		var region Region
		if region, err = RegionByName(name); err == nil {
			var fitted Parameters
			if fitted, err = region.Parameters(p.Width, p.Height, p.IterationLimit); err == nil {
				p.Scale, p.Midpoint = fitted.Scale, fitted.Midpoint
			}
		}
	}
	if s := q.Get("scale"); s != "" && err == nil {
		if p.Scale, err = strconv.ParseUint(s, 10, 64); err != nil {
			err = fmt.Errorf("scale %q: %w", s, ErrInvalidFormat)
		}
	}
	complexField("midpoint", &p.Midpoint)

	if s := q.Get("formula"); s != "" && err == nil {
		v.Selection.Formula, err = ParseFormula(s)
	}
	complexField("julia", &v.Selection.Julia)
	complexField("phoenix", &v.Selection.Phoenix)
	if s := q.Get("exponent"); s != "" && err == nil {
		d, perr := strconv.ParseFloat(s, 64)
		if perr != nil || math.IsNaN(d) || math.IsInf(d, 0) {
			err = fmt.Errorf("exponent %q: %w", s, ErrInvalidFormat)
		} else {
			v.Selection.Exponent = d
		}
	}

	if s := q.Get("preset"); s != "" && err == nil {
		v.Palette, err = PresetPalette(s)
	}
	if s := q.Get("palette"); s != "" && err == nil {
		v.Palette, err = NewPalette(strings.Split(s, ",")...)
	}

	if err != nil {
		return base, err
	}
	if err := v.Params.Validate(); err != nil {
		return base, err
	}
	return v, nil
}
