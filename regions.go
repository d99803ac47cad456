package fractarium

import (
	"fmt"
	"math"
	"strings"
)

// Region is a rectangle on the plane.
type Region struct {
	Name       string
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Classic landmarks of the Mandelbrot set
var (
	// dense filaments and repeating "seahorse" curls
	SeahorseValley = Region{
		Name: "seahorse-valley",
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// large bulb with trunk-like tendrils
	ElephantValley = Region{
		Name: "elephant-valley",
		Xmin: 0.25,
		Xmax: 0.35,
		Ymin: -0.05,
		Ymax: 0.05,
	}

	// small copy with tight spiral arms
	SpiralMinibrot = Region{
		Name: "spiral-minibrot",
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// threefold spiral structure
	TripleSpiral = Region{
		Name: "triple-spiral",
		Xmin: -0.0880,
		Xmax: -0.0850,
		Ymin: 0.6540,
		Ymax: 0.6570,
	}

	ValleyOfTheDragon = Region{
		Name: "valley-of-the-dragon",
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// self-similar copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Name: "minibrot-in-mini-spiral",
		Xmin: -1.7690,
		Xmax: -1.7675,
		Ymin: -0.0015,
		Ymax: 0.0015,
	}
)

// Regions lists the landmarks in a stable order.
func Regions() []Region {
	return []Region{
		SeahorseValley,
		ElephantValley,
		SpiralMinibrot,
		TripleSpiral,
		ValleyOfTheDragon,
		MinibrotInMiniSpiral,
	}
}

// RegionByName looks a landmark up by its name, ignoring case.
func RegionByName(name string) (Region, error) {
	for _, r := range Regions() {
		if strings.EqualFold(r.Name, name) {
			return r, nil
		}
	}
	return Region{}, fmt.Errorf("region %q: %w", name, ErrInvalidFormat)
}

// Center returns the midpoint of the region.
func (r Region) Center() Complex {
	return Complex{Real: (r.Xmin + r.Xmax) / 2, Imag: (r.Ymin + r.Ymax) / 2}
}

// Parameters fits the whole region into a width x height image.
func (r Region) Parameters(width, height, iterationLimit int) (Parameters, error) {
	dx, dy := r.Xmax-r.Xmin, r.Ymax-r.Ymin
	if dx <= 0 || dy <= 0 {
		return Parameters{}, fmt.Errorf("region %q is empty: %w", r.Name, ErrConfigurationInvalid)
	}
	scale := math.Floor(math.Min(float64(width)/dx, float64(height)/dy))
	p := Parameters{
		Width:          width,
		Height:         height,
		IterationLimit: iterationLimit,
		Scale:          uint64(max(scale, 1)),
		Midpoint:       r.Center(),
	}
	return p, p.Validate()
}
