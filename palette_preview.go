package fractarium

import (
	"fmt"
	"math"
)

// DrawContinuousPreview paints the interpolated gradient into buf, one
// GradientColor sample per column, framed by a one pixel element color border.
func (p *Palette) DrawContinuousPreview(width, height int, buf []uint32) error {
	return p.drawPreview(width, height, buf, func(x int) uint32 {
		return p.GradientColor(float64(x) / float64(width))
	})
}

// DrawDiscretePreview splits the width into Size equal bands and paints each
// with its stored color, without interpolation.
func (p *Palette) DrawDiscretePreview(width, height int, buf []uint32) error {
	size := p.Size()
	return p.drawPreview(width, height, buf, func(x int) uint32 {
		band := min(x*size/width, size-1)
		return p.colors[1+band].ARGB()
	})
}

func (p *Palette) drawPreview(width, height int, buf []uint32, column func(x int) uint32) error {
	if width <= 0 || height <= 0 || width > math.MaxInt/height {
		return fmt.Errorf("preview %dx%d: %w", width, height, ErrConfigurationInvalid)
	}
	if len(buf) < width*height {
		return fmt.Errorf("preview buffer holds %d pixels, need %d: %w", len(buf), width*height, ErrBoundViolation)
	}

	element := p.ElementColor()
	for x := 0; x < width; x++ {
		c := column(x)
		for y := 0; y < height; y++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				buf[x+y*width] = element
				continue
			}
			buf[x+y*width] = c
		}
	}
	return nil
}
