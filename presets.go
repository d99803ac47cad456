package fractarium

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var opaqueBlack = Color{0xFF, 0, 0, 0}

// RainbowPalette spreads n fully saturated hues around the color wheel,
// with a black element color.
func RainbowPalette(n int) (*Palette, error) {
	if n < MinColors || n > MaxColors {
		return nil, fmt.Errorf("rainbow of %d colors: %w", n, ErrBoundViolation)
	}
	p := &Palette{colors: []Color{opaqueBlack}}
	for i := 0; i < n; i++ {
		p.colors = append(p.colors, fromColorful(colorful.Hsv(360*float64(i)/float64(n), 1, 1)))
	}
	return p, nil
}

// BlendPalette walks from one color to another in CIE L*a*b* space in n steps,
// which keeps perceived brightness changing evenly. Alpha is taken from 'from'.
func BlendPalette(element, from, to Color, n int) (*Palette, error) {
	if n < MinColors || n > MaxColors {
		return nil, fmt.Errorf("blend of %d colors: %w", n, ErrBoundViolation)
	}
	a, b := toColorful(from), toColorful(to)
	p := &Palette{colors: []Color{element}}
	for i := 0; i < n; i++ {
		c := fromColorful(a.BlendLab(b, float64(i)/float64(n-1)).Clamped())
		c[Alpha] = from[Alpha]
		p.colors = append(p.colors, c)
	}
	return p, nil
}

// PresetNames lists the names PresetPalette understands.
func PresetNames() []string {
	return []string{"default", "rainbow", "fire", "ice"}
}

// PresetPalette returns a named palette.
func PresetPalette(name string) (*Palette, error) {
	switch strings.ToLower(name) {
	case "default":
		return DefaultPalette(), nil
	case "rainbow":
		return RainbowPalette(12)
	case "fire":
		return BlendPalette(opaqueBlack, Color{0xFF, 0x30, 0x00, 0x00}, Color{0xFF, 0xFF, 0xF0, 0x60}, 8)
	case "ice":
		return BlendPalette(opaqueBlack, Color{0xFF, 0x00, 0x10, 0x40}, Color{0xFF, 0xE0, 0xF8, 0xFF}, 8)
	}
	return nil, fmt.Errorf("palette preset %q: %w", name, ErrInvalidFormat)
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{
		R: float64(c[Red]) / 255,
		G: float64(c[Green]) / 255,
		B: float64(c[Blue]) / 255,
	}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.RGB255()
	return Color{0xFF, r, g, b}
}
