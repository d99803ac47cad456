package fractarium

import (
	"encoding/hex"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
)

const (
	// MinColors and MaxColors bound the number of gradient colors,
	// not counting the element color.
	MinColors = 2
	MaxColors = 100
)

// Byte positions within a Color.
const (
	Alpha = iota
	Red
	Green
	Blue
)

// Color holds alpha, red, green and blue in that order.
type Color [4]byte

// ParseColor reads an 8 digit AARRGGBB hex string.
func ParseColor(s string) (Color, error) {
	var c Color
	if len(s) != 2*len(c) {
		return c, fmt.Errorf("color %q: want 8 hex digits: %w", s, ErrInvalidFormat)
	}
	if _, err := hex.Decode(c[:], []byte(s)); err != nil {
		return c, fmt.Errorf("color %q: %v: %w", s, err, ErrInvalidFormat)
	}
	return c, nil
}

// ARGB packs the color with alpha in the most significant byte.
func (c Color) ARGB() uint32 {
	return uint32(c[Alpha])<<24 | uint32(c[Red])<<16 | uint32(c[Green])<<8 | uint32(c[Blue])
}

// Hex formats the color as AARRGGBB.
func (c Color) Hex() string {
	return strings.ToUpper(hex.EncodeToString(c[:]))
}

// Palette is an ordered list of colors. Index 0 is the element color, drawn for
// points that never escape; indices 1..Size form the gradient.
//
// A Palette is not safe for concurrent mutation. Renders work on a Clone.
type Palette struct {
	colors []Color
}

// NewPalette builds a palette from AARRGGBB strings, element color first.
func NewPalette(colors ...string) (*Palette, error) {
	if n := len(colors) - 1; n < MinColors || n > MaxColors {
		return nil, fmt.Errorf("palette with %d gradient colors, want %d..%d: %w", max(n, 0), MinColors, MaxColors, ErrBoundViolation)
	}
	p := &Palette{colors: make([]Color, 0, len(colors))}
	for _, s := range colors {
		c, err := ParseColor(s)
		if err != nil {
			return nil, err
		}
		p.colors = append(p.colors, c)
	}
	return p, nil
}

// DefaultPalette is black for the set, then blue, magenta, red, yellow and white.
func DefaultPalette() *Palette {
	p, err := NewPalette("FF000000", "FF0000FF", "FFFF00FF", "FFFF0000", "FFFFFF00", "FFFFFFFF")
	if err != nil {
		panic(err)
	}
	return p
}

// Size is the number of gradient colors.
func (p *Palette) Size() int {
	return len(p.colors) - 1
}

// Clone returns an independent copy.
func (p *Palette) Clone() *Palette {
	return &Palette{colors: slices.Clone(p.colors)}
}

// ElementColor is the packed color at index 0.
func (p *Palette) ElementColor() uint32 {
	return p.colors[0].ARGB()
}

// Hex lists all colors, element color first, in the format NewPalette accepts.
func (p *Palette) Hex() []string {
	out := make([]string, len(p.colors))
	for i, c := range p.colors {
		out[i] = c.Hex()
	}
	return out
}

// GradientColor interpolates linearly between neighbouring gradient colors.
// fraction 0 yields color 1 exactly and values towards 1 approach color Size.
func (p *Palette) GradientColor(fraction float64) uint32 {
	size := p.Size()
	switch {
	case !(fraction > 0):
		return p.colors[1].ARGB()
	case fraction >= 1:
		return p.colors[size].ARGB()
	}

	ratio := 1 / float64(size-1)
	i := int(math.Ceil(fraction / ratio))
	v := (fraction + ratio*float64(1-i)) / ratio
	v = min(max(v, 0), 1)
	if i >= size {
		i = size - 1
	}

	lo, hi := p.colors[i], p.colors[i+1]
	var out Color
	for ch := range out {
		d := float64(int(hi[ch]) - int(lo[ch]))
		out[ch] = byte(int(lo[ch]) + int(math.Round(v*d)))
	}
	return out.ARGB()
}

// AppendRandom adds an opaque color with random red, green and blue.
// It reports false, leaving the palette untouched, when it is full.
func (p *Palette) AppendRandom() bool {
	if p.Size() >= MaxColors {
		return false
	}
	rgb := rand.Uint32()
	p.colors = append(p.colors, Color{0xFF, byte(rgb >> 16), byte(rgb >> 8), byte(rgb)})
	return true
}

// DuplicateAt inserts a copy of color index right after it. Inserting shifts
// every later color, so the cost is linear in Size.
func (p *Palette) DuplicateAt(index int) bool {
	if p.Size() >= MaxColors || index < 0 || index >= len(p.colors) {
		return false
	}
	p.colors = slices.Insert(p.colors, index+1, p.colors[index])
	return true
}

// RemoveAt deletes gradient color index. The element color cannot be removed
// and the gradient never shrinks below MinColors. Linear in Size.
func (p *Palette) RemoveAt(index int) bool {
	if p.Size() <= MinColors || index < 1 || index >= len(p.colors) {
		return false
	}
	p.colors = slices.Delete(p.colors, index, index+1)
	return true
}

// Color returns color index, 0 being the element color.
func (p *Palette) Color(index int) (Color, error) {
	if err := p.checkIndex(index); err != nil {
		return Color{}, err
	}
	return p.colors[index], nil
}

// SetColor replaces color index.
func (p *Palette) SetColor(index int, c Color) error {
	if err := p.checkIndex(index); err != nil {
		return err
	}
	p.colors[index] = c
	return nil
}

// Byte returns one channel of a color; see Alpha, Red, Green and Blue.
func (p *Palette) Byte(colorIndex, byteIndex int) (byte, error) {
	if err := p.checkByte(colorIndex, byteIndex); err != nil {
		return 0, err
	}
	return p.colors[colorIndex][byteIndex], nil
}

// SetByte overwrites one channel of a color.
func (p *Palette) SetByte(colorIndex, byteIndex int, v byte) error {
	if err := p.checkByte(colorIndex, byteIndex); err != nil {
		return err
	}
	p.colors[colorIndex][byteIndex] = v
	return nil
}

func (p *Palette) checkIndex(index int) error {
	if index < 0 || index >= len(p.colors) {
		return fmt.Errorf("color index %d not in [0,%d]: %w", index, p.Size(), ErrBoundViolation)
	}
	return nil
}

func (p *Palette) checkByte(colorIndex, byteIndex int) error {
	if err := p.checkIndex(colorIndex); err != nil {
		return err
	}
	if byteIndex < 0 || byteIndex >= len(Color{}) {
		return fmt.Errorf("byte index %d not in [0,3]: %w", byteIndex, ErrBoundViolation)
	}
	return nil
}
