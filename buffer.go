package fractarium

import (
	"image"
	"image/color"
)

// Buffer is a row-major grid of packed ARGB pixels; Pix[0] is the top-left pixel.
// It implements image.Image with non-premultiplied alpha.
type Buffer struct {
	Width, Height int
	Pix           []uint32
}

// NewBuffer allocates a zeroed width x height buffer.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{Width: width, Height: height, Pix: make([]uint32, width*height)}
}

// ARGBAt returns the packed pixel at (x, y).
func (b *Buffer) ARGBAt(x, y int) uint32 {
	return b.Pix[x+y*b.Width]
}

func (b *Buffer) ColorModel() color.Model {
	return color.NRGBAModel
}

func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

func (b *Buffer) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(b.Bounds())) {
		return color.NRGBA{}
	}
	return unpackARGB(b.ARGBAt(x, y))
}

// NRGBA copies the buffer into an *image.NRGBA covering rect, which must lie
// inside the buffer.
func (b *Buffer) NRGBA(rect image.Rectangle) *image.NRGBA {
	img := image.NewNRGBA(rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetNRGBA(x, y, unpackARGB(b.ARGBAt(x, y)))
		}
	}
	return img
}

func unpackARGB(v uint32) color.NRGBA {
	return color.NRGBA{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}
