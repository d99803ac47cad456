package fractarium

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"
)

// FormatOf returns "tiff" for names ending in .tif or .tiff and "png" otherwise.
func FormatOf(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".tif", ".tiff":
		return "tiff"
	}
	return "png"
}

// Encode writes img as "png" or "tiff". TIFF output is deflate compressed.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return fmt.Errorf("image format %q: %w", format, ErrInvalidFormat)
}

// Thumbnail scales src down so that its longer side is maxSide pixels.
// Images already small enough are copied unscaled.
func Thumbnail(src image.Image, maxSide int) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if longest := max(w, h); maxSide > 0 && longest > maxSide {
		w = max(w*maxSide/longest, 1)
		h = max(h*maxSide/longest, 1)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// Describe returns caption lines naming the formula and the sampled window.
func Describe(v View) []string {
	lines := []string{
		fmt.Sprintf("%s  midpoint %s  scale %d", v.Selection.Formula.DisplayName(), FormatComplex(v.Params.Midpoint), v.Params.Scale),
	}
	sel := v.Selection
	switch sel.Formula {
	case Julia:
		lines = append(lines, "J = "+FormatComplex(sel.Julia))
	case Phoenix:
		lines = append(lines, fmt.Sprintf("J = %s  P = %s", FormatComplex(sel.Julia), FormatComplex(sel.Phoenix)))
	case Multibrot, BurningShip:
		lines = append(lines, fmt.Sprintf("d = %g", sel.Exponent))
	case MultiJulia, BurningShipJulia:
		lines = append(lines, fmt.Sprintf("J = %s  d = %g", FormatComplex(sel.Julia), sel.Exponent))
	}
	return lines
}

// captionFace returns Go Regular at size points, or the fixed 7x13 face when
// size is not positive.
func captionFace(size float64) (font.Face, error) {
	if size <= 0 {
		return basicfont.Face7x13, nil
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("truetype.Parse: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), nil
}

// Caption writes lines in white over a translucent band along the bottom edge of dst.
func Caption(dst draw.Image, lines []string, size float64) error {
	if len(lines) == 0 {
		return nil
	}
	face, err := captionFace(size)
	if err != nil {
		return err
	}

	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	margin := max(lineHeight/3, 2)
	b := dst.Bounds()

	band := image.Rect(b.Min.X, b.Max.Y-len(lines)*lineHeight-2*margin, b.Max.X, b.Max.Y).Intersect(b)
	draw.Draw(dst, band, image.NewUniform(color.NRGBA{A: 0xA0}), image.Point{}, draw.Over)

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	baseline := band.Min.Y + margin + metrics.Ascent.Ceil()
	for _, line := range lines {
		drawer.Dot = fixed.P(b.Min.X+margin, baseline)
		drawer.DrawString(line)
		baseline += lineHeight
	}
	return nil
}

// StampQR draws a QR code of payload, size pixels square, into the top-right
// corner of dst.
func StampQR(dst draw.Image, payload string, size int) error {
	if payload == "" {
		return nil
	}
	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("qrcode.New: %w", err)
	}
	qr := code.Image(size)

	b := dst.Bounds()
	qb := qr.Bounds()
	at := image.Rect(b.Max.X-qb.Dx(), b.Min.Y, b.Max.X, b.Min.Y+qb.Dy()).Intersect(b)
	draw.Draw(dst, at, qr, qb.Min, draw.Src)
	return nil
}
