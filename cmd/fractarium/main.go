// fractarium renders an escape-time fractal, or a preview of its palette, to a PNG or TIFF file.

package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"math"
	"os"
	"os/signal"

	"github.com/marben/fractarium"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errListed) {
			return
		}
		log.Fatalf("run: %+v", err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	// Step 1: Build the view from defaults, -view and individual flags
	opts, view, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}

	// Step 2: Optional coordinate readout and zoom, both relative to the view as given
	if opts.point != "" {
		x, y, err := parsePixel(opts.point)
		if err != nil {
			return fmt.Errorf("-point: %w", err)
		}
		fmt.Fprintln(stdout, fractarium.FormatComplex(view.Params.PointAt(x, y)))
	}
	if view, err = applyZoom(view, opts); err != nil {
		return err
	}

	// Step 3: Render
	var img *image.NRGBA
	if opts.preview != "" {
		log.Printf("Drawing %s palette preview %dx%d...", opts.preview, opts.previewW, opts.previewH)
		if img, err = drawPreview(view.Palette, opts); err != nil {
			return err
		}
	} else {
		log.Printf("Rendering %s %dx%d at %s, scale %d...",
			view.Selection.Formula, view.Params.Width, view.Params.Height, view.Params.Midpoint, view.Params.Scale)
		renderer := fractarium.Renderer{Workers: opts.workers}
		if opts.verbose {
			renderer.OnTile = func(tile image.Rectangle) { log.Printf("Rendered tile: %s", tile) }
		}
		buf, err := view.Render(ctx, renderer)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		img = buf.NRGBA(buf.Bounds())

		// Step 4: Decorations
		if opts.caption {
			if err := fractarium.Caption(img, fractarium.Describe(view), opts.captionSize); err != nil {
				return fmt.Errorf("caption: %w", err)
			}
		}
		if opts.qrBase != "" {
			link := opts.qrBase + "/render?" + view.Query().Encode()
			if err := fractarium.StampQR(img, link, opts.qrSize); err != nil {
				return fmt.Errorf("qr: %w", err)
			}
		}
	}
	if opts.thumb > 0 {
		img = fractarium.Thumbnail(img, opts.thumb)
	}

	// Step 5: Save
	log.Printf("Saving image to %q...", opts.out)
	if err := saveImage(opts.out, img); err != nil {
		return err
	}
	log.Printf("Image saved to %q", opts.out)
	return nil
}

func applyZoom(view fractarium.View, opts options) (fractarium.View, error) {
	zoom := func(at string, in bool) error {
		x, y, err := parsePixel(at)
		if err != nil {
			return err
		}
		point := view.Params.PointAt(x, y)
		if in {
			view.Params, err = view.Params.ZoomIn(point, opts.zoomFactor)
		} else {
			view.Params, err = view.Params.ZoomOut(point, opts.zoomFactor)
		}
		return err
	}
	if opts.zoomIn != "" {
		if err := zoom(opts.zoomIn, true); err != nil {
			return view, fmt.Errorf("-zoom-in: %w", err)
		}
	}
	if opts.zoomOut != "" {
		if err := zoom(opts.zoomOut, false); err != nil {
			return view, fmt.Errorf("-zoom-out: %w", err)
		}
	}
	return view, nil
}

func drawPreview(palette *fractarium.Palette, opts options) (*image.NRGBA, error) {
	if opts.previewW <= 0 || opts.previewH <= 0 || opts.previewW > math.MaxInt/opts.previewH {
		return nil, fmt.Errorf("palette preview %dx%d: %w", opts.previewW, opts.previewH, fractarium.ErrConfigurationInvalid)
	}
	buf := fractarium.NewBuffer(opts.previewW, opts.previewH)
	draw := palette.DrawContinuousPreview
	if opts.preview == "discrete" {
		draw = palette.DrawDiscretePreview
	}
	if err := draw(buf.Width, buf.Height, buf.Pix); err != nil {
		return nil, fmt.Errorf("palette preview: %w", err)
	}
	return buf.NRGBA(buf.Bounds()), nil
}

// saveImage writes img as TIFF or PNG depending on the file extension.
func saveImage(filename string, img image.Image) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	format := fractarium.FormatOf(filename)
	if err := fractarium.Encode(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return f.Close()
}
