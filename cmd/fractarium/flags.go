package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/marben/fractarium"
)

// options are the settings that do not describe the view itself.
type options struct {
	out         string
	workers     int
	verbose     bool
	thumb       int
	caption     bool
	captionSize float64
	qrBase      string
	qrSize      int
	zoomIn      string
	zoomOut     string
	zoomFactor  uint64
	point       string
	preview     string
	previewW    int
	previewH    int
}

// viewFlags share their names with the query parameters of fractarium.ParseView.
var viewFlags = []struct{ name, usage string }{
	{"width", "image width in pixels"},
	{"height", "image height in pixels"},
	{"iterations", "iteration limit"},
	{"scale", "pixels per unit length"},
	{"midpoint", "plane point at the image center, e.g. -0.75+0.1i"},
	{"region", "landmark to fit into the image (see -list)"},
	{"formula", "mandelbrot, julia, phoenix, burning-ship, burning-ship-julia, multibrot, multi-julia or tricorn"},
	{"julia", "Julia constant"},
	{"phoenix", "Phoenix constant"},
	{"exponent", "exponent of multibrot and multi-julia"},
	{"preset", "palette preset: " + strings.Join(fractarium.PresetNames(), ", ")},
	{"palette", "comma separated AARRGGBB colors, element color first"},
}

var errListed = errors.New("listed")

func parseFlags(args []string, stdout io.Writer) (options, fractarium.View, error) {
	fs := flag.NewFlagSet("fractarium", flag.ContinueOnError)
	fs.SetOutput(stdout)

	var opts options
	fs.StringVar(&opts.out, "o", "fractal.png", "output file, TIFF when the name ends in .tif or .tiff, PNG otherwise")
	fs.IntVar(&opts.workers, "workers", 0, "render goroutines, 0 for one per CPU")
	fs.BoolVar(&opts.verbose, "v", false, "log every finished tile")
	fs.IntVar(&opts.thumb, "thumb", 0, "scale the output down so its longer side has this many pixels")
	fs.BoolVar(&opts.caption, "caption", false, "write formula, midpoint and scale into the image")
	fs.Float64Var(&opts.captionSize, "caption-size", 0, "caption font size in points, 0 for the built-in bitmap font")
	fs.StringVar(&opts.qrBase, "qr", "", "stamp a QR code linking to the view on this render server, e.g. http://localhost:8080")
	fs.IntVar(&opts.qrSize, "qr-size", 128, "QR code size in pixels")
	fs.StringVar(&opts.zoomIn, "zoom-in", "", "recenter on pixel x,y and zoom in before rendering")
	fs.StringVar(&opts.zoomOut, "zoom-out", "", "recenter on pixel x,y and zoom out before rendering")
	fs.Uint64Var(&opts.zoomFactor, "zoom-factor", 2, "scale multiplier used by -zoom-in and -zoom-out")
	fs.StringVar(&opts.point, "point", "", "print the plane coordinate of pixel x,y")
	fs.StringVar(&opts.preview, "preview", "", "write a palette preview instead of a fractal: continuous or discrete")
	fs.IntVar(&opts.previewW, "preview-width", 400, "palette preview width")
	fs.IntVar(&opts.previewH, "preview-height", 40, "palette preview height")
	viewQuery := fs.String("view", "", "view as a URL query string, as produced by the render server")
	list := fs.Bool("list", false, "list formulas, regions and palette presets, then exit")

	values := make(map[string]*string, len(viewFlags))
	for _, f := range viewFlags {
		values[f.name] = fs.String(f.name, "", f.usage)
	}

	if err := fs.Parse(args); err != nil {
		return opts, fractarium.View{}, err
	}
	if *list {
		printLists(stdout)
		return opts, fractarium.View{}, errListed
	}

	view := fractarium.DefaultView()
	if *viewQuery != "" {
		q, err := url.ParseQuery(strings.TrimPrefix(*viewQuery, "?"))
		if err != nil {
			return opts, view, fmt.Errorf("-view: %w", err)
		}
		if view, err = fractarium.ParseView(q, view); err != nil {
			return opts, view, fmt.Errorf("-view: %w", err)
		}
	}

	// Only flags given on the command line override the view.
	q := url.Values{}
	fs.Visit(func(f *flag.Flag) {
		if v, ok := values[f.Name]; ok {
			q.Set(f.Name, *v)
		}
	})
	view, err := fractarium.ParseView(q, view)
	if err != nil {
		return opts, view, err
	}

	switch opts.preview {
	case "", "continuous", "discrete":
	default:
		return opts, view, fmt.Errorf("-preview %q: want continuous or discrete", opts.preview)
	}
	return opts, view, nil
}

func printLists(w io.Writer) {
	fmt.Fprintln(w, "formulas:")
	for _, f := range fractarium.Formulas() {
		fmt.Fprintf(w, "  %-20s %s\n", f, f.DisplayName())
	}
	fmt.Fprintln(w, "regions:")
	for _, r := range fractarium.Regions() {
		fmt.Fprintf(w, "  %-24s midpoint %s\n", r.Name, r.Center())
	}
	fmt.Fprintln(w, "palette presets:")
	for _, name := range fractarium.PresetNames() {
		fmt.Fprintf(w, "  %s\n", name)
	}
}

// parsePixel reads "x,y".
func parsePixel(s string) (x, y float64, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("pixel %q: want x,y", s)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(xs), 64); err != nil {
		return 0, 0, fmt.Errorf("pixel %q: %w", s, err)
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(ys), 64); err != nil {
		return 0, 0, fmt.Errorf("pixel %q: %w", s, err)
	}
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, 0, fmt.Errorf("pixel %q: not finite", s)
	}
	return x, y, nil
}
