package fractarium

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"
)

// DefaultTileSize is the edge length of the square tiles a render is split into.
const DefaultTileSize = 64

// Renderer computes full images on a pool of goroutines. The zero value uses
// one worker per available CPU and 64x64 tiles.
type Renderer struct {
	Workers  int
	TileSize int

	// OnTile, when set, is called from the worker goroutines after each tile
	// is written.
	OnTile func(tile image.Rectangle)
}

// Render draws the selected fractal with default settings.
func Render(params Parameters, palette *Palette, sel Selection) (*Buffer, error) {
	return Renderer{}.Render(context.Background(), params, palette, sel)
}

// Render draws every pixel of params into a new buffer. Pixels are independent,
// so the result does not depend on the number of workers or the order tiles
// complete in. A cancelled context stops the render between tiles and returns
// ctx.Err().
func (r Renderer) Render(ctx context.Context, params Parameters, palette *Palette, sel Selection) (*Buffer, error) {
	engine, err := NewEngine(params, palette, sel)
	if err != nil {
		return nil, err
	}

	buf := NewBuffer(params.Width, params.Height)
	tiles := SplitTiles(buf.Bounds(), r.tileSize(), r.tileSize())

	work := make(chan image.Rectangle)
	var wg sync.WaitGroup
	for range min(r.workers(), len(tiles)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tile := range work {
				engine.RenderTile(buf, tile)
				if r.OnTile != nil {
					r.OnTile(tile)
				}
			}
		}()
	}

feed:
	for _, tile := range tiles {
		select {
		case work <- tile:
		case <-ctx.Done():
			break feed
		}
	}
	close(work)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return buf, nil
}

func (r Renderer) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (r Renderer) tileSize() int {
	if r.TileSize > 0 {
		return r.TileSize
	}
	return DefaultTileSize
}

// RenderTile colors the pixels of tile in buf. Tiles that do not overlap can
// be rendered concurrently into the same buffer.
func (e *Engine) RenderTile(buf *Buffer, tile image.Rectangle) {
	tile = tile.Intersect(buf.Bounds())
	for y := tile.Min.Y; y < tile.Max.Y; y++ {
		row := buf.Pix[y*buf.Width : (y+1)*buf.Width]
		for x := tile.Min.X; x < tile.Max.X; x++ {
			row[x] = e.Iterate(e.params.PointAt(float64(x), float64(y)))
		}
	}
}

// SplitTiles covers r with tileW x tileH rectangles in row-major order,
// cropping the last column and row to r. It panics on a non-positive tile size.
func SplitTiles(r image.Rectangle, tileW, tileH int) []image.Rectangle {
	if tileW <= 0 || tileH <= 0 {
		panic(fmt.Sprintf("fractarium: tile size %dx%d", tileW, tileH))
	}
	cols := (r.Dx() + tileW - 1) / tileW
	rows := (r.Dy() + tileH - 1) / tileH
	tiles := make([]image.Rectangle, 0, cols*rows)
	for y := r.Min.Y; y < r.Max.Y; y += tileH {
		for x := r.Min.X; x < r.Max.X; x += tileW {
			tiles = append(tiles, image.Rect(x, y, x+tileW, y+tileH).Intersect(r))
		}
	}
	return tiles
}
