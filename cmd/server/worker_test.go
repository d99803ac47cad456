package main

import (
	"context"
	"errors"
	"image"
	"slices"
	"testing"
	"time"

	"github.com/marben/fractarium"
)

func smallView() fractarium.View {
	v := fractarium.DefaultView()
	v.Params = fractarium.Parameters{Width: 150, Height: 70, IterationLimit: 30, Scale: 40}
	return v
}

func TestRenderJob(t *testing.T) {
	view := smallView()
	job, err := newRenderJob(view)
	if err != nil {
		t.Fatal(err)
	}
	if job.tileCount != 6 {
		t.Fatalf("tileCount = %d, want 6", job.tileCount)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	job.start(ctx, 3)

	buf, err := job.GetImage(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := job.finished(); got != 1 {
		t.Errorf("finished() = %v, want 1", got)
	}

	want, err := fractarium.Render(view.Params, view.Palette, view.Selection)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(buf.Pix, want.Pix) {
		t.Error("job image differs from fractarium.Render")
	}

	var tiles []image.Rectangle
	for range job.tileCount {
		tiles = append(tiles, <-job.Tiles())
	}
	slices.SortFunc(tiles, func(a, b image.Rectangle) int {
		if a.Min.Y != b.Min.Y {
			return a.Min.Y - b.Min.Y
		}
		return a.Min.X - b.Min.X
	})
	if all := fractarium.SplitTiles(buf.Bounds(), fractarium.DefaultTileSize, fractarium.DefaultTileSize); !slices.Equal(tiles, all) {
		t.Errorf("published tiles = %v, want %v", tiles, all)
	}
}

func TestRenderJobGetImageCancelled(t *testing.T) {
	job, err := newRenderJob(smallView())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// never started, so only ctx can end the wait
	if _, err := job.GetImage(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("GetImage error = %v, want context.Canceled", err)
	}
}

func TestNewRenderJobInvalid(t *testing.T) {
	v := smallView()
	v.Params.Scale = 0
	if _, err := newRenderJob(v); !errors.Is(err, fractarium.ErrConfigurationInvalid) {
		t.Errorf("newRenderJob error = %v", err)
	}
}
