package main

import (
	"context"
	"image"
	"log"
	"sync"

	"github.com/marben/fractarium"
)

// renderJob hands the tiles of one image out to worker goroutines and
// publishes every finished tile on a channel.
type renderJob struct {
	workers int
	engine  *fractarium.Engine
	buf     *fractarium.Buffer
	verbose bool

	// ctx is cancelled once every tile is finished
	ctx       context.Context
	ctxCancel context.CancelFunc

	totalPixels    int
	finishedPixels int
	tileCount      int
	tiles          chan image.Rectangle

	unstarted []image.Rectangle
	inProcess map[image.Rectangle]struct{}
	m         sync.Mutex
}

var _ fractarium.ImgProvider = (*renderJob)(nil)

func newRenderJob(view fractarium.View) (*renderJob, error) {
	engine, err := fractarium.NewEngine(view.Params, view.Palette, view.Selection)
	if err != nil {
		return nil, err
	}
	buf := fractarium.NewBuffer(view.Params.Width, view.Params.Height)
	allTiles := fractarium.SplitTiles(buf.Bounds(), fractarium.DefaultTileSize, fractarium.DefaultTileSize)

	ctx, cancel := context.WithCancel(context.Background())
	return &renderJob{
		engine:      engine,
		buf:         buf,
		unstarted:   allTiles,
		inProcess:   make(map[image.Rectangle]struct{}),
		totalPixels: buf.Width * buf.Height,
		tileCount:   len(allTiles),
		tiles:       make(chan image.Rectangle, len(allTiles)),
		ctx:         ctx,
		ctxCancel:   cancel,
	}, nil
}

// start launches n workers that stop early when ctx is cancelled.
func (job *renderJob) start(ctx context.Context, n int) {
	for range max(n, 1) {
		go job.render(ctx)
	}
}

func (job *renderJob) popTile() (tile image.Rectangle, found bool) {
	job.m.Lock()
	defer job.m.Unlock()

	if len(job.unstarted) == 0 {
		return image.Rectangle{}, false
	}
	tile = job.unstarted[0]
	job.unstarted = job.unstarted[1:]
	job.inProcess[tile] = struct{}{}
	return tile, true
}

// GetImage waits for the last tile and returns the finished buffer.
func (job *renderJob) GetImage(ctx context.Context) (*fractarium.Buffer, error) {
	select {
	case <-job.ctx.Done():
		return job.buf, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Tiles yields each tile once its pixels are final.
func (job *renderJob) Tiles() <-chan image.Rectangle {
	return job.tiles
}

func (job *renderJob) finished() float32 {
	job.m.Lock()
	defer job.m.Unlock()
	return float32(job.finishedPixels) / float32(job.totalPixels)
}

func (job *renderJob) tileFinished(tile image.Rectangle) {
	job.m.Lock()
	defer job.m.Unlock()

	if _, found := job.inProcess[tile]; found {
		job.finishedPixels += tile.Dx() * tile.Dy()
	}
	delete(job.inProcess, tile)
	job.tiles <- tile

	if len(job.unstarted) == 0 && len(job.inProcess) == 0 {
		job.ctxCancel()
	}
}

func (job *renderJob) incActiveWorker() {
	job.m.Lock()
	job.workers++
	w := job.workers
	job.m.Unlock()

	job.logf("workers: %d", w)
}

func (job *renderJob) decActiveWorkers() {
	job.m.Lock()
	job.workers--
	w := job.workers
	job.m.Unlock()

	job.logf("workers: %d", w)
}

// render works through unstarted tiles until none are left or ctx ends.
// It can be called from multiple goroutines in parallel.
func (job *renderJob) render(ctx context.Context) {
	job.incActiveWorker()
	defer job.decActiveWorkers()

	for ctx.Err() == nil {
		tile, found := job.popTile()
		if !found {
			return
		}
		job.engine.RenderTile(job.buf, tile)
		job.tileFinished(tile)
		job.logf("finished: %f", job.finished())
	}
}

func (job *renderJob) logf(format string, args ...any) {
	if job.verbose {
		log.Printf(format, args...)
	}
}
