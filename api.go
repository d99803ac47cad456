package fractarium

import (
	"context"
	"image"
)

// ImgProvider hands out a finished image, waiting for the render if needed.
type ImgProvider interface {
	GetImage(ctx context.Context) (*Buffer, error)
}

// TileRenderer colors one rectangle of a shared buffer.
type TileRenderer interface {
	RenderTile(buf *Buffer, tile image.Rectangle)
}

var _ TileRenderer = (*Engine)(nil)
