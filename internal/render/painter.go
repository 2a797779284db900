//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"floodplan/internal/core"
)

// GridPainter composites the city, water and best-path layers into a single
// RGBA image and draws it scaled onto the destination.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit renders the current session state. volumes and path may be nil when
// the corresponding layer has nothing to show.
func (gp *GridPainter) Blit(dst *ebiten.Image, grid *core.Grid, volumes []float64, path []core.Point, fullDepth float64, scale int) {
	if grid.W != gp.w || grid.H != gp.h {
		return
	}
	FillCityRGBA(gp.buf, grid)
	if volumes != nil {
		OverlayWaterRGBA(gp.buf, grid, volumes, fullDepth)
	}
	if path != nil {
		OverlayPathRGBA(gp.buf, grid, path)
	}
	gp.img.ReplacePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
