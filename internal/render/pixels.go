// Package render converts session state into RGBA pixel buffers. The fill
// functions are pure so they can be exercised without a display; the ebiten
// painter lives behind the ebiten build tag.
package render

import (
	"image/color"

	"floodplan/internal/core"
)

var markerColors = map[core.CellType]color.NRGBA{
	core.CellEmpty: {R: 88, G: 120, B: 68, A: 255},
	core.CellRoad:  {R: 90, G: 90, B: 95, A: 255},
	core.CellHouse: {R: 176, G: 112, B: 70, A: 255},
	core.CellTree:  {R: 46, G: 110, B: 58, A: 255},
	core.CellRock:  {R: 120, G: 120, B: 126, A: 255},
}

var (
	drainColor = color.NRGBA{R: 240, G: 200, B: 40, A: 255}
	pathColor  = color.NRGBA{R: 236, G: 100, B: 60, A: 255}
	waterColor = color.NRGBA{R: 60, G: 110, B: 230, A: 255}
)

// FillCityRGBA paints the base city into buf: marker colors shaded by
// elevation, drains highlighted. buf must hold 4 bytes per cell.
func FillCityRGBA(buf []byte, grid *core.Grid) {
	markers := grid.Markers()
	elev := grid.Elevation()
	minE, maxE := elevationRange(elev)
	span := maxE - minE
	if span <= 0 {
		span = 1
	}

	total := grid.W * grid.H
	for i := 0; i < total; i++ {
		c := markerColors[markers[i]]
		if grid.Drain(i) {
			c = drainColor
		} else {
			// Lighten toward high ground so terrain reads at a glance.
			shade := 0.6 + 0.4*(elev[i]-minE)/span
			c = scaleColor(c, shade)
		}
		putPixel(buf, i, c)
	}
}

// OverlayWaterRGBA blends standing water over the base pixels, opacity
// rising with depth up to fullDepth.
func OverlayWaterRGBA(buf []byte, grid *core.Grid, volumes []float64, fullDepth float64) {
	if fullDepth <= 0 {
		fullDepth = 1
	}
	total := grid.W * grid.H
	for i := 0; i < total && i < len(volumes); i++ {
		v := volumes[i]
		if v <= 0 || grid.Obstacle(i) {
			continue
		}
		weight := v / fullDepth
		if weight > 0.95 {
			weight = 0.95
		}
		base := getPixel(buf, i)
		putPixel(buf, i, blendColors(base, waterColor, weight))
	}
}

// OverlayPathRGBA marks the current best drainage route.
func OverlayPathRGBA(buf []byte, grid *core.Grid, path []core.Point) {
	for _, p := range path {
		if !grid.InBounds(p.X, p.Y) {
			continue
		}
		idx := grid.Index(p.X, p.Y)
		if grid.Drain(idx) {
			continue
		}
		putPixel(buf, idx, pathColor)
	}
}

func elevationRange(elev []float64) (float64, float64) {
	if len(elev) == 0 {
		return 0, 0
	}
	min, max := elev[0], elev[0]
	for _, v := range elev[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

func putPixel(buf []byte, idx int, c color.NRGBA) {
	base := idx * 4
	if base+3 >= len(buf) {
		return
	}
	buf[base+0] = c.R
	buf[base+1] = c.G
	buf[base+2] = c.B
	buf[base+3] = c.A
}

func getPixel(buf []byte, idx int) color.NRGBA {
	base := idx * 4
	if base+3 >= len(buf) {
		return color.NRGBA{}
	}
	return color.NRGBA{R: buf[base+0], G: buf[base+1], B: buf[base+2], A: buf[base+3]}
}

func scaleColor(c color.NRGBA, f float64) color.NRGBA {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return color.NRGBA{
		R: uint8(float64(c.R)*f + 0.5),
		G: uint8(float64(c.G)*f + 0.5),
		B: uint8(float64(c.B)*f + 0.5),
		A: c.A,
	}
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	w := overlayWeight
	inv := 1 - w
	return color.NRGBA{
		R: uint8(float64(base.R)*inv + float64(overlay.R)*w + 0.5),
		G: uint8(float64(base.G)*inv + float64(overlay.G)*w + 0.5),
		B: uint8(float64(base.B)*inv + float64(overlay.B)*w + 0.5),
		A: 255,
	}
}
