package common

import "github.com/jakecoffman/cp"

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// Camera maps arena units (y up, ground at 0) onto a screen or terminal grid
// (y down). ScaleY differs from ScaleX when cells are not square.
type Camera struct {
	OriginX float64
	GroundY float64
	ScaleX  float64
	ScaleY  float64
}

// FitCamera frames bounds horizontally across width with the ground line at
// ground, a fraction of height from the top. cellAspect is cell height over
// cell width: 1 for pixels, about 2 for terminal characters.
func FitCamera(bounds cp.BB, width, height, ground, cellAspect float64) Camera {
	span := bounds.R - bounds.L
	if span <= 0 || width <= 0 {
		return Camera{ScaleX: 1, ScaleY: 1}
	}
	if cellAspect <= 0 {
		cellAspect = 1
	}
	scale := width / span
	return Camera{
		OriginX: -bounds.L * scale,
		GroundY: height * Clamp(ground, 0, 1),
		ScaleX:  scale,
		ScaleY:  scale / cellAspect,
	}
}

func (c Camera) Point(x, y float64) (float64, float64) {
	return c.OriginX + x*c.ScaleX, c.GroundY - y*c.ScaleY
}

// Rect returns the screen rectangle for bb as x, y, width, height with y at
// the top edge.
func (c Camera) Rect(bb cp.BB) (float64, float64, float64, float64) {
	x, y := c.Point(bb.L, bb.T)
	return x, y, (bb.R - bb.L) * c.ScaleX, (bb.T - bb.B) * c.ScaleY
}
