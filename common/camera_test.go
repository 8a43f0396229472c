package common

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestFitCamera(t *testing.T) {
	bounds := cp.BB{L: -10, B: 0, R: 10, T: 6}
	cam := FitCamera(bounds, 1280, 720, 0.8, 1)

	tests := []struct {
		name   string
		x, y   float64
		sx, sy float64
	}{
		{name: "left edge on ground", x: -10, y: 0, sx: 0, sy: 576},
		{name: "centre", x: 0, y: 0, sx: 640, sy: 576},
		{name: "right edge raised", x: 10, y: 1, sx: 1280, sy: 512},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := cam.Point(tt.x, tt.y)
			if math.Abs(sx-tt.sx) > 1e-9 || math.Abs(sy-tt.sy) > 1e-9 {
				t.Fatalf("Point(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, sx, sy, tt.sx, tt.sy)
			}
		})
	}
}

func TestCameraRectTerminalCells(t *testing.T) {
	cam := FitCamera(cp.BB{L: 0, R: 40}, 80, 24, 1, 2)
	x, y, w, h := cam.Rect(cp.BB{L: 1, B: 0, R: 2, T: 4})
	if x != 2 || y != 20 || w != 2 || h != 4 {
		t.Fatalf("Rect = (%v, %v, %v, %v), want (2, 20, 2, 4)", x, y, w, h)
	}
}

func TestFitCameraDegenerate(t *testing.T) {
	cam := FitCamera(cp.BB{}, 100, 100, 0.5, 1)
	if cam.ScaleX != 1 || cam.ScaleY != 1 {
		t.Fatalf("empty bounds should fall back to unit scale, got %+v", cam)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 1) != 1 || Clamp(-5, 0, 1) != 0 || Clamp(0.5, 0, 1) != 0.5 {
		t.Fatal("Clamp out of range")
	}
	if Lerp(0, 10, 0.25) != 2.5 {
		t.Fatal("Lerp")
	}
}
