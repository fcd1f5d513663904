package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/fogleman/gg"
)

var errGeometryUnavailable = errors.New("geometry unavailable")

type size struct {
	W, H float64
}

// Camera looks at the canvas the way a 2D game camera does: X/Y is the
// world point at the center of the viewport and Zoom is the number of world
// units covered by one screen unit. Screen y grows downward, world y upward.
type Camera struct {
	X, Y     float64
	Zoom     float64
	Viewport size
}

func newCamera(zoom float64) Camera {
	return Camera{Zoom: zoom}
}

func (c Camera) ready() bool {
	return c.Viewport.W > 0 && c.Viewport.H > 0 && c.Zoom > 0
}

// screen -> world
func (c Camera) projection() gg.Matrix {
	return gg.Translate(c.X, c.Y).
		Scale(c.Zoom, -c.Zoom).
		Translate(-c.Viewport.W/2, -c.Viewport.H/2)
}

// ViewportToWorld maps a screen point to world space. It reports false while
// the viewport has no area, e.g. before the first window size is known.
func (c Camera) ViewportToWorld(sx, sy float64) (float64, float64, bool) {
	if !c.ready() {
		return 0, 0, false
	}
	wx, wy := c.projection().TransformPoint(sx, sy)
	return wx, wy, true
}

// Region is an inclusive rectangle of grain coordinates. TopLeft is visually
// upper left, so TopLeft.Y >= BottomRight.Y.
type Region struct {
	TopLeft     point
	BottomRight point
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.TopLeft.X, r.TopLeft.Y, r.BottomRight.X, r.BottomRight.Y)
}

// Contains reports whether grain (x, y) lies in the closed rectangle.
func (r Region) Contains(x, y int) bool {
	return x >= r.TopLeft.X && x <= r.BottomRight.X &&
		y <= r.TopLeft.Y && y >= r.BottomRight.Y
}

func (r Region) Width() int {
	return r.BottomRight.X - r.TopLeft.X + 1
}

func (r Region) Height() int {
	return r.TopLeft.Y - r.BottomRight.Y + 1
}

func floorGrain(v, grainSize float64) int {
	return int(math.Floor(v / grainSize))
}

// viewportToRegion computes the grain rectangle covered by the camera,
// widened by overscan grains on every side. The same computation drives both
// the fetch region and pruning so the two never disagree at the boundary.
func viewportToRegion(cam Camera, grainSize float64, overscan int) (Region, error) {
	tlx, tly, ok := cam.ViewportToWorld(0, 0)
	if !ok {
		return Region{}, errGeometryUnavailable
	}
	brx, bry, ok := cam.ViewportToWorld(cam.Viewport.W, cam.Viewport.H)
	if !ok {
		return Region{}, errGeometryUnavailable
	}

	margin := grainSize * float64(overscan)
	return Region{
		TopLeft: point{
			X: floorGrain(tlx-margin, grainSize),
			Y: floorGrain(tly+margin, grainSize),
		},
		BottomRight: point{
			X: floorGrain(brx+margin, grainSize),
			Y: floorGrain(bry-margin, grainSize),
		},
	}, nil
}

// screenToGrain returns the grain under a screen point. x is floored and y is
// ceiled so the hover box lines up with the grain drawn under the pointer.
func screenToGrain(cam Camera, grainSize float64, sx, sy float64) (point, error) {
	wx, wy, ok := cam.ViewportToWorld(sx, sy)
	if !ok {
		return point{}, errGeometryUnavailable
	}
	return point{
		X: int(math.Floor(wx / grainSize)),
		Y: int(math.Ceil(wy / grainSize)),
	}, nil
}

// grainToWorld is the inverse direction used when drawing: the world
// position of a grain's anchor.
func grainToWorld(p point, grainSize float64) (float64, float64) {
	return float64(p.X) * grainSize, float64(p.Y) * grainSize
}
