// Package geometry contains the pure coordinate math used by the editor:
// the screen-to-model transform and grid snapping.
package geometry

import "math"

// GridUnit is the spacing of the placement grid in model units. Node
// positions and sizes are multiples of it whenever a gesture is at rest.
const GridUnit = 10

// View describes the visible window into model space: a translation of the
// origin plus a uniform scale factor.
type View struct {
	OriginX float64
	OriginY float64
	Zoom    float64
}

// DefaultView returns an untranslated view at 1:1 scale.
func DefaultView() View {
	return View{Zoom: 1}
}

// ToModel maps a screen-space pointer position into model space by inverting
// the view's translate+scale transform.
func ToModel(px, py float64, v View) (float64, float64) {
	zoom := v.Zoom
	if zoom == 0 {
		zoom = 1
	}
	return (px - v.OriginX) / zoom, (py - v.OriginY) / zoom
}

// Snap rounds a model coordinate to the nearest multiple of GridUnit,
// half-up. Snap is idempotent: Snap(float64(Snap(v))) == Snap(v).
func Snap(v float64) int {
	return int(math.Floor(v/GridUnit+0.5)) * GridUnit
}

// SnapInt is Snap for coordinates that are already integral.
func SnapInt(v int) int {
	return Snap(float64(v))
}

// Max returns the maximum of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
