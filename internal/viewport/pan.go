package viewport

import "math"

// PanBy translates the visible source window by a client-space delta. The
// from/to points are the gesture's pointer locations and are forwarded to
// the pan notification; programmatic pans pass zero points. Returns whether
// any change occurred.
func (v *Viewport) PanBy(dx, dy float64, from, to Point) bool {
	if !v.hasImage || (dx == 0 && dy == 0) {
		return false
	}
	v.recompute()

	z := math.Max(v.zoomFactor, epsilon)
	v.srcRect.X += dx / z
	v.srcRect.Y += dy / z
	v.dirty = true

	v.emitPan(PanChange{From: from, To: to})
	if v.selEnabled && !v.ClientSelection().Empty() {
		// The selection lives in client space; consumers re-derive its
		// source projection after a pan.
		v.emitSelection()
	}
	return true
}

// PanLeft pans the view toward the left edge of the image.
func (v *Viewport) PanLeft(distance float64) bool {
	return v.PanBy(-math.Max(distance, 0), 0, Point{}, Point{})
}

// PanRight pans the view toward the right edge of the image.
func (v *Viewport) PanRight(distance float64) bool {
	return v.PanBy(math.Max(distance, 0), 0, Point{}, Point{})
}

// PanUp pans the view toward the top edge of the image.
func (v *Viewport) PanUp(distance float64) bool {
	return v.PanBy(0, -math.Max(distance, 0), Point{}, Point{})
}

// PanDown pans the view toward the bottom edge of the image.
func (v *Viewport) PanDown(distance float64) bool {
	return v.PanBy(0, math.Max(distance, 0), Point{}, Point{})
}
