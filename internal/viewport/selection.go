package viewport

import "math"

// HandleDir identifies one of the eight selection resize handles.
type HandleDir int

const (
	HandleTopLeft HandleDir = iota
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
)

// Handle is one resize handle: the small indicator square that gets drawn
// and a larger hit rectangle for pointer targeting.
type Handle struct {
	Dir       HandleDir
	Indicator Rect
	Hit       Rect
}

// EnableSelection turns the selection tool on. The selection starts empty.
func (v *Viewport) EnableSelection() { v.selEnabled = true }

// DisableSelection turns the selection tool off and clears any selection.
func (v *Viewport) DisableSelection() {
	if !v.selEnabled {
		return
	}
	had := !v.ClientSelection().Empty()
	v.selEnabled = false
	v.selRect = Rect{}
	if had {
		v.emitSelection()
	}
}

// SelectionEnabled reports whether the selection tool is active.
func (v *Viewport) SelectionEnabled() bool { return v.selEnabled }

// SetSelectionAspect constrains the selection to a width:height ratio.
// A non-positive value on either axis means free-form.
func (v *Viewport) SetSelectionAspect(w, h float64) {
	v.aspectW = w
	v.aspectH = h
}

// SelectionAspect returns the configured ratio constraint.
func (v *Viewport) SelectionAspect() (w, h float64) { return v.aspectW, v.aspectH }

// SetSelection places the selection programmatically, in client space.
// No-op while the selection tool is disabled.
func (v *Viewport) SetSelection(r Rect) {
	if !v.selEnabled {
		return
	}
	v.selRect = r
	v.emitSelection()
}

// ClearSelection removes the current selection.
func (v *Viewport) ClearSelection() {
	if v.selRect.Empty() {
		v.selRect = Rect{}
		return
	}
	v.selRect = Rect{}
	v.emitSelection()
}

// ClientSelection returns the selection intersected with the current
// destination rectangle. The intersection happens on read so the selection
// tracks viewport changes lazily.
func (v *Viewport) ClientSelection() Rect {
	if !v.selEnabled {
		return Rect{}
	}
	v.recompute()
	return v.selRect.Intersect(v.destRect)
}

// SourceSelection projects the client selection into source pixels, floored
// and ceiled to whole pixels and clamped to the image bounds.
func (v *Viewport) SourceSelection() Rect {
	sel := v.ClientSelection()
	if sel.Empty() {
		return Rect{}
	}
	p0 := v.ClientToSource(Point{sel.X, sel.Y})
	p1 := v.ClientToSource(Point{sel.Right(), sel.Bottom()})
	x0 := clampf(math.Floor(p0.X), 0, v.srcW)
	y0 := clampf(math.Floor(p0.Y), 0, v.srcH)
	x1 := clampf(math.Ceil(p1.X), 0, v.srcW)
	y1 := clampf(math.Ceil(p1.Y), 0, v.srcH)
	return Rect{x0, y0, math.Max(x1-x0, 0), math.Max(y1-y0, 0)}
}

// SelectionHandles returns the resize handles for the current selection.
// Edge handles disappear when the selection is smaller than five handle
// sizes on their axis, leaving room to grab the corners.
func (v *Viewport) SelectionHandles() []Handle {
	sel := v.ClientSelection()
	if sel.Empty() {
		return nil
	}
	hs := v.handleSize
	cx, cy := sel.X+sel.W/2, sel.Y+sel.H/2

	type spot struct {
		dir  HandleDir
		p    Point
		edge bool
		onX  bool // edge handle sitting on the horizontal midline
	}
	spots := []spot{
		{HandleTopLeft, Point{sel.X, sel.Y}, false, false},
		{HandleTopRight, Point{sel.Right(), sel.Y}, false, false},
		{HandleBottomRight, Point{sel.Right(), sel.Bottom()}, false, false},
		{HandleBottomLeft, Point{sel.X, sel.Bottom()}, false, false},
		{HandleTop, Point{cx, sel.Y}, true, true},
		{HandleBottom, Point{cx, sel.Bottom()}, true, true},
		{HandleLeft, Point{sel.X, cy}, true, false},
		{HandleRight, Point{sel.Right(), cy}, true, false},
	}

	handles := make([]Handle, 0, len(spots))
	for _, s := range spots {
		if s.edge {
			if s.onX && sel.W < 5*hs {
				continue
			}
			if !s.onX && sel.H < 5*hs {
				continue
			}
		}
		ind := Rect{s.p.X - hs/2, s.p.Y - hs/2, hs, hs}
		grow := hs * (v.handleHitMul - 1) / 2
		handles = append(handles, Handle{Dir: s.dir, Indicator: ind, Hit: ind.Inflate(grow, grow)})
	}
	return handles
}

// handleAt returns the handle whose hit rectangle contains p.
func (v *Viewport) handleAt(p Point) (HandleDir, bool) {
	for _, h := range v.SelectionHandles() {
		if h.Hit.Contains(p) {
			return h.Dir, true
		}
	}
	return 0, false
}

func (v *Viewport) aspectRatio() (float64, bool) {
	if v.aspectW > 0 && v.aspectH > 0 {
		return v.aspectW / v.aspectH, true
	}
	return 0, false
}

// aspectedRect builds a ratio-constrained rectangle growing from anchor in
// the direction given by the signs, shrinking it to stay inside dest while
// preserving the ratio.
func aspectedRect(anchor Point, sx, sy, w, h, ratio float64, dest Rect) Rect {
	availW := dest.Right() - anchor.X
	if sx < 0 {
		availW = anchor.X - dest.X
	}
	availH := dest.Bottom() - anchor.Y
	if sy < 0 {
		availH = anchor.Y - dest.Y
	}
	availW = math.Max(availW, 0)
	availH = math.Max(availH, 0)

	if w > availW {
		w = availW
		h = w / ratio
	}
	if h > availH {
		h = availH
		w = h * ratio
	}

	r := Rect{anchor.X, anchor.Y, w, h}
	if sx < 0 {
		r.X = anchor.X - w
	}
	if sy < 0 {
		r.Y = anchor.Y - h
	}
	return r
}

// deriveAspect picks the driving axis (the one with the larger extent
// relative to its ratio component) and derives the other.
func (v *Viewport) deriveAspect(w, h, ratio float64) (float64, float64) {
	if w/v.aspectW >= h/v.aspectH {
		return w, w / ratio
	}
	return h * ratio, h
}

// dragSelection redraws the selection as the bounding rectangle of the
// gesture's anchor and the current pointer, honoring the aspect constraint.
func (v *Viewport) dragSelection(anchor, p Point) {
	v.recompute()
	r := rectFromPoints(anchor, p)

	if ratio, ok := v.aspectRatio(); ok {
		w, h := v.deriveAspect(r.W, r.H, ratio)
		sx, sy := 1.0, 1.0
		if p.X < anchor.X {
			sx = -1
		}
		if p.Y < anchor.Y {
			sy = -1
		}
		r = aspectedRect(anchor, sx, sy, w, h, ratio, v.destRect)
	}

	v.selRect = r
	v.emitSelection()
}

// resizeSelection moves the edges named by dir against the pre-drag
// snapshot, clamps into the destination rectangle and re-applies the aspect
// constraint.
func (v *Viewport) resizeSelection(dir HandleDir, p Point) {
	v.recompute()
	s := &v.session
	dx := p.X - s.down.X
	dy := p.Y - s.down.Y

	left, top := s.snapshot.X, s.snapshot.Y
	right, bottom := s.snapshot.Right(), s.snapshot.Bottom()

	switch dir {
	case HandleTopLeft:
		left += dx
		top += dy
	case HandleTop:
		top += dy
	case HandleTopRight:
		right += dx
		top += dy
	case HandleRight:
		right += dx
	case HandleBottomRight:
		right += dx
		bottom += dy
	case HandleBottom:
		bottom += dy
	case HandleBottomLeft:
		left += dx
		bottom += dy
	case HandleLeft:
		left += dx
	}
	if right < left {
		left, right = right, left
	}
	if bottom < top {
		top, bottom = bottom, top
	}
	r := Rect{left, top, right - left, bottom - top}.Intersect(v.destRect)

	if _, ok := v.aspectRatio(); ok {
		r = v.aspectResize(dir, r)
	}

	v.selRect = r
	v.emitSelection()
}

// aspectResize reshapes a freshly resized rectangle back onto the ratio.
// Corner handles anchor at the opposite corner and derive from the dragged
// extents; edge handles drive with the dragged axis, derive the other, and
// stay centered on the perpendicular.
func (v *Viewport) aspectResize(dir HandleDir, r Rect) Rect {
	ratio, ok := v.aspectRatio()
	if !ok {
		return r
	}
	dest := v.destRect
	snap := v.session.snapshot

	switch dir {
	case HandleLeft, HandleRight:
		w := r.W
		h := w / ratio
		cy := snap.Y + snap.H/2
		availH := 2 * math.Min(cy-dest.Y, dest.Bottom()-cy)
		if h > availH {
			h = math.Max(availH, 0)
			w = h * ratio
		}
		anchorX := snap.Right()
		sx := -1.0
		if dir == HandleRight {
			anchorX = snap.X
			sx = 1.0
		}
		out := aspectedRect(Point{anchorX, cy - h/2}, sx, 1, w, h, ratio, dest)
		out.Y = cy - out.H/2
		return out

	case HandleTop, HandleBottom:
		h := r.H
		w := h * ratio
		cx := snap.X + snap.W/2
		availW := 2 * math.Min(cx-dest.X, dest.Right()-cx)
		if w > availW {
			w = math.Max(availW, 0)
			h = w / ratio
		}
		anchorY := snap.Bottom()
		sy := -1.0
		if dir == HandleBottom {
			anchorY = snap.Y
			sy = 1.0
		}
		out := aspectedRect(Point{cx - w/2, anchorY}, 1, sy, w, h, ratio, dest)
		out.X = cx - out.W/2
		return out

	default: // corners
		anchor := Point{snap.X, snap.Y}
		sx, sy := 1.0, 1.0
		switch dir {
		case HandleTopLeft:
			anchor = Point{snap.Right(), snap.Bottom()}
			sx, sy = -1, -1
		case HandleTopRight:
			anchor = Point{snap.X, snap.Bottom()}
			sy = -1
		case HandleBottomLeft:
			anchor = Point{snap.Right(), snap.Y}
			sx = -1
		}
		w, h := v.deriveAspect(r.W, r.H, ratio)
		return aspectedRect(anchor, sx, sy, w, h, ratio, dest)
	}
}

// moveSelection translates the whole selection, keeping it inside the
// destination rectangle.
func (v *Viewport) moveSelection(p Point) {
	v.recompute()
	s := &v.session
	r := s.snapshot
	r.X = p.X - s.grabOffset.X
	r.Y = p.Y - s.grabOffset.Y

	dest := v.destRect
	r.X = clampf(r.X, dest.X, math.Max(dest.Right()-r.W, dest.X))
	r.Y = clampf(r.Y, dest.Y, math.Max(dest.Bottom()-r.H, dest.Y))

	v.selRect = r
	v.emitSelection()
}
