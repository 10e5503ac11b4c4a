package viewport

type gestureKind int

const (
	gestureNone gestureKind = iota
	gestureDrawing
	gestureMoving
	gestureResizing
	gesturePanning
	gestureNav
)

// pointerSession tracks one button-down-to-button-up gesture.
type pointerSession struct {
	kind       gestureKind
	button     Button
	down       Point
	last       Point
	dragged    bool
	upgrade    bool // second press of a double click
	snapshot   Rect // selection at gesture start
	grabOffset Point
	handle     HandleDir
	panPoint   Point
	navSide    NavSide
}

type navState struct {
	hovered bool
	pressed bool
}

// NavButton describes one navigation hotspot for rendering.
type NavButton struct {
	Center  Point
	Radius  float64
	Hovered bool
	Pressed bool
}

// SetNavEnabled toggles the hover navigation buttons.
func (v *Viewport) SetNavEnabled(enabled bool) {
	if v.navEnabled == enabled {
		return
	}
	v.navEnabled = enabled
	v.nav = [2]navState{}
	v.emitRedraw()
}

// NavButtons returns the two hotspots and whether they are currently shown.
// They hide while a selection is engaged so the selection keeps the pointer.
func (v *Viewport) NavButtons() (left, right NavButton, visible bool) {
	lc, rc, r := v.navCenters()
	left = NavButton{Center: lc, Radius: r, Hovered: v.nav[NavLeft].hovered, Pressed: v.nav[NavLeft].pressed}
	right = NavButton{Center: rc, Radius: r, Hovered: v.nav[NavRight].hovered, Pressed: v.nav[NavRight].pressed}
	return left, right, v.navActive()
}

func (v *Viewport) navActive() bool {
	return v.navEnabled && v.navSize > 0 && !v.selectionEngaged()
}

func (v *Viewport) selectionEngaged() bool {
	return v.selEnabled && !v.ClientSelection().Empty()
}

func (v *Viewport) navCenters() (left, right Point, radius float64) {
	area := v.drawingArea()
	radius = v.navSize / 2
	cy := area.Y + area.H/2
	inset := v.navPad + radius
	return Point{area.X + inset, cy}, Point{area.Right() - inset, cy}, radius
}

func (v *Viewport) navHit(p Point) (NavSide, bool) {
	if !v.navActive() {
		return 0, false
	}
	lc, rc, r := v.navCenters()
	if dist(p, lc) <= r {
		return NavLeft, true
	}
	if dist(p, rc) <= r {
		return NavRight, true
	}
	return 0, false
}

// PointerDown starts a gesture. The kind is decided here: navigation hotspot,
// selection handle, selection body, new selection, or panning, in that order.
func (v *Viewport) PointerDown(p Point, btn Button) {
	if v.session.kind != gestureNone {
		return
	}
	s := pointerSession{button: btn, down: p, last: p}

	// A press while a click is buffered and close to it is the second half
	// of a double click.
	if v.pendingClick.Active() && btn == v.lastClickBtn && dist(p, v.lastClick) <= v.dblArea {
		v.pendingClick.Cancel()
		s.upgrade = true
	}

	navSide, overNav := v.navHit(p)
	var handleDir HandleDir
	handleHit := false
	if btn == ButtonPrimary && v.selEnabled {
		handleDir, handleHit = v.handleAt(p)
	}
	sel := v.ClientSelection()

	switch {
	case btn == ButtonPrimary && overNav:
		s.kind = gestureNav
		s.navSide = navSide
		v.nav[navSide].pressed = true
		v.emitRedraw()

	case handleHit:
		s.kind = gestureResizing
		s.handle = handleDir
		s.snapshot = sel

	case btn == ButtonPrimary && !sel.Empty() && sel.Contains(p):
		s.kind = gestureMoving
		s.snapshot = sel
		s.grabOffset = Point{p.X - sel.X, p.Y - sel.Y}

	case btn == ButtonPrimary && v.selEnabled:
		s.kind = gestureDrawing

	default:
		s.kind = gesturePanning
		s.panPoint = p
	}

	v.session = s
}

// PointerMove advances the active gesture and keeps hotspot hover state
// fresh when no gesture is running.
func (v *Viewport) PointerMove(p Point) {
	s := &v.session

	if s.kind == gestureNone {
		v.updateNavHover(p)
		return
	}
	s.last = p

	if !s.dragged {
		if dist(p, s.down) < v.dragThreshold {
			return
		}
		s.dragged = true
		s.upgrade = false
	}

	switch s.kind {
	case gestureDrawing:
		v.dragSelection(s.down, p)
	case gestureMoving:
		v.moveSelection(p)
	case gestureResizing:
		v.resizeSelection(s.handle, p)
	case gesturePanning:
		v.PanBy(s.panPoint.X-p.X, s.panPoint.Y-p.Y, s.panPoint, p)
		// The anchor tracks the pointer only while the image can still move
		// on that axis, so dragging past an edge does not accumulate.
		cx, cy := v.Clamped()
		if !cx {
			s.panPoint.X = p.X
		}
		if !cy {
			s.panPoint.Y = p.Y
		}
	case gestureNav:
		// Press sticks to the hotspot; releasing outside cancels it.
	}
}

func (v *Viewport) updateNavHover(p Point) {
	var want [2]bool
	if side, ok := v.navHit(p); ok {
		want[side] = true
	}
	changed := false
	for i := range v.nav {
		if v.nav[i].hovered != want[i] {
			v.nav[i].hovered = want[i]
			changed = true
		}
	}
	if changed {
		v.emitRedraw()
	}
}

// PointerUp finishes the gesture. Non-drag releases become clicks, buffered
// briefly so a following press can upgrade them to a double click.
func (v *Viewport) PointerUp(p Point) {
	s := v.session
	v.session = pointerSession{}
	if s.kind == gestureNone {
		return
	}

	if s.kind == gestureNav {
		v.nav[s.navSide].pressed = false
		if side, ok := v.navHit(p); ok && side == s.navSide {
			v.emitNav(s.navSide)
		}
		v.emitRedraw()
		return
	}

	if s.dragged {
		return
	}
	if _, overNav := v.navHit(p); overNav {
		return
	}

	if s.upgrade {
		v.lastClickBtn = ButtonNone
		v.emitClick(Click{Source: v.ClientToSource(p), Client: p, Button: s.button}, true)
		return
	}

	v.lastClick = p
	v.lastClickAt = v.clock()
	v.lastClickBtn = s.button
	click := Click{Source: v.ClientToSource(p), Client: p, Button: s.button}
	v.pendingClick.Schedule(v.clock(), v.dblTime/2, func() {
		v.emitClick(click, false)
	})
}

// Wheel zooms around the pointer. Returns whether the zoom factor changed.
func (v *Viewport) Wheel(delta float64, anchor Point) bool {
	if delta == 0 {
		return false
	}
	return v.ZoomByDelta(delta, anchor)
}

// Tick drives time-based work: the buffered single click. Call it once per
// frame.
func (v *Viewport) Tick() {
	v.pendingClick.Tick(v.clock())
}

// Dragging reports whether a gesture has crossed the drag threshold.
func (v *Viewport) Dragging() bool { return v.session.dragged }

// GestureActive reports whether a pointer button is held.
func (v *Viewport) GestureActive() bool { return v.session.kind != gestureNone }
