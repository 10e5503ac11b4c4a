package viewport

import (
	"testing"
	"time"
)

// eventLog records every notification the viewport raises.
type eventLog struct {
	clicks     []Click
	doubles    []Click
	navs       []NavSide
	pans       int
	redraws    int
	selections int
}

func (l *eventLog) install(v *Viewport) {
	v.SetEvents(Events{
		Clicked:          func(c Click) { l.clicks = append(l.clicks, c) },
		DoubleClicked:    func(c Click) { l.doubles = append(l.doubles, c) },
		NavClicked:       func(s NavSide) { l.navs = append(l.navs, s) },
		Panned:           func(PanChange) { l.pans++ },
		SelectionChanged: func(SelectionChange) { l.selections++ },
		RedrawRequested:  func() { l.redraws++ },
	})
}

func dispatcherViewport(t *testing.T) (*Viewport, *eventLog, func(time.Duration)) {
	t.Helper()
	clock, advance := fakeClock()
	v := New(Options{Clock: clock})
	v.SetViewportSize(800, 600)
	v.SetImage(2000, 1000)
	v.SetZoomFactor(1, true)
	log := &eventLog{}
	log.install(v)
	return v, log, advance
}

func TestPointerDragPans(t *testing.T) {
	v, log, _ := dispatcherViewport(t)

	v.PointerDown(Point{300, 300}, ButtonPrimary)
	v.PointerMove(Point{290, 296})
	v.PointerUp(Point{290, 296})

	src := v.SourceRect()
	if src.X != 10 || src.Y != 4 {
		t.Errorf("source origin = (%v,%v), want (10,4)", src.X, src.Y)
	}
	if log.pans != 1 {
		t.Errorf("pans = %d, want 1", log.pans)
	}
	if len(log.clicks) != 0 {
		t.Error("a drag produced a click")
	}
}

func TestDragBelowThresholdDoesNothing(t *testing.T) {
	v, log, _ := dispatcherViewport(t)

	v.PointerDown(Point{300, 300}, ButtonPrimary)
	v.PointerMove(Point{301, 301})
	if v.Dragging() {
		t.Error("dragging before the threshold")
	}
	if src := v.SourceRect(); src.X != 0 || src.Y != 0 {
		t.Errorf("panned below threshold: %v", src)
	}
	if log.pans != 0 {
		t.Errorf("pans = %d, want 0", log.pans)
	}
}

func TestPanAnchorSticksAtImageEdge(t *testing.T) {
	v, _, _ := dispatcherViewport(t)

	// Drag hard toward the left edge; the source origin clamps at 0 and
	// the anchor freezes where clamping began, so small reversals keep
	// pressing against the edge instead of jittering.
	v.PointerDown(Point{300, 300}, ButtonPrimary)
	v.PointerMove(Point{700, 300})
	if x, _ := v.Clamped(); !x {
		t.Fatal("expected X clamp at the image edge")
	}
	if src := v.SourceRect(); src.X != 0 {
		t.Fatalf("source origin = %v, want clamped 0", src.X)
	}

	v.PointerMove(Point{650, 300})
	if src := v.SourceRect(); src.X != 0 {
		t.Errorf("small reversal unstuck the edge, source origin = %v", src.X)
	}

	// Crossing back past the frozen anchor resumes panning.
	v.PointerMove(Point{250, 300})
	if src := v.SourceRect(); !almostEqual(src.X, 50) {
		t.Errorf("source origin = %v, want 50 after crossing the anchor", src.X)
	}
}

func TestClassificationOrder(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(v *Viewport)
		down     Point
		button   Button
		wantKind gestureKind
	}{
		{
			name:     "selection disabled pans",
			setup:    func(v *Viewport) {},
			down:     Point{300, 300},
			button:   ButtonPrimary,
			wantKind: gesturePanning,
		},
		{
			name:     "secondary button always pans",
			setup:    func(v *Viewport) { v.EnableSelection() },
			down:     Point{300, 300},
			button:   ButtonSecondary,
			wantKind: gesturePanning,
		},
		{
			name:     "selection enabled draws",
			setup:    func(v *Viewport) { v.EnableSelection() },
			down:     Point{300, 300},
			button:   ButtonPrimary,
			wantKind: gestureDrawing,
		},
		{
			name: "inside selection moves",
			setup: func(v *Viewport) {
				v.EnableSelection()
				v.SetSelection(Rect{100, 100, 200, 150})
			},
			down:     Point{200, 170},
			button:   ButtonPrimary,
			wantKind: gestureMoving,
		},
		{
			name: "handle beats move",
			setup: func(v *Viewport) {
				v.EnableSelection()
				v.SetSelection(Rect{100, 100, 200, 150})
			},
			down:     Point{300, 250}, // bottom-right corner
			button:   ButtonPrimary,
			wantKind: gestureResizing,
		},
		{
			name:     "nav hotspot wins without a selection",
			setup:    func(v *Viewport) {},
			down:     Point{44, 300}, // left hotspot center
			button:   ButtonPrimary,
			wantKind: gestureNav,
		},
		{
			name: "engaged selection disables nav hotspots",
			setup: func(v *Viewport) {
				v.EnableSelection()
				v.SetSelection(Rect{100, 100, 200, 150})
			},
			down:     Point{44, 300},
			button:   ButtonPrimary,
			wantKind: gestureDrawing,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _, _ := dispatcherViewport(t)
			tt.setup(v)
			v.PointerDown(tt.down, tt.button)
			if v.session.kind != tt.wantKind {
				t.Errorf("gesture = %v, want %v", v.session.kind, tt.wantKind)
			}
		})
	}
}

func TestNavButtonClick(t *testing.T) {
	v, log, advance := dispatcherViewport(t)

	left, right, visible := v.NavButtons()
	if !visible {
		t.Fatal("nav buttons hidden")
	}
	if left.Center != (Point{44, 300}) || right.Center != (Point{756, 300}) {
		t.Fatalf("hotspot centers = %v / %v", left.Center, right.Center)
	}

	v.PointerDown(left.Center, ButtonPrimary)
	v.PointerUp(left.Center)

	if len(log.navs) != 1 || log.navs[0] != NavLeft {
		t.Fatalf("navs = %v, want [NavLeft]", log.navs)
	}
	advance(time.Second)
	v.Tick()
	if len(log.clicks) != 0 {
		t.Error("nav click leaked a plain click")
	}
}

func TestNavReleaseOutsideCancels(t *testing.T) {
	v, log, _ := dispatcherViewport(t)

	v.PointerDown(Point{44, 300}, ButtonPrimary)
	v.PointerUp(Point{400, 300})

	if len(log.navs) != 0 {
		t.Errorf("navs = %v, want none", log.navs)
	}
}

func TestNavHoverRedrawsOnTransitionsOnly(t *testing.T) {
	v, log, _ := dispatcherViewport(t)

	v.PointerMove(Point{44, 300}) // enter
	v.PointerMove(Point{46, 300}) // still inside
	v.PointerMove(Point{45, 301}) // still inside
	v.PointerMove(Point{400, 300}) // leave

	if log.redraws != 2 {
		t.Errorf("redraws = %d, want 2 (enter and leave)", log.redraws)
	}
	left, _, _ := v.NavButtons()
	if left.Hovered {
		t.Error("left hotspot still hovered after leaving")
	}
}

func TestSingleClickFiresAfterDelay(t *testing.T) {
	v, log, advance := dispatcherViewport(t)

	v.PointerDown(Point{300, 300}, ButtonPrimary)
	v.PointerUp(Point{300, 300})

	if len(log.clicks) != 0 {
		t.Fatal("click fired before the buffer elapsed")
	}
	advance(100 * time.Millisecond)
	v.Tick()
	if len(log.clicks) != 0 {
		t.Fatal("click fired too early")
	}
	advance(200 * time.Millisecond)
	v.Tick()
	if len(log.clicks) != 1 {
		t.Fatalf("clicks = %d, want 1", len(log.clicks))
	}
	c := log.clicks[0]
	if c.Button != ButtonPrimary {
		t.Errorf("button = %v", c.Button)
	}
	if c.Source != (Point{300, 300}) {
		t.Errorf("source point = %v, want (300,300)", c.Source)
	}
}

func TestDoubleClickSuppressesSingle(t *testing.T) {
	v, log, advance := dispatcherViewport(t)

	v.PointerDown(Point{300, 300}, ButtonPrimary)
	v.PointerUp(Point{300, 300})
	advance(100 * time.Millisecond)
	v.PointerDown(Point{301, 301}, ButtonPrimary)
	v.PointerUp(Point{301, 301})

	advance(time.Second)
	v.Tick()

	if len(log.doubles) != 1 {
		t.Fatalf("doubles = %d, want 1", len(log.doubles))
	}
	if len(log.clicks) != 0 {
		t.Errorf("clicks = %d, want 0 (suppressed by double)", len(log.clicks))
	}
}

func TestDistantSecondClickStaysSingle(t *testing.T) {
	v, log, advance := dispatcherViewport(t)

	v.PointerDown(Point{300, 300}, ButtonPrimary)
	v.PointerUp(Point{300, 300})
	advance(100 * time.Millisecond)
	v.PointerDown(Point{400, 300}, ButtonPrimary)
	v.PointerUp(Point{400, 300})

	advance(time.Second)
	v.Tick()

	if len(log.doubles) != 0 {
		t.Errorf("doubles = %d, want 0", len(log.doubles))
	}
	// The click buffer is a single slot with most-recent-wins semantics,
	// so only the later click survives.
	if len(log.clicks) != 1 {
		t.Fatalf("clicks = %d, want 1", len(log.clicks))
	}
	if log.clicks[0].Client != (Point{400, 300}) {
		t.Errorf("surviving click at %v, want (400,300)", log.clicks[0].Client)
	}
}

func TestDragSuppressesClick(t *testing.T) {
	v, log, advance := dispatcherViewport(t)

	v.PointerDown(Point{300, 300}, ButtonPrimary)
	v.PointerMove(Point{350, 300})
	v.PointerUp(Point{350, 300})

	advance(time.Second)
	v.Tick()
	if len(log.clicks) != 0 || len(log.doubles) != 0 {
		t.Errorf("clicks=%d doubles=%d after a drag", len(log.clicks), len(log.doubles))
	}
}

func TestWheelZooms(t *testing.T) {
	v, _, _ := dispatcherViewport(t)

	if v.Wheel(0, Point{400, 300}) {
		t.Error("zero delta changed the zoom")
	}
	before := v.ZoomFactor()
	if !v.Wheel(2, Point{400, 300}) {
		t.Fatal("wheel reported no change")
	}
	if v.ZoomFactor() <= before {
		t.Errorf("zoom did not increase: %v -> %v", before, v.ZoomFactor())
	}
}
