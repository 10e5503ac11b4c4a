package viewport

import (
	"math"
	"testing"
)

// selectionViewport returns a viewport whose destination rectangle covers
// the whole 800x600 client area.
func selectionViewport(t *testing.T) *Viewport {
	t.Helper()
	v := newTestViewport(t)
	v.SetViewportSize(800, 600)
	v.SetImage(2000, 1000)
	v.SetZoomFactor(1, true)
	v.EnableSelection()
	return v
}

func TestClientSelectionClampIsIdempotent(t *testing.T) {
	v := selectionViewport(t)
	v.SetSelection(Rect{-50, -50, 300, 300})

	once := v.ClientSelection()
	v.SetSelection(once)
	twice := v.ClientSelection()

	if once != twice {
		t.Errorf("clamp not idempotent: %v then %v", once, twice)
	}
	if once.X != 0 || once.Y != 0 || once.W != 250 || once.H != 250 {
		t.Errorf("clamped selection = %v", once)
	}
}

func TestSelectionDisabledIsNoOp(t *testing.T) {
	v := newTestViewport(t)
	v.SetViewportSize(800, 600)
	v.SetImage(2000, 1000)
	v.SetZoomFactor(1, true)

	v.SetSelection(Rect{10, 10, 100, 100})
	if !v.ClientSelection().Empty() {
		t.Errorf("selection accepted while disabled: %v", v.ClientSelection())
	}
	if !v.SourceSelection().Empty() {
		t.Errorf("source selection while disabled: %v", v.SourceSelection())
	}
	if v.SelectionHandles() != nil {
		t.Error("handles while disabled")
	}
}

func TestDisableSelectionClears(t *testing.T) {
	v := selectionViewport(t)
	v.SetSelection(Rect{10, 10, 100, 100})

	fired := false
	v.SetEvents(Events{SelectionChanged: func(SelectionChange) { fired = true }})
	v.DisableSelection()

	if !fired {
		t.Error("no selection-changed on disable")
	}
	v.EnableSelection()
	if !v.ClientSelection().Empty() {
		t.Errorf("selection survived disable: %v", v.ClientSelection())
	}
}

func TestSourceSelectionProjection(t *testing.T) {
	v := selectionViewport(t)
	v.SetZoomFactor(2, true)
	v.Rects()

	// At zoom 2 with the source window starting at the origin, client
	// (100,60)..(300,200) covers source (50,30)..(150,100).
	v.SetSelection(Rect{100, 60, 200, 140})
	src := v.SourceSelection()
	want := Rect{50, 30, 100, 70}
	if src != want {
		t.Errorf("SourceSelection() = %v, want %v", src, want)
	}
}

func TestSourceSelectionSnapsToWholePixels(t *testing.T) {
	v := selectionViewport(t)
	v.SetZoomFactor(3, true)
	v.Rects()

	v.SetSelection(Rect{10, 10, 100, 100})
	src := v.SourceSelection()

	if src.X != math.Floor(src.X) || src.Y != math.Floor(src.Y) {
		t.Errorf("origin not floored: %v", src)
	}
	if src.Right() != math.Ceil(src.Right()) || src.Bottom() != math.Ceil(src.Bottom()) {
		t.Errorf("far corner not ceiled: %v", src)
	}
	srcW, srcH := v.ImageSize()
	if src.X < 0 || src.Y < 0 || src.Right() > srcW || src.Bottom() > srcH {
		t.Errorf("source selection out of image bounds: %v", src)
	}
}

func TestSelectionHandleLayout(t *testing.T) {
	v := selectionViewport(t)
	v.SetSelection(Rect{100, 100, 200, 150})

	handles := v.SelectionHandles()
	if len(handles) != 8 {
		t.Fatalf("got %d handles, want 8", len(handles))
	}
	byDir := map[HandleDir]Handle{}
	for _, h := range handles {
		byDir[h.Dir] = h
	}

	tl := byDir[HandleTopLeft]
	if c := tl.Indicator.Center(); !almostEqual(c.X, 100) || !almostEqual(c.Y, 100) {
		t.Errorf("top-left indicator centered at %v", c)
	}
	br := byDir[HandleBottomRight]
	if c := br.Indicator.Center(); !almostEqual(c.X, 300) || !almostEqual(c.Y, 250) {
		t.Errorf("bottom-right indicator centered at %v", c)
	}
	for _, h := range handles {
		if h.Hit.W <= h.Indicator.W || h.Hit.H <= h.Indicator.H {
			t.Errorf("handle %v hit rect %v not larger than indicator %v", h.Dir, h.Hit, h.Indicator)
		}
	}
}

func TestEdgeHandlesSuppressedOnSmallSelections(t *testing.T) {
	v := selectionViewport(t)
	// Narrower than 5x the 8px handle size on both axes: corners only.
	v.SetSelection(Rect{100, 100, 30, 30})

	handles := v.SelectionHandles()
	if len(handles) != 4 {
		t.Fatalf("got %d handles, want 4 corners", len(handles))
	}
	for _, h := range handles {
		switch h.Dir {
		case HandleTop, HandleBottom, HandleLeft, HandleRight:
			t.Errorf("edge handle %v present on a small selection", h.Dir)
		}
	}

	// Wide but short: horizontal edge handles return, vertical stay hidden.
	v.SetSelection(Rect{100, 100, 200, 30})
	dirs := map[HandleDir]bool{}
	for _, h := range v.SelectionHandles() {
		dirs[h.Dir] = true
	}
	if !dirs[HandleTop] || !dirs[HandleBottom] {
		t.Error("top/bottom handles missing on a wide selection")
	}
	if dirs[HandleLeft] || dirs[HandleRight] {
		t.Error("left/right handles present on a short selection")
	}
}

func TestAspectResizeBottomRightKeepsRatio(t *testing.T) {
	endpoints := []Point{
		{400, 400},
		{700, 580},
		{790, 300},
		{140, 130},
		{900, 700}, // past the destination rectangle
	}
	for _, p := range endpoints {
		v := selectionViewport(t)
		v.SetSelectionAspect(16, 9)
		v.SetSelection(Rect{100, 100, 160, 90})

		// Grab the bottom-right handle and drag.
		v.PointerDown(Point{260, 190}, ButtonPrimary)
		v.PointerMove(p)
		v.PointerUp(p)

		sel := v.ClientSelection()
		if sel.Empty() {
			t.Errorf("endpoint %v: selection collapsed", p)
			continue
		}
		if ratio := sel.W / sel.H; math.Abs(ratio-16.0/9.0) > 1e-6 {
			t.Errorf("endpoint %v: ratio = %v, want 16/9", p, ratio)
		}
		dest := v.DestRect()
		if sel.X < dest.X-1e-9 || sel.Y < dest.Y-1e-9 ||
			sel.Right() > dest.Right()+1e-9 || sel.Bottom() > dest.Bottom()+1e-9 {
			t.Errorf("endpoint %v: selection %v escapes dest %v", p, sel, dest)
		}
	}
}

func TestAspectDrawKeepsRatio(t *testing.T) {
	v := selectionViewport(t)
	v.SetSelectionAspect(4, 3)

	v.PointerDown(Point{200, 200}, ButtonPrimary)
	v.PointerMove(Point{500, 260})
	sel := v.ClientSelection()
	if ratio := sel.W / sel.H; math.Abs(ratio-4.0/3.0) > 1e-6 {
		t.Errorf("ratio = %v, want 4/3", ratio)
	}

	// Dragging up-left of the anchor keeps the anchor corner fixed.
	v.PointerMove(Point{40, 60})
	sel = v.ClientSelection()
	if !almostEqual(sel.Right(), 200) || !almostEqual(sel.Bottom(), 200) {
		t.Errorf("anchor corner moved: %v", sel)
	}
	if ratio := sel.W / sel.H; math.Abs(ratio-4.0/3.0) > 1e-6 {
		t.Errorf("ratio = %v, want 4/3", ratio)
	}
}

func TestFreeFormResizeMovesSingleEdge(t *testing.T) {
	v := selectionViewport(t)
	v.SetSelection(Rect{100, 100, 200, 150})

	// Right edge handle sits at (300, 175).
	v.PointerDown(Point{300, 175}, ButtonPrimary)
	v.PointerMove(Point{350, 175})
	sel := v.ClientSelection()

	want := Rect{100, 100, 250, 150}
	if sel != want {
		t.Errorf("selection = %v, want %v", sel, want)
	}
}

func TestSelectionMoveStaysInsideDest(t *testing.T) {
	v := selectionViewport(t)
	v.SetSelection(Rect{100, 100, 200, 150})

	v.PointerDown(Point{150, 150}, ButtonPrimary)
	moves := []Point{
		{-500, -500},
		{3000, 50},
		{400, 10000},
		{760, 580},
		{5, 5},
	}
	dest := v.DestRect()
	for _, p := range moves {
		v.PointerMove(p)
		sel := v.ClientSelection()
		if sel.W != 200 || sel.H != 150 {
			t.Errorf("move to %v resized the selection: %v", p, sel)
		}
		if sel.X < dest.X || sel.Y < dest.Y || sel.Right() > dest.Right() || sel.Bottom() > dest.Bottom() {
			t.Errorf("move to %v escaped dest: %v", p, sel)
		}
	}
}
