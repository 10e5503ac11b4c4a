package viewport

// ZoomSource tags what caused a zoom change.
type ZoomSource int

const (
	ZoomSourceUnknown ZoomSource = iota
	ZoomSourceUser
	ZoomSourceZoomMode
	ZoomSourceSizeChanged
)

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// NavSide identifies one of the two navigation hotspots.
type NavSide int

const (
	NavLeft NavSide = iota
	NavRight
)

// ZoomChange describes a zoom-changed notification.
type ZoomChange struct {
	Factor      float64
	Manual      bool
	ModeChanged bool
	Source      ZoomSource
}

// PanChange carries the gesture origin and current pointer location.
// Programmatic pans (directional keys) carry zero points.
type PanChange struct {
	From, To Point
}

// SelectionChange carries the selection in both coordinate spaces.
type SelectionChange struct {
	Client Rect
	Source Rect
}

// Click describes a click or double-click, with the location in both
// source and client space.
type Click struct {
	Source Point
	Client Point
	Button Button
}

// Events is the set of notifications a Viewport raises. Callbacks are
// invoked synchronously, in the order the mutations happen, on the thread
// that drives the viewport. Nil callbacks are skipped.
type Events struct {
	ZoomChanged      func(ZoomChange)
	Panned           func(PanChange)
	SelectionChanged func(SelectionChange)
	Clicked          func(Click)
	DoubleClicked    func(Click)
	NavClicked       func(NavSide)
	RedrawRequested  func()
}

func (v *Viewport) emitZoom(c ZoomChange) {
	if v.events.ZoomChanged != nil {
		v.events.ZoomChanged(c)
	}
}

func (v *Viewport) emitPan(c PanChange) {
	if v.events.Panned != nil {
		v.events.Panned(c)
	}
}

func (v *Viewport) emitSelection() {
	if v.events.SelectionChanged != nil {
		v.events.SelectionChanged(SelectionChange{
			Client: v.ClientSelection(),
			Source: v.SourceSelection(),
		})
	}
}

func (v *Viewport) emitClick(c Click, double bool) {
	if double {
		if v.events.DoubleClicked != nil {
			v.events.DoubleClicked(c)
		}
		return
	}
	if v.events.Clicked != nil {
		v.events.Clicked(c)
	}
}

func (v *Viewport) emitNav(side NavSide) {
	if v.events.NavClicked != nil {
		v.events.NavClicked(side)
	}
}

func (v *Viewport) emitRedraw() {
	if v.events.RedrawRequested != nil {
		v.events.RedrawRequested()
	}
}
