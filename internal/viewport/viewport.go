// Package viewport maintains the mapping between an image's pixel space and
// a window's client pixel space, and owns zoom, pan and rectangular-selection
// state plus the notifications raised when these change. It is independent of
// any rendering toolkit: the host feeds it image extents, viewport sizes and
// raw pointer events, and draws from the rectangles it computes.
//
// All methods must be called from the single thread that owns the viewport;
// events arriving from other goroutines have to be reposted onto that thread
// first.
package viewport

import (
	"math"
	"sort"
	"time"
)

// ZoomMode selects the policy used to derive the zoom factor from the image
// and viewport extents.
type ZoomMode int

const (
	ZoomAuto ZoomMode = iota
	ZoomScaleToWidth
	ZoomScaleToHeight
	ZoomScaleToFit
	ZoomScaleToFill
	ZoomLock
)

func (m ZoomMode) String() string {
	switch m {
	case ZoomAuto:
		return "Auto"
	case ZoomScaleToWidth:
		return "Width"
	case ZoomScaleToHeight:
		return "Height"
	case ZoomScaleToFit:
		return "Fit"
	case ZoomScaleToFill:
		return "Fill"
	case ZoomLock:
		return "Lock"
	}
	return "Unknown"
}

// Padding is the inset of the drawing area from the viewport edges.
type Padding struct {
	Left, Top, Right, Bottom float64
}

// Options configures a Viewport. Zero values fall back to defaults.
type Options struct {
	MinZoom float64 // default 0.01
	MaxZoom float64 // default 100

	// ZoomSpeed tunes continuous wheel zoom, 0..500. Higher is faster.
	ZoomSpeed float64

	// ZoomLevels, when non-empty, is an ascending ladder of permitted zoom
	// factors; wheel-notch deltas snap to the adjacent level instead of
	// scaling continuously.
	ZoomLevels []float64

	// WheelNotch is the platform's standard wheel delta per notch.
	WheelNotch float64 // default 1

	HandleSize       float64 // selection handle edge length, default 8
	HandleHitScale   float64 // hit rect size as a multiple of the indicator, default 2
	DragThreshold    float64 // pixels before a press becomes a drag, default 3
	DoubleClickTime  time.Duration // default 500ms
	DoubleClickArea  float64       // default 4 pixels
	NavButtonSize    float64       // hotspot diameter, default 48; 0 keeps default, <0 disables
	NavButtonPadding float64       // inset from drawing-area edges, default 20

	// Clock supplies the current time for click disambiguation and deferred
	// actions. Defaults to time.Now.
	Clock func() time.Time
}

// Viewport is the interaction and geometry engine. Create one with New.
type Viewport struct {
	events Events
	clock  func() time.Time

	// image
	srcW, srcH float64
	hasImage   bool

	// layout
	viewW, viewH float64
	pad          Padding

	// zoom
	zoomFactor float64
	prevZoom   float64
	minZoom    float64
	maxZoom    float64
	zoomSpeed  float64
	zoomLevels []float64
	zoomMode   ZoomMode
	manualZoom bool
	wheelNotch float64

	// derived geometry
	srcRect  Rect
	destRect Rect
	dirty    bool

	// anchor pending for the next recompute, captured with the zoom factor
	// that was current when the anchor was set
	anchor     Point
	anchorZoom float64
	hasAnchor  bool

	// per-axis clamp flags from the last recompute
	clampedX bool
	clampedY bool

	// selection
	selEnabled   bool
	selRect      Rect
	aspectW      float64
	aspectH      float64
	handleSize   float64
	handleHitMul float64

	// dispatcher
	session       pointerSession
	dragThreshold float64
	dblTime       time.Duration
	dblArea       float64
	navSize       float64
	navPad        float64
	navEnabled    bool
	nav           [2]navState
	pendingClick  deferred
	lastClick     Point
	lastClickAt   time.Time
	lastClickBtn  Button
}

// New returns a Viewport with no image loaded.
func New(opts Options) *Viewport {
	v := &Viewport{
		minZoom:       opts.MinZoom,
		maxZoom:       opts.MaxZoom,
		zoomSpeed:     clampf(opts.ZoomSpeed, 0, 500),
		wheelNotch:    opts.WheelNotch,
		handleSize:    opts.HandleSize,
		handleHitMul:  opts.HandleHitScale,
		dragThreshold: opts.DragThreshold,
		dblTime:       opts.DoubleClickTime,
		dblArea:       opts.DoubleClickArea,
		navSize:       opts.NavButtonSize,
		navPad:        opts.NavButtonPadding,
		clock:         opts.Clock,
		zoomFactor:    1,
		prevZoom:      1,
	}
	if v.minZoom <= 0 {
		v.minZoom = 0.01
	}
	if v.maxZoom <= 0 {
		v.maxZoom = 100
	}
	if v.minZoom > v.maxZoom {
		v.minZoom, v.maxZoom = v.maxZoom, v.minZoom
	}
	if v.wheelNotch <= 0 {
		v.wheelNotch = 1
	}
	if v.handleSize <= 0 {
		v.handleSize = 8
	}
	if v.handleHitMul < 1 {
		v.handleHitMul = 2
	}
	if v.dragThreshold <= 0 {
		v.dragThreshold = 3
	}
	if v.dblTime <= 0 {
		v.dblTime = 500 * time.Millisecond
	}
	if v.dblArea <= 0 {
		v.dblArea = 4
	}
	if v.navSize == 0 {
		v.navSize = 48
	}
	v.navEnabled = v.navSize > 0
	if v.navPad <= 0 {
		v.navPad = 20
	}
	if v.clock == nil {
		v.clock = time.Now
	}
	v.SetZoomLevels(opts.ZoomLevels)
	return v
}

// SetEvents installs the notification callbacks.
func (v *Viewport) SetEvents(e Events) { v.events = e }

// SetZoomLevels replaces the discrete zoom ladder. The levels are copied,
// sorted ascending and deduplicated; non-positive entries are dropped.
// An empty ladder restores continuous zooming.
func (v *Viewport) SetZoomLevels(levels []float64) {
	v.zoomLevels = v.zoomLevels[:0]
	for _, l := range levels {
		if l > 0 {
			v.zoomLevels = append(v.zoomLevels, l)
		}
	}
	sort.Float64s(v.zoomLevels)
	out := v.zoomLevels[:0]
	for i, l := range v.zoomLevels {
		if i == 0 || l != v.zoomLevels[i-1] {
			out = append(out, l)
		}
	}
	v.zoomLevels = out
}

// SetImage loads a new image extent and resets viewport and selection
// state. Width or height of zero means no image.
func (v *Viewport) SetImage(width, height float64) {
	v.srcW = math.Max(width, 0)
	v.srcH = math.Max(height, 0)
	v.hasImage = v.srcW > 0 && v.srcH > 0
	v.srcRect = Rect{}
	v.destRect = Rect{}
	v.selRect = Rect{}
	v.hasAnchor = false
	v.clampedX = false
	v.clampedY = false
	v.session = pointerSession{}
	v.pendingClick.Cancel()
	v.manualZoom = false
	v.dirty = true
	v.applyZoomMode(v.zoomMode, false, false)
}

// ClearImage unloads the image.
func (v *Viewport) ClearImage() { v.SetImage(0, 0) }

// HasImage reports whether an image is loaded.
func (v *Viewport) HasImage() bool { return v.hasImage }

// ImageSize returns the source extent.
func (v *Viewport) ImageSize() (w, h float64) { return v.srcW, v.srcH }

// SetViewportSize updates the client area extent. A non-manual zoom mode is
// recomputed so the image keeps tracking the window.
func (v *Viewport) SetViewportSize(width, height float64) {
	if width == v.viewW && height == v.viewH {
		return
	}
	v.viewW = math.Max(width, 0)
	v.viewH = math.Max(height, 0)
	v.dirty = true
	if v.hasImage && !v.manualZoom && v.zoomMode != ZoomLock {
		v.applyZoomMode(v.zoomMode, false, true)
	}
}

// ViewportSize returns the client area extent.
func (v *Viewport) ViewportSize() (w, h float64) { return v.viewW, v.viewH }

// SetPadding updates the drawing-area insets.
func (v *Viewport) SetPadding(p Padding) {
	if p == v.pad {
		return
	}
	v.pad = p
	v.dirty = true
}

// Padding returns the drawing-area insets.
func (v *Viewport) Padding() Padding { return v.pad }

// drawingArea returns the viewport minus padding, never negative.
func (v *Viewport) drawingArea() Rect {
	w := math.Max(v.viewW-v.pad.Left-v.pad.Right, 0)
	h := math.Max(v.viewH-v.pad.Top-v.pad.Bottom, 0)
	return Rect{v.pad.Left, v.pad.Top, w, h}
}

// Rects returns the current source and destination rectangles, recomputing
// them first if any input changed.
func (v *Viewport) Rects() (src, dest Rect) {
	v.recompute()
	return v.srcRect, v.destRect
}

// SourceRect returns the visible sub-rectangle of the image in source pixels.
func (v *Viewport) SourceRect() Rect {
	v.recompute()
	return v.srcRect
}

// DestRect returns the client-space rectangle the image is drawn into.
func (v *Viewport) DestRect() Rect {
	v.recompute()
	return v.destRect
}

// Clamped reports, per axis, whether the last recompute had to clamp the
// source rectangle against the image bounds.
func (v *Viewport) Clamped() (x, y bool) {
	v.recompute()
	return v.clampedX, v.clampedY
}

// ClientToSource maps a client-space point into source pixels under the
// current transform.
func (v *Viewport) ClientToSource(p Point) Point {
	v.recompute()
	z := math.Max(v.zoomFactor, epsilon)
	return Point{
		X: (p.X-v.destRect.X)/z + v.srcRect.X,
		Y: (p.Y-v.destRect.Y)/z + v.srcRect.Y,
	}
}

// SourceToClient is the exact algebraic inverse of ClientToSource.
func (v *Viewport) SourceToClient(p Point) Point {
	v.recompute()
	z := math.Max(v.zoomFactor, epsilon)
	return Point{
		X: (p.X-v.srcRect.X)*z + v.destRect.X,
		Y: (p.Y-v.srcRect.Y)*z + v.destRect.Y,
	}
}

// recompute rebuilds srcRect/destRect when the dirty flag is set. Each axis
// is handled independently: a scaled image smaller than the drawing area is
// centered with the full source visible; a larger one fills the area with a
// zoom-sized source window kept stationary under the pending anchor.
func (v *Viewport) recompute() {
	if !v.dirty {
		return
	}
	v.dirty = false
	if !v.hasImage {
		v.srcRect = Rect{}
		v.destRect = Rect{}
		v.clampedX = false
		v.clampedY = false
		v.hasAnchor = false
		return
	}

	area := v.drawingArea()
	z := math.Max(v.zoomFactor, epsilon)
	az := math.Max(v.anchorZoom, epsilon)

	oldSrc, oldDest := v.srcRect, v.destRect
	useAnchor := v.hasAnchor && !oldDest.Empty()
	v.hasAnchor = false

	v.srcRect.X, v.srcRect.W, v.destRect.X, v.destRect.W, v.clampedX = computeAxis(
		v.srcW, z, area.X, area.W, oldSrc.X, oldDest.X, az, v.anchor.X, useAnchor)
	v.srcRect.Y, v.srcRect.H, v.destRect.Y, v.destRect.H, v.clampedY = computeAxis(
		v.srcH, z, area.Y, area.H, oldSrc.Y, oldDest.Y, az, v.anchor.Y, useAnchor)
}

// computeAxis resolves one axis of the source/destination pair. Returned
// clamped is true when the source origin hit either image edge.
func computeAxis(srcExtent, zoom, drawOrigin, drawExtent, oldSrcOrigin, oldDestOrigin, anchorZoom, anchor float64, useAnchor bool) (srcO, srcE, destO, destE float64, clamped bool) {
	scaled := srcExtent * zoom
	if scaled < drawExtent {
		destE = scaled
		destO = drawOrigin + (drawExtent-destE)/2
		return 0, srcExtent, destO, destE, false
	}

	destO = drawOrigin
	destE = drawExtent
	srcE = drawExtent / math.Max(zoom, epsilon)

	srcO = oldSrcOrigin
	if useAnchor {
		// Keep the source pixel under the anchor stationary across the
		// zoom change.
		atAnchor := oldSrcOrigin + (anchor-oldDestOrigin)/anchorZoom
		srcO = atAnchor - (anchor-destO)/math.Max(zoom, epsilon)
	}

	maxO := srcExtent - srcE
	if srcO < 0 {
		srcO = 0
		clamped = true
	} else if srcO > maxO {
		srcO = maxO
		clamped = true
	}
	return srcO, srcE, destO, destE, clamped
}
