package viewport

import "math"

// ZoomFactor returns the current zoom factor, always inside the limits.
func (v *Viewport) ZoomFactor() float64 { return v.zoomFactor }

// PreviousZoomFactor returns the factor before the most recent change.
func (v *Viewport) PreviousZoomFactor() float64 { return v.prevZoom }

// Mode returns the current zoom mode.
func (v *Viewport) Mode() ZoomMode { return v.zoomMode }

// IsManualZoom reports whether the factor was last set by the user rather
// than by a mode recompute. The flag is sticky until an explicit mode
// recompute clears it.
func (v *Viewport) IsManualZoom() bool { return v.manualZoom }

// ZoomLimits returns the clamping bounds.
func (v *Viewport) ZoomLimits() (min, max float64) { return v.minZoom, v.maxZoom }

// SetZoomFactor sets the zoom factor, clamped to the limits. No-op when the
// clamped value equals the current factor.
func (v *Viewport) SetZoomFactor(factor float64, manual bool) {
	c := clampf(factor, v.minZoom, v.maxZoom)
	if c == v.zoomFactor {
		return
	}
	v.prevZoom = v.zoomFactor
	v.zoomFactor = c
	v.manualZoom = manual
	v.dirty = true
	v.emitZoom(ZoomChange{Factor: c, Manual: manual, Source: ZoomSourceUnknown})
}

// CalculateZoomFactor computes the factor a mode would choose for the given
// extents, honoring the current padding. A zero source extent returns the
// current factor unchanged.
func (v *Viewport) CalculateZoomFactor(mode ZoomMode, srcW, srcH, viewW, viewH float64) float64 {
	if srcW <= 0 || srcH <= 0 {
		return v.zoomFactor
	}
	widthScale := (viewW - v.pad.Left - v.pad.Right) / srcW
	heightScale := (viewH - v.pad.Top - v.pad.Bottom) / srcH

	switch mode {
	case ZoomScaleToWidth:
		return widthScale
	case ZoomScaleToHeight:
		return heightScale
	case ZoomScaleToFit:
		return math.Min(widthScale, heightScale)
	case ZoomScaleToFill:
		return math.Max(widthScale, heightScale)
	case ZoomLock:
		return v.zoomFactor
	default: // ZoomAuto: show at 100% when the image fits, never upscale
		if widthScale >= 1 && heightScale >= 1 {
			return 1
		}
		return math.Min(widthScale, heightScale)
	}
}

// SetZoomMode applies a zoom-mode policy and recomputes the factor.
func (v *Viewport) SetZoomMode(mode ZoomMode, manual, fromResize bool) {
	v.applyZoomMode(mode, manual, fromResize)
}

func (v *Viewport) applyZoomMode(mode ZoomMode, manual, fromResize bool) {
	modeChanged := mode != v.zoomMode
	v.zoomMode = mode

	f := clampf(v.CalculateZoomFactor(mode, v.srcW, v.srcH, v.viewW, v.viewH), v.minZoom, v.maxZoom)
	v.prevZoom = v.zoomFactor
	v.zoomFactor = f
	v.manualZoom = manual
	v.dirty = true

	src := ZoomSourceZoomMode
	if fromResize {
		src = ZoomSourceSizeChanged
	}
	v.emitZoom(ZoomChange{Factor: f, Manual: manual, ModeChanged: modeChanged, Source: src})
}

// ZoomByDelta zooms in (positive delta) or out around the anchor point.
// With a zoom ladder configured, a delta of exactly one wheel notch snaps to
// the adjacent level; past the last level it is a no-op. Otherwise the
// factor scales continuously, faster for higher zoom speeds. Returns whether
// the factor changed.
func (v *Viewport) ZoomByDelta(delta float64, anchor Point) bool {
	if delta == 0 || !v.hasImage {
		return false
	}

	var target float64
	if len(v.zoomLevels) > 0 && math.Abs(delta) == v.wheelNotch {
		ok := false
		if delta > 0 {
			for _, l := range v.zoomLevels {
				if l > v.zoomFactor {
					target, ok = l, true
					break
				}
			}
		} else {
			for i := len(v.zoomLevels) - 1; i >= 0; i-- {
				if v.zoomLevels[i] < v.zoomFactor {
					target, ok = v.zoomLevels[i], true
					break
				}
			}
		}
		if !ok {
			return false
		}
	} else {
		speed := delta / (501 - v.zoomSpeed)
		if delta > 0 {
			target = v.zoomFactor * (1 + speed)
		} else {
			target = v.zoomFactor / (1 - speed)
		}
	}

	target = clampf(target, v.minZoom, v.maxZoom)
	if target == v.zoomFactor {
		return false
	}

	if !(Rect{0, 0, v.viewW, v.viewH}).Contains(anchor) {
		anchor = Point{v.viewW / 2, v.viewH / 2}
	}

	v.prevZoom = v.zoomFactor
	v.anchor = anchor
	v.anchorZoom = v.zoomFactor
	v.hasAnchor = true
	v.zoomFactor = target
	v.manualZoom = true
	v.dirty = true
	v.emitZoom(ZoomChange{Factor: target, Manual: true, Source: ZoomSourceUser})
	return true
}

// ZoomToPoint sets an explicit factor while keeping the anchor point
// visually fixed. Factors at or beyond the limits are rejected.
func (v *Viewport) ZoomToPoint(factor float64, anchor Point) bool {
	if !v.hasImage || factor >= v.maxZoom || factor <= v.minZoom || factor == v.zoomFactor {
		return false
	}
	v.prevZoom = v.zoomFactor
	v.anchor = anchor
	v.anchorZoom = v.zoomFactor
	v.hasAnchor = true
	v.zoomFactor = factor
	v.manualZoom = true
	v.dirty = true
	v.emitZoom(ZoomChange{Factor: factor, Manual: true, Source: ZoomSourceUser})
	return true
}
