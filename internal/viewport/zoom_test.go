package viewport

import (
	"testing"
)

func TestSetZoomFactorClamps(t *testing.T) {
	tests := []struct {
		name    string
		request float64
		want    float64
	}{
		{"below minimum", 0.001, 0.01},
		{"above maximum", 500, 100},
		{"inside range", 2.5, 2.5},
		{"at minimum", 0.01, 0.01},
		{"at maximum", 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestViewport(t)
			v.SetImage(100, 100)
			v.SetZoomFactor(tt.request, true)
			if got := v.ZoomFactor(); got != tt.want {
				t.Errorf("ZoomFactor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetZoomFactorNoOpWhenUnchanged(t *testing.T) {
	v := newTestViewport(t)
	v.SetImage(100, 100)
	v.SetZoomFactor(2, true)

	fired := 0
	v.SetEvents(Events{ZoomChanged: func(ZoomChange) { fired++ }})
	v.SetZoomFactor(2, true)
	v.SetZoomFactor(2000, true) // clamps to 100, a real change
	if fired != 1 {
		t.Errorf("ZoomChanged fired %d times, want 1", fired)
	}
}

func TestCalculateZoomFactor(t *testing.T) {
	tests := []struct {
		name                     string
		mode                     ZoomMode
		srcW, srcH, viewW, viewH float64
		want                     float64
	}{
		{"auto picks fit when image is larger", ZoomAuto, 2000, 1000, 800, 600, 0.4},
		{"auto never upscales", ZoomAuto, 400, 300, 800, 600, 1.0},
		{"fit", ZoomScaleToFit, 2000, 1000, 800, 600, 0.4},
		{"fill", ZoomScaleToFill, 2000, 1000, 800, 600, 0.6},
		{"width", ZoomScaleToWidth, 2000, 1000, 800, 600, 0.4},
		{"height", ZoomScaleToHeight, 2000, 1000, 800, 600, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestViewport(t)
			got := v.CalculateZoomFactor(tt.mode, tt.srcW, tt.srcH, tt.viewW, tt.viewH)
			if !almostEqual(got, tt.want) {
				t.Errorf("CalculateZoomFactor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateZoomFactorZeroSourceReturnsCurrent(t *testing.T) {
	v := newTestViewport(t)
	v.SetImage(100, 100)
	v.SetZoomFactor(2, true)
	if got := v.CalculateZoomFactor(ZoomScaleToFit, 0, 0, 800, 600); got != 2 {
		t.Errorf("zero source returned %v, want current factor 2", got)
	}
}

func TestZoomLockKeepsFactor(t *testing.T) {
	v := newTestViewport(t)
	v.SetViewportSize(800, 600)
	v.SetImage(2000, 1000)
	v.SetZoomFactor(1.5, true)

	v.SetZoomMode(ZoomLock, false, false)
	if v.ZoomFactor() != 1.5 {
		t.Errorf("lock changed the factor to %v", v.ZoomFactor())
	}

	// Lock also pins the factor across resizes.
	v.SetViewportSize(400, 300)
	if v.ZoomFactor() != 1.5 {
		t.Errorf("lock did not survive resize: %v", v.ZoomFactor())
	}
}

func TestSetZoomModeReportsModeChange(t *testing.T) {
	v := newTestViewport(t)
	v.SetViewportSize(800, 600)
	v.SetImage(2000, 1000)

	var last ZoomChange
	v.SetEvents(Events{ZoomChanged: func(c ZoomChange) { last = c }})

	v.SetZoomMode(ZoomScaleToFill, false, false)
	if !last.ModeChanged || last.Source != ZoomSourceZoomMode {
		t.Errorf("fill change = %+v", last)
	}

	v.SetZoomMode(ZoomScaleToFill, false, false)
	if last.ModeChanged {
		t.Error("re-applying the same mode reported ModeChanged")
	}
}

func TestZoomByDeltaLadder(t *testing.T) {
	newLadder := func(start float64) *Viewport {
		v := newTestViewport(t)
		v.SetViewportSize(800, 600)
		v.SetImage(2000, 1000)
		v.SetZoomLevels([]float64{0.25, 0.5, 1, 2, 4})
		v.SetZoomFactor(start, true)
		return v
	}
	center := Point{400, 300}

	t.Run("in picks next level", func(t *testing.T) {
		v := newLadder(1)
		if !v.ZoomByDelta(1, center) || v.ZoomFactor() != 2 {
			t.Errorf("factor = %v, want 2", v.ZoomFactor())
		}
	})
	t.Run("out picks previous level", func(t *testing.T) {
		v := newLadder(1)
		if !v.ZoomByDelta(-1, center) || v.ZoomFactor() != 0.5 {
			t.Errorf("factor = %v, want 0.5", v.ZoomFactor())
		}
	})
	t.Run("no-op past the top", func(t *testing.T) {
		v := newLadder(4)
		if v.ZoomByDelta(1, center) || v.ZoomFactor() != 4 {
			t.Errorf("factor = %v, want 4 untouched", v.ZoomFactor())
		}
	})
	t.Run("no-op past the bottom", func(t *testing.T) {
		v := newLadder(0.25)
		if v.ZoomByDelta(-1, center) || v.ZoomFactor() != 0.25 {
			t.Errorf("factor = %v, want 0.25 untouched", v.ZoomFactor())
		}
	})
	t.Run("larger delta bypasses the ladder", func(t *testing.T) {
		v := newLadder(1)
		if !v.ZoomByDelta(3, center) {
			t.Fatal("continuous zoom reported no change")
		}
		if got := v.ZoomFactor(); got == 2 || got <= 1 {
			t.Errorf("factor = %v, want a continuous value above 1", got)
		}
	})
}

func TestZoomByDeltaContinuous(t *testing.T) {
	v := newTestViewport(t)
	v.SetViewportSize(800, 600)
	v.SetImage(2000, 1000)
	v.SetZoomFactor(1, true)

	center := Point{400, 300}
	if !v.ZoomByDelta(2, center) {
		t.Fatal("zoom in reported no change")
	}
	wantIn := 1 * (1 + 2/501.0)
	if !almostEqual(v.ZoomFactor(), wantIn) {
		t.Errorf("zoom in factor = %v, want %v", v.ZoomFactor(), wantIn)
	}

	v.SetZoomFactor(1, true)
	if !v.ZoomByDelta(-2, center) {
		t.Fatal("zoom out reported no change")
	}
	wantOut := 1 / (1 + 2/501.0)
	if !almostEqual(v.ZoomFactor(), wantOut) {
		t.Errorf("zoom out factor = %v, want %v", v.ZoomFactor(), wantOut)
	}
}

func TestZoomByDeltaSubstitutesCenterForOutsideAnchor(t *testing.T) {
	v := newTestViewport(t)
	v.SetViewportSize(800, 600)
	v.SetImage(2000, 1000)
	v.SetZoomFactor(1, true)
	v.Rects()

	center := Point{400, 300}
	before := v.ClientToSource(center)
	v.ZoomByDelta(2, Point{-50, 900})
	after := v.ClientToSource(center)

	if !almostEqual(before.X, after.X) || !almostEqual(before.Y, after.Y) {
		t.Errorf("viewport center moved: before=%v after=%v", before, after)
	}
}

func TestZoomToPointRejectsLimits(t *testing.T) {
	v := newTestViewport(t)
	v.SetViewportSize(800, 600)
	v.SetImage(2000, 1000)
	v.SetZoomFactor(1, true)

	anchor := Point{400, 300}
	if v.ZoomToPoint(100, anchor) {
		t.Error("accepted factor at maximum")
	}
	if v.ZoomToPoint(0.01, anchor) {
		t.Error("accepted factor at minimum")
	}
	if v.ZoomToPoint(1, anchor) {
		t.Error("accepted unchanged factor")
	}
	if v.ZoomFactor() != 1 {
		t.Errorf("factor changed to %v", v.ZoomFactor())
	}
}

func TestSetZoomLevelsNormalizes(t *testing.T) {
	v := newTestViewport(t)
	v.SetZoomLevels([]float64{2, 0.5, 2, -1, 0, 1})
	want := []float64{0.5, 1, 2}
	if len(v.zoomLevels) != len(want) {
		t.Fatalf("levels = %v, want %v", v.zoomLevels, want)
	}
	for i := range want {
		if v.zoomLevels[i] != want[i] {
			t.Fatalf("levels = %v, want %v", v.zoomLevels, want)
		}
	}
}
