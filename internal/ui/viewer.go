package ui

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/afero"

	"iv/internal/config"
	"iv/internal/imageio"
	"iv/internal/scan"
	"iv/internal/viewport"
)

const overlayMessageDuration = 1500 * time.Millisecond

// Viewer is the ebiten.Game driving the whole application: it routes raw
// input into the viewport engine, keeps the current image and its animation
// state, and draws everything.
type Viewer struct {
	cfg          config.Config
	configStatus config.LoadResult

	fs      afero.Fs
	entries []scan.Entry
	idx     int

	images   *Manager
	vp       *viewport.Viewport
	renderer *renderer
	km       *KeybindingManager
	mm       *MousebindingManager

	frames   *Frames
	animator *imageio.Animator

	showInfo   bool
	fullscreen bool
	savedWinW  int
	savedWinH  int

	overlayMsg   string
	overlayUntil time.Time

	viewW, viewH int
	lastUpdate   time.Time
}

// NewViewer builds the game from a loaded config and a scanned entry list.
func NewViewer(result config.LoadResult, entries []scan.Entry) *Viewer {
	cfg := result.Config

	vp := viewport.New(viewport.Options{
		MinZoom:          cfg.MinZoom,
		MaxZoom:          cfg.MaxZoom,
		ZoomSpeed:        cfg.ZoomSpeed,
		ZoomLevels:       cfg.ZoomLevels,
		WheelNotch:       cfg.WheelNotch,
		HandleSize:       cfg.HandleSize,
		DragThreshold:    cfg.DragThreshold,
		DoubleClickTime:  time.Duration(cfg.DoubleClickMs) * time.Millisecond,
		DoubleClickArea:  cfg.DoubleClickArea,
		NavButtonSize:    cfg.NavButtonSize,
		NavButtonPadding: cfg.NavButtonPadding,
	})

	v := &Viewer{
		cfg:          cfg,
		configStatus: result,
		fs:           afero.NewOsFs(),
		entries:      entries,
		images:       NewManager(cfg.CacheSize, cfg.PreloadCount, cfg.PreloadEnabled),
		vp:           vp,
		renderer:     newRenderer(),
		km:           NewKeybindingManager(cfg.Keybindings),
		mm:           NewMousebindingManager(cfg.Mousebindings, GetDefaultMouseSettings()),
		fullscreen:   cfg.Fullscreen,
	}

	v.images.SetEntries(entries)

	if cfg.SelectionEnabled {
		vp.EnableSelection()
		vp.SetSelectionAspect(cfg.SelectionAspectW, cfg.SelectionAspectH)
	}

	vp.SetEvents(viewport.Events{
		ZoomChanged: func(c viewport.ZoomChange) {
			if c.Manual || c.ModeChanged {
				v.showOverlay(fmt.Sprintf("%d%%", int(c.Factor*100+0.5)))
			}
		},
		SelectionChanged: func(c viewport.SelectionChange) {
			debugLog("Selection: client=%+v source=%+v", c.Client, c.Source)
		},
		Clicked: func(c viewport.Click) {
			debugLog("Click: source=%+v button=%d", c.Source, c.Button)
		},
		DoubleClicked: func(viewport.Click) {
			v.ToggleFullscreen()
		},
		NavClicked: func(side viewport.NavSide) {
			if side == viewport.NavLeft {
				v.NavigatePrevious()
			} else {
				v.NavigateNext()
			}
		},
	})

	v.loadCurrent(NavigationJump)

	return v
}

// showOverlay replaces any visible transient message. The newest message
// always wins; expiry is checked each Update.
func (v *Viewer) showOverlay(msg string) {
	v.overlayMsg = msg
	v.overlayUntil = time.Now().Add(overlayMessageDuration)
}

// loadCurrent fetches the frames for the current index, resets animation
// state and kicks off preloading around it.
func (v *Viewer) loadCurrent(direction NavigationDirection) {
	v.frames = v.images.GetFrames(v.idx)
	if v.frames == nil {
		v.animator = nil
		v.vp.ClearImage()
		return
	}

	v.animator = imageio.NewAnimatorForDelays(v.frames.Delays)
	v.vp.SetImage(float64(v.frames.Width), float64(v.frames.Height))
	v.images.StartPreload(v.idx, direction)
}

// currentImage returns the frame the animator points at.
func (v *Viewer) currentImage() *ebiten.Image {
	if v.frames == nil || len(v.frames.Images) == 0 {
		return nil
	}
	i := 0
	if v.animator != nil && v.animator.Frame() < len(v.frames.Images) {
		i = v.animator.Frame()
	}
	return v.frames.Images[i]
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	now := time.Now()
	dt := time.Duration(0)
	if !v.lastUpdate.IsZero() {
		dt = now.Sub(v.lastUpdate)
	}
	v.lastUpdate = now

	v.handleKeyboard()
	v.handlePointer()
	v.handleMouseBindings()

	v.vp.Tick()

	if v.animator != nil {
		v.animator.Advance(dt)
	}

	if v.overlayMsg != "" && now.After(v.overlayUntil) {
		v.overlayMsg = ""
	}

	return nil
}

// discreteActions are executed on key press; pan actions are handled
// separately because they repeat while held.
var discreteActions = []string{
	"exit", "info", "next", "previous", "fullscreen",
	"jump_first", "jump_last", "cycle_sort", "expand_directory",
	"toggle_animation",
	"zoom_in", "zoom_out", "zoom_reset", "zoom_fit", "zoom_fill", "zoom_lock",
	"toggle_selection", "clear_selection",
}

func (v *Viewer) handleKeyboard() {
	for _, action := range discreteActions {
		v.km.ExecuteAction(action, v)
	}

	dx, dy := 0.0, 0.0
	if v.km.CheckActionHeld("pan_left") {
		dx -= keyboardPanStep
	}
	if v.km.CheckActionHeld("pan_right") {
		dx += keyboardPanStep
	}
	if v.km.CheckActionHeld("pan_up") {
		dy -= keyboardPanStep
	}
	if v.km.CheckActionHeld("pan_down") {
		dy += keyboardPanStep
	}
	if dx != 0 || dy != 0 {
		// A fraction of the step per tick, roughly 500px/s at 60 TPS
		v.PanStep(dx/6, dy/6)
	}
}

// handlePointer feeds left/right button gestures, cursor movement and the
// unmodified wheel into the viewport dispatcher.
func (v *Viewer) handlePointer() {
	x, y := ebiten.CursorPosition()
	p := viewport.Point{X: float64(x), Y: float64(y)}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		v.vp.PointerDown(p, viewport.ButtonPrimary)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		v.vp.PointerDown(p, viewport.ButtonSecondary)
	}

	v.vp.PointerMove(p)

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) ||
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) {
		v.vp.PointerUp(p)
	}

	if _, dy := ebiten.Wheel(); dy != 0 && !anyModifierPressed() {
		v.vp.Wheel(dy*v.cfg.WheelNotch, p)
	}
}

func anyModifierPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyShift) ||
		ebiten.IsKeyPressed(ebiten.KeyControl) ||
		ebiten.IsKeyPressed(ebiten.KeyAlt)
}

func (v *Viewer) handleMouseBindings() {
	for _, action := range discreteActions {
		v.mm.ExecuteAction(action, v)
	}
}

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	v.renderer.drawImage(screen, v.currentImage(), v.vp)
	v.renderer.drawSelection(screen, v.vp)
	v.renderer.drawNavButtons(screen, v.vp)

	if v.showInfo {
		v.renderer.drawInfo(screen, v.buildInfoString())
	}
	if v.overlayMsg != "" {
		v.renderer.drawOverlayMessage(screen, v.overlayMsg)
	}
}

// Layout implements ebiten.Game and keeps the viewport sized to the window.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != v.viewW || outsideHeight != v.viewH {
		v.viewW, v.viewH = outsideWidth, outsideHeight
		v.vp.SetViewportSize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

func (v *Viewer) buildInfoString() string {
	zoom := int(v.vp.ZoomFactor()*100 + 0.5)
	sortName := scan.Strategy(v.cfg.SortMethod).Name()
	info := fmt.Sprintf("%d / %d   %d%% (%s)   %s",
		v.idx+1, len(v.entries), zoom, v.vp.Mode(), sortName)
	if v.configStatus.Status != "OK" && v.configStatus.Status != "Default" {
		info += "   config: " + v.configStatus.Status
	}
	return info
}

func (v *Viewer) saveCurrentWindowSize() {
	if v.fullscreen {
		// Save the size from before fullscreen
		if v.savedWinW > 0 && v.savedWinH > 0 {
			v.cfg.WindowWidth = v.savedWinW
			v.cfg.WindowHeight = v.savedWinH
		}
	} else {
		w, h := ebiten.WindowSize()
		v.cfg.WindowWidth = w
		v.cfg.WindowHeight = h
	}
	config.Save(v.cfg)
}

// Actions implementation

func (v *Viewer) Exit() {
	v.saveCurrentWindowSize()
	v.images.StopPreload()
	os.Exit(0)
}

func (v *Viewer) ToggleInfo() { v.showInfo = !v.showInfo }

func (v *Viewer) NavigateNext() {
	if len(v.entries) == 0 {
		return
	}
	v.idx = (v.idx + 1) % len(v.entries)
	v.loadCurrent(NavigationForward)
}

func (v *Viewer) NavigatePrevious() {
	if len(v.entries) == 0 {
		return
	}
	v.idx--
	if v.idx < 0 {
		v.idx = len(v.entries) - 1
	}
	v.loadCurrent(NavigationBackward)
}

func (v *Viewer) JumpToFirst() {
	if len(v.entries) == 0 || v.idx == 0 {
		return
	}
	v.idx = 0
	v.loadCurrent(NavigationJump)
}

func (v *Viewer) JumpToLast() {
	if len(v.entries) == 0 || v.idx == len(v.entries)-1 {
		return
	}
	v.idx = len(v.entries) - 1
	v.loadCurrent(NavigationJump)
}

func (v *Viewer) ToggleFullscreen() {
	v.fullscreen = !v.fullscreen
	if v.fullscreen {
		v.savedWinW, v.savedWinH = ebiten.WindowSize()
		ebiten.SetFullscreen(true)
	} else {
		ebiten.SetFullscreen(false)
		if v.savedWinW > 0 && v.savedWinH > 0 {
			ebiten.SetWindowSize(v.savedWinW, v.savedWinH)
		}
	}
}

// CycleSortMethod re-sorts the entries with the next strategy while keeping
// the current image selected.
func (v *Viewer) CycleSortMethod() {
	v.cfg.SortMethod = (v.cfg.SortMethod + 1) % len(scan.AllStrategies())
	strategy := scan.Strategy(v.cfg.SortMethod)

	current := ""
	if v.idx < len(v.entries) {
		current = v.entries[v.idx].Path
	}

	v.entries = strategy.Sort(v.entries)
	v.images.SetEntries(v.entries)

	for i, e := range v.entries {
		if e.Path == current {
			v.idx = i
			break
		}
	}

	v.showOverlay("Sort: " + strategy.Name())
	v.images.StartPreload(v.idx, NavigationJump)
}

// ExpandToDirectory widens a single-file invocation to the file's directory.
func (v *Viewer) ExpandToDirectory() {
	if len(v.entries) != 1 || v.entries[0].IsArchiveEntry() {
		return
	}
	current := v.entries[0].Path

	entries, err := scan.SameDirectory(v.fs, current, v.cfg.SortMethod)
	if err != nil {
		log.Printf("Warning: Failed to scan directory of %s: %v", current, err)
		return
	}
	if len(entries) <= 1 {
		return
	}

	v.entries = entries
	v.images.SetEntries(entries)
	for i, e := range entries {
		if e.Path == current {
			v.idx = i
			break
		}
	}

	v.showOverlay(fmt.Sprintf("%d images", len(entries)))
	v.images.StartPreload(v.idx, NavigationJump)
}

func (v *Viewer) ToggleAnimation() {
	if v.animator == nil || v.frames == nil || !v.frames.Animated() {
		return
	}
	v.animator.SetPlaying(!v.animator.Playing())
}

func (v *Viewer) viewCenter() viewport.Point {
	w, h := v.vp.ViewportSize()
	return viewport.Point{X: w / 2, Y: h / 2}
}

func (v *Viewer) ZoomIn() {
	v.vp.ZoomByDelta(v.cfg.WheelNotch, v.viewCenter())
}

func (v *Viewer) ZoomOut() {
	v.vp.ZoomByDelta(-v.cfg.WheelNotch, v.viewCenter())
}

func (v *Viewer) ZoomReset() {
	v.vp.SetZoomFactor(1, true)
}

func (v *Viewer) ZoomFit() {
	v.vp.SetZoomMode(viewport.ZoomAuto, false, false)
}

func (v *Viewer) ZoomFill() {
	v.vp.SetZoomMode(viewport.ZoomScaleToFill, false, false)
}

func (v *Viewer) ToggleZoomLock() {
	if v.vp.Mode() == viewport.ZoomLock {
		v.vp.SetZoomMode(viewport.ZoomAuto, false, false)
		v.showOverlay("Zoom unlocked")
	} else {
		v.vp.SetZoomMode(viewport.ZoomLock, false, false)
		v.showOverlay("Zoom locked")
	}
}

func (v *Viewer) PanStep(dx, dy float64) {
	v.vp.PanBy(dx, dy, viewport.Point{}, viewport.Point{})
}

func (v *Viewer) ToggleSelection() {
	if v.vp.SelectionEnabled() {
		v.vp.DisableSelection()
		v.showOverlay("Selection off")
	} else {
		v.vp.EnableSelection()
		v.vp.SetSelectionAspect(v.cfg.SelectionAspectW, v.cfg.SelectionAspectH)
		v.showOverlay("Selection on")
	}
}

func (v *Viewer) ClearSelection() {
	v.vp.ClearSelection()
}
