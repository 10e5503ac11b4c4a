package ui

// Actions is the set of operations input bindings can trigger. The Viewer
// implements it; input managers stay decoupled from its internals.
type Actions interface {
	Exit()
	ToggleInfo()
	NavigateNext()
	NavigatePrevious()
	JumpToFirst()
	JumpToLast()
	ToggleFullscreen()
	CycleSortMethod()
	ExpandToDirectory()
	ToggleAnimation()

	ZoomIn()
	ZoomOut()
	ZoomReset()
	ZoomFit()
	ZoomFill()
	ToggleZoomLock()
	PanStep(dx, dy float64)

	ToggleSelection()
	ClearSelection()
}

// keyboardPanStep is the distance in client pixels of one directional pan.
const keyboardPanStep = 50

// ActionExecutor maps action names from bindings onto Actions calls. It is
// shared by the keyboard and mouse binding managers.
type ActionExecutor struct{}

// ExecuteAction runs the named action. Returns false for unknown names.
func (ae *ActionExecutor) ExecuteAction(action string, actions Actions) bool {
	switch action {
	case "exit":
		actions.Exit()
	case "info":
		actions.ToggleInfo()
	case "next":
		actions.NavigateNext()
	case "previous":
		actions.NavigatePrevious()
	case "fullscreen":
		actions.ToggleFullscreen()
	case "jump_first":
		actions.JumpToFirst()
	case "jump_last":
		actions.JumpToLast()
	case "cycle_sort":
		actions.CycleSortMethod()
	case "expand_directory":
		actions.ExpandToDirectory()
	case "toggle_animation":
		actions.ToggleAnimation()

	case "zoom_in":
		actions.ZoomIn()
	case "zoom_out":
		actions.ZoomOut()
	case "zoom_reset":
		actions.ZoomReset()
	case "zoom_fit":
		actions.ZoomFit()
	case "zoom_fill":
		actions.ZoomFill()
	case "zoom_lock":
		actions.ToggleZoomLock()
	case "pan_up":
		actions.PanStep(0, -keyboardPanStep)
	case "pan_down":
		actions.PanStep(0, keyboardPanStep)
	case "pan_left":
		actions.PanStep(-keyboardPanStep, 0)
	case "pan_right":
		actions.PanStep(keyboardPanStep, 0)

	case "toggle_selection":
		actions.ToggleSelection()
	case "clear_selection":
		actions.ClearSelection()

	default:
		return false
	}

	return true
}

var globalActionExecutor = &ActionExecutor{}
