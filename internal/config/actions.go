package config

// ActionDefinition defines an action with its default keybindings, mouse
// bindings, and description.
type ActionDefinition struct {
	Name         string
	Keys         []string
	MouseActions []string
	Description  string
}

// actionDefinitions contains all action definitions with default key and
// mouse bindings. Input managers build their dispatch tables from this.
var actionDefinitions = []ActionDefinition{
	// Left-button clicks, drags and the unmodified wheel are routed to the
	// viewport gesture dispatcher, so only modified wheel and middle-button
	// bindings appear here.
	{"exit", []string{"Escape", "KeyQ"}, []string{}, "Quit application"},
	{"info", []string{"KeyI"}, []string{}, "Show/hide info display"},
	{"next", []string{"Space", "KeyN"}, []string{"Shift+WheelDown"}, "Next image"},
	{"previous", []string{"Backspace", "KeyP"}, []string{"Shift+WheelUp"}, "Previous image"},
	{"fullscreen", []string{"Enter"}, []string{}, "Toggle fullscreen"},
	{"jump_first", []string{"Home", "Shift+Comma"}, []string{}, "Jump to first image"},
	{"jump_last", []string{"End", "Shift+Period"}, []string{}, "Jump to last image"},
	{"cycle_sort", []string{"Shift+KeyS"}, []string{"Alt+MiddleClick"}, "Cycle sort method (Natural/Simple/Entry)"},
	{"expand_directory", []string{"KeyS"}, []string{}, "Scan directory images (single file mode)"},
	{"toggle_animation", []string{"KeyA"}, []string{}, "Pause/resume animated images"},

	// Zoom actions
	{"zoom_in", []string{"Equal", "Shift+Equal"}, []string{"Ctrl+WheelUp"}, "Zoom in"},
	{"zoom_out", []string{"Minus"}, []string{"Ctrl+WheelDown"}, "Zoom out"},
	{"zoom_reset", []string{"Key0"}, []string{"MiddleClick"}, "Reset to 100% zoom"},
	{"zoom_fit", []string{"KeyF"}, []string{"Alt+LeftClick"}, "Auto-fit zoom mode"},
	{"zoom_fill", []string{"Shift+KeyF"}, []string{}, "Scale-to-fill zoom mode"},
	{"zoom_lock", []string{"KeyK"}, []string{}, "Lock current zoom factor"},

	// Pan actions (for manual zoom mode)
	{"pan_up", []string{"ArrowUp"}, []string{}, "Pan up"},
	{"pan_down", []string{"ArrowDown"}, []string{}, "Pan down"},
	{"pan_left", []string{"ArrowLeft"}, []string{}, "Pan left"},
	{"pan_right", []string{"ArrowRight"}, []string{}, "Pan right"},

	// Selection actions
	{"toggle_selection", []string{"KeyC"}, []string{}, "Toggle selection mode"},
	{"clear_selection", []string{"Shift+KeyC"}, []string{}, "Clear current selection"},
}

// GetActionDescriptions returns a map of action names to their descriptions.
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings.
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = action.Keys
	}
	return keybindings
}

// GetDefaultMousebindings returns a map of action names to their default mouse bindings.
func GetDefaultMousebindings() map[string][]string {
	mousebindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		mousebindings[action.Name] = action.MouseActions
	}
	return mousebindings
}
