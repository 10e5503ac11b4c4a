package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"iv/internal/scan"
)

// Window size constants
const (
	defaultWidth  = 800
	defaultHeight = 600
	minWidth      = 400
	minHeight     = 300
)

// LoadResult contains the result of loading configuration
type LoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
}

type Config struct {
	WindowWidth    int  `json:"window_width"`
	WindowHeight   int  `json:"window_height"`
	Fullscreen     bool `json:"fullscreen"`
	SortMethod     int  `json:"sort_method"`
	CacheSize      int  `json:"cache_size"`
	PreloadEnabled bool `json:"preload_enabled"`
	PreloadCount   int  `json:"preload_count"`

	ZoomSpeed  float64   `json:"zoom_speed"`
	MinZoom    float64   `json:"min_zoom"`
	MaxZoom    float64   `json:"max_zoom"`
	ZoomLevels []float64 `json:"zoom_levels"`
	WheelNotch float64   `json:"wheel_notch"`

	SelectionEnabled bool    `json:"selection_enabled"`
	SelectionAspectW float64 `json:"selection_aspect_w"`
	SelectionAspectH float64 `json:"selection_aspect_h"`
	HandleSize       float64 `json:"handle_size"`

	DoubleClickMs    int     `json:"double_click_ms"`
	DoubleClickArea  float64 `json:"double_click_area"`
	DragThreshold    float64 `json:"drag_threshold"`
	NavButtonSize    float64 `json:"nav_button_size"`
	NavButtonPadding float64 `json:"nav_button_padding"`

	Keybindings   map[string][]string `json:"keybindings"`
	Mousebindings map[string][]string `json:"mousebindings"`
}

// defaultZoomLevels is the discrete ladder used for single-notch wheel zoom.
func defaultZoomLevels() []float64 {
	return []float64{0.1, 0.25, 0.5, 0.75, 1, 1.5, 2, 3, 4, 6, 8}
}

func defaultConfig() Config {
	return Config{
		WindowWidth:      defaultWidth,
		WindowHeight:     defaultHeight,
		Fullscreen:       false,
		SortMethod:       scan.SortNatural,
		CacheSize:        16,
		PreloadEnabled:   true,
		PreloadCount:     4,
		ZoomSpeed:        0,
		MinZoom:          0.01,
		MaxZoom:          100,
		ZoomLevels:       defaultZoomLevels(),
		WheelNotch:       1,
		SelectionEnabled: false,
		SelectionAspectW: 0, // free-form selection
		SelectionAspectH: 0,
		HandleSize:       8,
		DoubleClickMs:    500,
		DoubleClickArea:  4,
		DragThreshold:    3,
		NavButtonSize:    48,
		NavButtonPadding: 20,
		Keybindings:      GetDefaultKeybindings(),
		Mousebindings:    GetDefaultMousebindings(),
	}
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "iv.json"
	}
	return filepath.Join(homeDir, ".iv.json")
}

// Load reads the user's config file, falling back to defaults for anything
// missing or invalid.
func Load() LoadResult {
	return LoadFromPath(getConfigPath())
}

func LoadFromPath(configPath string) LoadResult {
	config := defaultConfig()

	result := LoadResult{
		Config:   config,
		HasError: false,
		Warnings: []string{},
		Status:   "OK",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	if err := json.Unmarshal(data, &config); err != nil {
		// Invalid config file - log warning and use defaults
		log.Printf("Warning: Invalid config file %s, using defaults: %v", configPath, err)
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	// Validate minimum size
	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	// Validate sort method
	if config.SortMethod < scan.SortNatural || config.SortMethod > scan.SortEntryOrder {
		config.SortMethod = scan.SortNatural
	}

	// Validate cache size (minimum 1, maximum 64)
	if config.CacheSize < 1 {
		config.CacheSize = 16
	} else if config.CacheSize > 64 {
		config.CacheSize = 64
	}

	// Validate preload count (minimum 1, maximum 16)
	if config.PreloadCount < 1 {
		config.PreloadCount = 4
	} else if config.PreloadCount > 16 {
		config.PreloadCount = 16
	}

	// Validate zoom speed (0 = slowest, 500 = fastest)
	if config.ZoomSpeed < 0 {
		config.ZoomSpeed = 0
	} else if config.ZoomSpeed > 500 {
		config.ZoomSpeed = 500
	}

	// Validate zoom limits
	if config.MinZoom <= 0 {
		config.MinZoom = 0.01
	}
	if config.MaxZoom <= config.MinZoom {
		config.MaxZoom = 100
	}

	// Validate zoom levels - drop non-positive entries, empty disables the ladder
	if config.ZoomLevels == nil {
		config.ZoomLevels = defaultZoomLevels()
	} else {
		levels := config.ZoomLevels[:0]
		for _, lv := range config.ZoomLevels {
			if lv > 0 {
				levels = append(levels, lv)
			}
		}
		config.ZoomLevels = levels
	}

	if config.WheelNotch <= 0 {
		config.WheelNotch = 1
	}

	// A one-sided aspect constraint is meaningless
	if config.SelectionAspectW <= 0 || config.SelectionAspectH <= 0 {
		config.SelectionAspectW = 0
		config.SelectionAspectH = 0
	}

	if config.HandleSize <= 0 {
		config.HandleSize = 8
	}

	if config.DoubleClickMs < 100 {
		config.DoubleClickMs = 500
	}
	if config.DoubleClickArea <= 0 {
		config.DoubleClickArea = 4
	}
	if config.DragThreshold <= 0 {
		config.DragThreshold = 3
	}

	// Negative size disables the nav buttons entirely, so only zero falls back
	if config.NavButtonSize == 0 {
		config.NavButtonSize = 48
	}
	if config.NavButtonPadding <= 0 {
		config.NavButtonPadding = 20
	}

	// Validate keybindings - ensure defaults exist for missing actions
	if config.Keybindings == nil {
		config.Keybindings = GetDefaultKeybindings()
	} else {
		// Fill in missing keybindings with defaults
		defaults := GetDefaultKeybindings()
		for action, defaultKeys := range defaults {
			if _, exists := config.Keybindings[action]; !exists {
				config.Keybindings[action] = defaultKeys
			}
		}

		// Validate keybindings and resolve conflicts
		if err := ValidateKeybindings(config.Keybindings); err != nil {
			log.Printf("Warning: Invalid keybindings detected, using defaults: %v", err)
			config.Keybindings = GetDefaultKeybindings()
			result.Status = "Warning"
			result.Warnings = append(result.Warnings, fmt.Sprintf("Keybinding errors: %v", err))
		}
	}

	// Mousebindings are parsed leniently at runtime; just fill in defaults
	if config.Mousebindings == nil {
		config.Mousebindings = GetDefaultMousebindings()
	} else {
		defaults := GetDefaultMousebindings()
		for action, defaultBindings := range defaults {
			if _, exists := config.Mousebindings[action]; !exists {
				config.Mousebindings[action] = defaultBindings
			}
		}
	}

	result.Config = config
	return result
}

func Save(config Config) {
	SaveToPath(config, getConfigPath())
}

func SaveToPath(config Config, configPath string) {
	// Don't save if size is too small
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		log.Printf("Warning: Not saving config with invalid window size: %dx%d",
			config.WindowWidth, config.WindowHeight)
		return
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		log.Printf("Error: Failed to marshal config: %v", err)
		return
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		log.Printf("Error: Failed to save config to %s: %v", configPath, err)
	}
}

// ValidateKeybindings checks key formats and detects conflicts.
func ValidateKeybindings(keybindings map[string][]string) error {
	keyToAction := make(map[string]string)
	validKeys := getValidKeyNames()

	for action, keys := range keybindings {
		for _, keyStr := range keys {
			// Validate key format
			if err := validateKeyString(keyStr, validKeys); err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %v", keyStr, action, err)
			}

			// Check for conflicts
			if existingAction, exists := keyToAction[keyStr]; exists {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existingAction, action)
			}
			keyToAction[keyStr] = action
		}
	}

	return nil
}

// validateKeyString validates a single key string format
func validateKeyString(keyStr string, validKeys map[string]bool) error {
	parts := strings.Split(keyStr, "+")
	if len(parts) == 0 {
		return fmt.Errorf("empty key string")
	}

	// Last part should be the actual key
	keyName := parts[len(parts)-1]
	if !validKeys[keyName] {
		return fmt.Errorf("unknown key: %s", keyName)
	}

	// Check modifiers
	for i := 0; i < len(parts)-1; i++ {
		modifier := strings.ToLower(parts[i])
		if modifier != "shift" && modifier != "ctrl" && modifier != "alt" {
			return fmt.Errorf("unknown modifier: %s", parts[i])
		}
	}

	return nil
}

// getValidKeyNames returns a set of valid key names
func getValidKeyNames() map[string]bool {
	keyMapping := map[string]bool{
		// Letters
		"KeyA": true, "KeyB": true, "KeyC": true, "KeyD": true,
		"KeyE": true, "KeyF": true, "KeyG": true, "KeyH": true,
		"KeyI": true, "KeyJ": true, "KeyK": true, "KeyL": true,
		"KeyM": true, "KeyN": true, "KeyO": true, "KeyP": true,
		"KeyQ": true, "KeyR": true, "KeyS": true, "KeyT": true,
		"KeyU": true, "KeyV": true, "KeyW": true, "KeyX": true,
		"KeyY": true, "KeyZ": true,

		// Numbers
		"Key0": true, "Key1": true, "Key2": true, "Key3": true,
		"Key4": true, "Key5": true, "Key6": true, "Key7": true,
		"Key8": true, "Key9": true,

		// Special keys
		"Space": true, "Backspace": true, "Enter": true, "Escape": true,
		"Tab": true, "Home": true, "End": true, "PageUp": true, "PageDown": true,
		"ArrowUp": true, "ArrowDown": true, "ArrowLeft": true, "ArrowRight": true,

		// Punctuation
		"Comma": true, "Period": true, "Slash": true, "Semicolon": true,
		"Quote": true, "Minus": true, "Equal": true,

		// Numpad
		"Numpad0": true, "Numpad1": true, "Numpad2": true, "Numpad3": true,
		"Numpad4": true, "Numpad5": true, "Numpad6": true, "Numpad7": true,
		"Numpad8": true, "Numpad9": true, "NumpadEnter": true,
	}

	return keyMapping
}
