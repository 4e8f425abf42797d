package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Layout sizing
const (
	DefaultWindowWidth  float32 = 1240
	DefaultWindowHeight float32 = 775

	PreferencesWidth  float32 = 420
	PreferencesHeight float32 = 220
)
