package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconPause    = "⏸"
	IconMuted    = "🔇"
	IconVolume   = "🔊"
	IconError    = "❌"
	IconLanguage = "🌐"
)

// Text fragments
const (
	TimeSeparator   = " / "
	DashPlaceholder = "—"
)

// Layout sizing
const (
	VolumeSliderWidth float32 = 120
	TimeLabelWidth    float32 = 110
)

// Playback position refresh cadence for the controls row
const (
	PositionRefreshInterval = 250 * time.Millisecond
)

// Dialog sizing
const (
	SettingsDialogWidth  float32 = 420
	SettingsDialogHeight float32 = 360
)
