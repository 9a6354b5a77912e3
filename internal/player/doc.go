package player

// Package player implements the host player: ownership of the primary video
// element, a readiness signal for session attachment, quality switching that
// preserves playback state, and the settings-panel selector registry the UI
// renders.
