package config

import (
	"time"

	"fyne.io/fyne/v2"

	"syncplayer/internal/platform"
)

// PlaybackBackend selects how media elements are realized
type PlaybackBackend string

const (
	BackendClock PlaybackBackend = "clock"
	BackendMPV   PlaybackBackend = "mpv"
)

// Settings keys for Fyne preferences
const (
	KeyLanguage        = "app_language"
	KeyAccentColor     = "accent_color"
	KeyGuardWindowMS   = "guard_window_ms"
	KeyDefaultVolume   = "default_volume"
	KeyStartMuted      = "start_muted"
	KeyAutoplay        = "autoplay"
	KeyPlaybackBackend = "playback_backend"
	KeyMPVPath         = "mpv_path"
)

// Default values
const (
	DefaultLanguage        = "system"
	DefaultAccentColor     = "#1976D2"
	DefaultGuardWindowMS   = 400
	DefaultVolume          = 1.0
	DefaultStartMuted      = false
	DefaultAutoplay        = false
	DefaultPlaybackBackend = BackendClock
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetLanguage returns the configured language, with "system" meaning the
// ambient locale
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// ResolveLanguage returns the effective language code, resolving "system"
// through the ambient locale
func (s *Settings) ResolveLanguage() string {
	lang := s.GetLanguage()
	if lang == DefaultLanguage {
		return platform.DetectLocale()
	}
	return lang
}

// GetAccentColor returns the theme accent color as a hex string
func (s *Settings) GetAccentColor() string {
	accent := s.app.Preferences().String(KeyAccentColor)
	if accent == "" {
		s.SetAccentColor(DefaultAccentColor)
		return DefaultAccentColor
	}
	return accent
}

// SetAccentColor sets the theme accent color
func (s *Settings) SetAccentColor(hex string) {
	if hex == "" {
		hex = DefaultAccentColor
	}
	s.app.Preferences().SetString(KeyAccentColor, hex)
}

// GetGuardWindow returns the post-attach guard window duration
func (s *Settings) GetGuardWindow() time.Duration {
	ms := s.app.Preferences().Int(KeyGuardWindowMS)
	if ms <= 0 {
		s.SetGuardWindow(DefaultGuardWindowMS * time.Millisecond)
		return DefaultGuardWindowMS * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}

// SetGuardWindow sets the post-attach guard window duration
func (s *Settings) SetGuardWindow(d time.Duration) {
	if d <= 0 {
		d = DefaultGuardWindowMS * time.Millisecond
	}
	s.app.Preferences().SetInt(KeyGuardWindowMS, int(d.Milliseconds()))
}

// GetDefaultVolume returns the starting volume in (0,1]
func (s *Settings) GetDefaultVolume() float64 {
	volume := s.app.Preferences().Float(KeyDefaultVolume)
	if volume <= 0 || volume > 1 {
		s.SetDefaultVolume(DefaultVolume)
		return DefaultVolume
	}
	return volume
}

// SetDefaultVolume sets the starting volume, clamped to (0,1]
func (s *Settings) SetDefaultVolume(volume float64) {
	if volume <= 0 || volume > 1 {
		volume = DefaultVolume
	}
	s.app.Preferences().SetFloat(KeyDefaultVolume, volume)
}

// GetStartMuted returns whether playback starts muted
func (s *Settings) GetStartMuted() bool {
	return s.app.Preferences().BoolWithFallback(KeyStartMuted, DefaultStartMuted)
}

// SetStartMuted sets whether playback starts muted
func (s *Settings) SetStartMuted(muted bool) {
	s.app.Preferences().SetBool(KeyStartMuted, muted)
}

// GetAutoplay returns whether playback starts automatically on mount
func (s *Settings) GetAutoplay() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoplay, DefaultAutoplay)
}

// SetAutoplay sets whether playback starts automatically on mount
func (s *Settings) SetAutoplay(autoplay bool) {
	s.app.Preferences().SetBool(KeyAutoplay, autoplay)
}

// GetPlaybackBackend returns the configured element backend
func (s *Settings) GetPlaybackBackend() PlaybackBackend {
	backend := s.app.Preferences().String(KeyPlaybackBackend)
	switch PlaybackBackend(backend) {
	case BackendClock, BackendMPV:
		return PlaybackBackend(backend)
	}
	s.SetPlaybackBackend(DefaultPlaybackBackend)
	return DefaultPlaybackBackend
}

// SetPlaybackBackend sets the element backend
func (s *Settings) SetPlaybackBackend(backend PlaybackBackend) {
	s.app.Preferences().SetString(KeyPlaybackBackend, string(backend))
}

// GetMPVPath returns the mpv executable override, empty for PATH lookup
func (s *Settings) GetMPVPath() string {
	return s.app.Preferences().String(KeyMPVPath)
}

// SetMPVPath sets the mpv executable override
func (s *Settings) SetMPVPath(path string) {
	s.app.Preferences().SetString(KeyMPVPath, path)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
