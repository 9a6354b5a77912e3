package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"syncplayer/internal/config"
	"syncplayer/internal/media"
	"syncplayer/internal/model"
	"syncplayer/internal/props"
	"syncplayer/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.syncplayer.preview"
	AppName = "Sync Player"

	WindowWidth  = 800
	WindowHeight = 600
)

func main() {
	// Log version information
	fmt.Printf("Sync Player v%s starting...\n", version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	settings := config.NewSettings(myApp)

	// Apply accent theme
	myApp.Settings().SetTheme(ui.NewAccentTheme(settings.GetAccentColor()))

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Pick the element backend
	registry := media.NewRegistry()
	factory := newFactory(settings, registry)

	// Sample props standing in for a docs page embedding the component
	startProps := props.Props{
		Qualities: []model.QualityVariant{
			{Label: "1080p", URL: "https://cdn.example.com/sample/clip.1080.mp4"},
			{Label: "720p", URL: "https://cdn.example.com/sample/clip.720.mp4", Default: true},
			{Label: "480p", URL: "https://cdn.example.com/sample/clip.480.mp4"},
		},
		AudioTracks: []model.AudioTrack{
			{Label: "Original", URL: "https://cdn.example.com/sample/clip.en.m4a", Default: true},
			{Label: "Commentary", URL: "https://cdn.example.com/sample/clip.commentary.m4a"},
		},
	}

	// Create and setup UI
	ui.NewPreviewUI(myWindow, myApp, factory, startProps)

	// Show and run
	myWindow.ShowAndRun()
}

// newFactory returns the configured element factory, falling back to the
// simulated clock backend when mpv is unavailable
func newFactory(settings *config.Settings, registry *media.Registry) media.Factory {
	if settings.GetPlaybackBackend() == config.BackendMPV {
		mpvFactory := media.NewMPVFactory(registry)
		if path := settings.GetMPVPath(); path != "" {
			mpvFactory.SetBinary(path)
		}
		if mpvFactory.Available() {
			return mpvFactory
		}
		fmt.Println("mpv not found, falling back to the clock backend")
	}
	return media.NewClockFactory(registry)
}
