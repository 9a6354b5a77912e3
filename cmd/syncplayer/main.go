package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"syncplayer/internal/media"
	"syncplayer/internal/model"
	"syncplayer/internal/props"
	"syncplayer/internal/ui"
)

func main() {
	// Create new Fyne app
	myApp := app.NewWithID("com.syncplayer.preview")
	myWindow := myApp.NewWindow("Sync Player")
	myWindow.Resize(fyne.NewSize(800, 600))

	// Minimal preview: clock backend with a single sample source
	registry := media.NewRegistry()
	factory := media.NewClockFactory(registry)

	startProps := props.Props{
		URL: "https://cdn.example.com/sample/clip.mp4",
		AudioTracks: []model.AudioTrack{
			{Label: "Original", URL: "https://cdn.example.com/sample/clip.en.m4a"},
		},
	}

	// Create and setup UI
	ui.NewPreviewUI(myWindow, myApp, factory, startProps)

	// Show and run
	myWindow.ShowAndRun()
}
