package ui

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"syncplayer/internal/config"
	"syncplayer/internal/media"
	"syncplayer/internal/model"
	"syncplayer/internal/props"
)

// PreviewUI is the desktop preview harness: it mounts a PlayerComponent the
// way a host page would and exposes the controls, settings menu, and a
// playlist panel for swapping sources.
type PreviewUI struct {
	window       fyne.Window
	factory      media.Factory
	settings     *config.Settings
	localization *Localization

	component *PlayerComponent
	controls  *Controls

	sourceLabel *widget.Label
	stateLabel  *widget.Label
	bottomBox   *fyne.Container

	playlistPanel *PlaylistPanel
}

// NewPreviewUI creates and lays out the preview window around the given
// starting props
func NewPreviewUI(window fyne.Window, app fyne.App, factory media.Factory, startProps props.Props) *PreviewUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.ResolveLanguage())

	ui := &PreviewUI{
		window:       window,
		factory:      factory,
		settings:     settings,
		localization: localization,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI(startProps)
	return ui
}

// setupUI creates and arranges all preview components
func (ui *PreviewUI) setupUI(startProps props.Props) {
	ui.sourceLabel = widget.NewLabel(DashPlaceholder)
	ui.stateLabel = widget.NewLabel("")

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.playlistPanel = NewPlaylistPanel(ui.localization)
	ui.playlistPanel.SetVideoSelectedCallback(ui.onVideoSelected)

	ui.bottomBox = container.NewVBox()

	topPanel := container.NewBorder(nil, nil, nil, settingsBtn, ui.sourceLabel)
	statusRow := container.NewHBox(ui.stateLabel)
	bottom := container.NewVBox(ui.bottomBox, statusRow)

	ui.window.SetContent(container.NewBorder(
		topPanel,
		bottom,
		nil, nil,
		ui.playlistPanel.Container(),
	))

	ui.mountComponent(startProps)

	ui.window.SetOnClosed(func() {
		ui.teardownComponent()
	})
}

// mountComponent mounts a fresh component for the given props and rebuilds
// the control row around it
func (ui *PreviewUI) mountComponent(p props.Props) {
	component := NewPlayerComponent(ComponentConfig{
		Factory:     ui.factory,
		Props:       p,
		GuardWindow: ui.settings.GetGuardWindow(),
		AccentColor: ui.settings.GetAccentColor(),
		Locale:      ui.settings.ResolveLanguage(),
		Volume:      ui.settings.GetDefaultVolume(),
		Muted:       ui.settings.GetStartMuted(),
		Autoplay:    ui.settings.GetAutoplay(),
	})

	if err := component.Mount(); err != nil {
		log.Printf("preview: mount failed: %v", err)
		ui.sourceLabel.SetText(DashPlaceholder)
		return
	}

	ui.component = component
	ui.sourceLabel.SetText(component.Player().Video().Source())

	if session := component.Session(); session != nil {
		session.SetStateCallback(func(state model.SessionState) {
			fyne.Do(func() {
				ui.stateLabel.SetText(string(state))
			})
		})
	} else {
		ui.stateLabel.SetText(ui.localization.GetText(KeyNoAudioTracks))
	}

	ui.controls = NewControls(component.Player(), ui.localization)
	ui.bottomBox.Objects = []fyne.CanvasObject{ui.controls.Container()}
	ui.bottomBox.Refresh()
}

// teardownComponent stops the controls and unmounts the current component
func (ui *PreviewUI) teardownComponent() {
	if ui.controls != nil {
		ui.controls.Stop()
		ui.controls = nil
	}
	if ui.component != nil {
		ui.component.Unmount()
		ui.component = nil
	}
}

// onVideoSelected swaps the mounted component to the picked playlist source
func (ui *PreviewUI) onVideoSelected(video *model.PlaylistVideo) {
	log.Printf("preview: switching to %s", video.Title)

	ui.teardownComponent()
	ui.mountComponent(props.Props{URL: video.URL})
}

// onShowSettings opens the settings menu for the mounted component
func (ui *PreviewUI) onShowSettings() {
	if ui.component == nil {
		return
	}
	NewSettingsMenu(ui.component, ui.settings, ui.localization, ui.window).Show()
}

// Component returns the currently mounted component, nil when mounting failed
func (ui *PreviewUI) Component() *PlayerComponent {
	return ui.component
}
