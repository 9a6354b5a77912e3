package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"syncplayer/internal/config"
	"syncplayer/internal/player"
)

// SettingsMenu is the in-player settings dialog. It renders the selectors the
// component registered on the player (quality, audio track) plus the
// application language, and applies selections on save.
type SettingsMenu struct {
	component    *PlayerComponent
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
}

// NewSettingsMenu creates a settings menu for a mounted component
func NewSettingsMenu(component *PlayerComponent, settings *config.Settings, localization *Localization, window fyne.Window) *SettingsMenu {
	return &SettingsMenu{
		component:    component,
		settings:     settings,
		localization: localization,
		window:       window,
	}
}

// Show displays the settings dialog. The selector list is rebuilt on every
// call because selectors can register after the menu is constructed.
func (sm *SettingsMenu) Show() {
	selectors := []player.Selector{}
	if p := sm.component.Player(); p != nil {
		selectors = p.Selectors()
	}

	rows := []fyne.CanvasObject{}
	selects := make([]*widget.Select, len(selectors))

	for i, sel := range selectors {
		labels := make([]string, len(sel.Options))
		for j, opt := range sel.Options {
			labels[j] = opt.Label
		}

		selectWidget := widget.NewSelect(labels, nil)
		if sel.Selected >= 0 && sel.Selected < len(labels) {
			selectWidget.SetSelected(labels[sel.Selected])
		}
		selects[i] = selectWidget

		rows = append(rows,
			widget.NewLabel(sm.localization.GetText(sel.Label)+":"),
			selectWidget,
		)
	}

	// Language selection
	languageCodes := []string{}
	languageLabels := []string{}
	for code, label := range sm.localization.GetAvailableLanguages() {
		languageCodes = append(languageCodes, code)
		languageLabels = append(languageLabels, label)
	}
	languageSelect := widget.NewSelect(languageLabels, nil)
	current := sm.localization.GetCurrentLanguage()
	for i, code := range languageCodes {
		if code == current {
			languageSelect.SetSelected(languageLabels[i])
		}
	}

	rows = append(rows,
		widget.NewSeparator(),
		widget.NewLabel(IconLanguage+" "+sm.localization.GetText(KeyLanguage)+":"),
		languageSelect,
	)

	form := container.NewVBox(rows...)

	confirm := dialog.NewCustomConfirm(
		sm.localization.GetText(KeySettings),
		sm.localization.GetText(KeySave),
		sm.localization.GetText(KeyCancel),
		form,
		func(confirmed bool) {
			if !confirmed {
				return
			}
			sm.apply(selectors, selects, languageCodes, languageLabels, languageSelect)
		},
		sm.window,
	)

	confirm.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
	confirm.Show()
}

// apply fires the selector callbacks for changed selections and saves the
// language choice
func (sm *SettingsMenu) apply(selectors []player.Selector, selects []*widget.Select, languageCodes, languageLabels []string, languageSelect *widget.Select) {
	for i, sel := range selectors {
		sm.applySelector(sel, selects[i].Selected)
	}

	// Save language
	if chosen := languageSelect.Selected; chosen != "" {
		for i, label := range languageLabels {
			if label == chosen {
				sm.settings.SetLanguage(languageCodes[i])
				sm.localization.SetLanguage(languageCodes[i])
				break
			}
		}
	}

	dialog.ShowInformation(
		sm.localization.GetText(KeySettings),
		sm.localization.GetText(KeySettingsSaved),
		sm.window,
	)
}

// applySelector fires the selector callback when the chosen label differs
// from the current selection. The selector snapshot comes from the player at
// Show time, so Selected reflects switches made since registration.
func (sm *SettingsMenu) applySelector(sel player.Selector, chosen string) {
	if chosen == "" {
		return
	}
	for i, opt := range sel.Options {
		if opt.Label != chosen {
			continue
		}
		if i == sel.Selected {
			return
		}
		if sel.OnSelect != nil {
			sel.OnSelect(opt)
		}
		return
	}
}
