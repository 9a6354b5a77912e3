package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"syncplayer/internal/config"
	"syncplayer/internal/media"
	"syncplayer/internal/model"
	"syncplayer/internal/player"
	"syncplayer/internal/props"
)

func newMenuFixture(t *testing.T) (*SettingsMenu, *PlayerComponent) {
	t.Helper()

	app := test.NewApp()
	window := test.NewWindow(widget.NewLabel(""))
	t.Cleanup(window.Close)

	registry := media.NewRegistry()
	component := newTestComponent(registry, props.Props{
		Qualities: []model.QualityVariant{
			{Label: "720p", URL: "https://cdn.example.com/clip.720.mp4", Default: true},
			{Label: "1080p", URL: "https://cdn.example.com/clip.1080.mp4"},
		},
	})
	if err := component.Mount(); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	t.Cleanup(component.Unmount)

	menu := NewSettingsMenu(component, config.NewSettings(app), NewLocalization(), window)
	return menu, component
}

func TestApplySelectorSwitchBackToDefault(t *testing.T) {
	menu, component := newMenuFixture(t)

	// User switches away from the default
	sel := component.Player().Selectors()[0]
	sel.OnSelect(sel.Options[1])
	if src := component.Player().Video().Source(); src != "https://cdn.example.com/clip.1080.mp4" {
		t.Fatalf("Expected source switched to 1080p, got %s", src)
	}

	// Picking the default again in the menu must switch back, not be
	// treated as unchanged
	current := component.Player().Selectors()[0]
	menu.applySelector(current, "720p")

	if src := component.Player().Video().Source(); src != "https://cdn.example.com/clip.720.mp4" {
		t.Errorf("Expected switch back to 720p, source still %s", src)
	}
}

func TestApplySelectorSkipsUnchanged(t *testing.T) {
	menu, component := newMenuFixture(t)

	sel := component.Player().Selectors()[0]
	sel.OnSelect(sel.Options[1])

	switches := 0
	probeSel := component.Player().Selectors()[0]
	probeSel.OnSelect = func(opt player.Option) string {
		switches++
		return opt.Label
	}

	// Re-picking the current choice fires nothing
	menu.applySelector(probeSel, "1080p")
	if switches != 0 {
		t.Errorf("Expected no switch for unchanged selection, got %d", switches)
	}
}

func TestSelectorSelectedTracksSwitches(t *testing.T) {
	_, component := newMenuFixture(t)

	if got := component.Player().Selectors()[0].Selected; got != 0 {
		t.Fatalf("Expected default selection index 0, got %d", got)
	}

	sel := component.Player().Selectors()[0]
	sel.OnSelect(sel.Options[1])

	// The stored index follows the switch, so the menu shows the right
	// current choice
	if got := component.Player().Selectors()[0].Selected; got != 1 {
		t.Errorf("Expected selection index 1 after switch, got %d", got)
	}

	sel = component.Player().Selectors()[0]
	sel.OnSelect(sel.Options[0])
	if got := component.Player().Selectors()[0].Selected; got != 0 {
		t.Errorf("Expected selection index 0 after switch back, got %d", got)
	}
}
