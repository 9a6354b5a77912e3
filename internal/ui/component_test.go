package ui

import (
	"testing"
	"time"

	"syncplayer/internal/media"
	"syncplayer/internal/model"
	"syncplayer/internal/player"
	"syncplayer/internal/props"
)

// waitFor polls until cond holds or the deadline passes
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %s", what)
}

func newTestComponent(registry *media.Registry, p props.Props) *PlayerComponent {
	return NewPlayerComponent(ComponentConfig{
		Factory:     media.NewClockFactory(registry),
		Props:       p,
		GuardWindow: 20 * time.Millisecond,
	})
}

func TestMountWithAudioTrack(t *testing.T) {
	registry := media.NewRegistry()
	component := newTestComponent(registry, props.Props{
		URL: "https://cdn.example.com/clip.mp4",
		AudioTracks: []model.AudioTrack{
			{Label: "Original", URL: "https://cdn.example.com/clip.en.m4a", Default: true},
			{Label: "Dubbed", URL: "https://cdn.example.com/clip.ru.m4a"},
		},
	})

	if err := component.Mount(); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}

	if !component.Mounted() {
		t.Error("Expected component to be mounted")
	}
	if component.Session() == nil {
		t.Fatal("Expected a sync session for configured audio tracks")
	}

	waitFor(t, "session to synchronize", func() bool {
		return component.Session().State() == model.SessionStateSynchronized
	})

	if got := registry.Count(media.KindVideo); got != 1 {
		t.Errorf("Expected 1 video element, got %d", got)
	}
	if got := registry.Count(media.KindAudio); got != 1 {
		t.Errorf("Expected 1 audio element, got %d", got)
	}

	track := component.Session().CurrentTrack()
	if track != "https://cdn.example.com/clip.en.m4a" {
		t.Errorf("Expected default audio track attached, got %s", track)
	}

	// The session supplies the soundtrack, so the primary's own audio is off
	video := component.Player().Video().(*media.ClockElement)
	if !video.AudioSuppressed() {
		t.Error("Expected primary audio suppressed while a session is active")
	}
}

func TestMountWithoutAudioTracks(t *testing.T) {
	registry := media.NewRegistry()
	component := newTestComponent(registry, props.Props{
		URL: "https://cdn.example.com/clip.mp4",
	})

	if err := component.Mount(); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}

	if component.Session() != nil {
		t.Error("Expected no sync session without audio tracks")
	}
	if got := registry.Count(media.KindAudio); got != 0 {
		t.Errorf("Expected 0 audio elements, got %d", got)
	}

	video := component.Player().Video().(*media.ClockElement)
	if video.AudioSuppressed() {
		t.Error("Expected primary audio untouched without a session")
	}
}

func TestMountTwiceFails(t *testing.T) {
	registry := media.NewRegistry()
	component := newTestComponent(registry, props.Props{
		URL: "https://cdn.example.com/clip.mp4",
	})

	if err := component.Mount(); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	if err := component.Mount(); err == nil {
		t.Error("Expected second Mount to fail")
	}
}

func TestMountWithoutSourceFails(t *testing.T) {
	registry := media.NewRegistry()
	component := newTestComponent(registry, props.Props{})

	if err := component.Mount(); err == nil {
		t.Error("Expected Mount without a playback URL to fail")
	}
	if component.Mounted() {
		t.Error("Expected component to stay unmounted after failed Mount")
	}
}

func TestUnmountReleasesAllElements(t *testing.T) {
	registry := media.NewRegistry()
	component := newTestComponent(registry, props.Props{
		URL: "https://cdn.example.com/clip.mp4",
		AudioTracks: []model.AudioTrack{
			{Label: "Original", URL: "https://cdn.example.com/clip.en.m4a"},
		},
	})

	if err := component.Mount(); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	session := component.Session()
	waitFor(t, "session to synchronize", func() bool {
		return session.State() == model.SessionStateSynchronized
	})

	component.Unmount()

	if component.Mounted() {
		t.Error("Expected component to be unmounted")
	}
	if got := registry.Total(); got != 0 {
		t.Errorf("Expected 0 elements after Unmount, got %d", got)
	}
	if state := session.State(); state != model.SessionStateDetached {
		t.Errorf("Expected session detached after Unmount, got %s", state)
	}

	// Unmount is idempotent
	component.Unmount()
	if got := registry.Total(); got != 0 {
		t.Errorf("Expected 0 elements after repeated Unmount, got %d", got)
	}
}

func TestRemountAfterUnmount(t *testing.T) {
	registry := media.NewRegistry()
	component := newTestComponent(registry, props.Props{
		URL: "https://cdn.example.com/clip.mp4",
	})

	if err := component.Mount(); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	component.Unmount()

	if err := component.Mount(); err != nil {
		t.Fatalf("Remount failed: %v", err)
	}
	if got := registry.Count(media.KindVideo); got != 1 {
		t.Errorf("Expected 1 video element after remount, got %d", got)
	}
}

func TestQualitySelectorRegistered(t *testing.T) {
	registry := media.NewRegistry()
	component := newTestComponent(registry, props.Props{
		Qualities: []model.QualityVariant{
			{Label: "1080p", URL: "https://cdn.example.com/clip.1080.mp4"},
			{Label: "720p", URL: "https://cdn.example.com/clip.720.mp4", Default: true},
		},
	})

	if err := component.Mount(); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}

	selectors := component.Player().Selectors()
	if len(selectors) != 1 {
		t.Fatalf("Expected 1 selector, got %d", len(selectors))
	}

	sel := selectors[0]
	if sel.Label != KeyQuality {
		t.Errorf("Expected quality selector label, got %s", sel.Label)
	}
	if sel.Selected != 1 {
		t.Errorf("Expected default variant preselected at index 1, got %d", sel.Selected)
	}

	// Selecting the other variant switches the primary source
	got := sel.OnSelect(sel.Options[0])
	if got != "1080p" {
		t.Errorf("Expected display label 1080p, got %s", got)
	}
	if src := component.Player().Video().Source(); src != "https://cdn.example.com/clip.1080.mp4" {
		t.Errorf("Expected source switched, got %s", src)
	}
}

func TestAudioSelectorSwitchesTrack(t *testing.T) {
	registry := media.NewRegistry()
	component := newTestComponent(registry, props.Props{
		URL: "https://cdn.example.com/clip.mp4",
		AudioTracks: []model.AudioTrack{
			{Label: "Original", URL: "https://cdn.example.com/clip.en.m4a", Default: true},
			{Label: "Dubbed", URL: "https://cdn.example.com/clip.ru.m4a"},
		},
	})

	if err := component.Mount(); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	waitFor(t, "session to synchronize", func() bool {
		return component.Session().State() == model.SessionStateSynchronized
	})

	var audioSel player.Selector
	found := false
	for _, sel := range component.Player().Selectors() {
		if sel.Label == KeyAudioTrack {
			audioSel = sel
			found = true
		}
	}
	if !found {
		t.Fatal("Expected an audio track selector")
	}

	got := audioSel.OnSelect(audioSel.Options[1])
	if got != "Dubbed" {
		t.Errorf("Expected display label Dubbed, got %s", got)
	}

	waitFor(t, "track switch", func() bool {
		return component.Session().CurrentTrack() == "https://cdn.example.com/clip.ru.m4a"
	})

	// Still exactly one audio element after the switch
	if count := registry.Count(media.KindAudio); count != 1 {
		t.Errorf("Expected 1 audio element after switch, got %d", count)
	}
}

func TestMalformedVariantsFallBackToSingleURL(t *testing.T) {
	registry := media.NewRegistry()
	component := newTestComponent(registry, props.Props{
		URL:          "https://cdn.example.com/clip.mp4",
		QualitiesRaw: "{not valid json or yaml] :::",
	})

	if err := component.Mount(); err != nil {
		t.Fatalf("Expected mount to fall back to single URL, got %v", err)
	}

	if src := component.Player().Video().Source(); src != "https://cdn.example.com/clip.mp4" {
		t.Errorf("Expected single-URL source, got %s", src)
	}
	if len(component.Player().Selectors()) != 0 {
		t.Error("Expected no quality selector for malformed variants")
	}
}

func TestSerializedPropsDriveMount(t *testing.T) {
	registry := media.NewRegistry()
	component := newTestComponent(registry, props.Props{
		QualitiesRaw: `[{"label":"480p","url":"https://cdn.example.com/clip.480.mp4"}]`,
		AudioTracksRaw: `- label: Original
  url: https://cdn.example.com/clip.en.m4a`,
	})

	if err := component.Mount(); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}

	if src := component.Player().Video().Source(); src != "https://cdn.example.com/clip.480.mp4" {
		t.Errorf("Expected source from serialized qualities, got %s", src)
	}
	if component.Session() == nil {
		t.Error("Expected sync session from serialized audio tracks")
	}
}
