package media

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

func TestClockFactoryRegistersElements(t *testing.T) {
	registry := NewRegistry()
	factory := NewClockFactory(registry)

	video, err := factory.NewVideoElement("https://cdn.example.com/v/1080.mp4")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	audio, err := factory.NewAudioElement("https://cdn.example.com/a/en.m4a")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if registry.Count(KindVideo) != 1 {
		t.Errorf("Expected 1 video element, got %d", registry.Count(KindVideo))
	}
	if registry.Count(KindAudio) != 1 {
		t.Errorf("Expected 1 audio element, got %d", registry.Count(KindAudio))
	}

	_ = audio.Close()
	if registry.Count(KindAudio) != 0 {
		t.Errorf("Expected 0 audio elements after close, got %d", registry.Count(KindAudio))
	}

	_ = video.Close()
	if registry.Total() != 0 {
		t.Errorf("Expected empty registry, got %d elements", registry.Total())
	}
}

func TestClockFactoryRejectsEmptyURL(t *testing.T) {
	factory := NewClockFactory(NewRegistry())

	if _, err := factory.NewAudioElement(""); err == nil {
		t.Error("Expected error for empty URL, got nil")
	}
}

func TestClockElementPlayPause(t *testing.T) {
	factory := NewClockFactory(NewRegistry())
	el, err := factory.NewAudioElement("https://cdn.example.com/a/en.m4a")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !el.Paused() {
		t.Error("Expected new element to be paused")
	}

	played := 0
	paused := 0
	el.Subscribe(EventPlay, func() { played++ })
	el.Subscribe(EventPause, func() { paused++ })

	if err := el.Play(context.Background()); err != nil {
		t.Fatalf("Expected play to succeed, got %v", err)
	}
	if el.Paused() {
		t.Error("Expected element to be playing")
	}

	// Play on a playing element must not fire a second event
	if err := el.Play(context.Background()); err != nil {
		t.Fatalf("Expected repeated play to succeed, got %v", err)
	}
	if played != 1 {
		t.Errorf("Expected 1 play event, got %d", played)
	}

	el.Pause()
	el.Pause()
	if paused != 1 {
		t.Errorf("Expected 1 pause event, got %d", paused)
	}
	if !el.Paused() {
		t.Error("Expected element to be paused")
	}
}

func TestClockElementPositionAdvances(t *testing.T) {
	factory := NewClockFactory(NewRegistry())
	el, _ := factory.NewAudioElement("https://cdn.example.com/a/en.m4a")

	el.SetCurrentTime(10)
	if got := el.CurrentTime(); math.Abs(got-10) > 0.01 {
		t.Errorf("Expected position 10, got %f", got)
	}

	if err := el.Play(context.Background()); err != nil {
		t.Fatalf("Expected play to succeed, got %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if got := el.CurrentTime(); got <= 10 {
		t.Errorf("Expected position to advance past 10 while playing, got %f", got)
	}

	el.Pause()
	frozen := el.CurrentTime()
	time.Sleep(20 * time.Millisecond)
	if got := el.CurrentTime(); got != frozen {
		t.Errorf("Expected position to freeze at %f while paused, got %f", frozen, got)
	}
}

func TestClockElementManualLoad(t *testing.T) {
	factory := NewClockFactory(NewRegistry())
	factory.SetManualLoad(true)

	el, _ := factory.NewAudioElement("https://cdn.example.com/a/en.m4a")
	if !math.IsNaN(el.Duration()) {
		t.Errorf("Expected unknown duration before load, got %f", el.Duration())
	}

	loaded := false
	el.Subscribe(EventLoadedMetadata, func() { loaded = true })

	el.(*ClockElement).CompleteLoad(90)
	if el.Duration() != 90 {
		t.Errorf("Expected duration 90 after load, got %f", el.Duration())
	}
	if !loaded {
		t.Error("Expected loadedmetadata event")
	}
}

func TestClockElementFailNextPlay(t *testing.T) {
	factory := NewClockFactory(NewRegistry())
	el, _ := factory.NewAudioElement("https://cdn.example.com/a/en.m4a")

	policyErr := errors.New("autoplay blocked")
	el.(*ClockElement).FailNextPlay(policyErr)

	if err := el.Play(context.Background()); !errors.Is(err, policyErr) {
		t.Errorf("Expected injected play error, got %v", err)
	}
	if !el.Paused() {
		t.Error("Expected element to stay paused after refused play")
	}

	// The refusal is consumed; the next attempt succeeds
	if err := el.Play(context.Background()); err != nil {
		t.Errorf("Expected second play to succeed, got %v", err)
	}
}

func TestClockElementVolumeEvents(t *testing.T) {
	factory := NewClockFactory(NewRegistry())
	el, _ := factory.NewAudioElement("https://cdn.example.com/a/en.m4a")

	changes := 0
	el.Subscribe(EventVolumeChange, func() { changes++ })

	el.SetVolume(0.5)
	el.SetVolume(0.5) // no change, no event
	el.SetMuted(true)
	el.SetMuted(true) // no change, no event

	if changes != 2 {
		t.Errorf("Expected 2 volumechange events, got %d", changes)
	}
	if el.Volume() != 0.5 {
		t.Errorf("Expected volume 0.5, got %f", el.Volume())
	}
	if !el.Muted() {
		t.Error("Expected element to be muted")
	}

	el.SetVolume(2.0)
	if el.Volume() != 1.0 {
		t.Errorf("Expected volume clamped to 1.0, got %f", el.Volume())
	}
}

func TestClockElementSetSourceResets(t *testing.T) {
	factory := NewClockFactory(NewRegistry())
	factory.SetDuration(120)
	el, _ := factory.NewAudioElement("https://cdn.example.com/a/en.m4a")

	el.SetCurrentTime(42)
	el.SetSource("https://cdn.example.com/a/ja.m4a")

	if el.Source() != "https://cdn.example.com/a/ja.m4a" {
		t.Errorf("Expected source to change, got '%s'", el.Source())
	}
	if el.CurrentTime() != 0 {
		t.Errorf("Expected position reset to 0, got %f", el.CurrentTime())
	}
	if !el.Paused() {
		t.Error("Expected element paused after source change")
	}
	if el.Duration() != 120 {
		t.Errorf("Expected duration reloaded to 120, got %f", el.Duration())
	}
}

func TestClockElementUnsubscribe(t *testing.T) {
	factory := NewClockFactory(NewRegistry())
	el, _ := factory.NewAudioElement("https://cdn.example.com/a/en.m4a")

	fired := 0
	unsubscribe := el.Subscribe(EventPlay, func() { fired++ })
	unsubscribe()
	unsubscribe() // double-unsubscribe is a no-op

	_ = el.Play(context.Background())
	if fired != 0 {
		t.Errorf("Expected no events after unsubscribe, got %d", fired)
	}
}

func TestClockElementCloseIdempotent(t *testing.T) {
	registry := NewRegistry()
	factory := NewClockFactory(registry)
	el, _ := factory.NewAudioElement("https://cdn.example.com/a/en.m4a")

	if err := el.Close(); err != nil {
		t.Fatalf("Expected no error on close, got %v", err)
	}
	if err := el.Close(); err != nil {
		t.Fatalf("Expected no error on repeated close, got %v", err)
	}
	if registry.Total() != 0 {
		t.Errorf("Expected empty registry, got %d elements", registry.Total())
	}

	if err := el.Play(context.Background()); err == nil {
		t.Error("Expected play on a closed element to fail")
	}
}
