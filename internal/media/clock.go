package media

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"
)

// Default values
const (
	DefaultClockDuration = 300.0
	DefaultClockVolume   = 1.0
)

// ClockFactory builds clock-backed elements. Position advances with the wall
// clock while an element plays, which is enough for the preview application
// and for exercising synchronization behavior without decoding anything.
type ClockFactory struct {
	registry *Registry

	mu         sync.Mutex
	manualLoad bool
	duration   float64
}

// NewClockFactory creates a factory attached to the given registry
func NewClockFactory(registry *Registry) *ClockFactory {
	return &ClockFactory{
		registry: registry,
		duration: DefaultClockDuration,
	}
}

// SetManualLoad controls whether new elements report their duration
// immediately. With manual load enabled, duration stays unknown until
// CompleteLoad is called on the element.
func (f *ClockFactory) SetManualLoad(manual bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.manualLoad = manual
}

// SetDuration sets the duration reported by elements once loaded
func (f *ClockFactory) SetDuration(seconds float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.duration = seconds
}

// NewVideoElement creates a clock-backed primary element
func (f *ClockFactory) NewVideoElement(url string) (MediaElement, error) {
	return f.newElement(url, KindVideo)
}

// NewAudioElement creates a clock-backed secondary element
func (f *ClockFactory) NewAudioElement(url string) (MediaElement, error) {
	return f.newElement(url, KindAudio)
}

func (f *ClockFactory) newElement(url string, kind ElementKind) (MediaElement, error) {
	if url == "" {
		return nil, fmt.Errorf("empty source URL for %s element", kind)
	}

	f.mu.Lock()
	manual := f.manualLoad
	duration := f.duration
	f.mu.Unlock()

	el := &ClockElement{
		factory:   f,
		registry:  f.registry,
		kind:      kind,
		src:       url,
		duration:  math.NaN(),
		volume:    DefaultClockVolume,
		listeners: make(map[int]listener),
	}
	f.registry.Add(el, kind)

	if !manual {
		el.CompleteLoad(duration)
	}
	return el, nil
}

type listener struct {
	event EventType
	fn    func()
}

// ClockElement is a media element whose playback position is derived from the
// wall clock. It implements the full MediaElement surface, including
// simulated playback refusal via FailNextPlay.
type ClockElement struct {
	factory  *ClockFactory
	registry *Registry
	kind     ElementKind

	mu         sync.Mutex
	src        string
	playing    bool
	basePos    float64
	startedAt  time.Time
	duration   float64
	volume     float64
	muted      bool
	suppressed bool
	closed     bool
	playErr    error
	listeners  map[int]listener
	nextID     int
}

// Play starts playback. Returns the injected error when a playback refusal
// was armed with FailNextPlay.
func (e *ClockElement) Play(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return fmt.Errorf("element is closed")
	}
	if e.playErr != nil {
		err := e.playErr
		e.playErr = nil
		e.mu.Unlock()
		return err
	}
	if e.playing {
		e.mu.Unlock()
		return nil
	}
	e.playing = true
	e.startedAt = time.Now()
	e.mu.Unlock()

	e.emit(EventPlay)
	return nil
}

// Pause halts playback, freezing the current position
func (e *ClockElement) Pause() {
	e.mu.Lock()
	if !e.playing {
		e.mu.Unlock()
		return
	}
	e.basePos = e.positionLocked()
	e.playing = false
	e.mu.Unlock()

	e.emit(EventPause)
}

// Paused reports whether the element is currently paused
func (e *ClockElement) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.playing
}

// CurrentTime returns the playback position in seconds
func (e *ClockElement) CurrentTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.positionLocked()
}

// positionLocked computes the position; callers must hold the mutex
func (e *ClockElement) positionLocked() float64 {
	pos := e.basePos
	if e.playing {
		pos += time.Since(e.startedAt).Seconds()
	}
	if !math.IsNaN(e.duration) && pos > e.duration {
		pos = e.duration
	}
	return pos
}

// SetCurrentTime moves the playback position
func (e *ClockElement) SetCurrentTime(seconds float64) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	if seconds < 0 {
		seconds = 0
	}
	if !math.IsNaN(e.duration) && seconds > e.duration {
		seconds = e.duration
	}
	e.basePos = seconds
	e.startedAt = time.Now()
	e.mu.Unlock()

	e.emit(EventSeeked)
}

// Duration returns the source duration, or NaN before metadata is loaded
func (e *ClockElement) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.duration
}

// Volume returns the volume in the range [0,1]
func (e *ClockElement) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

// SetVolume sets the volume, clamped to [0,1]
func (e *ClockElement) SetVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}

	e.mu.Lock()
	if e.closed || e.volume == volume {
		e.mu.Unlock()
		return
	}
	e.volume = volume
	e.mu.Unlock()

	e.emit(EventVolumeChange)
}

// Muted reports the mute flag
func (e *ClockElement) Muted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

// SetMuted sets the mute flag
func (e *ClockElement) SetMuted(muted bool) {
	e.mu.Lock()
	if e.closed || e.muted == muted {
		e.mu.Unlock()
		return
	}
	e.muted = muted
	e.mu.Unlock()

	e.emit(EventVolumeChange)
}

// Source returns the current stream URL
func (e *ClockElement) Source() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.src
}

// SetSource swaps the stream URL. Playback stops, the position resets, and
// duration becomes unknown until metadata loads again.
func (e *ClockElement) SetSource(url string) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.src = url
	e.playing = false
	e.basePos = 0
	e.duration = math.NaN()
	e.mu.Unlock()

	e.factory.mu.Lock()
	manual := e.factory.manualLoad
	duration := e.factory.duration
	e.factory.mu.Unlock()

	if !manual {
		e.CompleteLoad(duration)
	}
}

// CompleteLoad marks the source metadata as loaded with the given duration
func (e *ClockElement) CompleteLoad(seconds float64) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.duration = seconds
	e.mu.Unlock()

	e.emit(EventLoadedMetadata)
}

// SuppressAudio silences the element's output without touching the reported
// volume or mute state
func (e *ClockElement) SuppressAudio(suppress bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.suppressed = suppress
}

// AudioSuppressed reports whether output suppression is active
func (e *ClockElement) AudioSuppressed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.suppressed
}

// FailNextPlay arms a playback refusal: the next Play call returns err
// instead of starting playback. Simulates platform autoplay policy.
func (e *ClockElement) FailNextPlay(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.playErr = err
}

// Subscribe registers a listener and returns its unsubscribe function
func (e *ClockElement) Subscribe(event EventType, fn func()) func() {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = listener{event: event, fn: fn}
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.listeners, id)
	}
}

// Close pauses the element and removes it from the registry. Idempotent.
func (e *ClockElement) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	if e.playing {
		e.basePos = e.positionLocked()
		e.playing = false
	}
	e.closed = true
	e.mu.Unlock()

	e.registry.Remove(e)
	return nil
}

// emit calls all listeners registered for the event, outside the lock
func (e *ClockElement) emit(event EventType) {
	e.mu.Lock()
	fns := make([]func(), 0, len(e.listeners))
	for _, l := range e.listeners {
		if l.event == event {
			fns = append(fns, l.fn)
		}
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
