package media

import (
	"context"
	"sync"
)

// EventType identifies a media element notification
type EventType string

const (
	// EventPlay fires when playback starts or resumes
	EventPlay EventType = "play"

	// EventPause fires when playback is paused
	EventPause EventType = "pause"

	// EventSeeked fires after the playback position was changed
	EventSeeked EventType = "seeked"

	// EventVolumeChange fires when volume or mute state changes
	EventVolumeChange EventType = "volumechange"

	// EventEnded fires when playback reaches the end of the source
	EventEnded EventType = "ended"

	// EventLoadedMetadata fires once the duration of the source is known
	EventLoadedMetadata EventType = "loadedmetadata"
)

// ElementKind distinguishes primary video elements from secondary audio elements
type ElementKind string

const (
	KindVideo ElementKind = "video"
	KindAudio ElementKind = "audio"
)

// MediaElement is the playback surface the synchronization controller works
// against. Implementations deliver notifications synchronously on Subscribe
// callbacks; Play may block until playback actually starts or is refused, so
// callers that must not stall run it on a goroutine.
type MediaElement interface {
	// Play requests playback. A refusal (platform autoplay policy, missing
	// source) is reported as the returned error.
	Play(ctx context.Context) error

	// Pause halts playback. Safe to call at any time, including on an
	// element whose play request is still in flight.
	Pause()

	// Paused reports whether the element is currently paused.
	Paused() bool

	// CurrentTime returns the playback position in seconds.
	CurrentTime() float64

	// SetCurrentTime moves the playback position in seconds.
	SetCurrentTime(seconds float64)

	// Duration returns the source duration in seconds, or NaN while the
	// source metadata is not yet loaded.
	Duration() float64

	// Volume returns the volume in the range [0,1].
	Volume() float64

	// SetVolume sets the volume in the range [0,1].
	SetVolume(volume float64)

	// Muted reports the mute flag.
	Muted() bool

	// SetMuted sets the mute flag.
	SetMuted(muted bool)

	// Source returns the current stream URL.
	Source() string

	// SetSource swaps the stream URL. Playback stops and the position
	// resets; duration becomes unknown until metadata loads again.
	SetSource(url string)

	// Subscribe registers a listener for an event type and returns its
	// unsubscribe function.
	Subscribe(event EventType, fn func()) (unsubscribe func())

	// Close pauses the element and removes it from its registry. Idempotent.
	Close() error
}

// AudioSuppressor is implemented by elements that can silence their own audio
// output without touching the volume or mute state the element reports. The
// component suppresses the primary element's audio while a synchronization
// session supplies the soundtrack, so mute mirroring keeps working.
type AudioSuppressor interface {
	SuppressAudio(suppress bool)
}

// Factory creates media elements attached to a registry. The synchronization
// session uses it to build secondary audio elements; the host player uses it
// for the primary video element.
type Factory interface {
	NewVideoElement(url string) (MediaElement, error)
	NewAudioElement(url string) (MediaElement, error)
}

// Registry tracks the elements currently attached, playing the role the
// document plays for browser media elements. Sessions create and close
// elements through it, which makes element leaks observable.
type Registry struct {
	mu       sync.Mutex
	elements map[MediaElement]ElementKind
}

// NewRegistry creates an empty element registry
func NewRegistry() *Registry {
	return &Registry{
		elements: make(map[MediaElement]ElementKind),
	}
}

// Add attaches an element to the registry
func (r *Registry) Add(el MediaElement, kind ElementKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.elements[el] = kind
}

// Remove detaches an element from the registry. Removing an element that is
// not attached is a no-op.
func (r *Registry) Remove(el MediaElement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.elements, el)
}

// Count returns the number of attached elements of the given kind
func (r *Registry) Count(kind ElementKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, k := range r.elements {
		if k == kind {
			count++
		}
	}
	return count
}

// Total returns the number of attached elements of any kind
func (r *Registry) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.elements)
}
