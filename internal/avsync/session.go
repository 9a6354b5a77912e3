package avsync

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"syncplayer/internal/media"
	"syncplayer/internal/model"
)

// DefaultGuardWindow is how long inbound volume notifications are ignored
// after attach. Media frameworks tend to reset volume as part of internal
// setup; mirroring those resets would mute the secondary element or trigger
// unwanted autoplay. MarkReady ends the window earlier when the host player
// provides an explicit readiness signal.
const DefaultGuardWindow = 400 * time.Millisecond

// Session pairs one primary video element with one secondary audio element
// and keeps time, play state, and volume in parity. The primary element is
// authoritative: alignment happens at discrete trigger points (play, seek)
// and never flows the other way.
type Session struct {
	id      string
	factory media.Factory
	guard   time.Duration

	mu             sync.Mutex
	state          model.SessionState
	primary        media.MediaElement
	secondary      media.MediaElement
	trackURL       string
	unsubs         []func()
	guardTimer     *time.Timer
	intendedVolume float64
	intendedMuted  bool
	prevMuted      bool
	playCtx        context.Context
	playCancel     context.CancelFunc
	onState        func(model.SessionState)
}

// NewSession creates a synchronization session using factory for secondary
// element creation
func NewSession(factory media.Factory) *Session {
	return &Session{
		id:      uuid.NewString(),
		factory: factory,
		guard:   DefaultGuardWindow,
		state:   model.SessionStateUninitialized,
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// SetGuardWindow overrides the post-attach guard window duration
func (s *Session) SetGuardWindow(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d > 0 {
		s.guard = d
	}
}

// SetStateCallback sets the callback invoked on state transitions
func (s *Session) SetStateCallback(fn func(model.SessionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onState = fn
}

// State returns the current session state
func (s *Session) State() model.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentTrack returns the URL of the current secondary track
func (s *Session) CurrentTrack() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trackURL
}

// Attach begins a session against the primary element. Listener registration
// completes before the secondary element can make any playback attempt, so no
// primary event is missed during setup. A track URL that fails to load later
// reports through the secondary element's own error channel.
func (s *Session) Attach(primary media.MediaElement, trackURL string) error {
	s.mu.Lock()
	if s.state != model.SessionStateUninitialized {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("cannot attach in state %s", state)
	}
	if primary == nil {
		s.mu.Unlock()
		return fmt.Errorf("no primary element")
	}

	s.primary = primary
	s.intendedVolume = primary.Volume()
	s.intendedMuted = primary.Muted()
	s.prevMuted = s.intendedMuted
	s.state = model.SessionStateInitializing

	s.unsubs = []func(){
		primary.Subscribe(media.EventPlay, s.onPrimaryPlay),
		primary.Subscribe(media.EventPause, s.onPrimaryPause),
		primary.Subscribe(media.EventSeeked, s.onPrimarySeeked),
		primary.Subscribe(media.EventVolumeChange, s.onPrimaryVolumeChange),
	}
	guard := s.guard
	s.mu.Unlock()

	secondary, err := s.factory.NewAudioElement(trackURL)
	if err != nil {
		s.mu.Lock()
		unsubs := s.unsubs
		s.unsubs = nil
		s.primary = nil
		s.state = model.SessionStateUninitialized
		s.mu.Unlock()
		for _, unsubscribe := range unsubs {
			unsubscribe()
		}
		return fmt.Errorf("failed to create secondary element: %v", err)
	}

	secondary.SetVolume(primary.Volume())
	secondary.SetMuted(primary.Muted())

	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	s.secondary = secondary
	s.trackURL = trackURL
	s.playCtx = ctx
	s.playCancel = cancel
	s.guardTimer = time.AfterFunc(guard, s.finishInit)
	s.mu.Unlock()

	s.notifyState(model.SessionStateInitializing)

	// Mirror a primary that is already playing when the session starts
	if !primary.Paused() {
		secondary.SetCurrentTime(primary.CurrentTime())
		s.requestPlay(secondary)
	}
	return nil
}

// MarkReady acknowledges host player readiness, ending the guard window early
func (s *Session) MarkReady() {
	s.finishInit()
}

// finishInit leaves the guard window: the intended starting volume and mute
// state are force-applied to the primary (undoing any framework-internal
// reset) and mirrored onto the secondary.
func (s *Session) finishInit() {
	s.mu.Lock()
	if s.state != model.SessionStateInitializing {
		s.mu.Unlock()
		return
	}
	s.state = model.SessionStateSynchronized
	if s.guardTimer != nil {
		s.guardTimer.Stop()
		s.guardTimer = nil
	}
	primary := s.primary
	secondary := s.secondary
	volume := s.intendedVolume
	muted := s.intendedMuted
	s.prevMuted = muted
	s.mu.Unlock()

	primary.SetVolume(volume)
	primary.SetMuted(muted)
	if secondary != nil {
		secondary.SetVolume(volume)
		secondary.SetMuted(muted)
	}

	s.notifyState(model.SessionStateSynchronized)
}

// SwitchTrack replaces the secondary element's source. The old element is
// paused and removed before the new one exists, so the two can never sound at
// the same time; position and play state carry over.
func (s *Session) SwitchTrack(url string) error {
	if url == "" {
		return fmt.Errorf("empty track URL")
	}

	s.mu.Lock()
	if !s.state.IsActive() {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("cannot switch track in state %s", state)
	}
	old := s.secondary
	s.secondary = nil
	if s.playCancel != nil {
		s.playCancel()
		s.playCancel = nil
	}
	primary := s.primary
	s.mu.Unlock()

	if old != nil {
		old.Pause()
		_ = old.Close()
	}

	position := primary.CurrentTime()
	playing := !primary.Paused()
	volume := primary.Volume()
	muted := primary.Muted()

	secondary, err := s.factory.NewAudioElement(url)
	if err != nil {
		// The session stays up without secondary audio; the next switch
		// can recover it
		log.Printf("sync session %s: failed to create track element: %v", s.id, err)
		return fmt.Errorf("failed to create secondary element: %v", err)
	}

	secondary.SetVolume(volume)
	secondary.SetMuted(muted)
	secondary.SetCurrentTime(position)

	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if s.state == model.SessionStateDetached {
		// Torn down mid-switch; release the element we just made
		s.mu.Unlock()
		cancel()
		secondary.Pause()
		_ = secondary.Close()
		return nil
	}
	s.secondary = secondary
	s.trackURL = url
	s.playCtx = ctx
	s.playCancel = cancel
	s.mu.Unlock()

	if playing {
		s.requestPlay(secondary)
	}
	return nil
}

// Detach tears the session down: in-flight play attempts are canceled, the
// secondary element is paused and removed, and all listeners unregister.
// Calling it with no session, or repeatedly, is a no-op.
func (s *Session) Detach() {
	s.mu.Lock()
	if !s.state.IsActive() {
		s.mu.Unlock()
		return
	}
	s.state = model.SessionStateDetached
	if s.guardTimer != nil {
		s.guardTimer.Stop()
		s.guardTimer = nil
	}
	if s.playCancel != nil {
		s.playCancel()
		s.playCancel = nil
	}
	unsubs := s.unsubs
	s.unsubs = nil
	secondary := s.secondary
	s.secondary = nil
	s.primary = nil
	s.mu.Unlock()

	for _, unsubscribe := range unsubs {
		unsubscribe()
	}
	if secondary != nil {
		secondary.Pause()
		_ = secondary.Close()
	}

	s.notifyState(model.SessionStateDetached)
}

// onPrimaryPlay aligns the secondary position to the primary and starts
// secondary playback
func (s *Session) onPrimaryPlay() {
	s.mu.Lock()
	if !s.state.IsActive() || s.secondary == nil {
		s.mu.Unlock()
		return
	}
	primary := s.primary
	secondary := s.secondary
	s.mu.Unlock()

	secondary.SetCurrentTime(primary.CurrentTime())
	s.requestPlay(secondary)
}

// onPrimaryPause pauses the secondary
func (s *Session) onPrimaryPause() {
	s.mu.Lock()
	if !s.state.IsActive() || s.secondary == nil {
		s.mu.Unlock()
		return
	}
	secondary := s.secondary
	s.mu.Unlock()

	secondary.Pause()
}

// onPrimarySeeked aligns the secondary position, but only when the secondary
// reports a valid duration; before that the write would be lost anyway and
// the next trigger corrects it
func (s *Session) onPrimarySeeked() {
	s.mu.Lock()
	if !s.state.IsActive() || s.secondary == nil {
		s.mu.Unlock()
		return
	}
	primary := s.primary
	secondary := s.secondary
	s.mu.Unlock()

	if math.IsNaN(secondary.Duration()) {
		return
	}
	secondary.SetCurrentTime(primary.CurrentTime())
}

// onPrimaryVolumeChange copies volume and mute state to the secondary.
// Ignored during the guard window. Clearing mute while the primary plays
// resumes a paused secondary.
func (s *Session) onPrimaryVolumeChange() {
	s.mu.Lock()
	if s.state != model.SessionStateSynchronized || s.secondary == nil {
		s.mu.Unlock()
		return
	}
	primary := s.primary
	secondary := s.secondary
	wasMuted := s.prevMuted
	muted := primary.Muted()
	s.prevMuted = muted
	s.mu.Unlock()

	secondary.SetVolume(primary.Volume())
	secondary.SetMuted(muted)

	if wasMuted && !muted && !primary.Paused() && secondary.Paused() {
		secondary.SetCurrentTime(primary.CurrentTime())
		s.requestPlay(secondary)
	}
}

// requestPlay starts secondary playback on a goroutine. A refusal (autoplay
// policy) is logged and leaves the secondary paused; the next play event from
// the primary retries implicitly.
func (s *Session) requestPlay(el media.MediaElement) {
	s.mu.Lock()
	ctx := s.playCtx
	s.mu.Unlock()
	if ctx == nil {
		return
	}

	go func() {
		if err := el.Play(ctx); err != nil {
			log.Printf("sync session %s: secondary playback start refused: %v", s.id, err)
		}
	}()
}

// notifyState calls the state callback if set
func (s *Session) notifyState(state model.SessionState) {
	s.mu.Lock()
	fn := s.onState
	s.mu.Unlock()
	if fn != nil {
		fn(state)
	}
}
