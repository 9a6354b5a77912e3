package player

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"

	"syncplayer/internal/media"
	"syncplayer/internal/model"
)

// Option is one selectable entry in a settings-panel selector
type Option struct {
	Label   string
	Value   string
	Default bool
}

// Selector is a settings-panel registration: a labeled list of options with a
// selection callback that returns the updated display text.
type Selector struct {
	Label    string
	Tooltip  string
	Options  []Option
	Selected int
	OnSelect func(Option) string
}

// Config configures a host player instance
type Config struct {
	Factory media.Factory

	// URL is the single playback URL used when Qualities is empty
	URL string

	// Qualities, when present, select the starting source via the default
	// variant
	Qualities []model.QualityVariant

	// AccentColor and Locale are cosmetic configuration passed through to
	// the UI layer
	AccentColor string
	Locale      string

	// Volume is the starting volume in (0,1]; zero keeps the element default
	Volume float64
	Muted  bool

	// Autoplay requests playback as soon as the player is ready; a refusal
	// is logged and the player stays paused
	Autoplay bool
}

// Player is the host player: it owns the primary video element, signals
// readiness once setup completes, and carries the settings-panel selector
// registry rendered by the UI layer.
type Player struct {
	factory media.Factory
	accent  string
	locale  string

	mu           sync.Mutex
	video        media.MediaElement
	qualities    []model.QualityVariant
	current      model.QualityVariant
	selectors    []Selector
	readyFns     []func()
	ready        bool
	closed       bool
	onSelectors  func()
	readyUnsub   func()
	switchCancel context.CancelFunc
	autoCancel   context.CancelFunc
}

// New creates a player and its primary video element. The starting source is
// the default quality variant, or the single URL when no variants are given.
func New(cfg Config) (*Player, error) {
	if cfg.Factory == nil {
		return nil, fmt.Errorf("no element factory")
	}

	url := cfg.URL
	current, ok := model.DefaultQuality(cfg.Qualities)
	if ok {
		url = current.URL
	}
	if url == "" {
		return nil, fmt.Errorf("no playback URL configured")
	}

	video, err := cfg.Factory.NewVideoElement(url)
	if err != nil {
		return nil, fmt.Errorf("failed to create primary element: %v", err)
	}

	if cfg.Volume > 0 {
		video.SetVolume(cfg.Volume)
	}
	video.SetMuted(cfg.Muted)

	p := &Player{
		factory:   cfg.Factory,
		accent:    cfg.AccentColor,
		locale:    cfg.Locale,
		video:     video,
		qualities: cfg.Qualities,
		current:   current,
	}

	// Readiness follows the primary element's metadata. Subscribe before
	// checking the duration so metadata arriving in between cannot slip
	// past both; markReady tears the subscription down either way.
	p.readyUnsub = video.Subscribe(media.EventLoadedMetadata, p.markReady)
	if !math.IsNaN(video.Duration()) {
		p.markReady()
	}

	if cfg.Autoplay {
		ctx, cancel := context.WithCancel(context.Background())
		p.autoCancel = cancel
		p.OnReady(func() {
			go func() {
				if err := video.Play(ctx); err != nil {
					log.Printf("player: autoplay refused: %v", err)
				}
			}()
		})
	}
	return p, nil
}

// markReady flips the player to ready and drains queued callbacks
func (p *Player) markReady() {
	p.mu.Lock()
	if p.ready || p.closed {
		p.mu.Unlock()
		return
	}
	p.ready = true
	fns := p.readyFns
	p.readyFns = nil
	if p.readyUnsub != nil {
		unsub := p.readyUnsub
		p.readyUnsub = nil
		defer unsub()
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// OnReady invokes fn once internal setup completes; immediately when the
// player is already ready
func (p *Player) OnReady(fn func()) {
	p.mu.Lock()
	if !p.ready {
		p.readyFns = append(p.readyFns, fn)
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()
	fn()
}

// Video returns the primary video element
func (p *Player) Video() media.MediaElement {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.video
}

// Paused reports the primary element's pause state
func (p *Player) Paused() bool {
	return p.Video().Paused()
}

// Volume returns the primary element's volume
func (p *Player) Volume() float64 {
	return p.Video().Volume()
}

// Muted reports the primary element's mute flag
func (p *Player) Muted() bool {
	return p.Video().Muted()
}

// AccentColor returns the cosmetic accent color configured for the player
func (p *Player) AccentColor() string {
	return p.accent
}

// Locale returns the ambient locale configured for the player
func (p *Player) Locale() string {
	return p.locale
}

// Qualities returns the configured quality variants
func (p *Player) Qualities() []model.QualityVariant {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.qualities
}

// CurrentQuality returns the active quality variant
func (p *Player) CurrentQuality() model.QualityVariant {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// SwitchQuality swaps the primary source to the given variant, preserving
// position and play state. The seek performed to restore the position also
// notifies any synchronization session listening on the element.
func (p *Player) SwitchQuality(variant model.QualityVariant) error {
	if variant.URL == "" {
		return fmt.Errorf("quality variant has no URL")
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return fmt.Errorf("player is closed")
	}
	video := p.video
	if p.switchCancel != nil {
		p.switchCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.switchCancel = cancel
	p.current = variant
	p.mu.Unlock()

	position := video.CurrentTime()
	playing := !video.Paused()

	video.SetSource(variant.URL)
	video.SetCurrentTime(position)

	if playing {
		go func() {
			if err := video.Play(ctx); err != nil {
				log.Printf("player: resume after quality switch refused: %v", err)
			}
		}()
	}
	return nil
}

// RegisterSelector adds a settings-panel selector
func (p *Player) RegisterSelector(sel Selector) {
	p.mu.Lock()
	p.selectors = append(p.selectors, sel)
	fn := p.onSelectors
	p.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// SetSelectorSelected updates the stored selection index of the selector with
// the given label, so the settings panel reflects switches made after
// registration
func (p *Player) SetSelectorSelected(label string, selected int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.selectors {
		if p.selectors[i].Label != label {
			continue
		}
		if selected >= 0 && selected < len(p.selectors[i].Options) {
			p.selectors[i].Selected = selected
		}
		return
	}
}

// Selectors returns the registered settings-panel selectors
func (p *Player) Selectors() []Selector {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Selector, len(p.selectors))
	copy(out, p.selectors)
	return out
}

// SetSelectorsChangedCallback sets the callback invoked when a selector is
// registered
func (p *Player) SetSelectorsChangedCallback(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onSelectors = fn
}

// Close releases the primary element. Idempotent. Callers owning a
// synchronization session detach it first, then close the player.
func (p *Player) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	if p.switchCancel != nil {
		p.switchCancel()
		p.switchCancel = nil
	}
	if p.autoCancel != nil {
		p.autoCancel()
		p.autoCancel = nil
	}
	if p.readyUnsub != nil {
		p.readyUnsub()
		p.readyUnsub = nil
	}
	video := p.video
	p.mu.Unlock()

	video.Pause()
	return video.Close()
}
