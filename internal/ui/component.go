package ui

import (
	"fmt"
	"log"
	"sync"
	"time"

	"syncplayer/internal/avsync"
	"syncplayer/internal/media"
	"syncplayer/internal/model"
	"syncplayer/internal/player"
	"syncplayer/internal/props"
)

// ComponentConfig configures an embeddable player component
type ComponentConfig struct {
	Factory media.Factory
	Props   props.Props

	// GuardWindow overrides the session guard window; zero keeps the default
	GuardWindow time.Duration

	// AccentColor and Locale are cosmetic and passed through to the player
	AccentColor string
	Locale      string

	Volume   float64
	Muted    bool
	Autoplay bool
}

// PlayerComponent is the embeddable unit a host page mounts: it builds the
// player from props, attaches an audio synchronization session when alternate
// audio tracks are configured, and registers the quality and audio-track
// selectors on the player's settings panel.
type PlayerComponent struct {
	cfg ComponentConfig

	mu      sync.Mutex
	player  *player.Player
	session *avsync.Session
	mounted bool
}

// NewPlayerComponent creates an unmounted component
func NewPlayerComponent(cfg ComponentConfig) *PlayerComponent {
	return &PlayerComponent{cfg: cfg}
}

// Mount builds the player and wires the synchronization session. A second
// Mount without an intervening Unmount fails.
func (c *PlayerComponent) Mount() error {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return fmt.Errorf("component is already mounted")
	}

	qualities := c.cfg.Props.ResolveQualities()
	tracks := c.cfg.Props.ResolveAudioTracks()

	p, err := player.New(player.Config{
		Factory:     c.cfg.Factory,
		URL:         c.cfg.Props.URL,
		Qualities:   qualities,
		AccentColor: c.cfg.AccentColor,
		Locale:      c.cfg.Locale,
		Volume:      c.cfg.Volume,
		Muted:       c.cfg.Muted,
		Autoplay:    c.cfg.Autoplay,
	})
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("failed to mount player: %v", err)
	}

	c.player = p
	c.mounted = true

	var session *avsync.Session
	track, hasAudio := model.DefaultAudioTrack(tracks)
	if hasAudio {
		session = avsync.NewSession(c.cfg.Factory)
		if c.cfg.GuardWindow > 0 {
			session.SetGuardWindow(c.cfg.GuardWindow)
		}
		c.session = session
	}
	c.mu.Unlock()

	if len(qualities) > 0 {
		p.RegisterSelector(c.qualitySelector(qualities))
	}

	if hasAudio {
		// The session supplies the soundtrack, so the primary element's own
		// audio output is silenced when the backend supports it
		if suppressor, ok := p.Video().(media.AudioSuppressor); ok {
			suppressor.SuppressAudio(true)
		}

		// Attach once the player finishes its own setup; MarkReady ends
		// the guard window so user volume changes mirror immediately.
		p.OnReady(func() {
			if err := session.Attach(p.Video(), track.URL); err != nil {
				log.Printf("player component: audio sync attach failed: %v", err)
				return
			}
			session.MarkReady()
		})
		p.RegisterSelector(c.audioSelector(tracks))
	}

	return nil
}

// qualitySelector builds the settings-panel selector for quality variants
func (c *PlayerComponent) qualitySelector(qualities []model.QualityVariant) player.Selector {
	options := make([]player.Option, len(qualities))
	selected := 0
	for i, variant := range qualities {
		options[i] = player.Option{
			Label:   variant.GetDisplayLabel(),
			Value:   variant.URL,
			Default: variant.Default,
		}
		if variant.Default {
			selected = i
		}
	}

	return player.Selector{
		Label:    KeyQuality,
		Options:  options,
		Selected: selected,
		OnSelect: func(opt player.Option) string {
			p := c.Player()
			if p == nil {
				return ""
			}
			for i, variant := range qualities {
				if variant.URL != opt.Value {
					continue
				}
				if err := p.SwitchQuality(variant); err != nil {
					log.Printf("player component: quality switch to %s failed: %v", variant.GetDisplayLabel(), err)
					return ""
				}
				p.SetSelectorSelected(KeyQuality, i)
				return variant.GetDisplayLabel()
			}
			return ""
		},
	}
}

// audioSelector builds the settings-panel selector for audio tracks
func (c *PlayerComponent) audioSelector(tracks []model.AudioTrack) player.Selector {
	options := make([]player.Option, len(tracks))
	selected := 0
	for i, track := range tracks {
		options[i] = player.Option{
			Label:   track.GetDisplayLabel(),
			Value:   track.URL,
			Default: track.Default,
		}
		if track.Default {
			selected = i
		}
	}

	return player.Selector{
		Label:    KeyAudioTrack,
		Options:  options,
		Selected: selected,
		OnSelect: func(opt player.Option) string {
			session := c.Session()
			if session == nil {
				return ""
			}
			if err := session.SwitchTrack(opt.Value); err != nil {
				log.Printf("player component: audio track switch failed: %v", err)
				return ""
			}
			for i, track := range tracks {
				if track.URL == opt.Value {
					if p := c.Player(); p != nil {
						p.SetSelectorSelected(KeyAudioTrack, i)
					}
					break
				}
			}
			return opt.Label
		},
	}
}

// Player returns the mounted player, nil before Mount
func (c *PlayerComponent) Player() *player.Player {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.player
}

// Session returns the synchronization session, nil when no audio tracks are
// configured or before Mount
func (c *PlayerComponent) Session() avsync.Controller {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	return c.session
}

// Mounted reports whether the component currently holds a player
func (c *PlayerComponent) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

// Unmount tears the component down: the session detaches first so its
// listeners leave the primary element before the player closes it.
// Idempotent.
func (c *PlayerComponent) Unmount() {
	c.mu.Lock()
	session := c.session
	p := c.player
	c.session = nil
	c.player = nil
	c.mounted = false
	c.mu.Unlock()

	if session != nil {
		session.Detach()
	}
	if p != nil {
		if err := p.Close(); err != nil {
			log.Printf("player component: close failed: %v", err)
		}
	}
}
