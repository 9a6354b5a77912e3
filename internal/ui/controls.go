package ui

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"syncplayer/internal/media"
	"syncplayer/internal/player"
)

// Controls is the playback control row: play/pause, seek slider with a time
// label, volume slider, and mute toggle. It drives the primary video element
// only; the synchronization session mirrors everything onto the audio track.
type Controls struct {
	player       *player.Player
	localization *Localization

	playPauseBtn *widget.Button
	seekSlider   *widget.Slider
	timeLabel    *widget.Label
	muteBtn      *widget.Button
	volumeSlider *widget.Slider

	container *fyne.Container

	mu       sync.Mutex
	updating bool
	unsubs   []func()
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewControls creates the control row for a mounted player
func NewControls(p *player.Player, localization *Localization) *Controls {
	c := &Controls{
		player:       p,
		localization: localization,
		stopCh:       make(chan struct{}),
	}

	c.createUI()
	c.subscribe()
	go c.refreshLoop()
	return c
}

// createUI creates the control row widgets
func (c *Controls) createUI() {
	c.playPauseBtn = widget.NewButton(IconPlay, c.onPlayPause)

	c.seekSlider = widget.NewSlider(0, 1)
	c.seekSlider.Step = 0.1
	c.seekSlider.OnChanged = c.onSeek

	c.timeLabel = widget.NewLabel(DashPlaceholder)
	c.timeLabel.Alignment = fyne.TextAlignTrailing

	c.muteBtn = widget.NewButton(IconVolume, c.onToggleMute)
	c.muteBtn.Importance = widget.LowImportance

	c.volumeSlider = widget.NewSlider(0, 1)
	c.volumeSlider.Step = 0.01
	c.volumeSlider.SetValue(c.player.Volume())
	c.volumeSlider.OnChanged = c.onVolume

	volumeBox := container.NewGridWrap(
		fyne.NewSize(VolumeSliderWidth, c.volumeSlider.MinSize().Height),
		c.volumeSlider,
	)
	timeBox := container.NewGridWrap(
		fyne.NewSize(TimeLabelWidth, c.timeLabel.MinSize().Height),
		c.timeLabel,
	)

	right := container.NewHBox(timeBox, c.muteBtn, volumeBox)
	c.container = container.NewBorder(nil, nil, c.playPauseBtn, right, c.seekSlider)

	c.refreshPlayState()
	c.refreshVolumeState()
}

// subscribe mirrors element state changes back into the widgets
func (c *Controls) subscribe() {
	video := c.player.Video()
	c.unsubs = append(c.unsubs,
		video.Subscribe(media.EventPlay, func() {
			fyne.Do(c.refreshPlayState)
		}),
		video.Subscribe(media.EventPause, func() {
			fyne.Do(c.refreshPlayState)
		}),
		video.Subscribe(media.EventVolumeChange, func() {
			fyne.Do(c.refreshVolumeState)
		}),
		video.Subscribe(media.EventEnded, func() {
			fyne.Do(c.refreshPlayState)
		}),
	)
}

// Container returns the root container of the control row
func (c *Controls) Container() *fyne.Container {
	return c.container
}

// Stop ends the position refresh loop and detaches element listeners.
// Idempotent.
func (c *Controls) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})

	c.mu.Lock()
	unsubs := c.unsubs
	c.unsubs = nil
	c.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
}

// refreshLoop keeps the seek slider and time label following playback
func (c *Controls) refreshLoop() {
	ticker := time.NewTicker(PositionRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			fyne.Do(c.refreshPosition)
		}
	}
}

// refreshPosition updates the slider range and value from the element
func (c *Controls) refreshPosition() {
	video := c.player.Video()

	duration := video.Duration()
	if math.IsNaN(duration) || duration <= 0 {
		c.timeLabel.SetText(DashPlaceholder)
		return
	}

	position := video.CurrentTime()

	c.mu.Lock()
	c.updating = true
	c.mu.Unlock()

	c.seekSlider.Max = duration
	c.seekSlider.SetValue(position)

	c.mu.Lock()
	c.updating = false
	c.mu.Unlock()

	c.timeLabel.SetText(formatTime(position) + TimeSeparator + formatTime(duration))
}

// refreshPlayState updates the play/pause button from the element
func (c *Controls) refreshPlayState() {
	if c.player.Paused() {
		c.playPauseBtn.SetText(IconPlay)
	} else {
		c.playPauseBtn.SetText(IconPause)
	}
}

// refreshVolumeState updates the mute button and volume slider
func (c *Controls) refreshVolumeState() {
	if c.player.Muted() {
		c.muteBtn.SetText(IconMuted)
	} else {
		c.muteBtn.SetText(IconVolume)
	}

	c.mu.Lock()
	c.updating = true
	c.mu.Unlock()

	c.volumeSlider.SetValue(c.player.Volume())

	c.mu.Lock()
	c.updating = false
	c.mu.Unlock()
}

// onPlayPause toggles playback of the primary element
func (c *Controls) onPlayPause() {
	video := c.player.Video()
	if video.Paused() {
		go func() {
			if err := video.Play(context.Background()); err != nil {
				log.Printf("controls: playback start refused: %v", err)
			}
		}()
	} else {
		video.Pause()
	}
}

// onSeek moves the primary element to the slider position
func (c *Controls) onSeek(value float64) {
	c.mu.Lock()
	updating := c.updating
	c.mu.Unlock()
	if updating {
		return
	}

	c.player.Video().SetCurrentTime(value)
}

// onVolume applies the slider value to the primary element
func (c *Controls) onVolume(value float64) {
	c.mu.Lock()
	updating := c.updating
	c.mu.Unlock()
	if updating {
		return
	}

	c.player.Video().SetVolume(value)
}

// onToggleMute flips the primary element's mute flag
func (c *Controls) onToggleMute() {
	video := c.player.Video()
	video.SetMuted(!video.Muted())
}

// formatTime renders seconds as M:SS, or H:MM:SS past the hour mark
func formatTime(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		return DashPlaceholder
	}

	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}
