package avsync

import (
	"syncplayer/internal/media"
	"syncplayer/internal/model"
)

// Controller defines the interface for the synchronization session.
type Controller interface {
	SetStateCallback(func(model.SessionState))

	// Attach begins a session: it creates the secondary audio element for
	// trackURL and mirrors the primary element's playback state onto it.
	Attach(primary media.MediaElement, trackURL string) error

	// SwitchTrack replaces the secondary element's source, preserving the
	// current position and play state.
	SwitchTrack(url string) error

	// MarkReady acknowledges that the host player finished its internal
	// setup, ending the guard window early.
	MarkReady()

	// Detach tears the session down. Idempotent.
	Detach()

	State() model.SessionState
	CurrentTrack() string
}
