package model

import (
	"time"
)

// PlaylistStatus represents the current status of a playlist
type PlaylistStatus string

const (
	PlaylistStatusResolving PlaylistStatus = "resolving"
	PlaylistStatusReady     PlaylistStatus = "ready"
	PlaylistStatusError     PlaylistStatus = "error"
)

// PlaylistVideo represents a single embeddable source in a playlist
type PlaylistVideo struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
	URL      string `json:"url"`
}

// Playlist represents a resolved list of embeddable sources
type Playlist struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	URL       string           `json:"url"`
	Videos    []*PlaylistVideo `json:"videos"`
	Status    PlaylistStatus   `json:"status"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewPlaylist creates a new playlist instance in the resolving state
func NewPlaylist(url string) *Playlist {
	now := time.Now()
	return &Playlist{
		URL:       url,
		Status:    PlaylistStatusResolving,
		Videos:    make([]*PlaylistVideo, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddVideo adds a source to the playlist
func (p *Playlist) AddVideo(video *PlaylistVideo) {
	p.Videos = append(p.Videos, video)
	p.UpdatedAt = time.Now()
}

// UpdateStatus updates the playlist status
func (p *Playlist) UpdateStatus(status PlaylistStatus) {
	p.Status = status
	p.UpdatedAt = time.Now()
}

// GetVideo returns a source by ID
func (p *Playlist) GetVideo(videoID string) (*PlaylistVideo, bool) {
	for _, video := range p.Videos {
		if video.ID == videoID {
			return video, true
		}
	}
	return nil, false
}

// IsReady checks if the playlist resolved successfully and has sources
func (p *Playlist) IsReady() bool {
	return p.Status == PlaylistStatusReady && len(p.Videos) > 0
}
