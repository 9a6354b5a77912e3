package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"

	"syncplayer/internal/model"
)

// Timeout constants
const (
	DefaultResolveTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// Default values
const (
	DefaultDuration     = "Unknown"
	DefaultPlaylistName = "Unknown Playlist"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// PlaylistResolverService resolves a playlist URL into a list of embeddable
// sources. It never downloads media; it only lists what a page could embed.
type PlaylistResolverService struct {
	timeout time.Duration
}

// NewPlaylistResolverService creates a new resolver service
func NewPlaylistResolverService() *PlaylistResolverService {
	return &PlaylistResolverService{
		timeout: DefaultResolveTimeout,
	}
}

// SetTimeout sets the timeout for resolve operations
func (r *PlaylistResolverService) SetTimeout(timeout time.Duration) {
	r.timeout = timeout
}

// ResolvePlaylist resolves a YouTube playlist URL into embeddable sources
func (r *PlaylistResolverService) ResolvePlaylist(ctx context.Context, url string) (*model.Playlist, error) {
	if !r.isValidPlaylistURL(url) {
		return nil, fmt.Errorf("invalid playlist URL: %s", url)
	}

	playlistID := r.extractPlaylistID(url)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", url)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %v", err)
	}

	playlist := model.NewPlaylist(url)
	playlist.ID = playlistID
	for _, it := range items {
		playlist.AddVideo(&model.PlaylistVideo{
			ID:       it.VideoID,
			Title:    it.Title,
			Duration: DefaultDuration,
			URL:      fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}
	playlist.Title = r.extractPlaylistTitle(playlist.Videos)
	playlist.UpdateStatus(model.PlaylistStatusReady)

	return playlist, nil
}

// isValidPlaylistURL checks if the URL carries a playlist parameter
func (r *PlaylistResolverService) isValidPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistParam)
}

// extractPlaylistID extracts the playlist ID from various URL formats
func (r *PlaylistResolverService) extractPlaylistID(url string) string {
	if strings.Contains(url, PlaylistParam) {
		parts := strings.Split(url, PlaylistParam)
		if len(parts) > 1 {
			playlistPart := parts[1]
			if strings.Contains(playlistPart, ParamSeparator) {
				playlistPart = strings.Split(playlistPart, ParamSeparator)[0]
			}
			return playlistPart
		}
	}
	return ""
}

// extractPlaylistTitle generates a title for the playlist based on its videos
func (r *PlaylistResolverService) extractPlaylistTitle(videos []*model.PlaylistVideo) string {
	if len(videos) == 0 {
		return DefaultPlaylistName
	}
	return videos[0].Title
}
