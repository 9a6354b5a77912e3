package platform

import (
	"context"
	"testing"
	"time"

	"syncplayer/internal/model"
)

func TestNewPlaylistResolverService(t *testing.T) {
	resolver := NewPlaylistResolverService()
	if resolver.timeout != DefaultResolveTimeout {
		t.Errorf("Expected default timeout %v, got %v", DefaultResolveTimeout, resolver.timeout)
	}

	resolver.SetTimeout(10 * time.Second)
	if resolver.timeout != 10*time.Second {
		t.Errorf("Expected timeout 10s, got %v", resolver.timeout)
	}
}

func TestIsValidPlaylistURL(t *testing.T) {
	resolver := NewPlaylistResolverService()

	valid := []string{
		"https://www.youtube.com/playlist?list=PLtest123",
		"https://youtube.com/watch?v=abc&list=PLtest123",
	}
	for _, url := range valid {
		if !resolver.isValidPlaylistURL(url) {
			t.Errorf("Expected %q to be valid", url)
		}
	}

	invalid := []string{
		"https://www.youtube.com/watch?v=abc",
		"https://example.com/video.mp4",
		"",
	}
	for _, url := range invalid {
		if resolver.isValidPlaylistURL(url) {
			t.Errorf("Expected %q to be invalid", url)
		}
	}
}

func TestExtractPlaylistID(t *testing.T) {
	resolver := NewPlaylistResolverService()

	cases := []struct {
		url      string
		expected string
	}{
		{"https://www.youtube.com/playlist?list=PLtest123", "PLtest123"},
		{"https://youtube.com/watch?v=abc&list=PLxyz&index=2", "PLxyz"},
		{"https://www.youtube.com/watch?v=abc", ""},
	}

	for _, tc := range cases {
		if got := resolver.extractPlaylistID(tc.url); got != tc.expected {
			t.Errorf("extractPlaylistID(%q): expected %q, got %q", tc.url, tc.expected, got)
		}
	}
}

func TestResolvePlaylistRejectsInvalidURL(t *testing.T) {
	resolver := NewPlaylistResolverService()

	if _, err := resolver.ResolvePlaylist(context.Background(), "https://example.com/video.mp4"); err == nil {
		t.Error("Expected error for URL without playlist parameter")
	}
}

func TestExtractPlaylistTitle(t *testing.T) {
	resolver := NewPlaylistResolverService()

	if got := resolver.extractPlaylistTitle(nil); got != DefaultPlaylistName {
		t.Errorf("Expected %q for empty playlist, got %q", DefaultPlaylistName, got)
	}

	videos := []*model.PlaylistVideo{{Title: "Episode 1"}}
	if got := resolver.extractPlaylistTitle(videos); got != "Episode 1" {
		t.Errorf("Expected first video title, got %q", got)
	}
}
