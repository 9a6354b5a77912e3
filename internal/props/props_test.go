package props

import (
	"testing"

	"syncplayer/internal/model"
)

func TestResolveQualitiesStructured(t *testing.T) {
	p := Props{
		Qualities: []model.QualityVariant{
			{Label: "1080p", URL: "https://cdn.example.com/v/1080.mp4", Default: true},
			{Label: "720p", URL: "https://cdn.example.com/v/720.mp4"},
		},
		// Structured list wins over the serialized form
		QualitiesRaw: `[{"label":"480p","url":"https://cdn.example.com/v/480.mp4"}]`,
	}

	variants := p.ResolveQualities()
	if len(variants) != 2 {
		t.Fatalf("Expected 2 variants, got %d", len(variants))
	}
	if variants[0].Label != "1080p" {
		t.Errorf("Expected structured list to win, got '%s'", variants[0].Label)
	}
}

func TestResolveQualitiesJSON(t *testing.T) {
	p := Props{
		QualitiesRaw: `[
			{"label":"1080p","url":"https://cdn.example.com/v/1080.mp4","audioUrl":"https://cdn.example.com/a/1080.m4a"},
			{"label":"720p","url":"https://cdn.example.com/v/720.mp4","default":true}
		]`,
	}

	variants := p.ResolveQualities()
	if len(variants) != 2 {
		t.Fatalf("Expected 2 variants, got %d", len(variants))
	}
	if variants[0].AudioURL != "https://cdn.example.com/a/1080.m4a" {
		t.Errorf("Expected audioUrl to parse, got '%s'", variants[0].AudioURL)
	}

	selected, ok := model.DefaultQuality(variants)
	if !ok || selected.Label != "720p" {
		t.Errorf("Expected flagged default '720p', got '%s'", selected.Label)
	}
}

func TestResolveQualitiesYAMLFallback(t *testing.T) {
	p := Props{
		QualitiesRaw: `
- label: 1080p
  url: https://cdn.example.com/v/1080.mp4
  default: true
- label: 720p
  url: https://cdn.example.com/v/720.mp4
`,
	}

	variants := p.ResolveQualities()
	if len(variants) != 2 {
		t.Fatalf("Expected 2 variants from YAML, got %d", len(variants))
	}
	if !variants[0].Default {
		t.Error("Expected first YAML variant flagged default")
	}
}

func TestResolveQualitiesMalformed(t *testing.T) {
	p := Props{
		URL:          "https://cdn.example.com/v/single.mp4",
		QualitiesRaw: `[{"label": "720p", "url": `,
	}

	if variants := p.ResolveQualities(); variants != nil {
		t.Errorf("Expected nil variants for malformed input, got %v", variants)
	}

	// Malformed variants degrade to the plain single-URL configuration
	if got := p.PlaybackURL(); got != "https://cdn.example.com/v/single.mp4" {
		t.Errorf("Expected single-URL fallback, got '%s'", got)
	}
}

func TestResolveQualitiesEmpty(t *testing.T) {
	p := Props{URL: "https://cdn.example.com/v/single.mp4"}

	if variants := p.ResolveQualities(); variants != nil {
		t.Errorf("Expected nil variants, got %v", variants)
	}
	if got := p.PlaybackURL(); got != p.URL {
		t.Errorf("Expected single URL, got '%s'", got)
	}
}

func TestResolveAudioTracks(t *testing.T) {
	p := Props{
		AudioTracksRaw: `[
			{"label":"English","url":"https://cdn.example.com/a/en.m4a"},
			{"label":"Japanese","url":"https://cdn.example.com/a/ja.m4a","default":true}
		]`,
	}

	tracks := p.ResolveAudioTracks()
	if len(tracks) != 2 {
		t.Fatalf("Expected 2 tracks, got %d", len(tracks))
	}

	selected, ok := model.DefaultAudioTrack(tracks)
	if !ok || selected.Label != "Japanese" {
		t.Errorf("Expected flagged default 'Japanese', got '%s'", selected.Label)
	}
}

func TestResolveAudioTracksMalformed(t *testing.T) {
	p := Props{AudioTracksRaw: `{{{not a list`}

	if tracks := p.ResolveAudioTracks(); tracks != nil {
		t.Errorf("Expected nil tracks for malformed input, got %v", tracks)
	}
}

func TestPlaybackURLPrefersDefaultVariant(t *testing.T) {
	p := Props{
		URL: "https://cdn.example.com/v/single.mp4",
		Qualities: []model.QualityVariant{
			{Label: "720p", URL: "https://cdn.example.com/v/720.mp4"},
			{Label: "1080p", URL: "https://cdn.example.com/v/1080.mp4", Default: true},
		},
	}

	if got := p.PlaybackURL(); got != "https://cdn.example.com/v/1080.mp4" {
		t.Errorf("Expected default variant URL, got '%s'", got)
	}
}
