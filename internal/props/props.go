package props

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"gopkg.in/yaml.v3"

	"syncplayer/internal/model"
)

// Props is the configuration surface of the player component. Variant lists
// arrive either structured or as serialized text (docs-site front matter
// delivers JSON or YAML); the serialized forms are parsed with fallback and a
// parse failure degrades to "no variants supplied".
type Props struct {
	// URL is the single playback URL used when no quality variants resolve
	URL string

	Qualities    []model.QualityVariant
	QualitiesRaw string

	AudioTracks    []model.AudioTrack
	AudioTracksRaw string
}

// ResolveQualities returns the quality variants: the structured list when
// present, otherwise the parsed serialized form. Parse failures are logged
// and yield nil; they never propagate.
func (p Props) ResolveQualities() []model.QualityVariant {
	if len(p.Qualities) > 0 {
		return p.Qualities
	}
	if strings.TrimSpace(p.QualitiesRaw) == "" {
		return nil
	}

	var variants []model.QualityVariant
	if err := parseSerialized(p.QualitiesRaw, &variants); err != nil {
		log.Printf("props: failed to parse quality variants, falling back to single URL: %v", err)
		return nil
	}
	return variants
}

// ResolveAudioTracks returns the audio tracks with the same policy as
// ResolveQualities
func (p Props) ResolveAudioTracks() []model.AudioTrack {
	if len(p.AudioTracks) > 0 {
		return p.AudioTracks
	}
	if strings.TrimSpace(p.AudioTracksRaw) == "" {
		return nil
	}

	var tracks []model.AudioTrack
	if err := parseSerialized(p.AudioTracksRaw, &tracks); err != nil {
		log.Printf("props: failed to parse audio tracks, continuing without them: %v", err)
		return nil
	}
	return tracks
}

// PlaybackURL returns the URL the primary element should start with: the
// default quality variant when variants resolve, else the single URL
func (p Props) PlaybackURL() string {
	if variant, ok := model.DefaultQuality(p.ResolveQualities()); ok {
		return variant.URL
	}
	return p.URL
}

// parseSerialized decodes a serialized variant list, trying JSON first and
// YAML second
func parseSerialized(raw string, out any) error {
	jsonErr := json.Unmarshal([]byte(raw), out)
	if jsonErr == nil {
		return nil
	}

	yamlErr := yaml.Unmarshal([]byte(raw), out)
	if yamlErr == nil {
		return nil
	}

	return fmt.Errorf("not valid JSON (%v) or YAML (%v)", jsonErr, yamlErr)
}
