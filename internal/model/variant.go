package model

import "strings"

// QualityVariant represents a single selectable video rendition
type QualityVariant struct {
	Label    string `json:"label" yaml:"label"`
	URL      string `json:"url" yaml:"url"`
	AudioURL string `json:"audioUrl,omitempty" yaml:"audioUrl,omitempty"` // independent audio stream, if any
	Default  bool   `json:"default,omitempty" yaml:"default,omitempty"`
}

// AudioTrack represents a single selectable audio rendition
type AudioTrack struct {
	Label   string `json:"label" yaml:"label"`
	URL     string `json:"url" yaml:"url"`
	Default bool   `json:"default,omitempty" yaml:"default,omitempty"`
}

// DefaultQuality returns the variant to preselect: the first one flagged as
// default, or the first element when none is flagged. Returns false for an
// empty set.
func DefaultQuality(variants []QualityVariant) (QualityVariant, bool) {
	if len(variants) == 0 {
		return QualityVariant{}, false
	}
	for _, v := range variants {
		if v.Default {
			return v, true
		}
	}
	return variants[0], true
}

// DefaultAudioTrack returns the track to preselect using the same rule as
// DefaultQuality: first flagged default, else first element.
func DefaultAudioTrack(tracks []AudioTrack) (AudioTrack, bool) {
	if len(tracks) == 0 {
		return AudioTrack{}, false
	}
	for _, t := range tracks {
		if t.Default {
			return t, true
		}
	}
	return tracks[0], true
}

// GetDisplayLabel returns the label, or a name derived from the URL when the
// label is empty
func (v QualityVariant) GetDisplayLabel() string {
	if v.Label != "" {
		return v.Label
	}
	return labelFromURL(v.URL)
}

// GetDisplayLabel returns the label, or a name derived from the URL when the
// label is empty
func (t AudioTrack) GetDisplayLabel() string {
	if t.Label != "" {
		return t.Label
	}
	return labelFromURL(t.URL)
}

// labelFromURL extracts the last path segment without extension for display
func labelFromURL(url string) string {
	if url == "" {
		return ""
	}
	trimmed := strings.TrimRight(url, "/")
	parts := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return url
	}
	name := parts[len(parts)-1]
	// Strip query string and extension for cleaner display
	if idx := strings.Index(name, "?"); idx >= 0 {
		name = name[:idx]
	}
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	if name == "" {
		return url
	}
	return name
}
