package props

// Package props implements the component's configuration surface: a single
// playback URL, optional quality variants, and optional audio tracks, with
// tolerant parsing of the serialized forms used by docs-site front matter.
