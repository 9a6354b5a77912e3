package platform

// Package platform contains OS/platform integration and external tooling
// glue: ambient locale detection and playlist resolution via yt-dlp.
