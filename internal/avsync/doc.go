package avsync

// Package avsync implements the media synchronization controller. A Session
// owns one secondary audio element and keeps its playback position, play
// state, and volume in parity with a primary video element by reacting to the
// primary's events. No native primitive locks two element clocks together, so
// alignment is reactive and the primary is always authoritative.
