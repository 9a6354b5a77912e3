package media

// Package media defines the element surface the player and the
// synchronization controller work against: the MediaElement interface, the
// element registry, and two backends. The clock backend simulates playback
// against wall time for the preview app and tests; the mpv backend drives a
// real mpv process over its JSON IPC socket.
