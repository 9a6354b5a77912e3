package ui

// Package ui contains the embeddable player component and its Fyne surface.
// PlayerComponent owns the mount/unmount lifecycle of a player and its audio
// synchronization session; Controls, SettingsMenu, and PlaylistPanel render
// the interactive chrome around it. All UI strings are localized via
// Localization.
