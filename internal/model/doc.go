package model

// Package model defines domain data structures used across the component:
// quality and audio-track variants, synchronization session states, and
// playlist entities. Structures are designed for direct binding in the UI and
// explicit state transitions.
