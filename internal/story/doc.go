package story

// Package story drives the full-screen story viewer: timed progress per
// story, manual navigation, and the per-story progress bars.
