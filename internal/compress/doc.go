package compress

// Package compress shrinks picked images that are too large to upload by
// re-encoding them as JPEG at decreasing quality and scale.
