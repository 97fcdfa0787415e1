package compose

// Package compose prepares user-authored posts for upload. It guards image
// size before any network activity, encodes the draft as JSON or multipart
// depending on the inline image size, and drives a single submission attempt
// through its states while keeping the draft intact on failure.
