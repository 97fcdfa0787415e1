package model

// Package model defines domain data structures used across the app: posts,
// comments, users, the local session record, the post draft, and the
// submission status enum. Structures are designed for direct binding in the
// UI and explicit state transitions.
