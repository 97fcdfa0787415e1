package feed

// Package feed holds the dashboard feed: the loaded posts, the story strip
// derived from them, optimistic likes and comments.
