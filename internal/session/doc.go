package session

// Package session keeps the logged-in user's id, bearer token and profile in
// the app preferences under a single key.
