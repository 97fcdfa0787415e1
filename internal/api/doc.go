package api

// Package api is the HTTP client for the Scrolly backend: authentication,
// post creation, the feed, likes, comments, and profiles. Every request
// carries the tunnel bypass header and, when a token is supplied, a bearer
// Authorization header. Non-2xx responses become *ServerError and requests
// that never got a response become *TransportError.
