package download

// Package download fetches post, story and profile images for display. It
// decodes inline data URIs locally, fetches remote images through the API
// tunnel with a bounded number of parallel requests, and keeps recently used
// images in memory.
