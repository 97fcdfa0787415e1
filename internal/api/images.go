package api

import (
	"fmt"
	"io"
	"strings"

	"fyne.io/fyne/v2/storage"
)

const (
	inlineImagePrefix = "data:image/"
	uploadsMarker     = "uploads/"
	// defaultInlinePrefix is assumed for bare base64 payloads
	defaultInlinePrefix = "data:image/jpeg;base64,"
)

// ResolveImageURL turns a server image reference into something an image
// loader can fetch. Data URIs and absolute http(s) URLs pass through,
// upload paths are joined to baseURL, and anything else is treated as bare
// base64 JPEG data.
func ResolveImageURL(baseURL, raw string) string {
	switch {
	case raw == "":
		return ""
	case strings.HasPrefix(raw, inlineImagePrefix):
		return raw
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return raw
	case strings.Contains(raw, uploadsMarker):
		return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(raw, "/")
	default:
		return defaultInlinePrefix + raw
	}
}

// ImageOpener opens a local image for upload
type ImageOpener interface {
	Open(uri string) (io.ReadCloser, error)
}

// OpenerFunc adapts a function to ImageOpener
type OpenerFunc func(uri string) (io.ReadCloser, error)

// Open calls f(uri)
func (f OpenerFunc) Open(uri string) (io.ReadCloser, error) {
	return f(uri)
}

// StorageOpener opens URIs through Fyne's storage repositories, which
// covers file:// paths and content:// URIs handed out by mobile pickers.
type StorageOpener struct{}

// Open parses uri and returns a reader for it
func (StorageOpener) Open(uri string) (io.ReadCloser, error) {
	u, err := storage.ParseURI(uri)
	if err != nil {
		return nil, fmt.Errorf("parse image uri %q: %w", uri, err)
	}
	r, err := storage.Reader(u)
	if err != nil {
		return nil, fmt.Errorf("open image %q: %w", uri, err)
	}
	return r, nil
}
