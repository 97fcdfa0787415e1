package download

import (
	"context"

	"fyne.io/fyne/v2"
)

// Downloader defines the interface for the image download service.
type Downloader interface {
	SetUpdateCallback(func(ref string, res fyne.Resource, err error))
	Fetch(ctx context.Context, ref string) (fyne.Resource, error)
	FetchAsync(ref string)
	Cached(ref string) (fyne.Resource, bool)
	SetMaxParallelDownloads(max int)
}
