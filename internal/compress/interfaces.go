package compress

import (
	"context"

	"github.com/ytget/scrolly/internal/platform"
)

// Compressor defines the interface for the image compression service.
type Compressor interface {
	SetUpdateCallback(func(Progress))
	Shrink(ctx context.Context, img *platform.PickedImage) (*platform.PickedImage, error)
}
