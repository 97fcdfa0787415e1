package compress

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/ytget/scrolly/internal/compose"
	"github.com/ytget/scrolly/internal/model"
	"github.com/ytget/scrolly/internal/platform"
)

// Encoding constants
const (
	// TargetRawBytes is the largest raw size the upload guard accepts
	TargetRawBytes = compose.MaxImageBytes * 3 / 4

	ScaleStep         = 0.8
	MinDimension      = 64
	OutputExtension   = ".jpg"
	OutputFilePattern = "shrunk-*" + OutputExtension
	TaskIDPrefix      = "shrink-"
)

// JPEG qualities tried at each scale, best first
var Qualities = []int{85, 75, 65, 55}

// ErrCannotShrink is returned when no scale and quality fits the target
var ErrCannotShrink = errors.New("image cannot be shrunk enough to upload")

// Progress reports one encoding attempt
type Progress struct {
	TaskID  string
	Scale   float64
	Quality int
	Bytes   int
	Done    bool
}

// Service handles image compression operations
type Service struct {
	outputDir string
	target    int
	onUpdate  func(Progress) // callback for UI updates
}

// NewService creates a new compression service writing results to
// outputDir. An empty outputDir uses the OS temp directory.
func NewService(outputDir string) *Service {
	if outputDir == "" {
		outputDir = os.TempDir()
	}
	return &Service{outputDir: outputDir, target: TargetRawBytes}
}

// SetUpdateCallback sets the callback function for progress updates
func (s *Service) SetUpdateCallback(callback func(Progress)) {
	s.onUpdate = callback
}

// Shrink re-encodes img as a JPEG no larger than the upload limit. The
// result is written to a new file so multipart uploads stream the smaller
// version.
func (s *Service) Shrink(ctx context.Context, img *platform.PickedImage) (*platform.PickedImage, error) {
	data, err := decodeDataURI(img.DataURI)
	if err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	taskID := generateTaskID()
	start := time.Now()
	out, width, height, err := s.fit(ctx, taskID, src)
	if err != nil {
		return nil, err
	}

	path, err := s.writeOutput(out)
	if err != nil {
		return nil, err
	}
	log.Printf("Shrunk image %s: %d -> %d bytes in %v", taskID, len(data), len(out), time.Since(start))

	return &platform.PickedImage{
		Image: model.SelectedImage{
			URI:         storage.NewFileURI(path).String(),
			MimeType:    platform.MimeJPEG,
			FileName:    shrunkName(img.Image.FileName),
			RawByteSize: int64(len(out)),
			Width:       width,
			Height:      height,
		},
		DataURI: platform.DataURI(platform.MimeJPEG, out),
	}, nil
}

// fit tries each quality at full size, then steps the scale down
func (s *Service) fit(ctx context.Context, taskID string, src image.Image) ([]byte, int, int, error) {
	bounds := src.Bounds()
	for scale := 1.0; ; scale *= ScaleStep {
		w := int(float64(bounds.Dx()) * scale)
		h := int(float64(bounds.Dy()) * scale)
		if w < MinDimension || h < MinDimension {
			return nil, 0, 0, ErrCannotShrink
		}

		scaled := resize(src, w, h)
		for _, q := range Qualities {
			if err := ctx.Err(); err != nil {
				return nil, 0, 0, err
			}

			var buf bytes.Buffer
			if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: q}); err != nil {
				return nil, 0, 0, fmt.Errorf("failed to encode image: %w", err)
			}

			done := buf.Len() <= s.target
			s.notifyUpdate(Progress{TaskID: taskID, Scale: scale, Quality: q, Bytes: buf.Len(), Done: done})
			if done {
				return buf.Bytes(), w, h, nil
			}
		}
	}
}

func (s *Service) writeOutput(data []byte) (string, error) {
	f, err := os.CreateTemp(s.outputDir, OutputFilePattern)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write output file: %w", err)
	}
	return f.Name(), nil
}

// resize scales src to w×h; the original is returned when sizes match
func resize(src image.Image, w, h int) image.Image {
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func decodeDataURI(uri string) ([]byte, error) {
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, fmt.Errorf("invalid data URI")
	}
	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URI: %w", err)
	}
	return data, nil
}

// shrunkName returns name with a .jpg extension
func shrunkName(name string) string {
	if name == "" {
		return model.DefaultImageFileName
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + OutputExtension
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(p Progress) {
	if s.onUpdate != nil {
		s.onUpdate(p)
	}
}

// generateTaskID generates a unique task ID using UUID v7
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
