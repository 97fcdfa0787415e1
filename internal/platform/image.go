package platform

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"fyne.io/fyne/v2"
	_ "golang.org/x/image/webp"

	"github.com/ytget/scrolly/internal/model"
)

// Image MIME types
const (
	MimeJPEG    = "image/jpeg"
	MimePNG     = "image/png"
	MimeGIF     = "image/gif"
	MimeWebP    = "image/webp"
	mimeUnknown = "application/octet-stream"
)

// MaxPickedImageBytes bounds how much of a picked file is read into memory.
// It sits well above the upload ceiling so oversized images are still
// measured and rejected with their real size.
const MaxPickedImageBytes = 32 << 20

// PickedImage is an image read from the picker with its data URI
type PickedImage struct {
	Image   model.SelectedImage
	DataURI string
}

// LoadSelectedImage reads an image from a Fyne picker reader and closes it
func LoadSelectedImage(reader fyne.URIReadCloser) (*PickedImage, error) {
	defer reader.Close()

	uri := reader.URI()
	return ReadImage(uri.String(), uri.Name(), uri.MimeType(), reader)
}

// ReadImage reads r fully and describes it. The MIME type comes from
// declaredMime when it is an image type, then from the file extension, then
// from the content itself.
func ReadImage(uri, name, declaredMime string, r io.Reader) (*PickedImage, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxPickedImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("read image: empty file")
	}
	if len(data) > MaxPickedImageBytes {
		return nil, fmt.Errorf("read image: file larger than %d bytes", MaxPickedImageBytes)
	}

	mimeType := DetectMimeType(declaredMime, name, data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("not an image: %s", mimeType)
	}

	selected := model.SelectedImage{
		URI:         uri,
		MimeType:    mimeType,
		FileName:    name,
		RawByteSize: int64(len(data)),
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		selected.Width = cfg.Width
		selected.Height = cfg.Height
	}

	return &PickedImage{Image: selected, DataURI: DataURI(mimeType, data)}, nil
}

// DetectMimeType picks the MIME type of an image file
func DetectMimeType(declared, name string, data []byte) string {
	if base, _, err := mime.ParseMediaType(declared); err == nil && strings.HasPrefix(base, "image/") {
		return base
	}
	if ext := strings.ToLower(path.Ext(name)); ext != "" {
		if t := extensionMime(ext); t != "" {
			return t
		}
	}
	if len(data) > 0 {
		if base, _, err := mime.ParseMediaType(http.DetectContentType(data)); err == nil {
			return base
		}
	}
	return mimeUnknown
}

func extensionMime(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return MimeJPEG
	case ".png":
		return MimePNG
	case ".gif":
		return MimeGIF
	case ".webp":
		return MimeWebP
	}
	if t := mime.TypeByExtension(ext); strings.HasPrefix(t, "image/") {
		base, _, _ := mime.ParseMediaType(t)
		return base
	}
	return ""
}

// DataURI encodes data as a base64 data URI
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
