package compose

import (
	"fmt"
	"math"
)

// Image size limits
const (
	// MaxImageBytes is the ceiling on the estimated base64 size of an image
	MaxImageBytes = 2 * 1024 * 1024
	bytesPerMB    = 1024 * 1024
)

// EstimateEncodedSize returns the base64-inflated size of rawBytes
func EstimateEncodedSize(rawBytes int64) float64 {
	return float64(rawBytes) * 4 / 3
}

// CheckImageSize rejects images whose estimated encoded size exceeds
// MaxImageBytes. An estimate equal to the ceiling is accepted.
func CheckImageSize(rawBytes int64) error {
	// 4S/3 > C without the float rounding
	if rawBytes*4 <= MaxImageBytes*3 {
		return nil
	}
	sizeMB := math.Round(EstimateEncodedSize(rawBytes)/bytesPerMB*10) / 10
	return &ValidationError{
		Message: fmt.Sprintf("Please select an image smaller than 2MB. Current image is approximately %.1fMB.", sizeMB),
		SizeMB:  sizeMB,
	}
}
