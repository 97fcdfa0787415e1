package compose

import (
	"errors"
	"math"
	"testing"
)

func TestCheckImageSize(t *testing.T) {
	// 1,572,864 * 4/3 == 2,097,152 exactly
	const boundary = 1_572_864

	tests := []struct {
		name     string
		raw      int64
		accepted bool
		sizeMB   float64
	}{
		{"zero", 0, true, 0},
		{"small", 100_000, true, 0},
		{"exactly at ceiling", boundary, true, 0},
		{"one byte over", boundary + 1, false, 2.0},
		{"three megabytes raw", 3 * 1024 * 1024, false, 4.0},
		{"rounds to one decimal", 1_700_000, false, 2.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckImageSize(tt.raw)
			if tt.accepted {
				if err != nil {
					t.Errorf("CheckImageSize(%d) = %v, expected nil", tt.raw, err)
				}
				return
			}

			var v *ValidationError
			if !errors.As(err, &v) {
				t.Fatalf("CheckImageSize(%d) = %v, expected *ValidationError", tt.raw, err)
			}
			if v.SizeMB != tt.sizeMB {
				t.Errorf("SizeMB = %v, expected %v", v.SizeMB, tt.sizeMB)
			}
		})
	}
}

func TestCheckImageSizeMatchesEstimate(t *testing.T) {
	for raw := int64(1_572_000); raw < 1_574_000; raw += 7 {
		estimated := EstimateEncodedSize(raw)
		want := estimated <= MaxImageBytes
		got := CheckImageSize(raw) == nil
		if got != want {
			t.Fatalf("CheckImageSize(%d) accepted = %v, expected %v (estimated %.2f)", raw, got, want, estimated)
		}
		if !got {
			v := CheckImageSize(raw).(*ValidationError)
			expectedMB := math.Round(estimated/1_048_576*10) / 10
			if v.SizeMB != expectedMB {
				t.Fatalf("SizeMB = %v, expected %v", v.SizeMB, expectedMB)
			}
		}
	}
}

func TestCheckImageSizeMessage(t *testing.T) {
	err := CheckImageSize(3 * 1024 * 1024)
	expected := "Please select an image smaller than 2MB. Current image is approximately 4.0MB."
	if err == nil || err.Error() != expected {
		t.Errorf("CheckImageSize() message = %v, expected %q", err, expected)
	}
}
