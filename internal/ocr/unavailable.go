//go:build !cgo

package ocr

import (
	"image"

	"github.com/ironsheep/vision-director/internal/detection"
)

// Available reports whether Tesseract support is compiled in.
func Available() bool { return false }

// Detect always fails with ErrUnavailable in builds without cgo.
func (d TextDetector) Detect(image.Image) ([]detection.Region, error) {
	return nil, ErrUnavailable
}
