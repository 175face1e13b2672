//go:build cgo

package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/vision-director/internal/detection"
)

// Available reports whether Tesseract support is compiled in.
func Available() bool { return true }

// Detect runs word-level OCR over img and returns one region per word.
//
// The frame is PNG-encoded and handed to Tesseract in memory. A fresh client
// is created per call; gosseract clients are not safe for concurrent use.
func (d TextDetector) Detect(img image.Image) ([]detection.Region, error) {
	if img == nil {
		return nil, errors.New("ocr: nil image")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode frame for OCR: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(d.language()); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	words := make([]word, len(boxes))
	for i, box := range boxes {
		words[i] = word{Text: box.Word, Box: box.Box, Confidence: float64(box.Confidence)}
	}
	return toRegions(words, d.MinConfidence, img.Bounds().Min), nil
}
