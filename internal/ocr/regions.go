package ocr

import (
	"errors"
	"image"
	"strings"

	"github.com/ironsheep/vision-director/internal/detection"
)

// ErrUnavailable is returned when the binary was built without Tesseract support.
var ErrUnavailable = errors.New("ocr: tesseract support not compiled in (requires cgo)")

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"

// TextDetector recognizes words in a frame.
type TextDetector struct {
	// Language is the Tesseract language code. Defaults to DefaultLanguage.
	Language string

	// MinConfidence drops words scored below it (0.0 to 1.0).
	MinConfidence float64
}

var _ detection.Detector = TextDetector{}

func (d TextDetector) language() string {
	if d.Language == "" {
		return DefaultLanguage
	}
	return d.Language
}

// word is a recognized word as reported by the engine, confidence 0-100.
type word struct {
	Text       string
	Box        image.Rectangle
	Confidence float64
}

// toRegions converts engine words to regions. Empty words and words below
// minConfidence are skipped; offset moves boxes into image coordinates.
func toRegions(words []word, minConfidence float64, offset image.Point) []detection.Region {
	regions := make([]detection.Region, 0, len(words))
	for _, w := range words {
		text := strings.TrimSpace(w.Text)
		if text == "" {
			continue
		}
		confidence := w.Confidence / 100.0
		if confidence < minConfidence {
			continue
		}
		box := w.Box.Add(offset)
		regions = append(regions, detection.Region{
			Bounds: detection.Bounds{X1: box.Min.X, Y1: box.Min.Y, X2: box.Max.X, Y2: box.Max.Y},
			Center: detection.Point{
				X: (box.Min.X + box.Max.X) / 2,
				Y: (box.Min.Y + box.Max.Y) / 2,
			},
			Confidence: confidence,
			Text:       text,
		})
	}
	return regions
}
