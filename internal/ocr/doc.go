// Package ocr turns recognized words into regions for text-driven pipelines.
//
// A TextDetector runs Tesseract (via gosseract/v2) over a frame and returns
// one detection.Region per recognized word, with Text set. Pipelines that
// steer on printed command cards use it together with the text_token
// directing function.
//
// # Prerequisites
//
// gosseract links against libtesseract, so the package needs cgo and the
// Tesseract development headers:
//   - Ubuntu/Debian: apt-get install libtesseract-dev tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Builds without cgo compile a stub whose Detect fails with ErrUnavailable.
//
// # Confidence
//
// Tesseract reports word confidence on a 0-100 scale. Regions carry it
// normalized to 0.0-1.0, and words below MinConfidence are dropped.
package ocr
