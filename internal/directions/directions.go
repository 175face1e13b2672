// Package directions holds directing functions for detection regions.
//
// A directing function maps the regions selected by a director, and the frame
// they came from, to a raw directive. The functions here return any so that
// numeric and symbolic directives can share one pipeline.
package directions

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/ironsheep/vision-director/internal/detection"
)

// Func is a directing function over detection regions.
type Func func(regions []detection.Region, frame image.Image) (any, error)

// HorizontalOffset returns the mean horizontal position of the region
// centers relative to the frame center, scaled to [-1, 1]: -1 is the left
// edge, 0 the center, 1 the right edge. A robot steering toward the target
// turns in the direction of the sign.
//
// With no regions, which only an unbounded target lets through, the
// directive is nil: there is nothing to steer toward.
func HorizontalOffset(regions []detection.Region, frame image.Image) (any, error) {
	if len(regions) == 0 {
		return nil, nil
	}
	b := frame.Bounds()
	var sum float64
	for _, r := range regions {
		sum += float64(r.Center.X)
	}
	return offset(sum/float64(len(regions)), float64(b.Min.X), float64(b.Dx())), nil
}

// VerticalOffset is HorizontalOffset along Y: -1 is the top edge.
func VerticalOffset(regions []detection.Region, frame image.Image) (any, error) {
	if len(regions) == 0 {
		return nil, nil
	}
	b := frame.Bounds()
	var sum float64
	for _, r := range regions {
		sum += float64(r.Center.Y)
	}
	return offset(sum/float64(len(regions)), float64(b.Min.Y), float64(b.Dy())), nil
}

func offset(pos, origin, extent float64) float64 {
	if extent <= 0 {
		return 0
	}
	half := extent / 2
	v := (pos - origin - half) / half
	v = math.Max(-1, math.Min(1, v))
	return math.Round(v*1000) / 1000
}

// Count returns the number of regions as an int.
func Count(regions []detection.Region, _ image.Image) (any, error) {
	return len(regions), nil
}

// TextToken returns the lower-cased text of the first region, or "" when the
// first region carries no text.
func TextToken(regions []detection.Region, _ image.Image) (any, error) {
	if len(regions) == 0 {
		return "", nil
	}
	return strings.ToLower(strings.TrimSpace(regions[0].Text)), nil
}

// Lookup returns the directing function registered under name.
//
// Known names: x_center, y_center, count, text_token.
func Lookup(name string) (Func, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "x_center", "horizontal":
		return HorizontalOffset, nil
	case "y_center", "vertical":
		return VerticalOffset, nil
	case "count":
		return Count, nil
	case "text_token", "text":
		return TextToken, nil
	default:
		return nil, fmt.Errorf("unknown directing function: %s", name)
	}
}
