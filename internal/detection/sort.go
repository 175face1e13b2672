package detection

import (
	"cmp"
	"fmt"
	"image"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// SortFunc reorders regions. Every SortFunc in this package returns a new
// slice and leaves its input untouched; ties keep their input order.
type SortFunc func(regions []Region) []Region

// SorterFactory builds a SortFunc for a particular frame. Sorters that do not
// depend on the frame ignore it.
type SorterFactory func(frame image.Rectangle) SortFunc

func stableSorted(regions []Region, less func(a, b Region) int) []Region {
	out := slices.Clone(regions)
	slices.SortStableFunc(out, less)
	return out
}

// ByAreaDesc orders regions from largest to smallest.
func ByAreaDesc(regions []Region) []Region {
	return stableSorted(regions, func(a, b Region) int { return cmp.Compare(b.Area(), a.Area()) })
}

// ByConfidenceDesc orders regions from most to least confident.
func ByConfidenceDesc(regions []Region) []Region {
	return stableSorted(regions, func(a, b Region) int { return cmp.Compare(b.Confidence, a.Confidence) })
}

// ByLeft orders regions by the X coordinate of their center, left first.
func ByLeft(regions []Region) []Region {
	return stableSorted(regions, func(a, b Region) int { return cmp.Compare(a.Center.X, b.Center.X) })
}

// ByTop orders regions by the Y coordinate of their center, top first.
func ByTop(regions []Region) []Region {
	return stableSorted(regions, func(a, b Region) int { return cmp.Compare(a.Center.Y, b.Center.Y) })
}

// ByCenterDistance orders regions by the distance of their center to the
// center of frame, nearest first.
func ByCenterDistance(frame image.Rectangle) SortFunc {
	cx := frame.Min.X + frame.Dx()/2
	cy := frame.Min.Y + frame.Dy()/2
	dist := func(r Region) int {
		dx, dy := r.Center.X-cx, r.Center.Y-cy
		return dx*dx + dy*dy
	}
	return func(regions []Region) []Region {
		return stableSorted(regions, func(a, b Region) int { return cmp.Compare(dist(a), dist(b)) })
	}
}

// ByColor orders regions by the CIE-Lab distance of their mean colour to
// hex, closest first. Regions without a parsable colour sort last.
func ByColor(hex string) (SortFunc, error) {
	target, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid sort color %q: %w", hex, err)
	}
	dist := func(r Region) float64 {
		c, err := colorful.Hex(r.Color)
		if err != nil {
			return 1e9
		}
		return c.DistanceLab(target)
	}
	return func(regions []Region) []Region {
		return stableSorted(regions, func(a, b Region) int { return cmp.Compare(dist(a), dist(b)) })
	}, nil
}

// LookupSorter returns the factory registered under name. The empty name and
// "none" return a nil factory, meaning no sorting. colorHex is only used by
// the "color" sorter.
//
// Known names: none, area, confidence, left, top, center, color.
func LookupSorter(name, colorHex string) (SorterFactory, error) {
	static := func(fn SortFunc) SorterFactory {
		return func(image.Rectangle) SortFunc { return fn }
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return nil, nil
	case "area":
		return static(ByAreaDesc), nil
	case "confidence":
		return static(ByConfidenceDesc), nil
	case "left":
		return static(ByLeft), nil
	case "top":
		return static(ByTop), nil
	case "center":
		return ByCenterDistance, nil
	case "color":
		fn, err := ByColor(colorHex)
		if err != nil {
			return nil, err
		}
		return static(fn), nil
	default:
		return nil, fmt.Errorf("unknown sorter: %s", name)
	}
}
