package detection

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/segment"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultMinArea is the smallest component kept when MinArea is not set.
const DefaultMinArea = 10

// DefaultColorTolerance is the CIE-Lab distance used when TargetColor is set
// and ColorTolerance is not.
const DefaultColorTolerance = 0.15

// Detector finds regions in a frame.
type Detector interface {
	Detect(img image.Image) ([]Region, error)
}

// BlobDetector finds connected blobs of bright (or dark, or coloured) pixels.
//
// The zero value detects bright blobs with luminance >= 0, which is every
// pixel; set Threshold or TargetColor to something meaningful.
type BlobDetector struct {
	// BlurRadius is the Gaussian blur radius applied before masking. 0 disables blur.
	BlurRadius float64

	// Threshold is the luminance (0-255) a pixel must reach to be foreground.
	// Ignored when TargetColor is set.
	Threshold uint8

	// Invert selects pixels below Threshold instead of at or above it.
	Invert bool

	// TargetColor selects pixels close to this #RRGGBB colour instead of
	// thresholding on luminance.
	TargetColor string

	// ColorTolerance is the maximum CIE-Lab distance to TargetColor.
	ColorTolerance float64

	// MinArea is the smallest component, in pixels, that is reported.
	MinArea int
}

// Detect returns the blobs found in img in raster order.
//
// Returns an error if img is nil or TargetColor cannot be parsed.
func (d BlobDetector) Detect(img image.Image) ([]Region, error) {
	if img == nil {
		return nil, errors.New("detect regions: nil image")
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return []Region{}, nil
	}

	src := img
	if d.BlurRadius > 0 {
		src = blur.Gaussian(img, d.BlurRadius)
	}

	mask, err := d.mask(src)
	if err != nil {
		return nil, err
	}

	minArea := d.MinArea
	if minArea <= 0 {
		minArea = DefaultMinArea
	}

	regions := make([]Region, 0)
	for _, component := range findComponents(mask, width, height) {
		if len(component) < minArea {
			continue
		}
		regions = append(regions, describe(src, component, bounds.Min))
	}
	return regions, nil
}

// mask returns a width*height foreground mask indexed by y*width+x, with
// coordinates relative to the frame's top-left corner.
func (d BlobDetector) mask(src image.Image) ([]bool, error) {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	mask := make([]bool, width*height)

	if d.TargetColor != "" {
		target, err := colorful.Hex(d.TargetColor)
		if err != nil {
			return nil, fmt.Errorf("invalid target color %q: %w", d.TargetColor, err)
		}
		tolerance := d.ColorTolerance
		if tolerance <= 0 {
			tolerance = DefaultColorTolerance
		}
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				c, ok := colorful.MakeColor(src.At(x+bounds.Min.X, y+bounds.Min.Y))
				if !ok {
					continue
				}
				mask[y*width+x] = c.DistanceLab(target) <= tolerance
			}
		}
		return mask, nil
	}

	// segment.Threshold reads transparent pixels as white; they are
	// background in either polarity.
	binary := segment.Threshold(src, d.Threshold)
	gb := binary.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if _, _, _, a := src.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA(); a == 0 {
				continue
			}
			on := binary.GrayAt(x+gb.Min.X, y+gb.Min.Y).Y > 0
			mask[y*width+x] = on != d.Invert
		}
	}
	return mask, nil
}

// findComponents groups foreground pixels into 8-connected components.
// Components are returned in raster order of their first pixel.
func findComponents(mask []bool, width, height int) [][]Point {
	visited := make([]bool, len(mask))
	components := make([][]Point, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if !mask[i] || visited[i] {
				continue
			}
			components = append(components, floodFill(mask, visited, x, y, width, height))
		}
	}
	return components
}

// floodFill collects the component containing (startX, startY) using an
// explicit stack.
func floodFill(mask, visited []bool, startX, startY, width, height int) []Point {
	component := make([]Point, 0, 64)
	stack := []Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		i := p.Y*width + p.X
		if visited[i] || !mask[i] {
			continue
		}
		visited[i] = true
		component = append(component, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
	return component
}

// describe builds a Region from a component. Component points are relative
// to the frame's top-left corner; origin moves them back into image
// coordinates. src may have a different origin than the input frame since
// bild returns zero-based images.
func describe(src image.Image, component []Point, origin image.Point) Region {
	srcMin := src.Bounds().Min
	minX, minY := math.MaxInt, math.MaxInt
	maxX, maxY := math.MinInt, math.MinInt
	var sumX, sumY int
	var sumR, sumG, sumB uint64

	for _, p := range component {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		sumX += p.X
		sumY += p.Y

		c := color.RGBAModel.Convert(src.At(p.X+srcMin.X, p.Y+srcMin.Y)).(color.RGBA)
		sumR += uint64(c.R)
		sumG += uint64(c.G)
		sumB += uint64(c.B)
	}

	n := len(component)
	boxArea := (maxX - minX + 1) * (maxY - minY + 1)
	mean := color.RGBA{
		R: uint8(sumR / uint64(n)),
		G: uint8(sumG / uint64(n)),
		B: uint8(sumB / uint64(n)),
		A: 255,
	}

	return Region{
		Bounds: Bounds{
			X1: minX + origin.X,
			Y1: minY + origin.Y,
			X2: maxX + 1 + origin.X,
			Y2: maxY + 1 + origin.Y,
		},
		Center: Point{
			X: int(math.Round(float64(sumX)/float64(n))) + origin.X,
			Y: int(math.Round(float64(sumY)/float64(n))) + origin.Y,
		},
		Pixels:     n,
		Confidence: math.Round(float64(n)/float64(boxArea)*1000) / 1000,
		Color:      fmt.Sprintf("#%02X%02X%02X", mean.R, mean.G, mean.B),
	}
}
