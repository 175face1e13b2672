package detection

import "image"

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (exclusive)
	Y2 int `json:"y2"` // Bottom edge (exclusive)
}

// Rect converts b to an image.Rectangle.
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2, b.Y2)
}

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Region is one detected object in a frame.
type Region struct {
	// Bounds is the bounding box enclosing every pixel of the region.
	Bounds Bounds `json:"bounds"`

	// Center is the centroid of the region's pixels, rounded to the nearest pixel.
	Center Point `json:"center"`

	// Pixels is the number of foreground pixels in the region.
	Pixels int `json:"pixels"`

	// Confidence is the fill ratio of the bounding box (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Color is the mean colour of the region as #RRGGBB. May be empty.
	Color string `json:"color,omitempty"`

	// Text is the recognized text for regions produced by OCR.
	Text string `json:"text,omitempty"`
}

// Width returns the horizontal extent of the bounding box.
func (r Region) Width() int { return r.Bounds.X2 - r.Bounds.X1 }

// Height returns the vertical extent of the bounding box.
func (r Region) Height() int { return r.Bounds.Y2 - r.Bounds.Y1 }

// Area returns the region size in pixels. For OCR regions, which carry no
// pixel count, the bounding box area is used.
func (r Region) Area() int {
	if r.Pixels > 0 {
		return r.Pixels
	}
	return r.Width() * r.Height()
}
