package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// PreprocessOptions controls Preprocess. The zero value leaves the frame
// untouched apart from moving its origin to (0, 0).
type PreprocessOptions struct {
	// ROI restricts the frame to a region of interest, in source coordinates.
	// An empty ROI uses the whole frame.
	ROI image.Rectangle

	// Width resizes the (cropped) frame to this width, keeping the aspect
	// ratio. 0 keeps the size. Frames narrower than Width are not enlarged.
	Width int

	// Grayscale drops colour information.
	Grayscale bool
}

// Preprocess crops, resizes and optionally desaturates img.
//
// Returns an error if ROI does not overlap the frame.
func Preprocess(img image.Image, opts PreprocessOptions) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("preprocess: nil image")
	}
	bounds := img.Bounds()

	var out *image.NRGBA
	if opts.ROI.Empty() {
		out = imaging.Clone(img)
	} else {
		roi := opts.ROI.Intersect(bounds)
		if roi.Empty() {
			return nil, fmt.Errorf("region of interest %v outside image bounds %v", opts.ROI, bounds)
		}
		out = imaging.Crop(img, roi)
	}

	if opts.Width > 0 && out.Bounds().Dx() > opts.Width {
		out = imaging.Resize(out, opts.Width, 0, imaging.Lanczos)
	}

	if opts.Grayscale {
		out = imaging.Grayscale(out)
	}
	return out, nil
}
