// Package detection produces the regions a director works on.
//
// The package turns a frame into a list of Region values: connected blobs of
// pixels that pass a brightness or colour test. It is deliberately simple;
// its job is to feed the directing stage, not to be a full vision library.
//
// # Blob Detection
//
// BlobDetector runs the following pipeline:
//
//  1. Blur: optional Gaussian blur (bild) to suppress sensor noise
//  2. Mask: a pixel is foreground when its luminance reaches Threshold
//     (bild segment), or when its CIE-Lab distance to TargetColor is within
//     ColorTolerance (go-colorful)
//  3. Components: 8-connected flood fill groups foreground pixels
//  4. Filtering: components smaller than MinArea pixels are dropped
//
// Regions come back in raster order of their first pixel (top to bottom, left
// to right). Use the sorters in this package to impose a different order.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounds use inclusive top-left and exclusive bottom-right
//
// # Confidence
//
// A region's confidence is its fill ratio: foreground pixels divided by the
// area of its bounding box. Solid rectangles score 1.0, discs about 0.785,
// thin diagonal streaks score low.
package detection
