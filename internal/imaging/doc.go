// Package imaging loads frames and prepares them for region detection.
//
// # Frame Loading
//
// FrameCache decodes PNG, JPEG and GIF files and keeps them in memory keyed by
// path. It is safe for concurrent use. The server replays the same file many
// times when a client steps a pipeline through a recorded sequence, so the
// cache avoids repeated decoding.
//
// # Preprocessing
//
// Preprocess applies an optional region of interest and an optional resize to
// a working width, using github.com/disintegration/imaging. Detection cost
// grows with pixel count, so pipelines usually shrink large camera frames
// before detecting regions.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Preprocess returns images whose origin is (0, 0); regions detected on them
// are in preprocessed coordinates.
package imaging
