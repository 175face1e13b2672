// Package director turns a set of detected regions into a directive.
//
// A Director is the last step of a vision pipeline. It receives the regions
// that survived detection and filtering, decides whether enough of them were
// found, selects the ones to use and hands them to a directing function. The
// result is then passed through an ordered chain of monitors before it is
// returned to the caller.
//
// # Pipeline
//
// Direct works in the following order:
//
//  1. Gate: if fewer regions than the target amount were found, the
//     configured failure value becomes the result and steps 2-4 are skipped.
//  2. Sort: if a sorter was supplied it reorders the regions.
//  3. Trim: with an exact target amount only the first n regions are kept.
//     An unbounded target amount keeps all of them.
//  4. Direct: the directing function maps the selected regions and the image
//     to a result.
//  5. Monitor: every monitor is applied in order. A monitor whose priority is
//     terminal stops the chain after it has run.
//
// Monitors receive the region set that was given to the directing function,
// not the full detection set.
//
// # Opaque Data
//
// Director is generic over the region type R, the image type I, the camera
// context type C and the result type D. None of them are inspected: regions
// are only counted and reordered, the image and camera context are threaded
// through to the collaborators.
//
// # Errors
//
// Construction fails with ErrInvalidConfiguration when the target amount is
// not a non-negative integer or when no directing function is given. A monitor
// that embeds UnimplementedMonitor without overriding Monitor fails with
// ErrNotImplemented when it is invoked. An empty or short region set is not an
// error; it is the ordinary failed-detection path.
//
// # Concurrency
//
// A Director holds no state between calls. Monitors may hold state (feedback
// controllers, smoothing windows); callers that share a Director between
// goroutines must serialize access to such monitors themselves.
package director
