// Package imaging provides the pixel-level operations of the recognition
// pipeline: image loading and caching, binarization, horizontal
// morphology, padded cropping and line drawing.
//
// # Binary Images
//
// Binary images are *image.Gray with foreground (ink) at 255 and
// background at 0. Binarize produces this convention from a photo, where
// dark ink on light paper becomes foreground. Invert flips it.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, Min is inclusive and Max is exclusive
//
// Images returned by this package always have bounds starting at (0,0).
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The other functions
// allocate their output and never modify their input, except DrawLine,
// which paints in place.
//
// # Error Handling
//
// Loading and decoding failures are returned as *ImageLoadError, which
// wraps the underlying I/O or format error.
package imaging
