// Package imaging provides the image I/O around crypt counting: reading
// segmentation masks, rendering crypt outlines for inspection, and cropping
// around a single crypt.
//
// All operations use a coordinate system where (0,0) is at the top-left
// corner, X increases rightward, and Y increases downward.
//
// # Masks
//
// A mask file is usually a label map written by a segmentation model, with
// background 0 and crypts 1. [Binarize] converts any decodable image to a
// [contour.Mask] by comparing each pixel's rounded luminance against a level;
// [DefaultLevel] suits label maps, and a mid-range level suits anti-aliased
// or 8-bit black and white masks. Masks are always moved to the origin so
// traced outlines line up with the image they came from.
//
// # Thread Safety
//
// The MaskCache type is safe for concurrent use. Rendering and cropping are
// stateless and can be called concurrently.
//
// # Output Images
//
// Overlays and crops are returned as base64-encoded PNG data, ready to be
// embedded in a tool result.
//
// # Performance Considerations
//
// The cache keeps every decoded image and every mask until Evict() or Clear()
// is called. Long-running processes that walk many slides should evict each
// file once it has been counted.
package imaging
