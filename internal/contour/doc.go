// Package contour turns binary crypt masks into traced boundary polygons and
// provides the polygon operations the separation heuristic is built on.
//
// # Contours
//
// A [Contour] is an immutable, ordered, cyclic sequence of pixel coordinates
// describing the external boundary of one 8-connected blob. Contours are
// produced by [Trace] and [FindBlobs] at full resolution: every boundary pixel
// is kept, because the separation geometry cuts at exact contour vertices.
//
// # Hull and Defects
//
// [ConvexHull] returns the hull as vertex indices into the contour, in the
// contour's own traversal order. [Defects] walks the contour arc under each
// hull chord and reports the deepest point as a [Defect] when it is recessed
// further than a pixel threshold. Depths are in plain pixel units.
//
// # Splitting
//
// [Split] cuts a contour at two of its own vertices into two arcs, closes each
// arc with a straight segment, fills it and re-traces it. Re-tracing removes
// any self-intersection the closing segment introduced, so both halves are
// simple polygons again.
//
// # Masks
//
// [Mask] is a binary raster with an origin offset so that fills of small arcs
// far from the image origin stay small. Pixels outside the mask bounds read as
// background.
package contour
