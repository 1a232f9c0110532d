// Package separation splits a traced blob that may hold several touching
// crypts into one contour per crypt.
//
// # Algorithm Overview
//
// [Separate] keeps a FIFO worklist seeded with the blob's contour. Each
// contour taken from the list is wrapped in a [Node], which lazily computes
// and caches its convex hull, convexity defects and area, and handed to
// [Decide]:
//
//  1. Nodes smaller than the minimum crypt size, or with no defect deeper
//     than the defect threshold, are never cut
//  2. One defect: cut along the line from the hull through the defect, at
//     right angles to the hull chord, if that line runs with the blob's
//     principal axis rather than across it
//  3. Two defects: cut between the two deepest points, unless the cut runs
//     across the principal axis of a shape more than twice as long as wide
//  4. Three or more defects: cut between the pair of defects whose hull lines
//     best face each other along the line joining them; a pinch (far points
//     under 3 px apart) always wins and a cut that re-enters the shape is
//     never taken
//
// A cut is kept only if both halves are at least the minimum crypt size.
// Accepted halves go back on the worklist; rejected nodes become leaves, and
// leaves below the minimum size are dropped.
//
// # Concurrency
//
// A single separation is sequential and CPU bound. Blobs are independent, so
// [SeparateAll] runs one separation per blob on a worker pool. Nodes are never
// shared between goroutines and need no locking. A failure or panic while
// separating one blob is reported for that blob only.
//
// # Cancellation
//
// The context is checked between worklist pops. Contours are immutable, so an
// abandoned separation needs no cleanup.
package separation
