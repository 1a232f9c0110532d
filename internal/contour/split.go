package contour

import (
	"fmt"

	"github.com/ironsheep/crypt-count-mcp/internal/geometry"
)

// Split cuts c along the straight line between two of its vertices and
// returns the two resulting contours.
//
// Parameters:
//   - c: The contour to cut.
//   - p, q: Cut points. Both must be vertices of c; the first vertex with
//     matching coordinates is used.
//
// Returns:
//   - Contour, Contour: the arc from the lower to the higher index, and the
//     wrap-around arc from the higher index back to the lower one, each
//     closed by the cut and re-traced.
//   - error: wraps ErrInvalidSplitPoints when p or q is not on c.
//
// # Algorithm
//
//  1. Locate the indices i and j of p and q
//  2. Take the arcs [min(i,j), max(i,j)] and [max(i,j), end) ++ [0, min(i,j)]
//  3. Close each arc with the segment between its ends, fill it, and trace
//     the external boundary of the fill
//
// Step 3 makes each half a simple polygon: if the closing segment crosses
// the arc, the fill and re-trace replace the self-intersecting outline with
// the boundary of the region it covers.
func Split(c Contour, p, q geometry.Point) (Contour, Contour, error) {
	i := c.IndexOf(p)
	if i < 0 {
		return Contour{}, Contour{}, fmt.Errorf("%w: %v", ErrInvalidSplitPoints, p)
	}
	j := c.IndexOf(q)
	if j < 0 {
		return Contour{}, Contour{}, fmt.Errorf("%w: %v", ErrInvalidSplitPoints, q)
	}

	lo, hi := min(i, j), max(i, j)
	arc1 := append([]geometry.Point(nil), c.pts[lo:hi+1]...)
	arc2 := make([]geometry.Point, 0, len(c.pts)-(hi-lo)+1)
	arc2 = append(arc2, c.pts[hi:]...)
	arc2 = append(arc2, c.pts[:lo+1]...)

	return retrace(arc1), retrace(arc2), nil
}

// retrace closes the open polyline arc, fills it and returns its external
// boundary.
func retrace(arc []geometry.Point) Contour {
	out, ok := Trace(FillPolygon(arc))
	if !ok {
		return New(arc)
	}
	return out
}
