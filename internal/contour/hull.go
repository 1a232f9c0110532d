package contour

import (
	"fmt"
	"math"
	"sort"

	"github.com/ironsheep/crypt-count-mcp/internal/geometry"
)

// Hull is a convex hull expressed as strictly increasing vertex indices
// into the contour it was computed from.
type Hull []int

// Defect is a region of a contour recessed from its convex hull.
//
// Start and End are the hull vertices bounding the recess, Far is the contour
// vertex between them furthest from the chord Start–End, and Depth is that
// perpendicular distance in pixels.
type Defect struct {
	Start      geometry.Point `json:"start"`
	End        geometry.Point `json:"end"`
	Far        geometry.Point `json:"far"`
	StartIndex int            `json:"start_index"`
	EndIndex   int            `json:"end_index"`
	FarIndex   int            `json:"far_index"`
	Depth      float64        `json:"depth"`
}

// HullFoot returns the point on the hull chord closest to Far, where the
// line from the hull down to the defect meets the hull.
func (d Defect) HullFoot() geometry.Vec {
	return geometry.FootOfPerpendicular(d.Far.Vec(), d.Start.Vec(), d.End.Vec())
}

// ConvexHull returns the convex hull of c as vertex indices in traversal
// order.
//
// # Algorithm
//
//  1. Deduplicate: a coordinate visited more than once resolves to its first
//     index, so the result is reproducible
//  2. Monotone chain over the distinct points, dropping collinear points
//  3. Ordering: sort the hull indices ascending, which walks the hull in
//     the same direction as the contour
//
// # Errors
//
// Returns ErrDegenerate when c has fewer than three distinct points or all of
// its points are collinear.
func ConvexHull(c Contour) (Hull, error) {
	first := make(map[geometry.Point]int, len(c.pts))
	idx := make([]int, 0, len(c.pts))
	for i, p := range c.pts {
		if _, ok := first[p]; ok {
			continue
		}
		first[p] = i
		idx = append(idx, i)
	}
	if len(idx) < 3 {
		return nil, fmt.Errorf("%w: %d distinct points", ErrDegenerate, len(idx))
	}

	chain := geometry.ConvexHullIndices(idx, func(i int) geometry.Vec { return c.pts[i].Vec() })
	if len(chain) < 3 {
		return nil, fmt.Errorf("%w: collinear points", ErrDegenerate)
	}

	hull := Hull(chain)
	sort.Ints(hull)
	return hull, nil
}

// Points returns the hull vertices of c.
func (h Hull) Points(c Contour) []geometry.Point {
	pts := make([]geometry.Point, len(h))
	for i, idx := range h {
		pts[i] = c.pts[idx]
	}
	return pts
}

// Defects returns the convexity defects of c deeper than threshold pixels.
//
// For each pair of consecutive hull indices (the last pair wrapping around to
// the first index) the contour arc strictly between them is scanned. A recess
// opens at the first vertex deeper than threshold and closes once the arc
// comes back to within threshold/2 of the chord, so pixel jitter near the
// threshold does not break one recess in two. Each recess yields one defect
// whose far point is its deepest vertex, the first along the arc winning
// ties. An arc usually holds a single recess, but a chord that bridges
// several touching objects in a row has one recess per waist.
func Defects(c Contour, h Hull, threshold float64) []Defect {
	n := len(c.pts)
	if len(h) < 3 || n < 3 {
		return nil
	}

	var defects []Defect
	for k := range h {
		si, ei := h[k], h[(k+1)%len(h)]
		start, end := c.pts[si], c.pts[ei]

		far, depth := -1, 0.0
		flush := func() {
			if far < 0 {
				return
			}
			defects = append(defects, Defect{
				Start:      start,
				End:        end,
				Far:        c.pts[far],
				StartIndex: si,
				EndIndex:   ei,
				FarIndex:   far,
				Depth:      depth,
			})
			far = -1
		}

		for i := (si + 1) % n; i != ei; i = (i + 1) % n {
			d := math.Abs(geometry.PerpendicularDistance(c.pts[i].Vec(), start.Vec(), end.Vec()))
			if far >= 0 && d <= threshold/2 {
				flush()
			} else if d > threshold && (far < 0 || d > depth) {
				far, depth = i, d
			}
		}
		flush()
	}
	return defects
}

// FindDefects computes the hull and the defects deeper than threshold.
//
// It never fails: a contour with no usable hull simply has no defects, and
// both results are nil.
func FindDefects(c Contour, threshold float64) (Hull, []Defect) {
	h, err := ConvexHull(c)
	if err != nil {
		return nil, nil
	}
	return h, Defects(c, h, threshold)
}
