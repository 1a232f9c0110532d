package contour

import (
	"math"

	"github.com/ironsheep/crypt-count-mcp/internal/geometry"
)

// neighbourRadius is the distance within which two crossings are treated as
// the same crossing of the boundary.
const neighbourRadius = 2

// LineIntersections returns the contour vertices where the segment p1–p2
// crosses the contour boundary.
//
// Each contour edge the segment intersects contributes the edge endpoint
// nearer to the line through p1 and p2. A crossing within two pixels of the
// previously recorded one is the same crossing seen on an adjacent edge and is
// skipped; because the contour is cyclic, a last crossing within two pixels of
// the first is dropped too.
func LineIntersections(c Contour, p1, p2 geometry.Vec) []geometry.Point {
	n := len(c.pts)
	if n < 2 {
		return nil
	}

	var hits []geometry.Point
	for i := 0; i < n; i++ {
		c1, c2 := c.pts[i], c.pts[(i+1)%n]
		if !geometry.SegmentsIntersect(p1, p2, c1.Vec(), c2.Vec()) {
			continue
		}

		hit := c1
		d1 := math.Abs(geometry.PerpendicularDistance(c1.Vec(), p1, p2))
		d2 := math.Abs(geometry.PerpendicularDistance(c2.Vec(), p1, p2))
		if d2 < d1 {
			hit = c2
		}

		if len(hits) > 0 && geometry.Distance(hits[len(hits)-1].Vec(), hit.Vec()) <= neighbourRadius {
			continue
		}
		hits = append(hits, hit)
	}

	if len(hits) > 1 && geometry.Distance(hits[len(hits)-1].Vec(), hits[0].Vec()) <= neighbourRadius {
		hits = hits[:len(hits)-1]
	}
	return hits
}
