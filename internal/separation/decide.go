package separation

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/crypt-count-mcp/internal/contour"
	"github.com/ironsheep/crypt-count-mcp/internal/geometry"
)

// Angles in degrees.
const (
	// crossAxisAngle is the smallest angle between a cut and the principal
	// axis at which the cut counts as running across the shape.
	crossAxisAngle = 45

	// maxFacingAngle is the largest angle any term of the parallelity score
	// may take before the pair is rejected.
	maxFacingAngle = 90
)

// pinchDistance is the far-point separation, in pixels, below which two
// defects are treated as a pinch.
const pinchDistance = 3

// oblongRatio is the long-to-short side ratio above which a shape is oblong.
const oblongRatio = 2

// SplitLine is a cut between two contour vertices.
type SplitLine struct {
	A geometry.Point `json:"a"`
	B geometry.Point `json:"b"`
}

// Decision is the outcome of evaluating one node: either [NoSplit] or
// [Split].
type Decision interface {
	decision()
}

// NoSplit leaves the node whole.
type NoSplit struct {
	Reason string `json:"reason"`
}

// Split cuts the node along Line into A and B.
type Split struct {
	Line SplitLine      `json:"line"`
	A    contour.Contour `json:"-"`
	B    contour.Contour `json:"-"`
}

func (NoSplit) decision() {}
func (Split) decision()   {}

// Decide chooses whether and where to cut the contour held by n.
//
// Returns:
//   - Decision: NoSplit with a human-readable reason, or Split with the two
//     halves. Both halves of a Split are at least the minimum crypt size and
//     strictly smaller than the node.
//   - error: non-nil only if a chosen cut point is not on the contour, which
//     indicates a bug in defect extraction.
//
// # Branches
//
// The branch taken depends on how many defects exceed the threshold:
//
//   - 0: no cut
//   - 1: cut across the defect, perpendicular to its hull chord, where that
//     line meets the boundary; rejected if it is within 45° of perpendicular
//     to the principal axis or does not cross the boundary exactly twice
//   - 2: cut between the two far points; rejected if it is within 45° of
//     perpendicular to the principal axis and the shape is oblong
//   - 3+: cut between the defect pair with the lowest parallelity score
func Decide(n *Node) (Decision, error) {
	if !n.LargeEnough() {
		return NoSplit{Reason: "below minimum crypt size"}, nil
	}

	defects := n.Defects()
	var (
		line   SplitLine
		reason string
		ok     bool
	)
	switch len(defects) {
	case 0:
		return NoSplit{Reason: "no defects above threshold"}, nil
	case 1:
		line, reason, ok = singleDefectCut(n, defects[0])
	case 2:
		line, reason, ok = pairDefectCut(n, defects[0], defects[1])
	default:
		line, reason, ok = bestPairCut(n, defects)
	}
	if !ok {
		n.p.Debugf("no cut with %d defects: %s", len(defects), reason)
		return NoSplit{Reason: reason}, nil
	}

	a, b, err := contour.Split(n.c, line.A, line.B)
	if err != nil {
		return nil, fmt.Errorf("failed to cut %v-%v: %w", line.A, line.B, err)
	}

	areaA, areaB := a.Area(), b.Area()
	minSize := float64(n.p.MinCryptSize)
	if areaA < minSize || areaB < minSize {
		n.p.Debugf("cut %v-%v rejected: halves %.0f and %.0f below %d", line.A, line.B, areaA, areaB, n.p.MinCryptSize)
		return NoSplit{Reason: "cut leaves a half below minimum crypt size"}, nil
	}
	if areaA >= n.Area() || areaB >= n.Area() {
		return NoSplit{Reason: "cut does not reduce the contour"}, nil
	}

	n.p.Debugf("cut %v-%v: halves %.0f and %.0f", line.A, line.B, areaA, areaB)
	return Split{Line: line, A: a, B: b}, nil
}

// singleDefectCut extends the line from the hull chord through the defect's
// far point across the contour's bounding box and cuts where it meets the
// boundary.
func singleDefectCut(n *Node, d contour.Defect) (SplitLine, string, bool) {
	perp := geometry.SlopeOf(d.Start.Vec(), d.End.Vec()).Perpendicular()
	if geometry.AcuteAngleBetweenSlopes(perp, n.principalAxis()) >= crossAxisAngle {
		return SplitLine{}, "cut would run across the principal axis", false
	}

	p1, p2 := scanSegment(n.c.Bounds(), geometry.LineWithSlope(d.Far.Vec(), perp))
	hits := contour.LineIntersections(n.c, p1, p2)
	if len(hits) != 2 {
		return SplitLine{}, fmt.Sprintf("cut line meets the boundary %d times", len(hits)), false
	}
	return SplitLine{A: hits[0], B: hits[1]}, "", true
}

// scanSegment clips l to the horizontal extent of r, or to its vertical
// extent when l is vertical.
func scanSegment(r image.Rectangle, l geometry.Line) (geometry.Vec, geometry.Vec) {
	if l.Slope.Vertical {
		return geometry.Vec{X: l.X, Y: float64(r.Min.Y)}, geometry.Vec{X: l.X, Y: float64(r.Max.Y)}
	}
	x0, x1 := float64(r.Min.X), float64(r.Max.X)
	return geometry.Vec{X: x0, Y: l.YAt(x0)}, geometry.Vec{X: x1, Y: l.YAt(x1)}
}

// pairDefectCut joins the far points of the two defects.
func pairDefectCut(n *Node, d1, d2 contour.Defect) (SplitLine, string, bool) {
	cut := geometry.SlopeOf(d1.Far.Vec(), d2.Far.Vec())
	if geometry.AcuteAngleBetweenSlopes(cut, n.principalAxis()) >= crossAxisAngle {
		hull := n.Hull().Points(n.c)
		vs := make([]geometry.Vec, len(hull))
		for i, p := range hull {
			vs[i] = p.Vec()
		}
		rect := geometry.MinAreaRect(vs)
		if rect.Long() > oblongRatio*rect.Short() {
			return SplitLine{}, "cut would run across an oblong shape", false
		}
	}
	return SplitLine{A: d1.Far, B: d2.Far}, "", true
}

// bestPairCut scores every ordered pair of defects and joins the far points
// of the lowest-scoring pair. Pairs are visited with the first index outer
// and the lowest score wins strictly, so the first minimum is kept.
func bestPairCut(n *Node, defects []contour.Defect) (SplitLine, string, bool) {
	best := math.Inf(1)
	var line SplitLine
	for i, di := range defects {
		for j, dj := range defects {
			if i == j {
				continue
			}
			score := parallelityScore(di, dj)
			if geometry.Distance(di.Far.Vec(), dj.Far.Vec()) < pinchDistance {
				score = 0
			} else if len(contour.LineIntersections(n.c, di.Far.Vec(), dj.Far.Vec())) > 2 {
				score = math.Inf(1)
			}
			if score < best {
				best = score
				line = SplitLine{A: di.Far, B: dj.Far}
			}
		}
	}
	if math.IsInf(best, 1) {
		return SplitLine{}, "no defect pair faces each other", false
	}
	return line, "", true
}

// parallelityScore measures how well two defects face each other along the
// line joining their far points. Lower is better; +Inf rejects the pair.
//
// The score sums three angles in degrees:
//   - a: how far the two hull-to-defect lines are from pointing at each other
//   - b, c: how far the line joining the far points is from continuing each
//     hull-to-defect line
func parallelityScore(d1, d2 contour.Defect) float64 {
	h1, f1 := d1.HullFoot(), d1.Far.Vec()
	h2, f2 := d2.HullFoot(), d2.Far.Vec()

	a := 180 - math.Abs(geometry.AngleBetweenVectors(h1, f1, h2, f2))
	tb := geometry.AngleBetweenVectors(h1, f1, f1, f2)
	b := math.Min(180-tb, tb)
	tc := geometry.AngleBetweenVectors(h2, f2, f1, f2)
	c := math.Min(180-tc, tc)

	if a > maxFacingAngle || b > maxFacingAngle || c > maxFacingAngle {
		return math.Inf(1)
	}
	return a + b + c
}
