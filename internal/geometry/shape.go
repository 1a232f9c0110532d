package geometry

import (
	"image"
	"math"
	"sort"
)

// PolygonArea returns the absolute area enclosed by the closed polygon
// through pts, using the shoelace formula over the vertex coordinates.
//
// Vertices are pixel centres, so a traced blob's area is slightly smaller than
// its pixel count. Fewer than three points enclose no area.
func PolygonArea(pts []Point) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	var sum int64
	for i := 0; i < n; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		sum += int64(a.X)*int64(b.Y) - int64(b.X)*int64(a.Y)
	}
	return math.Abs(float64(sum)) / 2
}

// BoundingRect returns the smallest pixel rectangle containing pts.
// Max is exclusive, so Dx() and Dy() are the inclusive pixel extents.
func BoundingRect(pts []Point) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	r := image.Rect(pts[0].X, pts[0].Y, pts[0].X+1, pts[0].Y+1)
	for _, p := range pts[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X+1)
		r.Max.Y = max(r.Max.Y, p.Y+1)
	}
	return r
}

// FitLine fits a line through the point mass of pts by orthogonal (total)
// least squares, which is the principal axis of the set.
//
// Returns the centroid the line passes through and its slope. The slope is
// vertical when the principal axis is parallel to the Y axis.
//
// # Algorithm
//
// The direction of the line is the eigenvector of the 2×2 covariance matrix
// with the largest eigenvalue, whose angle is ½·atan2(2·Sxy, Sxx - Syy).
// Unlike an ordinary y-on-x regression this treats both axes symmetrically,
// so tall shapes get a steep axis instead of a flattened one.
func FitLine(pts []Point) (Vec, Slope) {
	if len(pts) == 0 {
		return Vec{}, Slope{}
	}
	var cx, cy float64
	for _, p := range pts {
		cx += float64(p.X)
		cy += float64(p.Y)
	}
	n := float64(len(pts))
	cx /= n
	cy /= n

	var sxx, syy, sxy float64
	for _, p := range pts {
		dx := float64(p.X) - cx
		dy := float64(p.Y) - cy
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}

	theta := 0.5 * math.Atan2(2*sxy, sxx-syy)
	vx, vy := math.Cos(theta), math.Sin(theta)
	centroid := Vec{X: cx, Y: cy}
	if math.Abs(vx) < 1e-12 {
		return centroid, Slope{Vertical: true}
	}
	return centroid, Slope{M: vy / vx}
}

// RotatedRect is a rectangle of arbitrary orientation.
type RotatedRect struct {
	Center Vec     `json:"center"`
	Width  float64 `json:"width"`  // Extent along the rectangle's first edge direction
	Height float64 `json:"height"` // Extent perpendicular to Width
	Angle  float64 `json:"angle"`  // Direction of the Width edge, degrees
}

// Long returns the longer side length.
func (r RotatedRect) Long() float64 {
	return math.Max(r.Width, r.Height)
}

// Short returns the shorter side length.
func (r RotatedRect) Short() float64 {
	return math.Min(r.Width, r.Height)
}

// MinAreaRect returns the minimum-area rectangle enclosing pts.
//
// # Algorithm
//
// The minimum-area enclosing rectangle has one side collinear with an edge of
// the convex hull (rotating calipers). For each hull edge the points are
// projected onto the edge direction and its normal; the edge whose projected
// extents give the smallest area wins. Ties keep the first edge.
//
// Degenerate input (fewer than three hull vertices) yields a rectangle of
// zero height along the segment, or a zero rectangle for a single point.
func MinAreaRect(pts []Vec) RotatedRect {
	hull := convexHullVecs(pts)
	switch len(hull) {
	case 0:
		return RotatedRect{}
	case 1:
		return RotatedRect{Center: hull[0]}
	case 2:
		d := hull[1].Sub(hull[0])
		return RotatedRect{
			Center: Vec{X: (hull[0].X + hull[1].X) / 2, Y: (hull[0].Y + hull[1].Y) / 2},
			Width:  d.Len(),
			Angle:  math.Atan2(d.Y, d.X) * 180 / math.Pi,
		}
	}

	best := RotatedRect{}
	bestArea := math.Inf(1)
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		e := b.Sub(a)
		l := e.Len()
		if l == 0 {
			continue
		}
		u := Vec{X: e.X / l, Y: e.Y / l}
		v := Vec{X: -u.Y, Y: u.X}

		minS, maxS := math.Inf(1), math.Inf(-1)
		minT, maxT := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			s := p.Dot(u)
			t := p.Dot(v)
			minS, maxS = math.Min(minS, s), math.Max(maxS, s)
			minT, maxT = math.Min(minT, t), math.Max(maxT, t)
		}

		area := (maxS - minS) * (maxT - minT)
		if area < bestArea {
			bestArea = area
			cs := (minS + maxS) / 2
			ct := (minT + maxT) / 2
			best = RotatedRect{
				Center: Vec{X: u.X*cs + v.X*ct, Y: u.Y*cs + v.Y*ct},
				Width:  maxS - minS,
				Height: maxT - minT,
				Angle:  math.Atan2(u.Y, u.X) * 180 / math.Pi,
			}
		}
	}
	return best
}

// ConvexHullIndices returns the convex hull of the points at(i) for i in idx,
// as indices walking the hull from the leftmost point.
//
// The points must have distinct coordinates. Collinear points are dropped, so
// a collinear set yields just its two extremes and fewer than three results
// always means there is no hull with area.
//
// # Algorithm
//
// Andrew's monotone chain: sort by (X, Y), then build the lower chain left to
// right and the upper chain right to left, popping every vertex that does not
// make a strict left turn.
func ConvexHullIndices(idx []int, at func(i int) Vec) []int {
	order := append([]int(nil), idx...)
	sort.Slice(order, func(a, b int) bool {
		pa, pb := at(order[a]), at(order[b])
		if pa.X != pb.X {
			return pa.X < pb.X
		}
		return pa.Y < pb.Y
	})
	if len(order) <= 2 {
		return order
	}

	cross := func(o, a, b int) float64 {
		po, pa, pb := at(o), at(a), at(b)
		return (pa.X-po.X)*(pb.Y-po.Y) - (pa.Y-po.Y)*(pb.X-po.X)
	}
	chain := make([]int, 0, 2*len(order))
	for _, i := range order {
		for len(chain) >= 2 && cross(chain[len(chain)-2], chain[len(chain)-1], i) <= 0 {
			chain = chain[:len(chain)-1]
		}
		chain = append(chain, i)
	}
	lower := len(chain) + 1
	for k := len(order) - 2; k >= 0; k-- {
		i := order[k]
		for len(chain) >= lower && cross(chain[len(chain)-2], chain[len(chain)-1], i) <= 0 {
			chain = chain[:len(chain)-1]
		}
		chain = append(chain, i)
	}
	return chain[:len(chain)-1]
}

// convexHullVecs returns the hull vertices of pts, repeated points counted
// once.
func convexHullVecs(pts []Vec) []Vec {
	seen := make(map[Vec]bool, len(pts))
	idx := make([]int, 0, len(pts))
	for i, v := range pts {
		if !seen[v] {
			seen[v] = true
			idx = append(idx, i)
		}
	}
	chain := ConvexHullIndices(idx, func(i int) Vec { return pts[i] })
	hull := make([]Vec, len(chain))
	for k, i := range chain {
		hull[k] = pts[i]
	}
	return hull
}
