package geometry

import (
	"fmt"
	"math"
)

// Point represents a pixel coordinate.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Vec returns the point as a real-valued vector.
func (p Point) Vec() Vec {
	return Vec{X: float64(p.X), Y: float64(p.Y)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Vec is a real-valued position or displacement.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns v - w.
func (v Vec) Sub(w Vec) Vec {
	return Vec{X: v.X - w.X, Y: v.Y - w.Y}
}

// Dot returns the dot product of v and w.
func (v Vec) Dot(w Vec) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Slope is the slope of a line, Δy/Δx.
//
// When Vertical is set the line is parallel to the Y axis and M is
// meaningless; callers must branch on Vertical rather than read M.
type Slope struct {
	M        float64
	Vertical bool
}

// Perpendicular returns the slope of a line at right angles to s:
// -1/M, with horizontal and vertical swapping.
func (s Slope) Perpendicular() Slope {
	if s.Vertical {
		return Slope{M: 0}
	}
	if s.M == 0 {
		return Slope{Vertical: true}
	}
	return Slope{M: -1 / s.M}
}

// inclination returns the angle of the line against the X axis in degrees,
// in the range (-90, 90].
func (s Slope) inclination() float64 {
	if s.Vertical {
		return 90
	}
	return math.Atan(s.M) * 180 / math.Pi
}

// Line is either y = Slope.M*x + Intercept, or x = X when Slope.Vertical.
type Line struct {
	Slope     Slope
	Intercept float64
	X         float64
}

// YAt evaluates a non-vertical line at x.
func (l Line) YAt(x float64) float64 {
	return l.Slope.M*x + l.Intercept
}

// Distance returns the Euclidean distance between p1 and p2.
func Distance(p1, p2 Vec) float64 {
	return p2.Sub(p1).Len()
}

// SlopeOf returns the slope of the line through p1 and p2.
// The result is vertical when both points share an X coordinate.
func SlopeOf(p1, p2 Vec) Slope {
	dx := p1.X - p2.X
	if dx == 0 {
		return Slope{Vertical: true}
	}
	return Slope{M: (p1.Y - p2.Y) / dx}
}

// LineThrough returns the line through p1 and p2.
func LineThrough(p1, p2 Vec) Line {
	return LineWithSlope(p1, SlopeOf(p1, p2))
}

// LineWithSlope returns the line with slope m passing through p.
func LineWithSlope(p Vec, m Slope) Line {
	if m.Vertical {
		return Line{Slope: m, X: p.X}
	}
	return Line{Slope: m, Intercept: p.Y - m.M*p.X}
}

// PerpendicularDistance returns the signed distance from p to the line
// through a and b, computed as (b + m·x - y) / sqrt(1 + m²).
//
// For a vertical line the absolute horizontal displacement is returned.
// Callers that only need a magnitude should take math.Abs of the result.
func PerpendicularDistance(p, a, b Vec) float64 {
	l := LineThrough(a, b)
	if l.Slope.Vertical {
		return math.Abs(a.X - p.X)
	}
	m := l.Slope.M
	return (l.Intercept + m*p.X - p.Y) / math.Sqrt(1+m*m)
}

// AcuteAngleBetweenSlopes returns the acute angle in degrees, in [0, 90],
// between two lines with slopes m1 and m2, using
// atan(|(m1 - m2) / (1 + m1·m2)|).
//
// A vertical slope is compared through the other line's inclination, and
// perpendicular finite slopes (1 + m1·m2 = 0) yield exactly 90.
func AcuteAngleBetweenSlopes(m1, m2 Slope) float64 {
	switch {
	case m1.Vertical && m2.Vertical:
		return 0
	case m1.Vertical || m2.Vertical:
		d := math.Abs(m1.inclination() - m2.inclination())
		if d > 90 {
			d = 180 - d
		}
		return d
	}
	if m1.M == m2.M {
		return 0
	}
	den := 1 + m1.M*m2.M
	if den == 0 {
		return 90
	}
	return math.Abs(math.Atan((m1.M-m2.M)/den)) * 180 / math.Pi
}

// AngleBetweenVectors returns the angle in degrees, in [0, 180], between the
// displacement p1→p2 and the displacement q1→q2.
//
// The cosine is clamped to [-1, 1] before arccos to absorb rounding. If either
// displacement has zero length the angle is undefined and 0 is returned.
func AngleBetweenVectors(p1, p2, q1, q2 Vec) float64 {
	a := p2.Sub(p1)
	b := q2.Sub(q1)
	magA, magB := a.Len(), b.Len()
	if magA == 0 || magB == 0 {
		return 0
	}
	cos := a.Dot(b) / (magA * magB)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// orientation classifies the ordered triplet (p, q, r).
type orientation int

const (
	collinear orientation = iota
	clockwise
	counterClockwise
)

func orient(p, q, r Vec) orientation {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	switch {
	case val > 0:
		return clockwise
	case val < 0:
		return counterClockwise
	default:
		return collinear
	}
}

// onSegment reports whether q lies within the bounding box of segment pr.
// Only meaningful when p, q and r are collinear.
func onSegment(p, q, r Vec) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

// SegmentsIntersect reports whether segment p1q1 intersects segment p2q2.
//
// # Algorithm
//
// The four orientation triplets decide the general case: the segments cross
// when each one's endpoints lie on opposite sides of the other. The collinear
// special cases return true when an endpoint of one segment lies on the other,
// so touching and overlapping segments count as intersecting.
func SegmentsIntersect(p1, q1, p2, q2 Vec) bool {
	o1 := orient(p1, q1, p2)
	o2 := orient(p1, q1, q2)
	o3 := orient(p2, q2, p1)
	o4 := orient(p2, q2, q1)

	if o1 != o2 && o3 != o4 {
		return true
	}

	if o1 == collinear && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == collinear && onSegment(p1, q2, q1) {
		return true
	}
	if o3 == collinear && onSegment(p2, p1, q2) {
		return true
	}
	if o4 == collinear && onSegment(p2, q1, q2) {
		return true
	}
	return false
}

// FootOfPerpendicular returns the point on the line through a and b that is
// closest to p. If a and b coincide, a is returned.
func FootOfPerpendicular(p, a, b Vec) Vec {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / l2
	return Vec{X: a.X + t*ab.X, Y: a.Y + t*ab.Y}
}
