package contour

import (
	"errors"
	"image"

	"github.com/ironsheep/crypt-count-mcp/internal/geometry"
)

var (
	// ErrDegenerate reports a contour with too few distinct, non-collinear
	// points to have a convex hull.
	ErrDegenerate = errors.New("degenerate contour")

	// ErrInvalidSplitPoints reports a split request whose points are not
	// vertices of the contour being cut.
	ErrInvalidSplitPoints = errors.New("split point not on contour")
)

// Contour is an ordered, cyclic sequence of pixel coordinates.
//
// The zero value is an empty contour. A Contour is never modified after
// construction; all operations return new values.
type Contour struct {
	pts []geometry.Point
}

// New builds a contour from pts. The slice is copied, and consecutive
// duplicate points (including a closing point equal to the first) are dropped.
func New(pts []geometry.Point) Contour {
	out := make([]geometry.Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	return Contour{pts: out}
}

// Len returns the number of vertices.
func (c Contour) Len() int {
	return len(c.pts)
}

// At returns vertex i.
func (c Contour) At(i int) geometry.Point {
	return c.pts[i]
}

// Points returns a copy of the vertices.
func (c Contour) Points() []geometry.Point {
	return append([]geometry.Point(nil), c.pts...)
}

// IndexOf returns the index of the first vertex equal to p, or -1.
func (c Contour) IndexOf(p geometry.Point) int {
	for i, q := range c.pts {
		if q == p {
			return i
		}
	}
	return -1
}

// Area returns the polygon area enclosed by the contour in square pixels.
func (c Contour) Area() float64 {
	return geometry.PolygonArea(c.pts)
}

// Bounds returns the pixel bounding rectangle of the contour.
func (c Contour) Bounds() image.Rectangle {
	return geometry.BoundingRect(c.pts)
}

// Connected reports whether every vertex is an 8-neighbour of the next, the
// last wrapping to the first, as on a traced pixel boundary.
func (c Contour) Connected() bool {
	n := len(c.pts)
	for i, p := range c.pts {
		q := c.pts[(i+1)%n]
		if abs(p.X-q.X) > 1 || abs(p.Y-q.Y) > 1 {
			return false
		}
	}
	return true
}

// Top returns the topmost vertex, the leftmost one among ties.
func (c Contour) Top() geometry.Point {
	if len(c.pts) == 0 {
		return geometry.Point{}
	}
	top := c.pts[0]
	for _, p := range c.pts[1:] {
		if p.Y < top.Y || (p.Y == top.Y && p.X < top.X) {
			top = p
		}
	}
	return top
}

// Equal reports whether c and d have the same vertices in the same order.
func (c Contour) Equal(d Contour) bool {
	if len(c.pts) != len(d.pts) {
		return false
	}
	for i := range c.pts {
		if c.pts[i] != d.pts[i] {
			return false
		}
	}
	return true
}
