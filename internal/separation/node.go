package separation

import (
	"github.com/ironsheep/crypt-count-mcp/internal/contour"
	"github.com/ironsheep/crypt-count-mcp/internal/geometry"
)

// Node is a contour under consideration for splitting, with its derived
// geometry computed on first use and cached.
//
// A Node is owned by one separation and is not safe for concurrent use.
type Node struct {
	c contour.Contour
	p Params

	area     float64
	hasArea  bool
	hull     contour.Hull
	defects  []contour.Defect
	hasHull  bool
	fitSlope geometry.Slope
	hasFit   bool
}

// NewNode wraps c for evaluation under p.
func NewNode(c contour.Contour, p Params) *Node {
	return &Node{c: c, p: p}
}

// Contour returns the wrapped contour.
func (n *Node) Contour() contour.Contour {
	return n.c
}

// Area returns the contour's polygon area.
func (n *Node) Area() float64 {
	if !n.hasArea {
		n.area = n.c.Area()
		n.hasArea = true
	}
	return n.area
}

// LargeEnough reports whether the area reaches the minimum crypt size.
func (n *Node) LargeEnough() bool {
	return n.Area() >= float64(n.p.MinCryptSize)
}

// Hull returns the convex hull indices, or nil for a degenerate contour.
func (n *Node) Hull() contour.Hull {
	n.loadHull()
	return n.hull
}

// Defects returns the defects deeper than the threshold, in hull order.
func (n *Node) Defects() []contour.Defect {
	n.loadHull()
	return n.defects
}

// principalAxis returns the slope of the least-squares line through the
// contour points.
func (n *Node) principalAxis() geometry.Slope {
	if !n.hasFit {
		_, n.fitSlope = geometry.FitLine(n.c.Points())
		n.hasFit = true
	}
	return n.fitSlope
}

func (n *Node) loadHull() {
	if n.hasHull {
		return
	}
	n.hull, n.defects = contour.FindDefects(n.c, n.p.DefectThreshold)
	n.hasHull = true
}
