package contour

import (
	"image"

	"golang.org/x/image/vector"

	"github.com/ironsheep/crypt-count-mcp/internal/geometry"
)

// coverageThreshold is the minimum anti-aliased coverage (out of 0xFF) for a
// pixel to count as inside a filled polygon.
const coverageThreshold = 0x80

// FillPolygon rasterises the closed polygon through pts into a mask sized to
// the polygon's bounding rectangle.
//
// The interior is filled with golang.org/x/image/vector, with vertices placed
// at pixel centres, and every edge (including the closing edge) is then
// stamped with a Bresenham line. The result therefore contains every vertex
// and is a single 8-connected component, even when the closing edge crosses
// the rest of the outline.
func FillPolygon(pts []geometry.Point) *Mask {
	r := geometry.BoundingRect(pts)
	m := NewMask(r)
	if len(pts) == 0 {
		return m
	}

	if len(pts) >= 3 {
		w, h := r.Dx(), r.Dy()
		z := vector.NewRasterizer(w, h)
		local := func(p geometry.Point) (float32, float32) {
			return float32(p.X-r.Min.X) + 0.5, float32(p.Y-r.Min.Y) + 0.5
		}
		z.MoveTo(local(pts[0]))
		for _, p := range pts[1:] {
			z.LineTo(local(p))
		}
		z.ClosePath()

		dst := image.NewAlpha(image.Rect(0, 0, w, h))
		z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if dst.AlphaAt(x, y).A >= coverageThreshold {
					m.Set(x+r.Min.X, y+r.Min.Y, true)
				}
			}
		}
	}

	for i := range pts {
		drawLine(m, pts[i], pts[(i+1)%len(pts)])
	}
	return m
}

// drawLine sets every pixel on the Bresenham line from a to b.
func drawLine(m *Mask, a, b geometry.Point) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		m.Set(x, y, true)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
