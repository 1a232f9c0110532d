package contour

import (
	"image"
	"math"
	"testing"

	"github.com/ironsheep/crypt-count-mcp/internal/geometry"
)

// createDiscMask draws filled discs of the given radius around each centre.
func createDiscMask(t *testing.T, width, height int, radius float64, centres ...geometry.Point) *Mask {
	t.Helper()

	m := NewMask(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for _, c := range centres {
				dx := float64(x - c.X)
				dy := float64(y - c.Y)
				if dx*dx+dy*dy <= radius*radius {
					m.Set(x, y, true)
					break
				}
			}
		}
	}
	return m
}

// createRectMask draws a filled axis-aligned rectangle, max exclusive.
func createRectMask(t *testing.T, width, height int, r image.Rectangle) *Mask {
	t.Helper()

	m := NewMask(image.Rect(0, 0, width, height))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.Set(x, y, true)
		}
	}
	return m
}

// traceOne traces the single blob of m and fails the test if there is none.
func traceOne(t *testing.T, m *Mask) Contour {
	t.Helper()

	c, ok := Trace(m)
	if !ok {
		t.Fatal("Trace found no foreground")
	}
	return c
}

// assertAdjacent checks that consecutive vertices, including the closing
// pair, are 8-neighbours, which is what a full-resolution trace produces.
func assertAdjacent(t *testing.T, c Contour) {
	t.Helper()

	for i := 0; i < c.Len(); i++ {
		a, b := c.At(i), c.At((i+1)%c.Len())
		dx, dy := a.X-b.X, a.Y-b.Y
		if dx < -1 || dx > 1 || dy < -1 || dy > 1 || (dx == 0 && dy == 0) {
			t.Fatalf("vertices %d %v and %d %v are not 8-neighbours", i, a, (i+1)%c.Len(), b)
		}
	}
}

func withinPercent(got, want, pct float64) bool {
	return math.Abs(got-want) <= want*pct/100
}
