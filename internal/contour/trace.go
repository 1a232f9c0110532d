package contour

import (
	"image"

	"github.com/ironsheep/crypt-count-mcp/internal/geometry"
)

// Moore neighbourhood in clockwise screen order: E, SE, S, SW, W, NW, N, NE.
var (
	mooreDX = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	mooreDY = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
)

func mooreIndex(dx, dy int) int {
	for i := 0; i < 8; i++ {
		if mooreDX[i] == dx && mooreDY[i] == dy {
			return i
		}
	}
	return 0
}

// Trace returns the external boundary of the blob that owns the first
// foreground pixel of m in raster order (top row first, then leftmost).
//
// Returns false if m has no foreground pixels.
func Trace(m *Mask) (Contour, bool) {
	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		for x := m.Rect.Min.X; x < m.Rect.Max.X; x++ {
			if m.At(x, y) {
				return New(traceBoundary(m.At, geometry.Point{X: x, Y: y}, 4*len(m.pix)+8)), true
			}
		}
	}
	return Contour{}, false
}

// FindBlobs returns the external boundary of every 8-connected foreground
// component of m, ordered by each component's first pixel in raster order.
//
// # Algorithm
//
//  1. Labelling: scan the mask and flood-fill each unvisited foreground
//     pixel with an explicit stack, assigning one label per component
//  2. Tracing: Moore-neighbour trace each component from its first pixel,
//     treating pixels of other components as background
//
// Holes are not traced, and a blob lying inside another blob's hole is
// reported as its own contour.
func FindBlobs(m *Mask) []Contour {
	w, h := m.Rect.Dx(), m.Rect.Dy()
	labels := make([]int, w*h)
	var starts []geometry.Point

	next := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if labels[y*w+x] != 0 || !m.At(x+m.Rect.Min.X, y+m.Rect.Min.Y) {
				continue
			}
			next++
			floodLabel(m, labels, x, y, next)
			starts = append(starts, geometry.Point{X: x + m.Rect.Min.X, Y: y + m.Rect.Min.Y})
		}
	}

	blobs := make([]Contour, 0, len(starts))
	for i, s := range starts {
		label := i + 1
		inside := func(x, y int) bool {
			lx, ly := x-m.Rect.Min.X, y-m.Rect.Min.Y
			if lx < 0 || ly < 0 || lx >= w || ly >= h {
				return false
			}
			return labels[ly*w+lx] == label
		}
		blobs = append(blobs, New(traceBoundary(inside, s, 4*w*h+8)))
	}
	return blobs
}

// floodLabel assigns label to the 8-connected component containing the
// mask-local pixel (startX, startY).
//
// Uses a stack rather than recursion so large blobs cannot overflow the
// goroutine stack.
func floodLabel(m *Mask, labels []int, startX, startY, label int) {
	w, h := m.Rect.Dx(), m.Rect.Dy()
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			continue
		}
		if labels[p.Y*w+p.X] != 0 || !m.At(p.X+m.Rect.Min.X, p.Y+m.Rect.Min.Y) {
			continue
		}
		labels[p.Y*w+p.X] = label

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
}

// traceBoundary follows the outer boundary of the component containing
// start using Moore-neighbour tracing. start must be the component's first
// pixel in raster order, so its west neighbour is background.
//
// # Algorithm
//
// The tracer keeps the current pixel c and a background pixel b adjacent to
// it. Each step scans c's neighbours clockwise starting just after b; the
// first foreground neighbour becomes the new c and the background neighbour
// examined immediately before it becomes the new b.
//
// Tracing stops when the tracer stands on start again and is about to repeat
// its very first move. Pixels on one-pixel-wide necks are legitimately
// visited twice, which a plain "back at start" test would cut short.
// maxSteps bounds the walk; four visits per pixel of the search area is
// always enough.
func traceBoundary(inside func(x, y int) bool, start geometry.Point, maxSteps int) []geometry.Point {
	pts := []geometry.Point{start}

	step := func(c, b geometry.Point) (geometry.Point, geometry.Point, bool) {
		from := mooreIndex(b.X-c.X, b.Y-c.Y)
		prev := b
		for k := 1; k <= 8; k++ {
			i := (from + k) % 8
			t := geometry.Point{X: c.X + mooreDX[i], Y: c.Y + mooreDY[i]}
			if inside(t.X, t.Y) {
				return t, prev, true
			}
			prev = t
		}
		return geometry.Point{}, geometry.Point{}, false
	}

	first, nb, ok := step(start, geometry.Point{X: start.X - 1, Y: start.Y})
	if !ok {
		return pts
	}

	n := first
	for steps := 0; steps < maxSteps; steps++ {
		c, b := n, nb
		n, nb, _ = step(c, b)
		if c == start && n == first {
			break
		}
		pts = append(pts, c)
	}
	return pts
}
