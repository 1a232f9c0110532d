package contour

import (
	"image"
)

// Mask is a binary raster covering Rect. Pixels outside Rect are background.
type Mask struct {
	Rect image.Rectangle
	pix  []bool
}

// NewMask returns an all-background mask covering r.
func NewMask(r image.Rectangle) *Mask {
	r = r.Canon()
	return &Mask{Rect: r, pix: make([]bool, r.Dx()*r.Dy())}
}

// MaskFromGray builds a mask in which every non-zero pixel of g is
// foreground. Thresholding to a binary image is the caller's job.
func MaskFromGray(g *image.Gray) *Mask {
	m := NewMask(g.Bounds())
	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		for x := m.Rect.Min.X; x < m.Rect.Max.X; x++ {
			if g.GrayAt(x, y).Y != 0 {
				m.Set(x, y, true)
			}
		}
	}
	return m
}

// At reports whether (x, y) is foreground.
func (m *Mask) At(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(m.Rect) {
		return false
	}
	return m.pix[m.offset(x, y)]
}

// Set marks (x, y) as foreground or background. Points outside the mask
// are ignored.
func (m *Mask) Set(x, y int, v bool) {
	if !(image.Point{X: x, Y: y}).In(m.Rect) {
		return
	}
	m.pix[m.offset(x, y)] = v
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.pix {
		if v {
			n++
		}
	}
	return n
}

// Gray renders the mask as a grayscale image, foreground white.
func (m *Mask) Gray() *image.Gray {
	g := image.NewGray(m.Rect)
	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		for x := m.Rect.Min.X; x < m.Rect.Max.X; x++ {
			if m.At(x, y) {
				g.Pix[g.PixOffset(x, y)] = 0xFF
			}
		}
	}
	return g
}

func (m *Mask) offset(x, y int) int {
	return (y-m.Rect.Min.Y)*m.Rect.Dx() + (x - m.Rect.Min.X)
}
