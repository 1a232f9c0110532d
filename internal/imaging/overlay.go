package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/crypt-count-mcp/internal/geometry"
)

// DefaultThickness is the outline width used when OverlayOptions leaves it
// unset.
const DefaultThickness = 2

// OverlayOptions controls how crypt outlines are drawn.
type OverlayOptions struct {
	// Thickness is the outline width in pixels. Zero means DefaultThickness.
	Thickness int

	// Labels draws each crypt's index next to its topmost vertex.
	Labels bool

	// Colors are used in turn for successive outlines. Empty means Palette.
	Colors []color.NRGBA

	// Dim darkens the base image by this percentage (0-100) so outlines
	// stand out.
	Dim float64
}

// OverlayResult contains the rendered overlay.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Count       int    `json:"count"` // Number of outlines drawn
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// RenderOverlay draws each outline in crypts as a closed polygon on top of
// base.
//
// Parameters:
//   - base: The background. Outline coordinates are relative to its top-left
//     corner.
//   - crypts: One vertex list per crypt, in display order.
//   - opts: Drawing options.
//
// Returns:
//   - *OverlayResult: The image as a base64 PNG.
//   - error: Non-nil if encoding fails.
//
// Outline segments are drawn with Bresenham's algorithm and thickened by
// stamping a square brush; pixels outside the image are skipped.
func RenderOverlay(base image.Image, crypts [][]geometry.Point, opts OverlayOptions) (*OverlayResult, error) {
	thickness := opts.Thickness
	if thickness <= 0 {
		thickness = DefaultThickness
	}
	colors := opts.Colors
	if len(colors) == 0 {
		colors = Palette(len(crypts))
	}

	var out *image.NRGBA
	if opts.Dim > 0 {
		out = imaging.AdjustBrightness(base, -opts.Dim)
	} else {
		out = imaging.Clone(base)
	}

	for i, pts := range crypts {
		if len(pts) == 0 {
			continue
		}
		c := colors[i%len(colors)]
		for j := range pts {
			drawLine(out, pts[j], pts[(j+1)%len(pts)], thickness, c)
		}
	}

	if opts.Labels {
		fg := color.NRGBA{255, 255, 255, 255}
		bg := color.NRGBA{0, 0, 0, 180}
		for i, pts := range crypts {
			if len(pts) == 0 {
				continue
			}
			top := pts[0]
			for _, p := range pts[1:] {
				if p.Y < top.Y || (p.Y == top.Y && p.X < top.X) {
					top = p
				}
			}
			drawLabel(out, top.X+2, top.Y+2, strconv.Itoa(i), fg, bg)
		}
	}

	data, err := encodePNG(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &OverlayResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		Count:       len(crypts),
		ImageBase64: data,
		MimeType:    "image/png",
	}, nil
}

// drawLine draws a segment from a to b with a square brush of the given
// width.
func drawLine(img *image.NRGBA, a, b geometry.Point, width int, c color.NRGBA) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	x, y := a.X, a.Y
	e := dx + dy
	for {
		stamp(img, x, y, width, c)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

func stamp(img *image.NRGBA, x, y, width int, c color.NRGBA) {
	bounds := img.Bounds()
	lo := -(width - 1) / 2
	for oy := lo; oy < lo+width; oy++ {
		for ox := lo; ox < lo+width; ox++ {
			p := image.Pt(x+ox, y+oy)
			if p.In(bounds) {
				img.SetNRGBA(p.X, p.Y, c)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// drawLabel draws a crypt index at the given position using a 3x5 pixel
// digit font on a filled background.
func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.NRGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
	}

	bounds := img.Bounds()
	const charWidth, labelHeight = 4, 7
	labelWidth := len(text) * charWidth

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			if p := image.Pt(x+dx, y+dy); p.In(bounds) {
				img.SetNRGBA(p.X, p.Y, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		for row, line := range glyphs[ch] {
			for col, pixel := range line {
				if pixel != '1' {
					continue
				}
				if p := image.Pt(cx+col, y+row); p.In(bounds) {
					img.SetNRGBA(p.X, p.Y, fg)
				}
			}
		}
		cx += charWidth
	}
}
