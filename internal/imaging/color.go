package imaging

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Default overlay colours.
const (
	FirstCryptColor = "#00FFC1"
	CryptColor      = "#89FC00"
)

// goldenAngle spreads successive hues so that neighbouring indices never
// share a colour.
const goldenAngle = 137.50776405003785

// ParseHexColor parses a hex color string like "#FF0000" or "#FF000080".
//
// The leading '#' is optional. Six digits give an opaque colour; eight digits
// carry alpha in the last byte.
func ParseHexColor(hex string) (color.NRGBA, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if hex == "" {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}

	alpha := uint8(255)
	switch len(hex) {
	case 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in %q: %w", hex, err)
		}
		alpha = uint8(a)
		hex = hex[:6]
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length %d", len(hex))
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// Palette returns n distinct opaque outline colours.
//
// Index 0 is FirstCryptColor and index 1 is CryptColor, so a small overlay
// looks the same as the single-colour rendering. Further colours step round
// the hue circle by the golden angle starting from CryptColor's hue, at full
// saturation and value.
func Palette(n int) []color.NRGBA {
	if n <= 0 {
		return nil
	}

	first, _ := colorful.Hex(FirstCryptColor)
	base, _ := colorful.Hex(CryptColor)
	h, _, _ := base.Hsv()

	out := make([]color.NRGBA, n)
	for i := range out {
		var c colorful.Color
		switch i {
		case 0:
			c = first
		case 1:
			c = base
		default:
			c = colorful.Hsv(math.Mod(h+float64(i-1)*goldenAngle, 360), 1, 1)
		}
		r, g, b := c.Clamped().RGB255()
		out[i] = color.NRGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}
