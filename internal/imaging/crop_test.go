package imaging

import (
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func decodeResult(t *testing.T, data string) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(strings.NewReader(string(raw)))
	if err != nil {
		t.Fatalf("failed to decode png: %v", err)
	}
	return img
}

func TestCropBlob(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		name       string
		rect       image.Rectangle
		pad        int
		scale      float64
		x, y, w, h int
	}{
		{"padded", image.Rect(40, 40, 60, 60), 5, 1, 35, 35, 30, 30},
		{"clipped at the corner", image.Rect(0, 0, 10, 10), 5, 1, 0, 0, 15, 15},
		{"clipped at the far edge", image.Rect(90, 95, 100, 100), 8, 1, 82, 87, 18, 13},
		{"negative pad", image.Rect(10, 20, 30, 25), -3, 1, 10, 20, 20, 5},
		{"scaled up", image.Rect(40, 40, 60, 60), 5, 2, 35, 35, 60, 60},
		{"scaled down", image.Rect(0, 0, 100, 100), 0, 0.5, 0, 0, 50, 50},
		{"zero scale keeps size", image.Rect(40, 40, 60, 60), 0, 0, 40, 40, 20, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CropBlob(img, tt.rect, tt.pad, tt.scale)
			if err != nil {
				t.Fatalf("CropBlob failed: %v", err)
			}
			if result.X != tt.x || result.Y != tt.y {
				t.Errorf("origin: got (%d,%d), want (%d,%d)", result.X, result.Y, tt.x, tt.y)
			}
			if result.Width != tt.w || result.Height != tt.h {
				t.Errorf("dimensions: got %dx%d, want %dx%d", result.Width, result.Height, tt.w, tt.h)
			}
			if result.MimeType != "image/png" {
				t.Errorf("MimeType: got %s, want image/png", result.MimeType)
			}
			if b := decodeResult(t, result.ImageBase64).Bounds(); b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("encoded dimensions: got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
		})
	}
}

func TestCropBlob_OutOfBounds(t *testing.T) {
	img := createPatternImage(100, 100)

	if _, err := CropBlob(img, image.Rect(200, 200, 210, 210), 0, 1); err == nil {
		t.Error("CropBlob should fail for a region outside the image")
	}
}

func TestCropBlob_VerifyContent(t *testing.T) {
	img := createPatternImage(100, 100)

	result, err := CropBlob(img, image.Rect(45, 45, 55, 55), 0, 1)
	if err != nil {
		t.Fatalf("CropBlob failed: %v", err)
	}
	cropped := decodeResult(t, result.ImageBase64)

	tests := []struct {
		x, y    int
		r, g, b uint8
	}{
		{0, 0, 255, 0, 0},
		{9, 0, 0, 255, 0},
		{0, 9, 0, 0, 255},
		{9, 9, 255, 255, 255},
	}
	for _, tt := range tests {
		r, g, b, _ := cropped.At(tt.x, tt.y).RGBA()
		if uint8(r>>8) != tt.r || uint8(g>>8) != tt.g || uint8(b>>8) != tt.b {
			t.Errorf("pixel (%d,%d): got (%d,%d,%d), want (%d,%d,%d)",
				tt.x, tt.y, r>>8, g>>8, b>>8, tt.r, tt.g, tt.b)
		}
	}
}
