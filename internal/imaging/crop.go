package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropResult contains a cropped region around one crypt.
type CropResult struct {
	X           int    `json:"x"` // Left edge of the crop in the source image
	Y           int    `json:"y"` // Top edge of the crop in the source image
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// CropBlob extracts the region rect from img, grown by pad pixels on every
// side and clipped to the image.
//
// Parameters:
//   - img: The source image, usually the slide the mask was made from.
//   - rect: The crypt's bounding rectangle in image coordinates.
//   - pad: Margin in pixels; negative values are treated as zero.
//   - scale: Resize factor applied after cropping. Values <= 0 or 1 keep the
//     native size.
//
// Returns:
//   - *CropResult: The crop as a base64 PNG with its source offset.
//   - error: Non-nil if the padded region does not overlap the image.
func CropBlob(img image.Image, rect image.Rectangle, pad int, scale float64) (*CropResult, error) {
	if pad < 0 {
		pad = 0
	}
	bounds := img.Bounds()
	r := rect.Canon().Inset(-pad).Intersect(bounds)
	if r.Empty() {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", rect, bounds)
	}

	cropped := imaging.Crop(img, r)
	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 {
			newWidth = 1
		}
		if newHeight < 1 {
			newHeight = 1
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	data, err := encodePNG(cropped)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		X:           r.Min.X,
		Y:           r.Min.Y,
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: data,
		MimeType:    "image/png",
	}, nil
}

func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
