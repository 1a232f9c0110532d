package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/anthonynsimon/bild/histogram"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/crypt-count-mcp/internal/contour"
)

// DefaultLevel is the binarisation level for segmentation label maps, in
// which background is 0 and crypts are 1.
const DefaultLevel = 1

// MaskCache provides thread-safe caching of decoded images and of the binary
// masks derived from them.
//
// Images are keyed by path. Masks are keyed by path and binarisation level,
// so the same file can be read at several levels without decoding it again.
//
// MaskCache is safe for concurrent use by multiple goroutines. Masks handed
// out by the cache are shared and must not be modified.
//
// # Memory Management
//
// Entries remain in memory until removed via Evict() or Clear(). A mask costs
// one byte per pixel on top of the decoded image.
type MaskCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
	masks  map[maskKey]*contour.Mask
}

type maskKey struct {
	path  string
	level uint8
}

// NewMaskCache creates an empty cache.
func NewMaskCache() *MaskCache {
	return &MaskCache{
		images: make(map[string]image.Image),
		masks:  make(map[maskKey]*contour.Mask),
	}
}

// Image returns the decoded image at path, reading it from disk on first use.
//
// Parameters:
//   - path: File path. PNG, JPEG, GIF, TIFF and BMP are supported.
//
// Returns:
//   - image.Image: The decoded image, with EXIF orientation left as stored.
//   - error: Non-nil if the file cannot be opened or decoded.
//
// The image is cached using the exact path string provided.
func (c *MaskCache) Image(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Mask returns the binary mask of the image at path: every pixel whose gray
// value is at least level is foreground.
//
// A level of zero marks every pixel as foreground; callers normally pass
// DefaultLevel for label maps or a mid-range level for anti-aliased masks.
func (c *MaskCache) Mask(path string, level uint8) (*contour.Mask, error) {
	key := maskKey{path: path, level: level}
	c.mu.RLock()
	if m, ok := c.masks[key]; ok {
		c.mu.RUnlock()
		return m, nil
	}
	c.mu.RUnlock()

	img, err := c.Image(path)
	if err != nil {
		return nil, err
	}
	m := Binarize(img, level)

	c.mu.Lock()
	c.masks[key] = m
	c.mu.Unlock()

	return m, nil
}

// Loader returns a function that reads masks through the cache at level.
func (c *MaskCache) Loader(level uint8) func(path string) (*contour.Mask, error) {
	return func(path string) (*contour.Mask, error) {
		return c.Mask(path, level)
	}
}

// Clear removes all images and masks from the cache.
func (c *MaskCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.masks = make(map[maskKey]*contour.Mask)
	c.mu.Unlock()
}

// Evict removes the image at path and every mask derived from it.
//
// If the path is not in the cache, this method does nothing.
func (c *MaskCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	for k := range c.masks {
		if k.path == path {
			delete(c.masks, k)
		}
	}
	c.mu.Unlock()
}

// Cached reports whether an image or any mask decoded from path is held.
func (c *MaskCache) Cached(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.images[path]; ok {
		return true
	}
	for k := range c.masks {
		if k.path == path {
			return true
		}
	}
	return false
}

// Len returns the number of decoded images and masks held.
func (c *MaskCache) Len() (images, masks int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images), len(c.masks)
}

// Binarize converts img to a mask in which pixels with a luminance of at
// least level are foreground.
//
// Luminance is taken from imaging.Grayscale, which rounds to the nearest
// integer, so a gray pixel keeps its exact value and label 1 stays 1. The
// mask always starts at the origin.
func Binarize(img image.Image, level uint8) *contour.Mask {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	m := contour.NewMask(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < b.Dx(); x++ {
			if row[x*4] >= level {
				m.Set(x, y, true)
			}
		}
	}
	return m
}

// LevelCount is the number of pixels at one gray level.
type LevelCount struct {
	Level  int `json:"level"`
	Pixels int `json:"pixels"`
}

// MaskInfo contains metadata about a mask file.
type MaskInfo struct {
	// Width and Height are the image size in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the detected image format from the file extension:
	// "png", "jpeg", "gif", "tiff", "bmp", or "unknown".
	Format string `json:"format"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// Level is the binarisation level the foreground counts refer to.
	Level int `json:"level"`

	// ForegroundPixels is the number of pixels at or above Level.
	ForegroundPixels int `json:"foreground_pixels"`

	// ForegroundPercent is ForegroundPixels as a percentage of all pixels,
	// rounded to one decimal place.
	ForegroundPercent float64 `json:"foreground_percent"`

	// Levels lists every gray level present in the image with its pixel
	// count, darkest first. For a label map these are the labels.
	Levels []LevelCount `json:"levels"`
}

// LoadMaskInfo loads a mask through the cache and describes it.
//
// Parameters:
//   - cache: The cache to load through. Must not be nil.
//   - path: Path to the mask file.
//   - level: Binarisation level for the foreground counts.
//
// Returns:
//   - *MaskInfo: Size, format and gray-level histogram of the file.
//   - error: Non-nil if the image cannot be loaded or the file cannot be stat'd.
func LoadMaskInfo(cache *MaskCache, path string, level uint8) (*MaskInfo, error) {
	img, err := cache.Image(path)
	if err != nil {
		return nil, err
	}
	m, err := cache.Mask(path, level)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	case ".tif", ".tiff":
		format = "tiff"
	case ".bmp":
		format = "bmp"
	}

	hist := histogram.NewRGBAHistogram(imaging.Grayscale(img))
	var levels []LevelCount
	for v, n := range hist.R.Bins {
		if n > 0 {
			levels = append(levels, LevelCount{Level: v, Pixels: n})
		}
	}

	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	fg := m.Count()
	pct := 0.0
	if total > 0 {
		pct = float64(int(float64(fg)/float64(total)*1000+0.5)) / 10
	}

	return &MaskInfo{
		Width:             bounds.Dx(),
		Height:            bounds.Dy(),
		Format:            format,
		FileSizeBytes:     stat.Size(),
		Level:             int(level),
		ForegroundPixels:  fg,
		ForegroundPercent: pct,
		Levels:            levels,
	}, nil
}
