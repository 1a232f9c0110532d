package count

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/crypt-count-mcp/internal/contour"
	"github.com/ironsheep/crypt-count-mcp/internal/geometry"
	"github.com/ironsheep/crypt-count-mcp/internal/separation"
)

type disc struct {
	x, y int
	r    float64
}

// createMaskImage draws filled discs as label 1 on a black background, the
// way a segmentation model writes crypt masks.
func createMaskImage(t *testing.T, width, height int, discs ...disc) *image.Gray {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for _, d := range discs {
				dx, dy := float64(x-d.x), float64(y-d.y)
				if dx*dx+dy*dy <= d.r*d.r {
					img.SetGray(x, y, color.Gray{Y: 1})
					break
				}
			}
		}
	}
	return img
}

// sampleDiscs is a waist of two touching discs, two single discs and one
// disc below the minimum crypt size.
var sampleDiscs = []disc{
	{50, 60, 50}, {114, 60, 50},
	{300, 70, 50},
	{80, 200, 40},
	{380, 220, 15},
}

func TestCountMask(t *testing.T) {
	m := contour.MaskFromGray(createMaskImage(t, 420, 260, sampleDiscs...))

	data, err := CountMask(context.Background(), m, DefaultOptions())
	if err != nil {
		t.Fatalf("CountMask() error = %v", err)
	}

	if data.Width != 420 || data.Height != 260 {
		t.Errorf("size = %dx%d, want 420x260", data.Width, data.Height)
	}
	if data.Count != 4 || len(data.Crypts) != 4 {
		t.Fatalf("Count = %d with %d crypts, want 4", data.Count, len(data.Crypts))
	}
	if len(data.Errors) != 0 {
		t.Errorf("Errors = %v, want none", data.Errors)
	}

	wantTops := []geometry.Point{{X: 50, Y: 10}, {X: 114, Y: 10}, {X: 300, Y: 20}, {X: 80, Y: 160}}
	var sum float64
	for i, c := range data.Crypts {
		if c.Index != i {
			t.Errorf("crypt %d has Index %d", i, c.Index)
		}
		if c.Top != wantTops[i] {
			t.Errorf("crypt %d Top = %v, want %v", i, c.Top, wantTops[i])
		}
		if c.Area < 2000 {
			t.Errorf("crypt %d Area = %v, below minimum", i, c.Area)
		}
		if len(c.Points) == 0 {
			t.Errorf("crypt %d has no outline", i)
		}
		sum += c.Area
	}
	if want := int(math.RoundToEven(sum)); data.SizeTotal != want {
		t.Errorf("SizeTotal = %d, want %d", data.SizeTotal, want)
	}
	if want := int(math.RoundToEven(sum / 4)); data.SizeAverage != want {
		t.Errorf("SizeAverage = %d, want %d", data.SizeAverage, want)
	}
}

func TestCountMaskEmpty(t *testing.T) {
	m := contour.NewMask(image.Rect(0, 0, 50, 40))

	data, err := CountMask(context.Background(), m, DefaultOptions())
	if err != nil {
		t.Fatalf("CountMask() error = %v", err)
	}
	if data.Count != 0 || data.SizeTotal != 0 || data.SizeAverage != 0 || data.SizeStdev != 0 {
		t.Errorf("CountMask() = %+v, want an empty count", data)
	}
	if data.Crypts == nil {
		t.Error("Crypts is nil, want an empty slice")
	}
}

func TestCountMaskErrors(t *testing.T) {
	m := contour.MaskFromGray(createMaskImage(t, 120, 120, disc{60, 60, 50}))

	t.Run("invalid params", func(t *testing.T) {
		opts := Options{Params: separation.Params{MinCryptSize: -5, DefectThreshold: 10}}
		if _, err := CountMask(context.Background(), m, opts); !errors.Is(err, separation.ErrInvalidParams) {
			t.Errorf("CountMask() error = %v, want ErrInvalidParams", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := CountMask(ctx, m, DefaultOptions()); !errors.Is(err, context.Canceled) {
			t.Errorf("CountMask() error = %v, want context.Canceled", err)
		}
	})
}

func TestSizeStats(t *testing.T) {
	tests := []struct {
		name                   string
		areas                  []float64
		total, mean, stdevWant int
	}{
		{"none", nil, 0, 0, 0},
		{"single", []float64{2500.4}, 2500, 2500, 0},
		{"textbook", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 40, 5, 2},
		{"halves round to even", []float64{1.5, 2.5}, 4, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, mean, stdev := sizeStats(tt.areas)
			if total != tt.total || mean != tt.mean || stdev != tt.stdevWant {
				t.Errorf("sizeStats() = %d, %d, %d, want %d, %d, %d", total, mean, stdev, tt.total, tt.mean, tt.stdevWant)
			}
		})
	}
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
}

// loadPNG reads a mask with the standard decoder; any non-zero gray level is
// foreground.
func loadPNG(path string) (*contour.Mask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}
	g, ok := img.(*image.Gray)
	if !ok {
		return nil, errors.New("not a grayscale mask")
	}
	return contour.MaskFromGray(g), nil
}

func TestProcessDir(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "mask10.png"), createMaskImage(t, 120, 120, disc{60, 60, 50}))
	writePNG(t, filepath.Join(dir, "mask2.png"), createMaskImage(t, 420, 260, sampleDiscs...))
	writePNG(t, filepath.Join(dir, "empty.png"), createMaskImage(t, 30, 30))
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := ProcessDir(context.Background(), dir, loadPNG, DefaultOptions())
	if err != nil {
		t.Fatalf("ProcessDir() error = %v", err)
	}

	wantNames := []string{"broken", "empty", "mask2", "mask10"}
	if len(res.Files) != len(wantNames) {
		t.Fatalf("ProcessDir() returned %d files, want %d", len(res.Files), len(wantNames))
	}
	for i, name := range wantNames {
		if res.Files[i].Name != name {
			t.Errorf("file %d = %q, want %q", i, res.Files[i].Name, name)
		}
	}

	if res.Files[0].Error == "" || res.Files[0].Data != nil {
		t.Errorf("broken file = %+v, want an error and no data", res.Files[0])
	}
	if res.Files[1].Data == nil || res.Files[1].Data.Count != 0 {
		t.Errorf("empty mask = %+v, want a zero count", res.Files[1])
	}
	if res.Files[2].Data == nil || res.Files[2].Data.Count != 4 {
		t.Errorf("mask2 = %+v, want 4 crypts", res.Files[2])
	}
	if res.Files[3].Data == nil || res.Files[3].Data.Count != 1 {
		t.Errorf("mask10 = %+v, want 1 crypt", res.Files[3])
	}
	if res.Total != 5 || res.Failed != 1 {
		t.Errorf("Total = %d, Failed = %d, want 5 and 1", res.Total, res.Failed)
	}
}

func TestProcessDirMissing(t *testing.T) {
	_, err := ProcessDir(context.Background(), filepath.Join(t.TempDir(), "nope"), loadPNG, DefaultOptions())
	if err == nil {
		t.Error("ProcessDir() on a missing directory succeeded")
	}
}
