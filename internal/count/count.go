package count

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/ironsheep/crypt-count-mcp/internal/contour"
	"github.com/ironsheep/crypt-count-mcp/internal/geometry"
	"github.com/ironsheep/crypt-count-mcp/internal/separation"
)

// Options configures a count.
type Options struct {
	// Params are the separation thresholds.
	Params separation.Params

	// Workers is the number of blobs separated concurrently.
	// Zero or negative means one per CPU.
	Workers int
}

// DefaultOptions returns the default separation parameters with one worker
// per CPU.
func DefaultOptions() Options {
	return Options{Params: separation.DefaultParams()}
}

// Crypt is one separated crypt.
type Crypt struct {
	Index  int              `json:"index"`  // Position in top-to-bottom order, from 0
	Points []geometry.Point `json:"points"` // Outline, clockwise on screen
	Area   float64          `json:"area"`   // Polygon area in square pixels
	Top    geometry.Point   `json:"top"`    // Topmost outline vertex
}

// CryptData is the count for one mask.
type CryptData struct {
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Count       int      `json:"count"`
	Crypts      []Crypt  `json:"crypts"`
	SizeTotal   int      `json:"size_total"`   // Sum of crypt areas, rounded
	SizeAverage int      `json:"size_average"` // Mean crypt area, rounded
	SizeStdev   int      `json:"size_stdev"`   // Population standard deviation, rounded
	Errors      []string `json:"errors,omitempty"`
}

// CountMask finds every blob in m, separates touching crypts and returns the
// crypts sorted top to bottom.
//
// Parameters:
//   - ctx: Cancels the count; blobs not yet separated are skipped.
//   - m: Binary mask, foreground = crypt.
//   - opts: Separation parameters and worker count.
//
// Returns:
//   - *CryptData: the crypts and their size statistics. A blob that fails to
//     separate is left out and its error is listed in Errors.
//   - error: non-nil only for invalid parameters or cancellation.
//
// Crypts are ordered by their topmost vertex, then by its X coordinate.
// Equal keys keep blob order.
func CountMask(ctx context.Context, m *contour.Mask, opts Options) (*CryptData, error) {
	if err := opts.Params.Validate(); err != nil {
		return nil, err
	}

	blobs := contour.FindBlobs(m)
	opts.Params.Debugf("found %d blobs in %dx%d mask", len(blobs), m.Rect.Dx(), m.Rect.Dy())

	results := separation.SeparateAll(ctx, blobs, opts.Params, opts.Workers)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := &CryptData{
		Width:  m.Rect.Dx(),
		Height: m.Rect.Dy(),
	}
	var crypts []contour.Contour
	for _, r := range results {
		if r.Err != nil {
			opts.Params.Debugf("blob %d skipped: %v", r.Index, r.Err)
			data.Errors = append(data.Errors, r.Err.Error())
			continue
		}
		crypts = append(crypts, r.Crypts...)
	}

	sort.SliceStable(crypts, func(i, j int) bool {
		a, b := crypts[i].Top(), crypts[j].Top()
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	data.Crypts = make([]Crypt, len(crypts))
	areas := make([]float64, len(crypts))
	for i, c := range crypts {
		areas[i] = c.Area()
		data.Crypts[i] = Crypt{
			Index:  i,
			Points: c.Points(),
			Area:   areas[i],
			Top:    c.Top(),
		}
	}
	data.Count = len(crypts)
	data.SizeTotal, data.SizeAverage, data.SizeStdev = sizeStats(areas)
	return data, nil
}

// sizeStats returns the total, mean and population standard deviation of
// areas, each rounded half to even. All three are zero for no areas.
func sizeStats(areas []float64) (total, mean, stdev int) {
	if len(areas) == 0 {
		return 0, 0, 0
	}
	var sum float64
	for _, a := range areas {
		sum += a
	}
	avg := sum / float64(len(areas))

	var ss float64
	for _, a := range areas {
		ss += (a - avg) * (a - avg)
	}
	sd := math.Sqrt(ss / float64(len(areas)))

	return round(sum), round(avg), round(sd)
}

func round(v float64) int {
	return int(math.RoundToEven(v))
}

// String summarises the count.
func (d *CryptData) String() string {
	return fmt.Sprintf("%d crypts in %dx%d (total %d, mean %d, stdev %d)",
		d.Count, d.Width, d.Height, d.SizeTotal, d.SizeAverage, d.SizeStdev)
}
