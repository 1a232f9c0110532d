package separation

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/ironsheep/crypt-count-mcp/internal/contour"
)

// BlobResult is the separation outcome for one blob.
type BlobResult struct {
	// Index is the blob's position in the input slice.
	Index int

	// Crypts holds the separated contours. Nil when Err is set.
	Crypts []contour.Contour

	// Err is the failure for this blob alone, including recovered panics and
	// cancellation before the blob was processed.
	Err error
}

// SeparateAll runs Separate on every blob using a pool of workers.
//
// Parameters:
//   - ctx: Cancels outstanding work; blobs not yet finished report ctx.Err().
//   - blobs: Independent blob outlines.
//   - p: Parameters shared by every blob.
//   - workers: Pool size. Zero or negative means runtime.NumCPU().
//
// Returns one BlobResult per blob, in input order. A failure in one blob
// never affects the others.
func SeparateAll(ctx context.Context, blobs []contour.Contour, p Params, workers int) []BlobResult {
	results := make([]BlobResult, len(blobs))
	if len(blobs) == 0 {
		return results
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(blobs))

	type job struct {
		idx  int
		blob contour.Contour
	}
	// Bounded channels give natural backpressure.
	inCh := make(chan job, workers*2)
	outCh := make(chan BlobResult, workers*2)

	var wg sync.WaitGroup
	worker := func() {
		defer wg.Done()
		for j := range inCh {
			outCh <- separateOne(ctx, j.idx, j.blob, p)
		}
	}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go worker()
	}

	go func() {
		defer close(inCh)
		for i, b := range blobs {
			select {
			case inCh <- job{idx: i, blob: b}:
			case <-ctx.Done():
				for k := i; k < len(blobs); k++ {
					outCh <- BlobResult{Index: k, Err: ctx.Err()}
				}
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// The feeder may still be reporting cancelled blobs after the workers
	// finish, so collect until every blob has a result.
	for range blobs {
		r := <-outCh
		results[r.Index] = r
	}
	return results
}

// separateOne runs a single blob, converting a panic into an error.
func separateOne(ctx context.Context, idx int, blob contour.Contour, p Params) (r BlobResult) {
	r.Index = idx
	defer func() {
		if v := recover(); v != nil {
			r.Crypts = nil
			r.Err = fmt.Errorf("blob %d: panic during separation: %v", idx, v)
		}
	}()

	crypts, err := Separate(ctx, blob, p)
	if err != nil {
		r.Err = fmt.Errorf("blob %d: %w", idx, err)
		return r
	}
	r.Crypts = crypts
	return r
}
