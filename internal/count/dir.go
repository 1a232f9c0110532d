package count

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ironsheep/crypt-count-mcp/internal/contour"
)

// Loader reads the binary mask stored at path.
type Loader func(path string) (*contour.Mask, error)

// FileResult is the outcome for one mask file. Exactly one of Data and
// Error is set.
type FileResult struct {
	Name  string     `json:"name"` // File name without directory or extension
	Path  string     `json:"path"`
	Data  *CryptData `json:"data,omitempty"`
	Error string     `json:"error,omitempty"`
}

// DirResult is the outcome for a directory of masks.
type DirResult struct {
	Dir    string       `json:"dir"`
	Files  []FileResult `json:"files"`
	Total  int          `json:"total_crypts"` // Crypts over all successful files
	Failed int          `json:"failed"`       // Files that could not be counted
}

// ProcessDir counts crypts in every PNG mask in dir.
//
// Parameters:
//   - ctx: Checked between files and passed to each count.
//   - dir: Directory to scan; subdirectories are ignored.
//   - load: Reads one mask file.
//   - opts: Options for every count.
//
// Returns:
//   - *DirResult: one FileResult per mask, in natural name order, so
//     "slide2.png" comes before "slide10.png". A file that fails to load or
//     count is recorded with its error and the batch continues.
//   - error: non-nil if dir cannot be listed, the options are invalid, or ctx
//     is cancelled.
func ProcessDir(ctx context.Context, dir string, load Loader, opts Options) (*DirResult, error) {
	if err := opts.Params.Validate(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		names = append(names, e.Name())
	}
	collate.New(language.Und, collate.Numeric).SortStrings(names)

	res := &DirResult{Dir: dir, Files: make([]FileResult, 0, len(names))}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(dir, name)
		fr := FileResult{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: path,
		}

		data, err := countFile(ctx, path, load, opts)
		switch {
		case err == nil:
			fr.Data = data
			res.Total += data.Count
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			opts.Params.Debugf("skipping %s: %v", path, err)
			fr.Error = err.Error()
			res.Failed++
		}
		res.Files = append(res.Files, fr)
	}
	return res, nil
}

func countFile(ctx context.Context, path string, load Loader, opts Options) (*CryptData, error) {
	m, err := load(path)
	if err != nil {
		return nil, err
	}
	return CountMask(ctx, m, opts)
}
