package contour

import (
	"errors"
	"image"
	"sort"
	"testing"

	"github.com/ironsheep/crypt-count-mcp/internal/geometry"
)

func TestConvexHull(t *testing.T) {
	t.Run("square keeps only corners", func(t *testing.T) {
		c := traceOne(t, createRectMask(t, 8, 8, image.Rect(2, 2, 5, 5)))
		h, err := ConvexHull(c)
		if err != nil {
			t.Fatalf("ConvexHull() error = %v", err)
		}
		want := Hull{0, 2, 4, 6}
		if len(h) != len(want) {
			t.Fatalf("ConvexHull() = %v, want %v", h, want)
		}
		for i := range want {
			if h[i] != want[i] {
				t.Fatalf("ConvexHull() = %v, want %v", h, want)
			}
		}
	})

	t.Run("disc hull is in traversal order", func(t *testing.T) {
		c := traceOne(t, createDiscMask(t, 110, 120, 50, geometry.Point{X: 50, Y: 60}))
		h, err := ConvexHull(c)
		if err != nil {
			t.Fatalf("ConvexHull() error = %v", err)
		}
		if !sort.IntsAreSorted(h) {
			t.Errorf("ConvexHull() indices not ascending: %v", h)
		}
		if len(h) < 8 {
			t.Errorf("ConvexHull() has %d vertices, want at least 8 for a disc", len(h))
		}
	})
}

func TestConvexHullDegenerate(t *testing.T) {
	tests := []struct {
		name string
		c    Contour
	}{
		{"empty", Contour{}},
		{"two points", New(pts(0, 0, 5, 5))},
		{"collinear", New(pts(0, 0, 1, 1, 2, 2, 3, 3, 2, 2, 1, 1))},
		{"repeated point", New(pts(1, 1, 2, 2, 1, 1, 2, 2))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConvexHull(tt.c)
			if !errors.Is(err, ErrDegenerate) {
				t.Errorf("ConvexHull() error = %v, want ErrDegenerate", err)
			}
			h, d := FindDefects(tt.c, 1)
			if h != nil || d != nil {
				t.Errorf("FindDefects() = %v, %v, want nil, nil", h, d)
			}
		})
	}
}

func TestDefects(t *testing.T) {
	t.Run("disc has no defect deeper than one pixel", func(t *testing.T) {
		c := traceOne(t, createDiscMask(t, 110, 120, 50, geometry.Point{X: 50, Y: 60}))
		if _, d := FindDefects(c, 1); len(d) != 0 {
			t.Errorf("FindDefects() = %v, want none", d)
		}
	})

	t.Run("two overlapping discs have a defect at each side of the waist", func(t *testing.T) {
		c := traceOne(t, createDiscMask(t, 180, 130, 50, geometry.Point{X: 50, Y: 60}, geometry.Point{X: 114, Y: 60}))
		_, d := FindDefects(c, 10)
		if len(d) != 2 {
			t.Fatalf("FindDefects() returned %d defects, want 2", len(d))
		}

		want := []Defect{
			{Start: geometry.Point{X: 50, Y: 10}, End: geometry.Point{X: 114, Y: 10}, Far: geometry.Point{X: 82, Y: 22}, Depth: 12},
			{Start: geometry.Point{X: 114, Y: 110}, End: geometry.Point{X: 50, Y: 110}, Far: geometry.Point{X: 82, Y: 98}, Depth: 12},
		}
		for i, w := range want {
			g := d[i]
			if g.Start != w.Start || g.End != w.End || g.Far != w.Far || g.Depth != w.Depth {
				t.Errorf("defect %d = %+v, want start %v end %v far %v depth %v", i, g, w.Start, w.End, w.Far, w.Depth)
			}
			if c.At(g.StartIndex) != g.Start || c.At(g.EndIndex) != g.End || c.At(g.FarIndex) != g.Far {
				t.Errorf("defect %d indices do not match its points", i)
			}
		}
	})

	t.Run("chord across a row of three discs has one defect per waist", func(t *testing.T) {
		c := traceOne(t, createDiscMask(t, 244, 100, 40,
			geometry.Point{X: 50, Y: 50}, geometry.Point{X: 122, Y: 50}, geometry.Point{X: 194, Y: 50}))
		_, d := FindDefects(c, 10)

		top, bottom := geometry.Point{X: 50, Y: 10}, geometry.Point{X: 194, Y: 90}
		want := []Defect{
			{Start: top, End: geometry.Point{X: 194, Y: 10}, Far: geometry.Point{X: 86, Y: 33}, Depth: 23},
			{Start: top, End: geometry.Point{X: 194, Y: 10}, Far: geometry.Point{X: 158, Y: 33}, Depth: 23},
			{Start: bottom, End: geometry.Point{X: 50, Y: 90}, Far: geometry.Point{X: 158, Y: 67}, Depth: 23},
			{Start: bottom, End: geometry.Point{X: 50, Y: 90}, Far: geometry.Point{X: 86, Y: 67}, Depth: 23},
		}
		if len(d) != len(want) {
			t.Fatalf("FindDefects() returned %d defects, want %d", len(d), len(want))
		}
		for i, w := range want {
			g := d[i]
			if g.Start != w.Start || g.End != w.End || g.Far != w.Far || g.Depth != w.Depth {
				t.Errorf("defect %d = %+v, want start %v end %v far %v depth %v", i, g, w.Start, w.End, w.Far, w.Depth)
			}
		}
	})

	t.Run("depth equal to threshold is excluded", func(t *testing.T) {
		c := traceOne(t, createDiscMask(t, 180, 130, 50, geometry.Point{X: 50, Y: 60}, geometry.Point{X: 114, Y: 60}))
		if _, d := FindDefects(c, 12); len(d) != 0 {
			t.Errorf("FindDefects(threshold=12) = %v, want none", d)
		}
	})
}

func TestDefectHullFoot(t *testing.T) {
	d := Defect{
		Start: geometry.Point{X: 0, Y: 10},
		End:   geometry.Point{X: 20, Y: 10},
		Far:   geometry.Point{X: 7, Y: 25},
	}
	if got := d.HullFoot(); got != (geometry.Vec{X: 7, Y: 10}) {
		t.Errorf("HullFoot() = %v, want (7,10)", got)
	}
}
