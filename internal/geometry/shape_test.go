package geometry

import (
	"image"
	"math"
	"testing"
)

func TestPolygonArea(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
		want float64
	}{
		{"empty", nil, 0},
		{"two points", []Point{{0, 0}, {5, 5}}, 0},
		{"unit square", []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, 1},
		{"square reversed", []Point{{0, 0}, {0, 10}, {10, 10}, {10, 0}}, 100},
		{"triangle", []Point{{0, 0}, {4, 0}, {0, 3}}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PolygonArea(tt.pts); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundingRect(t *testing.T) {
	got := BoundingRect([]Point{{3, 4}, {10, 2}, {5, 9}})
	want := image.Rect(3, 2, 11, 10)
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got.Dx() != 8 || got.Dy() != 8 {
		t.Errorf("extent: got %dx%d, want 8x8", got.Dx(), got.Dy())
	}
	if !BoundingRect(nil).Empty() {
		t.Error("BoundingRect(nil) should be empty")
	}
}

func TestFitLine(t *testing.T) {
	tests := []struct {
		name         string
		pts          []Point
		wantVertical bool
		wantM        float64
	}{
		{"horizontal run", []Point{{0, 5}, {1, 5}, {2, 5}, {3, 5}, {4, 5}}, false, 0},
		{"vertical run", []Point{{2, 0}, {2, 1}, {2, 2}, {2, 3}}, true, 0},
		{"diagonal", []Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}, false, 1},
		{"anti-diagonal", []Point{{0, 3}, {1, 2}, {2, 1}, {3, 0}}, false, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := FitLine(tt.pts)
			if got.Vertical != tt.wantVertical {
				t.Fatalf("Vertical: got %v, want %v", got.Vertical, tt.wantVertical)
			}
			if !got.Vertical && math.Abs(got.M-tt.wantM) > 1e-9 {
				t.Errorf("M: got %v, want %v", got.M, tt.wantM)
			}
		})
	}
}

func TestFitLine_TallEllipseIsSteep(t *testing.T) {
	// A tall outline must produce a near-vertical axis, which an ordinary
	// y-on-x regression would not.
	var pts []Point
	for i := 0; i < 360; i++ {
		a := float64(i) * math.Pi / 180
		pts = append(pts, Point{X: int(math.Round(10 * math.Cos(a))), Y: int(math.Round(60 * math.Sin(a)))})
	}
	c, s := FitLine(pts)
	if math.Abs(c.X) > 0.5 || math.Abs(c.Y) > 0.5 {
		t.Errorf("centroid: got %+v, want near origin", c)
	}
	if AcuteAngleBetweenSlopes(s, Slope{Vertical: true}) > 1 {
		t.Errorf("axis %+v is not near vertical", s)
	}
}

func TestConvexHullIndices(t *testing.T) {
	pts := []Vec{v(0, 0), v(10, 0), v(5, 5), v(10, 10), v(0, 10), v(5, 0), v(1, 1), v(2, 2)}
	at := func(i int) Vec { return pts[i] }

	tests := []struct {
		name string
		idx  []int
		want []int
	}{
		{"square with inner and edge points", []int{0, 1, 2, 3, 4, 5}, []int{0, 1, 3, 4}},
		{"subset", []int{2, 5, 1}, []int{5, 1, 2}},
		{"collinear keeps the extremes", []int{7, 0, 6}, []int{0, 7}},
		{"two points", []int{3, 4}, []int{4, 3}},
		{"empty", nil, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvexHullIndices(tt.idx, at)
			if len(got) != len(tt.want) {
				t.Fatalf("ConvexHullIndices() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ConvexHullIndices() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestMinAreaRect(t *testing.T) {
	t.Run("axis aligned", func(t *testing.T) {
		r := MinAreaRect([]Vec{v(0, 0), v(10, 0), v(10, 4), v(0, 4), v(5, 2)})
		if math.Abs(r.Long()-10) > 1e-9 || math.Abs(r.Short()-4) > 1e-9 {
			t.Errorf("got %vx%v, want 10x4", r.Long(), r.Short())
		}
		if math.Abs(r.Center.X-5) > 1e-9 || math.Abs(r.Center.Y-2) > 1e-9 {
			t.Errorf("center: got %+v, want (5,2)", r.Center)
		}
	})

	t.Run("rotated", func(t *testing.T) {
		// A 20x2 rectangle rotated by 45 degrees.
		h := math.Sqrt2 / 2
		pts := []Vec{v(0, 0), v(20*h, 20*h), v(20*h-2*h, 20*h+2*h), v(-2*h, 2*h)}
		r := MinAreaRect(pts)
		if math.Abs(r.Long()-20) > 1e-6 || math.Abs(r.Short()-2) > 1e-6 {
			t.Errorf("got %vx%v, want 20x2", r.Long(), r.Short())
		}
	})

	t.Run("collinear", func(t *testing.T) {
		r := MinAreaRect([]Vec{v(0, 0), v(3, 4), v(6, 8)})
		if math.Abs(r.Long()-10) > 1e-9 || r.Short() != 0 {
			t.Errorf("got %vx%v, want 10x0", r.Long(), r.Short())
		}
	})

	t.Run("empty", func(t *testing.T) {
		if r := MinAreaRect(nil); r.Long() != 0 {
			t.Errorf("got %+v, want zero rect", r)
		}
	})
}
