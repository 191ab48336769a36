package core

import (
	"math"
	"testing"

	"github.com/vovakirdan/whereim/internal/geo"
)

func TestRectContainsAndInset(t *testing.T) {
	r := NewRect(2, 3, 10, 5)

	if !r.Contains(2, 3) || r.Contains(12, 3) || r.Contains(2, 8) {
		t.Error("Contains() edges wrong")
	}

	in := r.Inset(1)
	if in != NewRect(3, 4, 8, 3) {
		t.Errorf("Inset(1) = %+v", in)
	}
	if z := r.Inset(10); z.W != 0 || z.H != 0 {
		t.Errorf("Inset(10) = %+v, expected zero size", z)
	}
}

func TestProject(t *testing.T) {
	region := geo.NewRegion(10, 20, 0.02, 0.02)

	tests := []struct {
		name   string
		p      geo.GeoPoint
		x, y   int
		inside bool
	}{
		{"center", geo.Pt(10, 20), 10, 5, true},
		{"north west corner", geo.Pt(10.0099, 19.9901), 0, 0, true},
		{"south east corner", geo.Pt(9.9901, 20.0099), 19, 9, true},
		{"north of region", geo.Pt(10.02, 20), 0, 0, false},
		{"east of region", geo.Pt(10, 20.05), 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := Project(region, tt.p, 20, 10)
			if ok != tt.inside {
				t.Fatalf("Project() ok = %v, expected %v", ok, tt.inside)
			}
			if ok && (x != tt.x || y != tt.y) {
				t.Errorf("Project() = (%d, %d), expected (%d, %d)", x, y, tt.x, tt.y)
			}
		})
	}
}

func TestProjectCenterCell(t *testing.T) {
	centers := []geo.GeoPoint{
		geo.Pt(10, 20),
		geo.Pt(55.7558, 37.6173),
		geo.Pt(-33.8688, 151.2093),
		geo.Pt(0.1, -0.1),
	}
	spans := []float64{0.01, 0.013, 0.017, 0.02}

	for _, c := range centers {
		for _, d := range spans {
			region := geo.NewRegion(c.Lat, c.Lon, d, d)
			x, y, ok := Project(region, c, 20, 10)
			if !ok || x != 10 || y != 5 {
				t.Errorf("Project(center %v, span %v) = (%d, %d, %v), expected (10, 5, true)", c, d, x, y, ok)
			}
		}
	}
}

func TestProjectDegenerate(t *testing.T) {
	region := geo.NewRegion(0, 0, 0.02, 0.02)
	if _, _, ok := Project(region, geo.Pt(0, 0), 0, 10); ok {
		t.Error("Project() on empty grid should fail")
	}
	if _, _, ok := Project(geo.NewRegion(0, 0, 0, 0), geo.Pt(0, 0), 10, 10); ok {
		t.Error("Project() on zero span should fail")
	}
}

func TestUnprojectRoundTrip(t *testing.T) {
	region := geo.NewRegion(55.75, 37.61, 0.01, 0.02)
	const w, h = 40, 12

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := Unproject(region, x, y, w, h)
			px, py, ok := Project(region, p, w, h)
			if !ok || px != x || py != y {
				t.Fatalf("cell (%d, %d) round-tripped to (%d, %d, %v)", x, y, px, py, ok)
			}
		}
	}

	c := Unproject(region, 0, 0, 1, 1)
	if math.Abs(c.Lat-55.75) > 1e-9 || math.Abs(c.Lon-37.61) > 1e-9 {
		t.Errorf("single-cell Unproject() = %v, expected region center", c)
	}
}
