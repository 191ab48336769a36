// Package core provides the terminal drawing primitives used to render
// the map: a glyph-aware cell buffer and geo-to-cell projection.
// It has no Bubble Tea dependency so rendering stays testable.
package core

import "github.com/vovakirdan/whereim/internal/geo"

// Rect is an axis-aligned cell rectangle.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks the rectangle by n cells on every side.
// The result never has negative dimensions.
func (r Rect) Inset(n int) Rect {
	return Rect{
		X: r.X + n,
		Y: r.Y + n,
		W: max(r.W-2*n, 0),
		H: max(r.H-2*n, 0),
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Project maps p onto a w x h cell grid covering region r.
// Row 0 is the northern edge and column 0 the western edge.
// ok is false when p lies outside r or the grid is empty.
func Project(r geo.Region, p geo.GeoPoint, w, h int) (x, y int, ok bool) {
	if w <= 0 || h <= 0 || r.Span.LatDelta <= 0 || r.Span.LonDelta <= 0 {
		return 0, 0, false
	}
	if !r.Contains(p) {
		return 0, 0, false
	}

	// Offsets from the center keep the center cell exact.
	fx := 0.5 + (p.Lon-r.Center.Lon)/r.Span.LonDelta
	fy := 0.5 - (p.Lat-r.Center.Lat)/r.Span.LatDelta

	x = Clamp(int(fx*float64(w)), 0, w-1)
	y = Clamp(int(fy*float64(h)), 0, h-1)
	return x, y, true
}

// Unproject returns the geographic center of cell (x, y) on a w x h grid
// covering region r.
func Unproject(r geo.Region, x, y, w, h int) geo.GeoPoint {
	fx := (float64(x) + 0.5) / float64(w)
	fy := (float64(y) + 0.5) / float64(h)
	return geo.GeoPoint{
		Lat: r.Center.Lat + (0.5-fy)*r.Span.LatDelta,
		Lon: r.Center.Lon + (fx-0.5)*r.Span.LonDelta,
	}
}
