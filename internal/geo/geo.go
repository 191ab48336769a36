// Package geo provides the coordinate value types used by the simulation.
// Distances are planar in degree space; nothing here is geodesic.
package geo

import (
	"fmt"
	"math"
)

// Default span bounds for a free (viewer-following) region, in degrees.
const (
	DefaultMinDelta = 0.01
	DefaultMaxDelta = 0.02
)

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Pt is shorthand for constructing a GeoPoint.
func Pt(lat, lon float64) GeoPoint {
	return GeoPoint{Lat: lat, Lon: lon}
}

// Offset returns the point shifted by the given deltas.
func (p GeoPoint) Offset(dLat, dLon float64) GeoPoint {
	return GeoPoint{Lat: p.Lat + dLat, Lon: p.Lon + dLon}
}

// DistanceTo returns the Euclidean distance to q in degree space.
func (p GeoPoint) DistanceTo(q GeoPoint) float64 {
	return math.Hypot(q.Lat-p.Lat, q.Lon-p.Lon)
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("(%.5f, %.5f)", p.Lat, p.Lon)
}

// Span is the visible extent of a region.
type Span struct {
	LatDelta float64 `json:"lat_delta" yaml:"lat_delta"`
	LonDelta float64 `json:"lon_delta" yaml:"lon_delta"`
}

// Region is a viewport: a center point plus a span.
type Region struct {
	Center GeoPoint `json:"center" yaml:"center"`
	Span   Span     `json:"span" yaml:"span"`
}

// NewRegion builds a region centered on (lat, lon).
func NewRegion(lat, lon, latDelta, lonDelta float64) Region {
	return Region{
		Center: GeoPoint{Lat: lat, Lon: lon},
		Span:   Span{LatDelta: latDelta, LonDelta: lonDelta},
	}
}

// Contains reports whether p lies inside the region's extent (edges inclusive).
func (r Region) Contains(p GeoPoint) bool {
	halfLat := r.Span.LatDelta / 2
	halfLon := r.Span.LonDelta / 2
	return math.Abs(p.Lat-r.Center.Lat) <= halfLat && math.Abs(p.Lon-r.Center.Lon) <= halfLon
}

// Pan moves the center by the given fractions of the span.
func (r Region) Pan(latFrac, lonFrac float64) Region {
	r.Center = r.Center.Offset(r.Span.LatDelta*latFrac, r.Span.LonDelta*lonFrac)
	return r
}

// Zoom scales the span by factor.
func (r Region) Zoom(factor float64) Region {
	r.Span.LatDelta *= factor
	r.Span.LonDelta *= factor
	return r
}

// SpanLimits bounds the span of a free region.
type SpanLimits struct {
	MinDelta float64 `yaml:"min_delta"`
	MaxDelta float64 `yaml:"max_delta"`
}

// DefaultSpanLimits returns the [0.01, 0.02] degree bounds.
func DefaultSpanLimits() SpanLimits {
	return SpanLimits{MinDelta: DefaultMinDelta, MaxDelta: DefaultMaxDelta}
}

// Clamp restricts both span deltas to [MinDelta, MaxDelta].
func (l SpanLimits) Clamp(s Span) Span {
	return Span{
		LatDelta: ClampF(s.LatDelta, l.MinDelta, l.MaxDelta),
		LonDelta: ClampF(s.LonDelta, l.MinDelta, l.MaxDelta),
	}
}

// ClampSpan clamps s with the default limits.
func ClampSpan(s Span) Span {
	return DefaultSpanLimits().Clamp(s)
}

// ClampF restricts a float64 value to be within [min, max].
// NaN is mapped to min.
func ClampF(val, min, max float64) float64 {
	if math.IsNaN(val) || val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
