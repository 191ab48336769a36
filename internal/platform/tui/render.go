package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/whereim/internal/core"
	"github.com/vovakirdan/whereim/internal/geo"
	"github.com/vovakirdan/whereim/internal/sim"
)

// Grid dot spacing on the map background.
const (
	gridStepX = 6
	gridStepY = 3
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = func() map[core.Color]lipgloss.Style {
	styles := map[core.Color]lipgloss.Style{}
	for c := core.ColorDefault; c <= core.ColorDim; c++ {
		st := lipgloss.NewStyle()
		if code := c.ANSI(); code != "" {
			st = st.Foreground(lipgloss.Color(code))
		}
		styles[c] = st
	}
	return styles
}()

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.Get(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.Get(x, y)
				if cell.Color != startColor {
					break
				}
				if !cell.Continuation() {
					run.WriteString(cell.Glyph)
				}
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// DrawMap draws a framed map of region onto s with entities placed by
// position. Entities outside the region are skipped; later entities are
// drawn over earlier ones.
func DrawMap(s *core.Screen, region geo.Region, entities []sim.Entity) {
	s.Clear()
	bounds := s.Bounds()
	s.DrawBox(bounds, core.ColorGray)

	inner := bounds.Inset(1)
	for y := inner.Y + 1; y < inner.Bottom(); y += gridStepY {
		for x := inner.X + 2; x < inner.Right(); x += gridStepX {
			s.Set(x, y, "·", core.ColorDim)
		}
	}

	for _, e := range entities {
		x, y, ok := core.Project(region, e.Pos, inner.W, inner.H)
		if !ok {
			continue
		}
		color := core.ColorDefault
		if e.IsTarget() {
			color = core.ColorBrightYellow
		}
		// Keep wide glyphs inside the frame
		if x+2 > inner.W && inner.W >= 2 {
			x = inner.W - 2
		}
		s.Set(inner.X+x, inner.Y+y, e.Glyph, color)
	}
}

// Tween moves each car in to a fraction of the way from its position in
// from, matched by ID. Cars without a previous position are returned as-is.
// frac is clamped to [0, 1].
func Tween(from map[int]geo.GeoPoint, to []sim.Entity, frac float64) []sim.Entity {
	frac = geo.ClampF(frac, 0, 1)
	out := make([]sim.Entity, len(to))
	for i, e := range to {
		out[i] = e
		prev, ok := from[e.ID]
		if !ok || frac == 1 {
			continue
		}
		out[i].Pos = geo.GeoPoint{
			Lat: prev.Lat + (e.Pos.Lat-prev.Lat)*frac,
			Lon: prev.Lon + (e.Pos.Lon-prev.Lon)*frac,
		}
	}
	return out
}

// tweenFraction returns how far an animation of length d has progressed
// since began. A zero length completes immediately.
func tweenFraction(began, now time.Time, d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	return geo.ClampF(float64(now.Sub(began))/float64(d), 0, 1)
}

// positions indexes entity positions by ID.
func positions(entities []sim.Entity) map[int]geo.GeoPoint {
	out := make(map[int]geo.GeoPoint, len(entities))
	for _, e := range entities {
		out[e.ID] = e.Pos
	}
	return out
}
