package core

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cell is a single terminal cell. A double-width glyph occupies its own
// cell plus a continuation cell to the right.
type Cell struct {
	Glyph string
	Color Color
	cont  bool
}

// Continuation reports whether the cell is the right half of a wide glyph.
func (c Cell) Continuation() bool {
	return c.cont
}

var blank = Cell{Glyph: " "}

// Screen is a 2D cell buffer for rendering the map.
// It decouples drawing from the terminal: callers place glyphs and the
// platform handles actual display.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  max(width, 0),
		height: max(height, 0),
	}
	s.allocate()
	s.Clear()
	return s
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in cells.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in cells.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions and clears it.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = max(width, 0)
	s.height = max(height, 0)
	s.allocate()
	s.Clear()
}

// Clear fills the entire screen with spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blank
		}
	}
}

// Bounds returns the full screen rectangle.
func (s *Screen) Bounds() Rect {
	return NewRect(0, 0, s.width, s.height)
}

// Set places a glyph at the given position and returns the number of
// cells it occupies. Glyphs that do not fit are dropped and 0 is returned.
func (s *Screen) Set(x, y int, glyph string, color Color) int {
	w := runewidth.StringWidth(glyph)
	if w == 0 {
		return 0
	}
	if y < 0 || y >= s.height || x < 0 || x+w > s.width {
		return 0
	}

	s.release(x, y)
	if w > 1 {
		s.release(x+1, y)
	}
	s.cells[y][x] = Cell{Glyph: glyph, Color: color}
	for i := 1; i < w; i++ {
		s.cells[y][x+i] = Cell{Color: color, cont: true}
	}
	return w
}

// release blanks whatever glyph currently covers (x, y), including the
// other half of a wide glyph.
func (s *Screen) release(x, y int) {
	c := s.cells[y][x]
	switch {
	case c.cont:
		for lx := x - 1; lx >= 0; lx-- {
			lead := s.cells[y][lx]
			s.cells[y][lx] = blank
			if !lead.cont {
				break
			}
		}
	case runewidth.StringWidth(c.Glyph) > 1:
		for rx := x + 1; rx < s.width && s.cells[y][rx].cont; rx++ {
			s.cells[y][rx] = blank
		}
	}
	s.cells[y][x] = blank
}

// Get returns the cell at the given position.
// Returns a blank cell for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return blank
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string, color Color) {
	for _, r := range text {
		w := s.Set(x, y, string(r), color)
		if w == 0 {
			w = max(runewidth.RuneWidth(r), 1)
		}
		x += w
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string, color Color) {
	x := (s.width - runewidth.StringWidth(text)) / 2
	s.DrawText(x, y, text, color)
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r Rect, color Color) {
	if r.W < 2 || r.H < 2 {
		return
	}

	// Corners
	s.Set(r.X, r.Y, "┌", color)
	s.Set(r.Right()-1, r.Y, "┐", color)
	s.Set(r.X, r.Bottom()-1, "└", color)
	s.Set(r.Right()-1, r.Bottom()-1, "┘", color)

	// Horizontal edges
	for x := r.X + 1; x < r.Right()-1; x++ {
		s.Set(x, r.Y, "─", color)
		s.Set(x, r.Bottom()-1, "─", color)
	}

	// Vertical edges
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.Set(r.X, y, "│", color)
		s.Set(r.Right()-1, y, "│", color)
	}
}

// String converts the screen buffer to a plain string.
// Each row is joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		if c.cont {
			continue
		}
		sb.WriteString(c.Glyph)
	}
	return sb.String()
}
